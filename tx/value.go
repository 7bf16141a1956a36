package tx

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ores-network/gores/common"
	"github.com/ores-network/gores/resource"
)

// ValueKind tags the type of a prepared argument value.
type ValueKind string

const (
	ValueBool         ValueKind = "bool"
	ValueI8           ValueKind = "i8"
	ValueI16          ValueKind = "i16"
	ValueI32          ValueKind = "i32"
	ValueI64          ValueKind = "i64"
	ValueI128         ValueKind = "i128"
	ValueU8           ValueKind = "u8"
	ValueU16          ValueKind = "u16"
	ValueU32          ValueKind = "u32"
	ValueU64          ValueKind = "u64"
	ValueU128         ValueKind = "u128"
	ValueString       ValueKind = "string"
	ValueDecimal      ValueKind = "decimal"
	ValueBigDecimal   ValueKind = "big_decimal"
	ValueAddress      ValueKind = "address"
	ValueHash         ValueKind = "h256"
	ValueBucket       ValueKind = "bucket"
	ValueBucketRef    ValueKind = "bucket_ref"
	ValueBytes        ValueKind = "bytes"
	ValueStringMap    ValueKind = "string_map"
	ValueAuthorityMap ValueKind = "authority_map"
	ValueResourceType ValueKind = "resource_type"
	ValueSupply       ValueKind = "supply"
	ValueNftIDSet     ValueKind = "nft_id_set"
)

// Value is a typed argument carried by a call instruction: a closed tagged
// variant over the engine's value kinds.
type Value struct {
	kind  ValueKind
	inner interface{}
}

func BoolValue(v bool) Value                 { return Value{ValueBool, v} }
func I8Value(v int8) Value                   { return Value{ValueI8, v} }
func I16Value(v int16) Value                 { return Value{ValueI16, v} }
func I32Value(v int32) Value                 { return Value{ValueI32, v} }
func I64Value(v int64) Value                 { return Value{ValueI64, v} }
func U8Value(v uint8) Value                  { return Value{ValueU8, v} }
func U16Value(v uint16) Value                { return Value{ValueU16, v} }
func U32Value(v uint32) Value                { return Value{ValueU32, v} }
func U64Value(v uint64) Value                { return Value{ValueU64, v} }
func StringValue(v string) Value             { return Value{ValueString, v} }
func DecimalValue(v common.Decimal) Value    { return Value{ValueDecimal, v} }
func AddressValue(v common.Address) Value    { return Value{ValueAddress, v} }
func HashValue(v common.Hash) Value          { return Value{ValueHash, v} }
func BucketValue(id BucketID) Value          { return Value{ValueBucket, id} }
func BucketRefValue(id BucketRefID) Value    { return Value{ValueBucketRef, id} }
func BytesValue(v []byte) Value              { return Value{ValueBytes, v} }
func NftIDSetValue(ids []common.NftID) Value { return Value{ValueNftIDSet, ids} }

func BigDecimalValue(v common.BigDecimal) Value { return Value{ValueBigDecimal, v} }

// I128Value wraps a signed 128-bit integer held in a big.Int.
func I128Value(v *big.Int) Value { return Value{ValueI128, new(big.Int).Set(v)} }

// U128Value wraps an unsigned 128-bit integer held in a big.Int.
func U128Value(v *big.Int) Value { return Value{ValueU128, new(big.Int).Set(v)} }

func StringMapValue(v map[string]string) Value { return Value{ValueStringMap, v} }
func ResourceTypeValue(v resource.Type) Value  { return Value{ValueResourceType, v} }

func AuthorityMapValue(v map[common.Address]uint16) Value {
	return Value{ValueAuthorityMap, v}
}

// SupplyValue wraps an optional fixed supply; nil means mutable supply.
func SupplyValue(v *resource.Supply) Value { return Value{ValueSupply, v} }

// Kind returns the value's type tag.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Interface returns the wrapped Go value.
func (v Value) Interface() interface{} {
	return v.inner
}

func (v Value) String() string {
	switch v.kind {
	case ValueBytes:
		return fmt.Sprintf("%d bytes", len(v.inner.([]byte)))
	default:
		return fmt.Sprintf("%v", v.inner)
	}
}

type valueEnvelope struct {
	Type  ValueKind       `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	inner := v.inner
	switch v.kind {
	case ValueI128, ValueU128:
		inner = v.inner.(*big.Int).String()
	case "":
		return nil, errors.New("tx: cannot marshal zero Value")
	}
	payload, err := json.Marshal(inner)
	if err != nil {
		return nil, err
	}
	return json.Marshal(valueEnvelope{Type: v.kind, Value: payload})
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var env valueEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	inner, err := decodeValuePayload(env.Type, env.Value)
	if err != nil {
		return err
	}
	v.kind = env.Type
	v.inner = inner
	return nil
}

func decodeValuePayload(kind ValueKind, payload json.RawMessage) (interface{}, error) {
	switch kind {
	case ValueBool:
		return decodeInto[bool](payload)
	case ValueI8:
		return decodeInto[int8](payload)
	case ValueI16:
		return decodeInto[int16](payload)
	case ValueI32:
		return decodeInto[int32](payload)
	case ValueI64:
		return decodeInto[int64](payload)
	case ValueU8:
		return decodeInto[uint8](payload)
	case ValueU16:
		return decodeInto[uint16](payload)
	case ValueU32:
		return decodeInto[uint32](payload)
	case ValueU64:
		return decodeInto[uint64](payload)
	case ValueI128, ValueU128:
		var s string
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, err
		}
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("tx: invalid %s payload %q", kind, s)
		}
		return n, nil
	case ValueString:
		return decodeInto[string](payload)
	case ValueDecimal:
		return decodeInto[common.Decimal](payload)
	case ValueBigDecimal:
		return decodeInto[common.BigDecimal](payload)
	case ValueAddress:
		return decodeInto[common.Address](payload)
	case ValueHash:
		return decodeInto[common.Hash](payload)
	case ValueBucket:
		return decodeInto[BucketID](payload)
	case ValueBucketRef:
		return decodeInto[BucketRefID](payload)
	case ValueBytes:
		return decodeInto[[]byte](payload)
	case ValueStringMap:
		return decodeInto[map[string]string](payload)
	case ValueAuthorityMap:
		return decodeInto[map[common.Address]uint16](payload)
	case ValueResourceType:
		return decodeInto[resource.Type](payload)
	case ValueSupply:
		if len(payload) == 0 || string(payload) == "null" {
			return (*resource.Supply)(nil), nil
		}
		var s resource.Supply
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, err
		}
		return &s, nil
	case ValueNftIDSet:
		return decodeInto[[]common.NftID](payload)
	default:
		return nil, fmt.Errorf("tx: unknown value kind %q", kind)
	}
}

// decodeInto boxes the decoded payload so every case of the kind switch can
// share one return shape.
func decodeInto[T any](payload json.RawMessage) (interface{}, error) {
	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}
