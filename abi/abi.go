// Package abi models the declared interfaces of on-ledger callables. A
// blueprint descriptor carries the ordered parameter signatures of its
// functions and methods; the transaction compiler consults these through the
// Provider interface to decide how each raw argument must be materialized.
package abi

import (
	"errors"
	"fmt"

	"github.com/ores-network/gores/common"
)

// ErrNotFound is returned by providers when a package, blueprint or component
// cannot be introspected.
var ErrNotFound = errors.New("abi: not found")

// TypeKind enumerates the closed set of declared parameter kinds.
type TypeKind uint8

const (
	KindBool TypeKind = iota + 1
	KindI8
	KindI16
	KindI32
	KindI64
	KindI128
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindString
	KindCustom
)

var kindNames = map[TypeKind]string{
	KindBool:   "bool",
	KindI8:     "i8",
	KindI16:    "i16",
	KindI32:    "i32",
	KindI64:    "i64",
	KindI128:   "i128",
	KindU8:     "u8",
	KindU16:    "u16",
	KindU32:    "u32",
	KindU64:    "u64",
	KindU128:   "u128",
	KindString: "string",
	KindCustom: "custom",
}

func (k TypeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k TypeKind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("abi: unknown type kind %d", uint8(k))
	}
	return []byte(name), nil
}

func (k *TypeKind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("abi: unknown type kind %q", text)
}

// Names of the custom kinds understood by the transaction compiler.
const (
	CustomDecimal    = "Decimal"
	CustomBigDecimal = "BigDecimal"
	CustomAddress    = "Address"
	CustomHash       = "H256"
	CustomBucket     = "Bucket"
	CustomBucketRef  = "BucketRef"
)

// Type is a declared parameter type descriptor: a primitive kind, or a named
// custom kind.
type Type struct {
	Kind TypeKind `json:"kind"`
	Name string   `json:"name,omitempty"`
}

// Primitive returns the descriptor for a primitive kind.
func Primitive(kind TypeKind) Type {
	return Type{Kind: kind}
}

// Custom returns the descriptor for a named custom kind.
func Custom(name string) Type {
	return Type{Kind: KindCustom, Name: name}
}

func (t Type) String() string {
	if t.Kind == KindCustom {
		return t.Name
	}
	return t.Kind.String()
}

// Function describes a blueprint function: callable without an instance.
type Function struct {
	Name   string `json:"name"`
	Inputs []Type `json:"inputs"`
}

// Method describes a component method: callable on an instantiated component.
type Method struct {
	Name   string `json:"name"`
	Inputs []Type `json:"inputs"`
}

// Blueprint is the declared interface of one blueprint: its functions and the
// methods of its instances.
type Blueprint struct {
	Name      string     `json:"name"`
	Functions []Function `json:"functions,omitempty"`
	Methods   []Method   `json:"methods,omitempty"`
}

// Function looks up a function descriptor by name.
func (bp *Blueprint) Function(name string) (Function, bool) {
	for _, f := range bp.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return Function{}, false
}

// Method looks up a method descriptor by name.
func (bp *Blueprint) Method(name string) (Method, bool) {
	for _, m := range bp.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// Provider resolves declared interfaces from ledger state. Implementations
// must be safe for repeated reads within a single build; they are not assumed
// to be safe for concurrent use.
type Provider interface {
	// ExportFunctionABI returns the blueprint descriptor hosted by the given
	// package, or an error wrapping ErrNotFound.
	ExportFunctionABI(pkg common.Address, blueprint string) (*Blueprint, error)

	// ExportMethodABI returns the blueprint descriptor backing the given
	// component instance, or an error wrapping ErrNotFound.
	ExportMethodABI(component common.Address) (*Blueprint, error)
}
