package tx

import (
	"math/big"
	"strconv"

	"github.com/ores-network/gores/abi"
	"github.com/ores-network/gores/common"
	"github.com/ores-network/gores/params"
	"github.com/ores-network/gores/resource"
)

// Config names the fixed-address regime the builder targets. Defaults come
// from params; tests may substitute alternate addresses.
type Config struct {
	SystemPackage  common.Address
	AccountPackage common.Address
}

// DefaultConfig returns the protocol's fixed-address regime.
func DefaultConfig() Config {
	return Config{
		SystemPackage:  params.SystemPackage,
		AccountPackage: params.AccountPackage,
	}
}

// Builder compiles a sequence of high-level calls into an instruction
// program. Every mutator returns the builder for chaining and stays safe to
// call after a prior failure: errors are recorded, not raised, and Build
// surfaces the first one. Declaration instructions accumulate separately from
// the body so they can be hoisted to the front of the finalized program
// without disturbing either emission order.
//
// A Builder is single-threaded; it owns its allocator and is not safe for
// concurrent use.
type Builder struct {
	provider     abi.Provider
	cfg          Config
	allocator    *IDAllocator
	reservations []Instruction
	instructions []Instruction
	errs         []error
}

// NewBuilder starts a builder against the default fixed-address regime.
func NewBuilder(provider abi.Provider) *Builder {
	return NewBuilderWithConfig(provider, DefaultConfig())
}

// NewBuilderWithConfig starts a builder with an explicit address regime.
func NewBuilderWithConfig(provider abi.Provider, cfg Config) *Builder {
	return &Builder{
		provider:  provider,
		cfg:       cfg,
		allocator: NewIDAllocator(),
	}
}

// AddInstruction appends a raw instruction to the program body.
func (b *Builder) AddInstruction(inst Instruction) *Builder {
	b.instructions = append(b.instructions, inst)
	return b
}

// DeclareBucket reserves a bucket id and invokes then, which is expected to
// emit the instruction(s) that fill the bucket.
func (b *Builder) DeclareBucket(then func(*Builder, BucketID) *Builder) *Builder {
	id := b.allocator.NewBucketID()
	b.reservations = append(b.reservations, DeclareBucket{})
	return then(b, id)
}

// DeclareBucketRef reserves a bucket-ref id and invokes then, which is
// expected to emit the instruction(s) that fill the ref.
func (b *Builder) DeclareBucketRef(then func(*Builder, BucketRefID) *Builder) *Builder {
	id := b.allocator.NewBucketRefID()
	b.reservations = append(b.reservations, DeclareBucketRef{})
	return then(b, id)
}

// TakeFromContext fills a declared bucket from the transaction context.
func (b *Builder) TakeFromContext(amount common.Decimal, resourceAddress common.Address, to BucketID) *Builder {
	return b.AddInstruction(TakeFromContext{
		Amount:          amount,
		ResourceAddress: resourceAddress,
		To:              to,
	})
}

// BorrowFromContext fills a declared bucket ref from the transaction context.
func (b *Builder) BorrowFromContext(amount common.Decimal, resourceAddress common.Address, to BucketRefID) *Builder {
	return b.AddInstruction(BorrowFromContext{
		Amount:          amount,
		ResourceAddress: resourceAddress,
		To:              to,
	})
}

// CallFunction compiles a function call. The arguments are prepared from the
// function's declared ABI, including resource buckets and bucket refs. If an
// account address is supplied, resources are withdrawn from that account
// first; otherwise they are taken from the transaction context.
func (b *Builder) CallFunction(pkg common.Address, blueprint, function string, args []string, account *common.Address) *Builder {
	bp, err := b.provider.ExportFunctionABI(pkg, blueprint)
	if err != nil {
		b.errs = append(b.errs, &ExportFunctionABIError{Package: pkg, Blueprint: blueprint, Function: function, Err: err})
		return b
	}
	fn, ok := bp.Function(function)
	if !ok {
		b.errs = append(b.errs, &FunctionNotFoundError{Name: function})
		return b
	}
	values, err := b.prepareArgs(fn.Inputs, args, account)
	if err != nil {
		b.errs = append(b.errs, &BuildArgsError{Err: err})
		return b
	}
	return b.AddInstruction(CallFunction{
		PackageAddress: pkg,
		BlueprintName:  blueprint,
		Function:       function,
		Args:           values,
	})
}

// CallMethod compiles a method call, symmetric to CallFunction but resolved
// through component introspection.
func (b *Builder) CallMethod(component common.Address, method string, args []string, account *common.Address) *Builder {
	bp, err := b.provider.ExportMethodABI(component)
	if err != nil {
		b.errs = append(b.errs, &ExportMethodABIError{Component: component, Method: method, Err: err})
		return b
	}
	m, ok := bp.Method(method)
	if !ok {
		b.errs = append(b.errs, &MethodNotFoundError{Name: method})
		return b
	}
	values, err := b.prepareArgs(m.Inputs, args, account)
	if err != nil {
		b.errs = append(b.errs, &BuildArgsError{Err: err})
		return b
	}
	return b.AddInstruction(CallMethod{
		ComponentAddress: component,
		Method:           method,
		Args:             values,
	})
}

// DropAllBucketRefs releases every bucket ref held by the transaction.
func (b *Builder) DropAllBucketRefs() *Builder {
	return b.AddInstruction(DropAllBucketRefs{})
}

// DepositAllBuckets deposits every remaining bucket into an account.
func (b *Builder) DepositAllBuckets(account common.Address) *Builder {
	return b.AddInstruction(DepositAllBuckets{Account: account})
}

// Errors returns every construction-time failure recorded so far, in order.
func (b *Builder) Errors() []error {
	return append([]error(nil), b.errs...)
}

// Build finalizes the program: reservations first, then the body, then End.
// If any call failed, the first recorded error is returned. Build does not
// reset the builder; building again without further calls yields an
// equivalent program.
func (b *Builder) Build(signers []common.Address) (*Transaction, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	program := make([]Instruction, 0, len(b.reservations)+len(b.instructions)+1)
	program = append(program, b.reservations...)
	program = append(program, b.instructions...)
	program = append(program, End{Signers: append([]common.Address(nil), signers...)})
	return &Transaction{Instructions: program}, nil
}

// PublishPackage publishes raw package code through the System blueprint.
func (b *Builder) PublishPackage(code []byte) *Builder {
	return b.AddInstruction(CallFunction{
		PackageAddress: b.cfg.SystemPackage,
		BlueprintName:  params.SystemBlueprint,
		Function:       params.PublishPackageFunction,
		Args:           []Value{BytesValue(code)},
	})
}

func (b *Builder) newResource(p resource.CreateParams) *Builder {
	return b.AddInstruction(CallFunction{
		PackageAddress: b.cfg.SystemPackage,
		BlueprintName:  params.SystemBlueprint,
		Function:       params.NewResourceFunction,
		Args: []Value{
			ResourceTypeValue(p.Type),
			StringMapValue(p.Metadata),
			U16Value(p.Flags),
			U16Value(p.InitialPermissions),
			AuthorityMapValue(p.Authorities),
			SupplyValue(p.Supply),
		},
	})
}

func resourceBuilder(metadata map[string]string) *resource.Builder {
	rb := resource.NewBuilder()
	for name, value := range metadata {
		rb.Metadata(name, value)
	}
	return rb
}

// NewTokenMutable creates a token resource whose supply is governed by the
// given mint badge.
func (b *Builder) NewTokenMutable(metadata map[string]string, mintBadge common.Address) *Builder {
	return b.newResource(resourceBuilder(metadata).NewTokenMutable(mintBadge))
}

// NewTokenFixed creates a token resource with a fixed initial supply.
func (b *Builder) NewTokenFixed(metadata map[string]string, initialSupply common.Decimal) *Builder {
	return b.newResource(resourceBuilder(metadata).NewTokenFixed(initialSupply))
}

// NewBadgeMutable creates a badge resource whose supply is governed by the
// given mint badge.
func (b *Builder) NewBadgeMutable(metadata map[string]string, mintBadge common.Address) *Builder {
	return b.newResource(resourceBuilder(metadata).NewBadgeMutable(mintBadge))
}

// NewBadgeFixed creates a badge resource with a fixed initial supply.
func (b *Builder) NewBadgeFixed(metadata map[string]string, initialSupply common.Decimal) *Builder {
	return b.newResource(resourceBuilder(metadata).NewBadgeFixed(initialSupply))
}

// NewNftMutable creates a non-fungible resource whose supply is governed by
// the given mint badge.
func (b *Builder) NewNftMutable(metadata map[string]string, mintBadge common.Address) *Builder {
	return b.newResource(resourceBuilder(metadata).NewNftMutable(mintBadge))
}

// NewNftFixed creates a non-fungible resource with a fixed set of units.
func (b *Builder) NewNftFixed(metadata map[string]string, entries map[common.NftID][]byte) *Builder {
	return b.newResource(resourceBuilder(metadata).NewNftFixed(entries))
}

// Mint mints resource, proving authority by borrowing one mint badge from
// the transaction context.
func (b *Builder) Mint(amount common.Decimal, resourceAddress, mintBadge common.Address) *Builder {
	return b.DeclareBucketRef(func(b *Builder, rid BucketRefID) *Builder {
		b.BorrowFromContext(common.NewDecimal(1), mintBadge, rid)
		return b.AddInstruction(CallFunction{
			PackageAddress: b.cfg.SystemPackage,
			BlueprintName:  params.SystemBlueprint,
			Function:       params.MintFunction,
			Args: []Value{
				DecimalValue(amount),
				AddressValue(resourceAddress),
				BucketRefValue(rid),
			},
		})
	})
}

// NewAccount creates an account owned by the given public key.
func (b *Builder) NewAccount(key common.Address) *Builder {
	return b.AddInstruction(CallFunction{
		PackageAddress: b.cfg.AccountPackage,
		BlueprintName:  params.AccountBlueprint,
		Function:       params.NewAccountFunction,
		Args:           []Value{AddressValue(key)},
	})
}

// NewAccountWithResource creates an account funded with resource taken from
// the transaction context. The context must already hold the resource.
func (b *Builder) NewAccountWithResource(key common.Address, amount common.Decimal, resourceAddress common.Address) *Builder {
	return b.DeclareBucket(func(b *Builder, bid BucketID) *Builder {
		b.TakeFromContext(amount, resourceAddress, bid)
		return b.AddInstruction(CallFunction{
			PackageAddress: b.cfg.AccountPackage,
			BlueprintName:  params.AccountBlueprint,
			Function:       params.AccountWithBucketFunction,
			Args:           []Value{AddressValue(key), BucketValue(bid)},
		})
	})
}

// WithdrawFromAccount withdraws the specified resource from an account into
// the transaction context.
func (b *Builder) WithdrawFromAccount(spec *ResourceAmount, account common.Address) *Builder {
	if spec.IsFungible() {
		return b.AddInstruction(CallMethod{
			ComponentAddress: account,
			Method:           params.WithdrawMethod,
			Args: []Value{
				DecimalValue(spec.Amount()),
				AddressValue(spec.ResourceAddress()),
			},
		})
	}
	return b.AddInstruction(CallMethod{
		ComponentAddress: account,
		Method:           params.WithdrawNftsMethod,
		Args: []Value{
			NftIDSetValue(spec.NftIDs()),
			AddressValue(spec.ResourceAddress()),
		},
	})
}

// prepareArgs coerces the raw string arguments against the declared parameter
// types, in positional order. Coercion is all-or-nothing per call: the first
// failing parameter aborts the call, though instructions already emitted for
// earlier resource parameters are not rolled back.
func (b *Builder) prepareArgs(inputs []abi.Type, args []string, account *common.Address) ([]Value, error) {
	values := make([]Value, 0, len(inputs))
	for i, t := range inputs {
		if i >= len(args) {
			return nil, &MissingArgumentError{Index: i, Type: t}
		}
		value, err := b.prepareArg(i, t, args[i], account)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, nil
}

func (b *Builder) prepareArg(i int, t abi.Type, raw string, account *common.Address) (Value, error) {
	switch t.Kind {
	case abi.KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Value{}, &ParseArgumentError{Index: i, Type: t, Raw: raw, Err: err}
		}
		return BoolValue(v), nil
	case abi.KindI8:
		n, err := strconv.ParseInt(raw, 10, 8)
		if err != nil {
			return Value{}, &ParseArgumentError{Index: i, Type: t, Raw: raw, Err: err}
		}
		return I8Value(int8(n)), nil
	case abi.KindI16:
		n, err := strconv.ParseInt(raw, 10, 16)
		if err != nil {
			return Value{}, &ParseArgumentError{Index: i, Type: t, Raw: raw, Err: err}
		}
		return I16Value(int16(n)), nil
	case abi.KindI32:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return Value{}, &ParseArgumentError{Index: i, Type: t, Raw: raw, Err: err}
		}
		return I32Value(int32(n)), nil
	case abi.KindI64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, &ParseArgumentError{Index: i, Type: t, Raw: raw, Err: err}
		}
		return I64Value(n), nil
	case abi.KindI128:
		n, err := parseBigInt(raw, true)
		if err != nil {
			return Value{}, &ParseArgumentError{Index: i, Type: t, Raw: raw, Err: err}
		}
		return I128Value(n), nil
	case abi.KindU8:
		n, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return Value{}, &ParseArgumentError{Index: i, Type: t, Raw: raw, Err: err}
		}
		return U8Value(uint8(n)), nil
	case abi.KindU16:
		n, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return Value{}, &ParseArgumentError{Index: i, Type: t, Raw: raw, Err: err}
		}
		return U16Value(uint16(n)), nil
	case abi.KindU32:
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return Value{}, &ParseArgumentError{Index: i, Type: t, Raw: raw, Err: err}
		}
		return U32Value(uint32(n)), nil
	case abi.KindU64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return Value{}, &ParseArgumentError{Index: i, Type: t, Raw: raw, Err: err}
		}
		return U64Value(n), nil
	case abi.KindU128:
		n, err := parseBigInt(raw, false)
		if err != nil {
			return Value{}, &ParseArgumentError{Index: i, Type: t, Raw: raw, Err: err}
		}
		return U128Value(n), nil
	case abi.KindString:
		return StringValue(raw), nil
	case abi.KindCustom:
		return b.prepareCustomArg(i, t, raw, account)
	default:
		return Value{}, &UnsupportedTypeError{Index: i, Type: t}
	}
}

// prepareCustomArg materializes the named custom kinds. Bucket and BucketRef
// parameters drive resource binding: the raw argument is parsed as a resource
// amount, optionally withdrawn from the supplied account, and bound to a
// freshly declared container whose forward reference becomes the argument.
func (b *Builder) prepareCustomArg(i int, t abi.Type, raw string, account *common.Address) (Value, error) {
	switch t.Name {
	case abi.CustomDecimal:
		d, err := common.ParseDecimal(raw)
		if err != nil {
			return Value{}, &ParseArgumentError{Index: i, Type: t, Raw: raw, Err: err}
		}
		return DecimalValue(d), nil
	case abi.CustomBigDecimal:
		d, err := common.ParseBigDecimal(raw)
		if err != nil {
			return Value{}, &ParseArgumentError{Index: i, Type: t, Raw: raw, Err: err}
		}
		return BigDecimalValue(d), nil
	case abi.CustomAddress:
		a, err := common.ParseAddress(raw)
		if err != nil {
			return Value{}, &ParseArgumentError{Index: i, Type: t, Raw: raw, Err: err}
		}
		return AddressValue(a), nil
	case abi.CustomHash:
		h, err := common.ParseHash(raw)
		if err != nil {
			return Value{}, &ParseArgumentError{Index: i, Type: t, Raw: raw, Err: err}
		}
		return HashValue(h), nil
	case abi.CustomBucket:
		spec, err := ParseResourceAmount(raw)
		if err != nil {
			return Value{}, &ParseArgumentError{Index: i, Type: t, Raw: raw, Err: err}
		}
		if account != nil {
			b.WithdrawFromAccount(spec, *account)
		}
		var created BucketID
		b.DeclareBucket(func(b *Builder, bid BucketID) *Builder {
			created = bid
			return b.TakeFromContext(spec.Amount(), spec.ResourceAddress(), bid)
		})
		return BucketValue(created), nil
	case abi.CustomBucketRef:
		spec, err := ParseResourceAmount(raw)
		if err != nil {
			return Value{}, &ParseArgumentError{Index: i, Type: t, Raw: raw, Err: err}
		}
		if account != nil {
			b.WithdrawFromAccount(spec, *account)
		}
		var created BucketRefID
		b.DeclareBucketRef(func(b *Builder, rid BucketRefID) *Builder {
			created = rid
			return b.BorrowFromContext(spec.Amount(), spec.ResourceAddress(), rid)
		})
		return BucketRefValue(created), nil
	default:
		return Value{}, &UnsupportedTypeError{Index: i, Type: t}
	}
}

var (
	i128Max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	i128Min = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	u128Max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

func parseBigInt(raw string, signed bool) (*big.Int, error) {
	n, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, strconv.ErrSyntax
	}
	if signed {
		if n.Cmp(i128Min) < 0 || n.Cmp(i128Max) > 0 {
			return nil, strconv.ErrRange
		}
	} else {
		if n.Sign() < 0 || n.Cmp(u128Max) > 0 {
			return nil, strconv.ErrRange
		}
	}
	return n, nil
}
