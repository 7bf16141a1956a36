package tx

import (
	"errors"
	"testing"

	"github.com/ores-network/gores/abi"
	"github.com/ores-network/gores/common"
	"github.com/ores-network/gores/ledger"
	"github.com/ores-network/gores/params"
	"github.com/ores-network/gores/resource"
)

var (
	testPackage   = common.NewAddress(common.AddressKindPackage, [common.AddressBodyLength]byte{0x01})
	testComponent = common.NewAddress(common.AddressKindComponent, [common.AddressBodyLength]byte{0x02})
	testAccount   = common.NewAddress(common.AddressKindComponent, [common.AddressBodyLength]byte{0x03})
	testBadge     = common.NewAddress(common.AddressKindResource, [common.AddressBodyLength]byte{0x7b})
	testKey       = common.NewAddress(common.AddressKindPublicKey, [common.AddressBodyLength]byte{0x09})
)

func newTestProvider(t *testing.T) *ledger.Store {
	t.Helper()
	store, err := ledger.OpenMemory()
	if err != nil {
		t.Fatalf("failed to open memory ledger: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	bp := &abi.Blueprint{
		Name: "GumballMachine",
		Functions: []abi.Function{
			{Name: "new", Inputs: []abi.Type{abi.Custom(abi.CustomDecimal), abi.Custom(abi.CustomBucket)}},
			{Name: "instantiate_empty", Inputs: nil},
			{Name: "describe", Inputs: []abi.Type{abi.Primitive(abi.KindString), abi.Primitive(abi.KindU32)}},
		},
		Methods: []abi.Method{
			{Name: "buy_gumball", Inputs: []abi.Type{abi.Custom(abi.CustomBucket)}},
			{Name: "present_badge", Inputs: []abi.Type{abi.Custom(abi.CustomBucketRef)}},
			{Name: "set_price", Inputs: []abi.Type{abi.Custom(abi.CustomDecimal)}},
		},
	}
	if err := store.PutBlueprint(testPackage, bp); err != nil {
		t.Fatalf("failed to register blueprint: %v", err)
	}
	if err := store.PutComponent(testComponent, testPackage, "GumballMachine"); err != nil {
		t.Fatalf("failed to register component: %v", err)
	}
	return store
}

func mustBuild(t *testing.T, b *Builder) *Transaction {
	t.Helper()
	txn, err := b.Build([]common.Address{testKey})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return txn
}

func TestCallFunctionBindsBucketArgument(t *testing.T) {
	b := NewBuilder(newTestProvider(t))
	b.CallFunction(testPackage, "GumballMachine", "new", []string{"10", "5," + testToken.String()}, nil)
	txn := mustBuild(t, b)

	if len(txn.Instructions) != 4 {
		t.Fatalf("instruction count mismatch: have %d want 4", len(txn.Instructions))
	}
	if _, ok := txn.Instructions[0].(DeclareBucket); !ok {
		t.Fatalf("instruction 0: have %T want DeclareBucket", txn.Instructions[0])
	}
	take, ok := txn.Instructions[1].(TakeFromContext)
	if !ok {
		t.Fatalf("instruction 1: have %T want TakeFromContext", txn.Instructions[1])
	}
	if !take.Amount.Equal(common.NewDecimal(5)) || take.ResourceAddress != testToken || take.To != 0 {
		t.Fatalf("unexpected take instruction: %+v", take)
	}
	call, ok := txn.Instructions[2].(CallFunction)
	if !ok {
		t.Fatalf("instruction 2: have %T want CallFunction", txn.Instructions[2])
	}
	if call.PackageAddress != testPackage || call.BlueprintName != "GumballMachine" || call.Function != "new" {
		t.Fatalf("unexpected call target: %+v", call)
	}
	if len(call.Args) != 2 {
		t.Fatalf("arg count mismatch: have %d want 2", len(call.Args))
	}
	if d := call.Args[0].Interface().(common.Decimal); !d.Equal(common.NewDecimal(10)) {
		t.Fatalf("arg 0 mismatch: have %s want 10", d)
	}
	if id := call.Args[1].Interface().(BucketID); id != 0 {
		t.Fatalf("arg 1 mismatch: have bucket %d want 0", id)
	}
	end, ok := txn.Instructions[3].(End)
	if !ok {
		t.Fatalf("instruction 3: have %T want End", txn.Instructions[3])
	}
	if len(end.Signers) != 1 || end.Signers[0] != testKey {
		t.Fatalf("unexpected signers: %v", end.Signers)
	}
}

func TestCallFunctionWithAccountWithdrawsFirst(t *testing.T) {
	b := NewBuilder(newTestProvider(t))
	b.CallFunction(testPackage, "GumballMachine", "new", []string{"10", "5," + testToken.String()}, &testAccount)
	txn := mustBuild(t, b)

	// DeclareBucket, withdraw, take, call, end
	if len(txn.Instructions) != 5 {
		t.Fatalf("instruction count mismatch: have %d want 5", len(txn.Instructions))
	}
	withdraw, ok := txn.Instructions[1].(CallMethod)
	if !ok {
		t.Fatalf("instruction 1: have %T want CallMethod", txn.Instructions[1])
	}
	if withdraw.ComponentAddress != testAccount || withdraw.Method != params.WithdrawMethod {
		t.Fatalf("unexpected withdraw: %+v", withdraw)
	}
	if d := withdraw.Args[0].Interface().(common.Decimal); !d.Equal(common.NewDecimal(5)) {
		t.Fatalf("withdraw amount mismatch: have %s want 5", d)
	}
	if a := withdraw.Args[1].Interface().(common.Address); a != testToken {
		t.Fatalf("withdraw resource mismatch: have %s", a)
	}
	if _, ok := txn.Instructions[2].(TakeFromContext); !ok {
		t.Fatalf("instruction 2: have %T want TakeFromContext", txn.Instructions[2])
	}
}

func TestCallMethodBindsBucketRef(t *testing.T) {
	b := NewBuilder(newTestProvider(t))
	b.CallMethod(testComponent, "present_badge", []string{"1," + testBadge.String()}, nil)
	txn := mustBuild(t, b)

	if _, ok := txn.Instructions[0].(DeclareBucketRef); !ok {
		t.Fatalf("instruction 0: have %T want DeclareBucketRef", txn.Instructions[0])
	}
	borrow, ok := txn.Instructions[1].(BorrowFromContext)
	if !ok {
		t.Fatalf("instruction 1: have %T want BorrowFromContext", txn.Instructions[1])
	}
	if borrow.To != 0 || borrow.ResourceAddress != testBadge {
		t.Fatalf("unexpected borrow: %+v", borrow)
	}
	call := txn.Instructions[2].(CallMethod)
	if id := call.Args[0].Interface().(BucketRefID); id != 0 {
		t.Fatalf("arg mismatch: have ref %d want 0", id)
	}
}

func TestNonFungibleWithdrawUsesSortedIds(t *testing.T) {
	b := NewBuilder(newTestProvider(t))
	b.CallMethod(testComponent, "buy_gumball", []string{"#9,#2," + testToken.String()}, &testAccount)
	txn := mustBuild(t, b)

	withdraw := txn.Instructions[1].(CallMethod)
	if withdraw.Method != params.WithdrawNftsMethod {
		t.Fatalf("method mismatch: have %q want %q", withdraw.Method, params.WithdrawNftsMethod)
	}
	ids := withdraw.Args[0].Interface().([]common.NftID)
	if len(ids) != 2 || ids[0] != common.NftIDFromUint64(2) || ids[1] != common.NftIDFromUint64(9) {
		t.Fatalf("unexpected id order: %v", ids)
	}
	take := txn.Instructions[2].(TakeFromContext)
	if !take.Amount.Equal(common.NewDecimal(2)) {
		t.Fatalf("take amount mismatch: have %s want 2", take.Amount)
	}
}

func TestMissingArgument(t *testing.T) {
	b := NewBuilder(newTestProvider(t))
	b.CallFunction(testPackage, "GumballMachine", "new", []string{"10"}, nil)
	_, err := b.Build(nil)
	var missing *MissingArgumentError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingArgumentError, got %v", err)
	}
	if missing.Index != 1 || missing.Type != abi.Custom(abi.CustomBucket) {
		t.Fatalf("unexpected error detail: %+v", missing)
	}
}

func TestUnparsableArgument(t *testing.T) {
	b := NewBuilder(newTestProvider(t))
	b.CallFunction(testPackage, "GumballMachine", "describe", []string{"gumball", "not-a-number"}, nil)
	_, err := b.Build(nil)
	var parse *ParseArgumentError
	if !errors.As(err, &parse) {
		t.Fatalf("expected ParseArgumentError, got %v", err)
	}
	if parse.Index != 1 || parse.Raw != "not-a-number" {
		t.Fatalf("unexpected error detail: %+v", parse)
	}
}

func TestFunctionAndMethodNotFound(t *testing.T) {
	b := NewBuilder(newTestProvider(t))
	b.CallFunction(testPackage, "GumballMachine", "nope", nil, nil)
	_, err := b.Build(nil)
	var fnErr *FunctionNotFoundError
	if !errors.As(err, &fnErr) {
		t.Fatalf("expected FunctionNotFoundError, got %v", err)
	}

	b = NewBuilder(newTestProvider(t))
	b.CallMethod(testComponent, "nope", nil, nil)
	_, err = b.Build(nil)
	var mErr *MethodNotFoundError
	if !errors.As(err, &mErr) {
		t.Fatalf("expected MethodNotFoundError, got %v", err)
	}
}

func TestUnknownCalleeWrapsNotFound(t *testing.T) {
	unknown := common.NewAddress(common.AddressKindPackage, [common.AddressBodyLength]byte{0xff})
	b := NewBuilder(newTestProvider(t))
	b.CallFunction(unknown, "Nothing", "new", nil, nil)
	_, err := b.Build(nil)
	var exportErr *ExportFunctionABIError
	if !errors.As(err, &exportErr) {
		t.Fatalf("expected ExportFunctionABIError, got %v", err)
	}
	if !errors.Is(err, abi.ErrNotFound) {
		t.Fatalf("expected wrapped abi.ErrNotFound, got %v", err)
	}
}

func TestFirstErrorWins(t *testing.T) {
	b := NewBuilder(newTestProvider(t))
	b.CallFunction(testPackage, "GumballMachine", "first_missing", nil, nil)
	b.CallFunction(testPackage, "GumballMachine", "second_missing", nil, nil)
	_, err := b.Build(nil)
	var fnErr *FunctionNotFoundError
	if !errors.As(err, &fnErr) {
		t.Fatalf("expected FunctionNotFoundError, got %v", err)
	}
	if fnErr.Name != "first_missing" {
		t.Fatalf("expected first error to win, got %q", fnErr.Name)
	}
	if got := len(b.Errors()); got != 2 {
		t.Fatalf("recorded error count mismatch: have %d want 2", got)
	}
}

func TestHoistingInvariant(t *testing.T) {
	b := NewBuilder(newTestProvider(t))
	b.CallMethod(testComponent, "present_badge", []string{"1," + testBadge.String()}, nil)
	b.CallFunction(testPackage, "GumballMachine", "new", []string{"10", "5," + testToken.String()}, &testAccount)
	b.Mint(common.NewDecimal(100), testToken, testBadge)
	b.DropAllBucketRefs()
	b.DepositAllBuckets(testAccount)
	txn := mustBuild(t, b)

	declarationsDone := false
	buckets, refs := 0, 0
	for i, inst := range txn.Instructions {
		switch inst.(type) {
		case DeclareBucket:
			if declarationsDone {
				t.Fatalf("instruction %d: declaration after body start", i)
			}
			buckets++
		case DeclareBucketRef:
			if declarationsDone {
				t.Fatalf("instruction %d: declaration after body start", i)
			}
			refs++
		default:
			declarationsDone = true
		}
	}
	if buckets != 1 || refs != 2 {
		t.Fatalf("declaration count mismatch: have %d buckets, %d refs", buckets, refs)
	}
	if _, ok := txn.Instructions[len(txn.Instructions)-1].(End); !ok {
		t.Fatalf("last instruction is %T, want End", txn.Instructions[len(txn.Instructions)-1])
	}
}

func TestBuildTwiceYieldsEquivalentPrograms(t *testing.T) {
	b := NewBuilder(newTestProvider(t))
	b.CallFunction(testPackage, "GumballMachine", "instantiate_empty", nil, nil)
	first := mustBuild(t, b)
	second := mustBuild(t, b)
	if len(first.Instructions) != len(second.Instructions) {
		t.Fatalf("program length mismatch: %d vs %d", len(first.Instructions), len(second.Instructions))
	}
	for i := range first.Instructions {
		if first.Instructions[i].Op() != second.Instructions[i].Op() {
			t.Fatalf("instruction %d op mismatch: %s vs %s", i, first.Instructions[i].Op(), second.Instructions[i].Op())
		}
	}
}

func TestMint(t *testing.T) {
	b := NewBuilder(newTestProvider(t))
	b.Mint(common.NewDecimal(100), testToken, testBadge)
	txn := mustBuild(t, b)

	if _, ok := txn.Instructions[0].(DeclareBucketRef); !ok {
		t.Fatalf("instruction 0: have %T want DeclareBucketRef", txn.Instructions[0])
	}
	borrow := txn.Instructions[1].(BorrowFromContext)
	if !borrow.Amount.Equal(common.NewDecimal(1)) || borrow.ResourceAddress != testBadge {
		t.Fatalf("unexpected borrow: %+v", borrow)
	}
	call := txn.Instructions[2].(CallFunction)
	if call.Function != params.MintFunction {
		t.Fatalf("function mismatch: have %q want %q", call.Function, params.MintFunction)
	}
	if id := call.Args[2].Interface().(BucketRefID); id != 0 {
		t.Fatalf("mint authority ref mismatch: have %d want 0", id)
	}
}

func TestNewAccountWithResource(t *testing.T) {
	b := NewBuilder(newTestProvider(t))
	b.NewAccountWithResource(testKey, common.NewDecimal(500), testToken)
	txn := mustBuild(t, b)

	if _, ok := txn.Instructions[0].(DeclareBucket); !ok {
		t.Fatalf("instruction 0: have %T want DeclareBucket", txn.Instructions[0])
	}
	take := txn.Instructions[1].(TakeFromContext)
	if !take.Amount.Equal(common.NewDecimal(500)) {
		t.Fatalf("take amount mismatch: have %s want 500", take.Amount)
	}
	call := txn.Instructions[2].(CallFunction)
	if call.PackageAddress != params.AccountPackage || call.Function != params.AccountWithBucketFunction {
		t.Fatalf("unexpected call target: %+v", call)
	}
	if id := call.Args[1].Interface().(BucketID); id != 0 {
		t.Fatalf("bucket arg mismatch: have %d want 0", id)
	}
}

func TestNewTokenShapes(t *testing.T) {
	b := NewBuilder(newTestProvider(t))
	b.NewTokenFixed(map[string]string{"symbol": "GUM"}, common.NewDecimal(1000))
	b.NewTokenMutable(map[string]string{"symbol": "MUT"}, testBadge)
	txn := mustBuild(t, b)

	fixed := txn.Instructions[0].(CallFunction)
	if fixed.Function != params.NewResourceFunction {
		t.Fatalf("function mismatch: have %q", fixed.Function)
	}
	if flags := fixed.Args[2].Interface().(uint16); flags != 0 {
		t.Fatalf("fixed supply flags mismatch: have %d want 0", flags)
	}
	supply := fixed.Args[5].Interface().(*resource.Supply)
	if supply == nil || supply.Fungible == nil || !supply.Fungible.Equal(common.NewDecimal(1000)) {
		t.Fatalf("unexpected fixed supply: %+v", supply)
	}

	mutable := txn.Instructions[1].(CallFunction)
	if flags := mutable.Args[2].Interface().(uint16); flags != resource.FlagMintable|resource.FlagBurnable {
		t.Fatalf("mutable flags mismatch: have %d", flags)
	}
	auth := mutable.Args[4].Interface().(map[common.Address]uint16)
	if auth[testBadge] != resource.PermMayMint|resource.PermMayBurn {
		t.Fatalf("authority mismatch: %v", auth)
	}
	if s := mutable.Args[5].Interface().(*resource.Supply); s != nil {
		t.Fatalf("mutable supply should be nil, have %+v", s)
	}
}

func TestBuilderUsableAfterFailure(t *testing.T) {
	b := NewBuilder(newTestProvider(t))
	b.CallFunction(testPackage, "GumballMachine", "nope", nil, nil)
	b.CallFunction(testPackage, "GumballMachine", "instantiate_empty", nil, nil)
	if got := len(b.Errors()); got != 1 {
		t.Fatalf("error count mismatch: have %d want 1", got)
	}
	if _, err := b.Build(nil); err == nil {
		t.Fatalf("expected build to fail")
	}
}
