// Package tx implements the transaction compiler: it turns high-level calls
// against on-ledger blueprints and components into a linear, replayable
// program of engine instructions, wiring the ownership-transfer instructions
// around each call from the callee's declared interface.
package tx

import "github.com/ores-network/gores/common"

// OpCode identifies an instruction kind on the wire.
type OpCode string

const (
	OpDeclareBucket     OpCode = "DECLARE_BUCKET"
	OpDeclareBucketRef  OpCode = "DECLARE_BUCKET_REF"
	OpTakeFromContext   OpCode = "TAKE_FROM_CONTEXT"
	OpBorrowFromContext OpCode = "BORROW_FROM_CONTEXT"
	OpCallFunction      OpCode = "CALL_FUNCTION"
	OpCallMethod        OpCode = "CALL_METHOD"
	OpDropAllBucketRefs OpCode = "DROP_ALL_BUCKET_REFS"
	OpDepositAllBuckets OpCode = "DEPOSIT_ALL_BUCKETS"
	OpEnd               OpCode = "END"
)

// Instruction is one operation of the closed engine instruction set.
type Instruction interface {
	Op() OpCode
}

// DeclareBucket reserves the next bucket id. The engine assigns bucket
// storage to declarations in program order, matching the builder-side
// allocator sequence.
type DeclareBucket struct{}

// DeclareBucketRef reserves the next bucket-ref id.
type DeclareBucketRef struct{}

// TakeFromContext moves resource from the transaction context into a
// previously declared bucket.
type TakeFromContext struct {
	Amount          common.Decimal `json:"amount"`
	ResourceAddress common.Address `json:"resource_address"`
	To              BucketID       `json:"to"`
}

// BorrowFromContext borrows resource from the transaction context into a
// previously declared bucket ref.
type BorrowFromContext struct {
	Amount          common.Decimal `json:"amount"`
	ResourceAddress common.Address `json:"resource_address"`
	To              BucketRefID    `json:"to"`
}

// CallFunction invokes a function of a blueprint with prepared arguments.
type CallFunction struct {
	PackageAddress common.Address `json:"package_address"`
	BlueprintName  string         `json:"blueprint_name"`
	Function       string         `json:"function"`
	Args           []Value        `json:"args"`
}

// CallMethod invokes a method on a component with prepared arguments.
type CallMethod struct {
	ComponentAddress common.Address `json:"component_address"`
	Method           string         `json:"method"`
	Args             []Value        `json:"args"`
}

// DropAllBucketRefs releases every bucket ref still held by the transaction.
type DropAllBucketRefs struct{}

// DepositAllBuckets deposits every remaining bucket into an account.
type DepositAllBuckets struct {
	Account common.Address `json:"account"`
}

// End terminates the program and names its signers. It is always the last
// instruction.
type End struct {
	Signers []common.Address `json:"signers"`
}

func (DeclareBucket) Op() OpCode     { return OpDeclareBucket }
func (DeclareBucketRef) Op() OpCode  { return OpDeclareBucketRef }
func (TakeFromContext) Op() OpCode   { return OpTakeFromContext }
func (BorrowFromContext) Op() OpCode { return OpBorrowFromContext }
func (CallFunction) Op() OpCode      { return OpCallFunction }
func (CallMethod) Op() OpCode        { return OpCallMethod }
func (DropAllBucketRefs) Op() OpCode { return OpDropAllBucketRefs }
func (DepositAllBuckets) Op() OpCode { return OpDepositAllBuckets }
func (End) Op() OpCode               { return OpEnd }

// Transaction is a finalized, ordered instruction program. Order is
// semantically load-bearing: declarations precede first use and End is last.
type Transaction struct {
	Instructions []Instruction
}
