package tx

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidProgram is returned when bytes cannot be decoded as a program.
var ErrInvalidProgram = errors.New("tx: invalid program encoding")

// instructionEnvelope is the wire form of one instruction: an op tag and the
// op-specific payload.
type instructionEnvelope struct {
	Op      OpCode          `json:"op"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// EncodeTransaction serializes a finalized program to JSON.
func EncodeTransaction(t *Transaction) ([]byte, error) {
	envelopes := make([]instructionEnvelope, 0, len(t.Instructions))
	for _, inst := range t.Instructions {
		env := instructionEnvelope{Op: inst.Op()}
		switch inst.(type) {
		case DeclareBucket, DeclareBucketRef, DropAllBucketRefs:
			// no payload
		default:
			payload, err := json.Marshal(inst)
			if err != nil {
				return nil, err
			}
			env.Payload = payload
		}
		envelopes = append(envelopes, env)
	}
	return json.Marshal(envelopes)
}

// DecodeTransaction parses a program previously produced by
// EncodeTransaction.
func DecodeTransaction(data []byte) (*Transaction, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrInvalidProgram)
	}
	var envelopes []instructionEnvelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProgram, err)
	}
	instructions := make([]Instruction, 0, len(envelopes))
	for i, env := range envelopes {
		inst, err := decodeInstruction(env)
		if err != nil {
			return nil, fmt.Errorf("%w: instruction %d: %v", ErrInvalidProgram, i, err)
		}
		instructions = append(instructions, inst)
	}
	return &Transaction{Instructions: instructions}, nil
}

func decodeInstruction(env instructionEnvelope) (Instruction, error) {
	switch env.Op {
	case OpDeclareBucket:
		return DeclareBucket{}, nil
	case OpDeclareBucketRef:
		return DeclareBucketRef{}, nil
	case OpDropAllBucketRefs:
		return DropAllBucketRefs{}, nil
	case OpTakeFromContext:
		return decodePayload[TakeFromContext](env.Payload)
	case OpBorrowFromContext:
		return decodePayload[BorrowFromContext](env.Payload)
	case OpCallFunction:
		return decodePayload[CallFunction](env.Payload)
	case OpCallMethod:
		return decodePayload[CallMethod](env.Payload)
	case OpDepositAllBuckets:
		return decodePayload[DepositAllBuckets](env.Payload)
	case OpEnd:
		return decodePayload[End](env.Payload)
	default:
		return nil, fmt.Errorf("unknown op %q", env.Op)
	}
}

func decodePayload[T Instruction](payload json.RawMessage) (Instruction, error) {
	var inst T
	if len(payload) == 0 {
		return nil, errors.New("missing payload")
	}
	if err := json.Unmarshal(payload, &inst); err != nil {
		return nil, err
	}
	return inst, nil
}
