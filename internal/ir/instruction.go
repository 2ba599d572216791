// SPDX-License-Identifier: Apache-2.0
package ir

import "math/big"

// InstID identifies an Instruction within its owning Function, assigned in
// construction order. Like Value, it is an opaque handle rather than a
// pointer.
type InstID uint32

// Instruction is the single generic representation for every non-terminator
// operation in the instruction universe. Rather than one Go struct per
// opcode, one shape carries every opcode's payload in optional fields: a
// fixed struct tagged by Opcode, with unused fields left zero. Nothing
// checks which fields are legal for which opcode (validate.go does not);
// callers should prefer the Builder, which only ever produces
// well-formed combinations.
type Instruction struct {
	ID    InstID
	Op    Opcode
	Block BlockID

	// Results are the Values this instruction defines, in order. Most
	// opcodes define exactly one; OpCall/OpExternCall may define zero or more
	// to match the callee's return arity.
	Results     []Value
	ResultTypes []Type

	// Operands are the Value inputs, in opcode-defined order (e.g. for
	// OpAdd: [lhs, rhs]; for OpKeyedStorageStore: [key, newValue]).
	Operands []Value

	Imm Immediate
}

// Immediate bundles every opcode-specific non-Value payload. Only the
// fields relevant to Op are meaningful; stray fields are ignored, not
// rejected.
type Immediate struct {
	// Storage access.
	Slot     uint64 // OpStorageLoad/OpStorageStore/OpPackedLoad/OpPackedStore: the slot
	BaseSlot uint64 // OpKeyedStorageLoad/OpKeyedStorageStore/OpStorageSlotAddr/OpArray*/OpStructField*: the base slot

	// OpStructFieldLoad/OpStructFieldStore: byte offset of the field within
	// the struct's base slot (StorageLocation::StructField).
	FieldOffset uint8

	// OpPackedLoad/OpPackedStore: bit offset/size of the sub-slot value
	// within its slot (StorageLocation::Packed).
	PackedOffset uint8
	PackedSize   uint8

	// Checked arithmetic: block to branch to on overflow/underflow.
	RevertTarget BlockID

	// Conversion.
	FromWidth int
	ToWidth   int

	// Calls.
	Callee     string // OpCall: function name within the same contract
	CalleeAddr Value  // OpExternCall: operand holding the target address (also present in Operands[0])

	// Events.
	EventName string

	// require/revert-style diagnostics.
	RevertCode uint32

	// Constant materialization (OpConstant).
	Const ConstantValue

	// ABI encoding selects which encoder the backend should use; kept
	// symbolic here since the core never lowers to bytes itself.
	AbiSelector string
}

// NewImmConstant is a convenience constructor used by the builder when
// folding a constant into an OpConstant instruction.
func NewImmConstant(v ConstantValue) Immediate { return Immediate{Const: v} }

// BigUint is a convenience for building the *big.Int payload of an integer
// ConstantValue from a plain int64,
// used pervasively by tests and the textual parser.
func BigUint(n int64) *big.Int { return big.NewInt(n) }
