// SPDX-License-Identifier: Apache-2.0
package ir

import "math/big"

// Value is an opaque, per-function handle into a Function's value table.
// It carries no data itself — unlike the AST-era *Value pointer pattern,
// a Value is comparable with == and safe to use as a map key, the way
// an SSA builder hands out Value handles from an allocator rather
// than pointers into a mutable struct.
type Value uint32

// InvalidValue is the zero handle; no real value is ever allocated at index 0.
const InvalidValue Value = 0

// ValueKind classifies how a Value's defining site should be interpreted.
type ValueKind int

const (
	ValueKindParameter ValueKind = iota
	ValueKindBlockParameter
	ValueKindTemporary
	ValueKindConstant
)

// ValueData is the record a Function keeps for each Value it has allocated.
// Parameter and BlockParameter values are defined implicitly by their
// position; Temporary values are defined by exactly one Instruction result
// slot; Constant values carry their literal directly.
type ValueData struct {
	Kind ValueKind
	Type Type

	// Parameter: index into Function.Params.
	// BlockParameter: index into the owning BasicBlock.Params.
	ParamIndex int
	Block      BlockID // BlockParameter: owning block

	// Temporary: the instruction that defines it and which result slot.
	DefInst   InstID
	ResultIdx int

	// Constant: the literal payload.
	Const ConstantValue
}

// ConstantKind is the closed set of literal forms a Constant value can take.
type ConstantKind int

const (
	ConstKindUint ConstantKind = iota
	ConstKindInt
	ConstKindBool
	ConstKindAddress
	ConstKindBytes
)

// ConstantValue is the literal payload of a constant Value. Integer
// constants use math/big so widths up to 256 bits round-trip exactly; no
// pack example vendors a dedicated uint256 type, so arbitrary-precision
// stdlib integers are the constant representation (see DESIGN.md).
type ConstantValue struct {
	Kind    ConstantKind
	Int     *big.Int
	Bool    bool
	Address [20]byte
	Bytes   []byte
}

func ConstUint(v *big.Int) ConstantValue { return ConstantValue{Kind: ConstKindUint, Int: v} }
func ConstInt(v *big.Int) ConstantValue  { return ConstantValue{Kind: ConstKindInt, Int: v} }
func ConstBool(v bool) ConstantValue     { return ConstantValue{Kind: ConstKindBool, Bool: v} }
func ConstAddress(a [20]byte) ConstantValue {
	return ConstantValue{Kind: ConstKindAddress, Address: a}
}
func ConstBytes(b []byte) ConstantValue { return ConstantValue{Kind: ConstKindBytes, Bytes: b} }

func (c ConstantValue) Equal(o ConstantValue) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case ConstKindUint, ConstKindInt:
		return c.Int.Cmp(o.Int) == 0
	case ConstKindBool:
		return c.Bool == o.Bool
	case ConstKindAddress:
		return c.Address == o.Address
	case ConstKindBytes:
		if len(c.Bytes) != len(o.Bytes) {
			return false
		}
		for i := range c.Bytes {
			if c.Bytes[i] != o.Bytes[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}
