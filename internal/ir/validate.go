// SPDX-License-Identifier: Apache-2.0
package ir

import (
	"fmt"

	"conir/internal/koerrors"
)

// Validate checks every contract in the registry against the structural
// structural invariants this IR must hold, accumulating every violation it finds
// rather than stopping at the first, following an accumulate-then-report
// shape.
func (r *Registry) Validate() *koerrors.ValidationError {
	v := &koerrors.ValidationError{}
	for _, c := range r.Contracts() {
		validateContract(c, v)
	}
	return v
}

// validateContract flags only storage slots that actually overlap: two
// whole-slot declarations sharing a slot number collide outright, but two
// packed sub-slot declarations at the same slot number are the intended
// bit-packing layout and only collide if their bit ranges intersect
// (StorageSlot.overlaps carries the exact rule).
func validateContract(c *Contract, v *koerrors.ValidationError) {
	for i := range c.Storage {
		for j := i + 1; j < len(c.Storage); j++ {
			a, b := c.Storage[i], c.Storage[j]
			if a.overlaps(b) {
				v.Add(koerrors.New(koerrors.BuilderError, koerrors.CodeSlotCollision,
					fmt.Sprintf("storage slot %d used by both %q and %q", a.Slot, a.Name, b.Name)).
					WithFunction(c.Name))
			}
		}
	}

	for _, f := range c.Functions {
		validateFunction(c.Name, f, v)
	}
}

func validateFunction(contractName string, f *Function, v *koerrors.ValidationError) {
	qualified := contractName + "::" + f.Name

	if len(f.Blocks) == 0 {
		v.Add(koerrors.New(koerrors.InvalidInstruction, koerrors.CodeUnterminatedBlock,
			"function has no blocks").WithFunction(qualified))
		return
	}

	for _, b := range f.Blocks {
		validateBlock(qualified, f, b, v)
	}

	if f.Mutability != MutabilityMutable && f.ModifiesState {
		for _, b := range f.Blocks {
			for _, id := range b.Insts {
				inst := f.Inst(id)
				if modifiesState(inst.Op) {
					v.Add(koerrors.New(koerrors.TypeError, koerrors.CodeTypeMismatch,
						fmt.Sprintf("%s mutates state in a non-mutable function", inst.Op)).
						WithFunction(qualified))
				}
			}
		}
	}
}

func validateBlock(qualified string, f *Function, b *BasicBlock, v *koerrors.ValidationError) {
	if b.Terminator == nil {
		v.Add(koerrors.New(koerrors.InvalidInstruction, koerrors.CodeUnterminatedBlock,
			fmt.Sprintf("block %d has no terminator", b.ID)).WithFunction(qualified))
		return
	}
	if _, invalid := b.Terminator.(*Invalid); invalid {
		v.Add(koerrors.New(koerrors.InvalidInstruction, koerrors.CodeInvalidTerminator,
			fmt.Sprintf("block %d left with Invalid terminator", b.ID)).WithFunction(qualified))
		return
	}

	for _, succ := range b.Terminator.Successors() {
		if int(succ) >= len(f.Blocks) {
			v.Add(koerrors.New(koerrors.InvalidInstruction, koerrors.CodeDanglingBlockRef,
				fmt.Sprintf("block %d refers to nonexistent block %d", b.ID, succ)).WithFunction(qualified))
			continue
		}
		validateArity(qualified, f, b, succ, v)
	}

	for _, id := range b.Insts {
		inst := f.Inst(id)
		if inst.Op.IsCheckedArith() {
			target := int(inst.Imm.RevertTarget)
			if target >= len(f.Blocks) {
				v.Add(koerrors.New(koerrors.InvalidInstruction, koerrors.CodeDanglingBlockRef,
					fmt.Sprintf("%s revert target %d does not exist", inst.Op, target)).WithFunction(qualified))
				continue
			}
			tb := f.Blocks[target]
			if _, ok := tb.Terminator.(*Revert); !ok {
				v.Add(koerrors.New(koerrors.InvalidInstruction, koerrors.CodeInvalidTerminator,
					fmt.Sprintf("%s revert target %d does not end in Revert", inst.Op, target)).WithFunction(qualified))
			}
		}
	}
}

// validateArity checks that a terminator's argument list to a successor
// block matches that block's declared parameter count — the block-argument
// SSA form's equivalent of phi-operand-count checking.
func validateArity(qualified string, f *Function, from *BasicBlock, to BlockID, v *koerrors.ValidationError) {
	toBlock := f.Blocks[to]
	var args []Value
	switch t := from.Terminator.(type) {
	case *Jump:
		if t.Target == to {
			args = t.Args
		}
	case *Branch:
		if t.IfTrue == to {
			args = t.TrueArgs
		} else if t.IfFalse == to {
			args = t.FalseArgs
		}
	case *Switch:
		if t.Default == to {
			args = t.DefaultArgs
		} else {
			for _, c := range t.Cases {
				if c.Target == to {
					args = c.Args
					break
				}
			}
		}
	}
	if len(args) != len(toBlock.Params) {
		v.Add(koerrors.New(koerrors.InvalidInstruction, koerrors.CodeArityMismatch,
			fmt.Sprintf("jump from block %d to block %d passes %d args, block expects %d",
				from.ID, to, len(args), len(toBlock.Params))).WithFunction(qualified))
		return
	}
	for i, a := range args {
		if !f.ValueType(a).Equal(toBlock.Params[i].typeOf(f)) {
			v.Add(koerrors.New(koerrors.TypeError, koerrors.CodeTypeMismatch,
				fmt.Sprintf("block %d param %d type mismatch", to, i)).WithFunction(qualified))
		}
	}
}

func (v Value) typeOf(f *Function) Type { return f.ValueType(v) }
