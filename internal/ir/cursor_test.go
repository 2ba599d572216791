// SPDX-License-Identifier: Apache-2.0
package ir

import "testing"

func TestCursorInsertSplicesWithoutDisturbingLaterInstructions(t *testing.T) {
	reg := NewRegistry()
	cb := reg.DeclareContract("C")
	fb := cb.NewFunction("f", []Type{Uint(256)}, []Type{Uint(256)}, VisibilityPublic, MutabilityMutable)
	entry := fb.Entry()
	p := fb.Function().Params[0]
	one := entry.Constant(ConstUint(BigUint(1)), Uint(256))
	sum := entry.Add(p, one, Uint(256))
	entry.Return([]Value{sum})
	entry.Seal()

	f := fb.Function()
	addInst := f.Inst(f.EntryBlock().Insts[len(f.EntryBlock().Insts)-1])

	c := NewCursor(f)
	c.GotoBefore(addInst.ID)
	two := c.Insert(OpConstant, nil, []Type{Uint(256)}, NewImmConstant(ConstUint(BigUint(2))))

	if len(f.EntryBlock().Insts) != 3 {
		t.Fatalf("expected 3 instructions after insert, got %d", len(f.EntryBlock().Insts))
	}
	if f.EntryBlock().Insts[1] != two.ID {
		t.Fatalf("expected the inserted instruction at index 1")
	}
	if f.EntryBlock().Insts[2] != addInst.ID {
		t.Fatalf("expected the original add instruction to remain after the insert, at index 2")
	}
}

func TestCursorSplitBlockMovesTailAndTerminator(t *testing.T) {
	reg := NewRegistry()
	cb := reg.DeclareContract("C")
	fb := cb.NewFunction("f", []Type{Uint(256)}, []Type{Uint(256)}, VisibilityPublic, MutabilityMutable)
	entry := fb.Entry()
	p := fb.Function().Params[0]
	one := entry.Constant(ConstUint(BigUint(1)), Uint(256))
	sum := entry.Add(p, one, Uint(256))
	entry.Return([]Value{sum})
	entry.Seal()

	f := fb.Function()
	sumInstID := f.EntryBlock().Insts[1]

	c := NewCursor(f)
	c.GotoBefore(sumInstID)
	newBlock := c.SplitBlock()

	if len(f.EntryBlock().Insts) != 1 {
		t.Fatalf("expected original block to retain only the constant instruction, got %d insts", len(f.EntryBlock().Insts))
	}
	if _, ok := f.EntryBlock().Terminator.(*Jump); !ok {
		t.Fatalf("expected original block to now end in a Jump to the split-off block")
	}
	if len(newBlock.Insts) != 1 {
		t.Fatalf("expected split block to carry the add instruction, got %d insts", len(newBlock.Insts))
	}
	if _, ok := newBlock.Terminator.(*Return); !ok {
		t.Fatalf("expected split block to carry the original Return terminator")
	}

	if v := reg.Validate(); v.HasErrors() {
		t.Fatalf("unexpected validation errors after split: %v", v)
	}
}
