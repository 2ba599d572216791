// SPDX-License-Identifier: Apache-2.0
package analysis

import (
	"testing"

	"conir/internal/ir"
)

// buildDiamond builds entry -> (left, right) -> merge, the canonical CFG
// shape for exercising dominance and block-parameter merging.
func buildDiamond(t *testing.T) *ir.Function {
	t.Helper()
	reg := ir.NewRegistry()
	cb := reg.DeclareContract("C")
	fb := cb.NewFunction("f", []ir.Type{ir.Bool(), ir.Uint(256), ir.Uint(256)}, []ir.Type{ir.Uint(256)},
		ir.VisibilityPublic, ir.MutabilityPure)
	params := fb.Function().Params

	entry := fb.Entry()
	merge := fb.Block()
	left := fb.Block()
	right := fb.Block()

	mv := merge.AddParam(ir.Uint(256))
	merge.Return([]ir.Value{mv})
	merge.Seal()

	left.Jump(merge.Block().ID, []ir.Value{params[1]})
	left.Seal()

	right.Jump(merge.Block().ID, []ir.Value{params[2]})
	right.Seal()

	entry.Branch(params[0], left.Block().ID, nil, right.Block().ID, nil)
	entry.Seal()

	if v := reg.Validate(); v.HasErrors() {
		t.Fatalf("unexpected validation errors: %v", v)
	}
	return fb.Function()
}

func TestDominatorTreeDiamond(t *testing.T) {
	f := buildDiamond(t)
	cfg := BuildCFG(f)
	dom := BuildDominatorTree(f, cfg)

	entry := f.EntryBlock().ID
	merge := f.Blocks[1].ID
	left := f.Blocks[2].ID
	right := f.Blocks[3].ID

	if !dom.Dominates(entry, merge) {
		t.Fatalf("entry must dominate the merge block")
	}
	if dom.Dominates(left, merge) {
		t.Fatalf("neither diamond arm dominates the merge block on its own")
	}
	if dom.Dominates(right, merge) {
		t.Fatalf("neither diamond arm dominates the merge block on its own")
	}
	idom, ok := dom.ImmediateDominator(merge)
	if !ok || idom != entry {
		t.Fatalf("expected merge's immediate dominator to be entry, got %d ok=%v", idom, ok)
	}
}

func TestDefUseTracksBlockParamUse(t *testing.T) {
	f := buildDiamond(t)
	du := BuildDefUse(f)

	mergeParam := f.Blocks[1].Params[0]
	uses := du.Uses(mergeParam)
	if len(uses) != 1 || !uses[0].IsTerm {
		t.Fatalf("expected merge block's parameter to be used exactly once, in the Return terminator")
	}
}

func TestAliasInfoDistinguishesFixedSlots(t *testing.T) {
	reg := ir.NewRegistry()
	cb := reg.DeclareContract("C")
	cb.DeclareStorageSlot("a", ir.Uint(256), 0, true)
	cb.DeclareStorageSlot("b", ir.Uint(256), 1, true)
	fb := cb.NewFunction("f", []ir.Type{ir.Uint(256)}, nil, ir.VisibilityPublic, ir.MutabilityMutable)
	entry := fb.Entry()
	entry.StorageStore(0, fb.Function().Params[0])
	entry.StorageStore(1, fb.Function().Params[0])
	entry.Return(nil)
	entry.Seal()

	f := fb.Function()
	ai := BuildAliasInfo(f)
	storeA := f.EntryBlock().Insts[0]
	storeB := f.EntryBlock().Insts[1]
	if ai.MayAlias(storeA, storeB) {
		t.Fatalf("stores to distinct fixed slots must not alias")
	}
}

// buildCountingLoop builds entry -> header <-> body, header -> exit, the
// canonical single-back-edge shape for exercising natural-loop
// reconstruction: header is the loop header, body is the sole back-edge
// source, exit is reached only once the loop condition fails.
func buildCountingLoop(t *testing.T) *ir.Function {
	t.Helper()
	reg := ir.NewRegistry()
	cb := reg.DeclareContract("C")
	fb := cb.NewFunction("count", []ir.Type{ir.Uint(256), ir.Uint(256)}, []ir.Type{ir.Uint(256)},
		ir.VisibilityPublic, ir.MutabilityPure)
	limit, one := fb.Function().Params[0], fb.Function().Params[1]

	entry := fb.Entry()
	header := fb.Block()
	body := fb.Block()
	exit := fb.Block()

	cnt := header.AddParam(ir.Uint(256))
	cond := header.Lt(cnt, limit)
	header.Branch(cond, body.Block().ID, nil, exit.Block().ID, []ir.Value{cnt})
	header.Seal()

	next := body.Add(cnt, one, ir.Uint(256))
	body.Jump(header.Block().ID, []ir.Value{next})
	body.Seal()

	exitParam := exit.AddParam(ir.Uint(256))
	exit.Return([]ir.Value{exitParam})
	exit.Seal()

	zero := entry.Constant(ir.ConstUint(ir.BigUint(0)), ir.Uint(256))
	entry.Jump(header.Block().ID, []ir.Value{zero})
	entry.Seal()

	if v := reg.Validate(); v.HasErrors() {
		t.Fatalf("unexpected validation errors: %v", v)
	}
	return fb.Function()
}

func TestFindLoopsIdentifiesNaturalLoop(t *testing.T) {
	f := buildCountingLoop(t)
	cfg := BuildCFG(f)
	dom := BuildDominatorTree(f, cfg)
	loops := FindLoops(f, cfg, dom)

	if len(loops) != 1 {
		t.Fatalf("expected exactly one natural loop, got %d", len(loops))
	}
	header := f.Blocks[1].ID // header is the second block created
	body := f.Blocks[2].ID
	exit := f.Blocks[3].ID

	l := loops[0]
	if l.Header != header {
		t.Fatalf("expected loop header %d, got %d", header, l.Header)
	}
	if len(l.Body) != 2 || l.Body[0] != header || l.Body[1] != body {
		t.Fatalf("expected loop body [%d %d], got %v", header, body, l.Body)
	}
	if len(l.Exits) != 1 || l.Exits[0] != exit {
		t.Fatalf("expected loop exit [%d], got %v", exit, l.Exits)
	}
}

func TestPassManagerCachesLoops(t *testing.T) {
	f := buildCountingLoop(t)
	pm := NewPassManager()
	l1 := pm.Loops(f)
	l2 := pm.Loops(f)
	if len(l1) != 1 || len(l2) != 1 || l1[0] != l2[0] {
		t.Fatalf("expected PassManager to cache the Loops slice across calls")
	}
}

func TestCheckDominanceAcceptsWellFormedDiamond(t *testing.T) {
	f := buildDiamond(t)
	cfg := BuildCFG(f)
	dom := BuildDominatorTree(f, cfg)
	if errs := CheckDominance("C::f", f, cfg, dom); len(errs) != 0 {
		t.Fatalf("expected no dominance violations, got %v", errs)
	}
}

func TestCheckDominanceRejectsUseNotDominatedByDef(t *testing.T) {
	reg := ir.NewRegistry()
	cb := reg.DeclareContract("C")
	fb := cb.NewFunction("f", []ir.Type{ir.Bool()}, []ir.Type{ir.Uint(256)},
		ir.VisibilityPublic, ir.MutabilityPure)
	cond := fb.Function().Params[0]

	entry := fb.Entry()
	left := fb.Block()
	right := fb.Block()

	// left defines a temporary that right's terminator illegitimately reads;
	// left does not dominate right, so this must be flagged.
	leftVal := left.Add(cond2Uint(left), cond2Uint(left), ir.Uint(256))
	left.Return([]ir.Value{leftVal})
	left.Seal()

	right.Return([]ir.Value{leftVal})
	right.Seal()

	entry.Branch(cond, left.Block().ID, nil, right.Block().ID, nil)
	entry.Seal()

	f := fb.Function()
	cfg := BuildCFG(f)
	dom := BuildDominatorTree(f, cfg)
	errs := CheckDominance("C::f", f, cfg, dom)
	if len(errs) == 0 {
		t.Fatalf("expected a dominance violation for right's use of left's temporary")
	}
}

// cond2Uint materializes an arbitrary Uint256 operand for the test above
// without needing a real zext from Bool.
func cond2Uint(bb *ir.BlockBuilder) ir.Value {
	return bb.Constant(ir.ConstUint(ir.BigUint(1)), ir.Uint(256))
}

func TestPassManagerCachesAcrossCalls(t *testing.T) {
	f := buildDiamond(t)
	pm := NewPassManager()
	cfg1 := pm.CFG(f)
	cfg2 := pm.CFG(f)
	if cfg1 != cfg2 {
		t.Fatalf("expected PassManager to return the cached CFG instance on a second call")
	}
	pm.Invalidate(f)
	cfg3 := pm.CFG(f)
	if cfg3 == cfg1 {
		t.Fatalf("expected Invalidate to force recomputation")
	}
}
