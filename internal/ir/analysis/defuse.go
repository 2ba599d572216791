// SPDX-License-Identifier: Apache-2.0
package analysis

import "conir/internal/ir"

// Use records one occurrence of a Value as an instruction operand or as a
// terminator argument, answering "who reads this value" queries.
type Use struct {
	Inst   ir.InstID // zero if the use is in a terminator
	Block  ir.BlockID
	IsTerm bool
}

// DefUse is the def-use index for one function: for every Value, every
// site that reads it.
type DefUse struct {
	uses map[ir.Value][]Use
}

// BuildDefUse scans every instruction operand and every terminator argument
// in f and indexes them by the Value they read.
func BuildDefUse(f *ir.Function) *DefUse {
	du := &DefUse{uses: make(map[ir.Value][]Use)}
	for _, inst := range f.AllInsts() {
		for _, v := range inst.Operands {
			du.uses[v] = append(du.uses[v], Use{Inst: inst.ID, Block: inst.Block})
		}
	}
	for _, b := range f.Blocks {
		for _, v := range terminatorArgs(b.Terminator) {
			du.uses[v] = append(du.uses[v], Use{Block: b.ID, IsTerm: true})
		}
	}
	return du
}

func terminatorArgs(t ir.Terminator) []ir.Value {
	switch term := t.(type) {
	case *ir.Jump:
		return term.Args
	case *ir.Branch:
		vs := append([]ir.Value{term.Cond}, term.TrueArgs...)
		return append(vs, term.FalseArgs...)
	case *ir.Switch:
		vs := []ir.Value{term.Value}
		for _, c := range term.Cases {
			vs = append(vs, c.Args...)
		}
		return append(vs, term.DefaultArgs...)
	case *ir.Return:
		return term.Values
	case *ir.Revert:
		if term.Message != ir.InvalidValue {
			return []ir.Value{term.Message}
		}
	}
	return nil
}

// Uses returns every recorded use site of v.
func (du *DefUse) Uses(v ir.Value) []Use { return du.uses[v] }

// IsUnused reports whether v has no recorded uses at all — dead unless it
// is itself a side-effecting instruction's result, which dead-code
// elimination must check separately via effects.go.
func (du *DefUse) IsUnused(v ir.Value) bool { return len(du.uses[v]) == 0 }

// DominatesAllUses reports whether def (the block that defines v) dominates
// every use of v per the given dominator tree — the property the strict-
// SSA-dominance invariant requires.
func (du *DefUse) DominatesAllUses(dom *DominatorTree, defBlock ir.BlockID, v ir.Value) bool {
	for _, u := range du.uses[v] {
		if !dom.Dominates(defBlock, u.Block) {
			return false
		}
	}
	return true
}
