// SPDX-License-Identifier: Apache-2.0
package analysis

import (
	"fmt"

	"conir/internal/ir"
	"conir/internal/koerrors"
)

// CheckDominance verifies the SSA-domination invariant — every operand
// that is a Temporary or BlockParameter must be defined on a path
// dominating its use — for every instruction operand and terminator
// argument in f. It lives here rather than in ir.Registry.Validate because
// the check needs the dominator tree, and the analysis package is the
// layer above ir (ir/validate.go cannot import it without a cycle); the
// core's layering keeps structural well-formedness (block/arity/slot
// checks) in ir.Validate and dominance-dependent checks here, both
// reachable from a single audit pass that runs Validate then CheckDominance.
func CheckDominance(qualified string, f *ir.Function, cfg *CFG, dom *DominatorTree) []*koerrors.IRError {
	var errs []*koerrors.IRError
	reachable := map[ir.BlockID]bool{}
	for _, b := range cfg.ReachableFrom(0) {
		reachable[b] = true
	}

	checkUse := func(useBlock ir.BlockID, v ir.Value) {
		data := f.ValueData(v)
		var defBlock ir.BlockID
		switch data.Kind {
		case ir.ValueKindParameter, ir.ValueKindConstant:
			return // function parameters and constants dominate every block by construction
		case ir.ValueKindBlockParameter:
			defBlock = data.Block
		case ir.ValueKindTemporary:
			defBlock = f.Inst(data.DefInst).Block
		}
		if !reachable[useBlock] {
			return // unreachable code has no dominance obligation
		}
		if !dom.Dominates(defBlock, useBlock) {
			errs = append(errs, koerrors.New(koerrors.InvalidInstruction, koerrors.CodeUseNotDominated,
				fmt.Sprintf("value v%d defined in block %d does not dominate its use in block %d", v, defBlock, useBlock)).
				WithFunction(qualified))
		}
	}

	for _, b := range f.Blocks {
		for _, id := range b.Insts {
			inst := f.Inst(id)
			for _, operand := range inst.Operands {
				checkUse(b.ID, operand)
			}
		}
		for _, v := range terminatorArgs(b.Terminator) {
			checkUse(b.ID, v)
		}
	}
	return errs
}
