// SPDX-License-Identifier: Apache-2.0
package analysis

import "conir/internal/ir"

// Loop is one natural loop in a function's CFG: a header block dominating
// every block in the loop body, plus the exit blocks control can leave the
// loop from. Narrowed to what the analysis layer can derive structurally —
// an invariant-tracking field belongs to an optimization pass (loop-
// invariant code motion), which is explicitly out of scope for this core
// (DESIGN.md).
type Loop struct {
	Header ir.BlockID
	Body   []ir.BlockID // includes Header; construction order, not traversal order
	Exits  []ir.BlockID // blocks outside the loop reached directly from a body block
}

// FindLoops identifies every natural loop in f: a back-edge is any CFG edge
// b -> h where h dominates b, and each back-edge's natural loop is
// reconstructed by walking predecessors backward from b until the walk
// reaches h, a dominator-based reconstruction used here as an alternative
// to a literal dominance-frontier intersection.
func FindLoops(f *ir.Function, cfg *CFG, dom *DominatorTree) []*Loop {
	var loops []*Loop
	for _, b := range f.Blocks {
		for _, s := range cfg.Succs[b.ID] {
			if dom.Dominates(s, b.ID) {
				loops = append(loops, natural(cfg, s, b.ID))
			}
		}
	}
	return loops
}

// natural reconstructs the natural loop for back-edge (tail -> header): the
// body is header plus every block that can reach tail without passing
// through header, found by a predecessor-walk fixpoint seeded at tail.
func natural(cfg *CFG, header, tail ir.BlockID) *Loop {
	inBody := map[ir.BlockID]bool{header: true, tail: true}
	stack := []ir.BlockID{tail}
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range cfg.Preds[b] {
			if !inBody[p] {
				inBody[p] = true
				stack = append(stack, p)
			}
		}
	}

	body := make([]ir.BlockID, 0, len(inBody))
	for b := range inBody {
		body = append(body, b)
	}
	sortBlockIDs(body)

	var exits []ir.BlockID
	seenExit := map[ir.BlockID]bool{}
	for _, b := range body {
		for _, s := range cfg.Succs[b] {
			if !inBody[s] && !seenExit[s] {
				seenExit[s] = true
				exits = append(exits, s)
			}
		}
	}
	sortBlockIDs(exits)

	return &Loop{Header: header, Body: body, Exits: exits}
}

func sortBlockIDs(ids []ir.BlockID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}
