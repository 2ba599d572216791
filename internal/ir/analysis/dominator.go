// SPDX-License-Identifier: Apache-2.0
package analysis

import "conir/internal/ir"

// DominatorTree gives each reachable block its immediate dominator, using
// the Cooper/Harvey/Kennedy iterative algorithm (the standard choice for
// CFGs that are not guaranteed reducible, which a hand-written IR is not).
type DominatorTree struct {
	idom  map[ir.BlockID]ir.BlockID
	entry ir.BlockID
}

// BuildDominatorTree computes the dominator tree of f's reachable blocks.
func BuildDominatorTree(f *ir.Function, cfg *CFG) *DominatorTree {
	entry := ir.BlockID(0)
	postOrder := cfg.PostOrder(entry)

	rpo := make([]ir.BlockID, len(postOrder))
	for i, b := range postOrder {
		rpo[len(postOrder)-1-i] = b
	}
	rpoIndex := make(map[ir.BlockID]int, len(rpo))
	for i, b := range rpo {
		rpoIndex[b] = i
	}

	idom := make(map[ir.BlockID]ir.BlockID)
	idom[entry] = entry

	changed := true
	for changed {
		changed = false
		for _, b := range rpo {
			if b == entry {
				continue
			}
			var newIdom ir.BlockID
			hasNewIdom := false
			for _, p := range cfg.Preds[b] {
				if _, ok := idom[p]; !ok {
					continue
				}
				if !hasNewIdom {
					newIdom = p
					hasNewIdom = true
					continue
				}
				newIdom = intersect(idom, rpoIndex, newIdom, p)
			}
			if !hasNewIdom {
				continue
			}
			if cur, ok := idom[b]; !ok || cur != newIdom {
				idom[b] = newIdom
				changed = true
			}
		}
	}
	return &DominatorTree{idom: idom, entry: entry}
}

func intersect(idom map[ir.BlockID]ir.BlockID, rpoIndex map[ir.BlockID]int, a, b ir.BlockID) ir.BlockID {
	for a != b {
		for rpoIndex[a] > rpoIndex[b] {
			a = idom[a]
		}
		for rpoIndex[b] > rpoIndex[a] {
			b = idom[b]
		}
	}
	return a
}

// ImmediateDominator returns b's immediate dominator and whether b is
// reachable at all.
func (d *DominatorTree) ImmediateDominator(b ir.BlockID) (ir.BlockID, bool) {
	idom, ok := d.idom[b]
	return idom, ok
}

// Dominates reports whether a dominates b (every path from the entry block
// to b passes through a), including the reflexive case a == b.
func (d *DominatorTree) Dominates(a, b ir.BlockID) bool {
	if _, ok := d.idom[b]; !ok {
		return false
	}
	for {
		if a == b {
			return true
		}
		if b == d.entry {
			return a == d.entry
		}
		b = d.idom[b]
	}
}
