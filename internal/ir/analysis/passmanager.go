// SPDX-License-Identifier: Apache-2.0
package analysis

import "conir/internal/ir"

// Kind names one of the analyses the PassManager can produce and cache.
type Kind int

const (
	KindCFG Kind = iota
	KindDominatorTree
	KindDefUse
	KindAlias
	KindLoops
)

type cacheKey struct {
	fn   *ir.Function
	kind Kind
}

// PassManager caches analysis results per (function, analysis kind) so
// repeated queries against an unchanged function reuse prior work; callers
// that mutate a function call Invalidate to force recomputation.
// Any call to Invalidate drops every cached analysis for that function,
// since a CFG edit can silently stale a dominator tree or def-use chain
// computed from the old shape.
type PassManager struct {
	cache map[cacheKey]any
}

func NewPassManager() *PassManager {
	return &PassManager{cache: make(map[cacheKey]any)}
}

func (pm *PassManager) CFG(f *ir.Function) *CFG {
	key := cacheKey{f, KindCFG}
	if v, ok := pm.cache[key]; ok {
		return v.(*CFG)
	}
	c := BuildCFG(f)
	pm.cache[key] = c
	return c
}

func (pm *PassManager) DominatorTree(f *ir.Function) *DominatorTree {
	key := cacheKey{f, KindDominatorTree}
	if v, ok := pm.cache[key]; ok {
		return v.(*DominatorTree)
	}
	d := BuildDominatorTree(f, pm.CFG(f))
	pm.cache[key] = d
	return d
}

func (pm *PassManager) DefUse(f *ir.Function) *DefUse {
	key := cacheKey{f, KindDefUse}
	if v, ok := pm.cache[key]; ok {
		return v.(*DefUse)
	}
	du := BuildDefUse(f)
	pm.cache[key] = du
	return du
}

func (pm *PassManager) Alias(f *ir.Function) *AliasInfo {
	key := cacheKey{f, KindAlias}
	if v, ok := pm.cache[key]; ok {
		return v.(*AliasInfo)
	}
	a := BuildAliasInfo(f)
	pm.cache[key] = a
	return a
}

func (pm *PassManager) Loops(f *ir.Function) []*Loop {
	key := cacheKey{f, KindLoops}
	if v, ok := pm.cache[key]; ok {
		return v.([]*Loop)
	}
	l := FindLoops(f, pm.CFG(f), pm.DominatorTree(f))
	pm.cache[key] = l
	return l
}

// Invalidate drops every analysis cached for f. Any pass that mutates f's
// blocks, instructions, or terminators via a Cursor must call this before
// the next analysis query, or risk answering from a stale CFG.
func (pm *PassManager) Invalidate(f *ir.Function) {
	for _, k := range []Kind{KindCFG, KindDominatorTree, KindDefUse, KindAlias, KindLoops} {
		delete(pm.cache, cacheKey{f, k})
	}
}
