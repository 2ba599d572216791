// SPDX-License-Identifier: Apache-2.0
package analysis

import "conir/internal/ir"

// AliasInfo is a function's conservative storage-aliasing summary, built
// once from every instruction's declared effects (ir.Effects) and queried
// repeatedly by passes deciding whether two storage accesses can be
// reordered or whether a store is dead.
type AliasInfo struct {
	effects map[ir.InstID][]ir.Effect
}

// BuildAliasInfo classifies every instruction in f by its effects.
func BuildAliasInfo(f *ir.Function) *AliasInfo {
	a := &AliasInfo{effects: make(map[ir.InstID][]ir.Effect)}
	for _, inst := range f.AllInsts() {
		a.effects[inst.ID] = ir.Effects(inst)
	}
	return a
}

// MayAlias reports whether instructions a and b might touch the same
// storage/memory location, conservatively: if either is pure, they never
// alias; otherwise ir.MayAlias decides per effect pair.
func (ai *AliasInfo) MayAlias(a, b ir.InstID) bool {
	for _, ea := range ai.effects[a] {
		for _, eb := range ai.effects[b] {
			if ir.MayAlias(ea, eb) {
				return true
			}
		}
	}
	return false
}

// IsPure reports whether inst has no effect beyond producing its results.
func (ai *AliasInfo) IsPure(inst ir.InstID) bool {
	for _, e := range ai.effects[inst] {
		if e.Kind != ir.EffectPure {
			return false
		}
	}
	return true
}
