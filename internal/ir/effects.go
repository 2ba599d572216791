// SPDX-License-Identifier: Apache-2.0
package ir

// EffectKind classifies how an instruction interacts with state outside its
// own result values: storage, memory, environment, logs, or external calls.
// Alias analysis and the pass manager use this to decide which instructions
// may be reordered or eliminated.
type EffectKind int

const (
	EffectPure EffectKind = iota
	EffectReadsStorage
	EffectWritesStorage
	EffectReadsMemory
	EffectWritesMemory
	EffectEmitsLog
	EffectReadsEnvironment // sender/origin/value/block_number/... : pure w.r.t. IR state but not hoistable across calls
	EffectExternalCall     // may read/write arbitrary storage and emit arbitrary logs
)

// Effect describes one effect of an instruction. A single instruction can
// carry more than one Effect (e.g. OpArrayPush both reads the array's
// storage region and writes it).
type Effect struct {
	Kind EffectKind
	// Slot/BaseSlot mirror the instruction's Immediate for storage effects,
	// letting alias.go distinguish two fixed-slot accesses without
	// recomputing them from the Instruction.
	Slot     uint64
	BaseSlot uint64
	HasSlot  bool
	// Computed marks a storage effect whose address is fully runtime-derived
	// (OpLoadDynamic/OpStoreDynamic, StorageLocation::Computed in the source
	// this is grounded on) rather than a fixed slot or a keyed base slot.
	// MayAlias treats it as aliasing every other storage effect, since no
	// static slot/base-slot comparison can rule anything out.
	Computed bool
}

// Effects returns every Effect an instruction has, used by analysis/alias.go
// and by the pass manager to classify instructions conservatively.
func Effects(inst *Instruction) []Effect {
	switch inst.Op {
	case OpStorageLoad:
		return []Effect{{Kind: EffectReadsStorage, Slot: inst.Imm.Slot, HasSlot: true}}
	case OpStorageStore:
		return []Effect{{Kind: EffectWritesStorage, Slot: inst.Imm.Slot, HasSlot: true}}
	case OpKeyedStorageLoad:
		return []Effect{{Kind: EffectReadsStorage, BaseSlot: inst.Imm.BaseSlot}}
	case OpKeyedStorageStore:
		return []Effect{{Kind: EffectWritesStorage, BaseSlot: inst.Imm.BaseSlot}}
	case OpStorageSlotAddr:
		return []Effect{{Kind: EffectReadsStorage, BaseSlot: inst.Imm.BaseSlot}}
	case OpLoadDynamic:
		return []Effect{{Kind: EffectReadsStorage, Computed: true}}
	case OpStoreDynamic:
		return []Effect{{Kind: EffectWritesStorage, Computed: true}}
	case OpArrayLength:
		return []Effect{{Kind: EffectReadsStorage, BaseSlot: inst.Imm.BaseSlot}}
	case OpArrayPush, OpArrayPop:
		return []Effect{{Kind: EffectReadsStorage, BaseSlot: inst.Imm.BaseSlot}, {Kind: EffectWritesStorage, BaseSlot: inst.Imm.BaseSlot}}
	case OpStructFieldLoad:
		return []Effect{{Kind: EffectReadsStorage, BaseSlot: inst.Imm.BaseSlot}}
	case OpStructFieldStore:
		return []Effect{{Kind: EffectWritesStorage, BaseSlot: inst.Imm.BaseSlot}}
	case OpPackedLoad:
		return []Effect{{Kind: EffectReadsStorage, Slot: inst.Imm.Slot, HasSlot: true}}
	case OpPackedStore:
		return []Effect{{Kind: EffectWritesStorage, Slot: inst.Imm.Slot, HasSlot: true}}
	case OpMemoryAlloc:
		return []Effect{{Kind: EffectWritesMemory}}
	case OpMemoryCopy:
		return []Effect{{Kind: EffectReadsMemory}, {Kind: EffectWritesMemory}}
	case OpMemorySize:
		return []Effect{{Kind: EffectReadsMemory}}
	case OpEmit:
		return []Effect{{Kind: EffectEmitsLog}}
	case OpSender, OpOrigin, OpValue, OpAddressOf, OpMsgData, OpMsgSig,
		OpBlockNumber, OpBlockTimestamp, OpBlockDifficulty, OpBlockGasLimit,
		OpBlockCoinbase, OpBlockChainID, OpBlockBaseFee, OpTxGasPrice, OpGasLeft:
		return []Effect{{Kind: EffectReadsEnvironment}}
	case OpExternCall:
		return []Effect{{Kind: EffectExternalCall}}
	case OpCall:
		// Conservative: a same-contract call may itself touch storage;
		// callers that need precision should consult the pass manager's
		// per-function effect summary rather than this instruction alone.
		return []Effect{{Kind: EffectExternalCall}}
	default:
		return []Effect{{Kind: EffectPure}}
	}
}

// IsPure reports whether inst has no effect beyond producing its results.
func IsPure(inst *Instruction) bool {
	for _, e := range Effects(inst) {
		if e.Kind != EffectPure {
			return false
		}
	}
	return true
}

// MayAlias reports whether two storage effects could touch the same slot,
// conservatively: two fixed-slot effects alias only if the slots match;
// two keyed effects alias only if their base slots match; a fixed-slot
// effect never aliases a keyed one; a runtime-computed address aliases
// every storage effect; and any pair involving a non-storage, non-pure
// effect is treated as aliasing (see DESIGN.md).
func MayAlias(a, b Effect) bool {
	if a.Kind == EffectPure || b.Kind == EffectPure {
		return false
	}
	storageKinds := func(k EffectKind) bool { return k == EffectReadsStorage || k == EffectWritesStorage }
	if !storageKinds(a.Kind) || !storageKinds(b.Kind) {
		return true // memory/log/env/call effects: treat as conservatively aliasing
	}
	if a.Computed || b.Computed {
		return true // runtime-computed address: no static slot/base-slot comparison can rule this out
	}
	if a.HasSlot && b.HasSlot {
		return a.Slot == b.Slot
	}
	if !a.HasSlot && !b.HasSlot {
		return a.BaseSlot == b.BaseSlot
	}
	return false // one fixed, one keyed, distinct storage regions by construction
}
