// SPDX-License-Identifier: Apache-2.0
package ir

import (
	"math/big"
	"testing"
)

// buildSimpleStorage builds a single-slot counter contract with get/set
// functions.
func buildSimpleStorage() *Registry {
	reg := NewRegistry()
	cb := reg.DeclareContract("SimpleStorage")
	cb.DeclareStorageSlot("value", Uint(256), 0, true)

	setFn := cb.NewFunction("set", []Type{Uint(256)}, nil, VisibilityPublic, MutabilityMutable)
	entry := setFn.Entry()
	entry.StorageStore(0, setFn.Function().Params[0])
	entry.Return(nil)
	entry.Seal()

	getFn := cb.NewFunction("get", nil, []Type{Uint(256)}, VisibilityPublic, MutabilityView)
	getEntry := getFn.Entry()
	v := getEntry.StorageLoad(0, Uint(256))
	getEntry.Return([]Value{v})
	getEntry.Seal()

	return reg
}

func TestSimpleStorageValidates(t *testing.T) {
	reg := buildSimpleStorage()
	if v := reg.Validate(); v.HasErrors() {
		t.Fatalf("unexpected validation errors: %v", v)
	}
}

func TestSimpleStorageGetReadsSetSlot(t *testing.T) {
	reg := buildSimpleStorage()
	c, _ := reg.Contract("SimpleStorage")
	get, _ := c.FindFunction("get")

	entry := get.EntryBlock()
	if len(entry.Insts) != 1 {
		t.Fatalf("expected exactly one instruction in get(), got %d", len(entry.Insts))
	}
	load := get.Inst(entry.Insts[0])
	if load.Op != OpStorageLoad || load.Imm.Slot != 0 {
		t.Fatalf("expected storage_load slot=0, got %s slot=%d", load.Op, load.Imm.Slot)
	}
}

// buildCheckedTransfer builds an overflow-checked transfer:
// balances[to] = checked_add(balances[to], amount), branching to a revert
// block on overflow.
func buildCheckedTransfer(cb *ContractBuilder) *Function {
	to0 := cb.DeclareStorageSlot("balances", Mapping(Address(), Uint(256)), 0, true)
	_ = to0

	fb := cb.NewFunction("transfer", []Type{Address(), Uint(256)}, []Type{Bool()}, VisibilityPublic, MutabilityMutable)
	to := fb.Function().Params[0]
	amount := fb.Function().Params[1]

	entry := fb.Entry()
	overflowBlock := fb.Block()
	overflowBlock.Revert(1, true, InvalidValue)
	overflowBlock.Seal()

	balance := entry.KeyedStorageLoad(0, to, Uint(256))
	sum := entry.CheckedAdd(balance, amount, Uint(256), overflowBlock.Block().ID)
	entry.KeyedStorageStore(0, to, sum)
	okConst := entry.Constant(ConstBool(true), Bool())
	entry.Return([]Value{okConst})
	entry.Seal()

	return fb.Function()
}

func TestCheckedTransferValidates(t *testing.T) {
	reg := NewRegistry()
	cb := reg.DeclareContract("Token")
	buildCheckedTransfer(cb)
	if v := reg.Validate(); v.HasErrors() {
		t.Fatalf("unexpected validation errors: %v", v)
	}
}

func TestCheckedArithRevertTargetMustRevert(t *testing.T) {
	reg := NewRegistry()
	cb := reg.DeclareContract("Bad")
	fb := cb.NewFunction("f", []Type{Uint(256), Uint(256)}, []Type{Uint(256)}, VisibilityPublic, MutabilityMutable)
	entry := fb.Entry()
	notARevertBlock := fb.Block()
	notARevertBlock.Return(nil)
	notARevertBlock.Seal()

	sum := entry.CheckedAdd(fb.Function().Params[0], fb.Function().Params[1], Uint(256), notARevertBlock.Block().ID)
	entry.Return([]Value{sum})
	entry.Seal()

	v := reg.Validate()
	if !v.HasErrors() {
		t.Fatalf("expected validation error: checked_add revert target must end in Revert")
	}
}

func TestRequireLoweringProducesBranchAndRevert(t *testing.T) {
	reg := NewRegistry()
	cb := reg.DeclareContract("Guarded")
	fb := cb.NewFunction("onlyPositive", []Type{Int(256)}, nil, VisibilityPublic, MutabilityMutable)
	entry := fb.Entry()

	zero := entry.Constant(ConstInt(big.NewInt(0)), Int(256))
	cond := entry.Gt(fb.Function().Params[0], zero)
	ok := entry.Require(cond, 42)
	ok.Return(nil)
	ok.Seal()

	if v := reg.Validate(); v.HasErrors() {
		t.Fatalf("unexpected validation errors: %v", v)
	}

	entryBlock := fb.Function().EntryBlock()
	branch, isBranch := entryBlock.Terminator.(*Branch)
	if !isBranch {
		t.Fatalf("expected require() to terminate the entry block with a Branch, got %T", entryBlock.Terminator)
	}
	failBlock := fb.Function().Block(branch.IfFalse)
	revert, isRevert := failBlock.Terminator.(*Revert)
	if !isRevert || !revert.HasCode || revert.Code != 42 {
		t.Fatalf("expected require() failure branch to revert with code 42, got %#v", failBlock.Terminator)
	}

	okBlock := fb.Function().Block(branch.IfTrue)
	if len(okBlock.Insts) != 1 || fb.Function().Inst(okBlock.Insts[0]).Op != OpAssume {
		t.Fatalf("expected require() success branch to assume the condition")
	}
}

func TestAssertLowersLikeRequire(t *testing.T) {
	reg := NewRegistry()
	cb := reg.DeclareContract("Invariant")
	fb := cb.NewFunction("withdraw", []Type{Uint(256), Uint(256)}, nil, VisibilityPublic, MutabilityMutable)
	entry := fb.Entry()

	balance, amount := fb.Function().Params[0], fb.Function().Params[1]
	cond := entry.Ge(balance, amount)
	ok := entry.Assert(cond, 7)
	ok.Return(nil)
	ok.Seal()

	if v := reg.Validate(); v.HasErrors() {
		t.Fatalf("unexpected validation errors: %v", v)
	}

	branch, isBranch := fb.Function().EntryBlock().Terminator.(*Branch)
	if !isBranch {
		t.Fatalf("expected assert() to terminate the entry block with a Branch, got %T", fb.Function().EntryBlock().Terminator)
	}
	failBlock := fb.Function().Block(branch.IfFalse)
	revert, isRevert := failBlock.Terminator.(*Revert)
	if !isRevert || !revert.HasCode || revert.Code != 7 {
		t.Fatalf("expected assert() failure branch to revert with code 7, got %#v", failBlock.Terminator)
	}
}

// buildSignatureGuard mirrors a common access-control pattern that only the
// expanded environment/crypto opcode set can express: recovering a signer
// from a message hash and comparing it against the stored owner before
// allowing a withdrawal gated on msg.sig.
func buildSignatureGuard(cb *ContractBuilder) *Function {
	cb.DeclareStorageSlot("owner", Address(), 0, true)

	fb := cb.NewFunction("withdraw", []Type{BytesFixed(32), Uint(8), BytesFixed(32), BytesFixed(32)},
		[]Type{Bool()}, VisibilityExternal, MutabilityMutable)
	hash, v, r, s := fb.Function().Params[0], fb.Function().Params[1], fb.Function().Params[2], fb.Function().Params[3]

	entry := fb.Entry()
	owner := entry.StorageLoad(0, Address())
	recovered := entry.Ecrecover(hash, v, r, s)
	cond := entry.Eq(recovered, owner)
	ok := entry.Require(cond, 1)

	_ = ok.MsgSig()
	_ = ok.MsgData()
	_ = ok.GasLeft()
	_ = ok.BlockChainID()
	_ = ok.BlockBaseFee()
	_ = ok.BlockCoinbase()
	_ = ok.BlockDifficulty()
	_ = ok.BlockGasLimit()
	_ = ok.TxGasPrice()
	okConst := ok.Constant(ConstBool(true), Bool())
	ok.Return([]Value{okConst})
	ok.Seal()

	return fb.Function()
}

func TestSignatureGuardValidatesAndRecognizesEnvironmentEffects(t *testing.T) {
	reg := NewRegistry()
	cb := reg.DeclareContract("Vault")
	f := buildSignatureGuard(cb)
	if v := reg.Validate(); v.HasErrors() {
		t.Fatalf("unexpected validation errors: %v", v)
	}

	var sawEcrecover, sawEnvRead bool
	for _, inst := range f.AllInsts() {
		switch inst.Op {
		case OpEcrecover:
			sawEcrecover = true
			if !IsPure(inst) {
				t.Fatalf("expected ecrecover to be pure")
			}
		case OpMsgSig, OpMsgData, OpGasLeft, OpBlockChainID, OpBlockBaseFee,
			OpBlockCoinbase, OpBlockDifficulty, OpBlockGasLimit, OpTxGasPrice:
			sawEnvRead = true
			effs := Effects(inst)
			if len(effs) != 1 || effs[0].Kind != EffectReadsEnvironment {
				t.Fatalf("expected %s to be classified EffectReadsEnvironment, got %v", inst.Op, effs)
			}
		}
	}
	if !sawEcrecover {
		t.Fatalf("expected an ecrecover instruction")
	}
	if !sawEnvRead {
		t.Fatalf("expected at least one new environment accessor instruction")
	}
}
