// SPDX-License-Identifier: Apache-2.0
package ir

import "testing"

func TestValidateRejectsUnterminatedBlock(t *testing.T) {
	reg := NewRegistry()
	cb := reg.DeclareContract("C")
	fb := cb.NewFunction("f", nil, nil, VisibilityPublic, MutabilityMutable)
	fb.Entry() // left with the default Invalid terminator

	v := reg.Validate()
	if !v.HasErrors() {
		t.Fatalf("expected a validation error for an unterminated block")
	}
}

func TestValidateRejectsDanglingJumpTarget(t *testing.T) {
	reg := NewRegistry()
	cb := reg.DeclareContract("C")
	fb := cb.NewFunction("f", nil, nil, VisibilityPublic, MutabilityMutable)
	entry := fb.Entry()
	entry.Jump(BlockID(99), nil)

	v := reg.Validate()
	if !v.HasErrors() {
		t.Fatalf("expected a validation error for a jump to a nonexistent block")
	}
}

func TestValidateRejectsBlockParamArityMismatch(t *testing.T) {
	reg := NewRegistry()
	cb := reg.DeclareContract("C")
	fb := cb.NewFunction("f", nil, nil, VisibilityPublic, MutabilityMutable)
	entry := fb.Entry()
	target := fb.Block()
	target.AddParam(Uint(256))
	target.Return(nil)
	target.Seal()

	entry.Jump(target.Block().ID, nil) // missing the one required argument
	entry.Seal()

	v := reg.Validate()
	if !v.HasErrors() {
		t.Fatalf("expected a validation error for a block-parameter arity mismatch")
	}
}

func TestValidateRejectsStorageWriteInViewFunction(t *testing.T) {
	reg := NewRegistry()
	cb := reg.DeclareContract("C")
	cb.DeclareStorageSlot("x", Uint(256), 0, true)
	fb := cb.NewFunction("f", []Type{Uint(256)}, nil, VisibilityPublic, MutabilityView)
	entry := fb.Entry()
	entry.StorageStore(0, fb.Function().Params[0])
	entry.Return(nil)
	entry.Seal()

	v := reg.Validate()
	if !v.HasErrors() {
		t.Fatalf("expected a validation error for storage_store inside a view function")
	}
}

func TestValidateRejectsStorageSlotCollision(t *testing.T) {
	reg := NewRegistry()
	cb := reg.DeclareContract("C")
	cb.DeclareStorageSlot("a", Uint(256), 5, true)
	cb.DeclareStorageSlot("b", Address(), 5, true)

	v := reg.Validate()
	if !v.HasErrors() {
		t.Fatalf("expected a validation error for two storage variables sharing slot 5")
	}
}
