// SPDX-License-Identifier: Apache-2.0
package ir

import "testing"

func TestTypeEqualityStructural(t *testing.T) {
	a := Mapping(Address(), Uint(256))
	b := Mapping(Address(), Uint(256))
	if !a.Equal(b) {
		t.Fatalf("expected structurally identical mapping types to be Equal")
	}

	c := Mapping(Address(), Uint(128))
	if a.Equal(c) {
		t.Fatalf("mapping types with different value width must not be Equal")
	}
}

func TestArrayFixedVsDynamic(t *testing.T) {
	n := uint32(4)
	fixed := Array(Uint(256), &n)
	dyn := Array(Uint(256), nil)
	if fixed.Equal(dyn) {
		t.Fatalf("a fixed-length array must not equal a dynamic array of the same element type")
	}
	length, ok := fixed.ArrayLength()
	if !ok || length != 4 {
		t.Fatalf("expected fixed array length 4, got %d, ok=%v", length, ok)
	}
	if _, ok := dyn.ArrayLength(); ok {
		t.Fatalf("dynamic array must report no fixed length")
	}
}

func TestStructTypeIdentityByName(t *testing.T) {
	a := StructType("Position")
	b := StructType("Position")
	c := StructType("Order")
	if !a.Equal(b) {
		t.Fatalf("structs with the same name must be Equal")
	}
	if a.Equal(c) {
		t.Fatalf("structs with different names must not be Equal")
	}
}

func TestFunctionTypeSignatureEquality(t *testing.T) {
	sig1 := &Signature{Params: []Type{Uint(256), Address()}, Returns: []Type{Bool()}}
	sig2 := &Signature{Params: []Type{Uint(256), Address()}, Returns: []Type{Bool()}}
	sig3 := &Signature{Params: []Type{Uint(256)}, Returns: []Type{Bool()}}

	if !FunctionType(sig1).Equal(FunctionType(sig2)) {
		t.Fatalf("identical signatures must produce Equal function types")
	}
	if FunctionType(sig1).Equal(FunctionType(sig3)) {
		t.Fatalf("different arities must not produce Equal function types")
	}
}
