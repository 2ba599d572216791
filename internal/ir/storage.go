// SPDX-License-Identifier: Apache-2.0
package ir

// StorageSlot describes one declared storage variable's layout: its base
// slot, an optional sub-slot bit offset/size for values packed alongside
// others at the same slot, and the names of the other variables sharing
// that slot. A slot with Size 0 occupies the whole 256-bit word (the common
// case); Size > 0 marks a packed sub-slot field, the shape
// StorageLocation::Packed{slot, offset, size} takes in the source this is
// grounded on.
type StorageSlot struct {
	Name string
	Slot uint64
	Type Type

	// Offset/Size describe a bit-packed sub-slot field: Offset is the bit
	// position within the 256-bit slot where this value starts, Size the
	// number of bits it occupies. Zero Size means "whole slot," the
	// unpacked common case.
	Offset uint8
	Size   uint8

	// PackedWith lists the names of the other storage slots declared at
	// the same Slot number, kept in sync by ContractBuilder.DeclarePackedSlot
	// so a reader can see a packed word's full layout from any one of its
	// fields without re-scanning Contract.Storage.
	PackedWith []string
}

// packed reports whether s occupies a sub-slot range rather than the whole
// 256-bit word.
func (s StorageSlot) packed() bool { return s.Size > 0 }

// overlaps reports whether s and o claim intersecting bits of the same
// storage slot. Two declarations at different slot numbers never overlap;
// two whole-slot declarations at the same slot always do (the plain
// collision case); two packed declarations at the same slot only overlap if
// their [Offset, Offset+Size) ranges intersect, the bit-packing exception
// this type's layout exists to express.
func (s StorageSlot) overlaps(o StorageSlot) bool {
	if s.Slot != o.Slot {
		return false
	}
	if !s.packed() || !o.packed() {
		return true
	}
	sEnd := int(s.Offset) + int(s.Size)
	oEnd := int(o.Offset) + int(o.Size)
	return int(s.Offset) < oEnd && int(o.Offset) < sEnd
}

// MappingLayout is one declared `mapping` storage variable: a base slot a
// key's derived slot is computed relative to (StorageLocation::Mapping in
// the source this is grounded on), plus its key/value types for the
// textual bridge and any typed frontend.
type MappingLayout struct {
	Name  string
	Base  uint64
	Key   Type
	Value Type
}

// ArrayLayout is one declared storage-backed array: a base slot, its
// element type, and whether it is statically sized (Dynamic false, Length
// meaningful) or dynamically sized (Dynamic true, length tracked at
// Base itself the way a Solidity-style dynamic array keeps its length in
// its base slot). Mirrors StorageLocation::ArrayElement{base, index}.
type ArrayLayout struct {
	Name    string
	Base    uint64
	Element Type
	Dynamic bool
	Length  uint32
}

// StructField is one field of a declared storage struct: its name, type,
// and byte offset from the struct's base slot (StorageLocation::StructField
// in the source this is grounded on uses the same base+offset shape).
type StructField struct {
	Name   string
	Type   Type
	Offset uint8
}

// StructLayout is one declared storage-backed struct: a base slot and its
// ordered fields.
type StructLayout struct {
	Name   string
	Base   uint64
	Fields []StructField
}
