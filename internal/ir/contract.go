// SPDX-License-Identifier: Apache-2.0
package ir

// EventDef is one event declaration: its name, the ABI types of its
// fields, and which fields are indexed (become topics rather than data).
type EventDef struct {
	Name    string
	Fields  []Type
	Indexed []bool
}

// ModifierDef names a function-modifier slot a Contract declares; the core
// records only the name and signature, since modifier bodies are inlined
// into the functions that use them by the time IR is built; the core has
// no notion of "wrapping" control flow, only the flattened result.
type ModifierDef struct {
	Name   string
	Params []Type
}

// ContractMetadata is the compilation-unit-level derived/declared metadata
// for a Contract: a frontend-supplied version tag, a set of named security
// flags an auditor tool attached (e.g. "reentrancy-guarded"), an
// optimization hint the core never interprets itself, a source hash for
// provenance, and an optional reference to the original source (never the
// source text itself — the core has no AST and does not retain one).
type ContractMetadata struct {
	Version          string
	SecurityFlags    []string
	OptimizationHint string
	SourceHash       [32]byte
	SourceRef        string
}

// Contract is the top-level compilation unit: its storage layout (scalar
// slots plus the mapping/array/struct layout records storage.go declares),
// its functions, and the events/modifiers it declares. A Program (the
// textual bridge's top-level document) is a set of Contracts.
type Contract struct {
	Name      string
	Storage   []StorageSlot
	Mappings  []MappingLayout
	Arrays    []ArrayLayout
	Structs   []StructLayout
	Functions []*Function
	Events    []EventDef
	Modifiers []ModifierDef
	Metadata  ContractMetadata
}

// FindFunction looks up a function by name within this contract.
func (c *Contract) FindFunction(name string) (*Function, bool) {
	for _, f := range c.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// FindEvent looks up an event declaration by name.
func (c *Contract) FindEvent(name string) (*EventDef, bool) {
	for i := range c.Events {
		if c.Events[i].Name == name {
			return &c.Events[i], true
		}
	}
	return nil, false
}

// FindStorageSlot looks up a declared storage variable by name.
func (c *Contract) FindStorageSlot(name string) (*StorageSlot, bool) {
	for i := range c.Storage {
		if c.Storage[i].Name == name {
			return &c.Storage[i], true
		}
	}
	return nil, false
}

// NextFreeSlot returns one past the highest slot in c.Storage (0 when it
// is empty), the layout-assignment policy the Builder uses when a caller
// does not pin an explicit slot. Gaps below that slot are not reused, and
// mapping/array/struct base slots are not considered.
func (c *Contract) NextFreeSlot() uint64 {
	var max uint64
	seen := false
	for _, s := range c.Storage {
		if !seen || s.Slot > max {
			max = s.Slot
			seen = true
		}
	}
	if !seen {
		return 0
	}
	return max + 1
}

// Program is the textual bridge's top-level document: zero or more
// contracts. The core itself never requires a Program wrapper — a Registry
// (builder.go) is the live construction-time analog — but the printer and
// parser both operate on this shape so a round trip has a single document
// type to compare.
type Program struct {
	Contracts []*Contract
}
