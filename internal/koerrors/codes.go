// SPDX-License-Identifier: Apache-2.0
package koerrors

// Kind is the stable error taxonomy a caller of the IR core can observe.
// Every error the core returns maps to exactly one of these.
type Kind string

const (
	// TypeError: an instruction's operand types do not satisfy its typing rule.
	TypeError Kind = "TypeError"

	// InvalidInstruction: structurally malformed IR (e.g. block parameter
	// count mismatch on a jump, dangling block id).
	InvalidInstruction Kind = "InvalidInstruction"

	// BuilderError: construction-layer misuse (unpositioned cursor, closed
	// block, unresolved forward reference at build time).
	BuilderError Kind = "BuilderError"

	// ContractNotFound: a registry lookup by contract name failed.
	ContractNotFound Kind = "ContractNotFound"

	// SymbolNotFound: a function/event/modifier lookup by name failed.
	SymbolNotFound Kind = "SymbolNotFound"

	// TransformError: a frontend could not map source to IR. The core
	// never produces these itself; it only accepts them as opaque when a
	// collaborator reports one through the same reporter.
	TransformError Kind = "TransformError"

	// CodegenError: a backend could not lower an instruction.
	CodegenError Kind = "CodegenError"
)

// Code is a stable short identifier, analogous to compiler E0001-style
// codes, scoped to this taxonomy instead of source diagnostics.
type Code string

const (
	CodeTypeMismatch          Code = "IR0001"
	CodeArityMismatch         Code = "IR0002"
	CodeUnterminatedBlock     Code = "IR0003"
	CodeInvalidTerminator     Code = "IR0004"
	CodeDanglingBlockRef      Code = "IR0005"
	CodeMultipleDefinitions   Code = "IR0006"
	CodeUseNotDominated       Code = "IR0007"
	CodeSlotCollision         Code = "IR0008"
	CodeClosedBlockEmit       Code = "IR0009"
	CodeCursorUnpositioned    Code = "IR0010"
	CodeForwardRefUnresolved  Code = "IR0011"
	CodeContractNotFound      Code = "IR0100"
	CodeFunctionNotFound      Code = "IR0101"
	CodeEventNotFound         Code = "IR0102"
	CodeModifierNotFound      Code = "IR0103"
	CodeUnsupportedSourceType Code = "IR0200"
	CodeCodegenUnhandledOp    Code = "IR0300"
)
