// SPDX-License-Identifier: Apache-2.0
// Package irtext is the textual bridge: it renders and re-parses the IR
// core's in-memory form, split between a participle-based lexer for the
// outer token shape and a hand-written recursive-descent parser for the
// per-opcode operand shapes.
package irtext

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// irLexer tokenizes the textual IR format produced by ir.Print: a block's
// instructions are a flat comma-separated operand list with no enclosing
// parentheses (function0(...) -> ... { block0(...): op a, b ... }, the shape
// thalir-parser's own fixtures use), so unlike an s-expression-flavored
// format the lexer must hand the parser enough punctuation (`%`, `.`, `@`)
// to recognize function sigils, opcode/type suffixes, and struct-field
// offsets without relying on paren nesting.
var irLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `;[^\n]*`, Action: nil},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`, Action: nil},
		{Name: "Number", Pattern: `0x[0-9a-fA-F]+|-?[0-9]+`, Action: nil},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`, Action: nil},
		{Name: "Arrow", Pattern: `->`, Action: nil},
		{Name: "Punct", Pattern: `[{}(),:=\[\]<>.%@]`, Action: nil},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})
