// SPDX-License-Identifier: Apache-2.0
package koerrors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIRErrorMessage(t *testing.T) {
	err := New(TypeError, CodeTypeMismatch, "operand types disagree").
		WithFunction("Token::transfer")

	msg := err.Error()
	assert.Contains(t, msg, "TypeError")
	assert.Contains(t, msg, string(CodeTypeMismatch))
	assert.Contains(t, msg, "Token::transfer")
}

func TestValidationErrorAccumulates(t *testing.T) {
	v := &ValidationError{}
	require.False(t, v.HasErrors())

	v.Add(New(InvalidInstruction, CodeDanglingBlockRef, "jump to unknown block"))
	v.Add(New(BuilderError, CodeClosedBlockEmit, "emit into closed block"))

	require.True(t, v.HasErrors())
	assert.Len(t, v.Errors, 2)
	assert.Contains(t, v.Error(), "2 validation errors")
}

func TestReporterFormatsCaretAtPosition(t *testing.T) {
	src := "function %f(i256) -> i256 {\n  block0(v0: i256):\n    return v0\n}\n"
	r := NewReporter("sample.kir", src)

	err := New(InvalidInstruction, CodeInvalidTerminator, "block carries Invalid terminator").
		WithPos(Pos{Filename: "sample.kir", Line: 2, Column: 3})

	out := r.Format(err)
	assert.True(t, strings.Contains(out, "sample.kir:2:3"))
	assert.True(t, strings.Contains(out, "block0(v0: i256):"))
}

func TestReporterWithoutPositionStaysOneLine(t *testing.T) {
	r := NewReporter("sample.kir", "")
	err := New(ContractNotFound, CodeContractNotFound, "no such contract: Token")
	out := r.Format(err)
	assert.Contains(t, out, "no such contract: Token")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}
