// SPDX-License-Identifier: Apache-2.0
package ir

// Terminator is the closed set of instructions that may end a BasicBlock
// (Jump, Branch, Switch, Return, Revert, Panic, Invalid). Unlike
// the generic Instruction, the terminator set is small and fixed, so it
// keeps a one-interface-per-kind shape rather than being folded into the
// single-Instruction design.
type Terminator interface {
	isTerminator()
	// Successors returns every block this terminator may transfer control
	// to, in the order its own operand/target list defines them.
	Successors() []BlockID
}

// Jump transfers control unconditionally to Target, passing Args as that
// block's parameters.
type Jump struct {
	Target BlockID
	Args   []Value
}

func (*Jump) isTerminator()          {}
func (j *Jump) Successors() []BlockID { return []BlockID{j.Target} }

// Branch transfers control to IfTrue or IfFalse depending on Cond, each
// with its own argument list for the target's block parameters.
type Branch struct {
	Cond     Value
	IfTrue   BlockID
	TrueArgs []Value

	IfFalse   BlockID
	FalseArgs []Value
}

func (*Branch) isTerminator() {}
func (b *Branch) Successors() []BlockID {
	return []BlockID{b.IfTrue, b.IfFalse}
}

// SwitchCase pairs a matched constant with its target block and arguments.
type SwitchCase struct {
	Match ConstantValue
	Target BlockID
	Args   []Value
}

// Switch transfers control to the case matching Value, or to Default if
// none match.
type Switch struct {
	Value   Value
	Cases   []SwitchCase
	Default BlockID
	DefaultArgs []Value
}

func (*Switch) isTerminator() {}
func (s *Switch) Successors() []BlockID {
	out := make([]BlockID, 0, len(s.Cases)+1)
	for _, c := range s.Cases {
		out = append(out, c.Target)
	}
	return append(out, s.Default)
}

// Return exits the function normally with Values matching its Signature's
// return types.
type Return struct {
	Values []Value
}

func (*Return) isTerminator()            {}
func (*Return) Successors() []BlockID    { return nil }

// Revert aborts the enclosing transaction, unwinding all storage effects,
// optionally carrying a diagnostic code and/or an encoded message value.
type Revert struct {
	Code    uint32
	HasCode bool
	Message Value // InvalidValue if no message
}

func (*Revert) isTerminator()         {}
func (*Revert) Successors() []BlockID { return nil }

// Panic aborts on an implementation-detected invariant violation (e.g.
// array out-of-bounds), distinct from a source-level Revert.
type Panic struct {
	Reason string
}

func (*Panic) isTerminator()         {}
func (*Panic) Successors() []BlockID { return nil }

// Invalid marks a block deliberately left unterminated, e.g. mid-construction
// under a Builder/Cursor before the caller has decided how to close it.
// Registry.Validate rejects any block still carrying Invalid.
type Invalid struct{}

func (*Invalid) isTerminator()         {}
func (*Invalid) Successors() []BlockID { return nil }
