// SPDX-License-Identifier: Apache-2.0
package ir

import (
	"fmt"
	"sort"
	"strings"
)

// Printer renders a Program to the textual IR format the irtext package
// parses back: a function's whole body sits inside one brace pair, blocks
// are colon-terminated labels rather than their own nested braces, and an
// instruction's operands are a flat comma-separated list with no enclosing
// parentheses — `function %f(i256) -> i256 { block0(v0: i256): return v0 }`
// is valid input end to end. Only the handful of genuinely variable-arity
// forms (call/extern_call/emit/abi_encode/bn256_pairing, and a block target's argument
// list) keep parentheses, since nothing else bounds their operand count.
type Printer struct {
	sb   strings.Builder
	c    *Contract // nil when printing a bare function (PrintFunction)
}

func Print(p *Program) string {
	pr := &Printer{}
	pr.printProgram(p)
	return pr.sb.String()
}

func PrintFunction(f *Function) string {
	pr := &Printer{}
	pr.printFunction(f)
	return pr.sb.String()
}

func (p *Printer) printProgram(prog *Program) {
	for i, c := range prog.Contracts {
		if i > 0 {
			p.sb.WriteString("\n")
		}
		p.printContract(c)
	}
}

func (p *Printer) printContract(c *Contract) {
	prev := p.c
	p.c = c
	defer func() { p.c = prev }()

	fmt.Fprintf(&p.sb, "contract %s {\n", c.Name)

	slots := append([]StorageSlot(nil), c.Storage...)
	sort.Slice(slots, func(i, j int) bool { return slots[i].Slot < slots[j].Slot })
	for _, s := range slots {
		if s.packed() {
			fmt.Fprintf(&p.sb, "  storage slot%d: %s = %s @%d:%d\n", s.Slot, s.Name, s.Type.String(), s.Offset, s.Size)
		} else {
			fmt.Fprintf(&p.sb, "  storage slot%d: %s = %s\n", s.Slot, s.Name, s.Type.String())
		}
	}
	for _, m := range c.Mappings {
		fmt.Fprintf(&p.sb, "  mapping map%d: %s = mapping<%s, %s>\n", m.Base, m.Name, m.Key.String(), m.Value.String())
	}
	for _, a := range c.Arrays {
		if a.Dynamic {
			fmt.Fprintf(&p.sb, "  array arr%d: %s = array<%s>\n", a.Base, a.Name, a.Element.String())
		} else {
			fmt.Fprintf(&p.sb, "  array arr%d: %s = array<%s, %d>\n", a.Base, a.Name, a.Element.String(), a.Length)
		}
	}
	for _, s := range c.Structs {
		var fields []string
		for _, f := range s.Fields {
			fields = append(fields, fmt.Sprintf("%s: %s @%d", f.Name, f.Type.String(), f.Offset))
		}
		fmt.Fprintf(&p.sb, "  struct struct%d: %s { %s }\n", s.Base, s.Name, strings.Join(fields, ", "))
	}

	for _, ev := range c.Events {
		fmt.Fprintf(&p.sb, "  event %s(%s)\n", ev.Name, fieldList(ev.Fields, ev.Indexed))
	}

	for _, f := range c.Functions {
		p.sb.WriteString("\n")
		p.printFunctionIndented(f, "  ")
	}
	p.sb.WriteString("}\n")
}

func fieldList(fields []Type, indexed []bool) string {
	parts := make([]string, len(fields))
	for i, t := range fields {
		tag := ""
		if i < len(indexed) && indexed[i] {
			tag = "indexed "
		}
		parts[i] = tag + t.String()
	}
	return strings.Join(parts, ", ")
}

func (p *Printer) printFunction(f *Function) { p.printFunctionIndented(f, "") }

func (p *Printer) printFunctionIndented(f *Function, indent string) {
	argTypes := make([]string, len(f.ParamTypes))
	for i, t := range f.ParamTypes {
		argTypes[i] = t.String()
	}
	ret := ""
	if len(f.Returns) > 0 {
		retTypes := make([]string, len(f.Returns))
		for i, t := range f.Returns {
			retTypes[i] = t.String()
		}
		ret = " -> " + strings.Join(retTypes, ", ")
	}
	vis := visString(f.Visibility, f.Mutability, f.Payable)
	fmt.Fprintf(&p.sb, "%sfunction %%%s(%s)%s %s{\n", indent, f.Name, strings.Join(argTypes, ", "), ret, vis)

	for _, b := range f.Blocks {
		p.printBlock(f, b, indent+"  ")
	}
	fmt.Fprintf(&p.sb, "%s}\n", indent)
}

func visString(vis Visibility, mut Mutability, payable bool) string {
	var parts []string
	switch vis {
	case VisibilityPublic:
		parts = append(parts, "public")
	case VisibilityExternal:
		parts = append(parts, "external")
	}
	switch mut {
	case MutabilityView:
		parts = append(parts, "view")
	case MutabilityPure:
		parts = append(parts, "pure")
	}
	if payable {
		parts = append(parts, "payable")
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, ", ") + "] "
}

func (p *Printer) printBlock(f *Function, b *BasicBlock, indent string) {
	params := make([]string, len(b.Params))
	for i, v := range b.Params {
		params[i] = fmt.Sprintf("v%d: %s", v, f.ValueType(v).String())
	}
	fmt.Fprintf(&p.sb, "%sblock%d(%s):\n", indent, b.ID, strings.Join(params, ", "))

	for _, id := range b.Insts {
		p.printInst(f, f.Inst(id), indent+"  ")
	}
	p.printTerminator(f, b.Terminator, indent+"  ")
}

// baseTokenPrefix names the layout-reference token a base slot prints as:
// "arr" if a declared ArrayLayout claims it, "map" otherwise (the common
// case, and the only option when no Contract context is available at all,
// e.g. printing a bare function).
func (p *Printer) baseTokenPrefix(base uint64) string {
	if p.c != nil {
		for _, a := range p.c.Arrays {
			if a.Base == base {
				return "arr"
			}
		}
	}
	return "map"
}

func (p *Printer) printInst(f *Function, inst *Instruction, indent string) {
	lhs := ""
	if len(inst.Results) > 0 {
		results := make([]string, len(inst.Results))
		for i, v := range inst.Results {
			results[i] = fmt.Sprintf("v%d", v)
		}
		lhs = strings.Join(results, ", ") + " = "
	}

	mnemonic := inst.Op.String()
	if suffix := resultTypeSuffix(inst); suffix != "" {
		mnemonic += "." + suffix
	}

	operands := p.operandStrings(inst)
	line := mnemonic
	if len(operands) > 0 {
		line += " " + strings.Join(operands, ", ")
	}
	fmt.Fprintf(&p.sb, "%s%s%s\n", indent, lhs, line)
}

// resultTypeSuffix names the `.type` annotation an opcode's textual form
// carries when its result type cannot be recovered from its operands alone
// (a storage/memory read's type depends on declared layout, a conversion's
// target width is the point of the instruction, and OpConstant has no
// operands at all).
func resultTypeSuffix(inst *Instruction) string {
	switch inst.Op {
	case OpStorageLoad, OpKeyedStorageLoad, OpLoadDynamic, OpArrayPop,
		OpStructFieldLoad, OpPackedLoad, OpConstant:
		if len(inst.ResultTypes) > 0 {
			return inst.ResultTypes[0].String()
		}
	case OpZext, OpSext, OpTrunc:
		if len(inst.ResultTypes) > 0 {
			return inst.ResultTypes[0].String()
		}
	}
	return ""
}

func (p *Printer) operandStrings(inst *Instruction) []string {
	vals := func() []string {
		out := make([]string, len(inst.Operands))
		for i, v := range inst.Operands {
			out[i] = fmt.Sprintf("v%d", v)
		}
		return out
	}

	switch inst.Op {
	case OpStorageLoad, OpStorageStore:
		return append([]string{fmt.Sprintf("slot%d", inst.Imm.Slot)}, vals()...)
	case OpKeyedStorageLoad, OpKeyedStorageStore, OpStorageSlotAddr:
		return append([]string{fmt.Sprintf("%s%d", p.baseTokenPrefix(inst.Imm.BaseSlot), inst.Imm.BaseSlot)}, vals()...)
	case OpLoadDynamic, OpStoreDynamic:
		return vals()
	case OpArrayLength, OpArrayPush, OpArrayPop:
		return append([]string{fmt.Sprintf("arr%d", inst.Imm.BaseSlot)}, vals()...)
	case OpStructFieldLoad, OpStructFieldStore:
		return append([]string{fmt.Sprintf("struct%d", inst.Imm.BaseSlot), fmt.Sprintf("%d", inst.Imm.FieldOffset)}, vals()...)
	case OpPackedLoad, OpPackedStore:
		return append([]string{fmt.Sprintf("slot%d", inst.Imm.Slot), fmt.Sprintf("%d", inst.Imm.PackedOffset), fmt.Sprintf("%d", inst.Imm.PackedSize)}, vals()...)
	case OpCheckedAdd, OpCheckedSub, OpCheckedMul:
		return append(vals(), fmt.Sprintf("block%d", inst.Imm.RevertTarget))
	case OpCall:
		return []string{"%" + inst.Imm.Callee + "(" + strings.Join(vals(), ", ") + ")"}
	case OpExternCall:
		addr := vals()[0]
		return []string{addr + "(" + strings.Join(vals()[1:], ", ") + ")"}
	case OpEmit:
		return []string{inst.Imm.EventName + "(" + strings.Join(vals(), ", ") + ")"}
	case OpEventSignatureHash:
		return []string{inst.Imm.EventName}
	case OpAbiEncode, OpBn256Pairing:
		return []string{"(" + strings.Join(vals(), ", ") + ")"}
	case OpConstant:
		return []string{constString(inst.Imm.Const)}
	default:
		return vals()
	}
}

func constString(c ConstantValue) string {
	switch c.Kind {
	case ConstKindUint, ConstKindInt:
		return c.Int.String()
	case ConstKindBool:
		return fmt.Sprintf("%v", c.Bool)
	case ConstKindAddress:
		return fmt.Sprintf("0x%x", c.Address)
	case ConstKindBytes:
		return fmt.Sprintf("0x%x", c.Bytes)
	default:
		return "?"
	}
}

func (p *Printer) printTerminator(f *Function, t Terminator, indent string) {
	switch term := t.(type) {
	case *Jump:
		fmt.Fprintf(&p.sb, "%sjump %s\n", indent, targetString(term.Target, term.Args))
	case *Branch:
		fmt.Fprintf(&p.sb, "%sbranch v%d, %s, %s\n", indent, term.Cond,
			targetString(term.IfTrue, term.TrueArgs), targetString(term.IfFalse, term.FalseArgs))
	case *Switch:
		var cases []string
		for _, c := range term.Cases {
			cases = append(cases, fmt.Sprintf("case %s: %s", constString(c.Match), targetString(c.Target, c.Args)))
		}
		fmt.Fprintf(&p.sb, "%sswitch v%d, %s, default: %s\n", indent, term.Value,
			strings.Join(cases, ", "), targetString(term.Default, term.DefaultArgs))
	case *Return:
		if len(term.Values) == 0 {
			fmt.Fprintf(&p.sb, "%sreturn\n", indent)
		} else {
			fmt.Fprintf(&p.sb, "%sreturn %s\n", indent, valueList(term.Values))
		}
	case *Revert:
		if term.HasCode {
			fmt.Fprintf(&p.sb, "%srevert %d\n", indent, term.Code)
		} else {
			fmt.Fprintf(&p.sb, "%srevert\n", indent)
		}
	case *Panic:
		fmt.Fprintf(&p.sb, "%spanic %q\n", indent, term.Reason)
	case *Invalid:
		fmt.Fprintf(&p.sb, "%sinvalid\n", indent)
	}
}

func targetString(b BlockID, args []Value) string {
	return fmt.Sprintf("block%d(%s)", b, valueList(args))
}

func valueList(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprintf("v%d", v)
	}
	return strings.Join(parts, ", ")
}
