// SPDX-License-Identifier: Apache-2.0
package irtext

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"conir/internal/ir"
)

// Parser reconstructs a *ir.Registry from text in the format ir.Print
// emits, driving ir.Builder/ir.Cursor exclusively — it never constructs an
// ir.Function's fields directly, so Parse(Print(reg)) exercises the same
// construction path a frontend would use, the property the textual round-
// trip bridge requires.
//
// The grammar has no enclosing parentheses around a fixed-arity
// instruction's operands and no per-block braces: a block is a
// colon-terminated label (`block0(v0: i256):`) followed by its
// instructions, and the whole function body sits inside one brace pair
// (`function %f(i256) -> i256 { block0(v0: i256): return v0 }`).
// Parenthesized argument lists survive only where arity genuinely isn't
// fixed: call/extern_call/emit/abi_encode/bn256_pairing operand groups and a block
// target's argument list.
type Parser struct {
	toks []lexer.Token
	pos  int

	values map[string]ir.Value
	// slotTypes/baseTypes let a contract-scoped parse recover a storage
	// read's result type from its declared layout instead of requiring a
	// redundant `.type` suffix; a bare ParseFunction parse (no declarations
	// in scope) always relies on the suffix instead.
	slotTypes map[uint64]ir.Type
	baseTypes map[uint64]ir.Type
}

// Parse tokenizes src and builds a fresh Registry from it.
func Parse(src string) (reg *ir.Registry, err error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			reg, err = nil, fmt.Errorf("irtext: parse error: %v", r)
		}
	}()

	reg = ir.NewRegistry()
	for !p.done() {
		if p.consumeDirective() {
			continue
		}
		p.parseContract(reg)
	}
	return reg, nil
}

// ParseFunction parses a single bare function definition with no
// surrounding contract — the shape a top-level textual IR fixture uses
// (`function %f(i256) -> i256 { block0(v0: i256): return v0 }`) — via a
// throwaway contract so the same Builder-driven construction path is
// exercised.
func ParseFunction(src string) (f *ir.Function, err error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			f, err = nil, fmt.Errorf("irtext: parse error: %v", r)
		}
	}()

	reg := ir.NewRegistry()
	cb := reg.DeclareContract("_")
	for !p.done() {
		if p.consumeDirective() {
			continue
		}
		fb := p.parseFunction(cb)
		f = fb.Function()
	}
	if f == nil {
		return nil, fmt.Errorf("irtext: no function found in input")
	}
	return f, nil
}

func newParser(src string) (*Parser, error) {
	lex, err := lexer.LexString(irLexer, "<ir>", src)
	if err != nil {
		return nil, fmt.Errorf("irtext: lex: %w", err)
	}
	toks, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, fmt.Errorf("irtext: lex: %w", err)
	}
	symbols := irLexer.Symbols()
	skip := map[lexer.TokenType]bool{
		symbols["Whitespace"]: true,
		symbols["Comment"]:    true,
		lexer.EOF:             true,
	}
	var filtered []lexer.Token
	for _, t := range toks {
		if !skip[t.Type] {
			filtered = append(filtered, t)
		}
	}
	return &Parser{toks: filtered, slotTypes: map[uint64]ir.Type{}, baseTypes: map[uint64]ir.Type{}}, nil
}

func (p *Parser) done() bool { return p.pos >= len(p.toks) }

func (p *Parser) peek() string {
	if p.done() {
		return ""
	}
	return p.toks[p.pos].Value
}

func (p *Parser) peekAt(off int) string {
	if p.pos+off >= len(p.toks) {
		return ""
	}
	return p.toks[p.pos+off].Value
}

func (p *Parser) next() string {
	if p.done() {
		panic("unexpected end of input")
	}
	v := p.toks[p.pos].Value
	p.pos++
	return v
}

func (p *Parser) expect(v string) string {
	got := p.next()
	if got != v {
		panic(fmt.Sprintf("expected %q, got %q", v, got))
	}
	return got
}

// consumeDirective recognizes and discards the module-scope `test <name>`,
// `set <key> = <value>`, and `target <name>` directives a textual IR
// document may lead with; the core has no notion of any of the three, so
// they carry no semantic weight here beyond being valid, ignorable input.
func (p *Parser) consumeDirective() bool {
	switch p.peek() {
	case "test", "target":
		p.next()
		p.next()
		return true
	case "set":
		p.next()
		p.next()
		p.expect("=")
		p.next()
		return true
	default:
		return false
	}
}

func (p *Parser) parseContract(reg *ir.Registry) {
	p.expect("contract")
	name := p.next()
	cb := reg.DeclareContract(name)
	p.expect("{")
	for p.peek() != "}" {
		switch p.peek() {
		case "storage":
			p.parseStorage(cb)
		case "mapping":
			p.parseMapping(cb)
		case "array":
			p.parseArray(cb)
		case "struct":
			p.parseStruct(cb)
		case "event":
			p.parseEvent(cb)
		case "function":
			p.parseFunction(cb)
		default:
			panic("unexpected token in contract body: " + p.peek())
		}
	}
	p.expect("}")
}

func (p *Parser) parseStorage(cb *ir.ContractBuilder) {
	p.expect("storage")
	slot := p.layoutRef("slot")
	p.expect(":")
	name := p.next()
	p.expect("=")
	t := p.parseType()
	if p.peek() == "@" {
		p.next()
		offset := p.parseUint8()
		p.expect(":")
		size := p.parseUint8()
		ss := cb.DeclarePackedSlot(name, t, slot, offset, size)
		p.slotTypes[ss.Slot] = t
		return
	}
	ss := cb.DeclareStorageSlot(name, t, slot, true)
	p.slotTypes[ss.Slot] = t
}

func (p *Parser) parseMapping(cb *ir.ContractBuilder) {
	p.expect("mapping")
	base := p.layoutRef("map")
	p.expect(":")
	name := p.next()
	p.expect("=")
	t := p.parseType()
	if t.Tag() != ir.TagMapping {
		panic("mapping declaration requires a mapping<K, V> type")
	}
	ml := cb.DeclareMapping(name, t.KeyType(), t.ValueType(), base)
	p.baseTypes[ml.Base] = t.ValueType()
}

func (p *Parser) parseArray(cb *ir.ContractBuilder) {
	p.expect("array")
	base := p.layoutRef("arr")
	p.expect(":")
	name := p.next()
	p.expect("=")
	t := p.parseType()
	if t.Tag() != ir.TagArray {
		panic("array declaration requires an array<E> or array<E, N> type")
	}
	elem := t.ElemType()
	var length *uint32
	if n, ok := t.ArrayLength(); ok {
		length = &n
	}
	al := cb.DeclareArray(name, elem, base, length)
	p.baseTypes[al.Base] = elem
}

func (p *Parser) parseStruct(cb *ir.ContractBuilder) {
	p.expect("struct")
	base := p.layoutRef("struct")
	p.expect(":")
	name := p.next()
	p.expect("{")
	var fields []ir.StructField
	for p.peek() != "}" {
		fname := p.next()
		p.expect(":")
		ft := p.parseType()
		p.expect("@")
		off := p.parseUint8()
		fields = append(fields, ir.StructField{Name: fname, Type: ft, Offset: off})
		if p.peek() == "," {
			p.next()
		}
	}
	p.expect("}")
	cb.DeclareStruct(name, base, fields)
}

func (p *Parser) parseEvent(cb *ir.ContractBuilder) {
	p.expect("event")
	name := p.next()
	p.expect("(")
	var fields []ir.Type
	var indexed []bool
	for p.peek() != ")" {
		idx := false
		if p.peek() == "indexed" {
			p.next()
			idx = true
		}
		fields = append(fields, p.parseType())
		indexed = append(indexed, idx)
		if p.peek() == "," {
			p.next()
		}
	}
	p.expect(")")
	cb.DeclareEvent(name, fields, indexed)
}

// layoutRef parses a `<prefix>N` token (e.g. "slot0", "map3", "arr2",
// "struct1") as its trailing numeric id.
func (p *Parser) layoutRef(prefix string) uint64 {
	tok := p.next()
	if !strings.HasPrefix(tok, prefix) {
		panic(fmt.Sprintf("expected %s<N>, got %q", prefix, tok))
	}
	n, err := strconv.ParseUint(tok[len(prefix):], 10, 64)
	if err != nil {
		panic(err)
	}
	return n
}

func (p *Parser) parseUint8() uint8 {
	n, err := strconv.ParseUint(p.next(), 10, 8)
	if err != nil {
		panic(err)
	}
	return uint8(n)
}

// parseType reads one type token in the lowercase literal form
// ir.Type.String() renders: bool, u<n>, i<n>, address, bytes<n>, bytes,
// string, mapping<K, V>, array<E[, N]>, struct(Name).
func (p *Parser) parseType() ir.Type {
	tok := p.next()
	switch {
	case tok == "bool":
		return ir.Bool()
	case tok == "address":
		return ir.Address()
	case tok == "bytes":
		return ir.BytesDynamic()
	case tok == "string":
		return ir.StringType()
	case tok == "mapping":
		p.expect("<")
		key := p.parseType()
		p.expect(",")
		val := p.parseType()
		p.expect(">")
		return ir.Mapping(key, val)
	case tok == "array":
		p.expect("<")
		elem := p.parseType()
		var length *uint32
		if p.peek() == "," {
			p.next()
			n, err := strconv.ParseUint(p.next(), 10, 32)
			if err != nil {
				panic(err)
			}
			n32 := uint32(n)
			length = &n32
		}
		p.expect(">")
		return ir.Array(elem, length)
	case tok == "struct":
		p.expect("(")
		name := p.next()
		p.expect(")")
		return ir.StructType(name)
	case tok == "fn":
		p.expect("(")
		var params []ir.Type
		for p.peek() != ")" {
			params = append(params, p.parseType())
			if p.peek() == "," {
				p.next()
			}
		}
		p.expect(")")
		var returns []ir.Type
		if p.peek() == "->" {
			p.next()
			for p.peek() != "}" && p.peek() != ")" && p.peek() != "," {
				returns = append(returns, p.parseType())
				if p.peek() == "," {
					p.next()
				} else {
					break
				}
			}
		}
		return ir.FunctionType(&ir.Signature{Params: params, Returns: returns})
	case strings.HasPrefix(tok, "bytes"):
		n, err := strconv.Atoi(tok[5:])
		if err != nil {
			panic(err)
		}
		return ir.BytesFixed(n)
	case strings.HasPrefix(tok, "u"):
		n, err := strconv.Atoi(tok[1:])
		if err != nil {
			panic(err)
		}
		return ir.Uint(n)
	case strings.HasPrefix(tok, "i"):
		n, err := strconv.Atoi(tok[1:])
		if err != nil {
			panic(err)
		}
		return ir.Int(n)
	default:
		panic("unknown type token " + tok)
	}
}

func (p *Parser) parseFunction(cb *ir.ContractBuilder) *ir.FunctionBuilder {
	p.expect("function")
	p.expect("%")
	name := p.next()
	p.expect("(")
	var paramTypes []ir.Type
	for p.peek() != ")" {
		paramTypes = append(paramTypes, p.parseType())
		if p.peek() == "," {
			p.next()
		}
	}
	p.expect(")")

	var returns []ir.Type
	if p.peek() == "->" {
		p.next()
		for !isFuncHeaderEnd(p.peek()) {
			returns = append(returns, p.parseType())
			if p.peek() == "," {
				p.next()
			} else {
				break
			}
		}
	}

	vis, mut, payable := ir.VisibilityPrivate, ir.MutabilityMutable, false
	if p.peek() == "[" {
		p.next()
		for p.peek() != "]" {
			switch p.next() {
			case "public":
				vis = ir.VisibilityPublic
			case "external":
				vis = ir.VisibilityExternal
			case "view":
				mut = ir.MutabilityView
			case "pure":
				mut = ir.MutabilityPure
			case "payable":
				payable = true
			}
			if p.peek() == "," {
				p.next()
			}
		}
		p.expect("]")
	}

	fb := cb.NewFunction(name, paramTypes, returns, vis, mut)
	if payable {
		fb.MarkPayable()
	}
	p.expect("{")

	p.values = map[string]ir.Value{}
	for _, v := range fb.Function().Params {
		p.values[fmt.Sprintf("v%d", v)] = v
	}

	first := true
	for isBlockLabel(p.peek()) {
		var bb *ir.BlockBuilder
		if first {
			bb = fb.Entry()
			first = false
		} else {
			bb = fb.Block()
		}
		p.parseBlock(bb)
	}
	p.expect("}")
	return fb
}

// isFuncHeaderEnd reports whether tok ends a return-type list: either the
// visibility-annotation bracket or the function body's opening brace.
func isFuncHeaderEnd(tok string) bool {
	return tok == "[" || tok == "{"
}

func isBlockLabel(tok string) bool {
	if !strings.HasPrefix(tok, "block") {
		return false
	}
	_, err := strconv.ParseUint(tok[len("block"):], 10, 32)
	return err == nil
}

func (p *Parser) parseBlock(bb *ir.BlockBuilder) {
	p.next() // "blockN", id must match bb.Block().ID by construction order
	p.expect("(")
	for p.peek() != ")" {
		name := p.next()
		p.expect(":")
		t := p.parseType()
		v := bb.AddParam(t)
		p.values[name] = v
		if p.peek() == "," {
			p.next()
		}
	}
	p.expect(")")
	p.expect(":")

	for !isTerminatorKeyword(p.peek()) {
		p.parseStmt(bb)
	}
	p.parseTerminator(bb)
	bb.Seal()
}

func isTerminatorKeyword(tok string) bool {
	switch tok {
	case "jump", "branch", "switch", "return", "revert", "panic", "invalid":
		return true
	default:
		return false
	}
}

// parseStmt parses one `[vN[, vN...] = ]opcode[.type] operand, operand...`
// instruction line. A fixed-arity opcode's operand list has no enclosing
// parentheses and simply ends when no comma follows the last operand
// token; emitStmt knows each opcode's exact arity (or, for the handful of
// genuinely variadic opcodes, reads a parenthesized group instead).
func (p *Parser) parseStmt(bb *ir.BlockBuilder) {
	var results []string
	save := p.pos
	if strings.HasPrefix(p.peek(), "v") {
		for {
			results = append(results, p.next())
			if p.peek() == "," {
				p.next()
				continue
			}
			break
		}
		if p.peek() != "=" {
			p.pos = save
			results = nil
		} else {
			p.expect("=")
		}
	}

	opTok := p.next()
	op, typeSuffix := opTok, ""
	if p.peek() == "." {
		p.next()
		typeSuffix = p.parseTypeTokenString()
	}

	// Call/extern_call/emit each lead with one non-value head token (a
	// callee name, a target-address value, or an event name) before their
	// parenthesized, genuinely variable-arity value-operand group;
	// abi_encode/bn256_pairing have no head token at all. Everything else
	// is a flat, comma-terminated list of exactly opArity[op] operands, so
	// the parser never has to guess where one instruction's operands end
	// and the next statement begins.
	var args []string
	switch op {
	case "call":
		p.expect("%")
		callee := p.next()
		args = append([]string{callee}, p.parseParenGroup()...)
	case "extern_call", "emit":
		head := p.next()
		args = append([]string{head}, p.parseParenGroup()...)
	case "abi_encode", "bn256_pairing":
		args = p.parseParenGroup()
	case "phi":
		// no operands read: emitStmt rejects phi with its own diagnostic
	default:
		args = p.parseFixedOperands(op)
	}

	p.emitStmt(bb, results, op, args, typeSuffix)
}

// parseTypeTokenString reads the raw token(s) making up a `.type` suffix,
// without constructing an ir.Type (aggregate types never appear as a
// result-type suffix, so a single token always suffices here).
func (p *Parser) parseTypeTokenString() string {
	return p.next()
}

// opArity gives the exact flat-operand count for every non-variadic
// opcode — used instead of any lookahead heuristic, so a zero-arity
// instruction like `gas_left` never risks swallowing the next statement's
// leading token.
var opArity = map[string]int{
	"add": 2, "sub": 2, "mul": 2, "div": 2, "mod": 2,
	"checked_add": 3, "checked_sub": 3, "checked_mul": 3,
	"and": 2, "or": 2, "xor": 2, "not": 1, "shl": 2, "shr": 2,
	"eq": 2, "ne": 2, "lt": 2, "le": 2, "gt": 2, "ge": 2,
	"storage_load": 1, "storage_store": 2,
	"keyed_storage_load": 2, "keyed_storage_store": 3, "storage_slot_addr": 2,
	"load_dynamic": 1, "store_dynamic": 2,
	"array_length": 1, "array_push": 2, "array_pop": 1,
	"struct_field_load": 2, "struct_field_store": 3,
	"packed_load": 3, "packed_store": 4,
	"memory_alloc": 1, "memory_copy": 3, "memory_size": 0,
	"sender": 0, "origin": 0, "value": 0, "address_of": 0, "msg_data": 0, "msg_sig": 0,
	"block_number": 0, "block_timestamp": 0, "block_difficulty": 0, "block_gaslimit": 0,
	"block_coinbase": 0, "block_chainid": 0, "block_basefee": 0, "tx_gasprice": 0, "gas_left": 0,
	"event_signature_hash": 1, "topic_addr": 1,
	"keccak256": 1, "sha256": 1, "ripemd160": 1, "ecrecover": 4,
	"blake2": 1, "modexp": 3, "bn256_add": 4, "bn256_mul": 3,
	"assume": 1, "constant": 1, "zext": 1, "sext": 1, "trunc": 1,
}

func (p *Parser) parseFixedOperands(op string) []string {
	n, ok := opArity[op]
	if !ok {
		panic("unknown fixed-arity opcode " + op)
	}
	args := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 {
			p.expect(",")
		}
		args = append(args, p.next())
	}
	return args
}

func (p *Parser) parseParenGroup() []string {
	p.expect("(")
	var args []string
	for p.peek() != ")" {
		args = append(args, p.next())
		if p.peek() == "," {
			p.next()
		}
	}
	p.expect(")")
	return args
}

func (p *Parser) val(name string) ir.Value {
	v, ok := p.values[name]
	if !ok {
		panic("undefined value " + name)
	}
	return v
}

func (p *Parser) emitStmt(bb *ir.BlockBuilder, results []string, op string, args []string, typeSuffix string) {
	v := func(i int) ir.Value { return p.val(args[i]) }
	bind := func(result ir.Value) {
		if len(results) == 1 {
			p.values[results[0]] = result
		}
	}
	resultType := func() ir.Type {
		if typeSuffix != "" {
			return p.typeFromToken(typeSuffix)
		}
		return ir.Uint(256)
	}
	inferred := func(operand string) ir.Type { return p.inferredType(bb, operand) }

	switch op {
	case "add":
		bind(bb.Add(v(0), v(1), inferred(args[0])))
	case "sub":
		bind(bb.Sub(v(0), v(1), inferred(args[0])))
	case "mul":
		bind(bb.Mul(v(0), v(1), inferred(args[0])))
	case "div":
		bind(bb.Div(v(0), v(1), inferred(args[0])))
	case "mod":
		bind(bb.Mod(v(0), v(1), inferred(args[0])))
	case "checked_add":
		bind(bb.CheckedAdd(v(0), v(1), inferred(args[0]), p.blockID(args[2])))
	case "checked_sub":
		bind(bb.CheckedSub(v(0), v(1), inferred(args[0]), p.blockID(args[2])))
	case "checked_mul":
		bind(bb.CheckedMul(v(0), v(1), inferred(args[0]), p.blockID(args[2])))
	case "and":
		bind(bb.And(v(0), v(1), inferred(args[0])))
	case "or":
		bind(bb.Or(v(0), v(1), inferred(args[0])))
	case "xor":
		bind(bb.Xor(v(0), v(1), inferred(args[0])))
	case "not":
		bind(bb.Not(v(0), inferred(args[0])))
	case "shl":
		bind(bb.Shl(v(0), v(1), inferred(args[0])))
	case "shr":
		bind(bb.Shr(v(0), v(1), inferred(args[0])))
	case "eq":
		bind(bb.Eq(v(0), v(1)))
	case "ne":
		bind(bb.Ne(v(0), v(1)))
	case "lt":
		bind(bb.Lt(v(0), v(1)))
	case "le":
		bind(bb.Le(v(0), v(1)))
	case "gt":
		bind(bb.Gt(v(0), v(1)))
	case "ge":
		bind(bb.Ge(v(0), v(1)))
	case "storage_load":
		slot := p.layoutRefToken(args[0], "slot")
		bind(bb.StorageLoad(slot, p.slotResultType(slot, resultType())))
	case "storage_store":
		slot := p.layoutRefToken(args[0], "slot")
		bb.StorageStore(slot, v(1))
	case "keyed_storage_load":
		base := p.layoutRefTokenAny(args[0], "map", "arr")
		bind(bb.KeyedStorageLoad(base, v(1), p.baseResultType(base, resultType())))
	case "keyed_storage_store":
		base := p.layoutRefTokenAny(args[0], "map", "arr")
		bb.KeyedStorageStore(base, v(1), v(2))
	case "storage_slot_addr":
		base := p.layoutRefTokenAny(args[0], "map", "arr")
		bind(bb.StorageSlotAddr(base, v(1)))
	case "load_dynamic":
		bind(bb.LoadDynamic(v(0), resultType()))
	case "store_dynamic":
		bb.StoreDynamic(v(0), v(1))
	case "array_length":
		base := p.layoutRefToken(args[0], "arr")
		bind(bb.ArrayLength(base))
	case "array_push":
		base := p.layoutRefToken(args[0], "arr")
		bind(bb.ArrayPush(base, v(1)))
	case "array_pop":
		base := p.layoutRefToken(args[0], "arr")
		bind(bb.ArrayPop(base, p.baseResultType(base, resultType())))
	case "struct_field_load":
		base := p.layoutRefToken(args[0], "struct")
		off, _ := strconv.ParseUint(args[1], 10, 8)
		bind(bb.StructFieldLoad(base, uint8(off), resultType()))
	case "struct_field_store":
		base := p.layoutRefToken(args[0], "struct")
		off, _ := strconv.ParseUint(args[1], 10, 8)
		bb.StructFieldStore(base, uint8(off), v(2))
	case "packed_load":
		slot := p.layoutRefToken(args[0], "slot")
		off, _ := strconv.ParseUint(args[1], 10, 8)
		size, _ := strconv.ParseUint(args[2], 10, 8)
		bind(bb.PackedLoad(slot, uint8(off), uint8(size), resultType()))
	case "packed_store":
		slot := p.layoutRefToken(args[0], "slot")
		off, _ := strconv.ParseUint(args[1], 10, 8)
		size, _ := strconv.ParseUint(args[2], 10, 8)
		bb.PackedStore(slot, uint8(off), uint8(size), v(3))
	case "memory_alloc":
		bind(bb.MemoryAlloc(v(0)))
	case "memory_copy":
		bb.MemoryCopy(v(0), v(1), v(2))
	case "memory_size":
		bind(bb.MemorySize())
	case "sender":
		bind(bb.Sender())
	case "origin":
		bind(bb.Origin())
	case "value":
		bind(bb.CallValue())
	case "address_of":
		bind(bb.AddressOf())
	case "msg_data":
		bind(bb.MsgData())
	case "msg_sig":
		bind(bb.MsgSig())
	case "block_number":
		bind(bb.BlockNumber())
	case "block_timestamp":
		bind(bb.BlockTimestamp())
	case "block_difficulty":
		bind(bb.BlockDifficulty())
	case "block_gaslimit":
		bind(bb.BlockGasLimit())
	case "block_coinbase":
		bind(bb.BlockCoinbase())
	case "block_chainid":
		bind(bb.BlockChainID())
	case "block_basefee":
		bind(bb.BlockBaseFee())
	case "tx_gasprice":
		bind(bb.TxGasPrice())
	case "gas_left":
		bind(bb.GasLeft())
	case "call":
		callee, vs := p.splitCallGroup(args)
		rets := bb.Call(callee, vs, p.typesOf(results))
		for i, r := range rets {
			if i < len(results) {
				p.values[results[i]] = r
			}
		}
	case "extern_call":
		addr, vs := p.splitCallGroup(args)
		rets := bb.ExternCall(p.val(addr), vs, p.typesOf(results))
		for i, r := range rets {
			if i < len(results) {
				p.values[results[i]] = r
			}
		}
	case "event_signature_hash":
		bind(bb.EventSignatureHash(args[0]))
	case "topic_addr":
		bind(bb.TopicAddr(v(0)))
	case "emit":
		event, vs := p.splitCallGroup(args)
		bb.Emit(event, vs, nil)
	case "abi_encode":
		var vs []ir.Value
		for i := range args {
			vs = append(vs, v(i))
		}
		bind(bb.AbiEncode("", vs))
	case "keccak256":
		bind(bb.Keccak256(v(0)))
	case "sha256":
		bind(bb.Sha256(v(0)))
	case "ripemd160":
		bind(bb.Ripemd160(v(0)))
	case "ecrecover":
		bind(bb.Ecrecover(v(0), v(1), v(2), v(3)))
	case "blake2":
		bind(bb.Blake2(v(0)))
	case "modexp":
		bind(bb.ModExp(v(0), v(1), v(2)))
	case "bn256_add":
		bind(bb.Bn256Add(v(0), v(1), v(2), v(3)))
	case "bn256_mul":
		bind(bb.Bn256Mul(v(0), v(1), v(2)))
	case "bn256_pairing":
		var vs []ir.Value
		for i := range args {
			vs = append(vs, v(i))
		}
		bind(bb.Bn256Pairing(vs))
	case "assume":
		bb.Assume(v(0))
	case "constant":
		bind(bb.Constant(parseConstLiteral(args[0]), resultType()))
	case "zext":
		bind(bb.Zext(v(0), p.typeFromToken(typeSuffix)))
	case "sext":
		bind(bb.Sext(v(0), p.typeFromToken(typeSuffix)))
	case "trunc":
		bind(bb.Trunc(v(0), p.typeFromToken(typeSuffix)))
	case "phi":
		panic("phi is not a constructible opcode: this core's blocks take parameters instead of phi nodes")
	default:
		panic("unhandled opcode " + op)
	}
}

// splitCallGroup splits a parenthesized call/extern_call/emit operand
// group's first token (callee name, target address value, or event name)
// from its trailing value-operand list.
func (p *Parser) splitCallGroup(args []string) (string, []ir.Value) {
	if len(args) == 0 {
		return "", nil
	}
	head := strings.TrimPrefix(args[0], "%")
	var vs []ir.Value
	for _, a := range args[1:] {
		vs = append(vs, p.val(a))
	}
	return head, vs
}

func (p *Parser) layoutRefToken(tok, prefix string) uint64 {
	if !strings.HasPrefix(tok, prefix) {
		panic(fmt.Sprintf("expected %s<N> operand, got %q", prefix, tok))
	}
	n, err := strconv.ParseUint(tok[len(prefix):], 10, 64)
	if err != nil {
		panic(err)
	}
	return n
}

// layoutRefTokenAny parses a `<prefix>N` token against any of several
// accepted prefixes, used by the keyed-storage opcodes: they address both
// mappings (printed as mapN) and dynamic arrays' element storage (printed
// as arrN), the two StorageLocation::Mapping/ArrayElement variants sharing
// one opcode pair.
func (p *Parser) layoutRefTokenAny(tok string, prefixes ...string) uint64 {
	for _, prefix := range prefixes {
		if strings.HasPrefix(tok, prefix) {
			return p.layoutRefToken(tok, prefix)
		}
	}
	panic(fmt.Sprintf("expected one of %v<N> operand, got %q", prefixes, tok))
}

func (p *Parser) slotResultType(slot uint64, fallback ir.Type) ir.Type {
	if t, ok := p.slotTypes[slot]; ok {
		return t
	}
	return fallback
}

func (p *Parser) baseResultType(base uint64, fallback ir.Type) ir.Type {
	if t, ok := p.baseTypes[base]; ok {
		return t
	}
	return fallback
}

// inferredType infers an arithmetic/bitwise opcode's result type from its
// first operand's already-known type (read straight from the Function's
// value table, since every operand was already bound by the time it's
// used) — the textual format never restates it, since no opcode in this
// group changes width (zext/sext/trunc do that explicitly, and carry
// their own `.type` suffix).
func (p *Parser) inferredType(bb *ir.BlockBuilder, firstOperand string) ir.Type {
	v, ok := p.values[firstOperand]
	if !ok {
		return ir.Uint(256)
	}
	return bb.Function().ValueType(v)
}

func (p *Parser) typesOf(results []string) []ir.Type {
	out := make([]ir.Type, len(results))
	for i := range out {
		out[i] = ir.Uint(256)
	}
	return out
}

func (p *Parser) blockID(tok string) ir.BlockID {
	tok = strings.TrimPrefix(tok, "block")
	n, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		panic(err)
	}
	return ir.BlockID(n)
}

func (p *Parser) typeFromToken(tok string) ir.Type {
	switch {
	case tok == "bool":
		return ir.Bool()
	case tok == "address":
		return ir.Address()
	case tok == "bytes":
		return ir.BytesDynamic()
	case tok == "string":
		return ir.StringType()
	case strings.HasPrefix(tok, "u"):
		n, err := strconv.Atoi(tok[1:])
		if err == nil {
			return ir.Uint(n)
		}
	case strings.HasPrefix(tok, "i"):
		n, err := strconv.Atoi(tok[1:])
		if err == nil {
			return ir.Int(n)
		}
	case strings.HasPrefix(tok, "bytes"):
		n, err := strconv.Atoi(tok[5:])
		if err == nil {
			return ir.BytesFixed(n)
		}
	}
	panic("unknown type token " + tok)
}

func parseConstLiteral(tok string) ir.ConstantValue {
	switch tok {
	case "true":
		return ir.ConstBool(true)
	case "false":
		return ir.ConstBool(false)
	}
	if strings.HasPrefix(tok, "0x") {
		return ir.ConstBytes([]byte(tok))
	}
	n := new(big.Int)
	n.SetString(tok, 10)
	return ir.ConstUint(n)
}

func (p *Parser) parseTerminator(bb *ir.BlockBuilder) {
	switch p.peek() {
	case "jump":
		p.next()
		target, args := p.parseTarget()
		bb.Jump(target, args)
	case "branch":
		p.next()
		cond := p.val(p.next())
		p.expect(",")
		t, targs := p.parseTarget()
		p.expect(",")
		f, fargs := p.parseTarget()
		bb.Branch(cond, t, targs, f, fargs)
	case "switch":
		p.next()
		val := p.val(p.next())
		p.expect(",")
		var cases []ir.SwitchCase
		for p.peek() == "case" {
			p.next()
			match := parseConstLiteral(p.next())
			p.expect(":")
			target, args := p.parseTarget()
			cases = append(cases, ir.SwitchCase{Match: match, Target: target, Args: args})
			p.expect(",")
		}
		p.expect("default")
		p.expect(":")
		def, defArgs := p.parseTarget()
		bb.SwitchOn(val, cases, def, defArgs)
	case "return":
		p.next()
		var vs []ir.Value
		for strings.HasPrefix(p.peek(), "v") && !isBlockLabel(p.peek()) {
			vs = append(vs, p.val(p.next()))
			if p.peek() == "," {
				p.next()
				continue
			}
			break
		}
		bb.Return(vs)
	case "revert":
		p.next()
		if isNumber(p.peek()) {
			code, _ := strconv.ParseUint(p.next(), 10, 32)
			bb.Revert(uint32(code), true, ir.InvalidValue)
		} else {
			bb.Revert(0, false, ir.InvalidValue)
		}
	case "panic":
		p.next()
		reason := p.next()
		bb.Panic(strings.Trim(reason, `"`))
	case "invalid":
		p.next()
	default:
		panic("expected terminator, got " + p.peek())
	}
}

func isNumber(tok string) bool {
	if tok == "" {
		return false
	}
	_, err := strconv.ParseInt(tok, 10, 64)
	return err == nil
}

func (p *Parser) parseTarget() (ir.BlockID, []ir.Value) {
	tok := p.next()
	id := p.blockID(tok)
	p.expect("(")
	var vs []ir.Value
	for p.peek() != ")" {
		vs = append(vs, p.val(p.next()))
		if p.peek() == "," {
			p.next()
		}
	}
	p.expect(")")
	return id, vs
}

