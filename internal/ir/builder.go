// SPDX-License-Identifier: Apache-2.0
package ir

import "fmt"

// Registry is the live, mutable collection of contracts under
// construction. A Registry is append-only from a frontend's
// point of view: contracts, once declared, are never removed, only
// populated further.
type Registry struct {
	byName map[string]*Contract
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Contract)}
}

// DeclareContract creates an empty contract and returns a ContractBuilder
// positioned on it. Declaring the same name twice panics: contract
// redeclaration is a frontend bug, not a recoverable IR condition.
func (r *Registry) DeclareContract(name string) *ContractBuilder {
	if _, exists := r.byName[name]; exists {
		panic("ir: contract already declared: " + name)
	}
	c := &Contract{Name: name}
	r.byName[name] = c
	r.order = append(r.order, name)
	return &ContractBuilder{contract: c}
}

// Contract looks up a previously declared contract by name.
func (r *Registry) Contract(name string) (*Contract, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Contracts returns every declared contract in declaration order.
func (r *Registry) Contracts() []*Contract {
	out := make([]*Contract, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.byName[n])
	}
	return out
}

// ToProgram snapshots the registry into the textual bridge's document
// shape.
func (r *Registry) ToProgram() *Program {
	return &Program{Contracts: r.Contracts()}
}

// ContractBuilder populates one Contract: its storage layout, event and
// modifier declarations, and its functions.
type ContractBuilder struct {
	contract *Contract
}

func (cb *ContractBuilder) Contract() *Contract { return cb.contract }

// DeclareStorageSlot assigns slot (or the contract's next free slot if
// explicit is false) to a named whole-slot storage variable of type t.
func (cb *ContractBuilder) DeclareStorageSlot(name string, t Type, explicitSlot uint64, explicit bool) StorageSlot {
	slot := explicitSlot
	if !explicit {
		slot = cb.contract.NextFreeSlot()
	}
	ss := StorageSlot{Name: name, Slot: slot, Type: t}
	cb.checkNoOverlap(ss)
	cb.contract.Storage = append(cb.contract.Storage, ss)
	return ss
}

// DeclarePackedSlot declares a storage variable sharing slot with other
// packed fields, occupying [offset, offset+size) bits of it. Collision
// checking only rejects overlapping bit ranges at the same slot, not mere
// slot reuse — the bit-packing exception StorageSlot.overlaps implements.
func (cb *ContractBuilder) DeclarePackedSlot(name string, t Type, slot uint64, offset, size uint8) StorageSlot {
	ss := StorageSlot{Name: name, Slot: slot, Type: t, Offset: offset, Size: size}
	cb.checkNoOverlap(ss)
	for i := range cb.contract.Storage {
		if cb.contract.Storage[i].Slot == slot {
			cb.contract.Storage[i].PackedWith = append(cb.contract.Storage[i].PackedWith, name)
			ss.PackedWith = append(ss.PackedWith, cb.contract.Storage[i].Name)
		}
	}
	cb.contract.Storage = append(cb.contract.Storage, ss)
	return ss
}

func (cb *ContractBuilder) checkNoOverlap(ss StorageSlot) {
	for _, s := range cb.contract.Storage {
		if s.overlaps(ss) {
			panic("ir: storage slot collision in contract " + cb.contract.Name)
		}
	}
}

// DeclareMapping records a `mapping` storage variable's base slot and
// key/value types (StorageLocation::Mapping).
func (cb *ContractBuilder) DeclareMapping(name string, key, value Type, base uint64) MappingLayout {
	m := MappingLayout{Name: name, Base: base, Key: key, Value: value}
	cb.contract.Mappings = append(cb.contract.Mappings, m)
	return m
}

// DeclareArray records a storage-backed array's base slot and element type.
// length == nil declares a dynamically-sized array; otherwise the array is
// statically sized to *length.
func (cb *ContractBuilder) DeclareArray(name string, elem Type, base uint64, length *uint32) ArrayLayout {
	a := ArrayLayout{Name: name, Base: base, Element: elem, Dynamic: length == nil}
	if length != nil {
		a.Length = *length
	}
	cb.contract.Arrays = append(cb.contract.Arrays, a)
	return a
}

// DeclareStruct records a storage-backed struct's base slot and ordered
// fields (StorageLocation::StructField).
func (cb *ContractBuilder) DeclareStruct(name string, base uint64, fields []StructField) StructLayout {
	s := StructLayout{Name: name, Base: base, Fields: append([]StructField(nil), fields...)}
	cb.contract.Structs = append(cb.contract.Structs, s)
	return s
}

func (cb *ContractBuilder) DeclareEvent(name string, fields []Type, indexed []bool) EventDef {
	ev := EventDef{Name: name, Fields: append([]Type(nil), fields...), Indexed: append([]bool(nil), indexed...)}
	cb.contract.Events = append(cb.contract.Events, ev)
	return ev
}

// Metadata sets the contract's version tag and returns the ContractBuilder
// so the caller can chain further declarations, e.g.
// cb.Metadata("1.0.0").SecurityFlag("reentrancy-guarded").
func (cb *ContractBuilder) Metadata(version string) *ContractBuilder {
	cb.contract.Metadata.Version = version
	return cb
}

// SecurityFlag appends a named security annotation (set by an auditor tool,
// never derived by the core itself) to the contract's metadata.
func (cb *ContractBuilder) SecurityFlag(flag string) *ContractBuilder {
	cb.contract.Metadata.SecurityFlags = append(cb.contract.Metadata.SecurityFlags, flag)
	return cb
}

// OptimizationHint records a hint for a downstream optimizer; the core
// never interprets it.
func (cb *ContractBuilder) OptimizationHint(hint string) *ContractBuilder {
	cb.contract.Metadata.OptimizationHint = hint
	return cb
}

// SourceHash/SourceRef record provenance: a content hash of the original
// source and an optional human-readable reference (file path, commit),
// never the source text itself.
func (cb *ContractBuilder) SourceHash(h [32]byte) *ContractBuilder {
	cb.contract.Metadata.SourceHash = h
	return cb
}
func (cb *ContractBuilder) SourceRef(ref string) *ContractBuilder {
	cb.contract.Metadata.SourceRef = ref
	return cb
}

func (cb *ContractBuilder) DeclareModifier(name string, params []Type) ModifierDef {
	m := ModifierDef{Name: name, Params: append([]Type(nil), params...)}
	cb.contract.Modifiers = append(cb.contract.Modifiers, m)
	return m
}

// NewFunction declares a function on this contract and returns a
// FunctionBuilder ready to build its entry block.
func (cb *ContractBuilder) NewFunction(name string, paramTypes []Type, returns []Type, vis Visibility, mut Mutability) *FunctionBuilder {
	f := NewFunction(name, paramTypes, returns, vis, mut)
	cb.contract.Functions = append(cb.contract.Functions, f)
	return &FunctionBuilder{fn: f}
}

// FunctionBuilder constructs a function's blocks in append-only order. A
// Cursor (cursor.go) is the post-construction alternative for targeted
// edits once a function already exists.
type FunctionBuilder struct {
	fn *Function
}

func (fb *FunctionBuilder) Function() *Function { return fb.fn }

// MarkPayable sets the function's payable flag, a signature field
// orthogonal to Mutability, and returns the builder for chaining.
func (fb *FunctionBuilder) MarkPayable() *FunctionBuilder {
	fb.fn.Payable = true
	return fb
}

// Entry creates the function's entry block (block 0) and returns a
// BlockBuilder positioned on it. Must be called exactly once, before any
// other block is created.
func (fb *FunctionBuilder) Entry() *BlockBuilder {
	if len(fb.fn.Blocks) != 0 {
		panic("ir: Entry called after blocks already exist")
	}
	b := fb.fn.NewBlock()
	return &BlockBuilder{fb: fb, b: b}
}

// Block creates a new, empty, unsealed block elsewhere in the function and
// returns a BlockBuilder positioned on it. Used for branch targets, merge
// points, and the synthetic blocks a lowering like Require introduces.
func (fb *FunctionBuilder) Block() *BlockBuilder {
	b := fb.fn.NewBlock()
	return &BlockBuilder{fb: fb, b: b}
}

// BlockBuilder appends instructions and finally a terminator to one block.
// Once Jump/Branch/Switch/Return/Revert/Panic is called the block is
// terminated and further Emit calls on it panic.
type BlockBuilder struct {
	fb *FunctionBuilder
	b  *BasicBlock
}

func (bb *BlockBuilder) Block() *BasicBlock { return bb.b }
func (bb *BlockBuilder) Function() *Function { return bb.fb.fn }

func (bb *BlockBuilder) mustOpen() {
	if bb.b.IsTerminated() {
		panic(fmt.Sprintf("ir: emit into closed block %d", bb.b.ID))
	}
}

// AddParam appends a new block parameter of type t and returns its Value.
// Only legal before the block has any predecessors wired to it; nothing
// checks this (the Cursor has no way to add parameters at all), since a
// fresh FunctionBuilder always adds parameters before wiring jumps to it.
func (bb *BlockBuilder) AddParam(t Type) Value {
	return bb.fb.fn.AddBlockParam(bb.b, t)
}

// Seal marks that every predecessor edge into this block is now known.
// The flag is advisory: no analysis pass checks it, and the dominator tree
// treats sealed and unsealed blocks alike.
func (bb *BlockBuilder) Seal() { bb.b.sealed = true }

func (bb *BlockBuilder) emit1(op Opcode, operands []Value, resultType Type, imm Immediate) Value {
	bb.mustOpen()
	inst := bb.fb.fn.NewInst(bb.b, op, operands, []Type{resultType}, imm)
	return inst.Results[0]
}

func (bb *BlockBuilder) emit0(op Opcode, operands []Value, imm Immediate) {
	bb.mustOpen()
	bb.fb.fn.NewInst(bb.b, op, operands, nil, imm)
}

func (bb *BlockBuilder) Add(lhs, rhs Value, t Type) Value { return bb.emit1(OpAdd, []Value{lhs, rhs}, t, Immediate{}) }
func (bb *BlockBuilder) Sub(lhs, rhs Value, t Type) Value { return bb.emit1(OpSub, []Value{lhs, rhs}, t, Immediate{}) }
func (bb *BlockBuilder) Mul(lhs, rhs Value, t Type) Value { return bb.emit1(OpMul, []Value{lhs, rhs}, t, Immediate{}) }
func (bb *BlockBuilder) Div(lhs, rhs Value, t Type) Value { return bb.emit1(OpDiv, []Value{lhs, rhs}, t, Immediate{}) }
func (bb *BlockBuilder) Mod(lhs, rhs Value, t Type) Value { return bb.emit1(OpMod, []Value{lhs, rhs}, t, Immediate{}) }

// CheckedAdd/Sub/Mul emit an overflow-checked op that branches to
// revertTarget on overflow instead of wrapping. revertTarget must be a
// block ending in Revert (validate.go enforces this).
func (bb *BlockBuilder) CheckedAdd(lhs, rhs Value, t Type, revertTarget BlockID) Value {
	return bb.emit1(OpCheckedAdd, []Value{lhs, rhs}, t, Immediate{RevertTarget: revertTarget})
}
func (bb *BlockBuilder) CheckedSub(lhs, rhs Value, t Type, revertTarget BlockID) Value {
	return bb.emit1(OpCheckedSub, []Value{lhs, rhs}, t, Immediate{RevertTarget: revertTarget})
}
func (bb *BlockBuilder) CheckedMul(lhs, rhs Value, t Type, revertTarget BlockID) Value {
	return bb.emit1(OpCheckedMul, []Value{lhs, rhs}, t, Immediate{RevertTarget: revertTarget})
}

func (bb *BlockBuilder) And(lhs, rhs Value, t Type) Value { return bb.emit1(OpAnd, []Value{lhs, rhs}, t, Immediate{}) }
func (bb *BlockBuilder) Or(lhs, rhs Value, t Type) Value  { return bb.emit1(OpOr, []Value{lhs, rhs}, t, Immediate{}) }
func (bb *BlockBuilder) Xor(lhs, rhs Value, t Type) Value { return bb.emit1(OpXor, []Value{lhs, rhs}, t, Immediate{}) }
func (bb *BlockBuilder) Not(v Value, t Type) Value        { return bb.emit1(OpNot, []Value{v}, t, Immediate{}) }
func (bb *BlockBuilder) Shl(lhs, rhs Value, t Type) Value { return bb.emit1(OpShl, []Value{lhs, rhs}, t, Immediate{}) }
func (bb *BlockBuilder) Shr(lhs, rhs Value, t Type) Value { return bb.emit1(OpShr, []Value{lhs, rhs}, t, Immediate{}) }

func (bb *BlockBuilder) cmp(op Opcode, lhs, rhs Value) Value {
	return bb.emit1(op, []Value{lhs, rhs}, Bool(), Immediate{})
}
func (bb *BlockBuilder) Eq(lhs, rhs Value) Value { return bb.cmp(OpEq, lhs, rhs) }
func (bb *BlockBuilder) Ne(lhs, rhs Value) Value { return bb.cmp(OpNe, lhs, rhs) }
func (bb *BlockBuilder) Lt(lhs, rhs Value) Value { return bb.cmp(OpLt, lhs, rhs) }
func (bb *BlockBuilder) Le(lhs, rhs Value) Value { return bb.cmp(OpLe, lhs, rhs) }
func (bb *BlockBuilder) Gt(lhs, rhs Value) Value { return bb.cmp(OpGt, lhs, rhs) }
func (bb *BlockBuilder) Ge(lhs, rhs Value) Value { return bb.cmp(OpGe, lhs, rhs) }

func (bb *BlockBuilder) Zext(v Value, to Type) Value {
	return bb.emit1(OpZext, []Value{v}, to, Immediate{FromWidth: bb.fb.fn.ValueType(v).Width(), ToWidth: to.Width()})
}
func (bb *BlockBuilder) Sext(v Value, to Type) Value {
	return bb.emit1(OpSext, []Value{v}, to, Immediate{FromWidth: bb.fb.fn.ValueType(v).Width(), ToWidth: to.Width()})
}
func (bb *BlockBuilder) Trunc(v Value, to Type) Value {
	return bb.emit1(OpTrunc, []Value{v}, to, Immediate{FromWidth: bb.fb.fn.ValueType(v).Width(), ToWidth: to.Width()})
}

func (bb *BlockBuilder) StorageLoad(slot uint64, t Type) Value {
	return bb.emit1(OpStorageLoad, nil, t, Immediate{Slot: slot})
}
func (bb *BlockBuilder) StorageStore(slot uint64, v Value) {
	bb.emit0(OpStorageStore, []Value{v}, Immediate{Slot: slot})
}
func (bb *BlockBuilder) KeyedStorageLoad(baseSlot uint64, key Value, t Type) Value {
	return bb.emit1(OpKeyedStorageLoad, []Value{key}, t, Immediate{BaseSlot: baseSlot})
}
func (bb *BlockBuilder) KeyedStorageStore(baseSlot uint64, key, v Value) {
	bb.emit0(OpKeyedStorageStore, []Value{key, v}, Immediate{BaseSlot: baseSlot})
}
func (bb *BlockBuilder) StorageSlotAddr(baseSlot uint64, key Value) Value {
	return bb.emit1(OpStorageSlotAddr, []Value{key}, Uint(256), Immediate{BaseSlot: baseSlot})
}

// LoadDynamic/StoreDynamic access a storage slot whose address is computed
// at runtime rather than known as a base slot plus a key
// (StorageLocation::Computed).
func (bb *BlockBuilder) LoadDynamic(addr Value, t Type) Value {
	return bb.emit1(OpLoadDynamic, []Value{addr}, t, Immediate{})
}
func (bb *BlockBuilder) StoreDynamic(addr, v Value) {
	bb.emit0(OpStoreDynamic, []Value{addr, v}, Immediate{})
}

// ArrayLength/ArrayPush/ArrayPop operate on a storage-backed dynamic array
// declared at baseSlot. ArrayPush returns the array's new length; ArrayPop
// returns the removed element.
func (bb *BlockBuilder) ArrayLength(baseSlot uint64) Value {
	return bb.emit1(OpArrayLength, nil, Uint(256), Immediate{BaseSlot: baseSlot})
}
func (bb *BlockBuilder) ArrayPush(baseSlot uint64, v Value) Value {
	return bb.emit1(OpArrayPush, []Value{v}, Uint(256), Immediate{BaseSlot: baseSlot})
}
func (bb *BlockBuilder) ArrayPop(baseSlot uint64, elem Type) Value {
	return bb.emit1(OpArrayPop, nil, elem, Immediate{BaseSlot: baseSlot})
}

// StructFieldLoad/StructFieldStore access one field of a storage-backed
// struct at baseSlot, offset bytes in (StorageLocation::StructField).
func (bb *BlockBuilder) StructFieldLoad(baseSlot uint64, offset uint8, t Type) Value {
	return bb.emit1(OpStructFieldLoad, nil, t, Immediate{BaseSlot: baseSlot, FieldOffset: offset})
}
func (bb *BlockBuilder) StructFieldStore(baseSlot uint64, offset uint8, v Value) {
	bb.emit0(OpStructFieldStore, []Value{v}, Immediate{BaseSlot: baseSlot, FieldOffset: offset})
}

// PackedLoad/PackedStore access a bit-packed sub-slot value
// (StorageLocation::Packed): slot, the bit offset within it, and the size
// in bits of this field.
func (bb *BlockBuilder) PackedLoad(slot uint64, offset, size uint8, t Type) Value {
	return bb.emit1(OpPackedLoad, nil, t, Immediate{Slot: slot, PackedOffset: offset, PackedSize: size})
}
func (bb *BlockBuilder) PackedStore(slot uint64, offset, size uint8, v Value) {
	bb.emit0(OpPackedStore, []Value{v}, Immediate{Slot: slot, PackedOffset: offset, PackedSize: size})
}

func (bb *BlockBuilder) Sender() Value         { return bb.emit1(OpSender, nil, Address(), Immediate{}) }
func (bb *BlockBuilder) Origin() Value         { return bb.emit1(OpOrigin, nil, Address(), Immediate{}) }
func (bb *BlockBuilder) CallValue() Value      { return bb.emit1(OpValue, nil, Uint(256), Immediate{}) }
func (bb *BlockBuilder) AddressOf() Value      { return bb.emit1(OpAddressOf, nil, Address(), Immediate{}) }
func (bb *BlockBuilder) MsgData() Value        { return bb.emit1(OpMsgData, nil, BytesDynamic(), Immediate{}) }
func (bb *BlockBuilder) MsgSig() Value         { return bb.emit1(OpMsgSig, nil, BytesFixed(4), Immediate{}) }
func (bb *BlockBuilder) BlockNumber() Value    { return bb.emit1(OpBlockNumber, nil, Uint(256), Immediate{}) }
func (bb *BlockBuilder) BlockTimestamp() Value { return bb.emit1(OpBlockTimestamp, nil, Uint(256), Immediate{}) }
func (bb *BlockBuilder) BlockDifficulty() Value { return bb.emit1(OpBlockDifficulty, nil, Uint(256), Immediate{}) }
func (bb *BlockBuilder) BlockGasLimit() Value  { return bb.emit1(OpBlockGasLimit, nil, Uint(256), Immediate{}) }
func (bb *BlockBuilder) BlockCoinbase() Value  { return bb.emit1(OpBlockCoinbase, nil, Address(), Immediate{}) }
func (bb *BlockBuilder) BlockChainID() Value   { return bb.emit1(OpBlockChainID, nil, Uint(256), Immediate{}) }
func (bb *BlockBuilder) BlockBaseFee() Value   { return bb.emit1(OpBlockBaseFee, nil, Uint(256), Immediate{}) }
func (bb *BlockBuilder) TxGasPrice() Value     { return bb.emit1(OpTxGasPrice, nil, Uint(256), Immediate{}) }
func (bb *BlockBuilder) GasLeft() Value        { return bb.emit1(OpGasLeft, nil, Uint(256), Immediate{}) }

// MemoryAlloc bump-allocates size bytes of scratch linear memory, returning
// the pointer. MemoryCopy copies size bytes from src to dst within it.
// MemorySize returns the current size. None of the three touch persistent
// storage.
func (bb *BlockBuilder) MemoryAlloc(size Value) Value {
	return bb.emit1(OpMemoryAlloc, []Value{size}, Uint(256), Immediate{})
}
func (bb *BlockBuilder) MemoryCopy(dst, src, size Value) {
	bb.emit0(OpMemoryCopy, []Value{dst, src, size}, Immediate{})
}
func (bb *BlockBuilder) MemorySize() Value {
	return bb.emit1(OpMemorySize, nil, Uint(256), Immediate{})
}

// Call invokes another function in the same contract, producing one Value
// per declared return type in order.
func (bb *BlockBuilder) Call(callee string, args []Value, returns []Type) []Value {
	bb.mustOpen()
	inst := bb.fb.fn.NewInst(bb.b, OpCall, args, returns, Immediate{Callee: callee})
	return inst.Results
}

// ExternCall invokes a function at a runtime address outside this contract.
func (bb *BlockBuilder) ExternCall(addr Value, args []Value, returns []Type) []Value {
	bb.mustOpen()
	operands := append([]Value{addr}, args...)
	inst := bb.fb.fn.NewInst(bb.b, OpExternCall, operands, returns, Immediate{CalleeAddr: addr})
	return inst.Results
}

func (bb *BlockBuilder) EventSignatureHash(eventName string) Value {
	return bb.emit1(OpEventSignatureHash, nil, BytesFixed(32), Immediate{EventName: eventName})
}
func (bb *BlockBuilder) TopicAddr(v Value) Value {
	return bb.emit1(OpTopicAddr, []Value{v}, BytesFixed(32), Immediate{})
}
func (bb *BlockBuilder) Emit(eventName string, topics, data []Value) {
	bb.mustOpen()
	bb.fb.fn.NewInst(bb.b, OpEmit, append(append([]Value(nil), topics...), data...), nil, Immediate{EventName: eventName})
}

func (bb *BlockBuilder) AbiEncode(selector string, args []Value) Value {
	return bb.emit1(OpAbiEncode, args, BytesDynamic(), Immediate{AbiSelector: selector})
}
func (bb *BlockBuilder) Keccak256(v Value) Value {
	return bb.emit1(OpKeccak256, []Value{v}, BytesFixed(32), Immediate{})
}
func (bb *BlockBuilder) Sha256(v Value) Value {
	return bb.emit1(OpSha256, []Value{v}, BytesFixed(32), Immediate{})
}
func (bb *BlockBuilder) Ripemd160(v Value) Value {
	return bb.emit1(OpRipemd160, []Value{v}, BytesFixed(20), Immediate{})
}

// Ecrecover recovers the signer address from a 32-byte hash and an
// ECDSA signature's v/r/s components, mirroring the EVM precompile's
// four-operand shape rather than the single-operand hash functions.
func (bb *BlockBuilder) Ecrecover(hash, v, r, s Value) Value {
	return bb.emit1(OpEcrecover, []Value{hash, v, r, s}, Address(), Immediate{})
}

// Blake2 follows the same single-operand hash shape as Keccak256/Sha256/
// Ripemd160.
func (bb *BlockBuilder) Blake2(v Value) Value {
	return bb.emit1(OpBlake2, []Value{v}, BytesFixed(32), Immediate{})
}

// ModExp computes base^exponent mod modulus, mirroring the EVM modexp
// precompile's three-operand shape.
func (bb *BlockBuilder) ModExp(base, exponent, modulus Value) Value {
	return bb.emit1(OpModExp, []Value{base, exponent, modulus}, Uint(256), Immediate{})
}

// Bn256Add/Bn256Mul mirror the alt_bn128 curve-arithmetic precompiles,
// taking explicit coordinate operands the way Ecrecover takes explicit
// signature components, and returning a 64-byte encoded point.
func (bb *BlockBuilder) Bn256Add(x1, y1, x2, y2 Value) Value {
	return bb.emit1(OpBn256Add, []Value{x1, y1, x2, y2}, BytesFixed(64), Immediate{})
}
func (bb *BlockBuilder) Bn256Mul(x, y, scalar Value) Value {
	return bb.emit1(OpBn256Mul, []Value{x, y, scalar}, BytesFixed(64), Immediate{})
}

// Bn256Pairing checks a list of (G1, G2) point pairs, returning whether the
// pairing product equals the identity.
func (bb *BlockBuilder) Bn256Pairing(points []Value) Value {
	return bb.emit1(OpBn256Pairing, points, Bool(), Immediate{})
}

// Assume records cond as an invariant analyses may rely on without
// transferring control; it is how Require marks the success path after
// a branch.
func (bb *BlockBuilder) Assume(cond Value) {
	bb.emit0(OpAssume, []Value{cond}, Immediate{})
}

func (bb *BlockBuilder) Constant(c ConstantValue, t Type) Value {
	return bb.emit1(OpConstant, nil, t, NewImmConstant(c))
}

// --- Terminators ---

func (bb *BlockBuilder) Jump(target BlockID, args []Value) {
	bb.mustOpen()
	bb.b.Terminator = &Jump{Target: target, Args: append([]Value(nil), args...)}
}

func (bb *BlockBuilder) Branch(cond Value, ifTrue BlockID, trueArgs []Value, ifFalse BlockID, falseArgs []Value) {
	bb.mustOpen()
	bb.b.Terminator = &Branch{
		Cond: cond, IfTrue: ifTrue, TrueArgs: append([]Value(nil), trueArgs...),
		IfFalse: ifFalse, FalseArgs: append([]Value(nil), falseArgs...),
	}
}

func (bb *BlockBuilder) SwitchOn(v Value, cases []SwitchCase, def BlockID, defArgs []Value) {
	bb.mustOpen()
	bb.b.Terminator = &Switch{Value: v, Cases: cases, Default: def, DefaultArgs: append([]Value(nil), defArgs...)}
}

func (bb *BlockBuilder) Return(values []Value) {
	bb.mustOpen()
	bb.b.Terminator = &Return{Values: append([]Value(nil), values...)}
}

func (bb *BlockBuilder) Revert(code uint32, hasCode bool, message Value) {
	bb.mustOpen()
	bb.b.Terminator = &Revert{Code: code, HasCode: hasCode, Message: message}
}

func (bb *BlockBuilder) Panic(reason string) {
	bb.mustOpen()
	bb.b.Terminator = &Panic{Reason: reason}
}

// Require lowers a source-level require(cond, code) into a branch+revert
// pattern: assume(cond) on the success path,
// a synthetic block that reverts with code on the failure path. It returns
// the success-path BlockBuilder so the caller continues emitting there;
// OpRequire itself is never left as a residual instruction in the IR.
func (bb *BlockBuilder) Require(cond Value, code uint32) *BlockBuilder {
	okBlock := bb.fb.Block()
	failBlock := bb.fb.Block()
	bb.Branch(cond, okBlock.b.ID, nil, failBlock.b.ID, nil)

	failBlock.Revert(code, true, InvalidValue)
	failBlock.Seal()

	okBlock.Assume(cond)
	return okBlock
}

// Assert lowers a source-level assert(cond, code) the same way Require
// does (branch to a synthetic revert block, assume(cond) on the success
// path). It stays a distinct builder entry point from Require because the
// two have different source-level intent — require validates caller input,
// assert checks an internal invariant — even though the IR shape they
// lower to is identical; frontends and audit tooling can tell them apart
// by which method constructed the branch, not by inspecting the result.
func (bb *BlockBuilder) Assert(cond Value, code uint32) *BlockBuilder {
	return bb.Require(cond, code)
}
