// SPDX-License-Identifier: Apache-2.0
package ir

// Visibility mirrors the source-level visibility a function was declared
// with; the core only needs it to decide ABI exposure and reentrancy
// defaults, never to enforce access control itself.
type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityPublic
	VisibilityExternal
)

// Mutability is the storage-mutation contract a function promises, used by
// validate.go to reject OpStorageStore/OpKeyedStorageStore/OpEmit inside a
// View or Pure function.
type Mutability int

const (
	MutabilityMutable Mutability = iota
	MutabilityView
	MutabilityPure
)

// Function is one function body in the IR: its signature, its value table,
// its instruction table, and the basic blocks that own them. Value/Inst
// tables are owned by the Function rather than scattered across blocks, so
// a Value or InstID is globally meaningful only in the context of the
// Function that allocated it.
type Function struct {
	Name       string
	Params     []Value
	ParamTypes []Type
	Returns    []Type
	Visibility Visibility
	Mutability Mutability
	// Payable is the function signature's separate payable flag: whether
	// the function may be invoked carrying value, orthogonal to
	// Mutability (a non-payable function still may mutate state; a
	// payable one additionally accepts value).
	Payable bool

	// Derived metadata, kept current incrementally as instructions are
	// added through NewInst rather than computed in one pass at an
	// explicit build() step — Builder and Cursor both funnel through
	// NewInst, so both keep it accurate.
	CallsExternal bool // true if any instruction is OpExternCall
	ModifiesState bool // true if any instruction writes storage or emits an event
	CanReenter    bool // CallsExternal && ModifiesState
	HasAssembly   bool // always false: this instruction universe has no inline-assembly opcode
	IsConstructor bool
	IsFallback    bool
	IsReceive     bool
	EstimatedGas  uint64 // sum of a fixed per-opcode cost table, a rough audit-report hint only

	Blocks []*BasicBlock

	values []ValueData
	insts  []*Instruction
}

// Signature returns the function's parameter/return shape as a Signature
// value, for embedding in a Function-typed Value.
func (f *Function) Signature() *Signature {
	return &Signature{Params: append([]Type(nil), f.ParamTypes...), Returns: append([]Type(nil), f.Returns...)}
}

// NewFunction creates an empty function with its declared parameters
// already allocated as Values (ValueKindParameter), ready for a Builder to
// populate with blocks.
func NewFunction(name string, paramTypes []Type, returns []Type, vis Visibility, mut Mutability) *Function {
	f := &Function{
		Name:          name,
		ParamTypes:    append([]Type(nil), paramTypes...),
		Returns:       append([]Type(nil), returns...),
		Visibility:    vis,
		Mutability:    mut,
		IsConstructor: name == "constructor",
		IsFallback:    name == "fallback",
		IsReceive:     name == "receive",
	}
	f.values = append(f.values, ValueData{}) // index 0 reserved: InvalidValue
	for i, t := range f.ParamTypes {
		v := f.allocValue(ValueData{Kind: ValueKindParameter, Type: t, ParamIndex: i})
		f.Params = append(f.Params, v)
	}
	return f
}

func (f *Function) allocValue(data ValueData) Value {
	f.values = append(f.values, data)
	return Value(len(f.values) - 1)
}

// ValueData looks up the defining record for v. v is not validated:
// InvalidValue yields the zero record, and a handle from a different
// Function panics only if it is out of this Function's range.
func (f *Function) ValueData(v Value) ValueData {
	return f.values[v]
}

// ValueType is shorthand for ValueData(v).Type.
func (f *Function) ValueType(v Value) Type {
	return f.values[v].Type
}

// NewBlock allocates a new, empty, unterminated, unsealed basic block.
func (f *Function) NewBlock() *BasicBlock {
	b := &BasicBlock{ID: BlockID(len(f.Blocks)), Terminator: &Invalid{}}
	f.Blocks = append(f.Blocks, b)
	return b
}

// Block returns the block with the given ID.
func (f *Function) Block(id BlockID) *BasicBlock { return f.Blocks[id] }

// EntryBlock returns block 0, the function's entry point. Valid only after
// at least one block has been created.
func (f *Function) EntryBlock() *BasicBlock { return f.Blocks[0] }

// AddBlockParam appends a new parameter to b and allocates its Value.
func (f *Function) AddBlockParam(b *BasicBlock, t Type) Value {
	v := f.allocValue(ValueData{
		Kind:       ValueKindBlockParameter,
		Type:       t,
		ParamIndex: len(b.Params),
		Block:      b.ID,
	})
	b.Params = append(b.Params, v)
	return v
}

// AddConstant allocates a constant Value carrying c.
func (f *Function) AddConstant(c ConstantValue, t Type) Value {
	return f.allocValue(ValueData{Kind: ValueKindConstant, Type: t, Const: c})
}

// NewInst allocates and appends inst to block b, allocating a Temporary
// Value for each declared result type in order. It is the single path by
// which an Instruction enters the Function's instruction table; Builder and
// Cursor are both thin wrappers over it.
func (f *Function) NewInst(b *BasicBlock, op Opcode, operands []Value, resultTypes []Type, imm Immediate) *Instruction {
	id := InstID(len(f.insts) + 1) // 0 reserved as "no instruction"
	inst := &Instruction{
		ID:          id,
		Op:          op,
		Block:       b.ID,
		Operands:    append([]Value(nil), operands...),
		ResultTypes: append([]Type(nil), resultTypes...),
		Imm:         imm,
	}
	for i, t := range resultTypes {
		v := f.allocValue(ValueData{Kind: ValueKindTemporary, Type: t, DefInst: id, ResultIdx: i})
		inst.Results = append(inst.Results, v)
	}
	f.insts = append(f.insts, inst)
	b.Insts = append(b.Insts, id)

	if op == OpExternCall {
		f.CallsExternal = true
	}
	if modifiesState(op) {
		f.ModifiesState = true
	}
	f.CanReenter = f.CallsExternal && f.ModifiesState
	f.EstimatedGas += opcodeGasCost(op)

	return inst
}

// modifiesState reports whether op writes persistent storage or emits an
// event, the two observable state-mutation effects this instruction
// universe can express.
func modifiesState(op Opcode) bool {
	switch op {
	case OpStorageStore, OpKeyedStorageStore, OpStoreDynamic, OpArrayPush, OpArrayPop,
		OpStructFieldStore, OpPackedStore, OpEmit:
		return true
	default:
		return false
	}
}

// opcodeGasCost is a coarse, fixed per-opcode weight used only to populate
// Function.EstimatedGas for an audit report's rough-cost hint; the core
// does not perform real gas accounting.
func opcodeGasCost(op Opcode) uint64 {
	switch op {
	case OpStorageLoad, OpKeyedStorageLoad, OpArrayLength, OpStructFieldLoad, OpPackedLoad:
		return 2100
	case OpStorageStore, OpKeyedStorageStore, OpStoreDynamic, OpArrayPush, OpStructFieldStore, OpPackedStore:
		return 20000
	case OpLoadDynamic:
		return 2100
	case OpArrayPop:
		return 5000
	case OpExternCall:
		return 2600
	case OpCall:
		return 50
	case OpKeccak256, OpSha256, OpRipemd160, OpBlake2:
		return 60
	case OpEcrecover:
		return 3000
	case OpModExp:
		return 200
	case OpBn256Add:
		return 150
	case OpBn256Mul:
		return 6000
	case OpBn256Pairing:
		return 45000
	case OpMemoryAlloc, OpMemoryCopy:
		return 3
	case OpMemorySize:
		return 2
	case OpEmit:
		return 375
	case OpCheckedAdd, OpCheckedSub, OpCheckedMul:
		return 8
	default:
		return 3
	}
}

// Inst returns the instruction with the given ID.
func (f *Function) Inst(id InstID) *Instruction { return f.insts[id-1] }

// AllInsts returns every instruction allocated in this function, in
// allocation order, regardless of which block currently contains it.
func (f *Function) AllInsts() []*Instruction { return f.insts }
