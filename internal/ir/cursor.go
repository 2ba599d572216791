// SPDX-License-Identifier: Apache-2.0
package ir

// Cursor is the post-construction counterpart to Builder: it edits a
// Function that already exists, positioned at a specific point within a
// specific block, rather than only ever appending to the block currently
// open. A pass that inserts a bounds check before an existing store, or
// splits a block to introduce a new join point, goes through a Cursor; a
// frontend doing first-time lowering goes through a Builder. Both ultimately
// call Function.NewInst, so neither can produce IR the other could not.
type Cursor struct {
	fn  *Function
	pos position
}

// position names "before instruction at index i in block b's Insts slice",
// or "at the end of b" when i == len(b.Insts).
type position struct {
	block BlockID
	index int
}

// NewCursor creates a Cursor over fn, initially unpositioned. Calling
// Insert, SetTerminator, SplitBlock or CurrentBlock before a Goto* call
// panics ("ir: cursor not positioned").
func NewCursor(fn *Function) *Cursor {
	return &Cursor{fn: fn, pos: position{block: BlockID(^uint32(0))}}
}

func (c *Cursor) positioned() bool {
	return c.pos.block != BlockID(^uint32(0))
}

// GotoBlock positions the cursor at the end of block b, the natural
// position for appending.
func (c *Cursor) GotoBlock(b BlockID) {
	blk := c.fn.Block(b)
	c.pos = position{block: b, index: len(blk.Insts)}
}

// GotoBefore positions the cursor immediately before instruction inst,
// which must belong to the function this cursor was created over.
func (c *Cursor) GotoBefore(inst InstID) {
	blk := c.fn.Block(c.fn.Inst(inst).Block)
	for i, id := range blk.Insts {
		if id == inst {
			c.pos = position{block: blk.ID, index: i}
			return
		}
	}
	panic("ir: cursor.GotoBefore: instruction not found in its own block")
}

// GotoAfter positions the cursor immediately after instruction inst.
func (c *Cursor) GotoAfter(inst InstID) {
	c.GotoBefore(inst)
	c.pos.index++
}

// CurrentBlock returns the block the cursor is positioned within.
func (c *Cursor) CurrentBlock() *BasicBlock {
	if !c.positioned() {
		panic("ir: cursor not positioned")
	}
	return c.fn.Block(c.pos.block)
}

// Insert allocates a new instruction at the cursor's position and advances
// the cursor past it, so repeated Insert calls append in call order.
func (c *Cursor) Insert(op Opcode, operands []Value, resultTypes []Type, imm Immediate) *Instruction {
	if !c.positioned() {
		panic("ir: cursor not positioned")
	}
	blk := c.fn.Block(c.pos.block)

	// Allocate the instruction against the function's tables as if
	// appended, then splice its ID into the block's slice at pos.index.
	before := len(blk.Insts)
	inst := c.fn.NewInst(blk, op, operands, resultTypes, imm)
	if c.pos.index < before {
		id := blk.Insts[before]
		copy(blk.Insts[c.pos.index+1:before+1], blk.Insts[c.pos.index:before])
		blk.Insts[c.pos.index] = id
	}
	c.pos.index++
	return inst
}

// SetTerminator replaces the current block's terminator outright. Used by
// passes that rewrite control flow (e.g. collapsing a Branch whose
// condition folded to a constant into a Jump).
func (c *Cursor) SetTerminator(t Terminator) {
	c.CurrentBlock().Terminator = t
}

// CreateBlock allocates a brand new block in the function without moving
// the cursor to it, for passes that need a target block before wiring any
// edges to it.
func (c *Cursor) CreateBlock() *BasicBlock {
	return c.fn.NewBlock()
}

// SplitBlock splits the cursor's current block at its current position:
// everything from the cursor position onward (including the terminator)
// moves into a brand-new successor block, and the original block gets a
// Jump to it. Any existing block parameters stay on the original block;
// the new block starts with none. Returns the new block. The cursor ends
// up positioned at the start of the new block.
func (c *Cursor) SplitBlock() *BasicBlock {
	if !c.positioned() {
		panic("ir: cursor not positioned")
	}
	old := c.CurrentBlock()
	tail := old.Insts[c.pos.index:]
	oldTerm := old.Terminator

	newBlock := c.fn.NewBlock()
	newBlock.Insts = append(newBlock.Insts, tail...)
	for _, id := range tail {
		c.fn.Inst(id).Block = newBlock.ID
	}
	newBlock.Terminator = oldTerm

	old.Insts = old.Insts[:c.pos.index]
	old.Terminator = &Jump{Target: newBlock.ID}

	c.pos = position{block: newBlock.ID, index: 0}
	return newBlock
}
