// SPDX-License-Identifier: Apache-2.0
package ir

// Opcode is the closed instruction universe. Every Instruction carries
// exactly one Opcode; the legal operand/result/immediate shape for each is
// fixed by the Builder method that emits it (validate.go does not check
// it), using a single generic Instruction
// struct tagged by an Opcode rather than one Go type per instruction kind.
type Opcode int

const (
	OpInvalid Opcode = iota

	// Arithmetic (wrapping).
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod

	// Checked arithmetic: traps to a revert target on overflow/underflow
	// instead of wrapping. Imm.RevertTarget names the block to branch to.
	OpCheckedAdd
	OpCheckedSub
	OpCheckedMul

	// Bitwise.
	OpAnd
	OpOr
	OpXor
	OpNot
	OpShl
	OpShr

	// Comparison, result type is always Bool.
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe

	// Conversion.
	OpZext   // zero-extend an unsigned integer to a wider Uint
	OpSext   // sign-extend a signed integer to a wider Int
	OpTrunc  // narrow an integer to a smaller width
	OpBitcast

	// Storage access.
	OpStorageLoad       // fixed slot
	OpStorageStore      // fixed slot
	OpKeyedStorageLoad  // mapping/array slot derived from a key (StorageLocation::Mapping/ArrayElement)
	OpKeyedStorageStore // mapping/array slot derived from a key
	OpStorageSlotAddr   // materialize a derived slot as a value (for nested mappings)
	OpLoadDynamic       // slot address computed at runtime (StorageLocation::Computed)
	OpStoreDynamic      // slot address computed at runtime (StorageLocation::Computed)
	OpArrayLength       // storage-backed dynamic array's current length
	OpArrayPush         // append to a storage-backed dynamic array, result is the new length
	OpArrayPop          // remove and return the last element of a storage-backed dynamic array
	OpStructFieldLoad   // base slot + static byte offset (StorageLocation::StructField)
	OpStructFieldStore  // base slot + static byte offset
	OpPackedLoad        // slot + bit offset/size sub-slot read (StorageLocation::Packed)
	OpPackedStore       // slot + bit offset/size sub-slot write

	// Memory (scratch, non-persistent linear memory).
	OpMemoryAlloc // bump-allocate size bytes, result is the pointer
	OpMemoryCopy  // copy size bytes from src to dst
	OpMemorySize  // current linear memory size in bytes

	// Environment queries.
	OpSender
	OpOrigin
	OpValue
	OpAddressOf // this contract's own address
	OpMsgData
	OpMsgSig
	OpBlockNumber
	OpBlockTimestamp
	OpBlockDifficulty
	OpBlockGasLimit
	OpBlockCoinbase
	OpBlockChainID
	OpBlockBaseFee
	OpTxGasPrice
	OpGasLeft

	// Calls.
	OpCall        // direct call to another function in the same contract
	OpExternCall  // call to an external contract address

	// Control-flow-adjacent value-producing ops.
	OpPhi // explicit phi, kept only so the textual bridge can recognize and reject a phi line; builders never emit it (see DESIGN.md)

	// Assertions / control transfer within a block.
	OpAssume  // assert a condition the optimizer/analysis may rely on; does not itself transfer control
	OpRequire // require(cond, code): lowered by the builder into assume + branch-to-revert, never a residual instruction
	OpAssert  // assert(cond, code): same lowering as require, kept as a distinct source-level marker for the audit report

	// Events.
	OpEventSignatureHash
	OpTopicAddr
	OpEmit

	// ABI / crypto.
	OpAbiEncode
	OpKeccak256
	OpSha256
	OpRipemd160
	OpEcrecover
	OpBlake2
	OpModExp
	OpBn256Add
	OpBn256Mul
	OpBn256Pairing

	// Constant materialization: BlockBuilder.Constant emits it, so a
	// constant has a defining line in the printed text. Function.AddConstant
	// is the instruction-less alternative (ValueKindConstant).
	OpConstant
)

func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return "unknown"
}

var opcodeNames = map[Opcode]string{
	OpInvalid:            "invalid",
	OpAdd:                "add",
	OpSub:                "sub",
	OpMul:                "mul",
	OpDiv:                "div",
	OpMod:                "mod",
	OpCheckedAdd:         "checked_add",
	OpCheckedSub:         "checked_sub",
	OpCheckedMul:         "checked_mul",
	OpAnd:                "and",
	OpOr:                 "or",
	OpXor:                "xor",
	OpNot:                "not",
	OpShl:                "shl",
	OpShr:                "shr",
	OpEq:                 "eq",
	OpNe:                 "ne",
	OpLt:                 "lt",
	OpLe:                 "le",
	OpGt:                 "gt",
	OpGe:                 "ge",
	OpZext:               "zext",
	OpSext:               "sext",
	OpTrunc:              "trunc",
	OpBitcast:            "bitcast",
	OpStorageLoad:        "storage_load",
	OpStorageStore:       "storage_store",
	OpKeyedStorageLoad:   "keyed_storage_load",
	OpKeyedStorageStore:  "keyed_storage_store",
	OpStorageSlotAddr:    "storage_slot_addr",
	OpLoadDynamic:        "load_dynamic",
	OpStoreDynamic:       "store_dynamic",
	OpArrayLength:        "array_length",
	OpArrayPush:          "array_push",
	OpArrayPop:           "array_pop",
	OpStructFieldLoad:    "struct_field_load",
	OpStructFieldStore:   "struct_field_store",
	OpPackedLoad:         "packed_load",
	OpPackedStore:        "packed_store",
	OpMemoryAlloc:        "memory_alloc",
	OpMemoryCopy:         "memory_copy",
	OpMemorySize:         "memory_size",
	OpSender:             "sender",
	OpOrigin:             "origin",
	OpValue:              "value",
	OpAddressOf:          "address_of",
	OpMsgData:            "msg_data",
	OpMsgSig:             "msg_sig",
	OpBlockNumber:        "block_number",
	OpBlockTimestamp:     "block_timestamp",
	OpBlockDifficulty:    "block_difficulty",
	OpBlockGasLimit:      "block_gaslimit",
	OpBlockCoinbase:      "block_coinbase",
	OpBlockChainID:       "block_chainid",
	OpBlockBaseFee:       "block_basefee",
	OpTxGasPrice:         "tx_gasprice",
	OpGasLeft:            "gas_left",
	OpCall:               "call",
	OpExternCall:         "extern_call",
	OpPhi:                "phi",
	OpAssume:             "assume",
	OpRequire:            "require",
	OpAssert:             "assert",
	OpEventSignatureHash: "event_signature_hash",
	OpTopicAddr:          "topic_addr",
	OpEmit:               "emit",
	OpAbiEncode:          "abi_encode",
	OpKeccak256:          "keccak256",
	OpSha256:             "sha256",
	OpRipemd160:          "ripemd160",
	OpEcrecover:          "ecrecover",
	OpBlake2:             "blake2",
	OpModExp:             "modexp",
	OpBn256Add:           "bn256_add",
	OpBn256Mul:           "bn256_mul",
	OpBn256Pairing:       "bn256_pairing",
	OpConstant:           "constant",
}

// IsCheckedArith reports whether op is one of the overflow-checked
// arithmetic opcodes that requires an Imm.RevertTarget.
func (op Opcode) IsCheckedArith() bool {
	switch op {
	case OpCheckedAdd, OpCheckedSub, OpCheckedMul:
		return true
	default:
		return false
	}
}

// IsComparison reports whether op always produces a Bool result.
func (op Opcode) IsComparison() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	default:
		return false
	}
}

// IsStorageAccess reports whether op reads or writes persistent storage.
func (op Opcode) IsStorageAccess() bool {
	switch op {
	case OpStorageLoad, OpStorageStore, OpKeyedStorageLoad, OpKeyedStorageStore, OpStorageSlotAddr,
		OpLoadDynamic, OpStoreDynamic, OpArrayLength, OpArrayPush, OpArrayPop,
		OpStructFieldLoad, OpStructFieldStore, OpPackedLoad, OpPackedStore:
		return true
	default:
		return false
	}
}
