package emitter

// WASM opcodes the emitter issues directly.
const (
	opBlock       = 0x02
	opIf          = 0x04
	opEnd         = 0x0B
	opBr          = 0x0C
	opReturn      = 0x0F
	opLocalGet    = 0x20
	opLocalSet    = 0x21
	opGlobalGet   = 0x23
	opI32Const    = 0x41
	opI64Const    = 0x42
	opBlockVoid   = 0x40
	funcTypeByte  = 0x60
	globalImmut   = 0x00
	exportKindFun = 0x00
)

// UnaryOp is a one-operand instruction.
type UnaryOp uint8

const (
	// OpI32Eqz pops an i32 and pushes 1 if it was zero, else 0.
	OpI32Eqz UnaryOp = iota
	// OpI64Eqz pops an i64 and pushes an i32 equality-with-zero flag.
	OpI64Eqz
	// OpI32WrapI64 truncates an i64 to its low 32 bits.
	OpI32WrapI64
	// OpI64ExtendI32S widens an i32 to i64 with sign extension.
	OpI64ExtendI32S
	// OpI64ExtendI32U widens an i32 to i64 with zero extension.
	OpI64ExtendI32U
	// OpI32Extend8S sign-extends the low 8 bits of an i32 in place.
	OpI32Extend8S
	// OpI32Extend16S sign-extends the low 16 bits of an i32 in place.
	OpI32Extend16S
)

type opInfo struct {
	name    string
	opcode  byte
	operand Tag
	result  Tag
}

var unaryOps = [...]opInfo{
	OpI32Eqz:        {"i32.eqz", 0x45, TagI32, TagI32},
	OpI64Eqz:        {"i64.eqz", 0x50, TagI64, TagI32},
	OpI32WrapI64:    {"i32.wrap_i64", 0xA7, TagI64, TagI32},
	OpI64ExtendI32S: {"i64.extend_i32_s", 0xAC, TagI32, TagI64},
	OpI64ExtendI32U: {"i64.extend_i32_u", 0xAD, TagI32, TagI64},
	OpI32Extend8S:   {"i32.extend8_s", 0xC0, TagI32, TagI32},
	OpI32Extend16S:  {"i32.extend16_s", 0xC1, TagI32, TagI32},
}

func (op UnaryOp) String() string {
	if int(op) < len(unaryOps) {
		return unaryOps[op].name
	}
	return "unary?"
}

// BinaryOp is a two-operand instruction. Comparison results are i32.
type BinaryOp uint8

const (
	OpI32Add BinaryOp = iota
	OpI32Sub
	OpI32And
	OpI32Or
	OpI32Xor
	OpI32ShrS
	OpI32Eq
	OpI32Ne
	OpI32LtS
	OpI64Add
	OpI64Sub
	OpI64And
	OpI64Or
	OpI64Xor
	OpI64ShrS
	OpI64Eq
	OpI64Ne
	OpI64LtS
)

var binaryOps = [...]opInfo{
	OpI32Add:  {"i32.add", 0x6A, TagI32, TagI32},
	OpI32Sub:  {"i32.sub", 0x6B, TagI32, TagI32},
	OpI32And:  {"i32.and", 0x71, TagI32, TagI32},
	OpI32Or:   {"i32.or", 0x72, TagI32, TagI32},
	OpI32Xor:  {"i32.xor", 0x73, TagI32, TagI32},
	OpI32ShrS: {"i32.shr_s", 0x75, TagI32, TagI32},
	OpI32Eq:   {"i32.eq", 0x46, TagI32, TagI32},
	OpI32Ne:   {"i32.ne", 0x47, TagI32, TagI32},
	OpI32LtS:  {"i32.lt_s", 0x48, TagI32, TagI32},
	OpI64Add:  {"i64.add", 0x7C, TagI64, TagI64},
	OpI64Sub:  {"i64.sub", 0x7D, TagI64, TagI64},
	OpI64And:  {"i64.and", 0x83, TagI64, TagI64},
	OpI64Or:   {"i64.or", 0x84, TagI64, TagI64},
	OpI64Xor:  {"i64.xor", 0x85, TagI64, TagI64},
	OpI64ShrS: {"i64.shr_s", 0x87, TagI64, TagI64},
	OpI64Eq:   {"i64.eq", 0x51, TagI64, TagI32},
	OpI64Ne:   {"i64.ne", 0x52, TagI64, TagI32},
	OpI64LtS:  {"i64.lt_s", 0x53, TagI64, TagI32},
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOps) {
		return binaryOps[op].name
	}
	return "binary?"
}
