package emitter

// ValType is a WASM value type usable for parameters, results and locals.
type ValType byte

const (
	// ValI32 is a 32-bit integer slot.
	ValI32 ValType = 0x7F
	// ValI64 is a 64-bit integer slot.
	ValI64 ValType = 0x7E
	// ValExternref is an opaque host reference slot.
	ValExternref ValType = 0x6F
)

// Tag is the verification type of one symbolic stack or local slot.
type Tag byte

const (
	// TagAbsent marks an unused local slot. Frames never serialize slots
	// past the first absent one.
	TagAbsent Tag = iota
	// TagI32 marks a 32-bit integer.
	TagI32
	// TagI64 marks a 64-bit integer.
	TagI64
	// TagRef marks a reference carrying the pool index of its name.
	TagRef
)

func (t Tag) String() string {
	switch t {
	case TagAbsent:
		return "absent"
	case TagI32:
		return "i32"
	case TagI64:
		return "i64"
	default:
		return "ref"
	}
}

// SlotType pairs a verification tag with, for references, the pool index of
// the interned name the reference came from. It carries no runtime value.
type SlotType struct {
	Tag Tag
	Ref uint32
}

func tagOf(t ValType) Tag {
	switch t {
	case ValI32:
		return TagI32
	case ValI64:
		return TagI64
	default:
		return TagRef
	}
}

// Frame is the verification metadata snapshot recorded at one patched branch
// target: the types of the live locals (truncated at the first absent slot)
// and of the operand stack at that program point.
type Frame struct {
	Offset int
	Locals []SlotType
	Stack  []SlotType
}

// BranchKind selects the condition under which a forward branch is taken.
// A taken branch skips every instruction emitted between Branch and Patch.
type BranchKind uint8

const (
	// BrNonZero takes the branch when the popped i32 condition is non-zero.
	BrNonZero BranchKind = iota
	// BrZero takes the branch when the popped i32 condition is zero.
	BrZero
	// BrAlways takes the branch unconditionally and pops nothing.
	BrAlways
)

// Handle identifies one pending forward branch until it is patched.
type Handle struct {
	id int
}
