package emitter

import (
	"github.com/wippyai/decimal-jit/emitter/internal/binary"
	"github.com/wippyai/decimal-jit/errors"
)

// MaxCodeSize is the hard ceiling on one function's instruction stream in
// bytes. Exceeding it poisons the module with KindModuleTooLarge; there is
// no retry.
const MaxCodeSize = 65535

// Emitter assembles one single-function module. It is not safe for
// concurrent use; one instance serves one module start to finish.
type Emitter struct {
	code *binary.Writer
	err  error

	finished bool
	export   uint32
	params   []ValType
	results  []ValType

	// Symbolic operand stack and local slot table. These carry static
	// types only, never runtime values.
	stack  []SlotType
	locals []SlotType
	decl   []ValType

	// Deduplicated pools.
	consts     []int64
	constIndex map[int64]uint32
	refs       []string
	refIndex   map[string]uint32

	open   []openBranch
	nextID int
	frames []Frame
}

type openBranch struct {
	id    int
	entry int // operand stack depth at branch creation
}

// New creates an emitter. Begin must be called before emitting.
func New() *Emitter {
	e := &Emitter{}
	e.reset()
	return e
}

func (e *Emitter) reset() {
	e.code = binary.NewWriter()
	e.err = nil
	e.finished = false
	e.export = 0
	e.params = nil
	e.results = nil
	e.stack = nil
	e.locals = nil
	e.decl = nil
	e.consts = nil
	e.constIndex = make(map[int64]uint32)
	e.refs = nil
	e.refIndex = make(map[string]uint32)
	e.open = nil
	e.nextID = 0
	e.frames = nil
}

// Begin starts a fresh module exporting one function under the given name
// with the given signature. Every piece of prior state - code buffer, pools,
// scratch slot allocator, recorded frames - is discarded.
func (e *Emitter) Begin(export string, params, results []ValType) {
	e.reset()
	e.params = append([]ValType(nil), params...)
	e.results = append([]ValType(nil), results...)
	e.decl = append([]ValType(nil), params...)
	for _, p := range params {
		e.locals = append(e.locals, SlotType{Tag: tagOf(p)})
	}
	e.export = e.PoolRef(export)
}

// Err returns the sticky error, if any.
func (e *Emitter) Err() error {
	return e.err
}

// Position returns the current code offset in bytes.
func (e *Emitter) Position() int {
	return e.code.Len()
}

// Frames returns the verification frames recorded so far, one per patched
// branch target, in patch order.
func (e *Emitter) Frames() []Frame {
	return e.frames
}

// ParamCount returns the number of declared parameters.
func (e *Emitter) ParamCount() int {
	return len(e.params)
}

func (e *Emitter) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *Emitter) ok() bool {
	if e.finished {
		e.fail(errors.Emit(errors.KindUnsupported, "emit into a finished module"))
	}
	return e.err == nil
}

func (e *Emitter) op(b byte) {
	e.code.Byte(b)
	if e.code.Len() > MaxCodeSize {
		e.fail(errors.Emit(errors.KindModuleTooLarge,
			"code stream is %d bytes, limit is %d", e.code.Len(), MaxCodeSize))
	}
}

func (e *Emitter) u32(v uint32) {
	e.code.WriteU32(v)
}

func (e *Emitter) s64(v int64) {
	e.code.WriteS64(v)
}

func (e *Emitter) pop(want Tag, what string) SlotType {
	if len(e.stack) == 0 {
		e.fail(errors.Emit(errors.KindStackUnderflow,
			"%s needs an operand, stack is empty", what))
		return SlotType{}
	}
	s := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	if s.Tag != want {
		e.fail(errors.Emit(errors.KindUnsupported,
			"%s wants a %s operand, stack has %s", what, want, s.Tag))
	}
	return s
}

// PoolConst interns a 64-bit constant into the module's immutable constant
// pool; equal values share one index.
func (e *Emitter) PoolConst(v int64) uint32 {
	if idx, hit := e.constIndex[v]; hit {
		return idx
	}
	idx := uint32(len(e.consts))
	e.consts = append(e.consts, v)
	e.constIndex[v] = idx
	return idx
}

// PoolRef interns a name; equal names share one index.
func (e *Emitter) PoolRef(name string) uint32 {
	if idx, hit := e.refIndex[name]; hit {
		return idx
	}
	idx := uint32(len(e.refs))
	e.refs = append(e.refs, name)
	e.refIndex[name] = idx
	return idx
}

// LoadLocal pushes the value (and symbolic type) of a local slot.
func (e *Emitter) LoadLocal(slot uint32) {
	if !e.ok() {
		return
	}
	if int(slot) >= len(e.locals) || e.locals[slot].Tag == TagAbsent {
		e.fail(errors.Emit(errors.KindBadSlot, "load of unreserved local %d", slot))
		return
	}
	e.stack = append(e.stack, e.locals[slot])
	e.op(opLocalGet)
	e.u32(slot)
}

// StoreLocal pops the stack into a local slot and records the popped type
// in the slot table.
func (e *Emitter) StoreLocal(slot uint32) {
	if !e.ok() {
		return
	}
	if int(slot) >= len(e.decl) {
		e.fail(errors.Emit(errors.KindBadSlot, "store to unreserved local %d", slot))
		return
	}
	s := e.pop(tagOf(e.decl[slot]), "local.set")
	if e.err != nil {
		return
	}
	e.locals[slot] = s
	e.op(opLocalSet)
	e.u32(slot)
}

// ConstI32 pushes an inline 32-bit constant.
func (e *Emitter) ConstI32(v int32) {
	if !e.ok() {
		return
	}
	e.stack = append(e.stack, SlotType{Tag: TagI32})
	e.op(opI32Const)
	e.s64(int64(v))
}

// ConstI64 pushes an inline 64-bit constant.
func (e *Emitter) ConstI64(v int64) {
	if !e.ok() {
		return
	}
	e.stack = append(e.stack, SlotType{Tag: TagI64})
	e.op(opI64Const)
	e.s64(v)
}

// LoadConst pushes a pooled constant by index.
func (e *Emitter) LoadConst(idx uint32) {
	if !e.ok() {
		return
	}
	if int(idx) >= len(e.consts) {
		e.fail(errors.Emit(errors.KindBadPool, "constant pool index %d of %d", idx, len(e.consts)))
		return
	}
	e.stack = append(e.stack, SlotType{Tag: TagI64})
	e.op(opGlobalGet)
	e.u32(idx)
}

// Unary appends a one-operand instruction.
func (e *Emitter) Unary(op UnaryOp) {
	if !e.ok() {
		return
	}
	if int(op) >= len(unaryOps) {
		e.fail(errors.Emit(errors.KindUnsupported, "unknown unary op %d", op))
		return
	}
	info := unaryOps[op]
	e.pop(info.operand, info.name)
	if e.err != nil {
		return
	}
	e.stack = append(e.stack, SlotType{Tag: info.result})
	e.op(info.opcode)
}

// Binary appends a two-operand instruction.
func (e *Emitter) Binary(op BinaryOp) {
	if !e.ok() {
		return
	}
	if int(op) >= len(binaryOps) {
		e.fail(errors.Emit(errors.KindUnsupported, "unknown binary op %d", op))
		return
	}
	info := binaryOps[op]
	e.pop(info.operand, info.name)
	e.pop(info.operand, info.name)
	if e.err != nil {
		return
	}
	e.stack = append(e.stack, SlotType{Tag: info.result})
	e.op(info.opcode)
}

// Branch appends a forward branch with a not-yet-known target and returns a
// handle for patching. Conditional kinds pop their i32 condition; underflow
// is KindStackUnderflow.
func (e *Emitter) Branch(kind BranchKind) Handle {
	if !e.ok() {
		return Handle{id: -1}
	}
	switch kind {
	case BrNonZero:
		e.pop(TagI32, "branch")
		if e.err != nil {
			return Handle{id: -1}
		}
		// Skip-when-nonzero inverts into enter-when-zero.
		e.op(unaryOps[OpI32Eqz].opcode)
		e.op(opIf)
		e.op(opBlockVoid)
	case BrZero:
		e.pop(TagI32, "branch")
		if e.err != nil {
			return Handle{id: -1}
		}
		e.op(opIf)
		e.op(opBlockVoid)
	case BrAlways:
		e.op(opBlock)
		e.op(opBlockVoid)
		e.op(opBr)
		e.u32(0)
	default:
		e.fail(errors.Emit(errors.KindUnsupported, "unknown branch kind %d", kind))
		return Handle{id: -1}
	}
	id := e.nextID
	e.nextID++
	e.open = append(e.open, openBranch{id: id, entry: len(e.stack)})
	return Handle{id: id}
}

// Patch resolves a branch to the current position and records a
// verification frame there. Branches nest; only the innermost open branch
// may be patched.
func (e *Emitter) Patch(h Handle) {
	if !e.ok() {
		return
	}
	n := len(e.open)
	if n == 0 || h.id < 0 {
		e.fail(errors.Emit(errors.KindBadBranch, "patch of unknown branch"))
		return
	}
	top := e.open[n-1]
	if top.id != h.id {
		e.fail(errors.Emit(errors.KindBadBranch, "branch patched out of nesting order"))
		return
	}
	if len(e.stack) != top.entry {
		e.fail(errors.Emit(errors.KindBadBranch,
			"operand stack is %d deep at patch, was %d at branch", len(e.stack), top.entry))
		return
	}
	e.open = e.open[:n-1]
	e.op(opEnd)
	e.frames = append(e.frames, Frame{
		Offset: e.code.Len(),
		Locals: e.liveLocals(),
		Stack:  append([]SlotType(nil), e.stack...),
	})
}

// liveLocals snapshots the local table up to, not including, the first
// absent slot. Trailing released slots are never serialized.
func (e *Emitter) liveLocals() []SlotType {
	var out []SlotType
	for _, s := range e.locals {
		if s.Tag == TagAbsent {
			break
		}
		out = append(out, s)
	}
	return out
}

// ReserveLocal allocates a scratch local slot, reusing a released slot of
// the same declared type when one exists. Allocation is otherwise monotonic.
func (e *Emitter) ReserveLocal(t ValType) uint32 {
	if !e.ok() {
		return 0
	}
	for i := len(e.params); i < len(e.decl); i++ {
		if e.locals[i].Tag == TagAbsent && e.decl[i] == t {
			e.locals[i] = SlotType{Tag: tagOf(t)}
			return uint32(i)
		}
	}
	return e.appendLocal(t)
}

// ReserveRun allocates n fresh contiguous slots of one type and returns the
// first index. Runs never reuse released slots, so multi-word values stay
// adjacent.
func (e *Emitter) ReserveRun(t ValType, n int) uint32 {
	if !e.ok() {
		return 0
	}
	base := e.appendLocal(t)
	for i := 1; i < n; i++ {
		e.appendLocal(t)
	}
	return base
}

func (e *Emitter) appendLocal(t ValType) uint32 {
	idx := uint32(len(e.decl))
	e.decl = append(e.decl, t)
	e.locals = append(e.locals, SlotType{Tag: tagOf(t)})
	return idx
}

// ReleaseLocal frees a scratch slot for reuse. Parameters cannot be
// released.
func (e *Emitter) ReleaseLocal(slot uint32) {
	if !e.ok() {
		return
	}
	if int(slot) < len(e.params) || int(slot) >= len(e.locals) || e.locals[slot].Tag == TagAbsent {
		e.fail(errors.Emit(errors.KindBadSlot, "release of unreserved local %d", slot))
		return
	}
	e.locals[slot] = SlotType{}
}

// Return pops the declared results and appends a return.
func (e *Emitter) Return() {
	if !e.ok() {
		return
	}
	for i := len(e.results) - 1; i >= 0; i-- {
		e.pop(tagOf(e.results[i]), "return")
	}
	if e.err != nil {
		return
	}
	e.op(opReturn)
}

// Finish freezes the module and encodes it. The returned bytes are
// self-contained; the emitter's internal buffers are not referenced.
func (e *Emitter) Finish() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.finished {
		return nil, errors.Emit(errors.KindUnsupported, "module already finished")
	}
	if len(e.open) > 0 {
		return nil, errors.Emit(errors.KindBadBranch, "%d branches left unpatched", len(e.open))
	}
	e.finished = true
	return e.encode(), nil
}
