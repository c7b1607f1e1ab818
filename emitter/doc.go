// Package emitter is a low-level, append-only assembler for a single-function
// WebAssembly module.
//
// The emitter tracks the symbolic type of every operand-stack slot and local
// variable slot as instructions are appended, so that branch targets can be
// annotated with the verification metadata a validating runtime requires, and
// so misuse (emitting an operation without enough pushed operands) is caught
// at emission time rather than at module load.
//
// # Lifecycle
//
// One Emitter assembles one module start to finish and is not safe for
// concurrent use:
//
//	e := emitter.New()
//	e.Begin("abs", []emitter.ValType{emitter.ValI64}, []emitter.ValType{emitter.ValI64})
//	e.LoadLocal(0)
//	// ... emit instructions ...
//	e.Return()
//	bin, err := e.Finish()
//
// Begin resets every piece of state (code buffer, pools, scratch slot
// allocator, frames); Finish freezes the module and encodes it. The returned
// bytes share nothing with the emitter's internal buffers.
//
// # Error model
//
// Emission errors are sticky: the first misuse poisons the module, later
// calls become no-ops, and Finish (or Err) reports the original error. All
// errors indicate a defect in the calling generator, never bad user input.
//
// # Pools
//
// PoolConst interns 64-bit constants into the module's immutable global
// section and PoolRef interns names; both return the existing index for an
// equal value, so one module never carries duplicate entries.
//
// # Branches
//
// Forward branches are created before their target is known:
//
//	e.Binary(emitter.OpI64Ne)
//	br := e.Branch(emitter.BrNonZero) // taken: skips ahead
//	// ... code executed only when the branch is not taken ...
//	e.Patch(br)                       // target = current position
//
// Patch records a verification frame (live locals, operand stack) keyed to
// the patch offset; the full table is encoded into a "frames" custom section
// and is available through Frames. Branches nest and must be patched in LIFO
// order.
package emitter
