package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in code generation the error occurred
type Phase string

const (
	PhaseEmit        Phase = "emit"        // instruction emission
	PhaseCodegen     Phase = "codegen"     // width-dispatch generation
	PhaseMaterialize Phase = "materialize" // module compilation and instantiation
)

// Kind categorizes the error
type Kind string

const (
	// KindStackUnderflow reports an operation emitted without enough
	// operands on the symbolic stack.
	KindStackUnderflow Kind = "stack_underflow"
	// KindModuleTooLarge reports a code stream past the hard size ceiling.
	KindModuleTooLarge Kind = "module_too_large"
	// KindBadSlot reports a load, store or release of a local slot that
	// was never reserved, or a reserve after slot space ran out.
	KindBadSlot Kind = "bad_slot"
	// KindBadBranch reports an out-of-order patch or a branch left
	// unpatched when the module was finished.
	KindBadBranch Kind = "bad_branch"
	// KindBadPool reports a reference to a pool index that was never
	// interned.
	KindBadPool Kind = "bad_pool"
	// KindUnsupported reports an operation or width outside the closed
	// sets the generators handle.
	KindUnsupported Kind = "unsupported"
	// KindInvalidModule reports a finished module that the target runtime
	// refused to accept. This is an internal invariant violation.
	KindInvalidModule Kind = "invalid_module"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// New creates an error with an explicit phase and kind
func New(phase Phase, kind Kind, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{Phase: phase, Kind: kind, Detail: detail}
}

// Emit creates an emission-phase error
func Emit(kind Kind, detail string, args ...any) *Error {
	return New(PhaseEmit, kind, detail, args...)
}

// Codegen creates a generation-phase error
func Codegen(kind Kind, detail string, args ...any) *Error {
	return New(PhaseCodegen, kind, detail, args...)
}

// Materialize wraps a target-runtime rejection.
// The cause carries the runtime's own diagnostics.
func Materialize(cause error, detail string, args ...any) *Error {
	e := New(PhaseMaterialize, KindInvalidModule, detail, args...)
	e.Cause = cause
	return e
}

// Sentinel matchers for use with the standard errors.Is. Each value carries
// only a phase and kind, which is all Is compares.
var (
	ErrStackUnderflow = &Error{Phase: PhaseEmit, Kind: KindStackUnderflow}
	ErrModuleTooLarge = &Error{Phase: PhaseEmit, Kind: KindModuleTooLarge}
	ErrBadSlot        = &Error{Phase: PhaseEmit, Kind: KindBadSlot}
	ErrBadBranch      = &Error{Phase: PhaseEmit, Kind: KindBadBranch}
	ErrBadPool        = &Error{Phase: PhaseEmit, Kind: KindBadPool}
	ErrInvalidModule  = &Error{Phase: PhaseMaterialize, Kind: KindInvalidModule}
)
