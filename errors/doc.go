// Package errors provides structured error types for the decimal-jit library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Every error produced by the emitter, the width-dispatch code
// generators or the materializer indicates a programming defect in the
// generator, never malformed user input: null decimal values are modeled as
// data and flow through generated branches, not through errors.
//
// Construct errors with the phase/kind constructors:
//
//	err := errors.Emit(errors.KindStackUnderflow, "branch needs a condition")
//	err := errors.Materialize(err, "module rejected")
//
// All errors implement the standard error interface and support
// errors.Is/As; two errors match when their Phase and Kind are equal.
package errors
