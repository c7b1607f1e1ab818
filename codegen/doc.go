// Package codegen translates width-polymorphic decimal primitives into
// emitter call sequences specialized for one storage width.
//
// # Operations
//
// Five building blocks compose every generated routine:
//
//   - LoadCompact narrows a canonical four-word value into the width's
//     compact slot layout.
//   - NullCheck compares the compact value against the width's null
//     sentinel and branches past the null-handling block on a mismatch.
//   - Abs negates the compact value in place when its sign bit is set,
//     rippling the carry through multi-word layouts.
//   - StoreCanonical widens the compact value back to four words, filling
//     uncovered words by sign extension or with zeros.
//   - StoreCanonicalNull writes the canonical null sentinel.
//
// AbsRoutine composes them into a complete module for one width, ready for
// the routine package to materialize.
//
// # Errors
//
// Generation appends instructions and nothing else. Failures surface
// through the emitter's sticky error; the generator adds no error paths of
// its own beyond rejecting an unknown width.
package codegen
