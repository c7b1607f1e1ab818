// Package routine turns finished module binaries into directly callable
// decimal primitives and caches them per width.
//
// A Materializer owns one wazero runtime. Each materialization compiles a
// module binary, instantiates it under a fresh name, and binds its single
// export as a Routine. Routines are immutable once published and safe for
// unlimited concurrent invocation; all state lives in the caller-supplied
// canonical words.
//
// The Cache guarantees at most one generation per (operation, width) pair
// and publishes completed routines to concurrent readers.
package routine
