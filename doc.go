// Package decimaljit generates width-specialized decimal routines at
// runtime.
//
// Decimal values are signed two's-complement integers in one of six
// storage widths (8 through 256 bits) paired with a scale. Rather than
// funnel every operation through a generic 256-bit code path, the library
// emits a dedicated routine per width that works on the compact
// in-register layout directly.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	decimaljit/          Root package with the query-engine facade
//	├── decimal/         Width layouts, null sentinels, canonical 256-bit values
//	├── emitter/         Single-function module assembler with symbolic
//	│                    stack/local tracking and verification frames
//	├── codegen/         Width-dispatch translation of decimal primitives
//	│                    into emitter call sequences
//	├── routine/         Materialization of finished modules into callable
//	│                    routines, plus the per-width cache
//	└── errors/          Structured error types for generation failures
//
// # Quick Start
//
// Generate and call an absolute value routine:
//
//	eng := decimaljit.New(ctx)
//	defer eng.Close(ctx)
//
//	v := decimal.FromInt64(-12345, 2) // -123.45
//	got, err := eng.Abs(ctx, decimal.Width64, v)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(got) // "123.45"
//
// Routines are generated once per width and cached; published routines are
// immutable and safe for unlimited concurrent invocation.
package decimaljit
