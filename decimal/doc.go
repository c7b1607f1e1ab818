// Package decimal defines the storage layout model for fixed-precision
// decimal values.
//
// A decimal is a signed two's-complement integer paired with a scale, the
// number of digits to the right of the decimal point. Values are stored in
// one of six widths (8 to 256 bits); the 256-bit form is canonical and every
// narrower width embeds into it by sign extension.
//
// # Widths
//
// Each Width fully determines the compact storage size, the number of
// canonical 64-bit words the value occupies, and the null sentinel pattern:
//
//	Width8     1 byte    sentinel 0x80
//	Width16    2 bytes   sentinel 0x8000
//	Width32    4 bytes   sentinel 0x80000000
//	Width64    8 bytes   sentinel 0x8000000000000000
//	Width128   16 bytes  sentinel (hi=0x8000000000000000, lo=0)
//	Width256   32 bytes  sentinel (hh=0x8000000000000000, hl=lh=ll=0)
//
// The sentinel is the width's minimum representable value; it is reserved
// and never a legal operand, so no normal value collides with it.
//
// # Canonical form
//
// Decimal256 holds the canonical four-word representation (most significant
// word first) and implements the reference arithmetic the generated
// width-specialized routines are validated against: ripple-carry negation,
// absolute value and the per-width null test.
package decimal
