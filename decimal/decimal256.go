package decimal

import (
	"math/bits"
	"strings"
)

// Decimal256 is the canonical 256-bit decimal representation: a signed
// two's-complement integer held in four 64-bit words, most significant
// first, plus a scale. Every narrower width embeds into it losslessly.
type Decimal256 struct {
	Hh, Hl, Lh, Ll uint64
	Scale          int32
}

// Null is the canonical null sentinel: minimum value in the most
// significant word, zero elsewhere.
var Null = Decimal256{Hh: signWord}

// New builds a canonical value from its four words, most significant first.
func New(hh, hl, lh, ll uint64, scale int32) Decimal256 {
	return Decimal256{Hh: hh, Hl: hl, Lh: lh, Ll: ll, Scale: scale}
}

// FromInt64 sign-extends v into canonical form.
func FromInt64(v int64, scale int32) Decimal256 {
	fill := uint64(v >> 63)
	return Decimal256{Hh: fill, Hl: fill, Lh: fill, Ll: uint64(v), Scale: scale}
}

// FromInt128 sign-extends a 128-bit value (high word signed) into canonical
// form.
func FromInt128(hi int64, lo uint64, scale int32) Decimal256 {
	fill := uint64(hi >> 63)
	return Decimal256{Hh: fill, Hl: fill, Lh: uint64(hi), Ll: lo, Scale: scale}
}

// IsNull reports whether d is the canonical null sentinel.
func (d Decimal256) IsNull() bool {
	return d.Hh == signWord && d.Hl == 0 && d.Lh == 0 && d.Ll == 0
}

// IsNeg reports whether d is negative under the signed interpretation.
func (d Decimal256) IsNeg() bool {
	return d.Hh&signWord != 0
}

// IsZero reports whether every word of d is zero.
func (d Decimal256) IsZero() bool {
	return d.Hh == 0 && d.Hl == 0 && d.Lh == 0 && d.Ll == 0
}

// Sign returns -1, 0 or 1.
func (d Decimal256) Sign() int {
	if d.IsNeg() {
		return -1
	}
	if d.IsZero() {
		return 0
	}
	return 1
}

// Neg returns the two's-complement negation of d: each word inverted, then
// a carry rippled in from the least significant word. Negating the minimum
// value wraps around to itself; that value is the null sentinel and never a
// legal operand.
func (d Decimal256) Neg() Decimal256 {
	ll, c := bits.Add64(^d.Ll, 1, 0)
	lh, c := bits.Add64(^d.Lh, 0, c)
	hl, c := bits.Add64(^d.Hl, 0, c)
	hh, _ := bits.Add64(^d.Hh, 0, c)
	return Decimal256{Hh: hh, Hl: hl, Lh: lh, Ll: ll, Scale: d.Scale}
}

// Abs returns the absolute value of d. The caller must have null-checked d.
func (d Decimal256) Abs() Decimal256 {
	if d.IsNeg() {
		return d.Neg()
	}
	return d
}

// Equal reports bit-exact word equality, ignoring scale.
func (d Decimal256) Equal(o Decimal256) bool {
	return d.Hh == o.Hh && d.Hl == o.Hl && d.Lh == o.Lh && d.Ll == o.Ll
}

// Int64 truncates d to its least significant word.
func (d Decimal256) Int64() int64 {
	return int64(d.Ll)
}

// divmod10 divides the four-word magnitude in place by 10 and returns the
// remainder digit.
func divmod10(w *[4]uint64) byte {
	var rem uint64
	for i := 0; i < 4; i++ {
		w[i], rem = bits.Div64(rem, w[i], 10)
	}
	return byte(rem)
}

// String renders the scaled decimal value, or "null" for the sentinel.
func (d Decimal256) String() string {
	if d.IsNull() {
		return "null"
	}

	neg := d.IsNeg()
	m := d
	if neg {
		m = m.Neg()
	}

	// 256-bit magnitudes need at most 78 digits.
	var digits [80]byte
	n := 0
	w := [4]uint64{m.Hh, m.Hl, m.Lh, m.Ll}
	for {
		digits[n] = '0' + divmod10(&w)
		n++
		if w[0] == 0 && w[1] == 0 && w[2] == 0 && w[3] == 0 {
			break
		}
	}

	scale := int(d.Scale)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if scale <= 0 {
		for i := n - 1; i >= 0; i-- {
			b.WriteByte(digits[i])
		}
		return b.String()
	}

	// Pad so at least one digit lands left of the point.
	for n <= scale {
		digits[n] = '0'
		n++
	}
	for i := n - 1; i >= scale; i-- {
		b.WriteByte(digits[i])
	}
	b.WriteByte('.')
	for i := scale - 1; i >= 0; i-- {
		b.WriteByte(digits[i])
	}
	return b.String()
}
