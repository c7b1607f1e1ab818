package decimal

import "math"

// Width identifies one of the six supported decimal storage layouts.
type Width uint8

const (
	// Width8 is stored as a single byte.
	Width8 Width = iota
	// Width16 is stored as two bytes.
	Width16
	// Width32 is stored as four bytes.
	Width32
	// Width64 is stored as one 64-bit word.
	Width64
	// Width128 is stored as two 64-bit words (high and low).
	Width128
	// Width256 is stored as four 64-bit words (hh, hl, lh, ll).
	Width256
)

// Widths lists every supported width, narrowest first.
var Widths = [...]Width{Width8, Width16, Width32, Width64, Width128, Width256}

// signWord is the minimum-value bit pattern of a 64-bit storage word.
const signWord = uint64(0x8000000000000000)

// Compact null sentinels for the sub-128-bit widths. Each is the minimum
// representable value of its storage type.
const (
	Null8  int8  = math.MinInt8
	Null16 int16 = math.MinInt16
	Null32 int32 = math.MinInt32
	Null64 int64 = math.MinInt64
)

func (w Width) String() string {
	switch w {
	case Width8:
		return "decimal8"
	case Width16:
		return "decimal16"
	case Width32:
		return "decimal32"
	case Width64:
		return "decimal64"
	case Width128:
		return "decimal128"
	default:
		return "decimal256"
	}
}

// Bits returns the storage size in bits.
func (w Width) Bits() int {
	return w.StorageSize() * 8
}

// StorageSize returns the compact storage size in bytes.
func (w Width) StorageSize() int {
	switch w {
	case Width8:
		return 1
	case Width16:
		return 2
	case Width32:
		return 4
	case Width64:
		return 8
	case Width128:
		return 16
	default:
		return 32
	}
}

// WordCount returns how many canonical 64-bit words the value touches when
// stored in canonical form.
func (w Width) WordCount() int {
	switch w {
	case Width128:
		return 2
	case Width256:
		return 4
	default:
		return 1
	}
}

// NullPattern returns the null sentinel as the minimum-value bit pattern of
// the most significant storage word plus the count of less significant words
// that must be zero. A value is null iff it matches this pattern bit-exactly.
func (w Width) NullPattern() (msw uint64, zeroWords int) {
	switch w {
	case Width8:
		return 0x80, 0
	case Width16:
		return 0x8000, 0
	case Width32:
		return 0x80000000, 0
	case Width64:
		return signWord, 0
	case Width128:
		return signWord, 1
	default:
		return signWord, 3
	}
}

// IsNull reports whether the canonical value d reads as null at width w.
// The test narrows d to w's compact form and compares it against the
// width's sentinel, matching what the generated routines do.
func IsNull(w Width, d Decimal256) bool {
	switch w {
	case Width8:
		return int8(d.Ll) == Null8
	case Width16:
		return int16(d.Ll) == Null16
	case Width32:
		return int32(d.Ll) == Null32
	case Width64:
		return int64(d.Ll) == Null64
	case Width128:
		return d.Lh == signWord && d.Ll == 0
	default:
		return d.IsNull()
	}
}

// NullCanonical returns the canonical (sign-extended) embedding of width w's
// compact null sentinel: the value a routine receives when the storage layer
// hands it a stored null.
func NullCanonical(w Width) Decimal256 {
	switch w {
	case Width8:
		return FromInt64(int64(Null8), 0)
	case Width16:
		return FromInt64(int64(Null16), 0)
	case Width32:
		return FromInt64(int64(Null32), 0)
	case Width64:
		return FromInt64(Null64, 0)
	case Width128:
		return FromInt128(math.MinInt64, 0, 0)
	default:
		return Null
	}
}
