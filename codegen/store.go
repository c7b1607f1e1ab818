package codegen

import (
	"github.com/wippyai/decimal-jit/decimal"
	"github.com/wippyai/decimal-jit/emitter"
)

// StoreCanonical widens the compact value at compact into the four i64
// slots starting at dest. Canonical words the compact layout does not cover
// take a fill word: the compact value's sign spread across 64 bits when
// signExtend is set, zero otherwise. Callers storing a fresh absolute value
// pass signExtend false and skip the sign test.
func (g *Generator) StoreCanonical(w decimal.Width, compact, dest uint32, signExtend bool) {
	if !g.ok() {
		return
	}
	covered := uint32(compactSlots(w))

	var fill uint32
	if signExtend && w != decimal.Width256 {
		fill = g.e.ReserveLocal(emitter.ValI64)
		switch compactType(w) {
		case emitter.ValI32:
			g.e.LoadLocal(compact)
			g.e.ConstI32(31)
			g.e.Binary(emitter.OpI32ShrS)
			g.e.Unary(emitter.OpI64ExtendI32S)
		default:
			g.e.LoadLocal(compact)
			g.e.ConstI64(63)
			g.e.Binary(emitter.OpI64ShrS)
		}
		g.e.StoreLocal(fill)
	}

	// Uncovered high words first, then the value's own words.
	for i := uint32(0); i < 4-covered; i++ {
		if signExtend && w != decimal.Width256 {
			g.e.LoadLocal(fill)
		} else {
			g.e.ConstI64(0)
		}
		g.e.StoreLocal(dest + i)
	}

	switch w {
	case decimal.Width8, decimal.Width16, decimal.Width32:
		g.e.LoadLocal(compact)
		if signExtend {
			g.e.Unary(emitter.OpI64ExtendI32S)
		} else {
			g.e.Unary(emitter.OpI64ExtendI32U)
		}
		g.e.StoreLocal(dest + 3)

	case decimal.Width64, decimal.Width128, decimal.Width256:
		for i := uint32(0); i < covered; i++ {
			g.e.LoadLocal(compact + i)
			g.e.StoreLocal(dest + 4 - covered + i)
		}

	default:
		g.badWidth(w)
		return
	}

	if signExtend && w != decimal.Width256 {
		g.e.ReleaseLocal(fill)
	}
}

// StoreCanonicalNull writes the canonical null sentinel into the four i64
// slots starting at dest.
func (g *Generator) StoreCanonicalNull(dest uint32) {
	if !g.ok() {
		return
	}
	g.loadMin()
	g.e.StoreLocal(dest)
	for i := uint32(1); i < 4; i++ {
		g.e.ConstI64(0)
		g.e.StoreLocal(dest + i)
	}
}
