package codegen

import (
	"github.com/wippyai/decimal-jit/decimal"
	"github.com/wippyai/decimal-jit/emitter"
)

// LoadCompact narrows the canonical value in the four i64 slots starting at
// canonical into width w's compact layout and returns the base of the
// freshly reserved compact slots. Multi-word layouts keep their words in
// adjacent slots, most significant first.
func (g *Generator) LoadCompact(w decimal.Width, canonical uint32) uint32 {
	if !g.ok() {
		return 0
	}
	switch w {
	case decimal.Width8, decimal.Width16, decimal.Width32:
		slot := g.e.ReserveLocal(emitter.ValI32)
		g.e.LoadLocal(canonical + 3)
		g.e.Unary(emitter.OpI32WrapI64)
		switch w {
		case decimal.Width8:
			g.e.Unary(emitter.OpI32Extend8S)
		case decimal.Width16:
			g.e.Unary(emitter.OpI32Extend16S)
		}
		g.e.StoreLocal(slot)
		return slot

	case decimal.Width64:
		slot := g.e.ReserveLocal(emitter.ValI64)
		g.e.LoadLocal(canonical + 3)
		g.e.StoreLocal(slot)
		return slot

	case decimal.Width128:
		base := g.e.ReserveRun(emitter.ValI64, 2)
		g.e.LoadLocal(canonical + 2)
		g.e.StoreLocal(base)
		g.e.LoadLocal(canonical + 3)
		g.e.StoreLocal(base + 1)
		return base

	case decimal.Width256:
		base := g.e.ReserveRun(emitter.ValI64, 4)
		for i := uint32(0); i < 4; i++ {
			g.e.LoadLocal(canonical + i)
			g.e.StoreLocal(base + i)
		}
		return base

	default:
		g.badWidth(w)
		return 0
	}
}
