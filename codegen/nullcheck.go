package codegen

import (
	"github.com/wippyai/decimal-jit/decimal"
	"github.com/wippyai/decimal-jit/emitter"
)

// NullCheck compares the compact value at compact against width w's null
// sentinel and returns a branch taken on any mismatch. Control falls
// through into the null-handling block only on an exact sentinel match;
// Patch the handle where normal processing resumes.
//
// Multi-word widths compare every word and OR the mismatch flags, so a
// value sharing only the sentinel's most significant word stays non-null.
func (g *Generator) NullCheck(w decimal.Width, compact uint32) emitter.Handle {
	if !g.ok() {
		return emitter.Handle{}
	}
	switch w {
	case decimal.Width8:
		g.e.LoadLocal(compact)
		g.e.ConstI32(int32(decimal.Null8))
		g.e.Binary(emitter.OpI32Ne)

	case decimal.Width16:
		g.e.LoadLocal(compact)
		g.e.ConstI32(int32(decimal.Null16))
		g.e.Binary(emitter.OpI32Ne)

	case decimal.Width32:
		g.e.LoadLocal(compact)
		g.e.ConstI32(decimal.Null32)
		g.e.Binary(emitter.OpI32Ne)

	case decimal.Width64:
		g.e.LoadLocal(compact)
		g.loadMin()
		g.e.Binary(emitter.OpI64Ne)

	case decimal.Width128, decimal.Width256:
		words := uint32(compactSlots(w))
		// Most significant word against the sentinel, the rest against
		// zero, mismatches ORed together.
		g.e.LoadLocal(compact)
		g.loadMin()
		g.e.Binary(emitter.OpI64Ne)
		for i := uint32(1); i < words; i++ {
			g.e.LoadLocal(compact + i)
			g.e.ConstI64(0)
			g.e.Binary(emitter.OpI64Ne)
			g.e.Binary(emitter.OpI32Or)
		}

	default:
		g.badWidth(w)
		return emitter.Handle{}
	}
	return g.e.Branch(emitter.BrNonZero)
}
