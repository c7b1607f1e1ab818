package codegen

import (
	"github.com/wippyai/decimal-jit/decimal"
	"github.com/wippyai/decimal-jit/emitter"
)

// Abs replaces the compact value at compact with its absolute value. The
// sign test reads the most significant word; non-negative values skip the
// negation block entirely. Callers null-check first, so the width's
// minimum value never reaches the negation (it is the null sentinel) and
// its two's-complement self-negation wraparound stays unreachable.
func (g *Generator) Abs(w decimal.Width, compact uint32) {
	if !g.ok() {
		return
	}

	// Push 1 when the value is negative.
	switch w {
	case decimal.Width8, decimal.Width16, decimal.Width32:
		g.e.LoadLocal(compact)
		g.e.ConstI32(0)
		g.e.Binary(emitter.OpI32LtS)
	case decimal.Width64, decimal.Width128, decimal.Width256:
		g.e.LoadLocal(compact)
		g.e.ConstI64(0)
		g.e.Binary(emitter.OpI64LtS)
	default:
		g.badWidth(w)
		return
	}
	skip := g.e.Branch(emitter.BrZero)

	switch w {
	case decimal.Width8, decimal.Width16, decimal.Width32:
		g.e.ConstI32(0)
		g.e.LoadLocal(compact)
		g.e.Binary(emitter.OpI32Sub)
		g.e.StoreLocal(compact)

	case decimal.Width64:
		g.e.ConstI64(0)
		g.e.LoadLocal(compact)
		g.e.Binary(emitter.OpI64Sub)
		g.e.StoreLocal(compact)

	case decimal.Width128:
		g.negate128(compact)

	case decimal.Width256:
		g.negate256(compact)
	}

	g.e.Patch(skip)
}

// negate128 negates the two-word value at base in place. The low word's
// carry into the high word is 1 exactly when the negated low word is zero.
func (g *Generator) negate128(base uint32) {
	// low = ^low + 1
	g.e.LoadLocal(base + 1)
	g.not64()
	g.e.ConstI64(1)
	g.e.Binary(emitter.OpI64Add)
	g.e.StoreLocal(base + 1)

	// high = ^high + (low == 0)
	g.e.LoadLocal(base + 1)
	g.e.Unary(emitter.OpI64Eqz)
	g.e.Unary(emitter.OpI64ExtendI32U)
	g.e.LoadLocal(base)
	g.not64()
	g.e.Binary(emitter.OpI64Add)
	g.e.StoreLocal(base)
}

// negate256 negates the four-word value at base in place, rippling the
// carry from the least significant word up through a scratch slot. A word
// propagates the carry exactly when it was zero before negation, which is
// when its negated form plus the incoming carry wrapped to zero again.
func (g *Generator) negate256(base uint32) {
	carry := g.e.ReserveLocal(emitter.ValI64)

	// ll = ^ll + 1
	g.e.LoadLocal(base + 3)
	g.not64()
	g.e.ConstI64(1)
	g.e.Binary(emitter.OpI64Add)
	g.e.StoreLocal(base + 3)

	g.e.LoadLocal(base + 3)
	g.e.Unary(emitter.OpI64Eqz)
	g.e.Unary(emitter.OpI64ExtendI32U)
	g.e.StoreLocal(carry)

	// Middle words: word = ^word + carry, carry stays set only while the
	// incoming carry wraps the word to zero.
	for _, slot := range []uint32{base + 2, base + 1} {
		g.e.LoadLocal(slot)
		g.not64()
		g.e.LoadLocal(carry)
		g.e.Binary(emitter.OpI64Add)
		g.e.StoreLocal(slot)

		g.e.LoadLocal(carry)
		g.e.LoadLocal(slot)
		g.e.Unary(emitter.OpI64Eqz)
		g.e.Unary(emitter.OpI64ExtendI32U)
		g.e.Binary(emitter.OpI64And)
		g.e.StoreLocal(carry)
	}

	// hh = ^hh + carry; the outgoing carry is discarded.
	g.e.LoadLocal(base)
	g.not64()
	g.e.LoadLocal(carry)
	g.e.Binary(emitter.OpI64Add)
	g.e.StoreLocal(base)

	g.e.ReleaseLocal(carry)
}
