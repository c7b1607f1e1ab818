package codegen

import (
	"math"

	"github.com/wippyai/decimal-jit/decimal"
	"github.com/wippyai/decimal-jit/emitter"
	"github.com/wippyai/decimal-jit/errors"
)

// Generator drives one emitter through the width-specialized instruction
// sequences. Like the emitter it wraps, it serves one module start to
// finish and is not safe for concurrent use.
type Generator struct {
	e   *emitter.Emitter
	err error

	// Pool indices of the two 64-bit constants every multi-word sequence
	// needs. Interned on first use.
	minI64    uint32
	negOneI64 uint32
	pooled    bool
}

// New wraps an emitter that already has a module begun on it.
func New(e *emitter.Emitter) *Generator {
	return &Generator{e: e}
}

// Err returns the first error from the generator or its emitter.
func (g *Generator) Err() error {
	if g.err != nil {
		return g.err
	}
	return g.e.Err()
}

func (g *Generator) fail(err error) {
	if g.err == nil {
		g.err = err
	}
}

func (g *Generator) ok() bool {
	return g.err == nil && g.e.Err() == nil
}

func (g *Generator) badWidth(w decimal.Width) {
	g.fail(errors.Codegen(errors.KindUnsupported, "unsupported width %s", w))
}

// pool interns the shared constants. Dedup in the emitter makes repeated
// calls free.
func (g *Generator) pool() {
	if g.pooled {
		return
	}
	g.minI64 = g.e.PoolConst(math.MinInt64)
	g.negOneI64 = g.e.PoolConst(-1)
	g.pooled = true
}

// loadMin pushes the 64-bit null sentinel word.
func (g *Generator) loadMin() {
	g.pool()
	g.e.LoadConst(g.minI64)
}

// not64 inverts the i64 on top of the stack.
func (g *Generator) not64() {
	g.pool()
	g.e.LoadConst(g.negOneI64)
	g.e.Binary(emitter.OpI64Xor)
}

// compactType returns the slot type compact values of width w live in.
func compactType(w decimal.Width) emitter.ValType {
	switch w {
	case decimal.Width8, decimal.Width16, decimal.Width32:
		return emitter.ValI32
	default:
		return emitter.ValI64
	}
}

// compactSlots returns how many local slots the compact layout occupies.
func compactSlots(w decimal.Width) int {
	switch w {
	case decimal.Width128:
		return 2
	case decimal.Width256:
		return 4
	default:
		return 1
	}
}
