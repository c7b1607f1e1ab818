package codegen

import (
	"fmt"

	"github.com/wippyai/decimal-jit/decimal"
	"github.com/wippyai/decimal-jit/emitter"
)

// AbsExportName returns the export name of the absolute value routine
// generated for width w.
func AbsExportName(w decimal.Width) string {
	return fmt.Sprintf("decimal_abs_%d", w.Bits())
}

// canonicalSig is the signature shared by every generated routine: the four
// canonical words in, the four canonical words out, most significant first.
// Scale rides along outside the module and is untouched by generation.
var canonicalSig = []emitter.ValType{
	emitter.ValI64, emitter.ValI64, emitter.ValI64, emitter.ValI64,
}

// EmitAbs drives e through the complete absolute value routine for width
// w: begin, compact load, null check, sign-tested negation, zero-filled
// store back. Null inputs pass through as the canonical null sentinel.
func EmitAbs(e *emitter.Emitter, w decimal.Width) error {
	e.Begin(AbsExportName(w), canonicalSig, canonicalSig)
	g := New(e)

	compact := g.LoadCompact(w, 0)
	resume := g.NullCheck(w, compact)

	// Null path: overwrite the parameter slots with the canonical sentinel
	// and return it.
	g.StoreCanonicalNull(0)
	g.returnCanonical(0)

	e.Patch(resume)
	g.Abs(w, compact)
	g.StoreCanonical(w, compact, 0, false)
	g.returnCanonical(0)

	return g.Err()
}

// AbsRoutine emits and encodes the absolute value module for width w.
func AbsRoutine(w decimal.Width) ([]byte, error) {
	e := emitter.New()
	if err := EmitAbs(e, w); err != nil {
		return nil, err
	}
	return e.Finish()
}

func (g *Generator) returnCanonical(slot uint32) {
	for i := uint32(0); i < 4; i++ {
		g.e.LoadLocal(slot + i)
	}
	g.e.Return()
}
