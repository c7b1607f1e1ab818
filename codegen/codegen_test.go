package codegen

import (
	"bytes"
	"testing"

	"github.com/wippyai/decimal-jit/decimal"
	"github.com/wippyai/decimal-jit/emitter"
)

func beginAbs(t *testing.T, w decimal.Width) (*emitter.Emitter, *Generator) {
	t.Helper()
	e := emitter.New()
	e.Begin(AbsExportName(w), canonicalSig, canonicalSig)
	return e, New(e)
}

func TestAbsRoutineEveryWidth(t *testing.T) {
	for _, w := range decimal.Widths {
		t.Run(w.String(), func(t *testing.T) {
			bin, err := AbsRoutine(w)
			if err != nil {
				t.Fatalf("AbsRoutine: %v", err)
			}
			if !bytes.HasPrefix(bin, []byte{0x00, 0x61, 0x73, 0x6D}) {
				t.Error("missing module magic")
			}
			if !bytes.Contains(bin, []byte(AbsExportName(w))) {
				t.Errorf("export %q missing from binary", AbsExportName(w))
			}
		})
	}
}

func TestAbsExportName(t *testing.T) {
	if got := AbsExportName(decimal.Width128); got != "decimal_abs_128" {
		t.Errorf("AbsExportName = %q", got)
	}
}

func TestLoadCompactReservesWidthSlots(t *testing.T) {
	slots := map[decimal.Width]int{
		decimal.Width8:   1,
		decimal.Width16:  1,
		decimal.Width32:  1,
		decimal.Width64:  1,
		decimal.Width128: 2,
		decimal.Width256: 4,
	}
	for _, w := range decimal.Widths {
		e, g := beginAbs(t, w)

		base := g.LoadCompact(w, 0)
		if err := g.Err(); err != nil {
			t.Fatalf("%s: LoadCompact: %v", w, err)
		}
		if base != 4 {
			t.Errorf("%s: compact base %d, want first slot past the parameters", w, base)
		}

		// The next reservation of the same type lands right past the
		// compact run.
		next := e.ReserveLocal(emitter.ValI64)
		wantNext := base + uint32(slots[w])
		if compactType(w) == emitter.ValI32 {
			wantNext = base + 1
		}
		if next != wantNext {
			t.Errorf("%s: next slot %d, want %d", w, next, wantNext)
		}
	}
}

func TestNullCheckBalancesStack(t *testing.T) {
	for _, w := range decimal.Widths {
		e, g := beginAbs(t, w)

		compact := g.LoadCompact(w, 0)
		h := g.NullCheck(w, compact)
		if err := g.Err(); err != nil {
			t.Fatalf("%s: NullCheck: %v", w, err)
		}

		// Patching immediately must succeed: the condition was fully
		// consumed and nothing was left behind.
		e.Patch(h)
		if err := e.Err(); err != nil {
			t.Errorf("%s: patch after null check: %v", w, err)
		}
	}
}

func TestAbsRecordsOneJoin(t *testing.T) {
	for _, w := range decimal.Widths {
		e, g := beginAbs(t, w)

		compact := g.LoadCompact(w, 0)
		g.Abs(w, compact)
		if err := g.Err(); err != nil {
			t.Fatalf("%s: Abs: %v", w, err)
		}
		if n := len(e.Frames()); n != 1 {
			t.Errorf("%s: %d frames, want 1 for the sign-skip join", w, n)
		}
	}
}

func TestAbsReleasesCarrySlot(t *testing.T) {
	e, g := beginAbs(t, decimal.Width256)

	compact := g.LoadCompact(decimal.Width256, 0)
	g.Abs(decimal.Width256, compact)
	if err := g.Err(); err != nil {
		t.Fatalf("Abs: %v", err)
	}

	// The ripple-carry scratch slot sits right past the compact run and
	// must be free again after Abs.
	if got := e.ReserveLocal(emitter.ValI64); got != compact+4 {
		t.Errorf("carry slot not released: reserve returned %d, want %d", got, compact+4)
	}

	// The recorded join frame must stop before the released slot.
	frames := e.Frames()
	if len(frames) != 1 {
		t.Fatalf("%d frames, want 1", len(frames))
	}
	if n := len(frames[0].Locals); n != int(compact)+4 {
		t.Errorf("join frame carries %d locals, want %d", n, compact+4)
	}
}

func TestStoreCanonicalReleasesFillSlot(t *testing.T) {
	e, g := beginAbs(t, decimal.Width64)

	compact := g.LoadCompact(decimal.Width64, 0)
	g.StoreCanonical(decimal.Width64, compact, 0, true)
	if err := g.Err(); err != nil {
		t.Fatalf("StoreCanonical: %v", err)
	}

	if got := e.ReserveLocal(emitter.ValI64); got != compact+1 {
		t.Errorf("fill slot not released: reserve returned %d, want %d", got, compact+1)
	}
}

func TestAbsRoutineDeduplicatesPool(t *testing.T) {
	// The 256-bit routine needs the sentinel and all-ones words many
	// times over; the pool must intern each exactly once. Two globals
	// encode as two entries in the global section.
	e := emitter.New()
	e.Begin(AbsExportName(decimal.Width256), canonicalSig, canonicalSig)
	g := New(e)

	compact := g.LoadCompact(decimal.Width256, 0)
	resume := g.NullCheck(decimal.Width256, compact)
	g.StoreCanonicalNull(0)
	g.returnCanonical(0)
	e.Patch(resume)
	g.Abs(decimal.Width256, compact)
	g.StoreCanonical(decimal.Width256, compact, 0, false)
	g.returnCanonical(0)

	if err := g.Err(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if idx := e.PoolConst(-1); idx > 1 {
		t.Errorf("all-ones word interned at %d, want 0 or 1", idx)
	}
}
