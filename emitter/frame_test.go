package emitter_test

import (
	"testing"

	"github.com/wippyai/decimal-jit/emitter"
)

func TestPatchRecordsFrame(t *testing.T) {
	e := emitter.New()
	e.Begin("f", []emitter.ValType{emitter.ValI64}, nil)

	e.ConstI64(5)
	e.ConstI32(1)
	h := e.Branch(emitter.BrNonZero)
	e.Patch(h)

	frames := e.Frames()
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	f := frames[0]
	if f.Offset != e.Position() {
		t.Errorf("frame offset %d, position %d", f.Offset, e.Position())
	}
	if len(f.Locals) != 1 || f.Locals[0].Tag != emitter.TagI64 {
		t.Errorf("frame locals = %v, want one i64", f.Locals)
	}
	if len(f.Stack) != 1 || f.Stack[0].Tag != emitter.TagI64 {
		t.Errorf("frame stack = %v, want one i64", f.Stack)
	}
}

func TestFrameTruncatesAtReleasedSlot(t *testing.T) {
	e := emitter.New()
	e.Begin("f", []emitter.ValType{emitter.ValI64}, nil)

	a := e.ReserveLocal(emitter.ValI64)
	b := e.ReserveLocal(emitter.ValI32)

	// Releasing the middle slot cuts the frame off before it, even though a
	// live slot follows.
	e.ReleaseLocal(a)

	e.ConstI32(1)
	e.Patch(e.Branch(emitter.BrNonZero))

	frames := e.Frames()
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if n := len(frames[0].Locals); n != 1 {
		t.Errorf("frame carries %d locals, want 1", n)
	}
	_ = b
}

func TestFrameOmitsTrailingReleasedSlots(t *testing.T) {
	e := emitter.New()
	e.Begin("f", []emitter.ValType{emitter.ValI64}, nil)

	a := e.ReserveLocal(emitter.ValI64)
	scratch := e.ReserveLocal(emitter.ValI64)
	e.ReleaseLocal(scratch)

	e.ConstI32(1)
	e.Patch(e.Branch(emitter.BrNonZero))

	frames := e.Frames()
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	f := frames[0]
	if len(f.Locals) != 2 {
		t.Fatalf("frame carries %d locals, want 2", len(f.Locals))
	}
	if f.Locals[1].Tag != emitter.TagI64 {
		t.Errorf("slot %d tag = %v, want i64", a, f.Locals[1].Tag)
	}
}

func TestNestedPatchesRecordInOrder(t *testing.T) {
	e := emitter.New()
	e.Begin("f", nil, nil)

	e.ConstI32(1)
	outer := e.Branch(emitter.BrZero)
	inner := e.Branch(emitter.BrAlways)
	e.Patch(inner)
	mid := e.Position()
	e.Patch(outer)

	if err := e.Err(); err != nil {
		t.Fatalf("emit: %v", err)
	}
	frames := e.Frames()
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[0].Offset != mid {
		t.Errorf("inner frame at %d, want %d", frames[0].Offset, mid)
	}
	if frames[1].Offset <= frames[0].Offset {
		t.Error("frames out of code order")
	}
}

func TestPatchRejectsStackImbalance(t *testing.T) {
	e := emitter.New()
	e.Begin("f", nil, nil)

	e.ConstI32(1)
	h := e.Branch(emitter.BrZero)
	e.ConstI64(9) // left on the stack across the join
	e.Patch(h)

	if e.Err() == nil {
		t.Fatal("patch with a deeper stack must fail")
	}
}
