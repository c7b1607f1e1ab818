package emitter_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/wippyai/decimal-jit/emitter"
	jiterrors "github.com/wippyai/decimal-jit/errors"
)

func begin(e *emitter.Emitter) {
	e.Begin("test", []emitter.ValType{emitter.ValI64}, nil)
}

func TestPoolConstDeduplicates(t *testing.T) {
	e := emitter.New()
	begin(e)

	a := e.PoolConst(-1)
	b := e.PoolConst(42)
	c := e.PoolConst(-1)

	if a != c {
		t.Errorf("equal constants interned at %d and %d", a, c)
	}
	if a == b {
		t.Errorf("distinct constants share index %d", a)
	}
}

func TestPoolRefDeduplicates(t *testing.T) {
	e := emitter.New()
	begin(e)

	// Begin interned the export name first.
	a := e.PoolRef("test")
	if a != 0 {
		t.Errorf("export name interned at %d, want 0", a)
	}
	b := e.PoolRef("aux")
	if b == a {
		t.Error("distinct names share an index")
	}
	if e.PoolRef("aux") != b {
		t.Error("equal names interned twice")
	}
}

func TestBranchUnderflow(t *testing.T) {
	e := emitter.New()
	begin(e)

	e.Branch(emitter.BrNonZero) // nothing pushed

	if !errors.Is(e.Err(), jiterrors.ErrStackUnderflow) {
		t.Errorf("err = %v, want stack underflow", e.Err())
	}
	if _, err := e.Finish(); !errors.Is(err, jiterrors.ErrStackUnderflow) {
		t.Errorf("Finish must surface the sticky error, got %v", err)
	}
}

func TestBinaryUnderflow(t *testing.T) {
	e := emitter.New()
	begin(e)

	e.ConstI64(1)
	e.Binary(emitter.OpI64Add) // needs two operands

	if !errors.Is(e.Err(), jiterrors.ErrStackUnderflow) {
		t.Errorf("err = %v, want stack underflow", e.Err())
	}
}

func TestStickyErrorMakesEmitsNoOps(t *testing.T) {
	e := emitter.New()
	begin(e)

	e.Binary(emitter.OpI64Add)
	first := e.Err()
	pos := e.Position()

	e.ConstI64(7)
	e.ConstI64(8)
	e.Binary(emitter.OpI64Add)

	if e.Position() != pos {
		t.Error("emits after an error must not append code")
	}
	if e.Err() != first {
		t.Errorf("sticky error replaced: %v -> %v", first, e.Err())
	}
}

func TestPatchEnforcesNesting(t *testing.T) {
	e := emitter.New()
	begin(e)

	e.ConstI32(1)
	outer := e.Branch(emitter.BrNonZero)
	e.ConstI32(1)
	inner := e.Branch(emitter.BrNonZero)

	e.Patch(outer) // inner still open

	if !errors.Is(e.Err(), jiterrors.ErrBadBranch) {
		t.Errorf("err = %v, want bad branch", e.Err())
	}
	_ = inner
}

func TestFinishRejectsUnpatchedBranch(t *testing.T) {
	e := emitter.New()
	begin(e)

	e.ConstI32(1)
	e.Branch(emitter.BrNonZero)

	if _, err := e.Finish(); !errors.Is(err, jiterrors.ErrBadBranch) {
		t.Errorf("Finish = %v, want bad branch", err)
	}
}

func TestReserveReusesReleasedSlot(t *testing.T) {
	e := emitter.New()
	begin(e)

	a := e.ReserveLocal(emitter.ValI64)
	b := e.ReserveLocal(emitter.ValI64)
	if b != a+1 {
		t.Fatalf("allocation not monotonic: %d then %d", a, b)
	}

	e.ReleaseLocal(a)
	if got := e.ReserveLocal(emitter.ValI64); got != a {
		t.Errorf("released slot %d not reused, got %d", a, got)
	}

	// A released i64 slot must not satisfy an i32 reservation.
	e.ReleaseLocal(b)
	if got := e.ReserveLocal(emitter.ValI32); got == b {
		t.Error("type-mismatched slot reused")
	}
}

func TestReserveRunIsContiguous(t *testing.T) {
	e := emitter.New()
	begin(e)

	a := e.ReserveLocal(emitter.ValI64)
	e.ReleaseLocal(a)

	// Runs must not straddle the released hole.
	base := e.ReserveRun(emitter.ValI64, 4)
	if base == a {
		t.Error("run reused a released slot")
	}
	next := e.ReserveRun(emitter.ValI64, 2)
	if next != base+4 {
		t.Errorf("second run at %d, want %d", next, base+4)
	}
}

func TestReleaseParameterFails(t *testing.T) {
	e := emitter.New()
	begin(e)

	e.ReleaseLocal(0)

	if !errors.Is(e.Err(), jiterrors.ErrBadSlot) {
		t.Errorf("err = %v, want bad slot", e.Err())
	}
}

func TestModuleTooLarge(t *testing.T) {
	e := emitter.New()
	begin(e)
	slot := e.ReserveLocal(emitter.ValI64)

	for i := 0; i < 6000; i++ {
		e.ConstI64(0x7fffffffffffffff)
		e.StoreLocal(slot)
		if e.Err() != nil {
			break
		}
	}

	if !errors.Is(e.Err(), jiterrors.ErrModuleTooLarge) {
		t.Fatalf("err = %v, want module too large", e.Err())
	}
}

func TestFinishEncodesModuleHeader(t *testing.T) {
	e := emitter.New()
	e.Begin("noop", nil, nil)
	e.Return()

	bin, err := e.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if !bytes.Equal(bin[:4], []byte{0x00, 0x61, 0x73, 0x6D}) {
		t.Error("invalid magic number")
	}
	if !bytes.Equal(bin[4:8], []byte{0x01, 0x00, 0x00, 0x00}) {
		t.Error("invalid version")
	}
	if !bytes.Contains(bin, []byte("noop")) {
		t.Error("export name missing from binary")
	}
	if !bytes.Contains(bin, []byte(emitter.FramesSectionName)) {
		t.Error("frames section missing from binary")
	}
}

func TestFinishTwiceFails(t *testing.T) {
	e := emitter.New()
	e.Begin("noop", nil, nil)
	e.Return()

	if _, err := e.Finish(); err != nil {
		t.Fatalf("first Finish: %v", err)
	}
	if _, err := e.Finish(); err == nil {
		t.Error("second Finish must fail")
	}
}

func TestBeginResetsState(t *testing.T) {
	e := emitter.New()
	begin(e)
	e.PoolConst(99)
	e.ConstI32(1)
	e.Branch(emitter.BrNonZero)

	e.Begin("fresh", nil, nil)

	if e.Err() != nil {
		t.Errorf("err survived Begin: %v", e.Err())
	}
	if e.Position() != 0 {
		t.Errorf("code survived Begin: %d bytes", e.Position())
	}
	if idx := e.PoolConst(7); idx != 0 {
		t.Errorf("pool survived Begin: index %d", idx)
	}
	if len(e.Frames()) != 0 {
		t.Error("frames survived Begin")
	}
}
