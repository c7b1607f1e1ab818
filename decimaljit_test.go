package decimaljit_test

import (
	"context"
	"testing"

	decimaljit "github.com/wippyai/decimal-jit"
	"github.com/wippyai/decimal-jit/decimal"
)

func TestEngineAbs(t *testing.T) {
	ctx := context.Background()
	eng := decimaljit.New(ctx)
	t.Cleanup(func() { eng.Close(ctx) })

	got, err := eng.Abs(ctx, decimal.Width64, decimal.FromInt64(-12345, 2))
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}
	if s := got.String(); s != "123.45" {
		t.Errorf("abs(-123.45) = %q, want \"123.45\"", s)
	}
}

func TestEngineIsNull(t *testing.T) {
	eng := decimaljit.New(context.Background())
	t.Cleanup(func() { eng.Close(context.Background()) })

	for _, w := range decimal.Widths {
		if !eng.IsNull(w, decimal.NullCanonical(w)) {
			t.Errorf("%s: sentinel does not read as null", w)
		}
		if eng.IsNull(w, decimal.FromInt64(1, 0)) {
			t.Errorf("%s: one reads as null", w)
		}
	}
}
