package routine

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/decimal-jit/decimal"
	"github.com/wippyai/decimal-jit/errors"
)

// Routine is one materialized width-specialized primitive. It is immutable
// and safe for concurrent calls.
type Routine struct {
	fn api.Function
}

// Call runs the routine over the canonical words of d and rebuilds the
// result with d's scale. Generated routines neither read nor adjust scale.
func (r *Routine) Call(ctx context.Context, d decimal.Decimal256) (decimal.Decimal256, error) {
	res, err := r.fn.Call(ctx, d.Hh, d.Hl, d.Lh, d.Ll)
	if err != nil {
		return decimal.Decimal256{}, errors.Materialize(err, "routine trapped")
	}
	if len(res) != 4 {
		return decimal.Decimal256{}, errors.Materialize(nil, "routine returned %d words, want 4", len(res))
	}
	return decimal.Decimal256{
		Hh:    res[0],
		Hl:    res[1],
		Lh:    res[2],
		Ll:    res[3],
		Scale: d.Scale,
	}, nil
}
