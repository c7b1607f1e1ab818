package decimaljit

import (
	"context"

	"github.com/wippyai/decimal-jit/decimal"
	"github.com/wippyai/decimal-jit/routine"
)

// Engine is the facade the arithmetic call sites work against: specialized
// routines behind a per-width cache. Construct one at process start and
// share it; Close releases every routine it generated.
type Engine struct {
	cache *routine.Cache
}

// New creates an engine with an empty routine cache.
func New(ctx context.Context) *Engine {
	return &Engine{cache: routine.NewCache(routine.NewMaterializer(ctx))}
}

// Abs computes the absolute value of d at width w through the cached
// specialized routine, generating it on first use. Null passes through as
// the canonical null sentinel.
func (e *Engine) Abs(ctx context.Context, w decimal.Width, d decimal.Decimal256) (decimal.Decimal256, error) {
	r, err := e.cache.Abs(ctx, w)
	if err != nil {
		return decimal.Decimal256{}, err
	}
	return r.Call(ctx, d)
}

// IsNull reports whether d reads as null at width w.
func (e *Engine) IsNull(w decimal.Width, d decimal.Decimal256) bool {
	return decimal.IsNull(w, d)
}

// Close releases the engine's routine cache.
func (e *Engine) Close(ctx context.Context) error {
	return e.cache.Close(ctx)
}
