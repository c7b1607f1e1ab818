package routine

import (
	"context"
	"sync"

	"github.com/wippyai/decimal-jit/codegen"
	"github.com/wippyai/decimal-jit/decimal"
)

// Cache generates and publishes routines, at most one generation per
// (operation, width) pair. Construct one at process start and share it;
// published routines live as long as the cache.
type Cache struct {
	mat *Materializer

	mu  sync.RWMutex
	abs map[decimal.Width]*Routine
}

// NewCache creates a cache that materializes through mat.
func NewCache(mat *Materializer) *Cache {
	return &Cache{
		mat: mat,
		abs: make(map[decimal.Width]*Routine),
	}
}

// Abs returns the absolute value routine specialized for width w,
// generating and materializing it on first request.
func (c *Cache) Abs(ctx context.Context, w decimal.Width) (*Routine, error) {
	c.mu.RLock()
	r, hit := c.abs[w]
	c.mu.RUnlock()
	if hit {
		return r, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if r, hit := c.abs[w]; hit {
		return r, nil
	}

	bin, err := codegen.AbsRoutine(w)
	if err != nil {
		return nil, err
	}
	r, err = c.mat.Materialize(ctx, bin, codegen.AbsExportName(w))
	if err != nil {
		return nil, err
	}
	c.abs[w] = r
	return r, nil
}

// Close releases the cache's materializer and every published routine.
func (c *Cache) Close(ctx context.Context) error {
	return c.mat.Close(ctx)
}
