package routine

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/decimal-jit/errors"
)

// Materializer compiles finished module binaries into callable routines.
// It owns the underlying runtime; Close releases every routine it produced.
type Materializer struct {
	runtime wazero.Runtime
	seq     atomic.Uint64
}

// NewMaterializer creates a materializer backed by a fresh runtime.
func NewMaterializer(ctx context.Context) *Materializer {
	return &Materializer{runtime: wazero.NewRuntime(ctx)}
}

// Materialize compiles bin, instantiates it under a fresh identity and
// binds the named export. The returned routine holds no reference to bin.
// A rejected binary is a generator bug, not malformed input; it is logged
// and surfaces as KindInvalidModule.
func (m *Materializer) Materialize(ctx context.Context, bin []byte, export string) (*Routine, error) {
	compiled, err := m.runtime.CompileModule(ctx, bin)
	if err != nil {
		Logger().Error("generated module rejected by runtime",
			zap.String("export", export),
			zap.Int("size", len(bin)),
			zap.Error(err))
		return nil, errors.Materialize(err, "compile %s", export)
	}

	// Repeated materialization of equivalent modules must not collide.
	name := fmt.Sprintf("%s#%d", export, m.seq.Add(1))
	mod, err := m.runtime.InstantiateModule(ctx, compiled,
		wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return nil, errors.Materialize(err, "instantiate %s", name)
	}

	fn := mod.ExportedFunction(export)
	if fn == nil {
		return nil, errors.Materialize(nil, "module exports no %q", export)
	}
	return &Routine{fn: fn}, nil
}

// Close tears down the runtime and every routine materialized from it.
func (m *Materializer) Close(ctx context.Context) error {
	return m.runtime.Close(ctx)
}
