// Package wasm runs user-supplied WebAssembly modules as animations.
// The host ABI mirrors original_source/controller/src/animations/instance.rs:
// a module imports brightness/fill/set/show/sleep from "env" and exports a
// zero-argument, zero-result "animate" function called once per frame.
package wasm

import (
	"context"
	"math"
	"time"

	"github.com/akrantz01/lights/internal/animator"
	"github.com/akrantz01/lights/internal/flow"
	"github.com/rs/zerolog"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// Runtime owns the shared wazero engine used to build every Wasm
// animation. When NewRuntime is given a cache directory, the on-disk
// compilation cache is kept across Build calls, so re-loading a
// previously run animation from disk is a cache hit rather than a full
// recompilation, matching the purpose (if not the exact mechanism) of
// Wasmer's module serialization.
type Runtime struct {
	engine wazero.Runtime
	log    zerolog.Logger
}

// NewRuntime constructs a Runtime with its compiled-module cache rooted
// at cacheDir. An empty cacheDir uses an in-memory-only cache.
func NewRuntime(ctx context.Context, cacheDir string, logger zerolog.Logger) (*Runtime, error) {
	cfg := wazero.NewRuntimeConfig()
	if cacheDir != "" {
		cache, err := wazero.NewCompilationCacheWithDir(cacheDir)
		if err != nil {
			return nil, err
		}
		cfg = cfg.WithCompilationCache(cache)
	}

	return &Runtime{engine: wazero.NewRuntimeWithConfig(ctx, cfg), log: logger}, nil
}

// Close releases the underlying wazero runtime and its cache.
func (r *Runtime) Close(ctx context.Context) error {
	return r.engine.Close(ctx)
}

// Build compiles source as a WASM module, wires it to pixels through the
// "env" host module, and verifies it exports a compatible "animate"
// function. It returns an animator.Animation so it can be used directly
// as (part of) an animator.Builder.
func (r *Runtime) Build(source []byte, pixels flow.PixelSink) (animator.Animation, error) {
	ctx := context.Background()

	compiled, err := r.engine.CompileModule(ctx, source)
	if err != nil {
		return nil, animator.NewBuildError("compilation", err)
	}
	r.log.Debug().Msg("compiled wasm module")

	host, err := r.instantiateHost(ctx, pixels)
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, animator.NewBuildError("finalization", err)
	}

	guest, err := r.engine.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		_ = host.Close(ctx)
		_ = compiled.Close(ctx)
		return nil, animator.NewBuildError("finalization", err)
	}
	r.log.Debug().Msg("built instance")

	animate := guest.ExportedFunction("animate")
	if animate == nil {
		_ = guest.Close(ctx)
		_ = host.Close(ctx)
		_ = compiled.Close(ctx)
		return nil, animator.NewBuildError("invalid signature", errMissingAnimate())
	}
	def := animate.Definition()
	if len(def.ParamTypes()) != 0 || len(def.ResultTypes()) != 0 {
		_ = guest.Close(ctx)
		_ = host.Close(ctx)
		_ = compiled.Close(ctx)
		return nil, animator.NewBuildError("invalid signature", errWrongSignature(len(def.ParamTypes()), len(def.ResultTypes())))
	}

	return &wasmAnimation{guest: guest, host: host, compiled: compiled, animate: animate}, nil
}

// instantiateHost builds the "env" module exposing brightness/fill/set/
// show/sleep bound to pixels, one instance per animation since wazero
// does not allow re-registering a module name twice in the same
// Runtime.
func (r *Runtime) instantiateHost(ctx context.Context, pixels flow.PixelSink) (api.Module, error) {
	builder := r.engine.NewHostModuleBuilder("env")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, _ api.Module, value int32) {
			pixels.Brightness(clampU8(value))
		}).
		Export("brightness")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, _ api.Module, r, g, b int32) {
			pixels.Fill(clampU8(r), clampU8(g), clampU8(b))
		}).
		Export("fill")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, _ api.Module, index, r, g, b int32) {
			pixels.Set(clampU16(index), clampU8(r), clampU8(g), clampU8(b))
		}).
		Export("set")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, _ api.Module) {
			pixels.Show()
		}).
		Export("show")

	builder.NewFunctionBuilder().
		WithFunc(func(_ context.Context, _ api.Module, seconds float64) {
			time.Sleep(time.Duration(seconds * float64(time.Second)))
		}).
		Export("sleep")

	return builder.Instantiate(ctx)
}

// clampU8 saturates an i32 argument into u8 range instead of trapping,
// mirroring instance.rs's int_from_value! macro.
func clampU8(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(v)
}

// clampU16 saturates an i32 argument into u16 range instead of trapping.
func clampU16(v int32) uint16 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}

type wasmAnimation struct {
	guest    api.Module
	host     api.Module
	compiled wazero.CompiledModule
	animate  api.Function
}

func (a *wasmAnimation) Animate() error {
	_, err := a.animate.Call(context.Background())
	return err
}

func (a *wasmAnimation) Close() error {
	ctx := context.Background()
	err := a.guest.Close(ctx)
	if hostErr := a.host.Close(ctx); err == nil {
		err = hostErr
	}
	if closeErr := a.compiled.Close(ctx); err == nil {
		err = closeErr
	}
	return err
}
