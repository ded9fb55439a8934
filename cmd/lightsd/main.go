// Command lightsd is the controller process: it loads configuration,
// starts the Pixel Manager and Animator, and serves the RPC surface
// until interrupted. Grounded on the teacher's cmd/*/main.go
// mainImpl()+defer-Close()+os.Exit(1) shape (see
// _examples/google-periph/cmd/lepton/main.go,
// _examples/google-periph/cmd/i2c-io/main.go), adapted to a
// long-running network service with signal-driven shutdown per
// spec.md §6 ("Exit code is zero on clean shutdown (Ctrl+C or SIGTERM),
// non-zero on initialization failure").
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akrantz01/lights/internal/animator"
	"github.com/akrantz01/lights/internal/animator/wasm"
	"github.com/akrantz01/lights/internal/config"
	"github.com/akrantz01/lights/internal/flow"
	"github.com/akrantz01/lights/internal/pixels"
	"github.com/akrantz01/lights/internal/rpc"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "lightsd: %s.\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}

	count := cfg.LEDCount()
	logger.Info().Uint16("count", count).Str("address", cfg.Controller.Address).Msg("starting lightsd")

	manager, err := pixels.NewManager(count, logger.With().Str("component", "pixels").Logger())
	if err != nil {
		return fmt.Errorf("start pixel manager: %w", err)
	}

	ctx := context.Background()
	wasmRuntime, err := wasm.NewRuntime(ctx, "", logger.With().Str("component", "wasm").Logger())
	if err != nil {
		return fmt.Errorf("start wasm runtime: %w", err)
	}
	defer wasmRuntime.Close(ctx)

	build := newBuilder(wasmRuntime, manager)

	anim, err := animator.New(cfg.Controller.Animations, build, logger.With().Str("component", "animator").Logger())
	if err != nil {
		return fmt.Errorf("start animator: %w", err)
	}

	svc := rpc.NewService(manager, anim, logger.With().Str("component", "rpc").Logger())
	server := rpc.NewServer(svc)

	listener, err := net.Listen("tcp", cfg.Controller.Address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Controller.Address, err)
	}

	// errgroup supervises the three long-lived actors - the Pixel
	// Manager's dedicated OS thread, the Animator Executor, and the
	// gRPC server. Only Serve can report an error: Manager.Wait and
	// Animator.Wait always return nil once their actor exits. A Serve
	// error cancels group's context and unwinds the rest, giving
	// mainImpl a non-zero return instead of a half-shut-down process.
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(manager.Wait)
	group.Go(anim.Wait)
	group.Go(func() error {
		logger.Info().Str("address", cfg.Controller.Address).Msg("serving rpc")
		if err := server.Serve(listener); err != nil {
			return fmt.Errorf("serve rpc: %w", err)
		}
		return nil
	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	group.Go(func() error {
		select {
		case s := <-sig:
			logger.Info().Stringer("signal", s).Msg("shutting down")
		case <-groupCtx.Done():
			logger.Error().Msg("an actor exited unexpectedly; shutting down")
		}
		server.GracefulStop()
		anim.Shutdown()
		manager.Shutdown()
		return nil
	})

	return group.Wait()
}

// newBuilder composes an animator.Builder dispatching on Kind: Wasm
// payloads compile through the shared wazero runtime, Flow payloads
// parse and validate through the tree-walking interpreter. Both are
// wired to the same Pixel Manager, matching spec.md §4's requirement
// that only one actor ever mutates strip state.
func newBuilder(wasmRuntime *wasm.Runtime, sink flow.PixelSink) animator.Builder {
	return func(kind animator.Kind, payload []byte) (animator.Animation, error) {
		switch kind {
		case animator.KindWasm:
			return wasmRuntime.Build(payload, sink)
		case animator.KindFlow:
			return animator.BuildFlow(payload, sink)
		default:
			return nil, animator.NewBuildError("unknown kind", fmt.Errorf("kind %d", kind))
		}
	}
}

// newLogger builds a zerolog.Logger at cfg's configured level. In
// development mode it writes human-readable console output; otherwise
// structured JSON to stderr, matching the teacher's "-v enables
// logging, otherwise discard" split in cmd/i2c-io/main.go generalized
// to a persistent service.
func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return zerolog.Logger{}, err
	}

	var writer = os.Stderr
	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	if cfg.Development {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339}).Level(level).With().Timestamp().Logger()
	}
	return logger, nil
}
