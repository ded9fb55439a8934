package animator

import (
	"github.com/rs/zerolog"
)

// commandCapacity is the Animator's bounded command channel capacity;
// spec.md §3 requires capacity >= 5.
const commandCapacity = 8

// Animator is the public handle to the executor: it owns the
// persistence Store and exposes async Start/Stop/Shutdown plus
// Register/Unregister, matching the shape of
// original_source/controller/src/animations/mod.rs's Animator.
type Animator struct {
	store   *Store
	build   Builder
	actions chan action
	log     zerolog.Logger
	done    chan struct{}
}

// New creates the Store rooted at dir and launches the executor
// goroutine. build compiles or loads an animation for a given Kind and
// payload; it is supplied by the caller so this package stays
// agnostic to WASM/Flow specifics.
func New(dir string, build Builder, logger zerolog.Logger) (*Animator, error) {
	store, err := NewStore(dir)
	if err != nil {
		return nil, err
	}
	actions := make(chan action, commandCapacity)
	done := make(chan struct{})
	go func() {
		defer close(done)
		runExecutor(store, build, actions, logger)
	}()
	return &Animator{store: store, build: build, actions: actions, log: logger, done: done}, nil
}

// Wait blocks until the executor goroutine exits after Shutdown,
// satisfying the func() error shape errgroup.Group.Go expects so
// cmd/lightsd can supervise the Animator alongside the Pixel Manager
// and the gRPC server.
func (a *Animator) Wait() error {
	<-a.done
	return nil
}

func (a *Animator) send(act action) {
	select {
	case a.actions <- act:
	default:
		a.log.Error().Msg("animator command dropped: queue full")
	}
}

// Start asks the executor to load and run the animation named id.
func (a *Animator) Start(id string) { a.send(action{kind: actionStart, id: id}) }

// Stop clears the currently running animation, if any.
func (a *Animator) Stop() { a.send(action{kind: actionStop}) }

// Shutdown terminates the executor after its current frame.
func (a *Animator) Shutdown() { a.send(action{kind: actionShutdown}) }

// Register builds the animation from payload to validate it compiles,
// then persists it under id. It never runs a frame: the returned
// Animation is closed immediately after the build check succeeds
// (spec.md §8 scenario 6: "if the JSON fails validation at Build,
// Register returns success=false and no file is written").
func (a *Animator) Register(id string, kind Kind, payload []byte) bool {
	built, err := a.build(kind, payload)
	if err != nil {
		a.log.Error().Err(err).Str("id", id).Str("kind", kind.String()).Msg("failed to build animation")
		return false
	}
	_ = built.Close()

	if err := a.store.Save(id, kind, payload); err != nil {
		a.log.Error().Err(err).Str("id", id).Msg("failed to save animation")
		return false
	}
	return true
}

// Unregister deletes the persisted animation named id.
func (a *Animator) Unregister(id string) error {
	return a.store.Remove(id)
}
