package animator

import (
	"github.com/rs/zerolog"
)

// action is sent to the executor's control channel.
type action struct {
	kind actionKind
	id   string
}

type actionKind int

const (
	actionStart actionKind = iota
	actionStop
	actionShutdown
)

// executor is the cooperative, single-task loop described in spec.md
// §4.2: Idle blocks awaiting a command; Running calls Animate once per
// iteration and non-blockingly polls for a new command between frames.
// Grounded on original_source/controller/src/animations/mod.rs's
// `executor` function.
type executor struct {
	store   *Store
	build   Builder
	actions <-chan action
	log     zerolog.Logger
}

func runExecutor(store *Store, build Builder, actions <-chan action, logger zerolog.Logger) {
	logger.Info().Msg("animator started")
	e := &executor{store: store, build: build, actions: actions, log: logger}
	e.loop()
	logger.Info().Msg("animator shut down")
}

func (e *executor) loop() {
	var current Animation
	defer func() {
		if current != nil {
			_ = current.Close()
		}
	}()

	for {
		if current == nil {
			act, ok := <-e.actions
			if !ok {
				return
			}
			switch act.kind {
			case actionStart:
				current = e.load(act.id)
			case actionStop:
				// Already stopped, nothing to do.
			case actionShutdown:
				return
			}
			continue
		}

		if err := current.Animate(); err != nil {
			e.log.Error().Err(err).Msg("an error occurred while executing the animation")
			_ = current.Close()
			current = nil
			continue
		}

		select {
		case act, ok := <-e.actions:
			if !ok {
				return
			}
			switch act.kind {
			case actionStart:
				next := e.load(act.id)
				if next != nil {
					_ = current.Close()
					current = next
				}
			case actionStop:
				_ = current.Close()
				current = nil
			case actionShutdown:
				return
			}
		default:
			// No action pending; render the next frame.
		}
	}
}

// load fetches and builds the animation named id, logging and
// returning nil on any failure so the caller stays on the current
// animation (or Idle, if there wasn't one).
func (e *executor) load(id string) Animation {
	kind, payload, err := e.store.Load(id)
	if err != nil {
		e.log.Error().Err(err).Str("id", id).Msg("failed to load animation")
		return nil
	}
	a, err := e.build(kind, payload)
	if err != nil {
		e.log.Error().Err(err).Str("id", id).Str("kind", kind.String()).Msg("failed to build animation")
		return nil
	}
	return a
}
