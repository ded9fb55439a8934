// Package animator implements the Animator Executor and Animation
// Store: the single-threaded cooperative loop that owns the currently
// running animation, and the on-disk persistence format for both
// animation kinds (spec.md §4.2, §4.5).
package animator

// Kind is the closed enumeration of animation formats, stable-encoded
// as the persistence tag byte (spec.md §3, §6).
type Kind byte

const (
	// KindWasm marks a compiled WebAssembly module exporting animate().
	KindWasm Kind = 1
	// KindFlow marks an interpreted Flow program tree.
	KindFlow Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindWasm:
		return "wasm"
	case KindFlow:
		return "flow"
	default:
		return "unknown"
	}
}

func (k Kind) Valid() bool { return k == KindWasm || k == KindFlow }

// Animation is a single running animation: one call to Animate renders
// exactly one frame. Close releases any engine resources (a WASM
// runtime, an interpreter's pixel references) and must be safe to call
// exactly once when the executor drops or replaces the animation.
type Animation interface {
	Animate() error
	Close() error
}

// Builder compiles or loads an animation from its persisted payload.
// Implementations live in internal/animator/wasm and the Flow wrapper
// in flow_animation.go; the executor is agnostic to the concrete kind.
type Builder func(kind Kind, payload []byte) (Animation, error)
