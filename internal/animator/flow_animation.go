package animator

import (
	"github.com/akrantz01/lights/internal/flow"
)

// flowAnimation adapts a validated Flow program to the Animation
// interface: each Animate call walks the entrypoint once more,
// mutating the program's globals in place across frames (spec.md
// §4.4.2, §8 scenario 2).
type flowAnimation struct {
	interp *flow.Interpreter
}

// BuildFlow parses and validates a Flow JSON payload, failing with a
// BuildError wrapping the underlying SyntaxError on any static check
// failure (spec.md §7: "syntax errors abort Build"). Exported so the
// process entrypoint can compose it with wasm.Runtime.Build into a
// single Builder dispatching on Kind.
func BuildFlow(payload []byte, pixels flow.PixelSink) (Animation, error) {
	program, err := flow.Parse(payload)
	if err != nil {
		return nil, NewBuildError("unable to load from bytes", err)
	}
	if err := program.Validate(); err != nil {
		return nil, NewBuildError("failed to validate program", err)
	}
	return &flowAnimation{interp: flow.NewInterpreter(program, pixels)}, nil
}

func (a *flowAnimation) Animate() error { return a.interp.Run() }

func (a *flowAnimation) Close() error { return nil }
