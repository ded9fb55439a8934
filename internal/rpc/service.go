// Package rpc exposes the Animator and Pixel Manager over a gRPC
// service, translating malformed requests into status codes before any
// state is touched and otherwise forwarding fire-and-forget commands
// (spec.md §7's propagation policy: the animator never reports
// mid-run failures back to a caller).
package rpc

import (
	"context"

	"github.com/akrantz01/lights/internal/animator"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Pixels is the subset of the Pixel Manager's surface the RPC layer
// drives directly, outside of any running animation.
type Pixels interface {
	Set(index uint16, r, g, b uint8)
	Fill(r, g, b uint8)
	Brightness(level uint8)
	Show()
	Count() uint16
}

// Animator is the subset of the Animator facade the RPC layer drives.
type Animator interface {
	Start(id string)
	Stop()
	Register(id string, kind animator.Kind, payload []byte) bool
	Unregister(id string) error
}

// Service implements the controller's RPC methods. It holds no state
// of its own: every mutation is forwarded to Pixels or Animator, both
// of which apply it asynchronously.
type Service struct {
	pixels   Pixels
	animator Animator
	log      zerolog.Logger
}

// NewService builds a Service bound to the given Pixel Manager and
// Animator.
func NewService(pixels Pixels, anim Animator, logger zerolog.Logger) *Service {
	return &Service{pixels: pixels, animator: anim, log: logger}
}

func channelInRange(v uint32) bool { return v <= 255 }

// Set applies color to every listed index, committing with a single
// Show once all writes are queued (spec.md §8 scenario 1).
func (s *Service) Set(_ context.Context, req *SetArgs) (*Empty, error) {
	if req.Color == nil {
		return nil, status.Error(codes.InvalidArgument, "color is required")
	}
	if !channelInRange(req.Color.R) || !channelInRange(req.Color.G) || !channelInRange(req.Color.B) {
		return nil, status.Error(codes.OutOfRange, "color channel must be in [0, 255]")
	}

	count := s.pixels.Count()
	for _, idx := range req.Indexes {
		if idx >= uint32(count) {
			return nil, status.Errorf(codes.OutOfRange, "index %d is out of range for a %d-pixel strip", idx, count)
		}
	}

	for _, idx := range req.Indexes {
		s.pixels.Set(uint16(idx), uint8(req.Color.R), uint8(req.Color.G), uint8(req.Color.B))
	}
	s.pixels.Show()
	return &Empty{}, nil
}

// SetAll replaces every pixel on the strip; colors must have exactly
// one entry per pixel.
func (s *Service) SetAll(_ context.Context, req *SetAllArgs) (*Empty, error) {
	count := s.pixels.Count()
	if len(req.Colors) != int(count) {
		return nil, status.Errorf(codes.InvalidArgument, "expected %d colors, got %d", count, len(req.Colors))
	}
	for i, c := range req.Colors {
		if !channelInRange(c.R) || !channelInRange(c.G) || !channelInRange(c.B) {
			return nil, status.Errorf(codes.OutOfRange, "color channel at index %d must be in [0, 255]", i)
		}
	}

	for i, c := range req.Colors {
		s.pixels.Set(uint16(i), uint8(c.R), uint8(c.G), uint8(c.B))
	}
	s.pixels.Show()
	return &Empty{}, nil
}

// Fill sets every pixel to the same color.
func (s *Service) Fill(_ context.Context, req *Color) (*Empty, error) {
	if !channelInRange(req.R) || !channelInRange(req.G) || !channelInRange(req.B) {
		return nil, status.Error(codes.OutOfRange, "color channel must be in [0, 255]")
	}

	s.pixels.Fill(uint8(req.R), uint8(req.G), uint8(req.B))
	s.pixels.Show()
	return &Empty{}, nil
}

// Brightness sets the strip-wide brightness scalar.
func (s *Service) Brightness(_ context.Context, req *BrightnessArgs) (*Empty, error) {
	if !channelInRange(req.Brightness) {
		return nil, status.Error(codes.OutOfRange, "brightness must be in [0, 255]")
	}

	s.pixels.Brightness(uint8(req.Brightness))
	s.pixels.Show()
	return &Empty{}, nil
}

// StartAnimation asks the executor to load and run id. Any load or
// build failure is logged inside the executor and never surfaced here
// (spec.md §7's fire-and-forget propagation policy).
func (s *Service) StartAnimation(_ context.Context, req *StartAnimationArgs) (*Empty, error) {
	s.animator.Start(req.ID)
	return &Empty{}, nil
}

// StopAnimation clears the currently running animation, if any.
func (s *Service) StopAnimation(_ context.Context, _ *Empty) (*Empty, error) {
	s.animator.Stop()
	return &Empty{}, nil
}

// RegisterAnimation validates kind, builds the payload to confirm it
// compiles/parses, and persists it. A build failure is reported as
// success=false, not an RPC error (spec.md §7: BuildError is
// "server-internal detail").
func (s *Service) RegisterAnimation(_ context.Context, req *RegisterAnimationArgs) (*AnimationStatus, error) {
	kind, err := parseKind(req.Kind)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	ok := s.animator.Register(req.ID, kind, req.Payload)
	return &AnimationStatus{Success: ok}, nil
}

// UnregisterAnimation deletes the persisted animation named id.
func (s *Service) UnregisterAnimation(_ context.Context, req *UnregisterAnimationArgs) (*Empty, error) {
	if err := s.animator.Unregister(req.ID); err != nil {
		return nil, status.Errorf(codes.Aborted, "unregister %q: %v", req.ID, err)
	}
	return &Empty{}, nil
}

func parseKind(s string) (animator.Kind, error) {
	switch s {
	case "wasm":
		return animator.KindWasm, nil
	case "flow":
		return animator.KindFlow, nil
	default:
		return 0, &unknownKindError{kind: s}
	}
}

type unknownKindError struct{ kind string }

func (e *unknownKindError) Error() string {
	return "unrecognized animation kind " + e.kind + " (expected \"wasm\" or \"flow\")"
}
