package wasm

import (
	"context"
	_ "embed"
	"testing"

	"github.com/rs/zerolog"
)

//go:embed testdata_animate_noop.wasm
var noopAnimateModule []byte

//go:embed testdata_no_exports.wasm
var noExportsModule []byte

// fakePixels records the most recent call made through the host ABI;
// the tests below only need a PixelSink and do not inspect its fields.
type fakePixels struct {
	brightness uint8
	filled     [3]uint8
	set        [4]uint16
	shown      int
}

func (p *fakePixels) Brightness(level uint8)             { p.brightness = level }
func (p *fakePixels) Fill(r, g, b uint8)                 { p.filled = [3]uint8{r, g, b} }
func (p *fakePixels) Set(index uint16, r, g, b uint8)    { p.set = [4]uint16{index, uint16(r), uint16(g), uint16(b)} }
func (p *fakePixels) Show()                              { p.shown++ }

func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	rt, err := NewRuntime(context.Background(), "", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close(context.Background()) })
	return rt
}

func TestBuildAndAnimateNoop(t *testing.T) {
	rt := newTestRuntime(t)

	anim, err := rt.Build(noopAnimateModule, &fakePixels{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer anim.Close()

	if err := anim.Animate(); err != nil {
		t.Errorf("Animate: %v", err)
	}
}

func TestBuildRejectsMissingAnimateExport(t *testing.T) {
	rt := newTestRuntime(t)

	_, err := rt.Build(noExportsModule, &fakePixels{})
	if err == nil {
		t.Fatal("expected Build to fail for a module with no animate export")
	}
}

func TestBuildRejectsInvalidBytes(t *testing.T) {
	rt := newTestRuntime(t)

	_, err := rt.Build([]byte("not a wasm module"), &fakePixels{})
	if err == nil {
		t.Fatal("expected Build to fail for invalid wasm bytes")
	}
}

func TestClampHelpers(t *testing.T) {
	cases := []struct {
		in   int32
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{255, 255},
		{1000, 255},
	}
	for _, c := range cases {
		if got := clampU8(c.in); got != c.want {
			t.Errorf("clampU8(%d) = %d, want %d", c.in, got, c.want)
		}
	}

	if got := clampU16(-1); got != 0 {
		t.Errorf("clampU16(-1) = %d, want 0", got)
	}
	if got := clampU16(100000); got != 65535 {
		t.Errorf("clampU16(100000) = %d, want 65535", got)
	}
}
