package animator

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// countingAnimation increments a shared counter once per Animate call
// and sleeps for delay before returning, to simulate a long-running
// frame for preemption tests.
type countingAnimation struct {
	frames *int32
	delay  time.Duration
	closed *int32
}

func (a *countingAnimation) Animate() error {
	atomic.AddInt32(a.frames, 1)
	if a.delay > 0 {
		time.Sleep(a.delay)
	}
	return nil
}

func (a *countingAnimation) Close() error {
	if a.closed != nil {
		atomic.AddInt32(a.closed, 1)
	}
	return nil
}

func testBuilder(frames, closed *int32, delay time.Duration, failBuild bool) Builder {
	return func(kind Kind, payload []byte) (Animation, error) {
		if failBuild {
			return nil, errors.New("build failed")
		}
		return &countingAnimation{frames: frames, delay: delay, closed: closed}, nil
	}
}

func TestAnimatorStartRunsFrames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Save("spin", KindFlow, []byte("payload")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var frames, closed int32
	a, err := New(store.dir, testBuilder(&frames, &closed, time.Millisecond, false), zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Shutdown()

	a.Start("spin")
	time.Sleep(50 * time.Millisecond)

	if atomic.LoadInt32(&frames) == 0 {
		t.Error("expected at least one frame to run")
	}
}

func TestAnimatorStopPreemptsWithinOneFrame(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Save("slow", KindFlow, []byte("payload")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var frames, closed int32
	a, err := New(store.dir, testBuilder(&frames, &closed, 20*time.Millisecond, false), zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Shutdown()

	a.Start("slow")
	time.Sleep(5 * time.Millisecond)
	a.Stop()

	time.Sleep(100 * time.Millisecond)
	if atomic.LoadInt32(&closed) == 0 {
		t.Error("expected the animation to be closed after Stop")
	}
}

func TestAnimatorRegisterFailsBuildWritesNoFile(t *testing.T) {
	dir := t.TempDir()
	var frames, closed int32
	a, err := New(dir, testBuilder(&frames, &closed, 0, true), zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Shutdown()

	if ok := a.Register("bad", KindFlow, []byte("payload")); ok {
		t.Error("Register should fail when build fails")
	}

	if _, _, err := a.store.Load("bad"); err == nil {
		t.Error("expected no file to be written on a failed build")
	}
}

func TestAnimatorRegisterThenStart(t *testing.T) {
	dir := t.TempDir()
	var frames, closed int32
	a, err := New(dir, testBuilder(&frames, &closed, time.Millisecond, false), zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Shutdown()

	if ok := a.Register("good", KindFlow, []byte("payload")); !ok {
		t.Fatal("Register should succeed")
	}
	a.Start("good")
	time.Sleep(50 * time.Millisecond)

	if atomic.LoadInt32(&frames) == 0 {
		t.Error("expected frames to run after registration and start")
	}
}
