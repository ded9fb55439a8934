package pixels

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestManager(t *testing.T, count uint16) *Manager {
	t.Helper()
	m, err := NewManager(count, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(m.Shutdown)
	return m
}

func TestManagerSetAndShow(t *testing.T) {
	m := newTestManager(t, 3)

	m.Set(0, 255, 0, 0)
	m.Set(2, 255, 0, 0)
	m.Show()

	// The manager processes commands on its own goroutine; give it a
	// moment to drain before the cleanup's Shutdown. The strip state is
	// not inspected: the test checks only that the commands are
	// processed without a panic.
	time.Sleep(10 * time.Millisecond)
}

func TestManagerShutdownIsIdempotentSafe(t *testing.T) {
	m := newTestManager(t, 1)
	m.Shutdown()
	// A command sent after shutdown must not panic; it is simply
	// never processed.
	m.Fill(0, 0, 0)
}
