package pixels

import (
	"runtime"
	"sync"

	"github.com/rs/zerolog"
)

// command is one action recognized by the Manager actor (spec.md §4.1).
type command struct {
	kind       commandKind
	index      uint16
	r, g, b    uint8
	brightness uint8
}

type commandKind int

const (
	cmdSet commandKind = iota
	cmdFill
	cmdBrightness
	cmdShow
	cmdShutdown
)

// Manager is a process-wide actor with exclusive ownership of the
// hardware controller. It is pinned to a dedicated OS thread so a
// blocking hardware driver never stalls the network runtime (spec.md
// §5). Construction is fallible: the actor attempts to build the
// strip controller and reports success or failure back through a
// one-shot channel before NewManager returns.
//
// Grounded on original_source/controller/src/pixels.rs's pixel_manager
// actor and teacher cmd/*/main.go's Open/defer-Close device lifecycle.
type Manager struct {
	queue *commandQueue
	log   zerolog.Logger
	count uint16
	done  chan struct{}
}

// NewManager spawns the actor and blocks until the strip controller
// has either been built or failed to build.
func NewManager(count uint16, logger zerolog.Logger) (*Manager, error) {
	queue := newCommandQueue()
	ready := make(chan error, 1)
	done := make(chan struct{})

	go func() {
		defer close(done)
		runActor(count, queue, ready, logger)
	}()

	if err := <-ready; err != nil {
		return nil, err
	}
	return &Manager{queue: queue, log: logger, count: count, done: done}, nil
}

// Count reports the fixed number of addressable pixels on the strip.
func (m *Manager) Count() uint16 { return m.count }

// Wait blocks until the actor has processed Shutdown and released the
// controller. It satisfies the func() error shape errgroup.Group.Go
// expects, letting cmd/lightsd supervise the actor's lifetime alongside
// the Animator and the gRPC server.
func (m *Manager) Wait() error {
	<-m.done
	return nil
}

func runActor(count uint16, queue *commandQueue, ready chan<- error, logger zerolog.Logger) {
	// The hardware driver may block on DMA/PWM setup; pin this
	// goroutine to its own OS thread for the actor's entire lifetime.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ctrl, err := newStrip(count, logger)
	if err != nil {
		ready <- err
		return
	}
	ready <- nil

	logger.Info().Int("count", int(count)).Msg("pixel manager started")

	for {
		cmd, ok := queue.pop()
		if !ok {
			return
		}
		switch cmd.kind {
		case cmdSet:
			ctrl.setPixel(cmd.index, cmd.r, cmd.g, cmd.b)
		case cmdFill:
			ctrl.fill(cmd.r, cmd.g, cmd.b)
		case cmdBrightness:
			ctrl.setBrightness(cmd.brightness)
		case cmdShow:
			if err := ctrl.render(); err != nil {
				logger.Error().Err(err).Msg("failed to commit changes")
			}
		case cmdShutdown:
			if err := ctrl.close(); err != nil {
				logger.Error().Err(err).Msg("failed to release strip")
			}
			logger.Info().Msg("pixel manager shut down")
			return
		}
	}
}

// send enqueues a command on the unbounded queue. Delivery never blocks
// and never drops a command for backpressure: render() may block on
// DMA for an entire frame's worth of queued Set/Fill writes, and the
// source's mpsc::unbounded_channel() (original_source/controller/src/pixels.rs)
// only ever fails when the actor itself is gone, which closing the
// queue at Shutdown models here.
func (m *Manager) send(cmd command) {
	m.queue.push(cmd)
}

// Set overwrites pixel index in the internal GRB-ordered buffer.
func (m *Manager) Set(index uint16, r, g, b uint8) {
	m.send(command{kind: cmdSet, index: index, r: r, g: g, b: b})
}

// Fill overwrites every pixel with the same color.
func (m *Manager) Fill(r, g, b uint8) {
	m.send(command{kind: cmdFill, r: r, g: g, b: b})
}

// Brightness updates the channel brightness scalar.
func (m *Manager) Brightness(level uint8) {
	m.send(command{kind: cmdBrightness, brightness: level})
}

// Show commits the buffered frame to hardware; it is the sole commit
// point, matching the ordering guarantee in spec.md §4.1.
func (m *Manager) Show() {
	m.send(command{kind: cmdShow})
}

// Shutdown enqueues a terminal command; the actor drains everything
// queued ahead of it, releases the controller, then exits.
func (m *Manager) Shutdown() {
	m.send(command{kind: cmdShutdown})
}

// commandQueue is an unbounded FIFO of commands shared between
// producers (RPC handlers, the animator's frame thread) and the single
// actor consumer. Push never blocks and never drops; pop blocks until
// an item is available or the queue is closed after Shutdown drains.
type commandQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []command
	closed bool
}

func newCommandQueue() *commandQueue {
	q := &commandQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *commandQueue) push(cmd command) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, cmd)
	if cmd.kind == cmdShutdown {
		q.closed = true
	}
	q.cond.Signal()
}

// pop blocks until a command is queued. It returns ok=false once the
// actor has consumed every command pushed before a Shutdown and the
// queue has nothing left to drain.
func (q *commandQueue) pop() (command, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		if q.closed {
			return command{}, false
		}
		q.cond.Wait()
	}
	cmd := q.items[0]
	q.items = q.items[1:]
	return cmd, true
}
