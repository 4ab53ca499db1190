/*
Package frame drives the per-frame synchronization protocol of a swapchain
renderer:

	1. acquire the next image index, signaling the image-available semaphore
	2. wait on the fence of that index, then reset it
	3. submit the pre-recorded command buffer of that index, waiting on
	   image-available and signaling render-finished and the fence
	4. present the image once render-finished is signaled

The GPU work itself is behind the Backend interface, so the protocol does not
depend on any particular graphics binding.
*/
package frame

import (
	"errors"
	"fmt"
	"log"
)

var (
	// ErrNoBackbuffers is returned when a backend reports no backbuffers
	ErrNoBackbuffers = errors.New("backend has no backbuffers")
	// ErrInFlight is returned when a command buffer would be submitted
	// before its previous submission was waited on and its fence reset
	ErrInFlight = errors.New("command buffer is still in flight")
)

// State is the host-side view of one backbuffer index.
type State int

const (
	// Idle means the fence is signaled and the command buffer may be reused
	Idle State = iota
	// Armed means the fence was reset and nothing has been submitted yet
	Armed
	// InFlight means the command buffer was submitted and the fence is pending
	InFlight
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Armed:
		return "Armed"
	case InFlight:
		return "InFlight"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Backend is the GPU side of the protocol. Fences are addressed by backbuffer
// index and must be signaled when the backend is created.
type Backend interface {
	BackbufferCount() int
	// Record encodes cmds into the command buffer of index
	Record(index int, cmds []Command) error
	// AcquireNextImage blocks until a backbuffer is available and signals
	// the image-available semaphore
	AcquireNextImage() (int, error)
	WaitFence(index int) error
	ResetFence(index int) error
	// Submit queues the command buffer of index, waiting on image-available
	// and signaling render-finished and the fence of index
	Submit(index int) error
	// Present hands the image back to the platform once render-finished is signaled
	Present(index int) error
}

// Window is the part of the window system the loop consumes.
type Window interface {
	ShouldClose() bool
	PollEvents()
}

// Loop owns the per-index state of a Backend and renders frames with it.
type Loop struct {
	// Logger receives start and shutdown messages, log.Default() if nil
	Logger *log.Logger

	backend   Backend
	states    []State
	frames    uint64
	lastImage int
}

// NewLoop records the triangle commands into every command buffer of the
// backend. Command buffers are recorded once and reused for every frame.
func NewLoop(backend Backend) (*Loop, error) {
	n := backend.BackbufferCount()
	if n <= 0 {
		return nil, ErrNoBackbuffers
	}

	for i := 0; i < n; i++ {
		if err := backend.Record(i, TriangleCommands(i)); err != nil {
			return nil, fmt.Errorf("record command buffer %d: %w", i, err)
		}
	}

	return &Loop{
		backend:   backend,
		states:    make([]State, n),
		lastImage: -1,
	}, nil
}

// BackbufferCount returns the number of indices managed by the loop
func (l *Loop) BackbufferCount() int {
	return len(l.states)
}

// State returns the state of backbuffer index
func (l *Loop) State(index int) State {
	return l.states[index]
}

// Frames returns the number of frames presented so far
func (l *Loop) Frames() uint64 {
	return l.frames
}

// LastImage returns the image index of the last presented frame, or -1
func (l *Loop) LastImage() int {
	return l.lastImage
}

// Render draws a single frame. Every error is fatal to the loop; a stale
// swapchain is reported like any other failure.
func (l *Loop) Render() error {
	index, err := l.backend.AcquireNextImage()
	if err != nil {
		return fmt.Errorf("acquire next image: %w", err)
	}
	if index < 0 || index >= len(l.states) {
		return fmt.Errorf("acquire next image: index %d outside [0,%d)", index, len(l.states))
	}

	if err := l.backend.WaitFence(index); err != nil {
		return fmt.Errorf("wait fence %d: %w", index, err)
	}
	l.states[index] = Idle

	if err := l.backend.ResetFence(index); err != nil {
		return fmt.Errorf("reset fence %d: %w", index, err)
	}
	l.states[index] = Armed

	if err := l.submit(index); err != nil {
		return fmt.Errorf("submit command buffer %d: %w", index, err)
	}

	if err := l.backend.Present(index); err != nil {
		return fmt.Errorf("present image %d: %w", index, err)
	}

	l.frames++
	l.lastImage = index
	return nil
}

func (l *Loop) submit(index int) error {
	if l.states[index] != Armed {
		return fmt.Errorf("%w (state %s)", ErrInFlight, l.states[index])
	}
	if err := l.backend.Submit(index); err != nil {
		return err
	}
	l.states[index] = InFlight
	return nil
}

// Run renders until the window reports it is closing, polling window events
// after every frame.
func (l *Loop) Run(w Window) error {
	l.logger().Printf("render loop started, backbuffers=%d", len(l.states))
	for !w.ShouldClose() {
		if err := l.Render(); err != nil {
			return err
		}
		w.PollEvents()
	}
	return nil
}

// Shutdown waits on every fence so no GPU work references resources about to
// be destroyed. An Armed fence had nothing submitted and would never signal,
// so it is skipped.
func (l *Loop) Shutdown() error {
	for i, s := range l.states {
		if s == Armed {
			l.logger().Printf("fence %d was reset without a submission, skipping", i)
			continue
		}
		if err := l.backend.WaitFence(i); err != nil {
			return fmt.Errorf("wait fence %d: %w", i, err)
		}
		l.states[i] = Idle
	}
	l.logger().Printf("render loop stopped, frames=%d", l.frames)
	return nil
}

func (l *Loop) logger() *log.Logger {
	if l.Logger == nil {
		return log.Default()
	}
	return l.Logger
}
