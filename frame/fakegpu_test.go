package frame

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// fakeGPU executes submissions on goroutines after a fixed latency and keeps
// enough bookkeeping to catch protocol hazards.
type fakeGPU struct {
	mu   sync.Mutex
	cond *sync.Cond

	n       int
	latency time.Duration

	recorded [][]Command
	signaled []bool
	busy     []bool

	// pending binary semaphore signals
	imageAvailable int
	renderFinished int

	next     int
	acquired []int
	submits  []int
	presents []int
	hazards  []string

	failAcquire error
	failSubmit  error
	failPresent error

	wg sync.WaitGroup
}

func newFakeGPU(n int, latency time.Duration) *fakeGPU {
	g := &fakeGPU{
		n:        n,
		latency:  latency,
		recorded: make([][]Command, n),
		signaled: make([]bool, n),
		busy:     make([]bool, n),
	}
	g.cond = sync.NewCond(&g.mu)
	for i := range g.signaled {
		g.signaled[i] = true
	}
	return g
}

func (g *fakeGPU) hazard(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	g.hazards = append(g.hazards, msg)
	return errors.New(msg)
}

func (g *fakeGPU) BackbufferCount() int {
	return g.n
}

func (g *fakeGPU) Record(index int, cmds []Command) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy[index] {
		return g.hazard("record into busy command buffer %d", index)
	}
	g.recorded[index] = append([]Command(nil), cmds...)
	return nil
}

func (g *fakeGPU) AcquireNextImage() (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failAcquire != nil {
		return 0, g.failAcquire
	}
	if g.imageAvailable > 0 {
		return 0, g.hazard("image-available signaled twice without a wait")
	}
	index := g.next
	g.next = (g.next + 1) % g.n
	g.imageAvailable++
	g.acquired = append(g.acquired, index)
	return index, nil
}

func (g *fakeGPU) WaitFence(index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for !g.signaled[index] {
		g.cond.Wait()
	}
	return nil
}

func (g *fakeGPU) ResetFence(index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy[index] {
		return g.hazard("reset fence %d while its submission executes", index)
	}
	g.signaled[index] = false
	return nil
}

func (g *fakeGPU) Submit(index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failSubmit != nil {
		return g.failSubmit
	}
	if g.busy[index] {
		return g.hazard("command buffer %d submitted while executing", index)
	}
	if g.signaled[index] {
		return g.hazard("fence %d submitted while signaled", index)
	}
	if g.imageAvailable == 0 {
		return g.hazard("submit %d without a pending image-available signal", index)
	}
	if g.recorded[index] == nil {
		return g.hazard("submit of unrecorded command buffer %d", index)
	}
	g.imageAvailable--
	g.renderFinished++
	g.busy[index] = true
	g.submits = append(g.submits, index)

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		time.Sleep(g.latency)
		g.mu.Lock()
		g.busy[index] = false
		g.signaled[index] = true
		g.cond.Broadcast()
		g.mu.Unlock()
	}()
	return nil
}

func (g *fakeGPU) Present(index int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failPresent != nil {
		return g.failPresent
	}
	if g.renderFinished == 0 {
		return g.hazard("present %d without a pending render-finished signal", index)
	}
	g.renderFinished--
	g.presents = append(g.presents, index)
	return nil
}

func (g *fakeGPU) idle() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.busy {
		if g.busy[i] || !g.signaled[i] {
			return false
		}
	}
	return true
}

// closingWindow reports closing after a fixed number of polls.
type closingWindow struct {
	after int
	polls int
}

func (w *closingWindow) ShouldClose() bool {
	return w.polls >= w.after
}

func (w *closingWindow) PollEvents() {
	w.polls++
}
