package frame

import (
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func quietLoop(t *testing.T, g *fakeGPU) *Loop {
	t.Helper()
	l, err := NewLoop(g)
	require.NoError(t, err)
	l.Logger = log.New(io.Discard, "", 0)
	return l
}

// within fails the test if fn does not return before d elapses.
func within(t *testing.T, d time.Duration, fn func() error) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case <-time.After(d):
		t.Fatalf("call blocked for more than %s", d)
		return nil
	}
}

func TestNewLoopRecordsEveryBackbuffer(t *testing.T) {
	g := newFakeGPU(3, 0)
	l := quietLoop(t, g)

	require.Equal(t, 3, l.BackbufferCount())
	for i, cmds := range g.recorded {
		require.Equal(t, TriangleCommands(i), cmds)

		draws := 0
		for _, c := range cmds {
			if c.Op == OpDraw {
				draws++
				require.Equal(t, uint32(3), c.VertexCount)
				require.Equal(t, uint32(1), c.InstanceCount)
			}
		}
		require.Equal(t, 1, draws, "command buffer %d", i)
		require.Equal(t, i, cmds[0].Framebuffer)
		require.Equal(t, Idle, l.State(i))
	}
}

func TestNewLoopErrors(t *testing.T) {
	_, err := NewLoop(newFakeGPU(0, 0))
	require.ErrorIs(t, err, ErrNoBackbuffers)

	g := newFakeGPU(2, 0)
	g.busy[1] = true
	_, err = NewLoop(g)
	require.Error(t, err)
	require.Contains(t, err.Error(), "record command buffer 1")
}

func TestFencesStartSignaled(t *testing.T) {
	g := newFakeGPU(3, 0)
	quietLoop(t, g)

	for i := 0; i < 3; i++ {
		err := within(t, time.Second, func() error { return g.WaitFence(i) })
		require.NoError(t, err)
	}
}

func TestRenderNeverReusesBusyCommandBuffer(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		frames  int
		latency time.Duration
	}{
		{"single backbuffer", 1, 10, time.Millisecond},
		{"triple buffered", 3, 30, 2 * time.Millisecond},
		{"gpu slower than host", 2, 20, 5 * time.Millisecond},
		{"instant gpu", 3, 50, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newFakeGPU(tc.n, tc.latency)
			l := quietLoop(t, g)

			for i := 0; i < tc.frames; i++ {
				err := within(t, 5*time.Second, l.Render)
				require.NoError(t, err, "frame %d", i)
			}

			require.Empty(t, g.hazards)
			require.Equal(t, uint64(tc.frames), l.Frames())
			require.Equal(t, g.acquired, g.submits)
			require.Equal(t, g.submits, g.presents)

			require.NoError(t, within(t, 5*time.Second, l.Shutdown))
			g.wg.Wait()
			require.True(t, g.idle())
		})
	}
}

func TestRenderMarksIndexInFlight(t *testing.T) {
	g := newFakeGPU(3, time.Hour)
	l := quietLoop(t, g)

	require.NoError(t, l.Render())
	require.Equal(t, 0, l.LastImage())
	require.Equal(t, InFlight, l.State(0))
	require.Equal(t, Idle, l.State(1))
	require.Equal(t, Idle, l.State(2))
}

func TestSubmitRefusedUnlessArmed(t *testing.T) {
	g := newFakeGPU(2, 0)
	l := quietLoop(t, g)

	err := l.submit(0)
	require.ErrorIs(t, err, ErrInFlight)
	require.Empty(t, g.submits)
}

func TestRenderFailuresAreFatal(t *testing.T) {
	injected := errors.New("device lost")

	tests := []struct {
		name   string
		set    func(g *fakeGPU)
		step   string
		submit bool
	}{
		{"acquire", func(g *fakeGPU) { g.failAcquire = injected }, "acquire next image", false},
		{"submit", func(g *fakeGPU) { g.failSubmit = injected }, "submit command buffer 0", false},
		{"present", func(g *fakeGPU) { g.failPresent = injected }, "present image 0", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newFakeGPU(3, 0)
			l := quietLoop(t, g)
			tc.set(g)

			err := l.Run(&closingWindow{after: 100})
			require.ErrorIs(t, err, injected)
			require.Contains(t, err.Error(), tc.step)
			require.Equal(t, uint64(0), l.Frames())
			require.Equal(t, tc.submit, len(g.submits) == 1)

			require.NoError(t, within(t, time.Second, l.Shutdown))
		})
	}
}

func TestShutdownSkipsArmedFence(t *testing.T) {
	g := newFakeGPU(3, 0)
	l := quietLoop(t, g)
	g.failSubmit = errors.New("queue submit failed")

	require.Error(t, l.Render())
	require.Equal(t, Armed, l.State(0))

	require.NoError(t, within(t, time.Second, l.Shutdown))
	require.Equal(t, Armed, l.State(0))
	require.Equal(t, Idle, l.State(1))
}

type badIndexGPU struct {
	*fakeGPU
}

func (b badIndexGPU) AcquireNextImage() (int, error) {
	return b.n, nil
}

func TestRenderRejectsOutOfRangeIndex(t *testing.T) {
	l, err := NewLoop(badIndexGPU{newFakeGPU(2, 0)})
	require.NoError(t, err)

	err = l.Render()
	require.Error(t, err)
	require.Contains(t, err.Error(), "outside [0,2)")
}

func TestRunUntilClose(t *testing.T) {
	g := newFakeGPU(3, time.Millisecond)
	l := quietLoop(t, g)
	w := &closingWindow{after: 7}

	require.NoError(t, within(t, 5*time.Second, func() error { return l.Run(w) }))
	require.Equal(t, uint64(7), l.Frames())
	require.Equal(t, 7, w.polls)

	first := g.acquired[0]
	require.GreaterOrEqual(t, first, 0)
	require.Less(t, first, 3)

	require.NoError(t, within(t, 5*time.Second, l.Shutdown))
	for i := 0; i < 3; i++ {
		require.Equal(t, Idle, l.State(i))
	}
	g.wg.Wait()
	require.True(t, g.idle())
	require.Empty(t, g.hazards)
}

func TestRunClosedWindowRendersNothing(t *testing.T) {
	g := newFakeGPU(2, 0)
	l := quietLoop(t, g)

	require.NoError(t, l.Run(&closingWindow{after: 0}))
	require.Equal(t, uint64(0), l.Frames())
	require.Equal(t, -1, l.LastImage())
	require.NoError(t, l.Shutdown())
}

func TestStrings(t *testing.T) {
	require.Equal(t, "InFlight", InFlight.String())
	require.Equal(t, "State(9)", State(9).String())
	require.Equal(t, "Draw(vertices=3 instances=1)", TriangleCommands(0)[3].String())
	require.Equal(t, "BeginRenderPass(framebuffer=2)", TriangleCommands(2)[0].String())
	require.Equal(t, "Op(42)", Op(42).String())
}
