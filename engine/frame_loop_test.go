package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/gridpath/status"
)

func TestFrameLoopStepRunsTickersInOrder(t *testing.T) {
	clock := NewMockTimeProvider(epoch)
	loop := NewFrameLoop(clock, 16*time.Millisecond, 2*time.Millisecond, nil)

	var order []string
	loop.Register(func(frame int64, now time.Time) {
		order = append(order, "a")
		assert.Equal(t, epoch, now)
	})
	loop.Register(func(frame int64, _ time.Time) {
		order = append(order, "b")
		assert.EqualValues(t, 1, frame)
	})

	assert.False(t, loop.Step())
	assert.Equal(t, []string{"a", "b"}, order)
	assert.EqualValues(t, 1, loop.Frames())
}

func TestFrameLoopCountsOverruns(t *testing.T) {
	clock := NewMockTimeProvider(epoch)
	reg := status.NewRegistry()
	loop := NewFrameLoop(clock, 16*time.Millisecond, 2*time.Millisecond, reg)

	cost := 10 * time.Millisecond
	loop.Register(func(int64, time.Time) { clock.Advance(cost) })

	assert.False(t, loop.Step())
	cost = 18 * time.Millisecond
	assert.False(t, loop.Step(), "within tolerance")
	cost = 19 * time.Millisecond
	assert.True(t, loop.Step())

	assert.EqualValues(t, 1, loop.Overruns())
	assert.EqualValues(t, 3, reg.Ints.Get("frame.count").Load())
	assert.EqualValues(t, 1, reg.Ints.Get("frame.overruns").Load())
	assert.InDelta(t, 19.0, reg.Floats.Get("frame.max_ms").Get(), 1e-9)
}

func TestFrameLoopAdvanceResyncs(t *testing.T) {
	loop := NewFrameLoop(NewMockTimeProvider(epoch), 10*time.Millisecond, 0, nil)
	loop.nextDeadline = epoch.Add(10 * time.Millisecond)

	assert.Equal(t, 8*time.Millisecond, loop.advance(epoch.Add(12*time.Millisecond)))
	assert.Equal(t, epoch.Add(20*time.Millisecond), loop.nextDeadline)

	// Slightly late: catch up without skipping
	assert.Equal(t, time.Duration(0), loop.advance(epoch.Add(35*time.Millisecond)))
	assert.Equal(t, epoch.Add(30*time.Millisecond), loop.nextDeadline)

	// Far behind: resynchronize
	assert.Equal(t, 10*time.Millisecond, loop.advance(epoch.Add(100*time.Millisecond)))
	assert.Equal(t, epoch.Add(110*time.Millisecond), loop.nextDeadline)
}

func TestFrameLoopStartStop(t *testing.T) {
	loop := NewFrameLoop(NewMonotonicTimeProvider(), time.Millisecond, time.Millisecond, nil)
	var ticks atomic.Int64
	loop.Register(func(int64, time.Time) { ticks.Add(1) })

	loop.Start(nil)
	loop.Start(nil)
	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)

	loop.Stop()
	stopped := ticks.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, ticks.Load())
	loop.Stop()
}
