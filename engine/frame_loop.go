package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/gridpath/status"
)

// TickFunc runs once per frame on the loop goroutine
type TickFunc func(frame int64, now time.Time)

// FrameLoop drives registered tickers on a fixed interval
//
// Tickers run sequentially on a single goroutine, so state they share needs no locking.
// Deadlines advance by whole intervals for drift correction; a loop that falls more than
// two intervals behind resynchronizes instead of bursting.
type FrameLoop struct {
	clock     TimeProvider
	interval  time.Duration
	tolerance time.Duration
	tickers   []TickFunc

	mu           sync.Mutex
	nextDeadline time.Time

	frame    atomic.Int64
	overruns atomic.Int64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	statFrames   *atomic.Int64
	statOverruns *atomic.Int64
	statFrameMs  *status.AtomicFloat
}

// NewFrameLoop creates a stopped loop; reg may be nil
func NewFrameLoop(clock TimeProvider, interval, tolerance time.Duration, reg *status.Registry) *FrameLoop {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &FrameLoop{
		clock:        clock,
		interval:     interval,
		tolerance:    tolerance,
		stopChan:     make(chan struct{}),
		statFrames:   reg.Ints.Get("frame.count"),
		statOverruns: reg.Ints.Get("frame.overruns"),
		statFrameMs:  reg.Floats.Get("frame.max_ms"),
	}
}

// Register appends a ticker; must be called before Start
func (l *FrameLoop) Register(fn TickFunc) {
	l.tickers = append(l.tickers, fn)
}

// Step runs one frame synchronously and reports whether it overran interval+tolerance
func (l *FrameLoop) Step() bool {
	frame := l.frame.Add(1)
	begin := l.clock.Now()
	for _, fn := range l.tickers {
		fn(frame, begin)
	}
	elapsed := l.clock.Now().Sub(begin)

	l.statFrames.Store(frame)
	l.statFrameMs.StoreMax(float64(elapsed) / float64(time.Millisecond))

	if elapsed > l.interval+l.tolerance {
		l.statOverruns.Store(l.overruns.Add(1))
		return true
	}
	return false
}

// Frames returns the number of frames run
func (l *FrameLoop) Frames() int64 { return l.frame.Load() }

// Overruns returns the number of frames that exceeded interval+tolerance
func (l *FrameLoop) Overruns() int64 { return l.overruns.Load() }

// Start launches the loop goroutine; run wraps the goroutine body, e.g. for panic recovery
func (l *FrameLoop) Start(run func(func())) {
	if !l.running.CompareAndSwap(false, true) {
		return
	}
	if run == nil {
		run = func(fn func()) { go fn() }
	}
	l.wg.Add(1)
	run(l.loop)
}

// Stop halts the loop and waits for the current frame to finish
func (l *FrameLoop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
		if l.running.Load() {
			l.wg.Wait()
		}
	})
}

func (l *FrameLoop) loop() {
	defer l.wg.Done()

	l.mu.Lock()
	l.nextDeadline = l.clock.Now().Add(l.interval)
	l.mu.Unlock()

	timer := time.NewTimer(l.interval)
	defer timer.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-timer.C:
		}

		l.Step()
		wait := l.advance(l.clock.Now())
		timer.Reset(wait)
	}
}

// advance moves the deadline past a frame finished at now and returns the sleep until it
func (l *FrameLoop) advance(now time.Time) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextDeadline = l.nextDeadline.Add(l.interval)
	if now.Sub(l.nextDeadline) > 2*l.interval {
		l.nextDeadline = now.Add(l.interval)
	}
	return max(l.nextDeadline.Sub(now), 0)
}
