package engine

import (
	"sync"
	"time"
)

// PausableClock derives simulation time from a source clock, excluding paused spans
// The sandbox uses it so agents and the request budget freeze together
type PausableClock struct {
	mu sync.RWMutex

	source      TimeProvider
	origin      time.Time // source time at creation
	pausedAt    time.Time // source time when the current pause began, zero when running
	pausedTotal time.Duration
}

// NewPausableClock creates a running clock over source
func NewPausableClock(source TimeProvider) *PausableClock {
	return &PausableClock{source: source, origin: source.Now()}
}

// Now returns simulation time; frozen while paused
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	ref := pc.pausedAt
	if ref.IsZero() {
		ref = pc.source.Now()
	}
	return pc.origin.Add(ref.Sub(pc.origin) - pc.pausedTotal)
}

// Pause stops simulation time; no-op when already paused
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.pausedAt.IsZero() {
		pc.pausedAt = pc.source.Now()
	}
}

// Resume restarts simulation time; no-op when running
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.pausedAt.IsZero() {
		return
	}
	pc.pausedTotal += pc.source.Now().Sub(pc.pausedAt)
	pc.pausedAt = time.Time{}
}

// Toggle flips the pause state and returns true if now paused
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused reports the pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return !pc.pausedAt.IsZero()
}

// TotalPauseDuration returns cumulative paused time, the current pause included
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	total := pc.pausedTotal
	if !pc.pausedAt.IsZero() {
		total += pc.source.Now().Sub(pc.pausedAt)
	}
	return total
}
