package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a controllable clock for tests and headless benchmarks
// With auto-advance set, every Now call moves time forward by the step before reading,
// which lets a budgeted search observe its own progress without sleeping
type MockTimeProvider struct {
	mu          sync.Mutex
	currentTime time.Time
	autoAdvance time.Duration
	reads       int
}

// NewMockTimeProvider creates a frozen clock at startTime
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

// Now returns the mocked time, advancing it first when auto-advance is on
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(m.autoAdvance)
	m.reads++
	return m.currentTime
}

// Peek returns the mocked time without advancing or counting a read
func (m *MockTimeProvider) Peek() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

// SetTime jumps to t
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance moves time forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// SetAutoAdvance sets the step applied on each Now call; zero freezes the clock
func (m *MockTimeProvider) SetAutoAdvance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoAdvance = d
}

// Reads returns how many times Now was called
func (m *MockTimeProvider) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}
