package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestMonotonicTimeProvider(t *testing.T) {
	p := NewMonotonicTimeProvider()
	t1 := p.Now()
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, p.Now().Sub(t1), 5*time.Millisecond)
}

func TestMockTimeProvider(t *testing.T) {
	m := NewMockTimeProvider(epoch)
	assert.Equal(t, epoch, m.Now())

	next := epoch.Add(24 * time.Hour)
	m.SetTime(next)
	assert.Equal(t, next, m.Now())

	m.Advance(time.Hour)
	m.Advance(30 * time.Minute)
	assert.Equal(t, next.Add(90*time.Minute), m.Now())
	assert.Equal(t, 3, m.Reads())
}

func TestMockTimeProviderAutoAdvance(t *testing.T) {
	m := NewMockTimeProvider(epoch)
	m.SetAutoAdvance(time.Millisecond)

	assert.Equal(t, epoch.Add(time.Millisecond), m.Now())
	assert.Equal(t, epoch.Add(2*time.Millisecond), m.Now())
	assert.Equal(t, epoch.Add(2*time.Millisecond), m.Peek())

	m.SetAutoAdvance(0)
	assert.Equal(t, m.Now(), m.Now())
}

func TestMockTimeProviderConcurrency(t *testing.T) {
	m := NewMockTimeProvider(epoch)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = m.Now()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				m.Advance(time.Millisecond)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, epoch.Add(250*time.Millisecond), m.Peek())
}

func TestTimeProviderImplementations(t *testing.T) {
	var _ TimeProvider = &MonotonicTimeProvider{}
	var _ TimeProvider = &MockTimeProvider{}
	var _ TimeProvider = &PausableClock{}
}

func TestPausableClock(t *testing.T) {
	src := NewMockTimeProvider(epoch)
	pc := NewPausableClock(src)

	src.Advance(10 * time.Second)
	assert.Equal(t, epoch.Add(10*time.Second), pc.Now())

	assert.True(t, pc.Toggle())
	src.Advance(5 * time.Second)
	assert.True(t, pc.IsPaused())
	assert.Equal(t, epoch.Add(10*time.Second), pc.Now(), "paused clock must not advance")
	assert.Equal(t, 5*time.Second, pc.TotalPauseDuration())

	assert.False(t, pc.Toggle())
	src.Advance(time.Second)
	assert.Equal(t, epoch.Add(11*time.Second), pc.Now())

	pc.Resume()
	assert.Equal(t, 5*time.Second, pc.TotalPauseDuration())
}
