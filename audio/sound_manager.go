package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/gridpath/event"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager plays short path-ready chimes
// Every method is safe to call before Initialize or after a failed one; playback becomes a no-op
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	played      int
}

// NewSoundManager creates a silent manager
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker; failure leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops playback and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// ToggleMute flips muting and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

// Played returns how many chimes reached the mixer
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

// Play queues the chime for kind
func (sm *SoundManager) Play(kind event.SoundKind) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	s, err := Chime(kind, sampleRate)
	if err != nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played++
}

// Chime builds the streamer for kind
// Found is a rising two-note pluck; fallback is a single low decaying tone
func Chime(kind event.SoundKind, sr beep.SampleRate) (beep.Streamer, error) {
	var s beep.Streamer
	switch kind {
	case event.SoundFound:
		hi, err := generators.SineTone(sr, 1320)
		if err != nil {
			return nil, err
		}
		s = beep.Seq(
			NewOscillator(880, 60*time.Millisecond, 40*time.Millisecond, WaveSine, sr),
			beep.Take(sr.N(50*time.Millisecond), hi),
		)
	default:
		s = NewOscillator(220, 180*time.Millisecond, 80*time.Millisecond, WaveTriangle, sr)
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: -2}, nil
}

// ChimeHandler routes sound requests to a SoundManager
type ChimeHandler[T any] struct {
	Sound  *SoundManager
	Logger *slog.Logger
}

// EventTypes subscribes to sound requests
func (h ChimeHandler[T]) EventTypes() []event.EventType {
	return []event.EventType{event.EventSoundRequest}
}

// HandleEvent plays the requested chime; foreign payloads are ignored
func (h ChimeHandler[T]) HandleEvent(_ T, ev event.GameEvent) {
	p, ok := ev.Payload.(*event.SoundRequestPayload)
	if !ok {
		if h.Logger != nil {
			h.Logger.Warn("sound request without payload", slog.Int64("frame", ev.Frame))
		}
		return
	}
	h.Sound.Play(p.Kind)
}
