package event

// EventType identifies a sandbox event
type EventType int

const (
	// EventTick is the implicit per-frame event; never queued
	EventTick EventType = iota

	// EventPathRequested records a submitted request
	// Trigger: sandbox agent picks a new goal
	// Consumer: status line | Payload: *PathRequestedPayload
	EventPathRequested

	// EventPathReady reports a finished request, success or fallback
	// Trigger: pathfinding completion callback
	// Consumer: agents, status line, chime | Payload: *PathReadyPayload
	EventPathReady

	// EventGridChanged reports an edited occupancy cell
	// Trigger: mouse toggle in the sandbox
	// Consumer: status line | Payload: *GridChangedPayload
	EventGridChanged

	// EventSoundRequest asks the audio layer for a chime
	// Trigger: EventPathReady handler
	// Consumer: audio chime | Payload: *SoundRequestPayload
	EventSoundRequest
)

// GameEvent is one queued event with an optional payload
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
