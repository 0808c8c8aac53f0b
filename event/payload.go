package event

import (
	"github.com/lixenwraith/gridpath/core"
)

// PathRequestedPayload describes a request handed to the service
type PathRequestedPayload struct {
	Agent string         `toml:"agent"`
	Start core.GridPoint `toml:"start"`
	Goal  core.GridPoint `toml:"goal"`
}

// PathReadyPayload summarizes a completed request
type PathReadyPayload struct {
	Agent     string `toml:"agent"`
	Found     bool   `toml:"found"`
	Waypoints int    `toml:"waypoints"`
	Expanded  int    `toml:"expanded"`
	Ticks     int    `toml:"ticks"`
}

// GridChangedPayload reports the new state of one cell
type GridChangedPayload struct {
	Cell     core.CellKey `toml:"cell"`
	Occupied bool         `toml:"occupied"`
}

// SoundKind selects a chime tone
type SoundKind uint8

const (
	SoundFound SoundKind = iota
	SoundFallback
)

// SoundRequestPayload contains the chime to play
type SoundRequestPayload struct {
	Kind SoundKind `toml:"kind"`
}
