package navigation

import (
	"github.com/lixenwraith/gridpath/core"
)

// PostProcessor turns a raw cell chain into the waypoint list handed to callers
type PostProcessor struct {
	Rubberband bool
	Smooth     bool
}

// Process runs backtrace conversion, optional rubberbanding, then optional smoothing
func (p PostProcessor) Process(g Grid, chain []core.CellKey) []core.GridPoint {
	if p.Rubberband {
		chain = Rubberband(g, chain)
	}
	path := Waypoints(chain)
	if p.Smooth {
		path = Smooth(path)
	}
	return path
}

// Waypoints converts cells to their centers, preserving order
func Waypoints(chain []core.CellKey) []core.GridPoint {
	out := make([]core.GridPoint, len(chain))
	for i, k := range chain {
		out[i] = k.Center()
	}
	return out
}
