package navigation

import (
	"fmt"
	"math"
	"strings"

	"github.com/lixenwraith/gridpath/core"
)

// HeuristicMode selects the distance estimate used for H
type HeuristicMode uint8

const (
	HeuristicOctile HeuristicMode = iota
	HeuristicEuclidean
)

// String returns the configuration name of the mode
func (m HeuristicMode) String() string {
	switch m {
	case HeuristicOctile:
		return "octile"
	case HeuristicEuclidean:
		return "euclidean"
	default:
		return fmt.Sprintf("HeuristicMode(%d)", uint8(m))
	}
}

// ParseHeuristicMode maps a configuration name to a mode, case-insensitive
func ParseHeuristicMode(name string) (HeuristicMode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "octile", "":
		return HeuristicOctile, true
	case "euclidean", "euclid":
		return HeuristicEuclidean, true
	}
	return 0, false
}

// Estimate returns the heuristic distance from a to b
func (m HeuristicMode) Estimate(a, b core.CellKey) float64 {
	if m == HeuristicEuclidean {
		return Euclidean(a, b)
	}
	return Octile(a, b)
}

// Octile is the 8-directional distance with diagonal cost √2
func Octile(a, b core.CellKey) float64 {
	dx := math.Abs(float64(a.Col - b.Col))
	dz := math.Abs(float64(a.Row - b.Row))
	lo, hi := math.Min(dx, dz), math.Max(dx, dz)
	return lo*math.Sqrt2 + (hi - lo)
}

// Euclidean is the straight-line distance between cell centers
func Euclidean(a, b core.CellKey) float64 {
	return math.Hypot(float64(a.Col-b.Col), float64(a.Row-b.Row))
}
