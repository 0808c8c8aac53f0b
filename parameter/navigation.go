package parameter

import "time"

// Navigation - A* search
const (
	// NavTickBudget is the default wall-clock search budget per frame
	NavTickBudget = 5 * time.Millisecond

	// NavHeuristicWeight inflates the heuristic slightly above admissible to favour
	// fewer expansions over strictly shortest paths
	NavHeuristicWeight = 1.01

	// NavHeuristic is the default heuristic name (octile | euclidean)
	NavHeuristic = "octile"

	// NavFrontier is the default open-set strategy name (scan | heap)
	NavFrontier = "scan"

	// NavArenaHint is the initial node arena capacity per request
	NavArenaHint = 256
)

// Navigation - post-processing
const (
	// NavRubberband enables waypoint minimisation by default
	NavRubberband = true

	// NavSmooth enables Catmull-Rom smoothing by default
	NavSmooth = false

	// NavSmoothMaxBisect caps midpoint insertion passes during spacing normalisation
	NavSmoothMaxBisect = 16
)

// Catmull-Rom sample parameters inserted between consecutive waypoints
var NavSplineSamples = [3]float64{0.25, 0.50, 0.75}
