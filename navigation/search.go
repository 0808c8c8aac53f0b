package navigation

import (
	"time"

	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/parameter"
)

// SearchPhase is the lifecycle of one request inside the engine
type SearchPhase uint8

const (
	PhaseIdle SearchPhase = iota
	PhaseExpanding
	PhaseDone
)

// String returns the phase name
func (p SearchPhase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseExpanding:
		return "Expanding"
	case PhaseDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Options configures the engine; fixed for its lifetime
type Options struct {
	Heuristic HeuristicMode
	Weight    float64 // Multiplier on H; values above 1 trade optimality for fewer expansions
	Frontier  FrontierMode
}

// DefaultOptions returns octile heuristic, default weight, linear scan
func DefaultOptions() Options {
	return Options{
		Heuristic: HeuristicOctile,
		Weight:    parameter.NavHeuristicWeight,
		Frontier:  FrontierScan,
	}
}

// Engine is a resumable A* search over one request at a time
//
// Costs of an existing node are overwritten in place when a cheaper route is found,
// and the node is reopened. Descendants already created from the old route keep their
// stale costs until re-reached; no decrease-key propagation is performed.
type Engine struct {
	grid     Grid
	opts     Options
	state    *SearchState
	frontier frontier

	phase   SearchPhase
	start   core.CellKey
	goal    core.CellKey
	goalIdx int
	found   bool

	expanded int
}

// NewEngine creates an idle engine over grid
func NewEngine(grid Grid, opts Options) *Engine {
	return &Engine{
		grid:     grid,
		opts:     opts,
		state:    NewSearchState(),
		frontier: newFrontier(opts.Frontier),
		goalIdx:  -1,
	}
}

// Reset discards any previous search and seeds a new one with a single root node
// A start cell outside the grid creates no root, so the first step fails the search
func (e *Engine) Reset(start, goal core.CellKey) {
	e.state.Reset()
	e.frontier.reset()
	e.phase = PhaseExpanding
	e.start = start
	e.goal = goal
	e.goalIdx = -1
	e.found = false
	e.expanded = 0

	if e.grid.Cell(start.Row, start.Col) == CellInvalid {
		return
	}
	h := e.opts.Heuristic.Estimate(start, goal)
	idx := e.state.add(SearchNode{
		Loc:    start,
		Parent: NoParent,
		G:      0,
		H:      h,
		F:      e.opts.Weight * h,
	})
	e.frontier.open(e.state, idx)
}

// Release returns the engine to idle and drops the node set
func (e *Engine) Release() {
	e.state.Reset()
	e.frontier.reset()
	e.phase = PhaseIdle
	e.goalIdx = -1
	e.found = false
}

// Phase returns the current lifecycle phase
func (e *Engine) Phase() SearchPhase { return e.phase }

// Found reports whether the finished search reached the goal
func (e *Engine) Found() bool { return e.phase == PhaseDone && e.found }

// Expanded returns the number of nodes expanded for the current request
func (e *Engine) Expanded() int { return e.expanded }

// State exposes the node arena for inspection; callers must not retain node indices
// across requests
func (e *Engine) State() *SearchState { return e.state }

// Start returns the start cell of the current request
func (e *Engine) Start() core.CellKey { return e.start }

// Goal returns the goal cell of the current request
func (e *Engine) Goal() core.CellKey { return e.goal }

// Step performs one selection and expansion
func (e *Engine) Step() SearchPhase {
	if e.phase != PhaseExpanding {
		return e.phase
	}

	idx, ok := e.frontier.next(e.state)
	if !ok {
		e.phase = PhaseDone
		e.found = false
		return e.phase
	}

	cur := e.state.nodes[idx]
	if cur.Loc == e.goal {
		e.phase = PhaseDone
		e.found = true
		e.goalIdx = idx
		return e.phase
	}

	for d := Direction(0); d < DirCount; d++ {
		if !canStep(e.grid, cur.Loc, d) {
			continue
		}
		loc := d.Neighbor(cur.Loc)
		g := cur.G + dirCosts[d]
		h := e.opts.Heuristic.Estimate(loc, e.goal)
		f := g + e.opts.Weight*h

		if j, exists := e.state.Lookup(loc); exists {
			n := &e.state.nodes[j]
			if f >= n.F {
				continue
			}
			n.Parent = idx
			n.G, n.H, n.F = g, h, f
			n.Closed = false
			e.frontier.open(e.state, j)
			continue
		}

		j := e.state.add(SearchNode{Loc: loc, Parent: idx, G: g, H: h, F: f})
		e.frontier.open(e.state, j)
	}

	e.state.nodes[idx].Closed = true
	e.expanded++
	return e.phase
}

// Run steps until the search finishes or now() reaches deadline
// The clock is checked before every step after the first, so a call always makes progress
// and a slow step overruns the deadline by at most its own duration
func (e *Engine) Run(now func() time.Time, deadline time.Time) SearchPhase {
	for first := true; e.phase == PhaseExpanding; first = false {
		if !first && !now().Before(deadline) {
			break
		}
		e.Step()
	}
	return e.phase
}

// RunToCompletion steps without a budget; intended for tools and tests
func (e *Engine) RunToCompletion() SearchPhase {
	for e.phase == PhaseExpanding {
		e.Step()
	}
	return e.phase
}

// Chain returns the raw root→goal cell chain of a successful search, nil otherwise
func (e *Engine) Chain() []core.CellKey {
	if !e.Found() {
		return nil
	}
	return e.state.Chain(e.goalIdx)
}
