package pathfinding

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/engine"
	"github.com/lixenwraith/gridpath/navigation"
	"github.com/lixenwraith/gridpath/status"
)

// Completion describes a finished request
// Found is false when the stored path is the one-point hold-position fallback
type Completion[ID comparable] struct {
	Requester ID
	Found     bool
	Waypoints int
	Expanded  int
	Ticks     int
}

// CompletionFunc is invoked once per completed request, after the path is stored
// and before the request leaves the queue
type CompletionFunc[ID comparable] func(Completion[ID])

// Stats are running totals since construction
type Stats struct {
	Requested   int
	Completed   int
	Found       int
	Fallbacks   int
	Expanded    int
	BusyTicks   int
	MaxTickTime time.Duration
}

type options struct {
	logger *slog.Logger
	clock  engine.TimeProvider
	status *status.Registry
}

// Option customizes a Service
type Option func(*options)

// WithLogger sets the structured logger; the default discards
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock replaces the wall clock that bounds each tick
func WithClock(c engine.TimeProvider) Option {
	return func(o *options) { o.clock = c }
}

// WithStatus publishes counters into a shared registry
func WithStatus(r *status.Registry) Option {
	return func(o *options) { o.status = r }
}

// Service runs one budgeted A* search at a time for many requesters
//
// Requests are served FIFO. Tick advances the head request by at most the configured
// budget; finished paths are stored per requester and read with GetWaypointList.
// A Service is not safe for concurrent use: call every method from the frame loop.
type Service[ID comparable] struct {
	grid   navigation.Grid
	cfg    Config
	engine *navigation.Engine
	post   navigation.PostProcessor
	queue  *RequestQueue[ID]

	completed  map[ID]*[]core.GridPoint
	onComplete CompletionFunc[ID]

	active      bool
	activeTicks int

	clock  engine.TimeProvider
	logger *slog.Logger
	stats  Stats

	statQueued    *atomic.Int64
	statCompleted *atomic.Int64
	statFallbacks *atomic.Int64
	statExpanded  *atomic.Int64
	statTickMs    *status.AtomicFloat
}

// New validates cfg and creates an idle service over grid
func New[ID comparable](grid navigation.Grid, cfg Config, opts ...Option) (*Service[ID], error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new pathfinding service: %w", err)
	}

	o := options{
		logger: slog.New(slog.DiscardHandler),
		clock:  engine.NewMonotonicTimeProvider(),
		status: status.NewRegistry(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Service[ID]{
		grid:          grid,
		cfg:           cfg,
		engine:        navigation.NewEngine(grid, cfg.searchOptions()),
		post:          navigation.PostProcessor{Rubberband: cfg.Rubberband, Smooth: cfg.Smooth},
		queue:         NewRequestQueue[ID](),
		completed:     make(map[ID]*[]core.GridPoint),
		clock:         o.clock,
		logger:        o.logger,
		statQueued:    o.status.Ints.Get("path.queued"),
		statCompleted: o.status.Ints.Get("path.completed"),
		statFallbacks: o.status.Ints.Get("path.fallbacks"),
		statExpanded:  o.status.Ints.Get("path.expanded"),
		statTickMs:    o.status.Floats.Get("path.tick_max_ms"),
	}, nil
}

// OnComplete sets the completion callback; nil disables notification
func (s *Service[ID]) OnComplete(fn CompletionFunc[ID]) {
	s.onComplete = fn
}

// AddPathRequest clears any stored path for id and queues a search from start to goal
// Occupancy is not checked; an unreachable goal completes with the fallback path
func (s *Service[ID]) AddPathRequest(start, goal core.GridPoint, id ID) {
	if p, ok := s.completed[id]; ok {
		*p = (*p)[:0]
	}
	s.queue.Push(PathRequest[ID]{
		Requester: id,
		Start:     start,
		Goal:      goal,
		StartCell: start.Cell(),
		GoalCell:  goal.Cell(),
	})
	s.stats.Requested++
	s.statQueued.Store(int64(s.queue.Len()))

	s.logger.Debug("path request queued",
		slog.Any("requester", id),
		slog.String("start", start.Cell().String()),
		slog.String("goal", goal.Cell().String()),
		slog.Int("pending", s.queue.Len()),
	)
}

// GetWaypointList returns the mutable path stored for id, creating an empty one if absent
// The front element is the next waypoint; an empty list means no path yet or arrived
func (s *Service[ID]) GetWaypointList(id ID) *[]core.GridPoint {
	if p, ok := s.completed[id]; ok {
		return p
	}
	p := new([]core.GridPoint)
	s.completed[id] = p
	return p
}

// ClearWaypointList forgets the stored path for id
func (s *Service[ID]) ClearWaypointList(id ID) {
	delete(s.completed, id)
}

// Tick advances the pathfinding work by at most one budget
// An idle service starts the head request and searches it within the same tick
func (s *Service[ID]) Tick() {
	if !s.active {
		req, ok := s.queue.Peek()
		if !ok {
			return
		}
		s.engine.Reset(req.StartCell, req.GoalCell)
		s.active = true
		s.activeTicks = 0
		s.logger.Debug("path search started",
			slog.Any("requester", req.Requester),
			slog.String("start", req.StartCell.String()),
			slog.String("goal", req.GoalCell.String()),
		)
	}

	s.activeTicks++
	s.stats.BusyTicks++

	begin := s.clock.Now()
	phase := s.engine.Run(s.clock.Now, begin.Add(s.cfg.TickBudget))
	spent := s.clock.Now().Sub(begin)
	if spent > s.stats.MaxTickTime {
		s.stats.MaxTickTime = spent
		s.statTickMs.StoreMax(float64(spent) / float64(time.Millisecond))
	}

	if phase == navigation.PhaseDone {
		s.finish()
	}
}

// finish stores the result of the head request, notifies, then pops it
func (s *Service[ID]) finish() {
	req, _ := s.queue.Peek()

	found := s.engine.Found()
	var path []core.GridPoint
	if chain := s.engine.Chain(); found && len(chain) > 1 {
		path = s.post.Process(s.grid, chain)
	} else {
		// Unreachable goal, or already standing in the goal cell: hold position
		path = []core.GridPoint{req.Start}
	}
	*s.GetWaypointList(req.Requester) = path

	expanded := s.engine.Expanded()
	s.stats.Completed++
	s.stats.Expanded += expanded
	if found {
		s.stats.Found++
	} else {
		s.stats.Fallbacks++
		s.statFallbacks.Add(1)
	}
	s.statCompleted.Add(1)
	s.statExpanded.Add(int64(expanded))

	s.logger.Debug("path search completed",
		slog.Any("requester", req.Requester),
		slog.Bool("found", found),
		slog.Int("waypoints", len(path)),
		slog.Int("expanded", expanded),
		slog.Int("ticks", s.activeTicks),
	)

	if s.onComplete != nil {
		s.onComplete(Completion[ID]{
			Requester: req.Requester,
			Found:     found,
			Waypoints: len(path),
			Expanded:  expanded,
			Ticks:     s.activeTicks,
		})
	}

	s.queue.Pop()
	s.engine.Release()
	s.active = false
	s.statQueued.Store(int64(s.queue.Len()))
}

// Pending returns the number of queued requests, the active one included
func (s *Service[ID]) Pending() int {
	return s.queue.Len()
}

// Active returns the requester whose search is in progress
func (s *Service[ID]) Active() (ID, bool) {
	if !s.active {
		var zero ID
		return zero, false
	}
	req, _ := s.queue.Peek()
	return req.Requester, true
}

// Stats returns running totals
func (s *Service[ID]) Stats() Stats {
	return s.stats
}

// Config returns the construction-time configuration
func (s *Service[ID]) Config() Config {
	return s.cfg
}

// Grid returns the grid searched by the service
func (s *Service[ID]) Grid() navigation.Grid {
	return s.grid
}
