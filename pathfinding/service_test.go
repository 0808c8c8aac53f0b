package pathfinding

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/engine"
	"github.com/lixenwraith/gridpath/navigation"
	"github.com/lixenwraith/gridpath/status"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// newService builds a service whose clock moves 1ms per read
func newService(t *testing.T, g navigation.Grid, cfg Config, opts ...Option) *Service[string] {
	t.Helper()
	clock := engine.NewMockTimeProvider(epoch)
	clock.SetAutoAdvance(time.Millisecond)
	s, err := New[string](g, cfg, append([]Option{WithClock(clock)}, opts...)...)
	require.NoError(t, err)
	return s
}

func drain(t *testing.T, s *Service[string]) int {
	t.Helper()
	ticks := 0
	for s.Pending() > 0 {
		s.Tick()
		ticks++
		require.Less(t, ticks, 10000, "service did not drain")
	}
	return ticks
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New[string](nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrNilGrid)

	cfg := DefaultConfig()
	cfg.HeuristicWeight = 0
	_, err = New[string](navigation.NewOccupancy(3, 3), cfg)
	assert.ErrorIs(t, err, ErrInvalidWeight)
}

func TestOpenGridRubberbandsToStraightLine(t *testing.T) {
	s := newService(t, navigation.NewOccupancy(5, 5), DefaultConfig())
	s.AddPathRequest(core.Pt(0.5, 0.5), core.Pt(4.5, 4.5), "agent")
	drain(t, s)

	got := *s.GetWaypointList("agent")
	assert.Equal(t, []core.GridPoint{core.Pt(0.5, 0.5), core.Pt(4.5, 4.5)}, got)
}

func TestRawChainWithoutPostProcessing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rubberband = false
	s := newService(t, navigation.NewOccupancy(5, 5), cfg)
	s.AddPathRequest(core.Pt(0.5, 0.5), core.Pt(4.5, 4.5), "agent")
	drain(t, s)

	want := []core.GridPoint{
		core.Pt(0.5, 0.5), core.Pt(1.5, 1.5), core.Pt(2.5, 2.5), core.Pt(3.5, 3.5), core.Pt(4.5, 4.5),
	}
	if diff := cmp.Diff(want, *s.GetWaypointList("agent")); diff != "" {
		t.Errorf("raw path mismatch (-want +got):\n%s", diff)
	}
}

func TestRoutesAroundOccupiedCenter(t *testing.T) {
	g := navigation.NewOccupancy(5, 5)
	g.SetOccupied(2, 2, true)

	s := newService(t, g, DefaultConfig())
	s.AddPathRequest(core.Pt(0.5, 0.5), core.Pt(4.5, 4.5), "agent")
	drain(t, s)

	path := *s.GetWaypointList("agent")
	require.GreaterOrEqual(t, len(path), 3, "straight line would cross (2,2)")
	assert.Equal(t, core.Pt(0.5, 0.5), path[0])
	assert.Equal(t, core.Pt(4.5, 4.5), path[len(path)-1])

	for i := 1; i < len(path); i++ {
		a, b := path[i-1].Cell(), path[i].Cell()
		blocked := min(a.Row, b.Row) <= 2 && max(a.Row, b.Row) >= 2 &&
			min(a.Col, b.Col) <= 2 && max(a.Col, b.Col) >= 2
		assert.False(t, blocked, "segment %v→%v spans the obstacle", a, b)
	}
}

func TestOccupiedGoalFallsBackToStart(t *testing.T) {
	g := navigation.NewOccupancy(5, 5)
	g.SetOccupied(4, 4, true)

	s := newService(t, g, DefaultConfig())
	start := core.Pt(0.7, 1.2)

	var got []Completion[string]
	s.OnComplete(func(c Completion[string]) { got = append(got, c) })

	s.AddPathRequest(start, core.Pt(4.5, 4.5), "agent")
	drain(t, s)

	assert.Equal(t, []core.GridPoint{start}, *s.GetWaypointList("agent"))
	require.Len(t, got, 1)
	assert.False(t, got[0].Found)
	assert.Equal(t, 1, got[0].Waypoints)
	assert.Equal(t, 1, s.Stats().Fallbacks)
}

func TestOutOfBoundsRequestFallsBack(t *testing.T) {
	s := newService(t, navigation.NewOccupancy(4, 4), DefaultConfig())
	s.AddPathRequest(core.Pt(-3, 1.5), core.Pt(2.5, 2.5), "outside-start")
	s.AddPathRequest(core.Pt(1.5, 1.5), core.Pt(40, 40), "outside-goal")
	drain(t, s)

	assert.Equal(t, []core.GridPoint{core.Pt(-3, 1.5)}, *s.GetWaypointList("outside-start"))
	assert.Equal(t, []core.GridPoint{core.Pt(1.5, 1.5)}, *s.GetWaypointList("outside-goal"))
}

func TestStartEqualsGoalCompletesInOneTick(t *testing.T) {
	s := newService(t, navigation.NewOccupancy(5, 5), DefaultConfig())

	var done []Completion[string]
	s.OnComplete(func(c Completion[string]) { done = append(done, c) })

	start := core.Pt(2.2, 2.8)
	s.AddPathRequest(start, core.Pt(2.9, 2.1), "agent")
	s.Tick()

	assert.Zero(t, s.Pending())
	require.Len(t, done, 1)
	assert.True(t, done[0].Found)
	assert.Equal(t, 1, done[0].Ticks)
	assert.Equal(t, []core.GridPoint{start}, *s.GetWaypointList("agent"))
}

func TestBudgetSpreadsSearchAcrossTicks(t *testing.T) {
	g := navigation.NewOccupancy(40, 40)
	s := newService(t, g, DefaultConfig())

	var done Completion[string]
	s.OnComplete(func(c Completion[string]) { done = c })

	s.AddPathRequest(core.Pt(0.5, 0.5), core.Pt(39.5, 39.5), "agent")
	s.Tick()

	id, active := s.Active()
	assert.True(t, active)
	assert.Equal(t, "agent", id)
	assert.Empty(t, *s.GetWaypointList("agent"), "no path before completion")

	ticks := 1 + drain(t, s)
	assert.Greater(t, ticks, 1)
	assert.Equal(t, ticks, done.Ticks)
	assert.True(t, done.Found)

	_, active = s.Active()
	assert.False(t, active)

	direct := navigation.NewEngine(g, DefaultConfig().searchOptions())
	direct.Reset(core.CellKey{}, core.CellKey{Row: 39, Col: 39})
	direct.RunToCompletion()
	assert.Equal(t, direct.Expanded(), done.Expanded)
	assert.Equal(t, navigation.PostProcessor{Rubberband: true}.Process(g, direct.Chain()), *s.GetWaypointList("agent"))
}

func TestRequestsServedFIFO(t *testing.T) {
	s := newService(t, navigation.NewOccupancy(8, 8), DefaultConfig())

	var order []string
	s.OnComplete(func(c Completion[string]) {
		order = append(order, c.Requester)

		// Stored before notification, popped after
		assert.NotEmpty(t, *s.GetWaypointList(c.Requester))
		id, ok := s.Active()
		assert.True(t, ok)
		assert.Equal(t, c.Requester, id)
	})

	for _, id := range []string{"a", "b", "c"} {
		s.AddPathRequest(core.Pt(0.5, 0.5), core.Pt(7.5, 3.5), id)
	}
	assert.Equal(t, 3, s.Pending())
	drain(t, s)

	assert.Equal(t, []string{"a", "b", "c"}, order)
	st := s.Stats()
	assert.Equal(t, 3, st.Requested)
	assert.Equal(t, 3, st.Completed)
	assert.Equal(t, 3, st.Found)
}

func TestNewerRequestOverwritesResult(t *testing.T) {
	s := newService(t, navigation.NewOccupancy(6, 6), DefaultConfig())

	calls := 0
	s.OnComplete(func(Completion[string]) { calls++ })

	s.AddPathRequest(core.Pt(0.5, 0.5), core.Pt(5.5, 0.5), "agent")
	s.AddPathRequest(core.Pt(0.5, 0.5), core.Pt(0.5, 5.5), "agent")
	drain(t, s)

	assert.Equal(t, 2, calls)
	path := *s.GetWaypointList("agent")
	assert.Equal(t, core.Pt(0.5, 5.5), path[len(path)-1])
}

func TestAddPathRequestClearsStoredPath(t *testing.T) {
	s := newService(t, navigation.NewOccupancy(6, 6), DefaultConfig())
	s.AddPathRequest(core.Pt(0.5, 0.5), core.Pt(5.5, 5.5), "agent")
	drain(t, s)

	list := s.GetWaypointList("agent")
	require.NotEmpty(t, *list)

	s.AddPathRequest(core.Pt(5.5, 5.5), core.Pt(0.5, 0.5), "agent")
	assert.Empty(t, *list, "held reference sees the cleared path")

	drain(t, s)
	assert.Same(t, list, s.GetWaypointList("agent"))
	assert.Equal(t, core.Pt(0.5, 0.5), (*list)[len(*list)-1])
}

func TestWaypointListLifecycle(t *testing.T) {
	s := newService(t, navigation.NewOccupancy(3, 3), DefaultConfig())

	list := s.GetWaypointList("idle")
	require.NotNil(t, list)
	assert.Empty(t, *list)
	assert.Same(t, list, s.GetWaypointList("idle"))

	*list = append(*list, core.Pt(1, 1))
	assert.Len(t, *s.GetWaypointList("idle"), 1, "callers consume through the shared reference")

	s.ClearWaypointList("idle")
	assert.NotSame(t, list, s.GetWaypointList("idle"))
	assert.Empty(t, *s.GetWaypointList("idle"))

	s.ClearWaypointList("never-seen")
}

func TestSmoothingAddsPoints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rubberband = false
	cfg.Smooth = true
	g := navigation.MustParseOccupancy(`
		......
		.####.
		......
	`)
	s := newService(t, g, cfg)
	s.AddPathRequest(core.Pt(0.5, 2.5), core.Pt(5.5, 2.5), "agent")
	drain(t, s)

	raw := navigation.NewEngine(g, cfg.searchOptions())
	raw.Reset(core.CellKey{Row: 2, Col: 0}, core.CellKey{Row: 2, Col: 5})
	raw.RunToCompletion()
	n := len(raw.Chain())

	path := *s.GetWaypointList("agent")
	assert.GreaterOrEqual(t, len(path)-2, n)
	assert.Equal(t, core.Pt(0.5, 2.5), path[0])
	assert.Equal(t, core.Pt(5.5, 2.5), path[len(path)-1])
}

func TestHeapFrontierServiceMatchesScan(t *testing.T) {
	g := navigation.MustParseOccupancy(`
		..........
		.######...
		.#....#.#.
		.#.##.#.#.
		...#....#.
	`)
	results := map[navigation.FrontierMode][]core.GridPoint{}
	for _, mode := range []navigation.FrontierMode{navigation.FrontierScan, navigation.FrontierHeap} {
		cfg := DefaultConfig()
		cfg.Frontier = mode
		s := newService(t, g, cfg)
		s.AddPathRequest(core.Pt(0.5, 4.5), core.Pt(4.5, 2.5), "agent")
		drain(t, s)
		results[mode] = *s.GetWaypointList("agent")
	}
	assert.Equal(t, results[navigation.FrontierScan], results[navigation.FrontierHeap])
}

func TestLoggingAndStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	reg := status.NewRegistry()

	s := newService(t, navigation.NewOccupancy(4, 4), DefaultConfig(), WithLogger(logger), WithStatus(reg))
	s.AddPathRequest(core.Pt(0.5, 0.5), core.Pt(3.5, 3.5), "agent")
	drain(t, s)

	out := buf.String()
	assert.Contains(t, out, `"msg":"path request queued"`)
	assert.Contains(t, out, `"msg":"path search started"`)
	assert.Contains(t, out, `"msg":"path search completed"`)
	assert.Contains(t, out, `"requester":"agent"`)

	assert.EqualValues(t, 1, reg.Ints.Get("path.completed").Load())
	assert.EqualValues(t, 0, reg.Ints.Get("path.queued").Load())
	assert.EqualValues(t, s.Stats().Expanded, reg.Ints.Get("path.expanded").Load())
	assert.Positive(t, reg.Floats.Get("path.tick_max_ms").Get())
}

func TestIdleTickIsNoop(t *testing.T) {
	s := newService(t, navigation.NewOccupancy(3, 3), DefaultConfig())
	s.Tick()
	assert.Zero(t, s.Stats().BusyTicks)
	assert.Equal(t, DefaultConfig(), s.Config())
}
