package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/lixenwraith/gridpath/audio"
	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/engine"
	"github.com/lixenwraith/gridpath/event"
	"github.com/lixenwraith/gridpath/navigation"
	"github.com/lixenwraith/gridpath/parameter"
	"github.com/lixenwraith/gridpath/pathfinding"
	"github.com/lixenwraith/gridpath/status"
)

// sandbox owns every piece of simulation state; all of it is touched only from the frame loop
type sandbox struct {
	screen tcell.Screen
	grid   *navigation.Occupancy
	cfg    pathfinding.Config
	svc    *pathfinding.Service[uuid.UUID]

	agents  []*agent
	byID    map[uuid.UUID]*agent
	open    []core.CellKey
	rng     *rand.Rand
	showAll bool

	events *event.EventQueue
	router *event.Router[*sandbox]
	sound  *audio.SoundManager
	reg    *status.Registry
	clock  *engine.PausableClock
	logger *slog.Logger

	input    chan tcell.Event
	quit     chan struct{}
	quitOnce sync.Once
	lastTick time.Time
	message  string

	statLastAgent *status.AtomicString
}

type sandboxOptions struct {
	screen tcell.Screen
	grid   *navigation.Occupancy
	cfg    pathfinding.Config
	agents int
	seed   int64
	sound  *audio.SoundManager
	clock  *engine.PausableClock
	logger *slog.Logger
}

func newSandbox(o sandboxOptions) (*sandbox, error) {
	event.InitRegistry()

	s := &sandbox{
		screen: o.screen,
		grid:   o.grid,
		cfg:    o.cfg,
		byID:   make(map[uuid.UUID]*agent),
		open:   o.grid.EmptyCells(),
		rng:    rand.New(rand.NewSource(o.seed)),
		events: event.NewEventQueue(),
		sound:  o.sound,
		reg:    status.NewRegistry(),
		clock:  o.clock,
		logger: o.logger,
		input:  make(chan tcell.Event, 64),
		quit:   make(chan struct{}),
	}
	if len(s.open) == 0 {
		return nil, fmt.Errorf("sandbox: grid has no empty cell")
	}
	s.statLastAgent = s.reg.Strings.Get("agent.last")
	s.lastTick = s.clock.Now()

	s.router = event.NewRouter[*sandbox](s.events)
	s.router.Register(event.HandlerFunc[*sandbox]{
		Types: []event.EventType{event.EventPathReady},
		Fn:    (*sandbox).onPathReady,
	})
	s.router.Register(event.HandlerFunc[*sandbox]{
		Types: []event.EventType{event.EventPathRequested, event.EventGridChanged},
		Fn:    (*sandbox).onTrace,
	})
	if s.sound != nil {
		s.router.Register(audio.ChimeHandler[*sandbox]{Sound: s.sound, Logger: s.logger})
	}

	for i := 0; i < o.agents; i++ {
		a := newAgent(i, s.randomOpen().Center())
		s.agents = append(s.agents, a)
		s.byID[a.id] = a
	}

	if err := s.restartService(); err != nil {
		return nil, err
	}
	return s, nil
}

// restartService rebuilds the pathfinding service; queued and stored paths are dropped
func (s *sandbox) restartService() error {
	svc, err := pathfinding.New[uuid.UUID](s.grid, s.cfg,
		pathfinding.WithLogger(s.logger),
		pathfinding.WithClock(engine.NewMonotonicTimeProvider()),
		pathfinding.WithStatus(s.reg),
	)
	if err != nil {
		return err
	}
	svc.OnComplete(s.onComplete)
	s.svc = svc

	for _, a := range s.agents {
		a.waiting = false
		a.pos = a.pos.Cell().Center()
	}
	s.open = s.grid.EmptyCells()
	return nil
}

// onComplete runs inside Service.Tick; it only records, handlers act on the next dispatch
func (s *sandbox) onComplete(c pathfinding.Completion[uuid.UUID]) {
	s.events.Emit(event.EventPathReady, &event.PathReadyPayload{
		Agent:     c.Requester.String(),
		Found:     c.Found,
		Waypoints: c.Waypoints,
		Expanded:  c.Expanded,
		Ticks:     c.Ticks,
	}, 0)
}

func (s *sandbox) onPathReady(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.PathReadyPayload)
	if !ok {
		return
	}
	id, err := uuid.Parse(p.Agent)
	if err != nil {
		return
	}
	a, ok := s.byID[id]
	if !ok {
		return
	}
	a.waiting = false
	a.found = p.Found
	s.statLastAgent.Store(a.Short())

	kind := event.SoundFound
	if !p.Found {
		kind = event.SoundFallback
	}
	s.events.Emit(event.EventSoundRequest, &event.SoundRequestPayload{Kind: kind}, ev.Frame)
}

func (s *sandbox) onTrace(ev event.GameEvent) {
	s.logger.Debug("sandbox event", slog.String("type", event.GetEventName(ev.Type)), slog.Int64("frame", ev.Frame))
}

func (s *sandbox) randomOpen() core.CellKey {
	return s.open[s.rng.Intn(len(s.open))]
}

// tick is the single frame callback
func (s *sandbox) tick(frame int64, _ time.Time) {
	for drained := false; !drained; {
		select {
		case ev := <-s.input:
			s.handleInput(ev, frame)
		default:
			drained = true
		}
	}

	now := s.clock.Now()
	dt := now.Sub(s.lastTick)
	s.lastTick = now

	if !s.clock.IsPaused() {
		s.svc.Tick()
		s.moveAgents(dt, frame)
	}
	s.router.DispatchAll(s)
	s.draw()
}

func (s *sandbox) moveAgents(dt time.Duration, frame int64) {
	dist := dt.Seconds() / parameter.SandboxStepInterval.Seconds()
	for _, a := range s.agents {
		if a.waiting {
			continue
		}
		list := s.svc.GetWaypointList(a.id)
		if !a.advance(list, dist) {
			continue
		}

		// Arrived or holding position: pick the next goal
		a.goal = s.randomOpen().Center()
		a.waiting = true
		s.svc.AddPathRequest(a.pos, a.goal, a.id)
		s.events.Emit(event.EventPathRequested, &event.PathRequestedPayload{
			Agent: a.id.String(),
			Start: a.pos,
			Goal:  a.goal,
		}, frame)
	}
}

func (s *sandbox) handleInput(ev tcell.Event, frame int64) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			s.stop()
			return
		}
		if ev.Key() != tcell.KeyRune {
			return
		}
		switch ev.Rune() {
		case 'q', 'Q':
			s.stop()
		case 'p':
			if s.clock.Toggle() {
				s.message = "paused"
			} else {
				s.message = "running"
			}
		case 'm':
			if s.sound != nil && s.sound.ToggleMute() {
				s.message = "muted"
			} else {
				s.message = "sound on"
			}
		case 'r':
			s.cfg.Rubberband = !s.cfg.Rubberband
			s.reconfigure(fmt.Sprintf("rubberband %v", s.cfg.Rubberband))
		case 's':
			s.cfg.Smooth = !s.cfg.Smooth
			s.reconfigure(fmt.Sprintf("smooth %v", s.cfg.Smooth))
		case 'h':
			s.cfg.Heuristic = (s.cfg.Heuristic + 1) % 2
			s.reconfigure("heuristic " + s.cfg.Heuristic.String())
		case 'f':
			s.cfg.Frontier = (s.cfg.Frontier + 1) % 2
			s.reconfigure("frontier " + s.cfg.Frontier.String())
		case 'v':
			s.showAll = !s.showAll
		}

	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return
		}
		x, y := ev.Position()
		cell := cellOf(x, y)
		state := s.grid.Cell(cell.Row, cell.Col)
		if state == navigation.CellInvalid || s.agentAt(cell) {
			return
		}
		occupied := state == navigation.CellEmpty
		s.grid.SetOccupied(cell.Row, cell.Col, occupied)
		s.events.Emit(event.EventGridChanged, &event.GridChangedPayload{Cell: cell, Occupied: occupied}, frame)
		s.reconfigure("grid edited at " + cell.String())

	case *tcell.EventResize:
		s.screen.Sync()
	}
}

func (s *sandbox) agentAt(cell core.CellKey) bool {
	for _, a := range s.agents {
		if a.pos.Cell() == cell {
			return true
		}
	}
	return false
}

func (s *sandbox) reconfigure(msg string) {
	if err := s.restartService(); err != nil {
		s.message = err.Error()
		s.logger.Error("service restart failed", slog.Any("error", err))
		return
	}
	s.message = msg
	s.logger.Info("service restarted", slog.String("reason", msg))
}

func (s *sandbox) stop() {
	s.quitOnce.Do(func() {
		close(s.quit)
		// Wake PollEvent in main
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
}
