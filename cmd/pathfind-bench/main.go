package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/engine"
	"github.com/lixenwraith/gridpath/maze"
	"github.com/lixenwraith/gridpath/navigation"
	"github.com/lixenwraith/gridpath/parameter"
	"github.com/lixenwraith/gridpath/pathfinding"
	"github.com/lixenwraith/gridpath/status"
)

var (
	width     = flag.Int("width", 201, "Maze width")
	height    = flag.Int("height", 101, "Maze height")
	braid     = flag.Float64("braid", 0.5, "Maze braiding factor [0.0 - 1.0]")
	seed      = flag.Int64("seed", 1, "Random seed for maze and requests")
	requests  = flag.Int("requests", 200, "Number of path requests")
	cfgPath   = flag.String("config", "", "Pathfinding TOML config file")
	frontier  = flag.String("frontier", "", "Override frontier: scan|heap")
	heuristic = flag.String("heuristic", "", "Override heuristic: octile|euclidean")
	budget    = flag.Duration("budget", 0, "Override per-tick search budget")
	weight    = flag.Float64("weight", 0, "Override heuristic weight")
	maxFrames = flag.Int64("frames", 1_000_000, "Abort after this many frames")
)

func main() {
	flag.Parse()

	cfg, err := buildConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pathfind-bench: %v\n", err)
		os.Exit(2)
	}

	res := maze.Generate(maze.Config{Width: *width, Height: *height, Braiding: *braid, Seed: *seed})
	grid := navigation.NewOccupancyFromWalls(res.Walls)
	open := grid.EmptyCells()

	reg := status.NewRegistry()
	clock := engine.NewMonotonicTimeProvider()
	svc, err := pathfinding.New[uuid.UUID](grid, cfg,
		pathfinding.WithClock(clock),
		pathfinding.WithStatus(reg),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pathfind-bench: %v\n", err)
		os.Exit(2)
	}

	var waypoints, latestFrame int64
	var worstTicks int
	svc.OnComplete(func(c pathfinding.Completion[uuid.UUID]) {
		waypoints += int64(c.Waypoints)
		worstTicks = max(worstTicks, c.Ticks)
	})

	rng := rand.New(rand.NewSource(*seed))
	pick := func() core.GridPoint { return open[rng.Intn(len(open))].Center() }
	for i := 0; i < *requests; i++ {
		svc.AddPathRequest(pick(), pick(), uuid.New())
	}

	loop := engine.NewFrameLoop(clock, parameter.FrameUpdateInterval, parameter.FrameOverrunTolerance, reg)
	loop.Register(func(frame int64, _ time.Time) {
		svc.Tick()
		latestFrame = frame
	})

	start := time.Now()
	for svc.Pending() > 0 && loop.Frames() < *maxFrames {
		loop.Step()
	}
	elapsed := time.Since(start)

	stats := svc.Stats()
	fmt.Printf("Pathfinding Benchmark Results:\n")
	fmt.Printf("  Grid:          %dx%d (%d open cells)\n", grid.Width(), grid.Height(), len(open))
	fmt.Printf("  Frontier:      %s\n", cfg.Frontier)
	fmt.Printf("  Heuristic:     %s (w=%.2f)\n", cfg.Heuristic, cfg.HeuristicWeight)
	fmt.Printf("  Tick Budget:   %v\n", cfg.TickBudget)
	fmt.Printf("  Requests:      %d (%d found, %d fallback)\n", stats.Requested, stats.Found, stats.Fallbacks)
	fmt.Printf("  Frames:        %d (%d overruns)\n", latestFrame, loop.Overruns())
	fmt.Printf("  Busy Ticks:    %d\n", stats.BusyTicks)
	fmt.Printf("  Worst Request: %d ticks\n", worstTicks)
	fmt.Printf("  Expanded:      %d nodes\n", stats.Expanded)
	fmt.Printf("  Waypoints:     %d\n", waypoints)
	fmt.Printf("  Max Tick:      %v\n", stats.MaxTickTime)
	fmt.Printf("  Total Time:    %v\n", elapsed)
	if stats.Completed > 0 {
		fmt.Printf("  Avg Request:   %v\n", elapsed/time.Duration(stats.Completed))
	}
	if pending := svc.Pending(); pending > 0 {
		fmt.Printf("  Unfinished:    %d\n", pending)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("  Total Alloc:   %d bytes\n", m.TotalAlloc)
	fmt.Printf("  Mallocs:       %d\n", m.Mallocs)

	fmt.Printf("\nMetrics:\n")
	for _, metric := range reg.Snapshot() {
		fmt.Printf("  %s\n", metric)
	}
}

func buildConfig() (pathfinding.Config, error) {
	cfg := pathfinding.DefaultConfig()
	if *cfgPath != "" {
		loaded, err := pathfinding.LoadConfig(*cfgPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if *frontier != "" {
		mode, ok := navigation.ParseFrontierMode(*frontier)
		if !ok {
			return cfg, fmt.Errorf("%w: %q", pathfinding.ErrUnknownFrontier, *frontier)
		}
		cfg.Frontier = mode
	}
	if *heuristic != "" {
		mode, ok := navigation.ParseHeuristicMode(*heuristic)
		if !ok {
			return cfg, fmt.Errorf("%w: %q", pathfinding.ErrUnknownHeuristic, *heuristic)
		}
		cfg.Heuristic = mode
	}
	if *budget > 0 {
		cfg.TickBudget = *budget
	}
	if *weight > 0 {
		cfg.HeuristicWeight = *weight
	}
	return cfg, cfg.Validate()
}
