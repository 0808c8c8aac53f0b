package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gridpath/audio"
	"github.com/lixenwraith/gridpath/engine"
	"github.com/lixenwraith/gridpath/maze"
	"github.com/lixenwraith/gridpath/navigation"
	"github.com/lixenwraith/gridpath/parameter"
	"github.com/lixenwraith/gridpath/pathfinding"
)

var (
	configPath = flag.String("config", "", "Pathfinding TOML config file")
	mapPath    = flag.String("map", "", "ASCII occupancy map ('.' empty, '#' occupied); default generates a maze")
	agentCount = flag.Int("agents", parameter.SandboxAgents, "Number of agents")
	braiding   = flag.Float64("braid", parameter.SandboxBraiding, "Maze braiding factor [0.0 - 1.0]")
	seed       = flag.Int64("seed", 0, "Random seed, 0 = time based")
	debugFlag  = flag.Bool("debug", false, "Write JSON logs to logs/sandbox.log")
	muteFlag   = flag.Bool("mute", false, "Start without sound")
)

func main() {
	flag.Parse()

	logFile, logger := setupLogging(*debugFlag, logDir)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(logger); err != nil {
		logger.Error("sandbox failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "pathfind-sandbox: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg := pathfinding.DefaultConfig()
	if *configPath != "" {
		loaded, err := pathfinding.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	guard := crashGuard{screen: screen}
	defer func() { guard.handle(recover()) }()
	defer screen.Fini()
	screen.EnableMouse()

	w, h := screen.Size()
	grid, err := loadGrid(*mapPath, w, h-headerRows-1, *braiding, *seed)
	if err != nil {
		return err
	}

	sound := audio.NewSoundManager()
	if !*muteFlag {
		if err := sound.Initialize(); err != nil {
			// Non-fatal, the sandbox runs silent
			logger.Warn("audio initialization failed", slog.Any("error", err))
		}
	}
	defer sound.Cleanup()

	sb, err := newSandbox(sandboxOptions{
		screen: screen,
		grid:   grid,
		cfg:    cfg,
		agents: *agentCount,
		seed:   *seed,
		sound:  sound,
		clock:  engine.NewPausableClock(engine.NewMonotonicTimeProvider()),
		logger: logger,
	})
	if err != nil {
		return err
	}
	logger.Info("sandbox started",
		slog.Int("width", grid.Width()),
		slog.Int("height", grid.Height()),
		slog.Int("agents", *agentCount),
		slog.Int64("seed", *seed),
	)

	loop := engine.NewFrameLoop(engine.NewMonotonicTimeProvider(), parameter.FrameUpdateInterval, parameter.FrameOverrunTolerance, sb.reg)
	loop.Register(sb.tick)
	loop.Start(guard.Go)
	defer loop.Stop()

	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		select {
		case <-sb.quit:
			logger.Info("sandbox stopped", slog.Int64("frames", loop.Frames()), slog.Int64("overruns", loop.Overruns()))
			return nil
		case sb.input <- ev:
		default:
			// Frame loop is behind; drop input rather than block polling
		}
	}
}

// loadGrid reads an ASCII map, or generates a braided maze sized to the terminal
func loadGrid(path string, w, h int, braid float64, seed int64) (*navigation.Occupancy, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open map: %w", err)
		}
		defer f.Close()
		g, err := navigation.ParseOccupancy(f)
		if err != nil {
			return nil, fmt.Errorf("parse map %s: %w", path, err)
		}
		return g, nil
	}

	res := maze.Generate(maze.Config{
		Width:    w,
		Height:   h,
		Braiding: braid,
		Seed:     seed,
	})
	return navigation.NewOccupancyFromWalls(res.Walls), nil
}
