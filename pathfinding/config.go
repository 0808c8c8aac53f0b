package pathfinding

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/gridpath/navigation"
	"github.com/lixenwraith/gridpath/parameter"
)

var (
	ErrNilGrid          = errors.New("pathfinding: grid is nil")
	ErrInvalidWeight    = errors.New("pathfinding: heuristic weight must be positive and finite")
	ErrInvalidBudget    = errors.New("pathfinding: tick budget must be positive")
	ErrUnknownHeuristic = errors.New("pathfinding: unknown heuristic")
	ErrUnknownFrontier  = errors.New("pathfinding: unknown frontier")
	ErrUnknownConfigKey = errors.New("pathfinding: unknown config key")
)

// Config is fixed at construction time
type Config struct {
	Rubberband      bool
	Smooth          bool
	Heuristic       navigation.HeuristicMode
	HeuristicWeight float64
	TickBudget      time.Duration
	Frontier        navigation.FrontierMode
}

// DefaultConfig returns rubberbanding on, smoothing off, octile, weight 1.01, 5ms budget
func DefaultConfig() Config {
	h, _ := navigation.ParseHeuristicMode(parameter.NavHeuristic)
	f, _ := navigation.ParseFrontierMode(parameter.NavFrontier)
	return Config{
		Rubberband:      parameter.NavRubberband,
		Smooth:          parameter.NavSmooth,
		Heuristic:       h,
		HeuristicWeight: parameter.NavHeuristicWeight,
		TickBudget:      parameter.NavTickBudget,
		Frontier:        f,
	}
}

// Validate reports the first invalid field
func (c Config) Validate() error {
	if c.HeuristicWeight <= 0 || math.IsNaN(c.HeuristicWeight) || math.IsInf(c.HeuristicWeight, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, c.HeuristicWeight)
	}
	if c.TickBudget <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidBudget, c.TickBudget)
	}
	if c.Heuristic != navigation.HeuristicOctile && c.Heuristic != navigation.HeuristicEuclidean {
		return fmt.Errorf("%w: %v", ErrUnknownHeuristic, c.Heuristic)
	}
	if c.Frontier != navigation.FrontierScan && c.Frontier != navigation.FrontierHeap {
		return fmt.Errorf("%w: %v", ErrUnknownFrontier, c.Frontier)
	}
	return nil
}

// searchOptions maps the config onto engine options
func (c Config) searchOptions() navigation.Options {
	return navigation.Options{
		Heuristic: c.Heuristic,
		Weight:    c.HeuristicWeight,
		Frontier:  c.Frontier,
	}
}

// configFile is the TOML shape; absent keys keep their defaults
type configFile struct {
	Rubberband        *bool    `toml:"rubberband"`
	Smooth            *bool    `toml:"smooth"`
	Heuristic         *string  `toml:"heuristic"`
	HeuristicWeight   *float64 `toml:"heuristic_weight"`
	TickBudgetSeconds *float64 `toml:"tick_budget_seconds"`
	Frontier          *string  `toml:"frontier"`
}

// LoadConfig reads a TOML file over DefaultConfig and validates the result
func LoadConfig(path string) (Config, error) {
	var file configFile
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return Config{}, fmt.Errorf("load config %s: %w: %v", path, ErrUnknownConfigKey, keys)
	}

	cfg, err := file.apply(DefaultConfig())
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func (f configFile) apply(cfg Config) (Config, error) {
	if f.Rubberband != nil {
		cfg.Rubberband = *f.Rubberband
	}
	if f.Smooth != nil {
		cfg.Smooth = *f.Smooth
	}
	if f.Heuristic != nil {
		h, ok := navigation.ParseHeuristicMode(*f.Heuristic)
		if !ok {
			return cfg, fmt.Errorf("%w: %q", ErrUnknownHeuristic, *f.Heuristic)
		}
		cfg.Heuristic = h
	}
	if f.HeuristicWeight != nil {
		cfg.HeuristicWeight = *f.HeuristicWeight
	}
	if f.TickBudgetSeconds != nil {
		cfg.TickBudget = time.Duration(math.Round(*f.TickBudgetSeconds * float64(time.Second)))
	}
	if f.Frontier != nil {
		fr, ok := navigation.ParseFrontierMode(*f.Frontier)
		if !ok {
			return cfg, fmt.Errorf("%w: %q", ErrUnknownFrontier, *f.Frontier)
		}
		cfg.Frontier = fr
	}
	return cfg, nil
}
