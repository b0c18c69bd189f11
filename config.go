package gekko2d

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

const (
	BroadPhaseAllPairs = "all-pairs"
	BroadPhaseGrid     = "grid"
)

// Config tunes a World. The zero value is not usable; start from DefaultConfig.
type Config struct {
	Gravity       mgl64.Vec2 `yaml:"gravity"`
	FixedTimestep float64    `yaml:"fixed_timestep"`

	// MaxSteps bounds how many fixed steps a single Update may run.
	MaxSteps int `yaml:"max_steps"`

	Solver       SolverConfig `yaml:"solver"`
	WarmStarting bool         `yaml:"warm_starting"`

	BroadPhase         string  `yaml:"broad_phase"`
	CellSize           float64 `yaml:"cell_size"`
	NarrowPhaseWorkers int     `yaml:"narrow_phase_workers"`

	// ResolveTriggers makes trigger colliders push bodies like solid ones.
	ResolveTriggers bool `yaml:"resolve_triggers"`

	DebugDraw bool `yaml:"debug_draw"`
}

func DefaultConfig() Config {
	return Config{
		Gravity:            mgl64.Vec2{0, -9.8},
		FixedTimestep:      1.0 / 60.0,
		MaxSteps:           5,
		Solver:             DefaultSolverConfig(),
		WarmStarting:       true,
		BroadPhase:         BroadPhaseAllPairs,
		CellSize:           64,
		NarrowPhaseWorkers: 1,
	}
}

// ParseConfig decodes YAML on top of DefaultConfig, so omitted keys keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	switch {
	case !finite(c.Gravity.X()) || !finite(c.Gravity.Y()):
		return invalid("gravity %v is not finite", c.Gravity)
	case !(c.FixedTimestep > 0) || math.IsInf(c.FixedTimestep, 0):
		return invalid("fixed_timestep %v must be > 0", c.FixedTimestep)
	case c.MaxSteps < 1:
		return invalid("max_steps %d must be >= 1", c.MaxSteps)
	case c.Solver.VelocityIterations < 1:
		return invalid("velocity_iterations %d must be >= 1", c.Solver.VelocityIterations)
	case c.Solver.PositionIterations < 0:
		return invalid("position_iterations %d must be >= 0", c.Solver.PositionIterations)
	case !(c.Solver.Slop >= 0):
		return invalid("slop %v must be >= 0", c.Solver.Slop)
	case !(c.Solver.Baumgarte >= 0 && c.Solver.Baumgarte <= 1):
		return invalid("baumgarte %v must be in [0,1]", c.Solver.Baumgarte)
	case !(c.Solver.MaxCorrection > 0):
		return invalid("max_correction %v must be > 0", c.Solver.MaxCorrection)
	case !(c.Solver.VelocityEpsilon >= 0):
		return invalid("velocity_epsilon %v must be >= 0", c.Solver.VelocityEpsilon)
	case !(c.Solver.WarmStartFactor >= 0 && c.Solver.WarmStartFactor <= 1):
		return invalid("warm_start_factor %v must be in [0,1]", c.Solver.WarmStartFactor)
	case c.NarrowPhaseWorkers < 1:
		return invalid("narrow_phase_workers %d must be >= 1", c.NarrowPhaseWorkers)
	}

	switch c.BroadPhase {
	case BroadPhaseAllPairs:
	case BroadPhaseGrid:
		if !(c.CellSize > 0) || math.IsInf(c.CellSize, 0) {
			return invalid("cell_size %v must be > 0", c.CellSize)
		}
	default:
		return invalid("unknown broad_phase %q", c.BroadPhase)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
