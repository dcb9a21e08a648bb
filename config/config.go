package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"
	"q.log/lpsolve/simplex"
)

// Config represents the complete lpsolve configuration
type Config struct {
	Solver  SolverConfig  `mapstructure:"solver"`
	Logging LoggingConfig `mapstructure:"logging"`
	Output  OutputConfig  `mapstructure:"output"`
}

// SolverConfig controls the numeric behavior of the simplex solver
type SolverConfig struct {
	// MaxIterations caps the pivots of each phase (default: 100)
	MaxIterations int `mapstructure:"max_iterations"`
	// Epsilon is the tolerance of the optimality, unboundedness and ratio tests (default: 1e-9)
	Epsilon float64 `mapstructure:"epsilon"`
	// FeasibilityTolerance is the largest phase 1 objective still accepted as feasible (default: 1e-9)
	FeasibilityTolerance float64 `mapstructure:"feasibility_tolerance"`
}

// LoggingConfig controls diagnostic logging
type LoggingConfig struct {
	// Level is the minimum level logged
	// Options: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Format is the log line encoding
	// Options: "text", "json"
	Format string `mapstructure:"format"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	// Format of the result
	// Options: "json", "yaml", "text"
	Format string `mapstructure:"format"`
	// Trace includes the iteration records in the output
	Trace bool `mapstructure:"trace"`
	// Verify cross-checks the result against the reference solver
	Verify bool `mapstructure:"verify"`
	// VerifyTimeout bounds the reference solve; past it the check is
	// reported inconclusive (default: 5s)
	VerifyTimeout time.Duration `mapstructure:"verify_timeout"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			MaxIterations:        simplex.DefaultMaxIterations,
			Epsilon:              simplex.DefaultEpsilon,
			FeasibilityTolerance: simplex.DefaultFeasibilityTolerance,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			Format:        "json",
			VerifyTimeout: 5 * time.Second,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("solver.max_iterations", defaults.Solver.MaxIterations)
	viper.SetDefault("solver.epsilon", defaults.Solver.Epsilon)
	viper.SetDefault("solver.feasibility_tolerance", defaults.Solver.FeasibilityTolerance)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.format", defaults.Logging.Format)

	viper.SetDefault("output.format", defaults.Output.Format)
	viper.SetDefault("output.trace", defaults.Output.Trace)
	viper.SetDefault("output.verify", defaults.Output.Verify)
	viper.SetDefault("output.verify_timeout", defaults.Output.VerifyTimeout)
}

// Load unmarshals the current viper state into a validated Config
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the solver cannot use
func (c *Config) Validate() error {
	if c.Solver.MaxIterations <= 0 {
		return fmt.Errorf("solver.max_iterations must be positive, got %d", c.Solver.MaxIterations)
	}
	if !nonNegative(c.Solver.Epsilon) {
		return fmt.Errorf("solver.epsilon must be finite and non-negative, got %v", c.Solver.Epsilon)
	}
	if !nonNegative(c.Solver.FeasibilityTolerance) {
		return fmt.Errorf("solver.feasibility_tolerance must be finite and non-negative, got %v", c.Solver.FeasibilityTolerance)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	switch c.Output.Format {
	case "json", "yaml", "text":
	default:
		return fmt.Errorf("output.format must be json, yaml or text, got %q", c.Output.Format)
	}
	if c.Output.VerifyTimeout <= 0 {
		return fmt.Errorf("output.verify_timeout must be positive, got %v", c.Output.VerifyTimeout)
	}
	return nil
}

// SolverOptions returns the simplex options for this configuration
func (c *Config) SolverOptions() []simplex.Option {
	return []simplex.Option{
		simplex.WithMaxIterations(c.Solver.MaxIterations),
		simplex.WithEpsilon(c.Solver.Epsilon),
		simplex.WithFeasibilityTolerance(c.Solver.FeasibilityTolerance),
	}
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
