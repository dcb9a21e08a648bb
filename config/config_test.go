package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.Solver.MaxIterations)
	assert.Equal(t, 1e-9, cfg.Solver.Epsilon)
	assert.Equal(t, 1e-9, cfg.Solver.FeasibilityTolerance)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 5*time.Second, cfg.Output.VerifyTimeout)
	assert.Len(t, cfg.SolverOptions(), 3)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero iterations", func(c *Config) { c.Solver.MaxIterations = 0 }},
		{"negative epsilon", func(c *Config) { c.Solver.Epsilon = -1 }},
		{"negative feasibility tolerance", func(c *Config) { c.Solver.FeasibilityTolerance = -1e-3 }},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"unknown output format", func(c *Config) { c.Output.Format = "csv" }},
		{"zero verify timeout", func(c *Config) { c.Output.VerifyTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
solver:
  max_iterations: 250
logging:
  level: debug
output:
  format: text
  trace: true
  verify_timeout: 250ms
`), 0o644))

	SetDefaults()
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Solver.MaxIterations)
	assert.Equal(t, 1e-9, cfg.Solver.Epsilon)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Output.Trace)
	assert.False(t, cfg.Output.Verify)
	assert.Equal(t, 250*time.Millisecond, cfg.Output.VerifyTimeout)
}

func TestLoadRejectsInvalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()
	viper.Set("solver.max_iterations", -3)

	_, err := Load()
	assert.Error(t, err)
}
