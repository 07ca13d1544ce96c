package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "montyhall.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, 1_000_000, cfg.Simulation.Samples)
	assert.Equal(t, 100_000, cfg.Simulation.BatchSize)
	assert.Equal(t, 1, cfg.Simulation.Workers)
	assert.Equal(t, int64(0), cfg.Simulation.Seed)
	assert.True(t, cfg.Output.ChartEnabled())
	assert.Equal(t, "info", cfg.Output.LogLevel)
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
simulation {
  samples    = 500000
  batch_size = 25000
  workers    = 8
  seed       = 42
}

output {
  chart     = false
  log_level = "debug"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500_000, cfg.Simulation.Samples)
	assert.Equal(t, 25_000, cfg.Simulation.BatchSize)
	assert.Equal(t, 8, cfg.Simulation.Workers)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.False(t, cfg.Output.ChartEnabled())
	assert.Equal(t, "debug", cfg.Output.LogLevel)
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := writeConfig(t, `
simulation {
  samples = 1000
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Simulation.Samples)
	assert.Equal(t, 100_000, cfg.Simulation.BatchSize)
	assert.Equal(t, 1, cfg.Simulation.Workers)
	assert.True(t, cfg.Output.ChartEnabled())
	assert.Equal(t, "info", cfg.Output.LogLevel)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"negative samples", "simulation {\n  samples = -1\n}\n"},
		{"negative batch size", "simulation {\n  batch_size = -5\n}\n"},
		{"negative workers", "simulation {\n  workers = -2\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.contents))
			require.Error(t, err)
		})
	}
}

func TestLoad_RejectsMalformedHCL(t *testing.T) {
	_, err := Load(writeConfig(t, "simulation {\n"))
	require.Error(t, err)
}
