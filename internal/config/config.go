// Package config loads run configuration from an HCL file. All settings are
// optional; a missing file or missing block falls back to defaults, and CLI
// flags override whatever the file provides.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete run configuration.
type Config struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Output     *OutputSettings     `hcl:"output,block"`
}

// SimulationSettings controls the sampling run.
type SimulationSettings struct {
	Samples   int   `hcl:"samples,optional"`
	BatchSize int   `hcl:"batch_size,optional"`
	Workers   int   `hcl:"workers,optional"`
	Seed      int64 `hcl:"seed,optional"`
}

// OutputSettings controls presentation.
type OutputSettings struct {
	// Chart is a pointer so "absent" and "chart = false" can be told apart.
	Chart    *bool  `hcl:"chart,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// ChartEnabled reports whether the bar chart should be rendered.
func (o *OutputSettings) ChartEnabled() bool {
	return o.Chart == nil || *o.Chart
}

// Default returns the configuration used when no file is present:
// one million trials in batches of 100k on a single worker, with the seed
// derived from the clock at run time.
func Default() *Config {
	return &Config{
		Simulation: &SimulationSettings{
			Samples:   1_000_000,
			BatchSize: 100_000,
			Workers:   1,
			Seed:      0,
		},
		Output: &OutputSettings{
			LogLevel: "info",
		},
	}
}

// Load reads configuration from an HCL file, applying defaults for anything
// the file leaves out. A missing file is not an error.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", filename, diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %s", filename, diags.Error())
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &cfg, nil
}

// Validate rejects settings the simulation itself would refuse.
func (c *Config) Validate() error {
	if c.Simulation.Samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d", c.Simulation.Samples)
	}
	if c.Simulation.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.Simulation.BatchSize)
	}
	if c.Simulation.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Simulation.Workers)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Simulation == nil {
		cfg.Simulation = def.Simulation
	} else {
		if cfg.Simulation.Samples == 0 {
			cfg.Simulation.Samples = def.Simulation.Samples
		}
		if cfg.Simulation.BatchSize == 0 {
			cfg.Simulation.BatchSize = def.Simulation.BatchSize
		}
		if cfg.Simulation.Workers == 0 {
			cfg.Simulation.Workers = def.Simulation.Workers
		}
	}
	if cfg.Output == nil {
		cfg.Output = def.Output
	} else if cfg.Output.LogLevel == "" {
		cfg.Output.LogLevel = def.Output.LogLevel
	}
}
