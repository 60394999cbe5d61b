// Package config provides configuration loading for percolate.
// It supports YAML files and PERCOLATE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config contains all percolate settings.
type Config struct {
	// Grid configures the simulated lattice.
	Grid GridConfig `json:"grid" yaml:"grid"`

	// Trials configures the Monte Carlo driver.
	Trials TrialsConfig `json:"trials" yaml:"trials"`

	// Logging configures operational logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Store configures run history persistence.
	Store StoreConfig `json:"store" yaml:"store"`

	// Output configures generated artefacts.
	Output OutputConfig `json:"output" yaml:"output"`
}

// GridConfig sets the grid dimension.
type GridConfig struct {
	// Size is n for an n×n grid.
	Size int `json:"size" yaml:"size"`
}

// TrialsConfig sets trial count, seeding and parallelism.
type TrialsConfig struct {
	// Count is the number of independent trials T.
	Count int `json:"count" yaml:"count"`

	// Seed is the base RNG seed. 0 selects the built-in default seed.
	Seed int64 `json:"seed" yaml:"seed"`

	// Workers bounds concurrent trials. 0 means GOMAXPROCS.
	Workers int `json:"workers" yaml:"workers"`
}

// LoggingConfig sets log verbosity.
type LoggingConfig struct {
	// Level is "trace", "debug", "info" (default), "warn" or "error".
	Level string `json:"level" yaml:"level"`
}

// StoreConfig sets the SQLite database path. Empty disables recording.
type StoreConfig struct {
	Path string `json:"path" yaml:"path"`
}

// OutputConfig sets optional histogram output.
type OutputConfig struct {
	// Histogram is a PNG path for the threshold histogram. Empty disables it.
	Histogram string `json:"histogram,omitempty" yaml:"histogram,omitempty"`

	// Bins is the histogram bin count. 0 picks √T bins.
	Bins int `json:"bins" yaml:"bins"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Grid:    GridConfig{Size: 200},
		Trials:  TrialsConfig{Count: 100},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds a Config: defaults -> YAML file at path (if non-empty) -> environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile reads a YAML file on top of the defaults, without environment overrides.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	return nil
}

// applyEnv overrides fields from PERCOLATE_* environment variables.
func (c *Config) applyEnv() error {
	ints := []struct {
		key string
		dst *int
	}{
		{"PERCOLATE_GRID_SIZE", &c.Grid.Size},
		{"PERCOLATE_TRIALS", &c.Trials.Count},
		{"PERCOLATE_WORKERS", &c.Trials.Workers},
		{"PERCOLATE_BINS", &c.Output.Bins},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}

	if v := os.Getenv("PERCOLATE_SEED"); v != "" {
		seed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("PERCOLATE_SEED: %w", err)
		}
		c.Trials.Seed = seed
	}
	if v := os.Getenv("PERCOLATE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PERCOLATE_DB"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("PERCOLATE_HISTOGRAM"); v != "" {
		c.Output.Histogram = v
	}

	return nil
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	switch {
	case c.Grid.Size <= 0:
		return fmt.Errorf("%w: grid.size must be positive, got %d", ErrInvalidConfig, c.Grid.Size)
	case c.Trials.Count <= 0:
		return fmt.Errorf("%w: trials.count must be positive, got %d", ErrInvalidConfig, c.Trials.Count)
	case c.Trials.Workers < 0:
		return fmt.Errorf("%w: trials.workers cannot be negative, got %d", ErrInvalidConfig, c.Trials.Workers)
	case c.Output.Bins < 0:
		return fmt.Errorf("%w: output.bins cannot be negative, got %d", ErrInvalidConfig, c.Output.Bins)
	}

	return nil
}
