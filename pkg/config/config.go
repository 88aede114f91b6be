// Package config provides configuration loading and management for sliceareaplot.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"sliceareaplot/internal/models"
	"sliceareaplot/pkg/slicearea"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the application configuration loaded from YAML
type Config struct {
	// Sweep parameters
	Sweep struct {
		// Axis is the sweep axis: axial, coronal or sagittal
		Axis models.SweepAxis `yaml:"axis"`

		// Padding selects how segment values are placed in the full series:
		// "legacy" (first-1 leading zeros) or "aligned"
		Padding string `yaml:"padding"`
	} `yaml:"sweep"`

	// Processing parameters
	Processing struct {
		// Workers is how many segments are computed concurrently
		Workers int `yaml:"workers"`
	} `yaml:"processing"`

	// Volume parameters for image-stack input
	Volume struct {
		// Spacing is the voxel size along x, y and z in mm
		Spacing [3]float64 `yaml:"spacing"`

		// Threshold is the normalised pixel intensity above which a mask
		// pixel counts as foreground
		Threshold float64 `yaml:"threshold"`

		// Segments optionally fixes the order of segment directories
		Segments []string `yaml:"segments"`
	} `yaml:"volume"`

	// Output parameters
	Output struct {
		// CSV is the path of the series table, empty to skip
		CSV string `yaml:"csv"`

		// Plot is the path of the PNG chart, empty to skip
		Plot string `yaml:"plot"`

		// HTML is the path of the interactive chart, empty to skip
		HTML string `yaml:"html"`

		// PlotTitle is the chart title
		PlotTitle string `yaml:"plotTitle"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Sweep.Axis = models.Axial
	cfg.Sweep.Padding = slicearea.PadLegacy.String()

	cfg.Processing.Workers = runtime.NumCPU()

	cfg.Volume.Spacing = [3]float64{1.0, 1.0, 1.0}
	cfg.Volume.Threshold = 0.5

	cfg.Output.CSV = "slice_area.csv"
	cfg.Output.PlotTitle = "Segment cross-sectional area"
	cfg.Output.Verbose = true

	return cfg
}

// PaddingMode returns the parsed padding setting.
func (c *Config) PaddingMode() (slicearea.PaddingMode, error) {
	return slicearea.ParsePaddingMode(c.Sweep.Padding)
}

// Validate checks the configuration for values the pipeline cannot use.
func (c *Config) Validate() error {
	if !c.Sweep.Axis.Valid() {
		return fmt.Errorf("sweep axis %v: %w", c.Sweep.Axis, models.ErrInvalidAxis)
	}
	if _, err := c.PaddingMode(); err != nil {
		return err
	}
	for i, s := range c.Volume.Spacing {
		if s <= 0 {
			return fmt.Errorf("volume spacing[%d] = %g must be positive: %w", i, s, ErrInvalidConfig)
		}
	}
	if c.Volume.Threshold < 0 || c.Volume.Threshold >= 1 {
		return fmt.Errorf("volume threshold %g must be in [0, 1): %w", c.Volume.Threshold, ErrInvalidConfig)
	}
	if c.Processing.Workers < 0 {
		return fmt.Errorf("processing workers %d must not be negative: %w", c.Processing.Workers, ErrInvalidConfig)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
