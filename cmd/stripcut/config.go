package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Config holds the on-disk defaults for the CLI. Every value can be
// overridden by a flag.
type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Pages  PagesConfig  `toml:"pages"`
	Output OutputConfig `toml:"output"`
}

// ScanConfig groups the gap-detection settings.
type ScanConfig struct {
	Sensitivity     float64 `toml:"sensitivity"`
	Step            int     `toml:"step"`
	MultilineWindow int     `toml:"multiline_window"`
}

// PagesConfig groups the page-geometry settings.
type PagesConfig struct {
	MinHeight int `toml:"min_height"`
	MaxHeight int `toml:"max_height"`
	Width     int `toml:"width"`
}

// OutputConfig groups the export settings.
type OutputConfig struct {
	Format      string `toml:"format"`
	JpegQuality int    `toml:"jpeg_quality"`
}

// NewDefaultConfig returns the built-in defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Sensitivity:     0.1,
			Step:            1,
			MultilineWindow: 3,
		},
		Pages: PagesConfig{
			MinHeight: 1000,
			MaxHeight: 2000,
		},
		Output: OutputConfig{
			Format:      "png",
			JpegQuality: 90,
		},
	}
}

// DefaultConfigPath returns the XDG location of the config file.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// LoadConfigFromFile reads the TOML config at path, falling back to the
// built-in defaults when the file does not exist.
func LoadConfigFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil // no config file, return defaults
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	return config, nil
}
