// Package config loads exdash settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for exdash.
// Values come from an optional YAML file; environment variables always win.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Load   LoadConfig   `yaml:"load"`
	Table  TableConfig  `yaml:"table"`
	Render RenderConfig `yaml:"render"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" env:"EXDASH_LOG_LEVEL" env-default:"info"`
	// Format is "console" (development) or "json" (production).
	Format string `yaml:"format" env:"EXDASH_LOG_FORMAT" env-default:"console"`
}

// LoadConfig controls how sheets become datasets.
type LoadConfig struct {
	// FullSheet reads every row and column instead of the detected data region.
	FullSheet bool `yaml:"full_sheet" env:"EXDASH_FULL_SHEET" env-default:"false"`
	// UsePrintArea reads a sheet's first print area when one is defined.
	UsePrintArea bool `yaml:"use_print_area" env:"EXDASH_USE_PRINT_AREA" env-default:"false"`
}

// TableConfig holds defaults for table edits.
type TableConfig struct {
	NullMarker   string `yaml:"null_marker" env:"EXDASH_NULL_MARKER" env-default:"NULL"`
	SerialColumn string `yaml:"serial_column" env:"EXDASH_SERIAL_COLUMN" env-default:"Serial Number"`
}

// RenderConfig holds chart image settings.
type RenderConfig struct {
	Width  int    `yaml:"width" env:"EXDASH_CHART_WIDTH" env-default:"1024"`
	Height int    `yaml:"height" env:"EXDASH_CHART_HEIGHT" env-default:"640"`
	Format string `yaml:"format" env:"EXDASH_CHART_FORMAT" env-default:"png"`
}

// Load reads configuration from path with environment variable overrides.
// An empty path, or a path that does not exist, reads the environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", path, err)
			}
			return cfg, cfg.Validate()
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks values cleanenv cannot.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q (must be console or json)", c.Log.Format)
	}
	switch c.Render.Format {
	case "png", "svg":
	default:
		return fmt.Errorf("invalid chart format %q (must be png or svg)", c.Render.Format)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("invalid chart size %dx%d", c.Render.Width, c.Render.Height)
	}
	return nil
}
