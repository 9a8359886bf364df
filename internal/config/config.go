// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/avaldin/examgrid/internal/clock"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Display  DisplayConfig  `toml:"display"`
	Export   ExportConfig   `toml:"export"`
}

// ScheduleConfig holds the day window and packing settings.
type ScheduleConfig struct {
	DayStart      string `toml:"day_start"`      // e.g., "08:00"
	DayEnd        string `toml:"day_end"`        // e.g., "20:00"
	BufferMinutes int    `toml:"buffer_minutes"` // minimum gap within a lane
}

// DisplayConfig holds free-stack geometry settings.
type DisplayConfig struct {
	VerticalSpacingPx float64 `toml:"vertical_spacing_px"`
	BaseBlockHeightPx float64 `toml:"base_block_height_px"`
	LineHeightPx      float64 `toml:"line_height_px"`
	AvgCharWidthPx    float64 `toml:"avg_char_width_px"`
	ContentWidthPx    float64 `toml:"content_width_px"`
}

// ExportConfig holds fixed-row geometry settings for print/export.
type ExportConfig struct {
	FixedRowHeightPx float64 `toml:"fixed_row_height_px"`
	RowGapPx         float64 `toml:"row_gap_px"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			DayStart:      "08:00",
			DayEnd:        "20:00",
			BufferMinutes: 0,
		},
		Display: DisplayConfig{
			VerticalSpacingPx: 12,
			BaseBlockHeightPx: 120,
			LineHeightPx:      18,
			AvgCharWidthPx:    7.5,
			ContentWidthPx:    160,
		},
		Export: ExportConfig{
			FixedRowHeightPx: 50,
			RowGapPx:         4,
		},
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "examgrid", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("EXAMGRID_DAY_START"); v != "" {
		cfg.Schedule.DayStart = v
	}
	if v := os.Getenv("EXAMGRID_DAY_END"); v != "" {
		cfg.Schedule.DayEnd = v
	}
	if v := os.Getenv("EXAMGRID_BUFFER_MINUTES"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.Schedule.BufferMinutes = n
		}
	}
	if v := os.Getenv("EXAMGRID_FIXED_ROW_HEIGHT_PX"); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			cfg.Export.FixedRowHeightPx = f
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateTime(c.Schedule.DayStart, "day_start"); err != nil {
		return err
	}
	if err := validateTime(c.Schedule.DayEnd, "day_end"); err != nil {
		return err
	}
	if c.Schedule.DayStart >= c.Schedule.DayEnd {
		return errors.New("day_start must be before day_end")
	}
	if c.Schedule.BufferMinutes < 0 {
		return errors.New("buffer_minutes cannot be negative")
	}

	if c.Display.VerticalSpacingPx < 0 {
		return errors.New("vertical_spacing_px cannot be negative")
	}
	if c.Display.BaseBlockHeightPx <= 0 {
		return errors.New("base_block_height_px must be positive")
	}
	if c.Display.LineHeightPx <= 0 {
		return errors.New("line_height_px must be positive")
	}
	if c.Display.AvgCharWidthPx <= 0 {
		return errors.New("avg_char_width_px must be positive")
	}
	if c.Display.ContentWidthPx <= 0 {
		return errors.New("content_width_px must be positive")
	}

	if c.Export.FixedRowHeightPx <= 0 {
		return errors.New("fixed_row_height_px must be positive")
	}
	if c.Export.RowGapPx < 0 || c.Export.RowGapPx >= c.Export.FixedRowHeightPx {
		return errors.New("row_gap_px must be non-negative and smaller than fixed_row_height_px")
	}

	return nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if _, ok := clock.ParseClock(t); !ok {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

// DayWindow returns the configured day window as minute offsets.
func (c *Config) DayWindow() (startMinutes, endMinutes int) {
	startMinutes, _ = clock.ParseClock(c.Schedule.DayStart)
	endMinutes, _ = clock.ParseClock(c.Schedule.DayEnd)
	return startMinutes, endMinutes
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
