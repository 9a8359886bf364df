package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Schedule.DayStart != "08:00" {
		t.Errorf("expected day_start 08:00, got %s", cfg.Schedule.DayStart)
	}
	if cfg.Schedule.DayEnd != "20:00" {
		t.Errorf("expected day_end 20:00, got %s", cfg.Schedule.DayEnd)
	}
	if cfg.Schedule.BufferMinutes != 0 {
		t.Errorf("expected buffer_minutes 0, got %d", cfg.Schedule.BufferMinutes)
	}
	if cfg.Display.BaseBlockHeightPx != 120 {
		t.Errorf("expected base_block_height_px 120, got %v", cfg.Display.BaseBlockHeightPx)
	}
	if cfg.Export.FixedRowHeightPx != 50 {
		t.Errorf("expected fixed_row_height_px 50, got %v", cfg.Export.FixedRowHeightPx)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Schedule.DayStart != "08:00" {
		t.Errorf("expected default day_start, got %s", cfg.Schedule.DayStart)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[schedule]
day_start = "09:00"
day_end = "18:00"
buffer_minutes = 10

[display]
vertical_spacing_px = 8.0
base_block_height_px = 90.0

[export]
fixed_row_height_px = 40.0
row_gap_px = 2.0
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Schedule.DayStart != "09:00" {
		t.Errorf("expected day_start 09:00, got %s", cfg.Schedule.DayStart)
	}
	if cfg.Schedule.BufferMinutes != 10 {
		t.Errorf("expected buffer_minutes 10, got %d", cfg.Schedule.BufferMinutes)
	}
	if cfg.Display.VerticalSpacingPx != 8 {
		t.Errorf("expected vertical_spacing_px 8, got %v", cfg.Display.VerticalSpacingPx)
	}
	// Unset fields keep their defaults.
	if cfg.Display.LineHeightPx != 18 {
		t.Errorf("expected default line_height_px 18, got %v", cfg.Display.LineHeightPx)
	}
	if cfg.Export.FixedRowHeightPx != 40 {
		t.Errorf("expected fixed_row_height_px 40, got %v", cfg.Export.FixedRowHeightPx)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	if err := os.WriteFile(configPath, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EXAMGRID_DAY_START", "07:30")
	t.Setenv("EXAMGRID_DAY_END", "21:00")
	t.Setenv("EXAMGRID_BUFFER_MINUTES", "15")

	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Schedule.DayStart != "07:30" {
		t.Errorf("expected day_start 07:30, got %s", cfg.Schedule.DayStart)
	}
	if cfg.Schedule.DayEnd != "21:00" {
		t.Errorf("expected day_end 21:00, got %s", cfg.Schedule.DayEnd)
	}
	if cfg.Schedule.BufferMinutes != 15 {
		t.Errorf("expected buffer_minutes 15, got %d", cfg.Schedule.BufferMinutes)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid defaults", mutate: func(*Config) {}, wantErr: false},
		{name: "bad day_start", mutate: func(c *Config) { c.Schedule.DayStart = "8am" }, wantErr: true},
		{name: "bad day_end", mutate: func(c *Config) { c.Schedule.DayEnd = "25-00" }, wantErr: true},
		{name: "start after end", mutate: func(c *Config) {
			c.Schedule.DayStart = "20:00"
			c.Schedule.DayEnd = "08:00"
		}, wantErr: true},
		{name: "negative buffer", mutate: func(c *Config) { c.Schedule.BufferMinutes = -5 }, wantErr: true},
		{name: "zero block height", mutate: func(c *Config) { c.Display.BaseBlockHeightPx = 0 }, wantErr: true},
		{name: "row gap eats whole row", mutate: func(c *Config) { c.Export.RowGapPx = 50 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDayWindow(t *testing.T) {
	cfg := Default()
	cfg.Schedule.DayStart = "09:00"
	cfg.Schedule.DayEnd = "18:00"

	start, end := cfg.DayWindow()
	if start != 540 || end != 1080 {
		t.Errorf("DayWindow() = (%d, %d), want (540, 1080)", start, end)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sub", "config.toml")

	cfg := Default()
	cfg.Schedule.DayStart = "07:00"
	cfg.Export.RowGapPx = 6

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.Schedule.DayStart != "07:00" {
		t.Errorf("expected day_start 07:00 after reload, got %s", loaded.Schedule.DayStart)
	}
	if loaded.Export.RowGapPx != 6 {
		t.Errorf("expected row_gap_px 6 after reload, got %v", loaded.Export.RowGapPx)
	}
}
