package ui

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avaldin/examgrid/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or create the configuration file",
		Long: `Display the active configuration.

If no config file exists, creates one with default values so it can be
edited by hand.

Example:
  examgrid config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigShow()
		},
	}
}

func runConfigShow() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	printConfig(cfg)
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println(colorHeader.Sprint("[schedule]"))
	fmt.Printf("  day_start      = %q\n", cfg.Schedule.DayStart)
	fmt.Printf("  day_end        = %q\n", cfg.Schedule.DayEnd)
	fmt.Printf("  buffer_minutes = %d\n", cfg.Schedule.BufferMinutes)
	fmt.Println()

	fmt.Println(colorHeader.Sprint("[display]"))
	fmt.Printf("  vertical_spacing_px  = %g\n", cfg.Display.VerticalSpacingPx)
	fmt.Printf("  base_block_height_px = %g\n", cfg.Display.BaseBlockHeightPx)
	fmt.Printf("  line_height_px       = %g\n", cfg.Display.LineHeightPx)
	fmt.Printf("  avg_char_width_px    = %g\n", cfg.Display.AvgCharWidthPx)
	fmt.Printf("  content_width_px     = %g\n", cfg.Display.ContentWidthPx)
	fmt.Println()

	fmt.Println(colorHeader.Sprint("[export]"))
	fmt.Printf("  fixed_row_height_px = %g\n", cfg.Export.FixedRowHeightPx)
	fmt.Printf("  row_gap_px          = %g\n", cfg.Export.RowGapPx)
	fmt.Println()

	fmt.Println(colorMuted.Sprint("Environment overrides: EXAMGRID_DAY_START, EXAMGRID_DAY_END, EXAMGRID_BUFFER_MINUTES, EXAMGRID_FIXED_ROW_HEIGHT_PX"))
}
