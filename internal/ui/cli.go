// Package ui implements the examgrid command-line interface.
package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avaldin/examgrid/internal/config"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "examgrid",
		Short: "Calendar layout engine for exam timetables",
		Long: `Examgrid computes non-overlapping calendar layouts for exam sittings.

It reads assignment records produced by the scheduling service, packs
each day's events into the minimum number of lanes, and emits
positioned blocks ready for the dashboard view or the PDF exporter.`,
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.layoutCmd())
	a.root.AddCommand(a.previewCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("examgrid %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
