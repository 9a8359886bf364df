package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/avaldin/examgrid/internal/clock"
	"github.com/avaldin/examgrid/internal/layout"
)

// Preview styles. Block colors cycle within a lane so adjacent exams
// stay distinguishable.
var (
	previewTitleStyle = lipgloss.NewStyle().Bold(true)
	previewLaneStyle  = lipgloss.NewStyle().Faint(true)
	previewBlockStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	}
)

func (a *App) previewCmd() *cobra.Command {
	var (
		input string
		date  string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print a per-lane diagram of the computed layout",
		Long: `Render each day's lane assignment as text, one line per lane.

This is an inspection aid for checking packings without the dashboard;
the geometry shown is the same the layout command emits.`,
		Example: `  examgrid preview -i assignments.json
  examgrid preview -i assignments.json --date 2026-06-01`,
		RunE: func(_ *cobra.Command, _ []string) error {
			events, err := readEvents(input)
			if err != nil {
				return err
			}

			eng := layout.NewEngine(a.engineOptions(layout.ModeFreeStack, true))
			res := eng.Layout(events)

			reportWarnings(res.Warnings)
			for _, f := range res.Failed {
				fmt.Fprintf(os.Stderr, "%s %v\n", colorFail.Sprint("error:"), f.Err)
			}

			width := termWidth()
			shown := 0
			for _, day := range res.Days {
				if date != "" && day.Date != date {
					continue
				}
				fmt.Println(renderDay(day, width))
				shown++
			}
			if shown == 0 {
				fmt.Println("No days to preview.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "Input file with assignment records (\"-\" for stdin)")
	cmd.Flags().StringVar(&date, "date", "", "Only preview this date (YYYY-MM-DD)")

	return cmd
}

// renderDay builds the textual lane diagram for one day.
func renderDay(day layout.DayLayout, width int) string {
	var sb strings.Builder

	title := fmt.Sprintf("%s  ·  %d exams  ·  %d lanes  ·  %.0fpx",
		day.Date, len(day.Blocks), day.LaneCount, day.TotalHeight)
	sb.WriteString(previewTitleStyle.Render(title))
	sb.WriteByte('\n')

	if len(day.Blocks) == 0 {
		sb.WriteString(previewLaneStyle.Render("  (no exams)"))
		sb.WriteByte('\n')
		return sb.String()
	}

	// Blocks arrive in time order; bucket them per lane.
	lanes := make([][]layout.Block, day.LaneCount)
	for _, b := range day.Blocks {
		lanes[b.Lane] = append(lanes[b.Lane], b)
	}

	for i, lane := range lanes {
		var segments []string
		for j, b := range lane {
			style := previewBlockStyles[j%len(previewBlockStyles)]
			segments = append(segments, style.Render(blockLabel(b)))
		}
		line := previewLaneStyle.Render(fmt.Sprintf("  lane %d  ", i)) + strings.Join(segments, " │ ")
		sb.WriteString(truncateLine(line, width))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// blockLabel shows the projected interval plus a short payload summary.
func blockLabel(b layout.Block) string {
	label := fmt.Sprintf("%s-%s", clock.FormatClock(b.StartMinutes), clock.FormatClock(b.EndMinutes))

	var parts []string
	for _, k := range b.Event.DisplayKeys() {
		parts = append(parts, b.Event.Display[k])
	}
	summary := strings.Join(parts, " ")
	if summary == "" {
		summary = b.Event.ID
	}
	if r := []rune(summary); len(r) > 24 {
		summary = string(r[:23]) + "…"
	}
	if summary != "" {
		label += " " + summary
	}
	return label
}

// truncateLine clips a rendered line to the terminal width.
func truncateLine(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
