package ui

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avaldin/examgrid/internal/event"
	"github.com/avaldin/examgrid/internal/layout"
)

func (a *App) layoutCmd() *cobra.Command {
	var (
		input     string
		output    string
		mode      string
		sortDates bool
		pretty    bool
		noColor   bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute positioned day layouts from assignment records",
		Long: `Read a JSON array of assignment records (id, date, start_time,
end_time plus arbitrary display fields), pack each day's events into
lanes, and write the positioned layouts as JSON.

Warnings about malformed or clipped events go to stderr; they never
abort the layout. A day with an invalid window fails alone.`,
		Example: `  examgrid layout -i assignments.json -o layout.json
  curl -s $SOLVER_URL/assignments | examgrid layout --mode fixed --pretty`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			m, err := layout.ParseMode(mode)
			if err != nil {
				return err
			}

			events, err := readEvents(input)
			if err != nil {
				return err
			}

			eng := layout.NewEngine(a.engineOptions(m, sortDates))
			res := eng.Layout(events)

			reportWarnings(res.Warnings)

			if err := writeDays(output, res.Days, pretty); err != nil {
				return err
			}

			if len(res.Failed) > 0 {
				for _, f := range res.Failed {
					fmt.Fprintf(os.Stderr, "%s %v\n", colorFail.Sprint("error:"), f.Err)
				}
				return fmt.Errorf("layout failed for %d day(s)", len(res.Failed))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "Input file with assignment records (\"-\" for stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "Output file for day layouts (\"-\" for stdout)")
	cmd.Flags().StringVar(&mode, "mode", "stack", "Layout mode: \"stack\" (interactive view) or \"fixed\" (print/export)")
	cmd.Flags().BoolVar(&sortDates, "sort-dates", false, "Order output days by date instead of input order")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the JSON output")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored warnings")

	return cmd
}

// engineOptions maps the loaded configuration onto engine options.
func (a *App) engineOptions(mode layout.Mode, sortDates bool) layout.Options {
	start, end := a.config.DayWindow()
	return layout.Options{
		Mode:            mode,
		Window:          layout.Window{StartMinutes: start, EndMinutes: end},
		BufferMinutes:   a.config.Schedule.BufferMinutes,
		VerticalSpacing: a.config.Display.VerticalSpacingPx,
		BaseBlockHeight: a.config.Display.BaseBlockHeightPx,
		LineHeight:      a.config.Display.LineHeightPx,
		AvgCharWidth:    a.config.Display.AvgCharWidthPx,
		ContentWidth:    a.config.Display.ContentWidthPx,
		FixedRowHeight:  a.config.Export.FixedRowHeightPx,
		RowGap:          a.config.Export.RowGapPx,
		SortDates:       sortDates,
	}
}

// readEvents decodes assignment records from a file or stdin.
func readEvents(path string) ([]event.ScheduledEvent, error) {
	if path == "" || path == "-" {
		return event.Decode(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer func() { _ = f.Close() }()

	return event.Decode(f)
}

// writeDays encodes the day layouts to a file or stdout.
func writeDays(path string, days []layout.DayLayout, pretty bool) error {
	if days == nil {
		days = []layout.DayLayout{} // encode as [], not null
	}

	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(days, "", "  ")
	} else {
		data, err = json.Marshal(days)
	}
	if err != nil {
		return fmt.Errorf("encoding day layouts: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// reportWarnings prints accumulated layout warnings to stderr.
func reportWarnings(warns []layout.Warning) {
	for _, w := range warns {
		label := colorWarn.Sprintf("warning[%s]:", w.Kind)
		subject := w.EventID
		if subject == "" {
			subject = "(no id)"
		}
		fmt.Fprintf(os.Stderr, "%s %s %s: %s\n", label, w.Date, subject, w.Detail)
	}
}
