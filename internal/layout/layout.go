// Package layout computes non-overlapping per-day arrangements of
// scheduled events: greedy lane assignment, block height estimation,
// and projection into renderable geometry.
package layout

import (
	"errors"
	"fmt"

	"github.com/avaldin/examgrid/internal/clock"
	"github.com/avaldin/examgrid/internal/event"
)

// Layout errors.
var (
	ErrInvalidWindow = errors.New("day end must be after day start")
)

// Mode selects how blocks are positioned vertically.
type Mode int

const (
	// ModeFreeStack gives each block a content-derived height and
	// stacks blocks cumulatively within their lane (interactive view).
	ModeFreeStack Mode = iota
	// ModeFixedRow gives every lane a uniform row height (print/export).
	ModeFixedRow
)

// ParseMode converts a mode name ("stack" or "fixed") to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "stack":
		return ModeFreeStack, nil
	case "fixed":
		return ModeFixedRow, nil
	default:
		return 0, fmt.Errorf("unknown layout mode %q (want \"stack\" or \"fixed\")", s)
	}
}

// WarningKind classifies recoverable layout problems.
type WarningKind string

const (
	// WarnMalformedTime marks an unparsable or inverted time range.
	WarnMalformedTime WarningKind = "malformed_time"
	// WarnClippedEvent marks an event outside the day window.
	WarnClippedEvent WarningKind = "clipped_event"
)

// Warning records a recoverable problem with a single event. Warnings
// accumulate alongside results and never abort a day's layout.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	EventID string      `json:"event_id"`
	Date    string      `json:"date,omitempty"`
	Detail  string      `json:"detail"`
}

// Window is a day's visible time span in minutes since midnight.
type Window struct {
	StartMinutes int
	EndMinutes   int
}

// Minutes returns the window length.
func (w Window) Minutes() int {
	return w.EndMinutes - w.StartMinutes
}

// Default geometry values, matching the dashboard's historical CSS.
const (
	DefaultVerticalSpacing = 12.0
	DefaultBaseBlockHeight = 120.0
	DefaultLineHeight      = 18.0
	DefaultAvgCharWidth    = 7.5
	DefaultContentWidth    = 160.0
	DefaultFixedRowHeight  = 50.0
	DefaultRowGap          = 4.0
)

// Options holds engine configuration.
type Options struct {
	Mode   Mode
	Window Window // Zero value means the full 24h day.

	// DayWindows overrides the window for specific dates, so one
	// misconfigured date cannot fail the whole batch.
	DayWindows map[string]Window

	// BufferMinutes is the minimum gap between two events sharing a
	// lane, beyond strict non-overlap.
	BufferMinutes int

	// Free-stack geometry. Zero values fall back to the defaults above.
	VerticalSpacing float64
	BaseBlockHeight float64
	LineHeight      float64
	AvgCharWidth    float64
	ContentWidth    float64

	// Fixed-row geometry.
	FixedRowHeight float64
	RowGap         float64

	// Estimator overrides the default text heuristic (free-stack only).
	Estimator HeightEstimator

	// SortDates orders the batch result by date instead of first-seen
	// input order.
	SortDates bool
}

// Block is a scheduled event enriched with its computed position.
// StartMinutes/EndMinutes are the projected interval, after clipping
// to the day window.
type Block struct {
	Event        event.ScheduledEvent `json:"event"`
	Lane         int                  `json:"lane"`
	StartMinutes int                  `json:"start_minutes"`
	EndMinutes   int                  `json:"end_minutes"`
	Top          float64              `json:"top"`
	Height       float64              `json:"height"`
	LeftPercent  float64              `json:"left_percent"`
	WidthPercent float64              `json:"width_percent"`
}

// DayLayout is the positioned arrangement for a single calendar date.
// Renderers apply the block geometry directly; no further computation
// is required.
type DayLayout struct {
	Date        string  `json:"date"`
	Blocks      []Block `json:"blocks"`
	LaneCount   int     `json:"lane_count"`
	TotalHeight float64 `json:"total_height"`
}

// DayError pairs a date with the error that prevented its layout.
type DayError struct {
	Date string
	Err  error
}

// Result is the outcome of a batch layout: one DayLayout per distinct
// date that succeeded, accumulated warnings, and per-day failures.
type Result struct {
	Days     []DayLayout
	Warnings []Warning
	Failed   []DayError
}

// Engine computes day layouts. It is a pure computation: every call
// receives fresh lane state and no state is shared across invocations.
type Engine struct {
	opts      Options
	estimator HeightEstimator
}

// NewEngine creates an Engine, filling unset options with defaults.
func NewEngine(opts Options) *Engine {
	if opts.Window == (Window{}) {
		opts.Window = Window{StartMinutes: 0, EndMinutes: clock.MinutesPerDay}
	}
	if opts.VerticalSpacing <= 0 {
		opts.VerticalSpacing = DefaultVerticalSpacing
	}
	if opts.BaseBlockHeight <= 0 {
		opts.BaseBlockHeight = DefaultBaseBlockHeight
	}
	if opts.LineHeight <= 0 {
		opts.LineHeight = DefaultLineHeight
	}
	if opts.AvgCharWidth <= 0 {
		opts.AvgCharWidth = DefaultAvgCharWidth
	}
	if opts.ContentWidth <= 0 {
		opts.ContentWidth = DefaultContentWidth
	}
	if opts.FixedRowHeight <= 0 {
		opts.FixedRowHeight = DefaultFixedRowHeight
	}
	if opts.RowGap < 0 || opts.RowGap >= opts.FixedRowHeight {
		opts.RowGap = DefaultRowGap
	}

	estimator := opts.Estimator
	if estimator == nil {
		estimator = TextHeuristic{
			BaseHeight:   opts.BaseBlockHeight,
			LineHeight:   opts.LineHeight,
			AvgCharWidth: opts.AvgCharWidth,
		}
	}

	return &Engine{opts: opts, estimator: estimator}
}

// windowFor returns the day window for a date, honoring overrides.
func (e *Engine) windowFor(date string) Window {
	if w, ok := e.opts.DayWindows[date]; ok {
		return w
	}
	return e.opts.Window
}

// Layout partitions events by date and computes one DayLayout per
// distinct date. A failed day never affects the others.
func (e *Engine) Layout(events []event.ScheduledEvent) Result {
	groups := event.GroupByDate(events)
	if e.opts.SortDates {
		event.SortGroupsByDate(groups)
	}

	var res Result
	for _, g := range groups {
		day, warns, err := e.LayoutDay(g.Date, g.Events)
		res.Warnings = append(res.Warnings, warns...)
		if err != nil {
			res.Failed = append(res.Failed, DayError{Date: g.Date, Err: err})
			continue
		}
		res.Days = append(res.Days, day)
	}
	return res
}

// LayoutDay computes the arrangement for a single date. A day with no
// usable events yields an empty DayLayout, not an error; only an
// invalid window is fatal.
func (e *Engine) LayoutDay(date string, events []event.ScheduledEvent) (DayLayout, []Warning, error) {
	win := e.windowFor(date)
	if win.Minutes() <= 0 {
		return DayLayout{}, nil, fmt.Errorf("day %s: %w", date, ErrInvalidWindow)
	}

	var warns []Warning
	items := normalize(date, events, win, &warns)
	laneCount := assignLanes(items, e.opts.BufferMinutes)
	blocks, totalHeight := e.project(items, win, laneCount)

	return DayLayout{
		Date:        date,
		Blocks:      blocks,
		LaneCount:   laneCount,
		TotalHeight: totalHeight,
	}, warns, nil
}
