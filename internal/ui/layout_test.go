package ui

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/avaldin/examgrid/internal/config"
	"github.com/avaldin/examgrid/internal/event"
	"github.com/avaldin/examgrid/internal/layout"
)

func TestEngineOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Schedule.DayStart = "09:00"
	cfg.Schedule.DayEnd = "18:00"
	cfg.Schedule.BufferMinutes = 10
	cfg.Export.FixedRowHeightPx = 44

	a := NewApp(cfg)
	opts := a.engineOptions(layout.ModeFixedRow, true)

	if opts.Mode != layout.ModeFixedRow {
		t.Errorf("Mode = %v, want ModeFixedRow", opts.Mode)
	}
	if opts.Window.StartMinutes != 540 || opts.Window.EndMinutes != 1080 {
		t.Errorf("Window = %+v, want 540-1080", opts.Window)
	}
	if opts.BufferMinutes != 10 {
		t.Errorf("BufferMinutes = %d, want 10", opts.BufferMinutes)
	}
	if opts.FixedRowHeight != 44 {
		t.Errorf("FixedRowHeight = %v, want 44", opts.FixedRowHeight)
	}
	if !opts.SortDates {
		t.Error("SortDates not propagated")
	}
}

func TestReadEventsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	content := `[{"id": "a", "date": "2026-06-01", "start_time": "09:00", "end_time": "10:00", "course": "MATH101"}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	events, err := readEvents(path)
	if err != nil {
		t.Fatalf("readEvents() error = %v", err)
	}
	if len(events) != 1 || events[0].ID != "a" || events[0].Display["course"] != "MATH101" {
		t.Errorf("readEvents() = %+v", events)
	}
}

func TestReadEventsMissingFile(t *testing.T) {
	if _, err := readEvents("/nonexistent/events.json"); err == nil {
		t.Error("expected error for missing input file")
	}
}

func TestWriteDaysEmptyEncodesAsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := writeDays(path, nil, false); err != nil {
		t.Fatalf("writeDays() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != "[]" {
		t.Errorf("empty result encoded as %q, want []", got)
	}
}

func TestWriteDaysRoundTrip(t *testing.T) {
	cfg := config.Default()
	a := NewApp(cfg)
	eng := layout.NewEngine(a.engineOptions(layout.ModeFreeStack, true))

	events, err := event.Decode(strings.NewReader(`[
		{"id": "a", "date": "2026-06-01", "start_time": "09:00", "end_time": "10:00"},
		{"id": "b", "date": "2026-06-01", "start_time": "09:30", "end_time": "11:00"}
	]`))
	if err != nil {
		t.Fatal(err)
	}

	res := eng.Layout(events)
	path := filepath.Join(t.TempDir(), "out.json")
	if err := writeDays(path, res.Days, true); err != nil {
		t.Fatalf("writeDays() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded []layout.DayLayout
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid DayLayout JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].LaneCount != 2 || len(decoded[0].Blocks) != 2 {
		t.Errorf("round-tripped layout = %+v", decoded)
	}
}
