// Package event defines the scheduled-event input model for examgrid.
package event

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
)

// ScheduledEvent is one exam sitting as delivered by the upstream
// scheduling service. Display holds every field beyond the temporal
// contract verbatim (course code, room, instructor, ...); the layout
// engine never interprets it.
type ScheduledEvent struct {
	ID        string            `json:"id"`
	Date      string            `json:"date"`       // YYYY-MM-DD calendar key
	StartTime string            `json:"start_time"` // "HH:MM"
	EndTime   string            `json:"end_time"`   // "HH:MM"
	Display   map[string]string `json:"display,omitempty"`
}

// UnmarshalJSON decodes an upstream assignment record. The temporal
// fields are lifted out; everything else lands in Display as strings.
func (e *ScheduledEvent) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Display = nil
	for key, value := range raw {
		s := stringify(value)
		switch key {
		case "id":
			e.ID = s
		case "date":
			e.Date = s
		case "start_time":
			e.StartTime = s
		case "end_time":
			e.EndTime = s
		default:
			if s == "" {
				continue
			}
			if e.Display == nil {
				e.Display = make(map[string]string)
			}
			e.Display[key] = s
		}
	}
	return nil
}

// stringify flattens a decoded JSON value to its display string.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// DisplayKeys returns the event's display field names in sorted order,
// for stable user-facing output.
func (e *ScheduledEvent) DisplayKeys() []string {
	keys := make([]string, 0, len(e.Display))
	for k := range e.Display {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Decode reads a JSON array of assignment records from r.
func Decode(r io.Reader) ([]ScheduledEvent, error) {
	var events []ScheduledEvent
	dec := json.NewDecoder(r)
	if err := dec.Decode(&events); err != nil {
		return nil, fmt.Errorf("decoding assignment records: %w", err)
	}
	return events, nil
}

// DayGroup holds one calendar date's events.
type DayGroup struct {
	Date   string
	Events []ScheduledEvent
}

// GroupByDate buckets events into per-date groups, preserving the
// first-seen order of dates. Pure grouping; time-window validation is
// left to the layout engine.
func GroupByDate(events []ScheduledEvent) []DayGroup {
	index := make(map[string]int)
	var groups []DayGroup

	for _, e := range events {
		i, ok := index[e.Date]
		if !ok {
			i = len(groups)
			index[e.Date] = i
			groups = append(groups, DayGroup{Date: e.Date})
		}
		groups[i].Events = append(groups[i].Events, e)
	}
	return groups
}

// SortGroupsByDate orders groups by date ascending. ISO dates sort
// correctly as strings.
func SortGroupsByDate(groups []DayGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date < groups[j].Date
	})
}
