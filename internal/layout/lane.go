package layout

import (
	"fmt"
	"sort"

	"github.com/avaldin/examgrid/internal/clock"
	"github.com/avaldin/examgrid/internal/event"
)

// item is the per-event packing state threaded through one day's
// pipeline and discarded afterwards.
type item struct {
	ev         event.ScheduledEvent
	index      int // original input position, final tie-break
	start, end int // minutes, clipped to the day window
	lane       int
}

// normalize parses and clips one day's event times. Events that cannot
// be projected (no duration after normalization, or entirely outside
// the window) are dropped with a warning; a single bad record must not
// break the whole day.
func normalize(date string, events []event.ScheduledEvent, win Window, warns *[]Warning) []*item {
	items := make([]*item, 0, len(events))

	for i, ev := range events {
		start, okStart := clock.ParseClock(ev.StartTime)
		end, okEnd := clock.ParseClock(ev.EndTime)
		if !okStart {
			*warns = append(*warns, Warning{
				Kind:    WarnMalformedTime,
				EventID: ev.ID,
				Date:    date,
				Detail:  fmt.Sprintf("start time %q is not HH:MM, using 00:00", ev.StartTime),
			})
		}
		if !okEnd {
			*warns = append(*warns, Warning{
				Kind:    WarnMalformedTime,
				EventID: ev.ID,
				Date:    date,
				Detail:  fmt.Sprintf("end time %q is not HH:MM, using 00:00", ev.EndTime),
			})
		}

		if end <= start {
			*warns = append(*warns, Warning{
				Kind:    WarnMalformedTime,
				EventID: ev.ID,
				Date:    date,
				Detail:  fmt.Sprintf("no duration after normalization (%d-%d), event dropped", start, end),
			})
			continue
		}

		if start < win.StartMinutes || end > win.EndMinutes {
			if end <= win.StartMinutes || start >= win.EndMinutes {
				*warns = append(*warns, Warning{
					Kind:    WarnClippedEvent,
					EventID: ev.ID,
					Date:    date,
					Detail:  "entirely outside the day window, event dropped",
				})
				continue
			}
			*warns = append(*warns, Warning{
				Kind:    WarnClippedEvent,
				EventID: ev.ID,
				Date:    date,
				Detail: fmt.Sprintf("clipped to day window %s-%s",
					clock.FormatClock(win.StartMinutes), clock.FormatClock(win.EndMinutes)),
			})
			start = max(start, win.StartMinutes)
			end = min(end, win.EndMinutes)
		}

		items = append(items, &item{ev: ev, index: i, start: start, end: end})
	}

	return items
}

// assignLanes runs the greedy first-fit interval coloring and returns
// the number of lanes opened. Events are ordered by start ascending,
// longer event first on equal starts, original input order last; that
// fixed ordering makes lane indices reproducible for any permutation
// of the same input. Scanning lanes in index order and taking the
// first whose last event ended at least bufferMinutes before this one
// starts uses exactly as many lanes as the maximum number of
// simultaneously overlapping events.
//
// Items are sorted in place; callers rely on the canonical order for
// the projection pass.
func assignLanes(items []*item, bufferMinutes int) int {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.start != b.start {
			return a.start < b.start
		}
		if a.end != b.end {
			return a.end > b.end
		}
		return a.index < b.index
	})

	// lastEnd[l] is the end of the latest event placed in lane l.
	var lastEnd []int
	for _, it := range items {
		placed := false
		for l, end := range lastEnd {
			if end+bufferMinutes <= it.start {
				it.lane = l
				lastEnd[l] = it.end
				placed = true
				break
			}
		}
		if !placed {
			it.lane = len(lastEnd)
			lastEnd = append(lastEnd, it.end)
		}
	}
	return len(lastEnd)
}
