package layout

import (
	"math"
	"unicode/utf8"

	"github.com/avaldin/examgrid/internal/event"
)

// HeightEstimator derives a display block's vertical extent from the
// event's textual payload and an assumed content width in pixels. It
// is an estimate, not a text-measurement oracle: implementations must
// be monotonic (more text never shrinks the result) and respect the
// engine's configured minimum height.
type HeightEstimator interface {
	EstimateHeight(ev event.ScheduledEvent, contentWidth float64) float64
}

// TextHeuristic is the default estimator. Each display field
// contributes the number of lines its text would wrap to at the
// assumed width, at AvgCharWidth pixels per character.
type TextHeuristic struct {
	BaseHeight   float64
	LineHeight   float64
	AvgCharWidth float64
}

// EstimateHeight returns BaseHeight plus one LineHeight per estimated
// wrapped line across all display fields.
func (h TextHeuristic) EstimateHeight(ev event.ScheduledEvent, contentWidth float64) float64 {
	if contentWidth <= 0 {
		return h.BaseHeight
	}

	lines := 0
	for _, text := range ev.Display {
		if text == "" {
			continue
		}
		width := float64(utf8.RuneCountInString(text)) * h.AvgCharWidth
		lines += int(math.Ceil(width / contentWidth))
	}
	return h.BaseHeight + float64(lines)*h.LineHeight
}
