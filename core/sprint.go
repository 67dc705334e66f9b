// Package core holds the retrieval, aggregation and scoring logic.
package core

import (
	"fmt"
	"time"

	"github.com/opendxi/opendxi/internal/contract"
	"github.com/opendxi/opendxi/schema"
)

// SprintDates computes the window for the sprint at the given offset from
// the current one (0 = current, -1 = previous, ...). Windows are generated
// from the configured anchor date in fixed-length increments, so a
// sprint's window is fully determined by its offset.
func SprintDates(cfg *contract.Config, index int, now time.Time) schema.SprintWindow {
	// Compare calendar days, not raw durations. Truncating now to its
	// date keeps the delta a whole number of days, so floorDiv sees a
	// floored count even when now precedes the anchor mid-day.
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, cfg.AnchorDate.Location())
	daysSinceAnchor := int(day.Sub(cfg.AnchorDate).Hours() / 24)
	currentSprint := floorDiv(daysSinceAnchor, cfg.SprintDays)
	target := currentSprint + index

	start := cfg.AnchorDate.AddDate(0, 0, target*cfg.SprintDays)
	end := start.AddDate(0, 0, cfg.SprintDays-1)

	return schema.SprintWindow{
		Start: start.Format(schema.DateOnly),
		End:   end.Format(schema.DateOnly),
	}
}

// AllSprints lists the current sprint and the limit-1 sprints before it,
// newest first, for the selector surfaces.
func AllSprints(cfg *contract.Config, limit int, now time.Time) []schema.Sprint {
	sprints := make([]schema.Sprint, 0, limit)
	for i := 0; i > -limit; i-- {
		w := SprintDates(cfg, i, now)
		label := fmt.Sprintf("Sprint %s to %s", w.Start, w.End)
		if i == 0 {
			label = "Current Sprint"
		}
		sprints = append(sprints, schema.Sprint{
			Label:     label,
			Value:     w.Start + "|" + w.End,
			Start:     w.Start,
			End:       w.End,
			IsCurrent: i == 0,
		})
	}
	return sprints
}

// ShortSprintLabel renders a compact window label for trend charts,
// e.g. "Jan 7-20" or "Jan 28-Feb 10".
func ShortSprintLabel(window schema.SprintWindow) string {
	start, err := time.Parse(schema.DateOnly, window.Start)
	if err != nil {
		return window.Start
	}
	end, err := time.Parse(schema.DateOnly, window.End)
	if err != nil {
		return window.End
	}
	if start.Month() == end.Month() {
		return fmt.Sprintf("%s %d-%d", start.Format("Jan"), start.Day(), end.Day())
	}
	return fmt.Sprintf("%s-%s", start.Format("Jan 2"), end.Format("Jan 2"))
}

// floorDiv divides rounding toward negative infinity, so sprints before
// the anchor date index correctly.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
