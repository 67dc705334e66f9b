package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/opendxi/opendxi/schema"
)

// ErrDeveloperNotFound is returned when a login appears in none of the
// requested sprints. It is the only error the history surfaces raise.
var ErrDeveloperNotFound = errors.New("developer not found")

// teamHistoryEntry builds the team-level trend entry for one sprint.
func teamHistoryEntry(sprint schema.Sprint, metrics *schema.MetricsResult) schema.SprintHistoryEntry {
	entry := schema.SprintHistoryEntry{
		SprintLabel:    ShortSprintLabel(sprint.Window()),
		StartDate:      sprint.Start,
		EndDate:        sprint.End,
		AvgDXIScore:    metrics.Summary.AvgDXIScore,
		DeveloperCount: len(metrics.Developers),
		TotalCommits:   metrics.Summary.TotalCommits,
		TotalPRs:       metrics.Summary.TotalPRs,
	}
	if metrics.TeamDimensionScores != nil {
		entry.DimensionScores = *metrics.TeamDimensionScores
	}
	return entry
}

// SprintHistory returns team-level trend entries for the last count
// sprints, oldest first. Each sprint is served through the cache policy,
// so uncached windows trigger remote fetches.
func (s *Service) SprintHistory(ctx context.Context, count int) []schema.SprintHistoryEntry {
	sprints := s.AllSprints(count)
	entries := make([]schema.SprintHistoryEntry, 0, len(sprints))
	for _, sprint := range sprints {
		metrics := s.GetMetricsForSprint(ctx, sprint.Window(), false)
		entries = append(entries, teamHistoryEntry(sprint, metrics))
	}
	reverseSlice(entries)
	return entries
}

// DeveloperHistory returns one developer's trajectory over the last count
// sprints, oldest first, alongside the team trajectory for comparison.
// Sprints where the developer has no recorded activity are omitted from
// the developer series but still appear in the team series.
func (s *Service) DeveloperHistory(ctx context.Context, login string, count int) (*schema.DeveloperHistory, error) {
	sprints := s.AllSprints(count)
	var devEntries []schema.DeveloperHistoryEntry
	teamEntries := make([]schema.SprintHistoryEntry, 0, len(sprints))

	for _, sprint := range sprints {
		metrics := s.GetMetricsForSprint(ctx, sprint.Window(), false)
		teamEntries = append(teamEntries, teamHistoryEntry(sprint, metrics))

		for i := range metrics.Developers {
			dev := &metrics.Developers[i]
			if dev.Developer != login {
				continue
			}
			entry := schema.DeveloperHistoryEntry{
				SprintLabel:        ShortSprintLabel(sprint.Window()),
				StartDate:          sprint.Start,
				EndDate:            sprint.End,
				DXIScore:           dev.DXIScore,
				Commits:            dev.Commits,
				PRsOpened:          dev.PRsOpened,
				PRsMerged:          dev.PRsMerged,
				ReviewsGiven:       dev.ReviewsGiven,
				LinesAdded:         dev.LinesAdded,
				LinesDeleted:       dev.LinesDeleted,
				AvgReviewTimeHours: dev.AvgReviewTimeHours,
				AvgCycleTimeHours:  dev.AvgCycleTimeHours,
			}
			if dev.DimensionScores != nil {
				entry.DimensionScores = *dev.DimensionScores
			}
			devEntries = append(devEntries, entry)
			break
		}
	}

	if len(devEntries) == 0 {
		return nil, fmt.Errorf("%w: %q in the last %d sprints", ErrDeveloperNotFound, login, count)
	}

	reverseSlice(devEntries)
	reverseSlice(teamEntries)
	return &schema.DeveloperHistory{
		Developer:   login,
		Sprints:     devEntries,
		TeamHistory: teamEntries,
	}, nil
}

func reverseSlice[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
