package outwriter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/opendxi/opendxi/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyFixture() []schema.SprintHistoryEntry {
	return []schema.SprintHistoryEntry{
		{
			SprintLabel: "Jan 7-20", StartDate: "2026-01-07", EndDate: "2026-01-20",
			AvgDXIScore: 48.2, DeveloperCount: 3, TotalCommits: 40, TotalPRs: 12,
			DimensionScores: schema.DimensionScores{ReviewSpeed: 55, CycleTime: 45, PRSize: 70, ReviewCoverage: 30, CommitFrequency: 60},
		},
		{
			SprintLabel: "Jan 21-Feb 3", StartDate: "2026-01-21", EndDate: "2026-02-03",
			AvgDXIScore: 62.9, DeveloperCount: 4, TotalCommits: 55, TotalPRs: 18,
		},
	}
}

func TestWriteSprintHistoryCSV(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(1)
	require.NoError(t, writeSprintHistoryCSV(&buf, historyFixture(), fmtFloat, intFmt))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(sprintHistoryCSVHeader, ","), lines[0])
	assert.Equal(t, "Jan 7-20,2026-01-07,2026-01-20,48.2,3,40,12,55.0,45.0,70.0,30.0,60.0", lines[1])
}

func TestWriteSprintHistoryTable(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(1)
	require.NoError(t, writeSprintHistoryTable(&buf, historyFixture(), fmtFloat, intFmt))

	out := buf.String()
	assert.Contains(t, out, "Jan 7-20")
	assert.Contains(t, out, "62.9")
}

func developerHistoryFixture() *schema.DeveloperHistory {
	review := 3.5
	return &schema.DeveloperHistory{
		Developer: "alice",
		Sprints: []schema.DeveloperHistoryEntry{
			{
				SprintLabel: "Jan 7-20", StartDate: "2026-01-07", EndDate: "2026-01-20",
				DXIScore: 58.1, Commits: 14, PRsOpened: 5, PRsMerged: 4, ReviewsGiven: 7,
				LinesAdded: 420, LinesDeleted: 130, AvgReviewTimeHours: &review,
			},
		},
		TeamHistory: historyFixture(),
	}
}

func TestWriteDeveloperHistoryCSV(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(1)
	require.NoError(t, writeDeveloperHistoryCSV(&buf, developerHistoryFixture(), fmtFloat, intFmt))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(developerHistoryCSVHeader, ","), lines[0])
	assert.Equal(t, "Jan 7-20,2026-01-07,2026-01-20,58.1,14,5,4,7,420,130,3.5,-", lines[1])
}

func TestWriteDeveloperHistoryTable(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(1)
	require.NoError(t, writeDeveloperHistoryTable(&buf, developerHistoryFixture(), fmtFloat, intFmt))

	out := buf.String()
	assert.Contains(t, out, "History for alice (1 sprints)")
	assert.Contains(t, out, "58.1")
}
