package outwriter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/opendxi/opendxi/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricsFixture() *schema.MetricsResult {
	review := 4.5
	return &schema.MetricsResult{
		Developers: []schema.DeveloperMetrics{
			{
				Developer:          "alice",
				Commits:            12,
				PRsOpened:          4,
				PRsMerged:          3,
				ReviewsGiven:       6,
				LinesAdded:         350,
				LinesDeleted:       90,
				AvgReviewTimeHours: &review,
				DXIScore:           72.4,
			},
			{
				Developer: "bob",
				Commits:   2,
				DXIScore:  31.2,
			},
		},
		Summary: schema.MetricsSummary{
			TotalCommits: 14, TotalPRs: 4, TotalMerged: 3, TotalReviews: 6, AvgDXIScore: 51.8,
		},
		TeamDimensionScores: &schema.DimensionScores{
			ReviewSpeed: 60, CycleTime: 55, PRSize: 80, ReviewCoverage: 40, CommitFrequency: 35,
		},
	}
}

func TestWriteMetricsCSV(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(1)
	require.NoError(t, writeMetricsCSV(&buf, metricsFixture(), fmtFloat, intFmt))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(metricsCSVHeader, ","), lines[0])
	assert.Equal(t, "alice,72.4,Good,12,4,3,6,350,90,4.5,-", lines[1])
	assert.Equal(t, "bob,31.2,Low,2,0,0,0,0,0,-,-", lines[2])
}

func TestWriteMetricsTable(t *testing.T) {
	var buf bytes.Buffer
	window := schema.SprintWindow{Start: "2026-01-07", End: "2026-01-20"}
	fmtFloat, intFmt := createFormatters(1)
	require.NoError(t, writeMetricsTable(&buf, window, metricsFixture(), fmtFloat, intFmt))

	out := buf.String()
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, "72.4")
	assert.Contains(t, out, "Sprint 2026-01-07 to 2026-01-20: 2 developers")
	assert.Contains(t, out, "Team dimensions: review speed 60.0")
}

func TestWriteMetricsTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	window := schema.SprintWindow{Start: "2026-01-07", End: "2026-01-20"}
	fmtFloat, intFmt := createFormatters(1)
	empty := schema.EmptyMetricsResult()
	require.NoError(t, writeMetricsTable(&buf, window, empty, fmtFloat, intFmt))

	assert.Contains(t, buf.String(), "No activity recorded for 2026-01-07 to 2026-01-20")
}

func TestFormatOptionalHours(t *testing.T) {
	fmtFloat, _ := createFormatters(1)
	assert.Equal(t, "-", formatOptionalHours(nil, fmtFloat))
	v := 12.25
	assert.Equal(t, "12.2", formatOptionalHours(&v, fmtFloat))
}
