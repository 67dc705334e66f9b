package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/opendxi/opendxi/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeveloperSprintRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	rowSchema := parquet.SchemaOf(new(DeveloperSprintRow))
	require.NotNil(t, rowSchema)

	expectedColumns := []string{
		"sprint_key",
		"sprint_start",
		"sprint_end",
		"developer",
		"commits",
		"prs_opened",
		"prs_merged",
		"reviews_given",
		"lines_added",
		"lines_deleted",
		"avg_review_time_hours",
		"avg_cycle_time_hours",
		"dxi_score",
		"review_speed_score",
		"cycle_time_score",
		"pr_size_score",
		"review_coverage_score",
		"commit_frequency_score",
	}

	for _, colName := range expectedColumns {
		col, ok := rowSchema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func exportFixture() (schema.SprintWindow, *schema.MetricsResult) {
	review := 5.25
	window := schema.SprintWindow{Start: "2026-01-07", End: "2026-01-20"}
	result := &schema.MetricsResult{
		Developers: []schema.DeveloperMetrics{
			{
				Developer:          "alice",
				Commits:            14,
				PRsOpened:          5,
				PRsMerged:          4,
				ReviewsGiven:       7,
				LinesAdded:         420,
				LinesDeleted:       130,
				AvgReviewTimeHours: &review,
				DXIScore:           58.1,
				DimensionScores: &schema.DimensionScores{
					ReviewSpeed: 85.2, CycleTime: 37.5, PRSize: 90, ReviewCoverage: 70, CommitFrequency: 70,
				},
			},
			{
				Developer: "bob",
				Commits:   3,
				DXIScore:  32.7,
			},
		},
	}
	return window, result
}

func TestBuildRows(t *testing.T) {
	window, result := exportFixture()
	rows := BuildRows(window, result)
	require.Len(t, rows, 2)

	alice := rows[0]
	assert.Equal(t, "sprint_2026-01-07_2026-01-20", alice.SprintKey)
	assert.Equal(t, "2026-01-07", alice.SprintStart)
	assert.Equal(t, "2026-01-20", alice.SprintEnd)
	assert.Equal(t, "alice", alice.Developer)
	assert.Equal(t, int32(14), alice.Commits)
	assert.Equal(t, int32(420), alice.LinesAdded)
	require.NotNil(t, alice.AvgReviewTimeHours)
	assert.Equal(t, 5.25, *alice.AvgReviewTimeHours)
	assert.Nil(t, alice.AvgCycleTimeHours)
	require.NotNil(t, alice.ReviewSpeedScore)
	assert.Equal(t, 85.2, *alice.ReviewSpeedScore)

	// Dimension scores absent on the source stay null in the export.
	bob := rows[1]
	assert.Equal(t, "bob", bob.Developer)
	assert.Nil(t, bob.ReviewSpeedScore)
	assert.Nil(t, bob.CommitFrequencyScore)
}

func TestWriteDeveloperSprintParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "sprint_metrics.parquet")

	window, result := exportFixture()
	rows := BuildRows(window, result)

	err := WriteDeveloperSprintParquet(rows, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[DeveloperSprintRow](file)
	defer func() { _ = reader.Close() }()

	readRows := make([]DeveloperSprintRow, reader.NumRows())
	n, err := reader.Read(readRows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(rows), n, "Should read all records")

	for i := range rows {
		assert.Equal(t, rows[i].SprintKey, readRows[i].SprintKey)
		assert.Equal(t, rows[i].Developer, readRows[i].Developer)
		assert.Equal(t, rows[i].Commits, readRows[i].Commits)
		assert.Equal(t, rows[i].DXIScore, readRows[i].DXIScore)

		if rows[i].AvgReviewTimeHours == nil {
			assert.Nil(t, readRows[i].AvgReviewTimeHours)
		} else {
			require.NotNil(t, readRows[i].AvgReviewTimeHours)
			assert.Equal(t, *rows[i].AvgReviewTimeHours, *readRows[i].AvgReviewTimeHours)
		}
	}
}

func TestWriteDeveloperSprintParquetEmpty(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteDeveloperSprintParquet(nil, outputPath))

	_, err := os.Stat(outputPath)
	assert.NoError(t, err, "An empty export still produces a valid file")
}
