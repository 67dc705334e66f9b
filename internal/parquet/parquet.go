// Package parquet exports sprint metrics to Parquet files using
// github.com/parquet-go/parquet-go, for downstream warehouse ingestion.
package parquet

import (
	"fmt"
	"os"

	"github.com/opendxi/opendxi/schema"
	"github.com/parquet-go/parquet-go"
)

// DeveloperSprintRow is one developer's metrics in one sprint, flattened
// for columnar export. One row per (sprint, developer) pair.
type DeveloperSprintRow struct {
	// SprintKey identifies the sprint window ("sprint_{start}_{end}")
	SprintKey string `parquet:"sprint_key,snappy"`

	// SprintStart and SprintEnd are the inclusive window bounds (YYYY-MM-DD)
	SprintStart string `parquet:"sprint_start,snappy"`
	SprintEnd   string `parquet:"sprint_end,snappy"`

	Developer    string `parquet:"developer,snappy"`
	Commits      int32  `parquet:"commits,snappy"`
	PRsOpened    int32  `parquet:"prs_opened,snappy"`
	PRsMerged    int32  `parquet:"prs_merged,snappy"`
	ReviewsGiven int32  `parquet:"reviews_given,snappy"`
	LinesAdded   int32  `parquet:"lines_added,snappy"`
	LinesDeleted int32  `parquet:"lines_deleted,snappy"`

	// Latency averages are nullable; a sprint may produce no samples
	AvgReviewTimeHours *float64 `parquet:"avg_review_time_hours,optional,snappy"`
	AvgCycleTimeHours  *float64 `parquet:"avg_cycle_time_hours,optional,snappy"`

	DXIScore float64 `parquet:"dxi_score,snappy"`

	ReviewSpeedScore     *float64 `parquet:"review_speed_score,optional,snappy"`
	CycleTimeScore       *float64 `parquet:"cycle_time_score,optional,snappy"`
	PRSizeScore          *float64 `parquet:"pr_size_score,optional,snappy"`
	ReviewCoverageScore  *float64 `parquet:"review_coverage_score,optional,snappy"`
	CommitFrequencyScore *float64 `parquet:"commit_frequency_score,optional,snappy"`
}

// BuildRows flattens one sprint's metrics into export rows, preserving
// the result's developer ordering.
func BuildRows(window schema.SprintWindow, result *schema.MetricsResult) []DeveloperSprintRow {
	rows := make([]DeveloperSprintRow, 0, len(result.Developers))
	for i := range result.Developers {
		d := &result.Developers[i]
		row := DeveloperSprintRow{
			SprintKey:          window.Key(),
			SprintStart:        window.Start,
			SprintEnd:          window.End,
			Developer:          d.Developer,
			Commits:            int32(d.Commits),
			PRsOpened:          int32(d.PRsOpened),
			PRsMerged:          int32(d.PRsMerged),
			ReviewsGiven:       int32(d.ReviewsGiven),
			LinesAdded:         int32(d.LinesAdded),
			LinesDeleted:       int32(d.LinesDeleted),
			AvgReviewTimeHours: d.AvgReviewTimeHours,
			AvgCycleTimeHours:  d.AvgCycleTimeHours,
			DXIScore:           d.DXIScore,
		}
		if s := d.DimensionScores; s != nil {
			row.ReviewSpeedScore = &s.ReviewSpeed
			row.CycleTimeScore = &s.CycleTime
			row.PRSizeScore = &s.PRSize
			row.ReviewCoverageScore = &s.ReviewCoverage
			row.CommitFrequencyScore = &s.CommitFrequency
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteDeveloperSprintParquet writes rows to a Parquet file. The schema
// is inferred from the DeveloperSprintRow struct tags.
func WriteDeveloperSprintParquet(rows []DeveloperSprintRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[DeveloperSprintRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
