package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/opendxi/opendxi/internal/contract"
	"github.com/opendxi/opendxi/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteMetrics outputs one sprint's metrics, dispatching on the
// configured output format.
func (ow *OutWriter) WriteMetrics(window schema.SprintWindow, result *schema.MetricsResult, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(os.Stdout, result)
	case schema.CSVOut:
		return writeMetricsCSV(os.Stdout, result, fmtFloat, intFmt)
	default:
		return writeMetricsTable(os.Stdout, window, result, fmtFloat, intFmt)
	}
}

var metricsCSVHeader = []string{
	"developer", "dxi_score", "label", "commits", "prs_opened", "prs_merged",
	"reviews_given", "lines_added", "lines_deleted",
	"avg_review_time_hours", "avg_cycle_time_hours",
}

func writeMetricsCSV(w io.Writer, result *schema.MetricsResult, fmtFloat func(float64) string, intFmt string) error {
	return writeCSVWithHeader(w, metricsCSVHeader, func(csvWriter *csv.Writer) error {
		for i := range result.Developers {
			d := &result.Developers[i]
			row := []string{
				d.Developer,
				fmtFloat(d.DXIScore),
				contract.GetPlainLabel(d.DXIScore),
				fmt.Sprintf(intFmt, d.Commits),
				fmt.Sprintf(intFmt, d.PRsOpened),
				fmt.Sprintf(intFmt, d.PRsMerged),
				fmt.Sprintf(intFmt, d.ReviewsGiven),
				fmt.Sprintf(intFmt, d.LinesAdded),
				fmt.Sprintf(intFmt, d.LinesDeleted),
				formatOptionalHours(d.AvgReviewTimeHours, fmtFloat),
				formatOptionalHours(d.AvgCycleTimeHours, fmtFloat),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

func writeMetricsTable(w io.Writer, window schema.SprintWindow, result *schema.MetricsResult, fmtFloat func(float64) string, intFmt string) error {
	if len(result.Developers) == 0 {
		fmt.Fprintf(w, "No activity recorded for %s to %s\n", window.Start, window.End)
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{
		"Rank", "Developer", "DXI", "Label", "Commits", "PRs", "Merged",
		"Reviews", "+Lines", "-Lines", "Review h", "Cycle h",
	})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	loginWidth := getMaxLoginWidth()
	var data [][]string
	for i := range result.Developers {
		d := &result.Developers[i]
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncateLogin(d.Developer, loginWidth),
			fmtFloat(d.DXIScore),
			contract.GetColorLabel(d.DXIScore),
			fmt.Sprintf(intFmt, d.Commits),
			fmt.Sprintf(intFmt, d.PRsOpened),
			fmt.Sprintf(intFmt, d.PRsMerged),
			fmt.Sprintf(intFmt, d.ReviewsGiven),
			fmt.Sprintf(intFmt, d.LinesAdded),
			fmt.Sprintf(intFmt, d.LinesDeleted),
			formatOptionalHours(d.AvgReviewTimeHours, fmtFloat),
			formatOptionalHours(d.AvgCycleTimeHours, fmtFloat),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := result.Summary
	fmt.Fprintf(w, "\nSprint %s to %s: %d developers, %d commits, %d PRs (%d merged), %d reviews, avg DXI %s\n",
		window.Start, window.End, len(result.Developers),
		s.TotalCommits, s.TotalPRs, s.TotalMerged, s.TotalReviews, fmtFloat(s.AvgDXIScore))

	if team := result.TeamDimensionScores; team != nil {
		fmt.Fprintf(w, "Team dimensions: review speed %s, cycle time %s, PR size %s, review coverage %s, commit frequency %s\n",
			fmtFloat(team.ReviewSpeed), fmtFloat(team.CycleTime), fmtFloat(team.PRSize),
			fmtFloat(team.ReviewCoverage), fmtFloat(team.CommitFrequency))
	}
	return nil
}

// formatOptionalHours renders a nullable latency average, "-" when the
// sprint produced no samples.
func formatOptionalHours(hours *float64, fmtFloat func(float64) string) string {
	if hours == nil {
		return "-"
	}
	return fmtFloat(*hours)
}
