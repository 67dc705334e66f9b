package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/opendxi/opendxi/internal/contract"
	"github.com/opendxi/opendxi/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSprintHistory outputs team-level trend entries, oldest first.
func (ow *OutWriter) WriteSprintHistory(entries []schema.SprintHistoryEntry, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(os.Stdout, entries)
	case schema.CSVOut:
		return writeSprintHistoryCSV(os.Stdout, entries, fmtFloat, intFmt)
	default:
		return writeSprintHistoryTable(os.Stdout, entries, fmtFloat, intFmt)
	}
}

var sprintHistoryCSVHeader = []string{
	"sprint", "start", "end", "avg_dxi_score", "developers",
	"commits", "prs", "review_speed", "cycle_time", "pr_size",
	"review_coverage", "commit_frequency",
}

func writeSprintHistoryCSV(w io.Writer, entries []schema.SprintHistoryEntry, fmtFloat func(float64) string, intFmt string) error {
	return writeCSVWithHeader(w, sprintHistoryCSVHeader, func(csvWriter *csv.Writer) error {
		for _, e := range entries {
			row := []string{
				e.SprintLabel, e.StartDate, e.EndDate,
				fmtFloat(e.AvgDXIScore),
				fmt.Sprintf(intFmt, e.DeveloperCount),
				fmt.Sprintf(intFmt, e.TotalCommits),
				fmt.Sprintf(intFmt, e.TotalPRs),
				fmtFloat(e.DimensionScores.ReviewSpeed),
				fmtFloat(e.DimensionScores.CycleTime),
				fmtFloat(e.DimensionScores.PRSize),
				fmtFloat(e.DimensionScores.ReviewCoverage),
				fmtFloat(e.DimensionScores.CommitFrequency),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

func writeSprintHistoryTable(w io.Writer, entries []schema.SprintHistoryEntry, fmtFloat func(float64) string, intFmt string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Sprint", "Avg DXI", "Label", "Devs", "Commits", "PRs"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, e := range entries {
		data = append(data, []string{
			e.SprintLabel,
			fmtFloat(e.AvgDXIScore),
			contract.GetColorLabel(e.AvgDXIScore),
			fmt.Sprintf(intFmt, e.DeveloperCount),
			fmt.Sprintf(intFmt, e.TotalCommits),
			fmt.Sprintf(intFmt, e.TotalPRs),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// WriteDeveloperHistory outputs one developer's trajectory, oldest first.
func (ow *OutWriter) WriteDeveloperHistory(history *schema.DeveloperHistory, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(os.Stdout, history)
	case schema.CSVOut:
		return writeDeveloperHistoryCSV(os.Stdout, history, fmtFloat, intFmt)
	default:
		return writeDeveloperHistoryTable(os.Stdout, history, fmtFloat, intFmt)
	}
}

var developerHistoryCSVHeader = []string{
	"sprint", "start", "end", "dxi_score", "commits", "prs_opened",
	"prs_merged", "reviews_given", "lines_added", "lines_deleted",
	"avg_review_time_hours", "avg_cycle_time_hours",
}

func writeDeveloperHistoryCSV(w io.Writer, history *schema.DeveloperHistory, fmtFloat func(float64) string, intFmt string) error {
	return writeCSVWithHeader(w, developerHistoryCSVHeader, func(csvWriter *csv.Writer) error {
		for _, e := range history.Sprints {
			row := []string{
				e.SprintLabel, e.StartDate, e.EndDate,
				fmtFloat(e.DXIScore),
				fmt.Sprintf(intFmt, e.Commits),
				fmt.Sprintf(intFmt, e.PRsOpened),
				fmt.Sprintf(intFmt, e.PRsMerged),
				fmt.Sprintf(intFmt, e.ReviewsGiven),
				fmt.Sprintf(intFmt, e.LinesAdded),
				fmt.Sprintf(intFmt, e.LinesDeleted),
				formatOptionalHours(e.AvgReviewTimeHours, fmtFloat),
				formatOptionalHours(e.AvgCycleTimeHours, fmtFloat),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

func writeDeveloperHistoryTable(w io.Writer, history *schema.DeveloperHistory, fmtFloat func(float64) string, intFmt string) error {
	fmt.Fprintf(w, "History for %s (%d sprints)\n\n", history.Developer, len(history.Sprints))

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Sprint", "DXI", "Label", "Commits", "PRs", "Merged", "Reviews"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, e := range history.Sprints {
		data = append(data, []string{
			e.SprintLabel,
			fmtFloat(e.DXIScore),
			contract.GetColorLabel(e.DXIScore),
			fmt.Sprintf(intFmt, e.Commits),
			fmt.Sprintf(intFmt, e.PRsOpened),
			fmt.Sprintf(intFmt, e.PRsMerged),
			fmt.Sprintf(intFmt, e.ReviewsGiven),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
