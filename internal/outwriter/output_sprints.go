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
)

// WriteSprints outputs the selectable sprint windows, newest first.
func (ow *OutWriter) WriteSprints(sprints []schema.Sprint, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(os.Stdout, sprints)
	case schema.CSVOut:
		return writeSprintsCSV(os.Stdout, sprints)
	default:
		return writeSprintsTable(os.Stdout, sprints)
	}
}

var sprintsCSVHeader = []string{"label", "start", "end", "is_current"}

func writeSprintsCSV(w io.Writer, sprints []schema.Sprint) error {
	return writeCSVWithHeader(w, sprintsCSVHeader, func(csvWriter *csv.Writer) error {
		for _, s := range sprints {
			row := []string{s.Label, s.Start, s.End, strconv.FormatBool(s.IsCurrent)}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

func writeSprintsTable(w io.Writer, sprints []schema.Sprint) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Label", "Start", "End", "Current"})

	var data [][]string
	for _, s := range sprints {
		current := ""
		if s.IsCurrent {
			current = "*"
		}
		data = append(data, []string{s.Label, s.Start, s.End, current})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
