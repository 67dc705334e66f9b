package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/opendxi/opendxi/core"
	"github.com/opendxi/opendxi/internal/contract"
	"github.com/opendxi/opendxi/schema"

	"github.com/olekukonko/tablewriter"
)

// WritePopulateResults outputs the outcome of a bulk population run.
func (ow *OutWriter) WritePopulateResults(results []core.PopulateResult, elapsed time.Duration, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(os.Stdout, populateReport(results, elapsed))
	}
	return writePopulateTable(os.Stdout, results, elapsed)
}

type populateEntry struct {
	Sprint     string `json:"sprint"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Skipped    bool   `json:"skipped"`
	Developers int    `json:"developers"`
	ElapsedMS  int64  `json:"elapsed_ms"`
}

func populateReport(results []core.PopulateResult, elapsed time.Duration) map[string]any {
	entries := make([]populateEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, populateEntry{
			Sprint:     r.Sprint.Label,
			Start:      r.Sprint.Start,
			End:        r.Sprint.End,
			Skipped:    r.Skipped,
			Developers: r.Developers,
			ElapsedMS:  r.Elapsed.Milliseconds(),
		})
	}
	return map[string]any{"sprints": entries, "elapsed_ms": elapsed.Milliseconds()}
}

func writePopulateTable(w io.Writer, results []core.PopulateResult, elapsed time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Sprint", "Start", "End", "Status", "Devs", "Time"})

	fetched := 0
	var data [][]string
	for _, r := range results {
		status := "fetched"
		devs := fmt.Sprintf("%d", r.Developers)
		took := r.Elapsed.Round(time.Millisecond).String()
		if r.Skipped {
			status = "skipped"
			devs = "-"
			took = "-"
		} else {
			fetched++
		}
		data = append(data, []string{r.Sprint.Label, r.Sprint.Start, r.Sprint.End, status, devs, took})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nPopulated %d of %d sprints in %s\n",
		fetched, len(results), elapsed.Round(time.Millisecond))
	return nil
}
