package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/opendxi/opendxi/internal/contract"
	"github.com/opendxi/opendxi/schema"

	"github.com/olekukonko/tablewriter"
)

// WriteStoreStats outputs the store's entry inventory.
func (ow *OutWriter) WriteStoreStats(stats *schema.StoreStats, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(os.Stdout, stats)
	case schema.CSVOut:
		return writeStoreStatsCSV(os.Stdout, stats)
	default:
		return writeStoreStatsTable(os.Stdout, stats)
	}
}

var storeStatsCSVHeader = []string{"sprint_key", "sprint_start", "sprint_end", "size_bytes", "created_at", "updated_at"}

func writeStoreStatsCSV(w io.Writer, stats *schema.StoreStats) error {
	return writeCSVWithHeader(w, storeStatsCSVHeader, func(csvWriter *csv.Writer) error {
		for _, e := range stats.Entries {
			row := []string{
				e.SprintKey, e.SprintStart, e.SprintEnd,
				fmt.Sprintf("%d", e.SizeBytes),
				formatEpoch(e.CreatedAt),
				formatEpoch(e.UpdatedAt),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

func writeStoreStatsTable(w io.Writer, stats *schema.StoreStats) error {
	fmt.Fprintf(w, "Backend: %s (connected: %t)\n", stats.Backend, stats.Connected)
	fmt.Fprintf(w, "Entries: %d, total %s\n\n", stats.EntryCount, formatBytes(stats.TotalBytes))

	if len(stats.Entries) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Sprint", "Start", "End", "Size", "Updated"})

	var data [][]string
	for _, e := range stats.Entries {
		data = append(data, []string{
			e.SprintKey, e.SprintStart, e.SprintEnd,
			formatBytes(e.SizeBytes),
			formatEpoch(e.UpdatedAt),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// formatEpoch renders an epoch-seconds float as a readable UTC timestamp.
func formatEpoch(epoch float64) string {
	if epoch == 0 {
		return "-"
	}
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC().Format("2006-01-02 15:04:05")
}

// formatBytes renders a byte count in a human-friendly unit.
func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
