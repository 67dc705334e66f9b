package cmd

import (
	"fmt"

	"github.com/opendxi/opendxi/internal/contract"
	"github.com/opendxi/opendxi/internal/parquet"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exportCmd writes sprint metrics to a Parquet file.
var exportCmd = &cobra.Command{
	Use:   "export [start] [end]",
	Short: "Export sprint metrics to a Parquet file.",
	Long: `Write one sprint's developer metrics to a Parquet file, one row per
developer, for warehouse ingestion or notebook analysis.

Without arguments the current sprint is exported. The window is served
through the store policy, so an unpopulated window triggers a fetch.

Examples:
  # Export the current sprint
  opendxi export

  # Export a specific window to a named file
  opendxi export 2026-01-07 2026-01-20 --export-file jan.parquet`,
	Args:    cobra.MaximumNArgs(2),
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, args []string) error {
		window, err := resolveWindow(args)
		if err != nil {
			return err
		}

		result := svc.GetMetricsForSprint(rootCtx, window, false)
		rows := parquet.BuildRows(window, result)

		outputPath := viper.GetString("export-file")
		if err := parquet.WriteDeveloperSprintParquet(rows, outputPath); err != nil {
			contract.LogFatal("Cannot write parquet export", err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(rows), outputPath)
		return nil
	},
}
