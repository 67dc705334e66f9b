package cmd

import (
	"time"

	"github.com/opendxi/opendxi/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// populateCmd warms the store for recent sprints.
var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Warm the store for recent sprints.",
	Long: `Fetch and persist metrics for the last N sprints using a bounded
worker pool, one sprint per worker task.

Sprints already holding developer data are skipped unless --force is
set. Review fan-out makes a cold populate the most expensive operation
in the tool; tune --workers to respect GitHub rate limits.

Examples:
  # Warm the default number of sprints
  opendxi populate

  # Re-fetch everything with more parallelism
  opendxi populate --force --workers 5

  # Warm a full year of biweekly sprints
  opendxi populate -l 12`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		force := viper.GetBool("force")
		start := time.Now()
		results := svc.Populate(rootCtx, cfg.SprintLimit, cfg.Workers, force)
		if err := ow.WritePopulateResults(results, time.Since(start), cfg); err != nil {
			contract.LogFatal("Cannot write populate results", err)
		}
	},
}
