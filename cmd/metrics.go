package cmd

import (
	"fmt"
	"time"

	"github.com/opendxi/opendxi/internal/contract"
	"github.com/opendxi/opendxi/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// metricsCmd shows one sprint's developer metrics.
var metricsCmd = &cobra.Command{
	Use:   "metrics [start] [end]",
	Short: "Show developer DXI metrics for one sprint.",
	Long: `Compute or retrieve developer metrics for a sprint window.

Without arguments the current sprint is used. A populated window is
served from the store; an empty one triggers a fetch from GitHub via
the gh CLI, which requires an authenticated gh installation.

Examples:
  # Current sprint
  opendxi metrics

  # A specific window
  opendxi metrics 2026-01-07 2026-01-20

  # Refetch even if the window is already stored
  opendxi metrics --force-refresh

  # Export as CSV
  opendxi metrics --output csv`,
	Args:    cobra.MaximumNArgs(2),
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, args []string) error {
		window, err := resolveWindow(args)
		if err != nil {
			return err
		}

		force := viper.GetBool("force-refresh")
		result := svc.GetMetricsForSprint(rootCtx, window, force)
		if err := ow.WriteMetrics(window, result, cfg); err != nil {
			contract.LogFatal("Cannot write metrics", err)
		}
		return nil
	},
}

// resolveWindow turns positional args into a sprint window, defaulting to
// the current sprint when none are given.
func resolveWindow(args []string) (schema.SprintWindow, error) {
	if len(args) == 0 {
		sprints := svc.AllSprints(1)
		return sprints[0].Window(), nil
	}
	if len(args) != 2 {
		return schema.SprintWindow{}, fmt.Errorf("expected both start and end dates, or neither")
	}

	start, end := args[0], args[1]
	if _, err := time.Parse(schema.DateOnly, start); err != nil {
		return schema.SprintWindow{}, fmt.Errorf("invalid start date %q (expected YYYY-MM-DD)", start)
	}
	if _, err := time.Parse(schema.DateOnly, end); err != nil {
		return schema.SprintWindow{}, fmt.Errorf("invalid end date %q (expected YYYY-MM-DD)", end)
	}
	if start > end {
		return schema.SprintWindow{}, fmt.Errorf("start date %s is after end date %s", start, end)
	}
	return schema.SprintWindow{Start: start, End: end}, nil
}
