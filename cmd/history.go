package cmd

import (
	"github.com/opendxi/opendxi/internal/contract"
	"github.com/spf13/cobra"
)

// historyCmd shows team-level DXI trends across sprints.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show team DXI trends across recent sprints.",
	Long: `Print team-level DXI summaries for the last N sprints, oldest first.

Each sprint is served through the store policy, so windows that were
never populated trigger remote fetches. Run 'opendxi populate' first to
warm the store for a faster history.

Examples:
  # Trend over the default number of sprints
  opendxi history

  # Longer trend as JSON
  opendxi history -l 12 --output json`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		entries := svc.SprintHistory(rootCtx, cfg.SprintLimit)
		if err := ow.WriteSprintHistory(entries, cfg); err != nil {
			contract.LogFatal("Cannot write history", err)
		}
	},
}
