package cmd

import (
	"errors"
	"fmt"

	"github.com/opendxi/opendxi/core"
	"github.com/opendxi/opendxi/internal/contract"
	"github.com/spf13/cobra"
)

// developerCmd shows one developer's DXI trajectory.
var developerCmd = &cobra.Command{
	Use:   "developer <login>",
	Short: "Show one developer's DXI trajectory across sprints.",
	Long: `Print a single developer's metrics across the last N sprints,
oldest first, alongside the team trajectory for comparison.

Sprints where the developer has no recorded activity are omitted. A
developer absent from every requested sprint is reported as not found.

Examples:
  # Default window count
  opendxi developer octocat

  # Full year of biweekly sprints as JSON
  opendxi developer octocat -l 12 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, args []string) error {
		history, err := svc.DeveloperHistory(rootCtx, args[0], cfg.SprintLimit)
		if err != nil {
			if errors.Is(err, core.ErrDeveloperNotFound) {
				return fmt.Errorf("%v", err)
			}
			contract.LogFatal("Cannot load developer history", err)
		}
		if err := ow.WriteDeveloperHistory(history, cfg); err != nil {
			contract.LogFatal("Cannot write developer history", err)
		}
		return nil
	},
}
