package cmd

import (
	"github.com/opendxi/opendxi/internal/contract"
	"github.com/spf13/cobra"
)

// sprintsCmd lists the selectable sprint windows.
var sprintsCmd = &cobra.Command{
	Use:   "sprints",
	Short: "List recent sprint windows.",
	Long: `List the sprint windows available for measurement, newest first.

Windows are generated backward from the configured anchor date in
fixed-length increments, so every run agrees on sprint boundaries.
The window containing today is flagged as current.

Examples:
  # List the default number of sprints
  opendxi sprints

  # List the last 12 sprints as JSON
  opendxi sprints -l 12 --output json`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		sprints := svc.AllSprints(cfg.SprintLimit)
		if err := ow.WriteSprints(sprints, cfg); err != nil {
			contract.LogFatal("Cannot write sprints", err)
		}
	},
}
