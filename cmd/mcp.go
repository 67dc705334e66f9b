package cmd

import (
	"github.com/opendxi/opendxi/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the opendxi MCP server",
	Long:  `Launch an MCP server that lets AI agents query sprint metrics, developer history and store state via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Stdout carries the protocol, so all setup logging must stay
		// on stderr.
		return sharedSetup(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, svc)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
