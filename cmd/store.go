package cmd

import (
	"fmt"

	"github.com/opendxi/opendxi/internal/contract"
	"github.com/opendxi/opendxi/internal/logging"
	"github.com/opendxi/opendxi/internal/sprintstore"
	"github.com/opendxi/opendxi/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads the minimal configuration needed for store operations.
// Store commands skip org validation so they work without a configured
// organization.
func storeSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.StoreBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")
	if err := contract.ValidateStoreConnectionString(backend, connStr); err != nil {
		return err
	}

	logger = logging.New(viper.GetBool("debug"))
	if err := sprintstore.InitStore(backend, connStr, logger); err != nil {
		return fmt.Errorf("failed to initialize sprint store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.Precision = viper.GetInt("precision")
	return nil
}

// storeCmd groups sprint store management.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the durable sprint store",
	Long: `Manage the store that holds fetched sprint metrics.

Once a sprint is stored its data never changes on its own; deletion and
force-refresh are the only ways to mutate it.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (no persistence)

Subcommands:
  status - Show entry inventory and connection info
  clear  - Remove all stored sprint data
  delete - Remove a single sprint window

Examples:
  # Check store status
  opendxi store status

  # Drop one stale window
  opendxi store delete 2026-01-07 2026-01-20`,
}

// storeStatusCmd shows store statistics.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show the sprint store's backend, connection state, entry count,
total payload size and per-entry details, newest first.

Examples:
  # Check store status
  opendxi store status

  # Status of a shared team store
  OPENDXI_STORE_BACKEND=postgresql OPENDXI_STORE_DB_CONNECT="..." opendxi store status`,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		stats, err := sprintstore.Store().Stats()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		if err := ow.WriteStoreStats(&stats, cfg); err != nil {
			contract.LogFatal("Cannot write store status", err)
		}
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored sprint data",
	Long: `Delete every stored sprint from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the sprints table

Use this when the scoring configuration changed in a way that makes old
payloads misleading, or when the store may be corrupted.

Examples:
  # Clear the SQLite store (default)
  opendxi store clear

  # Clear a MySQL store
  OPENDXI_STORE_BACKEND=mysql OPENDXI_STORE_DB_CONNECT="..." opendxi store clear`,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := sprintstore.ClearStore(cfg.StoreBackend, contract.GetStoreDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeDeleteCmd removes a single sprint window.
var storeDeleteCmd = &cobra.Command{
	Use:   "delete <start> <end>",
	Short: "Remove one sprint window from the store",
	Long: `Delete the stored entry for one sprint window. The next metrics
request for that window fetches fresh data.

Examples:
  # Drop one window
  opendxi store delete 2026-01-07 2026-01-20`,
	Args:    cobra.ExactArgs(2),
	PreRunE: storeSetup,
	RunE: func(_ *cobra.Command, args []string) error {
		window, err := resolveWindow(args)
		if err != nil {
			return err
		}
		sprintstore.Store().Delete(window.Key())
		fmt.Printf("Deleted %s from the store.\n", window.Key())
		return nil
	},
}
