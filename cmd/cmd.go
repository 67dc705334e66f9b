// Package cmd defines the command-line interface for opendxi.
package cmd

import (
	"github.com/opendxi/opendxi/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(sprintsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(developerCmd)
	rootCmd.AddCommand(populateCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeDeleteCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("org", "", "GitHub organization to measure")
	rootCmd.PersistentFlags().String("sprint-start-date", contract.DefaultAnchorDate, "Anchor date for sprint numbering (YYYY-MM-DD)")
	rootCmd.PersistentFlags().Int("sprint-duration-days", contract.DefaultSprintDays, "Sprint length in days")
	rootCmd.PersistentFlags().Int("max-pages", contract.DefaultMaxPages, "Per-query pagination ceiling")
	rootCmd.PersistentFlags().String("query-timeout", contract.DefaultQueryTimeout.String(), "Timeout per remote GraphQL call")
	rootCmd.PersistentFlags().IntP("sprint-limit", "l", contract.DefaultSprintLimit, "How many sprints selector surfaces list")
	rootCmd.PersistentFlags().String("store-backend", "sqlite", "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers for populate")
	rootCmd.PersistentFlags().String("output", "text", "Output format: text or csv or json")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of metricsCmd to Viper
	metricsCmd.Flags().Bool("force-refresh", false, "Bypass the store and fetch fresh data")
	if err := viper.BindPFlags(metricsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding metrics flags", err)
	}

	// Bind all flags of populateCmd to Viper
	populateCmd.Flags().Bool("force", false, "Re-fetch sprints that already hold data")
	if err := viper.BindPFlags(populateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding populate flags", err)
	}

	// Bind all flags of exportCmd to Viper
	exportCmd.Flags().String("export-file", "opendxi.parquet", "Path of the Parquet file to write")
	if err := viper.BindPFlags(exportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding export flags", err)
	}
}
