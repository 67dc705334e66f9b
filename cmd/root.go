package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/opendxi/opendxi/core"
	"github.com/opendxi/opendxi/internal/contract"
	"github.com/opendxi/opendxi/internal/logging"
	"github.com/opendxi/opendxi/internal/outwriter"
	"github.com/opendxi/opendxi/internal/sprintstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// logger is the process-wide structured logger, built during setup.
var logger = zap.NewNop()

// svc is the cache-or-fetch coordinator, built during setup.
var svc *core.Service

// ow renders results to stdout.
var ow = outwriter.NewOutWriter()

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "opendxi",
	Short:              "Measure developer experience across sprints.",
	Long:               `Opendxi computes DXI scores from GitHub activity, sprint by sprint, with a durable local store so repeat queries cost nothing.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".opendxi")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("OPENDXI")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Set defaults in Viper
	viper.SetDefault("sprint-start-date", contract.DefaultAnchorDate)
	viper.SetDefault("sprint-duration-days", contract.DefaultSprintDays)
	viper.SetDefault("max-pages", contract.DefaultMaxPages)
	viper.SetDefault("query-timeout", contract.DefaultQueryTimeout.String())
	viper.SetDefault("sprint-limit", contract.DefaultSprintLimit)
	viper.SetDefault("store-backend", "sqlite")
	viper.SetDefault("store-db-connect", "")
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("output", "text")
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("debug", false)
}

// loadConfigFile reads the config file if one is present.
func loadConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// sharedSetup unmarshals config, runs validation, and wires the service.
func sharedSetup(_ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	logger = logging.New(cfg.Debug)

	// 4. Initialize the sprint store with validated config.
	if err := sprintstore.InitStore(cfg.StoreBackend, cfg.StoreDBConnect, logger); err != nil {
		return fmt.Errorf("failed to initialize sprint store: %w", err)
	}

	// 5. Wire the fetch pipeline and coordinator.
	client := contract.NewLocalGHClient(cfg.QueryTimeout)
	fetcher := core.NewFetcher(cfg, client, logger)
	svc = core.NewService(cfg, fetcher, sprintstore.Store(), logger)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// CloseStore releases the store on application shutdown.
func CloseStore() {
	sprintstore.CloseStore()
}
