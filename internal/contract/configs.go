package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/opendxi/opendxi/schema"
)

// Default values for configuration.
const (
	DefaultAnchorDate   = "2026-01-07" // sprint 0 epoch anchor
	DefaultSprintDays   = 14
	DefaultMaxPages     = 10 // safety ceiling against runaway pagination
	DefaultQueryTimeout = 180 * time.Second
	DefaultSprintLimit  = 6
	MaxSprintLimit      = 12
	DefaultWorkers      = 3
	DefaultPrecision    = 1
)

// Config holds the validated runtime configuration.
// Fields that require parsing (dates, durations, enums) are populated by
// ProcessAndValidate from the raw input struct.
type Config struct {
	Org          string        // GitHub organization login
	AnchorDate   time.Time     // start of sprint numbering
	SprintDays   int           // sprint length in days
	MaxPages     int           // per-query pagination ceiling
	QueryTimeout time.Duration // per remote call
	SprintLimit  int           // how many sprints selector surfaces list

	StoreBackend   schema.StoreBackend
	StoreDBConnect string

	Workers   int // bounded pool size for bulk population
	Output    schema.OutputMode
	Precision int
	Debug     bool
}

// Clone returns a copy of the config for per-request overrides.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigRawInput holds the raw values resolved by Viper from defaults,
// config file, environment and flags, before validation.
type ConfigRawInput struct {
	Org             string `mapstructure:"org"`
	SprintStartDate string `mapstructure:"sprint-start-date"`
	SprintDays      int    `mapstructure:"sprint-duration-days"`
	MaxPages        int    `mapstructure:"max-pages"`
	QueryTimeoutStr string `mapstructure:"query-timeout"`
	SprintLimit     int    `mapstructure:"sprint-limit"`
	StoreBackend    string `mapstructure:"store-backend"`
	StoreDBConnect  string `mapstructure:"store-db-connect"`
	Workers         int    `mapstructure:"workers"`
	Output          string `mapstructure:"output"`
	Precision       int    `mapstructure:"precision"`
	Debug           bool   `mapstructure:"debug"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Organization ---
	cfg.Org = strings.TrimSpace(input.Org)
	if cfg.Org == "" {
		return fmt.Errorf("no organization configured. Set 'org' in .opendxi.yaml or the OPENDXI_ORG environment variable")
	}

	// --- 2. Sprint geometry ---
	anchor, err := time.Parse(schema.DateOnly, input.SprintStartDate)
	if err != nil {
		return fmt.Errorf("invalid sprint-start-date %q (expected YYYY-MM-DD): %w", input.SprintStartDate, err)
	}
	cfg.AnchorDate = anchor

	if input.SprintDays <= 0 {
		return fmt.Errorf("sprint-duration-days must be greater than 0 (received %d)", input.SprintDays)
	}
	cfg.SprintDays = input.SprintDays

	// --- 3. Pagination and timeouts ---
	if input.MaxPages <= 0 {
		return fmt.Errorf("max-pages must be greater than 0 (received %d)", input.MaxPages)
	}
	cfg.MaxPages = input.MaxPages

	timeout, err := time.ParseDuration(input.QueryTimeoutStr)
	if err != nil || timeout <= 0 {
		return fmt.Errorf("invalid query-timeout %q (expected a positive Go duration like '180s')", input.QueryTimeoutStr)
	}
	cfg.QueryTimeout = timeout

	// --- 4. Sprint limit ---
	if input.SprintLimit <= 0 || input.SprintLimit > MaxSprintLimit {
		return fmt.Errorf("sprint-limit must be between 1 and %d (received %d)", MaxSprintLimit, input.SprintLimit)
	}
	cfg.SprintLimit = input.SprintLimit

	// --- 5. Store backend ---
	backend := schema.StoreBackend(strings.ToLower(input.StoreBackend))
	if err := ValidateStoreConnectionString(backend, input.StoreDBConnect); err != nil {
		return err
	}
	cfg.StoreBackend = backend
	cfg.StoreDBConnect = input.StoreDBConnect

	// --- 6. Workers ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 7. Output and precision ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	switch cfg.Output {
	case schema.TextOut, schema.CSVOut, schema.JSONOut:
	default:
		return fmt.Errorf("invalid output format %q. must be text, csv, json", input.Output)
	}

	if input.Precision < 0 || input.Precision > 2 {
		return fmt.Errorf("precision must be between 0 and 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Debug = input.Debug
	return nil
}

// ValidateStoreConnectionString checks that connection parameters are
// coherent for the chosen backend.
func ValidateStoreConnectionString(backend schema.StoreBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required for mysql. Format: user:password@tcp(host:port)/dbname")
		}
		return nil
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required for postgresql. Format: host=localhost port=5432 user=postgres dbname=mydb")
		}
		return nil
	default:
		return fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}
}
