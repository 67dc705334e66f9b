package sprintstore

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/opendxi/opendxi/internal/contract"
	"github.com/opendxi/opendxi/schema"
	"go.uber.org/zap"
)

// Global store instance for the CLI entrypoints.
var (
	store     contract.SprintStore
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStore initializes the global sprint store exactly once.
func InitStore(backend schema.StoreBackend, connStr string, log *zap.Logger) error {
	var initErr error
	initOnce.Do(func() {
		s, err := NewStore(backend, connStr, log)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize sprint store: %w", err)
			return
		}
		store = s
	})
	return initErr
}

// Store returns the global sprint store, or nil before InitStore.
func Store() contract.SprintStore {
	return store
}

// CloseStore should be called on application shutdown.
func CloseStore() {
	closeOnce.Do(func() {
		if store != nil {
			_ = store.Close()
		}
	})
}

// ClearStore removes all persisted sprint data.
// For SQLite, it deletes the database file.
// For MySQL/PostgreSQL, it drops the sprints table.
func ClearStore(backend schema.StoreBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return dropSQLTable("mysql", connStr, sprintsTable)

	case schema.PostgreSQLBackend:
		return dropSQLTable("pgx", connStr, sprintsTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", backend)
	}
}

// dropSQLTable connects to the SQL database and drops the table if it exists.
func dropSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}
	// Drop migrate's bookkeeping table too so a later init starts clean.
	if _, err := db.Exec("DROP TABLE IF EXISTS schema_migrations"); err != nil {
		return fmt.Errorf("failed to drop migration history: %w", err)
	}
	return nil
}
