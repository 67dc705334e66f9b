package sprintstore

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/opendxi/opendxi/schema"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// migrateSprints brings the sprints table to the latest schema version
// using the embedded migrations for the backend.
func migrateSprints(db *sql.DB, backend schema.StoreBackend) error {
	var driver database.Driver
	var err error
	var subdir string

	switch backend {
	case schema.SQLiteBackend:
		subdir = "sqlite"
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
		if err != nil {
			return fmt.Errorf("failed to create SQLite migrate driver: %w", err)
		}

	case schema.MySQLBackend:
		subdir = "mysql"
		driver, err = mysql.WithInstance(db, &mysql.Config{})
		if err != nil {
			return fmt.Errorf("failed to create MySQL migrate driver: %w", err)
		}

	case schema.PostgreSQLBackend:
		subdir = "postgres"
		driver, err = postgres.WithInstance(db, &postgres.Config{})
		if err != nil {
			return fmt.Errorf("failed to create PostgreSQL migrate driver: %w", err)
		}

	default:
		return fmt.Errorf("migrations are not supported for backend %s", backend)
	}

	migrationFS, err := fs.Sub(migrationsFS, "migrations/"+subdir)
	if err != nil {
		return fmt.Errorf("failed to access migrations directory: %w", err)
	}

	sourceDriver, err := iofs.New(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "opendxi", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply store migrations: %w", err)
	}
	return nil
}

// renameLegacyTable renames the pre-1.0 sprint_cache table to sprints if
// it is present and the current table is not. Runs before migrations so
// existing rows are adopted instead of shadowed.
func renameLegacyTable(db *sql.DB, backend schema.StoreBackend) error {
	hasLegacy, err := tableExists(db, backend, legacyTable)
	if err != nil || !hasLegacy {
		return err
	}
	hasCurrent, err := tableExists(db, backend, sprintsTable)
	if err != nil || hasCurrent {
		return err
	}

	var stmt string
	switch backend {
	case schema.MySQLBackend:
		stmt = fmt.Sprintf("RENAME TABLE %s TO %s",
			quoteTableName(legacyTable, backend), quoteTableName(sprintsTable, backend))
	default: // SQLite and PostgreSQL
		stmt = fmt.Sprintf("ALTER TABLE %s RENAME TO %s",
			quoteTableName(legacyTable, backend), quoteTableName(sprintsTable, backend))
	}
	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", legacyTable, sprintsTable, err)
	}
	return nil
}

// tableExists probes the backend's catalog for a table name.
func tableExists(db *sql.DB, backend schema.StoreBackend, name string) (bool, error) {
	var query string
	var args []any

	switch backend {
	case schema.SQLiteBackend:
		query = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`
		args = []any{name}
	case schema.MySQLBackend:
		query = `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?`
		args = []any{name}
	case schema.PostgreSQLBackend:
		query = `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1`
		args = []any{name}
	default:
		return false, nil
	}

	var count int
	if err := db.QueryRow(query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to probe for table %s: %w", name, err)
	}
	return count > 0, nil
}
