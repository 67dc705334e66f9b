// Package sprintstore is the durable source of truth for sprint metrics.
package sprintstore

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/opendxi/opendxi/internal/contract"
	"github.com/opendxi/opendxi/schema"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver (CGO-free)
)

// Table names. legacyTable is renamed to sprintsTable at startup if found.
const (
	sprintsTable = "sprints"
	legacyTable  = "sprint_cache"
)

// StoreImpl handles sprint persistence using various database backends.
//
// Persistence failures are deliberately absorbed here: the retrieval
// pipeline must keep working against an empty store, so Get degrades to a
// miss and Save/Delete to no-ops, each logged at warn level.
type StoreImpl struct {
	db         *sql.DB
	backend    schema.StoreBackend
	driverName string
	connStr    string
	log        *zap.Logger
}

var _ contract.SprintStore = &StoreImpl{} // Compile-time check

// NewStore initializes and returns a new sprint store for the backend.
// It opens the connection, applies the legacy table rename, and runs the
// embedded migrations before any read or write is served.
func NewStore(backend schema.StoreBackend, connStr string, log *zap.Logger) (contract.SprintStore, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetStoreDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=secret dbname=postgres
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled persistence
		return &StoreImpl{backend: backend, log: log}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s store. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if backend == schema.SQLiteBackend {
		// WAL mode allows concurrent readers during a writer's transaction;
		// at-most-one-writer is provided by the engine itself.
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := renameLegacyTable(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate legacy table: %w", err)
	}

	if err := migrateSprints(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run store migrations: %w", err)
	}

	return &StoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
		log:        log,
	}, nil
}

// Get retrieves a stored payload by sprint key. Any failure, including an
// absent row, reports a miss.
func (s *StoreImpl) Get(key string) ([]byte, int, bool) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, 0, false
	}

	query := fmt.Sprintf(`SELECT payload, payload_version FROM %s WHERE sprint_key = %s`,
		quoteTableName(sprintsTable, s.backend), s.placeholder(1))

	var payload []byte
	var version int
	if err := s.db.QueryRow(query, key).Scan(&payload, &version); err != nil {
		if err != sql.ErrNoRows {
			s.log.Warn("sprint store read failed, treating as miss", zap.String("key", key), zap.Error(err))
		}
		return nil, 0, false
	}
	return payload, version, true
}

// Save upserts a payload under the window's key. The original created_at
// is preserved across re-saves; updated_at always advances.
func (s *StoreImpl) Save(window schema.SprintWindow, payload []byte, version int) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return
	}

	now := float64(time.Now().UnixNano()) / float64(time.Second)
	query := s.upsertQuery()
	if _, err := s.db.Exec(query, window.Key(), window.Start, window.End, payload, version, now, now); err != nil {
		s.log.Warn("sprint store write failed, dropping entry", zap.String("key", window.Key()), zap.Error(err))
	}
}

// Delete removes a sprint from the store. The only removal path; entries
// never expire on their own.
func (s *StoreImpl) Delete(key string) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE sprint_key = %s`,
		quoteTableName(sprintsTable, s.backend), s.placeholder(1))
	if _, err := s.db.Exec(query, key); err != nil {
		s.log.Warn("sprint store delete failed", zap.String("key", key), zap.Error(err))
	}
}

// Stats reports store statistics for monitoring.
func (s *StoreImpl) Stats() (schema.StoreStats, error) {
	stats := schema.StoreStats{
		Backend:   string(s.backend),
		Connected: s.db != nil,
	}
	if s.backend == schema.NoneBackend || s.db == nil {
		return stats, nil
	}

	quoted := quoteTableName(sprintsTable, s.backend)

	summaryQuery := fmt.Sprintf(`SELECT COUNT(*), COALESCE(SUM(LENGTH(payload)), 0),
		COALESCE(MIN(updated_at), 0), COALESCE(MAX(updated_at), 0) FROM %s`, quoted)
	var oldest, newest float64
	row := s.db.QueryRow(summaryQuery)
	if err := row.Scan(&stats.EntryCount, &stats.TotalBytes, &oldest, &newest); err != nil {
		return stats, fmt.Errorf("failed to get store summary: %w", err)
	}
	stats.OldestUpdate = epochToTime(oldest)
	stats.NewestUpdate = epochToTime(newest)

	entriesQuery := fmt.Sprintf(`SELECT sprint_key, sprint_start, sprint_end,
		LENGTH(payload), created_at, updated_at FROM %s ORDER BY updated_at DESC`, quoted)
	rows, err := s.db.Query(entriesQuery)
	if err != nil {
		return stats, fmt.Errorf("failed to list store entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var e schema.StoreEntryInfo
		if err := rows.Scan(&e.SprintKey, &e.SprintStart, &e.SprintEnd, &e.SizeBytes, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return stats, fmt.Errorf("failed to scan store entry: %w", err)
		}
		stats.Entries = append(stats.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("error iterating store entries: %w", err)
	}

	return stats, nil
}

// Close closes the underlying DB connection.
func (s *StoreImpl) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// placeholder returns the n-th parameter placeholder for the backend.
func (s *StoreImpl) placeholder(n int) string {
	if s.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// upsertQuery returns the UPSERT statement for the backend. created_at is
// intentionally excluded from the update set so first-write-wins holds.
func (s *StoreImpl) upsertQuery() string {
	quoted := quoteTableName(sprintsTable, s.backend)
	switch s.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (sprint_key, sprint_start, sprint_end, payload, payload_version, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE sprint_start = new.sprint_start, sprint_end = new.sprint_end,
			payload = new.payload, payload_version = new.payload_version, updated_at = new.updated_at`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (sprint_key, sprint_start, sprint_end, payload, payload_version, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (sprint_key) DO UPDATE SET sprint_start = EXCLUDED.sprint_start, sprint_end = EXCLUDED.sprint_end,
			payload = EXCLUDED.payload, payload_version = EXCLUDED.payload_version, updated_at = EXCLUDED.updated_at`, quoted)

	default: // SQLite
		return fmt.Sprintf(`INSERT INTO %s (sprint_key, sprint_start, sprint_end, payload, payload_version, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (sprint_key) DO UPDATE SET sprint_start = excluded.sprint_start, sprint_end = excluded.sprint_end,
			payload = excluded.payload, payload_version = excluded.payload_version, updated_at = excluded.updated_at`, quoted)
	}
}

// quoteTableName quotes an identifier for the backend.
func quoteTableName(name string, backend schema.StoreBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "`" + name + "`"
	case schema.PostgreSQLBackend:
		return `"` + name + `"`
	default:
		return name
	}
}

// epochToTime converts epoch-seconds floats from the timestamp columns.
func epochToTime(epoch float64) time.Time {
	if epoch == 0 {
		return time.Time{}
	}
	return time.Unix(0, int64(epoch*float64(time.Second)))
}
