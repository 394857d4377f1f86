// Package sqlite implements the repository interfaces on SQLite.
//
// The driver is modernc.org/sqlite, a pure Go port, so the binary builds
// without cgo. The schema lives in migrations/*.sql, embedded into the binary
// and applied in version order by goose when the database is opened.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"

	"github.com/pressly/goose/v3"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

const memoryPath = ":memory:"

// busyTimeoutMS makes writers wait for the lock instead of failing with
// SQLITE_BUSY while another request holds it.
const busyTimeoutMS = 5000

// DB wraps a sql.DB connection pool and implements every repository
// interface in internal/repository.
type DB struct {
	conn   *sql.DB
	logger *slog.Logger
}

// New opens the database at dbPath and applies pending migrations.
//
// dbPath is a file path ("data/site.db") or ":memory:". An in-memory
// database only lives as long as its connection, so the pool is pinned to a
// single connection in that case.
func New(ctx context.Context, dbPath string, logger *slog.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite", buildDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if dbPath == memoryPath {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if dbPath == memoryPath {
		if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
		}
	}

	db := &DB{conn: conn, logger: logger}

	if err := db.migrate(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping reports whether the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// migrate applies every embedded migration that has not run yet. goose
// records applied versions in goose_db_version, so this is safe on every
// startup.
func (db *DB) migrate(ctx context.Context) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("opening embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db.conn, fsys)
	if err != nil {
		return fmt.Errorf("creating migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	for _, res := range results {
		db.logger.Info("migration applied",
			slog.Int64("version", res.Source.Version),
			slog.Duration("duration", res.Duration),
		)
	}

	return nil
}

// buildDSN appends the per-connection pragmas as _pragma query parameters,
// which modernc.org/sqlite applies to every new pooled connection.
func buildDSN(dbPath string) string {
	if dbPath == memoryPath {
		return dbPath
	}

	base, rawQuery, _ := strings.Cut(dbPath, "?")
	query, _ := url.ParseQuery(rawQuery)

	query.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeoutMS))
	query.Add("_pragma", "journal_mode(WAL)")
	query.Add("_pragma", "foreign_keys(1)")

	return base + "?" + query.Encode()
}
