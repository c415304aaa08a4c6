package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Backend keeps named values in a single-table SQLite database.
// Each Set is one upsert statement, so a value is replaced atomically.
type Backend struct {
	db   *sql.DB
	path string
}

// Open opens (and creates if needed) the database at path.
func Open(ctx context.Context, path string) (*Backend, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
	}

	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// One connection keeps writes ordered inside this process.
	db.SetMaxOpenConns(1)

	// WAL lets the CLI read while the server writes; busy_timeout avoids "database is locked".
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	b := &Backend{db: db, path: path}
	if err := b.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

func (b *Backend) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			k TEXT PRIMARY KEY,
			v BLOB NOT NULL,
			updated_at_unixms INTEGER NOT NULL DEFAULT 0
		);`,
	}
	for _, st := range stmts {
		if _, err := b.db.ExecContext(ctx, st); err != nil {
			return fmt.Errorf("failed to migrate sqlite: %w", err)
		}
	}
	return nil
}

// Name identifies the backend
func (b *Backend) Name() string {
	return "sqlite"
}

// Path returns the database file location
func (b *Backend) Path() string {
	return b.path
}

// Get retrieves a value by name
func (b *Backend) Get(ctx context.Context, name string) ([]byte, bool, error) {
	var v []byte
	err := b.db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, name).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", name, err)
	}
	return v, true, nil
}

// Set replaces a value by name
func (b *Backend) Set(ctx context.Context, name string, value []byte) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO kv (k, v, updated_at_unixms) VALUES (?, ?, CAST(strftime('%s','now') AS INTEGER) * 1000)
		 ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at_unixms = excluded.updated_at_unixms`,
		name, value)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", name, err)
	}
	return nil
}

// Ping checks the database is usable
func (b *Backend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

// Close releases the database handle
func (b *Backend) Close() error {
	return b.db.Close()
}
