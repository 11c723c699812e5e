package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB with scholia-specific helpers.
type DB struct {
	*sql.DB
	mu   sync.Mutex
	path string
}

// Open creates or opens a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{DB: sqlDB, path: path}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// OpenMemory creates an in-memory SQLite database (useful for testing).
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	d := &DB{DB: sqlDB, path: ":memory:"}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// Path returns the file the database was opened from.
func (d *DB) Path() string { return d.path }

// WithTx runs fn inside a transaction, committing on success. Writers are
// serialized so concurrent syncs cannot interleave.
func (d *DB) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// migrate runs all schema migrations.
func (d *DB) migrate() error {
	_, err := d.Exec(schema)
	return err
}

// schema contains the full database schema. New tables are added here.
const schema = `
CREATE TABLE IF NOT EXISTS legends (
    slug TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    subtitle TEXT NOT NULL DEFAULT '',
    dates TEXT NOT NULL DEFAULT '',
    archetype TEXT NOT NULL DEFAULT '',
    archetype_color TEXT NOT NULL DEFAULT '',
    industry TEXT NOT NULL DEFAULT '',
    hook TEXT NOT NULL DEFAULT '',
    cross_cutting INTEGER NOT NULL DEFAULT 0,
    total_reading_time INTEGER NOT NULL DEFAULT 0,
    synced_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_legends_archetype ON legends(archetype);

CREATE TABLE IF NOT EXISTS volumes (
    legend_slug TEXT NOT NULL REFERENCES legends(slug) ON DELETE CASCADE,
    slug TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0,
    title TEXT NOT NULL,
    subtitle TEXT NOT NULL DEFAULT '',
    reading_time INTEGER NOT NULL DEFAULT 0,
    disciplines TEXT NOT NULL DEFAULT '[]',
    motifs TEXT NOT NULL DEFAULT '[]',
    path TEXT NOT NULL DEFAULT '',
    PRIMARY KEY(legend_slug, slug)
);

CREATE TABLE IF NOT EXISTS sections (
    legend_slug TEXT NOT NULL,
    volume_slug TEXT NOT NULL,
    id TEXT NOT NULL,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    PRIMARY KEY(legend_slug, volume_slug, position),
    FOREIGN KEY(legend_slug, volume_slug) REFERENCES volumes(legend_slug, slug) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_sections_id ON sections(legend_slug, volume_slug, id);

CREATE TABLE IF NOT EXISTS marginalia (
    legend_slug TEXT NOT NULL,
    volume_slug TEXT NOT NULL,
    id TEXT NOT NULL,
    section_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    type TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    PRIMARY KEY(legend_slug, volume_slug, position),
    FOREIGN KEY(legend_slug, volume_slug) REFERENCES volumes(legend_slug, slug) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_marginalia_section ON marginalia(legend_slug, volume_slug, section_id);
CREATE INDEX IF NOT EXISTS idx_marginalia_type ON marginalia(type);

CREATE TABLE IF NOT EXISTS sync_runs (
    id TEXT PRIMARY KEY,
    started_at DATETIME NOT NULL DEFAULT (datetime('now')),
    legends INTEGER NOT NULL DEFAULT 0,
    volumes INTEGER NOT NULL DEFAULT 0,
    marginalia INTEGER NOT NULL DEFAULT 0
);
`
