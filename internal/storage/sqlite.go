package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rewired-gh/draworacle/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS imports (
	id          TEXT PRIMARY KEY,
	imported_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS draws (
	seq       INTEGER PRIMARY KEY,
	import_id TEXT NOT NULL REFERENCES imports(id) ON DELETE CASCADE,
	date      TEXT NOT NULL,
	first     INTEGER NOT NULL,
	second    INTEGER NOT NULL,
	third     INTEGER NOT NULL
);
`

// SQLiteArchive persists the most recent import to a SQLite database
type SQLiteArchive struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the archive at path.
func OpenSQLite(path string) (*SQLiteArchive, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	dsn := cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteArchive{db: db}, nil
}

// Close closes the underlying database.
func (a *SQLiteArchive) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Save replaces the archived import with records in a single transaction.
func (a *SQLiteArchive) Save(ctx context.Context, importID string, records []models.DrawRecord) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM draws`); err != nil {
		return fmt.Errorf("clear draws: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM imports`); err != nil {
		return fmt.Errorf("clear imports: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (id, imported_at) VALUES (?, ?)`,
		importID, time.Now().UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("insert import: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO draws (seq, import_id, date, first, second, third) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, i, importID, r.Date, int(r.First), int(r.Second), int(r.Third)); err != nil {
			return fmt.Errorf("insert draw %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load returns the archived import. An empty archive yields an empty ID and no records.
func (a *SQLiteArchive) Load(ctx context.Context) (string, []models.DrawRecord, error) {
	var importID string
	err := a.db.QueryRowContext(ctx, `SELECT id FROM imports LIMIT 1`).Scan(&importID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("query import: %w", err)
	}

	rows, err := a.db.QueryContext(ctx,
		`SELECT date, first, second, third FROM draws WHERE import_id = ? ORDER BY seq`, importID)
	if err != nil {
		return "", nil, fmt.Errorf("query draws: %w", err)
	}
	defer rows.Close()

	var records []models.DrawRecord
	for rows.Next() {
		var r models.DrawRecord
		var first, second, third int
		if err := rows.Scan(&r.Date, &first, &second, &third); err != nil {
			return "", nil, fmt.Errorf("scan draw: %w", err)
		}
		r.First, r.Second, r.Third = models.DrawNumber(first), models.DrawNumber(second), models.DrawNumber(third)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return "", nil, fmt.Errorf("iterate draws: %w", err)
	}

	return importID, records, nil
}
