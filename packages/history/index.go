package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// Index is a SQLite mirror of the history file used for searching.
// history.json stays the source of truth; the index is rebuilt from it
// whenever they disagree.
type Index struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id          TEXT PRIMARY KEY,
	timestamp   INTEGER NOT NULL,
	method      TEXT NOT NULL,
	url         TEXT NOT NULL,
	status      INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS entries_url ON entries(url);
`

// OpenIndex opens (creating if needed) the search index at path.
func OpenIndex(path string) (*Index, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history index: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open history index: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare history index: %w", err)
	}
	return &Index{db: db}, nil
}

func (ix *Index) Close() error {
	return ix.db.Close()
}

// Rebuild replaces the index contents with the given entries.
func (ix *Index) Rebuild(ctx context.Context, entries []*Entry) error {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return err
	}
	for _, e := range entries {
		if err := insertEntry(ctx, tx, e); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Add indexes a single new entry.
func (ix *Index) Add(ctx context.Context, e *Entry) error {
	return insertEntry(ctx, ix.db, e)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertEntry(ctx context.Context, db execer, e *Entry) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR REPLACE INTO entries (id, timestamp, method, url, status, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Timestamp, e.Request.Method, e.Request.URL,
		e.Response.Status, e.DurationMs)
	return err
}

// Summary is one search hit.
type Summary struct {
	ID         string
	Timestamp  int64
	Method     string
	URL        string
	Status     int
	DurationMs int64
}

// Search matches term against method and URL, newest first.
func (ix *Index) Search(ctx context.Context, term string, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = MaxEntries
	}
	pattern := "%" + term + "%"
	rows, err := ix.db.QueryContext(ctx,
		`SELECT id, timestamp, method, url, status, duration_ms
		 FROM entries
		 WHERE url LIKE ? OR method LIKE ?
		 ORDER BY timestamp DESC
		 LIMIT ?`,
		pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Timestamp, &s.Method, &s.URL, &s.Status, &s.DurationMs); err != nil {
			return nil, err
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

// Clear empties the index.
func (ix *Index) Clear(ctx context.Context) error {
	_, err := ix.db.ExecContext(ctx, `DELETE FROM entries`)
	return err
}

// Count returns the number of indexed entries.
func (ix *Index) Count(ctx context.Context) (int, error) {
	var n int
	err := ix.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n)
	return n, err
}
