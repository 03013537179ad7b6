// Package sqlite provides a SQLite-backed computation journal.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/multivar/pkg/ports"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS journal (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL UNIQUE,
	operation   TEXT NOT NULL,
	request     TEXT NOT NULL,
	response    TEXT NOT NULL,
	cached      INTEGER NOT NULL DEFAULT 0,
	duration_ns INTEGER NOT NULL DEFAULT 0,
	at_ns       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS journal_at ON journal (at_ns DESC, seq DESC);
`

// Journal persists journal entries in SQLite.
type Journal struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) a SQLite journal at path.
func Open(path string) (*Journal, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("journal path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Journal{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (j *Journal) Close() error {
	if j == nil || j.sqlDB == nil {
		return nil
	}
	return j.sqlDB.Close()
}

// Record inserts one entry. Missing IDs and timestamps are filled in.
func (j *Journal) Record(ctx context.Context, entry ports.JournalEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(entry.Operation) == "" {
		return fmt.Errorf("operation is required")
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.At.IsZero() {
		entry.At = time.Now()
	}
	cached := 0
	if entry.Cached {
		cached = 1
	}

	_, err := j.sqlDB.ExecContext(ctx,
		`INSERT INTO journal (id, operation, request, response, cached, duration_ns, at_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Operation,
		string(entry.Request),
		string(entry.Response),
		cached,
		int64(entry.Duration),
		entry.At.UTC().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A non-positive limit returns all.
func (j *Journal) Recent(ctx context.Context, limit int) ([]ports.JournalEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.sqlDB.QueryContext(ctx,
		`SELECT id, operation, request, response, cached, duration_ns, at_ns
		 FROM journal ORDER BY at_ns DESC, seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []ports.JournalEntry
	for rows.Next() {
		var (
			entry             ports.JournalEntry
			request, response string
			cached            int
			durationNS, atNS  int64
		)
		if err := rows.Scan(&entry.ID, &entry.Operation, &request, &response, &cached, &durationNS, &atNS); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entry.Request = []byte(request)
		entry.Response = []byte(response)
		entry.Cached = cached != 0
		entry.Duration = time.Duration(durationNS)
		entry.At = time.Unix(0, atNS).UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}
