package ports

import (
	"context"
	"encoding/json"
	"time"
)

// JournalEntry records one computation served to a host.
type JournalEntry struct {
	ID        string          `json:"id"`
	Operation string          `json:"operation"`
	Request   json.RawMessage `json:"request"`
	Response  json.RawMessage `json:"response"`
	Cached    bool            `json:"cached"`
	Duration  time.Duration   `json:"duration"`
	At        time.Time       `json:"at"`
}

// Journal is the state-holding collaborator that remembers what was computed.
// The kernel itself never reads it.
type Journal interface {
	// Record appends an entry.
	Record(ctx context.Context, entry JournalEntry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]JournalEntry, error)
}
