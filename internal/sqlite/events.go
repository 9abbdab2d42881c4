package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/certbook/pkg/types"
)

// EventRecord is one persisted audit event line.
type EventRecord struct {
	Seq       int64  `json:"seq"`
	EventID   string `json:"event_id"`
	EmittedAt string `json:"emitted_at"`
	Line      string `json:"line"`
}

// appendEvents inserts the given audit event lines, in order, assigning
// each a UUID v7 row id.
func appendEvents(tx *sql.Tx, lines []string) error {
	emittedAt := time.Now().UTC().Format(time.RFC3339)
	for _, line := range lines {
		if _, err := tx.Exec(
			"INSERT INTO events (event_id, emitted_at, line) VALUES (?, ?, ?)",
			generateUUID(), emittedAt, line,
		); err != nil {
			return fmt.Errorf("inserting event: %w", err)
		}
	}
	return nil
}

// Events returns the most recent limit audit events in emission order
// (oldest of the window first). A non-positive limit returns everything.
func (b *Backend) Events(limit int) ([]EventRecord, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrBackendDetached
	}

	query := "SELECT seq, event_id, emitted_at, line FROM events ORDER BY seq"
	var args []any
	if limit > 0 {
		// Window to the newest rows, then present oldest-first.
		query = `SELECT seq, event_id, emitted_at, line FROM (
    SELECT seq, event_id, emitted_at, line FROM events ORDER BY seq DESC LIMIT ?
) ORDER BY seq`
		args = append(args, limit)
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	records := []EventRecord{}
	for rows.Next() {
		var r EventRecord
		if err := rows.Scan(&r.Seq, &r.EventID, &r.EmittedAt, &r.Line); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return records, nil
}

// generateUUID generates a new UUID v7 for event row ids.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails.
		return uuid.New().String()
	}
	return id.String()
}
