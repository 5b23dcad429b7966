package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/furnish/pkg/types"
)

// RecordActivity appends an action to the session's activity log.
func (b *Backend) RecordActivity(sessionID, action, details string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.handle()
	if err != nil {
		return err
	}

	var one int
	err = db.QueryRow("SELECT 1 FROM sessions WHERE session_id = ?", sessionID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", types.ErrSessionNotFound, sessionID)
	}
	if err != nil {
		return fmt.Errorf("looking up session %s: %w", sessionID, err)
	}

	_, err = db.Exec(
		"INSERT INTO activity (activity_id, session_id, action, details, created_at) VALUES (?, ?, ?, ?, ?)",
		generateUUID(), sessionID, action, details, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", action, err)
	}
	return nil
}

// Activity returns up to limit of the session's most recent entries in the
// order they were recorded. limit <= 0 returns everything.
func (b *Backend) Activity(sessionID string, limit int) ([]types.ActivityEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.handle()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := db.Query(`SELECT activity_id, session_id, action, details, created_at FROM (
        SELECT rowid AS seq, activity_id, session_id, action, details, created_at
        FROM activity WHERE session_id = ? ORDER BY rowid DESC LIMIT ?
    ) ORDER BY seq`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying activity: %w", err)
	}
	defer rows.Close()

	out := []types.ActivityEntry{}
	for rows.Next() {
		var (
			e         types.ActivityEntry
			createdAt string
		)
		if err := rows.Scan(&e.ActivityID, &e.SessionID, &e.Action, &e.Details, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity: %w", err)
	}
	return out, nil
}
