package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/furnish/internal/designfile"
	"github.com/mesh-intelligence/furnish/pkg/furnish"
	"github.com/mesh-intelligence/furnish/pkg/types"
)

// handle returns the open database or ErrStoreDetached. The caller must hold b.mu.
func (b *Backend) handle() (*sql.DB, error) {
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.db, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("%w: %q", types.ErrInvalidSessionName, name)
	}
	return nil
}

func encodeDesign(d types.Design) (string, error) {
	var sb strings.Builder
	if err := designfile.Write(&sb, d); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func decodeDesign(sessionID, body string) (types.Design, int, error) {
	d, skipped, err := designfile.Read(strings.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	if skipped > 0 {
		furnish.Logger().Warn("dropped malformed shapes from snapshot", "session", sessionID, "skipped", skipped)
	}
	return d, skipped, nil
}

// LoadSession returns the session with the given name, rebuilding the live
// design and both history stacks from their snapshot rows.
func (b *Backend) LoadSession(name string) (*types.Session, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.handle()
	if err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	var (
		s                    types.Session
		createdAt, updatedAt string
	)
	err = db.QueryRow(
		"SELECT session_id, name, selected, created_at, updated_at FROM sessions WHERE name = ?",
		name,
	).Scan(&s.SessionID, &s.Name, &s.Selected, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", types.ErrSessionNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("getting session %s: %w", name, err)
	}
	if s.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if s.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	rows, err := db.Query(
		"SELECT stack, body FROM snapshots WHERE session_id = ? ORDER BY stack, position",
		s.SessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	s.Live = types.Design{}
	liveSkipped := false
	for rows.Next() {
		var stack, body string
		if err := rows.Scan(&stack, &body); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		d, skipped, err := decodeDesign(s.SessionID, body)
		if err != nil {
			return nil, fmt.Errorf("decoding %s snapshot: %w", stack, err)
		}
		switch stack {
		case stackLive:
			s.Live = d
			// After a dropped line the stored index may name another shape.
			liveSkipped = skipped > 0
		case stackUndo:
			s.Undo = append(s.Undo, d)
		case stackRedo:
			s.Redo = append(s.Redo, d)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	if liveSkipped || s.Selected < -1 || s.Selected >= len(s.Live) {
		s.Selected = -1
	}
	return &s, nil
}

// SaveSession writes s in one transaction, replacing any stored snapshots.
// A session without an ID adopts the ID of an existing session with the same
// name, or gets a new UUID v7.
func (b *Backend) SaveSession(s *types.Session) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.handle()
	if err != nil {
		return err
	}
	if err := validateName(s.Name); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if s.SessionID == "" {
		var existing, createdAt string
		err := tx.QueryRow("SELECT session_id, created_at FROM sessions WHERE name = ?", s.Name).
			Scan(&existing, &createdAt)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			s.SessionID = generateUUID()
		case err != nil:
			return fmt.Errorf("looking up session %s: %w", s.Name, err)
		default:
			s.SessionID = existing
			if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
				s.CreatedAt = t
			}
		}
	}

	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	if s.Selected < -1 || s.Selected >= len(s.Live) {
		s.Selected = -1
	}

	_, err = tx.Exec(
		`INSERT INTO sessions (session_id, name, selected, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(session_id) DO UPDATE SET
             name = excluded.name,
             selected = excluded.selected,
             updated_at = excluded.updated_at`,
		s.SessionID, s.Name, s.Selected,
		s.CreatedAt.Format(time.RFC3339Nano), s.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting session %s: %w", s.Name, err)
	}

	if _, err := tx.Exec("DELETE FROM snapshots WHERE session_id = ?", s.SessionID); err != nil {
		return fmt.Errorf("clearing snapshots: %w", err)
	}

	insert := func(stack string, pos int, d types.Design) error {
		body, err := encodeDesign(d)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			"INSERT INTO snapshots (session_id, stack, position, body) VALUES (?, ?, ?, ?)",
			s.SessionID, stack, pos, body,
		)
		if err != nil {
			return fmt.Errorf("inserting %s snapshot %d: %w", stack, pos, err)
		}
		return nil
	}
	if err := insert(stackLive, 0, s.Live); err != nil {
		return err
	}
	for i, d := range s.Undo {
		if err := insert(stackUndo, i, d); err != nil {
			return err
		}
	}
	for i, d := range s.Redo {
		if err := insert(stackRedo, i, d); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session %s: %w", s.Name, err)
	}
	furnish.Logger().Debug("saved session", "name", s.Name, "shapes", len(s.Live),
		"undo", len(s.Undo), "redo", len(s.Redo))
	return nil
}

// DeleteSession removes the named session with its snapshots and activity.
func (b *Backend) DeleteSession(name string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.handle()
	if err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRow("SELECT session_id FROM sessions WHERE name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", types.ErrSessionNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("looking up session %s: %w", name, err)
	}

	for _, stmt := range []string{
		"DELETE FROM activity WHERE session_id = ?",
		"DELETE FROM snapshots WHERE session_id = ?",
		"DELETE FROM sessions WHERE session_id = ?",
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return fmt.Errorf("deleting session %s: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete of %s: %w", name, err)
	}
	return nil
}

// ListSessions returns a summary of every stored session ordered by name.
func (b *Backend) ListSessions() ([]types.SessionInfo, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT s.session_id, s.name, s.updated_at,
        COALESCE((SELECT body FROM snapshots WHERE session_id = s.session_id AND stack = 'live'), ''),
        (SELECT COUNT(*) FROM snapshots WHERE session_id = s.session_id AND stack = 'undo'),
        (SELECT COUNT(*) FROM snapshots WHERE session_id = s.session_id AND stack = 'redo')
        FROM sessions s ORDER BY s.name`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	out := []types.SessionInfo{}
	for rows.Next() {
		var (
			info      types.SessionInfo
			updatedAt string
			body      string
		)
		if err := rows.Scan(&info.SessionID, &info.Name, &updatedAt, &body,
			&info.UndoDepth, &info.RedoDepth); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		if info.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		live, _, err := decodeDesign(info.SessionID, body)
		if err != nil {
			return nil, err
		}
		info.Shapes = len(live)
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return out, nil
}
