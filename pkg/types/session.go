package types

import (
	"errors"
	"time"
)

// Session is the persisted editing state of one named layout: the live design,
// which shape is selected, and both history stacks.
type Session struct {
	// SessionID is a UUID v7, generated on first save.
	SessionID string

	// Name is the human-readable key used on the command line.
	Name string

	// Live is the design currently shown on the canvas.
	Live Design

	// Selected is the index of the selected shape in Live, or -1.
	Selected int

	// Undo holds undo snapshots, oldest first.
	Undo []Design

	// Redo holds redo snapshots, oldest first.
	Redo []Design

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSession returns an empty session with no selection.
func NewSession(name string) *Session {
	return &Session{
		Name:     name,
		Live:     Design{},
		Selected: -1,
	}
}

// SessionInfo summarizes a stored session for listing.
type SessionInfo struct {
	SessionID string    `json:"session_id"`
	Name      string    `json:"name"`
	Shapes    int       `json:"shapes"`
	UndoDepth int       `json:"undo_depth"`
	RedoDepth int       `json:"redo_depth"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActivityEntry is one recorded user action.
type ActivityEntry struct {
	ActivityID string    `json:"activity_id"`
	SessionID  string    `json:"session_id"`
	Action     string    `json:"action"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}

// SessionStore persists sessions and their activity log. Callers attach to a
// backend, load and save sessions by name, and detach when done.
type SessionStore interface {
	// Attach connects the store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached if
	// called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// LoadSession returns the session with the given name.
	// Returns ErrSessionNotFound if none exists.
	LoadSession(name string) (*Session, error)

	// SaveSession creates or replaces the session, assigning SessionID on
	// first save.
	SaveSession(s *Session) error

	// DeleteSession removes the session, its snapshots, and its activity.
	// Returns ErrSessionNotFound if none exists.
	DeleteSession(name string) error

	// ListSessions returns all sessions ordered by name.
	ListSessions() ([]SessionInfo, error)

	// RecordActivity appends an entry to the session's activity log.
	RecordActivity(sessionID, action, details string) error

	// Activity returns the most recent entries for the session, oldest
	// first. A limit of zero or less returns every entry.
	Activity(sessionID string, limit int) ([]ActivityEntry, error)
}

// Store lifecycle and lookup errors.
var (
	ErrStoreDetached      = errors.New("session store is detached")
	ErrAlreadyAttached    = errors.New("session store is already attached")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidSessionName = errors.New("invalid session name")
)
