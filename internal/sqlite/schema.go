package sqlite

const pragmaForeignKeys = `PRAGMA foreign_keys = ON;`

// Schema DDL. Statements are idempotent so the database survives re-attach.
const (
	createSessions = `CREATE TABLE IF NOT EXISTS sessions (
    session_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    selected INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createSnapshots = `CREATE TABLE IF NOT EXISTS snapshots (
    session_id TEXT NOT NULL,
    stack TEXT NOT NULL,
    position INTEGER NOT NULL,
    body TEXT NOT NULL,
    PRIMARY KEY (session_id, stack, position),
    FOREIGN KEY (session_id) REFERENCES sessions(session_id) ON DELETE CASCADE
);`

	createActivity = `CREATE TABLE IF NOT EXISTS activity (
    activity_id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    action TEXT NOT NULL,
    details TEXT NOT NULL,
    created_at TEXT NOT NULL,
    FOREIGN KEY (session_id) REFERENCES sessions(session_id) ON DELETE CASCADE
);`
)

// Index DDL.
const (
	idxActivitySession = `CREATE INDEX IF NOT EXISTS idx_activity_session ON activity(session_id);`
)

// Snapshot stack names stored in snapshots.stack.
const (
	stackLive = "live"
	stackUndo = "undo"
	stackRedo = "redo"
)

var pragmaDDL = []string{
	pragmaForeignKeys,
}

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createSessions,
	createSnapshots,
	createActivity,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxActivitySession,
}
