package types

import (
	"errors"
	"path/filepath"
)

// BackendSQLite is the only session store furnish ships.
const BackendSQLite = "sqlite"

// DatabaseFile is the file the SQLite session store keeps under DataDir.
const DatabaseFile = "furnish.db"

var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// Config tells SessionStore.Attach which store to open and where. An empty
// DataDir means the working directory.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Validate reports ErrBackendEmpty or ErrBackendUnknown.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		return nil
	case "":
		return ErrBackendEmpty
	default:
		return ErrBackendUnknown
	}
}

// Dir returns DataDir, or "." when it is empty.
func (c Config) Dir() string {
	if c.DataDir == "" {
		return "."
	}
	return c.DataDir
}

// DatabasePath returns where the session database lives.
func (c Config) DatabasePath() string {
	return filepath.Join(c.Dir(), DatabaseFile)
}
