// Package sqlite exposes the SQLite session store to callers outside the module.
package sqlite

import (
	"github.com/mesh-intelligence/furnish/internal/sqlite"
	"github.com/mesh-intelligence/furnish/pkg/types"
)

// NewBackend returns a detached session store. Call Attach before use:
//
//	store := sqlite.NewBackend()
//	if err := store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}); err != nil {
//		return err
//	}
//	defer store.Detach()
//	sess, err := store.LoadSession("default")
func NewBackend() types.SessionStore {
	return sqlite.NewBackend()
}
