package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/furnish/internal/activity"
	"github.com/mesh-intelligence/furnish/internal/sqlite"
	"github.com/mesh-intelligence/furnish/pkg/canvas"
	"github.com/mesh-intelligence/furnish/pkg/furnish"
	"github.com/mesh-intelligence/furnish/pkg/history"
	"github.com/mesh-intelligence/furnish/pkg/types"
)

// Actions recorded by the CLI itself rather than the canvas.
const (
	actionSaveDesign = "save_design"
	actionExportPNG  = "export_png"
)

// attachStore resolves the data directory and attaches a SQLite store. The
// caller must Detach it.
func (a *app) attachStore() (*sqlite.Backend, string, error) {
	dataDir, err := a.dataDir()
	if err != nil {
		return nil, "", sysError("resolve data dir: %w", err)
	}
	store := sqlite.NewBackend()
	cfg := types.Config{Backend: a.cfg.Backend, DataDir: dataDir}
	if err := store.Attach(cfg); err != nil {
		if errors.Is(err, types.ErrBackendEmpty) || errors.Is(err, types.ErrBackendUnknown) {
			return nil, "", userError("attach store: %w", err)
		}
		return nil, "", sysError("attach store: %w", err)
	}
	return store, dataDir, nil
}

// recorded is an action captured during a command, written to the store once
// the session has been saved.
type recorded struct {
	action  string
	details string
}

// workspace is one loaded session wired to a canvas.
type workspace struct {
	store   *sqlite.Backend
	session *types.Session
	hist    *history.History
	canvas  *canvas.Canvas
	fileLog *activity.Logger
	log     activity.ActionLogger
	pending []recorded
}

// LogAction reports an action performed outside the canvas.
func (w *workspace) LogAction(action, details string) {
	w.log.LogAction(action, details)
}

func (w *workspace) record(action, details string) {
	w.pending = append(w.pending, recorded{action: action, details: details})
}

// openWorkspace loads (or starts) the configured session and rebuilds its
// canvas and history.
func (a *app) openWorkspace() (*workspace, error) {
	store, dataDir, err := a.attachStore()
	if err != nil {
		return nil, err
	}

	sess, err := store.LoadSession(a.cfg.Session)
	switch {
	case errors.Is(err, types.ErrSessionNotFound):
		sess = types.NewSession(a.cfg.Session)
	case errors.Is(err, types.ErrInvalidSessionName):
		store.Detach()
		return nil, userError("%w", err)
	case err != nil:
		store.Detach()
		return nil, sysError("load session: %w", err)
	}

	w := &workspace{store: store, session: sess}
	if a.cfg.LogActions {
		logPath := a.cfg.LogFile
		if !filepath.IsAbs(logPath) {
			logPath = filepath.Join(dataDir, logPath)
		}
		fl, err := activity.Open(logPath)
		if err != nil {
			furnish.Logger().Warn("activity log unavailable", "path", logPath, "err", err)
		} else {
			w.fileLog = fl
		}
	}

	if w.fileLog != nil {
		w.log = activity.Multi(activity.Func(w.record), w.fileLog)
	} else {
		w.log = activity.Multi(activity.Func(w.record))
	}

	w.hist = history.New(a.cfg.HistoryDepth)
	w.hist.Restore(sess.Undo, sess.Redo)
	w.canvas = canvas.New(w.hist, a.cfg.canvasOpts, w.log)
	w.canvas.Restore(sess.Live, sess.Selected)
	return w, nil
}

// commit writes the canvas state back to the session and records buffered
// activity.
func (w *workspace) commit() error {
	w.session.Live = w.canvas.Shapes()
	w.session.Selected = w.canvas.SelectedIndex()
	w.session.Undo, w.session.Redo = w.hist.Stacks()

	if err := w.store.SaveSession(w.session); err != nil {
		return sysError("save session: %w", err)
	}
	for _, r := range w.pending {
		if err := w.store.RecordActivity(w.session.SessionID, r.action, r.details); err != nil {
			return sysError("record activity: %w", err)
		}
	}
	w.pending = nil
	return nil
}

func (w *workspace) close() {
	if w.fileLog != nil {
		w.fileLog.Close()
	}
	w.store.Detach()
}

// edit runs fn against the session canvas, saves the result, and prints the
// actions it produced.
func (a *app) edit(cmd *cobra.Command, fn func(w *workspace) error) error {
	w, err := a.openWorkspace()
	if err != nil {
		return err
	}
	defer w.close()

	if err := fn(w); err != nil {
		return err
	}
	actions := w.pending
	if err := w.commit(); err != nil {
		return err
	}
	return a.printResult(cmd, w, actions)
}

// canvasError classifies an error returned by a canvas operation.
func canvasError(err error) error {
	switch {
	case errors.Is(err, types.ErrNoSelection),
		errors.Is(err, types.ErrInvalidScale),
		errors.Is(err, types.ErrInvalidThickness),
		errors.Is(err, types.ErrInvalidExtent):
		return userError("%w", err)
	default:
		return sysError("%w", err)
	}
}

func (a *app) printResult(cmd *cobra.Command, w *workspace, actions []recorded) error {
	if a.flags.jsonMode {
		return writeJSON(cmd, newStateView(w))
	}
	out := cmd.OutOrStdout()
	if len(actions) == 0 {
		fmt.Fprintln(out, "nothing to do")
		return nil
	}
	for _, r := range actions {
		fmt.Fprintln(out, r.details)
	}
	return nil
}
