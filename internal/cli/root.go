// Package cli implements the furnish command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/furnish/internal/paths"
	"github.com/mesh-intelligence/furnish/pkg/furnish"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &exitError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error returned by the root command to a process exit code.
// Errors not produced by a command (flag parsing, unknown commands) are user
// errors.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	session   string
	jsonMode  bool
	verbose   bool
}

// app is the state shared by one command tree.
type app struct {
	flags     rootFlags
	configDir string
	v         *viper.Viper
	cfg       settings
}

// NewRootCmd creates the top-level "furnish" command with global flags and all
// subcommands registered. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "furnish",
		Short: "Lay out tables and chairs on a 2D floor plan",
		Long: `Furnish edits a floor plan of tables (rectangles) and chairs (ellipses).
Each command applies one edit to the current session; sessions keep the layout,
the selection, and the undo/redo history between invocations.`,
		Version:       furnish.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $(CWD)/.furnish)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.furnish-db)")
	pf.StringVar(&a.flags.session, "session", "", "session name (default: from config, \"default\")")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging on stderr")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newConfigCmd(a),
		newClickCmd(a),
		newChairCmd(a),
		newScaleCmd(a),
		newFillCmd(a),
		newBorderCmd(a),
		newThicknessCmd(a),
		newClearCmd(a),
		newUndoCmd(a),
		newRedoCmd(a),
		newShowCmd(a),
		newSaveCmd(a),
		newLoadCmd(a),
		newExportCmd(a),
		newLogCmd(a),
		newSessionsCmd(a),
	)

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "furnish:", err)
	}
	os.Exit(ExitCode(err))
}

// setup installs logging and loads configuration before any subcommand runs.
func (a *app) setup(cmd *cobra.Command) error {
	installLogger(cmd.ErrOrStderr(), a.flags.verbose)
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError("resolve config dir: %w", err)
	}
	a.configDir = configDir

	v, err := loadConfig(configDir)
	if err != nil {
		return sysError("load config: %w", err)
	}
	if f := cmd.Root().PersistentFlags().Lookup("session"); f != nil && f.Changed {
		v.Set(cfgKeySession, f.Value.String())
	}
	a.v = v

	cfg, err := decodeSettings(v)
	if err != nil {
		return userError("invalid config: %w", err)
	}
	a.cfg = cfg
	furnish.Logger().Debug("configuration loaded", "config_dir", configDir, "session", cfg.Session)
	return nil
}

// dataDir resolves the data directory for this invocation.
func (a *app) dataDir() (string, error) {
	return paths.ResolveDataDir(a.flags.dataDir, a.cfg.DataDir)
}

func installLogger(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	furnish.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
