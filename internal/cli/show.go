package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/furnish/pkg/types"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the shapes of the current session",
		Long: `Show lists every shape in stored order using the layout line format.
The selected shape is marked with '*'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := a.openWorkspace()
			if err != nil {
				return err
			}
			defer w.close()

			if a.flags.jsonMode {
				return writeJSON(cmd, newStateView(w))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "session %s: %d shape(s), undo %d, redo %d\n",
				w.session.Name, w.canvas.Shapes().Len(), w.hist.UndoDepth(), w.hist.RedoDepth())
			for i, s := range w.canvas.Shapes() {
				fmt.Fprintln(out, describe(i, s))
			}
			return nil
		},
	}
}

func newLogCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print the activity log of the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := a.attachStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			sess, err := store.LoadSession(a.cfg.Session)
			if errors.Is(err, types.ErrSessionNotFound) || errors.Is(err, types.ErrInvalidSessionName) {
				return userError("%w", err)
			}
			if err != nil {
				return sysError("load session: %w", err)
			}
			entries, err := store.Activity(sess.SessionID, limit)
			if err != nil {
				return sysError("read activity: %w", err)
			}

			if a.flags.jsonMode {
				return writeJSON(cmd, entries)
			}
			out := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(out, "%s, %s, %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Action, e.Details)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "show only the most recent N entries (0 for all)")
	return cmd
}

func newSessionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List stored sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := a.attachStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			list, err := store.ListSessions()
			if err != nil {
				return sysError("list sessions: %w", err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, list)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSHAPES\tUNDO\tREDO\tUPDATED")
			for _, s := range list {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", s.Name, s.Shapes, s.UndoDepth, s.RedoDepth,
					s.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
			}
			return tw.Flush()
		},
	}
	cmd.AddCommand(newSessionsDeleteCmd(a))
	return cmd
}

func newSessionsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a session with its history and activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := a.attachStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			err = store.DeleteSession(args[0])
			if errors.Is(err, types.ErrSessionNotFound) || errors.Is(err, types.ErrInvalidSessionName) {
				return userError("%w", err)
			}
			if err != nil {
				return sysError("delete session: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted session %s\n", args[0])
			return nil
		},
	}
}
