package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize furnish configuration and storage",
		Long:  "Create the configuration and data directories, then initialize the session store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// setup has already created the config directory and config.yaml.
			store, dataDir, err := a.attachStore()
			if err != nil {
				return err
			}
			if err := store.Detach(); err != nil {
				return sysError("finalize storage: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "furnish initialized successfully")
			fmt.Fprintf(out, "config: %s\ndata:   %s\n", a.configDir, dataDir)
			return nil
		},
	}
}
