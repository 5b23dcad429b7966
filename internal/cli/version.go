package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/furnish/pkg/furnish"
)

const modulePath = "github.com/mesh-intelligence/furnish"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the furnish version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "furnish v%s\nmodule: %s\n", furnish.Version, modulePath)
			return nil
		},
	}
}
