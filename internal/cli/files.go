package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/furnish/internal/designfile"
	"github.com/mesh-intelligence/furnish/internal/export"
)

const actionExportPDF = "export_pdf"

// fileArg returns the absolute path named by args, or the default layout file.
func fileArg(args []string) (string, error) {
	name := designfile.DefaultName
	if len(args) > 0 {
		name = args[0]
	}
	path, err := filepath.Abs(name)
	if err != nil {
		return "", userError("resolve %s: %w", name, err)
	}
	return path, nil
}

func newSaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save [file]",
		Short: "Write the layout to a text file (default design.txt)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := fileArg(args)
			if err != nil {
				return err
			}
			return a.edit(cmd, func(w *workspace) error {
				if err := designfile.Save(path, w.canvas.Shapes()); err != nil {
					return sysError("save layout: %w", err)
				}
				w.LogAction(actionSaveDesign, "Saved to: "+path)
				return nil
			})
		},
	}
}

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load [file]",
		Short: "Replace the layout with one read from a text file (default design.txt)",
		Long: `Load reads a layout file and replaces the current shapes with its contents.
Malformed lines are skipped. The previous layout can be restored with undo.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := fileArg(args)
			if err != nil {
				return err
			}
			d, skipped, err := designfile.Load(path)
			if errors.Is(err, os.ErrNotExist) {
				return userError("load layout: %w", err)
			}
			if err != nil {
				return sysError("load layout: %w", err)
			}
			if skipped > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d malformed line(s) in %s\n", skipped, path)
			}
			return a.edit(cmd, func(w *workspace) error {
				w.canvas.Load(d, path)
				return nil
			})
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "export <file.png|file.pdf>",
		Short: "Render the layout to a PNG or PDF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return userError("resolve %s: %w", args[0], err)
			}
			format, err := export.FormatFor(path)
			if err != nil {
				return userError("%w", err)
			}
			if !cmd.Flags().Changed("width") {
				width = a.cfg.ExportWidth
			}
			if !cmd.Flags().Changed("height") {
				height = a.cfg.ExportHeight
			}
			if width <= 0 || height <= 0 {
				return userError("%w: %dx%d", export.ErrInvalidSize, width, height)
			}

			return a.edit(cmd, func(w *workspace) error {
				if err := export.File(path, w.canvas.Shapes(), width, height); err != nil {
					return sysError("export: %w", err)
				}
				action := actionExportPNG
				if format == export.FormatPDF {
					action = actionExportPDF
				}
				w.LogAction(action, "Exported to: "+path)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "output width (default: export_width from config)")
	cmd.Flags().IntVar(&height, "height", 0, "output height (default: export_height from config)")
	return cmd
}
