package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/furnish/pkg/types"
)

func parseCoord(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, userError("invalid %s %q: expected a number", name, s)
	}
	return v, nil
}

func parsePoint(args []string) (x, y float64, err error) {
	if x, err = parseCoord("x", args[0]); err != nil {
		return 0, 0, err
	}
	if y, err = parseCoord("y", args[1]); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func newClickCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "click <x> <y>",
		Short: "Select the shape at a point, or place a table there",
		Long: `Click performs the primary press at (x, y). If a shape contains the point
it becomes the only selected shape. Otherwise the selection is cleared and a
table is placed centred on the point.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parsePoint(args)
			if err != nil {
				return err
			}
			return a.edit(cmd, func(w *workspace) error {
				if _, err := w.canvas.Press(x, y); err != nil {
					return canvasError(err)
				}
				return nil
			})
		},
	}
}

func newChairCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chair <x> <y>",
		Short: "Place a chair centred on a point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parsePoint(args)
			if err != nil {
				return err
			}
			return a.edit(cmd, func(w *workspace) error {
				if err := w.canvas.PlaceChair(x, y); err != nil {
					return canvasError(err)
				}
				return nil
			})
		},
	}
}

func newScaleCmd(a *app) *cobra.Command {
	var factor float64
	cmd := &cobra.Command{
		Use:   "scale up|down",
		Short: "Grow or shrink the selected shape about its centre",
		Long: `Scale multiplies the selected shape's size by the configured scale factor
(up) or divides it (down). --factor overrides the configured factor.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			custom := cmd.Flags().Changed("factor")
			if custom && (!(factor > 0) || math.IsInf(factor, 0)) {
				return userError("%w: %v", types.ErrInvalidScale, factor)
			}
			var op func(w *workspace) error
			switch args[0] {
			case "up":
				op = func(w *workspace) error { return w.canvas.Grow() }
				if custom {
					op = func(w *workspace) error { return w.canvas.ScaleSelected(factor) }
				}
			case "down":
				op = func(w *workspace) error { return w.canvas.Shrink() }
				if custom {
					op = func(w *workspace) error { return w.canvas.ScaleSelected(1 / factor) }
				}
			default:
				return userError("unknown direction %q (valid: up, down)", args[0])
			}
			return a.edit(cmd, func(w *workspace) error {
				if err := op(w); err != nil {
					return canvasError(err)
				}
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&factor, "factor", 0, "scale factor (default: scale_factor from config)")
	return cmd
}

func newColorCmd(a *app, use, short string, apply func(w *workspace, c types.Color) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <color>",
		Short: short,
		Long:  short + ".\nColours are hex: #rrggbb, rrggbb, #rgb or rgb.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseColor(args[0])
			if err != nil {
				return userError("%w", err)
			}
			return a.edit(cmd, func(w *workspace) error {
				if err := apply(w, c); err != nil {
					return canvasError(err)
				}
				return nil
			})
		},
	}
}

func newFillCmd(a *app) *cobra.Command {
	return newColorCmd(a, "fill", "Set the fill colour of the selected shape",
		func(w *workspace, c types.Color) error { return w.canvas.SetSelectedFill(c) })
}

func newBorderCmd(a *app) *cobra.Command {
	return newColorCmd(a, "border", "Set the border colour of the selected shape",
		func(w *workspace, c types.Color) error { return w.canvas.SetSelectedBorder(c) })
}

func newThicknessCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "thickness <n>",
		Short: "Set the border thickness of the selected shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return userError("invalid thickness %q: expected an integer", args[0])
			}
			return a.edit(cmd, func(w *workspace) error {
				if err := w.canvas.SetSelectedThickness(n); err != nil {
					return canvasError(err)
				}
				return nil
			})
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd, func(w *workspace) error {
				w.canvas.Clear()
				return nil
			})
		},
	}
}

func newUndoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the last edit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd, func(w *workspace) error {
				w.canvas.Undo()
				return nil
			})
		},
	}
}

func newRedoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Reapply the last undone edit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(cmd, func(w *workspace) error {
				w.canvas.Redo()
				return nil
			})
		},
	}
}

// describe renders one shape for text output.
func describe(i int, s *types.Shape) string {
	mark := " "
	if s.Selected() {
		mark = "*"
	}
	return fmt.Sprintf("%s %d  %s", mark, i, s.MarshalLine())
}
