// Package canvas is a headless editing surface over a live design. It applies
// the placement and selection policy, routes style and scale edits to the
// selected shape, records history checkpoints, and reports each action to an
// activity logger. Rendering and input devices are left to callers.
package canvas

import (
	"fmt"
	"math"

	"github.com/mesh-intelligence/furnish/pkg/history"
	"github.com/mesh-intelligence/furnish/pkg/types"
)

// Action names reported to the activity logger.
const (
	ActionSelectShape     = "select_shape"
	ActionAddTable        = "add_table"
	ActionAddChair        = "add_chair"
	ActionScaleShape      = "scale_shape"
	ActionChangeFill      = "change_fill_color"
	ActionChangeBorder    = "change_border_color"
	ActionChangeThickness = "change_border_thickness"
	ActionClearCanvas     = "clear_canvas"
	ActionUndo            = "undo"
	ActionRedo            = "redo"
	ActionLoadDesign      = "load_design"
)

// ActivityLogger observes state-changing calls. It has no effect on editing.
type ActivityLogger interface {
	LogAction(action, details string)
}

type nopLogger struct{}

func (nopLogger) LogAction(string, string) {}

// Canvas owns the live design. It is not safe for concurrent use.
type Canvas struct {
	shapes   types.Design
	selected int
	history  *history.History
	opts     Options
	log      ActivityLogger
}

// New creates an empty canvas. A nil history gets a default-depth History and
// a nil logger discards activity.
func New(h *history.History, opts Options, log ActivityLogger) *Canvas {
	if h == nil {
		h = history.New(0)
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Canvas{
		shapes:   types.Design{},
		selected: -1,
		history:  h,
		opts:     opts.withDefaults(),
		log:      log,
	}
}

// Shapes returns the live design. Callers must not modify it.
func (c *Canvas) Shapes() types.Design {
	return c.shapes
}

// Selected returns the selected shape or nil.
func (c *Canvas) Selected() *types.Shape {
	if c.selected < 0 {
		return nil
	}
	return c.shapes[c.selected]
}

// SelectedIndex returns the index of the selected shape, or -1.
func (c *Canvas) SelectedIndex() int {
	return c.selected
}

// History returns the history manager backing Undo and Redo.
func (c *Canvas) History() *history.History {
	return c.history
}

// Options returns the effective options.
func (c *Canvas) Options() Options {
	return c.opts
}

// CanUndo reports whether Undo would change the design.
func (c *Canvas) CanUndo() bool { return c.history.CanUndo() }

// CanRedo reports whether Redo would change the design.
func (c *Canvas) CanRedo() bool { return c.history.CanRedo() }

// Restore installs a design without recording history, selecting the shape at
// index selected when it is in range. The canvas takes ownership of d.
func (c *Canvas) Restore(d types.Design, selected int) {
	if d == nil {
		d = types.Design{}
	}
	for _, s := range d {
		s.SetSelected(false)
	}
	c.shapes = d
	c.selected = -1
	if selected >= 0 && selected < len(d) {
		c.selectAt(selected)
	}
}

// HitTest returns the index of the shape containing (x, y), or -1. With
// HitStored the first match in stored order wins; with HitTopmost the last.
func (c *Canvas) HitTest(x, y float64) int {
	if c.opts.HitOrder == HitTopmost {
		for i := len(c.shapes) - 1; i >= 0; i-- {
			if c.shapes[i].ContainsPoint(x, y) {
				return i
			}
		}
		return -1
	}
	for i, s := range c.shapes {
		if s.ContainsPoint(x, y) {
			return i
		}
	}
	return -1
}

// Press handles the primary input at (x, y). A hit selects that shape and
// nothing else. A miss clears the selection and places a table centred on the
// point. Press reports whether a table was placed.
func (c *Canvas) Press(x, y float64) (bool, error) {
	if i := c.HitTest(x, y); i >= 0 {
		c.selectAt(i)
		c.log.LogAction(ActionSelectShape, fmt.Sprintf("Selected shape at (%s, %s)", coord(x), coord(y)))
		return false, nil
	}

	c.deselect()
	if err := c.place(types.KindRectangle, x, y, c.opts.TableSize, c.opts.TableFill); err != nil {
		return false, err
	}
	c.log.LogAction(ActionAddTable, fmt.Sprintf("Added table at (%s, %s)", coord(x), coord(y)))
	return true, nil
}

// PlaceChair handles the secondary input at (x, y): it places a chair centred
// on the point. The selection is left as is.
func (c *Canvas) PlaceChair(x, y float64) error {
	if err := c.place(types.KindEllipse, x, y, c.opts.ChairSize, c.opts.ChairFill); err != nil {
		return err
	}
	c.log.LogAction(ActionAddChair, fmt.Sprintf("Added chair at (%s, %s)", coord(x), coord(y)))
	return nil
}

func (c *Canvas) place(kind types.Kind, x, y, size float64, fill types.Color) error {
	s, err := types.NewShape(kind, x-size/2, y-size/2, size, size, fill)
	if err != nil {
		return fmt.Errorf("place %s: %w", kind, err)
	}
	c.checkpoint()
	c.shapes = append(c.shapes, s)
	return nil
}

// Grow enlarges the selected shape by the configured scale factor.
func (c *Canvas) Grow() error {
	return c.scale(c.opts.ScaleFactor, "Increased size")
}

// Shrink reduces the selected shape by the configured scale factor.
func (c *Canvas) Shrink() error {
	return c.scale(1/c.opts.ScaleFactor, "Decreased size")
}

// ScaleSelected scales the selected shape about its centre. Returns
// ErrNoSelection when nothing is selected and ErrInvalidScale unless factor is
// a positive finite number that leaves both extents finite and at least
// types.MinExtent.
func (c *Canvas) ScaleSelected(factor float64) error {
	return c.scale(factor, fmt.Sprintf("Scaled by %g", factor))
}

func (c *Canvas) scale(factor float64, details string) error {
	if !(factor > 0) || math.IsInf(factor, 1) {
		return types.ErrInvalidScale
	}
	if c.selected < 0 {
		return types.ErrNoSelection
	}
	s := c.shapes[c.selected]
	if !fitsExtent(s.Width()*factor) || !fitsExtent(s.Height()*factor) {
		return types.ErrInvalidScale
	}
	c.checkpoint()
	s.Scale(factor)
	c.log.LogAction(ActionScaleShape, details)
	return nil
}

func fitsExtent(v float64) bool {
	return v >= types.MinExtent && !math.IsInf(v, 1)
}

// SetSelectedFill changes the selected shape's fill colour.
func (c *Canvas) SetSelectedFill(col types.Color) error {
	if c.selected < 0 {
		return types.ErrNoSelection
	}
	c.checkpoint()
	c.shapes[c.selected].SetFillColor(col)
	c.log.LogAction(ActionChangeFill, "New color: "+col.Hex())
	return nil
}

// SetSelectedBorder changes the selected shape's border colour.
func (c *Canvas) SetSelectedBorder(col types.Color) error {
	if c.selected < 0 {
		return types.ErrNoSelection
	}
	c.checkpoint()
	c.shapes[c.selected].SetBorderColor(col)
	c.log.LogAction(ActionChangeBorder, "New color: "+col.Hex())
	return nil
}

// SetSelectedThickness changes the selected shape's border thickness.
// Returns ErrInvalidThickness when n < 1.
func (c *Canvas) SetSelectedThickness(n int) error {
	if n < 1 {
		return types.ErrInvalidThickness
	}
	if c.selected < 0 {
		return types.ErrNoSelection
	}
	c.checkpoint()
	c.shapes[c.selected].SetBorderThickness(n)
	c.log.LogAction(ActionChangeThickness, fmt.Sprintf("New thickness: %d", n))
	return nil
}

// Clear removes every shape.
func (c *Canvas) Clear() {
	c.checkpoint()
	c.shapes = types.Design{}
	c.selected = -1
	c.log.LogAction(ActionClearCanvas, "All shapes removed")
}

// Load replaces the live design with a copy of d. The previous design stays
// reachable through Undo. source describes where d came from for the log.
func (c *Canvas) Load(d types.Design, source string) {
	c.checkpoint()
	c.shapes = d.Clone()
	c.selected = -1
	c.log.LogAction(ActionLoadDesign, "Loaded from: "+source)
}

// Undo restores the previous design. It reports false when there is nothing
// to undo. The selection is cleared.
func (c *Canvas) Undo() bool {
	if !c.history.CanUndo() {
		return false
	}
	c.deselect()
	c.shapes = c.history.Undo(c.shapes)
	c.log.LogAction(ActionUndo, "Reverted to previous state")
	return true
}

// Redo reapplies the most recently undone design. It reports false when there
// is nothing to redo. The selection is cleared.
func (c *Canvas) Redo() bool {
	if !c.history.CanRedo() {
		return false
	}
	c.deselect()
	c.shapes = c.history.Redo(c.shapes)
	c.log.LogAction(ActionRedo, "Restored next state")
	return true
}

// checkpoint records the current design before an edit.
func (c *Canvas) checkpoint() {
	c.history.Snapshot(c.shapes)
}

func (c *Canvas) selectAt(i int) {
	c.deselect()
	c.selected = i
	c.shapes[i].SetSelected(true)
}

func (c *Canvas) deselect() {
	if c.selected >= 0 && c.selected < len(c.shapes) {
		c.shapes[c.selected].SetSelected(false)
	}
	c.selected = -1
}

func coord(v float64) string {
	return fmt.Sprintf("%g", v)
}
