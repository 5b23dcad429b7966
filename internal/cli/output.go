package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/furnish/pkg/types"
)

// stateView is the JSON shape of a session after a command.
type stateView struct {
	Session   string       `json:"session"`
	Shapes    types.Design `json:"shapes"`
	Selected  int          `json:"selected"`
	UndoDepth int          `json:"undo_depth"`
	RedoDepth int          `json:"redo_depth"`
	CanUndo   bool         `json:"can_undo"`
	CanRedo   bool         `json:"can_redo"`
}

func newStateView(w *workspace) stateView {
	return stateView{
		Session:   w.session.Name,
		Shapes:    w.canvas.Shapes(),
		Selected:  w.canvas.SelectedIndex(),
		UndoDepth: w.hist.UndoDepth(),
		RedoDepth: w.hist.RedoDepth(),
		CanUndo:   w.canvas.CanUndo(),
		CanRedo:   w.canvas.CanRedo(),
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError("marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
