// Package history keeps bounded undo and redo stacks of full design
// snapshots. Every snapshot is a deep copy: the manager never aliases a shape
// held by the caller or by another stack entry.
//
// A History is meant to be driven from one goroutine, the one that owns the
// live design. It does no locking.
package history

import (
	"github.com/gammazero/deque"

	"github.com/mesh-intelligence/furnish/pkg/furnish"
	"github.com/mesh-intelligence/furnish/pkg/types"
)

// DefaultMaxDepth is the undo stack capacity used when none is given.
const DefaultMaxDepth = 50

// History manages the undo and redo stacks. The back of each deque is the top
// of its stack.
type History struct {
	undo     deque.Deque[types.Design]
	redo     deque.Deque[types.Design]
	maxDepth int
}

// New creates an empty history whose undo stack holds at most maxDepth
// snapshots. A maxDepth of zero or less selects DefaultMaxDepth.
func New(maxDepth int) *History {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &History{maxDepth: maxDepth}
}

// Snapshot pushes a deep copy of live onto the undo stack and clears the redo
// stack. When the undo stack exceeds its capacity the oldest snapshot is
// evicted.
func (h *History) Snapshot(live types.Design) {
	h.undo.PushBack(live.Clone())
	h.redo.Clear()

	for h.undo.Len() > h.maxDepth {
		h.undo.PopFront()
		furnish.Logger().Debug("evicted oldest undo snapshot", "max_depth", h.maxDepth)
	}
}

// Undo returns the most recent undo snapshot and pushes a deep copy of current
// onto the redo stack. With an empty undo stack it returns current unchanged.
func (h *History) Undo(current types.Design) types.Design {
	if h.undo.Len() == 0 {
		return current
	}
	h.redo.PushBack(current.Clone())
	return h.undo.PopBack()
}

// Redo returns the most recent redo snapshot and pushes a deep copy of current
// onto the undo stack. With an empty redo stack it returns current unchanged.
func (h *History) Redo(current types.Design) types.Design {
	if h.redo.Len() == 0 {
		return current
	}
	h.undo.PushBack(current.Clone())
	return h.redo.PopBack()
}

// CanUndo reports whether an undo snapshot is available.
func (h *History) CanUndo() bool {
	return h.undo.Len() > 0
}

// CanRedo reports whether a redo snapshot is available.
func (h *History) CanRedo() bool {
	return h.redo.Len() > 0
}

// UndoDepth returns the number of undo snapshots.
func (h *History) UndoDepth() int {
	return h.undo.Len()
}

// RedoDepth returns the number of redo snapshots.
func (h *History) RedoDepth() int {
	return h.redo.Len()
}

// MaxDepth returns the undo stack capacity.
func (h *History) MaxDepth() int {
	return h.maxDepth
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.undo.Clear()
	h.redo.Clear()
}

// Stacks returns deep copies of both stacks, oldest snapshot first.
func (h *History) Stacks() (undo, redo []types.Design) {
	return copyStack(&h.undo), copyStack(&h.redo)
}

// Restore replaces both stacks with deep copies of the given snapshots,
// oldest first. If undo is longer than the capacity only the newest entries
// are kept. The redo stack is taken as given.
func (h *History) Restore(undo, redo []types.Design) {
	h.Clear()
	if excess := len(undo) - h.maxDepth; excess > 0 {
		undo = undo[excess:]
	}
	for _, d := range undo {
		h.undo.PushBack(d.Clone())
	}
	for _, d := range redo {
		h.redo.PushBack(d.Clone())
	}
}

func copyStack(q *deque.Deque[types.Design]) []types.Design {
	out := make([]types.Design, q.Len())
	for i := range out {
		out[i] = q.At(i).Clone()
	}
	return out
}
