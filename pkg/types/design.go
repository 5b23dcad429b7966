package types

import "errors"

// Editing errors.
var (
	ErrNoSelection = errors.New("no shape selected")
)

// Design is an ordered collection of shapes. Order is z-order: later shapes are
// drawn on top of earlier ones.
type Design []*Shape

// Clone returns a deep copy. Every shape in the copy is independent of the
// source and unselected. The result is never nil.
func (d Design) Clone() Design {
	out := make(Design, len(d))
	for i, s := range d {
		out[i] = s.Clone()
	}
	return out
}

// Equal reports whether two designs hold equal shapes in the same order.
// Selection flags are ignored.
func (d Design) Equal(o Design) bool {
	if len(d) != len(o) {
		return false
	}
	for i := range d {
		if !d[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Len returns the number of shapes.
func (d Design) Len() int { return len(d) }
