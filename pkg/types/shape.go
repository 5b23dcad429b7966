package types

import (
	"encoding/json"
	"errors"
	"math"
)

// Kind is the closed set of shape geometries. Tables are rectangles and chairs
// are ellipses.
type Kind int

const (
	KindRectangle Kind = iota
	KindEllipse
)

// Kind tokens as they appear in layout files.
const (
	tokenRectangle = "rectangle"
	tokenEllipse   = "circle"
)

// String returns the layout-file token for the kind.
func (k Kind) String() string {
	if k == KindRectangle {
		return tokenRectangle
	}
	return tokenEllipse
}

// ParseKind maps a layout-file token to a Kind. Only the exact token
// "rectangle" yields KindRectangle; every other token yields KindEllipse.
func ParseKind(token string) Kind {
	if token == tokenRectangle {
		return KindRectangle
	}
	return KindEllipse
}

// Geometry and style errors.
var (
	ErrInvalidExtent    = errors.New("width and height must be positive")
	ErrInvalidScale     = errors.New("scale factor must be positive and leave a drawable extent")
	ErrInvalidThickness = errors.New("border thickness must be at least 1")
)

// MinExtent is the smallest width or height that still reads back as non-zero
// from the two-decimal line format.
const MinExtent = 0.005

// Shape is one placed furniture item. Its kind is fixed at creation; its
// geometry changes only through Scale. The selected flag is transient: it is
// never persisted and is false on every new, parsed, or cloned shape.
type Shape struct {
	kind      Kind
	x, y      float64
	width     float64
	height    float64
	fill      Color
	border    Color
	thickness int
	selected  bool
}

// NewShape creates an unselected shape with a black border of thickness 1.
// Returns ErrInvalidExtent if width or height is not a positive finite number.
func NewShape(kind Kind, x, y, width, height float64, fill Color) (*Shape, error) {
	if !validExtent(width) || !validExtent(height) {
		return nil, ErrInvalidExtent
	}
	return &Shape{
		kind:      kind,
		x:         x,
		y:         y,
		width:     width,
		height:    height,
		fill:      fill,
		border:    Black,
		thickness: 1,
	}, nil
}

func validExtent(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Kind returns the shape's geometry kind.
func (s *Shape) Kind() Kind { return s.kind }

// X returns the left edge of the bounding box.
func (s *Shape) X() float64 { return s.x }

// Y returns the top edge of the bounding box.
func (s *Shape) Y() float64 { return s.y }

// Width returns the bounding-box width.
func (s *Shape) Width() float64 { return s.width }

// Height returns the bounding-box height.
func (s *Shape) Height() float64 { return s.height }

// Bounds returns the bounding box as x, y, width, height.
func (s *Shape) Bounds() (x, y, width, height float64) {
	return s.x, s.y, s.width, s.height
}

// Center returns the centre of the bounding box.
func (s *Shape) Center() (cx, cy float64) {
	return s.x + s.width/2, s.y + s.height/2
}

// ContainsPoint reports whether (px, py) lies inside the shape. Rectangles use
// a half-open test: the left and top edges are inside, the right and bottom
// edges are not. Ellipses use the normalized distance from the centre.
func (s *Shape) ContainsPoint(px, py float64) bool {
	switch s.kind {
	case KindRectangle:
		return px >= s.x && px < s.x+s.width &&
			py >= s.y && py < s.y+s.height
	default:
		cx, cy := s.Center()
		nx := (px - cx) / (s.width / 2)
		ny := (py - cy) / (s.height / 2)
		return nx*nx+ny*ny <= 1
	}
}

// Scale multiplies width and height by factor and moves the origin so the
// centre stays fixed. factor must be positive; callers validate it.
func (s *Shape) Scale(factor float64) {
	newWidth := s.width * factor
	newHeight := s.height * factor
	s.x += (s.width - newWidth) / 2
	s.y += (s.height - newHeight) / 2
	s.width = newWidth
	s.height = newHeight
}

// FillColor returns the interior colour.
func (s *Shape) FillColor() Color { return s.fill }

// SetFillColor sets the interior colour.
func (s *Shape) SetFillColor(c Color) { s.fill = c }

// BorderColor returns the outline colour.
func (s *Shape) BorderColor() Color { return s.border }

// SetBorderColor sets the outline colour.
func (s *Shape) SetBorderColor(c Color) { s.border = c }

// BorderThickness returns the outline stroke width in pixels.
func (s *Shape) BorderThickness() int { return s.thickness }

// SetBorderThickness sets the outline stroke width. n must be at least 1;
// callers validate it.
func (s *Shape) SetBorderThickness(n int) { s.thickness = n }

// Selected reports whether the shape is currently selected.
func (s *Shape) Selected() bool { return s.selected }

// SetSelected sets the transient selection flag.
func (s *Shape) SetSelected(selected bool) { s.selected = selected }

// Clone returns an independent copy of the shape. The copy is never selected.
func (s *Shape) Clone() *Shape {
	c := *s
	c.selected = false
	return &c
}

// Equal reports whether two shapes have the same kind, geometry, and style.
// The selection flag is ignored.
func (s *Shape) Equal(o *Shape) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.kind == o.kind &&
		s.x == o.x && s.y == o.y &&
		s.width == o.width && s.height == o.height &&
		s.fill == o.fill && s.border == o.border &&
		s.thickness == o.thickness
}

// shapeJSON is the JSON view used by --json output.
type shapeJSON struct {
	Kind      string  `json:"kind"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Fill      string  `json:"fill"`
	Border    string  `json:"border"`
	Thickness int     `json:"thickness"`
	Selected  bool    `json:"selected"`
}

// MarshalJSON implements json.Marshaler.
func (s *Shape) MarshalJSON() ([]byte, error) {
	return json.Marshal(shapeJSON{
		Kind:      s.kind.String(),
		X:         s.x,
		Y:         s.y,
		Width:     s.width,
		Height:    s.height,
		Fill:      s.fill.Hex(),
		Border:    s.border.Hex(),
		Thickness: s.thickness,
		Selected:  s.selected,
	})
}
