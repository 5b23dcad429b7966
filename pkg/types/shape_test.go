package types

import (
	"errors"
	"math"
	"testing"
)

func mustShape(t *testing.T, kind Kind, x, y, w, h float64) *Shape {
	t.Helper()
	s, err := NewShape(kind, x, y, w, h, TableBrown)
	if err != nil {
		t.Fatalf("NewShape: %v", err)
	}
	return s
}

func TestNewShapeDefaults(t *testing.T) {
	s := mustShape(t, KindRectangle, 75, 75, 50, 50)

	if s.BorderColor() != Black {
		t.Fatalf("expected black border, got %s", s.BorderColor())
	}
	if s.BorderThickness() != 1 {
		t.Fatalf("expected thickness 1, got %d", s.BorderThickness())
	}
	if s.Selected() {
		t.Fatal("new shape must not be selected")
	}
	if s.FillColor() != TableBrown {
		t.Fatalf("expected fill %s, got %s", TableBrown, s.FillColor())
	}
}

func TestNewShapeRejectsBadExtent(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
	}{
		{"zero width", 0, 10},
		{"negative height", 10, -1},
		{"nan width", math.NaN(), 10},
		{"infinite height", 10, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewShape(KindEllipse, 0, 0, tt.width, tt.height, Black)
			if !errors.Is(err, ErrInvalidExtent) {
				t.Fatalf("expected ErrInvalidExtent, got %v", err)
			}
		})
	}
}

func TestContainsPointRectangle(t *testing.T) {
	s := mustShape(t, KindRectangle, 10, 20, 30, 40)

	tests := []struct {
		name   string
		px, py float64
		want   bool
	}{
		{"interior", 25, 40, true},
		{"top-left corner", 10, 20, true},
		{"right edge excluded", 40, 30, false},
		{"bottom edge excluded", 20, 60, false},
		{"left of box", 9.99, 30, false},
		{"above box", 20, 19.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ContainsPoint(tt.px, tt.py); got != tt.want {
				t.Fatalf("ContainsPoint(%v, %v) = %v, want %v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}

func TestContainsPointEllipse(t *testing.T) {
	// Centre (50, 50), radii 40 and 20.
	s := mustShape(t, KindEllipse, 10, 30, 80, 40)

	tests := []struct {
		name   string
		px, py float64
		want   bool
	}{
		{"centre", 50, 50, true},
		{"rightmost point", 90, 50, true},
		{"bounding-box corner", 11, 31, false},
		{"inside box outside ellipse", 85, 65, false},
		{"just inside horizontally", 89, 50, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.ContainsPoint(tt.px, tt.py); got != tt.want {
				t.Fatalf("ContainsPoint(%v, %v) = %v, want %v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}

func TestScaleKeepsCentre(t *testing.T) {
	s := mustShape(t, KindRectangle, 75, 75, 50, 50)
	cx, cy := s.Center()

	s.Scale(1.1)

	if math.Abs(s.Width()-55) > 1e-9 || math.Abs(s.Height()-55) > 1e-9 {
		t.Fatalf("expected 55x55, got %vx%v", s.Width(), s.Height())
	}
	if math.Abs(s.X()-72.5) > 1e-9 || math.Abs(s.Y()-72.5) > 1e-9 {
		t.Fatalf("expected origin (72.5, 72.5), got (%v, %v)", s.X(), s.Y())
	}
	ncx, ncy := s.Center()
	if math.Abs(ncx-cx) > 1e-9 || math.Abs(ncy-cy) > 1e-9 {
		t.Fatalf("centre moved from (%v, %v) to (%v, %v)", cx, cy, ncx, ncy)
	}
}

func TestScaleByOneIsNoOp(t *testing.T) {
	s := mustShape(t, KindEllipse, 3.25, -7.5, 12.5, 30)
	before := s.Clone()

	s.Scale(1)
	s.Scale(1)

	if !s.Equal(before) {
		t.Fatalf("scale(1) changed shape: %s -> %s", before.MarshalLine(), s.MarshalLine())
	}
}

func TestScaleInverse(t *testing.T) {
	for _, f := range []float64{0.01, 0.5, 1.1, 2, 3.7, 1000} {
		s := mustShape(t, KindRectangle, 100, 200, 50, 25)
		s.Scale(f)
		s.Scale(1 / f)

		const eps = 1e-9
		if math.Abs(s.X()-100) > eps*1000 || math.Abs(s.Y()-200) > eps*1000 ||
			math.Abs(s.Width()-50) > eps*1000 || math.Abs(s.Height()-25) > eps*1000 {
			t.Fatalf("factor %v: got %v,%v %vx%v", f, s.X(), s.Y(), s.Width(), s.Height())
		}
	}
}

func TestStyleSettersLeaveGeometry(t *testing.T) {
	s := mustShape(t, KindRectangle, 1, 2, 3, 4)
	s.SetFillColor(White)
	s.SetBorderColor(Blue)
	s.SetBorderThickness(4)

	x, y, w, h := s.Bounds()
	if x != 1 || y != 2 || w != 3 || h != 4 {
		t.Fatalf("geometry changed: %v %v %v %v", x, y, w, h)
	}
	if s.FillColor() != White || s.BorderColor() != Blue || s.BorderThickness() != 4 {
		t.Fatalf("style not applied: %s", s.MarshalLine())
	}
}

func TestCloneIsIndependentAndUnselected(t *testing.T) {
	s := mustShape(t, KindRectangle, 0, 0, 10, 10)
	s.SetSelected(true)

	c := s.Clone()
	if c.Selected() {
		t.Fatal("clone must not be selected")
	}
	if !c.Equal(s) {
		t.Fatal("clone must equal source")
	}

	c.Scale(2)
	c.SetFillColor(Blue)
	if s.Width() != 10 || s.FillColor() != TableBrown {
		t.Fatal("mutating clone changed source")
	}
}

func TestSelectionIgnoredByEqual(t *testing.T) {
	a := mustShape(t, KindEllipse, 0, 0, 10, 10)
	b := a.Clone()
	a.SetSelected(true)
	if !a.Equal(b) {
		t.Fatal("selection must not affect equality")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		token string
		want  Kind
	}{
		{"rectangle", KindRectangle},
		{"circle", KindEllipse},
		{"Rectangle", KindEllipse},
		{"ellipse", KindEllipse},
		{"", KindEllipse},
	}
	for _, tt := range tests {
		if got := ParseKind(tt.token); got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}
