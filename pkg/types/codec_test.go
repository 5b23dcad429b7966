package types

import (
	"errors"
	"math"
	"testing"
)

func TestMarshalLine(t *testing.T) {
	s := mustShape(t, KindRectangle, 75, 75, 50, 50)
	want := "rectangle,75.00,75.00,50.00,50.00,8b4513,000000,1"
	if got := s.MarshalLine(); got != want {
		t.Fatalf("MarshalLine() = %q, want %q", got, want)
	}

	c, err := NewShape(KindEllipse, 85.125, 10, 30, 30, ChairTan)
	if err != nil {
		t.Fatal(err)
	}
	c.SetBorderColor(RGB(0x00ff10))
	c.SetBorderThickness(4)
	c.SetSelected(true)
	want = "circle,85.13,10.00,30.00,30.00,d2b48c,00ff10,4"
	if got := c.MarshalLine(); got != want {
		t.Fatalf("MarshalLine() = %q, want %q", got, want)
	}
}

func TestFormatFixedRoundsHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{75, "75.00"},
		{85.125, "85.13"},
		{1.005, "1.01"},
		{0.125, "0.13"},
		{-2.675, "-2.68"},
		{9.995, "10.00"},
		{99.999, "100.00"},
		{0.004, "0.00"},
		{-0.001, "-0.00"},
		{12.344, "12.34"},
		{1e21, "1000000000000000000000.00"},
	}
	for _, tt := range tests {
		if got := formatFixed(tt.in); got != tt.want {
			t.Errorf("formatFixed(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseLineRoundTrip(t *testing.T) {
	shapes := []*Shape{
		mustShape(t, KindRectangle, 75, 75, 50, 50),
		mustShape(t, KindEllipse, -12.345, 0.004, 33.333, 1.5),
		mustShape(t, KindRectangle, 1e4, 2e4, 0.01, 999.99),
	}
	shapes[1].SetBorderColor(RGB(0xabcdef))
	shapes[1].SetBorderThickness(2)
	shapes[2].SetSelected(true)

	for _, s := range shapes {
		line := s.MarshalLine()
		got, err := ParseLine(line)
		if err != nil {
			t.Fatalf("ParseLine(%q): %v", line, err)
		}
		if got.Kind() != s.Kind() {
			t.Fatalf("kind mismatch for %q", line)
		}
		if got.Selected() {
			t.Fatalf("parsed shape must not be selected: %q", line)
		}
		if got.FillColor() != s.FillColor() || got.BorderColor() != s.BorderColor() ||
			got.BorderThickness() != s.BorderThickness() {
			t.Fatalf("style mismatch for %q", line)
		}
		for _, pair := range [][2]float64{
			{got.X(), s.X()}, {got.Y(), s.Y()},
			{got.Width(), s.Width()}, {got.Height(), s.Height()},
		} {
			if math.Abs(pair[0]-pair[1]) > 0.005+1e-9 {
				t.Fatalf("geometry mismatch for %q: %v vs %v", line, pair[0], pair[1])
			}
		}
		if again := got.MarshalLine(); again != line {
			t.Fatalf("second encoding differs: %q vs %q", again, line)
		}
	}
}

func TestParseLineKindRule(t *testing.T) {
	for token, want := range map[string]Kind{
		"rectangle": KindRectangle,
		"circle":    KindEllipse,
		"table":     KindEllipse,
		"RECTANGLE": KindEllipse,
	} {
		s, err := ParseLine(token + ",1,2,3,4,ffffff,000000,1")
		if err != nil {
			t.Fatalf("token %q: %v", token, err)
		}
		if s.Kind() != want {
			t.Fatalf("token %q: got %v, want %v", token, s.Kind(), want)
		}
	}
}

func TestParseLineAcceptsShortHex(t *testing.T) {
	s, err := ParseLine("circle,0,0,10,10,ff,1,2")
	if err != nil {
		t.Fatal(err)
	}
	if s.FillColor() != RGB(0x0000ff) {
		t.Fatalf("expected 0000ff, got %s", s.FillColor())
	}
	if s.BorderColor() != RGB(0x000001) {
		t.Fatalf("expected 000001, got %s", s.BorderColor())
	}
}

func TestParseLineTakesValuesAsWritten(t *testing.T) {
	s, err := ParseLine("rectangle,1.00,2.00,0.00,5.00,ffffff,000000,0")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if s.Width() != 0 || s.Height() != 5 || s.BorderThickness() != 0 {
		t.Fatalf("got %s", s.MarshalLine())
	}

	s, err = ParseLine("circle,0,0,-3,4,ffffff,000000,-1")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if s.Width() != -3 || s.BorderThickness() != -1 {
		t.Fatalf("got %s", s.MarshalLine())
	}
}

func TestParseLineIgnoresTrailingEmptyFields(t *testing.T) {
	for _, line := range []string{
		"rectangle,1,2,3,4,ff,0,1,",
		"rectangle,1,2,3,4,ff,0,1,,,",
	} {
		s, err := ParseLine(line)
		if err != nil {
			t.Fatalf("ParseLine(%q): %v", line, err)
		}
		if got := s.MarshalLine(); got != "rectangle,1.00,2.00,3.00,4.00,0000ff,000000,1" {
			t.Fatalf("ParseLine(%q) = %q", line, got)
		}
	}
}

func TestParseLineFailures(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr error
	}{
		{"empty line", "", ErrFieldCount},
		{"seven fields", "rectangle,1,2,3,4,ffffff,000000", ErrFieldCount},
		{"nine fields", "rectangle,1,2,3,4,ffffff,000000,1,9", ErrFieldCount},
		{"non-numeric x", "rectangle,abc,2,3,4,ffffff,000000,1", ErrInvalidNumber},
		{"non-numeric height", "circle,1,2,3,tall,ffffff,000000,1", ErrInvalidNumber},
		{"bad fill", "rectangle,1,2,3,4,zzzzzz,000000,1", ErrInvalidColor},
		{"bad border", "rectangle,1,2,3,4,ffffff,#000000,1", ErrInvalidColor},
		{"fractional thickness", "rectangle,1,2,3,4,ffffff,000000,1.5", ErrInvalidNumber},
		{"empty thickness dropped", "rectangle,1,2,3,4,ffffff,000000,", ErrFieldCount},
		{"empty middle field", "rectangle,1,,3,4,ffffff,000000,1", ErrInvalidNumber},
		{"only commas", ",,,,,,,", ErrFieldCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseLine(tt.line)
			if s != nil {
				t.Fatalf("expected nil shape, got %v", s.MarshalLine())
			}
			if !errors.Is(err, ErrMalformedLine) {
				t.Fatalf("expected ErrMalformedLine, got %v", err)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestColorHelpers(t *testing.T) {
	c := RGB(0x8b4513)
	if c != TableBrown {
		t.Fatalf("RGB(0x8b4513) = %+v", c)
	}
	if c.Hex() != "8b4513" {
		t.Fatalf("Hex() = %q", c.Hex())
	}
	r, g, b, a := c.RGBA()
	if r != 0x8b8b || g != 0x4545 || b != 0x1313 || a != 0xffff {
		t.Fatalf("RGBA() = %x %x %x %x", r, g, b, a)
	}
	if RGB(0xff123456) != RGB(0x123456) {
		t.Fatal("high bits must be ignored")
	}
	neg, err := ParseHexColor("-1")
	if err != nil {
		t.Fatal(err)
	}
	if neg != White {
		t.Fatalf("expected ffffff for -1, got %s", neg)
	}
}
