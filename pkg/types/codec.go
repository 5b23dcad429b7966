// One-line text codec for shapes. A layout file holds one shape per line:
//
//	<kind>,<x>,<y>,<width>,<height>,<fillHex>,<borderHex>,<thickness>
//
// kind is "rectangle" or anything else for an ellipse. Coordinates carry two
// decimals, colours are six lowercase hex digits and thickness is an integer.
// Trailing empty fields are ignored.
package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// fieldCount is the number of comma-separated fields in a shape line.
const fieldCount = 8

// Codec errors. Every parse failure wraps ErrMalformedLine.
var (
	ErrMalformedLine = errors.New("malformed shape line")
	ErrFieldCount    = fmt.Errorf("%w: expected %d fields", ErrMalformedLine, fieldCount)
	ErrInvalidNumber = fmt.Errorf("%w: invalid number", ErrMalformedLine)
	ErrInvalidColor  = fmt.Errorf("%w: invalid colour", ErrMalformedLine)
)

// MarshalLine encodes the shape as one layout-file line without a trailing
// newline. The selection flag is not written.
func (s *Shape) MarshalLine() string {
	return fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%d",
		s.kind, formatFixed(s.x), formatFixed(s.y), formatFixed(s.width), formatFixed(s.height),
		s.fill.Hex(), s.border.Hex(), s.thickness)
}

// formatFixed writes v with two decimals. Rounding is half away from zero on
// the shortest decimal form of v, so 85.125 becomes 85.13 and 1.005 becomes 1.01.
func formatFixed(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	whole, frac, _ := strings.Cut(strconv.FormatFloat(math.Abs(v), 'f', -1, 64), ".")
	frac += "000"
	kept := []byte(whole + frac[:2])
	if frac[2] >= '5' {
		i := len(kept) - 1
		for ; i >= 0 && kept[i] == '9'; i-- {
			kept[i] = '0'
		}
		if i < 0 {
			kept = append([]byte{'1'}, kept...)
		} else {
			kept[i]++
		}
	}
	n := len(kept)
	out := string(kept[:n-2]) + "." + string(kept[n-2:])
	if math.Signbit(v) {
		out = "-" + out
	}
	return out
}

// ParseLine decodes one layout-file line. It never panics; on failure it
// returns nil and an error wrapping ErrMalformedLine. The returned shape is
// never selected. Only the field count and the numeric and colour fields are
// checked; extents and thickness are taken as written.
func ParseLine(line string) (*Shape, error) {
	parts := strings.Split(line, ",")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) != fieldCount {
		return nil, fmt.Errorf("%w, got %d", ErrFieldCount, len(parts))
	}

	var nums [4]float64
	for i := range nums {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i+1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: field %d %q", ErrInvalidNumber, i+2, parts[i+1])
		}
		nums[i] = v
	}

	fill, err := ParseHexColor(parts[5])
	if err != nil {
		return nil, err
	}
	border, err := ParseHexColor(parts[6])
	if err != nil {
		return nil, err
	}

	thickness, err := strconv.Atoi(parts[7])
	if err != nil {
		return nil, fmt.Errorf("%w: thickness %q", ErrInvalidNumber, parts[7])
	}

	return &Shape{
		kind:      ParseKind(parts[0]),
		x:         nums[0],
		y:         nums[1],
		width:     nums[2],
		height:    nums[3],
		fill:      fill,
		border:    border,
		thickness: thickness,
	}, nil
}
