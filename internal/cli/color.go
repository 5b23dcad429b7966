package cli

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/mesh-intelligence/furnish/pkg/types"
)

// parseColor accepts "#rrggbb", "rrggbb", "#rgb" or "rgb".
func parseColor(s string) (types.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return types.Color{}, fmt.Errorf("%w: %q", types.ErrInvalidColor, s)
	}
	r, g, b := c.RGB255()
	return types.Color{R: r, G: g, B: b}, nil
}
