package canvas

import (
	"fmt"

	"github.com/mesh-intelligence/furnish/pkg/types"
)

// HitOrder selects which of several overlapping shapes a press selects.
type HitOrder int

const (
	// HitStored selects the first match in stored order, i.e. the earliest
	// placed shape.
	HitStored HitOrder = iota
	// HitTopmost selects the last match, i.e. the shape drawn on top.
	HitTopmost
)

// String returns the configuration token for the order.
func (o HitOrder) String() string {
	if o == HitTopmost {
		return "topmost"
	}
	return "stored"
}

// ParseHitOrder parses "stored" or "topmost". An empty string means stored.
func ParseHitOrder(s string) (HitOrder, error) {
	switch s {
	case "", "stored":
		return HitStored, nil
	case "topmost":
		return HitTopmost, nil
	default:
		return HitStored, fmt.Errorf("unknown hit order %q", s)
	}
}

// Default placement and scaling parameters.
const (
	DefaultTableSize   = 50
	DefaultChairSize   = 30
	DefaultScaleFactor = 1.1
)

// Options configures placement and scaling.
type Options struct {
	TableSize   float64
	ChairSize   float64
	TableFill   types.Color
	ChairFill   types.Color
	ScaleFactor float64
	HitOrder    HitOrder
}

// DefaultOptions returns the stock editor settings.
func DefaultOptions() Options {
	return Options{
		TableSize:   DefaultTableSize,
		ChairSize:   DefaultChairSize,
		TableFill:   types.TableBrown,
		ChairFill:   types.ChairTan,
		ScaleFactor: DefaultScaleFactor,
		HitOrder:    HitStored,
	}
}

// withDefaults fills non-positive sizes and factors from DefaultOptions.
// Colours are taken as given; the zero Color is black.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if !(o.TableSize > 0) {
		o.TableSize = d.TableSize
	}
	if !(o.ChairSize > 0) {
		o.ChairSize = d.ChairSize
	}
	if !(o.ScaleFactor > 0) {
		o.ScaleFactor = d.ScaleFactor
	}
	return o
}
