// internal/stroke/brush.go
package stroke

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/bethropolis/slate/internal/logger"
)

// Brush describes how a stroke is drawn: tip size in surface units and a
// "#RRGGBB" color.
type Brush struct {
	Size  float64 `json:"size"`
	Color string  `json:"color"`
}

// DefaultBrush is used when a persisted stroke carries no descriptor.
var DefaultBrush = Brush{Size: 2, Color: "#000000"}

// RGB parses the brush color. An unparsable color falls back to black; a
// corrupt style must never keep the surface from drawing.
func (b Brush) RGB() colorful.Color {
	c, err := colorful.Hex(b.Color)
	if err != nil {
		logger.Warnf("Brush: invalid color %q, falling back to black: %v", b.Color, err)
		return colorful.Color{}
	}
	return c
}
