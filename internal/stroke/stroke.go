// Package stroke holds the ink side of the surface: raw input samples, the
// brush descriptor, and the ordered stroke store. Physical rendering and
// brush geometry live with the host's stroke renderer, not here.
package stroke

import (
	"time"

	"github.com/bethropolis/slate/internal/types"
)

// InputSample is one raw pointer sample captured by the stroke-authoring
// layer. Time is milliseconds since the stroke's down event.
type InputSample struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pressure float64 `json:"pressure,omitempty"`
	TimeMs   int64   `json:"t,omitempty"`
}

// Stroke is one completed ink stroke.
type Stroke struct {
	Samples      []InputSample
	Brush        Brush
	ZIndex       int
	LastModified int64 // epoch ms
}

// New creates a stroke stamped with the current time. Strokes default to
// z-index 0; the compositor breaks the tie on LastModified.
func New(samples []InputSample, brush Brush) *Stroke {
	return &Stroke{
		Samples:      samples,
		Brush:        brush,
		LastModified: time.Now().UnixMilli(),
	}
}

// Bounds returns the sample bounding box, inflated by half the brush size.
func (s *Stroke) Bounds() types.Rect {
	if len(s.Samples) == 0 {
		return types.Rect{}
	}
	r := types.Rect{
		MinX: s.Samples[0].X, MinY: s.Samples[0].Y,
		MaxX: s.Samples[0].X, MaxY: s.Samples[0].Y,
	}
	for _, p := range s.Samples[1:] {
		if p.X < r.MinX {
			r.MinX = p.X
		}
		if p.Y < r.MinY {
			r.MinY = p.Y
		}
		if p.X > r.MaxX {
			r.MaxX = p.X
		}
		if p.Y > r.MaxY {
			r.MaxY = p.Y
		}
	}
	return r.Inflate(s.Brush.Size / 2)
}
