// internal/layout/cell.go
package layout

import (
	"github.com/mattn/go-runewidth"
)

// CellMeasurer measures text in terminal cells: one unit per column, one
// unit per line. Wide (CJK) clusters take two units.
type CellMeasurer struct{}

// Advance returns the display width of one grapheme cluster in cells.
func (CellMeasurer) Advance(cluster string) float64 {
	w := runewidth.StringWidth(cluster)
	if w < 1 {
		// Zero-width clusters still need a caret boundary to land on.
		w = 1
	}
	return float64(w)
}

// LineHeight is one terminal row.
func (CellMeasurer) LineHeight() float64 {
	return 1
}
