// internal/compositor/compositor.go
package compositor

import (
	"sort"

	"github.com/bethropolis/slate/internal/core"
	"github.com/bethropolis/slate/internal/stroke"
)

// ElementKind tags the union.
type ElementKind int

const (
	KindStroke ElementKind = iota
	KindTextField
)

// CanvasElement is a draw-order record over one stroke or one text field.
// It does not own the underlying data; exactly one of Stroke/Field is set,
// selected by Kind.
type CanvasElement struct {
	Kind         ElementKind
	Stroke       *stroke.Stroke
	Field        *core.TextFieldState
	ZIndex       int
	LastModified int64
}

// BuildDrawList merges the stroke collection and the field collection into
// one paint sequence, stable-sorted ascending by (zIndex, lastModified).
// Equal keys keep input order, so the most recently touched of a z-index tie
// draws last and lands on top. This is the only place cross-type ordering
// is decided.
func BuildDrawList(strokes *stroke.Store, fields *core.FieldManager) []CanvasElement {
	var elements []CanvasElement
	if strokes != nil {
		for _, s := range strokes.All() {
			elements = append(elements, CanvasElement{
				Kind:         KindStroke,
				Stroke:       s,
				ZIndex:       s.ZIndex,
				LastModified: s.LastModified,
			})
		}
	}
	if fields != nil {
		for _, f := range fields.Fields() {
			elements = append(elements, CanvasElement{
				Kind:         KindTextField,
				Field:        f,
				ZIndex:       f.ZIndex(),
				LastModified: f.LastModified(),
			})
		}
	}

	sort.SliceStable(elements, func(i, j int) bool {
		if elements[i].ZIndex != elements[j].ZIndex {
			return elements[i].ZIndex < elements[j].ZIndex
		}
		return elements[i].LastModified < elements[j].LastModified
	})
	return elements
}
