// Package layout builds the cached text geometry for a field: a mapping
// between rune offsets and surface-local glyph rectangles. Fields size to
// their content; lines break only on explicit '\n'.
package layout

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/slate/internal/types"
)

// Measurer reports glyph metrics for a rendering target.
type Measurer interface {
	// Advance returns the horizontal advance of one grapheme cluster.
	Advance(cluster string) float64
	// LineHeight returns the vertical extent of one text line.
	LineHeight() float64
}

// glyph is one grapheme cluster within a line.
type glyph struct {
	offset int // rune offset of the cluster start (within the whole text)
	runes  int // number of runes in the cluster
	x      float64
	width  float64
}

// line is one hard-broken text line.
type line struct {
	start  int // rune offset of first glyph
	end    int // rune offset past the last glyph, excluding the '\n'
	y      float64
	width  float64
	glyphs []glyph
}

// Layout is an immutable geometry cache for one text string. Rebuilt by the
// owning field whenever text, style, or constraints change.
type Layout struct {
	measurer Measurer
	lines    []line
	size     types.Size
	runeLen  int
}

// New computes the layout of text under the given measurer.
func New(text string, m Measurer) *Layout {
	l := &Layout{measurer: m}
	lineHeight := m.LineHeight()

	offset := 0
	for i, raw := range strings.Split(text, "\n") {
		ln := line{
			start: offset,
			y:     float64(i) * lineHeight,
		}
		x := 0.0
		gr := uniseg.NewGraphemes(raw)
		for gr.Next() {
			cluster := gr.Str()
			w := m.Advance(cluster)
			ln.glyphs = append(ln.glyphs, glyph{
				offset: offset,
				runes:  len(gr.Runes()),
				x:      x,
				width:  w,
			})
			x += w
			offset += len(gr.Runes())
		}
		ln.end = offset
		ln.width = x
		l.lines = append(l.lines, ln)
		if x > l.size.Width {
			l.size.Width = x
		}
		offset++ // skip the '\n'
	}
	l.runeLen = offset - 1
	l.size.Height = float64(len(l.lines)) * lineHeight
	return l
}

// Size returns the content bounding size.
func (l *Layout) Size() types.Size {
	return l.size
}

// RuneLen returns the rune length of the laid-out text.
func (l *Layout) RuneLen() int {
	return l.runeLen
}

// LineCount returns the number of hard lines.
func (l *Layout) LineCount() int {
	return len(l.lines)
}

// lineForOffset finds the line containing the given rune offset.
func (l *Layout) lineForOffset(offset int) *line {
	for i := range l.lines {
		ln := &l.lines[i]
		if offset >= ln.start && offset <= ln.end {
			return ln
		}
	}
	return &l.lines[len(l.lines)-1]
}

// CaretRect returns the thin rectangle of the caret at a rune offset,
// spanning the full line height. Offsets are clamped to the text.
func (l *Layout) CaretRect(offset int) types.Rect {
	if offset < 0 {
		offset = 0
	}
	if offset > l.runeLen {
		offset = l.runeLen
	}
	ln := l.lineForOffset(offset)
	x := ln.width
	for _, g := range ln.glyphs {
		if offset <= g.offset {
			x = g.x
			break
		}
		if offset < g.offset+g.runes {
			// Offset inside a cluster snaps to its leading edge.
			x = g.x
			break
		}
	}
	h := l.measurer.LineHeight()
	return types.Rect{MinX: x, MinY: ln.y, MaxX: x + 1, MaxY: ln.y + h}
}

// GlyphRect returns the rectangle of the grapheme cluster at a rune offset.
// At end-of-line or end-of-text it degenerates to the caret rectangle, so
// handle geometry always has something to anchor on.
func (l *Layout) GlyphRect(offset int) types.Rect {
	if offset < 0 {
		offset = 0
	}
	if offset > l.runeLen {
		offset = l.runeLen
	}
	ln := l.lineForOffset(offset)
	for _, g := range ln.glyphs {
		if offset >= g.offset && offset < g.offset+g.runes {
			h := l.measurer.LineHeight()
			return types.Rect{MinX: g.x, MinY: ln.y, MaxX: g.x + g.width, MaxY: ln.y + h}
		}
	}
	return l.CaretRect(offset)
}

// HitOffset maps a field-local point to the nearest rune offset. Points
// outside the content clamp to the closest line and boundary, so a stale
// touch never produces an out-of-range offset.
func (l *Layout) HitOffset(pt types.Point) int {
	lineHeight := l.measurer.LineHeight()
	idx := 0
	if lineHeight > 0 {
		idx = int(pt.Y / lineHeight)
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(l.lines) {
		idx = len(l.lines) - 1
	}
	ln := &l.lines[idx]

	if pt.X <= 0 {
		return ln.start
	}
	for _, g := range ln.glyphs {
		if pt.X < g.x+g.width/2 {
			return g.offset
		}
		if pt.X < g.x+g.width {
			return g.offset + g.runes
		}
	}
	return ln.end
}
