// internal/types/geometry.go
package types

// Point is a position in surface coordinates.
// X grows rightward, Y grows downward, matching the draw surface.
type Point struct {
	X float64
	Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p minus q. Used to convert surface coordinates to field-local ones.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width/height pair in surface units.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle. Min is the top-left corner,
// Max the bottom-right (exclusive on both axes for containment).
type Rect struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// RectAt builds a Rect from a top-left anchor and a size.
func RectAt(origin Point, size Size) Rect {
	return Rect{
		MinX: origin.X,
		MinY: origin.Y,
		MaxX: origin.X + size.Width,
		MaxY: origin.Y + size.Height,
	}
}

// Contains reports whether pt lies inside the rectangle.
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.MinX && pt.X < r.MaxX && pt.Y >= r.MinY && pt.Y < r.MaxY
}

// Inflate grows the rectangle by margin on every side. A large margin is
// used for touch targets to compensate for finger/stylus imprecision.
func (r Rect) Inflate(margin float64) Rect {
	return Rect{
		MinX: r.MinX - margin,
		MinY: r.MinY - margin,
		MaxX: r.MaxX + margin,
		MaxY: r.MaxY + margin,
	}
}

// Translate moves the rectangle by the given offset.
func (r Rect) Translate(offset Point) Rect {
	return Rect{
		MinX: r.MinX + offset.X,
		MinY: r.MinY + offset.Y,
		MaxX: r.MaxX + offset.X,
		MaxY: r.MaxY + offset.Y,
	}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}
