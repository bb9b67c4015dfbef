package model

import "fmt"

// Coord addresses one slot of a table grid (0-indexed)
type Coord struct {
	Row, Col int
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Rect is an inclusive rectangle of grid slots
type Rect struct {
	Top, Left, Bottom, Right int
}

// RectOf returns the bounding rectangle of two coordinates
func RectOf(a, b Coord) Rect {
	return Rect{
		Top:    min(a.Row, b.Row),
		Left:   min(a.Col, b.Col),
		Bottom: max(a.Row, b.Row),
		Right:  max(a.Col, b.Col),
	}
}

// Width returns the number of columns covered
func (r Rect) Width() int { return r.Right - r.Left + 1 }

// Height returns the number of rows covered
func (r Rect) Height() int { return r.Bottom - r.Top + 1 }

// Area returns the number of slots covered
func (r Rect) Area() int { return r.Width() * r.Height() }

// TopLeft returns the top-left coordinate
func (r Rect) TopLeft() Coord { return Coord{Row: r.Top, Col: r.Left} }

// BottomRight returns the bottom-right coordinate
func (r Rect) BottomRight() Coord { return Coord{Row: r.Bottom, Col: r.Right} }

// Contains checks if a coordinate is inside the rectangle
func (r Rect) Contains(c Coord) bool {
	return c.Row >= r.Top && c.Row <= r.Bottom &&
		c.Col >= r.Left && c.Col <= r.Right
}

// ContainsRect checks if other lies entirely inside r
func (r Rect) ContainsRect(other Rect) bool {
	return other.Top >= r.Top && other.Bottom <= r.Bottom &&
		other.Left >= r.Left && other.Right <= r.Right
}

// Intersects checks if two rectangles share at least one slot
func (r Rect) Intersects(other Rect) bool {
	return !(r.Right < other.Left ||
		r.Left > other.Right ||
		r.Bottom < other.Top ||
		r.Top > other.Bottom)
}

// Union returns the smallest rectangle containing both
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Top:    min(r.Top, other.Top),
		Left:   min(r.Left, other.Left),
		Bottom: max(r.Bottom, other.Bottom),
		Right:  max(r.Right, other.Right),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Top, r.Left, r.Bottom, r.Right)
}
