// Package selection classifies table selections.
//
// A selection is derived from an anchor and a head coordinate. Its
// rectangle is the inclusive bounding box of the two, and its type says
// whether it covers whole rows, whole columns, the whole table, or just a
// block of cells. Selections are never stored across mutations; callers
// classify again after every structural change.
package selection

import (
	"github.com/tsawler/tabledit/grid"
	"github.com/tsawler/tabledit/model"
)

// Type is the kind of a selection
type Type int

const (
	TypeNone Type = iota
	TypeCell
	TypeRow
	TypeColumn
	TypeTable
)

func (t Type) String() string {
	switch t {
	case TypeCell:
		return "cell"
	case TypeRow:
		return "row"
	case TypeColumn:
		return "column"
	case TypeTable:
		return "table"
	default:
		return "none"
	}
}

// Selection is a classified anchor/head pair
type Selection struct {
	Type   Type
	Anchor model.Coord
	Head   model.Coord
	Rect   model.Rect
}

// None is the empty selection
var None = Selection{Type: TypeNone}

// IsEmpty reports whether nothing is selected
func (s Selection) IsEmpty() bool { return s.Type == TypeNone }

// Classify computes the selection rectangle of anchor and head and its
// type. Coordinates are clamped into the grid first, so the rectangle is
// always contained in it. An empty grid yields None.
func Classify(anchor, head model.Coord, g *grid.Grid) Selection {
	if g == nil || g.Empty() {
		return None
	}

	anchor, head = g.Clamp(anchor), g.Clamp(head)
	rect := model.RectOf(anchor, head)

	fullWidth := rect.Left == 0 && rect.Right == g.Width()-1
	fullHeight := rect.Top == 0 && rect.Bottom == g.Height()-1

	typ := TypeCell
	switch {
	case fullWidth && fullHeight:
		typ = TypeTable
	case fullWidth:
		typ = TypeRow
	case fullHeight:
		typ = TypeColumn
	}

	return Selection{Type: typ, Anchor: anchor, Head: head, Rect: rect}
}

// SelectRow selects row r, as if clicking its grip
func SelectRow(g *grid.Grid, r int) Selection {
	return Classify(model.Coord{Row: r, Col: 0}, model.Coord{Row: r, Col: g.Width() - 1}, g)
}

// SelectColumn selects column c, as if clicking its grip
func SelectColumn(g *grid.Grid, c int) Selection {
	return Classify(model.Coord{Row: 0, Col: c}, model.Coord{Row: g.Height() - 1, Col: c}, g)
}

// SelectTable selects the whole table, as if clicking the corner grip
func SelectTable(g *grid.Grid) Selection {
	return Classify(model.Coord{}, model.Coord{Row: g.Height() - 1, Col: g.Width() - 1}, g)
}

// Cells returns the distinct cells touched by the selection
func (s Selection) Cells(g *grid.Grid) []*grid.CellRef {
	if s.IsEmpty() {
		return nil
	}
	return g.CellsIn(s.Rect)
}

// Rows returns the row indices covered by the selection
func (s Selection) Rows() []int {
	if s.IsEmpty() {
		return nil
	}
	return indexRange(s.Rect.Top, s.Rect.Bottom)
}

// Columns returns the column indices covered by the selection
func (s Selection) Columns() []int {
	if s.IsEmpty() {
		return nil
	}
	return indexRange(s.Rect.Left, s.Rect.Right)
}

func indexRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
