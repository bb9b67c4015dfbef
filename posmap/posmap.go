// Package posmap maps grid coordinates to linear document offsets and back.
//
// Offsets are relative to the start of the table's content, i.e. the
// position just after the table's opening token. Each row contributes an
// opening token, its cells in column order, and a closing token; each cell
// occupies [model.Cell.NodeSize] positions. A Map is built once per grid
// and must be rebuilt whenever the grid is.
package posmap

import (
	"sort"

	"github.com/tsawler/tabledit/grid"
	"github.com/tsawler/tabledit/model"
)

type span struct {
	start, end int // [start, end)
	ref        *grid.CellRef
}

// Map is the position index of one grid
type Map struct {
	grid      *grid.Grid
	spans     []span // Document order; starts strictly increasing
	byRef     map[*grid.CellRef]int
	rowStarts []int
	size      int
}

// New builds the position map of a grid
func New(g *grid.Grid) *Map {
	m := &Map{
		grid:      g,
		byRef:     make(map[*grid.CellRef]int, len(g.Cells())),
		rowStarts: make([]int, g.Height()),
	}

	pos := 0
	for r := 0; r < g.Height(); r++ {
		m.rowStarts[r] = pos
		pos++ // row open
		for _, ref := range g.RowCells(r) {
			size := ref.Cell.NodeSize()
			m.byRef[ref] = len(m.spans)
			m.spans = append(m.spans, span{start: pos, end: pos + size, ref: ref})
			pos += size
		}
		pos++ // row close
	}
	m.size = pos
	return m
}

// Size returns the table content size
func (m *Map) Size() int { return m.size }

// PositionAt returns the offset of the opening token of the cell covering
// the slot.
func (m *Map) PositionAt(row, col int) (int, bool) {
	ref := m.grid.CellAt(row, col)
	if ref == nil {
		return 0, false
	}
	return m.spans[m.byRef[ref]].start, true
}

// CellRange returns the [from, to) offsets of the cell covering the slot
func (m *Map) CellRange(row, col int) (from, to int, ok bool) {
	ref := m.grid.CellAt(row, col)
	if ref == nil {
		return 0, 0, false
	}
	s := m.spans[m.byRef[ref]]
	return s.start, s.end, true
}

// CoordAt returns the origin coordinate of the cell containing the offset.
// Offsets on a row's opening token snap to the first cell of that row and
// offsets on its closing token to the last. Offsets outside the table
// content are rejected.
func (m *Map) CoordAt(offset int) (model.Coord, bool) {
	if offset < 0 || offset >= m.size || len(m.spans) == 0 {
		return model.Coord{}, false
	}

	i := sort.Search(len(m.spans), func(i int) bool { return m.spans[i].start > offset }) - 1
	if i >= 0 && offset < m.spans[i].end {
		return m.spans[i].ref.Coord(), true
	}

	// Row token: find the row and snap
	r := sort.Search(len(m.rowStarts), func(i int) bool { return m.rowStarts[i] > offset }) - 1
	cells := m.grid.RowCells(r)
	switch {
	case len(cells) == 0:
		// Every slot of the row is covered by rowspans from above
		if ref := m.grid.CellAt(r, 0); ref != nil {
			return ref.Coord(), true
		}
		return model.Coord{}, false
	case offset == m.rowStarts[r]:
		return cells[0].Coord(), true
	default:
		return cells[len(cells)-1].Coord(), true
	}
}

// Range converts a selection rectangle to the document range spanning all
// cells it touches.
func (m *Map) Range(rect model.Rect) (from, to int, ok bool) {
	refs := m.grid.CellsIn(rect)
	if len(refs) == 0 {
		return 0, 0, false
	}
	from, to = m.size, 0
	for _, ref := range refs {
		s := m.spans[m.byRef[ref]]
		from = min(from, s.start)
		to = max(to, s.end)
	}
	return from, to, true
}

// RectForRange converts a document range back to the grid rectangle between
// the cells at its two ends, grown to cover both cells entirely.
func (m *Map) RectForRange(from, to int) (model.Rect, bool) {
	if to <= from {
		to = from + 1
	}
	a, ok := m.CoordAt(from)
	if !ok {
		return model.Rect{}, false
	}
	b, ok := m.CoordAt(to - 1)
	if !ok {
		return model.Rect{}, false
	}
	ra := m.grid.CellAt(a.Row, a.Col).Rect()
	rb := m.grid.CellAt(b.Row, b.Col).Rect()
	return ra.Union(rb), true
}
