package grid

import (
	"fmt"

	"github.com/tsawler/tabledit/model"
)

// CellRef is one cell placed on the grid. Every slot covered by a spanning
// cell returns the same *CellRef.
type CellRef struct {
	Row, Col         int // Origin (top-left) slot
	RowSpan, ColSpan int // Effective spans after repair
	Index            int // Position of the cell within its row
	Cell             *model.Cell
	Synthetic        bool // Inserted to pad an underflowing row
}

// Coord returns the origin coordinate of the cell
func (c *CellRef) Coord() model.Coord {
	return model.Coord{Row: c.Row, Col: c.Col}
}

// Rect returns the slots covered by the cell
func (c *CellRef) Rect() model.Rect {
	return model.Rect{
		Top:    c.Row,
		Left:   c.Col,
		Bottom: c.Row + c.RowSpan - 1,
		Right:  c.Col + c.ColSpan - 1,
	}
}

// Grid is the tiling of a table's cells onto a width x height slot matrix
type Grid struct {
	table    *model.Table // Normalized copy of the source table
	width    int
	height   int
	slots    []*CellRef // Row-major, width*height
	cells    []*CellRef // Document order
	rows     [][]*CellRef
	warnings []Warning
}

// Build tiles the table onto a grid. Malformed spans are repaired rather
// than rejected: overflowing spans are truncated, cells past the table edge
// are dropped and short rows are padded with empty cells. Each repair is
// recorded as a Warning. The source table is not modified.
func Build(t *model.Table) *Grid {
	g := &Grid{}
	if t == nil {
		g.table = &model.Table{}
		return g
	}

	g.height = len(t.Rows)
	g.width = declaredWidth(t)
	g.slots = make([]*CellRef, g.width*g.height)
	g.rows = make([][]*CellRef, g.height)

	norm := &model.Table{ID: t.ID, Attrs: t.Attrs, Rows: make([]model.Row, g.height)}
	if len(t.Columns) > 0 {
		norm.Columns = append([]model.Column(nil), t.Columns...)
	}

	for r, row := range t.Rows {
		out := model.Row{Attrs: row.Attrs, Cells: make([]model.Cell, 0, len(row.Cells))}
		col := 0

		for i, cell := range row.Cells {
			for col < g.width && g.slots[r*g.width+col] != nil {
				col++
			}
			if col >= g.width {
				g.warn(r, col, WarningDropped, "%d cell(s) past the table edge dropped", len(row.Cells)-i)
				break
			}

			cs, rs := cell.Spans()
			if cs != cell.ColSpan || rs != cell.RowSpan {
				g.warn(r, col, WarningInvalidSpan, "span %dx%d raised to %dx%d", cell.ColSpan, cell.RowSpan, cs, rs)
			}

			free := 0
			for free < cs && col+free < g.width && g.slots[r*g.width+col+free] == nil {
				free++
			}
			if free < cs {
				g.warn(r, col, WarningTruncated, "colspan %d truncated to %d", cs, free)
				cs = free
			}
			if r+rs > g.height {
				g.warn(r, col, WarningTruncated, "rowspan %d truncated to %d", rs, g.height-r)
				rs = g.height - r
			}

			placed := cell.Clone()
			placed.ColSpan, placed.RowSpan = cs, rs
			ref := &CellRef{Row: r, Col: col, RowSpan: rs, ColSpan: cs, Index: len(out.Cells)}
			out.Cells = append(out.Cells, placed)
			g.claim(ref)
			col += cs
		}

		// Pad unclaimed slots. Cells are placed at the first free column, so
		// any gap lies after the last placed cell and order is preserved.
		padded := 0
		for c := 0; c < g.width; c++ {
			if g.slots[r*g.width+c] != nil {
				continue
			}
			ref := &CellRef{Row: r, Col: c, RowSpan: 1, ColSpan: 1, Index: len(out.Cells), Synthetic: true}
			out.Cells = append(out.Cells, model.NewCell(false))
			g.claim(ref)
			padded++
		}
		if padded > 0 {
			g.warn(r, g.width-padded, WarningPadded, "row padded with %d empty cell(s)", padded)
		}

		norm.Rows[r] = out
	}

	// Cell pointers are resolved once the row slices stop growing
	for _, ref := range g.cells {
		ref.Cell = &norm.Rows[ref.Row].Cells[ref.Index]
	}
	g.table = norm
	return g
}

// declaredWidth returns the column count of the table: the <colgroup> when
// present, otherwise the logical width of the first non-empty row.
func declaredWidth(t *model.Table) int {
	if len(t.Columns) > 0 {
		return len(t.Columns)
	}
	for _, row := range t.Rows {
		w := 0
		for _, c := range row.Cells {
			cs, _ := c.Spans()
			w += cs
		}
		if w > 0 {
			return w
		}
	}
	return 0
}

func (g *Grid) claim(ref *CellRef) {
	for r := ref.Row; r < ref.Row+ref.RowSpan; r++ {
		for c := ref.Col; c < ref.Col+ref.ColSpan; c++ {
			g.slots[r*g.width+c] = ref
		}
	}
	g.cells = append(g.cells, ref)
	g.rows[ref.Row] = append(g.rows[ref.Row], ref)
}

// Width returns the logical column count
func (g *Grid) Width() int { return g.width }

// Height returns the row count
func (g *Grid) Height() int { return g.height }

// Empty reports whether the grid has no slots
func (g *Grid) Empty() bool { return g.width == 0 || g.height == 0 }

// Bounds returns the rectangle covering the whole grid
func (g *Grid) Bounds() model.Rect {
	return model.Rect{Top: 0, Left: 0, Bottom: g.height - 1, Right: g.width - 1}
}

// InBounds reports whether the coordinate addresses a slot
func (g *Grid) InBounds(c model.Coord) bool {
	return c.Row >= 0 && c.Row < g.height && c.Col >= 0 && c.Col < g.width
}

// Clamp moves a coordinate onto the nearest slot
func (g *Grid) Clamp(c model.Coord) model.Coord {
	if g.Empty() {
		return model.Coord{}
	}
	return model.Coord{
		Row: min(max(c.Row, 0), g.height-1),
		Col: min(max(c.Col, 0), g.width-1),
	}
}

// CellAt returns the cell covering the slot, or nil when out of range
func (g *Grid) CellAt(row, col int) *CellRef {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return nil
	}
	return g.slots[row*g.width+col]
}

// Cells returns every cell in document order
func (g *Grid) Cells() []*CellRef { return g.cells }

// RowCells returns the cells originating in a row, left to right
func (g *Grid) RowCells(row int) []*CellRef {
	if row < 0 || row >= g.height {
		return nil
	}
	return g.rows[row]
}

// CellsIn returns the distinct cells intersecting the rectangle, in
// document order
func (g *Grid) CellsIn(rect model.Rect) []*CellRef {
	var out []*CellRef
	for _, ref := range g.cells {
		if ref.Rect().Intersects(rect) {
			out = append(out, ref)
		}
	}
	return out
}

// IsRegular reports whether no cell straddles the rectangle's edge, i.e.
// every intersecting cell lies fully inside it.
func (g *Grid) IsRegular(rect model.Rect) bool {
	for _, ref := range g.CellsIn(rect) {
		if !rect.ContainsRect(ref.Rect()) {
			return false
		}
	}
	return true
}

// Table returns the normalized table the grid was built from. For a valid
// source table it is equal to the source.
func (g *Grid) Table() *model.Table { return g.table }

// Normalize returns a copy of the repaired table
func (g *Grid) Normalize() *model.Table { return g.table.Clone() }

// Warnings returns the repairs made while building
func (g *Grid) Warnings() []Warning { return g.warnings }

// Repaired reports whether the source table needed any repair
func (g *Grid) Repaired() bool { return len(g.warnings) > 0 }

// Check verifies the tiling invariant: every slot is covered by exactly
// one cell, every span lies inside the grid and cells do not overlap.
func (g *Grid) Check() error {
	if len(g.slots) != g.width*g.height {
		return fmt.Errorf("slot count %d does not match %dx%d", len(g.slots), g.width, g.height)
	}

	covered := 0
	for _, ref := range g.cells {
		if ref.RowSpan < 1 || ref.ColSpan < 1 {
			return fmt.Errorf("cell %v has invalid span %dx%d", ref.Coord(), ref.ColSpan, ref.RowSpan)
		}
		if !g.InBounds(ref.Coord()) || !g.InBounds(ref.Rect().BottomRight()) {
			return fmt.Errorf("cell %v span %v leaves the grid", ref.Coord(), ref.Rect())
		}
		for r := ref.Row; r < ref.Row+ref.RowSpan; r++ {
			for c := ref.Col; c < ref.Col+ref.ColSpan; c++ {
				switch other := g.slots[r*g.width+c]; {
				case other == nil:
					return fmt.Errorf("slot (%d,%d) inside cell %v is unclaimed", r, c, ref.Coord())
				case other != ref:
					return fmt.Errorf("slot (%d,%d) overlapped by cells %v and %v", r, c, ref.Coord(), other.Coord())
				}
			}
		}
		covered += ref.RowSpan * ref.ColSpan
	}

	if covered != len(g.slots) {
		return fmt.Errorf("cells cover %d of %d slots", covered, len(g.slots))
	}
	return nil
}
