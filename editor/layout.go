package editor

import (
	"sort"

	"github.com/tsawler/tabledit/grid"
	"github.com/tsawler/tabledit/model"
)

// cellBox is a cell together with its grid placement
type cellBox struct {
	row, col         int
	rowSpan, colSpan int
	cell             model.Cell
}

func (b cellBox) rect() model.Rect {
	return model.Rect{Top: b.row, Left: b.col, Bottom: b.row + b.rowSpan - 1, Right: b.col + b.colSpan - 1}
}

func (b cellBox) coversRow(r int) bool { return b.row <= r && r < b.row+b.rowSpan }
func (b cellBox) coversCol(c int) bool { return b.col <= c && c < b.col+b.colSpan }

// layout is an editable span-aware copy of a table. Structural edits move
// boxes around in grid space; table() writes them back out as rows.
type layout struct {
	id       string
	attrs    model.TableAttrs
	columns  []model.Column // nil when the table declares none
	rowAttrs []model.RowAttrs
	width    int
	height   int
	boxes    []cellBox
}

func newLayout(g *grid.Grid) *layout {
	t := g.Table()
	l := &layout{
		id:     t.ID,
		attrs:  t.Attrs,
		width:  g.Width(),
		height: g.Height(),
	}
	if len(t.Columns) > 0 {
		l.columns = append([]model.Column(nil), t.Columns...)
	}
	for _, row := range t.Rows {
		l.rowAttrs = append(l.rowAttrs, row.Attrs)
	}
	for _, ref := range g.Cells() {
		l.boxes = append(l.boxes, cellBox{
			row:     ref.Row,
			col:     ref.Col,
			rowSpan: ref.RowSpan,
			colSpan: ref.ColSpan,
			cell:    ref.Cell.Clone(),
		})
	}
	return l
}

// table writes the layout back out as a table
func (l *layout) table() *model.Table {
	l.sort()

	t := &model.Table{ID: l.id, Attrs: l.attrs, Rows: make([]model.Row, l.height)}
	if l.columns != nil {
		t.Columns = append([]model.Column(nil), l.columns...)
	}
	for r := range t.Rows {
		t.Rows[r].Attrs = l.rowAttrs[r]
	}
	for _, b := range l.boxes {
		cell := b.cell.Clone()
		cell.RowSpan, cell.ColSpan = b.rowSpan, b.colSpan
		t.Rows[b.row].Cells = append(t.Rows[b.row].Cells, cell)
	}
	return t
}

// sort orders boxes by document position
func (l *layout) sort() {
	sort.SliceStable(l.boxes, func(i, j int) bool {
		if l.boxes[i].row != l.boxes[j].row {
			return l.boxes[i].row < l.boxes[j].row
		}
		return l.boxes[i].col < l.boxes[j].col
	})
}

// isHeaderRow reports whether every cell covering row r is a header
func (l *layout) isHeaderRow(r int) bool {
	found := false
	for _, b := range l.boxes {
		if b.coversRow(r) {
			if !b.cell.IsHeader {
				return false
			}
			found = true
		}
	}
	return found
}

// isHeaderColumn reports whether column c is headed in every row that is
// not itself a header row. A table made only of header rows has no header
// columns.
func (l *layout) isHeaderColumn(c int) bool {
	body := false
	for r := 0; r < l.height; r++ {
		if l.isHeaderRow(r) {
			continue
		}
		body = true
		for _, b := range l.boxes {
			if b.coversRow(r) && b.coversCol(c) && !b.cell.IsHeader {
				return false
			}
		}
	}
	return body
}

// insertRow inserts an empty row so that it becomes row at. Cells spanning
// across the insertion point grow instead of receiving a new cell.
func (l *layout) insertRow(at int) {
	header := make([]bool, l.width)
	for c := range header {
		header[c] = l.isHeaderColumn(c)
	}

	crossed := make([]bool, l.width)
	for i := range l.boxes {
		b := &l.boxes[i]
		switch {
		case b.row >= at:
			b.row++
		case b.row+b.rowSpan > at:
			b.rowSpan++
			for c := b.col; c < b.col+b.colSpan; c++ {
				crossed[c] = true
			}
		}
	}

	for c := 0; c < l.width; c++ {
		if !crossed[c] {
			l.boxes = append(l.boxes, cellBox{row: at, col: c, rowSpan: 1, colSpan: 1, cell: model.NewCell(header[c])})
		}
	}

	l.rowAttrs = insertAt(l.rowAttrs, at, model.RowAttrs{})
	l.height++
}

// insertColumn inserts an empty column so that it becomes column at
func (l *layout) insertColumn(at int) {
	header := make([]bool, l.height)
	for r := range header {
		header[r] = l.isHeaderRow(r)
	}

	crossed := make([]bool, l.height)
	for i := range l.boxes {
		b := &l.boxes[i]
		switch {
		case b.col >= at:
			b.col++
		case b.col+b.colSpan > at:
			b.colSpan++
			for r := b.row; r < b.row+b.rowSpan; r++ {
				crossed[r] = true
			}
		}
	}

	for r := 0; r < l.height; r++ {
		if !crossed[r] {
			l.boxes = append(l.boxes, cellBox{row: r, col: at, rowSpan: 1, colSpan: 1, cell: model.NewCell(header[r])})
		}
	}

	if l.columns != nil {
		l.columns = insertAt(l.columns, at, model.Column{})
	}
	l.width++
}

// deleteRow removes row i. A cell originating in the row that spans
// further down keeps its content and moves to the row below.
func (l *layout) deleteRow(i int) {
	out := l.boxes[:0]
	for _, b := range l.boxes {
		switch {
		case b.row == i && b.rowSpan == 1:
			continue
		case b.row == i, b.row < i && b.row+b.rowSpan > i:
			b.rowSpan--
		case b.row > i:
			b.row--
		}
		out = append(out, b)
	}
	l.boxes = out
	l.rowAttrs = removeAt(l.rowAttrs, i)
	l.height--
}

// deleteColumn removes column i
func (l *layout) deleteColumn(i int) {
	out := l.boxes[:0]
	for _, b := range l.boxes {
		switch {
		case b.col == i && b.colSpan == 1:
			continue
		case b.col == i, b.col < i && b.col+b.colSpan > i:
			b.colSpan--
		case b.col > i:
			b.col--
		}
		out = append(out, b)
	}
	l.boxes = out
	if l.columns != nil {
		l.columns = removeAt(l.columns, i)
	}
	l.width--
}

// merge joins every cell inside rect into its top-left cell. The rect must
// be regular. Non-empty cell contents are concatenated in document order.
func (l *layout) merge(rect model.Rect) {
	l.sort()

	var paras []string
	target := -1
	out := l.boxes[:0]
	for _, b := range l.boxes {
		if !rect.ContainsRect(b.rect()) {
			out = append(out, b)
			continue
		}
		if !b.cell.IsEmpty() {
			paras = append(paras, b.cell.Paragraphs...)
		}
		if b.row == rect.Top && b.col == rect.Left {
			target = len(out)
			out = append(out, b)
		}
	}
	l.boxes = out

	if target < 0 {
		return
	}
	if len(paras) == 0 {
		paras = []string{""}
	}
	t := &l.boxes[target]
	t.rowSpan, t.colSpan = rect.Height(), rect.Width()
	t.cell.Paragraphs = paras
}

// split breaks the box at index i into 1x1 cells. Content stays in the
// top-left cell; the others are empty copies of its attributes.
func (l *layout) split(i int) {
	b := l.boxes[i]
	l.boxes[i].rowSpan, l.boxes[i].colSpan = 1, 1

	for r := b.row; r < b.row+b.rowSpan; r++ {
		for c := b.col; c < b.col+b.colSpan; c++ {
			if r == b.row && c == b.col {
				continue
			}
			cell := model.NewCell(b.cell.IsHeader)
			cell.Attrs = b.cell.Attrs
			l.boxes = append(l.boxes, cellBox{row: r, col: c, rowSpan: 1, colSpan: 1, cell: cell})
		}
	}
}

// boxAt returns the index of the box covering (r, c), or -1
func (l *layout) boxAt(r, c int) int {
	for i, b := range l.boxes {
		if b.coversRow(r) && b.coversCol(c) {
			return i
		}
	}
	return -1
}

func insertAt[T any](s []T, i int, v T) []T {
	s = append(s, v)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func removeAt[T any](s []T, i int) []T {
	return append(s[:i:i], s[i+1:]...)
}
