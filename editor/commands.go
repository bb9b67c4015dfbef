package editor

import (
	"strings"

	"github.com/tsawler/tabledit/grid"
	"github.com/tsawler/tabledit/model"
	"github.com/tsawler/tabledit/posmap"
	"github.com/tsawler/tabledit/style"
)

// Side selects where a row or column is inserted relative to an index
type Side int

const (
	Before Side = iota
	After
)

// ============================================================================
// Rows and columns
// ============================================================================

// InsertRow inserts an empty row before or after row i
func (e *Editor) InsertRow(i int, side Side) bool {
	ctx, ok := e.context()
	if !ok {
		return e.reject("InsertRow", "no active table")
	}
	if i < 0 || i >= ctx.grid.Height() {
		return e.reject("InsertRow", "row out of range")
	}

	at := i
	if side == After {
		at++
	}
	l := newLayout(ctx.grid)
	l.insertRow(at)

	return e.commit(ctx, "InsertRow", l.table(), shiftRow(ctx.sel.Anchor, at, 1), shiftRow(ctx.sel.Head, at, 1))
}

// AddRowBefore inserts a row above the selection
func (e *Editor) AddRowBefore() bool {
	ctx, ok := e.context()
	if !ok || ctx.sel.IsEmpty() {
		return e.reject("AddRowBefore", "no selection")
	}
	return e.InsertRow(ctx.sel.Rect.Top, Before)
}

// AddRowAfter inserts a row below the selection
func (e *Editor) AddRowAfter() bool {
	ctx, ok := e.context()
	if !ok || ctx.sel.IsEmpty() {
		return e.reject("AddRowAfter", "no selection")
	}
	return e.InsertRow(ctx.sel.Rect.Bottom, After)
}

// InsertColumn inserts an empty column before or after column i
func (e *Editor) InsertColumn(i int, side Side) bool {
	ctx, ok := e.context()
	if !ok {
		return e.reject("InsertColumn", "no active table")
	}
	if i < 0 || i >= ctx.grid.Width() {
		return e.reject("InsertColumn", "column out of range")
	}

	at := i
	if side == After {
		at++
	}
	l := newLayout(ctx.grid)
	l.insertColumn(at)

	return e.commit(ctx, "InsertColumn", l.table(), shiftCol(ctx.sel.Anchor, at, 1), shiftCol(ctx.sel.Head, at, 1))
}

// AddColumnBefore inserts a column left of the selection
func (e *Editor) AddColumnBefore() bool {
	ctx, ok := e.context()
	if !ok || ctx.sel.IsEmpty() {
		return e.reject("AddColumnBefore", "no selection")
	}
	return e.InsertColumn(ctx.sel.Rect.Left, Before)
}

// AddColumnAfter inserts a column right of the selection
func (e *Editor) AddColumnAfter() bool {
	ctx, ok := e.context()
	if !ok || ctx.sel.IsEmpty() {
		return e.reject("AddColumnAfter", "no selection")
	}
	return e.InsertColumn(ctx.sel.Rect.Right, After)
}

// DeleteRow removes row i. Cells spanning across it shrink. Deleting the
// last remaining row deletes the table.
func (e *Editor) DeleteRow(i int) bool {
	ctx, ok := e.context()
	if !ok {
		return e.reject("DeleteRow", "no active table")
	}
	if i < 0 || i >= ctx.grid.Height() {
		return e.reject("DeleteRow", "row out of range")
	}
	return e.deleteRows(ctx, "DeleteRow", i, i)
}

// DeleteSelectedRows removes every row touched by the selection
func (e *Editor) DeleteSelectedRows() bool {
	ctx, ok := e.context()
	if !ok || ctx.sel.IsEmpty() {
		return e.reject("DeleteSelectedRows", "no selection")
	}
	return e.deleteRows(ctx, "DeleteSelectedRows", ctx.sel.Rect.Top, ctx.sel.Rect.Bottom)
}

func (e *Editor) deleteRows(ctx *tableContext, name string, top, bottom int) bool {
	if bottom-top+1 >= ctx.grid.Height() {
		return e.deleteTable(ctx, name)
	}

	l := newLayout(ctx.grid)
	for r := bottom; r >= top; r-- {
		l.deleteRow(r)
	}

	n := bottom - top + 1
	return e.commit(ctx, name, l.table(), shiftRow(ctx.sel.Anchor, bottom+1, -n), shiftRow(ctx.sel.Head, bottom+1, -n))
}

// DeleteColumn removes column i. Cells spanning across it shrink. Deleting
// the last remaining column deletes the table.
func (e *Editor) DeleteColumn(i int) bool {
	ctx, ok := e.context()
	if !ok {
		return e.reject("DeleteColumn", "no active table")
	}
	if i < 0 || i >= ctx.grid.Width() {
		return e.reject("DeleteColumn", "column out of range")
	}
	return e.deleteColumns(ctx, "DeleteColumn", i, i)
}

// DeleteSelectedColumns removes every column touched by the selection
func (e *Editor) DeleteSelectedColumns() bool {
	ctx, ok := e.context()
	if !ok || ctx.sel.IsEmpty() {
		return e.reject("DeleteSelectedColumns", "no selection")
	}
	return e.deleteColumns(ctx, "DeleteSelectedColumns", ctx.sel.Rect.Left, ctx.sel.Rect.Right)
}

func (e *Editor) deleteColumns(ctx *tableContext, name string, left, right int) bool {
	if right-left+1 >= ctx.grid.Width() {
		return e.deleteTable(ctx, name)
	}

	l := newLayout(ctx.grid)
	for c := right; c >= left; c-- {
		l.deleteColumn(c)
	}

	n := right - left + 1
	return e.commit(ctx, name, l.table(), shiftCol(ctx.sel.Anchor, right+1, -n), shiftCol(ctx.sel.Head, right+1, -n))
}

// shiftRow moves a coordinate at or below row at by delta rows
func shiftRow(c model.Coord, at, delta int) model.Coord {
	if c.Row >= at {
		c.Row += delta
	}
	return c
}

// shiftCol moves a coordinate at or right of column at by delta columns
func shiftCol(c model.Coord, at, delta int) model.Coord {
	if c.Col >= at {
		c.Col += delta
	}
	return c
}

// ============================================================================
// Merge and split
// ============================================================================

// MergeCells merges the selected cells into one. The selection must cover
// at least two cells and must not cut through a merged cell.
func (e *Editor) MergeCells() bool {
	ctx, ok := e.context()
	if !ok {
		return e.reject("MergeCells", "no active table")
	}
	if reason := mergeable(ctx); reason != "" {
		return e.reject("MergeCells", reason)
	}

	rect := ctx.sel.Rect
	l := newLayout(ctx.grid)
	l.merge(rect)

	return e.commit(ctx, "MergeCells", l.table(), rect.TopLeft(), rect.TopLeft())
}

func mergeable(ctx *tableContext) string {
	if ctx.sel.IsEmpty() {
		return "no selection"
	}
	if len(ctx.sel.Cells(ctx.grid)) < 2 {
		return "fewer than two cells selected"
	}
	if !ctx.grid.IsRegular(ctx.sel.Rect) {
		return "selection cuts through a merged cell"
	}
	return ""
}

// SplitCell splits the selected merged cell back into 1x1 cells. Content
// stays in the top-left cell.
func (e *Editor) SplitCell() bool {
	ctx, ok := e.context()
	if !ok {
		return e.reject("SplitCell", "no active table")
	}
	ref, reason := splittable(ctx)
	if reason != "" {
		return e.reject("SplitCell", reason)
	}

	l := newLayout(ctx.grid)
	l.split(l.boxAt(ref.Row, ref.Col))

	rect := ref.Rect()
	return e.commit(ctx, "SplitCell", l.table(), rect.TopLeft(), rect.BottomRight())
}

func splittable(ctx *tableContext) (*grid.CellRef, string) {
	if ctx.sel.IsEmpty() {
		return nil, "no selection"
	}
	cells := ctx.sel.Cells(ctx.grid)
	if len(cells) != 1 {
		return nil, "selection holds more than one cell"
	}
	if cells[0].RowSpan == 1 && cells[0].ColSpan == 1 {
		return nil, "cell is not merged"
	}
	return cells[0], ""
}

// ============================================================================
// Table attributes
// ============================================================================

// ApplyBorderPreset sets the table's border preset. Both "thin" and
// "table-borders-thin" are accepted.
func (e *Editor) ApplyBorderPreset(name string) bool {
	preset, ok := model.ParseBorderPreset(name)
	if !ok {
		return e.reject("ApplyBorderPreset", "unknown preset "+name)
	}
	return e.updateTable("ApplyBorderPreset", func(a *model.TableAttrs) {
		a.BorderPreset = preset
	})
}

// ApplyTheme sets the table's theme together with the padding derived
// from it. Themes with striping turn zebra rows on; other themes leave the
// zebra setting alone. Explicit cell overrides are kept.
func (e *Editor) ApplyTheme(name string) bool {
	theme, ok := model.ParseTheme(name)
	if !ok {
		return e.reject("ApplyTheme", "unknown theme "+name)
	}
	return e.updateTable("ApplyTheme", func(a *model.TableAttrs) {
		applyThemeDefaults(a, theme)
	})
}

// SetTableAttrs edits the table attributes in place
func (e *Editor) SetTableAttrs(update func(a *model.TableAttrs)) bool {
	if update == nil {
		return e.reject("SetTableAttrs", "no update")
	}
	return e.updateTable("SetTableAttrs", update)
}

func (e *Editor) updateTable(name string, update func(a *model.TableAttrs)) bool {
	ctx, ok := e.context()
	if !ok {
		return e.reject(name, "no active table")
	}
	next := ctx.grid.Normalize()
	update(&next.Attrs)
	return e.commit(ctx, name, next, ctx.sel.Anchor, ctx.sel.Head)
}

func applyThemeDefaults(a *model.TableAttrs, theme model.Theme) {
	def := style.ThemeDefaults(theme)
	a.Theme = theme
	a.CellPadding = def.Padding
	if def.Zebra {
		a.AlternatingRows = true
	}
}

// ToggleHeaderRow toggles the header flag of the first row's cells
func (e *Editor) ToggleHeaderRow() bool {
	ctx, ok := e.context()
	if !ok || ctx.grid.Empty() {
		return e.reject("ToggleHeaderRow", "no active table")
	}
	return e.toggleHeader(ctx, "ToggleHeaderRow", ctx.grid.RowCells(0))
}

// ToggleHeaderColumn toggles the header flag of the first column's cells
func (e *Editor) ToggleHeaderColumn() bool {
	ctx, ok := e.context()
	if !ok || ctx.grid.Empty() {
		return e.reject("ToggleHeaderColumn", "no active table")
	}
	rect := model.Rect{Top: 0, Left: 0, Bottom: ctx.grid.Height() - 1, Right: 0}
	return e.toggleHeader(ctx, "ToggleHeaderColumn", ctx.grid.CellsIn(rect))
}

// ToggleHeaderCell toggles the header flag of the selected cells
func (e *Editor) ToggleHeaderCell() bool {
	ctx, ok := e.context()
	if !ok || ctx.sel.IsEmpty() {
		return e.reject("ToggleHeaderCell", "no selection")
	}
	return e.toggleHeader(ctx, "ToggleHeaderCell", ctx.sel.Cells(ctx.grid))
}

// toggleHeader makes every cell a header unless all already are
func (e *Editor) toggleHeader(ctx *tableContext, name string, refs []*grid.CellRef) bool {
	all := true
	for _, ref := range refs {
		all = all && ref.Cell.IsHeader
	}
	return e.updateCells(ctx, name, refs, func(c *model.Cell) {
		c.IsHeader = !all
	})
}

// ============================================================================
// Cell attributes
// ============================================================================

// SetCellBackground sets the background of every selected cell. An empty
// color clears the override.
func (e *Editor) SetCellBackground(color string) bool {
	c, ok := parseOptionalColor(color)
	if !ok {
		return e.reject("SetCellBackground", "invalid color "+color)
	}
	return e.updateSelectedCells("SetCellBackground", func(cell *model.Cell) {
		cell.Attrs.Background = c
	})
}

// SetCellTextColor sets the text color of every selected cell. An empty
// color clears the override.
func (e *Editor) SetCellTextColor(color string) bool {
	c, ok := parseOptionalColor(color)
	if !ok {
		return e.reject("SetCellTextColor", "invalid color "+color)
	}
	return e.updateSelectedCells("SetCellTextColor", func(cell *model.Cell) {
		cell.Attrs.TextColor = c
	})
}

// SetCellBorder sets one border side of every selected cell. Unset fields
// of b clear the matching override.
func (e *Editor) SetCellBorder(side model.Side, b model.BorderSide) bool {
	if side < model.SideTop || side > model.SideLeft {
		return e.reject("SetCellBorder", "invalid side")
	}
	return e.updateSelectedCells("SetCellBorder", func(cell *model.Cell) {
		cell.Attrs.Borders[side] = b
	})
}

// SetCellText replaces the content of every selected cell. Lines become
// paragraphs.
func (e *Editor) SetCellText(text string) bool {
	return e.updateSelectedCells("SetCellText", func(cell *model.Cell) {
		cell.Paragraphs = strings.Split(text, "\n")
	})
}

// SetRowHeight sets the height of every selected row. An empty height
// clears it.
func (e *Editor) SetRowHeight(height string) bool {
	var h model.Length
	if height != "" {
		var ok bool
		if h, ok = model.ParseLength(height); !ok {
			return e.reject("SetRowHeight", "invalid length "+height)
		}
	}

	ctx, ok := e.context()
	if !ok || ctx.sel.IsEmpty() {
		return e.reject("SetRowHeight", "no selection")
	}
	next := ctx.grid.Normalize()
	for _, r := range ctx.sel.Rows() {
		next.Rows[r].Attrs.Height = h
	}
	return e.commit(ctx, "SetRowHeight", next, ctx.sel.Anchor, ctx.sel.Head)
}

func (e *Editor) updateSelectedCells(name string, update func(c *model.Cell)) bool {
	ctx, ok := e.context()
	if !ok || ctx.sel.IsEmpty() {
		return e.reject(name, "no selection")
	}
	return e.updateCells(ctx, name, ctx.sel.Cells(ctx.grid), update)
}

func (e *Editor) updateCells(ctx *tableContext, name string, refs []*grid.CellRef, update func(c *model.Cell)) bool {
	if len(refs) == 0 {
		return e.reject(name, "no cells")
	}
	next := ctx.grid.Normalize()
	for _, ref := range refs {
		update(&next.Rows[ref.Row].Cells[ref.Index])
	}
	return e.commit(ctx, name, next, ctx.sel.Anchor, ctx.sel.Head)
}

func parseOptionalColor(s string) (model.Color, bool) {
	if strings.TrimSpace(s) == "" {
		return model.Color{}, true
	}
	return model.ParseColor(s)
}

// ============================================================================
// Tables
// ============================================================================

// InsertTable inserts a rows x cols table after the block holding the
// cursor and places the cursor in its first cell.
func (e *Editor) InsertTable(rows, cols int, withHeader bool) bool {
	if rows < 1 || cols < 1 || rows > e.config.MaxRows || cols > e.config.MaxCols {
		return e.reject("InsertTable", "dimensions out of range")
	}

	pos, ok := e.insertionPoint()
	if !ok {
		return e.reject("InsertTable", "cursor outside document")
	}

	table := model.NewTable(rows, cols)
	table.Attrs.BorderPreset = e.config.DefaultPreset
	applyThemeDefaults(&table.Attrs, e.config.DefaultTheme)
	if withHeader {
		for i := range table.Rows[0].Cells {
			table.Rows[0].Cells[i].IsHeader = true
		}
	}

	if !e.dispatch(&Transaction{Op: OpInsert, Pos: pos, TableID: table.ID, Table: table, Command: "InsertTable"}) {
		return false
	}

	first, _ := posmap.New(grid.Build(table)).PositionAt(0, 0)
	e.cursor = pos + 1 + first
	e.focus(pos, table.ID, model.Coord{}, model.Coord{})
	return true
}

// insertionPoint returns the block boundary at or after the cursor
func (e *Editor) insertionPoint() (int, bool) {
	if ctx, ok := e.context(); ok {
		return ctx.pos + ctx.table.NodeSize(), true
	}
	res, err := e.host.ResolvePosition(e.cursor)
	if err != nil {
		return 0, false
	}
	if res.AtBoundary() {
		return res.Pos, true
	}
	return res.After, true
}

// DeleteTable removes the focused table from the document
func (e *Editor) DeleteTable() bool {
	ctx, ok := e.context()
	if !ok {
		return e.reject("DeleteTable", "no active table")
	}
	return e.deleteTable(ctx, "DeleteTable")
}

func (e *Editor) deleteTable(ctx *tableContext, name string) bool {
	if !e.dispatch(&Transaction{Op: OpDelete, Pos: ctx.pos, TableID: ctx.table.ID, Command: name}) {
		return false
	}
	e.sel = nil
	e.cursor = ctx.pos
	return true
}

// FixTable replaces a malformed table with its repaired form
func (e *Editor) FixTable() bool {
	ctx, ok := e.context()
	if !ok {
		return e.reject("FixTable", "no active table")
	}
	if !ctx.grid.Repaired() {
		return e.reject("FixTable", "table is well formed")
	}

	e.logger.Info("repairing table", "table", ctx.table.ID, "repairs", grid.FormatWarnings(ctx.grid.Warnings()))
	return e.commit(ctx, "FixTable", ctx.grid.Normalize(), ctx.sel.Anchor, ctx.sel.Head)
}

// GoToNextCell moves the cursor to the next (dir > 0) or previous cell in
// document order. It fails at either end of the table.
func (e *Editor) GoToNextCell(dir int) bool {
	ctx, ok := e.context()
	if !ok || ctx.sel.IsEmpty() {
		return e.reject("GoToNextCell", "no selection")
	}

	cells := ctx.grid.Cells()
	current := ctx.grid.CellAt(ctx.sel.Head.Row, ctx.sel.Head.Col)
	idx := -1
	for i, ref := range cells {
		if ref == current {
			idx = i
			break
		}
	}

	step := 1
	if dir < 0 {
		step = -1
	}
	next := idx + step
	if idx < 0 || next < 0 || next >= len(cells) {
		return e.reject("GoToNextCell", "no cell in that direction")
	}

	coord := cells[next].Coord()
	if off, ok := posmap.New(ctx.grid).PositionAt(coord.Row, coord.Col); ok {
		e.cursor = ctx.pos + 1 + off
	}
	e.focus(ctx.pos, ctx.table.ID, coord, coord)
	return true
}
