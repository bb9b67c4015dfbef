package editor

import (
	"log/slog"

	"github.com/tsawler/tabledit/grid"
	"github.com/tsawler/tabledit/htmltable"
	"github.com/tsawler/tabledit/model"
	"github.com/tsawler/tabledit/posmap"
	"github.com/tsawler/tabledit/selection"
)

// TableLocator is implemented by hosts that can find a table by id. The
// editor uses it to select inside a table that does not hold the cursor.
type TableLocator interface {
	LocateTable(id string) (pos int, ok bool)
}

// Editor runs table commands against a host document. It holds the
// cursor and the table selection; everything else is read from the host
// on demand, so no stale grid is ever observed.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	host      Host
	config    Config
	logger    *slog.Logger
	observers []Observer

	cursor int         // Last cursor position, inside or outside tables
	sel    *tableFocus // nil when focus is outside every table
}

// tableFocus is the persistent part of a table selection. It is
// reclassified against a fresh grid whenever it is read.
type tableFocus struct {
	tablePos int
	tableID  string
	anchor   model.Coord
	head     model.Coord
}

// tableContext is the resolved state a command operates on
type tableContext struct {
	pos   int
	table *model.Table
	grid  *grid.Grid
	sel   selection.Selection
}

// New creates an editor over host
func New(host Host, opts ...Option) *Editor {
	e := &Editor{
		host:   host,
		config: DefaultConfig(),
		logger: discardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the editor configuration
func (e *Editor) Config() Config { return e.config }

// AddObserver registers an observer of dispatched changes
func (e *Editor) AddObserver(o Observer) {
	if o != nil {
		e.observers = append(e.observers, o)
	}
}

// context resolves the focused table. It clears the focus when the table
// has disappeared from the document.
func (e *Editor) context() (*tableContext, bool) {
	if e.sel == nil {
		return nil, false
	}

	res, err := e.host.ResolvePosition(e.sel.tablePos + 1)
	if err != nil || !res.InTable() || res.TablePos != e.sel.tablePos || res.Table.ID != e.sel.tableID {
		e.logger.Debug("focused table is gone", "table", e.sel.tableID, "pos", e.sel.tablePos)
		e.sel = nil
		return nil, false
	}

	g := grid.Build(res.Table)
	return &tableContext{
		pos:   res.TablePos,
		table: res.Table,
		grid:  g,
		sel:   selection.Classify(e.sel.anchor, e.sel.head, g),
	}, true
}

// ============================================================================
// Selection state
// ============================================================================

// SetCursor places the cursor at a document position. It reports whether
// the position lies inside a table; otherwise the table selection is
// cleared. A table without cells is focused with an empty selection.
func (e *Editor) SetCursor(pos int) bool {
	e.cursor = pos

	res, err := e.host.ResolvePosition(pos)
	if err != nil {
		e.logger.Debug("cursor outside document", "pos", pos, "error", err)
		e.sel = nil
		return false
	}
	if !res.InTable() {
		e.sel = nil
		return false
	}

	g := grid.Build(res.Table)
	if g.Empty() {
		// No cell to select, but table commands such as DeleteTable
		// still reach the table
		e.sel = &tableFocus{tablePos: res.TablePos, tableID: res.Table.ID}
		return true
	}

	coord, ok := posmap.New(g).CoordAt(res.Offset)
	if !ok {
		// The closing edge of the content snaps to the last cell
		coord = model.Coord{Row: g.Height() - 1, Col: g.Width() - 1}
	}

	e.sel = &tableFocus{tablePos: res.TablePos, tableID: res.Table.ID, anchor: coord, head: coord}
	return true
}

// Cursor returns the last cursor position
func (e *Editor) Cursor() int { return e.cursor }

// SelectCells selects the rectangle between anchor and head in the
// focused table. Coordinates must lie inside the grid.
func (e *Editor) SelectCells(anchor, head model.Coord) bool {
	ctx, ok := e.context()
	if !ok {
		return e.reject("SelectCells", "no active table")
	}
	if !ctx.grid.InBounds(anchor) || !ctx.grid.InBounds(head) {
		return e.reject("SelectCells", "coordinate out of range")
	}
	e.focus(ctx.pos, ctx.table.ID, anchor, head)
	return true
}

// SelectRange selects the cells between two document positions, which
// must lie in the same table.
func (e *Editor) SelectRange(from, to int) bool {
	a, errA := e.host.ResolvePosition(from)
	b, errB := e.host.ResolvePosition(to)
	if errA != nil || errB != nil || !a.InTable() || !b.InTable() || a.TablePos != b.TablePos {
		return e.reject("SelectRange", "range does not lie in one table")
	}

	g := grid.Build(a.Table)
	m := posmap.New(g)
	anchor, okA := m.CoordAt(a.Offset)
	head, okB := m.CoordAt(b.Offset)
	if !okA || !okB {
		return e.reject("SelectRange", "range outside table content")
	}

	e.cursor = to
	e.focus(a.TablePos, a.Table.ID, anchor, head)
	return true
}

// SelectRow selects row i of the focused table
func (e *Editor) SelectRow(i int) bool {
	ctx, ok := e.context()
	if !ok {
		return e.reject("SelectRow", "no active table")
	}
	if i < 0 || i >= ctx.grid.Height() {
		return e.reject("SelectRow", "row out of range")
	}
	return e.applySelection(ctx, selection.SelectRow(ctx.grid, i))
}

// SelectColumn selects column i of the focused table
func (e *Editor) SelectColumn(i int) bool {
	ctx, ok := e.context()
	if !ok {
		return e.reject("SelectColumn", "no active table")
	}
	if i < 0 || i >= ctx.grid.Width() {
		return e.reject("SelectColumn", "column out of range")
	}
	return e.applySelection(ctx, selection.SelectColumn(ctx.grid, i))
}

// SelectTable selects every cell of the focused table
func (e *Editor) SelectTable() bool {
	ctx, ok := e.context()
	if !ok {
		return e.reject("SelectTable", "no active table")
	}
	return e.applySelection(ctx, selection.SelectTable(ctx.grid))
}

// SelectInTable applies a classified selection to the table with the
// given id, moving focus to it when the host can locate it.
func (e *Editor) SelectInTable(id string, s selection.Selection) bool {
	if s.IsEmpty() {
		return e.reject("SelectInTable", "empty selection")
	}

	if ctx, ok := e.context(); ok && ctx.table.ID == id {
		return e.applySelection(ctx, s)
	}

	locator, ok := e.host.(TableLocator)
	if !ok {
		return e.reject("SelectInTable", "table is not focused")
	}
	pos, ok := locator.LocateTable(id)
	if !ok {
		return e.reject("SelectInTable", "unknown table")
	}

	e.sel = &tableFocus{tablePos: pos, tableID: id}
	ctx, ok := e.context()
	if !ok {
		return e.reject("SelectInTable", "unknown table")
	}
	return e.applySelection(ctx, s)
}

// Blur clears the table selection, as when focus leaves the table
func (e *Editor) Blur() {
	e.sel = nil
}

func (e *Editor) applySelection(ctx *tableContext, s selection.Selection) bool {
	if s.IsEmpty() || !ctx.grid.InBounds(s.Anchor) || !ctx.grid.InBounds(s.Head) {
		return e.reject("select", "selection outside table")
	}
	e.focus(ctx.pos, ctx.table.ID, s.Anchor, s.Head)
	return true
}

func (e *Editor) focus(pos int, id string, anchor, head model.Coord) {
	e.sel = &tableFocus{tablePos: pos, tableID: id, anchor: anchor, head: head}
}

// ============================================================================
// Query API
// ============================================================================

// Selection returns the current classified selection
func (e *Editor) Selection() selection.Selection {
	ctx, ok := e.context()
	if !ok {
		return selection.None
	}
	return ctx.sel
}

// CurrentSelectionType returns the type of the current selection
func (e *Editor) CurrentSelectionType() selection.Type {
	return e.Selection().Type
}

// CurrentTableAttributes returns the attributes of the focused table
func (e *Editor) CurrentTableAttributes() (model.TableAttrs, bool) {
	ctx, ok := e.context()
	if !ok {
		return model.TableAttrs{}, false
	}
	return ctx.table.Attrs, true
}

// CurrentCellAttributes returns the attributes of the cell at the
// selection head
func (e *Editor) CurrentCellAttributes() (model.CellAttrs, bool) {
	ctx, ok := e.context()
	if !ok || ctx.sel.IsEmpty() {
		return model.CellAttrs{}, false
	}
	ref := ctx.grid.CellAt(ctx.sel.Head.Row, ctx.sel.Head.Col)
	if ref == nil {
		return model.CellAttrs{}, false
	}
	return ref.Cell.Attrs, true
}

// ActiveTable returns the focused table. It belongs to the host and must
// not be modified.
func (e *Editor) ActiveTable() (*model.Table, bool) {
	ctx, ok := e.context()
	if !ok {
		return nil, false
	}
	return ctx.table, true
}

// SelectedRange returns the document range covered by the selection
func (e *Editor) SelectedRange() (from, to int, ok bool) {
	ctx, ok := e.context()
	if !ok || ctx.sel.IsEmpty() {
		return 0, 0, false
	}
	from, to, ok = posmap.New(ctx.grid).Range(ctx.sel.Rect)
	if !ok {
		return 0, 0, false
	}
	start := ctx.pos + 1
	return start + from, start + to, true
}

// CanMerge reports whether MergeCells would succeed
func (e *Editor) CanMerge() bool {
	ctx, ok := e.context()
	return ok && mergeable(ctx) == ""
}

// CanSplit reports whether SplitCell would succeed
func (e *Editor) CanSplit() bool {
	ctx, ok := e.context()
	if !ok {
		return false
	}
	_, reason := splittable(ctx)
	return reason == ""
}

// ============================================================================
// Dispatch
// ============================================================================

// commit verifies next and replaces the focused table with it. The new
// selection is anchor/head, clamped into the new grid.
func (e *Editor) commit(ctx *tableContext, name string, next *model.Table, anchor, head model.Coord) bool {
	g := grid.Build(next)
	if err := g.Check(); err != nil || g.Repaired() || g.Empty() {
		e.rebuild(ctx, name, g, err)
		return false
	}

	tx := &Transaction{Op: OpReplace, Pos: ctx.pos, TableID: ctx.table.ID, Table: next, Command: name}
	if !e.dispatch(tx) {
		return false
	}

	e.focus(ctx.pos, next.ID, g.Clamp(anchor), g.Clamp(head))
	return true
}

// rebuild handles a command result that breaks the tiling invariant. The
// result is discarded and the stored table is rebuilt from its serialized
// form; if that needed repairs the repaired table replaces it.
func (e *Editor) rebuild(ctx *tableContext, name string, bad *grid.Grid, checkErr error) {
	e.logger.Warn("command produced an invalid table; rebuilding from stored markup",
		"command", name,
		"table", ctx.table.ID,
		"error", checkErr,
		"repairs", len(bad.Warnings()),
	)

	parsed, warnings, err := htmltable.ParseTableString(htmltable.TableHTML(ctx.table, htmltable.RenderOptions{}))
	if err != nil {
		e.logger.Error("rebuilding table failed", "table", ctx.table.ID, "error", err)
		return
	}
	if len(warnings) == 0 {
		return
	}

	e.logger.Info("stored table repaired", "table", ctx.table.ID, "repairs", len(warnings))
	e.dispatch(&Transaction{Op: OpReplace, Pos: ctx.pos, TableID: ctx.table.ID, Table: parsed, Command: name + ":rebuild"})
}

func (e *Editor) dispatch(tx *Transaction) bool {
	if err := e.host.Dispatch(tx); err != nil {
		e.logger.Warn("dispatch failed", "command", tx.Command, "op", tx.Op.String(), "table", tx.TableID, "error", err)
		return false
	}

	e.logger.Debug("dispatched", "command", tx.Command, "op", tx.Op.String(), "table", tx.TableID)
	for _, o := range e.observers {
		switch tx.Op {
		case OpDelete:
			o.TableRemoved(tx.TableID)
		default:
			o.TableChanged(tx.Table)
		}
	}
	return true
}

// reject logs a refused command and returns false
func (e *Editor) reject(name, reason string) bool {
	e.logger.Debug("command rejected", "command", name, "reason", reason)
	return false
}
