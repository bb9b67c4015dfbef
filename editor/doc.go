// Package editor implements the table editing commands.
//
// An Editor sits between a host document and the table model. It keeps the
// cursor and the table selection, and turns each command into a single
// transaction that replaces, inserts or deletes one table. Commands never
// mutate the host's tables; they build a new table, check that it still
// tiles its grid, and dispatch it. Commands that cannot run in the current
// context return false and leave the document untouched.
//
// # Hosts
//
// The host owns the document. It resolves positions and applies
// transactions:
//
//	type Host interface {
//	    ResolvePosition(pos int) (ResolvedPos, error)
//	    Dispatch(tx *Transaction) error
//	}
//
// Package document provides an in-memory host.
//
// # Commands
//
// Structural commands (InsertRow, DeleteColumn, MergeCells, SplitCell and
// friends) keep merged cells intact: a row inserted through a rowspan grows
// the span instead of adding a cell, and deleting a row shrinks the spans
// crossing it. Style commands (ApplyTheme, ApplyBorderPreset,
// SetCellBackground, SetCellBorder) only record attributes; the resolved
// styles are computed at render time by package style.
//
// If a command produces a table that does not tile, the result is dropped
// and the stored table is rebuilt from its serialized markup, which repairs
// it if it was already malformed.
//
// # Example
//
//	doc := document.New()
//	ed := editor.New(doc, editor.WithLogger(slog.Default()))
//	ed.InsertTable(3, 3, true)
//	ed.SelectCells(model.Coord{Row: 0, Col: 0}, model.Coord{Row: 0, Col: 1})
//	ed.MergeCells()
//	ed.ApplyTheme("data")
package editor
