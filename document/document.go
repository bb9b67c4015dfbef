package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/tsawler/tabledit/editor"
	"github.com/tsawler/tabledit/grid"
	"github.com/tsawler/tabledit/htmltable"
	"github.com/tsawler/tabledit/model"
)

var (
	// ErrUnknownTable is returned when a transaction names a table id that
	// does not match the table at its position.
	ErrUnknownTable = errors.New("document: unknown table")

	// ErrNotBoundary is returned when an insert position is not between
	// top-level blocks.
	ErrNotBoundary = errors.New("document: position is not a block boundary")

	// ErrDuplicateTable is returned when an inserted table reuses an id.
	ErrDuplicateTable = errors.New("document: duplicate table id")
)

// Document is an in-memory document made of top-level blocks. It
// implements editor.Host and applies transactions in a single linear
// history.
//
// A Document is not safe for concurrent use.
type Document struct {
	blocks  []htmltable.Block
	version int
}

// New creates a document from blocks
func New(blocks ...htmltable.Block) *Document {
	return &Document{blocks: append([]htmltable.Block(nil), blocks...)}
}

// Parse reads a stored document. Malformed tables are repaired and the
// repairs returned as warnings.
func Parse(r io.Reader) (*Document, []grid.Warning, error) {
	blocks, warnings, err := htmltable.ParseDocument(r)
	if err != nil {
		return nil, nil, err
	}
	return New(blocks...), warnings, nil
}

// Open reads a stored document from a file
func Open(path string) (*Document, []grid.Warning, error) {
	blocks, warnings, err := htmltable.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	return New(blocks...), warnings, nil
}

// Blocks returns the document blocks. Tables belong to the document and
// must not be modified.
func (d *Document) Blocks() []htmltable.Block {
	return append([]htmltable.Block(nil), d.blocks...)
}

// Tables returns every table in document order
func (d *Document) Tables() []*model.Table {
	var tables []*model.Table
	for _, b := range d.blocks {
		if b.IsTable() {
			tables = append(tables, b.Table)
		}
	}
	return tables
}

// Table returns the table with the given id
func (d *Document) Table(id string) (*model.Table, bool) {
	for _, b := range d.blocks {
		if b.IsTable() && b.Table.ID == id {
			return b.Table, true
		}
	}
	return nil, false
}

// Version counts applied transactions
func (d *Document) Version() int { return d.version }

// Size returns the document size in positions
func (d *Document) Size() int {
	size := 0
	for _, b := range d.blocks {
		size += blockSize(b)
	}
	return size
}

// blockSize returns the positions occupied by a block. Raw blocks count
// like a paragraph holding their markup.
func blockSize(b htmltable.Block) int {
	if b.IsTable() {
		return b.Table.NodeSize()
	}
	return 2 + utf8.RuneCountInString(b.Raw)
}

// TablePos returns the position of the i-th table, counting from zero
func (d *Document) TablePos(i int) (int, bool) {
	pos := 0
	for _, b := range d.blocks {
		if b.IsTable() {
			if i == 0 {
				return pos, true
			}
			i--
		}
		pos += blockSize(b)
	}
	return 0, false
}

// LocateTable returns the position of the table with the given id
func (d *Document) LocateTable(id string) (int, bool) {
	pos := 0
	for _, b := range d.blocks {
		if b.IsTable() && b.Table.ID == id {
			return pos, true
		}
		pos += blockSize(b)
	}
	return 0, false
}

// ResolvePosition implements editor.Host
func (d *Document) ResolvePosition(pos int) (editor.ResolvedPos, error) {
	if pos < 0 || pos > d.Size() {
		return editor.ResolvedPos{}, fmt.Errorf("resolving %d: %w", pos, editor.ErrOutOfRange)
	}

	res := editor.ResolvedPos{Pos: pos, Before: pos, After: pos}
	start := 0
	for _, b := range d.blocks {
		end := start + blockSize(b)
		if pos > start && pos < end {
			res.Before, res.After = start, end
			if b.IsTable() {
				res.Table = b.Table
				res.TablePos = start
				res.Offset = pos - start - 1
			}
			break
		}
		start = end
	}
	return res, nil
}

// Dispatch implements editor.Host
func (d *Document) Dispatch(tx *editor.Transaction) error {
	if tx == nil {
		return errors.New("document: nil transaction")
	}

	switch tx.Op {
	case editor.OpReplace:
		if tx.Table == nil {
			return fmt.Errorf("replace at %d: no table", tx.Pos)
		}
		i, err := d.tableBlockAt(tx.Pos, tx.TableID)
		if err != nil {
			return fmt.Errorf("replace at %d: %w", tx.Pos, err)
		}
		d.blocks[i].Table = tx.Table

	case editor.OpInsert:
		if tx.Table == nil {
			return fmt.Errorf("insert at %d: no table", tx.Pos)
		}
		if _, exists := d.Table(tx.Table.ID); exists {
			return fmt.Errorf("insert %s: %w", tx.Table.ID, ErrDuplicateTable)
		}
		i, ok := d.boundaryIndex(tx.Pos)
		if !ok {
			return fmt.Errorf("insert at %d: %w", tx.Pos, ErrNotBoundary)
		}
		d.blocks = append(d.blocks, htmltable.Block{})
		copy(d.blocks[i+1:], d.blocks[i:])
		d.blocks[i] = htmltable.Block{Table: tx.Table}

	case editor.OpDelete:
		i, err := d.tableBlockAt(tx.Pos, tx.TableID)
		if err != nil {
			return fmt.Errorf("delete at %d: %w", tx.Pos, err)
		}
		d.blocks = append(d.blocks[:i], d.blocks[i+1:]...)

	default:
		return fmt.Errorf("document: unsupported transaction %s", tx.Op)
	}

	d.version++
	return nil
}

// tableBlockAt finds the table block starting at pos
func (d *Document) tableBlockAt(pos int, id string) (int, error) {
	start := 0
	for i, b := range d.blocks {
		if start == pos {
			if !b.IsTable() {
				return 0, editor.ErrNotInTable
			}
			if b.Table.ID != id {
				return 0, ErrUnknownTable
			}
			return i, nil
		}
		start += blockSize(b)
	}
	return 0, editor.ErrNotInTable
}

// boundaryIndex returns the block index at a block boundary position
func (d *Document) boundaryIndex(pos int) (int, bool) {
	start := 0
	for i, b := range d.blocks {
		if start == pos {
			return i, true
		}
		start += blockSize(b)
	}
	return len(d.blocks), start == pos
}

// Render writes the document as markup
func (d *Document) Render(w io.Writer, opts htmltable.RenderOptions) error {
	return htmltable.RenderDocument(w, d.blocks, opts)
}

// HTML renders the document to a string
func (d *Document) HTML() string {
	var buf bytes.Buffer
	// Rendering into a bytes.Buffer cannot fail
	_ = d.Render(&buf, htmltable.RenderOptions{})
	return buf.String()
}
