package editor

import (
	"errors"

	"github.com/tsawler/tabledit/model"
)

// Sentinel errors returned by hosts
var (
	// ErrOutOfRange is returned when a position lies outside the document.
	ErrOutOfRange = errors.New("editor: position out of range")

	// ErrNotInTable is returned when a transaction targets a position that
	// does not hold the expected table.
	ErrNotInTable = errors.New("editor: no table at position")
)

// ResolvedPos describes a document position
type ResolvedPos struct {
	Pos int

	// Before and After are the positions of the boundaries of the top-level
	// block containing Pos. Both equal Pos when Pos lies between blocks.
	Before int
	After  int

	// Table is the table containing Pos, or nil. It belongs to the host
	// and must not be modified.
	Table *model.Table

	// TablePos is the position of the table node; Offset is Pos relative
	// to the start of the table content.
	TablePos int
	Offset   int
}

// InTable reports whether the position lies inside a table's content
func (r ResolvedPos) InTable() bool { return r.Table != nil }

// AtBoundary reports whether the position lies between top-level blocks
func (r ResolvedPos) AtBoundary() bool { return r.Pos == r.Before }

// Host is the surrounding document engine. It owns the document and its
// transaction history; the editor only computes transactions.
type Host interface {
	// ResolvePosition describes a document position. Positions outside
	// the document return ErrOutOfRange.
	ResolvePosition(pos int) (ResolvedPos, error)

	// Dispatch applies a transaction atomically, or fails without change.
	Dispatch(tx *Transaction) error
}

// Op is a transaction kind
type Op int

const (
	OpReplace Op = iota // Replace the table at Pos with Table
	OpInsert            // Insert Table as a new block at Pos
	OpDelete            // Remove the table at Pos
)

func (o Op) String() string {
	switch o {
	case OpReplace:
		return "replace"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Transaction is one atomic document change produced by a command
type Transaction struct {
	Op      Op
	Pos     int          // Position of the table node (Insert: a block boundary)
	TableID string       // Id of the table being replaced or deleted
	Table   *model.Table // New table for Replace and Insert
	Command string       // Name of the producing command, for logging
}

// Observer is notified after each successfully dispatched transaction
type Observer interface {
	TableChanged(t *model.Table)
	TableRemoved(id string)
}
