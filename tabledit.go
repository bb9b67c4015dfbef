// Package tabledit provides a fluent API for editing the tables of an HTML
// document.
//
// Basic usage:
//
//	out, warnings, err := tabledit.Open("page.html").
//	    Focus(0, 0, 0).
//	    Apply("add-row-after").
//	    Apply("theme data").
//	    HTML(htmltable.RenderOptions{})
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Repaired:", tabledit.FormatWarnings(warnings))
//	}
//
// Malformed tables are repaired on load and the repairs returned as
// warnings. Each step of a chain is skipped once an earlier step failed;
// the first error is reported by the terminal operation.
//
// For finer control use the editor, document and view packages directly.
package tabledit

import (
	"io"

	"github.com/tsawler/tabledit/document"
	"github.com/tsawler/tabledit/grid"
)

// Warning is a repair made while loading a malformed table
type Warning = grid.Warning

// FormatWarnings renders warnings one per line
func FormatWarnings(warnings []Warning) string {
	return grid.FormatWarnings(warnings)
}

// Open loads an HTML document from a file and returns a Session.
//
// Example:
//
//	md, _, err := tabledit.Open("page.html").Markdown()
func Open(filename string, opts ...Option) *Session {
	doc, warnings, err := document.Open(filename)
	return newSession(doc, warnings, err, opts)
}

// FromReader loads an HTML document from r
func FromReader(r io.Reader, opts ...Option) *Session {
	doc, warnings, err := document.Parse(r)
	return newSession(doc, warnings, err, opts)
}

// New starts a session on an empty document
//
// Example:
//
//	out, _, err := tabledit.New().Apply("insert-table 3 3 header").HTML(htmltable.RenderOptions{})
func New(opts ...Option) *Session {
	return newSession(document.New(), nil, nil, opts)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	tables := tabledit.Must(tabledit.Open("page.html").Tables())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustOutput is like Must for terminal operations that also return
// warnings. The warnings are discarded.
//
// Example:
//
//	md := tabledit.MustOutput(tabledit.Open("page.html").Markdown())
func MustOutput[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
