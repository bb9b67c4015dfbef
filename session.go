package tabledit

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tsawler/tabledit/document"
	"github.com/tsawler/tabledit/editor"
	"github.com/tsawler/tabledit/grid"
	"github.com/tsawler/tabledit/htmltable"
	"github.com/tsawler/tabledit/model"
	"github.com/tsawler/tabledit/posmap"
	"github.com/tsawler/tabledit/view"
)

var (
	// ErrRejected is returned when a command cannot run in the current
	// context, e.g. merging a single cell.
	ErrRejected = errors.New("command rejected")

	// ErrNoTable is returned when a session addresses a table that does
	// not exist.
	ErrNoTable = errors.New("no such table")
)

// Session ties a document to an editor and its views. Chain methods
// return the same session and do nothing once an error has occurred.
//
// A Session is not safe for concurrent use.
type Session struct {
	doc    *document.Document
	editor *editor.Editor
	views  *view.Manager
	opts   sessionOptions

	// Accumulated error (fail-fast)
	err error

	// Repairs made while loading
	warnings []Warning
}

func newSession(doc *document.Document, warnings []Warning, err error, opts []Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{opts: o, warnings: warnings}
	if err != nil {
		s.err = err
		return s
	}

	s.doc = doc
	s.editor = editor.New(doc, editor.WithConfig(o.config), editor.WithLogger(o.logger))
	s.views = view.NewManager(o.factory, o.layout,
		view.WithSelectHandler(s.editor.SelectInTable),
		view.WithLogger(o.logger),
	)
	s.editor.AddObserver(s.views)
	s.views.Sync(doc.Tables())

	if len(warnings) > 0 {
		o.logger.Info("repaired tables on load", "count", len(warnings), "repairs", grid.FormatWarnings(warnings))
	}
	return s
}

// Err returns the first error of the chain
func (s *Session) Err() error { return s.err }

// Warnings returns the repairs made while loading
func (s *Session) Warnings() []Warning { return s.warnings }

// Document returns the underlying document, or nil after a load error
func (s *Session) Document() *document.Document { return s.doc }

// Editor returns the session editor, or nil after a load error
func (s *Session) Editor() *editor.Editor { return s.editor }

// Views returns the view manager, or nil after a load error
func (s *Session) Views() *view.Manager { return s.views }

// ============================================================================
// Chain methods
// ============================================================================

// Focus places the cursor in cell (row, col) of the n-th table, counting
// from zero. Cell (0, 0) of a table without cells focuses the table.
func (s *Session) Focus(n, row, col int) *Session {
	if s.err != nil {
		return s
	}

	pos, ok := s.doc.TablePos(n)
	if !ok {
		s.err = fmt.Errorf("focus table %d: %w", n, ErrNoTable)
		return s
	}
	g := grid.Build(s.doc.Tables()[n])
	off, ok := posmap.New(g).PositionAt(row, col)
	if g.Empty() && row == 0 && col == 0 {
		// Focus the table itself
		off, ok = 0, true
	}
	if !ok {
		s.err = fmt.Errorf("focus table %d: cell (%d,%d) out of range", n, row, col)
		return s
	}
	if !s.editor.SetCursor(pos + 1 + off) {
		s.err = fmt.Errorf("focus table %d: %w", n, ErrRejected)
	}
	return s
}

// Select selects the cells between anchor and head in the focused table
func (s *Session) Select(anchor, head model.Coord) *Session {
	return s.Do("select", func(ed *editor.Editor) bool {
		return ed.SelectCells(anchor, head)
	})
}

// Do runs an editor command. A command returning false fails the chain
// with ErrRejected.
func (s *Session) Do(name string, fn func(ed *editor.Editor) bool) *Session {
	if s.err != nil {
		return s
	}
	if !fn(s.editor) {
		s.err = fmt.Errorf("%s: %w", name, ErrRejected)
	}
	return s
}

// Apply runs one command line such as "merge" or "theme data". See
// Commands for the accepted commands.
func (s *Session) Apply(line string) *Session {
	if s.err != nil {
		return s
	}
	if err := s.run(line); err != nil {
		s.err = err
	}
	return s
}

// Script applies command lines in order. Blank lines and lines starting
// with # are skipped.
func (s *Session) Script(lines ...string) *Session {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.Apply(line)
	}
	return s
}

// ============================================================================
// Terminal operations
// ============================================================================

// Tables returns the document tables
func (s *Session) Tables() ([]*model.Table, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.doc.Tables(), nil
}

// HTML renders the document
func (s *Session) HTML(opts htmltable.RenderOptions) (string, []Warning, error) {
	if s.err != nil {
		return "", s.warnings, s.err
	}
	var buf bytes.Buffer
	if err := s.doc.Render(&buf, opts); err != nil {
		return "", s.warnings, fmt.Errorf("failed to render document: %w", err)
	}
	return buf.String(), s.warnings, nil
}

// Markdown renders every table as a Markdown table, separated by blank
// lines. Other blocks are omitted.
func (s *Session) Markdown() (string, []Warning, error) {
	if s.err != nil {
		return "", s.warnings, s.err
	}
	var parts []string
	for _, t := range s.doc.Tables() {
		parts = append(parts, strings.TrimRight(t.ToMarkdown(), "\n"))
	}
	return strings.Join(parts, "\n\n"), s.warnings, nil
}

// CSV renders the n-th table as CSV
func (s *Session) CSV(n int) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	tables := s.doc.Tables()
	if n < 0 || n >= len(tables) {
		return "", fmt.Errorf("csv table %d: %w", n, ErrNoTable)
	}
	return tables[n].ToCSV(), nil
}

// Save renders the document to a file
func (s *Session) Save(filename string, opts htmltable.RenderOptions) error {
	out, _, err := s.HTML(opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
