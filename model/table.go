package model

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
)

// Table represents one table block embedded in a document
type Table struct {
	ID      string // Node id, persisted as data-table-id
	Attrs   TableAttrs
	Columns []Column // Declared columns (<colgroup>); may be empty
	Rows    []Row
}

// TableAttrs holds the table-level attributes
type TableAttrs struct {
	Theme           Theme
	BorderPreset    BorderPreset
	BorderColor     Color
	BorderRadius    Length
	CellPadding     CellPadding
	Width           Length // Length or Auto
	FixedWidth      bool
	ResponsiveMode  ResponsiveMode
	Caption         string
	Float           Float
	AlternatingRows bool
}

// Column is a declared grid column
type Column struct {
	Width Length
}

// Row is an ordered child of a table
type Row struct {
	Attrs RowAttrs
	Cells []Cell
}

// RowAttrs holds row-level overrides
type RowAttrs struct {
	BorderStyle BorderStyle
	BorderColor Color
	Height      Length
}

// Cell represents a table cell (td or th)
type Cell struct {
	Attrs      CellAttrs
	Paragraphs []string
	ColSpan    int
	RowSpan    int
	IsHeader   bool
}

// CellAttrs holds per-cell overrides
type CellAttrs struct {
	Background Color
	TextColor  Color
	Borders    [4]BorderSide // Indexed by Side
}

// BorderSide is one side of a cell border. Each field is independently
// optional.
type BorderSide struct {
	Color Color
	Width Length
	Style BorderStyle
}

// IsSet reports whether any field of the side is set
func (b BorderSide) IsSet() bool {
	return b.Color.IsSet() || b.Width.IsSet() || b.Style.IsSet()
}

// String renders the set fields as a border shorthand, e.g. "1px solid #FF0000"
func (b BorderSide) String() string {
	parts := make([]string, 0, 3)
	if b.Width.IsSet() {
		parts = append(parts, b.Width.String())
	}
	if b.Style.IsSet() {
		parts = append(parts, b.Style.String())
	}
	if b.Color.IsSet() {
		parts = append(parts, b.Color.Hex())
	}
	return strings.Join(parts, " ")
}

// ParseBorderSide parses a border shorthand. Tokens may appear in any
// order; unrecognized tokens are skipped and reported by ok == false.
func ParseBorderSide(s string) (b BorderSide, ok bool) {
	ok = true
	for _, tok := range strings.Fields(s) {
		if st, valid := ParseBorderStyle(tok); valid && !b.Style.IsSet() {
			b.Style = st
			continue
		}
		if l, valid := ParseLength(tok); valid && !l.IsAuto() && !b.Width.IsSet() {
			b.Width = l
			continue
		}
		if c, valid := ParseColor(tok); valid && !b.Color.IsSet() {
			b.Color = c
			continue
		}
		ok = false
	}
	return b, ok
}

// NewID returns a fresh table node id
func NewID() string {
	return uuid.NewString()
}

// NewCell creates an empty 1x1 cell
func NewCell(header bool) Cell {
	return Cell{
		Paragraphs: []string{""},
		ColSpan:    1,
		RowSpan:    1,
		IsHeader:   header,
	}
}

// NewTable creates a new table with given dimensions
func NewTable(rows, cols int) *Table {
	table := &Table{
		ID:   NewID(),
		Rows: make([]Row, rows),
	}
	for i := 0; i < rows; i++ {
		table.Rows[i].Cells = make([]Cell, cols)
		for j := 0; j < cols; j++ {
			table.Rows[i].Cells[j] = NewCell(false)
		}
	}
	return table
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		ID:    t.ID,
		Attrs: t.Attrs,
	}
	if t.Columns != nil {
		out.Columns = append([]Column(nil), t.Columns...)
	}
	out.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = row.Clone()
	}
	return out
}

// Clone returns a deep copy of the row
func (r Row) Clone() Row {
	out := Row{Attrs: r.Attrs, Cells: make([]Cell, len(r.Cells))}
	for i, c := range r.Cells {
		out.Cells[i] = c.Clone()
	}
	return out
}

// Clone returns a deep copy of the cell
func (c Cell) Clone() Cell {
	c.Paragraphs = append([]string(nil), c.Paragraphs...)
	return c
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Text returns the cell content with paragraphs joined by newlines
func (c Cell) Text() string {
	return strings.Join(c.Paragraphs, "\n")
}

// IsEmpty reports whether the cell has no text
func (c Cell) IsEmpty() bool {
	for _, p := range c.Paragraphs {
		if strings.TrimSpace(p) != "" {
			return false
		}
	}
	return true
}

// Spans returns colspan and rowspan clamped to at least 1
func (c Cell) Spans() (colspan, rowspan int) {
	return max(c.ColSpan, 1), max(c.RowSpan, 1)
}

// NodeSize returns the number of document positions the cell occupies:
// open and close tokens plus one paragraph node per paragraph.
func (c Cell) NodeSize() int {
	size := 2
	if len(c.Paragraphs) == 0 {
		return size + 2
	}
	for _, p := range c.Paragraphs {
		size += 2 + utf8.RuneCountInString(p)
	}
	return size
}

// NodeSize returns the number of document positions the row occupies
func (r Row) NodeSize() int {
	size := 2
	for _, c := range r.Cells {
		size += c.NodeSize()
	}
	return size
}

// NodeSize returns the number of document positions the table occupies
func (t *Table) NodeSize() int {
	return 2 + t.ContentSize()
}

// ContentSize returns the size of the table between its open and close tokens
func (t *Table) ContentSize() int {
	size := 0
	for _, r := range t.Rows {
		size += r.NodeSize()
	}
	return size
}

// GetText returns the table as tab-separated text, one line per row
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row.Cells {
			sb.WriteString(strings.ReplaceAll(cell.Text(), "\n", " "))
			if j < len(row.Cells)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToMarkdown converts the table to markdown format. Spanned slots are
// rendered as empty cells and columns are padded to a common display width.
func (t *Table) ToMarkdown() string {
	slots := t.textSlots()
	if len(slots) == 0 {
		return ""
	}

	cols := len(slots[0])
	widths := make([]int, cols)
	for j := range widths {
		widths[j] = 3
	}
	for _, row := range slots {
		for j, text := range row {
			if w := runewidth.StringWidth(text); w > widths[j] {
				widths[j] = w
			}
		}
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		for j, text := range row {
			sb.WriteString("| ")
			sb.WriteString(runewidth.FillRight(text, widths[j]))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	// Header row
	writeRow(slots[0])

	// Separator
	for j := 0; j < cols; j++ {
		sb.WriteString("|")
		sb.WriteString(strings.Repeat("-", widths[j]+2))
	}
	sb.WriteString("|\n")

	// Data rows
	for i := 1; i < len(slots); i++ {
		writeRow(slots[i])
	}

	return sb.String()
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.textSlots() {
		for j, text := range row {
			// Escape quotes and wrap in quotes if necessary
			if strings.ContainsAny(text, ",\"\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// textSlots lays the cell texts out on a rectangular slot matrix. Slots
// covered by a span but not at its origin are empty. Overflowing spans are
// clipped; this is an export view, not the editing grid.
func (t *Table) textSlots() [][]string {
	if len(t.Rows) == 0 {
		return nil
	}

	cols := len(t.Columns)
	if cols == 0 {
		for _, c := range t.Rows[0].Cells {
			cs, _ := c.Spans()
			cols += cs
		}
	}
	if cols == 0 {
		return nil
	}

	slots := make([][]string, len(t.Rows))
	claimed := make([][]bool, len(t.Rows))
	for i := range slots {
		slots[i] = make([]string, cols)
		claimed[i] = make([]bool, cols)
	}

	for i, row := range t.Rows {
		col := 0
		for _, cell := range row.Cells {
			for col < cols && claimed[i][col] {
				col++
			}
			if col >= cols {
				break
			}
			cs, rs := cell.Spans()
			slots[i][col] = strings.ReplaceAll(cell.Text(), "\n", " ")
			for r := i; r < i+rs && r < len(t.Rows); r++ {
				for c := col; c < col+cs && c < cols; c++ {
					claimed[r][c] = true
				}
			}
			col += cs
		}
	}
	return slots
}
