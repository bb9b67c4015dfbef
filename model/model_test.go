package model

import (
	"strings"
	"testing"
)

// ============================================================================
// Color Tests
// ============================================================================

func TestParseColor(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"six digit hex", "#ff0000", "#FF0000", true},
		{"three digit hex", "#0f0", "#00FF00", true},
		{"upper case hex", "#ABCDEF", "#ABCDEF", true},
		{"rgb function", "rgb(1, 2, 255)", "#0102FF", true},
		{"named color", "Navy", "#000080", true},
		{"padded", "  #112233 ", "#112233", true},
		{"empty", "", "", false},
		{"bad hex", "#12345", "", false},
		{"bad digits", "#gggggg", "", false},
		{"rgb out of range", "rgb(256, 0, 0)", "", false},
		{"unknown name", "notacolor", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseColor(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseColor(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got.Hex() != tt.want {
				t.Errorf("ParseColor(%q) = %q, want %q", tt.input, got.Hex(), tt.want)
			}
		})
	}
}

func TestColorOr(t *testing.T) {
	red := MustColor("#FF0000")
	blue := MustColor("#0000FF")

	if got := (Color{}).Or(blue); got != blue {
		t.Errorf("unset.Or(blue) = %v, want %v", got, blue)
	}
	if got := red.Or(blue); got != red {
		t.Errorf("red.Or(blue) = %v, want %v", got, red)
	}
}

// ============================================================================
// Length Tests
// ============================================================================

func TestParseLength(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"12px", "12px", true},
		{"12", "12px", true},
		{"50%", "50%", true},
		{"1.5em", "1.5em", true},
		{"2rem", "2rem", true},
		{"10pt", "10pt", true},
		{"AUTO", "auto", true},
		{"", "", false},
		{"-3px", "", false},
		{"wide", "", false},
		{"NaN", "", false},
		{"inf%", "", false},
		{"+Inf", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLength(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseLength(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got.String() != tt.want {
				t.Errorf("ParseLength(%q) = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

// ============================================================================
// Enum Tests
// ============================================================================

func TestParseBorderPreset(t *testing.T) {
	tests := []struct {
		input  string
		want   BorderPreset
		wantOK bool
	}{
		{"thin", BorderThin, true},
		{"table-borders-thin", BorderThin, true},
		{"TABLE-BORDERS-DASHED", BorderDashed, true},
		{"outer-only", BorderOuterOnly, true},
		{"header-only", BorderHeaderOnly, true},
		{"sparkly", BorderThin, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseBorderPreset(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseBorderPreset(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if BorderThin.String() != "table-borders-thin" {
		t.Errorf("BorderThin.String() = %q", BorderThin.String())
	}
	if BorderOuterOnly.Name() != "outer-only" {
		t.Errorf("BorderOuterOnly.Name() = %q", BorderOuterOnly.Name())
	}
}

func TestEnumDefaults(t *testing.T) {
	if th, ok := ParseTheme("neon"); ok || th != ThemeLight {
		t.Errorf("ParseTheme(unknown) = %v, %v; want light, false", th, ok)
	}
	if th, _ := ParseTheme("Data"); th != ThemeData {
		t.Errorf("ParseTheme(Data) = %v, want data", th)
	}
	if p, ok := ParseCellPadding("table-padding-compact"); !ok || p != PaddingCompact {
		t.Errorf("ParseCellPadding = %v, %v", p, ok)
	}
	if m, _ := ParseResponsiveMode("stack"); m != ResponsiveStack {
		t.Errorf("ParseResponsiveMode(stack) = %v", m)
	}
	if f, _ := ParseFloat("right"); f != FloatRight {
		t.Errorf("ParseFloat(right) = %v", f)
	}
	if s, ok := ParseBorderStyle(""); ok || s.IsSet() {
		t.Errorf("ParseBorderStyle(\"\") = %v, %v; want unset", s, ok)
	}
	if s, ok := ParseBorderStyle("Dotted"); !ok || s != BorderDotted {
		t.Errorf("ParseBorderStyle(Dotted) = %v, %v", s, ok)
	}
	if s, ok := ParseSide("border-left"); !ok || s != SideLeft {
		t.Errorf("ParseSide(border-left) = %v, %v", s, ok)
	}
	if Theme(42).String() != "light" {
		t.Errorf("out of range theme should render as default")
	}
}

// ============================================================================
// Rect Tests
// ============================================================================

func TestRectOf(t *testing.T) {
	r := RectOf(Coord{Row: 2, Col: 0}, Coord{Row: 0, Col: 3})
	want := Rect{Top: 0, Left: 0, Bottom: 2, Right: 3}
	if r != want {
		t.Fatalf("RectOf() = %v, want %v", r, want)
	}
	if r.Width() != 4 || r.Height() != 3 || r.Area() != 12 {
		t.Errorf("dimensions = %dx%d area %d", r.Width(), r.Height(), r.Area())
	}
}

func TestRectRelations(t *testing.T) {
	outer := Rect{Top: 0, Left: 0, Bottom: 3, Right: 3}
	inner := Rect{Top: 1, Left: 1, Bottom: 2, Right: 2}
	apart := Rect{Top: 5, Left: 5, Bottom: 6, Right: 6}

	if !outer.ContainsRect(inner) {
		t.Error("outer should contain inner")
	}
	if inner.ContainsRect(outer) {
		t.Error("inner should not contain outer")
	}
	if !outer.Intersects(inner) {
		t.Error("outer should intersect inner")
	}
	if outer.Intersects(apart) {
		t.Error("outer should not intersect apart")
	}
	if !outer.Contains(Coord{Row: 3, Col: 0}) {
		t.Error("rect bounds are inclusive")
	}
	if u := inner.Union(apart); u != (Rect{Top: 1, Left: 1, Bottom: 6, Right: 6}) {
		t.Errorf("Union() = %v", u)
	}
}

// ============================================================================
// Table Tests
// ============================================================================

func TestNewTable(t *testing.T) {
	table := NewTable(3, 4)

	if table.RowCount() != 3 {
		t.Fatalf("RowCount() = %d, want 3", table.RowCount())
	}
	if table.ID == "" {
		t.Error("NewTable() should assign an id")
	}
	for i, row := range table.Rows {
		if len(row.Cells) != 4 {
			t.Fatalf("row %d has %d cells, want 4", i, len(row.Cells))
		}
		for j, cell := range row.Cells {
			if cell.ColSpan != 1 || cell.RowSpan != 1 {
				t.Errorf("cell[%d][%d] spans = %d,%d", i, j, cell.ColSpan, cell.RowSpan)
			}
		}
	}
}

func TestTableClone(t *testing.T) {
	table := NewTable(1, 1)
	table.Rows[0].Cells[0].Paragraphs = []string{"original"}
	table.Columns = []Column{{Width: Px(100)}}

	clone := table.Clone()
	clone.Rows[0].Cells[0].Paragraphs[0] = "changed"
	clone.Columns[0].Width = Px(5)

	if table.Rows[0].Cells[0].Paragraphs[0] != "original" {
		t.Error("Clone() shares paragraph storage")
	}
	if table.Columns[0].Width != Px(100) {
		t.Error("Clone() shares column storage")
	}
	if clone.ID != table.ID {
		t.Error("Clone() should keep the node id")
	}
}

func TestNodeSize(t *testing.T) {
	empty := NewCell(false)
	if empty.NodeSize() != 4 {
		t.Errorf("empty cell size = %d, want 4", empty.NodeSize())
	}

	cell := Cell{Paragraphs: []string{"ab", "héllo"}, ColSpan: 1, RowSpan: 1}
	// 2 + (2+2) + (2+5)
	if cell.NodeSize() != 13 {
		t.Errorf("cell size = %d, want 13", cell.NodeSize())
	}

	table := NewTable(2, 2)
	// rows: 2 + 4 + 4 = 10 each; table: 2 + 20
	if table.ContentSize() != 20 || table.NodeSize() != 22 {
		t.Errorf("table sizes = %d/%d, want 20/22", table.ContentSize(), table.NodeSize())
	}
}

func TestTableToMarkdown(t *testing.T) {
	table := NewTable(2, 3)
	table.Rows[0].Cells = []Cell{
		{Paragraphs: []string{"Merged"}, ColSpan: 2, RowSpan: 1},
		{Paragraphs: []string{"C"}, ColSpan: 1, RowSpan: 1},
	}
	table.Rows[1].Cells[0].Paragraphs = []string{"日本"}

	md := table.ToMarkdown()
	lines := strings.Split(strings.TrimRight(md, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("ToMarkdown() produced %d lines:\n%s", len(lines), md)
	}
	if !strings.HasPrefix(lines[0], "| Merged |") {
		t.Errorf("header line = %q", lines[0])
	}
	if strings.Count(lines[0], "|") != 4 {
		t.Errorf("header should have 3 columns: %q", lines[0])
	}
	if !strings.Contains(lines[1], "---") {
		t.Errorf("separator line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "日本") {
		t.Errorf("data line = %q", lines[2])
	}
}

func TestTableToCSV(t *testing.T) {
	table := NewTable(2, 2)
	table.Rows[0].Cells[0].Paragraphs = []string{"a,b"}
	table.Rows[0].Cells[1].Paragraphs = []string{`say "hi"`}
	table.Rows[1].Cells[0] = Cell{Paragraphs: []string{"tall"}, ColSpan: 1, RowSpan: 1}

	got := table.ToCSV()
	want := "\"a,b\",\"say \"\"hi\"\"\"\ntall,\n"
	if got != want {
		t.Errorf("ToCSV() = %q, want %q", got, want)
	}
}

func TestTableGetText(t *testing.T) {
	table := NewTable(1, 2)
	table.Rows[0].Cells[0].Paragraphs = []string{"one", "two"}
	table.Rows[0].Cells[1].Paragraphs = []string{"three"}

	if got := table.GetText(); got != "one two\tthree\n" {
		t.Errorf("GetText() = %q", got)
	}
}

func TestCellIsEmpty(t *testing.T) {
	if !NewCell(true).IsEmpty() {
		t.Error("new cell should be empty")
	}
	if (Cell{Paragraphs: []string{" ", "x"}}).IsEmpty() {
		t.Error("cell with text should not be empty")
	}
}

func TestBorderSideShorthand(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"1px solid #FF0000", "1px solid #FF0000", true},
		{"red dashed 2px", "2px dashed #FF0000", true},
		{"none", "none", true},
		{"3px", "3px", true},
		{"", "", true},
		{"1px wavy", "1px", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			b, ok := ParseBorderSide(tt.in)
			if ok != tt.wantOK {
				t.Errorf("ParseBorderSide(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if b.String() != tt.want {
				t.Errorf("ParseBorderSide(%q).String() = %q, want %q", tt.in, b.String(), tt.want)
			}
		})
	}
}
