package grid

import (
	"reflect"
	"testing"

	"github.com/tsawler/tabledit/model"
)

// Helper to create a cell with text and spans
func span(text string, colspan, rowspan int) model.Cell {
	return model.Cell{Paragraphs: []string{text}, ColSpan: colspan, RowSpan: rowspan}
}

// Helper to create a table from rows of cells
func makeTable(rows ...[]model.Cell) *model.Table {
	t := &model.Table{ID: "t1"}
	for _, cells := range rows {
		t.Rows = append(t.Rows, model.Row{Cells: cells})
	}
	return t
}

func TestBuild_Simple(t *testing.T) {
	table := model.NewTable(3, 3)
	g := Build(table)

	if g.Width() != 3 || g.Height() != 3 {
		t.Fatalf("grid = %dx%d, want 3x3", g.Width(), g.Height())
	}
	if g.Repaired() {
		t.Errorf("valid table repaired: %s", FormatWarnings(g.Warnings()))
	}
	if err := g.Check(); err != nil {
		t.Errorf("Check() error = %v", err)
	}
	if len(g.Cells()) != 9 {
		t.Errorf("expected 9 cells, got %d", len(g.Cells()))
	}
}

func TestBuild_Spans(t *testing.T) {
	// +---+---+---+
	// | A     | B |
	// +---+---+   +
	// | C | D |   |
	// +---+---+---+
	table := makeTable(
		[]model.Cell{span("A", 2, 1), span("B", 1, 2)},
		[]model.Cell{span("C", 1, 1), span("D", 1, 1)},
	)
	g := Build(table)

	if g.Width() != 3 || g.Height() != 2 {
		t.Fatalf("grid = %dx%d, want 3x2", g.Width(), g.Height())
	}
	if g.Repaired() {
		t.Fatalf("unexpected repair: %s", FormatWarnings(g.Warnings()))
	}

	if g.CellAt(0, 0) != g.CellAt(0, 1) {
		t.Error("colspan slots should share a CellRef")
	}
	if g.CellAt(0, 2) != g.CellAt(1, 2) {
		t.Error("rowspan slots should share a CellRef")
	}
	if got := g.CellAt(1, 1).Cell.Text(); got != "D" {
		t.Errorf("CellAt(1,1) = %q, want D", got)
	}
	if got := g.CellAt(1, 2).Coord(); got != (model.Coord{Row: 0, Col: 2}) {
		t.Errorf("CellAt(1,2) origin = %v", got)
	}
	if g.CellAt(2, 0) != nil || g.CellAt(0, -1) != nil {
		t.Error("out of range lookups should return nil")
	}
	if len(g.RowCells(1)) != 2 {
		t.Errorf("row 1 should own 2 cells, got %d", len(g.RowCells(1)))
	}
}

func TestBuild_RepairsMalformedRows(t *testing.T) {
	tests := []struct {
		name      string
		table     *model.Table
		wantW     int
		wantH     int
		wantKinds []WarningKind
	}{
		{
			name: "underflow padded",
			table: makeTable(
				[]model.Cell{span("a", 1, 1), span("b", 1, 1), span("c", 1, 1)},
				[]model.Cell{span("d", 1, 1)},
			),
			wantW: 3, wantH: 2,
			wantKinds: []WarningKind{WarningPadded},
		},
		{
			name: "overflow dropped",
			table: makeTable(
				[]model.Cell{span("a", 1, 1), span("b", 1, 1)},
				[]model.Cell{span("c", 1, 1), span("d", 1, 1), span("e", 1, 1)},
			),
			wantW: 2, wantH: 2,
			wantKinds: []WarningKind{WarningDropped},
		},
		{
			name: "colspan truncated at edge",
			table: makeTable(
				[]model.Cell{span("a", 1, 1), span("b", 1, 1)},
				[]model.Cell{span("c", 1, 1), span("d", 3, 1)},
			),
			wantW: 2, wantH: 2,
			wantKinds: []WarningKind{WarningTruncated},
		},
		{
			name: "colspan truncated by rowspan",
			table: makeTable(
				[]model.Cell{span("a", 1, 1), span("b", 1, 2), span("c", 1, 1)},
				[]model.Cell{span("d", 2, 1), span("e", 1, 1)},
			),
			wantW: 3, wantH: 2,
			wantKinds: []WarningKind{WarningTruncated},
		},
		{
			name: "rowspan past last row",
			table: makeTable(
				[]model.Cell{span("a", 1, 5), span("b", 1, 1)},
				[]model.Cell{span("c", 1, 1)},
			),
			wantW: 2, wantH: 2,
			wantKinds: []WarningKind{WarningTruncated},
		},
		{
			name: "zero spans raised",
			table: makeTable(
				[]model.Cell{{Paragraphs: []string{"a"}}, span("b", 1, 1)},
			),
			wantW: 2, wantH: 1,
			wantKinds: []WarningKind{WarningInvalidSpan},
		},
		{
			name: "declared columns",
			table: &model.Table{
				Columns: make([]model.Column, 4),
				Rows:    []model.Row{{Cells: []model.Cell{span("a", 1, 1)}}},
			},
			wantW: 4, wantH: 1,
			wantKinds: []WarningKind{WarningPadded},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(tt.table)
			if g.Width() != tt.wantW || g.Height() != tt.wantH {
				t.Fatalf("grid = %dx%d, want %dx%d", g.Width(), g.Height(), tt.wantW, tt.wantH)
			}
			if err := g.Check(); err != nil {
				t.Fatalf("Check() error = %v", err)
			}

			var kinds []WarningKind
			for _, w := range g.Warnings() {
				kinds = append(kinds, w.Kind)
			}
			if !reflect.DeepEqual(kinds, tt.wantKinds) {
				t.Errorf("warnings = %s, want kinds %v", FormatWarnings(g.Warnings()), tt.wantKinds)
			}

			// The repaired table must build cleanly
			again := Build(g.Normalize())
			if again.Repaired() {
				t.Errorf("normalized table still needs repair: %s", FormatWarnings(again.Warnings()))
			}
		})
	}
}

func TestBuild_DoesNotModifySource(t *testing.T) {
	table := makeTable(
		[]model.Cell{span("a", 1, 1), span("b", 1, 1)},
		[]model.Cell{span("c", 4, 1)},
	)
	before := table.Clone()
	_ = Build(table)
	if !reflect.DeepEqual(table, before) {
		t.Error("Build() modified its input")
	}
}

func TestBuild_ValidTableIsIdentity(t *testing.T) {
	table := makeTable(
		[]model.Cell{span("A", 2, 1), span("B", 1, 2)},
		[]model.Cell{span("C", 1, 1), span("D", 1, 1)},
	)
	table.Attrs.Theme = model.ThemeData
	table.Rows[1].Attrs.Height = model.Px(20)

	g := Build(table)
	if !reflect.DeepEqual(g.Table(), table) {
		t.Errorf("normalized table differs from valid source:\n%+v\n%+v", g.Table(), table)
	}
}

func TestBuild_Empty(t *testing.T) {
	for _, table := range []*model.Table{nil, {}, makeTable(nil, nil)} {
		g := Build(table)
		if !g.Empty() {
			t.Errorf("expected empty grid, got %dx%d", g.Width(), g.Height())
		}
		if err := g.Check(); err != nil {
			t.Errorf("Check() on empty grid = %v", err)
		}
	}
}

func TestTilingProperty(t *testing.T) {
	// A spread of well-formed and malformed shapes; every build must tile.
	shapes := [][][2]int{
		{{1, 1}},
		{{3, 1}, {1, 1}, {1, 1}, {1, 1}},
		{{1, 3}, {1, 1}, {1, 1}, {1, 1}, {1, 1}},
		{{2, 2}, {1, 1}, {1, 1}, {1, 1}, {2, 1}},
		{{5, 5}, {2, 2}, {1, 9}},
		{{1, 1}, {2, 3}, {1, 1}, {1, 1}, {4, 1}, {1, 2}},
	}

	for i, shape := range shapes {
		// Distribute cells round-robin over three rows
		rows := make([][]model.Cell, 3)
		for j, s := range shape {
			rows[j%3] = append(rows[j%3], span("x", s[0], s[1]))
		}
		g := Build(makeTable(rows...))
		if err := g.Check(); err != nil {
			t.Errorf("shape %d: Check() error = %v", i, err)
		}

		area := 0
		for _, ref := range g.Cells() {
			area += ref.Rect().Area()
		}
		if area != g.Width()*g.Height() {
			t.Errorf("shape %d: cells cover %d slots, grid has %d", i, area, g.Width()*g.Height())
		}
	}
}

func TestCellsInAndIsRegular(t *testing.T) {
	table := makeTable(
		[]model.Cell{span("A", 2, 1), span("B", 1, 1)},
		[]model.Cell{span("C", 1, 1), span("D", 1, 1), span("E", 1, 1)},
	)
	g := Build(table)

	rect := model.Rect{Top: 0, Left: 1, Bottom: 1, Right: 2}
	if got := len(g.CellsIn(rect)); got != 4 {
		t.Errorf("CellsIn(%v) = %d cells, want 4", rect, got)
	}
	if g.IsRegular(rect) {
		t.Errorf("%v cuts through the merged cell and should be irregular", rect)
	}
	if !g.IsRegular(model.Rect{Top: 0, Left: 0, Bottom: 1, Right: 1}) {
		t.Error("rect containing the merged cell should be regular")
	}
}

func TestClamp(t *testing.T) {
	g := Build(model.NewTable(2, 3))
	got := g.Clamp(model.Coord{Row: 9, Col: -4})
	if got != (model.Coord{Row: 1, Col: 0}) {
		t.Errorf("Clamp() = %v", got)
	}
}
