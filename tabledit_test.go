package tabledit

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/tabledit/editor"
	"github.com/tsawler/tabledit/htmltable"
	"github.com/tsawler/tabledit/model"
	"github.com/tsawler/tabledit/view"
)

const page = `<h1>Report</h1>
<table data-table-id="sales">
  <tr><th>Region</th><th>Q1</th><th>Q2</th></tr>
  <tr><td>North</td><td>10</td><td>12</td></tr>
  <tr><td>South</td><td>7</td></tr>
</table>
<p>Footer</p>`

func TestOpen(t *testing.T) {
	_, _, err := Open("nonexistent.html").HTML(htmltable.RenderOptions{})
	if err == nil {
		t.Error("expected error for non-existent file")
	}

	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	tables, err := Open(path).Tables()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if len(tables) != 1 || tables[0].ID != "sales" {
		t.Errorf("Tables() = %v", tables)
	}
}

func TestFromReader_Repairs(t *testing.T) {
	s := FromReader(strings.NewReader(page))
	if s.Err() != nil {
		t.Fatalf("FromReader() failed: %v", s.Err())
	}
	if len(s.Warnings()) != 1 {
		t.Fatalf("len(Warnings()) = %d, want 1:\n%s", len(s.Warnings()), FormatWarnings(s.Warnings()))
	}

	// Views are built for tables present at load
	v, ok := s.Views().View("sales")
	if !ok {
		t.Fatal("no view for loaded table")
	}
	if v.State() != view.StateSynchronized {
		t.Errorf("State() = %v, want synchronized", v.State())
	}
}

func TestChain(t *testing.T) {
	out, _, err := FromReader(strings.NewReader(page)).
		Focus(0, 1, 0).
		Apply("add-row-after").
		Apply("select-row 2").
		Apply("text East").
		Apply("theme data").
		Select(model.Coord{Row: 0, Col: 1}, model.Coord{Row: 0, Col: 2}).
		Apply("merge").
		Apply("text First half").
		HTML(htmltable.RenderOptions{})
	if err != nil {
		t.Fatalf("chain failed: %v", err)
	}

	for _, want := range []string{
		`theme="data"`,
		`<th colspan="2"><p>First half</p></th>`,
		`<td><p>East</p></td>`,
		`<p>Footer</p>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestChain_StopsAtFirstError(t *testing.T) {
	s := FromReader(strings.NewReader(page)).
		Focus(0, 0, 0).
		Apply("merge").
		Apply("theme data")

	if !errors.Is(s.Err(), ErrRejected) {
		t.Fatalf("Err() = %v, want ErrRejected", s.Err())
	}
	if !strings.HasPrefix(s.Err().Error(), "merge:") {
		t.Errorf("Err() = %q, want it to name the command", s.Err())
	}
	tables := s.Document().Tables()
	if tables[0].Attrs.Theme != model.ThemeLight {
		t.Error("commands after a failure must not run")
	}
	if _, _, err := s.Markdown(); err == nil {
		t.Error("terminal operation should report the chain error")
	}
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"frobnicate", ErrUnknownCommand},
		{"delete-row", ErrUsage},
		{"delete-row x", ErrUsage},
		{"insert-row 0 sideways", ErrUsage},
		{"insert-table 2 2 fancy", ErrUsage},
		{"zebra maybe", ErrUsage},
		{"padding huge", ErrUsage},
		{"border diagonal 1px", ErrUsage},
		{"border top 1px wavy", ErrUsage},
		{"width tall", ErrUsage},
		{"merge extra", ErrUsage},
		{"focus 3 0 0", ErrNoTable},
		{"delete-row 9", ErrRejected},
		{"theme neon", ErrRejected},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s := FromReader(strings.NewReader(page)).Focus(0, 0, 0).Apply(tt.line)
			if !errors.Is(s.Err(), tt.want) {
				t.Errorf("Apply(%q) error = %v, want %v", tt.line, s.Err(), tt.want)
			}
		})
	}
}

func TestApply_TableAttributes(t *testing.T) {
	s := FromReader(strings.NewReader(page)).Focus(0, 0, 0).Script(
		"# table settings",
		"padding compact",
		"responsive stack",
		"float right",
		"zebra on",
		"fixed-width on",
		"width 80%",
		"radius 4px",
		"border-color navy",
		"caption Quarterly sales",
		"",
		"preset outer-only",
	)
	if s.Err() != nil {
		t.Fatalf("Script() failed: %v", s.Err())
	}

	got := s.Document().Tables()[0].Attrs
	want := model.TableAttrs{
		BorderPreset:    model.BorderOuterOnly,
		BorderColor:     model.MustColor("#000080"),
		BorderRadius:    model.Px(4),
		CellPadding:     model.PaddingCompact,
		Width:           model.Percent(80),
		FixedWidth:      true,
		ResponsiveMode:  model.ResponsiveStack,
		Caption:         "Quarterly sales",
		Float:           model.FloatRight,
		AlternatingRows: true,
	}
	if got != want {
		t.Errorf("Attrs = %+v\nwant %+v", got, want)
	}
}

func TestApply_CellCommands(t *testing.T) {
	s := FromReader(strings.NewReader(page)).Focus(0, 1, 1).Script(
		"background #FFEEDD",
		"text-color red",
		"border bottom 2px dashed #00FF00",
		`text ten\nunits`,
		"row-height 2em",
		"header-cell",
	)
	if s.Err() != nil {
		t.Fatalf("Script() failed: %v", s.Err())
	}

	table := s.Document().Tables()[0]
	cell := table.Rows[1].Cells[1]
	if cell.Attrs.Background.Hex() != "#FFEEDD" || cell.Attrs.TextColor.Hex() != "#FF0000" {
		t.Errorf("colors = %s/%s", cell.Attrs.Background.Hex(), cell.Attrs.TextColor.Hex())
	}
	if got := cell.Attrs.Borders[model.SideBottom].String(); got != "2px dashed #00FF00" {
		t.Errorf("bottom border = %q", got)
	}
	if got := cell.Text(); got != "ten\nunits" {
		t.Errorf("Text() = %q", got)
	}
	if !cell.IsHeader {
		t.Error("header-cell did not toggle the cell")
	}
	if table.Rows[1].Attrs.Height != (model.Length{Value: 2, Unit: "em"}) {
		t.Errorf("row height = %v", table.Rows[1].Attrs.Height)
	}

	s.Apply("background clear")
	if s.Document().Tables()[0].Rows[1].Cells[1].Attrs.Background.IsSet() {
		t.Error("background clear did not clear the override")
	}
}

func TestNew_InsertAndExport(t *testing.T) {
	s := New(WithConfig(editor.Config{MaxRows: 10, MaxCols: 10, DefaultTheme: model.ThemeMinimal})).
		Apply("insert-table 2 2 header").
		Apply("text Name").
		Apply("next-cell").
		Apply("text Age").
		Apply("next-cell").
		Apply("text Ada").
		Apply("next-cell").
		Apply("text 36")

	md, _, err := s.Markdown()
	if err != nil {
		t.Fatalf("Markdown() failed: %v", err)
	}
	if !strings.Contains(md, "| Name | Age |") || !strings.Contains(md, "| Ada  | 36  |") {
		t.Errorf("Markdown() =\n%s", md)
	}

	csv, err := s.CSV(0)
	if err != nil {
		t.Fatalf("CSV() failed: %v", err)
	}
	if csv != "Name,Age\nAda,36\n" {
		t.Errorf("CSV() = %q", csv)
	}
	if _, err := s.CSV(1); !errors.Is(err, ErrNoTable) {
		t.Errorf("CSV(1) error = %v, want ErrNoTable", err)
	}

	small := New(WithConfig(editor.Config{MaxRows: 10, MaxCols: 10}))
	if err := small.Apply("insert-table 11 2").Err(); !errors.Is(err, ErrRejected) {
		t.Errorf("oversized insert error = %v, want ErrRejected", err)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")
	err := FromReader(strings.NewReader(page)).Focus(0, 0, 0).Apply("zebra on").Save(path, htmltable.RenderOptions{InlineStyles: true})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	again := Open(path)
	if again.Err() != nil {
		t.Fatalf("reopening failed: %v", again.Err())
	}
	if len(again.Warnings()) != 0 {
		t.Errorf("saved table still needs repair: %s", FormatWarnings(again.Warnings()))
	}
}

func TestViewFactory(t *testing.T) {
	recs := map[string]*view.Recorder{}
	s := FromReader(strings.NewReader(page), WithViewFactory(func(id string) (view.Surface, view.GripRenderer) {
		r := view.NewRecorder()
		recs[id] = r
		return r, r
	}))
	s.Focus(0, 0, 0).Apply("add-column-after")
	if s.Err() != nil {
		t.Fatalf("chain failed: %v", s.Err())
	}

	r := recs["sales"]
	if r == nil || r.Columns != 4 || r.Rows != 3 {
		t.Fatalf("recorder = %v", r)
	}

	// Grip clicks select through the editor
	v, _ := s.Views().View("sales")
	if !v.ClickColumnGrip(2) {
		t.Fatal("ClickColumnGrip() failed")
	}
	if got := s.Editor().Selection().Rect; got != (model.Rect{Top: 0, Left: 2, Bottom: 2, Right: 2}) {
		t.Errorf("selection = %v", got)
	}
}

func TestCommands(t *testing.T) {
	usage := Commands()
	if len(usage) != len(commands) {
		t.Errorf("len(Commands()) = %d, want %d", len(usage), len(commands))
	}
	for name := range commands {
		found := false
		for _, u := range usage {
			if u == name || strings.HasPrefix(u, name+" ") {
				found = true
			}
		}
		if !found {
			t.Errorf("no usage line for %s", name)
		}
	}
}

func TestMust(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must() should panic on error")
		}
	}()
	Must(Open("nonexistent.html").Tables())
}

func TestFocus_TableWithoutCells(t *testing.T) {
	s := FromReader(strings.NewReader(`<p>a</p><table data-table-id="e"><tr></tr></table>`)).
		Focus(0, 0, 0).
		Apply("delete-table")
	if s.Err() != nil {
		t.Fatalf("chain failed: %v", s.Err())
	}
	if n := len(s.Document().Tables()); n != 0 {
		t.Errorf("len(Tables()) = %d, want 0", n)
	}

	err := FromReader(strings.NewReader(`<table><tr></tr></table>`)).Focus(0, 1, 0).Err()
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("Focus(0, 1, 0) error = %v", err)
	}
}
