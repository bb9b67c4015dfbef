package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/tabledit/document"
	"github.com/tsawler/tabledit/editor"
	"github.com/tsawler/tabledit/htmltable"
	"github.com/tsawler/tabledit/model"
	"github.com/tsawler/tabledit/selection"
)

// mockLayout queues frames until flush is called
type mockLayout struct {
	frames   []func()
	layout   Layout
	err      error
	measured int
}

func (m *mockLayout) AfterNextFrame(fn func()) { m.frames = append(m.frames, fn) }

func (m *mockLayout) MeasureLayout(string) (Layout, error) {
	m.measured++
	return m.layout, m.err
}

func (m *mockLayout) flush() {
	frames := m.frames
	m.frames = nil
	for _, fn := range frames {
		fn()
	}
}

func percents(n int, v float64) []model.Length {
	out := make([]model.Length, n)
	for i := range out {
		out[i] = model.Percent(v)
	}
	return out
}

func TestView_InitialSync(t *testing.T) {
	rec := NewRecorder()
	v := New(rec, rec, nil)
	assert.Equal(t, StateUninitialized, v.State())
	assert.False(t, v.ClickCorner(), "grips are inert before the first sync")

	table := model.NewTable(2, 4)
	table.Rows[0].Cells[0].IsHeader = true
	v.Update(table)

	assert.Equal(t, StateSynchronized, v.State())
	assert.Equal(t, 4, rec.Columns)
	assert.Equal(t, 2, rec.Rows)
	assert.Len(t, rec.Cells, 8)
	assert.Equal(t, percents(4, 25), rec.Geometry.Columns)
	assert.Equal(t, percents(2, 50), rec.Geometry.Rows)

	assert.Contains(t, rec.Table.Class, "table-theme-light")
	assert.Contains(t, rec.Table.Class, "table-borders-thin")
	assert.Equal(t, "table-cell table-header-cell", rec.Cells[model.Coord{}].Class)
	assert.Contains(t, rec.Cells[model.Coord{Row: 1, Col: 3}].Style, "border-top: 1px solid #DDDDDD")
}

func TestView_ResyncTracksGridSize(t *testing.T) {
	rec := NewRecorder()
	v := New(rec, rec, nil)
	v.Update(model.NewTable(3, 3))

	smaller := model.NewTable(2, 3)
	smaller.Rows[0].Cells = []model.Cell{{Paragraphs: []string{""}, ColSpan: 3, RowSpan: 1}}
	v.Update(smaller)

	assert.Equal(t, 3, rec.Columns)
	assert.Equal(t, 2, rec.Rows)
	assert.Len(t, rec.Geometry.Rows, 2)
	assert.Equal(t, "table-cell table-merged-cell", rec.Cells[model.Coord{}].Class)
	assert.Equal(t, 2, rec.Updates)
}

func TestView_IdempotentUpdate(t *testing.T) {
	rec := NewRecorder()
	v := New(rec, rec, nil)
	table := model.NewTable(2, 2)
	table.Attrs.Theme = model.ThemeData
	table.Rows[1].Cells[1].Attrs.Background = model.MustColor("#FF0000")

	v.Update(table)
	first := *rec
	first.Cells = make(map[model.Coord]Attributes)
	for k, a := range rec.Cells {
		first.Cells[k] = a
	}

	v.Update(table)
	assert.Equal(t, first.Table, rec.Table)
	assert.Equal(t, first.Cells, rec.Cells)
	assert.Equal(t, first.Geometry, rec.Geometry)
}

// ============================================================================
// Deferred measurement
// ============================================================================

func TestView_MeasuresAfterFrame(t *testing.T) {
	rec := NewRecorder()
	layout := &mockLayout{layout: Layout{Columns: []float64{120, 80}, Rows: []float64{32, 40, 32}}}
	v := New(rec, rec, layout)

	v.Update(model.NewTable(3, 2))
	assert.Equal(t, 2, rec.Columns, "counts are applied before the frame")
	assert.Empty(t, rec.Geometry.Columns, "geometry waits for the frame")
	assert.Zero(t, layout.measured)

	layout.flush()
	assert.Equal(t, 1, layout.measured)
	assert.Equal(t, []model.Length{model.Px(120), model.Px(80)}, v.Geometry().Columns)
	assert.Equal(t, "2x3 cols[120px 80px] rows[32px 40px 32px]", rec.String())
}

func TestView_StaleFrameIgnored(t *testing.T) {
	rec := NewRecorder()
	layout := &mockLayout{layout: Layout{Columns: []float64{10, 20, 30}, Rows: []float64{5}}}
	v := New(rec, rec, layout)

	v.Update(model.NewTable(1, 2))
	v.Update(model.NewTable(1, 3))
	require.Len(t, layout.frames, 2)

	layout.flush()
	assert.Equal(t, 1, layout.measured, "only the latest frame measures")
	assert.Equal(t, []model.Length{model.Px(10), model.Px(20), model.Px(30)}, rec.Geometry.Columns)
}

func TestView_FallbackGeometry(t *testing.T) {
	tests := []struct {
		name   string
		layout *mockLayout
	}{
		{"measurement error", &mockLayout{err: errors.New("not attached")}},
		{"column mismatch", &mockLayout{layout: Layout{Columns: []float64{1}, Rows: []float64{1, 1}}}},
		{"row mismatch", &mockLayout{layout: Layout{Columns: []float64{1, 1, 1, 1}, Rows: []float64{1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecorder()
			v := New(rec, rec, tt.layout)
			v.Update(model.NewTable(2, 4))
			tt.layout.flush()

			assert.Equal(t, percents(4, 25), rec.Geometry.Columns)
			assert.Equal(t, percents(2, 50), rec.Geometry.Rows)
		})
	}
}

// ============================================================================
// Grips
// ============================================================================

func TestView_GripClicks(t *testing.T) {
	var got []selection.Selection
	handler := func(id string, s selection.Selection) bool {
		assert.Equal(t, "grid", id)
		got = append(got, s)
		return true
	}

	rec := NewRecorder()
	v := New(rec, rec, nil, WithSelectHandler(handler))
	table := model.NewTable(3, 4)
	table.ID = "grid"
	v.Update(table)

	require.True(t, v.ClickColumnGrip(2))
	require.True(t, v.ClickRowGrip(1))
	require.True(t, v.ClickCorner())
	assert.False(t, v.ClickColumnGrip(4))
	assert.False(t, v.ClickRowGrip(-1))

	require.Len(t, got, 3)
	assert.Equal(t, selection.TypeColumn, got[0].Type)
	assert.Equal(t, model.Rect{Top: 0, Left: 2, Bottom: 2, Right: 2}, got[0].Rect)
	assert.Equal(t, selection.TypeRow, got[1].Type)
	assert.Equal(t, model.Rect{Top: 1, Left: 0, Bottom: 1, Right: 3}, got[1].Rect)
	assert.Equal(t, selection.TypeTable, got[2].Type)
}

func TestView_ClickWithoutHandler(t *testing.T) {
	rec := NewRecorder()
	v := New(rec, rec, nil)
	v.Update(model.NewTable(1, 1))
	assert.False(t, v.ClickCorner())
}

// ============================================================================
// Manager
// ============================================================================

func newManager(layout LayoutHost, opts ...Option) (*Manager, map[string]*Recorder) {
	recs := make(map[string]*Recorder)
	m := NewManager(func(id string) (Surface, GripRenderer) {
		r := NewRecorder()
		recs[id] = r
		return r, r
	}, layout, opts...)
	return m, recs
}

func TestManager_FollowsEditor(t *testing.T) {
	doc := document.New(htmltable.Block{Raw: "<p>x</p>"})
	ed := editor.New(doc)
	m, recs := newManager(nil, WithSelectHandler(ed.SelectInTable))
	ed.AddObserver(m)

	ed.SetCursor(0)
	require.True(t, ed.InsertTable(2, 3, true))
	table := doc.Tables()[0]
	require.Contains(t, recs, table.ID)
	assert.Equal(t, 3, recs[table.ID].Columns)

	require.True(t, ed.AddColumnAfter())
	assert.Equal(t, 4, recs[table.ID].Columns)
	assert.Len(t, recs[table.ID].Geometry.Columns, 4)

	// A grip click selects through the editor
	v, ok := m.View(table.ID)
	require.True(t, ok)
	require.True(t, v.ClickRowGrip(1))
	assert.Equal(t, selection.TypeRow, ed.CurrentSelectionType())

	require.True(t, ed.DeleteTable())
	_, ok = m.View(table.ID)
	assert.False(t, ok)
	assert.Zero(t, recs[table.ID].Columns)
}

func TestManager_RemovalMakesFramesStale(t *testing.T) {
	layout := &mockLayout{layout: Layout{Columns: []float64{50}, Rows: []float64{20}}}
	m, recs := newManager(layout)

	table := model.NewTable(1, 1)
	m.TableChanged(table)
	m.TableRemoved(table.ID)
	layout.flush()

	assert.Zero(t, layout.measured)
	assert.Empty(t, recs[table.ID].Geometry.Columns)
}

func TestManager_Sync(t *testing.T) {
	m, _ := newManager(nil)
	a, b, c := model.NewTable(1, 1), model.NewTable(1, 1), model.NewTable(1, 1)

	m.Sync([]*model.Table{a, b})
	assert.ElementsMatch(t, []string{a.ID, b.ID}, m.IDs())

	m.Sync([]*model.Table{b, c})
	assert.ElementsMatch(t, []string{b.ID, c.ID}, m.IDs())
	m.TableRemoved("unknown")
	m.TableChanged(nil)
	assert.Len(t, m.IDs(), 2)
}
