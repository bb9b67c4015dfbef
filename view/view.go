package view

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tsawler/tabledit/grid"
	"github.com/tsawler/tabledit/htmltable"
	"github.com/tsawler/tabledit/model"
	"github.com/tsawler/tabledit/selection"
	"github.com/tsawler/tabledit/style"
)

// ErrLayoutMismatch is returned by measurement when the measured layout
// does not match the grid.
var ErrLayoutMismatch = errors.New("view: measured layout does not match grid")

// Attributes are the rendered class and style of one element
type Attributes struct {
	Class string
	Style string
}

// Surface receives rendered attributes for the table element and its cells
type Surface interface {
	SetTableAttributes(attrs Attributes)
	SetCellAttributes(row, col int, attrs Attributes)
}

// GripRenderer draws the selection grips: one per column, one per row and
// a corner control selecting the whole table.
type GripRenderer interface {
	SetColumnCount(n int)
	SetRowCount(n int)
	SetGeometry(g Geometry)
}

// Layout is a measured table layout in pixels
type Layout struct {
	Columns []float64
	Rows    []float64
}

// LayoutHost measures rendered tables. Measurements taken before the
// host's next layout pass are stale, so the view defers them with
// AfterNextFrame.
type LayoutHost interface {
	AfterNextFrame(fn func())
	MeasureLayout(tableID string) (Layout, error)
}

// Geometry holds the grip sizes, one per column and per row
type Geometry struct {
	Columns []model.Length
	Rows    []model.Length
}

// State is the synchronization state of a view
type State int

const (
	StateUninitialized State = iota
	StateSynchronized
)

func (s State) String() string {
	if s == StateSynchronized {
		return "synchronized"
	}
	return "uninitialized"
}

// SelectFunc receives the selection produced by a grip click. It reports
// whether the selection was applied.
type SelectFunc func(tableID string, s selection.Selection) bool

// Option configures a View
type Option func(*View)

// WithSelectHandler sets the grip click handler
func WithSelectHandler(fn SelectFunc) Option {
	return func(v *View) { v.onSelect = fn }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(v *View) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// View keeps the rendered attributes and the grip overlay of one table in
// sync with the document. Every Update is a full re-sync.
type View struct {
	surface  Surface
	grips    GripRenderer
	layout   LayoutHost
	onSelect SelectFunc
	logger   *slog.Logger

	state      State
	generation int // Bumped on every Update; frames carry the value they were scheduled with
	table      *model.Table
	grid       *grid.Grid
	geometry   Geometry
}

// New creates an uninitialized view. layout may be nil, in which case the
// grips are always sized proportionally.
func New(surface Surface, grips GripRenderer, layout LayoutHost, opts ...Option) *View {
	v := &View{
		surface: surface,
		grips:   grips,
		layout:  layout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// State returns the synchronization state
func (v *View) State() State { return v.state }

// Table returns the last table the view was synchronized with
func (v *View) Table() *model.Table { return v.table }

// Geometry returns the current grip geometry
func (v *View) Geometry() Geometry { return v.geometry }

// Update synchronizes the view with t. Attributes and grip counts are
// applied immediately; grip geometry after the host's next layout pass.
func (v *View) Update(t *model.Table) {
	if t == nil {
		return
	}

	g := grid.Build(t)
	v.generation++
	v.table, v.grid = g.Table(), g

	v.render()

	v.grips.SetColumnCount(g.Width())
	v.grips.SetRowCount(g.Height())
	v.state = StateSynchronized

	if v.layout == nil {
		v.applyGeometry(proportional(g.Width(), g.Height()))
		return
	}

	gen := v.generation
	v.layout.AfterNextFrame(func() { v.measure(gen) })
}

// render pushes composed attributes for the table and each cell
func (v *View) render() {
	t := v.table
	if v.surface == nil {
		return
	}

	v.surface.SetTableAttributes(Attributes{
		Class: style.Classes(t.Attrs),
		Style: style.ComposeTable(t.Attrs).CSS(),
	})

	for _, ref := range v.grid.Cells() {
		p := htmltable.Placement(v.grid, ref)
		rs := style.Compose(t.Attrs, t.Rows[ref.Row].Attrs, ref.Cell.Attrs, p)
		v.surface.SetCellAttributes(ref.Row, ref.Col, Attributes{
			Class: style.CellClasses(p),
			Style: rs.CSS(),
		})
	}
}

// measure runs after a layout pass. Frames scheduled before the latest
// Update are ignored.
func (v *View) measure(gen int) {
	if gen != v.generation {
		v.logger.Debug("stale frame ignored", "frame", gen, "current", v.generation)
		return
	}

	w, h := v.grid.Width(), v.grid.Height()
	m, err := v.layout.MeasureLayout(v.table.ID)
	if err == nil && (len(m.Columns) != w || len(m.Rows) != h) {
		err = fmt.Errorf("%w: measured %dx%d, grid %dx%d", ErrLayoutMismatch, len(m.Columns), len(m.Rows), w, h)
	}
	if err != nil {
		v.logger.Debug("measurement failed; using proportional grips", "table", v.table.ID, "error", err)
		v.applyGeometry(proportional(w, h))
		return
	}

	geo := Geometry{Columns: make([]model.Length, w), Rows: make([]model.Length, h)}
	for i, px := range m.Columns {
		geo.Columns[i] = model.Px(px)
	}
	for i, px := range m.Rows {
		geo.Rows[i] = model.Px(px)
	}
	v.applyGeometry(geo)
}

func (v *View) applyGeometry(g Geometry) {
	v.geometry = g
	v.grips.SetGeometry(g)
}

// proportional sizes every column 100/width % and every row 100/height %
func proportional(width, height int) Geometry {
	g := Geometry{Columns: make([]model.Length, width), Rows: make([]model.Length, height)}
	for i := range g.Columns {
		g.Columns[i] = model.Percent(100 / float64(width))
	}
	for i := range g.Rows {
		g.Rows[i] = model.Percent(100 / float64(height))
	}
	return g
}

// ============================================================================
// Grip clicks
// ============================================================================

// ClickColumnGrip selects column i
func (v *View) ClickColumnGrip(i int) bool {
	if v.state != StateSynchronized || i < 0 || i >= v.grid.Width() {
		return false
	}
	return v.selectGrip(selection.SelectColumn(v.grid, i))
}

// ClickRowGrip selects row i
func (v *View) ClickRowGrip(i int) bool {
	if v.state != StateSynchronized || i < 0 || i >= v.grid.Height() {
		return false
	}
	return v.selectGrip(selection.SelectRow(v.grid, i))
}

// ClickCorner selects the whole table
func (v *View) ClickCorner() bool {
	if v.state != StateSynchronized || v.grid.Empty() {
		return false
	}
	return v.selectGrip(selection.SelectTable(v.grid))
}

func (v *View) selectGrip(s selection.Selection) bool {
	if v.onSelect == nil {
		return false
	}
	return v.onSelect(v.table.ID, s)
}

// reset returns the view to its initial state. Pending frames become stale.
func (v *View) reset() {
	v.generation++
	v.state = StateUninitialized
	v.table, v.grid = nil, nil
	v.geometry = Geometry{}
	v.grips.SetColumnCount(0)
	v.grips.SetRowCount(0)
}
