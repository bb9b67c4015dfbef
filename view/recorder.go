package view

import (
	"fmt"
	"strings"

	"github.com/tsawler/tabledit/model"
)

// Recorder is an in-memory Surface and GripRenderer. It keeps the latest
// value of everything pushed to it, for headless use and tests.
type Recorder struct {
	Table    Attributes
	Cells    map[model.Coord]Attributes
	Columns  int
	Rows     int
	Geometry Geometry
	Updates  int // Number of SetTableAttributes calls
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{Cells: make(map[model.Coord]Attributes)}
}

// SetTableAttributes implements Surface
func (r *Recorder) SetTableAttributes(attrs Attributes) {
	r.Table = attrs
	r.Updates++
}

// SetCellAttributes implements Surface
func (r *Recorder) SetCellAttributes(row, col int, attrs Attributes) {
	r.Cells[model.Coord{Row: row, Col: col}] = attrs
}

// SetColumnCount implements GripRenderer
func (r *Recorder) SetColumnCount(n int) { r.Columns = n }

// SetRowCount implements GripRenderer
func (r *Recorder) SetRowCount(n int) { r.Rows = n }

// SetGeometry implements GripRenderer
func (r *Recorder) SetGeometry(g Geometry) { r.Geometry = g }

// String summarizes the grip overlay, e.g. "3x2 cols[50% 50%] rows[...]"
func (r *Recorder) String() string {
	return fmt.Sprintf("%dx%d cols[%s] rows[%s]", r.Columns, r.Rows, joinLengths(r.Geometry.Columns), joinLengths(r.Geometry.Rows))
}

func joinLengths(ls []model.Length) string {
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = l.String()
	}
	return strings.Join(parts, " ")
}
