package style

import (
	"strings"

	"github.com/tsawler/tabledit/model"
)

// TableStyle is the composed style of the table element itself
type TableStyle struct {
	Width          model.Length
	Radius         model.Length
	Float          model.Float
	Fixed          bool
	BorderCollapse string
}

// ComposeTable composes the table-level style
func ComposeTable(t model.TableAttrs) TableStyle {
	ts := TableStyle{
		Width:          t.Width,
		Radius:         t.BorderRadius,
		Float:          t.Float,
		Fixed:          t.FixedWidth,
		BorderCollapse: "collapse",
	}
	// Rounded corners only render with separated borders
	if t.BorderRadius.IsSet() && t.BorderRadius.Value > 0 {
		ts.BorderCollapse = "separate"
	}
	return ts
}

// CSS renders the table style as a declaration list in a fixed order
func (ts TableStyle) CSS() string {
	decls := []string{"border-collapse: " + ts.BorderCollapse}
	if ts.Width.IsSet() {
		decls = append(decls, "width: "+ts.Width.String())
	}
	if ts.Fixed {
		decls = append(decls, "table-layout: fixed")
	}
	if ts.Radius.IsSet() {
		decls = append(decls, "border-radius: "+ts.Radius.String())
	}
	if ts.Float != model.FloatNone {
		decls = append(decls, "float: "+ts.Float.String())
	}
	return strings.Join(decls, "; ")
}

// Classes returns the class list rendered on the table element
func Classes(t model.TableAttrs) string {
	classes := []string{
		"table-theme-" + t.Theme.String(),
		t.BorderPreset.String(),
		"table-padding-" + t.CellPadding.String(),
		"table-responsive-" + t.ResponsiveMode.String(),
	}
	if t.Float != model.FloatNone {
		classes = append(classes, "table-float-"+t.Float.String())
	}
	if ZebraEnabled(t) {
		classes = append(classes, "table-zebra")
	}
	return strings.Join(classes, " ")
}

// CellClasses returns the class list rendered on a cell element
func CellClasses(p Placement) string {
	classes := []string{"table-cell"}
	if p.Header {
		classes = append(classes, "table-header-cell")
	}
	if p.RowSpan > 1 || p.ColSpan > 1 {
		classes = append(classes, "table-merged-cell")
	}
	return strings.Join(classes, " ")
}
