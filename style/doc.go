// Package style composes the final render style of table cells.
//
// Composition is a pure function of the table, row and cell attributes plus
// the cell's placement in the grid. Stages are applied in a fixed order and
// each stage only touches the properties it explicitly sets:
//
//  1. Theme defaults - border color, header colors, zebra stripes, padding
//  2. Border preset - width, style and visibility per side
//  3. Table border color
//  4. Row border style/color and height
//  5. Cell background, text color and per-side borders
//
// An unset attribute at any stage leaves the lower-priority value alone,
// so composing with an all-unset override layer is a no-op.
//
//	rs := style.Compose(table.Attrs, row.Attrs, cell.Attrs, placement)
//	fmt.Println(rs.CSS())
package style
