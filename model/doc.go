// Package model provides the in-memory representation of tables embedded
// in a rich document.
//
// A [Table] owns an ordered list of [Row] values and each row owns its
// [Cell] values. Cells may span several rows and columns; the tiling of
// spans onto a rectangular grid is computed by the grid package.
//
// # Attributes
//
// Every attribute that takes part in style composition has an explicit
// unset state, so that an absent value never overrides a lower layer:
//
//   - [Color] - RGB color; the zero value is unset
//   - [Length] - CSS length (px, %, em, rem, pt, auto); the zero value is unset
//   - [BorderStyle] - CSS border style; [BorderStyleUnset] is unset
//
// Table-level enumerations ([Theme], [BorderPreset], [CellPadding],
// [ResponsiveMode], [Float]) use their zero value as the engine default.
// Their Parse functions fold case and accept the class-prefixed form, so
// "table-borders-thin" and "thin" name the same preset.
//
// # Positions
//
// Tables live inside a linear document. [Table.NodeSize], [Row.NodeSize]
// and [Cell.NodeSize] report how many document positions each node
// occupies: one token to open, one to close, plus the content.
//
// # Export
//
// [Table.ToMarkdown], [Table.ToCSV] and [Table.GetText] render plain
// representations of the table content.
package model
