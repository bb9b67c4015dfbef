// Package grid tiles a table's rows and spanning cells onto a rectangular
// slot matrix.
//
// # Algorithm
//
// Rows are walked in document order and cells left to right. Each cell is
// placed at the first column not already claimed by a rowspan from an
// earlier row, and every slot of its colspan x rowspan footprint is claimed
// for it. [Grid.CellAt] then returns the same [CellRef] for every slot a
// cell covers.
//
// # Repair
//
// Persisted content may be inconsistent. [Build] never rejects a table:
//
//   - colspans running into claimed slots or past the edge are truncated
//   - rowspans past the last row are truncated
//   - cells starting past the table edge are dropped
//   - rows with unclaimed slots are padded with empty 1x1 cells
//
// Each repair produces a [Warning], and [Grid.Table] holds the repaired
// table. For valid input [Grid.Repaired] is false and the repaired table
// equals the source.
//
// # Invariant
//
// [Grid.Check] verifies that the cells tile the grid exactly: no gaps, no
// overlaps, no span leaving the grid.
package grid
