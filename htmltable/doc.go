// Package htmltable reads and writes the persisted markup form of tables.
//
// A table is stored as a <table> element whose engine attributes are plain
// string attributes:
//
//	<table data-table-id="..." theme="data" border-preset="table-borders-thin"
//	       border-color="#DDDDDD" cell-padding="normal" float="none">
//	  <caption>Quarterly totals</caption>
//	  <colgroup><col width="120px"><col></colgroup>
//	  <tr row-height="32px">
//	    <th colspan="2" background-color="#F5F5F5"><p>Total</p></th>
//	  </tr>
//	</table>
//
// Parsing is lenient. Missing or unknown attribute values take the engine
// defaults, <thead>, <tbody> and <tfoot> are flattened, and rows whose spans
// do not tile the declared width are repaired by the grid. Each repair is
// reported as a grid.Warning instead of an error.
//
// Whole documents are split into Blocks: tables, plus opaque raw markup for
// every other top-level node, so a stored document can be edited and written
// back without touching its non-table content.
package htmltable
