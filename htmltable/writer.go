package htmltable

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/tabledit/grid"
	"github.com/tsawler/tabledit/model"
	"github.com/tsawler/tabledit/style"
)

// ErrNoTable is returned when markup contains no <table> element
var ErrNoTable = errors.New("htmltable: no table element")

// RenderOptions controls markup output
type RenderOptions struct {
	// InlineStyles adds composed class and style attributes to the table
	// and every cell, for rendering outside the editor.
	InlineStyles bool
}

// RenderTable writes the table as markup
func RenderTable(w io.Writer, t *model.Table, opts RenderOptions) error {
	if err := html.Render(w, TableNode(t, opts)); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	return nil
}

// TableHTML renders the table to a string
func TableHTML(t *model.Table, opts RenderOptions) string {
	var buf bytes.Buffer
	// Rendering into a bytes.Buffer cannot fail
	_ = RenderTable(&buf, t, opts)
	return buf.String()
}

// TableNode builds the markup tree of a table
func TableNode(t *model.Table, opts RenderOptions) *html.Node {
	a := t.Attrs
	attrs := []html.Attribute{
		{Key: "data-table-id", Val: t.ID},
		{Key: "theme", Val: a.Theme.String()},
		{Key: "border-preset", Val: a.BorderPreset.String()},
		{Key: "cell-padding", Val: a.CellPadding.String()},
		{Key: "responsive-mode", Val: a.ResponsiveMode.String()},
		{Key: "float", Val: a.Float.String()},
	}
	attrs = appendIf(attrs, "border-color", a.BorderColor.Hex())
	attrs = appendIf(attrs, "border-radius", a.BorderRadius.String())
	attrs = appendIf(attrs, "width", a.Width.String())
	if a.FixedWidth {
		attrs = append(attrs, html.Attribute{Key: "fixed-width", Val: "true"})
	}
	if a.AlternatingRows {
		attrs = append(attrs, html.Attribute{Key: "alternating-rows", Val: "true"})
	}

	var g *grid.Grid
	if opts.InlineStyles {
		g = grid.Build(t)
		attrs = append(attrs,
			html.Attribute{Key: "class", Val: style.Classes(a)},
			html.Attribute{Key: "style", Val: style.ComposeTable(a).CSS()},
		)
	}

	table := element(atom.Table, attrs...)

	if a.Caption != "" {
		caption := element(atom.Caption)
		caption.AppendChild(text(a.Caption))
		table.AppendChild(caption)
	}

	if len(t.Columns) > 0 {
		colgroup := element(atom.Colgroup)
		for _, col := range t.Columns {
			colgroup.AppendChild(element(atom.Col, attrsIf("width", col.Width.String())...))
		}
		table.AppendChild(colgroup)
	}

	tbody := element(atom.Tbody)
	table.AppendChild(tbody)

	for r, row := range t.Rows {
		var rowAttrs []html.Attribute
		rowAttrs = appendIf(rowAttrs, "border-style", row.Attrs.BorderStyle.String())
		rowAttrs = appendIf(rowAttrs, "border-color", row.Attrs.BorderColor.Hex())
		rowAttrs = appendIf(rowAttrs, "row-height", row.Attrs.Height.String())
		tr := element(atom.Tr, rowAttrs...)

		for i, cell := range row.Cells {
			td := cellNode(cell)
			if g != nil {
				if ref := refAt(g, r, i); ref != nil {
					p := Placement(g, ref)
					rs := style.Compose(a, row.Attrs, cell.Attrs, p)
					td.Attr = append(td.Attr,
						html.Attribute{Key: "class", Val: style.CellClasses(p)},
						html.Attribute{Key: "style", Val: rs.CSS()},
					)
				}
			}
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}

	return table
}

// Placement returns the style placement of a grid cell
func Placement(g *grid.Grid, ref *grid.CellRef) style.Placement {
	return style.Placement{
		Row:     ref.Row,
		Col:     ref.Col,
		RowSpan: ref.RowSpan,
		ColSpan: ref.ColSpan,
		Rows:    g.Height(),
		Cols:    g.Width(),
		Header:  ref.Cell.IsHeader,
	}
}

// refAt finds the grid cell for the i-th cell of a row
func refAt(g *grid.Grid, row, index int) *grid.CellRef {
	for _, ref := range g.RowCells(row) {
		if ref.Index == index {
			return ref
		}
	}
	return nil
}

func cellNode(cell model.Cell) *html.Node {
	tag := atom.Td
	if cell.IsHeader {
		tag = atom.Th
	}

	cs, rs := cell.Spans()
	var attrs []html.Attribute
	if cs > 1 {
		attrs = append(attrs, html.Attribute{Key: "colspan", Val: strconv.Itoa(cs)})
	}
	if rs > 1 {
		attrs = append(attrs, html.Attribute{Key: "rowspan", Val: strconv.Itoa(rs)})
	}
	attrs = appendIf(attrs, "background-color", cell.Attrs.Background.Hex())
	attrs = appendIf(attrs, "text-color", cell.Attrs.TextColor.Hex())
	for _, side := range model.Sides {
		attrs = appendIf(attrs, "border-"+side.String(), cell.Attrs.Borders[side].String())
	}

	td := element(tag, attrs...)
	paras := cell.Paragraphs
	if len(paras) == 0 {
		paras = []string{""}
	}
	for _, p := range paras {
		pn := element(atom.P)
		if p != "" {
			pn.AppendChild(text(p))
		}
		td.AppendChild(pn)
	}
	return td
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func appendIf(attrs []html.Attribute, key, val string) []html.Attribute {
	if val == "" {
		return attrs
	}
	return append(attrs, html.Attribute{Key: key, Val: val})
}

func attrsIf(key, val string) []html.Attribute {
	return appendIf(nil, key, val)
}
