package htmltable

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/tabledit/grid"
	"github.com/tsawler/tabledit/model"
)

// Span limits follow the HTML table model
const (
	maxColSpan = 1000
	maxRowSpan = 65534
)

// ParseTable parses the first <table> element in r. Unknown or missing
// attributes take engine defaults and malformed rows are repaired; the
// repairs are returned as warnings.
func ParseTable(r io.Reader) (*model.Table, []grid.Warning, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing HTML: %w", err)
	}

	node := findElement(doc, "table")
	if node == nil {
		return nil, nil, ErrNoTable
	}

	table, warnings := ParseTableNode(node)
	return table, warnings, nil
}

// ParseTableString is ParseTable over a string
func ParseTableString(s string) (*model.Table, []grid.Warning, error) {
	return ParseTable(strings.NewReader(s))
}

// ParseTableNode converts a parsed <table> element into a table
func ParseTableNode(tableNode *html.Node) (*model.Table, []grid.Warning) {
	table := &model.Table{
		ID:    getAttr(tableNode, "data-table-id"),
		Attrs: parseTableAttrs(tableNode),
	}
	if table.ID == "" {
		table.ID = model.NewID()
	}

	// Find caption, colgroup, thead, tbody, tfoot, or direct tr children
	for c := tableNode.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "caption":
			table.Attrs.Caption = getTextContent(c)
		case "colgroup":
			table.Columns = append(table.Columns, parseColumns(c)...)
		case "col":
			table.Columns = append(table.Columns, parseColumn(c))
		case "thead":
			parseTableRows(c, table, true)
		case "tbody", "tfoot":
			parseTableRows(c, table, false)
		case "tr":
			table.Rows = append(table.Rows, parseTableRow(c, false))
		}
	}

	g := grid.Build(table)
	return g.Table(), g.Warnings()
}

func parseTableAttrs(n *html.Node) model.TableAttrs {
	var a model.TableAttrs
	a.Theme, _ = model.ParseTheme(getAttr(n, "theme"))
	a.BorderPreset, _ = model.ParseBorderPreset(getAttr(n, "border-preset"))
	a.BorderColor, _ = model.ParseColor(getAttr(n, "border-color"))
	a.BorderRadius, _ = model.ParseLength(getAttr(n, "border-radius"))
	a.CellPadding, _ = model.ParseCellPadding(getAttr(n, "cell-padding"))
	a.Width, _ = model.ParseLength(getAttr(n, "width"))
	a.FixedWidth = parseBool(getAttr(n, "fixed-width"))
	a.ResponsiveMode, _ = model.ParseResponsiveMode(getAttr(n, "responsive-mode"))
	a.Float, _ = model.ParseFloat(getAttr(n, "float"))
	a.AlternatingRows = parseBool(getAttr(n, "alternating-rows"))
	return a
}

func parseColumns(colgroup *html.Node) []model.Column {
	var cols []model.Column
	for c := colgroup.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "col" {
			col := parseColumn(c)
			// <col span="n"> declares n columns
			n, err := strconv.Atoi(getAttr(c, "span"))
			if err != nil || n < 1 {
				n = 1
			}
			for i := 0; i < min(n, maxColSpan); i++ {
				cols = append(cols, col)
			}
		}
	}
	return cols
}

func parseColumn(n *html.Node) model.Column {
	w, _ := model.ParseLength(getAttr(n, "width"))
	return model.Column{Width: w}
}

// parseTableRows parses rows within thead, tbody or tfoot.
func parseTableRows(section *html.Node, table *model.Table, isHeader bool) {
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "tr" {
			table.Rows = append(table.Rows, parseTableRow(c, isHeader))
		}
	}
}

// parseTableRow parses a single table row.
func parseTableRow(tr *html.Node, isHeader bool) model.Row {
	row := model.Row{}
	row.Attrs.BorderStyle, _ = model.ParseBorderStyle(getAttr(tr, "border-style"))
	row.Attrs.BorderColor, _ = model.ParseColor(getAttr(tr, "border-color"))
	row.Attrs.Height, _ = model.ParseLength(getAttr(tr, "row-height"))

	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			row.Cells = append(row.Cells, parseTableCell(c, isHeader))
		}
	}
	return row
}

func parseTableCell(n *html.Node, isHeader bool) model.Cell {
	cell := model.Cell{
		IsHeader:   isHeader || n.Data == "th",
		ColSpan:    parseSpan(getAttr(n, "colspan"), maxColSpan),
		RowSpan:    parseSpan(getAttr(n, "rowspan"), maxRowSpan),
		Paragraphs: parseParagraphs(n),
	}
	cell.Attrs.Background, _ = model.ParseColor(getAttr(n, "background-color"))
	cell.Attrs.TextColor, _ = model.ParseColor(getAttr(n, "text-color"))
	for _, side := range model.Sides {
		cell.Attrs.Borders[side], _ = model.ParseBorderSide(getAttr(n, "border-"+side.String()))
	}
	return cell
}

// parseSpan reads a colspan/rowspan value, defaulting to 1
func parseSpan(v string, limit int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return min(n, limit)
}

// parseParagraphs splits cell content into paragraphs: one per <p> child,
// or the whole text content when the cell has no paragraphs.
func parseParagraphs(cell *html.Node) []string {
	var paras []string
	for c := cell.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "p" {
			paras = append(paras, getTextContent(c))
		}
	}
	if len(paras) == 0 {
		paras = []string{strings.TrimSpace(getTextContent(cell))}
	}
	return paras
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

// getAttr returns the value of an attribute, or "" when absent
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// getTextContent extracts all text content from a node and its descendants.
// Whitespace is kept as written.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return result.String()
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		// Skip script/style content
		switch n.Data {
		case "script", "style", "template":
			return
		case "br":
			result.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
}
