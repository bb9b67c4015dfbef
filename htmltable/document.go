package htmltable

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/tabledit/grid"
	"github.com/tsawler/tabledit/model"
)

// Block is one top-level node of a stored document: either a table or an
// opaque fragment of other markup.
type Block struct {
	Table *model.Table
	Raw   string
}

// IsTable reports whether the block holds a table
func (b Block) IsTable() bool { return b.Table != nil }

// ParseDocument splits a stored HTML document into blocks. Top-level
// <table> elements become table blocks; every other top-level node is kept
// verbatim as a raw block. Whitespace between blocks is dropped.
func ParseDocument(r io.Reader) ([]Block, []grid.Warning, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing HTML: %w", err)
	}

	body := findElement(doc, "body")
	if body == nil {
		return nil, nil, nil
	}

	var blocks []Block
	var warnings []grid.Warning

	for c := body.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.ElementNode && c.DataAtom == atom.Table:
			table, w := ParseTableNode(c)
			blocks = append(blocks, Block{Table: table})
			warnings = append(warnings, w...)
		case c.Type == html.TextNode && strings.TrimSpace(c.Data) == "":
			continue
		default:
			var buf bytes.Buffer
			if err := html.Render(&buf, c); err != nil {
				return nil, nil, fmt.Errorf("rendering block: %w", err)
			}
			blocks = append(blocks, Block{Raw: buf.String()})
		}
	}

	return blocks, warnings, nil
}

// OpenFile parses the stored document at path
func OpenFile(path string) ([]Block, []grid.Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return ParseDocument(f)
}

// ParseDocumentString is ParseDocument over a string
func ParseDocumentString(s string) ([]Block, []grid.Warning, error) {
	return ParseDocument(strings.NewReader(s))
}

// RenderDocument writes blocks back out, one per line
func RenderDocument(w io.Writer, blocks []Block, opts RenderOptions) error {
	for i, b := range blocks {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if b.IsTable() {
			if err := RenderTable(w, b.Table, opts); err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}
			continue
		}
		if _, err := io.WriteString(w, b.Raw); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}
	return nil
}
