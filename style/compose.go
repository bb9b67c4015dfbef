package style

import (
	"strings"

	"github.com/tsawler/tabledit/model"
)

// Placement locates a cell in its table so the composer can tell outer
// edges, header cells and striped rows apart.
type Placement struct {
	Row, Col         int
	RowSpan, ColSpan int
	Rows, Cols       int // Grid height and width
	Header           bool
}

// Outer reports whether the given side of the cell lies on the table edge
func (p Placement) Outer(side model.Side) bool {
	switch side {
	case model.SideTop:
		return p.Row == 0
	case model.SideLeft:
		return p.Col == 0
	case model.SideBottom:
		return p.Row+max(p.RowSpan, 1) >= p.Rows
	case model.SideRight:
		return p.Col+max(p.ColSpan, 1) >= p.Cols
	}
	return false
}

// Border is one fully resolved side of a cell border
type Border struct {
	Width model.Length
	Style model.BorderStyle
	Color model.Color
}

// Visible reports whether the border is drawn
func (b Border) Visible() bool {
	return b.Style.IsSet() && b.Style != model.BorderNone
}

// CSS renders the border shorthand, e.g. "1px solid #DDDDDD"
func (b Border) CSS() string {
	if !b.Visible() {
		return "none"
	}
	parts := make([]string, 0, 3)
	if b.Width.IsSet() {
		parts = append(parts, b.Width.String())
	}
	parts = append(parts, b.Style.String())
	if b.Color.IsSet() {
		parts = append(parts, b.Color.Hex())
	}
	return strings.Join(parts, " ")
}

// RenderStyle is the final per-cell style
type RenderStyle struct {
	Borders    [4]Border // Indexed by model.Side
	Background model.Color
	Color      model.Color
	Padding    [2]model.Length // Vertical, horizontal
	Height     model.Length
}

// CSS renders the style as a declaration list in a fixed order
func (s RenderStyle) CSS() string {
	decls := make([]string, 0, 8)
	for _, side := range model.Sides {
		decls = append(decls, "border-"+side.String()+": "+s.Borders[side].CSS())
	}
	if s.Background.IsSet() {
		decls = append(decls, "background-color: "+s.Background.Hex())
	}
	if s.Color.IsSet() {
		decls = append(decls, "color: "+s.Color.Hex())
	}
	if s.Padding[0].IsSet() {
		decls = append(decls, "padding: "+s.Padding[0].String()+" "+s.Padding[1].String())
	}
	if s.Height.IsSet() {
		decls = append(decls, "height: "+s.Height.String())
	}
	return strings.Join(decls, "; ")
}

// Compose layers theme, border preset, table, row and cell attributes into
// a final render style. Later stages override earlier ones only for the
// properties they explicitly set. Compose is pure.
func Compose(t model.TableAttrs, r model.RowAttrs, c model.CellAttrs, p Placement) RenderStyle {
	var s RenderStyle
	applyTheme(&s, t, p)
	applyPreset(&s, t.BorderPreset, p)
	applyTableAttrs(&s, t)
	applyRowAttrs(&s, r)
	applyCellAttrs(&s, c)
	return s
}

// Stage 1: theme defaults
func applyTheme(s *RenderStyle, t model.TableAttrs, p Placement) {
	def := ThemeDefaults(t.Theme)
	for _, side := range model.Sides {
		s.Borders[side] = Border{
			Width: model.Px(1),
			Style: model.BorderSolid,
			Color: def.BorderColor,
		}
	}

	switch {
	case p.Header:
		s.Background = def.HeaderBackground
		s.Color = def.HeaderText
	case ZebraEnabled(t) && p.Row%2 == 1:
		s.Background = zebraBackground(t)
	}

	s.Padding = PaddingFor(t.CellPadding)
}

// Stage 2: border preset
func applyPreset(s *RenderStyle, preset model.BorderPreset, p Placement) {
	for _, side := range model.Sides {
		b := &s.Borders[side]
		switch preset {
		case model.BorderThick:
			b.Width, b.Style = model.Px(2), model.BorderSolid
		case model.BorderDashed:
			b.Width, b.Style = model.Px(1), model.BorderDashedLine
		case model.BorderOuterOnly:
			b.Width, b.Style = model.Px(1), model.BorderSolid
			if !p.Outer(side) {
				b.Style = model.BorderNone
			}
		case model.BorderHeaderOnly:
			b.Width, b.Style = model.Px(1), model.BorderSolid
			if !p.Header {
				b.Style = model.BorderNone
			}
		default:
			b.Width, b.Style = model.Px(1), model.BorderSolid
		}
	}
}

// Stage 3: explicit table-level border color
func applyTableAttrs(s *RenderStyle, t model.TableAttrs) {
	if !t.BorderColor.IsSet() {
		return
	}
	for _, side := range model.Sides {
		s.Borders[side].Color = t.BorderColor
	}
}

// Stage 4: row overrides
func applyRowAttrs(s *RenderStyle, r model.RowAttrs) {
	for _, side := range model.Sides {
		if r.BorderStyle.IsSet() {
			s.Borders[side].Style = r.BorderStyle
		}
		if r.BorderColor.IsSet() {
			s.Borders[side].Color = r.BorderColor
		}
	}
	if r.Height.IsSet() {
		s.Height = r.Height
	}
}

// Stage 5: per-cell overrides
func applyCellAttrs(s *RenderStyle, c model.CellAttrs) {
	if c.Background.IsSet() {
		s.Background = c.Background
	}
	if c.TextColor.IsSet() {
		s.Color = c.TextColor
	}
	for _, side := range model.Sides {
		o := c.Borders[side]
		b := &s.Borders[side]
		if o.Color.IsSet() {
			b.Color = o.Color
		}
		if o.Width.IsSet() {
			b.Width = o.Width
		}
		if o.Style.IsSet() {
			b.Style = o.Style
		}
	}
}
