package model

import (
	"strings"

	"golang.org/x/text/cases"
)

// Enumerated table attributes. The zero value of each type is the engine
// default, so an unknown persisted value degrades to the default.

// Theme selects the table's color scheme
type Theme int

const (
	ThemeLight Theme = iota
	ThemeData
	ThemeMinimal
	ThemeCustom
)

var themeNames = []string{"light", "data", "minimal", "custom"}

func (t Theme) String() string { return enumName(int(t), themeNames) }

// ParseTheme parses a theme name, accepting "data" and "table-theme-data"
func ParseTheme(s string) (Theme, bool) {
	v, ok := parseEnum(s, themeNames, "table-theme-")
	return Theme(v), ok
}

// BorderPreset is a named bundle of border rules applied to a whole table
type BorderPreset int

const (
	BorderThin BorderPreset = iota
	BorderThick
	BorderDashed
	BorderOuterOnly
	BorderHeaderOnly
)

var borderPresetNames = []string{"thin", "thick", "dashed", "outer-only", "header-only"}

// String returns the serialized preset name, e.g. "table-borders-thin"
func (p BorderPreset) String() string {
	return "table-borders-" + enumName(int(p), borderPresetNames)
}

// Name returns the short preset name, e.g. "thin"
func (p BorderPreset) Name() string { return enumName(int(p), borderPresetNames) }

// ParseBorderPreset parses a preset name, accepting "thin" and "table-borders-thin"
func ParseBorderPreset(s string) (BorderPreset, bool) {
	v, ok := parseEnum(s, borderPresetNames, "table-borders-")
	return BorderPreset(v), ok
}

// CellPadding is the table-wide padding density
type CellPadding int

const (
	PaddingNormal CellPadding = iota
	PaddingCompact
	PaddingSpacious
)

var paddingNames = []string{"normal", "compact", "spacious"}

func (p CellPadding) String() string { return enumName(int(p), paddingNames) }

// ParseCellPadding parses a padding name
func ParseCellPadding(s string) (CellPadding, bool) {
	v, ok := parseEnum(s, paddingNames, "table-padding-")
	return CellPadding(v), ok
}

// ResponsiveMode controls how the table behaves on narrow viewports
type ResponsiveMode int

const (
	ResponsiveScroll ResponsiveMode = iota
	ResponsiveStack
	ResponsiveCollapse
)

var responsiveNames = []string{"scroll", "stack", "collapse"}

func (m ResponsiveMode) String() string { return enumName(int(m), responsiveNames) }

// ParseResponsiveMode parses a responsive mode name
func ParseResponsiveMode(s string) (ResponsiveMode, bool) {
	v, ok := parseEnum(s, responsiveNames, "table-responsive-")
	return ResponsiveMode(v), ok
}

// Float positions the table relative to surrounding text
type Float int

const (
	FloatNone Float = iota
	FloatLeft
	FloatRight
)

var floatNames = []string{"none", "left", "right"}

func (f Float) String() string { return enumName(int(f), floatNames) }

// ParseFloat parses a float name
func ParseFloat(s string) (Float, bool) {
	v, ok := parseEnum(s, floatNames, "table-float-")
	return Float(v), ok
}

// BorderStyle is a CSS border style. BorderStyleUnset never overrides.
type BorderStyle int

const (
	BorderStyleUnset BorderStyle = iota
	BorderSolid
	BorderDashedLine
	BorderDotted
	BorderDouble
	BorderNone
)

var borderStyleNames = []string{"", "solid", "dashed", "dotted", "double", "none"}

func (s BorderStyle) String() string { return enumName(int(s), borderStyleNames) }

// IsSet reports whether the style carries a value
func (s BorderStyle) IsSet() bool { return s != BorderStyleUnset }

// ParseBorderStyle parses a CSS border style keyword
func ParseBorderStyle(s string) (BorderStyle, bool) {
	v, ok := parseEnum(s, borderStyleNames, "")
	if !ok || v == 0 {
		return BorderStyleUnset, false
	}
	return BorderStyle(v), true
}

// Side indexes the four borders of a cell
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

var sideNames = []string{"top", "right", "bottom", "left"}

// Sides lists all sides in CSS order
var Sides = [4]Side{SideTop, SideRight, SideBottom, SideLeft}

func (s Side) String() string { return enumName(int(s), sideNames) }

// ParseSide parses a side name
func ParseSide(s string) (Side, bool) {
	v, ok := parseEnum(s, sideNames, "border-")
	return Side(v), ok
}

func enumName(v int, names []string) string {
	if v < 0 || v >= len(names) {
		return names[0]
	}
	return names[v]
}

// parseEnum folds case and strips an optional class prefix before looking
// the value up. Unknown values return the zero value and false.
func parseEnum(s string, names []string, prefix string) (int, bool) {
	key := cases.Fold().String(strings.TrimSpace(s))
	if prefix != "" {
		key = strings.TrimPrefix(key, prefix)
	}
	for i, name := range names {
		if key == name {
			return i, true
		}
	}
	return 0, false
}

// Text marshaling lets configuration files name themes and presets.
// Unknown names decode to the default rather than failing.

func (t Theme) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Theme) UnmarshalText(b []byte) error {
	*t, _ = ParseTheme(string(b))
	return nil
}

func (p BorderPreset) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *BorderPreset) UnmarshalText(b []byte) error {
	*p, _ = ParseBorderPreset(string(b))
	return nil
}
