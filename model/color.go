package model

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color represents an RGB color. The zero value is an unset color, which
// never overrides a lower-priority value during style composition.
type Color struct {
	R, G, B uint8
	Valid   bool
}

// RGB returns a set color with the given components
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Valid: true}
}

// MustColor parses s and panics if it is not a valid color. It is intended
// for package-level theme tables and tests.
func MustColor(s string) Color {
	c, ok := ParseColor(s)
	if !ok {
		panic(fmt.Sprintf("model: invalid color %q", s))
	}
	return c
}

// IsSet reports whether the color carries a value
func (c Color) IsSet() bool { return c.Valid }

// Hex returns the color as #RRGGBB, or "" when unset
func (c Color) Hex() string {
	if !c.Valid {
		return ""
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) String() string { return c.Hex() }

// Or returns c when set, otherwise fallback.
func (c Color) Or(fallback Color) Color {
	if c.Valid {
		return c
	}
	return fallback
}

// ParseColor parses a CSS color value. Accepted forms are #RGB, #RRGGBB,
// rgb(r, g, b) and the CSS named colors.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Color{}, false
	}

	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}

	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		return parseRGBFunc(s[4 : len(s)-1])
	}

	if named, ok := colornames.Map[s]; ok {
		return RGB(named.R, named.G, named.B), true
	}

	return Color{}, false
}

func parseHexColor(h string) (Color, bool) {
	switch len(h) {
	case 3:
		// #RGB expands each digit
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return Color{}, false
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), true
}

func parseRGBFunc(args string) (Color, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return Color{}, false
	}

	var comps [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return Color{}, false
		}
		comps[i] = uint8(n)
	}
	return RGB(comps[0], comps[1], comps[2]), true
}
