package model

import (
	"math"
	"strconv"
	"strings"
)

// Length is a CSS-style length. The zero value is unset.
type Length struct {
	Value float64
	Unit  string // px, %, em, rem, pt, or auto
}

// Auto is the "auto" keyword length
var Auto = Length{Unit: "auto"}

// Px returns a pixel length
func Px(v float64) Length { return Length{Value: v, Unit: "px"} }

// Percent returns a percentage length
func Percent(v float64) Length { return Length{Value: v, Unit: "%"} }

// IsSet reports whether the length carries a value
func (l Length) IsSet() bool { return l.Unit != "" }

// IsAuto reports whether the length is the auto keyword
func (l Length) IsAuto() bool { return l.Unit == "auto" }

// Or returns l when set, otherwise fallback.
func (l Length) Or(fallback Length) Length {
	if l.IsSet() {
		return l
	}
	return fallback
}

func (l Length) String() string {
	switch l.Unit {
	case "":
		return ""
	case "auto":
		return "auto"
	}
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit
}

var lengthUnits = []string{"rem", "px", "em", "pt", "%"}

// ParseLength parses a CSS length such as "12px", "50%", "1.5em" or "auto".
// A bare number is read as pixels. Negative lengths are rejected.
func ParseLength(s string) (Length, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Length{}, false
	}
	if s == "auto" {
		return Auto, true
	}

	unit := "px"
	num := s
	for _, u := range lengthUnits {
		if strings.HasSuffix(s, u) {
			unit = u
			num = strings.TrimSpace(strings.TrimSuffix(s, u))
			break
		}
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return Length{}, false
	}
	return Length{Value: v, Unit: unit}, true
}
