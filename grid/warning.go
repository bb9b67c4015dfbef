package grid

import (
	"fmt"
	"strings"
)

// WarningKind classifies a repair made to malformed table content
type WarningKind int

const (
	WarningPadded WarningKind = iota
	WarningTruncated
	WarningDropped
	WarningInvalidSpan
)

func (k WarningKind) String() string {
	switch k {
	case WarningPadded:
		return "padded"
	case WarningTruncated:
		return "truncated"
	case WarningDropped:
		return "dropped"
	case WarningInvalidSpan:
		return "invalid-span"
	default:
		return "unknown"
	}
}

// Warning describes a non-fatal repair made while building a grid
type Warning struct {
	Row, Col int
	Kind     WarningKind
	Message  string
}

func (w Warning) String() string {
	return fmt.Sprintf("row %d col %d: %s: %s", w.Row, w.Col, w.Kind, w.Message)
}

func (g *Grid) warn(row, col int, kind WarningKind, format string, args ...interface{}) {
	g.warnings = append(g.warnings, Warning{
		Row:     row,
		Col:     col,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// FormatWarnings joins warnings into a single human-readable string
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
