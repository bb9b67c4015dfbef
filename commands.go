package tabledit

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/tabledit/editor"
	"github.com/tsawler/tabledit/model"
)

var (
	// ErrUnknownCommand is returned for a command line naming no command
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUsage is returned when a command line has bad arguments
	ErrUsage = errors.New("bad arguments")
)

// command is one named editor command
type command struct {
	usage string
	run   func(s *Session, args []string) error
}

var commands = map[string]command{
	// Focus and selection
	"focus":         {"focus TABLE ROW COL", runFocus},
	"cursor":        {"cursor POS", runCursor},
	"select":        {"select ROW COL ROW COL", runSelect},
	"select-row":    {"select-row ROW", intCommand(func(ed *editor.Editor, i int) bool { return ed.SelectRow(i) })},
	"select-column": {"select-column COL", intCommand(func(ed *editor.Editor, i int) bool { return ed.SelectColumn(i) })},
	"select-table":  {"select-table", simple((*editor.Editor).SelectTable)},
	"next-cell":     {"next-cell", simple(func(ed *editor.Editor) bool { return ed.GoToNextCell(1) })},
	"prev-cell":     {"prev-cell", simple(func(ed *editor.Editor) bool { return ed.GoToNextCell(-1) })},

	// Structure
	"insert-table":      {"insert-table ROWS COLS [header|plain]", runInsertTable},
	"delete-table":      {"delete-table", simple((*editor.Editor).DeleteTable)},
	"insert-row":        {"insert-row ROW before|after", sidedCommand((*editor.Editor).InsertRow)},
	"insert-column":     {"insert-column COL before|after", sidedCommand((*editor.Editor).InsertColumn)},
	"add-row-before":    {"add-row-before", simple((*editor.Editor).AddRowBefore)},
	"add-row-after":     {"add-row-after", simple((*editor.Editor).AddRowAfter)},
	"add-column-before": {"add-column-before", simple((*editor.Editor).AddColumnBefore)},
	"add-column-after":  {"add-column-after", simple((*editor.Editor).AddColumnAfter)},
	"delete-row":        {"delete-row ROW", intCommand((*editor.Editor).DeleteRow)},
	"delete-column":     {"delete-column COL", intCommand((*editor.Editor).DeleteColumn)},
	"delete-rows":       {"delete-rows", simple((*editor.Editor).DeleteSelectedRows)},
	"delete-columns":    {"delete-columns", simple((*editor.Editor).DeleteSelectedColumns)},
	"merge":             {"merge", simple((*editor.Editor).MergeCells)},
	"split":             {"split", simple((*editor.Editor).SplitCell)},
	"fix":               {"fix", simple((*editor.Editor).FixTable)},

	// Table attributes
	"theme":        {"theme NAME", stringCommand((*editor.Editor).ApplyTheme)},
	"preset":       {"preset NAME", stringCommand((*editor.Editor).ApplyBorderPreset)},
	"border-color": {"border-color COLOR", tableAttr(parseColorArg, func(a *model.TableAttrs, v model.Color) { a.BorderColor = v })},
	"radius":       {"radius LENGTH", tableAttr(parseLengthArg, func(a *model.TableAttrs, v model.Length) { a.BorderRadius = v })},
	"width":        {"width LENGTH", tableAttr(parseLengthArg, func(a *model.TableAttrs, v model.Length) { a.Width = v })},
	"padding":      {"padding compact|normal|spacious", tableAttr(enumArg(model.ParseCellPadding), func(a *model.TableAttrs, v model.CellPadding) { a.CellPadding = v })},
	"responsive":   {"responsive scroll|stack|collapse", tableAttr(enumArg(model.ParseResponsiveMode), func(a *model.TableAttrs, v model.ResponsiveMode) { a.ResponsiveMode = v })},
	"float":        {"float none|left|right", tableAttr(enumArg(model.ParseFloat), func(a *model.TableAttrs, v model.Float) { a.Float = v })},
	"zebra":        {"zebra on|off", tableAttr(parseSwitch, func(a *model.TableAttrs, v bool) { a.AlternatingRows = v })},
	"fixed-width":  {"fixed-width on|off", tableAttr(parseSwitch, func(a *model.TableAttrs, v bool) { a.FixedWidth = v })},
	"caption":      {"caption TEXT...", runCaption},

	// Cells
	"background":    {"background COLOR|clear", stringCommand((*editor.Editor).SetCellBackground)},
	"text-color":    {"text-color COLOR|clear", stringCommand((*editor.Editor).SetCellTextColor)},
	"border":        {"border top|right|bottom|left [WIDTH] [STYLE] [COLOR]", runBorder},
	"text":          {"text TEXT...", runText},
	"row-height":    {"row-height LENGTH|clear", stringCommand((*editor.Editor).SetRowHeight)},
	"header-row":    {"header-row", simple((*editor.Editor).ToggleHeaderRow)},
	"header-column": {"header-column", simple((*editor.Editor).ToggleHeaderColumn)},
	"header-cell":   {"header-cell", simple((*editor.Editor).ToggleHeaderCell)},
}

// Commands returns the usage line of every command, sorted
func Commands() []string {
	out := make([]string, 0, len(commands))
	for _, c := range commands {
		out = append(out, c.usage)
	}
	sort.Strings(out)
	return out
}

// run parses and executes one command line
func (s *Session) run(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	c, ok := commands[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownCommand)
	}
	if err := c.run(s, args); err != nil {
		if errors.Is(err, ErrUsage) {
			return fmt.Errorf("%s: %w (usage: %s)", name, err, c.usage)
		}
		return fmt.Errorf("%s: %w", name, err)
	}

	s.opts.logger.Debug("applied", "command", line)
	return nil
}

// do runs fn and maps a refusal to ErrRejected
func (s *Session) do(fn func(ed *editor.Editor) bool) error {
	if !fn(s.editor) {
		return ErrRejected
	}
	return nil
}

// ============================================================================
// Adapters
// ============================================================================

func simple(fn func(ed *editor.Editor) bool) func(*Session, []string) error {
	return func(s *Session, args []string) error {
		if len(args) != 0 {
			return ErrUsage
		}
		return s.do(fn)
	}
}

func intCommand(fn func(ed *editor.Editor, i int) bool) func(*Session, []string) error {
	return func(s *Session, args []string) error {
		n, err := ints(args, 1)
		if err != nil {
			return err
		}
		return s.do(func(ed *editor.Editor) bool { return fn(ed, n[0]) })
	}
}

func sidedCommand(fn func(ed *editor.Editor, i int, side editor.Side) bool) func(*Session, []string) error {
	return func(s *Session, args []string) error {
		if len(args) != 2 {
			return ErrUsage
		}
		n, err := ints(args[:1], 1)
		if err != nil {
			return err
		}
		var side editor.Side
		switch strings.ToLower(args[1]) {
		case "before":
			side = editor.Before
		case "after":
			side = editor.After
		default:
			return ErrUsage
		}
		return s.do(func(ed *editor.Editor) bool { return fn(ed, n[0], side) })
	}
}

// stringCommand passes the joined arguments; "clear" becomes ""
func stringCommand(fn func(ed *editor.Editor, v string) bool) func(*Session, []string) error {
	return func(s *Session, args []string) error {
		if len(args) == 0 {
			return ErrUsage
		}
		v := strings.Join(args, " ")
		if strings.EqualFold(v, "clear") {
			v = ""
		}
		return s.do(func(ed *editor.Editor) bool { return fn(ed, v) })
	}
}

func tableAttr[T any](parse func(string) (T, error), set func(a *model.TableAttrs, v T)) func(*Session, []string) error {
	return func(s *Session, args []string) error {
		if len(args) != 1 {
			return ErrUsage
		}
		v, err := parse(args[0])
		if err != nil {
			return err
		}
		return s.do(func(ed *editor.Editor) bool {
			return ed.SetTableAttrs(func(a *model.TableAttrs) { set(a, v) })
		})
	}
}

// ============================================================================
// Commands with their own argument handling
// ============================================================================

func runFocus(s *Session, args []string) error {
	n, err := ints(args, 3)
	if err != nil {
		return err
	}
	s.Focus(n[0], n[1], n[2])
	err, s.err = s.err, nil
	return err
}

func runCursor(s *Session, args []string) error {
	n, err := ints(args, 1)
	if err != nil {
		return err
	}
	// A cursor outside every table is valid; it only clears the selection
	s.editor.SetCursor(n[0])
	return nil
}

func runSelect(s *Session, args []string) error {
	n, err := ints(args, 4)
	if err != nil {
		return err
	}
	anchor := model.Coord{Row: n[0], Col: n[1]}
	head := model.Coord{Row: n[2], Col: n[3]}
	return s.do(func(ed *editor.Editor) bool { return ed.SelectCells(anchor, head) })
}

func runInsertTable(s *Session, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return ErrUsage
	}
	n, err := ints(args[:2], 2)
	if err != nil {
		return err
	}
	header := s.editor.Config().HeaderRow
	if len(args) == 3 {
		switch strings.ToLower(args[2]) {
		case "header":
			header = true
		case "plain":
			header = false
		default:
			return ErrUsage
		}
	}
	return s.do(func(ed *editor.Editor) bool { return ed.InsertTable(n[0], n[1], header) })
}

func runCaption(s *Session, args []string) error {
	caption := strings.Join(args, " ")
	return s.do(func(ed *editor.Editor) bool {
		return ed.SetTableAttrs(func(a *model.TableAttrs) { a.Caption = caption })
	})
}

func runBorder(s *Session, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	side, ok := model.ParseSide(args[0])
	if !ok {
		return fmt.Errorf("%w: side %q", ErrUsage, args[0])
	}
	b, ok := model.ParseBorderSide(strings.Join(args[1:], " "))
	if !ok {
		return fmt.Errorf("%w: border %q", ErrUsage, strings.Join(args[1:], " "))
	}
	return s.do(func(ed *editor.Editor) bool { return ed.SetCellBorder(side, b) })
}

// runText sets the selected cells' text. A literal \n separates paragraphs.
func runText(s *Session, args []string) error {
	text := strings.ReplaceAll(strings.Join(args, " "), `\n`, "\n")
	return s.do(func(ed *editor.Editor) bool { return ed.SetCellText(text) })
}

// ============================================================================
// Argument parsing
// ============================================================================

func ints(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, ErrUsage
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrUsage, a)
		}
		out[i] = v
	}
	return out, nil
}

func parseColorArg(s string) (model.Color, error) {
	if strings.EqualFold(s, "clear") {
		return model.Color{}, nil
	}
	c, ok := model.ParseColor(s)
	if !ok {
		return model.Color{}, fmt.Errorf("%w: invalid color %q", ErrUsage, s)
	}
	return c, nil
}

func parseLengthArg(s string) (model.Length, error) {
	if strings.EqualFold(s, "clear") {
		return model.Length{}, nil
	}
	l, ok := model.ParseLength(s)
	if !ok {
		return model.Length{}, fmt.Errorf("%w: invalid length %q", ErrUsage, s)
	}
	return l, nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("%w: expected on or off, got %q", ErrUsage, s)
}

func enumArg[T any](parse func(string) (T, bool)) func(string) (T, error) {
	return func(s string) (T, error) {
		v, ok := parse(s)
		if !ok {
			return v, fmt.Errorf("%w: unknown value %q", ErrUsage, s)
		}
		return v, nil
	}
}
