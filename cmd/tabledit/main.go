// Command tabledit applies table editing commands to an HTML document.
//
// Usage:
//
//	tabledit -in page.html -e "focus 0 0 0" -e "theme data" -out page.html
//	tabledit -in page.html -format markdown < script.txt
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tsawler/tabledit"
	"github.com/tsawler/tabledit/editor"
	"github.com/tsawler/tabledit/htmltable"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// lines collects repeated -e flags
type lines []string

func (l *lines) String() string { return strings.Join(*l, "; ") }

func (l *lines) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type options struct {
	in, out      string
	config       string
	format       string
	inlineStyles bool
	logLevel     string
	list         bool
	table        int
	exprs        lines
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("tabledit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.in, "in", "", "input HTML `file` (default: empty document)")
	fs.StringVar(&o.out, "out", "", "output `file` (default: stdout)")
	fs.StringVar(&o.config, "config", "", "editor configuration TOML `file`")
	fs.StringVar(&o.format, "format", "html", "output format: html, markdown or csv")
	fs.BoolVar(&o.inlineStyles, "inline-styles", false, "add composed class and style attributes to HTML output")
	fs.StringVar(&o.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.BoolVar(&o.list, "list-commands", false, "list the available commands and exit")
	fs.IntVar(&o.table, "table", 0, "table exported by -format csv")
	fs.Var(&o.exprs, "e", "command `line` to apply; repeatable. Without -e, commands are read from stdin")
	fs.Usage = func() {
		_, _ = fmt.Fprintln(stderr, "Usage: tabledit [options]")
		_, _ = fmt.Fprintln(stderr, "\nOptions:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return o, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if o.list {
		for _, usage := range tabledit.Commands() {
			_, _ = fmt.Fprintln(stdout, usage)
		}
		return nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q", o.logLevel)
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(o.config, logger)
	if err != nil {
		return err
	}
	opts := []tabledit.Option{tabledit.WithConfig(cfg), tabledit.WithLogger(logger)}

	var s *tabledit.Session
	if o.in == "" {
		s = tabledit.New(opts...)
	} else {
		s = tabledit.Open(o.in, opts...)
	}
	if len(s.Warnings()) > 0 {
		_, _ = fmt.Fprintf(stderr, "Repaired:\n%s\n", tabledit.FormatWarnings(s.Warnings()))
	}

	script := []string(o.exprs)
	if len(script) == 0 {
		if script, err = readScript(stdin); err != nil {
			return err
		}
	}
	s.Script(script...)

	out, err := export(s, o)
	if err != nil {
		return err
	}
	if o.out == "" {
		_, err = io.WriteString(stdout, out)
		return err
	}
	if err := os.WriteFile(o.out, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// loadConfig decodes the editor configuration. Keys missing from the file
// keep their defaults.
func loadConfig(path string, logger *slog.Logger) (editor.Config, error) {
	cfg := editor.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("unknown config key", "file", path, "key", key.String())
	}
	return cfg.Validate(), nil
}

func readScript(r io.Reader) ([]string, error) {
	var script []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		script = append(script, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read commands: %w", err)
	}
	return script, nil
}

func export(s *tabledit.Session, o *options) (string, error) {
	switch strings.ToLower(o.format) {
	case "html":
		out, _, err := s.HTML(htmltable.RenderOptions{InlineStyles: o.inlineStyles})
		return out, err
	case "markdown", "md":
		out, _, err := s.Markdown()
		if err != nil {
			return "", err
		}
		return out + "\n", nil
	case "csv":
		return s.CSV(o.table)
	}
	return "", fmt.Errorf("unknown format %q", o.format)
}
