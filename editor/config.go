package editor

import (
	"io"
	"log/slog"

	"github.com/tsawler/tabledit/model"
)

// Config holds editor configuration
type Config struct {
	// MaxRows and MaxCols bound the dimensions accepted by InsertTable.
	MaxRows int `toml:"max_rows"`
	MaxCols int `toml:"max_cols"`

	// DefaultTheme and DefaultPreset are applied to inserted tables.
	DefaultTheme  model.Theme        `toml:"default_theme"`
	DefaultPreset model.BorderPreset `toml:"default_preset"`

	// HeaderRow is the header choice for callers that insert tables
	// without asking the user.
	HeaderRow bool `toml:"header_row"`
}

// DefaultConfig returns the default editor configuration
func DefaultConfig() Config {
	return Config{
		MaxRows:       Limit,
		MaxCols:       Limit,
		DefaultTheme:  model.ThemeLight,
		DefaultPreset: model.BorderThin,
		HeaderRow:     true,
	}
}

// Limit is the largest row or column count InsertTable accepts
const Limit = 50

// Validate resets non-positive bounds to the defaults and caps the rest
// at Limit
func (c Config) Validate() Config {
	def := DefaultConfig()
	if c.MaxRows < 1 {
		c.MaxRows = def.MaxRows
	}
	if c.MaxCols < 1 {
		c.MaxCols = def.MaxCols
	}
	c.MaxRows = min(c.MaxRows, Limit)
	c.MaxCols = min(c.MaxCols, Limit)
	return c
}

// Option configures an Editor
type Option func(*Editor)

// WithConfig replaces the default configuration
func WithConfig(cfg Config) Option {
	return func(e *Editor) {
		e.config = cfg.Validate()
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithObserver registers an observer of dispatched changes
func WithObserver(o Observer) Option {
	return func(e *Editor) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
