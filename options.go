package tabledit

import (
	"io"
	"log/slog"

	"github.com/tsawler/tabledit/editor"
	"github.com/tsawler/tabledit/view"
)

// sessionOptions holds the collaborators of a session
type sessionOptions struct {
	config  editor.Config
	logger  *slog.Logger
	layout  view.LayoutHost // nil means proportional grips
	factory view.Factory
}

// Option configures a Session
type Option func(*sessionOptions)

// WithConfig sets the editor configuration
func WithConfig(cfg editor.Config) Option {
	return func(o *sessionOptions) { o.config = cfg }
}

// WithLogger sets the logger used by the editor and the views
func WithLogger(logger *slog.Logger) Option {
	return func(o *sessionOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLayoutHost sets the layout host that measures rendered tables
func WithLayoutHost(host view.LayoutHost) Option {
	return func(o *sessionOptions) { o.layout = host }
}

// WithViewFactory sets the factory creating each table's surface and grip
// renderer. The default records into a view.Recorder.
func WithViewFactory(factory view.Factory) Option {
	return func(o *sessionOptions) {
		if factory != nil {
			o.factory = factory
		}
	}
}

// defaultOptions returns the default session options
func defaultOptions() sessionOptions {
	return sessionOptions{
		config: editor.DefaultConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		factory: func(string) (view.Surface, view.GripRenderer) {
			r := view.NewRecorder()
			return r, r
		},
	}
}
