package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/qwell/report"
)

// Option customizes Run and Sweep.
type Option func(*options)

type options struct {
	logger  *log.Logger
	console *report.Console
}

func defaultOptions() options {
	return options{logger: log.New(io.Discard)}
}

// WithLogger routes stage logs to l. A nil l keeps the silent default.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConsole prints the "Computing eigenvalue decomposition" status line to w
// right before the eigensolve.
func WithConsole(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.console = &report.Console{W: w}
		}
	}
}
