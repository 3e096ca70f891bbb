// Package logging provides the ambient operational logger threaded through
// the pipeline, kept separate from the diagnostic sink which carries
// compilation errors as data rather than log lines. The default
// implementation wraps github.com/rs/zerolog.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Log is the minimal logging surface the pipeline depends on, so stages
// never import zerolog directly.
type Log interface {
	Printf(format string, v ...any)
	Debugf(format string, v ...any)
}

// New constructs a Log writing human-readable, leveled output to w via
// zerolog's console writer, with leveling so -verbose tracing can be
// toggled without code changes.
func New(w io.Writer, verbose bool) Log {
	if w == nil {
		w = os.Stderr
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{Out: w, NoColor: true, PartsOrder: []string{
		zerolog.LevelFieldName, zerolog.MessageFieldName,
	}}
	logger := zerolog.New(console).Level(level).With().Timestamp().Logger()
	return &zerologLog{logger: logger}
}

type zerologLog struct {
	logger zerolog.Logger
}

func (l *zerologLog) Printf(format string, v ...any) {
	l.logger.Info().Msgf(format, v...)
}

func (l *zerologLog) Debugf(format string, v ...any) {
	l.logger.Debug().Msgf(format, v...)
}

// Discard is a Log that drops everything, used by components under test
// that don't care about tracing output.
var Discard Log = &zerologLog{logger: zerolog.Nop()}
