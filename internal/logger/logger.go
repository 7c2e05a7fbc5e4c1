// Package logger wraps zerolog.Logger with the constructors and per-operation
// helpers scrambler uses for diagnostics.
//
// Diagnostics always go to the writer given to New, normally os.Stderr, so
// they never mix with the results printed on stdout.
package logger

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// Options selects the verbosity and format of a Logger.
type Options struct {
	// Verbose enables debug output.
	Verbose bool
	// Quiet limits output to errors. It wins over Verbose.
	Quiet bool
	// JSON writes one JSON object per line instead of the console format.
	JSON bool
}

// Level returns the level the options map to.
func (o Options) Level() zerolog.Level {
	switch {
	case o.Quiet:
		return zerolog.ErrorLevel
	case o.Verbose:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// New constructs a *Logger writing to w.
func New(w io.Writer, opts Options) *Logger {
	if !opts.JSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}

	logger := zerolog.New(w).
		Level(opts.Level()).
		With().
		Timestamp().
		Logger()

	return &Logger{logger}
}

// Nop returns a *Logger that discards all log output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// ForOperation returns a child logger tagged with a fresh operation ID and the
// file the operation works on.
func (l *Logger) ForOperation(command, file string) *Logger {
	return &Logger{l.With().
		Str("op", uuid.NewString()).
		Str("cmd", command).
		Str("file", file).
		Logger()}
}
