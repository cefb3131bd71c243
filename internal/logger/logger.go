package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Logger wraps zerolog.Logger with printf-style helpers
type Logger struct {
	zerolog.Logger
}

// New creates a new logger writing to stderr, coloured when stderr is a terminal
func New() *Logger {
	out := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
		TimeFormat: time.TimeOnly,
	}
	return newLogger(out)
}

// NewWriter creates a new logger that writes plain JSON lines to the provided writer
func NewWriter(w io.Writer) *Logger {
	return newLogger(w)
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

func newLogger(w io.Writer) *Logger {
	return &Logger{
		Logger: zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel),
	}
}

// SetVerbose switches between debug and info level
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.Logger = l.Logger.Level(zerolog.DebugLevel)
		return
	}
	l.Logger = l.Logger.Level(zerolog.InfoLevel)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Logger.Debug().Msgf(format, args...)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Logger.Info().Msgf(format, args...)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Logger.Warn().Msgf(format, args...)
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Logger.Error().Msgf(format, args...)
}
