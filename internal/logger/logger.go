package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Logger wraps zerolog.Logger with the printf-style helpers used across the
// miner
type Logger struct {
	zerolog.Logger
}

// Options controls how a Logger is built
type Options struct {
	Level zerolog.Level
	JSON  bool // machine readable lines instead of the console format
}

// NewWriter creates a new logger that writes to the provided writer
func NewWriter(w io.Writer, opts Options) *Logger {
	var zl zerolog.Logger
	if opts.JSON {
		zl = zerolog.New(w).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    !isTerminal(w),
			TimeFormat: time.TimeOnly,
		}).With().Timestamp().Logger()
	}
	return &Logger{Logger: zl.Level(opts.Level)}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// Printf logs at info level
func (l *Logger) Printf(format string, args ...interface{}) {
	l.Logger.Info().Msgf(format, args...)
}

// Println logs at info level
func (l *Logger) Println(args ...interface{}) {
	l.Logger.Info().Msg(fmt.Sprint(args...))
}

// Debugf logs at debug level
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Logger.Debug().Msgf(format, args...)
}

// Warnf logs at warn level
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Logger.Warn().Msgf(format, args...)
}

// Errorf logs at error level
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Logger.Error().Msgf(format, args...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
