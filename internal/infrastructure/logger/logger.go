package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog behind a small msg + key/value API.
type Logger struct {
	zl zerolog.Logger
}

func NewLogger() *Logger {
	return NewLoggerTo(os.Stdout)
}

func NewLoggerTo(w io.Writer) *Logger {
	return &Logger{zl: zerolog.New(w).With().Timestamp().Logger()}
}

func (l *Logger) Info(msg string, kv ...interface{}) {
	l.emit(l.zl.Info(), msg, kv)
}

func (l *Logger) Warn(msg string, kv ...interface{}) {
	l.emit(l.zl.Warn(), msg, kv)
}

func (l *Logger) Error(msg string, kv ...interface{}) {
	l.emit(l.zl.Error(), msg, kv)
}

func (l *Logger) emit(e *zerolog.Event, msg string, kv []interface{}) {
	for i := 0; i+1 < len(kv); i += 2 {
		e = e.Interface(fmt.Sprint(kv[i]), kv[i+1])
	}
	e.Msg(msg)
}
