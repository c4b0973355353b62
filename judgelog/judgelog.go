// Package judgelog wires a logiface logger, backed by stumpy's JSON writer,
// into the worldstate.Logger interface, so a validation run emits one
// structured line per applied or rejected event.
package judgelog

import (
	"io"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"

	"github.com/elevsim/judge/eventlog"
)

// Logger implements worldstate.Logger, recording every event as a
// structured log line: successes at debug level, failures at error level.
type Logger struct {
	log *logiface.Logger[*stumpy.Event]
}

// New builds a Logger writing newline-delimited JSON to w.
func New(w io.Writer) *Logger {
	return &Logger{
		log: stumpy.L.New(
			stumpy.L.WithStumpy(stumpy.WithWriter(w)),
		),
	}
}

// Applied records an event that was accepted against world state.
func (l *Logger) Applied(ev eventlog.Event) {
	l.log.Debug().
		Str(`kind`, string(ev.Kind)).
		Float64(`time`, ev.Time).
		Int(`line`, ev.Line).
		Log(`event applied`)
}

// Failed records an event that was rejected, along with why.
func (l *Logger) Failed(ev eventlog.Event, err error) {
	l.log.Err().
		Str(`kind`, string(ev.Kind)).
		Float64(`time`, ev.Time).
		Int(`line`, ev.Line).
		Err(err).
		Log(`event rejected`)
}
