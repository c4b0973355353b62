// Package worldstate holds the authoritative state of six elevators and all
// passengers, and replays a contestant's output log against it one event at
// a time, failing on the first broken invariant.
package worldstate

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/elevsim/judge/eventlog"
	"github.com/elevsim/judge/judgeerr"
	"github.com/elevsim/judge/requeststream"
)

// Tolerance absorbs the one-decimal-place quantisation of every timestamp
// in the input and output files.
const Tolerance = 1e-6

const (
	maxElevator = 6
	capacity    = 6
)

// Logger receives one notification per Apply call, for structured
// observability independent of the pass/fail verdict itself.
type Logger interface {
	Applied(ev eventlog.Event)
	Failed(ev eventlog.Event, err error)
}

type noopLogger struct{}

func (noopLogger) Applied(eventlog.Event)      {}
func (noopLogger) Failed(eventlog.Event, error) {}

// Option configures a World at construction.
type Option func(*World)

// WithLogger attaches a Logger that observes every Apply call.
func WithLogger(l Logger) Option {
	return func(w *World) { w.log = l }
}

// WithMaxTime overrides the default final-timestamp ceiling.
func WithMaxTime(t float64) Option {
	return func(w *World) { w.maxTime = t }
}

// World is the authoritative elevator-and-passenger state machine.
type World struct {
	Elevators  map[int]*Elevator
	Passengers map[int]*Passenger

	assignments map[int]Assignment

	scheCommands   []requeststream.ScheduleCommand
	scheConsumed   []bool
	updateCommands []requeststream.UpdateCommand
	updateConsumed []bool

	lastEventTime float64
	maxTime       float64

	log Logger
}

// New constructs a World seeded with six idle elevators at F1 and the given
// passenger roster and pending command table, as produced by
// requeststream.Parse.
func New(stream *requeststream.Stream, opts ...Option) *World {
	w := &World{
		Elevators:   make(map[int]*Elevator, maxElevator),
		Passengers:  make(map[int]*Passenger, len(stream.Passengers)),
		assignments: make(map[int]Assignment),
		maxTime:     220,
		log:         noopLogger{},
	}
	for id := 1; id <= maxElevator; id++ {
		w.Elevators[id] = newElevator(id)
	}
	for id, req := range stream.Passengers {
		w.Passengers[id] = &Passenger{
			ID:           req.ID,
			Priority:     req.Priority,
			From:         req.From,
			To:           req.To,
			RequestTime:  req.Time,
			Status:       Outside,
			CurrentFloor: req.From,
		}
	}
	for _, cmd := range stream.Commands {
		switch {
		case cmd.Schedule != nil:
			w.scheCommands = append(w.scheCommands, *cmd.Schedule)
			w.scheConsumed = append(w.scheConsumed, false)
		case cmd.Update != nil:
			w.updateCommands = append(w.updateCommands, *cmd.Update)
			w.updateConsumed = append(w.updateConsumed, false)
		}
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Apply validates and applies one output event, in the order it appears in
// the log. It returns the first *judgeerr.Error encountered, if any.
func (w *World) Apply(ev eventlog.Event) error {
	if err := w.checkTimestamp(ev.Time); err != nil {
		w.log.Failed(ev, err)
		return err
	}

	var err error
	switch ev.Kind {
	case eventlog.Arrive:
		err = w.applyArrive(ev)
	case eventlog.Open:
		err = w.applyOpen(ev)
	case eventlog.Close:
		err = w.applyClose(ev)
	case eventlog.In:
		err = w.applyIn(ev)
	case eventlog.Out:
		err = w.applyOut(ev)
	case eventlog.Receive:
		err = w.applyReceive(ev)
	case eventlog.ScheAccept:
		err = w.applyScheAccept(ev)
	case eventlog.ScheBegin:
		err = w.applyScheBegin(ev)
	case eventlog.ScheEnd:
		err = w.applyScheEnd(ev)
	case eventlog.UpdateAccept:
		err = w.applyUpdateAccept(ev)
	case eventlog.UpdateBegin:
		err = w.applyUpdateBegin(ev)
	case eventlog.UpdateEnd:
		err = w.applyUpdateEnd(ev)
	default:
		err = judgeerr.New(judgeerr.OutputFormat, ev.Time, "", "unhandled event kind %q", ev.Kind)
	}

	if err != nil {
		w.log.Failed(ev, err)
		return err
	}
	w.lastEventTime = ev.Time
	w.log.Applied(ev)
	return nil
}

// FinalAudit runs the end-of-log checks: every passenger COMPLETED, every
// non-DISABLED elevator closed and empty. Passengers and elevators are
// walked in id order so the reported offender is stable across runs over
// the same final state, map iteration order notwithstanding.
func (w *World) FinalAudit() error {
	for _, id := range sortedKeys(w.Passengers) {
		p := w.Passengers[id]
		if p.Status != Completed {
			return judgeerr.New(judgeerr.FinalState, w.lastEventTime, passengerSubject(p.ID),
				"passenger %d never reached COMPLETED (status %s)", p.ID, p.Status)
		}
	}
	for _, id := range sortedKeys(w.Elevators) {
		e := w.Elevators[id]
		if e.Mode == Disabled {
			continue
		}
		if e.DoorOpen {
			return judgeerr.New(judgeerr.FinalState, w.lastEventTime, elevatorSubject(e.ID),
				"elevator %d left with an open door", e.ID)
		}
		if e.Occupancy() > 0 {
			return judgeerr.New(judgeerr.FinalState, w.lastEventTime, elevatorSubject(e.ID),
				"elevator %d left with %d passenger(s) aboard", e.ID, e.Occupancy())
		}
	}
	return nil
}

// sortedKeys returns m's keys in ascending order.
func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (w *World) checkTimestamp(t float64) error {
	if t < w.lastEventTime-Tolerance {
		return judgeerr.New(judgeerr.TimestampOrder, t, "", "timestamp %.1f precedes previous event at %.1f", t, w.lastEventTime)
	}
	if t > w.maxTime+Tolerance {
		return judgeerr.New(judgeerr.TimestampOrder, t, "", "timestamp %.1f exceeds max time %.1f", t, w.maxTime)
	}
	return nil
}

func elevatorSubject(id int) string  { return fmt.Sprintf("elevator %d", id) }
func passengerSubject(id int) string { return fmt.Sprintf("passenger %d", id) }
