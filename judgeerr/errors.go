// Package judgeerr defines the judge's error taxonomy: every way a
// contestant's log can fail validation, collapsed into one exported error
// type carrying a Kind, so callers can branch with errors.As instead of a
// type-switch per failure mode.
package judgeerr

import "fmt"

// Kind classifies a validation failure. Every failure the judge reports
// falls into exactly one Kind.
type Kind string

const (
	// InputFormat marks an ill-formed or out-of-range request stream line.
	InputFormat Kind = "InputFormat"
	// OutputFormat marks an ill-formed or unrecognised log line.
	OutputFormat Kind = "OutputFormat"
	// TimestampOrder marks a non-monotone timestamp, or one past max time.
	TimestampOrder Kind = "TimestampOrder"
	// MovementTiming marks a too-fast ARRIVE or too-short door open/close.
	MovementTiming Kind = "MovementTiming"
	// DoorOrElevatorPosition marks an OPEN/CLOSE/IN/OUT at the wrong floor,
	// wrong door state, or over capacity.
	DoorOrElevatorPosition Kind = "DoorOrElevatorPosition"
	// PassengerState marks an IN/OUT/RECEIVE applied to a passenger in an
	// incompatible status.
	PassengerState Kind = "PassengerState"
	// AssignmentMissing marks an IN without a live RECEIVE.
	AssignmentMissing Kind = "AssignmentMissing"
	// SchedulingProtocol marks an invalid ACCEPT/BEGIN/END ordering, missed
	// window, residual passengers, or wrong floor.
	SchedulingProtocol Kind = "SchedulingProtocol"
	// UpdateProtocol is as SchedulingProtocol, plus carriage-range or
	// B-above-A violations.
	UpdateProtocol Kind = "UpdateProtocol"
	// FinalState marks an undelivered passenger, open door, or non-empty
	// car found at the end of the log.
	FinalState Kind = "FinalState"
)

// Error is the judge's single error type. Every validation failure is one
// of these; no error is recovered from, and the first one seen terminates
// validation.
type Error struct {
	Kind Kind
	// Time is the timestamp of the offending event, for the diagnostic line.
	Time float64
	// Subject names the elevator or passenger at fault, e.g. "elevator 3" or
	// "passenger 12". May be empty where no single subject applies (e.g. a
	// timestamp-order failure, or an output line parsed without a line number).
	Subject string
	// Message is the human-readable description of the broken contract.
	Message string
}

// New constructs an Error of the given Kind.
func New(kind Kind, t float64, subject, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Time:    t,
		Subject: subject,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface, formatted for the CLI's
// "Validation Error: [t] <message>" diagnostic line.
func (e *Error) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("[%.1f] %s", e.Time, e.Message)
	}
	return fmt.Sprintf("[%.1f] %s: %s", e.Time, e.Subject, e.Message)
}

// Is supports errors.Is(err, judgeerr.Sentinel(judgeerr.InputFormat)) style
// matching against a bare Kind value wrapped via Sentinel.
func (e *Error) Is(target error) bool {
	k, ok := target.(kindSentinel)
	return ok && e.Kind == Kind(k)
}

// kindSentinel lets a bare Kind act as an errors.Is target without exporting
// a second type; see Sentinel.
type kindSentinel Kind

func (k kindSentinel) Error() string { return string(k) }

// Sentinel returns an error value suitable for errors.Is(err, judgeerr.Sentinel(judgeerr.FinalState)).
func Sentinel(kind Kind) error { return kindSentinel(kind) }
