// Package eventlog parses the contestant's output: one timestamped event per
// line, describing elevator movement, doors, passenger transfer, and the
// SCHE/UPDATE protocol handshakes.
package eventlog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/elevsim/judge/floor"
	"github.com/elevsim/judge/judgeerr"
)

// Kind identifies the shape of an Event.
type Kind string

const (
	Arrive       Kind = "ARRIVE"
	Open         Kind = "OPEN"
	Close        Kind = "CLOSE"
	In           Kind = "IN"
	Out          Kind = "OUT"
	Receive      Kind = "RECEIVE"
	ScheAccept   Kind = "SCHE-ACCEPT"
	ScheBegin    Kind = "SCHE-BEGIN"
	ScheEnd      Kind = "SCHE-END"
	UpdateAccept Kind = "UPDATE-ACCEPT"
	UpdateBegin  Kind = "UPDATE-BEGIN"
	UpdateEnd    Kind = "UPDATE-END"
)

// Event is one parsed output line. Only the fields relevant to Kind are
// populated; the rest hold their zero value.
type Event struct {
	Time      float64
	Kind      Kind
	Line      int
	Elevator  int
	Floor     floor.Index
	Passenger int // IN, OUT, RECEIVE
	Success   bool
	Speed     float64     // SCHE-ACCEPT
	Target    floor.Index // SCHE-ACCEPT, UPDATE-ACCEPT
	A, B      int         // UPDATE-*
}

var (
	linePrefix = regexp.MustCompile(`^\[(\d+\.\d+)\](.*)$`)

	arriveLine  = regexp.MustCompile(`^ARRIVE-([BF]\d+)-(\d+)$`)
	doorLine    = regexp.MustCompile(`^(OPEN|CLOSE)-([BF]\d+)-(\d+)$`)
	inLine      = regexp.MustCompile(`^IN-(\d+)-([BF]\d+)-(\d+)$`)
	outLine     = regexp.MustCompile(`^OUT-([SF])-(\d+)-([BF]\d+)-(\d+)$`)
	receiveLine = regexp.MustCompile(`^RECEIVE-(\d+)-(\d+)$`)

	scheAcceptLine = regexp.MustCompile(`^SCHE-ACCEPT-(\d+)-(\d+(?:\.\d+)?)-([BF]\d+)$`)
	scheBeginLine  = regexp.MustCompile(`^SCHE-BEGIN-(\d+)$`)
	scheEndLine    = regexp.MustCompile(`^SCHE-END-(\d+)$`)

	updateAcceptLine = regexp.MustCompile(`^UPDATE-ACCEPT-(\d+)-(\d+)-([BF]\d+)$`)
	updateBeginLine  = regexp.MustCompile(`^UPDATE-BEGIN-(\d+)-(\d+)$`)
	updateEndLine    = regexp.MustCompile(`^UPDATE-END-(\d+)-(\d+)$`)
)

// Scanner reads an output log line by line, attaching a 1-based line number
// to every parsed Event so judgeerr diagnostics can point at the source.
type Scanner struct {
	sc   *bufio.Scanner
	line int
	err  error
}

// NewScanner wraps r for sequential Event reads.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{sc: bufio.NewScanner(r)}
}

// Next returns the next Event, or io.EOF once the log is exhausted. Blank
// lines are skipped. A malformed line yields a *judgeerr.Error of kind
// judgeerr.OutputFormat.
func (s *Scanner) Next() (Event, error) {
	if s.err != nil {
		return Event{}, s.err
	}
	for s.sc.Scan() {
		s.line++
		line := s.sc.Text()
		if line == "" {
			continue
		}
		ev, err := parseLine(s.line, line)
		if err != nil {
			s.err = err
			return Event{}, err
		}
		return ev, nil
	}
	if err := s.sc.Err(); err != nil {
		s.err = fmt.Errorf("eventlog: reading output: %w", err)
		return Event{}, s.err
	}
	s.err = io.EOF
	return Event{}, io.EOF
}

// Parse parses a single output log line (without a line number), for use by
// callers such as the replay REPL that read one line at a time interactively.
func Parse(line string) (Event, error) {
	return parseLine(0, line)
}

func parseLine(lineNum int, line string) (Event, error) {
	m := linePrefix.FindStringSubmatch(line)
	if m == nil {
		return Event{}, outputErr(lineNum, 0, "malformed line, missing [<timestamp>] prefix: %q", line)
	}
	t, _ := strconv.ParseFloat(m[1], 64)
	body := m[2]

	switch {
	case arriveLine.MatchString(body):
		am := arriveLine.FindStringSubmatch(body)
		f, ok := floor.Parse(am[1])
		if !ok {
			return Event{}, outputErr(lineNum, t, "unknown floor %q", am[1])
		}
		elevator, _ := strconv.Atoi(am[2])
		return Event{Time: t, Kind: Arrive, Line: lineNum, Floor: f, Elevator: elevator}, nil

	case doorLine.MatchString(body):
		dm := doorLine.FindStringSubmatch(body)
		f, ok := floor.Parse(dm[2])
		if !ok {
			return Event{}, outputErr(lineNum, t, "unknown floor %q", dm[2])
		}
		elevator, _ := strconv.Atoi(dm[3])
		kind := Open
		if dm[1] == "CLOSE" {
			kind = Close
		}
		return Event{Time: t, Kind: kind, Line: lineNum, Floor: f, Elevator: elevator}, nil

	case inLine.MatchString(body):
		im := inLine.FindStringSubmatch(body)
		passenger, _ := strconv.Atoi(im[1])
		f, ok := floor.Parse(im[2])
		if !ok {
			return Event{}, outputErr(lineNum, t, "unknown floor %q", im[2])
		}
		elevator, _ := strconv.Atoi(im[3])
		return Event{Time: t, Kind: In, Line: lineNum, Passenger: passenger, Floor: f, Elevator: elevator}, nil

	case outLine.MatchString(body):
		om := outLine.FindStringSubmatch(body)
		passenger, _ := strconv.Atoi(om[2])
		f, ok := floor.Parse(om[3])
		if !ok {
			return Event{}, outputErr(lineNum, t, "unknown floor %q", om[3])
		}
		elevator, _ := strconv.Atoi(om[4])
		return Event{Time: t, Kind: Out, Line: lineNum, Passenger: passenger, Floor: f, Elevator: elevator, Success: om[1] == "S"}, nil

	case receiveLine.MatchString(body):
		rm := receiveLine.FindStringSubmatch(body)
		passenger, _ := strconv.Atoi(rm[1])
		elevator, _ := strconv.Atoi(rm[2])
		return Event{Time: t, Kind: Receive, Line: lineNum, Passenger: passenger, Elevator: elevator}, nil

	case scheAcceptLine.MatchString(body):
		sm := scheAcceptLine.FindStringSubmatch(body)
		elevator, _ := strconv.Atoi(sm[1])
		speed, _ := strconv.ParseFloat(sm[2], 64)
		target, ok := floor.Parse(sm[3])
		if !ok {
			return Event{}, outputErr(lineNum, t, "unknown floor %q", sm[3])
		}
		return Event{Time: t, Kind: ScheAccept, Line: lineNum, Elevator: elevator, Speed: speed, Target: target}, nil

	case scheBeginLine.MatchString(body):
		sm := scheBeginLine.FindStringSubmatch(body)
		elevator, _ := strconv.Atoi(sm[1])
		return Event{Time: t, Kind: ScheBegin, Line: lineNum, Elevator: elevator}, nil

	case scheEndLine.MatchString(body):
		sm := scheEndLine.FindStringSubmatch(body)
		elevator, _ := strconv.Atoi(sm[1])
		return Event{Time: t, Kind: ScheEnd, Line: lineNum, Elevator: elevator}, nil

	case updateAcceptLine.MatchString(body):
		um := updateAcceptLine.FindStringSubmatch(body)
		a, _ := strconv.Atoi(um[1])
		b, _ := strconv.Atoi(um[2])
		target, ok := floor.Parse(um[3])
		if !ok {
			return Event{}, outputErr(lineNum, t, "unknown floor %q", um[3])
		}
		return Event{Time: t, Kind: UpdateAccept, Line: lineNum, A: a, B: b, Target: target}, nil

	case updateBeginLine.MatchString(body):
		um := updateBeginLine.FindStringSubmatch(body)
		a, _ := strconv.Atoi(um[1])
		b, _ := strconv.Atoi(um[2])
		return Event{Time: t, Kind: UpdateBegin, Line: lineNum, A: a, B: b}, nil

	case updateEndLine.MatchString(body):
		um := updateEndLine.FindStringSubmatch(body)
		a, _ := strconv.Atoi(um[1])
		b, _ := strconv.Atoi(um[2])
		return Event{Time: t, Kind: UpdateEnd, Line: lineNum, A: a, B: b}, nil

	default:
		return Event{}, outputErr(lineNum, t, "unrecognised output log line: %q", line)
	}
}

func outputErr(lineNum int, t float64, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	subject := ""
	if lineNum > 0 {
		subject = fmt.Sprintf("line %d", lineNum)
	}
	return judgeerr.New(judgeerr.OutputFormat, t, subject, "%s", msg)
}
