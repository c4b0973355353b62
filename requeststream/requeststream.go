// Package requeststream parses the contestant's input: a deterministic,
// chronologically ordered request stream of passenger, SCHE, and UPDATE
// lines.
package requeststream

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/elevsim/judge/floor"
	"github.com/elevsim/judge/judgeerr"
)

// PassengerRequest is a single passenger's entry into the world, as declared
// by the input stream.
type PassengerRequest struct {
	ID       int
	Priority int
	From, To floor.Index
	Time     float64
}

// ScheduleCommand is a temporary scheduling request (SCHE-<elevator>-<speed>-<floor>).
type ScheduleCommand struct {
	Time     float64
	Elevator int
	Speed    float64
	Target   floor.Index
}

// UpdateCommand is a dual-shaft update request (UPDATE-<a>-<b>-<floor>).
type UpdateCommand struct {
	Time     float64
	A, B     int
	Target   floor.Index
}

// Command is either a *ScheduleCommand or an *UpdateCommand, ordered by
// appearance in the input file (which is itself chronologically ordered).
type Command struct {
	Schedule *ScheduleCommand
	Update   *UpdateCommand
}

// Time returns the command's timestamp, regardless of which variant it is.
func (c Command) Time() float64 {
	if c.Schedule != nil {
		return c.Schedule.Time
	}
	return c.Update.Time
}

// Stream is the parsed result: a passenger roster indexed by id, and the
// ordered table of pending special commands.
type Stream struct {
	Passengers map[int]*PassengerRequest
	Commands   []Command
}

var (
	linePrefix      = regexp.MustCompile(`^\[(\d+\.\d+)\](.*)$`)
	passengerLine   = regexp.MustCompile(`^(\d+)-PRI-(\d+)-FROM-([BF]\d+)-TO-([BF]\d+)$`)
	scheduleLine    = regexp.MustCompile(`^SCHE-(\d+)-(\d+(?:\.\d+)?)-([BF]\d+)$`)
	updateLine      = regexp.MustCompile(`^UPDATE-(\d+)-(\d+)-([BF]\d+)$`)
	allowedSpeeds   = map[float64]bool{0.2: true, 0.3: true, 0.4: true, 0.5: true}
)

// Parse reads a full input file and returns its passenger roster and
// ordered command table. It fails fast with a *judgeerr.Error of kind
// judgeerr.InputFormat on the first malformed, unknown-floor, duplicate-id,
// or out-of-range line.
func Parse(r io.Reader) (*Stream, error) {
	stream := &Stream{Passengers: make(map[int]*PassengerRequest)}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}

		m := linePrefix.FindStringSubmatch(line)
		if m == nil {
			return nil, inputErr(lineNum, 0, "malformed line, missing [<timestamp>] prefix: %q", line)
		}
		t, _ := strconv.ParseFloat(m[1], 64)
		body := m[2]

		switch {
		case passengerLine.MatchString(body):
			pm := passengerLine.FindStringSubmatch(body)
			if err := parsePassenger(stream, lineNum, t, pm); err != nil {
				return nil, err
			}

		case scheduleLine.MatchString(body):
			sm := scheduleLine.FindStringSubmatch(body)
			cmd, err := parseSchedule(lineNum, t, sm)
			if err != nil {
				return nil, err
			}
			stream.Commands = append(stream.Commands, Command{Schedule: cmd})

		case updateLine.MatchString(body):
			um := updateLine.FindStringSubmatch(body)
			cmd, err := parseUpdate(lineNum, t, um)
			if err != nil {
				return nil, err
			}
			stream.Commands = append(stream.Commands, Command{Update: cmd})

		default:
			return nil, inputErr(lineNum, t, "unrecognised request stream line: %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("requeststream: reading input: %w", err)
	}

	return stream, nil
}

func parsePassenger(stream *Stream, lineNum int, t float64, m []string) error {
	id, _ := strconv.Atoi(m[1])
	priority, _ := strconv.Atoi(m[2])
	from, ok := floor.Parse(m[3])
	if !ok {
		return inputErr(lineNum, t, "unknown floor %q", m[3])
	}
	to, ok := floor.Parse(m[4])
	if !ok {
		return inputErr(lineNum, t, "unknown floor %q", m[4])
	}
	if from == to {
		return inputErr(lineNum, t, "passenger %d has identical FROM/TO floor %q", id, m[3])
	}
	if priority < 1 {
		return inputErr(lineNum, t, "passenger %d priority must be >= 1, got %d", id, priority)
	}
	if _, dup := stream.Passengers[id]; dup {
		return inputErr(lineNum, t, "duplicate passenger id %d", id)
	}

	stream.Passengers[id] = &PassengerRequest{
		ID:       id,
		Priority: priority,
		From:     from,
		To:       to,
		Time:     t,
	}
	return nil
}

func parseSchedule(lineNum int, t float64, m []string) (*ScheduleCommand, error) {
	elevator, _ := strconv.Atoi(m[1])
	speed, _ := strconv.ParseFloat(m[2], 64)
	if elevator < 1 || elevator > 6 {
		return nil, inputErr(lineNum, t, "SCHE elevator id %d out of range [1-6]", elevator)
	}
	if !allowedSpeeds[speed] {
		return nil, inputErr(lineNum, t, "SCHE speed %v not in {0.2, 0.3, 0.4, 0.5}", speed)
	}
	if !floor.IsSCHETarget(m[3]) {
		return nil, inputErr(lineNum, t, "SCHE target floor %q not in {B2,B1,F1..F5}", m[3])
	}
	target, _ := floor.Parse(m[3])
	return &ScheduleCommand{Time: t, Elevator: elevator, Speed: speed, Target: target}, nil
}

func parseUpdate(lineNum int, t float64, m []string) (*UpdateCommand, error) {
	a, _ := strconv.Atoi(m[1])
	b, _ := strconv.Atoi(m[2])
	if a < 1 || a > 6 || b < 1 || b > 6 {
		return nil, inputErr(lineNum, t, "UPDATE elevator ids (%d,%d) out of range [1-6]", a, b)
	}
	if a == b {
		return nil, inputErr(lineNum, t, "UPDATE elevator ids must differ, got %d twice", a)
	}
	if !floor.IsSCHETarget(m[3]) {
		return nil, inputErr(lineNum, t, "UPDATE target floor %q not in {B2,B1,F1..F5}", m[3])
	}
	target, _ := floor.Parse(m[3])
	return &UpdateCommand{Time: t, A: a, B: b, Target: target}, nil
}

func inputErr(lineNum int, t float64, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return judgeerr.New(judgeerr.InputFormat, t, fmt.Sprintf("line %d", lineNum), "%s", msg)
}
