// Package replay provides an interactive, line-at-a-time walk through an
// output log against a fresh world state, for a human debugging a
// contestant's submission. It is a developer aid only: its verdicts are
// never consulted to decide Accepted/Validation Error, and its exit code
// carries no meaning.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/elevsim/judge/eventlog"
	"github.com/elevsim/judge/worldstate"
)

// Session applies output-log lines, one at a time, to world and reports
// what happened after each.
type Session struct {
	world    *worldstate.World
	out      io.Writer
	history  []string
	finalErr error
}

// New starts a Session over world, writing a running commentary to out.
func New(world *worldstate.World, out io.Writer) *Session {
	return &Session{
		world: world,
		out:   out,
	}
}

// Apply parses line as one output-log event and applies it to the world
// state, reporting the outcome. A parse failure never touches world.
func (s *Session) Apply(line string) error {
	ev, err := eventlog.Parse(line)
	if err != nil {
		s.finalErr = err
		fmt.Fprintf(s.out, "malformed line: %v\n", err)
		return err
	}
	if err := s.world.Apply(ev); err != nil {
		s.finalErr = err
		fmt.Fprintf(s.out, "[%.1f] %-14s REJECTED: %v\n", ev.Time, ev.Kind, err)
		return err
	}
	s.finalErr = nil
	fmt.Fprintf(s.out, "[%.1f] %-14s ok\n", ev.Time, ev.Kind)
	return nil
}

// Err returns the error from the most recently applied line, or nil if it
// was accepted.
func (s *Session) Err() error {
	return s.finalErr
}

// History returns every line the user has entered via Run, in order.
func (s *Session) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// commands recognised by Run; anything else is parsed as an output-log line.
const (
	cmdQuit    = "q"
	cmdQuitAlt = "quit"
	cmdHistory = "history"
)

// Run reads lines from in, one per prompt: "q"/"quit" exits, "history"
// lists every line entered so far, a blank line is ignored, and anything
// else is applied via Apply. Runs until the user quits or in is exhausted.
func (s *Session) Run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "(replay) ")
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		s.history = append(s.history, line)

		switch line {
		case cmdQuit, cmdQuitAlt:
			return nil
		case cmdHistory:
			for i, c := range s.history {
				fmt.Fprintf(s.out, "  %d: %s\n", i, c)
			}
			continue
		}

		s.Apply(line)
	}
}
