package judgelog_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/elevsim/judge/eventlog"
	"github.com/elevsim/judge/judgelog"
	"github.com/stretchr/testify/assert"
)

func TestAppliedWritesDebugLine(t *testing.T) {
	var buf bytes.Buffer
	l := judgelog.New(&buf)

	l.Applied(eventlog.Event{Kind: eventlog.Arrive, Time: 1.4, Line: 2})

	out := buf.String()
	assert.Contains(t, out, `"lvl":"debug"`)
	assert.Contains(t, out, `"kind":"ARRIVE"`)
	assert.Contains(t, out, `"time":1.4`)
}

func TestFailedWritesErrorLineWithCause(t *testing.T) {
	var buf bytes.Buffer
	l := judgelog.New(&buf)

	l.Failed(eventlog.Event{Kind: eventlog.Open, Time: 2.2, Line: 5}, errors.New("door already open"))

	out := buf.String()
	assert.Contains(t, out, `"lvl":"err"`)
	assert.Contains(t, out, `"kind":"OPEN"`)
	assert.Contains(t, out, "door already open")
}

func TestLogsOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	l := judgelog.New(&buf)

	l.Applied(eventlog.Event{Kind: eventlog.Close, Time: 1.0, Line: 1})
	l.Applied(eventlog.Event{Kind: eventlog.Close, Time: 1.5, Line: 2})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
}
