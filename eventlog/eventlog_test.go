package eventlog_test

import (
	"strings"
	"testing"

	"github.com/elevsim/judge/eventlog"
	"github.com/elevsim/judge/floor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerParsesAllKinds(t *testing.T) {
	in := strings.Join([]string{
		"[1.0]ARRIVE-F2-1",
		"[1.4]OPEN-F2-1",
		"[1.5]IN-3-F2-1",
		"[1.9]CLOSE-F2-1",
		"[2.0]RECEIVE-3-1",
		"[3.0]SCHE-ACCEPT-1-0.3-F3",
		"[5.0]SCHE-BEGIN-1",
		"[6.2]SCHE-END-1",
		"[7.0]UPDATE-ACCEPT-1-2-F4",
		"[8.0]UPDATE-BEGIN-1-2",
		"[9.0]UPDATE-END-1-2",
		"[9.1]OUT-S-3-F2-1",
		"",
	}, "\n")

	sc := eventlog.NewScanner(strings.NewReader(in))
	var got []eventlog.Event
	for {
		ev, err := sc.Next()
		if err != nil {
			break
		}
		got = append(got, ev)
	}
	require.Len(t, got, 12)
	assert.Equal(t, eventlog.Arrive, got[0].Kind)
	assert.Equal(t, floor.MustParse("F2"), got[0].Floor)
	assert.Equal(t, eventlog.Open, got[1].Kind)
	assert.Equal(t, eventlog.In, got[2].Kind)
	assert.Equal(t, 3, got[2].Passenger)
	assert.Equal(t, eventlog.ScheAccept, got[5].Kind)
	assert.Equal(t, 0.3, got[5].Speed)
	assert.Equal(t, eventlog.UpdateAccept, got[8].Kind)
	assert.Equal(t, 1, got[8].A)
	assert.Equal(t, 2, got[8].B)
	assert.Equal(t, eventlog.Out, got[11].Kind)
	assert.Equal(t, 3, got[11].Passenger)
	assert.True(t, got[11].Success)
}

func TestParseOutCapturesFailureFlag(t *testing.T) {
	ev, err := eventlog.Parse("[2.0]OUT-F-1-F3-2")
	require.NoError(t, err)
	assert.Equal(t, eventlog.Out, ev.Kind)
	assert.False(t, ev.Success)
	assert.Equal(t, 1, ev.Passenger)
	assert.Equal(t, 2, ev.Elevator)
}

func TestParseRejectsMalformedLine(t *testing.T) {
	_, err := eventlog.Parse("garbage")
	require.Error(t, err)
}

func TestParseRejectsUnknownKind(t *testing.T) {
	_, err := eventlog.Parse("[1.0]TELEPORT-1")
	require.Error(t, err)
}

func TestParseRejectsUnknownFloor(t *testing.T) {
	_, err := eventlog.Parse("[1.0]ARRIVE-F9-1")
	require.Error(t, err)
}
