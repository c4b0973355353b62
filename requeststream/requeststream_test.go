package requeststream_test

import (
	"strings"
	"testing"

	"github.com/elevsim/judge/floor"
	"github.com/elevsim/judge/judgeerr"
	"github.com/elevsim/judge/requeststream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicPassenger(t *testing.T) {
	in := "[1.0]1-PRI-1-FROM-F1-TO-F2\n"
	stream, err := requeststream.Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, stream.Passengers, 1)
	p := stream.Passengers[1]
	assert.Equal(t, 1, p.Priority)
	assert.Equal(t, floor.MustParse("F1"), p.From)
	assert.Equal(t, floor.MustParse("F2"), p.To)
	assert.Equal(t, 1.0, p.Time)
}

func TestParseScheduleAndUpdate(t *testing.T) {
	in := "[2.0]SCHE-1-0.2-F3\n[3.0]UPDATE-1-2-F3\n"
	stream, err := requeststream.Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, stream.Commands, 2)
	require.NotNil(t, stream.Commands[0].Schedule)
	assert.Equal(t, 1, stream.Commands[0].Schedule.Elevator)
	assert.Equal(t, 0.2, stream.Commands[0].Schedule.Speed)
	require.NotNil(t, stream.Commands[1].Update)
	assert.Equal(t, 1, stream.Commands[1].Update.A)
	assert.Equal(t, 2, stream.Commands[1].Update.B)
}

func TestParseRejectsSameFloor(t *testing.T) {
	_, err := requeststream.Parse(strings.NewReader("[1.0]1-PRI-1-FROM-F1-TO-F1\n"))
	require.Error(t, err)
	var jerr *judgeerr.Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, judgeerr.InputFormat, jerr.Kind)
}

func TestParseRejectsDuplicateID(t *testing.T) {
	in := "[1.0]1-PRI-1-FROM-F1-TO-F2\n[1.5]1-PRI-1-FROM-B1-TO-F3\n"
	_, err := requeststream.Parse(strings.NewReader(in))
	require.Error(t, err)
}

func TestParseRejectsBadSpeed(t *testing.T) {
	_, err := requeststream.Parse(strings.NewReader("[1.0]SCHE-1-0.6-F3\n"))
	require.Error(t, err)
}

func TestParseRejectsUnknownFloor(t *testing.T) {
	_, err := requeststream.Parse(strings.NewReader("[1.0]1-PRI-1-FROM-F1-TO-F8\n"))
	require.Error(t, err)
}

func TestParseRejectsMalformedLine(t *testing.T) {
	_, err := requeststream.Parse(strings.NewReader("not a request\n"))
	require.Error(t, err)
}
