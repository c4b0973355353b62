package scorer_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elevsim/judge/diagnostics"
	"github.com/elevsim/judge/requeststream"
	"github.com/elevsim/judge/scorer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreCleanDelivery(t *testing.T) {
	stream, err := requeststream.Parse(strings.NewReader("[1.0]1-PRI-1-FROM-F1-TO-F2\n"))
	require.NoError(t, err)

	log := strings.Join([]string{
		"[1.0]RECEIVE-1-1",
		"[1.0]OPEN-F1-1",
		"[1.1]IN-1-F1-1",
		"[1.4]CLOSE-F1-1",
		"[1.8]ARRIVE-F2-1",
		"[1.8]OPEN-F2-1",
		"[2.2]OUT-S-1-F2-1",
		"[2.2]CLOSE-F2-1",
	}, "\n")

	r, err := scorer.Score("case1", stream, strings.NewReader(log), -1, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.2, r.TMaxScore, 1e-9)
	assert.InDelta(t, 1.2, r.WT, 1e-9)
	assert.InDelta(t, 0.8, r.W(), 1e-9)
	assert.Equal(t, "1/1", r.Completed())
}

func TestScoreIncompleteYieldsInfiniteWT(t *testing.T) {
	stream, err := requeststream.Parse(strings.NewReader("[1.0]1-PRI-1-FROM-F1-TO-F2\n"))
	require.NoError(t, err)

	r, err := scorer.Score("case2", stream, strings.NewReader(""), -1, nil)
	require.NoError(t, err)
	assert.True(t, math.IsInf(r.WT, 1))
	assert.Equal(t, "0/1", r.Completed())
}

func TestScoreWallClockDominates(t *testing.T) {
	stream, err := requeststream.Parse(strings.NewReader(""))
	require.NoError(t, err)

	r, err := scorer.Score("case3", stream, strings.NewReader("[1.0]ARRIVE-F2-1\n"), 99.9, nil)
	require.NoError(t, err)
	assert.InDelta(t, 99.9, r.TMaxScore, 1e-9)
}

func TestAppendCSVWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.csv")

	stream, err := requeststream.Parse(strings.NewReader(""))
	require.NoError(t, err)
	r, err := scorer.Score("case4", stream, strings.NewReader(""), -1, nil)
	require.NoError(t, err)

	require.NoError(t, scorer.AppendCSV(path, r))
	require.NoError(t, scorer.AppendCSV(path, r))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(contents), "\n"), "\n")
	require.Len(t, lines, 3) // header + two rows
	assert.Equal(t, "case,T_max,WT,W,arrive_count,open_count,close_count,completed_passengers", lines[0])
}

func TestScoreWarnsOnClockSkew(t *testing.T) {
	stream, err := requeststream.Parse(strings.NewReader("[5.0]1-PRI-1-FROM-F1-TO-F2\n"))
	require.NoError(t, err)

	// A completion timestamp earlier than the request timestamp can only
	// arise from clock skew in the contestant's log; it's a warning, not a
	// validation failure, so Score must still succeed.
	log := "[4.0]OUT-S-1-F2-1\n"
	sink := diagnostics.NewSink()
	_, err = scorer.Score("case5", stream, strings.NewReader(log), -1, sink)
	require.NoError(t, err)
	require.Len(t, sink.Warnings(), 1)
	assert.Contains(t, sink.Warnings()[0], "clock-skew")
}

func TestCaseNameFromPath(t *testing.T) {
	assert.Equal(t, "suite/run3", scorer.CaseName("suite/run3/output.txt"))
}
