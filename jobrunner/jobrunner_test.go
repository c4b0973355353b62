package jobrunner_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/elevsim/judge/eventlog"
	"github.com/elevsim/judge/jobrunner"
	"github.com/elevsim/judge/requeststream"
	"github.com/elevsim/judge/worldstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleCompletesCleanRun(t *testing.T) {
	stream, err := requeststream.Parse(strings.NewReader("[1.0]1-PRI-1-FROM-F1-TO-F2\n"))
	require.NoError(t, err)
	world := worldstate.New(stream)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sc := eventlog.NewScanner(strings.NewReader(log))
	h := jobrunner.Start(ctx, sc, world)

	var final jobrunner.Snapshot
	for {
		snaps, err := h.Wait(ctx, nil)
		require.NoError(t, err)
		for _, s := range snaps {
			final = s
		}
		if final.Done {
			break
		}
	}
	assert.True(t, final.Done)
	assert.NoError(t, final.Err)
	assert.Equal(t, 8, final.Processed)
}

func TestHandleSurfacesValidationError(t *testing.T) {
	stream, err := requeststream.Parse(strings.NewReader(""))
	require.NoError(t, err)
	world := worldstate.New(stream)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sc := eventlog.NewScanner(strings.NewReader("[0.1]ARRIVE-F2-1\n"))
	h := jobrunner.Start(ctx, sc, world)

	var final jobrunner.Snapshot
	for {
		snaps, err := h.Wait(ctx, nil)
		require.NoError(t, err)
		for _, s := range snaps {
			final = s
		}
		if final.Done {
			break
		}
	}
	assert.True(t, final.Done)
	assert.Error(t, final.Err)
}
