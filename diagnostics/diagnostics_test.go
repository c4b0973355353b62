package diagnostics_test

import (
	"testing"

	"github.com/elevsim/judge/diagnostics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarnRecordsMessage(t *testing.T) {
	s := diagnostics.NewSink()
	s.Warn(diagnostics.ClockSkew, "passenger %d completed before request time %.1f", 3, 5.0)
	warnings := s.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "clock-skew")
	assert.Contains(t, warnings[0], "passenger 3")
}

func TestWarnRateLimitsFlood(t *testing.T) {
	s := diagnostics.NewSink()
	for i := 0; i < 50; i++ {
		s.Warn(diagnostics.DuplicateEvent, "flood %d", i)
	}
	// The per-second cap is well under 50; some must have been dropped.
	assert.Less(t, len(s.Warnings()), 50)
}
