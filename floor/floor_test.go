package floor_test

import (
	"testing"

	"github.com/elevsim/judge/floor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	idx, ok := floor.Parse("F1")
	require.True(t, ok)
	assert.Equal(t, floor.MustParse("F1"), idx)

	_, ok = floor.Parse("B5")
	assert.False(t, ok)

	_, ok = floor.Parse("F8")
	assert.False(t, ok)
}

func TestStringRoundTrip(t *testing.T) {
	for _, name := range []string{"B4", "B3", "B2", "B1", "F1", "F2", "F3", "F4", "F5", "F6", "F7"} {
		idx, ok := floor.Parse(name)
		require.True(t, ok, name)
		assert.Equal(t, name, idx.String())
	}
}

func TestAdjacent(t *testing.T) {
	b1 := floor.MustParse("B1")
	f1 := floor.MustParse("F1")
	assert.True(t, floor.Adjacent(b1, f1), "B1 and F1 are adjacent, there is no floor 0")

	b2 := floor.MustParse("B2")
	assert.False(t, floor.Adjacent(b2, f1))
}

func TestIsSCHETarget(t *testing.T) {
	assert.True(t, floor.IsSCHETarget("F5"))
	assert.False(t, floor.IsSCHETarget("F6"))
	assert.False(t, floor.IsSCHETarget("B4"))
}

func TestRangeContains(t *testing.T) {
	r := floor.Range{Min: floor.MustParse("B1"), Max: floor.MustParse("F3")}
	assert.True(t, r.Contains(floor.MustParse("F1")))
	assert.False(t, r.Contains(floor.MustParse("B2")))
	assert.False(t, r.Contains(floor.MustParse("F4")))
}
