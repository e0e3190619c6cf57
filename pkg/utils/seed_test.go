package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededRandFloat64(t *testing.T) {
	r := NewSeededRand(1)

	assert.InDelta(t, 0.5138700783782965, r.Float64(), 1e-12)
	assert.InDelta(t, 0.17574130332830423, r.Float64(), 1e-12)
	assert.InDelta(t, 0.3086515163577402, r.Float64(), 1e-12)
}

func TestSeededRandFloat64Range(t *testing.T) {
	r := NewSeededRand(987654321)
	for i := 0; i < 1000; i++ {
		v := r.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestSeededShuffleKnownPermutation(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}

	assert.Equal(t, []int{8, 6, 1, 2, 7, 3, 4, 5}, SeededShuffle(items, 42))
	assert.Equal(t, []int{7, 4, 1, 5, 6, 3, 2, 8}, SeededShuffle(items, 202534))
}

func TestSeededShuffleStable(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f"}

	first := SeededShuffle(items, 77)
	second := SeededShuffle(items, 77)
	assert.Equal(t, first, second)
}

func TestSeededShuffleDoesNotMutateInput(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	out := SeededShuffle(items, 42)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items)
	assert.ElementsMatch(t, items, out)
}

func TestSeededShuffleEmpty(t *testing.T) {
	assert.Empty(t, SeededShuffle([]int{}, 1))
	assert.Equal(t, []int{9}, SeededShuffle([]int{9}, 1))
}

func TestDateSeed(t *testing.T) {
	// Values locked to the 32-bit string hash used by the daily rotation.
	assert.Equal(t, int64(3105), DateSeed("ab"))
	assert.Equal(t, int64(274400377), DateSeed("2025-09-01"))
	assert.Equal(t, int64(613311771), DateSeed("2024-02-29"))
}

func TestDateSeedNonNegative(t *testing.T) {
	dates := []string{"2023-01-01", "2024-06-15", "2025-12-31", "1999-09-09"}
	for _, d := range dates {
		require.GreaterOrEqual(t, DateSeed(d), int64(0), d)
	}
}

func TestDateSeedDeterministic(t *testing.T) {
	assert.Equal(t, DateSeed("2025-03-14"), DateSeed("2025-03-14"))
	assert.NotEqual(t, DateSeed("2025-03-14"), DateSeed("2025-03-15"))
}
