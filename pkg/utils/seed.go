package utils

// Deterministic pseudo-random helpers. The same seed must always reproduce
// the same permutation across processes, so rotation results stay stable for
// a full day or week without any shared state.

const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgMask       = 0x7fffffff
)

// SeededRand is a linear congruential generator with an explicit seed.
// Not suitable for anything requiring randomness quality.
type SeededRand struct {
	seed int64
}

// NewSeededRand creates a generator from the given seed.
func NewSeededRand(seed int64) *SeededRand {
	return &SeededRand{seed: seed & lcgMask}
}

// Float64 returns the next value in [0, 1).
func (r *SeededRand) Float64() float64 {
	r.seed = (r.seed*lcgMultiplier + lcgIncrement) & lcgMask
	return float64(r.seed) / float64(lcgMask)
}

// SeededShuffle returns a new slice with the elements permuted by a
// Fisher-Yates shuffle driven by the seed. The input is not modified.
func SeededShuffle[T any](items []T, seed int64) []T {
	result := make([]T, len(items))
	copy(result, items)

	r := NewSeededRand(seed)
	for i := len(result) - 1; i > 0; i-- {
		j := int(r.Float64() * float64(i+1))
		result[i], result[j] = result[j], result[i]
	}

	return result
}

// DateSeed hashes a date string into a non-negative seed. The 32-bit
// overflow behavior is part of the contract: existing daily selections
// depend on it.
func DateSeed(s string) int64 {
	var hash int32
	for _, c := range s {
		hash = (hash << 5) - hash + int32(c)
	}
	seed := int64(hash)
	if seed < 0 {
		seed = -seed
	}
	return seed
}
