package harmonic

import (
	"math/rand/v2"
	"time"
)

// Source yields uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a deterministic source for the given seed
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Random draws every level independently from 0-127. A nil src gets a fresh
// time seeded generator so concurrent calls never share state.
func Random(src Source) Levels {
	if src == nil {
		src = NewSource(uint64(time.Now().UnixNano()))
	}
	var levels Levels
	for i := range levels {
		levels[i] = uint8(src.IntN(MaxLevel + 1))
	}
	return levels
}
