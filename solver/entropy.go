package solver

import (
	"math"

	"github.com/bselway/wordmind/game"
)

// Entropy scores guess by the expected information gain (Shannon entropy,
// base 2) of the feedback partition it induces on pool.
//
// Partition the pool into buckets keyed by the feedback each candidate would
// produce; entropy is -Σ p·log2(p) over bucket proportions. Zero means the
// guess cannot discriminate at all (one bucket); log2(|pool|) means every
// candidate lands in its own bucket. Entropy of an empty pool is zero.
func Entropy(guess string, pool []string) float64 {
	if len(pool) == 0 {
		return 0
	}

	buckets := make(map[string]int)
	for _, candidate := range pool {
		buckets[game.Score(guess, candidate).Key()]++
	}

	total := float64(len(pool))
	var h float64
	for _, n := range buckets {
		p := float64(n) / total
		h -= p * math.Log2(p)
	}
	return h
}
