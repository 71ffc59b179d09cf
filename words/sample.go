package words

import "math/rand"

// Sample returns n words drawn without replacement from list, using the
// given seed. The input is never mutated and the result is deterministic
// for identical inputs — randomness lives here, at the batch boundary, so
// the solver itself stays seed-free and testable.
//
// If n is zero or negative, or at least len(list), a copy of the whole list
// is returned.
func Sample(list []string, n int, seed int64) []string {
	if n <= 0 || n >= len(list) {
		out := make([]string, len(list))
		copy(out, list)
		return out
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(list))

	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = list[perm[i]]
	}
	return out
}
