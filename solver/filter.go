// Package solver implements the entropy-driven guess engine: candidate
// filtering, information-gain scoring, guess selection, and the per-game
// simulation loop.
//
// Every function here is deterministic given its inputs. A single game owns
// all of its state, so batches of games are safe to run on independent
// goroutines with no coordination.
package solver

import "github.com/bselway/wordmind/game"

// Filter returns the members of pool that are consistent with observing fb
// for guess, i.e. the words w for which game.Score(guess, w) == fb.
//
// It always allocates a fresh slice; pools are replaced each turn, never
// mutated, so earlier turns stay inspectable. An empty result is a legal
// value, not an error — the simulator decides what it means.
func Filter(pool []string, guess string, fb game.Feedback) []string {
	out := make([]string, 0, len(pool))
	for _, w := range pool {
		if game.Score(guess, w).Equal(fb) {
			out = append(out, w)
		}
	}
	return out
}
