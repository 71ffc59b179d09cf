package solver

import "github.com/bselway/wordmind/game"

// DefaultMaxTurns matches the usual six-guess game.
const DefaultMaxTurns = 6

// GameConfig configures one simulated game.
type GameConfig struct {
	// MaxTurns bounds the number of guesses; <= 0 means DefaultMaxTurns.
	MaxTurns int
	Selector Config
	// Openers maps word length to opening guesses; nil degrades gracefully.
	Openers map[int][]string
}

func DefaultGameConfig() GameConfig {
	return GameConfig{
		MaxTurns: DefaultMaxTurns,
		Selector: DefaultConfig(),
	}
}

// Simulate plays one full game for secret against dict and returns the
// finalized trajectory.
//
// Each turn: select a guess, score it against the secret, record the pair,
// then either stop on a win or shrink the pool to the words consistent with
// the observed feedback. The game ends Won on a matching guess,
// LostEmptyPool when no candidate survives filtering (only possible when the
// secret was never in the initial pool — an upstream data issue, recorded
// rather than raised), or LostExhausted at the turn limit.
//
// Simulate owns every piece of per-game state and is deterministic given its
// inputs, so callers may run many Simulate calls concurrently.
func Simulate(secret string, dict []string, cfg GameConfig) game.Trajectory {
	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	if cfg.Selector == (Config{}) {
		cfg.Selector = DefaultConfig()
	}

	traj := game.Trajectory{Secret: secret, Outcome: game.OutcomePlaying}

	pool := dict
	if len(pool) == 0 {
		traj.Outcome = game.OutcomeLostEmptyPool
		return traj
	}

	dictSet := make(map[string]struct{}, len(dict))
	for _, w := range dict {
		dictSet[w] = struct{}{}
	}
	sel := &Selector{Config: cfg.Selector, Openers: cfg.Openers}

	for turn := 0; ; turn++ {
		guess := sel.Select(pool, dictSet)
		fb := game.Score(guess, secret)
		traj.Records = append(traj.Records, game.GuessRecord{Guess: guess, Feedback: fb})

		if guess == secret {
			traj.Outcome = game.OutcomeWon
			return traj
		}

		pool = Filter(pool, guess, fb)
		if len(pool) == 0 {
			traj.Outcome = game.OutcomeLostEmptyPool
			return traj
		}
		if turn+1 == maxTurns {
			traj.Outcome = game.OutcomeLostExhausted
			return traj
		}
	}
}
