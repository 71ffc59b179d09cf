package solver

import (
	"testing"

	"github.com/bselway/wordmind/game"
)

func logTrajectory(t *testing.T, traj game.Trajectory) {
	t.Helper()
	t.Logf("secret=%q outcome=%s turns=%d", traj.Secret, traj.Outcome, traj.Turns())
	for i, r := range traj.Records {
		t.Logf("  turn %d: %s -> %s", i+1, r.Guess, r.Feedback.Key())
	}
}

func TestSimulate_DirectHitWinsOnTurnOne(t *testing.T) {
	traj := Simulate("crate", []string{"crate"}, DefaultGameConfig())
	logTrajectory(t, traj)

	if traj.Outcome != game.OutcomeWon {
		t.Fatalf("outcome = %s want won", traj.Outcome)
	}
	if traj.Turns() != 1 {
		t.Fatalf("turns = %d want 1", traj.Turns())
	}
	if !traj.Records[0].Feedback.AllCorrect() {
		t.Fatalf("feedback = %s want all correct", traj.Records[0].Feedback.Key())
	}
}

func TestSimulate_SingleWordDictionaryWinsRegardlessOfTurnLimit(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.MaxTurns = 1
	traj := Simulate("crate", []string{"crate"}, cfg)
	if traj.Outcome != game.OutcomeWon || traj.Turns() != 1 {
		t.Fatalf("outcome=%s turns=%d want won in 1", traj.Outcome, traj.Turns())
	}
}

func TestSimulate_TwoCandidatePoolWinsWithinTwoTurns(t *testing.T) {
	dict := []string{"abcde", "edcba"}
	for _, secret := range dict {
		traj := Simulate(secret, dict, DefaultGameConfig())
		logTrajectory(t, traj)

		if traj.Outcome != game.OutcomeWon {
			t.Fatalf("secret %q: outcome = %s want won", secret, traj.Outcome)
		}
		if traj.Turns() > 2 {
			t.Fatalf("secret %q: turns = %d want <= 2", secret, traj.Turns())
		}
		// The selector must open with a pool member at |pool| == 2.
		if traj.Records[0].Guess != "abcde" {
			t.Fatalf("secret %q: first guess = %q want abcde", secret, traj.Records[0].Guess)
		}
	}
}

func TestSimulate_SecretOutsidePoolLosesOnEmptyPool(t *testing.T) {
	traj := Simulate("ccccc", []string{"aaaaa", "bbbbb"}, DefaultGameConfig())
	logTrajectory(t, traj)

	if traj.Outcome != game.OutcomeLostEmptyPool {
		t.Fatalf("outcome = %s want lost_empty_pool", traj.Outcome)
	}
	if traj.Turns() == 0 {
		t.Fatalf("expected at least one recorded guess before the pool emptied")
	}
}

func TestSimulate_EmptyDictionaryIsEmptyPoolLoss(t *testing.T) {
	traj := Simulate("crate", nil, DefaultGameConfig())
	if traj.Outcome != game.OutcomeLostEmptyPool {
		t.Fatalf("outcome = %s want lost_empty_pool", traj.Outcome)
	}
	if traj.Turns() != 0 {
		t.Fatalf("turns = %d want 0", traj.Turns())
	}
}

func TestSimulate_TurnLimitLossIsExhausted(t *testing.T) {
	// Three symmetric candidates: the selector ties on the first pool
	// word, which is not the secret, so a one-turn game must run out.
	cfg := DefaultGameConfig()
	cfg.MaxTurns = 1
	traj := Simulate("ccccc", []string{"aaaaa", "bbbbb", "ccccc"}, cfg)
	logTrajectory(t, traj)

	if traj.Outcome != game.OutcomeLostExhausted {
		t.Fatalf("outcome = %s want lost_exhausted", traj.Outcome)
	}
	if traj.Turns() != 1 {
		t.Fatalf("turns = %d want 1", traj.Turns())
	}
	if traj.Records[0].Guess == traj.Secret {
		t.Fatalf("guessed the secret %q yet lost", traj.Secret)
	}
}

func TestSimulate_AlwaysTerminatesWithinTurnLimit(t *testing.T) {
	dict := []string{
		"crate", "trace", "crane", "slate", "arose", "brine", "spare",
		"geese", "those", "label", "llama", "eerie", "pride", "prism",
		"quilt", "vapor", "wharf", "blitz", "gumbo", "fjord",
	}

	for _, secret := range dict {
		traj := Simulate(secret, dict, DefaultGameConfig())

		if !traj.Outcome.Terminal() {
			t.Fatalf("secret %q: non-terminal outcome %s", secret, traj.Outcome)
		}
		if traj.Turns() > DefaultMaxTurns {
			t.Fatalf("secret %q: %d turns exceeds limit %d", secret, traj.Turns(), DefaultMaxTurns)
		}
		// True-candidate retention: a secret drawn from the pool can
		// never be filtered out, so an empty-pool loss is impossible.
		if traj.Outcome == game.OutcomeLostEmptyPool {
			t.Fatalf("secret %q: empty pool despite secret in dictionary", secret)
		}
		if traj.Won() && traj.Records[traj.Turns()-1].Guess != secret {
			t.Fatalf("secret %q: won but last guess was %q", secret, traj.Records[traj.Turns()-1].Guess)
		}
		for i, r := range traj.Records {
			if len(r.Guess) != len(secret) || len(r.Feedback) != len(secret) {
				t.Fatalf("secret %q turn %d: length invariant broken (guess=%q fb=%d)",
					secret, i+1, r.Guess, len(r.Feedback))
			}
		}
	}
}

func TestSimulate_DeterministicForIdenticalInputs(t *testing.T) {
	dict := []string{
		"crate", "trace", "crane", "slate", "arose", "brine", "spare",
		"geese", "those", "label",
	}
	cfg := DefaultGameConfig()
	cfg.Openers = map[int][]string{5: {"arose", "slate", "crane"}}

	a := Simulate("label", dict, cfg)
	b := Simulate("label", dict, cfg)
	if a.Outcome != b.Outcome || a.Turns() != b.Turns() {
		t.Fatalf("non-deterministic simulation: %s/%d vs %s/%d",
			a.Outcome, a.Turns(), b.Outcome, b.Turns())
	}
	for i := range a.Records {
		if a.Records[i].Guess != b.Records[i].Guess {
			t.Fatalf("turn %d differs: %q vs %q", i+1, a.Records[i].Guess, b.Records[i].Guess)
		}
	}
}
