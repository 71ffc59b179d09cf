package solver

import (
	"math"
	"testing"

	"github.com/bselway/wordmind/game"
)

func toSet(words []string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

var testPool = []string{
	"crate", "trace", "crane", "slate", "arose", "brine",
	"geese", "those", "label", "llama", "eerie", "spare",
}

func TestFilter_MonotonicShrinkageAndIdempotence(t *testing.T) {
	for _, guess := range testPool {
		for _, secret := range testPool {
			fb := game.Score(guess, secret)

			once := Filter(testPool, guess, fb)
			if len(once) > len(testPool) {
				t.Fatalf("filter grew the pool: %d -> %d", len(testPool), len(once))
			}

			twice := Filter(once, guess, fb)
			if len(twice) != len(once) {
				t.Fatalf("filter not idempotent for guess=%q secret=%q: %d -> %d",
					guess, secret, len(once), len(twice))
			}
			for i := range once {
				if once[i] != twice[i] {
					t.Fatalf("filter not idempotent: %v vs %v", once, twice)
				}
			}
		}
	}
}

func TestFilter_TrueCandidateRetention(t *testing.T) {
	// The secret is consistent with its own feedback, so it must survive
	// filtering on any guess.
	for _, guess := range testPool {
		for _, secret := range testPool {
			fb := game.Score(guess, secret)
			kept := Filter(testPool, guess, fb)
			found := false
			for _, w := range kept {
				if w == secret {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("secret %q filtered out by guess %q (fb=%s)", secret, guess, fb.Key())
			}
		}
	}
}

func TestFilter_EmptyResultIsLegal(t *testing.T) {
	// All-correct feedback for a word outside the pool matches nothing.
	fb := game.Score("vwxyz", "vwxyz")
	got := Filter([]string{"crate", "slate"}, "vwxyz", fb)
	if len(got) != 0 {
		t.Fatalf("expected empty pool, got %v", got)
	}
}

func TestEntropy_EmptyPoolIsZero(t *testing.T) {
	if h := Entropy("crate", nil); h != 0 {
		t.Fatalf("entropy of empty pool = %v want 0", h)
	}
}

func TestEntropy_ZeroIffSingleBucket(t *testing.T) {
	// "pygmy" shares no letters with either word: one all-absent bucket.
	pool := []string{"crate", "brine"}
	if h := Entropy("pygmy", pool); h != 0 {
		t.Fatalf("non-discriminating guess entropy = %v want 0", h)
	}
	// "crate" splits them, so entropy must be positive.
	if h := Entropy("crate", pool); h <= 0 {
		t.Fatalf("discriminating guess entropy = %v want > 0", h)
	}
}

func TestEntropy_MaximalWhenAllPatternsDistinct(t *testing.T) {
	// crate vs each: ccccc, pccpc, cpppp — three distinct buckets.
	pool := []string{"crate", "trace", "caret"}
	got := Entropy("crate", pool)
	want := math.Log2(float64(len(pool)))
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("entropy = %v want log2(%d) = %v", got, len(pool), want)
	}
}

func TestEntropy_BoundedByLog2PoolSize(t *testing.T) {
	for _, guess := range testPool {
		h := Entropy(guess, testPool)
		if h < 0 {
			t.Fatalf("entropy(%q) = %v < 0", guess, h)
		}
		if limit := math.Log2(float64(len(testPool))); h > limit+1e-12 {
			t.Fatalf("entropy(%q) = %v exceeds log2(%d) = %v", guess, h, len(testPool), limit)
		}
	}
}

func TestSelector_SinglePoolMemberIsReturned(t *testing.T) {
	sel := &Selector{Config: DefaultConfig()}
	if got := sel.Select([]string{"crate"}, toSet([]string{"crate"})); got != "crate" {
		t.Fatalf("got %q want crate", got)
	}
}

func TestSelector_PairReturnsFirstMember(t *testing.T) {
	sel := &Selector{Config: DefaultConfig()}
	pool := []string{"abcde", "edcba"}
	if got := sel.Select(pool, toSet(pool)); got != "abcde" {
		t.Fatalf("got %q want abcde", got)
	}
}

func TestSelector_TiesResolveToFirstEvaluated(t *testing.T) {
	// Every member scores identically against this pool (one correct
	// bucket, one all-absent bucket), so the first must win.
	pool := []string{"aaaaa", "bbbbb", "ccccc", "ddddd"}
	sel := &Selector{Config: DefaultConfig()}
	if got := sel.Select(pool, toSet(pool)); got != "aaaaa" {
		t.Fatalf("got %q want aaaaa", got)
	}
}

// tightConfig forces the opener path on tiny pools so the tests stay small:
// one pool word in the evaluation set, openers join above two candidates.
func tightConfig(bonus float64) Config {
	return Config{
		SmallPool:      1,
		PoolPrefix:     1,
		LargePool:      2,
		EvalCap:        10,
		CandidateBonus: bonus,
	}
}

func TestSelector_HigherEntropyOpenerWinsWithoutBonus(t *testing.T) {
	pool := []string{"aaaaa", "bbbbb", "ccccc"}
	dict := toSet(append([]string{"bbbcc"}, pool...))

	// "bbbcc" separates all three candidates (entropy log2 3); the pool
	// prefix word "aaaaa" only splits off itself.
	sel := &Selector{
		Config:  tightConfig(0),
		Openers: map[int][]string{5: {"bbbcc"}},
	}
	if got := sel.Select(pool, dict); got != "bbbcc" {
		t.Fatalf("got %q want bbbcc", got)
	}
}

func TestSelector_CandidateBonusPrefersPoolMembers(t *testing.T) {
	pool := []string{"aaaaa", "bbbbb", "ccccc"}
	dict := toSet(append([]string{"bbbcc"}, pool...))

	// A large bonus outweighs the opener's entropy edge: a guess that can
	// win now beats a pure probe.
	sel := &Selector{
		Config:  tightConfig(10),
		Openers: map[int][]string{5: {"bbbcc"}},
	}
	if got := sel.Select(pool, dict); got != "aaaaa" {
		t.Fatalf("got %q want aaaaa", got)
	}
}

func TestSelector_OpenersOutsideDictionaryAreSkipped(t *testing.T) {
	pool := []string{"aaaaa", "bbbbb", "ccccc"}
	sel := &Selector{
		Config:  tightConfig(0),
		Openers: map[int][]string{5: {"bbbcc"}},
	}
	// Dictionary lacks the opener, so only the pool prefix is evaluated.
	if got := sel.Select(pool, toSet(pool)); got != "aaaaa" {
		t.Fatalf("got %q want aaaaa", got)
	}
}

func TestSelector_NilOpenerTableDegradesGracefully(t *testing.T) {
	pool := []string{"aaaaa", "bbbbb", "ccccc"}
	sel := &Selector{Config: tightConfig(0)}
	if got := sel.Select(pool, toSet(pool)); got != "aaaaa" {
		t.Fatalf("got %q want aaaaa", got)
	}
}

func TestSelector_OpenersIgnoredBelowLargePool(t *testing.T) {
	pool := []string{"aaaaa", "bbbbb", "ccccc"}
	cfg := tightConfig(0)
	cfg.LargePool = 50
	sel := &Selector{
		Config:  cfg,
		Openers: map[int][]string{5: {"bbbcc"}},
	}
	dict := toSet(append([]string{"bbbcc"}, pool...))
	if got := sel.Select(pool, dict); got != "aaaaa" {
		t.Fatalf("got %q want aaaaa", got)
	}
}

func TestSelector_EmptyPoolPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Select with empty pool did not panic")
		}
	}()
	sel := &Selector{Config: DefaultConfig()}
	sel.Select(nil, nil)
}
