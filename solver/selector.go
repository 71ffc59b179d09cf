package solver

// Config holds the selector's tuning parameters. These trade a little
// optimality for bounded per-turn compute; none of the defaults is load
// bearing for correctness.
type Config struct {
	// SmallPool: at or below this size the whole pool is evaluated.
	SmallPool int
	// PoolPrefix: above SmallPool, this many words are taken from the
	// front of the pool as the evaluation base.
	PoolPrefix int
	// LargePool: above this size, opener words for the game's length join
	// the evaluation set.
	LargePool int
	// EvalCap is the hard limit on evaluation set size.
	EvalCap int
	// CandidateBonus is added to the entropy score of words still in the
	// pool: a guess that could itself be the secret can win immediately,
	// a pure probe never can.
	CandidateBonus float64
}

func DefaultConfig() Config {
	return Config{
		SmallPool:      10,
		PoolPrefix:     20,
		LargePool:      50,
		EvalCap:        30,
		CandidateBonus: 0.1,
	}
}

// Selector chooses the next guess for a pool. Openers maps word length to a
// short ordered list of high letter-diversity opening words; it is injected
// configuration, and a nil or incomplete table simply degrades to pool-only
// evaluation.
type Selector struct {
	Config  Config
	Openers map[int][]string
}

// Select picks the next guess by strict priority:
//
//  1. A single remaining candidate is the guaranteed win.
//  2. Two candidates are informationally equivalent; take the first.
//  3. Otherwise score a bounded evaluation set by entropy over the pool,
//     with CandidateBonus for words that are themselves still candidates,
//     and return the first maximum.
//
// dict is the membership set of the full dictionary, used to drop opener
// words the dictionary does not contain. Calling Select with an empty pool
// is a caller bug and panics; the simulator surfaces empty pools as a
// terminal outcome before ever getting here.
func (s *Selector) Select(pool []string, dict map[string]struct{}) string {
	if len(pool) == 0 {
		panic("solver: Select called with empty pool")
	}
	if len(pool) <= 2 {
		return pool[0]
	}

	cfg := s.Config
	eval := s.evaluationSet(pool, dict, cfg)

	inPool := make(map[string]struct{}, len(pool))
	for _, w := range pool {
		inPool[w] = struct{}{}
	}

	best := pool[0]
	bestScore := -1.0
	for _, w := range eval {
		score := Entropy(w, pool)
		if _, ok := inPool[w]; ok {
			score += cfg.CandidateBonus
		}
		// Strict comparison keeps ties on the first evaluated word.
		if score > bestScore {
			best = w
			bestScore = score
		}
	}
	return best
}

func (s *Selector) evaluationSet(pool []string, dict map[string]struct{}, cfg Config) []string {
	if len(pool) <= cfg.SmallPool {
		return pool
	}

	n := cfg.PoolPrefix
	if n > len(pool) {
		n = len(pool)
	}
	eval := make([]string, 0, n+8)
	eval = append(eval, pool[:n]...)

	if len(pool) > cfg.LargePool && s.Openers != nil {
		seen := make(map[string]struct{}, len(eval))
		for _, w := range eval {
			seen[w] = struct{}{}
		}
		for _, opener := range s.Openers[len(pool[0])] {
			if _, ok := dict[opener]; !ok {
				continue
			}
			if _, ok := seen[opener]; ok {
				continue
			}
			seen[opener] = struct{}{}
			eval = append(eval, opener)
		}
	}

	if len(eval) > cfg.EvalCap {
		eval = eval[:cfg.EvalCap]
	}
	return eval
}
