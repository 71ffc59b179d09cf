// Package selfplay runs batches of independent solver games.
//
// Each game is a pure solver.Simulate call owning all of its state, so the
// batch fans out across a plain worker pool with no coordination beyond the
// secrets channel. All randomness (dictionary capping, secret selection) is
// seeded up front; given the same inputs a batch plays the same games.
package selfplay

import (
	"context"
	"fmt"
	"sync"

	"github.com/bselway/wordmind/game"
	"github.com/bselway/wordmind/solver"
	"github.com/bselway/wordmind/words"
)

type Config struct {
	// Length is the word length for this batch.
	Length int
	// Games is the number of secrets to play. Capped at the pool size.
	Games int
	// PoolCap subsamples dictionaries larger than this before play
	// (0 = play against the full dictionary).
	PoolCap int
	// Seed drives secret selection and pool capping.
	Seed int64
	// Workers is the number of concurrent games (<= 0 means 1).
	Workers int
	// Game configures each individual simulation.
	Game solver.GameConfig
}

// Result is one finished game.
type Result struct {
	WorkerID   int
	Trajectory game.Trajectory
}

// Run plays the configured batch and sends every finished game to out.
// The skip callback (optional) drops secrets that were already covered by a
// previous run. Run blocks until all workers finish; it does not close out.
// On context cancellation, in-flight games finish and the rest are skipped.
func Run(ctx context.Context, cfg Config, dict []string, skip func(secret string) bool, out chan<- Result) error {
	if cfg.Length <= 0 {
		return fmt.Errorf("selfplay: word length is required")
	}
	if len(dict) == 0 {
		return fmt.Errorf("selfplay: empty dictionary for length %d", cfg.Length)
	}

	pool := dict
	if cfg.PoolCap > 0 && len(dict) > cfg.PoolCap {
		pool = words.Sample(dict, cfg.PoolCap, cfg.Seed)
	}

	n := cfg.Games
	if n <= 0 || n > len(pool) {
		n = len(pool)
	}
	// Offset the seed so secret choice is independent of pool capping.
	secrets := words.Sample(pool, n, cfg.Seed+1)

	queue := make(chan string, len(secrets))
	for _, s := range secrets {
		if skip != nil && skip(s) {
			continue
		}
		queue <- s
	}
	close(queue)

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for secret := range queue {
				select {
				case <-ctx.Done():
					return
				default:
				}

				traj := solver.Simulate(secret, pool, cfg.Game)

				select {
				case out <- Result{WorkerID: workerID, Trajectory: traj}:
				case <-ctx.Done():
					return
				}
			}
		}(i)
	}
	wg.Wait()

	return ctx.Err()
}
