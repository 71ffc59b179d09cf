package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bselway/wordmind/solver"
	"github.com/bselway/wordmind/store"
	"github.com/bselway/wordmind/words"
)

func main() {
	wordsDir := flag.String("words-dir", filepath.Join("data", "words"), "Directory with <N>-letters-answer.txt word lists")
	secret := flag.String("secret", "", "Secret word to solve (random dictionary word if empty)")
	length := flag.Int("length", 5, "Word length when picking a random secret")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Seed for random secret selection")
	maxTurns := flag.Int("max-turns", solver.DefaultMaxTurns, "Maximum guesses before the game is lost")
	jsonlOut := flag.String("jsonl-out", "", "Optional JSONL file to append the trajectory to")
	flag.Parse()

	target := strings.ToLower(strings.TrimSpace(*secret))
	if target != "" {
		*length = len(target)
	}

	dict, err := words.Load(*wordsDir, *length)
	if err != nil {
		log.Fatalf("Failed to load %d-letter word list: %v", *length, err)
	}
	log.Printf("Loaded %d words of length %d", len(dict), *length)

	if target == "" {
		rng := rand.New(rand.NewSource(*seed))
		target = dict[rng.Intn(len(dict))]
		log.Printf("Picked random secret (seed %d)", *seed)
	}

	cfg := solver.DefaultGameConfig()
	cfg.MaxTurns = *maxTurns
	cfg.Openers = words.DefaultOpeners()

	traj := solver.Simulate(target, dict, cfg)

	fmt.Println()
	for i, rec := range traj.Records {
		fmt.Printf("  Turn %d | %s → %s\n", i+1, rec.Guess, rec.Feedback.Key())
	}
	fmt.Println()

	if traj.Won() {
		log.Printf("Solved %q in %d turns", traj.Secret, traj.Turns())
	} else {
		log.Printf("Failed on %q after %d turns (%s)", traj.Secret, traj.Turns(), traj.Outcome)
	}

	if *jsonlOut != "" {
		f, err := os.OpenFile(*jsonlOut, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", *jsonlOut, err)
		}
		defer f.Close()
		if err := store.AppendJSONL(f, traj); err != nil {
			log.Fatalf("Failed to append trajectory: %v", err)
		}
		log.Printf("Trajectory appended to %s", *jsonlOut)
	}
}
