package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bselway/wordmind/game"
)

// TrajectoryJSON is the line format consumed by downstream trainers:
// one object per game, long-form tile names.
type TrajectoryJSON struct {
	Secret     string     `json:"secret"`
	Guesses    []string   `json:"guesses"`
	Feedbacks  [][]string `json:"feedbacks"`
	Won        bool       `json:"won"`
	NumGuesses int        `json:"num_guesses"`
}

// JSONFromTrajectory converts a finalized trajectory to its line form.
func JSONFromTrajectory(t game.Trajectory) TrajectoryJSON {
	out := TrajectoryJSON{
		Secret:     t.Secret,
		Guesses:    t.Guesses(),
		Won:        t.Won(),
		NumGuesses: t.Turns(),
	}
	out.Feedbacks = make([][]string, 0, t.Turns())
	for _, r := range t.Records {
		out.Feedbacks = append(out.Feedbacks, r.Feedback.Names())
	}
	return out
}

// AppendJSONL writes one trajectory as a single JSON line.
func AppendJSONL(w io.Writer, t game.Trajectory) error {
	b, err := json.Marshal(JSONFromTrajectory(t))
	if err != nil {
		return fmt.Errorf("encode trajectory: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write trajectory: %w", err)
	}
	return nil
}

// WriteJSONL writes trajectories to path, one JSON object per line.
func WriteJSONL(path string, trajs []game.Trajectory) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create jsonl: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, t := range trajs {
		if err := AppendJSONL(w, t); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush jsonl: %w", err)
	}
	return nil
}

// ReadJSONL loads every trajectory line from path.
func ReadJSONL(path string) ([]TrajectoryJSON, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open jsonl: %w", err)
	}
	defer f.Close()

	var out []TrajectoryJSON
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var t TrajectoryJSON
		if err := json.Unmarshal(line, &t); err != nil {
			return nil, fmt.Errorf("parse jsonl line %d: %w", len(out)+1, err)
		}
		out = append(out, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
