// Package store persists solver output: parquet trajectory batches, the
// original JSONL trajectory format, a dedupe log of already-played secrets,
// and a sqlite index of run summaries.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/bselway/wordmind/game"
)

// TrajectoryRow is one completed game, flattened for long-term columnar
// storage. Feedbacks use the compact one-byte-per-tile encoding
// (game.Feedback.Key); guesses and feedbacks are index-aligned.
type TrajectoryRow struct {
	GameID    string   `parquet:"game_id,dict"`
	Secret    string   `parquet:"secret,dict"`
	Length    int32    `parquet:"length"`
	Guesses   []string `parquet:"guesses"`
	Feedbacks []string `parquet:"feedbacks"`
	Won       bool     `parquet:"won"`
	Turns     int32    `parquet:"turns"`
	Outcome   string   `parquet:"outcome,dict"`
	Source    string   `parquet:"source,dict"`
	CreatedNs int64    `parquet:"created_ns"`
}

// RowFromTrajectory flattens a finalized trajectory into a storage row.
func RowFromTrajectory(gameID, source string, t game.Trajectory) TrajectoryRow {
	row := TrajectoryRow{
		GameID:    gameID,
		Secret:    t.Secret,
		Length:    int32(len(t.Secret)),
		Won:       t.Won(),
		Turns:     int32(t.Turns()),
		Outcome:   t.Outcome.String(),
		Source:    source,
		CreatedNs: time.Now().UnixNano(),
	}
	row.Guesses = t.Guesses()
	row.Feedbacks = make([]string, 0, t.Turns())
	for _, r := range t.Records {
		row.Feedbacks = append(row.Feedbacks, r.Feedback.Key())
	}
	return row
}

// ToTrajectory reconstructs the trajectory recorded in a row.
func (r TrajectoryRow) ToTrajectory() (game.Trajectory, error) {
	if len(r.Guesses) != len(r.Feedbacks) {
		return game.Trajectory{}, fmt.Errorf("row %s: %d guesses vs %d feedbacks",
			r.GameID, len(r.Guesses), len(r.Feedbacks))
	}
	t := game.Trajectory{Secret: r.Secret}
	for i := range r.Guesses {
		fb, err := game.ParseKey(r.Feedbacks[i])
		if err != nil {
			return game.Trajectory{}, fmt.Errorf("row %s turn %d: %w", r.GameID, i+1, err)
		}
		t.Records = append(t.Records, game.GuessRecord{Guess: r.Guesses[i], Feedback: fb})
	}
	switch r.Outcome {
	case game.OutcomeWon.String():
		t.Outcome = game.OutcomeWon
	case game.OutcomeLostExhausted.String():
		t.Outcome = game.OutcomeLostExhausted
	case game.OutcomeLostEmptyPool.String():
		t.Outcome = game.OutcomeLostEmptyPool
	default:
		return game.Trajectory{}, fmt.Errorf("row %s: unknown outcome %q", r.GameID, r.Outcome)
	}
	return t, nil
}

const schemaTag = "trajectory_row_v1"

// WriteParquet writes rows to outPath via a temp file and an atomic rename,
// so readers never observe a partially-written file.
func WriteParquet(outPath string, rows []TrajectoryRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schemaTag),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// WriteBatchParquetAtomic writes a timestamped batch file into outDir/tmp
// and then moves it into outDir. Long-running generators flush through this
// so downstream readers (viewer, trainers) only ever see complete batches.
func WriteBatchParquetAtomic(outDir string, rows []TrajectoryRow) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("batch_%d.parquet", time.Now().UnixNano())
	finalPath := filepath.Join(outDir, name)
	tmpPath := filepath.Join(tmpDir, name+".tmp")
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schemaTag),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}

	return finalPath, nil
}
