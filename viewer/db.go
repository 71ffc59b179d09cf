package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/bselway/wordmind/game"
)

// DBCache maintains a cached DuckDB connection over the trajectory parquet
// roots, plus a periodically refreshed games index for fast pagination.
type DBCache struct {
	roots       []string
	refreshRate time.Duration

	mu          sync.RWMutex
	db          *sql.DB
	gamesIndex  []GameSummary
	lastRefresh time.Time
}

func NewDBCache(roots []string, refreshRate time.Duration) *DBCache {
	return &DBCache{roots: roots, refreshRate: refreshRate}
}

func (c *DBCache) globs() string {
	parts := make([]string, 0, len(c.roots))
	for _, root := range c.roots {
		parts = append(parts, fmt.Sprintf("'%s'", filepath.Join(root, "*.parquet")))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (c *DBCache) conn() (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db != nil {
		return c.db, nil
	}
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	c.db = db
	return db, nil
}

// GamesIndex returns the cached games list, refreshing it when stale.
func (c *DBCache) GamesIndex(ctx context.Context) ([]GameSummary, error) {
	c.mu.RLock()
	fresh := time.Since(c.lastRefresh) < c.refreshRate && c.gamesIndex != nil
	index := c.gamesIndex
	c.mu.RUnlock()
	if fresh {
		return index, nil
	}

	db, err := c.conn()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT game_id, secret, length, won, turns, outcome, source, filename, created_ns
		FROM read_parquet(%s, filename = true)`, c.globs())

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query games index: %w", err)
	}
	defer rows.Close()

	var out []GameSummary
	for rows.Next() {
		var g GameSummary
		if err := rows.Scan(&g.GameID, &g.Secret, &g.Length, &g.Won, &g.Turns,
			&g.Outcome, &g.Source, &g.SourceFile, &g.CreatedNs); err != nil {
			return nil, fmt.Errorf("scan game summary: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedNs > out[j].CreatedNs })

	c.mu.Lock()
	c.gamesIndex = out
	c.lastRefresh = time.Now()
	c.mu.Unlock()
	return out, nil
}

// Game loads one stored trajectory by game id.
func (c *DBCache) Game(ctx context.Context, gameID string) (game.Trajectory, GameSummary, error) {
	db, err := c.conn()
	if err != nil {
		return game.Trajectory{}, GameSummary{}, err
	}

	query := fmt.Sprintf(`
		SELECT game_id, secret, length, won, turns, outcome, source, filename, created_ns,
		       to_json(guesses), to_json(feedbacks)
		FROM read_parquet(%s, filename = true)
		WHERE game_id = ?
		LIMIT 1`, c.globs())

	var summary GameSummary
	var guessesJSON, feedbacksJSON string
	err = db.QueryRowContext(ctx, query, gameID).Scan(
		&summary.GameID, &summary.Secret, &summary.Length, &summary.Won,
		&summary.Turns, &summary.Outcome, &summary.Source, &summary.SourceFile,
		&summary.CreatedNs, &guessesJSON, &feedbacksJSON,
	)
	if err == sql.ErrNoRows {
		return game.Trajectory{}, GameSummary{}, fmt.Errorf("game %s: not found", gameID)
	}
	if err != nil {
		return game.Trajectory{}, GameSummary{}, fmt.Errorf("query game %s: %w", gameID, err)
	}

	var guesses, feedbacks []string
	if err := json.Unmarshal([]byte(guessesJSON), &guesses); err != nil {
		return game.Trajectory{}, GameSummary{}, fmt.Errorf("decode guesses: %w", err)
	}
	if err := json.Unmarshal([]byte(feedbacksJSON), &feedbacks); err != nil {
		return game.Trajectory{}, GameSummary{}, fmt.Errorf("decode feedbacks: %w", err)
	}
	if len(guesses) != len(feedbacks) {
		return game.Trajectory{}, GameSummary{}, fmt.Errorf("game %s: %d guesses vs %d feedbacks",
			gameID, len(guesses), len(feedbacks))
	}

	traj := game.Trajectory{Secret: summary.Secret}
	for i := range guesses {
		fb, err := game.ParseKey(feedbacks[i])
		if err != nil {
			return game.Trajectory{}, GameSummary{}, fmt.Errorf("game %s turn %d: %w", gameID, i+1, err)
		}
		traj.Records = append(traj.Records, game.GuessRecord{Guess: guesses[i], Feedback: fb})
	}
	switch summary.Outcome {
	case game.OutcomeWon.String():
		traj.Outcome = game.OutcomeWon
	case game.OutcomeLostExhausted.String():
		traj.Outcome = game.OutcomeLostExhausted
	case game.OutcomeLostEmptyPool.String():
		traj.Outcome = game.OutcomeLostEmptyPool
	}
	return traj, summary, nil
}

func (c *DBCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
