package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// RunSummary is the per-(run, length) aggregate the generator records after
// a batch completes. Aggregation happens out here, on the caller side; the
// solver core only ever emits raw trajectories.
type RunSummary struct {
	RunID      string
	Length     int
	Games      int
	Wins       int
	TotalTurns int
	Seed       int64
	StartedAt  time.Time
	FinishedAt time.Time
}

// AvgTurns is the mean turn count across won games.
func (s RunSummary) AvgTurns() float64 {
	if s.Wins == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Wins)
}

// RunDB indexes generation run summaries in sqlite.
type RunDB struct {
	conn *sql.DB
	mu   sync.Mutex
}

// OpenRunDB opens (and if needed initializes) the run index at dbPath.
func OpenRunDB(dbPath string) (*RunDB, error) {
	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open run db: %w", err)
	}
	// SQLite supports a single writer.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	db := &RunDB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func (db *RunDB) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		run_id       TEXT    NOT NULL,
		length       INTEGER NOT NULL,
		games        INTEGER NOT NULL,
		wins         INTEGER NOT NULL,
		total_turns  INTEGER NOT NULL,
		seed         INTEGER NOT NULL,
		started_at   TEXT    NOT NULL,
		finished_at  TEXT    NOT NULL,
		PRIMARY KEY (run_id, length)
	);`
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("init run db schema: %w", err)
	}
	return nil
}

// InsertRun records one completed (run, length) batch.
func (db *RunDB) InsertRun(s RunSummary) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO runs
		(run_id, length, games, wins, total_turns, seed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.RunID, s.Length, s.Games, s.Wins, s.TotalTurns, s.Seed,
		s.StartedAt.UTC().Format(time.RFC3339Nano),
		s.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecentRuns returns up to n summaries, newest first.
func (db *RunDB) RecentRuns(n int) ([]RunSummary, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rows, err := db.conn.Query(`
		SELECT run_id, length, games, wins, total_turns, seed, started_at, finished_at
		FROM runs ORDER BY finished_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		var started, finished string
		if err := rows.Scan(&s.RunID, &s.Length, &s.Games, &s.Wins,
			&s.TotalTurns, &s.Seed, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		s.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		s.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (db *RunDB) Close() error {
	return db.conn.Close()
}
