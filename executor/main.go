package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bselway/wordmind/executor/selfplay"
	"github.com/bselway/wordmind/game"
	"github.com/bselway/wordmind/solver"
	"github.com/bselway/wordmind/store"
	"github.com/bselway/wordmind/words"
)

var totalGames atomic.Int64
var totalWins atomic.Int64
var totalTurns atomic.Int64

type GameUpdate struct {
	WorkerID int
	Length   int
	Secret   string
	Outcome  game.Outcome
	Turns    int
}

type rowWriteRequest struct {
	rows []store.TrajectoryRow
}

type model struct {
	gamesPlayed int
	wins        int
	turns       int
	startTime   time.Time
	recentGames []string
	updates     chan GameUpdate
}

func initialModel(updates chan GameUpdate) model {
	return model{
		startTime: time.Now(),
		updates:   updates,
	}
}

type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), tickCmd())
}

func waitForUpdate(updates chan GameUpdate) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case TickMsg:
		return m, tickCmd()
	case GameUpdate:
		m.gamesPlayed++
		m.turns += msg.Turns
		if msg.Outcome == game.OutcomeWon {
			m.wins++
		}
		logMsg := fmt.Sprintf("Worker %d: len=%d %s -> %s in %d", msg.WorkerID, msg.Length, msg.Secret, msg.Outcome, msg.Turns)
		m.recentGames = append([]string{logMsg}, m.recentGames...)
		if len(m.recentGames) > 10 {
			m.recentGames = m.recentGames[:10]
		}
		return m, waitForUpdate(m.updates)
	}
	return m, nil
}

func (m model) View() string {
	duration := time.Since(m.startTime)
	gamesPerSec := float64(m.gamesPlayed) / duration.Seconds()
	if duration.Seconds() < 1 {
		gamesPerSec = 0
	}
	winRate := 0.0
	avgTurns := 0.0
	if m.gamesPlayed > 0 {
		winRate = float64(m.wins) / float64(m.gamesPlayed) * 100
		avgTurns = float64(m.turns) / float64(m.gamesPlayed)
	}

	s := fmt.Sprintf("Games Played: %d\n", m.gamesPlayed)
	s += fmt.Sprintf("Win Rate:     %.1f%%\n", winRate)
	s += fmt.Sprintf("Avg Turns:    %.2f\n", avgTurns)
	s += fmt.Sprintf("Duration:     %s\n", duration.Round(time.Second))
	s += fmt.Sprintf("Games/Sec:    %.2f\n\n", gamesPerSec)

	s += "Recent Games:\n"
	for _, g := range m.recentGames {
		s += g + "\n"
	}

	s += "\nPress q to quit.\n"
	return s
}

func main() {
	wordsDir := flag.String("words-dir", "data/words", "Directory holding <N>-letters-answer.txt word lists")
	outDir := flag.String("out-dir", "data/trajectories", "Output directory for trajectory parquet batches")
	jsonlDir := flag.String("jsonl-dir", "", "If set, also mirror each length's trajectories to optimal-<N>.jsonl in this directory")
	lengthsArg := flag.String("lengths", "3,4,5,6,7", "Comma-separated word lengths to generate")
	gamesPerLength := flag.Int("games", 50, "Games to play per word length (0 = one per pool word)")
	workers := flag.Int("workers", runtime.NumCPU(), "Number of concurrent games")
	poolCap := flag.Int("pool-cap", 1000, "Subsample dictionaries larger than this before play (0 = no cap)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Seed for secret selection and pool capping")
	maxTurns := flag.Int("max-turns", solver.DefaultMaxTurns, "Guess limit per game")
	flushGames := flag.Int("flush-games", 200, "Number of games to buffer per parquet flush")
	openersPath := flag.String("openers", "", "Optional JSON opener table overriding the built-in defaults")
	doneLogPath := flag.String("done-log", "", "Optional append-only log of already-played secrets to skip and extend")
	runDBPath := flag.String("run-db", "", "Optional sqlite database recording per-length run summaries")
	useTUI := flag.Bool("tui", false, "Render a live dashboard instead of plain logs")
	flag.Parse()

	lengths, err := parseLengths(*lengthsArg)
	if err != nil {
		log.Fatalf("Invalid -lengths: %v", err)
	}

	openers := words.DefaultOpeners()
	if *openersPath != "" {
		openers, err = words.LoadOpeners(*openersPath)
		if err != nil {
			log.Fatalf("Failed to load openers: %v", err)
		}
	}

	var doneLog *store.SecretLog
	if *doneLogPath != "" {
		doneLog, err = store.OpenSecretLog(*doneLogPath)
		if err != nil {
			log.Fatalf("Failed to open done log: %v", err)
		}
		defer doneLog.Close()
		log.Printf("Done log: %s (%d already played)", *doneLogPath, doneLog.Count())
	}

	var runDB *store.RunDB
	if *runDBPath != "" {
		runDB, err = store.OpenRunDB(*runDBPath)
		if err != nil {
			log.Fatalf("Failed to open run db: %v", err)
		}
		defer runDB.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	log.Printf("Starting trajectory generation %s", runID)
	log.Printf("  Words Dir: %s", *wordsDir)
	log.Printf("  Out Dir:   %s", *outDir)
	log.Printf("  Lengths:   %v", lengths)
	log.Printf("  Games:     %d per length", *gamesPerLength)
	log.Printf("  Workers:   %d", *workers)
	log.Printf("  Seed:      %d", *seed)

	updates := make(chan GameUpdate, *workers)
	writeReqs := make(chan rowWriteRequest, (*workers)*4)

	writerDone := make(chan struct{})
	go func() {
		parquetWriterLoop(*outDir, *flushGames, writeReqs)
		close(writerDone)
	}()

	var uiDone chan struct{}
	if *useTUI {
		uiDone = make(chan struct{})
		go func() {
			defer close(uiDone)
			p := tea.NewProgram(initialModel(updates), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				log.Printf("TUI error: %v", err)
			}
		}()
	} else {
		go plainUpdateLoop(ctx, updates)
	}

	for _, length := range lengths {
		if ctx.Err() != nil {
			log.Printf("Shutdown requested; stopping before length %d", length)
			break
		}

		if err := generateLength(ctx, generateParams{
			length:   length,
			wordsDir: *wordsDir,
			jsonlDir: *jsonlDir,
			games:    *gamesPerLength,
			workers:  *workers,
			poolCap:  *poolCap,
			seed:     *seed,
			maxTurns: *maxTurns,
			openers:  openers,
			runID:    runID,
			doneLog:  doneLog,
			runDB:    runDB,
			updates:  updates,
			writes:   writeReqs,
		}); err != nil {
			log.Printf("Length %d failed: %v", length, err)
		}
	}

	close(writeReqs)
	<-writerDone
	if uiDone != nil {
		<-uiDone
	}

	games := totalGames.Load()
	wins := totalWins.Load()
	winRate := 0.0
	if games > 0 {
		winRate = float64(wins) / float64(games) * 100
	}
	log.Printf("Generation complete: games=%d wins=%d (%.1f%%) turns=%d", games, wins, winRate, totalTurns.Load())
}

type generateParams struct {
	length   int
	wordsDir string
	jsonlDir string
	games    int
	workers  int
	poolCap  int
	seed     int64
	maxTurns int
	openers  map[int][]string
	runID    string
	doneLog  *store.SecretLog
	runDB    *store.RunDB
	updates  chan GameUpdate
	writes   chan rowWriteRequest
}

func generateLength(ctx context.Context, p generateParams) error {
	dict, err := words.Load(p.wordsDir, p.length)
	if err != nil {
		return err
	}
	log.Printf("Length %d: %d words loaded", p.length, len(dict))

	cfg := selfplay.Config{
		Length:  p.length,
		Games:   p.games,
		PoolCap: p.poolCap,
		Seed:    p.seed + int64(p.length),
		Workers: p.workers,
		Game: solver.GameConfig{
			MaxTurns: p.maxTurns,
			Selector: solver.DefaultConfig(),
			Openers:  p.openers,
		},
	}

	var skip func(string) bool
	if p.doneLog != nil {
		skip = func(secret string) bool { return p.doneLog.Contains(p.length, secret) }
	}

	results := make(chan selfplay.Result, p.workers*2)
	runErr := make(chan error, 1)
	started := time.Now()

	go func() {
		runErr <- selfplay.Run(ctx, cfg, dict, skip, results)
		close(results)
	}()

	var wg sync.WaitGroup
	wg.Add(1)

	summary := store.RunSummary{RunID: p.runID, Length: p.length, Seed: cfg.Seed, StartedAt: started}
	var jsonlTrajs []game.Trajectory

	go func() {
		defer wg.Done()
		for res := range results {
			traj := res.Trajectory

			totalGames.Add(1)
			totalTurns.Add(int64(traj.Turns()))
			summary.Games++
			summary.TotalTurns += traj.Turns()
			if traj.Won() {
				totalWins.Add(1)
				summary.Wins++
			}

			gameID := fmt.Sprintf("%s_len%d_%s", p.runID, p.length, traj.Secret)
			p.writes <- rowWriteRequest{rows: []store.TrajectoryRow{
				store.RowFromTrajectory(gameID, "selfplay", traj),
			}}

			if p.jsonlDir != "" {
				jsonlTrajs = append(jsonlTrajs, traj)
			}
			if p.doneLog != nil {
				if err := p.doneLog.Append(p.length, traj.Secret); err != nil {
					log.Printf("Done log append failed: %v", err)
				}
			}

			// Never block game workers on a slow or absent UI.
			select {
			case p.updates <- GameUpdate{
				WorkerID: res.WorkerID,
				Length:   p.length,
				Secret:   traj.Secret,
				Outcome:  traj.Outcome,
				Turns:    traj.Turns(),
			}:
			default:
			}
		}
	}()

	err = <-runErr
	wg.Wait()
	summary.FinishedAt = time.Now()

	if p.jsonlDir != "" && len(jsonlTrajs) > 0 {
		path := fmt.Sprintf("%s/optimal-%d.jsonl", p.jsonlDir, p.length)
		if werr := store.WriteJSONL(path, jsonlTrajs); werr != nil {
			log.Printf("JSONL mirror failed: %v", werr)
		} else {
			log.Printf("Length %d: JSONL mirror written to %s", p.length, path)
		}
	}

	if p.runDB != nil {
		if dberr := p.runDB.InsertRun(summary); dberr != nil {
			log.Printf("Run summary insert failed: %v", dberr)
		}
	}

	winRate := 0.0
	if summary.Games > 0 {
		winRate = float64(summary.Wins) / float64(summary.Games) * 100
	}
	log.Printf("Length %d done: games=%d wins=%d (%.1f%%) avg_turns=%.2f in %s",
		p.length, summary.Games, summary.Wins, winRate, summary.AvgTurns(),
		summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond))

	return err
}

func plainUpdateLoop(ctx context.Context, updates chan GameUpdate) {
	startTime := time.Now()
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			log.Printf("Worker %d: len=%d %s -> %s in %d turns",
				update.WorkerID, update.Length, update.Secret, update.Outcome, update.Turns)
		case <-ticker.C:
			duration := time.Since(startTime)
			games := totalGames.Load()
			log.Printf("Stats: games=%d wins=%d games/s=%.2f",
				games, totalWins.Load(), float64(games)/duration.Seconds())
		}
	}
}

func parquetWriterLoop(outDir string, gamesPerFlush int, in <-chan rowWriteRequest) {
	if gamesPerFlush <= 0 {
		gamesPerFlush = 200
	}

	pendingRows := make([]store.TrajectoryRow, 0, gamesPerFlush)

	for req := range in {
		if len(req.rows) == 0 {
			continue
		}
		pendingRows = append(pendingRows, req.rows...)

		if len(pendingRows) < gamesPerFlush {
			continue
		}

		outPath, err := store.WriteBatchParquetAtomic(outDir, pendingRows)
		if err != nil {
			log.Printf("Parquet flush failed (rows=%d): %v", len(pendingRows), err)
		} else {
			log.Printf("Parquet flush ok: %s (rows=%d)", outPath, len(pendingRows))
		}

		pendingRows = pendingRows[:0]
	}

	if len(pendingRows) > 0 {
		outPath, err := store.WriteBatchParquetAtomic(outDir, pendingRows)
		if err != nil {
			log.Printf("Parquet final flush failed (rows=%d): %v", len(pendingRows), err)
			return
		}
		log.Printf("Parquet final flush ok: %s (rows=%d)", outPath, len(pendingRows))
	}
}

func parseLengths(arg string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 2 {
			return nil, fmt.Errorf("bad length %q", part)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no lengths given")
	}
	return out, nil
}
