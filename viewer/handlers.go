package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bselway/wordmind/game"
	"github.com/bselway/wordmind/solver"
	"github.com/bselway/wordmind/words"
)

// Server holds shared state for HTTP handlers.
type Server struct {
	dbCache  *DBCache
	wordsDir string
	openers  map[int][]string
	logger   *slog.Logger

	upgrader websocket.Upgrader
}

func NewServer(roots []string, wordsDir string, logger *slog.Logger) *Server {
	return &Server{
		dbCache:  NewDBCache(roots, 30*time.Second),
		wordsDir: wordsDir,
		openers:  words.DefaultOpeners(),
		logger:   logger,
		upgrader: websocket.Upgrader{
			// The viewer is a local inspection tool; any origin may connect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// RegisterRoutes sets up all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/games", s.handleGames)
	mux.HandleFunc("/api/games/", s.handleGame)
	mux.HandleFunc("/api/watch", s.handleWatch)
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	withCORS(w, r)
	if r.Method == http.MethodOptions {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	index, err := s.dbCache.GamesIndex(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	limit := parseIntQuery(r, "limit", 1000)
	offset := parseIntQuery(r, "offset", 0)

	total := int64(len(index))
	if offset > len(index) {
		offset = len(index)
	}
	end := offset + limit
	if end > len(index) {
		end = len(index)
	}

	writeJSON(w, GamesResponse{Total: total, Games: index[offset:end]})
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	withCORS(w, r)
	if r.Method == http.MethodOptions {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	gameID := strings.TrimPrefix(r.URL.Path, "/api/games/")
	if gameID == "" {
		http.Error(w, "game id required", http.StatusBadRequest)
		return
	}

	traj, summary, err := s.dbCache.Game(r.Context(), gameID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, gameResponseFrom(summary.GameID, traj))
}

// handleWatch streams a game turn by turn over a websocket: either the
// stored game named by ?id=..., or a fresh solve of ?secret=... against the
// configured dictionary. ?interval_ms controls pacing.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("id")
	secret := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("secret")))
	if (gameID == "") == (secret == "") {
		http.Error(w, "pass exactly one of id or secret", http.StatusBadRequest)
		return
	}

	var traj game.Trajectory
	if gameID != "" {
		var err error
		traj, _, err = s.dbCache.Game(r.Context(), gameID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	} else {
		var err error
		traj, err = s.solveLive(secret)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	interval := time.Duration(parseIntQuery(r, "interval_ms", 500)) * time.Millisecond

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	for i, rec := range traj.Records {
		event := TurnEvent{Turn: i + 1, Guess: rec.Guess, Tiles: rec.Feedback.Names()}
		if err := conn.WriteJSON(event); err != nil {
			s.logger.Warn("watch client gone", "err", err)
			return
		}
		if i < len(traj.Records)-1 {
			time.Sleep(interval)
		}
	}

	done := WatchDone{
		Done:    true,
		Secret:  traj.Secret,
		Outcome: traj.Outcome.String(),
		Won:     traj.Won(),
		Turns:   traj.Turns(),
	}
	if err := conn.WriteJSON(done); err != nil {
		return
	}
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (s *Server) solveLive(secret string) (game.Trajectory, error) {
	if s.wordsDir == "" {
		return game.Trajectory{}, fmt.Errorf("live solves disabled: no words dir configured")
	}
	dict, err := words.Load(s.wordsDir, len(secret))
	if err != nil {
		return game.Trajectory{}, fmt.Errorf("no dictionary for length %d: %w", len(secret), err)
	}

	cfg := solver.DefaultGameConfig()
	cfg.Openers = s.openers
	return solver.Simulate(secret, dict, cfg), nil
}

func gameResponseFrom(gameID string, traj game.Trajectory) GameResponse {
	resp := GameResponse{
		GameID:  gameID,
		Secret:  traj.Secret,
		Outcome: traj.Outcome.String(),
		Won:     traj.Won(),
		Turns:   traj.Turns(),
	}
	for i, rec := range traj.Records {
		resp.Events = append(resp.Events, TurnEvent{
			Turn:  i + 1,
			Guess: rec.Guess,
			Tiles: rec.Feedback.Names(),
		})
	}
	return resp
}

func withCORS(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func parseIntQuery(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
