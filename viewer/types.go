package main

// GameSummary is one generated game in the /api/games index.
type GameSummary struct {
	GameID     string `json:"game_id"`
	Secret     string `json:"secret"`
	Length     int32  `json:"length"`
	Won        bool   `json:"won"`
	Turns      int32  `json:"turns"`
	Outcome    string `json:"outcome"`
	Source     string `json:"source"`
	SourceFile string `json:"file"`
	CreatedNs  int64  `json:"created_ns"`
}

// GamesResponse is the paginated response for /api/games.
type GamesResponse struct {
	Total int64         `json:"total"`
	Games []GameSummary `json:"games"`
}

// TurnEvent is one guess/feedback pair, used both in full game responses
// and as the per-turn websocket frame.
type TurnEvent struct {
	Turn  int      `json:"turn"`
	Guess string   `json:"guess"`
	Tiles []string `json:"tiles"`
}

// GameResponse is the full trajectory for /api/games/{id}.
type GameResponse struct {
	GameID  string      `json:"game_id"`
	Secret  string      `json:"secret"`
	Outcome string      `json:"outcome"`
	Won     bool        `json:"won"`
	Turns   int         `json:"turns"`
	Events  []TurnEvent `json:"events"`
}

// WatchDone is the terminal websocket frame for /api/watch.
type WatchDone struct {
	Done    bool   `json:"done"`
	Secret  string `json:"secret"`
	Outcome string `json:"outcome"`
	Won     bool   `json:"won"`
	Turns   int    `json:"turns"`
}
