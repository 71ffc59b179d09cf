// Package game defines the core types for fixed-length hidden-word guessing
// games and the feedback oracle that scores a guess against a secret.
//
// Everything here is pure data or pure computation: the types carry no
// shared state, so whole games can be fanned out across goroutines without
// coordination.
package game

import (
	"encoding/json"
	"fmt"
)

// Tile is the per-position classification of a guessed letter.
type Tile uint8

const (
	TileUnknown Tile = iota
	TileAbsent
	TilePresent
	TileCorrect
)

var tileNames = [...]string{"unknown", "absent", "present", "correct"}

// compact single-byte forms, used for bucket keys and columnar storage
var tileBytes = [...]byte{'?', 'a', 'p', 'c'}

func (t Tile) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return fmt.Sprintf("tile(%d)", uint8(t))
}

func (t Tile) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Tile) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for i, name := range tileNames {
		if s == name {
			*t = Tile(i)
			return nil
		}
	}
	return fmt.Errorf("game: unknown tile %q", s)
}

// Feedback is the ordered tile pattern for one guess. Its length always
// equals the word length of the game it belongs to.
type Feedback []Tile

// Key returns a compact string form suitable for map keys and storage
// columns: one byte per tile ('a', 'p', 'c', or '?').
func (f Feedback) Key() string {
	b := make([]byte, len(f))
	for i, t := range f {
		if int(t) < len(tileBytes) {
			b[i] = tileBytes[t]
		} else {
			b[i] = '?'
		}
	}
	return string(b)
}

// ParseKey decodes the compact form produced by Key.
func ParseKey(s string) (Feedback, error) {
	f := make(Feedback, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'a':
			f[i] = TileAbsent
		case 'p':
			f[i] = TilePresent
		case 'c':
			f[i] = TileCorrect
		case '?':
			f[i] = TileUnknown
		default:
			return nil, fmt.Errorf("game: invalid tile byte %q", s[i])
		}
	}
	return f, nil
}

func (f Feedback) Equal(other Feedback) bool {
	if len(f) != len(other) {
		return false
	}
	for i := range f {
		if f[i] != other[i] {
			return false
		}
	}
	return true
}

func (f Feedback) AllCorrect() bool {
	for _, t := range f {
		if t != TileCorrect {
			return false
		}
	}
	return len(f) > 0
}

// Names returns the long-form tile names, the shape used in the external
// trajectory contract.
func (f Feedback) Names() []string {
	out := make([]string, len(f))
	for i, t := range f {
		out[i] = t.String()
	}
	return out
}

// GuessRecord is one completed turn: the guess and the feedback it earned.
type GuessRecord struct {
	Guess    string   `json:"guess"`
	Feedback Feedback `json:"feedback"`
}

// Outcome is the simulator state. Playing is the only non-terminal value.
type Outcome uint8

const (
	OutcomePlaying Outcome = iota
	OutcomeWon
	OutcomeLostExhausted
	OutcomeLostEmptyPool
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeWon:
		return "won"
	case OutcomeLostExhausted:
		return "lost_exhausted"
	case OutcomeLostEmptyPool:
		return "lost_empty_pool"
	}
	return fmt.Sprintf("outcome(%d)", uint8(o))
}

func (o Outcome) Terminal() bool {
	return o != OutcomePlaying
}

// Trajectory is the complete recorded history of one played game. It is the
// stable contract consumed by dataset writers and viewers:
// {secret, guesses, feedbacks, won, turnCount}.
type Trajectory struct {
	Secret  string
	Records []GuessRecord
	Outcome Outcome
}

// Turns is the number of guesses made, including the winning one.
func (t *Trajectory) Turns() int {
	return len(t.Records)
}

func (t *Trajectory) Won() bool {
	return t.Outcome == OutcomeWon
}

func (t *Trajectory) Guesses() []string {
	out := make([]string, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Guess
	}
	return out
}

func (t *Trajectory) Feedbacks() []Feedback {
	out := make([]Feedback, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Feedback
	}
	return out
}
