package words

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// DefaultOpeners returns the built-in table of high letter-diversity
// opening guesses keyed by word length. The table is plain data handed to
// the selector as configuration; callers are free to substitute their own
// (see LoadOpeners).
func DefaultOpeners() map[int][]string {
	return map[int][]string{
		3: {"are", "ate", "ear"},
		4: {"tear", "rate", "late"},
		5: {"arose", "slate", "crane"},
		6: {"strain", "trains", "grains"},
		7: {"stainer", "trained", "detains"},
	}
}

// LoadOpeners reads an opener table from a JSON file shaped like
// {"5": ["arose", "slate"], "6": [...]}.
func LoadOpeners(path string) (map[int][]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read openers: %w", err)
	}

	var raw map[string][]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse openers: %w", err)
	}

	table := make(map[int][]string, len(raw))
	for k, list := range raw {
		length, err := strconv.Atoi(k)
		if err != nil || length <= 0 {
			return nil, fmt.Errorf("openers: invalid length key %q", k)
		}
		for _, w := range list {
			if len(w) != length {
				return nil, fmt.Errorf("openers: %q is not %d letters", w, length)
			}
		}
		table[length] = list
	}
	return table, nil
}
