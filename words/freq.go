package words

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LetterFreq summarizes how often a letter appears in a word list: the
// total count and a per-position breakdown.
type LetterFreq struct {
	Total     int   `json:"total"`
	Positions []int `json:"positions"`
}

// Frequencies computes per-letter totals and positional counts across a
// same-length word list. Words whose length differs from the first entry
// are skipped.
func Frequencies(list []string) map[string]LetterFreq {
	out := make(map[string]LetterFreq)
	if len(list) == 0 {
		return out
	}
	length := len(list[0])

	for _, w := range list {
		if len(w) != length {
			continue
		}
		for pos := 0; pos < length; pos++ {
			letter := string(w[pos])
			f, ok := out[letter]
			if !ok {
				f = LetterFreq{Positions: make([]int, length)}
			}
			f.Total++
			f.Positions[pos]++
			out[letter] = f
		}
	}
	return out
}

// WriteFrequencies writes the frequency summary for list as indented JSON.
func WriteFrequencies(path string, list []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create frequency dir: %w", err)
	}
	b, err := json.MarshalIndent(Frequencies(list), "", "  ")
	if err != nil {
		return fmt.Errorf("encode frequencies: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write frequencies: %w", err)
	}
	return nil
}
