// Package words loads and prepares the word lists the solver consumes:
// per-length dictionaries, seeded sampling, opener tables, and letter
// frequency summaries.
package words

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ListFileName is the conventional per-length dictionary file name, e.g.
// "5-letters-answer.txt".
func ListFileName(length int) string {
	return fmt.Sprintf("%d-letters-answer.txt", length)
}

// Load reads the word list for the given length from dir, following the
// ListFileName convention.
func Load(dir string, length int) ([]string, error) {
	path := filepath.Join(dir, ListFileName(length))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	list, err := Parse(f, length)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return list, nil
}

// Parse reads one word per line, lowercases, keeps purely alphabetic words
// of the requested length, and dedupes while preserving order. The result
// is the deduplicated ordered dictionary contract the solver expects.
func Parse(r io.Reader, length int) ([]string, error) {
	seen := make(map[string]struct{})
	var list []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if len(w) != length || !isAlpha(w) {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		list = append(list, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func isAlpha(w string) bool {
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return len(w) > 0
}

// Save writes one word per line, creating parent directories as needed.
func Save(path string, list []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create word list dir: %w", err)
	}
	var b strings.Builder
	for _, w := range list {
		b.WriteString(w)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write word list: %w", err)
	}
	return nil
}
