package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// SecretLog tracks which secrets have already been played, so repeated
// generator runs extend coverage instead of re-solving the same words.
// It is backed by an append-only file with one "<length>:<secret>" per line.
//
// On startup we read the file into memory for fast dedupe; on success we
// append and fsync. It is tolerant of partial trailing lines left by a
// crash — the next startup simply skips them.
type SecretLog struct {
	mu     sync.RWMutex
	path   string
	file   *os.File
	played map[string]struct{}
}

func secretKey(length int, secret string) string {
	return fmt.Sprintf("%d:%s", length, secret)
}

func OpenSecretLog(path string) (*SecretLog, error) {
	if path == "" {
		return nil, fmt.Errorf("log path is required")
	}

	played := make(map[string]struct{})
	if f, err := os.Open(path); err == nil {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || !strings.Contains(line, ":") {
				continue
			}
			played[line] = struct{}{}
		}
		_ = f.Close()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open secret log: %w", err)
	}

	return &SecretLog{path: path, file: f, played: played}, nil
}

// Contains reports whether the secret was already played at this length.
func (l *SecretLog) Contains(length int, secret string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.played[secretKey(length, secret)]
	return ok
}

// Append records a played secret and syncs it to disk.
func (l *SecretLog) Append(length int, secret string) error {
	key := secretKey(length, secret)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.played[key]; ok {
		return nil
	}
	if _, err := l.file.WriteString(key + "\n"); err != nil {
		return fmt.Errorf("append secret log: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		return fmt.Errorf("sync secret log: %w", err)
	}
	l.played[key] = struct{}{}
	return nil
}

func (l *SecretLog) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.played)
}

func (l *SecretLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}
