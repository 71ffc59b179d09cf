// Package source extracts candidate words from raw dictionary sources:
// HTML word-list pages and plain ENABLE-style text files.
package source

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var wordRe = regexp.MustCompile(`^[a-zA-Z]+$`)

// Fetcher downloads word-list pages over HTTP.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// FetchURL downloads url and extracts every word it can find.
func (f *Fetcher) FetchURL(url string) ([]string, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return ExtractWords(doc), nil
}

// ExtractWords pulls words out of the usual word-list page shapes: list
// items, table cells, anchors, and whitespace-separated <pre> dumps.
// Results are lowercased and deduped in document order.
func ExtractWords(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(raw string) {
		w := strings.ToLower(strings.TrimSpace(raw))
		if !wordRe.MatchString(w) {
			return
		}
		if _, ok := seen[w]; ok {
			return
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}

	doc.Find("li, td, a").Each(func(_ int, s *goquery.Selection) {
		add(s.Text())
	})
	doc.Find("pre").Each(func(_ int, s *goquery.Selection) {
		for _, field := range strings.Fields(s.Text()) {
			add(field)
		}
	})

	return out
}

// LoadPlainFile reads a one-word-per-line dictionary file, lowercased and
// deduped in file order.
func LoadPlainFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	seen := make(map[string]struct{})
	var out []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if !wordRe.MatchString(w) {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	return out, nil
}

// GroupByLength buckets words into per-length lists for lengths in
// [minLen, maxLen], preserving input order within each bucket.
func GroupByLength(list []string, minLen, maxLen int) map[int][]string {
	out := make(map[int][]string)
	for _, w := range list {
		n := len(w)
		if n < minLen || n > maxLen {
			continue
		}
		out[n] = append(out[n], w)
	}
	return out
}
