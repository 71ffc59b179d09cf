package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bselway/wordmind/curator/source"
	"github.com/bselway/wordmind/logging"
	"github.com/bselway/wordmind/words"
)

func main() {
	urlsArg := flag.String("urls", "", "Comma-separated word-list page URLs to scrape")
	enablePath := flag.String("enable", "", "Path to a plain one-word-per-line dictionary file (e.g. enable1.txt)")
	outDir := flag.String("out-dir", "data/words", "Directory for per-length word lists")
	freqDir := flag.String("freq-dir", "", "If set, also write per-length letter frequency JSON here")
	minLen := flag.Int("min-len", 3, "Minimum word length to keep")
	maxLen := flag.Int("max-len", 7, "Maximum word length to keep")
	delay := flag.Duration("delay", 500*time.Millisecond, "Delay between HTTP requests")
	timeout := flag.Duration("timeout", 30*time.Second, "HTTP request timeout")
	flag.Parse()

	logger := slog.New(logging.NewPrettyJSONHandler(os.Stderr, nil))

	if *urlsArg == "" && *enablePath == "" {
		logger.Error("nothing to curate: pass -urls and/or -enable")
		os.Exit(2)
	}

	var all []string
	seen := make(map[string]struct{})
	merge := func(list []string) {
		for _, w := range list {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			all = append(all, w)
		}
	}

	if *enablePath != "" {
		list, err := source.LoadPlainFile(*enablePath)
		if err != nil {
			logger.Error("load dictionary file", "path", *enablePath, "err", err)
			os.Exit(1)
		}
		logger.Info("loaded dictionary file", "path", *enablePath, "words", len(list))
		merge(list)
	}

	if *urlsArg != "" {
		fetcher := source.NewFetcher(*timeout)
		for _, url := range strings.Split(*urlsArg, ",") {
			url = strings.TrimSpace(url)
			if url == "" {
				continue
			}
			list, err := fetcher.FetchURL(url)
			if err != nil {
				logger.Error("fetch word source", "url", url, "err", err)
				continue
			}
			logger.Info("fetched word source", "url", url, "words", len(list))
			merge(list)
			time.Sleep(*delay)
		}
	}

	if len(all) == 0 {
		logger.Error("no words found in any source")
		os.Exit(1)
	}

	groups := source.GroupByLength(all, *minLen, *maxLen)
	for length := *minLen; length <= *maxLen; length++ {
		list := groups[length]
		if len(list) == 0 {
			logger.Warn("no words for length", "length", length)
			continue
		}
		sort.Strings(list)

		path := filepath.Join(*outDir, words.ListFileName(length))
		if err := words.Save(path, list); err != nil {
			logger.Error("save word list", "path", path, "err", err)
			os.Exit(1)
		}
		logger.Info("word list written", "length", length, "words", len(list), "path", path)

		if *freqDir != "" {
			freqPath := filepath.Join(*freqDir, fmt.Sprintf("%d-letters-freq.json", length))
			if err := words.WriteFrequencies(freqPath, list); err != nil {
				logger.Error("save frequencies", "path", freqPath, "err", err)
				os.Exit(1)
			}
			logger.Info("frequencies written", "length", length, "path", freqPath)
		}
	}
}
