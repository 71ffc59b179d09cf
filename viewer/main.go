package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bselway/wordmind/logging"
)

func defaultDataRoots() []string {
	return []string{filepath.Join("data", "trajectories")}
}

func parseDataRoots(raw string) []string {
	var roots []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			roots = append(roots, part)
		}
	}
	if len(roots) == 0 {
		roots = defaultDataRoots()
	}
	return roots
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	listen := fs.String("listen", "127.0.0.1:8080", "HTTP listen address")
	dataDirs := fs.String("data-dirs", strings.Join(defaultDataRoots(), ","), "Comma-separated list of directories containing trajectory parquet batches")
	wordsDir := fs.String("words-dir", filepath.Join("data", "words"), "Directory with <N>-letters-answer.txt word lists (enables live solves on /api/watch)")
	staticDir := fs.String("static-dir", "", "Optional directory to serve as SPA static")
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("flag parse: %v", err)
	}

	logger := slog.New(logging.NewPrettyJSONHandler(os.Stderr, nil))

	roots := parseDataRoots(*dataDirs)
	logger.Info("viewer starting", "roots", strings.Join(roots, ","), "words_dir", *wordsDir)

	server := NewServer(roots, *wordsDir, logger)
	defer server.dbCache.Close()

	mux := http.NewServeMux()
	server.RegisterRoutes(mux)

	if *staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(*staticDir)))
	}

	logger.Info("listening", "addr", *listen)
	if err := http.ListenAndServe(*listen, mux); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
