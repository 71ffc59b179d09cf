// Package logging provides a human-readable slog handler for the repo's
// CLI tools.
package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

// PrettyJSONHandler is a slog.Handler printing one indented JSON object per
// record. It favors readability over throughput and is meant for CLI and
// daemon logs, not hot paths.
type PrettyJSONHandler struct {
	w     io.Writer
	mu    *sync.Mutex
	level slog.Leveler

	attrs []slog.Attr
}

func NewPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &PrettyJSONHandler{
		w:     w,
		mu:    &sync.Mutex{},
		level: level,
	}
}

func (h *PrettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	payload := make(map[string]any, 4+r.NumAttrs())

	when := r.Time
	if when.IsZero() {
		when = time.Now()
	}
	payload["time"] = when.Format(time.RFC3339Nano)
	payload["level"] = r.Level.String()
	payload["msg"] = r.Message

	for _, a := range h.attrs {
		addAttr(payload, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(payload, a)
		return true
	})

	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		// As a last resort, avoid dropping logs.
		b = []byte(`{"time":` + strconv.Quote(payload["time"].(string)) +
			`,"level":` + strconv.Quote(r.Level.String()) +
			`,"msg":` + strconv.Quote(r.Message) + `}`)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(append(b, '\n'))
	return err
}

func (h *PrettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

// WithGroup flattens groups; nesting is not worth the complexity for the
// handful of attributes these tools log.
func (h *PrettyJSONHandler) WithGroup(string) slog.Handler {
	return h
}

func addAttr(dst map[string]any, attr slog.Attr) {
	v := attr.Value.Resolve()
	if attr.Key == "" {
		return
	}
	switch v.Kind() {
	case slog.KindString:
		dst[attr.Key] = v.String()
	case slog.KindInt64:
		dst[attr.Key] = v.Int64()
	case slog.KindUint64:
		dst[attr.Key] = v.Uint64()
	case slog.KindFloat64:
		dst[attr.Key] = v.Float64()
	case slog.KindBool:
		dst[attr.Key] = v.Bool()
	case slog.KindDuration:
		dst[attr.Key] = v.Duration().String()
	case slog.KindTime:
		dst[attr.Key] = v.Time().Format(time.RFC3339Nano)
	case slog.KindGroup:
		child := map[string]any{}
		for _, ga := range v.Group() {
			addAttr(child, ga)
		}
		dst[attr.Key] = child
	default:
		dst[attr.Key] = v.Any()
	}
}
