package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// CompactHandler is a slog.Handler that writes one short line per record:
//
//	15:04:05 INFO  query processed model=llama-3.3-70b elapsed=1.2s
//
// It is intended for interactive terminal sessions where the full JSON
// handler output would drown the conversation.
type CompactHandler struct {
	level  slog.Level
	mu     *sync.Mutex
	out    io.Writer
	attrs  []slog.Attr
	groups []string
}

// NewCompactHandler creates a CompactHandler writing to out, dropping
// records below level.
func NewCompactHandler(out io.Writer, level slog.Level) *CompactHandler {
	return &CompactHandler{
		level: level,
		mu:    &sync.Mutex{},
		out:   out,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *CompactHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats and writes a single log record.
func (h *CompactHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if !r.Time.IsZero() {
		b.WriteString(r.Time.Format("15:04:05"))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%-5s %s", r.Level.String(), r.Message)

	// Pre-bound attrs were prefixed at WithAttrs time; only record attrs get
	// the current group prefix.
	prefix := strings.Join(h.groups, ".")
	for _, attr := range h.attrs {
		writeAttr(&b, "", attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(&b, prefix, attr)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

// WithAttrs returns a new handler whose records carry the extra attributes.
// Keys are qualified with the group prefix in effect at bind time.
func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	prefix := strings.Join(h.groups, ".")
	bound := append([]slog.Attr{}, h.attrs...)
	for _, attr := range attrs {
		if prefix != "" {
			attr.Key = prefix + "." + attr.Key
		}
		bound = append(bound, attr)
	}
	clone.attrs = bound
	return &clone
}

// WithGroup returns a new handler that prefixes attribute keys with name.
func (h *CompactHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

func writeAttr(b *strings.Builder, prefix string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	key := attr.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	val := attr.Value.Resolve().String()
	if strings.ContainsAny(val, " \t\n") {
		val = fmt.Sprintf("%q", val)
	}
	fmt.Fprintf(b, " %s=%s", key, val)
}
