package testutils

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// LogEntry represents a simplified log record for testing
type LogEntry map[string]interface{}

// logSink is shared by a handler and every handler derived from it.
type logSink struct {
	mu      sync.Mutex
	entries []LogEntry
}

// TestSlogHandler is a memory-backed slog.Handler for testing. Attributes
// added with Logger.With are kept on every entry; groups are flattened.
type TestSlogHandler struct {
	sink  *logSink
	attrs []slog.Attr
}

// NewTestSlogHandler creates a new memory-backed slog handler
func NewTestSlogHandler() *TestSlogHandler {
	return &TestSlogHandler{sink: &logSink{}}
}

// NewTestLogger returns a logger writing to a fresh TestSlogHandler.
func NewTestLogger() (*slog.Logger, *TestSlogHandler) {
	h := NewTestSlogHandler()
	return slog.New(h), h
}

// Enabled satisfies slog.Handler interface
func (h *TestSlogHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// Handle satisfies slog.Handler interface
func (h *TestSlogHandler) Handle(_ context.Context, r slog.Record) error {
	entry := make(LogEntry, len(h.attrs)+r.NumAttrs()+2)
	entry["level"] = r.Level.String()
	entry["message"] = r.Message

	for _, attr := range h.attrs {
		entry[attr.Key] = attr.Value.Resolve().Any()
	}
	r.Attrs(func(attr slog.Attr) bool {
		entry[attr.Key] = attr.Value.Resolve().Any()
		return true
	})

	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	h.sink.entries = append(h.sink.entries, entry)
	return nil
}

// WithAttrs satisfies slog.Handler interface
func (h *TestSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &TestSlogHandler{sink: h.sink, attrs: merged}
}

// WithGroup satisfies slog.Handler interface
func (h *TestSlogHandler) WithGroup(_ string) slog.Handler {
	return h
}

// Entries returns all captured log entries
func (h *TestSlogHandler) Entries() []LogEntry {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()

	result := make([]LogEntry, len(h.sink.entries))
	copy(result, h.sink.entries)
	return result
}

// Find returns the first entry with the given message.
func (h *TestSlogHandler) Find(message string) (LogEntry, bool) {
	for _, e := range h.Entries() {
		if e["message"] == message {
			return e, true
		}
	}
	return nil, false
}

// Contains reports whether any captured message or string attribute
// contains s.
func (h *TestSlogHandler) Contains(s string) bool {
	for _, e := range h.Entries() {
		for _, v := range e {
			if str, ok := v.(string); ok && strings.Contains(str, s) {
				return true
			}
		}
	}
	return false
}

// Clear resets the captured log entries
func (h *TestSlogHandler) Clear() {
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()

	h.sink.entries = nil
}
