package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/dtroode/nox-iam/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))}
}

// LogRecorder collects JSON log records written at debug level and above.
type LogRecorder struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (r *LogRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Write(p)
}

// Records decodes every line written so far.
func (r *LogRecorder) Records() []map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []map[string]any
	dec := json.NewDecoder(bytes.NewReader(r.buf.Bytes()))
	for {
		var rec map[string]any
		if err := dec.Decode(&rec); err != nil {
			return out
		}
		out = append(out, rec)
	}
}

// Find returns the first record with the given message.
func (r *LogRecorder) Find(msg string) (map[string]any, bool) {
	for _, rec := range r.Records() {
		if rec[slog.MessageKey] == msg {
			return rec, true
		}
	}
	return nil, false
}

// MakeRecordingLogger returns a logger whose output can be inspected.
func MakeRecordingLogger() (*logger.Logger, *LogRecorder) {
	rec := &LogRecorder{}
	h := slog.NewJSONHandler(rec, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &logger.Logger{Logger: slog.New(h)}, rec
}
