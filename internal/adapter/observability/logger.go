// Package observability provides the structured logger consumed by the
// enumerator and the CLI. The engine packages stay log-free.
package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level is the logging verbosity threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Format selects the log output encoding.
type Format int

const (
	// FormatHuman writes key=value lines for terminals.
	FormatHuman Format = iota
	// FormatJSON writes one JSON object per line for log pipelines.
	FormatJSON
)

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ParseFormat maps a config string to a Format, defaulting to human.
func ParseFormat(s string) Format {
	if strings.EqualFold(s, "json") {
		return FormatJSON
	}
	return FormatHuman
}

// Logger writes structured records to a single writer. Safe for
// concurrent use.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	level  Level
	format Format
	now    func() time.Time
}

// NewLogger constructs a Logger writing to out.
func NewLogger(out io.Writer, level Level, format Format) *Logger {
	return &Logger{out: out, level: level, format: format, now: time.Now}
}

// Info logs an informational record.
func (l *Logger) Info(ctx context.Context, message string, fields map[string]interface{}) {
	l.write(ctx, LevelInfo, "info", message, fields)
}

// Warn logs a warning record.
func (l *Logger) Warn(ctx context.Context, message string, fields map[string]interface{}) {
	l.write(ctx, LevelWarn, "warn", message, fields)
}

// Error logs an error record.
func (l *Logger) Error(ctx context.Context, message string, fields map[string]interface{}) {
	l.write(ctx, LevelError, "error", message, fields)
}

func (l *Logger) write(_ context.Context, level Level, label, message string, fields map[string]interface{}) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := l.now().UTC().Format(time.RFC3339)
	if l.format == FormatJSON {
		record := make(map[string]interface{}, len(fields)+3)
		for k, v := range fields {
			record[k] = v
		}
		record["time"] = timestamp
		record["level"] = label
		record["message"] = message
		line, err := json.Marshal(record)
		if err != nil {
			fmt.Fprintf(l.out, `{"time":%q,"level":"error","message":"log marshal failed: %v"}`+"\n", timestamp, err)
			return
		}
		fmt.Fprintf(l.out, "%s\n", line)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s level=%s msg=%q", timestamp, label, message)
	for _, key := range sortedKeys(fields) {
		fmt.Fprintf(&b, " %s=%v", key, fields[key])
	}
	fmt.Fprintln(l.out, b.String())
}

func sortedKeys(fields map[string]interface{}) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NopLogger discards every record. Useful as a test collaborator.
type NopLogger struct{}

func (NopLogger) Info(context.Context, string, map[string]interface{})  {}
func (NopLogger) Warn(context.Context, string, map[string]interface{})  {}
func (NopLogger) Error(context.Context, string, map[string]interface{}) {}
