package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultTail is how many lines a Logger keeps in memory.
const DefaultTail = 200

// Logger is an io.Writer that keeps the last lines written in memory and appends
// everything to a file on disk. Wrap it with NewSlog for structured logging.
type Logger struct {
	mu    sync.Mutex
	lines []string
	max   int
	path  string
}

// New returns a Logger appending to path and keeping max lines in memory. An empty path
// keeps logs in memory only. The file's directory is created if needed.
func New(path string, max int) *Logger {
	if max <= 0 {
		max = DefaultTail
	}
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{lines: make([]string, 0, max), max: max, path: path}
}

// Write records p line by line. A failing file write is reported but the lines are kept.
func (l *Logger) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")
	l.mu.Lock()
	for _, line := range strings.Split(text, "\n") {
		l.lines = append(l.lines, line)
	}
	if over := len(l.lines) - l.max; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	l.mu.Unlock()

	if l.path == "" {
		return len(p), nil
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return f.Write(p)
}

// Lines returns a copy of the stored lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns up to the last n stored lines.
func (l *Logger) Tail(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > len(l.lines) {
		n = len(l.lines)
	}
	out := make([]string, n)
	copy(out, l.lines[len(l.lines)-n:])
	return out
}

// NewSlog returns a text slog.Logger writing to w at level.
func NewSlog(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
