package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds the logger settings read from the environment.
type Config struct {
	Level     string // debug|info|warn|error
	Format    string // json|text
	Output    string // stdout|stderr|file path
	Component string
}

// Logger wraps slog.Logger so every package can scope itself with a component name.
type Logger struct {
	*slog.Logger
	output io.Writer
}

func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Output: "stdout"}
}

func New(cfg Config) *Logger {
	var out io.Writer
	switch cfg.Output {
	case "", "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		if f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			out = f
		} else {
			out = os.Stdout
		}
	}
	return NewWithWriter(cfg, out)
}

// NewWithWriter builds a logger that writes to w; tests use it to capture output.
func NewWithWriter(cfg Config, w io.Writer) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	var h slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	l := slog.New(h)
	if cfg.Component != "" {
		l = l.With("component", cfg.Component)
	}
	return &Logger{Logger: l, output: w}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriter(Config{Level: "error"}, io.Discard)
}

func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With("component", component), output: l.output}
}

// Close releases the file handle when the logger writes to a file.
func (l *Logger) Close() error {
	if f, ok := l.output.(*os.File); ok && f != os.Stdout && f != os.Stderr {
		return f.Close()
	}
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OrDiscard lets constructors accept a nil logger.
func OrDiscard(l *Logger) *Logger {
	if l == nil {
		return Discard()
	}
	return l
}
