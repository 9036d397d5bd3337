// Package logger owns the process-wide structured logger. Every command
// that works inside a workspace appends JSON records to
// <workspace>/.invoicer/logs/invoicer.log.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	stateDir = ".invoicer"
	fileName = "invoicer.log"

	// DefaultMaxBytes is the size at which the log is rotated to invoicer.log.1.
	DefaultMaxBytes int64 = 5 << 20
)

type Config struct {
	Root  string
	Debug bool
	// MaxBytes rotates an existing log larger than this before opening it.
	// Zero means DefaultMaxBytes; negative disables rotation.
	MaxBytes int64
}

type state struct {
	log  *slog.Logger
	file *os.File
	path string
}

var (
	mu  sync.RWMutex
	cur = state{log: discard()}
)

// Setup installs a JSON logger writing to the workspace log file. If the
// file cannot be opened the logger keeps discarding and the error is returned.
func Setup(cfg Config) (func() error, error) {
	root := cfg.Root
	if root == "" {
		root = "."
	}

	dir := filepath.Join(filepath.Clean(root), stateDir, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		reset()
		return nil, fmt.Errorf("logger: %w", err)
	}

	path := filepath.Join(dir, fileName)
	if err := rotate(path, cfg.maxBytes()); err != nil {
		reset()
		return nil, fmt.Errorf("logger: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		reset()
		return nil, fmt.Errorf("logger: %w", err)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	l := slog.New(jsonHandler(f, level, cfg.Debug))

	mu.Lock()
	cur = state{log: l, file: f, path: path}
	mu.Unlock()

	l.Debug("logger.ready", "path", path)

	return func() error {
		mu.Lock()
		defer mu.Unlock()
		if cur.file != f {
			return nil
		}
		cur = state{log: discard()}
		return f.Close()
	}, nil
}

func (c Config) maxBytes() int64 {
	if c.MaxBytes == 0 {
		return DefaultMaxBytes
	}
	return c.MaxBytes
}

// rotate keeps a single previous generation.
func rotate(path string, limit int64) error {
	if limit < 0 {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Size() < limit {
		return nil
	}
	return os.Rename(path, path+".1")
}

func jsonHandler(w io.Writer, level slog.Level, addSource bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	})
}

// L returns the current logger; before Setup it discards everything.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return cur.log
}

// Path is the active log file, or "" when logging is disabled.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return cur.path
}

func IsReady() error {
	mu.RLock()
	defer mu.RUnlock()
	if cur.file == nil {
		return errors.New("logger not initialized")
	}
	return nil
}

func reset() {
	mu.Lock()
	defer mu.Unlock()
	cur = state{log: discard()}
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
