// Package logger writes the panel's diagnostic log. The TUI owns the terminal,
// so nothing is ever printed to stdout; everything goes to a log file.
//
// Callers take a component logger and log structured records:
//
//	log := logger.WithComponent("bridge")
//	log.Info("call finished", "method", "execute", "elapsed", d)
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// DefaultLogPath is where the log goes when Init was never called.
const DefaultLogPath = "/tmp/cadcopilot-debug.log"

// sink is the process-wide log destination.
type sink struct {
	mu    sync.Mutex
	file  *os.File
	path  string
	root  *slog.Logger
	level slog.LevelVar
}

var std sink

// SetDebug switches between debug and info level. It applies to loggers
// already handed out.
func SetDebug(enabled bool) {
	if enabled {
		std.level.Set(slog.LevelDebug)
	} else {
		std.level.Set(slog.LevelInfo)
	}
}

// Init opens the log file at path. Once a log is open, later calls are
// no-ops until Reset.
func Init(path string) error {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.root != nil {
		return nil
	}
	return std.open(path)
}

// open must be called with mu held.
func (s *sink) open(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log %s: %w", path, err)
	}
	s.file, s.path = f, path
	s.root = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: &s.level}))
	s.root.Info("log opened", "path", path)
	return nil
}

// WithComponent returns a logger tagged with component. The log is opened
// at DefaultLogPath if Init has not run; if that fails records are dropped.
func WithComponent(component string) *slog.Logger {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.root == nil {
		if err := std.open(DefaultLogPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			return slog.New(slog.DiscardHandler)
		}
	}
	return std.root.With("component", component)
}

// Path returns the log file path, or "" before the log is opened.
func Path() string {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.path
}

// Close closes the log file. Path still reports where it was.
func Close() {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.closeFile()
}

// Reset closes the log and forgets its path and level, so tests can call
// Init again.
func Reset() {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.closeFile()
	std.path = ""
	std.level.Set(slog.LevelInfo)
}

func (s *sink) closeFile() {
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
	s.root = nil
}
