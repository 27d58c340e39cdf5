// Package logging wires zap for the player. The TUI owns the terminal,
// so logs never go to stdout: verbose mode writes structured entries to a
// file, anything else is a nop logger. Subsystems get named children so
// entries read gate/widget/watch at a glance.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.RWMutex
	root = zap.NewNop()
)

// Init configures the process logger. With verbose false it stays a nop.
// Log files land in dir (created if needed), one file per run.
func Init(dir string, verbose bool) error {
	if !verbose {
		return nil
	}
	if dir == "" {
		dir = ".pitch"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("logging: create %s: %w", dir, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{filepath.Join(dir, "pitch.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("logging: build zap: %w", err)
	}

	mu.Lock()
	root = logger
	mu.Unlock()
	return nil
}

// L returns the process logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// Named returns a subsystem child logger (e.g. "gate", "widget", "watch").
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Sync flushes buffered entries. Safe to call on the nop logger.
func Sync() {
	_ = L().Sync()
}
