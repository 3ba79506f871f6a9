// Package logger writes the diagnostic log (cmdhandler.log in the data dir).
// Nothing is written until Init is called.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
)

var (
	slogLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	levelVar   = new(slog.LevelVar)
	logFile    *os.File
	mu         sync.Mutex
	initDone   bool
	sessionID  string
	logPath    string
)

// SetDebug toggles debug level output.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Init opens path for appending and tags every record with a fresh session id.
// Calling it again is a no-op.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logFile = f
	logPath = path
	sessionID = uuid.NewString()
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar})
	slogLogger = slog.New(handler).With(slog.String("session", sessionID))
	initDone = true

	slogLogger.Debug("logger initialized", "path", path, "pid", os.Getpid())
	return nil
}

func logWithLevel(level slog.Level, format string, args ...any) {
	mu.Lock()
	l := slogLogger
	mu.Unlock()

	if !l.Enabled(context.Background(), level) {
		return
	}
	l.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

func Debug(format string, args ...any) { logWithLevel(slog.LevelDebug, format, args...) }

func Info(format string, args ...any) { logWithLevel(slog.LevelInfo, format, args...) }

func Warn(format string, args ...any) { logWithLevel(slog.LevelWarn, format, args...) }

func Error(format string, args ...any) { logWithLevel(slog.LevelError, format, args...) }

// ComponentLogger returns a logger with the component attribute attached.
//
//	log := logger.ComponentLogger("store")
//	log.Info("opened", "path", p)
func ComponentLogger(component string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return slogLogger.With(slog.String("component", component))
}

// WithSession returns a logger with an explicit session attribute, for
// records that belong to a session other than the current process.
func WithSession(id string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return slogLogger.With(slog.String("session", id))
}

// SessionID is the id attached to records since Init, or "".
func SessionID() string {
	mu.Lock()
	defer mu.Unlock()
	return sessionID
}

// Path is the file passed to Init, or "".
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	slogLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Reset returns the package to its pre-Init state. Used by tests.
func Reset() {
	Close()
	mu.Lock()
	defer mu.Unlock()
	initDone = false
	sessionID = ""
	logPath = ""
	levelVar = new(slog.LevelVar)
}
