// Package logging writes the error log and the optional JSON trace of a
// popup run to one file. Several popups may share the file, so every line
// carries the writer's pid.
package logging

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "tmux-jump.log"

// sink is the open log file. It is opened on the first write after
// Configure and kept open until the next Configure or Close.
type sink struct {
	file *os.File
	errs *log.Logger
	enc  *json.Encoder
}

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	out          *sink
)

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Path returns the configured log file.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Close flushes and releases the log file. Later writes reopen it.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// Error appends err to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	if s := openLocked(); s != nil {
		s.errs.Println(err)
	}
}

// Trace appends a structured JSON entry when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !traceEnabled {
		return
	}
	s := openLocked()
	if s == nil {
		return
	}
	entry := struct {
		Time    time.Time   `json:"time"`
		PID     int         `json:"pid"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		PID:     os.Getpid(),
		Event:   event,
		Payload: payload,
	}
	if err := s.enc.Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
	}
}

func openLocked() *sink {
	if out != nil {
		return out
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return nil
	}
	out = &sink{
		file: f,
		errs: log.New(f, fmt.Sprintf("[%d] ", os.Getpid()), log.LstdFlags),
		enc:  json.NewEncoder(f),
	}
	return out
}

func closeLocked() error {
	if out == nil {
		return nil
	}
	err := out.file.Close()
	out = nil
	return err
}
