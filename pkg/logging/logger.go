package logging

import (
	"bytes"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// Logger is a wrapper around log.Logger from the charmbracelet/log package.
// Buffer is non-nil only for loggers created with NewTestLogger.
type Logger struct {
	*log.Logger
	Buffer *bytes.Buffer
}

var (
	logger *Logger
	mu     sync.Mutex
)

// CreateLogger sets up the process-wide logger. It is safe to call more than
// once; subsequent calls are no-ops.
func CreateLogger() {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		return
	}

	baseLogger := log.New(os.Stderr)

	if os.Getenv("DEBUG") == "1" {
		baseLogger = log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			Prefix:          "nde-assistant",
		})
		baseLogger.SetLevel(log.DebugLevel)
	} else {
		baseLogger.SetLevel(log.InfoLevel)
	}

	logger = &Logger{Logger: baseLogger}
}

// GetLogger returns the process-wide Logger instance, initializing it if needed.
func GetLogger() *Logger {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l == nil {
		CreateLogger()
		return GetLogger()
	}
	return l
}

// NewTestLogger returns a logger that writes to an in-memory buffer so tests
// can assert on log output.
func NewTestLogger() *Logger {
	var buf bytes.Buffer
	baseLogger := log.New(&buf)
	baseLogger.SetLevel(log.DebugLevel)
	return &Logger{Logger: baseLogger, Buffer: &buf}
}

// GetOutput returns everything logged so far on a test logger.
func (l *Logger) GetOutput() string {
	if l.Buffer == nil {
		return ""
	}
	return l.Buffer.String()
}

// ResetForTest clears the process-wide logger so tests can re-create it.
func ResetForTest() {
	mu.Lock()
	logger = nil
	mu.Unlock()
}
