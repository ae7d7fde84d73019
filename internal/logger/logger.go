package logger

import (
	"sync"
)

// Textual log levels accepted in config. Anything else falls back to info.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	instance *Logger
	once     sync.Once
)

// Get returns the process-wide logger. The level only matters on the first
// call; later callers share the instance that already exists.
func Get(level string) *Logger {
	once.Do(func() {
		instance = newZapLogger(level)
	})
	return instance
}
