package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogLevel is the severity written in front of each file log line
type LogLevel string

const (
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
	LogLevelDebug LogLevel = "DEBUG"
)

// FileLogger writes timestamped, categorized lines to a file, or to stderr
// when the file could not be opened.
type FileLogger struct {
	mu          sync.Mutex
	file        *os.File
	out         *log.Logger
	useFallback bool
}

var (
	globalFileLogger *FileLogger
	globalLoggerMu   sync.RWMutex
)

// InitFileLogger installs the global file logger at logDir/fileName.
// If the file cannot be opened the logger writes to stderr instead, keeping stdout for command output and no error is returned.
func InitFileLogger(logDir, fileName string) error {
	fl := &FileLogger{}

	file, err := openLogFile(logDir, fileName)
	if err != nil {
		log.Printf("WARNING: Failed to initialize log file: %v", err)
		log.Printf("WARNING: Falling back to stderr for logging")
		fl.useFallback = true
		fl.out = log.New(os.Stderr, "", 0)
	} else {
		fl.file = file
		fl.out = log.New(file, "", 0)
	}

	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	if globalFileLogger != nil {
		globalFileLogger.Close()
	}
	globalFileLogger = fl

	if !fl.useFallback {
		log.Printf("Logging to file: %s", filepath.Join(logDir, fileName))
	}
	return nil
}

// Close syncs and closes the underlying file
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	err := closeLogFile(fl.file, "file")
	fl.file = nil
	fl.out = nil
	return err
}

// Log writes "[timestamp] [level] [category] message" and syncs it to disk
func (fl *FileLogger) Log(level LogLevel, category, format string, args ...any) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.out == nil {
		return
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	fl.out.Printf("[%s] [%s] [%s] %s", timestamp, level, category, fmt.Sprintf(format, args...))

	if fl.file != nil {
		if err := fl.file.Sync(); err != nil {
			log.Printf("WARNING: Failed to sync log file: %v", err)
		}
	}
}

func logGlobal(level LogLevel, category, format string, args ...any) {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()

	if globalFileLogger != nil {
		globalFileLogger.Log(level, category, format, args...)
	}
}

// LogInfo logs an informational message to the global file logger
func LogInfo(category, format string, args ...any) {
	logGlobal(LogLevelInfo, category, format, args...)
}

// LogWarn logs a warning to the global file logger
func LogWarn(category, format string, args ...any) {
	logGlobal(LogLevelWarn, category, format, args...)
}

// LogError logs an error to the global file logger
func LogError(category, format string, args ...any) {
	logGlobal(LogLevelError, category, format, args...)
}

// LogDebug logs a debug message to the global file logger
func LogDebug(category, format string, args ...any) {
	logGlobal(LogLevelDebug, category, format, args...)
}

// CloseGlobalLogger closes and clears the global file logger
func CloseGlobalLogger() error {
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()

	if globalFileLogger == nil {
		return nil
	}
	err := globalFileLogger.Close()
	globalFileLogger = nil
	return err
}
