package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// openLogFile creates logDir if needed and opens fileName inside it for appending.
// It does not fall back to stderr; callers decide what to do with the error.
func openLogFile(logDir, fileName string) (*os.File, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(logDir, fileName)
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// closeLogFile syncs and closes file. A sync failure is only reported through
// the standard logger so the descriptor is always released; the close error is returned.
// Callers hold the owning logger's mutex.
func closeLogFile(file *os.File, sinkName string) error {
	if file == nil {
		return nil
	}

	if err := file.Sync(); err != nil {
		log.Printf("WARNING: Failed to sync %s log file before close: %v", sinkName, err)
	}
	return file.Close()
}
