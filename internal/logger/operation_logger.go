package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/githubnext/calcg/internal/calculator"
)

// OperationEntry is one line of the operation log
type OperationEntry struct {
	Timestamp  string                 `json:"timestamp"`
	Calculator string                 `json:"calculator"`
	Source     string                 `json:"source"` // "cli", "eval" or "mcp"
	Operation  string                 `json:"operation"`
	Operands   []calculator.JSONFloat `json:"operands,omitempty"`
	Value      *calculator.JSONFloat  `json:"value,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// OperationLogger appends OperationEntry values to a JSONL file, one object per line
type OperationLogger struct {
	mu      sync.Mutex
	file    *os.File
	encoder *json.Encoder
}

var (
	globalOperationLogger *OperationLogger
	globalOperationMu     sync.RWMutex
)

// InitOperationLogger installs the global operation log at logDir/fileName.
// Unlike InitFileLogger there is no fallback: the error is returned and operations go unrecorded.
func InitOperationLogger(logDir, fileName string) error {
	file, err := openLogFile(logDir, fileName)
	if err != nil {
		return err
	}

	ol := &OperationLogger{
		file:    file,
		encoder: json.NewEncoder(file),
	}

	globalOperationMu.Lock()
	defer globalOperationMu.Unlock()
	if globalOperationLogger != nil {
		globalOperationLogger.Close()
	}
	globalOperationLogger = ol
	return nil
}

// Close syncs and closes the JSONL file
func (ol *OperationLogger) Close() error {
	ol.mu.Lock()
	defer ol.mu.Unlock()

	err := closeLogFile(ol.file, "operation")
	ol.file = nil
	return err
}

// Write encodes entry as a single line and syncs it to disk
func (ol *OperationLogger) Write(entry *OperationEntry) error {
	ol.mu.Lock()
	defer ol.mu.Unlock()

	if ol.file == nil {
		return fmt.Errorf("operation logger not initialized")
	}

	if err := ol.encoder.Encode(entry); err != nil {
		return fmt.Errorf("failed to encode operation: %w", err)
	}
	if err := ol.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync operation log: %w", err)
	}
	return nil
}

// LogOperation records one evaluation in the global operation log.
// value is ignored when err is non-nil. A failed write is reported through LogWarn
// and does not affect the caller.
func LogOperation(calculatorName, source, operation string, operands []float64, value float64, err error) {
	entry := &OperationEntry{
		Timestamp:  time.Now().UTC().Format(time.RFC3339Nano),
		Calculator: calculatorName,
		Source:     source,
		Operation:  operation,
		Operands:   calculator.JSONFloats(operands),
	}
	if err != nil {
		entry.Error = err.Error()
	} else {
		v := calculator.JSONFloat(value)
		entry.Value = &v
	}

	globalOperationMu.RLock()
	var writeErr error
	if globalOperationLogger != nil {
		writeErr = globalOperationLogger.Write(entry)
	}
	globalOperationMu.RUnlock()

	// outside globalOperationMu
	if writeErr != nil {
		LogWarn("operations", "Failed to record %s operation: %v", operation, writeErr)
	}
}

// CloseOperationLogger closes and clears the global operation log
func CloseOperationLogger() error {
	globalOperationMu.Lock()
	defer globalOperationMu.Unlock()

	if globalOperationLogger == nil {
		return nil
	}
	err := globalOperationLogger.Close()
	globalOperationLogger = nil
	return err
}
