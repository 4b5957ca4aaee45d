package logger

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"math"
	"testing"

	"github.com/githubnext/calcg/internal/calculator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readOperations(t *testing.T, path string) []OperationEntry {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var entries []OperationEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry OperationEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry), "line: %s", scanner.Text())
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestLogOperation(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, InitOperationLogger(logDir, "operations.jsonl"))

	LogOperation("MaSuperCalc", "cli", "add", []float64{3, 5}, 8, nil)
	LogOperation("MaSuperCalc", "mcp", "mean", nil, 0, errors.New("invalid argument: cannot compute mean of empty collection"))
	require.NoError(t, CloseOperationLogger())

	entries := readOperations(t, filepath.Join(logDir, "operations.jsonl"))
	require.Len(t, entries, 2)

	assert.Equal(t, "MaSuperCalc", entries[0].Calculator)
	assert.Equal(t, "cli", entries[0].Source)
	assert.Equal(t, "add", entries[0].Operation)
	assert.Equal(t, []calculator.JSONFloat{3, 5}, entries[0].Operands)
	require.NotNil(t, entries[0].Value)
	assert.Equal(t, calculator.JSONFloat(8), *entries[0].Value)
	assert.Empty(t, entries[0].Error)
	assert.NotEmpty(t, entries[0].Timestamp)

	assert.Equal(t, "mean", entries[1].Operation)
	assert.Nil(t, entries[1].Value)
	assert.Contains(t, entries[1].Error, "empty collection")
}

func TestLogOperation_ZeroValueRecorded(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, InitOperationLogger(logDir, "zero.jsonl"))

	LogOperation("calc", "cli", "subtract", []float64{4, 4}, 0, nil)
	require.NoError(t, CloseOperationLogger())

	entries := readOperations(t, filepath.Join(logDir, "zero.jsonl"))
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Value, "a zero result is still a result")
	assert.Equal(t, calculator.JSONFloat(0), *entries[0].Value)
}

func TestLogOperation_NotInitialized(t *testing.T) {
	require.NoError(t, CloseOperationLogger())
	assert.NotPanics(t, func() {
		LogOperation("calc", "cli", "add", []float64{1, 2}, 3, nil)
	})
}

func TestInitOperationLogger_BadDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := InitOperationLogger(filepath.Join(blocker, "logs"), "ops.jsonl")
	assert.Error(t, err)
}

func TestOperationLogger_WriteAfterClose(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "ops.jsonl"))
	require.NoError(t, err)

	ol := &OperationLogger{file: file, encoder: json.NewEncoder(file)}
	require.NoError(t, ol.Close())

	err = ol.Write(&OperationEntry{Operation: "add"})
	assert.Error(t, err)
}

func TestLogOperation_NonFinite(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, InitOperationLogger(logDir, "operations.jsonl"))

	LogOperation("calc", "cli", "mean", []float64{math.NaN(), 1}, math.NaN(), nil)
	LogOperation("calc", "cli", "add", []float64{1e308, 1e308}, math.Inf(1), nil)
	require.NoError(t, CloseOperationLogger())

	entries := readOperations(t, filepath.Join(logDir, "operations.jsonl"))
	require.Len(t, entries, 2)
	require.NotNil(t, entries[0].Value)
	assert.True(t, math.IsNaN(float64(*entries[0].Value)))
	require.NotNil(t, entries[1].Value)
	assert.True(t, math.IsInf(float64(*entries[1].Value), 1))
}

func TestLogOperation_WriteFailureIsWarned(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, InitFileLogger(logDir, "calcg.log"))
	defer CloseGlobalLogger()
	require.NoError(t, InitOperationLogger(logDir, "operations.jsonl"))
	defer CloseOperationLogger()

	// Closing the descriptor underneath the logger makes the next write fail
	globalOperationMu.RLock()
	file := globalOperationLogger.file
	globalOperationMu.RUnlock()
	require.NoError(t, file.Close())

	assert.NotPanics(t, func() {
		LogOperation("calc", "cli", "add", []float64{1, 2}, 3, nil)
	})
	require.NoError(t, CloseGlobalLogger())

	content, err := os.ReadFile(filepath.Join(logDir, "calcg.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[WARN] [operations] Failed to record add operation")
}
