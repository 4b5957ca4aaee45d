package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFileLogger(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	require.NoError(t, InitFileLogger(logDir, "calcg.log"))
	defer CloseGlobalLogger()

	_, err := os.Stat(filepath.Join(logDir, "calcg.log"))
	assert.NoError(t, err, "log file should exist")
}

func TestFileLoggerFallback(t *testing.T) {
	// A regular file where the directory should be forces MkdirAll to fail
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	require.NoError(t, InitFileLogger(filepath.Join(blocker, "logs"), "calcg.log"))
	defer CloseGlobalLogger()

	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	assert.True(t, globalFileLogger.useFallback)
	assert.Nil(t, globalFileLogger.file)
	assert.NotNil(t, globalFileLogger.out, "fallback logger should write to stderr")
}

func TestFileLoggerLevels(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, InitFileLogger(logDir, "levels.log"))

	LogInfo("cmd", "info message")
	LogWarn("cmd", "warning with value: %d", 42)
	LogError("cmd", "error message")
	LogDebug("cmd", "debug message")
	require.NoError(t, CloseGlobalLogger())

	content, err := os.ReadFile(filepath.Join(logDir, "levels.log"))
	require.NoError(t, err)
	text := string(content)

	for _, want := range []string{
		"[INFO] [cmd] info message",
		"[WARN] [cmd] warning with value: 42",
		"[ERROR] [cmd] error message",
		"[DEBUG] [cmd] debug message",
	} {
		assert.Contains(t, text, want)
	}

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		assert.True(t, strings.HasPrefix(line, "["), "line should start with a timestamp: %s", line)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")

	require.NoError(t, InitFileLogger(logDir, "append.log"))
	LogInfo("cmd", "first run")
	require.NoError(t, CloseGlobalLogger())

	require.NoError(t, InitFileLogger(logDir, "append.log"))
	LogInfo("cmd", "second run")
	require.NoError(t, CloseGlobalLogger())

	content, err := os.ReadFile(filepath.Join(logDir, "append.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "first run")
	assert.Contains(t, string(content), "second run")
}

func TestFileLoggerConcurrentWrites(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, InitFileLogger(logDir, "concurrent.log"))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				LogInfo("server", "call %d from %d", j, id)
			}
		}(i)
	}
	wg.Wait()
	require.NoError(t, CloseGlobalLogger())

	content, err := os.ReadFile(filepath.Join(logDir, "concurrent.log"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(content)), "\n"), 100)
}

func TestLogWithoutFileLogger(t *testing.T) {
	require.NoError(t, CloseGlobalLogger())
	assert.NotPanics(t, func() {
		LogInfo("cmd", "dropped")
	})
	assert.NoError(t, CloseGlobalLogger(), "closing twice is a no-op")
}

func TestCloseLogFile(t *testing.T) {
	assert.NoError(t, closeLogFile(nil, "test"))

	path := filepath.Join(t.TempDir(), "close.log")
	file, err := os.Create(path)
	require.NoError(t, err)
	_, err = file.WriteString("kept\n")
	require.NoError(t, err)

	require.NoError(t, closeLogFile(file, "test"))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "kept\n", string(content))
}
