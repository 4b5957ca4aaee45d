// Package logger provides namespaced debug logging for calcg.
//
// Loggers are created per namespace with New and are enabled through the DEBUG
// environment variable, using the same pattern syntax as the debug npm package:
//
//	DEBUG=*                     enable everything
//	DEBUG=cmd:*                 enable one namespace tree
//	DEBUG=cmd:*,server:*        enable several
//	DEBUG=*,-config:validation  enable everything except one logger
//
// Enabled loggers write "namespace message +diff" lines to stderr. When a file
// logger has been initialized with InitFileLogger, the same message is mirrored
// there at DEBUG level without colour codes.
package logger

import (
	"fmt"
	"hash/fnv"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// Logger is a namespaced debug logger
type Logger struct {
	namespace string
	enabled   bool
	color     string

	mu   sync.Mutex
	last time.Time
}

const colorReset = "\033[0m"

// colorPalette holds the ANSI colours assigned to namespaces
var colorPalette = []string{
	"\033[38;5;33m",  // blue
	"\033[38;5;35m",  // green
	"\033[38;5;166m", // orange
	"\033[38;5;125m", // magenta
	"\033[38;5;37m",  // cyan
	"\033[38;5;136m", // yellow
	"\033[38;5;61m",  // purple
	"\033[38;5;160m", // red
}

var (
	// debugColors is false when DEBUG_COLORS=0
	debugColors = os.Getenv("DEBUG_COLORS") != "0"
	// isTTY reports whether stderr is a terminal
	isTTY = term.IsTerminal(int(os.Stderr.Fd()))
)

// New creates a logger for namespace. Whether it is enabled is decided once,
// from the DEBUG environment variable at creation time.
func New(namespace string) *Logger {
	return &Logger{
		namespace: namespace,
		enabled:   computeEnabled(namespace),
		color:     selectColor(namespace),
	}
}

// Enabled reports whether the logger writes anything
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Printf formats like fmt.Printf and writes the message when enabled
func (l *Logger) Printf(format string, args ...any) {
	if !l.enabled {
		return
	}
	l.write(fmt.Sprintf(format, args...))
}

// Print formats like fmt.Sprint and writes the message when enabled
func (l *Logger) Print(args ...any) {
	if !l.enabled {
		return
	}
	l.write(fmt.Sprint(args...))
}

func (l *Logger) write(message string) {
	l.mu.Lock()
	now := time.Now()
	var diff time.Duration
	if !l.last.IsZero() {
		diff = now.Sub(l.last)
	}
	l.last = now
	l.mu.Unlock()

	if l.color != "" {
		fmt.Fprintf(os.Stderr, "%s%s%s %s %s+%s%s\n", l.color, l.namespace, colorReset, message, l.color, formatDiff(diff), colorReset)
	} else {
		fmt.Fprintf(os.Stderr, "%s %s +%s\n", l.namespace, message, formatDiff(diff))
	}

	LogDebug(l.namespace, "%s", message)
}

// formatDiff renders the elapsed time since the previous message
func formatDiff(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d >= time.Second:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d >= time.Millisecond:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
}

// selectColor picks a stable colour for namespace, or "" when colours are off
func selectColor(namespace string) string {
	if !debugColors || !isTTY {
		return ""
	}
	h := fnv.New32a()
	h.Write([]byte(namespace))
	return colorPalette[h.Sum32()%uint32(len(colorPalette))]
}

// computeEnabled evaluates the DEBUG patterns for namespace.
// Exclusions (prefixed with -) win over inclusions.
func computeEnabled(namespace string) bool {
	debugEnv := os.Getenv("DEBUG")
	if debugEnv == "" {
		return false
	}

	enabled := false
	for _, pattern := range strings.Split(debugEnv, ",") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if strings.HasPrefix(pattern, "-") {
			if matchPattern(namespace, pattern[1:]) {
				return false
			}
			continue
		}
		if matchPattern(namespace, pattern) {
			enabled = true
		}
	}
	return enabled
}

// matchPattern matches namespace against a pattern containing at most one *
func matchPattern(namespace, pattern string) bool {
	if pattern == "*" {
		return true
	}

	idx := strings.Index(pattern, "*")
	if idx < 0 {
		return namespace == pattern
	}

	prefix := pattern[:idx]
	suffix := pattern[idx+1:]
	return len(namespace) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(namespace, prefix) &&
		strings.HasSuffix(namespace, suffix)
}
