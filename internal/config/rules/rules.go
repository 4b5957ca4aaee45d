// Package rules holds the individual configuration checks shared by the config loader
// and the command-line flag overrides.
package rules

import (
	"fmt"
	"slices"
	"strings"
)

// Precision bounds accepted for number rendering; -1 means up to six digits without trailing zeros
const (
	MinPrecision = -1
	MaxPrecision = 6
)

// OutputFormats lists the supported values of the output setting
var OutputFormats = []string{"text", "json", "yaml"}

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	Field      string
	Message    string
	JSONPath   string
	Suggestion string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Configuration error at %s: %s", e.JSONPath, e.Message))
	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\nSuggestion: %s", e.Suggestion))
	}
	return sb.String()
}

// UndefinedVariable creates a ValidationError for a ${VAR} reference with no value in the environment
func UndefinedVariable(varName, jsonPath string) *ValidationError {
	return &ValidationError{
		Field:      "env variable",
		Message:    fmt.Sprintf("undefined environment variable referenced: %s", varName),
		JSONPath:   jsonPath,
		Suggestion: fmt.Sprintf("Set the environment variable %s before running calcg", varName),
	}
}

// OutputFormat validates the output setting
func OutputFormat(format, jsonPath string) *ValidationError {
	if slices.Contains(OutputFormats, format) {
		return nil
	}
	return &ValidationError{
		Field:      "output",
		Message:    fmt.Sprintf("unsupported output format '%s'", format),
		JSONPath:   jsonPath,
		Suggestion: fmt.Sprintf("Use one of: %s", strings.Join(OutputFormats, ", ")),
	}
}

// PrecisionRange validates that precision is between MinPrecision and MaxPrecision
func PrecisionRange(precision int, jsonPath string) *ValidationError {
	if precision < MinPrecision || precision > MaxPrecision {
		return &ValidationError{
			Field:      "precision",
			Message:    fmt.Sprintf("precision must be between %d and %d, got %d", MinPrecision, MaxPrecision, precision),
			JSONPath:   jsonPath,
			Suggestion: "Use -1 for the default rendering or a digit count such as 2",
		}
	}
	return nil
}
