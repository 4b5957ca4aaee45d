package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormat(t *testing.T) {
	for _, format := range []string{"text", "json", "yaml"} {
		assert.Nil(t, OutputFormat(format, "output"), "format %s", format)
	}

	err := OutputFormat("xml", "output")
	require.NotNil(t, err)
	assert.Equal(t, "output", err.Field)
	assert.Contains(t, err.Message, "xml")
	assert.Contains(t, err.Suggestion, "text, json, yaml")
}

func TestPrecisionRange(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		shouldErr bool
	}{
		{"default rendering", -1, false},
		{"zero digits", 0, false},
		{"max digits", 6, false},
		{"below minimum", -2, true},
		{"above maximum", 7, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := PrecisionRange(tt.precision, "precision")
			if tt.shouldErr {
				require.NotNil(t, err)
				assert.Equal(t, "precision", err.JSONPath)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := UndefinedVariable("CALC_NAME", "configuration")
	msg := err.Error()

	assert.Contains(t, msg, "Configuration error at configuration")
	assert.Contains(t, msg, "CALC_NAME")
	assert.Contains(t, msg, "Suggestion: Set the environment variable CALC_NAME")

	plain := &ValidationError{JSONPath: "name", Message: "bad"}
	assert.Equal(t, "Configuration error at name: bad", plain.Error())
}
