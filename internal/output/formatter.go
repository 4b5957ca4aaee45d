// Package output renders command results as text, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-yaml"
)

// Supported formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formatter writes values in the configured format
type Formatter struct {
	Format    string
	Precision int // digits after the decimal point, rounded; -1 renders up to six
	Writer    io.Writer
}

// New creates a Formatter. A nil writer means stdout.
func New(format string, precision int, w io.Writer) (*Formatter, error) {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	if w == nil {
		w = os.Stdout
	}
	return &Formatter{Format: format, Precision: precision, Writer: w}, nil
}

// Print writes data. In text mode textFunc renders it; JSON and YAML marshal data directly.
func (f *Formatter) Print(data any, textFunc func(io.Writer)) error {
	switch f.Format {
	case FormatJSON:
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		out, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		_, err = f.Writer.Write(out)
		return err
	default:
		textFunc(f.Writer)
		return nil
	}
}

// Number renders n using the formatter's precision
func (f *Formatter) Number(n float64) string {
	return FormatNumber(n, f.Precision)
}

// List renders numbers as "[a, b, c]"
func (f *Formatter) List(numbers []float64) string {
	return FormatList(numbers, f.Precision)
}

// Outside [minPlain, maxPlain) non-zero numbers switch to exponent form
const (
	minPlain = 1e-6
	maxPlain = 1e21
)

// FormatNumber renders n without trailing zeros. A precision of -1 keeps up to six
// decimals; a non-negative precision rounds half away from zero to that many digits.
// Non-zero magnitudes below 1e-6 or from 1e21 up use the shortest exponent form
// ("1e-07", "1e+300") whatever the precision, as do +Inf, -Inf and NaN.
func FormatNumber(n float64, precision int) string {
	if abs := math.Abs(n); math.IsInf(n, 0) || math.IsNaN(n) || (n != 0 && (abs < minPlain || abs >= maxPlain)) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	if precision < 0 {
		return humanize.Ftoa(n)
	}

	scale := math.Pow(10, float64(precision))
	rounded := math.Round(n*scale) / scale
	if rounded == 0 {
		rounded = 0 // drop the sign of -0
	}
	return humanize.FtoaWithDigits(rounded, precision)
}

// FormatList renders numbers as a bracketed, comma-separated list
func FormatList(numbers []float64, precision int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = FormatNumber(n, precision)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
