// Package numbers turns user input into operands: command-line words or
// values selected from a JSON document with a jq query.
package numbers

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/githubnext/calcg/internal/calculator"
	"github.com/githubnext/calcg/internal/logger"
	"github.com/itchyny/gojq"
)

var logNumbers = logger.New("numbers:parse")

// DefaultQuery selects every element of a top-level JSON array
const DefaultQuery = ".[]"

// Parse converts each argument to a float64. Failures wrap calculator.ErrInvalidArgument
// and name the 1-based position of the offending argument.
func Parse(args []string) ([]float64, error) {
	values := make([]float64, 0, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: operand %d (%q) is not a number", calculator.ErrInvalidArgument, i+1, arg)
		}
		values = append(values, v)
	}
	return values, nil
}

// FromJSON runs query over the JSON document in data and collects every number it emits.
// An empty query means DefaultQuery. Arrays emitted by the query are flattened one level.
func FromJSON(data []byte, query string) ([]float64, error) {
	if strings.TrimSpace(query) == "" {
		query = DefaultQuery
	}
	logNumbers.Printf("Extracting numbers with query %q from %d bytes", query, len(data))

	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("invalid jq query %q: %w", query, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON input: %w", err)
	}

	var values []float64
	iter := parsed.Run(doc)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("jq query failed: %w", err)
		}

		if arr, isArr := v.([]any); isArr {
			for _, elem := range arr {
				n, err := toFloat(elem)
				if err != nil {
					return nil, err
				}
				values = append(values, n)
			}
			continue
		}

		n, err := toFloat(v)
		if err != nil {
			return nil, err
		}
		values = append(values, n)
	}

	logNumbers.Printf("Extracted %d numbers", len(values))
	return values, nil
}

// toFloat accepts the numeric types gojq emits
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case *big.Int:
		f, _ := new(big.Float).SetInt(n).Float64()
		return f, nil
	default:
		return 0, fmt.Errorf("%w: jq query produced non-numeric value %v", calculator.ErrInvalidArgument, v)
	}
}
