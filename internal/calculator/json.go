package calculator

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// JSONFloat is a float64 that survives JSON encoding when it is not finite.
// +Inf, -Inf and NaN are written as the strings "+Inf", "-Inf" and "NaN";
// every other value is a plain JSON number.
type JSONFloat float64

// MarshalJSON implements json.Marshaler
func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(v)
}

// UnmarshalJSON accepts a JSON number or one of the strings written by MarshalJSON
func (f *JSONFloat) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "NaN", "+Inf", "-Inf":
			v, _ := strconv.ParseFloat(s, 64)
			*f = JSONFloat(v)
			return nil
		}
		return fmt.Errorf("invalid number %q", s)
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = JSONFloat(v)
	return nil
}

// JSONFloats converts values for encoding; nil stays nil
func JSONFloats(values []float64) []JSONFloat {
	if values == nil {
		return nil
	}
	out := make([]JSONFloat, len(values))
	for i, v := range values {
		out[i] = JSONFloat(v)
	}
	return out
}

func float64s(values []JSONFloat) []float64 {
	if values == nil {
		return nil
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// resultJSON is the wire form of Result
type resultJSON struct {
	Operation string      `json:"operation"`
	Operands  []JSONFloat `json:"operands"`
	Value     JSONFloat   `json:"value"`
}

// MarshalJSON writes non-finite operands and values as strings
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Operation: r.Operation,
		Operands:  JSONFloats(r.Operands),
		Value:     JSONFloat(r.Value),
	})
}

// UnmarshalJSON reads the form written by MarshalJSON
func (r *Result) UnmarshalJSON(data []byte) error {
	var wire resultJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.Operation = wire.Operation
	r.Operands = float64s(wire.Operands)
	r.Value = float64(wire.Value)
	return nil
}
