package calculator

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFloat_Marshal(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"integer", 8, `8`},
		{"fraction", 2.5, `2.5`},
		{"positive infinity", math.Inf(1), `"+Inf"`},
		{"negative infinity", math.Inf(-1), `"-Inf"`},
		{"not a number", math.NaN(), `"NaN"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(JSONFloat(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestJSONFloat_Unmarshal(t *testing.T) {
	var f JSONFloat
	require.NoError(t, json.Unmarshal([]byte(`"-Inf"`), &f))
	assert.True(t, math.IsInf(float64(f), -1))

	require.NoError(t, json.Unmarshal([]byte(`"NaN"`), &f))
	assert.True(t, math.IsNaN(float64(f)))

	require.NoError(t, json.Unmarshal([]byte(`1.5`), &f))
	assert.Equal(t, JSONFloat(1.5), f)

	assert.Error(t, json.Unmarshal([]byte(`"seven"`), &f))
}

func TestResult_JSONOverflow(t *testing.T) {
	calc := New(DefaultName)
	res, err := calc.Apply(OpAdd, []float64{1e308, 1e308})
	require.NoError(t, err, "overflow follows float semantics and is not an error")
	require.True(t, math.IsInf(res.Value, 1))

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"operation":"add","operands":[1e308,1e308],"value":"+Inf"}`, string(data))

	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, OpAdd, decoded.Operation)
	assert.Equal(t, []float64{1e308, 1e308}, decoded.Operands)
	assert.True(t, math.IsInf(decoded.Value, 1))
}

func TestResult_JSONNaNOperand(t *testing.T) {
	res, err := New(DefaultName).Apply(OpMean, []float64{math.NaN(), 1})
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"operation":"mean","operands":["NaN",1],"value":"NaN"}`, string(data))
}
