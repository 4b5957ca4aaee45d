// Package eval evaluates arithmetic expressions that may call the calculator's
// operations as functions: add(a, b), subtract(a, b) and mean(...).
package eval

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/githubnext/calcg/internal/calculator"
	"github.com/githubnext/calcg/internal/logger"
)

var logEval = logger.New("eval:expr")

// Evaluate compiles and runs expression. Operator arithmetic (+ - * / % **) is
// handled by expr; the named functions are routed through calc so that each call
// is recorded in the operation log. A failing mean() is returned as-is, so
// errors.Is(err, calculator.ErrInvalidArgument) holds.
func Evaluate(calc *calculator.Calculator, expression string) (float64, error) {
	if strings.TrimSpace(expression) == "" {
		return 0, fmt.Errorf("%w: empty expression", calculator.ErrInvalidArgument)
	}
	logEval.Printf("Evaluating %q", expression)

	// opErr keeps the calculator's own error; expr wraps function errors in its own type
	var opErr error
	call := func(op string, params []any) (any, error) {
		operands, err := toOperands(params)
		if err != nil {
			opErr = err
			return nil, err
		}
		res, err := calc.Apply(op, operands)
		logger.LogOperation(calc.Name(), "eval", op, operands, valueOf(res), err)
		if err != nil {
			opErr = err
			return nil, err
		}
		return res.Value, nil
	}

	program, err := expr.Compile(expression,
		expr.DisableBuiltin("mean"),
		expr.Function(calculator.OpAdd, func(params ...any) (any, error) {
			return call(calculator.OpAdd, params)
		}),
		expr.Function(calculator.OpSubtract, func(params ...any) (any, error) {
			return call(calculator.OpSubtract, params)
		}),
		expr.Function(calculator.OpMean, func(params ...any) (any, error) {
			// mean([1, 2]) and mean(1, 2) are equivalent
			if len(params) == 1 {
				if list, ok := params[0].([]any); ok {
					params = list
				}
			}
			return call(calculator.OpMean, params)
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("invalid expression: %w", err)
	}

	out, err := expr.Run(program, nil)
	if opErr != nil {
		return 0, opErr
	}
	if err != nil {
		return 0, fmt.Errorf("evaluation error: %w", err)
	}

	value, err := toFloat(out)
	if err != nil {
		return 0, fmt.Errorf("expression did not produce a number: %w", err)
	}
	logEval.Printf("Result: %v", value)
	return value, nil
}

func valueOf(res *calculator.Result) float64 {
	if res == nil {
		return 0
	}
	return res.Value
}

func toOperands(params []any) ([]float64, error) {
	operands := make([]float64, len(params))
	for i, p := range params {
		f, err := toFloat(p)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d: %v", calculator.ErrInvalidArgument, i+1, err)
		}
		operands[i] = f
	}
	return operands, nil
}

// toFloat accepts the numeric types expr produces for literals and arithmetic
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%v (%T) is not a number", v, v)
	}
}
