package calculator

import "fmt"

// Operation names shared by the CLI, the expression evaluator and the MCP tools
const (
	OpAdd      = "add"
	OpSubtract = "subtract"
	OpMean     = "mean"
)

// Result records one completed evaluation
type Result struct {
	Operation string    `json:"operation" yaml:"operation"`
	Operands  []float64 `json:"operands" yaml:"operands"`
	Value     float64   `json:"value" yaml:"value"`
}

// Apply runs the named operation against operands and returns the Result.
// add and subtract take exactly two operands; mean takes any non-empty list.
func (c *Calculator) Apply(op string, operands []float64) (*Result, error) {
	res := &Result{Operation: op, Operands: operands}

	switch op {
	case OpAdd, OpSubtract:
		if len(operands) != 2 {
			return nil, fmt.Errorf("%w: %s takes 2 operands, got %d", ErrInvalidArgument, op, len(operands))
		}
		if op == OpAdd {
			res.Value = c.Add(operands[0], operands[1])
		} else {
			res.Value = c.Subtract(operands[0], operands[1])
		}
	case OpMean:
		v, err := c.Mean(operands)
		if err != nil {
			return nil, err
		}
		res.Value = v
	default:
		return nil, fmt.Errorf("%w: unknown operation %q", ErrInvalidArgument, op)
	}

	return res, nil
}
