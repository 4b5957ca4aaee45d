package output

import (
	"fmt"

	"github.com/githubnext/calcg/internal/calculator"
)

// meanLabel prefixes rendered means, as in "Moyenne [1, 2, 3, 4] = 2.5"
const meanLabel = "Moyenne"

// ResultLine renders res the way the demo prints it, e.g. "3 + 5 = 8"
func ResultLine(res *calculator.Result, precision int) string {
	value := FormatNumber(res.Value, precision)

	switch res.Operation {
	case calculator.OpAdd, calculator.OpSubtract:
		sign := "+"
		if res.Operation == calculator.OpSubtract {
			sign = "-"
		}
		return fmt.Sprintf("%s %s %s = %s",
			FormatNumber(res.Operands[0], precision), sign, FormatNumber(res.Operands[1], precision), value)
	case calculator.OpMean:
		return fmt.Sprintf("%s %s = %s", meanLabel, FormatList(res.Operands, precision), value)
	default:
		return fmt.Sprintf("%s %s = %s", res.Operation, FormatList(res.Operands, precision), value)
	}
}

// Result renders res with the formatter's precision
func (f *Formatter) Result(res *calculator.Result) string {
	return ResultLine(res, f.Precision)
}
