package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/githubnext/calcg/internal/calculator"
	"github.com/githubnext/calcg/internal/eval"
	"github.com/spf13/cobra"
)

// evalReport is the structured form of the eval output
type evalReport struct {
	Expression string               `json:"expression" yaml:"expression"`
	Value      calculator.JSONFloat `json:"value" yaml:"value"`
}

func newEvalCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an arithmetic expression",
		Long: `Evaluate an expression using the operators + - * / % ** and the
calculator functions add(a, b), subtract(a, b) and mean(...):

  calcg eval 'add(3, 5) * 2'
  calcg eval 'mean([1, 2, 3, 4]) - subtract(10, 4)'

Arguments are joined with spaces, so quoting is optional for simple expressions.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expression := strings.Join(args, " ")

			value, err := eval.Evaluate(opts.calc, expression)
			if err != nil {
				return err
			}

			report := evalReport{Expression: expression, Value: calculator.JSONFloat(value)}
			return opts.out.Print(report, func(w io.Writer) {
				fmt.Fprintf(w, "%s = %s\n", expression, opts.out.Number(value))
			})
		},
	}
}
