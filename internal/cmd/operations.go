package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/githubnext/calcg/internal/calculator"
	"github.com/githubnext/calcg/internal/numbers"
	"github.com/spf13/cobra"
)

const negativeNumbersHelp = `Negative operands look like flags; put them after --:
  calcg %s -- -3 5`

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <a> <b>",
		Short: "Print a + b",
		Long:  "Add two numbers.\n\n" + fmt.Sprintf(negativeNumbersHelp, "add"),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runBinary(calculator.OpAdd, args)
		},
	}
}

func newSubtractCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "subtract <a> <b>",
		Aliases: []string{"sub"},
		Short:   "Print a - b",
		Long:    "Subtract the second number from the first.\n\n" + fmt.Sprintf(negativeNumbersHelp, "subtract"),
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runBinary(calculator.OpSubtract, args)
		},
	}
}

func (o *rootOptions) runBinary(op string, args []string) error {
	operands, err := numbers.Parse(args)
	if err != nil {
		return err
	}
	res, err := o.apply(op, operands)
	if err != nil {
		return err
	}
	return o.printResult(res)
}

func newMeanCmd(opts *rootOptions) *cobra.Command {
	var jsonFile, query string

	cmd := &cobra.Command{
		Use:   "mean [numbers...]",
		Short: "Print the arithmetic mean of a list of numbers",
		Long: `Compute the arithmetic mean of the given numbers.

Numbers come from the arguments, or from a JSON document with --json-file
(use - for stdin). --query selects the numbers with a jq expression; the
default ".[]" takes every element of a top-level array:

  calcg mean 1 2 3 4
  echo '{"data": [1, 2, 3, 4]}' | calcg mean --json-file - --query '.data[]'

The mean of an empty list is an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var values []float64
			var err error

			if jsonFile != "" {
				if len(args) > 0 {
					return fmt.Errorf("cannot combine number arguments with --json-file")
				}
				values, err = readJSONNumbers(cmd.InOrStdin(), jsonFile, query)
			} else {
				if cmd.Flags().Changed("query") {
					return fmt.Errorf("--query requires --json-file")
				}
				values, err = numbers.Parse(args)
			}
			if err != nil {
				return err
			}

			res, err := opts.apply(calculator.OpMean, values)
			if err != nil {
				return err
			}
			return opts.printResult(res)
		},
	}

	cmd.Flags().StringVar(&jsonFile, "json-file", "", "Read numbers from a JSON file (- for stdin)")
	cmd.Flags().StringVar(&query, "query", numbers.DefaultQuery, "jq expression selecting the numbers in the JSON document")
	_ = cmd.MarkFlagFilename("json-file", "json")

	return cmd
}

func readJSONNumbers(stdin io.Reader, path, query string) ([]float64, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON input: %w", err)
	}
	return numbers.FromJSON(data, query)
}

// greetReport is the structured form of the greet output
type greetReport struct {
	Username string `json:"username" yaml:"username"`
	Greeting string `json:"greeting" yaml:"greeting"`
}

func newGreetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "greet <username>",
		Short: "Print the welcome message for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report := greetReport{Username: args[0], Greeting: calculator.Greet(args[0])}
			return opts.out.Print(report, func(w io.Writer) {
				fmt.Fprintln(w, report.Greeting)
			})
		},
	}
}
