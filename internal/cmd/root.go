package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/githubnext/calcg/internal/calculator"
	"github.com/githubnext/calcg/internal/config"
	"github.com/githubnext/calcg/internal/logger"
	"github.com/githubnext/calcg/internal/output"
	"github.com/spf13/cobra"
)

const (
	defaultConfigFile = "calcg.toml"
	// defaultLogDir is empty: file logging stays off unless a directory is configured
	defaultLogDir    = ""
	logDirEnvVar     = "CALCG_LOG_DIR"
	logFileName      = "calcg.log"
	operationLogName = "operations.jsonl"
)

var (
	debugLog = logger.New("cmd:root")
	version  = "dev" // Default version, overridden by SetVersion
	rootCmd  = NewRootCmd()
)

// rootOptions holds the persistent flags and the state built from them before a command runs
type rootOptions struct {
	configFile string
	output     string
	name       string
	precision  int
	logDir     string

	cfg  *config.Config
	calc *calculator.Calculator
	out  *output.Formatter
}

// NewRootCmd builds the calcg command tree. Running it without a subcommand prints the demo.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "calcg",
		Short:   "A small calculator: add, subtract, mean and greet",
		Version: version,
		Long: `calcg is a small calculator. Without a subcommand it runs a fixed demonstration:

  greet Alice, 3 + 5, 10 - 4 and the mean of [1, 2, 3, 4].

Settings are read from calcg.toml (or the file given with --config, TOML or YAML)
and can be overridden with flags. Set DEBUG=* to see debug output on stderr.`,
		Args:               cobra.NoArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  opts.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return closeLoggers() },
		RunE:               opts.runDemo,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", defaultConfigFile, "Path to config file (.toml, .yaml or .yml)")
	flags.StringVarP(&opts.output, "output", "o", "text", "Output format: text, json or yaml")
	flags.StringVar(&opts.name, "name", calculator.DefaultName, "Display name of the calculator")
	flags.IntVar(&opts.precision, "precision", -1, "Digits after the decimal point, rounded half away from zero (0-6; -1 keeps up to six and drops trailing zeros)")
	flags.StringVar(&opts.logDir, "log-dir", getDefaultLogDir(), "Directory for calcg.log and operations.jsonl (empty disables file logging, env: "+logDirEnvVar+")")

	cmd.AddCommand(
		newAddCmd(opts),
		newSubtractCmd(opts),
		newMeanCmd(opts),
		newGreetCmd(opts),
		newEvalCmd(opts),
		newServeCmd(opts),
		newCompletionCmd(),
	)
	registerFlagCompletions(cmd)

	return cmd
}

// setup loads the config, applies flag overrides and opens the log files
func (o *rootOptions) setup(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	var cfg *config.Config
	var err error
	if flags.Changed("config") {
		cfg, err = config.LoadFromFile(o.configFile)
	} else {
		cfg, err = config.LoadOptional(o.configFile)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if flags.Changed("name") {
		cfg.Name = o.name
	}
	if flags.Changed("precision") {
		cfg.Precision = o.precision
	}
	if flags.Changed("log-dir") || cfg.LogDir == "" {
		cfg.LogDir = o.logDir
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if cfg.LogDir != "" {
		if err := logger.InitFileLogger(cfg.LogDir, logFileName); err != nil {
			return fmt.Errorf("failed to initialize file logger: %w", err)
		}
		if err := logger.InitOperationLogger(cfg.LogDir, operationLogName); err != nil {
			logger.LogWarn("cmd", "Operation log disabled: %v", err)
		}
	}

	out, err := output.New(cfg.Output, cfg.Precision, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.calc = calculator.New(cfg.Name)
	o.out = out

	debugLog.Printf("Command %q ready: name=%s, output=%s, precision=%d, logDir=%q",
		cmd.Name(), cfg.Name, cfg.Output, cfg.Precision, cfg.LogDir)
	logger.LogInfo("cmd", "Running %s with calculator %q", cmd.CommandPath(), cfg.Name)
	return nil
}

// demoReport is the structured form of the demo output
type demoReport struct {
	Calculator string               `json:"calculator" yaml:"calculator"`
	Greeting   string               `json:"greeting" yaml:"greeting"`
	Results    []*calculator.Result `json:"results" yaml:"results"`
}

// runDemo greets Alice and exercises each operation once
func (o *rootOptions) runDemo(cmd *cobra.Command, args []string) error {
	report := demoReport{
		Calculator: o.calc.Name(),
		Greeting:   calculator.Greet("Alice"),
	}

	steps := []struct {
		op       string
		operands []float64
	}{
		{calculator.OpAdd, []float64{3, 5}},
		{calculator.OpSubtract, []float64{10, 4}},
		{calculator.OpMean, []float64{1, 2, 3, 4}},
	}
	for _, step := range steps {
		res, err := o.apply(step.op, step.operands)
		if err != nil {
			return err
		}
		report.Results = append(report.Results, res)
	}

	return o.out.Print(report, func(w io.Writer) {
		fmt.Fprintln(w, report.Greeting)
		for _, res := range report.Results {
			fmt.Fprintln(w, o.out.Result(res))
		}
	})
}

// apply runs one calculator operation and records it in the logs
func (o *rootOptions) apply(op string, operands []float64) (*calculator.Result, error) {
	res, err := o.calc.Apply(op, operands)
	if err != nil {
		debugLog.Printf("%s failed: %v", op, err)
		logger.LogOperation(o.calc.Name(), "cli", op, operands, 0, err)
		return nil, err
	}
	logger.LogOperation(o.calc.Name(), "cli", op, operands, res.Value, nil)
	return res, nil
}

// printResult writes res in the configured format
func (o *rootOptions) printResult(res *calculator.Result) error {
	return o.out.Print(res, func(w io.Writer) {
		fmt.Fprintln(w, o.out.Result(res))
	})
}

// getDefaultLogDir returns the log directory from the environment, or defaultLogDir
func getDefaultLogDir() string {
	if dir := os.Getenv(logDirEnvVar); dir != "" {
		return dir
	}
	return defaultLogDir
}

func closeLoggers() error {
	opErr := logger.CloseOperationLogger()
	if err := logger.CloseGlobalLogger(); err != nil {
		return err
	}
	return opErr
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		logger.LogError("cmd", "%v", err)
		closeLoggers()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
