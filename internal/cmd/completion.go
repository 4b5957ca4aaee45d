package cmd

import (
	"fmt"
	"io"

	"github.com/githubnext/calcg/internal/output"
	"github.com/spf13/cobra"
)

// completionGenerators maps a shell name to the cobra generator for it
var completionGenerators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// newCompletionCmd prints a shell completion script for calcg
func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion <bash|zsh|fish|powershell>",
		Short: "Print a shell completion script",
		Long: `Print a completion script for calcg. Besides subcommand names it completes
--output with text, json and yaml, --config with .toml/.yaml/.yml files and
mean --json-file with .json files.

  source <(calcg completion bash)
  calcg completion zsh > "${fpath[1]}/_calcg"
  calcg completion fish > ~/.config/fish/completions/calcg.fish
  calcg completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, ok := completionGenerators[args[0]]
			if !ok {
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
			return gen(cmd.Root(), cmd.OutOrStdout())
		},
	}

	// Printing a script needs no config or loggers
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return nil
	}

	return cmd
}

// registerFlagCompletions wires value completion for the root's persistent flags
func registerFlagCompletions(root *cobra.Command) {
	_ = root.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{output.FormatText, output.FormatJSON, output.FormatYAML}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = root.MarkPersistentFlagFilename("config", "toml", "yaml", "yml")
	_ = root.MarkPersistentFlagDirname("log-dir")
}
