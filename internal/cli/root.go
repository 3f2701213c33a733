// Package cli provides the command-line interface and REPL shell for the
// facalc calculator engine.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"facalc"
)

// Version information (set at build time).
var Version = "0.1.0"

// NewRootCmd creates and returns the root command. With arguments it
// evaluates them as a single expression and exits; without, it starts the
// interactive shell.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	rootCmd := &cobra.Command{
		Use:   "facalc [expression]",
		Short: "Engineering-economy factor calculator",
		Long: `facalc evaluates engineering-economy interest factors and general
arithmetic, with user variables and nested case scopes.

Run without arguments for an interactive shell, or pass an expression to
evaluate it once:

  facalc 'A_P(2.5%, 10)'
  facalc 'F_A(7, 12) * 1000'`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if len(args) > 0 {
				return evalOnce(cmd.OutOrStdout(), cfg, strings.Join(args, " "))
			}
			return runREPL(cmd, cfg)
		},
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: ./facalc.yaml)")
	rootCmd.Flags().String("prompt", "factor> ", "shell prompt")
	rootCmd.Flags().String("color", "auto", "colorize output (auto|always|never)")
	rootCmd.Flags().String("history-file", "", "readline history file (empty for default)")
	rootCmd.Flags().IntP("precision", "p", -1, "significant digits in results (-1 for shortest)")

	_ = rootCmd.RegisterFlagCompletionFunc("color", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newFactorsCommand())
	return rootCmd
}

// newFactorsCommand creates the factors command, which prints the factor
// reference table.
func newFactorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "factors",
		Short: "Print the interest-factor reference table",
		Run: func(cmd *cobra.Command, _ []string) {
			factorTable(cmd.OutOrStdout())
		},
	}
}

// evalOnce evaluates one expression against a fresh session and prints the
// result, mirroring the shell's treatment of assignments and values.
func evalOnce(w io.Writer, cfg *Config, src string) error {
	sess := facalc.NewSession()
	oc, err := sess.Eval(src)
	if err != nil {
		return err
	}
	r := newRenderer(cfg)
	switch oc.Kind {
	case facalc.OutcomeValue:
		fmt.Fprintln(w, r.formatValue(oc.Value))
	case facalc.OutcomeAssign:
		fmt.Fprintf(w, "%s = %s\n", oc.Name, r.formatValue(oc.Value))
	}
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
