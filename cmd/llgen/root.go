package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "llgen",
	Short: "Build an LL(1) predictive-parsing table from a grammar",
	Long: `llgen provides two features:
- Compiles a grammar file into a rewritten grammar dump and a parse table.
- Drives the parse table over a token stream, for debugging the grammar.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. main prints the returned error to
// stderr and exits non-zero; Execute itself already does the same so
// that cobra's own usage output and ours agree.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
