package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ktr0731/llgen/grammar"
	"github.com/ktr0731/llgen/internal/config"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
	force  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile <grammar-file>",
		Short:   "Compile a grammar into a rewritten dump and a parse table",
		Example: `  llgen compile grammar.llgen -o build/`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output directory (default: next to the input file)")
	compileFlags.force = cmd.Flags().Bool("force", false, "overwrite an existing dump/table file")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	grmPath := args[0]

	src, err := ioutil.ReadFile(grmPath)
	if err != nil {
		return fmt.Errorf("cannot read grammar file %s: %w", grmPath, err)
	}

	g, err := grammar.Load(string(src))
	if err != nil {
		return err
	}

	cfg := config.Default()
	cfg.OutputDir = *compileFlags.output
	cfg.Overwrite = *compileFlags.force

	dumpPath, tablePath := outputPaths(grmPath, cfg)

	if !cfg.Overwrite {
		for _, p := range []string{dumpPath, tablePath} {
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("%s already exists; pass --force to overwrite", p)
			}
		}
	}

	if err := ioutil.WriteFile(dumpPath, []byte(grammar.DumpGrammar(g)), 0644); err != nil {
		return fmt.Errorf("cannot write grammar dump: %w", err)
	}
	if err := ioutil.WriteFile(tablePath, []byte(grammar.DumpParseTable(g)), 0644); err != nil {
		return fmt.Errorf("cannot write parse table dump: %w", err)
	}

	fmt.Fprintf(os.Stdout, "wrote %s and %s\n", dumpPath, tablePath)
	return nil
}

// outputPaths returns the <input>.dump and <input>.table paths, relocated
// into cfg.OutputDir when one is given.
func outputPaths(grmPath string, cfg config.Config) (dumpPath, tablePath string) {
	base := filepath.Base(grmPath)
	dir := filepath.Dir(grmPath)
	if cfg.OutputDir != "" {
		dir = cfg.OutputDir
	}
	return filepath.Join(dir, base+".dump"), filepath.Join(dir, base+".table")
}
