package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/ktr0731/llgen/driver"
	"github.com/ktr0731/llgen/grammar"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar-file> <tokens-file>",
		Short:   "Drive a grammar's parse table over a token stream",
		Example: `  llgen parse expr.llgen tokens.txt`,
		Args:    cobra.ExactArgs(2),
		RunE:    runParse,
	}
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	grmPath, tokPath := args[0], args[1]

	src, err := ioutil.ReadFile(grmPath)
	if err != nil {
		return fmt.Errorf("cannot read grammar file %s: %w", grmPath, err)
	}
	g, err := grammar.Load(string(src))
	if err != nil {
		return err
	}

	tokSrc, err := ioutil.ReadFile(tokPath)
	if err != nil {
		return fmt.Errorf("cannot read token file %s: %w", tokPath, err)
	}
	syms, err := driver.ParseTokenNames(g, string(tokSrc))
	if err != nil {
		return err
	}
	if len(syms) == 0 || !syms[len(syms)-1].IsEOF() {
		syms = append(syms, grammar.EOF)
	}

	stream := driver.NewTokenStream(syms)
	err = driver.Predictive(g, stream, func(s driver.Step) {
		fmt.Fprintf(os.Stdout, "%d %v\n", s.Number, s.Stack)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "accepted")
	return nil
}
