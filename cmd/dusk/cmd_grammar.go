package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/dhamidi/dusk/dusk/grammar"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Inspect the Dusk grammar",
	}

	cmd.AddCommand(newGrammarPrintCmd())
	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarAcceptCmd())

	return cmd
}

func newGrammarPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the grammar in EBNF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), grammar.Text())
			return err
		},
	}
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar, by default the built-in one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(args)
			if err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return err
			}
			if err := g.Verify(startProduction); err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d productions, all reachable from %s\n", len(g.Productions()), startProduction)
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification")

	return cmd
}

func newGrammarAcceptCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "accept <file>",
		Short: "Check a .dusk file against the grammar alone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read dusk file: %w", err)
			}
			if err := g.Accepts(startProduction, string(data)); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: accepted\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "production the file must derive from")

	return cmd
}

func loadGrammar(args []string) (*grammar.Grammar, error) {
	if len(args) == 0 {
		return grammar.Load()
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return grammar.Parse(args[0], f)
}

// printErrors prints the entries of an ebnf error list one per line.
func printErrors(w io.Writer, err error) {
	inner := err
	for errors.Unwrap(inner) != nil {
		inner = errors.Unwrap(inner)
	}
	v := reflect.ValueOf(inner)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
