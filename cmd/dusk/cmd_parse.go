package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/dusk/dusk/ast"
	"github.com/dhamidi/dusk/dusk/parser"
	"github.com/dhamidi/dusk/format"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var expr string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a .dusk file and dump the syntax tree",
		Long: `Parse a .dusk file and print its syntax tree and diagnostics.

With --expr the argument is a single expression instead of a file.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("expr") {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := format.New(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			var doc *format.Document
			if cmd.Flags().Changed("expr") {
				doc = parseExpression(expr)
			} else {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read dusk file: %w", err)
				}
				doc = parseDocument(args[0], string(data))
			}

			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("encode %s: %w", outputFormat, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().StringVarP(&expr, "expr", "e", "", "parse this expression instead of a file")

	return cmd
}

func parseDocument(name, text string) *format.Document {
	p := parser.New(text, parser.WithFile(name))
	items := p.Parse()
	return &format.Document{Source: p.Source(), Items: items, Diagnostics: p.Diagnostics()}
}

// parseExpression wraps a lone expression in a statement so it encodes
// like a one-item file.
func parseExpression(text string) *format.Document {
	p := parser.New(text, parser.WithFile("<expr>"))
	expr := p.ParseExpression()
	items := []ast.Item{&ast.Expression{Base: ast.At(expr.Span()), Expr: expr}}
	return &format.Document{Source: p.Source(), Items: items, Diagnostics: p.Diagnostics()}
}
