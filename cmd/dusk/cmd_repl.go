package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/dusk/dusk/diagnostic"
	"github.com/dhamidi/dusk/format"
)

const (
	prompt       = "> "
	continuation = ". "
)

func newReplCmd() *cobra.Command {
	var color bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse input interactively and print syntax trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := diagnostic.NewRenderer()
			if color {
				r = diagnostic.NewRenderer(diagnostic.WithStyle(diagnostic.ColorStyle()))
			}
			return runREPL(cmd.InOrStdin(), cmd.OutOrStdout(), r)
		},
	}

	cmd.Flags().BoolVar(&color, "color", false, "highlight reports for a terminal")

	return cmd
}

// runREPL collects lines from in until a blank line, parses them as one
// file and prints the tree followed by any problems. Pending input is
// parsed at end of input.
func runREPL(in io.Reader, out io.Writer, r *diagnostic.Renderer) error {
	scanner := bufio.NewScanner(in)
	var buf strings.Builder
	entry := 1
	for {
		if buf.Len() == 0 {
			fmt.Fprint(out, prompt)
		} else {
			fmt.Fprint(out, continuation)
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			if buf.Len() > 0 {
				if err := evaluate(out, r, entry, buf.String()); err != nil {
					return err
				}
			}
			return scanner.Err()
		}

		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line != "" {
			buf.WriteString(line)
			buf.WriteByte('\n')
			continue
		}
		if buf.Len() == 0 {
			continue
		}
		if err := evaluate(out, r, entry, buf.String()); err != nil {
			return err
		}
		buf.Reset()
		entry++
	}
}

func evaluate(out io.Writer, r *diagnostic.Renderer, entry int, text string) error {
	doc := parseDocument(fmt.Sprintf("<repl:%d>", entry), text)
	for _, item := range doc.Items {
		fmt.Fprint(out, format.Tree(item))
	}
	return report(out, r, doc.Diagnostics)
}
