package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/dusk/dusk/codebase"
	"github.com/dhamidi/dusk/dusk/diagnostic"
	"github.com/dhamidi/dusk/project"
)

var errProblems = errors.New("problems found")

func newCheckCmd() *cobra.Command {
	var color bool
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Report syntax errors in Dusk files",
		Long: `Check .dusk files and print a report for every problem found.

A directory is checked as a package: dusk.toml names the entry file and the
module tree is followed from there. Without arguments the current directory
is checked. With --watch the directory is polled and files are rechecked
whenever they change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := diagnostic.NewRenderer()
			if color {
				r = diagnostic.NewRenderer(diagnostic.WithStyle(diagnostic.ColorStyle()))
			}
			if len(args) == 0 {
				args = []string{"."}
			}

			if watch {
				if len(args) != 1 {
					return fmt.Errorf("--watch takes a single directory")
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
				defer stop()
				return watchDir(ctx, cmd.OutOrStdout(), r, args[0], interval)
			}

			var count int
			for _, path := range args {
				n, err := checkPath(cmd.OutOrStdout(), r, path)
				if err != nil {
					return err
				}
				count += n
			}
			if count > 0 {
				return fmt.Errorf("%w: %d", errProblems, count)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&color, "color", false, "highlight reports for a terminal")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep checking as files change")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "polling interval for --watch")

	return cmd
}

// checkPath reports the problems in a file or package and returns how many
// there were.
func checkPath(out io.Writer, r *diagnostic.Renderer, path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	var diags []diagnostic.Diagnostic
	if info.IsDir() {
		p, err := project.LoadFrom(path)
		if err != nil {
			return 0, err
		}
		diags = p.Diagnostics()
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("read dusk file: %w", err)
		}
		diags = parseDocument(path, string(data)).Diagnostics
	}

	if err := report(out, r, diags); err != nil {
		return 0, err
	}
	return len(diags), nil
}

func report(out io.Writer, r *diagnostic.Renderer, diags []diagnostic.Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}
	text, err := r.Report(diags)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\n\n", text)
	return err
}

func watchDir(ctx context.Context, out io.Writer, r *diagnostic.Renderer, dir string, interval time.Duration) error {
	c := codebase.New(dir)
	w := codebase.NewFileWatcher(c, interval)
	w.OnUpdate = func(f *codebase.File) {
		if len(f.Diagnostics) == 0 {
			fmt.Fprintf(out, "ok %s\n", f.Path)
			return
		}
		if err := report(out, r, f.Diagnostics); err != nil {
			fmt.Fprintf(out, "%s: %s\n", f.Path, err)
		}
	}
	w.OnRemove = func(path string) {
		fmt.Fprintf(out, "removed %s\n", path)
	}

	w.Start()
	<-ctx.Done()
	w.Stop()
	return nil
}
