package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/dusk/project"
)

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [dir]",
		Short: "Show the module tree of a package",
		Long:  `Load the package in dir, or the current directory, and list its modules with the file each was read from.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			p, err := project.LoadFrom(dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Package: %s (%s)\n", p.Name, p.Kind)
			fmt.Fprintf(out, "Root:    %s\n", p.RootDir)
			fmt.Fprintf(out, "\nModules:\n")
			for _, m := range p.ModulesInOrder() {
				rel, err := filepath.Rel(p.RootDir, m.File)
				if err != nil {
					rel = m.File
				}
				depth := strings.Count(m.Path, "::")
				fmt.Fprintf(out, "  %s%s  %s", strings.Repeat("  ", depth), m.Name, filepath.ToSlash(rel))
				if n := len(m.Diagnostics); n > 0 {
					fmt.Fprintf(out, "  (%d problems)", n)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	return cmd
}
