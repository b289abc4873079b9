package clicmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mna/mainer"

	"github.com/mna/jsrename/dossier"
	"github.com/mna/jsrename/jsparse"
	"github.com/mna/jsrename/scope"
)

// Dossier runs analysis and dossier-building only, printing the evidence
// bundle (§4.2) for every renameable binding.
func (c *Cmd) Dossier(ctx context.Context, stdio mainer.Stdio, args []string) error {
	opts, err := c.loadOptions()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}

		chunk, err := jsparse.Parse(string(src), jsparse.Options{Filename: path})
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
		tree := scope.Analyze(chunk, 0)
		dossiers := dossier.Build(chunk, tree, string(src), dossier.Options{ContextWindowSize: opts.ContextWindowSize})

		fmt.Fprintf(stdio.Stdout, "%s:\n", path)
		for _, d := range dossiers {
			fmt.Fprintf(stdio.Stdout, "  %s (%s, %s style): %d reference(s)",
				d.OriginalName, d.Kind, d.DesiredStyle, d.Usage.ReferenceCount)
			if len(d.TypeHints) > 0 {
				fmt.Fprintf(stdio.Stdout, " [%s]", strings.Join(d.TypeHints, ", "))
			}
			fmt.Fprintln(stdio.Stdout)
		}
	}
	return nil
}
