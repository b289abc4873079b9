package clicmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/jsrename/dossier"
	"github.com/mna/jsrename/jsparse"
	"github.com/mna/jsrename/planner"
	"github.com/mna/jsrename/scope"
)

// approxTokens is a crude, deterministic stand-in for a real tokenizer
// (§6's measure_tokens is an opaque, pluggable callback; the CLI has no
// model-specific tokenizer to call, so it approximates at roughly 4 bytes
// per token, a common rule of thumb for English-like text).
func approxTokens(req planner.Request) int {
	n := len(req.ChunkSummary)
	for _, d := range req.Dossiers {
		n += len(d.OriginalName) + len(d.DeclarationSnippet)
	}
	return n / 4
}

// Plan runs analysis and job planning only, printing each planned oracle
// job's scope id and the original names of its bindings.
func (c *Cmd) Plan(ctx context.Context, stdio mainer.Stdio, args []string) error {
	opts, err := c.loadOptions()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	if opts.MaxSymbolsPerJob <= 0 {
		opts.MaxSymbolsPerJob = 20
	}
	if opts.MaxInputTokens <= 0 {
		opts.MaxInputTokens = 2000
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

		jobs, err := planner.Plan(tree, dossiers, planner.Options{
			MaxSymbolsPerJob: opts.MaxSymbolsPerJob,
			MaxInputTokens:   opts.MaxInputTokens,
			MeasureTokens:    approxTokens,
		})
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			return err
		}

		fmt.Fprintf(stdio.Stdout, "%s: %d job(s)\n", path, len(jobs))
		for i, job := range jobs {
			fmt.Fprintf(stdio.Stdout, "  job %d (scope %d):", i, job.ScopeID)
			for _, d := range job.Request.Dossiers {
				fmt.Fprintf(stdio.Stdout, " %s", d.OriginalName)
			}
			fmt.Fprintln(stdio.Stdout)
		}
	}
	return nil
}
