package clicmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/jsrename/rename"
)

// Rename runs the full pipeline over each file and prints the result to
// stdout, or overwrites the file in place when --write is set.
func (c *Cmd) Rename(ctx context.Context, stdio mainer.Stdio, args []string) error {
	opts, err := c.loadOptions()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	oracleCfg, err := OracleConfigFromEnv()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	oc := NewHTTPOracle(oracleCfg)

	var firstErr error
	for _, path := range args {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		out, diag, err := rename.Rename(ctx, path, string(src), oc, opts)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, w := range diag.Warnings {
			fmt.Fprintf(stdio.Stderr, "%s: warning: %s\n", path, w)
		}

		if c.Write {
			if err := os.WriteFile(path, []byte(out), 0644); err != nil {
				fmt.Fprintln(stdio.Stderr, err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
		} else {
			fmt.Fprint(stdio.Stdout, out)
		}
	}
	return firstErr
}
