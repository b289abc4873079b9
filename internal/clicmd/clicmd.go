// Package clicmd implements the jsrename CLI's command dispatch, adapted
// from internal/maincmd: a Cmd struct with flag-tagged fields parsed by
// github.com/mna/mainer, sub-commands discovered by reflection over Cmd's
// own methods.
package clicmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"

	"github.com/mna/jsrename/rename"
)

const binName = "jsrename"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>...]
       %[1]s -h|--help
       %[1]s -v|--version

Deobfuscation renaming core: analyzes, plans, and rewrites JavaScript
identifiers with a pluggable naming oracle.

The <command> can be one of:
       rename                    Run the full pipeline and print the
                                 rewritten source (or write it back with
                                 --write).
       plan                      Run analysis and job planning only, and
                                 print the planned oracle jobs.
       dossier                   Run analysis and dossier-building only,
                                 and print the evidence bundle for every
                                 renameable binding.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -c --config               Path to a YAML file of pipeline options
                                 (§6's configuration record).
       -w --write                For the 'rename' command, overwrite each
                                 input file instead of printing to stdout.

The 'rename' command's naming oracle is a small HTTP client configured via
the JSRENAME_ORACLE_ENDPOINT, JSRENAME_ORACLE_API_KEY, and
JSRENAME_ORACLE_TIMEOUT environment variables.
`, binName)
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Config string `flag:"c,config"`
	Write  bool   `flag:"w,write"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", c.args[0])
	}

	if len(c.args[1:]) == 0 {
		return fmt.Errorf("%s: at least one file must be provided", cmdName)
	}

	if c.flags["write"] && cmdName != "rename" {
		return fmt.Errorf("%s: invalid flag 'write'", cmdName)
	}

	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}

// buildCmds mirrors maincmd's reflection-based dispatch: valid commands are
// those Cmd methods taking (context.Context, mainer.Stdio, []string) and
// returning a single error.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}

// loadOptions reads pipeline rename.Options from c.Config, when set, and
// returns the zero value (so the pipeline's own defaults apply) otherwise.
func (c *Cmd) loadOptions() (rename.Options, error) {
	if c.Config == "" {
		return rename.Options{}, nil
	}
	f, err := os.Open(c.Config)
	if err != nil {
		return rename.Options{}, fmt.Errorf("%s: opening config: %w", binName, err)
	}
	defer f.Close()
	return rename.OptionsFromYAML(f)
}
