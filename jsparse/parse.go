// Package jsparse is the parse adapter: it wraps a third-party JavaScript
// parser (github.com/dop251/goja/parser) and produces this module's own
// tagged-variant syntax tree (see the ast package), so that every downstream
// pass — scope analysis, dossier building, planning, solving, rewriting —
// never has to know which parser library produced the tree, or walk that
// library's own traversal machinery.
//
// goja's AST is itself a reasonable model for what it parses (ECMAScript
// plus a tolerant subset of the constructs this module needs), but its node
// types are tied to goja's internal runtime (symbol interning, file-set
// offsets, closures over goja-specific Visit machinery). Converting once, up
// front, into ast.Node keeps that coupling in this package alone, per this
// module's single isolation rule for third-party parser identity.
package jsparse

import (
	"fmt"

	gojaast "github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	"github.com/dop251/goja/parser"

	"github.com/mna/jsrename/ast"
)

// ErrUnsupportedConstruct is returned when the source parses successfully
// but uses a syntax construct this module's AST has no representation for
// (e.g. decorators, BigInt literals in positions this module does not
// model). It is distinct from a parser-reported MalformedSource: the
// input is valid JavaScript/TypeScript, this module simply doesn't yet
// have a node for it.
type ErrUnsupportedConstruct struct {
	Construct string
	Pos       int
}

func (e *ErrUnsupportedConstruct) Error() string {
	return fmt.Sprintf("unsupported construct %s at offset %d", e.Construct, e.Pos)
}

// MalformedSource wraps a parse failure reported by the underlying parser.
// Per the scope analyzer's contract, a MalformedSource is always fatal: the
// caller must never feed a failed parse into scope analysis.
type MalformedSource struct {
	Filename string
	Err      error
}

func (e *MalformedSource) Error() string {
	return fmt.Sprintf("%s: malformed source: %s", e.Filename, e.Err)
}
func (e *MalformedSource) Unwrap() error { return e.Err }

// Options configures the parse adapter.
type Options struct {
	// Filename is used only for diagnostics; it has no effect on parsing.
	Filename string
}

// Parse parses src and returns this module's own syntax tree. Any error
// returned is either a *MalformedSource (the underlying parser rejected the
// input) or an *ErrUnsupportedConstruct (the input parsed, but uses a
// construct this module cannot represent).
func Parse(src string, opts Options) (*ast.Chunk, error) {
	prog, err := parser.ParseFile(nil, opts.Filename, src, 0)
	if err != nil {
		return nil, &MalformedSource{Filename: opts.Filename, Err: err}
	}

	c := &converter{filename: opts.Filename}
	body, err := c.stmts(prog.Body)
	if err != nil {
		return nil, err
	}
	return &ast.Chunk{
		Name: opts.Filename,
		Body: body,
		End:  int(prog.File.Base()) + len(src),
	}, nil
}

type converter struct {
	filename string
}

func (c *converter) unsupported(construct string, idx file.Idx) error {
	return &ErrUnsupportedConstruct{Construct: construct, Pos: int(idx)}
}

func (c *converter) stmts(in []gojaast.Statement) ([]ast.Stmt, error) {
	out := make([]ast.Stmt, 0, len(in))
	for _, s := range in {
		cs, err := c.stmt(s)
		if err != nil {
			return nil, err
		}
		if cs != nil {
			out = append(out, cs)
		}
	}
	return out, nil
}

func (c *converter) block(b *gojaast.BlockStatement) (*ast.BlockStmt, error) {
	if b == nil {
		return nil, nil
	}
	stmts, err := c.stmts(b.List)
	if err != nil {
		return nil, err
	}
	return &ast.BlockStmt{
		Start_: int(b.LeftBrace),
		End_:   int(b.RightBrace) + 1,
		Stmts:  stmts,
	}, nil
}

func (c *converter) ident(id *gojaast.Identifier) *ast.Ident {
	if id == nil {
		return nil
	}
	return &ast.Ident{Start_: int(id.Idx), Name: id.Name.String()}
}
