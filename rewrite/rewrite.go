// Package rewrite applies a solved rename plan to the original source text
// (§4.7). It never re-serializes the syntax tree from scratch: every node
// already carries the byte span it occupied in the source (see the ast
// package), so rewriting is a matter of splicing replacement text into
// those spans and leaving everything else byte-for-byte untouched. This
// guarantees the "must not reorder or elide statements" requirement by
// construction and sidesteps the swap hazard a name-mutating, tree-walking
// emitter would have to solve with a two-phase temporary-name pass: two
// edits over disjoint byte ranges can never interfere with each other
// regardless of what text either one introduces, so `a <-> b` swaps need no
// special handling here (see DESIGN.md).
package rewrite

import (
	"github.com/mna/jsrename/ast"
	"github.com/mna/jsrename/jsparse"
	"github.com/mna/jsrename/scope"
	"github.com/mna/jsrename/solver"
)

// ValidationFailure is returned by Rewrite when the emitted source fails to
// re-parse (§4.7's "Validation (post-emit)"); Source still holds the
// original, unmodified input, since the pipeline must never emit
// unparseable output.
type ValidationFailure struct {
	Err    error
	Source string
}

func (e *ValidationFailure) Error() string {
	return "rewrite: emitted source failed to re-parse, reverted to original: " + e.Err.Error()
}

func (e *ValidationFailure) Unwrap() error { return e.Err }

// Rewrite applies plan to chunk/src and returns the rewritten source. On a
// post-emit validation failure it returns the original src unchanged
// alongside a *ValidationFailure describing what happened, never an
// unparseable string.
func Rewrite(chunk *ast.Chunk, tree *scope.Tree, src string, plan *solver.Plan) (string, error) {
	shorthandEdits, excluded := expandShorthand(chunk, tree, plan)
	exportEdits := splitExports(chunk, tree, plan)
	renameEdits := collectRenameEdits(tree, plan, excluded)

	all := make([]edit, 0, len(shorthandEdits)+len(exportEdits)+len(renameEdits))
	all = append(all, shorthandEdits...)
	all = append(all, exportEdits...)
	all = append(all, renameEdits...)

	out, err := applyEdits(src, all)
	if err != nil {
		return src, err
	}

	if _, perr := jsparse.Parse(out, jsparse.Options{Filename: chunk.Name}); perr != nil {
		return src, &ValidationFailure{Err: perr, Source: src}
	}
	return out, nil
}

// collectRenameEdits builds one replacement edit per occurrence (the
// declaration and every reference) of every binding scheduled for a
// non-identity rename, skipping any span already handled by shorthand
// expansion (§4.7 rule 3 is satisfied by construction: import/export
// external name tokens are never in References or Decl, so they are never
// visited here regardless of excluded).
func collectRenameEdits(tree *scope.Tree, plan *solver.Plan, excluded map[ast.Span]bool) []edit {
	var edits []edit
	for _, b := range tree.Bindings {
		final := plan.FinalName(b)
		if final == b.Name {
			continue
		}
		spans := make([]ast.Span, 0, len(b.References)+1)
		spans = append(spans, b.Decl.Span())
		spans = append(spans, b.References...)

		for _, sp := range spans {
			if excluded[sp] {
				continue
			}
			edits = append(edits, edit{Span: sp, Text: final})
		}
	}
	return edits
}
