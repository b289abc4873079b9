package rewrite

import (
	"github.com/mna/jsrename/ast"
	"github.com/mna/jsrename/scope"
	"github.com/mna/jsrename/solver"
)

// expandShorthand implements §4.7 rule 1: for every shorthand object
// property whose bound identifier is scheduled for a non-identity rename,
// synthesize the explicit `key: value` form. Key and Value are two nodes
// sharing the same span, so the rewrite is an insertion right after that
// span rather than a replacement — the original text becomes the key, and
// an explicit ": <finalName>" is appended to carry the rename.
//
// Returns the insertion edits plus the set of identifier spans that must be
// excluded from the generic per-reference rename pass, since this pass
// already accounts for the rename at that occurrence.
func expandShorthand(chunk *ast.Chunk, tree *scope.Tree, plan *solver.Plan) ([]edit, map[ast.Span]bool) {
	var edits []edit
	excluded := make(map[ast.Span]bool)

	var visit ast.VisitorFunc
	visit = func(n ast.Node) ast.Visitor {
		if p, ok := n.(*ast.Property); ok && p.Shorthand {
			if ident, ok := p.Value.(*ast.Ident); ok {
				if bid, ok := bindingIDOf(ident); ok {
					b := tree.Binding(bid)
					final := plan.FinalName(b)
					if final != b.Name {
						sp := ident.Span()
						edits = append(edits, edit{Span: ast.Span{Start: sp.End, End: sp.End}, Text: ": " + final})
						excluded[sp] = true
					}
				}
			}
		}
		return visit
	}
	ast.Walk(visit, chunk)

	return edits, excluded
}

// bindingIDOf extracts the scope.BindingID the scope analyzer recorded on
// ident, if any.
func bindingIDOf(ident *ast.Ident) (scope.BindingID, bool) {
	id, ok := ident.Binding.(scope.BindingID)
	return id, ok
}
