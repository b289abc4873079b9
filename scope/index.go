package scope

import (
	"github.com/dolthub/swiss"

	"github.com/mna/jsrename/ast"
)

// buildIndex populates Tree.byBinding once all bindings are known, so
// BindingForSpan is a single swiss-table lookup rather than a scan.
func (a *analyzer) buildIndex() {
	m := swiss.NewMap[ast.Span, BindingID](uint32(len(a.tree.Bindings)))
	for _, b := range a.tree.Bindings {
		m.Put(b.Decl.Span(), b.ID)
	}
	a.tree.byBinding = m
}
