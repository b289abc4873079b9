package rewrite

import (
	"strings"

	"github.com/mna/jsrename/ast"
	"github.com/mna/jsrename/scope"
	"github.com/mna/jsrename/solver"
)

// splitExports implements §4.7 rule 2: for every `export <declaration>`
// whose declared binding(s) are scheduled for renaming, strip the leading
// "export " keyword and append an `export { finalName as exportedName, ... }`
// statement, so the module's external names survive the local rename.
//
// A declaration with no renamed binding is left untouched entirely (no-op
// is cheaper and avoids needless diffs).
func splitExports(chunk *ast.Chunk, tree *scope.Tree, plan *solver.Plan) []edit {
	var edits []edit

	for _, stmt := range chunk.Body {
		exp, ok := stmt.(*ast.ExportNamedStmt)
		if !ok || exp.Decl == nil {
			continue
		}

		bindings := declaredBindings(exp.Decl, tree)
		if len(bindings) == 0 {
			continue
		}

		anyRenamed := false
		for _, b := range bindings {
			if plan.IsRenamed(b) {
				anyRenamed = true
				break
			}
		}
		if !anyRenamed {
			continue
		}

		declStart := exp.Decl.Span().Start
		edits = append(edits, edit{Span: ast.Span{Start: exp.Start_, End: declStart}, Text: ""})

		var specs strings.Builder
		specs.WriteString("\nexport {")
		for i, b := range bindings {
			if i > 0 {
				specs.WriteString(",")
			}
			specs.WriteString(" ")
			specs.WriteString(plan.FinalName(b))
			specs.WriteString(" as ")
			specs.WriteString(b.ExportedName)
		}
		specs.WriteString(" };")

		end := exp.Span().End
		edits = append(edits, edit{Span: ast.Span{Start: end, End: end}, Text: specs.String()})
	}

	return edits
}

// declaredBindings returns the bindings introduced directly by decl (a
// *VarDeclStmt, *FuncDeclStmt, or *ClassDeclStmt), in declaration order.
func declaredBindings(decl ast.Stmt, tree *scope.Tree) []*scope.Binding {
	var idents []*ast.Ident

	switch d := decl.(type) {
	case *ast.VarDeclStmt:
		for _, dd := range d.Decls {
			idents = append(idents, patternIdents(dd.ID)...)
		}
	case *ast.FuncDeclStmt:
		if d.Fn.Name != nil {
			idents = append(idents, d.Fn.Name)
		}
	case *ast.ClassDeclStmt:
		if d.Class.Name != nil {
			idents = append(idents, d.Class.Name)
		}
	}

	var out []*scope.Binding
	for _, id := range idents {
		if bid, ok := bindingIDOf(id); ok {
			out = append(out, tree.Binding(bid))
		}
	}
	return out
}

// patternIdents collects every identifier leaf of a (possibly destructuring)
// binding pattern, in source order.
func patternIdents(e ast.Expr) []*ast.Ident {
	switch e := e.(type) {
	case nil:
		return nil
	case *ast.Ident:
		return []*ast.Ident{e}
	case *ast.AssignPattern:
		return patternIdents(e.Left)
	case *ast.ArrayPattern:
		var out []*ast.Ident
		for _, el := range e.Elements {
			out = append(out, patternIdents(el)...)
		}
		return out
	case *ast.RestElement:
		return patternIdents(e.Arg)
	case *ast.ObjectLiteral:
		var out []*ast.Ident
		for _, p := range e.Properties {
			if p.Kind == ast.PropSpread {
				out = append(out, patternIdents(p.Value)...)
				continue
			}
			out = append(out, patternIdents(p.Value)...)
		}
		return out
	default:
		return nil
	}
}
