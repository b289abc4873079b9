package scope

import "github.com/mna/jsrename/ast"

// sink describes one renaming-unsafe call shape recognized while resolving
// a CallExpr/NewExpr. The table is deliberately a plain slice, not a fixed
// switch, so that DESIGN.md's open-question decision ("extra taint sinks:
// document.write/writeln, indirect eval") reads as one more table entry
// rather than a parallel code path.
type sink struct {
	name string
	// match reports whether callee (the expression being invoked) matches
	// this sink's shape. calledNew is true for `new callee(...)`.
	match func(a *analyzer, callee ast.Expr, args []ast.Expr, calledNew bool) bool
	// rootOnlyInModule is true for sinks whose strings execute in the
	// global scope rather than the caller's (Function/setTimeout-string/
	// setInterval-string, per spec §4.1 Pass C): in a module chunk they
	// taint only the program/module root, never the enclosing scope chain;
	// in a script chunk they behave like every other sink.
	rootOnlyInModule bool
}

var taintSinks = []sink{
	{name: "eval", match: matchBareGlobal("eval")},
	{name: "Function", match: matchBareGlobal("Function"), rootOnlyInModule: true},
	{name: "setTimeout-string", match: matchStringScheduler("setTimeout"), rootOnlyInModule: true},
	{name: "setInterval-string", match: matchStringScheduler("setInterval"), rootOnlyInModule: true},
	{name: "document.write", match: matchDocumentWrite("write")},
	{name: "document.writeln", match: matchDocumentWrite("writeln")},
	{name: "indirect-eval-sequence", match: matchIndirectEvalSequence},
	{name: "indirect-eval-member", match: matchIndirectEvalMember},
}

// matchBareGlobal matches a bare identifier callee with the given name that
// has no local binding in scope, e.g. `eval(src)` or `new Function(body)`,
// but not a shadowing local `function eval(){}`.
func matchBareGlobal(name string) func(*analyzer, ast.Expr, []ast.Expr, bool) bool {
	return func(a *analyzer, callee ast.Expr, args []ast.Expr, calledNew bool) bool {
		id, ok := callee.(*ast.Ident)
		return ok && id.Name == name && !a.isBoundLocally(name)
	}
}

// matchStringScheduler matches setTimeout/setInterval invoked with a string
// literal first argument, the form that compiles the string as code.
func matchStringScheduler(name string) func(*analyzer, ast.Expr, []ast.Expr, bool) bool {
	return func(a *analyzer, callee ast.Expr, args []ast.Expr, calledNew bool) bool {
		id, ok := callee.(*ast.Ident)
		if !ok || id.Name != name || a.isBoundLocally(name) || len(args) == 0 {
			return false
		}
		lit, ok := args[0].(*ast.Literal)
		return ok && lit.Kind == ast.LiteralString
	}
}

// matchDocumentWrite matches document.write(...)/document.writeln(...),
// extended sinks beyond the core construct list (§ open question: extra
// taint sinks).
func matchDocumentWrite(method string) func(*analyzer, ast.Expr, []ast.Expr, bool) bool {
	return func(a *analyzer, callee ast.Expr, args []ast.Expr, calledNew bool) bool {
		m, ok := callee.(*ast.MemberExpr)
		if !ok || m.Computed {
			return false
		}
		obj, ok := m.Object.(*ast.Ident)
		if !ok || obj.Name != "document" || a.isBoundLocally("document") {
			return false
		}
		prop, ok := m.Property.(*ast.Ident)
		return ok && prop.Name == method
	}
}

// matchIndirectEvalSequence matches (0, eval)(...), the classic idiom for
// forcing eval to run in the global scope instead of the caller's.
func matchIndirectEvalSequence(a *analyzer, callee ast.Expr, args []ast.Expr, calledNew bool) bool {
	seq, ok := callee.(*ast.SequenceExpr)
	if !ok || len(seq.Exprs) == 0 {
		return false
	}
	id, ok := seq.Exprs[len(seq.Exprs)-1].(*ast.Ident)
	return ok && id.Name == "eval" && !a.isBoundLocally("eval")
}

// matchIndirectEvalMember matches (obj.eval)(...)/obj.eval(...), another
// indirect-eval idiom (§ open question: extra taint sinks).
func matchIndirectEvalMember(a *analyzer, callee ast.Expr, args []ast.Expr, calledNew bool) bool {
	m, ok := callee.(*ast.MemberExpr)
	if !ok || m.Computed {
		return false
	}
	prop, ok := m.Property.(*ast.Ident)
	return ok && prop.Name == "eval"
}

// checkTaintCallee recognizes a call or new-call's callee shape against the
// sink table and, on a match, marks the appropriate scope tainted — the
// call site's own scope for most sinks, or the tree root directly for a
// rootOnlyInModule sink seen in a module chunk. Shared by CallExpr and
// NewExpr resolution.
func (a *analyzer) checkTaintCallee(callee ast.Expr, args []ast.Expr, calledNew bool) {
	for _, s := range taintSinks {
		if s.match(a, callee, args, calledNew) {
			if s.rootOnlyInModule && a.isModule {
				a.markTaintedRoot()
			} else {
				a.markTainted()
			}
			return
		}
	}
}

// propagateTaint is §4.1 Pass C's closure step: a tainted scope makes every
// ancestor scope tainted too, since a rename anywhere up the chain could be
// observed by the tainted construct's dynamic name lookup. Scope IDs are
// assigned in declare-pass DFS pre-order, so a parent's ID is always less
// than its children's; processing from the highest ID down guarantees a
// child's taint reaches its parent in the same pass that discovers it,
// without a worklist.
func (a *analyzer) propagateTaint() {
	scopes := a.tree.Scopes
	for i := len(scopes) - 1; i >= 0; i-- {
		s := scopes[i]
		if s.Tainted && s.ParentID >= 0 {
			scopes[s.ParentID].Tainted = true
		}
	}

	for _, b := range a.tree.Bindings {
		if a.tree.Scope(b.DeclaringScope).Tainted {
			b.Unsafe = true
			a.tree.TaintedSkipped++
		}
	}
}
