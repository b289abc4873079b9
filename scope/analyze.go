package scope

import "github.com/mna/jsrename/ast"

// Analyze walks chunk once to build the scope tree and binding table
// (declarations), walks it a second time to resolve every reference and
// detect taint, then propagates taint upward and infers each renameable
// binding's desired style. The returned Tree is frozen: nothing mutates
// anything reachable from it afterward; the rewrite engine works on the
// source text at the recorded spans.
//
// Analyze never fails: a source that reached this package already parsed
// successfully (see jsparse.MalformedSource), and any construct this
// package cannot make sense of (e.g. a destructuring target with no
// recoverable identifier) is simply skipped, per §4.1's failure modes.
func Analyze(chunk *ast.Chunk, mode Mode) *Tree {
	a := &analyzer{
		tree:     &Tree{},
		mode:     mode,
		isModule: isModuleChunk(chunk),
		bySpan:   make(map[ast.Span]*Binding),
	}

	rootKind := KindProgram
	if a.isModule {
		rootKind = KindModule
	}
	a.pushScope(rootKind)
	a.declareStmts(chunk.Body)
	a.popScope()

	a.replay = 0
	a.cur = a.replayEnter()
	a.resolveStmts(chunk.Body)
	a.replayExit()

	a.propagateTaint()
	a.buildIndex()
	a.inferStyles()

	if mode&NameBlocks != 0 {
		a.tree.nameScopes()
	}

	return a.tree
}

func isModuleChunk(chunk *ast.Chunk) bool {
	for _, s := range chunk.Body {
		switch s.(type) {
		case *ast.ImportDeclStmt, *ast.ExportNamedStmt, *ast.ExportDefaultStmt, *ast.ExportAllStmt:
			return true
		}
	}
	return false
}

// frame is the analyzer's view of one scope during a walk: a linked list
// with the innermost scope first, mirroring the teacher's resolver block
// chain. funcFrame points to the nearest ancestor (or self) frame whose
// scope is the target for `var` hoisting (Program, Module or Function).
type frame struct {
	parent    *frame
	scope     *Scope
	funcFrame *frame
}

type analyzer struct {
	tree     *Tree
	mode     Mode
	isModule bool

	// cur is the current frame during whichever pass is in progress; the
	// declare pass and the resolve pass each build/replay their own frame
	// chain rooted at the same Scope objects.
	cur *frame

	// replay is the next scope index to hand out when the resolve pass
	// re-enters a scope-opening node, since both passes visit scope-opening
	// nodes in the same deterministic left-to-right order.
	replay int

	// bySpan indexes bindings by their declaring identifier's span during
	// analysis, before the public, swiss-table-backed index is built; used
	// to patch export metadata onto a binding right after it is declared.
	bySpan map[ast.Span]*Binding

	// curStmtSpan is the span of the statement declareStmt is currently
	// processing, stamped onto every binding declared while processing it
	// (including its parameters and nested patterns) for the dossier
	// builder's declaration-snippet extraction.
	curStmtSpan ast.Span
}

// pushScope is used only by the declare pass: it mints a new Scope, wires
// it into the tree and the current frame chain, and returns the new frame.
func (a *analyzer) pushScope(kind Kind) *Scope {
	s := &Scope{
		ID:    ID(len(a.tree.Scopes)),
		Kind:  kind,
		names: make(map[string]BindingID),
	}
	s.ParentID = -1
	if a.cur != nil {
		s.ParentID = a.cur.scope.ID
		a.cur.scope.Children = append(a.cur.scope.Children, s.ID)
	}
	a.tree.Scopes = append(a.tree.Scopes, s)

	f := &frame{parent: a.cur, scope: s}
	if isFuncHoistTarget(kind) {
		f.funcFrame = f
	} else if a.cur != nil {
		f.funcFrame = a.cur.funcFrame
	}
	a.cur = f
	return s
}

func (a *analyzer) popScope() {
	a.cur = a.cur.parent
}

func isFuncHoistTarget(k Kind) bool {
	return k == KindProgram || k == KindModule || k == KindFunction
}

// replayEnter is used only by the resolve pass: scope-opening nodes were
// already visited, in the same order, by the declare pass, so this just
// looks up the next scope in creation order rather than minting a new one.
// resolveStmt/resolveExpr call this at exactly the points declareStmt/
// declareExpr called pushScope, in the same order, so the scope handed back
// here is always the one the declare pass built for this same AST node.
func (a *analyzer) replayEnter() *frame {
	if a.replay >= len(a.tree.Scopes) {
		panic("scope: resolve pass visited more scopes than the declare pass created")
	}
	s := a.tree.Scopes[a.replay]
	a.replay++
	f := &frame{parent: a.cur, scope: s}
	if isFuncHoistTarget(s.Kind) {
		f.funcFrame = f
	} else if a.cur != nil {
		f.funcFrame = a.cur.funcFrame
	}
	return f
}

func (a *analyzer) replayExit() {
	a.cur = a.cur.parent
}

// declareBinding records a new binding declared by ident in the target
// scope (the innermost scope for let/const/class/catch/import/function/
// param declarations, or the nearest function-hoist scope for var).
func (a *analyzer) declareBinding(ident *ast.Ident, kind BindKind, target *frame) *Binding {
	if ident == nil {
		return nil
	}
	b := &Binding{
		ID:             BindingID(len(a.tree.Bindings)),
		Name:           ident.Name,
		DeclaringScope: target.scope.ID,
		Kind:           kind,
		IsConstant:     true,
		Decl:           ident,
	}
	b.DeclStmt = a.curStmtSpan
	a.tree.Bindings = append(a.tree.Bindings, b)
	target.scope.Declared = append(target.scope.Declared, b.ID)
	target.scope.names[ident.Name] = b.ID
	a.bySpan[ident.Span()] = b
	ident.Binding = b.ID
	return b
}

// hoistTarget returns the frame a `var`-kind declaration binds into: the
// nearest enclosing Program/Module/Function frame.
func (a *analyzer) hoistTarget() *frame {
	return a.cur.funcFrame
}
