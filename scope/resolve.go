package scope

import "github.com/mna/jsrename/ast"

// resolveStmts is the resolve pass (§4.1 Pass B) combined with taint
// detection (Pass C): it re-enters the exact scopes the declare pass built
// (replayed in the same left-to-right order) and, for every identifier
// reference, walks the scope chain outward to find the binding it denotes.
// Object-property keys and import/export external name tokens are never
// visited here, so they can never resolve to a binding. While walking call
// expressions it also recognizes the renaming-unsafe sinks in §4.1 and
// marks the current scope tainted.
func (a *analyzer) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		a.resolveStmt(s)
	}
}

func (a *analyzer) resolveStmt(s ast.Stmt) {
	switch s := s.(type) {
	case nil:

	case *ast.BlockStmt:
		a.cur = a.replayEnter()
		a.resolveStmts(s.Stmts)
		a.replayExit()

	case *ast.VarDeclStmt:
		for _, d := range s.Decls {
			a.resolvePattern(d.ID)
			if d.Init != nil {
				a.resolveExpr(d.Init)
			}
		}

	case *ast.FuncDeclStmt:
		a.resolveFuncBody(s.Fn)

	case *ast.ClassDeclStmt:
		a.resolveClass(s.Class)

	case *ast.ExprStmt:
		a.resolveExpr(s.Expr)

	case *ast.IfStmt:
		a.resolveExpr(s.Test)
		a.resolveStmt(s.Cons)
		a.resolveStmt(s.Alt)

	case *ast.ForStmt:
		needsHeader := false
		if vd, ok := s.Init.(*ast.VarDeclStmt); ok && vd.Kind != ast.DeclVar {
			needsHeader = true
		}
		if needsHeader {
			a.cur = a.replayEnter()
		}
		if s.Init != nil {
			switch init := s.Init.(type) {
			case *ast.VarDeclStmt:
				a.resolveStmt(init)
			case ast.Expr:
				a.resolveExpr(init)
			}
		}
		if s.Test != nil {
			a.resolveExpr(s.Test)
		}
		if s.Update != nil {
			a.resolveExpr(s.Update)
		}
		a.resolveStmt(s.Body)
		if needsHeader {
			a.replayExit()
		}

	case *ast.ForInStmt:
		needsHeader := s.HasDecl && s.Kind != ast.DeclVar
		if needsHeader {
			a.cur = a.replayEnter()
		}
		if s.HasDecl {
			a.resolvePattern(s.Left)
		} else {
			a.resolveWriteTarget(s.Left)
		}
		a.resolveExpr(s.Right)
		a.resolveStmt(s.Body)
		if needsHeader {
			a.replayExit()
		}

	case *ast.WhileStmt:
		a.resolveExpr(s.Test)
		a.resolveStmt(s.Body)

	case *ast.DoWhileStmt:
		a.resolveStmt(s.Body)
		a.resolveExpr(s.Test)

	case *ast.ReturnStmt:
		if s.Arg != nil {
			a.resolveReturnedExpr(s.Arg)
		}

	case *ast.ThrowStmt:
		a.resolveExpr(s.Arg)

	case *ast.BreakStmt, *ast.ContinueStmt, *ast.EmptyStmt:

	case *ast.LabeledStmt:
		a.resolveStmt(s.Body)

	case *ast.TryStmt:
		a.resolveStmt(s.Block)
		if s.Handler != nil {
			a.cur = a.replayEnter()
			if s.Handler.Param != nil {
				a.resolvePattern(s.Handler.Param)
			}
			a.resolveStmts(s.Handler.Body.Stmts)
			a.replayExit()
		}
		if s.Finalizer != nil {
			a.resolveStmt(s.Finalizer)
		}

	case *ast.SwitchStmt:
		a.resolveExpr(s.Disc)
		a.cur = a.replayEnter()
		for _, c := range s.Cases {
			if c.Test != nil {
				a.resolveExpr(c.Test)
			}
			a.resolveStmts(c.Consequent)
		}
		a.replayExit()

	case *ast.WithStmt:
		a.resolveExpr(s.Obj)
		a.markTainted()
		a.resolveStmt(s.Body)

	case *ast.ImportDeclStmt:
		// Local names are declarations, already bound; Imported external
		// names are never resolved.

	case *ast.ExportNamedStmt:
		if s.Decl != nil {
			a.resolveStmt(s.Decl)
		}
		if s.Source == nil {
			for _, spec := range s.Specifiers {
				a.resolveExportSpecifier(spec)
			}
		}
		// A re-export-from-source form's Local names live in the other
		// module and are never local bindings here.

	case *ast.ExportDefaultStmt:
		switch d := s.Decl.(type) {
		case *ast.FuncDeclStmt:
			a.resolveFuncBody(d.Fn)
		case *ast.ClassDeclStmt:
			a.resolveClass(d.Class)
		case ast.Expr:
			if id, ok := d.(*ast.Ident); ok {
				if b := a.resolveIdentRef(id); b != nil {
					b.ExportStatus = ExportedDefault
					b.ExportedName = "default"
				}
			} else {
				a.resolveExpr(d)
			}
		}

	case *ast.ExportAllStmt:
	}
}

// resolveExportSpecifier resolves the local name of `export { local as
// exported }` against the scope it appears in; the exported token itself
// is never a variable reference.
func (a *analyzer) resolveExportSpecifier(spec *ast.ExportSpecifier) {
	if b := a.resolveIdentRef(spec.Local); b != nil {
		b.ExportStatus = ExportedBySpecifier
		name := spec.Local.Name
		if spec.Exported != nil {
			name = spec.Exported.Name
		}
		b.ExportedName = name
	}
}

func (a *analyzer) resolveFuncBody(fn *ast.FuncLiteral) {
	a.cur = a.replayEnter()
	for _, p := range fn.Sig.Params {
		a.resolvePattern(p)
	}
	if fn.Body != nil {
		a.resolveStmts(fn.Body.Stmts)
	} else if fn.ExprBody != nil {
		a.resolveReturnedExpr(fn.ExprBody)
	}
	a.replayExit()
}

func (a *analyzer) resolveClass(cl *ast.ClassLiteral) {
	if cl.SuperClass != nil {
		a.resolveExpr(cl.SuperClass)
	}
	a.cur = a.replayEnter()
	for _, m := range cl.Members {
		if m.Computed {
			a.resolveExpr(m.Key)
		}
		if m.Method != nil {
			a.resolveFuncBody(m.Method)
		}
		if m.FieldValue != nil {
			a.resolveExpr(m.FieldValue)
		}
	}
	a.replayExit()
}

// resolvePattern walks a declaration's binding pattern resolving only the
// default-value and computed-key expressions it contains; the pattern's
// identifier leaves are declarations, already bound by the declare pass.
func (a *analyzer) resolvePattern(e ast.Expr) {
	switch e := e.(type) {
	case nil, *ast.Ident:
	case *ast.AssignPattern:
		a.resolvePattern(e.Left)
		a.resolveExpr(e.Right)
	case *ast.ArrayPattern:
		for _, el := range e.Elements {
			a.resolvePattern(el)
		}
	case *ast.ObjectLiteral:
		for _, p := range e.Properties {
			if p.Kind == ast.PropSpread {
				a.resolvePattern(p.Value)
				continue
			}
			if p.Computed {
				a.resolveExpr(p.Key)
			}
			a.resolvePattern(p.Value)
			if p.Default != nil {
				a.resolveExpr(p.Default)
			}
		}
	case *ast.RestElement:
		a.resolvePattern(e.Arg)
	default:
		a.resolveExpr(e)
	}
}

// resolveWriteTarget resolves a pattern used as an assignment target to an
// *existing* binding (destructuring assignment, for-in/of without a
// declaration): every identifier leaf is a write, which clears is_constant.
func (a *analyzer) resolveWriteTarget(e ast.Expr) {
	switch e := e.(type) {
	case nil:
	case *ast.Ident:
		if b := a.resolveIdentRef(e); b != nil {
			b.IsConstant = false
		}
	case *ast.AssignPattern:
		a.resolveWriteTarget(e.Left)
		a.resolveExpr(e.Right)
	case *ast.ArrayPattern:
		for _, el := range e.Elements {
			a.resolveWriteTarget(el)
		}
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			a.resolveWriteTarget(el)
		}
	case *ast.ObjectLiteral:
		for _, p := range e.Properties {
			if p.Kind == ast.PropSpread {
				a.resolveWriteTarget(p.Value)
				continue
			}
			if p.Computed {
				a.resolveExpr(p.Key)
			}
			a.resolveWriteTarget(p.Value)
			if p.Default != nil {
				a.resolveExpr(p.Default)
			}
		}
	case *ast.RestElement:
		a.resolveWriteTarget(e.Arg)
	case *ast.MemberExpr:
		// Not a binding; the object (and computed property) are ordinary
		// reads.
		a.resolveExpr(e.Object)
		if e.Computed {
			a.resolveExpr(e.Property)
		}
	default:
		a.resolveExpr(e)
	}
}

// resolveReturnedExpr resolves expr like any other expression; nothing
// extra is recorded for a returned identifier, since dossier derives the
// isReturned hint from context during its own walk.
func (a *analyzer) resolveReturnedExpr(expr ast.Expr) {
	a.resolveExpr(expr)
}

// resolveIdentRef resolves a read occurrence of ident by walking the scope
// chain outward from the current scope. Unresolved names are left alone:
// referencing an undeclared global (console, Math, a DOM global, ...) is
// ordinary JavaScript and never an error in this package.
func (a *analyzer) resolveIdentRef(ident *ast.Ident) *Binding {
	for f := a.cur; f != nil; f = f.parent {
		if id, ok := f.scope.names[ident.Name]; ok {
			b := a.tree.Bindings[id]
			b.References = append(b.References, ident.Span())
			ident.Binding = id
			return b
		}
	}
	return nil
}

// isBoundLocally reports whether name resolves to any binding visible from
// the current scope, used by the taint sinks to decide whether a global
// like `eval` or `Function` has been shadowed.
func (a *analyzer) isBoundLocally(name string) bool {
	for f := a.cur; f != nil; f = f.parent {
		if _, ok := f.scope.names[name]; ok {
			return true
		}
	}
	return false
}

func (a *analyzer) markTainted() {
	a.cur.scope.Tainted = true
}

// markTaintedRoot taints the program/module root scope directly, without
// going through the call site's own scope: used by sinks whose string
// argument executes in the global scope rather than the caller's (§4.1
// Pass C's Function/setTimeout/setInterval module-source rule).
func (a *analyzer) markTaintedRoot() {
	a.tree.Root().Tainted = true
}

// resolveExpr resolves every identifier reference reachable from expr and
// recognizes the taint sinks of §4.1 along the way.
func (a *analyzer) resolveExpr(e ast.Expr) {
	switch e := e.(type) {
	case nil, *ast.Literal, *ast.ThisExpr, *ast.SuperExpr:

	case *ast.Ident:
		a.resolveIdentRef(e)

	case *ast.TemplateLiteral:
		for _, x := range e.Expressions {
			a.resolveExpr(x)
		}
	case *ast.TaggedTemplateExpr:
		a.resolveExpr(e.Tag)
		a.resolveExpr(e.Template)
	case *ast.ArrayLiteral:
		for _, x := range e.Elements {
			a.resolveExpr(x)
		}
	case *ast.SpreadElement:
		a.resolveExpr(e.Arg)
	case *ast.ObjectLiteral:
		for _, p := range e.Properties {
			if p.Kind == ast.PropSpread {
				a.resolveExpr(p.Value)
				continue
			}
			if p.Computed {
				a.resolveExpr(p.Key)
			}
			a.resolveExpr(p.Value)
			if p.Default != nil {
				a.resolveExpr(p.Default)
			}
		}
	case *ast.ArrayPattern:
		for _, x := range e.Elements {
			a.resolveExpr(x)
		}
	case *ast.RestElement:
		a.resolveExpr(e.Arg)
	case *ast.AssignPattern:
		a.resolveExpr(e.Left)
		a.resolveExpr(e.Right)
	case *ast.FuncLiteral:
		a.resolveFuncBody(e)
	case *ast.ClassLiteral:
		a.resolveClass(e)

	case *ast.CallExpr:
		a.checkTaintCallee(e.Callee, e.Args, false)
		a.markCalleeUsage(e.Callee, false)
		a.resolveExpr(e.Callee)
		for _, x := range e.Args {
			a.resolveExpr(x)
		}

	case *ast.NewExpr:
		a.checkTaintCallee(e.Callee, e.Args, true)
		a.markCalleeUsage(e.Callee, true)
		a.resolveExpr(e.Callee)
		for _, x := range e.Args {
			a.resolveExpr(x)
		}

	case *ast.MemberExpr:
		a.resolveExpr(e.Object)
		if e.Computed {
			a.resolveExpr(e.Property)
		}

	case *ast.BinaryExpr:
		a.resolveExpr(e.Left)
		a.resolveExpr(e.Right)
	case *ast.LogicalExpr:
		a.resolveExpr(e.Left)
		a.resolveExpr(e.Right)

	case *ast.AssignExpr:
		a.resolveExpr(e.Right)
		a.resolveWriteTarget(e.Left)

	case *ast.UnaryExpr:
		a.resolveExpr(e.Arg)
	case *ast.UpdateExpr:
		if id, ok := e.Arg.(*ast.Ident); ok {
			if b := a.resolveIdentRef(id); b != nil {
				b.IsConstant = false
			}
		} else {
			a.resolveExpr(e.Arg)
		}

	case *ast.ConditionalExpr:
		a.resolveExpr(e.Test)
		a.resolveExpr(e.Cons)
		a.resolveExpr(e.Alt)
	case *ast.SequenceExpr:
		for _, x := range e.Exprs {
			a.resolveExpr(x)
		}
	case *ast.AwaitExpr:
		a.resolveExpr(e.Arg)
	case *ast.YieldExpr:
		if e.Arg != nil {
			a.resolveExpr(e.Arg)
		}
	}
}

// markCalleeUsage records, on the binding a plain identifier callee
// resolves to, whether it was invoked with or without `new`, feeding the
// desired-style rule "function whose only callee syntax is new f(...)".
func (a *analyzer) markCalleeUsage(callee ast.Expr, isNew bool) {
	id, ok := callee.(*ast.Ident)
	if !ok {
		return
	}
	for f := a.cur; f != nil; f = f.parent {
		if bid, ok := f.scope.names[id.Name]; ok {
			b := a.tree.Bindings[bid]
			if isNew {
				b.calledNew = true
			} else {
				b.calledPlain = true
			}
			return
		}
	}
}
