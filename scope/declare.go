package scope

import "github.com/mna/jsrename/ast"

// declareStmts is the declare pass (§4.1 Pass A): it discovers every scope
// and every declared binding, honoring JavaScript's hoisting rules (var
// hoists to the nearest function/program/module scope; let/const/class/
// catch/import bind in the block they appear in; function declarations
// bind in their enclosing block). It recurses into nested expressions only
// far enough to find function/class literals, which open their own scope.
func (a *analyzer) declareStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		a.declareStmt(s)
	}
}

func (a *analyzer) declareStmt(s ast.Stmt) {
	if s != nil {
		prev := a.curStmtSpan
		a.curStmtSpan = s.Span()
		defer func() { a.curStmtSpan = prev }()
	}
	switch s := s.(type) {
	case nil:

	case *ast.BlockStmt:
		a.pushScope(KindBlock)
		a.declareStmts(s.Stmts)
		a.popScope()

	case *ast.VarDeclStmt:
		for _, d := range s.Decls {
			kind := declBindKind(s.Kind)
			target := a.cur
			if s.Kind == ast.DeclVar {
				target = a.hoistTarget()
			}
			if id, ok := d.ID.(*ast.Ident); ok {
				if _, isFn := d.Init.(*ast.FuncLiteral); isFn {
					a.declareBinding(id, kind, target)
					a.bySpan[id.Span()].declIsFuncLike = true
				} else {
					a.declarePattern(d.ID, kind, target)
					if _, isLit := d.Init.(*ast.Literal); isLit {
						if b, ok := a.bySpan[id.Span()]; ok {
							b.declIsPrimitive = true
						}
					}
				}
			} else {
				a.declarePattern(d.ID, kind, target)
			}
			if d.Init != nil {
				a.declareExpr(d.Init)
			}
		}

	case *ast.FuncDeclStmt:
		a.declareBinding(s.Fn.Name, BindFunction, a.cur)
		if b := a.lastBinding(); b != nil {
			b.declIsFuncLike = true
		}
		a.declareFuncBody(s.Fn)

	case *ast.ClassDeclStmt:
		a.declareBinding(s.Class.Name, BindClass, a.cur)
		a.declareClass(s.Class)

	case *ast.ExprStmt:
		a.declareExpr(s.Expr)

	case *ast.IfStmt:
		a.declareExpr(s.Test)
		a.declareStmt(s.Cons)
		a.declareStmt(s.Alt)

	case *ast.ForStmt:
		needsHeader := false
		if vd, ok := s.Init.(*ast.VarDeclStmt); ok && vd.Kind != ast.DeclVar {
			needsHeader = true
		}
		if needsHeader {
			a.pushScope(KindForHeader)
		}
		if s.Init != nil {
			switch init := s.Init.(type) {
			case *ast.VarDeclStmt:
				a.declareStmt(init)
			case ast.Expr:
				a.declareExpr(init)
			}
		}
		if s.Test != nil {
			a.declareExpr(s.Test)
		}
		if s.Update != nil {
			a.declareExpr(s.Update)
		}
		a.declareStmt(s.Body)
		if needsHeader {
			a.popScope()
		}

	case *ast.ForInStmt:
		needsHeader := s.HasDecl && s.Kind != ast.DeclVar
		if needsHeader {
			a.pushScope(KindForHeader)
		}
		if s.HasDecl {
			kind := declBindKind(s.Kind)
			target := a.cur
			if s.Kind == ast.DeclVar {
				target = a.hoistTarget()
			}
			a.declarePattern(s.Left, kind, target)
		} else {
			a.declareExpr(s.Left)
		}
		a.declareExpr(s.Right)
		a.declareStmt(s.Body)
		if needsHeader {
			a.popScope()
		}

	case *ast.WhileStmt:
		a.declareExpr(s.Test)
		a.declareStmt(s.Body)

	case *ast.DoWhileStmt:
		a.declareStmt(s.Body)
		a.declareExpr(s.Test)

	case *ast.ReturnStmt:
		if s.Arg != nil {
			a.declareExpr(s.Arg)
		}

	case *ast.ThrowStmt:
		a.declareExpr(s.Arg)

	case *ast.BreakStmt, *ast.ContinueStmt, *ast.EmptyStmt:

	case *ast.LabeledStmt:
		a.declareStmt(s.Body)

	case *ast.TryStmt:
		a.declareStmt(s.Block)
		if s.Handler != nil {
			a.pushScope(KindCatch)
			if s.Handler.Param != nil {
				a.declarePattern(s.Handler.Param, BindCatch, a.cur)
			}
			a.declareStmts(s.Handler.Body.Stmts)
			a.popScope()
		}
		if s.Finalizer != nil {
			a.declareStmt(s.Finalizer)
		}

	case *ast.SwitchStmt:
		a.declareExpr(s.Disc)
		a.pushScope(KindBlock)
		for _, c := range s.Cases {
			if c.Test != nil {
				a.declareExpr(c.Test)
			}
			a.declareStmts(c.Consequent)
		}
		a.popScope()

	case *ast.WithStmt:
		a.declareExpr(s.Obj)
		a.declareStmt(s.Body)

	case *ast.ImportDeclStmt:
		for _, spec := range s.Specifiers {
			b := a.declareBinding(spec.Local, BindImport, a.cur)
			if b != nil {
				b.IsImported = true
			}
		}

	case *ast.ExportNamedStmt:
		if s.Decl != nil {
			a.declareStmt(s.Decl)
			for _, id := range declaredIdents(s.Decl) {
				if b, ok := a.bySpan[id.Span()]; ok {
					b.ExportStatus = ExportedByDeclaration
					b.ExportedName = b.Name
				}
			}
		}
		// Specifiers reference existing bindings; resolved in the resolve pass.

	case *ast.ExportDefaultStmt:
		switch d := s.Decl.(type) {
		case *ast.FuncDeclStmt:
			if d.Fn.Name != nil {
				a.declareStmt(d)
				if b, ok := a.bySpan[d.Fn.Name.Span()]; ok {
					b.ExportStatus = ExportedByDeclaration
					b.ExportedName = "default"
				}
			} else {
				a.declareFuncBody(d.Fn)
			}
		case *ast.ClassDeclStmt:
			if d.Class.Name != nil {
				a.declareStmt(d)
				if b, ok := a.bySpan[d.Class.Name.Span()]; ok {
					b.ExportStatus = ExportedByDeclaration
					b.ExportedName = "default"
				}
			} else {
				a.declareClass(d.Class)
			}
		case ast.Expr:
			a.declareExpr(d)
		}

	case *ast.ExportAllStmt:

	default:
		// Unknown statement kind: nothing declared, nothing to recurse into.
	}
}

func declBindKind(k ast.DeclKind) BindKind {
	switch k {
	case ast.DeclConst:
		return BindConst
	case ast.DeclLet:
		return BindLet
	default:
		return BindVar
	}
}

// declaredIdents returns the declaring identifiers of a declaration
// statement, used to patch export metadata onto their bindings once
// declared (export const x=1, y=2 exports both x and y).
func declaredIdents(s ast.Stmt) []*ast.Ident {
	switch s := s.(type) {
	case *ast.VarDeclStmt:
		var out []*ast.Ident
		for _, d := range s.Decls {
			out = append(out, patternIdents(d.ID)...)
		}
		return out
	case *ast.FuncDeclStmt:
		if s.Fn.Name != nil {
			return []*ast.Ident{s.Fn.Name}
		}
	case *ast.ClassDeclStmt:
		if s.Class.Name != nil {
			return []*ast.Ident{s.Class.Name}
		}
	}
	return nil
}

func patternIdents(e ast.Expr) []*ast.Ident {
	var out []*ast.Ident
	var walk func(ast.Expr)
	walk = func(e ast.Expr) {
		switch e := e.(type) {
		case nil:
		case *ast.Ident:
			out = append(out, e)
		case *ast.AssignPattern:
			walk(e.Left)
		case *ast.ArrayPattern:
			for _, el := range e.Elements {
				walk(el)
			}
		case *ast.ObjectLiteral:
			for _, p := range e.Properties {
				if p.Kind == ast.PropSpread {
					walk(p.Value)
					continue
				}
				walk(p.Value)
			}
		case *ast.RestElement:
			walk(e.Arg)
		}
	}
	walk(e)
	return out
}

// declarePattern declares every identifier leaf of a binding pattern
// (destructuring target, parameter, or plain identifier) into the target
// frame's scope, and recurses into default-value expressions (which are
// ordinary expressions, not declarations, but may themselves contain
// function/class literals that need their own scope).
func (a *analyzer) declarePattern(e ast.Expr, kind BindKind, target *frame) {
	switch e := e.(type) {
	case nil:
	case *ast.Ident:
		a.declareBinding(e, kind, target)
	case *ast.AssignPattern:
		a.declarePattern(e.Left, kind, target)
		a.declareExpr(e.Right)
	case *ast.ArrayPattern:
		for _, el := range e.Elements {
			if el != nil {
				a.declarePattern(el, kind, target)
			}
		}
	case *ast.ObjectLiteral:
		for _, p := range e.Properties {
			if p.Kind == ast.PropSpread {
				a.declarePattern(p.Value, kind, target)
				continue
			}
			if p.Computed {
				a.declareExpr(p.Key)
			}
			a.declarePattern(p.Value, kind, target)
			if p.Default != nil {
				a.declareExpr(p.Default)
			}
		}
	case *ast.RestElement:
		a.declarePattern(e.Arg, kind, target)
	default:
		// Not a recoverable binding identity (e.g. a computed member
		// expression used where a pattern was expected); skip, per §4.1's
		// "dynamic-name binding with no recoverable identity" failure mode.
	}
}

// declareFuncBody opens the function's own scope, declares its parameters,
// and declares into that same scope (no extra Block level) everything
// hoistable from its body.
func (a *analyzer) declareFuncBody(fn *ast.FuncLiteral) {
	a.pushScope(KindFunction)
	for _, p := range fn.Sig.Params {
		a.declarePattern(p, BindParam, a.cur)
	}
	if fn.Body != nil {
		a.declareStmts(fn.Body.Stmts)
	} else if fn.ExprBody != nil {
		a.declareExpr(fn.ExprBody)
	}
	a.popScope()
}

func (a *analyzer) declareClass(cl *ast.ClassLiteral) {
	if cl.SuperClass != nil {
		a.declareExpr(cl.SuperClass)
	}
	a.pushScope(KindClass)
	for _, m := range cl.Members {
		if m.Computed {
			a.declareExpr(m.Key)
		}
		if m.Method != nil {
			a.declareFuncBody(m.Method)
		}
		if m.FieldValue != nil {
			a.declareExpr(m.FieldValue)
		}
	}
	a.popScope()
}

// declareExpr recurses through expressions only to find nested function and
// class literals (which open their own scope) and var-containing for-loop
// initializers nested in unusual positions; it declares nothing itself.
func (a *analyzer) declareExpr(e ast.Expr) {
	switch e := e.(type) {
	case nil, *ast.Ident, *ast.Literal, *ast.ThisExpr, *ast.SuperExpr:

	case *ast.TemplateLiteral:
		for _, x := range e.Expressions {
			a.declareExpr(x)
		}
	case *ast.TaggedTemplateExpr:
		a.declareExpr(e.Tag)
		a.declareExpr(e.Template)
	case *ast.ArrayLiteral:
		for _, x := range e.Elements {
			a.declareExpr(x)
		}
	case *ast.SpreadElement:
		a.declareExpr(e.Arg)
	case *ast.ObjectLiteral:
		for _, p := range e.Properties {
			if p.Kind == ast.PropSpread {
				a.declareExpr(p.Value)
				continue
			}
			if p.Computed {
				a.declareExpr(p.Key)
			}
			a.declareExpr(p.Value)
			if p.Default != nil {
				a.declareExpr(p.Default)
			}
		}
	case *ast.ArrayPattern:
		for _, x := range e.Elements {
			a.declareExpr(x)
		}
	case *ast.RestElement:
		a.declareExpr(e.Arg)
	case *ast.AssignPattern:
		a.declareExpr(e.Left)
		a.declareExpr(e.Right)
	case *ast.FuncLiteral:
		a.declareFuncBody(e)
	case *ast.ClassLiteral:
		a.declareClass(e)
	case *ast.CallExpr:
		a.declareExpr(e.Callee)
		for _, x := range e.Args {
			a.declareExpr(x)
		}
	case *ast.NewExpr:
		a.declareExpr(e.Callee)
		for _, x := range e.Args {
			a.declareExpr(x)
		}
	case *ast.MemberExpr:
		a.declareExpr(e.Object)
		if e.Computed {
			a.declareExpr(e.Property)
		}
	case *ast.BinaryExpr:
		a.declareExpr(e.Left)
		a.declareExpr(e.Right)
	case *ast.LogicalExpr:
		a.declareExpr(e.Left)
		a.declareExpr(e.Right)
	case *ast.AssignExpr:
		a.declareExpr(e.Left)
		a.declareExpr(e.Right)
	case *ast.UnaryExpr:
		a.declareExpr(e.Arg)
	case *ast.UpdateExpr:
		a.declareExpr(e.Arg)
	case *ast.ConditionalExpr:
		a.declareExpr(e.Test)
		a.declareExpr(e.Cons)
		a.declareExpr(e.Alt)
	case *ast.SequenceExpr:
		for _, x := range e.Exprs {
			a.declareExpr(x)
		}
	case *ast.AwaitExpr:
		a.declareExpr(e.Arg)
	case *ast.YieldExpr:
		if e.Arg != nil {
			a.declareExpr(e.Arg)
		}
	}
}

// lastBinding returns the most recently declared binding, used right after
// declareBinding to attach bookkeeping the caller knows but declareBinding
// does not (e.g. "this was a function declaration").
func (a *analyzer) lastBinding() *Binding {
	if len(a.tree.Bindings) == 0 {
		return nil
	}
	return a.tree.Bindings[len(a.tree.Bindings)-1]
}
