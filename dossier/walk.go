package dossier

import (
	"github.com/mna/jsrename/ast"
	"github.com/mna/jsrename/scope"
)

// usage accumulates evidence for one binding as the walker visits every
// reference to it. It mirrors UsageSummary but with sets as maps, since the
// walker discovers entries in traversal order, not sorted order.
type usage struct {
	refCount int

	isCalled, isConstructed, isAwaited, isIterated, isReturned, isAssignedTo bool

	unaryOps      map[string]bool
	binaryOps     map[string]bool
	literals      map[string]bool
	calledMethods map[string]bool
	memberReads   map[string]bool
	memberWrites  map[string]bool
}

func newUsage() *usage {
	return &usage{
		unaryOps:      make(map[string]bool),
		binaryOps:     make(map[string]bool),
		literals:      make(map[string]bool),
		calledMethods: make(map[string]bool),
		memberReads:   make(map[string]bool),
		memberWrites:  make(map[string]bool),
	}
}

func (u *usage) summary() UsageSummary {
	return UsageSummary{
		ReferenceCount:    u.refCount,
		IsCalled:          u.isCalled,
		IsConstructed:     u.isConstructed,
		IsAwaited:         u.isAwaited,
		IsIterated:        u.isIterated,
		IsReturned:        u.isReturned,
		IsAssignedTo:      u.isAssignedTo,
		UnaryOperators:    sortedKeys(u.unaryOps),
		BinaryOperators:   sortedKeys(u.binaryOps),
		LiteralsCompared:  sortedKeys(u.literals),
		CalledMethods:     sortedKeys(u.calledMethods),
		MemberReads:       sortedKeys(u.memberReads),
		MemberWrites:      sortedKeys(u.memberWrites),
	}
}

// comparisonOps are the binary operators whose literal operand feeds
// LiteralsCompared.
var comparisonOps = map[string]bool{
	"==": true, "===": true, "!=": true, "!==": true,
	"<": true, "<=": true, ">": true, ">=": true,
}

// walker is a read-only traversal of the whole chunk that classifies every
// identifier reference (ast.Ident.Binding != nil) by its immediate
// syntactic context. It never resolves names itself — the scope package
// already did that — it only inspects the parent-shape of each occurrence.
type walker struct {
	usages map[scope.BindingID]*usage
}

func collectUsage(chunk *ast.Chunk) map[scope.BindingID]*usage {
	w := &walker{usages: make(map[scope.BindingID]*usage)}
	w.stmts(chunk.Body)
	return w.usages
}

func (w *walker) of(id scope.BindingID) *usage {
	u, ok := w.usages[id]
	if !ok {
		u = newUsage()
		w.usages[id] = u
	}
	return u
}

// bindingOf returns the binding a plain identifier occurrence resolves to,
// if any.
func bindingOf(e ast.Expr) (scope.BindingID, bool) {
	id, ok := e.(*ast.Ident)
	if !ok || id.Binding == nil {
		return 0, false
	}
	bid, ok := id.Binding.(scope.BindingID)
	return bid, ok
}

// chainBase resolves the root binding of a method-call chain: `x`, `x.a`,
// `x.a()`, `x.a().b` all resolve to x's binding so that chain continuation
// (x.a().b()) attributes both `a` and `b` to x (§4.2).
func chainBase(e ast.Expr) (scope.BindingID, bool) {
	switch e := e.(type) {
	case *ast.Ident:
		return bindingOf(e)
	case *ast.CallExpr:
		return chainBase(e.Callee)
	case *ast.MemberExpr:
		if e.Computed {
			return 0, false
		}
		return chainBase(e.Object)
	default:
		return 0, false
	}
}

func (w *walker) stmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		w.stmt(s)
	}
}

func (w *walker) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case nil:
	case *ast.BlockStmt:
		w.stmts(s.Stmts)
	case *ast.VarDeclStmt:
		for _, d := range s.Decls {
			if d.Init != nil {
				w.expr(d.Init)
			}
		}
	case *ast.FuncDeclStmt:
		w.funcBody(s.Fn)
	case *ast.ClassDeclStmt:
		w.class(s.Class)
	case *ast.ExprStmt:
		w.expr(s.Expr)
	case *ast.IfStmt:
		w.expr(s.Test)
		w.stmt(s.Cons)
		w.stmt(s.Alt)
	case *ast.ForStmt:
		if vd, ok := s.Init.(*ast.VarDeclStmt); ok {
			w.stmt(vd)
		} else if e, ok := s.Init.(ast.Expr); ok {
			w.expr(e)
		}
		if s.Test != nil {
			w.expr(s.Test)
		}
		if s.Update != nil {
			w.expr(s.Update)
		}
		w.stmt(s.Body)
	case *ast.ForInStmt:
		if !s.HasDecl {
			w.writeTarget(s.Left)
		}
		if s.Of {
			if bid, ok := bindingOf(s.Right); ok {
				w.of(bid).isIterated = true
			}
		}
		w.expr(s.Right)
		w.stmt(s.Body)
	case *ast.WhileStmt:
		w.expr(s.Test)
		w.stmt(s.Body)
	case *ast.DoWhileStmt:
		w.stmt(s.Body)
		w.expr(s.Test)
	case *ast.ReturnStmt:
		if s.Arg != nil {
			if bid, ok := bindingOf(s.Arg); ok {
				w.of(bid).isReturned = true
			}
			w.expr(s.Arg)
		}
	case *ast.ThrowStmt:
		w.expr(s.Arg)
	case *ast.BreakStmt, *ast.ContinueStmt, *ast.EmptyStmt:
	case *ast.LabeledStmt:
		w.stmt(s.Body)
	case *ast.TryStmt:
		w.stmt(s.Block)
		if s.Handler != nil {
			w.stmts(s.Handler.Body.Stmts)
		}
		if s.Finalizer != nil {
			w.stmt(s.Finalizer)
		}
	case *ast.SwitchStmt:
		w.expr(s.Disc)
		for _, c := range s.Cases {
			if c.Test != nil {
				w.expr(c.Test)
			}
			w.stmts(c.Consequent)
		}
	case *ast.WithStmt:
		w.expr(s.Obj)
		w.stmt(s.Body)
	case *ast.ImportDeclStmt:
	case *ast.ExportNamedStmt:
		if s.Decl != nil {
			w.stmt(s.Decl)
		}
	case *ast.ExportDefaultStmt:
		switch d := s.Decl.(type) {
		case *ast.FuncDeclStmt:
			w.funcBody(d.Fn)
		case *ast.ClassDeclStmt:
			w.class(d.Class)
		case ast.Expr:
			w.expr(d)
		}
	case *ast.ExportAllStmt:
	}
}

func (w *walker) funcBody(fn *ast.FuncLiteral) {
	if fn.Body != nil {
		w.stmts(fn.Body.Stmts)
	} else if fn.ExprBody != nil {
		w.expr(fn.ExprBody)
	}
}

func (w *walker) class(cl *ast.ClassLiteral) {
	if cl.SuperClass != nil {
		w.expr(cl.SuperClass)
	}
	for _, m := range cl.Members {
		if m.Computed {
			w.expr(m.Key)
		}
		if m.Method != nil {
			w.funcBody(m.Method)
		}
		if m.FieldValue != nil {
			w.expr(m.FieldValue)
		}
	}
}

// writeTarget walks an assignment/for-in-or-of target, marking every plain
// identifier leaf isAssignedTo.
func (w *walker) writeTarget(e ast.Expr) {
	switch e := e.(type) {
	case nil:
	case *ast.Ident:
		if bid, ok := bindingOf(e); ok {
			u := w.of(bid)
			u.refCount++
			u.isAssignedTo = true
		}
	case *ast.AssignPattern:
		w.writeTarget(e.Left)
		w.expr(e.Right)
	case *ast.ArrayPattern:
		for _, el := range e.Elements {
			w.writeTarget(el)
		}
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			w.writeTarget(el)
		}
	case *ast.ObjectLiteral:
		for _, p := range e.Properties {
			if p.Kind == ast.PropSpread {
				w.writeTarget(p.Value)
				continue
			}
			w.writeTarget(p.Value)
			if p.Default != nil {
				w.expr(p.Default)
			}
		}
	case *ast.RestElement:
		w.writeTarget(e.Arg)
	case *ast.MemberExpr:
		if !e.Computed {
			if bid, ok := bindingOf(e.Object); ok {
				if prop, ok := e.Property.(*ast.Ident); ok {
					w.of(bid).memberWrites[prop.Name] = true
				}
			}
		}
		w.expr(e.Object)
		if e.Computed {
			w.expr(e.Property)
		}
	default:
		w.expr(e)
	}
}

func (w *walker) expr(e ast.Expr) {
	switch e := e.(type) {
	case nil, *ast.Literal, *ast.ThisExpr, *ast.SuperExpr:

	case *ast.Ident:
		if bid, ok := bindingOf(e); ok {
			w.of(bid).refCount++
		}

	case *ast.TemplateLiteral:
		for _, x := range e.Expressions {
			w.expr(x)
		}
	case *ast.TaggedTemplateExpr:
		w.expr(e.Tag)
		w.expr(e.Template)
	case *ast.ArrayLiteral:
		for _, x := range e.Elements {
			w.expr(x)
		}
	case *ast.SpreadElement:
		w.expr(e.Arg)
	case *ast.ObjectLiteral:
		for _, p := range e.Properties {
			if p.Kind == ast.PropSpread {
				w.expr(p.Value)
				continue
			}
			if p.Computed {
				w.expr(p.Key)
			}
			w.expr(p.Value)
			if p.Default != nil {
				w.expr(p.Default)
			}
		}
	case *ast.ArrayPattern:
		for _, x := range e.Elements {
			w.expr(x)
		}
	case *ast.RestElement:
		w.expr(e.Arg)
	case *ast.AssignPattern:
		w.expr(e.Left)
		w.expr(e.Right)
	case *ast.FuncLiteral:
		w.funcBody(e)
	case *ast.ClassLiteral:
		w.class(e)

	case *ast.CallExpr:
		if m, ok := e.Callee.(*ast.MemberExpr); ok && !m.Computed {
			if bid, ok := chainBase(m.Object); ok {
				if prop, ok := m.Property.(*ast.Ident); ok {
					w.of(bid).calledMethods[prop.Name] = true
				}
			}
		} else if bid, ok := bindingOf(e.Callee); ok {
			w.of(bid).isCalled = true
		}
		w.expr(e.Callee)
		for _, a := range e.Args {
			w.expr(a)
		}

	case *ast.NewExpr:
		if bid, ok := bindingOf(e.Callee); ok {
			w.of(bid).isConstructed = true
		}
		w.expr(e.Callee)
		for _, a := range e.Args {
			w.expr(a)
		}

	case *ast.MemberExpr:
		if !e.Computed {
			if bid, ok := bindingOf(e.Object); ok {
				if prop, ok := e.Property.(*ast.Ident); ok {
					w.of(bid).memberReads[prop.Name] = true
				}
			}
		}
		w.expr(e.Object)
		if e.Computed {
			w.expr(e.Property)
		}

	case *ast.BinaryExpr:
		w.binaryOperands(e.Op, e.Left, e.Right)
		w.expr(e.Left)
		w.expr(e.Right)
	case *ast.LogicalExpr:
		w.expr(e.Left)
		w.expr(e.Right)

	case *ast.AssignExpr:
		w.expr(e.Right)
		w.writeTarget(e.Left)

	case *ast.UnaryExpr:
		if bid, ok := bindingOf(e.Arg); ok {
			w.of(bid).unaryOps[e.Op] = true
		}
		w.expr(e.Arg)
	case *ast.UpdateExpr:
		if bid, ok := bindingOf(e.Arg); ok {
			u := w.of(bid)
			u.refCount++
			u.isAssignedTo = true
			u.unaryOps[e.Op] = true
		} else {
			w.expr(e.Arg)
		}

	case *ast.ConditionalExpr:
		w.expr(e.Test)
		w.expr(e.Cons)
		w.expr(e.Alt)
	case *ast.SequenceExpr:
		for _, x := range e.Exprs {
			w.expr(x)
		}
	case *ast.AwaitExpr:
		if bid, ok := bindingOf(e.Arg); ok {
			w.of(bid).isAwaited = true
		}
		w.expr(e.Arg)
	case *ast.YieldExpr:
		if e.Arg != nil {
			w.expr(e.Arg)
		}
	}
}

// binaryOperands records the operator against whichever operand is a bound
// identifier, and (for comparison operators) the literal the other operand
// compares against.
func (w *walker) binaryOperands(op string, left, right ast.Expr) {
	if bid, ok := bindingOf(left); ok {
		w.of(bid).binaryOps[op] = true
		if comparisonOps[op] {
			if lit, ok := right.(*ast.Literal); ok {
				w.of(bid).literals[lit.Raw] = true
			}
		}
	}
	if bid, ok := bindingOf(right); ok {
		w.of(bid).binaryOps[op] = true
		if comparisonOps[op] {
			if lit, ok := left.(*ast.Literal); ok {
				w.of(bid).literals[lit.Raw] = true
			}
		}
	}
}
