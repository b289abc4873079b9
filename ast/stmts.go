package ast

// BlockStmt is { ...stmts }, the unit that opens a lexical block scope in
// most contexts (see the scope package for which node kinds actually open a
// new scope).
type BlockStmt struct {
	Start_, End_ int
	Stmts        []Stmt
}

func (n *BlockStmt) Span() Span { return Span{n.Start_, n.End_} }
func (n *BlockStmt) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
func (n *BlockStmt) stmtNode() {}

// DeclKind distinguishes var/let/const.
type DeclKind uint8

const (
	DeclVar DeclKind = iota
	DeclLet
	DeclConst
)

func (k DeclKind) String() string {
	switch k {
	case DeclLet:
		return "let"
	case DeclConst:
		return "const"
	default:
		return "var"
	}
}

// Declarator is one `id = init` entry of a VarDeclStmt.
type Declarator struct {
	ID   Expr // *Ident, *ObjectPattern-as-ObjectLiteral, or *ArrayPattern
	Init Expr // may be nil
}

// VarDeclStmt is var/let/const x = 1, y = 2;
type VarDeclStmt struct {
	Start_, End_ int
	Kind         DeclKind
	Decls        []*Declarator
}

func (n *VarDeclStmt) Span() Span { return Span{n.Start_, n.End_} }
func (n *VarDeclStmt) Walk(v Visitor) {
	for _, d := range n.Decls {
		Walk(v, d.ID)
		if d.Init != nil {
			Walk(v, d.Init)
		}
	}
}
func (n *VarDeclStmt) stmtNode() {}

// FuncDeclStmt is a named function declaration, `function f() {}`.
type FuncDeclStmt struct {
	Fn *FuncLiteral
}

func (n *FuncDeclStmt) Span() Span     { return n.Fn.Span() }
func (n *FuncDeclStmt) Walk(v Visitor) { Walk(v, n.Fn) }
func (n *FuncDeclStmt) stmtNode()      {}

// ClassDeclStmt is a named class declaration, `class C {}`.
type ClassDeclStmt struct {
	Class *ClassLiteral
}

func (n *ClassDeclStmt) Span() Span     { return n.Class.Span() }
func (n *ClassDeclStmt) Walk(v Visitor) { Walk(v, n.Class) }
func (n *ClassDeclStmt) stmtNode()      {}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Expr Expr
}

func (n *ExprStmt) Span() Span     { return n.Expr.Span() }
func (n *ExprStmt) Walk(v Visitor) { Walk(v, n.Expr) }
func (n *ExprStmt) stmtNode()      {}

// IfStmt is if (test) cons [else alt].
type IfStmt struct {
	Start_ int
	Test   Expr
	Cons   Stmt
	Alt    Stmt // may be nil
}

func (n *IfStmt) Span() Span {
	end := n.Cons.Span().End
	if n.Alt != nil {
		end = n.Alt.Span().End
	}
	return Span{n.Start_, end}
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Test)
	Walk(v, n.Cons)
	if n.Alt != nil {
		Walk(v, n.Alt)
	}
}
func (n *IfStmt) stmtNode() {}

// ForStmt is the classic three-part for (init; test; update) body.
type ForStmt struct {
	Start_      int
	Init        Node // *VarDeclStmt or Expr, may be nil
	Test, Update Expr // may be nil
	Body        Stmt
}

func (n *ForStmt) Span() Span { return Span{n.Start_, n.Body.Span().End} }
func (n *ForStmt) Walk(v Visitor) {
	if n.Init != nil {
		Walk(v, n.Init)
	}
	if n.Test != nil {
		Walk(v, n.Test)
	}
	if n.Update != nil {
		Walk(v, n.Update)
	}
	Walk(v, n.Body)
}
func (n *ForStmt) stmtNode() {}

// ForInStmt is for (left in/of right) body. Of distinguishes for-of from
// for-in; spec's "isIterated" usage hint is set only for the for-of form.
// DeclKind/HasDecl record whether Left introduces new bindings (for (let x
// in y)) or assigns to an existing reference (for (x in y)).
type ForInStmt struct {
	Start_  int
	Left    Expr // *Ident or destructuring pattern
	HasDecl bool
	Kind    DeclKind
	Right   Expr
	Body    Stmt
	Of      bool
}

func (n *ForInStmt) Span() Span { return Span{n.Start_, n.Body.Span().End} }
func (n *ForInStmt) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
	Walk(v, n.Body)
}
func (n *ForInStmt) stmtNode() {}

// WhileStmt is while (test) body.
type WhileStmt struct {
	Start_ int
	Test   Expr
	Body   Stmt
}

func (n *WhileStmt) Span() Span     { return Span{n.Start_, n.Body.Span().End} }
func (n *WhileStmt) Walk(v Visitor) { Walk(v, n.Test); Walk(v, n.Body) }
func (n *WhileStmt) stmtNode()      {}

// DoWhileStmt is do body while (test);
type DoWhileStmt struct {
	Start_, End_ int
	Body         Stmt
	Test         Expr
}

func (n *DoWhileStmt) Span() Span     { return Span{n.Start_, n.End_} }
func (n *DoWhileStmt) Walk(v Visitor) { Walk(v, n.Body); Walk(v, n.Test) }
func (n *DoWhileStmt) stmtNode()      {}

// ReturnStmt is return [arg];
type ReturnStmt struct {
	Start_, End_ int
	Arg          Expr // may be nil
}

func (n *ReturnStmt) Span() Span { return Span{n.Start_, n.End_} }
func (n *ReturnStmt) Walk(v Visitor) {
	if n.Arg != nil {
		Walk(v, n.Arg)
	}
}
func (n *ReturnStmt) stmtNode() {}

// ThrowStmt is throw arg;
type ThrowStmt struct {
	Start_, End_ int
	Arg          Expr
}

func (n *ThrowStmt) Span() Span     { return Span{n.Start_, n.End_} }
func (n *ThrowStmt) Walk(v Visitor) { Walk(v, n.Arg) }
func (n *ThrowStmt) stmtNode()      {}

// BreakStmt and ContinueStmt optionally target a label.
type BreakStmt struct {
	Start_, End_ int
	Label        *Ident // may be nil
}

func (n *BreakStmt) Span() Span     { return Span{n.Start_, n.End_} }
func (n *BreakStmt) Walk(v Visitor) {}
func (n *BreakStmt) stmtNode()      {}

type ContinueStmt struct {
	Start_, End_ int
	Label        *Ident // may be nil
}

func (n *ContinueStmt) Span() Span     { return Span{n.Start_, n.End_} }
func (n *ContinueStmt) Walk(v Visitor) {}
func (n *ContinueStmt) stmtNode()      {}

// LabeledStmt is label: body.
type LabeledStmt struct {
	Label *Ident
	Body  Stmt
}

func (n *LabeledStmt) Span() Span     { return Span{n.Label.Span().Start, n.Body.Span().End} }
func (n *LabeledStmt) Walk(v Visitor) { Walk(v, n.Body) }
func (n *LabeledStmt) stmtNode()      {}

// CatchClause is the catch (param) body part of a try statement. Param may
// be nil for a parameterless catch.
type CatchClause struct {
	Param Expr // *Ident or destructuring pattern, may be nil
	Body  *BlockStmt
}

// TryStmt is try block [catch (param) handler] [finally Finalizer].
type TryStmt struct {
	Start_, End_ int
	Block        *BlockStmt
	Handler      *CatchClause // may be nil
	Finalizer    *BlockStmt   // may be nil
}

func (n *TryStmt) Span() Span { return Span{n.Start_, n.End_} }
func (n *TryStmt) Walk(v Visitor) {
	Walk(v, n.Block)
	if n.Handler != nil {
		if n.Handler.Param != nil {
			Walk(v, n.Handler.Param)
		}
		Walk(v, n.Handler.Body)
	}
	if n.Finalizer != nil {
		Walk(v, n.Finalizer)
	}
}
func (n *TryStmt) stmtNode() {}

// SwitchCase is one `case test:` or `default:` arm.
type SwitchCase struct {
	Test       Expr // nil for default
	Consequent []Stmt
}

// SwitchStmt is switch (disc) { cases... }.
type SwitchStmt struct {
	Start_, End_ int
	Disc         Expr
	Cases        []*SwitchCase
}

func (n *SwitchStmt) Span() Span { return Span{n.Start_, n.End_} }
func (n *SwitchStmt) Walk(v Visitor) {
	Walk(v, n.Disc)
	for _, c := range n.Cases {
		if c.Test != nil {
			Walk(v, c.Test)
		}
		for _, s := range c.Consequent {
			Walk(v, s)
		}
	}
}
func (n *SwitchStmt) stmtNode() {}

// WithStmt is with (obj) body -- a taint source per the scope package.
type WithStmt struct {
	Start_ int
	Obj    Expr
	Body   Stmt
}

func (n *WithStmt) Span() Span     { return Span{n.Start_, n.Body.Span().End} }
func (n *WithStmt) Walk(v Visitor) { Walk(v, n.Obj); Walk(v, n.Body) }
func (n *WithStmt) stmtNode()      {}

// EmptyStmt is a bare `;`.
type EmptyStmt struct{ Start_, End_ int }

func (n *EmptyStmt) Span() Span     { return Span{n.Start_, n.End_} }
func (n *EmptyStmt) Walk(v Visitor) {}
func (n *EmptyStmt) stmtNode()      {}

// ImportKind distinguishes the three import specifier shapes.
type ImportKind uint8

const (
	ImportDefault   ImportKind = iota // import x from "m"
	ImportNamed                       // import { x [as y] } from "m"
	ImportNamespace                   // import * as x from "m"
)

// ImportSpecifier binds Local to the module named by the enclosing
// ImportDeclStmt's Source. Imported is the external name token for the
// ImportNamed form (nil otherwise); it must never be renamed.
type ImportSpecifier struct {
	Kind     ImportKind
	Local    *Ident
	Imported *Ident // set only for Kind == ImportNamed; node-distinct from Local
}

// ImportDeclStmt is import ... from "source";
type ImportDeclStmt struct {
	Start_, End_ int
	Specifiers   []*ImportSpecifier
	Source       string
}

func (n *ImportDeclStmt) Span() Span { return Span{n.Start_, n.End_} }
func (n *ImportDeclStmt) Walk(v Visitor) {
	for _, s := range n.Specifiers {
		Walk(v, s.Local)
	}
}
func (n *ImportDeclStmt) stmtNode() {}

// ExportSpecifier is one `local [as exported]` entry of a named export list.
// Exported is node-distinct from Local so that renaming Local's binding
// never affects the external name.
type ExportSpecifier struct {
	Local    *Ident
	Exported *Ident
}

// ExportNamedStmt is either:
//   - export <declaration>  (Decl != nil, Specifiers == nil)
//   - export { a, b as c } [from "source"]  (Decl == nil, Specifiers != nil)
type ExportNamedStmt struct {
	Start_, End_ int
	Decl         Stmt // *VarDeclStmt, *FuncDeclStmt or *ClassDeclStmt; may be nil
	Specifiers   []*ExportSpecifier
	Source       *string // set only for re-export-from-source form
}

func (n *ExportNamedStmt) Span() Span { return Span{n.Start_, n.End_} }
func (n *ExportNamedStmt) Walk(v Visitor) {
	if n.Decl != nil {
		Walk(v, n.Decl)
	}
}
func (n *ExportNamedStmt) stmtNode() {}

// ExportDefaultStmt is export default <declaration-or-expr>.
type ExportDefaultStmt struct {
	Start_, End_ int
	Decl         Node // *FuncDeclStmt, *ClassDeclStmt, or an Expr
}

func (n *ExportDefaultStmt) Span() Span     { return Span{n.Start_, n.End_} }
func (n *ExportDefaultStmt) Walk(v Visitor) { Walk(v, n.Decl) }
func (n *ExportDefaultStmt) stmtNode()      {}

// ExportAllStmt is export * [as name] from "source".
type ExportAllStmt struct {
	Start_, End_ int
	Exported     *Ident // may be nil
	Source       string
}

func (n *ExportAllStmt) Span() Span     { return Span{n.Start_, n.End_} }
func (n *ExportAllStmt) Walk(v Visitor) {}
func (n *ExportAllStmt) stmtNode()      {}
