package ast

// Literal is any literal value: string, number, boolean, null, regexp. Kind
// distinguishes them only for dossier/type-hint purposes; renaming never
// touches a Literal.
type Literal struct {
	Start_ int
	Raw    string // source text, as written
	Kind   LiteralKind
}

// LiteralKind enumerates the literal shapes this module distinguishes.
type LiteralKind uint8

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBool
	LiteralNull
	LiteralRegExp
)

func (n *Literal) Span() Span     { return Span{n.Start_, n.Start_ + len(n.Raw)} }
func (n *Literal) Walk(v Visitor) {}
func (n *Literal) exprNode()      {}

// TemplateLiteral is a template string, e.g. `hello ${name}`. Quasis[i] is
// the raw text between expression holes; len(Quasis) == len(Expressions)+1.
type TemplateLiteral struct {
	Start_, End_ int
	Quasis       []string
	Expressions  []Expr
}

func (n *TemplateLiteral) Span() Span { return Span{n.Start_, n.End_} }
func (n *TemplateLiteral) Walk(v Visitor) {
	for _, e := range n.Expressions {
		Walk(v, e)
	}
}
func (n *TemplateLiteral) exprNode() {}

// TaggedTemplateExpr is tag`...`.
type TaggedTemplateExpr struct {
	Tag      Expr
	Template *TemplateLiteral
}

func (n *TaggedTemplateExpr) Span() Span { return Span{n.Tag.Span().Start, n.Template.Span().End} }
func (n *TaggedTemplateExpr) Walk(v Visitor) {
	Walk(v, n.Tag)
	Walk(v, n.Template)
}
func (n *TaggedTemplateExpr) exprNode() {}

// ArrayLiteral is [a, b, ...c]. Elements may contain nil entries for elided
// array holes ([a, , b]), and *SpreadElement entries for ...c.
type ArrayLiteral struct {
	Start_, End_ int
	Elements     []Expr
}

func (n *ArrayLiteral) Span() Span { return Span{n.Start_, n.End_} }
func (n *ArrayLiteral) Walk(v Visitor) {
	for _, e := range n.Elements {
		Walk(v, e)
	}
}
func (n *ArrayLiteral) exprNode() {}

// SpreadElement is ...expr, used in array/object literals and call arguments.
type SpreadElement struct {
	Start_ int
	Arg    Expr
}

func (n *SpreadElement) Span() Span     { return Span{n.Start_, n.Arg.Span().End} }
func (n *SpreadElement) Walk(v Visitor) { Walk(v, n.Arg) }
func (n *SpreadElement) exprNode()      {}

// PropertyKind distinguishes the five shapes a Property participates in.
type PropertyKind uint8

const (
	PropInit   PropertyKind = iota // key: value, or shorthand {x}
	PropGet                        // get key() {...}
	PropSet                        // set key(v) {...}
	PropMethod                     // key() {...}
	PropSpread                     // ...expr
)

// Property is one entry of an object literal or object pattern. Key is nil
// when Kind == PropSpread. Shorthand is true for {x} (expression context) or
// {x} = expr (pattern context), where Key and Value are two distinct *Ident
// nodes sharing the same name and span.
type Property struct {
	Start_, End_ int
	Key          Expr // *Ident (non-computed) or any Expr (Computed == true)
	Value        Expr // for PropInit/shorthand: the bound/assigned expr; for accessors: *FuncLiteral
	Kind         PropertyKind
	Computed     bool
	Shorthand    bool
	// Default is set for a destructuring default on a shorthand pattern
	// property, e.g. `{ x = 1 } = obj`. When set, Value remains the *Ident
	// and Default holds the fallback expression.
	Default Expr
}

func (n *Property) Span() Span { return Span{n.Start_, n.End_} }
func (n *Property) Walk(v Visitor) {
	if n.Kind != PropSpread {
		Walk(v, n.Key)
	}
	Walk(v, n.Value)
	Walk(v, n.Default)
}
func (n *Property) exprNode() {}

// ObjectLiteral is {a: 1, b}. Used both as an expression and, when every
// Property.Value is itself a valid pattern, as a destructuring pattern on
// the left-hand side of a declaration or assignment.
type ObjectLiteral struct {
	Start_, End_ int
	Properties   []*Property
}

func (n *ObjectLiteral) Span() Span { return Span{n.Start_, n.End_} }
func (n *ObjectLiteral) Walk(v Visitor) {
	for _, p := range n.Properties {
		Walk(v, p)
	}
}
func (n *ObjectLiteral) exprNode() {}

// ArrayPattern is [a, , ...rest] used as a destructuring target.
type ArrayPattern struct {
	Start_, End_ int
	Elements     []Expr // nil entries for elision, *RestElement for the tail
}

func (n *ArrayPattern) Span() Span { return Span{n.Start_, n.End_} }
func (n *ArrayPattern) Walk(v Visitor) {
	for _, e := range n.Elements {
		Walk(v, e)
	}
}
func (n *ArrayPattern) exprNode() {}

// RestElement is ...x in a pattern position (array/object destructuring or
// a function's final parameter).
type RestElement struct {
	Start_ int
	Arg    Expr
}

func (n *RestElement) Span() Span     { return Span{n.Start_, n.Arg.Span().End} }
func (n *RestElement) Walk(v Visitor) { Walk(v, n.Arg) }
func (n *RestElement) exprNode()      {}

// AssignPattern is a pattern with a default value, x = 1, in a destructuring
// or parameter position.
type AssignPattern struct {
	Left  Expr
	Right Expr
}

func (n *AssignPattern) Span() Span     { return Span{n.Left.Span().Start, n.Right.Span().End} }
func (n *AssignPattern) Walk(v Visitor) { Walk(v, n.Left); Walk(v, n.Right) }
func (n *AssignPattern) exprNode()      {}

// FuncSignature is the parameter list shared by function declarations,
// function expressions, arrow functions and class methods.
type FuncSignature struct {
	Params  []Expr // *Ident, *ObjectPattern, *ArrayPattern, *AssignPattern, or *RestElement (last)
	HasRest bool
}

// FuncLiteral is a function expression, declaration body, arrow function, or
// class method body. Name is nil for anonymous function expressions and
// arrow functions.
type FuncLiteral struct {
	Start_, End_ int
	Name         *Ident
	Sig          *FuncSignature
	Body         *BlockStmt
	// ExprBody is set instead of Body for an arrow function with a
	// concise (expression) body, e.g. x => x + 1.
	ExprBody    Expr
	IsArrow     bool
	IsAsync     bool
	IsGenerator bool
}

func (n *FuncLiteral) Span() Span { return Span{n.Start_, n.End_} }
func (n *FuncLiteral) Walk(v Visitor) {
	if n.Name != nil {
		Walk(v, n.Name)
	}
	for _, p := range n.Sig.Params {
		Walk(v, p)
	}
	if n.Body != nil {
		Walk(v, n.Body)
	}
	if n.ExprBody != nil {
		Walk(v, n.ExprBody)
	}
}
func (n *FuncLiteral) exprNode() {}

// ClassMemberKind distinguishes fields from methods in a class body.
type ClassMemberKind uint8

const (
	ClassMethod ClassMemberKind = iota
	ClassField
)

// ClassMember is one entry of a class body: a method (including
// constructor/getter/setter) or a field.
type ClassMember struct {
	Start_, End_ int
	Kind         ClassMemberKind
	Key          Expr // *Ident (non-computed) or any Expr (Computed == true)
	Computed     bool
	Static       bool
	// Method holds the function literal for ClassMethod members.
	Method *FuncLiteral
	// FieldValue holds the (optional) initializer for ClassField members.
	FieldValue Expr
}

func (n *ClassMember) Span() Span { return Span{n.Start_, n.End_} }
func (n *ClassMember) Walk(v Visitor) {
	if n.Computed {
		Walk(v, n.Key)
	}
	if n.Method != nil {
		Walk(v, n.Method)
	}
	if n.FieldValue != nil {
		Walk(v, n.FieldValue)
	}
}

// ClassLiteral is a class expression or the body of a class declaration.
type ClassLiteral struct {
	Start_, End_ int
	Name         *Ident // nil for anonymous class expressions
	SuperClass   Expr
	Members      []*ClassMember
}

func (n *ClassLiteral) Span() Span { return Span{n.Start_, n.End_} }
func (n *ClassLiteral) Walk(v Visitor) {
	if n.Name != nil {
		Walk(v, n.Name)
	}
	if n.SuperClass != nil {
		Walk(v, n.SuperClass)
	}
	for _, m := range n.Members {
		Walk(v, m)
	}
}
func (n *ClassLiteral) exprNode() {}

// CallExpr is callee(args...). Optional is true for the optional-chaining
// form callee?.(args...).
type CallExpr struct {
	Start_, End_ int
	Callee       Expr
	Args         []Expr
	Optional     bool
}

func (n *CallExpr) Span() Span { return Span{n.Start_, n.End_} }
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Callee)
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *CallExpr) exprNode() {}

// NewExpr is new callee(args...).
type NewExpr struct {
	Start_, End_ int
	Callee       Expr
	Args         []Expr
}

func (n *NewExpr) Span() Span { return Span{n.Start_, n.End_} }
func (n *NewExpr) Walk(v Visitor) {
	Walk(v, n.Callee)
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (n *NewExpr) exprNode() {}

// MemberExpr is object.property or object[property]. The property identifier
// of a non-computed member expression is never a variable reference and
// must never be renamed; the scope analyzer never resolves it.
type MemberExpr struct {
	Object   Expr
	Property Expr // *Ident for non-computed, any Expr for computed
	Computed bool
	Optional bool
}

func (n *MemberExpr) Span() Span {
	return Span{n.Object.Span().Start, n.Property.Span().End}
}
func (n *MemberExpr) Walk(v Visitor) {
	Walk(v, n.Object)
	if n.Computed {
		Walk(v, n.Property)
	}
}
func (n *MemberExpr) exprNode() {}

// BinaryExpr is left OP right for a non-short-circuiting binary operator.
type BinaryExpr struct {
	Op          string
	Left, Right Expr
}

func (n *BinaryExpr) Span() Span     { return Span{n.Left.Span().Start, n.Right.Span().End} }
func (n *BinaryExpr) Walk(v Visitor) { Walk(v, n.Left); Walk(v, n.Right) }
func (n *BinaryExpr) exprNode()      {}

// LogicalExpr is left OP right for && or ||; the parser adapter converts ??
// to a BinaryExpr.
type LogicalExpr struct {
	Op          string
	Left, Right Expr
}

func (n *LogicalExpr) Span() Span     { return Span{n.Left.Span().Start, n.Right.Span().End} }
func (n *LogicalExpr) Walk(v Visitor) { Walk(v, n.Left); Walk(v, n.Right) }
func (n *LogicalExpr) exprNode()      {}

// AssignExpr is left OP= right (OP is "" for plain assignment).
type AssignExpr struct {
	Op          string
	Left, Right Expr
}

func (n *AssignExpr) Span() Span     { return Span{n.Left.Span().Start, n.Right.Span().End} }
func (n *AssignExpr) Walk(v Visitor) { Walk(v, n.Left); Walk(v, n.Right) }
func (n *AssignExpr) exprNode()      {}

// UnaryExpr is OP arg (prefix only: !, -, +, ~, typeof, void, delete).
type UnaryExpr struct {
	Start_ int
	Op     string
	Arg    Expr
}

func (n *UnaryExpr) Span() Span     { return Span{n.Start_, n.Arg.Span().End} }
func (n *UnaryExpr) Walk(v Visitor) { Walk(v, n.Arg) }
func (n *UnaryExpr) exprNode()      {}

// UpdateExpr is ++/-- in prefix or postfix position.
type UpdateExpr struct {
	Start_, End_ int
	Op           string
	Arg          Expr
	Prefix       bool
}

func (n *UpdateExpr) Span() Span     { return Span{n.Start_, n.End_} }
func (n *UpdateExpr) Walk(v Visitor) { Walk(v, n.Arg) }
func (n *UpdateExpr) exprNode()      {}

// ConditionalExpr is test ? cons : alt.
type ConditionalExpr struct {
	Test, Cons, Alt Expr
}

func (n *ConditionalExpr) Span() Span { return Span{n.Test.Span().Start, n.Alt.Span().End} }
func (n *ConditionalExpr) Walk(v Visitor) {
	Walk(v, n.Test)
	Walk(v, n.Cons)
	Walk(v, n.Alt)
}
func (n *ConditionalExpr) exprNode() {}

// SequenceExpr is a, b, c.
type SequenceExpr struct {
	Exprs []Expr
}

func (n *SequenceExpr) Span() Span {
	return Span{n.Exprs[0].Span().Start, n.Exprs[len(n.Exprs)-1].Span().End}
}
func (n *SequenceExpr) Walk(v Visitor) {
	for _, e := range n.Exprs {
		Walk(v, e)
	}
}
func (n *SequenceExpr) exprNode() {}

// AwaitExpr is await arg.
type AwaitExpr struct {
	Start_ int
	Arg    Expr
}

func (n *AwaitExpr) Span() Span     { return Span{n.Start_, n.Arg.Span().End} }
func (n *AwaitExpr) Walk(v Visitor) { Walk(v, n.Arg) }
func (n *AwaitExpr) exprNode()      {}

// YieldExpr is yield [*] [arg].
type YieldExpr struct {
	Start_, End_ int
	Arg          Expr // may be nil
	Delegate     bool // yield*
}

func (n *YieldExpr) Span() Span { return Span{n.Start_, n.End_} }
func (n *YieldExpr) Walk(v Visitor) {
	if n.Arg != nil {
		Walk(v, n.Arg)
	}
}
func (n *YieldExpr) exprNode() {}

// ThisExpr is the `this` keyword.
type ThisExpr struct{ Start_ int }

func (n *ThisExpr) Span() Span     { return Span{n.Start_, n.Start_ + 4} }
func (n *ThisExpr) Walk(v Visitor) {}
func (n *ThisExpr) exprNode()      {}

// SuperExpr is the `super` keyword, used in super.method() or super(...).
type SuperExpr struct{ Start_ int }

func (n *SuperExpr) Span() Span     { return Span{n.Start_, n.Start_ + 5} }
func (n *SuperExpr) Walk(v Visitor) {}
func (n *SuperExpr) exprNode()      {}
