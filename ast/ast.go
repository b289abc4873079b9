// Package ast defines a tagged-variant syntax tree for the subset of
// JavaScript/TypeScript this module understands. It is intentionally
// independent of any particular parser library: the jsparse package is the
// only thing that knows how to build one of these trees, so that scope
// analysis, dossier building, planning, solving and rewriting never leak
// parser identity or traversal machinery.
//
// Every node carries its own Span, a pair of byte offsets into the original
// source text; spans are the stable identity key used across analysis and
// rewrite (see the scope package).
package ast

// Span is a pair of byte offsets (start, end) into the original source.
// It is the stable identity used to tie together a binding, its
// declaration, and every reference to it.
type Span struct {
	Start, End int
}

// Node is implemented by every syntax tree node.
type Node interface {
	// Span reports the byte-offset range of the node in the source.
	Span() Span

	// Walk visits each child node, in source order, to implement the
	// Visitor pattern.
	Walk(v Visitor)
}

// Expr is implemented by every expression node, including the identifier
// and pattern nodes used on the left-hand side of declarations, parameters
// and assignment targets (this module does not distinguish a separate
// Pattern type; binding positions hold an Expr that is guaranteed, by
// construction, to be one of *Ident, *ObjectPattern, *ArrayPattern,
// *AssignPattern or *RestElement).
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Ident is an identifier occurrence: it may be a declaring identifier (a
// binding introduction), a reference to a binding, or a non-binding name
// token (an object-property key, or the external name in an import/export
// specifier). The resolver fills in Binding for occurrences that denote a
// variable; declaring and non-binding uses are distinguished by the
// resolver, not by this node itself.
type Ident struct {
	Start_ int
	Name   string

	// Binding is set by the scope analyzer for identifier occurrences that
	// resolve to a declared binding (both declarations and references).
	// It is left nil for identifiers that never participate in resolution
	// (property keys, external import/export names).
	Binding any
}

func (n *Ident) Span() Span        { return Span{n.Start_, n.Start_ + len(n.Name)} }
func (n *Ident) Walk(v Visitor)    {}
func (n *Ident) exprNode()         {}
func (n *Ident) String() string    { return n.Name }

// Chunk is the root of a parsed module: the unit passed to the scope
// analyzer, the unit the job planner partitions, and the unit the rewrite
// engine re-serializes.
type Chunk struct {
	Name string // source filename, for diagnostics only
	Body []Stmt
	End  int // offset of EOF, used when Body is empty
}

func (n *Chunk) Span() Span {
	if len(n.Body) == 0 {
		return Span{n.End, n.End}
	}
	return Span{n.Body[0].Span().Start, n.Body[len(n.Body)-1].Span().End}
}
func (n *Chunk) Walk(v Visitor) {
	for _, s := range n.Body {
		Walk(v, s)
	}
}
