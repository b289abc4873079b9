// Package scope implements the scope & symbol analyzer: it walks a parsed
// module's syntax tree once to recover the lexical-scope tree and the table
// of declared bindings, and a second time to resolve every identifier
// reference to exactly one binding while detecting renaming-unsafe
// constructs; taint is then propagated up the scope chain.
//
// The algorithm is adapted from this module's teacher's own resolver
// (a block-chain walk that opens a new *block* per lexical construct, binds
// declarations into the innermost block, and resolves references by walking
// the block chain outward) generalized from a single-function-scoped
// language to JavaScript's richer scope/hoisting rules (var hoists to the
// nearest function or program scope; let/const/class/catch/import are
// block-scoped; function declarations bind in the enclosing block).
package scope

import (
	"github.com/dolthub/swiss"

	"github.com/mna/jsrename/ast"
)

// ID identifies a scope within a single analysis. IDs are minted locally to
// one analysis (never a package-level counter) and are stable only for the
// lifetime of that analysis's Tree.
type ID int

// BindingID identifies a binding within a single analysis.
type BindingID int

// Kind enumerates the lexical-scope shapes this module distinguishes.
type Kind uint8

const (
	KindProgram Kind = iota // root of a non-module script
	KindModule              // root of an ES module (has import/export at top level)
	KindFunction
	KindClass
	KindBlock
	KindCatch
	KindForHeader
)

func (k Kind) String() string {
	switch k {
	case KindProgram:
		return "program"
	case KindModule:
		return "module"
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindBlock:
		return "block"
	case KindCatch:
		return "catch"
	case KindForHeader:
		return "for-header"
	default:
		return "unknown"
	}
}

// BindKind enumerates the kinds of declarations this module renames or
// reasons about.
type BindKind uint8

const (
	BindParam BindKind = iota
	BindConst
	BindLet
	BindVar
	BindFunction
	BindClass
	BindCatch
	BindImport
)

func (k BindKind) String() string {
	switch k {
	case BindParam:
		return "param"
	case BindConst:
		return "const"
	case BindLet:
		return "let"
	case BindVar:
		return "var"
	case BindFunction:
		return "function"
	case BindClass:
		return "class"
	case BindCatch:
		return "catch"
	case BindImport:
		return "import"
	default:
		return "unknown"
	}
}

// ExportStatus records whether, and how, a binding is part of the module's
// external interface.
type ExportStatus uint8

const (
	NotExported ExportStatus = iota
	ExportedByDeclaration           // `export const x = 1` / `export function f(){}`
	ExportedBySpecifier             // referenced in `export { x }`
	ExportedDefault                 // referenced by `export default x`
)

// Scope is one node of the lexical-scope tree.
type Scope struct {
	ID       ID
	ParentID ID // -1 for the root
	Kind     Kind
	Declared []BindingID
	Children []ID
	Tainted  bool

	name string // debug name assigned by NameBlocks, e.g. "_", "a", "aa"

	// names maps a declared name to the binding that owns it in this scope,
	// used only during analysis to resolve references by walking the scope
	// chain outward; the Declared slice above is the public, ordered record.
	names map[string]BindingID
}

// Binding is a declared identifier, as described in the data model.
type Binding struct {
	ID             BindingID
	Name           string
	DeclaringScope ID
	Kind           BindKind
	IsConstant     bool
	IsImported     bool
	ExportStatus   ExportStatus
	// ExportedName is set when ExportStatus is ExportedByDeclaration,
	// ExportedBySpecifier or ExportedDefault and records the external name
	// to preserve.
	ExportedName string
	References   []ast.Span
	Unsafe       bool
	DesiredStyle Style

	// Decl is the declaring identifier node. Renaming (in the rewrite
	// package) splices the new name into the source text at its span and
	// at every reference span; the node itself is not modified.
	Decl *ast.Ident

	// DeclStmt is the span of the statement that introduced this binding,
	// used by the dossier builder to extract a declaration snippet.
	DeclStmt ast.Span

	// The following fields are bookkeeping accumulated during the declare
	// and resolve passes,
	// consulted only by style inference (§4.3) once analysis completes; they
	// are not part of the public data model described in the spec.
	declIsFuncLike  bool // Decl's initializer is a function/method, or Kind==BindFunction
	declIsPrimitive bool // Decl's initializer is a literal (string/number/bool/null/regexp)
	calledPlain     bool // seen as the callee of a CallExpr (without new)
	calledNew       bool // seen as the callee of a NewExpr
}

// Style is the naming convention inferred for a binding (see §4.3).
type Style uint8

const (
	StyleCamel Style = iota
	StylePascal
	StyleUpperSnake
)

func (s Style) String() string {
	switch s {
	case StylePascal:
		return "pascal"
	case StyleUpperSnake:
		return "upper_snake"
	default:
		return "camel"
	}
}

// Tree is the result of analyzing one module: its scope tree, its binding
// table, and accumulated diagnostics counts. It is frozen once Analyze
// returns; nothing downstream mutates it (the rewrite engine works on the
// source text at the recorded spans, not on the tree).
type Tree struct {
	Scopes   []*Scope
	Bindings []*Binding

	// byBinding indexes bindings by their declaring identifier's span, the
	// stable identity key described in the data model. Built with a
	// swiss-table map since it is populated once and then only read by
	// key, a good fit for a flat open-addressing table.
	byBinding *swiss.Map[ast.Span, BindingID]

	// TaintedSkipped counts bindings that kept their original name because
	// their declaring scope is tainted (§7's TaintedBindingSkipped, an
	// informational count, never an error).
	TaintedSkipped int
}

// Root returns the outermost scope (program or module).
func (t *Tree) Root() *Scope { return t.Scopes[0] }

func (t *Tree) Scope(id ID) *Scope { return t.Scopes[id] }

func (t *Tree) Binding(id BindingID) *Binding { return t.Bindings[id] }

// BindingForSpan resolves the binding declared at the given identifier span,
// if any, without re-running resolution.
func (t *Tree) BindingForSpan(sp ast.Span) (*Binding, bool) {
	id, ok := t.byBinding.Get(sp)
	if !ok {
		return nil, false
	}
	return t.Bindings[id], true
}

// Mode is a set of bit flags that configure the analysis.
type Mode uint

const (
	// NameBlocks assigns a deterministic, order-independent debug name to
	// every scope ("_", "a", "b", ..., mirroring the teacher's own
	// resolver.NameBlocks), useful when printing diagnostics.
	NameBlocks Mode = 1 << iota
)

// Name returns the scope's debug name, only meaningful when the analysis
// ran with the NameBlocks mode.
func (s *Scope) Name() string { return s.name }
