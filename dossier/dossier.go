// Package dossier builds the read-only, per-binding evidence bundle handed
// to the naming oracle (§4.2): original name, kind, desired style, a
// truncated declaration snippet, and a compact usage summary derived from
// every reference to that binding. Renameable bindings are those the scope
// package did not mark unsafe or imported; unsafe/imported bindings never
// get a dossier, since the solver never renames them anyway.
//
// Dossiers carry no syntax-tree pointers: everything they need (usage
// shape, snippet text) is extracted once, during Build, from the already-
// frozen scope.Tree and the original source text.
package dossier

import (
	"golang.org/x/exp/slices"

	"github.com/mna/jsrename/ast"
	"github.com/mna/jsrename/scope"
)

// UsageSummary is the compact, language-neutral evidence over all of a
// binding's references (§4.2). Set fields are kept sorted for determinism.
type UsageSummary struct {
	ReferenceCount int

	IsCalled      bool
	IsConstructed bool
	IsAwaited     bool
	IsIterated    bool
	IsReturned    bool
	IsAssignedTo  bool

	UnaryOperators   []string
	BinaryOperators  []string
	LiteralsCompared []string
	CalledMethods    []string
	MemberReads      []string
	MemberWrites     []string
}

// Dossier is the evidence bundle for one renameable binding.
type Dossier struct {
	BindingID          scope.BindingID
	OriginalName        string
	Kind                scope.BindKind
	DesiredStyle        scope.Style
	DeclarationSnippet  string
	Usage               UsageSummary
	TypeHints           []string
}

// Options configures snippet truncation.
type Options struct {
	// ContextWindowSize is the byte budget for a declaration snippet (§6's
	// context_window_size); 0 means use DefaultContextWindowSize.
	ContextWindowSize int
}

const DefaultContextWindowSize = 240

// snippetTerminator marks a declaration snippet that was cut short.
const snippetTerminator = " …"

// Build assembles a dossier for every renameable binding in tree, in
// ascending binding-id order (a stable, declaration-order traversal since
// ids are minted in DFS pre-order by the scope package).
func Build(chunk *ast.Chunk, tree *scope.Tree, src string, opts Options) []*Dossier {
	budget := opts.ContextWindowSize
	if budget <= 0 {
		budget = DefaultContextWindowSize
	}

	usages := collectUsage(chunk)

	var out []*Dossier
	for _, b := range tree.Bindings {
		if b.Unsafe || b.IsImported {
			continue
		}
		d := &Dossier{
			BindingID:          b.ID,
			OriginalName:       b.Name,
			Kind:               b.Kind,
			DesiredStyle:       b.DesiredStyle,
			DeclarationSnippet: snippet(src, b.DeclStmt, budget),
		}
		if u, ok := usages[b.ID]; ok {
			d.Usage = u.summary()
		}
		d.TypeHints = inferTypeHints(d.Usage)
		out = append(out, d)
	}
	return out
}

func snippet(src string, sp ast.Span, budget int) string {
	if sp.End <= sp.Start || sp.Start < 0 || sp.End > len(src) {
		return ""
	}
	text := src[sp.Start:sp.End]
	if len(text) <= budget {
		return text
	}
	cut := budget
	for cut > 0 && !isRuneBoundary(text, cut) {
		cut--
	}
	return text[:cut] + snippetTerminator
}

// isRuneBoundary reports whether byte offset i of s does not split a UTF-8
// encoded rune, so truncation never produces invalid UTF-8.
func isRuneBoundary(s string, i int) bool {
	if i <= 0 || i >= len(s) {
		return true
	}
	return s[i]&0xC0 != 0x80
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
