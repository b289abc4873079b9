package planner

import (
	"strings"

	"github.com/mna/jsrename/dossier"
	"github.com/mna/jsrename/scope"
)

// chunkNode is one node of the chunk-scope tree (§4.4's glossary "chunk
// scope": program, function, or class scope).
type chunkNode struct {
	scopeID  scope.ID
	direct   []scope.BindingID
	children []*chunkNode
}

func (n *chunkNode) subtreeBindings() []scope.BindingID {
	out := append([]scope.BindingID(nil), n.direct...)
	for _, c := range n.children {
		out = append(out, c.subtreeBindings()...)
	}
	return out
}

// isChunkKind reports whether a scope kind is a chunk-scope boundary.
func isChunkKind(k scope.Kind) bool {
	return k == scope.KindProgram || k == scope.KindModule || k == scope.KindFunction || k == scope.KindClass
}

// buildChunkTree builds the tree of chunk scopes, attaching each renameable
// binding (one with a dossier) to the nearest enclosing chunk scope.
func buildChunkTree(tree *scope.Tree, byBinding map[scope.BindingID]*dossier.Dossier) *chunkNode {
	nodes := make(map[scope.ID]*chunkNode)
	for _, s := range tree.Scopes {
		if isChunkKind(s.Kind) {
			nodes[s.ID] = &chunkNode{scopeID: s.ID}
		}
	}

	for _, s := range tree.Scopes {
		if !isChunkKind(s.Kind) || s.ParentID < 0 {
			continue
		}
		parent := nearestChunkAncestor(tree, s.ParentID)
		if parent >= 0 {
			nodes[parent].children = append(nodes[parent].children, nodes[s.ID])
		}
	}

	for _, b := range tree.Bindings {
		if _, ok := byBinding[b.ID]; !ok {
			continue
		}
		owner := nearestChunkScope(tree, b.DeclaringScope)
		nodes[owner].direct = append(nodes[owner].direct, b.ID)
	}

	return nodes[tree.Root().ID]
}

// nearestChunkScope returns id if it is itself a chunk scope, else walks
// upward to the nearest chunk-scope ancestor.
func nearestChunkScope(tree *scope.Tree, id scope.ID) scope.ID {
	s := tree.Scope(id)
	if isChunkKind(s.Kind) {
		return id
	}
	return nearestChunkAncestor(tree, s.ParentID)
}

func nearestChunkAncestor(tree *scope.Tree, id scope.ID) scope.ID {
	for id >= 0 {
		s := tree.Scope(id)
		if isChunkKind(s.Kind) {
			return id
		}
		id = s.ParentID
	}
	return -1
}

// chunkSummary renders a short, deterministic textual description of node
// for the oracle's chunk_summary field (§6): its scope kind/name and the
// original names declared directly in it.
func chunkSummary(tree *scope.Tree, node *chunkNode) string {
	s := tree.Scope(node.scopeID)
	var b strings.Builder
	b.WriteString(s.Kind.String())
	if name := s.Name(); name != "" {
		b.WriteString(" ")
		b.WriteString(name)
	}
	if len(node.direct) > 0 {
		b.WriteString(": ")
		for i, bid := range node.direct {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(tree.Binding(bid).Name)
		}
	}
	return b.String()
}
