// Package solver implements the renaming constraint solver (§4.6): given the
// scope tree, binding table, and per-binding oracle candidates, it produces
// a deterministic rename plan that never introduces shadowing or collision.
//
// The allocation algorithm is adapted from esbuild's NumberRenamer
// (other_examples' evanw-esbuild renamer.go): a tree of per-scope
// "allocated name" sets, walked outer-first, where a name claimed in an
// ancestor scope is unavailable to any descendant. Unlike esbuild's
// minifier, this solver never invents a name — it only ever picks among an
// externally supplied candidate list, falling back to the original name.
package solver

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/mna/jsrename/scope"
)

// Candidate is one normalized, confidence-ranked name suggestion for a
// binding, decoupled from the oracle package's wire shape so this package
// has no dependency on how candidates were obtained.
type Candidate struct {
	Name       string
	Confidence float64
}

// Plan is the solver's output: a total function from binding id to final
// name (§3's "rename plan"). Unsafe bindings and bindings the solver never
// saw a candidate for map to their own original name, i.e. "rename to self".
type Plan struct {
	Names map[scope.BindingID]string
}

// FinalName returns the binding's assigned name, defaulting to its original
// name if the plan has no entry (unsafe or never processed).
func (p *Plan) FinalName(b *scope.Binding) string {
	if n, ok := p.Names[b.ID]; ok {
		return n
	}
	return b.Name
}

// IsRenamed reports whether the binding's final name differs from its
// original one.
func (p *Plan) IsRenamed(b *scope.Binding) bool {
	return p.FinalName(b) != b.Name
}

// Solve runs the full algorithm. candidates maps a renameable binding id to
// its raw, oracle-ranked candidate list (already deduplicated by the caller
// at the oracle-merge boundary is not required — Solve normalizes and dedups
// itself per binding).
//
// Solve cannot fail (§4.6's "Failure semantics"): with no candidates at all,
// every binding keeps its original name.
func Solve(tree *scope.Tree, candidates map[scope.BindingID][]Candidate) *Plan {
	s := &solver{
		tree:       tree,
		candidates: make(map[scope.BindingID][]Candidate, len(candidates)),
		allocated:  make(map[scope.ID]map[string]bool),
		plan:       &Plan{Names: make(map[scope.BindingID]string)},
	}
	for id, cs := range candidates {
		b := tree.Binding(id)
		s.candidates[id] = normalizeAndDedup(cs, b.DesiredStyle)
	}

	for _, sc := range scopesByDepth(tree) {
		s.solveScope(sc)
	}
	return s.plan
}

type solver struct {
	tree       *scope.Tree
	candidates map[scope.BindingID][]Candidate
	allocated  map[scope.ID]map[string]bool
	plan       *Plan
}

// scopesByDepth returns every scope ordered by increasing depth (outer
// first), breaking ties by scope id for determinism — both are already
// monotonic with DFS pre-order minting, but depth is computed explicitly
// since a parent is not guaranteed to immediately precede every child in a
// flat index-order comparison once siblings' subtrees interleave.
func scopesByDepth(tree *scope.Tree) []*scope.Scope {
	depth := make([]int, len(tree.Scopes))
	for _, sc := range tree.Scopes {
		if sc.ParentID < 0 {
			depth[sc.ID] = 0
		} else {
			depth[sc.ID] = depth[sc.ParentID] + 1
		}
	}

	out := append([]*scope.Scope(nil), tree.Scopes...)
	sort.SliceStable(out, func(i, j int) bool {
		if depth[out[i].ID] != depth[out[j].ID] {
			return depth[out[i].ID] < depth[out[j].ID]
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *solver) allocatedSet(id scope.ID) map[string]bool {
	if m, ok := s.allocated[id]; ok {
		return m
	}
	m := make(map[string]bool)
	s.allocated[id] = m
	return m
}

// solveScope implements §4.6 steps 1-5 for one scope.
func (s *solver) solveScope(sc *scope.Scope) {
	alloc := s.allocatedSet(sc.ID)

	var renameable []*scope.Binding
	for _, bid := range sc.Declared {
		b := s.tree.Binding(bid)
		if b.Unsafe {
			alloc[b.Name] = true // occupies the name, never renamed
			continue
		}
		renameable = append(renameable, b)
	}
	// Ancestor-finalized names are already present: each ancestor scope's
	// allocated set was populated before this one runs (outer-first order),
	// and every name finalized there is recorded in that ancestor's set; we
	// must also treat them as occupied here, so look them up on demand in
	// isTaken instead of copying them forward.

	orderBindings(renameable, s.candidates)

	for _, b := range renameable {
		name := s.pickName(sc.ID, b)
		alloc[name] = true
		s.plan.Names[b.ID] = name
	}
}

// isTaken reports whether name is already allocated in sc or any ancestor.
func (s *solver) isTaken(sc scope.ID, name string) bool {
	for id := sc; id >= 0; id = s.tree.Scope(id).ParentID {
		if s.allocatedSet(id)[name] {
			return true
		}
	}
	return false
}

// orderBindings sorts renameable in place per §4.6 step 3: bindings whose
// candidate list endorses the original name with non-zero confidence come
// first, then by descending reference count, then by ascending declaration
// offset.
func orderBindings(bindings []*scope.Binding, candidates map[scope.BindingID][]Candidate) {
	endorsesOriginal := func(b *scope.Binding) bool {
		for _, c := range candidates[b.ID] {
			if c.Name == b.Name && c.Confidence > 0 {
				return true
			}
		}
		return false
	}

	sort.SliceStable(bindings, func(i, j int) bool {
		bi, bj := bindings[i], bindings[j]
		ei, ej := endorsesOriginal(bi), endorsesOriginal(bj)
		if ei != ej {
			return ei
		}
		ri, rj := len(bi.References), len(bj.References)
		if ri != rj {
			return ri > rj
		}
		return bi.Decl.Span().Start < bj.Decl.Span().Start
	})
}

// pickName implements §4.6 step 4: walk candidates highest-confidence
// first (alphabetical ties), pick the first unallocated name; fall back to
// disambiguating the top candidate (or the original name, with no
// candidates at all) deterministically.
func (s *solver) pickName(sc scope.ID, b *scope.Binding) string {
	cs := s.candidates[b.ID]
	for _, c := range cs {
		if !s.isTaken(sc, c.Name) {
			return c.Name
		}
	}

	base := b.Name
	if len(cs) > 0 {
		base = cs[0].Name
	}
	return s.disambiguate(sc, base)
}

// disambiguate implements §9's chosen rule (DESIGN.md decision #3):
// prepend "_" until unique; once already underscore-prefixed, fall back to
// appending a numeric suffix.
func (s *solver) disambiguate(sc scope.ID, base string) string {
	if !hasLeadingUnderscore(base) {
		name := base
		for s.isTaken(sc, name) {
			name = "_" + name
		}
		return name
	}

	name := base
	n := 2
	for s.isTaken(sc, name) {
		name = base + strconv.Itoa(n)
		n++
	}
	return name
}

func hasLeadingUnderscore(s string) bool {
	return len(s) > 0 && s[0] == '_'
}

// normalizeAndDedup normalizes every candidate name to style and removes
// duplicate names, keeping the highest-confidence entry for each, then
// sorts by descending confidence with an alphabetical tie-break (§4.6 step
// 4's "ties broken alphabetically").
func normalizeAndDedup(cs []Candidate, style scope.Style) []Candidate {
	best := make(map[string]Candidate, len(cs))
	order := make([]string, 0, len(cs))
	for _, c := range cs {
		name := normalizeCandidate(c.Name, style)
		if prev, ok := best[name]; !ok {
			best[name] = Candidate{Name: name, Confidence: c.Confidence}
			order = append(order, name)
		} else if c.Confidence > prev.Confidence {
			best[name] = Candidate{Name: name, Confidence: c.Confidence}
		}
	}

	out := make([]Candidate, 0, len(order))
	for _, name := range order {
		out = append(out, best[name])
	}
	// Descending confidence, alphabetical tie-break (§4.6 step 4): since no
	// two entries share a name after dedup above, this comparator never
	// returns 0, so slices.SortFunc's lack of a stability guarantee is moot.
	slices.SortFunc(out, func(a, b Candidate) int {
		if a.Confidence != b.Confidence {
			if a.Confidence > b.Confidence {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
