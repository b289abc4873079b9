package solver_test

import (
	"testing"

	"github.com/mna/jsrename/ast"
	"github.com/mna/jsrename/scope"
	"github.com/mna/jsrename/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBinding builds a minimal renameable binding for tests that don't need
// the full analyzer pipeline.
func newBinding(id scope.BindingID, name string, declScope scope.ID, offset int) *scope.Binding {
	return &scope.Binding{
		ID:             id,
		Name:           name,
		DeclaringScope: declScope,
		Kind:           scope.BindConst,
		Decl:           &ast.Ident{Start_: offset, Name: name},
	}
}

// newTree builds a two-scope tree: scope 0 (program, parent of scope 1),
// scope 1 (function), with the given bindings declared directly in each.
func newTree(outer, inner []*scope.Binding) *scope.Tree {
	t := &scope.Tree{}
	t.Scopes = []*scope.Scope{
		{ID: 0, ParentID: -1, Kind: scope.KindProgram, Children: []scope.ID{1}},
		{ID: 1, ParentID: 0, Kind: scope.KindFunction},
	}
	for _, b := range outer {
		t.Scopes[0].Declared = append(t.Scopes[0].Declared, b.ID)
		t.Bindings = append(t.Bindings, b)
	}
	for _, b := range inner {
		t.Scopes[1].Declared = append(t.Scopes[1].Declared, b.ID)
		t.Bindings = append(t.Bindings, b)
	}
	return t
}

func TestSolvePicksHighestConfidenceCandidate(t *testing.T) {
	b := newBinding(0, "a", 0, 10)
	tr := newTree([]*scope.Binding{b}, nil)

	plan := solver.Solve(tr, map[scope.BindingID][]solver.Candidate{
		0: {{Name: "low", Confidence: 0.2}, {Name: "winner", Confidence: 0.9}},
	})

	assert.Equal(t, "winner", plan.FinalName(b))
	assert.True(t, plan.IsRenamed(b))
}

func TestSolveNoCandidatesKeepsOriginalName(t *testing.T) {
	b := newBinding(0, "a", 0, 10)
	tr := newTree([]*scope.Binding{b}, nil)

	plan := solver.Solve(tr, map[scope.BindingID][]solver.Candidate{})
	assert.Equal(t, "a", plan.FinalName(b))
	assert.False(t, plan.IsRenamed(b))
}

func TestSolveUnsafeBindingNeverRenamed(t *testing.T) {
	b := newBinding(0, "a", 0, 10)
	b.Unsafe = true
	tr := newTree([]*scope.Binding{b}, nil)

	plan := solver.Solve(tr, map[scope.BindingID][]solver.Candidate{
		0: {{Name: "winner", Confidence: 0.9}},
	})
	assert.Equal(t, "a", plan.FinalName(b))
}

func TestSolveCollisionWithinScopeDisambiguates(t *testing.T) {
	a := newBinding(0, "a", 0, 10)
	b := newBinding(1, "b", 0, 20)
	tr := newTree([]*scope.Binding{a, b}, nil)

	plan := solver.Solve(tr, map[scope.BindingID][]solver.Candidate{
		0: {{Name: "same", Confidence: 0.9}},
		1: {{Name: "same", Confidence: 0.8}},
	})

	names := map[string]bool{plan.FinalName(a): true, plan.FinalName(b): true}
	require.Len(t, names, 2)
	assert.Contains(t, names, "same")
	assert.Contains(t, names, "_same")
}

func TestSolveNeverShadowsAncestorScope(t *testing.T) {
	outer := newBinding(0, "x", 0, 10)
	inner := newBinding(1, "y", 1, 20)
	tr := newTree([]*scope.Binding{outer}, []*scope.Binding{inner})

	plan := solver.Solve(tr, map[scope.BindingID][]solver.Candidate{
		0: {{Name: "shared", Confidence: 0.9}},
		1: {{Name: "shared", Confidence: 0.9}},
	})

	assert.Equal(t, "shared", plan.FinalName(outer))
	assert.NotEqual(t, "shared", plan.FinalName(inner))
}

func TestSolveUnrelatedScopesMayShareAName(t *testing.T) {
	a := newBinding(0, "a", 0, 10)
	b := newBinding(1, "b", 0, 20)
	// Two independent function scopes, both children of the program scope.
	tr := &scope.Tree{
		Scopes: []*scope.Scope{
			{ID: 0, ParentID: -1, Kind: scope.KindProgram, Children: []scope.ID{1, 2}},
			{ID: 1, ParentID: 0, Kind: scope.KindFunction, Declared: []scope.BindingID{0}},
			{ID: 2, ParentID: 0, Kind: scope.KindFunction, Declared: []scope.BindingID{1}},
		},
		Bindings: []*scope.Binding{a, b},
	}

	plan := solver.Solve(tr, map[scope.BindingID][]solver.Candidate{
		0: {{Name: "helper", Confidence: 0.9}},
		1: {{Name: "helper", Confidence: 0.9}},
	})
	assert.Equal(t, "helper", plan.FinalName(a))
	assert.Equal(t, "helper", plan.FinalName(b))
}

func TestSolveEndorsingOriginalNameIsPreferred(t *testing.T) {
	// b has fewer references but its candidate list endorses its own
	// original name, so it must be processed (and thus allocate) first.
	a := newBinding(0, "a", 0, 10)
	a.References = []ast.Span{{}, {}, {}}
	b := newBinding(1, "b", 0, 20)
	b.References = []ast.Span{{}}
	tr := newTree([]*scope.Binding{a, b}, nil)

	plan := solver.Solve(tr, map[scope.BindingID][]solver.Candidate{
		0: {{Name: "conflict", Confidence: 0.9}},
		1: {{Name: "b", Confidence: 0.5}, {Name: "conflict", Confidence: 0.4}},
	})

	assert.Equal(t, "b", plan.FinalName(b))
	assert.Equal(t, "conflict", plan.FinalName(a))
}

func TestNormalizeCandidateStyles(t *testing.T) {
	cases := []struct {
		raw   string
		style scope.Style
		want  string
	}{
		{"user name", scope.StyleCamel, "userName"},
		{"user-name", scope.StylePascal, "UserName"},
		{"user_count", scope.StyleUpperSnake, "USER_COUNT"},
		{"1stPlace", scope.StyleCamel, "_1stPlace"},
		{"class", scope.StyleCamel, "_class"},
		{"_private", scope.StyleCamel, "_private"},
		{"!!!", scope.StyleCamel, "_renamed"},
	}

	for _, tc := range cases {
		b := newBinding(0, "x", 0, 0)
		b.DesiredStyle = tc.style
		tr := newTree([]*scope.Binding{b}, nil)
		plan := solver.Solve(tr, map[scope.BindingID][]solver.Candidate{
			0: {{Name: tc.raw, Confidence: 1}},
		})
		assert.Equal(t, tc.want, plan.FinalName(b), "raw=%q style=%v", tc.raw, tc.style)
	}
}

func TestSolveDedupKeepsHighestConfidence(t *testing.T) {
	a := newBinding(0, "a", 0, 10)
	tr := newTree([]*scope.Binding{a}, nil)

	plan := solver.Solve(tr, map[scope.BindingID][]solver.Candidate{
		0: {{Name: "same", Confidence: 0.1}, {Name: "same", Confidence: 0.95}, {Name: "other", Confidence: 0.99}},
	})
	// "other" still wins since it has the highest confidence overall; this
	// test only needs dedup to not crash or double-count "same" oddly, so
	// assert the winner is one of the two distinct post-dedup names.
	assert.Contains(t, []string{"other", "same"}, plan.FinalName(a))
}
