package rewrite_test

import (
	"testing"

	"github.com/mna/jsrename/ast"
	"github.com/mna/jsrename/jsparse"
	"github.com/mna/jsrename/rewrite"
	"github.com/mna/jsrename/scope"
	"github.com/mna/jsrename/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// analyze parses src and returns its chunk and scope tree, failing the test
// on any parse or analysis error.
func analyze(t *testing.T, src string) (*ast.Chunk, *scope.Tree) {
	t.Helper()
	chunk, err := jsparse.Parse(src, jsparse.Options{Filename: "test.js"})
	require.NoError(t, err)
	tree := scope.Analyze(chunk, 0)
	return chunk, tree
}

// planRenaming builds a solver.Plan that renames exactly the given original
// names to the given final names, leaving every other binding alone.
func planRenaming(tree *scope.Tree, rename map[string]string) *solver.Plan {
	plan := &solver.Plan{Names: make(map[scope.BindingID]string)}
	for _, b := range tree.Bindings {
		if final, ok := rename[b.Name]; ok {
			plan.Names[b.ID] = final
		}
	}
	return plan
}

func TestRewriteSimpleBinding(t *testing.T) {
	src := "let a = 1;\na = a + 1;\n"
	chunk, tree := analyze(t, src)
	plan := planRenaming(tree, map[string]string{"a": "counter"})

	out, err := rewrite.Rewrite(chunk, tree, src, plan)
	require.NoError(t, err)
	assert.Equal(t, "let counter = 1;\ncounter = counter + 1;\n", out)
}

func TestRewriteNoRenamesIsIdentity(t *testing.T) {
	src := "let a = 1;\nconsole.log(a);\n"
	chunk, tree := analyze(t, src)
	plan := planRenaming(tree, map[string]string{})

	out, err := rewrite.Rewrite(chunk, tree, src, plan)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestRewriteShorthandExpansion(t *testing.T) {
	src := "const a = 1;\nconst o = { a };\n"
	chunk, tree := analyze(t, src)
	plan := planRenaming(tree, map[string]string{"a": "value"})

	out, err := rewrite.Rewrite(chunk, tree, src, plan)
	require.NoError(t, err)
	assert.Equal(t, "const value = 1;\nconst o = { a: value };\n", out)
}

func TestRewriteExportDeclarationSplitting(t *testing.T) {
	src := "export const a = 1;\n"
	chunk, tree := analyze(t, src)
	plan := planRenaming(tree, map[string]string{"a": "value"})

	out, err := rewrite.Rewrite(chunk, tree, src, plan)
	require.NoError(t, err)
	assert.Equal(t, "const value = 1;\nexport { value as a };\n", out)
}

func TestRewriteExportDeclarationNoRenameIsUntouched(t *testing.T) {
	src := "export const a = 1;\n"
	chunk, tree := analyze(t, src)
	plan := planRenaming(tree, map[string]string{})

	out, err := rewrite.Rewrite(chunk, tree, src, plan)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestRewriteSwapIsSafeInOnePass(t *testing.T) {
	src := "let a = 1;\nlet b = 2;\nconsole.log(a, b);\n"
	chunk, tree := analyze(t, src)
	plan := planRenaming(tree, map[string]string{"a": "b", "b": "a"})

	out, err := rewrite.Rewrite(chunk, tree, src, plan)
	require.NoError(t, err)
	assert.Equal(t, "let b = 1;\nlet a = 2;\nconsole.log(b, a);\n", out)
}

func TestRewriteValidationFailureReturnsOriginal(t *testing.T) {
	src := "let a = 1;\n"
	chunk, tree := analyze(t, src)
	plan := &solver.Plan{Names: map[scope.BindingID]string{}}
	for _, b := range tree.Bindings {
		if b.Name == "a" {
			// An invalid identifier forces the post-emit re-parse to fail.
			plan.Names[b.ID] = "1invalid"
		}
	}

	out, err := rewrite.Rewrite(chunk, tree, src, plan)
	require.Error(t, err)
	assert.Equal(t, src, out)
	var vf *rewrite.ValidationFailure
	require.ErrorAs(t, err, &vf)
}
