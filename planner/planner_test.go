package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/jsrename/dossier"
	"github.com/mna/jsrename/jsparse"
	"github.com/mna/jsrename/planner"
	"github.com/mna/jsrename/scope"
)

func analyzeAndDossier(t *testing.T, src string) (*scope.Tree, []*dossier.Dossier) {
	t.Helper()
	chunk, err := jsparse.Parse(src, jsparse.Options{Filename: "test.js"})
	require.NoError(t, err)
	tree := scope.Analyze(chunk, scope.NameBlocks)
	ds := dossier.Build(chunk, tree, src, dossier.Options{})
	return tree, ds
}

// byteLenMeasurer is a deterministic stand-in for a real tokenizer: it
// counts the chunk summary plus every dossier's original name and snippet,
// a small enough unit that tests can reason about exact byte budgets.
func byteLenMeasurer(req planner.Request) int {
	n := len(req.ChunkSummary)
	for _, d := range req.Dossiers {
		n += len(d.OriginalName) + len(d.DeclarationSnippet)
	}
	return n
}

func TestPlanSingleJobWhenEverythingFits(t *testing.T) {
	tree, ds := analyzeAndDossier(t, `
		const a = 1;
		const b = 2;
	`)
	jobs, err := planner.Plan(tree, ds, planner.Options{
		MaxSymbolsPerJob: 10,
		MaxInputTokens:   1000,
		MeasureTokens:    byteLenMeasurer,
	})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Len(t, jobs[0].Bindings, 2)
}

func TestPlanSplitsBatchesOverSymbolCap(t *testing.T) {
	tree, ds := analyzeAndDossier(t, `
		const a = 1;
		const b = 2;
		const c = 3;
		const d = 4;
	`)
	jobs, err := planner.Plan(tree, ds, planner.Options{
		MaxSymbolsPerJob: 2,
		MaxInputTokens:   1000,
		MeasureTokens:    byteLenMeasurer,
	})
	require.NoError(t, err)
	// the whole-subtree proposal (4 bindings) fits the token budget but not
	// the symbol cap of 2, so the direct bindings are batched two by two.
	require.Len(t, jobs, 2)
	assert.Len(t, jobs[0].Bindings, 2)
	assert.Len(t, jobs[1].Bindings, 2)
}

func TestPlanSplitsBatchesWhenSubtreeDoesNotFitTokenBudget(t *testing.T) {
	tree, ds := analyzeAndDossier(t, `
		const a = 1;
		const b = 2;
		const c = 3;
		const d = 4;
	`)
	jobs, err := planner.Plan(tree, ds, planner.Options{
		MaxSymbolsPerJob: 2,
		MaxInputTokens:   20,
		MeasureTokens:    byteLenMeasurer,
	})
	require.NoError(t, err)
	assert.Greater(t, len(jobs), 1)

	var total int
	for _, j := range jobs {
		assert.LessOrEqual(t, len(j.Bindings), 2)
		total += len(j.Bindings)
	}
	assert.Equal(t, 4, total)
}

func TestPlanWholeSubtreeIncludesChildChunkScopes(t *testing.T) {
	tree, ds := analyzeAndDossier(t, `
		const outer = 1;
		function f() {
			const inner = 2;
		}
	`)
	jobs, err := planner.Plan(tree, ds, planner.Options{
		MaxSymbolsPerJob: 10,
		MaxInputTokens:   1000,
		MeasureTokens:    byteLenMeasurer,
	})
	require.NoError(t, err)
	// outer and f (program scope) plus inner (f's function scope).
	require.Len(t, jobs, 1)
	assert.Len(t, jobs[0].Bindings, 3)
}

func TestPlanJobPlanningImpossibleWhenNoBudgetFits(t *testing.T) {
	tree, ds := analyzeAndDossier(t, `const aVeryLongOriginalBindingName = 1;`)
	_, err := planner.Plan(tree, ds, planner.Options{
		MaxSymbolsPerJob: 1,
		MaxInputTokens:   0,
		MeasureTokens:    byteLenMeasurer,
	})
	require.Error(t, err)
	var impossible *planner.JobPlanningImpossible
	require.ErrorAs(t, err, &impossible)
}

func TestPlanEmptyDossiersProducesNoJobs(t *testing.T) {
	tree, ds := analyzeAndDossier(t, `console.log("no renameable bindings here");`)
	jobs, err := planner.Plan(tree, ds, planner.Options{
		MaxSymbolsPerJob: 10,
		MaxInputTokens:   1000,
		MeasureTokens:    byteLenMeasurer,
	})
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestPlanDefaultsMaxSymbolsPerJobToOne(t *testing.T) {
	tree, ds := analyzeAndDossier(t, `
		const a = 1;
		const b = 2;
	`)
	jobs, err := planner.Plan(tree, ds, planner.Options{
		MaxInputTokens: 35,
		MeasureTokens:  byteLenMeasurer,
	})
	require.NoError(t, err)
	require.NotEmpty(t, jobs)
	for _, j := range jobs {
		assert.LessOrEqual(t, len(j.Bindings), 1)
	}
}

func TestPlanNilMeasureTokensAlwaysFits(t *testing.T) {
	tree, ds := analyzeAndDossier(t, `
		const a = 1;
		const b = 2;
		const c = 3;
	`)
	jobs, err := planner.Plan(tree, ds, planner.Options{MaxSymbolsPerJob: 10})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Len(t, jobs[0].Bindings, 3)
}
