package rename_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/jsrename/oracle"
	"github.com/mna/jsrename/planner"
	"github.com/mna/jsrename/rename"
)

func baseOptions() rename.Options {
	return rename.Options{
		MaxSymbolsPerJob: 10,
		MaxInputTokens:   1 << 20,
	}
}

func TestRenameAppliesOracleSuggestion(t *testing.T) {
	src := "let a = 1;\na = a + 1;\n"

	mock := oracle.NewMock()
	mock.Fallback = func(sym oracle.Symbol) []oracle.Candidate {
		if sym.OriginalName == "a" {
			return []oracle.Candidate{{Name: "counter", Confidence: 0.9}}
		}
		return nil
	}

	out, diag, err := rename.Rename(context.Background(), "test.js", src, mock, baseOptions())
	require.NoError(t, err)
	assert.Equal(t, "let counter = 1;\ncounter = counter + 1;\n", out)
	assert.False(t, diag.RewriteValidationFailed)
	assert.Equal(t, 0, diag.JobsFailed)
	assert.Greater(t, diag.JobsPlanned, 0)
}

func TestRenameNoCandidatesIsIdentity(t *testing.T) {
	src := "let a = 1;\nconsole.log(a);\n"

	mock := oracle.NewMock()

	out, diag, err := rename.Rename(context.Background(), "test.js", src, mock, baseOptions())
	require.NoError(t, err)
	assert.Equal(t, src, out)
	assert.Equal(t, 0, diag.JobsFailed)
}

func TestRenameOracleFailureIsRecovered(t *testing.T) {
	src := "let a = 1;\nconsole.log(a);\n"

	out, diag, err := rename.Rename(context.Background(), "test.js", src, &oracle.Failing{}, baseOptions())
	require.NoError(t, err)
	assert.Equal(t, src, out)
	assert.Greater(t, diag.JobsFailed, 0)
	assert.NotEmpty(t, diag.Warnings)
}

func TestRenameMalformedSourceIsFatal(t *testing.T) {
	src := "let a = ;\n"

	_, _, err := rename.Rename(context.Background(), "test.js", src, oracle.NewMock(), baseOptions())
	require.Error(t, err)
}

func TestRenameJobPlanningImpossibleIsFatal(t *testing.T) {
	src := "let a = 1;\n"

	opts := rename.Options{
		MaxSymbolsPerJob: 10,
		MaxInputTokens:   0,
		MeasureTokens:    func(planner.Request) int { return 1 },
	}

	_, _, err := rename.Rename(context.Background(), "test.js", src, oracle.NewMock(), opts)
	require.Error(t, err)
}

func TestRenameCancellationYieldsNoCandidates(t *testing.T) {
	src := "let a = 1;\nconsole.log(a);\n"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := oracle.NewMock()
	mock.Fallback = func(sym oracle.Symbol) []oracle.Candidate {
		return []oracle.Candidate{{Name: "never", Confidence: 1}}
	}

	out, _, err := rename.Rename(ctx, "test.js", src, mock, baseOptions())
	require.NoError(t, err)
	assert.Equal(t, src, out)
}
