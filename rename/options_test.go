package rename_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/jsrename/rename"
)

func TestOptionsFromYAML(t *testing.T) {
	doc := `
context_window_size: 120
max_symbols_per_job: 8
max_input_tokens: 2048
oracle_concurrency: 6
max_candidates: 5
`
	opts, err := rename.OptionsFromYAML(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 120, opts.ContextWindowSize)
	assert.Equal(t, 8, opts.MaxSymbolsPerJob)
	assert.Equal(t, 2048, opts.MaxInputTokens)
	assert.Equal(t, 6, opts.OracleConcurrency)
	assert.Equal(t, 5, opts.MaxCandidates)
}

func TestOptionsFromYAMLRejectsUnknownFields(t *testing.T) {
	doc := `not_a_real_option: true`
	_, err := rename.OptionsFromYAML(strings.NewReader(doc))
	require.Error(t, err)
}

func TestOptionsFromYAMLEmptyUsesZeroValues(t *testing.T) {
	opts, err := rename.OptionsFromYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, rename.Options{}, opts)
}
