package oracle_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mna/jsrename/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSuggestNames(t *testing.T) {
	m := oracle.NewMock()
	m.Set("s1", "userCount")
	m.Fallback = func(sym oracle.Symbol) []oracle.Candidate {
		return []oracle.Candidate{{Name: "fallback_" + sym.OriginalName, Confidence: 0.1}}
	}

	req := oracle.Request{
		ChunkSummary: "program",
		Symbols: []oracle.Symbol{
			{SymbolID: "s1", OriginalName: "a"},
			{SymbolID: "s2", OriginalName: "b"},
		},
	}

	resp, err := m.SuggestNames(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "userCount", resp["s1"][0].Name)
	assert.Equal(t, "fallback_b", resp["s2"][0].Name)
	assert.Len(t, m.Calls, 1)
}

func TestMockSuggestNamesNoFallback(t *testing.T) {
	m := oracle.NewMock()
	resp, err := m.SuggestNames(context.Background(), oracle.Request{
		Symbols: []oracle.Symbol{{SymbolID: "s1", OriginalName: "a"}},
	})
	require.NoError(t, err)
	assert.Nil(t, resp["s1"])
}

func TestMockSuggestNamesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := oracle.NewMock()
	_, err := m.SuggestNames(ctx, oracle.Request{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFailing(t *testing.T) {
	sentinel := errors.New("boom")
	f := oracle.Failing{Err: sentinel}
	_, err := f.SuggestNames(context.Background(), oracle.Request{})
	assert.ErrorIs(t, err, sentinel)

	_, err = (oracle.Failing{}).SuggestNames(context.Background(), oracle.Request{})
	assert.Error(t, err)
}
