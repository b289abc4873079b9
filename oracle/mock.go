package oracle

import (
	"context"
	"fmt"
)

// Mock is a deterministic, in-process Oracle used by the core's own tests
// and by downstream packages that need an oracle without a network call.
// It never round-trips through JSON and never blocks; cancellation of ctx
// is still honored so orchestration-level tests can exercise that path.
//
// Names is keyed by SymbolID. A symbol absent from Names falls back to
// Fallback (when set) or, lacking that, an empty candidate list.
type Mock struct {
	Names    map[string][]Candidate
	Fallback func(sym Symbol) []Candidate

	// Calls records every request this mock has answered, for assertions in
	// tests that check batching/fan-out behavior.
	Calls []Request
}

func NewMock() *Mock {
	return &Mock{Names: make(map[string][]Candidate)}
}

// Set registers a single best-candidate response for a symbol id, the
// common case in tests that only care about the winning name.
func (m *Mock) Set(symbolID, name string) {
	if m.Names == nil {
		m.Names = make(map[string][]Candidate)
	}
	m.Names[symbolID] = []Candidate{{Name: name, Confidence: 1}}
}

func (m *Mock) SuggestNames(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.Calls = append(m.Calls, req)

	resp := make(Response, len(req.Symbols))
	for _, sym := range req.Symbols {
		if cs, ok := m.Names[sym.SymbolID]; ok {
			resp[sym.SymbolID] = cs
			continue
		}
		if m.Fallback != nil {
			resp[sym.SymbolID] = m.Fallback(sym)
			continue
		}
		resp[sym.SymbolID] = nil
	}
	return resp, nil
}

// Failing is an Oracle stub that always fails, used to exercise the core's
// OracleFailure diagnostic path (§7).
type Failing struct{ Err error }

func (f Failing) SuggestNames(ctx context.Context, req Request) (Response, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return nil, fmt.Errorf("oracle: mock failure")
}
