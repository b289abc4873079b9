// Package oracle defines the naming oracle's wire-level contract (§6): a
// single operation, suggest_names, expressed as an explicit Go interface so
// the core stays testable with a deterministic in-process mock instead of
// callbacks and dynamic dispatch (§9's redesign note).
package oracle

import "context"

// Candidate is a proposed new name for a symbol.
type Candidate struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"` // [0,1]
	Rationale  string  `json:"rationale,omitempty"`
}

// Symbol is one binding's evidence bundle, flattened to the wire shape: a
// dossier plus its opaque symbol id.
type Symbol struct {
	SymbolID           string       `json:"symbol_id"`
	OriginalName       string       `json:"original_name"`
	Kind               string       `json:"kind"`          // e.g. "const", "function" (scope.BindKind.String())
	DesiredStyle       string       `json:"desired_style"` // "camel", "pascal", "upper_snake"
	DeclarationSnippet string       `json:"declaration_snippet"`
	UsageSummary       UsageSummary `json:"usage_summary"`
	TypeHints          []string     `json:"type_hints,omitempty"`
}

// UsageSummary mirrors dossier.UsageSummary at the wire boundary, so this
// package never imports the dossier package (the oracle boundary must not
// leak internal analysis types, only their wire shape).
type UsageSummary struct {
	ReferenceCount   int      `json:"reference_count"`
	IsCalled         bool     `json:"is_called"`
	IsConstructed    bool     `json:"is_constructed"`
	IsAwaited        bool     `json:"is_awaited"`
	IsIterated       bool     `json:"is_iterated"`
	IsReturned       bool     `json:"is_returned"`
	IsAssignedTo     bool     `json:"is_assigned_to"`
	UnaryOperators   []string `json:"unary_operators,omitempty"`
	BinaryOperators  []string `json:"binary_operators,omitempty"`
	LiteralsCompared []string `json:"literals_compared,omitempty"`
	CalledMethods    []string `json:"called_methods,omitempty"`
	MemberReads      []string `json:"member_reads,omitempty"`
	MemberWrites     []string `json:"member_writes,omitempty"`
}

// Request is one oracle job (§6's suggest_names parameters).
type Request struct {
	ChunkSummary  string   `json:"chunk_summary"`
	Symbols       []Symbol `json:"symbols"`
	MaxCandidates int      `json:"max_candidates"`
}

// Response maps each requested symbol id to its ordered candidate list. The
// oracle must return an entry for every requested SymbolID, but the entry
// may be empty; unknown symbol ids in a response are silently discarded by
// the caller (§6).
type Response map[string][]Candidate

// Oracle is the naming oracle's single operation. Implementations should
// treat ctx cancellation as a request to abandon the call promptly; the
// core treats a cancelled or failed call as "no candidates for this job"
// (§4.5, §7's OracleFailure).
type Oracle interface {
	SuggestNames(ctx context.Context, req Request) (Response, error)
}
