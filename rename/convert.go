package rename

import (
	"github.com/mna/jsrename/dossier"
	"github.com/mna/jsrename/oracle"
	"github.com/mna/jsrename/planner"
	"github.com/mna/jsrename/scope"
	"github.com/mna/jsrename/solver"
)

// oracleRequest flattens a planned job into the oracle's wire-level request
// shape (§6), assigning each binding a stable opaque symbol id.
func oracleRequest(job *planner.Job, maxCandidates int) oracle.Request {
	syms := make([]oracle.Symbol, len(job.Request.Dossiers))
	for i, d := range job.Request.Dossiers {
		syms[i] = oracleSymbol(d)
	}
	return oracle.Request{
		ChunkSummary:  job.Request.ChunkSummary,
		Symbols:       syms,
		MaxCandidates: maxCandidates,
	}
}

func oracleSymbol(d *dossier.Dossier) oracle.Symbol {
	return oracle.Symbol{
		SymbolID:           symbolID(int(d.BindingID)),
		OriginalName:       d.OriginalName,
		Kind:               d.Kind.String(),
		DesiredStyle:       d.DesiredStyle.String(),
		DeclarationSnippet: d.DeclarationSnippet,
		UsageSummary:       oracleUsageSummary(d.Usage),
		TypeHints:          d.TypeHints,
	}
}

func oracleUsageSummary(u dossier.UsageSummary) oracle.UsageSummary {
	return oracle.UsageSummary{
		ReferenceCount:   u.ReferenceCount,
		IsCalled:         u.IsCalled,
		IsConstructed:    u.IsConstructed,
		IsAwaited:        u.IsAwaited,
		IsIterated:       u.IsIterated,
		IsReturned:       u.IsReturned,
		IsAssignedTo:     u.IsAssignedTo,
		UnaryOperators:   u.UnaryOperators,
		BinaryOperators:  u.BinaryOperators,
		LiteralsCompared: u.LiteralsCompared,
		CalledMethods:    u.CalledMethods,
		MemberReads:      u.MemberReads,
		MemberWrites:     u.MemberWrites,
	}
}

// mergeResponse folds one oracle.Response into the global candidate table,
// keyed by binding id (§5's "merge ... is order-independent"). Unknown
// symbol ids (not present in job.Bindings) are silently discarded per §6.
func mergeResponse(job *planner.Job, resp oracle.Response, into map[scope.BindingID][]solver.Candidate) {
	known := make(map[string]scope.BindingID, len(job.Bindings))
	for _, bid := range job.Bindings {
		known[symbolID(int(bid))] = bid
	}

	for sid, cands := range resp {
		bid, ok := known[sid]
		if !ok {
			continue
		}
		out := make([]solver.Candidate, len(cands))
		for i, c := range cands {
			out[i] = solver.Candidate{Name: c.Name, Confidence: c.Confidence}
		}
		into[bid] = append(into[bid], out...)
	}
}
