// Package planner partitions a module's renameable bindings into oracle
// requests ("jobs") that respect two hard budgets: a maximum symbol count
// and a maximum token count (§4.4). It treats token measurement as an
// opaque callback so it never needs to know anything about a specific
// tokenization scheme.
package planner

import (
	"fmt"

	"github.com/mna/jsrename/dossier"
	"github.com/mna/jsrename/scope"
)

// Request is what would be sent to the oracle for one job: a chunk summary
// plus the ordered dossiers for the symbols in that job.
type Request struct {
	ChunkSummary string
	Dossiers     []*dossier.Dossier
}

// Job is one planned oracle request, with enough bookkeeping to report
// diagnostics and to merge the oracle's response back by binding id.
type Job struct {
	ScopeID  scope.ID
	Bindings []scope.BindingID
	Request  Request
}

// TokenMeasurer is a pure, deterministic callback measuring a prospective
// request's size in whatever unit the oracle's backing model bills by
// (§6's measure_tokens). The planner never interprets the number beyond
// comparing it to Options.MaxInputTokens.
type TokenMeasurer func(Request) int

// Options bounds job size (§6).
type Options struct {
	MaxSymbolsPerJob int
	MaxInputTokens   int
	MeasureTokens    TokenMeasurer
}

// JobPlanningImpossible is returned when even a single-symbol job with a
// minimal, non-empty chunk summary exceeds MaxInputTokens (§7).
type JobPlanningImpossible struct {
	BindingID    scope.BindingID
	OriginalName string
}

func (e *JobPlanningImpossible) Error() string {
	return fmt.Sprintf("planner: no job fits the token budget for symbol %q (binding %d)", e.OriginalName, e.BindingID)
}

// Plan builds the chunk-scope tree from tree and dossiers, then partitions
// it into jobs per §4.4's algorithm: propose the whole subtree as one job;
// if it doesn't fit, batch direct bindings and recurse into children
// independently.
func Plan(tree *scope.Tree, dossiers []*dossier.Dossier, opts Options) ([]*Job, error) {
	if opts.MaxSymbolsPerJob <= 0 {
		opts.MaxSymbolsPerJob = 1
	}
	if opts.MeasureTokens == nil {
		opts.MeasureTokens = func(Request) int { return 0 }
	}

	byBinding := make(map[scope.BindingID]*dossier.Dossier, len(dossiers))
	for _, d := range dossiers {
		byBinding[d.BindingID] = d
	}

	root := buildChunkTree(tree, byBinding)
	p := &planner{tree: tree, byBinding: byBinding, opts: opts}
	if err := p.planNode(root); err != nil {
		return nil, err
	}
	return p.jobs, nil
}

type planner struct {
	tree      *scope.Tree
	byBinding map[scope.BindingID]*dossier.Dossier
	opts      Options
	jobs      []*Job
}

func (p *planner) planNode(node *chunkNode) error {
	subtree := node.subtreeBindings()
	req := p.buildRequest(node, subtree)
	if len(subtree) <= p.opts.MaxSymbolsPerJob && p.fits(req) {
		p.emit(node.scopeID, subtree, req)
		return nil
	}

	for _, batch := range batchBindings(node.direct, p.opts.MaxSymbolsPerJob) {
		if err := p.planBatch(node, batch); err != nil {
			return err
		}
	}
	for _, child := range node.children {
		if err := p.planNode(child); err != nil {
			return err
		}
	}
	return nil
}

// planBatch emits a job for batch, splitting it in half as needed to fit
// the token budget, and falling back to scope-summary truncation once a
// batch is down to a single symbol (§4.4 steps 3-4).
func (p *planner) planBatch(node *chunkNode, batch []scope.BindingID) error {
	req := p.buildRequest(node, batch)
	if p.fits(req) {
		p.emit(node.scopeID, batch, req)
		return nil
	}
	if len(batch) > 1 {
		mid := len(batch) / 2
		if err := p.planBatch(node, batch[:mid]); err != nil {
			return err
		}
		return p.planBatch(node, batch[mid:])
	}

	// Single symbol still over budget: binary-search truncate the chunk
	// summary prefix included in the request.
	summary := req.ChunkSummary
	lo, hi := 0, len(summary)
	best := -1
	for lo <= hi {
		mid := (lo + hi) / 2
		candidate := Request{ChunkSummary: truncateRunes(summary, mid), Dossiers: req.Dossiers}
		if p.opts.MeasureTokens(candidate) <= p.opts.MaxInputTokens {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if best <= 0 {
		bid := batch[0]
		return &JobPlanningImpossible{BindingID: bid, OriginalName: p.byBinding[bid].OriginalName}
	}
	p.emit(node.scopeID, batch, Request{ChunkSummary: truncateRunes(summary, best), Dossiers: req.Dossiers})
	return nil
}

// fits reports whether req meets the token budget. The symbol-count cap is
// checked separately: planNode checks it for the whole-subtree proposal, and
// batchBindings never builds a batch larger than the cap.
func (p *planner) fits(req Request) bool {
	return p.opts.MeasureTokens(req) <= p.opts.MaxInputTokens
}

func (p *planner) emit(scopeID scope.ID, bindings []scope.BindingID, req Request) {
	p.jobs = append(p.jobs, &Job{ScopeID: scopeID, Bindings: append([]scope.BindingID(nil), bindings...), Request: req})
}

func (p *planner) buildRequest(node *chunkNode, bindings []scope.BindingID) Request {
	ds := make([]*dossier.Dossier, 0, len(bindings))
	for _, bid := range bindings {
		if d, ok := p.byBinding[bid]; ok {
			ds = append(ds, d)
		}
	}
	return Request{ChunkSummary: chunkSummary(p.tree, node), Dossiers: ds}
}

// batchBindings groups bindings into batches of at most size, preserving
// order for reproducibility.
func batchBindings(bindings []scope.BindingID, size int) [][]scope.BindingID {
	if len(bindings) == 0 {
		return nil
	}
	var out [][]scope.BindingID
	for i := 0; i < len(bindings); i += size {
		end := i + size
		if end > len(bindings) {
			end = len(bindings)
		}
		out = append(out, bindings[i:end])
	}
	return out
}

func truncateRunes(s string, n int) string {
	if n >= len(s) {
		return s
	}
	if n <= 0 {
		return ""
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
