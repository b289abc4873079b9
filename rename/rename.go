// Package rename wires the scope analyzer, dossier builder, job planner,
// naming oracle, constraint solver, and rewrite engine into the single
// end-to-end operation described by §5 and §6: source text in, renamed
// source text out. The core itself is single-threaded; the only
// concurrency is the bounded oracle fan-out (§5), scheduled here with
// golang.org/x/sync/errgroup the same way the rest of the example pack
// bounds concurrent I/O (see DESIGN.md).
package rename

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mna/jsrename/dossier"
	"github.com/mna/jsrename/jsparse"
	"github.com/mna/jsrename/oracle"
	"github.com/mna/jsrename/planner"
	"github.com/mna/jsrename/rewrite"
	"github.com/mna/jsrename/scope"
	"github.com/mna/jsrename/solver"
)

// Rename runs the full pipeline over src and returns the transformed
// source. On a MalformedSource or JobPlanningImpossible condition (§7) it
// returns a non-nil error and no usable source. Every other anomaly
// (oracle failures, rewrite validation failure) is recovered locally and
// reported only through the returned Diagnostics; in the rewrite-failure
// case the returned source is the original, untouched src.
func Rename(ctx context.Context, filename, src string, oc oracle.Oracle, opts Options) (string, *Diagnostics, error) {
	diag := &Diagnostics{}

	chunk, err := jsparse.Parse(src, jsparse.Options{Filename: filename})
	if err != nil {
		return "", diag, err
	}

	tree := scope.Analyze(chunk, scope.NameBlocks)
	diag.TaintedBindingsSkipped = tree.TaintedSkipped

	dossiers := dossier.Build(chunk, tree, src, opts.dossierOptions())

	jobs, err := planner.Plan(tree, dossiers, opts.plannerOptions())
	if err != nil {
		return "", diag, err
	}
	diag.JobsPlanned = len(jobs)

	candidates := dispatchJobs(ctx, jobs, oc, opts, diag)

	plan := solver.Solve(tree, candidates)

	out, err := rewrite.Rewrite(chunk, tree, src, plan)
	if err != nil {
		diag.RewriteValidationFailed = true
		diag.warnf("rewrite validation failed, reverted to original source: %s", err)
		return out, diag, nil
	}
	return out, diag, nil
}

// dispatchJobs runs every job's oracle call with a bounded fan-out (§5's
// oracle_concurrency) and merges the responses into a single candidate
// table keyed by binding id. A job's failure or cancellation never aborts
// the others: it simply contributes no candidates (§7's OracleFailure).
func dispatchJobs(ctx context.Context, jobs []*planner.Job, oc oracle.Oracle, opts Options, diag *Diagnostics) map[scope.BindingID][]solver.Candidate {
	candidates := make(map[scope.BindingID][]solver.Candidate)
	if len(jobs) == 0 {
		return candidates
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.oracleConcurrency())

	maxCandidates := opts.maxCandidates()
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			req := oracleRequest(job, maxCandidates)
			resp, err := oc.SuggestNames(gctx, req)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				diag.JobsFailed++
				diag.warnf("oracle job for scope %d failed, no candidates for %d symbol(s): %s", job.ScopeID, len(job.Bindings), err)
				return nil
			}
			mergeResponse(job, resp, candidates)
			return nil
		})
	}
	// Every job thunk above returns nil, so Wait never reports an error; the
	// fan-out never aborts the whole call on a single job's failure (§7).
	_ = g.Wait()

	return candidates
}
