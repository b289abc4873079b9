package rename

import "fmt"

// Diagnostics aggregates the non-fatal outcomes of one Rename call (§7).
// Nothing in here stops the pipeline; it is informational context attached
// to whatever source Rename returns.
type Diagnostics struct {
	// JobsPlanned is the number of oracle jobs the planner emitted.
	JobsPlanned int

	// JobsFailed counts jobs whose oracle call errored or was cancelled
	// (§7's OracleFailure); each such job contributes no candidates.
	JobsFailed int

	// TaintedBindingsSkipped mirrors scope.Tree.TaintedSkipped (§7's
	// TaintedBindingSkipped: not an error, just a count).
	TaintedBindingsSkipped int

	// RewriteValidationFailed is set when the post-emit re-parse failed
	// and Rename fell back to returning the original source (§7's
	// RewriteValidationFailure).
	RewriteValidationFailed bool

	// Warnings collects human-readable descriptions of every recovered
	// anomaly, in the order they were recorded.
	Warnings []string
}

func (d *Diagnostics) warnf(format string, args ...interface{}) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}
