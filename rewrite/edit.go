package rewrite

import (
	"fmt"
	"sort"

	"github.com/mna/jsrename/ast"
)

// edit is a single text substitution over a half-open byte range of the
// original source. An insertion (no text removed) sets Span.Start ==
// Span.End.
type edit struct {
	Span ast.Span
	Text string
}

// applyEdits splices edits into src, producing the rewritten source. Edits
// must not overlap; two zero-width insertions at the same offset are
// applied in the order given (stable sort), which this package relies on
// for export splitting (an insertion at the export keyword boundary and one
// at the statement's end never collide).
func applyEdits(src string, edits []edit) (string, error) {
	sorted := append([]edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start != sorted[j].Span.Start {
			return sorted[i].Span.Start < sorted[j].Span.Start
		}
		return sorted[i].Span.End < sorted[j].Span.End
	})

	var b []byte
	pos := 0
	for _, e := range sorted {
		if e.Span.Start < pos {
			return "", fmt.Errorf("rewrite: overlapping edit at offset %d (previous edit ended at %d)", e.Span.Start, pos)
		}
		b = append(b, src[pos:e.Span.Start]...)
		b = append(b, e.Text...)
		pos = e.Span.End
	}
	b = append(b, src[pos:]...)
	return string(b), nil
}
