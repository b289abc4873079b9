package rename_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/jsrename/internal/golden"
	"github.com/mna/jsrename/oracle"
	"github.com/mna/jsrename/rename"
)

var updateGolden = false

// fixtureOracle deterministically suggests "<original>_renamed" for every
// symbol, so golden output never depends on an external service.
func fixtureOracle() *oracle.Mock {
	m := oracle.NewMock()
	m.Fallback = func(sym oracle.Symbol) []oracle.Candidate {
		return []oracle.Candidate{{Name: sym.OriginalName + "_renamed", Confidence: 1}}
	}
	return m
}

func renderDiagnostics(d *rename.Diagnostics) string {
	return fmt.Sprintf("jobs_planned=%d jobs_failed=%d tainted_bindings_skipped=%d rewrite_validation_failed=%t\n",
		d.JobsPlanned, d.JobsFailed, d.TaintedBindingsSkipped, d.RewriteValidationFailed)
}

func TestRenameGolden(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range golden.SourceFiles(t, srcDir, ".js") {
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
			if err != nil {
				t.Fatal(err)
			}

			out, diag, err := rename.Rename(context.Background(), fi.Name(), string(src), fixtureOracle(), baseOptions())
			if err != nil {
				t.Fatal(err)
			}

			golden.DiffRewritten(t, fi, out, resultDir, &updateGolden)
			golden.DiffDiagnostics(t, fi, renderDiagnostics(diag), resultDir, &updateGolden)
		})
	}
}
