// Package golden provides the table-driven, testdata-directory-backed
// golden-file comparison used by the tests that exercise the full rename
// pipeline against real source fixtures (the rename package's golden tests).
// Adapted from the compiler's internal/filetest: same directory convention
// (testdata/in holds the fixtures, testdata/out holds the golden files) and
// diff engine, retargeted at rewritten-source and diagnostics-summary
// comparisons instead of AST-printer/error-list comparisons.
package golden

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/diff"
)

var updateAll = flag.Bool("test.update-all-golden", false, "If set, sets all test.update-*-golden flags.")

// SourceFiles returns the fixtures in dir with the given extension
// (e.g. ".js"), sorted by directory order, skipping non-regular files.
func SourceFiles(t *testing.T, dir, ext string) []os.FileInfo {
	t.Helper()

	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}

	dents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	res := make([]os.FileInfo, 0, len(dents))
	for _, dent := range dents {
		if !dent.Type().IsRegular() {
			continue
		}
		if ext != "" && filepath.Ext(dent.Name()) != ext {
			continue
		}
		fi, err := dent.Info()
		if err != nil {
			t.Fatal(err)
		}
		res = append(res, fi)
	}
	return res
}

// DiffRewritten compares output (the source Rename produced for fixture fi)
// against fi's golden ".want" file.
func DiffRewritten(t *testing.T, fi os.FileInfo, output, resultDir string, update *bool) {
	t.Helper()
	DiffCustom(t, fi, "rewritten source", ".want", output, resultDir, update)
}

// DiffDiagnostics compares a rendered summary of a rename.Diagnostics value
// against fi's golden ".diag.want" file.
func DiffDiagnostics(t *testing.T, fi os.FileInfo, output, resultDir string, update *bool) {
	t.Helper()
	DiffCustom(t, fi, "diagnostics", ".diag.want", output, resultDir, update)
}

// DiffCustom is the general form: label is used in test failure output, ext
// is the golden file's suffix (including the leading dot).
func DiffCustom(t *testing.T, fi os.FileInfo, label, ext, output, resultDir string, update *bool) {
	t.Helper()

	wantFile := filepath.Join(resultDir, fi.Name()+ext)
	diffOrUpdate(t, label, wantFile, output, update)
}

func diffOrUpdate(t *testing.T, label, goldFile, output string, update *bool) {
	t.Helper()

	if (update != nil && *update) || *updateAll {
		if err := os.WriteFile(goldFile, []byte(output), 0600); err != nil {
			t.Fatal(err)
		}
		return
	}

	wantb, err := os.ReadFile(goldFile)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	want := string(wantb)
	if testing.Verbose() {
		t.Logf("got %s:\n%s\n", label, output)
	}
	if patch := diff.Diff(want, output); patch != "" {
		if testing.Verbose() {
			t.Logf("want %s:\n%s\n", label, want)
		}
		t.Errorf("diff %s:\n%s\n", label, patch)
	}
}
