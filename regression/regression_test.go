// This file is part of tracecheck.
//
// tracecheck is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// tracecheck is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with tracecheck.  If not, see <https://www.gnu.org/licenses/>.

package regression_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samfoo/tracecheck/ansi"
	"github.com/samfoo/tracecheck/curated"
	"github.com/samfoo/tracecheck/regression"
	"github.com/samfoo/tracecheck/test"
)

// TestHelperProcess isn't a real test. It is the subject executed by the
// regression entries and it prints the contents of the file named after the
// -- argument.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("TRACECHECK_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) < 2 {
		os.Exit(2)
	}

	b, err := os.ReadFile(args[1])
	if err != nil {
		os.Exit(2)
	}
	os.Stdout.Write(b)
}

type fixture struct {
	t   *testing.T
	dir string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	t.Setenv("TRACECHECK_HELPER_PROCESS", "1")
	t.Setenv("TRACECHECK_RESOURCES", filepath.Join(t.TempDir(), "resources"))
	return fixture{t: t, dir: t.TempDir()}
}

func (f fixture) write(name string, content string) string {
	f.t.Helper()
	pth := filepath.Join(f.dir, name)
	test.DemandSuccess(f.t, os.WriteFile(pth, []byte(content), 0o644))
	return pth
}

// entry that compares the actual file against the reference file
func (f fixture) entry(reference string, actual string) *regression.TraceRegression {
	cmd := []string{os.Args[0], "-test.run=TestHelperProcess", "--", actual}
	return regression.NewTraceRegression("", reference, cmd)
}

// output with escape sequences and carriage returns removed
func clean(w *test.CompareWriter) string {
	return strings.ReplaceAll(ansi.Strip(w.String()), "\r", "")
}

func TestRegression(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := &test.CompareWriter{}

	refA := f.write("a.log", "AAA\nBBB\nCCC\n")
	refB := f.write("b.log", "DDD\nEEE\n")
	act := f.write("actual.log", "AAA\nBBB\nCCC\n")
	actB := f.write("actualB.log", "DDD\nEEE\n")

	test.DemandSuccess(t, regression.RegressList(w))
	test.ExpectEquality(t, clean(w), "database is empty\n")

	// entries that pass can be added
	w.Clear()
	test.DemandSuccess(t, regression.RegressAdd(ctx, w, f.entry(refA, act)))
	test.ExpectSuccess(t, strings.Contains(clean(w), "added: 000 [trace] "+refA))

	w.Clear()
	test.DemandSuccess(t, regression.RegressAdd(ctx, w, f.entry(refB, actB)))
	test.ExpectSuccess(t, strings.Contains(clean(w), "added: 001 [trace] "+refB))

	// entries that fail cannot be added
	w.Clear()
	err := regression.RegressAdd(ctx, w, f.entry(refA, actB))
	test.ExpectSuccess(t, curated.Is(err, regression.NotPassing))
	test.ExpectSuccess(t, strings.Contains(clean(w), "1     expected: AAA\n"))

	w.Clear()
	test.DemandSuccess(t, regression.RegressList(w))
	test.ExpectSuccess(t, strings.HasPrefix(clean(w), "000 [trace] "+refA))
	test.ExpectSuccess(t, strings.HasSuffix(clean(w), "Total: 2\n"))

	w.Clear()
	test.DemandSuccess(t, regression.RegressRun(ctx, w, false, nil))
	test.ExpectSuccess(t, strings.Contains(clean(w), "succeed: 000 "))
	test.ExpectSuccess(t, strings.Contains(clean(w), "succeed: 001 "))
	test.ExpectSuccess(t, strings.HasSuffix(clean(w), "regression tests: 2 succeed, 0 fail, 0 skipped\n"))

	// the output of the second subject changes so that the entry fails
	f.write("actualB.log", "DDD\nEEX\n")

	w.Clear()
	test.DemandSuccess(t, regression.RegressRun(ctx, w, true, nil))
	test.ExpectSuccess(t, strings.Contains(clean(w), "failure: 001 "))
	test.ExpectSuccess(t, strings.Contains(clean(w), "divergence at line 2\n"))
	test.ExpectSuccess(t, strings.Contains(clean(w), "2     expected: EEE\n"))
	test.ExpectSuccess(t, strings.HasSuffix(clean(w), "regression tests: 1 succeed, 1 fail, 0 skipped\n"))

	// run the previous fails only
	w.Clear()
	test.DemandSuccess(t, regression.RegressRun(ctx, w, false, []string{"FAILS"}))
	test.ExpectFailure(t, strings.Contains(clean(w), " 000 "))
	test.ExpectSuccess(t, strings.HasSuffix(clean(w), "regression tests: 0 succeed, 1 fail, 1 skipped\n"))

	// fix the subject and run the fails again. there are no fails after that
	f.write("actualB.log", "DDD\nEEE\n")

	w.Clear()
	test.DemandSuccess(t, regression.RegressRun(ctx, w, false, []string{"fails"}))
	test.ExpectSuccess(t, strings.HasSuffix(clean(w), "regression tests: 1 succeed, 0 fail, 1 skipped\n"))

	err = regression.RegressRun(ctx, w, false, []string{"FAILS"})
	test.ExpectSuccess(t, curated.Is(err, regression.NoFails))

	// run selected keys
	w.Clear()
	test.DemandSuccess(t, regression.RegressRun(ctx, w, false, []string{"1"}))
	test.ExpectSuccess(t, strings.HasSuffix(clean(w), "regression tests: 1 succeed, 0 fail, 1 skipped\n"))

	err = regression.RegressRun(ctx, w, false, []string{"x"})
	test.ExpectSuccess(t, curated.Is(err, regression.InvalidKey))

	err = regression.RegressRun(ctx, w, false, []string{"7"})
	test.ExpectSuccess(t, curated.Is(err, regression.Error))

	// entries are only deleted if confirmed
	w.Clear()
	test.DemandSuccess(t, regression.RegressDelete(w, strings.NewReader("n\n"), "0"))
	w.Clear()
	test.DemandSuccess(t, regression.RegressList(w))
	test.ExpectSuccess(t, strings.HasSuffix(clean(w), "Total: 2\n"))

	w.Clear()
	test.DemandSuccess(t, regression.RegressDelete(w, strings.NewReader("y\n"), "0"))
	test.ExpectSuccess(t, strings.HasSuffix(clean(w), "deleted test #000 from regression database\n"))

	w.Clear()
	test.DemandSuccess(t, regression.RegressList(w))
	test.ExpectEquality(t, strings.HasPrefix(clean(w), "001 [trace] "+refB), true)
	test.ExpectSuccess(t, strings.HasSuffix(clean(w), "Total: 1\n"))

	test.ExpectSuccess(t, curated.Is(regression.RegressDelete(w, strings.NewReader("y\n"), "0"), regression.Error))
	test.ExpectSuccess(t, curated.Is(regression.RegressDelete(w, strings.NewReader("y\n"), "zero"), regression.InvalidKey))
}

func TestRegressionError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := &test.CompareWriter{}

	ref := f.write("a.log", "AAA\n")
	act := f.write("actual.log", "AAA\n")
	test.DemandSuccess(t, regression.RegressAdd(ctx, w, f.entry(ref, act)))

	// the reference trace disappears
	test.DemandSuccess(t, os.Remove(ref))

	w.Clear()
	test.DemandSuccess(t, regression.RegressRun(ctx, w, true, nil))
	test.ExpectSuccess(t, strings.Contains(clean(w), " ERROR: 000 "))
	test.ExpectSuccess(t, strings.HasSuffix(clean(w), "regression tests: 0 succeed, 0 fail, 0 skipped [with errors]\n"))
}

func TestRegressionReferenceChanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	w := &test.CompareWriter{}

	ref := f.write("a.log", "AAA\nBBB\n")
	act := f.write("actual.log", "AAA\nBBB\n")
	test.DemandSuccess(t, regression.RegressAdd(ctx, w, f.entry(ref, act)))

	// reference and subject change together. the comparison passes but the
	// entry is no longer testing what it was added to test
	f.write("a.log", "AAA\nCCC\n")
	f.write("actual.log", "AAA\nCCC\n")

	w.Clear()
	test.DemandSuccess(t, regression.RegressRun(ctx, w, true, nil))
	test.ExpectSuccess(t, strings.Contains(clean(w), " ERROR: 000 "))
	test.ExpectSuccess(t, strings.Contains(clean(w), "reference trace has changed"))
	test.ExpectSuccess(t, strings.HasSuffix(clean(w), "regression tests: 0 succeed, 0 fail, 0 skipped [with errors]\n"))
}
