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

package subject_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samfoo/tracecheck/curated"
	"github.com/samfoo/tracecheck/subject"
	"github.com/samfoo/tracecheck/test"
	"github.com/samfoo/tracecheck/trace"
)

// TestHelperProcess isn't a real test. It is the subject executed by the
// Command tests.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("TRACECHECK_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	switch os.Getenv("TRACECHECK_HELPER_MODE") {
	case "trace":
		fmt.Print("C000  4C F5 C5  JMP $C5F5\r\n")
		fmt.Print("C5F5  A2 00     LDX #$00\r\n")
	case "fail":
		fmt.Print("C000  4C F5 C5  JMP $C5F5\n")
		fmt.Fprint(os.Stderr, "unknown opcode $02\n")
		os.Exit(3)
	case "hang":
		select {}
	}
}

func helper(t *testing.T, mode string) subject.Command {
	t.Helper()
	t.Setenv("TRACECHECK_HELPER_PROCESS", "1")
	t.Setenv("TRACECHECK_HELPER_MODE", mode)
	return subject.Command{
		Path: os.Args[0],
		Args: []string{"-test.run=TestHelperProcess"},
	}
}

func TestCommand(t *testing.T) {
	cmd := helper(t, "trace")
	out, err := cmd.Run(context.Background())
	test.DemandSuccess(t, err)

	tr := subject.Split(out, trace.DefaultColumnWidth)
	test.ExpectDeepEquality(t, tr, trace.FromStrings(
		"C000  4C F5 C5  JMP $C5F5",
		"C5F5  A2 00     LDX #$00",
	))
}

func TestCommandFailure(t *testing.T) {
	cmd := helper(t, "fail")
	_, err := cmd.Run(context.Background())
	test.DemandFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, subject.FailedWithStderr))
	test.ExpectSuccess(t, strings.Contains(err.Error(), "exit status 3"))
	test.ExpectSuccess(t, strings.Contains(err.Error(), "unknown opcode $02"))

	cmd = subject.Command{Path: filepath.Join(t.TempDir(), "missing")}
	_, err = cmd.Run(context.Background())
	test.DemandFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, subject.Failed))
}

func TestCommandCancel(t *testing.T) {
	cmd := helper(t, "hang")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cmd.Run(ctx)
	test.DemandFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, subject.Cancelled))
}

func TestNewCommand(t *testing.T) {
	cmd, err := subject.NewCommand([]string{"./emu", "--trace", "nestest.nes"})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cmd.Path, "./emu")
	test.ExpectDeepEquality(t, cmd.Args, []string{"--trace", "nestest.nes"})
	test.ExpectEquality(t, cmd.String(), "./emu --trace nestest.nes")

	_, err = subject.NewCommand(nil)
	test.ExpectSuccess(t, curated.Is(err, subject.Failed))
}

func TestOutput(t *testing.T) {
	var r subject.Runner = subject.Output("AAA\nBBB\n")
	out, err := r.Run(context.Background())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(out), "AAA\nBBB\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Run(ctx)
	test.ExpectSuccess(t, curated.Is(err, subject.Cancelled))
}

func TestFile(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "actual.log")
	test.DemandSuccess(t, os.WriteFile(pth, []byte("AAA\n"), 0o644))

	var r subject.Runner = subject.File(pth)
	out, err := r.Run(context.Background())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(out), "AAA\n")

	r = subject.File(filepath.Join(t.TempDir(), "missing.log"))
	_, err = r.Run(context.Background())
	test.ExpectSuccess(t, curated.Is(err, subject.Failed))
}

func TestSplit(t *testing.T) {
	test.ExpectEquality(t, len(subject.Split(nil, 0)), 0)
	test.ExpectEquality(t, len(subject.Split([]byte{}, 0)), 0)

	// a single line feed is a single empty line
	test.ExpectDeepEquality(t, subject.Split([]byte("\n"), 0), trace.FromStrings(""))

	// trailing line feed does not add a line
	test.ExpectDeepEquality(t, subject.Split([]byte("AAA\nBBB\n"), 0), trace.FromStrings("AAA", "BBB"))
	test.ExpectDeepEquality(t, subject.Split([]byte("AAA\nBBB"), 0), trace.FromStrings("AAA", "BBB"))

	// blank lines in the middle are kept
	test.ExpectDeepEquality(t, subject.Split([]byte("AAA\n\nBBB\n"), 0), trace.FromStrings("AAA", "", "BBB"))

	// carriage returns are removed and lines truncated
	test.ExpectDeepEquality(t, subject.Split([]byte("AAAA\r\nBBBB\r\n"), 2), trace.FromStrings("AA", "BB"))
}
