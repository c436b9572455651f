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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/samfoo/tracecheck/curated"
	"github.com/samfoo/tracecheck/exceptions"
	"github.com/samfoo/tracecheck/harness"
	"github.com/samfoo/tracecheck/logger"
	"github.com/samfoo/tracecheck/modalflag"
	"github.com/samfoo/tracecheck/performance"
	"github.com/samfoo/tracecheck/reference"
	"github.com/samfoo/tracecheck/regression"
	"github.com/samfoo/tracecheck/statsview"
	"github.com/samfoo/tracecheck/subject"
	"github.com/samfoo/tracecheck/trace"
	"github.com/samfoo/tracecheck/version"
	"golang.org/x/term"
)

// values used with os.Exit()
const (
	exitPass       = 0
	exitDivergence = 1
	exitUsage      = 10
	exitError      = 20
)

// errors with this pattern are problems with the command line
const usageError = "usage: %v"

// error patterns for flag values and the regress mode
const (
	invalidColour = "colour must be one of auto, always, never (%s)"

	// carriage return at beginning of error message because we want to
	// overwrite the last output from RegressAdd()
	regressAddError = "\rerror adding regression test: %v"
)

// the standard streams. the report of a divergence is written to stderr
type streams struct {
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
}

func main() {
	// an interrupt cancels the context. a running subject will be killed
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	exitVal := launch(ctx, os.Args[1:], streams{
		stdout: os.Stdout,
		stderr: os.Stderr,
		stdin:  os.Stdin,
	})

	stop()
	os.Exit(exitVal)
}

// launch parses the arguments and runs the selected mode. returns the value
// to use with os.Exit()
func launch(ctx context.Context, args []string, std streams) int {
	md := &modalflag.Modes{Output: std.stdout}
	md.NewArgs(args)
	md.AddSubModes("CHECK", "REGRESS", "EXCEPTIONS", "VERSION")
	md.AdditionalHelp("The default CHECK mode compares the trace of a subject against a reference trace.\n" +
		"Use -help after a mode for more information about that mode.")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitPass
	case modalflag.ParseError:
		fmt.Fprintf(std.stderr, "* error: %v\n", err)
		return exitUsage
	}

	exitVal := exitPass

	switch md.Mode() {
	case "CHECK":
		var passed bool
		passed, err = check(ctx, md, std)
		if err == nil && !passed {
			exitVal = exitDivergence
		}

	case "REGRESS":
		err = regress(ctx, md, std)

	case "EXCEPTIONS":
		err = listExceptions(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Fprintf(std.stderr, "* error in %s mode: %s\n", md, err)
		if curated.Is(err, usageError) {
			return exitUsage
		}
		return exitError
	}

	return exitVal
}

// missingFlag is a flag.Value for the trace.MissingPolicy type
type missingFlag struct {
	policy trace.MissingPolicy
}

func (m *missingFlag) String() string {
	return m.policy.String()
}

func (m *missingFlag) Set(s string) error {
	p, err := trace.ParseMissingPolicy(s)
	if err != nil {
		return err
	}
	m.policy = p
	return nil
}

// colourFlag is a flag.Value for the colour mode of the report
type colourFlag string

func (c *colourFlag) String() string {
	return string(*c)
}

func (c *colourFlag) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto", "always", "never":
		*c = colourFlag(strings.ToLower(s))
		return nil
	}
	return curated.Errorf(invalidColour, s)
}

// style returns the style to use when the report is written to output
func (c colourFlag) style(output io.Writer) trace.Style {
	switch c {
	case "always":
		return trace.ColourStyle{}
	case "never":
		return trace.PlainStyle{}
	}

	if os.Getenv("NO_COLOR") != "" {
		return trace.PlainStyle{}
	}

	if f, ok := output.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return trace.ColourStyle{}
	}

	return trace.PlainStyle{}
}

// loadExceptions returns the manifest and the exception set for the named
// trace in it. an empty manifest path means the embedded manifest. an empty
// name means no manifest and the empty set
func loadExceptions(manifest string, name string) (*exceptions.Manifest, trace.ExceptionSet, error) {
	if name == "" {
		return nil, trace.ExceptionSet{}, nil
	}

	m := exceptions.Default()
	if manifest != "" {
		var err error
		m, err = exceptions.Load(manifest)
		if err != nil {
			return nil, trace.ExceptionSet{}, err
		}
	}

	set, err := m.Set(name)
	if err != nil {
		return nil, trace.ExceptionSet{}, err
	}

	return m, set, nil
}

func check(ctx context.Context, md *modalflag.Modes, std streams) (bool, error) {
	md.NewMode()

	ref := md.AddString("reference", "", "path to the reference trace")
	actual := md.AddString("actual", "", "path to a file containing the actual trace, instead of running a subject")
	name := md.AddString("trace", "", "name of the trace in the exceptions manifest")
	manifest := md.AddString("manifest", "", "path to exceptions manifest (default is the embedded manifest)")
	except := md.AddString("except", "", "comma separated list of additional line numbers (or first-last ranges) that are allowed to diverge")
	contextLines := md.AddInt("context", trace.DefaultContextLines, "number of lines to show before a divergence")
	width := md.AddInt("width", trace.DefaultColumnWidth, "truncate lines to this many characters (0 for no truncation)")
	missing := &missingFlag{}
	md.AddVar(missing, "missing", "how to treat a short actual trace: mismatch, truncation, exhaustion")
	colour := colourFlag("auto")
	md.AddVar(&colour, "colour", "colour the report: auto, always, never")
	log := md.AddBool("log", false, "echo log to stderr")
	dump := md.AddString("memviz", "", "write a graphviz representation of the result to file")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	var profile performance.Profile
	md.AddVar(&profile, "profile", "write profiling reports: none, cpu, mem, both")

	md.AdditionalHelp("Arguments after the flags are the command line of the subject. The subject\n" +
		"should write one line to stdout for every execution step.")

	p, err := md.Parse()
	if err != nil {
		return false, curated.Errorf(usageError, err)
	}
	if p == modalflag.ParseHelp {
		return true, nil
	}

	if *ref == "" {
		return false, curated.Errorf(usageError, "a reference trace is required")
	}

	var runner subject.Runner
	if *actual != "" {
		if len(md.RemainingArgs()) > 0 {
			return false, curated.Errorf(usageError, "a subject command cannot be used with -actual")
		}
		runner = subject.File(*actual)
	} else {
		runner, err = subject.NewCommand(md.RemainingArgs())
		if err != nil {
			return false, curated.Errorf(usageError, "a subject command or -actual is required")
		}
	}

	cfg := trace.DefaultConfig()
	cfg.ContextLines = *contextLines
	cfg.ColumnWidth = *width
	cfg.Missing = missing.policy

	man, known, err := loadExceptions(*manifest, *name)
	if err != nil {
		return false, err
	}

	extra, err := trace.ParseExceptions(*except)
	if err != nil {
		return false, curated.Errorf(usageError, err)
	}
	cfg.Exceptions = known.Union(extra)

	if err := cfg.Validate(); err != nil {
		return false, curated.Errorf(usageError, err)
	}

	if *log {
		logger.SetEcho(std.stderr)
		defer logger.SetEcho(nil)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(std.stdout)
		} else {
			fmt.Fprintln(std.stderr, "! statsview is not available in this build")
		}
	}

	jobName := *name
	if jobName == "" {
		jobName = filepath.Base(*ref)
	}

	job := harness.Job{
		Name:      jobName,
		Subject:   runner,
		Reference: reference.File(*ref),
		Config:    cfg,
		Style:     colour.style(std.stderr),
		Manifest:  man,
		Trace:     *name,
	}

	var res trace.Result
	err = performance.RunProfiler(profile, "check", func() error {
		var err error
		res, err = harness.Run(ctx, job, std.stderr)
		return err
	})
	if err != nil {
		return false, err
	}

	if *dump != "" {
		f, err := os.Create(*dump)
		if err != nil {
			return false, err
		}
		memviz.Map(f, &res)
		if err := f.Close(); err != nil {
			return false, err
		}
	}

	return res.Passed(), nil
}

func listExceptions(md *modalflag.Modes) error {
	md.NewMode()

	manifest := md.AddString("manifest", "", "path to exceptions manifest (default is the embedded manifest)")

	md.AdditionalHelp("Arguments are the names of the traces to list. All traces are listed if there\n" +
		"are no arguments.")

	p, err := md.Parse()
	if err != nil {
		return curated.Errorf(usageError, err)
	}
	if p == modalflag.ParseHelp {
		return nil
	}

	m := exceptions.Default()
	if *manifest != "" {
		m, err = exceptions.Load(*manifest)
		if err != nil {
			return err
		}
	}

	names := md.RemainingArgs()
	if len(names) == 0 {
		names = m.Names()
	}

	for _, n := range names {
		ent, ok := m.Traces[n]
		if !ok {
			return curated.Errorf(exceptions.UnknownTrace, n)
		}

		if ent.Description != "" {
			fmt.Fprintf(md.Output, "%s: %s\n", n, ent.Description)
		} else {
			fmt.Fprintf(md.Output, "%s\n", n)
		}

		ex := slices.Clone(ent.Exceptions)
		slices.SortFunc(ex, func(a, b exceptions.Exception) int {
			return a.Line - b.Line
		})
		for _, e := range ex {
			fmt.Fprintf(md.Output, "  %-5d %s\n", e.Line, e.Reason)
		}
	}

	return nil
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil {
		return curated.Errorf(usageError, err)
	}
	if p == modalflag.ParseHelp {
		return nil
	}

	fmt.Fprintln(md.Output, version.String())
	if statsview.Available() {
		fmt.Fprintln(md.Output, "statsview available")
	}

	return nil
}

type yesReader struct{}

func (*yesReader) Read(p []byte) (n int, err error) {
	return copy(p, "y\n"), nil
}

func regress(ctx context.Context, md *modalflag.Modes, std streams) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "DELETE", "ADD")

	p, err := md.Parse()
	if err != nil {
		return curated.Errorf(usageError, err)
	}
	if p == modalflag.ParseHelp {
		return nil
	}

	switch md.Mode() {
	case "RUN":
		md.NewMode()

		verbose := md.AddBool("verbose", false, "output more detail (eg. failure reports and error messages)")
		var profile performance.Profile
		md.AddVar(&profile, "profile", "write profiling reports: none, cpu, mem, both")

		md.AdditionalHelp("Arguments are the keys of the entries to run. All entries are run if there are\n" +
			"no arguments. The key FAILS runs the entries that failed in the previous run.")

		p, err := md.Parse()
		if err != nil {
			return curated.Errorf(usageError, err)
		}
		if p == modalflag.ParseHelp {
			return nil
		}

		return performance.RunProfiler(profile, "regress", func() error {
			return regression.RegressRun(ctx, md.Output, *verbose, md.RemainingArgs())
		})

	case "LIST":
		md.NewMode()

		p, err := md.Parse()
		if err != nil {
			return curated.Errorf(usageError, err)
		}
		if p == modalflag.ParseHelp {
			return nil
		}

		if len(md.RemainingArgs()) > 0 {
			return curated.Errorf(usageError, fmt.Sprintf("no additional arguments required for %s mode", md))
		}

		return regression.RegressList(md.Output)

	case "DELETE":
		md.NewMode()

		answerYes := md.AddBool("yes", false, "answer yes to confirmation")

		p, err := md.Parse()
		if err != nil {
			return curated.Errorf(usageError, err)
		}
		if p == modalflag.ParseHelp {
			return nil
		}

		switch len(md.RemainingArgs()) {
		case 0:
			return curated.Errorf(usageError, fmt.Sprintf("database key required for %s mode", md))
		case 1:
			// use stdin for confirmation unless "yes" flag has been sent
			var confirmation = std.stdin
			if *answerYes {
				confirmation = &yesReader{}
			}
			return regression.RegressDelete(md.Output, confirmation, md.GetArg(0))
		default:
			return curated.Errorf(usageError, "only one entry can be deleted at at time")
		}

	case "ADD":
		return regressAdd(ctx, md, std)
	}

	return nil
}

func regressAdd(ctx context.Context, md *modalflag.Modes, std streams) error {
	md.NewMode()

	ref := md.AddString("reference", "", "path to the reference trace")
	name := md.AddString("trace", "", "name of the trace in the exceptions manifest")
	manifest := md.AddString("manifest", "", "path to exceptions manifest (default is the embedded manifest)")
	contextLines := md.AddInt("context", trace.DefaultContextLines, "number of lines to show before a divergence")
	width := md.AddInt("width", trace.DefaultColumnWidth, "truncate lines to this many characters (0 for no truncation)")
	missing := &missingFlag{}
	md.AddVar(missing, "missing", "how to treat a short actual trace: mismatch, truncation, exhaustion")
	notes := md.AddString("notes", "", "additional annotation for the database")
	log := md.AddBool("log", false, "echo log to stderr")

	md.AdditionalHelp("Arguments after the flags are the command line of the subject. The entry is\n" +
		"only added if the subject currently passes. Paths are stored as absolute paths.")

	p, err := md.Parse()
	if err != nil {
		return curated.Errorf(usageError, err)
	}
	if p == modalflag.ParseHelp {
		return nil
	}

	if *ref == "" {
		return curated.Errorf(usageError, "a reference trace is required")
	}
	if len(md.RemainingArgs()) == 0 {
		return curated.Errorf(usageError, "a subject command is required")
	}
	if strings.Contains(*notes, ",") {
		return curated.Errorf(usageError, "notes cannot contain commas")
	}

	if *log {
		logger.SetEcho(std.stderr)
		defer logger.SetEcho(nil)
	}

	refPath, err := filepath.Abs(*ref)
	if err != nil {
		return err
	}

	cmd := slices.Clone(md.RemainingArgs())
	if strings.ContainsRune(cmd[0], filepath.Separator) {
		cmd[0], err = filepath.Abs(cmd[0])
		if err != nil {
			return err
		}
	}

	reg := regression.NewTraceRegression(*name, refPath, cmd)
	reg.Context = *contextLines
	reg.Width = *width
	reg.Missing = missing.policy
	reg.Notes = *notes

	if *manifest != "" {
		reg.Manifest, err = filepath.Abs(*manifest)
		if err != nil {
			return err
		}
	}

	if err := regression.RegressAdd(ctx, md.Output, reg); err != nil {
		return curated.Errorf(regressAddError, err)
	}

	return nil
}
