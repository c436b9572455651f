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

package harness

import (
	"context"
	"io"

	"github.com/samfoo/tracecheck/curated"
	"github.com/samfoo/tracecheck/exceptions"
	"github.com/samfoo/tracecheck/logger"
	"github.com/samfoo/tracecheck/reference"
	"github.com/samfoo/tracecheck/subject"
	"github.com/samfoo/tracecheck/trace"
	"golang.org/x/sync/errgroup"
)

// Sentinal error patterns returned by Run().
const (
	SubjectError   = "harness: subject: %v"
	ReferenceError = "harness: reference: %v"
)

// Job is a single check of a subject against a reference trace.
type Job struct {
	// used to identify the job in log entries
	Name string

	Subject   subject.Runner
	Reference reference.Loader
	Config    trace.Config

	// the style used by the report. if Style is nil then trace.PlainStyle is
	// used
	Style trace.Style

	// the manifest entry that explains the known exceptions. only used to
	// give the reason for a suppressed divergence in the log. Manifest can be
	// nil
	Manifest *exceptions.Manifest
	Trace    string
}

// reason returns the manifest's explanation for the known exception
func (job Job) reason(line int) (exceptions.Exception, bool) {
	if job.Manifest == nil {
		return exceptions.Exception{}, false
	}
	return job.Manifest.Lookup(job.Trace, line)
}

// Run the job. A failing result is reported to the output, a passing result
// writes nothing.
//
// The error return value is for failures of the subject or the reference
// trace. A divergence is not an error and is indicated by the Result.
func Run(ctx context.Context, job Job, output io.Writer) (trace.Result, error) {
	if err := job.Config.Validate(); err != nil {
		return trace.Result{}, err
	}

	var expected trace.Trace
	var actual trace.Trace

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out, err := job.Subject.Run(gctx)
		if err != nil {
			return curated.Errorf(SubjectError, err)
		}
		actual = subject.Split(out, job.Config.ColumnWidth)
		return nil
	})

	g.Go(func() error {
		t, err := job.Reference.Load(gctx, job.Config.ColumnWidth)
		if err != nil {
			return curated.Errorf(ReferenceError, err)
		}
		expected = t
		return nil
	})

	if err := g.Wait(); err != nil {
		return trace.Result{}, err
	}

	logger.Logf(logger.Allow, "harness", "%s: %d expected lines, %d actual lines", job.Name, len(expected), len(actual))

	res := trace.Compare(expected, actual, job.Config)

	for _, l := range res.Suppressed {
		if ex, ok := job.reason(l); ok {
			logger.Logf(logger.Allow, "harness", "%s: suppressed divergence at line %d: %s", job.Name, l, ex.Reason)
		} else {
			logger.Logf(logger.Allow, "harness", "%s: suppressed divergence at line %d", job.Name, l)
		}
	}
	logger.Logf(logger.Allow, "harness", "%s: %s", job.Name, res)

	rep := trace.Reporter{
		Output:       output,
		ContextLines: job.Config.ContextLines,
		Style:        job.Style,
	}
	if err := rep.Report(res, actual); err != nil {
		return res, err
	}

	return res, nil
}
