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

package regression

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samfoo/tracecheck/curated"
	"github.com/samfoo/tracecheck/database"
	"github.com/samfoo/tracecheck/digest"
	"github.com/samfoo/tracecheck/exceptions"
	"github.com/samfoo/tracecheck/harness"
	"github.com/samfoo/tracecheck/reference"
	"github.com/samfoo/tracecheck/subject"
	"github.com/samfoo/tracecheck/trace"
)

const traceEntryType = "trace"

// InvalidEntry is returned when a TraceRegression cannot be serialised or
// deserialised.
const InvalidEntry = "regression: invalid trace entry: %v"

const (
	traceFieldName int = iota
	traceFieldManifest
	traceFieldReference
	traceFieldWidth
	traceFieldContext
	traceFieldMissing
	traceFieldNotes
	traceFieldCommand
	traceFieldDigest
	numTraceFields
)

// TraceRegression is the regression entry for a subject and its reference
// trace.
type TraceRegression struct {
	// name of the trace in the exceptions manifest. an empty name means that
	// there are no known exceptions
	Name string

	// path to the exceptions manifest. an empty path means the embedded
	// manifest
	Manifest string

	Reference string

	// the subject command line. arguments cannot contain whitespace
	Command []string

	Width   int
	Context int
	Missing trace.MissingPolicy

	Notes string

	// digest of the reference trace when the entry was added
	Digest string
}

// NewTraceRegression is the preferred method of initialisation for the
// TraceRegression type.
func NewTraceRegression(name string, reference string, command []string) *TraceRegression {
	return &TraceRegression{
		Name:      name,
		Reference: reference,
		Command:   command,
		Width:     trace.DefaultColumnWidth,
		Context:   trace.DefaultContextLines,
		Missing:   trace.MissingIsMismatch,
	}
}

func deserialiseTraceEntry(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != numTraceFields {
		return nil, curated.Errorf(InvalidEntry, fmt.Sprintf("wrong number of fields (%d)", len(fields)))
	}

	reg := &TraceRegression{
		Name:      fields[traceFieldName],
		Manifest:  fields[traceFieldManifest],
		Reference: fields[traceFieldReference],
		Command:   strings.Fields(fields[traceFieldCommand]),
		Notes:     fields[traceFieldNotes],
		Digest:    fields[traceFieldDigest],
	}

	var err error

	reg.Width, err = strconv.Atoi(fields[traceFieldWidth])
	if err != nil {
		return nil, curated.Errorf(InvalidEntry, fmt.Sprintf("invalid width field (%s)", fields[traceFieldWidth]))
	}

	reg.Context, err = strconv.Atoi(fields[traceFieldContext])
	if err != nil {
		return nil, curated.Errorf(InvalidEntry, fmt.Sprintf("invalid context field (%s)", fields[traceFieldContext]))
	}

	reg.Missing, err = trace.ParseMissingPolicy(fields[traceFieldMissing])
	if err != nil {
		return nil, curated.Errorf(InvalidEntry, err)
	}

	return reg, nil
}

// EntryType implements the database.Entry interface.
func (reg *TraceRegression) EntryType() string {
	return traceEntryType
}

// Serialise implements the database.Entry interface.
func (reg *TraceRegression) Serialise() (database.SerialisedEntry, error) {
	for _, a := range reg.Command {
		if strings.ContainsAny(a, " \t") {
			return nil, curated.Errorf(InvalidEntry, fmt.Sprintf("command argument contains whitespace (%s)", a))
		}
	}

	return database.SerialisedEntry{
		reg.Name,
		reg.Manifest,
		reg.Reference,
		strconv.Itoa(reg.Width),
		strconv.Itoa(reg.Context),
		reg.Missing.String(),
		reg.Notes,
		strings.Join(reg.Command, " "),
		reg.Digest,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (reg *TraceRegression) CleanUp() error {
	return nil
}

func (reg *TraceRegression) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("[%s] %s", traceEntryType, reg.Reference))
	if reg.Name != "" {
		s.WriteString(fmt.Sprintf(" (%s)", reg.Name))
	}
	s.WriteString(fmt.Sprintf(" <- %s", strings.Join(reg.Command, " ")))
	if reg.Notes != "" {
		s.WriteString(fmt.Sprintf(" [%s]", reg.Notes))
	}
	return s.String()
}

// Job returns the harness.Job for the entry.
func (reg *TraceRegression) Job() (harness.Job, error) {
	cfg := trace.DefaultConfig()
	cfg.ColumnWidth = reg.Width
	cfg.ContextLines = reg.Context
	cfg.Missing = reg.Missing

	var man *exceptions.Manifest
	if reg.Name != "" {
		man = exceptions.Default()
		if reg.Manifest != "" {
			var err error
			man, err = exceptions.Load(reg.Manifest)
			if err != nil {
				return harness.Job{}, err
			}
		}

		var err error
		cfg.Exceptions, err = man.Set(reg.Name)
		if err != nil {
			return harness.Job{}, err
		}
	}

	cmd, err := subject.NewCommand(reg.Command)
	if err != nil {
		return harness.Job{}, err
	}

	return harness.Job{
		Name:      reg.String(),
		Subject:   cmd,
		Reference: reference.File(reg.Reference),
		Config:    cfg,
		Manifest:  man,
		Trace:     reg.Name,
	}, nil
}

// recordingLoader keeps a copy of the reference trace that it loads
type recordingLoader struct {
	reference.Loader
	trace trace.Trace
}

func (ldr *recordingLoader) Load(ctx context.Context, width int) (trace.Trace, error) {
	t, err := ldr.Loader.Load(ctx, width)
	ldr.trace = t
	return t, err
}

// regress implements the Regressor interface. the report is empty if the
// check passes
func (reg *TraceRegression) regress(ctx context.Context, newEntry bool) (bool, string, error) {
	job, err := reg.Job()
	if err != nil {
		return false, "", curated.Errorf(Error, err)
	}

	ref := &recordingLoader{Loader: job.Reference}
	job.Reference = ref

	var report bytes.Buffer
	res, err := harness.Run(ctx, job, &report)
	if err != nil {
		return false, "", curated.Errorf(Error, err)
	}

	// the result means nothing if the reference has changed since the entry
	// was added
	dig := digest.Of(ref.trace)
	if newEntry {
		reg.Digest = dig
	} else if reg.Digest != dig {
		return false, "", curated.Errorf(ReferenceChanged, reg.Reference)
	}

	if !res.Passed() {
		return false, fmt.Sprintf("%s\n%s", res, report.String()), nil
	}

	return true, "", nil
}
