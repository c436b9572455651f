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

package reference

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/samfoo/tracecheck/curated"
	"github.com/samfoo/tracecheck/trace"
)

// ReadError is returned when the reference trace cannot be read.
const ReadError = "reference: %v"

// the largest single line that can be read from a reference file. this is far
// larger than any real trace line but some tools emit a lot of state
const maxLineLength = 1024 * 1024

// Loader is implemented by types that can provide a reference trace.
type Loader interface {
	Load(ctx context.Context, width int) (trace.Trace, error)
}

// Load reads every line from the io.Reader and normalises it to the width.
func Load(r io.Reader, width int) (trace.Trace, error) {
	var t trace.Trace

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	for scanner.Scan() {
		t = append(t, trace.Normalise(scanner.Text(), width))
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(ReadError, err)
	}

	return t, nil
}

// File is a reference trace on disk.
type File string

// Load implements the Loader interface.
func (f File) Load(ctx context.Context, width int) (trace.Trace, error) {
	if err := ctx.Err(); err != nil {
		return nil, curated.Errorf(ReadError, err)
	}

	fh, err := os.Open(string(f))
	if err != nil {
		return nil, curated.Errorf(ReadError, err)
	}
	defer fh.Close()

	return Load(fh, width)
}

func (f File) String() string {
	return string(f)
}

// Static is a reference trace that has already been loaded. Lines are
// normalised to the requested width when Load() is called.
type Static trace.Trace

// Load implements the Loader interface.
func (s Static) Load(ctx context.Context, width int) (trace.Trace, error) {
	if err := ctx.Err(); err != nil {
		return nil, curated.Errorf(ReadError, err)
	}

	t := make(trace.Trace, len(s))
	for i := range s {
		t[i] = trace.Normalise(string(s[i]), width)
	}
	return t, nil
}
