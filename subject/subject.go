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

package subject

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/samfoo/tracecheck/curated"
	"github.com/samfoo/tracecheck/trace"
)

// Sentinal error patterns returned by the Runner implementations in this
// package.
const (
	Failed           = "subject: %v"
	FailedWithStderr = "subject: %v: %s"
	Cancelled        = "subject: cancelled: %v"
)

// the amount of stderr output that is attached to an error
const stderrTail = 2048

// Runner is implemented by types that produce the output of a subject.
type Runner interface {
	Run(ctx context.Context) ([]byte, error)
}

// Command is an external executable.
type Command struct {
	Path string
	Args []string

	// working directory of the process. the current directory is used if Dir
	// is empty
	Dir string
}

// NewCommand creates a Command from a command line. The first element is the
// path to the executable.
func NewCommand(cmdline []string) (Command, error) {
	if len(cmdline) == 0 || cmdline[0] == "" {
		return Command{}, curated.Errorf(Failed, "no command")
	}
	return Command{
		Path: cmdline[0],
		Args: cmdline[1:],
	}, nil
}

// Run implements the Runner interface. The output of the command is returned
// only if the command runs successfully to the end.
func (c Command) Run(ctx context.Context) ([]byte, error) {
	var stdout bytes.Buffer
	stderr := newRingWriter(stderrTail)

	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	err := cmd.Run()

	if ctx.Err() != nil {
		return nil, curated.Errorf(Cancelled, ctx.Err())
	}

	if err != nil {
		if s := strings.TrimSpace(stderr.String()); s != "" {
			return nil, curated.Errorf(FailedWithStderr, err, s)
		}
		return nil, curated.Errorf(Failed, err)
	}

	return stdout.Bytes(), nil
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Path
	}
	return c.Path + " " + strings.Join(c.Args, " ")
}

// Output is the stdout of a subject that has already been run.
type Output []byte

// Run implements the Runner interface.
func (o Output) Run(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, curated.Errorf(Cancelled, err)
	}
	return o, nil
}

// File is the stdout of a subject that has been saved to disk.
type File string

// Run implements the Runner interface.
func (f File) Run(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, curated.Errorf(Cancelled, err)
	}
	b, err := os.ReadFile(string(f))
	if err != nil {
		return nil, curated.Errorf(Failed, err)
	}
	return b, nil
}

func (f File) String() string {
	return string(f)
}

// Split the output of a subject into lines. Each line is normalised to the
// width with trace.Normalise(). A line feed at the very end of the output
// does not create an empty final line.
func Split(output []byte, width int) trace.Trace {
	if len(output) == 0 {
		return trace.Trace{}
	}

	s := strings.TrimSuffix(string(output), "\n")
	p := strings.Split(s, "\n")

	t := make(trace.Trace, len(p))
	for i := range p {
		t[i] = trace.Normalise(p[i], width)
	}

	return t
}
