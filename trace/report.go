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

package trace

import (
	"fmt"
	"io"
	"strings"
)

// the width of the "%-5d expected: " prefix. context lines are padded by the
// same amount so that all lines are aligned
const prefixWidth = 16

var padding = strings.Repeat(" ", prefixWidth)

// the text shown in place of an actual line when the actual trace has ended
const endOfTrace = "<end of trace>"

// Reporter writes a failing Result to the Output.
type Reporter struct {
	Output io.Writer

	// maximum number of actual trace lines to show before the divergence
	ContextLines int

	// if Style is nil then PlainStyle is used
	Style Style
}

// ContextWindow returns the zero-based start and end (exclusive) indexes of
// the lines of the actual trace that precede the one-based index. The window
// is never more than size lines and is clipped to the start and end of the
// actual trace.
//
// The index can be beyond the end of the actual trace when missing lines have
// been suppressed. The window is then empty or made of the final lines of the
// actual trace.
func ContextWindow(index int, size int, actualLen int) (int, int) {
	start := min(max(0, index-1-size), actualLen)
	end := max(start, min(index-1, actualLen))
	return start, end
}

// Report writes the divergence in the Result to the Output, preceded by the
// lines of the actual trace leading up to it. Nothing is written for a Pass
// result.
func (rep Reporter) Report(res Result, actual Trace) error {
	if res.Passed() {
		return nil
	}

	style := rep.Style
	if style == nil {
		style = PlainStyle{}
	}

	var s strings.Builder

	start, end := ContextWindow(res.Index, rep.ContextLines, len(actual))
	for _, l := range actual[start:end] {
		s.WriteString(padding)
		s.WriteString(string(l))
		s.WriteString("\n")
	}

	if res.ActualMissing {
		s.WriteString(fmt.Sprintf("%-5d expected: %s\n", res.Index, res.Expected))
		s.WriteString(fmt.Sprintf("%-5d actual  : %s\n", res.Index, endOfTrace))
	} else {
		ann := Highlight(res.Expected, res.Actual, style)
		s.WriteString(fmt.Sprintf("%-5d expected: %s\n", res.Index, ann.Expected))
		s.WriteString(fmt.Sprintf("%-5d actual  : %s\n", res.Index, ann.Actual))

		// mark differing columns if the style doesn't show them
		if !style.Visible() && len(ann.Positions) > 0 {
			s.WriteString(padding)
			s.WriteString(markers(ann.Positions))
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")

	_, err := io.WriteString(rep.Output, s.String())
	return err
}

// markers returns a string with a caret at every position
func markers(positions []int) string {
	m := make([]byte, positions[len(positions)-1]+1)
	for i := range m {
		m[i] = ' '
	}
	for _, p := range positions {
		m[p] = '^'
	}
	return string(m)
}
