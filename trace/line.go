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
	"strings"
	"unicode/utf8"
)

// Line is a single normalised line of a trace. Lines are compared with string
// equality and their length is measured in characters, not bytes.
type Line string

// Len returns the number of characters in the line.
func (l Line) Len() int {
	return utf8.RuneCountInString(string(l))
}

// Trace is an ordered sequence of lines. A trace is not modified once it has
// been created.
type Trace []Line

// FromStrings creates a trace from a list of strings. The strings are used
// as they are, without normalisation.
func FromStrings(lines ...string) Trace {
	t := make(Trace, len(lines))
	for i := range lines {
		t[i] = Line(lines[i])
	}
	return t
}

// Normalise removes all carriage return and line feed characters from the raw
// string and truncates it to width characters. A width of zero or less means
// that the line is not truncated.
func Normalise(raw string, width int) Line {
	s := strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, raw)

	if width <= 0 || len(s) <= width {
		return Line(s)
	}

	// len(s) in bytes is greater than width but that doesn't mean the number
	// of characters is
	n := 0
	for i := range s {
		if n == width {
			return Line(s[:i])
		}
		n++
	}

	return Line(s)
}
