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

	"github.com/samfoo/tracecheck/ansi"
)

// Style renders characters that have been tagged by Highlight().
type Style interface {
	// a character in the expected line that differs from the actual line
	Reference(r rune) string

	// a character in the actual line that differs from the expected line
	Deviation(r rune) string

	// whether the tags can be seen in the rendered string. the Reporter adds
	// a marker line when they cannot
	Visible() bool
}

// ColourStyle renders reference characters in green and deviations in red.
type ColourStyle struct{}

// Reference implements the Style interface.
func (ColourStyle) Reference(r rune) string {
	return ansi.DimPens["green"] + string(r) + ansi.NormalPen
}

// Deviation implements the Style interface.
func (ColourStyle) Deviation(r rune) string {
	return ansi.DimPens["red"] + string(r) + ansi.NormalPen
}

// Visible implements the Style interface.
func (ColourStyle) Visible() bool {
	return true
}

// PlainStyle renders tagged characters without decoration.
type PlainStyle struct{}

// Reference implements the Style interface.
func (PlainStyle) Reference(r rune) string {
	return string(r)
}

// Deviation implements the Style interface.
func (PlainStyle) Deviation(r rune) string {
	return string(r)
}

// Visible implements the Style interface.
func (PlainStyle) Visible() bool {
	return false
}

// Annotation is the result of Highlight().
type Annotation struct {
	Expected string
	Actual   string

	// zero-based character positions that differ. only positions that exist
	// in both lines are included
	Positions []int
}

// Highlight compares the two lines character by character and renders them
// with the differing characters tagged by the Style.
//
// Only the characters that the lines have in common are compared. Any
// characters beyond the end of the shorter line are rendered as they are.
func Highlight(expected Line, actual Line, style Style) Annotation {
	var ann Annotation

	e := []rune(expected)
	a := []rune(actual)
	n := min(len(e), len(a))

	var eb, ab strings.Builder
	eb.Grow(len(expected))
	ab.Grow(len(actual))

	for p := range n {
		if e[p] == a[p] {
			eb.WriteRune(e[p])
			ab.WriteRune(a[p])
			continue
		}
		ann.Positions = append(ann.Positions, p)
		eb.WriteString(style.Reference(e[p]))
		ab.WriteString(style.Deviation(a[p]))
	}

	eb.WriteString(string(e[n:]))
	ab.WriteString(string(a[n:]))

	ann.Expected = eb.String()
	ann.Actual = ab.String()

	return ann
}
