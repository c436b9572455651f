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

package trace_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/samfoo/tracecheck/ansi"
	"github.com/samfoo/tracecheck/trace"
	"github.com/samfoo/tracecheck/test"
)

// bracketStyle makes tags visible in test output without escape sequences
type bracketStyle struct{}

func (bracketStyle) Reference(r rune) string {
	return "[" + string(r) + "]"
}

func (bracketStyle) Deviation(r rune) string {
	return "<" + string(r) + ">"
}

func (bracketStyle) Visible() bool {
	return true
}

func TestHighlight(t *testing.T) {
	ann := trace.Highlight("BBB", "BBX", bracketStyle{})
	test.ExpectEquality(t, ann.Expected, "BB[B]")
	test.ExpectEquality(t, ann.Actual, "BB<X>")
	test.ExpectDeepEquality(t, ann.Positions, []int{2})

	ann = trace.Highlight("BBB", "BBX", trace.ColourStyle{})
	test.ExpectEquality(t, ann.Expected, "BB"+ansi.DimPens["green"]+"B"+ansi.NormalPen)
	test.ExpectEquality(t, ann.Actual, "BB"+ansi.DimPens["red"]+"X"+ansi.NormalPen)

	ann = trace.Highlight("BBB", "BBX", trace.PlainStyle{})
	test.ExpectEquality(t, ann.Expected, "BBB")
	test.ExpectEquality(t, ann.Actual, "BBX")
	test.ExpectDeepEquality(t, ann.Positions, []int{2})

	// identical lines have no tags
	ann = trace.Highlight("ABC", "ABC", bracketStyle{})
	test.ExpectEquality(t, ann.Expected, "ABC")
	test.ExpectEquality(t, ann.Actual, "ABC")
	test.ExpectEquality(t, len(ann.Positions), 0)
}

func TestHighlightLengthMismatch(t *testing.T) {
	// only the shared prefix is compared. the tail of the longer line is
	// rendered untagged
	ann := trace.Highlight("ABCDEF", "AXC", bracketStyle{})
	test.ExpectEquality(t, ann.Expected, "A[B]CDEF")
	test.ExpectEquality(t, ann.Actual, "A<X>C")
	test.ExpectDeepEquality(t, ann.Positions, []int{1})

	ann = trace.Highlight("AB", "ZBCD", bracketStyle{})
	test.ExpectEquality(t, ann.Expected, "[A]B")
	test.ExpectEquality(t, ann.Actual, "<Z>BCD")

	ann = trace.Highlight("", "ABC", bracketStyle{})
	test.ExpectEquality(t, ann.Expected, "")
	test.ExpectEquality(t, ann.Actual, "ABC")
	test.ExpectEquality(t, len(ann.Positions), 0)
}

func TestHighlightCharacters(t *testing.T) {
	// positions are characters not bytes
	ann := trace.Highlight("aéb", "aéc", bracketStyle{})
	test.ExpectDeepEquality(t, ann.Positions, []int{2})
	test.ExpectEquality(t, ann.Expected, "aé[b]")
}

// the positions tagged in the expected line must be the same as the positions
// tagged in the actual line
func TestHighlightSymmetry(t *testing.T) {
	pairs := [][2]trace.Line{
		{"C72E  A0 00     LDY #$00", "C72E  A2 00     LDX #$00"},
		{"A:00 X:00 Y:00 P:26 SP:FB", "A:00 X:00 Y:00 P:24 SP:FB"},
		{"ABCDEFGH", "abcd"},
		{"x", "yyyyyyyy"},
	}

	for _, p := range pairs {
		ann := trace.Highlight(p[0], p[1], bracketStyle{})

		var ref, dev []int
		pos := 0
		for _, r := range ann.Expected {
			switch r {
			case '[':
				ref = append(ref, pos)
			case ']':
			default:
				pos++
			}
		}
		pos = 0
		for _, r := range ann.Actual {
			switch r {
			case '<':
				dev = append(dev, pos)
			case '>':
			default:
				pos++
			}
		}

		test.ExpectDeepEquality(t, ref, dev, p[0])
		test.ExpectDeepEquality(t, ref, ann.Positions, p[0])

		// every tagged position is inside the shared prefix
		n := min(p[0].Len(), p[1].Len())
		test.ExpectSuccess(t, !slices.ContainsFunc(ann.Positions, func(i int) bool { return i >= n }), p[0])

		// stripping tags restores the original lines
		strip := strings.NewReplacer("[", "", "]", "", "<", "", ">", "")
		test.ExpectEquality(t, strip.Replace(ann.Expected), string(p[0]))
		test.ExpectEquality(t, strip.Replace(ann.Actual), string(p[1]))
	}
}
