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
	"slices"
	"strconv"
	"strings"

	"github.com/samfoo/tracecheck/curated"
)

// ExceptionSet is a set of one-based line numbers that are known to diverge
// for reasons that are understood and which are not regressions. Membership is
// exact; there are no ranges.
//
// The zero value is an empty set. A set cannot be changed once created.
type ExceptionSet struct {
	lines map[int]struct{}
}

// NewExceptionSet creates a set from the line numbers. Duplicates are ignored.
func NewExceptionSet(lines ...int) ExceptionSet {
	set := ExceptionSet{lines: make(map[int]struct{}, len(lines))}
	for _, l := range lines {
		set.lines[l] = struct{}{}
	}
	return set
}

// IsKnownException returns true if the one-based line number is in the set.
func (set ExceptionSet) IsKnownException(line int) bool {
	_, ok := set.lines[line]
	return ok
}

// Len returns the number of line numbers in the set.
func (set ExceptionSet) Len() int {
	return len(set.lines)
}

// Lines returns the line numbers in the set in ascending order.
func (set ExceptionSet) Lines() []int {
	l := make([]int, 0, len(set.lines))
	for k := range set.lines {
		l = append(l, k)
	}
	slices.Sort(l)
	return l
}

// Union returns a new set containing the lines of both sets.
func (set ExceptionSet) Union(other ExceptionSet) ExceptionSet {
	return NewExceptionSet(append(set.Lines(), other.Lines()...)...)
}

func (set ExceptionSet) String() string {
	l := set.Lines()
	s := make([]string, len(l))
	for i := range l {
		s[i] = strconv.Itoa(l[i])
	}
	return strings.Join(s, ",")
}

// InvalidException is returned by ParseExceptions() when a line number cannot
// be used.
const InvalidException = "trace: invalid exception: %s"

// MaxExceptionRange is the largest number of lines that a single range given
// to ParseExceptions() can cover.
const MaxExceptionRange = 65536

// ParseExceptions parses a comma separated list of one-based line numbers.
// An inclusive range of lines can be given as "first-last". The empty string
// is an empty set.
func ParseExceptions(s string) (ExceptionSet, error) {
	var lines []int

	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}

		first, last, isRange := strings.Cut(f, "-")

		from, err := parseExceptionLine(first)
		if err != nil {
			return ExceptionSet{}, err
		}

		to := from
		if isRange {
			to, err = parseExceptionLine(last)
			if err != nil {
				return ExceptionSet{}, err
			}
			if to < from {
				return ExceptionSet{}, curated.Errorf(InvalidException, fmt.Sprintf("range is backwards (%s)", f))
			}
			if to-from >= MaxExceptionRange {
				return ExceptionSet{}, curated.Errorf(InvalidException, fmt.Sprintf("range is more than %d lines (%s)", MaxExceptionRange, f))
			}
		}

		for l := from; l <= to; l++ {
			lines = append(lines, l)
		}
	}

	return NewExceptionSet(lines...), nil
}

func parseExceptionLine(f string) (int, error) {
	l, err := strconv.Atoi(strings.TrimSpace(f))
	if err != nil {
		return 0, curated.Errorf(InvalidException, fmt.Sprintf("not a line number (%s)", f))
	}
	if l < 1 {
		return 0, curated.Errorf(InvalidException, fmt.Sprintf("line numbers start at one (%d)", l))
	}
	return l, nil
}
