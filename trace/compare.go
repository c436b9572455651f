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
)

// Kind is the outcome of a comparison.
type Kind int

// List of valid Kind values.
const (
	// the expected trace was exhausted without an unsuppressed divergence
	Pass Kind = iota

	// a line in the actual trace did not match the expected line
	Divergence

	// the actual trace ended before the expected trace and the MissingPolicy
	// is MissingIsTruncation
	Truncated
)

func (k Kind) String() string {
	switch k {
	case Pass:
		return "pass"
	case Divergence:
		return "divergence"
	case Truncated:
		return "truncated"
	}
	return "undefined"
}

// Result of a comparison. For results other than Pass, the Index, Expected and
// Actual fields describe the first unsuppressed divergence.
type Result struct {
	Kind Kind

	// one-based line number of the divergence
	Index int

	Expected Line
	Actual   Line

	// the actual trace had no line at Index. the Actual field will be empty
	ActualMissing bool

	// the number of line pairs examined, including the divergent pair
	Compared int

	// one-based line numbers of divergences that were skipped over because
	// they were in the ExceptionSet
	Suppressed []int
}

// Passed returns true if the result is a pass.
func (res Result) Passed() bool {
	return res.Kind == Pass
}

func (res Result) String() string {
	switch res.Kind {
	case Pass:
		return fmt.Sprintf("pass after %d lines (%d suppressed)", res.Compared, len(res.Suppressed))
	case Truncated:
		return fmt.Sprintf("actual trace truncated at line %d", res.Index)
	}
	if res.ActualMissing {
		return fmt.Sprintf("divergence at line %d: actual trace has ended", res.Index)
	}
	return fmt.Sprintf("divergence at line %d", res.Index)
}

// the states of the comparison. scanning is the only non-terminal state
type state int

const (
	scanning state = iota
	exhausted
	diverged
)

// Compare the actual trace against the expected trace. Only the ExceptionSet
// and MissingPolicy fields of the Config are used.
//
// Comparison ends when the expected trace is exhausted or when a divergence
// that is not in the ExceptionSet is found, whichever is first.
func Compare(expected Trace, actual Trace, cfg Config) Result {
	var res Result

	st := scanning
	i := 0

	for st == scanning {
		if i >= len(expected) {
			st = exhausted
			continue
		}

		if i >= len(actual) {
			switch cfg.Missing {
			case MissingIsExhaustion:
				st = exhausted
				continue
			case MissingIsTruncation:
				res.Compared++
				res.Kind = Truncated
				res.Index = i + 1
				res.Expected = expected[i]
				res.ActualMissing = true
				st = diverged
				continue
			}
		}

		res.Compared++

		var act Line
		missing := i >= len(actual)
		if !missing {
			act = actual[i]
		}

		if !missing && expected[i] == act {
			i++
			continue
		}

		// candidate divergence
		if cfg.Exceptions.IsKnownException(i + 1) {
			res.Suppressed = append(res.Suppressed, i+1)
			i++
			continue
		}

		res.Kind = Divergence
		res.Index = i + 1
		res.Expected = expected[i]
		res.Actual = act
		res.ActualMissing = missing
		st = diverged
	}

	return res
}
