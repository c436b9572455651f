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
	"fmt"
	"testing"

	"github.com/samfoo/tracecheck/curated"
	"github.com/samfoo/tracecheck/trace"
	"github.com/samfoo/tracecheck/test"
)

func TestNormalise(t *testing.T) {
	test.ExpectEquality(t, trace.Normalise("C000  4C F5 C5  JMP $C5F5\r\n", 0), trace.Line("C000  4C F5 C5  JMP $C5F5"))
	test.ExpectEquality(t, trace.Normalise("abc\n", 0), trace.Line("abc"))
	test.ExpectEquality(t, trace.Normalise("a\rb\nc", 0), trace.Line("abc"))

	// truncation
	test.ExpectEquality(t, trace.Normalise("abcdef\r\n", 3), trace.Line("abc"))
	test.ExpectEquality(t, trace.Normalise("abc", 3), trace.Line("abc"))
	test.ExpectEquality(t, trace.Normalise("ab", 3), trace.Line("ab"))
	test.ExpectEquality(t, trace.Normalise("", 3), trace.Line(""))

	// truncation is by character not by byte
	test.ExpectEquality(t, trace.Normalise("ééééé", 3), trace.Line("ééé"))
	test.ExpectEquality(t, trace.Normalise("ééé", 3).Len(), 3)

	// the nestest.log format. the PPU and CYC columns start at column 74
	l := "C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7"
	n := trace.Normalise(l, trace.DefaultColumnWidth)
	test.ExpectEquality(t, n.Len(), trace.DefaultColumnWidth)
	test.ExpectEquality(t, n, trace.Line("C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD"))
}

func TestExceptionSet(t *testing.T) {
	var empty trace.ExceptionSet
	test.ExpectFailure(t, empty.IsKnownException(1))
	test.ExpectEquality(t, empty.Len(), 0)
	test.ExpectEquality(t, empty.String(), "")

	set := trace.NewExceptionSet(8981, 5013, 5013, 5143)
	test.ExpectEquality(t, set.Len(), 3)
	test.ExpectSuccess(t, set.IsKnownException(5013))
	test.ExpectSuccess(t, set.IsKnownException(8981))

	// membership is exact. there are no ranges
	test.ExpectFailure(t, set.IsKnownException(5014))
	test.ExpectFailure(t, set.IsKnownException(8982))
	test.ExpectFailure(t, set.IsKnownException(0))

	test.ExpectDeepEquality(t, set.Lines(), []int{5013, 5143, 8981})
	test.ExpectEquality(t, set.String(), "5013,5143,8981")

	u := set.Union(trace.NewExceptionSet(1, 5013))
	test.ExpectDeepEquality(t, u.Lines(), []int{1, 5013, 5143, 8981})

	// the original set is unchanged by the union
	test.ExpectEquality(t, set.Len(), 3)
}

func TestParseExceptions(t *testing.T) {
	set, err := trace.ParseExceptions("5013, 5143,8981")
	test.DemandSuccess(t, err)
	test.ExpectDeepEquality(t, set.Lines(), []int{5013, 5143, 8981})

	set, err = trace.ParseExceptions("")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, set.Len(), 0)

	set, err = trace.ParseExceptions("5013,5175-5180, 8981 - 8981")
	test.DemandSuccess(t, err)
	test.ExpectDeepEquality(t, set.Lines(), []int{5013, 5175, 5176, 5177, 5178, 5179, 5180, 8981})

	// the largest range allowed
	set, err = trace.ParseExceptions(fmt.Sprintf("1-%d", trace.MaxExceptionRange))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, set.Len(), trace.MaxExceptionRange)

	for _, s := range []string{"0", "-1", "5180-5175", "0-3", "1-", "abc", "1,,x",
		fmt.Sprintf("1-%d", trace.MaxExceptionRange+1), "1-2000000000"} {
		_, err = trace.ParseExceptions(s)
		test.ExpectFailure(t, err, s)
		test.ExpectSuccess(t, curated.Is(err, trace.InvalidException), s)
	}
}

func TestMissingPolicy(t *testing.T) {
	for _, p := range []trace.MissingPolicy{trace.MissingIsMismatch, trace.MissingIsTruncation, trace.MissingIsExhaustion} {
		q, err := trace.ParseMissingPolicy(p.String())
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, q, p)
	}

	p, err := trace.ParseMissingPolicy(" TRUNCATION ")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, trace.MissingIsTruncation)

	_, err = trace.ParseMissingPolicy("ignore")
	test.ExpectSuccess(t, curated.Is(err, trace.InvalidMissingPolicy))
}

func TestConfig(t *testing.T) {
	cfg := trace.DefaultConfig()
	test.ExpectEquality(t, cfg.ContextLines, 15)
	test.ExpectEquality(t, cfg.ColumnWidth, 73)
	test.ExpectEquality(t, cfg.Missing, trace.MissingIsMismatch)
	test.ExpectEquality(t, cfg.Exceptions.Len(), 0)
	test.ExpectSuccess(t, cfg.Validate())

	cfg.ContextLines = -1
	test.ExpectSuccess(t, curated.Is(cfg.Validate(), trace.InvalidConfig))

	cfg = trace.DefaultConfig()
	cfg.ColumnWidth = -1
	test.ExpectFailure(t, cfg.Validate())

	cfg = trace.DefaultConfig()
	cfg.Missing = trace.MissingPolicy(99)
	test.ExpectFailure(t, cfg.Validate())
	test.ExpectEquality(t, cfg.Missing.String(), "undefined")
}

func ExampleCompare() {
	expected := trace.FromStrings("AAA", "BBB", "CCC")
	actual := trace.FromStrings("AAA", "BBX", "CCC")

	res := trace.Compare(expected, actual, trace.DefaultConfig())
	fmt.Println(res)
	// Output: divergence at line 2
}
