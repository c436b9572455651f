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

// Package trace compares an actual execution trace against a golden reference
// trace and reports the first unexplained divergence.
//
// A Trace is an ordered sequence of Lines. Lines are compared pairwise at the
// same index; there is no attempt to realign the traces after an inserted or
// deleted line. Comparison stops when the expected trace is exhausted, so any
// extra lines at the end of the actual trace are never looked at.
//
// Some divergences are known about and are not regressions. Those are listed
// by one-based line number in an ExceptionSet and are skipped over as though
// the lines had matched.
//
// The first divergence that is not in the ExceptionSet halts the comparison.
// The Reporter prints it alongside the lines of the actual trace leading up to
// it, with the differing characters highlighted:
//
//	                C72E  A0 00     LDY #$00                        A:00 X:00 Y:00 P:26 SP:FB
//	4     expected: C730  60        RTS                             A:00 X:00 Y:00 P:26 SP:FB
//	4     actual  : C730  60        RTS                             A:00 X:00 Y:00 P:24 SP:FB
//
// What happens when the actual trace runs out before the expected trace does
// is decided by the MissingPolicy in the Config.
package trace
