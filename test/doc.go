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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect*() functions report a test error and allow the test to continue.
// The Demand*() functions are fatal to the test and should be used when later
// parts of the test depend on the value being correct.
//
// It is worth describing how success and failure are interpreted because it
// is not obvious for every type:
//
//	bool -> true is success
//	error -> nil is success
//	nil -> success
//
// Any other type is unsupported and causes the test to fail.
//
// The optional tags arguments are prepended to any failure message and are
// useful for identifying which iteration of a loop failed.
//
// The CompareWriter type implements the io.Writer interface and should be used
// to capture output. The Compare() function can then be used to test for
// equality.
package test
