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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with Errorf(), which takes a formatting pattern
// and placeholder values in the same way as fmt.Errorf().
//
// The pattern identifies the error. Patterns that callers need to test for
// should be exported as string constants by the package that creates the
// error. For example, the harness package declares:
//
//	const SubjectError = "subject: %v"
//
// and callers test for it with Is() or Has():
//
//	if curated.Has(err, harness.SubjectError) {
//		...
//	}
//
// Is() only tests the outermost error. Has() searches the chain of curated
// errors found among the placeholder values.
//
// Error() normalises the message so that adjacent duplicate parts are removed.
// Parts are separated by the sub-string ": ". This means that wrapping an
// error with a pattern that has the same prefix does not produce stuttering
// messages such as "subject: subject: exit status 1".
//
// Any error placed among the placeholder values is also reachable through
// Unwrap(), so errors.As() from the standard library can be used to recover
// the underlying error type (an *exec.ExitError for example).
package curated
