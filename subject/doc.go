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

// Package subject runs the program under test and collects its trace. The
// subject writes one line to stdout for every execution step. Everything the
// subject writes to stdout is collected before comparison begins.
//
// The Command type runs an external executable. The Output and File types
// provide a trace that has already been produced, which is useful for testing
// and for comparing two files.
package subject
