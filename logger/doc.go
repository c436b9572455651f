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

// Package logger is the central log for the application. Entries are kept in
// memory, up to a maximum number, and can be written out on demand or echoed
// to an io.Writer as they are made.
//
// Log entries are made up of a tag and a detail:
//
//	logger.Log(logger.Allow, "harness", "reference trace loaded")
//
// Identical adjacent entries are collapsed into one entry with a repeat
// count.
//
// Permission implementations decide whether an entry is actually made. The
// Allow value always allows logging. Types can implement AllowLogging() to
// suppress entries in contexts where logging would be noise.
package logger
