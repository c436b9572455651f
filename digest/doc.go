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

// Package digest creates SHA-1 digests of traces. A digest is a short way of
// recording the content of a trace so that it can be checked later whether
// the trace has changed. The regression package uses it to detect changes to
// a reference trace after a regression entry has been added.
//
// Note that the use of SHA-1 is fine for this application because this is not
// a cryptographic task.
package digest
