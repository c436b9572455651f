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

// Package exceptions reads the manifest of known exceptions. The manifest is a
// YAML document that names each reference trace and lists the one-based line
// numbers at which the subject is allowed to diverge from it. For example:
//
//	version: 1
//	traces:
//	  nestest:
//	    description: nestest.nes automation mode
//	    exceptions:
//	      - line: 5013
//	        reason: unofficial opcode reads $A9A9
//
// Each entry has a reason so that a exception can't be added without anybody
// knowing why it's there.
//
// The Default() manifest is embedded in the binary and carries the exceptions
// for the nestest reference trace.
package exceptions
