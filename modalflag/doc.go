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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Arguments are given with NewArgs() and then parsed with Parse(). Sub-modes
// are added before the call to Parse() with AddSubModes(). The first sub-mode
// is the default and is selected if the first argument after the flags is not
// the name of a sub-mode. For example:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("CHECK", "REGRESS", "VERSION")
//	if p, _ := md.Parse(); p != modalflag.ParseContinue {
//		return
//	}
//
//	switch md.Mode() {
//	case "REGRESS":
//		md.NewMode()
//		md.AddSubModes("RUN", "LIST")
//		...
//	}
//
// A call to NewMode() starts a new set of flags for the mode that has been
// selected. Parsing continues from the first argument after the mode selector,
// or from the beginning of the arguments if the default mode was selected.
//
// Sub-mode comparisons are case insensitive. Mode() returns the selected mode
// in upper case.
package modalflag
