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

// Package regression facilitates the regression testing of emulators against
// their reference traces. Regression entries are stored in a flat file
// database (see the database package) under the resources directory.
//
// A TraceRegression records everything needed to repeat a check: the command
// that runs the subject, the path to the reference trace, the name of the
// trace in the exceptions manifest and the comparison settings. An entry can
// only be added to the database if the check passes at the time it is added.
// A digest of the reference trace is stored with the entry and an entry whose
// reference no longer matches the digest is reported as an error when run.
//
// RegressRun() runs some or all of the entries in the database and prints a
// summary line. The keys of failing entries are remembered between runs and
// the special key FAILS can be used to run them again.
package regression
