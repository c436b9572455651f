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

// Package database is a very simple way of storing structured entries of
// arbitrary type. It is as simple as it can be but is still useful for
// organising what is essentially a flat file.
//
// Use of a database requires a "session", started with StartSession() and
// ended with EndSession(). For example (error handling removed for clarity):
//
//	db, _ := database.StartSession(dbPath, database.ActivityCreating, initSession)
//	defer db.EndSession(true)
//
// The second argument is the type of activity that will happen during the
// session. ActivityCreating creates the database file if it does not already
// exist and is otherwise the same as ActivityModifying. Changes made during an
// ActivityReading session are never written to disk.
//
// The third argument is the initialisation function. It is called before the
// database file is read and tells the session which entry types to expect:
//
//	func initSession(db *database.Session) error {
//		return db.RegisterEntryType("trace", deserialiseTrace)
//	}
//
// The deserialiser receives the fields of the entry, numbered from zero, and
// returns a value that implements the Entry interface. An error from a
// deserialiser causes StartSession() to fail.
//
// On disk, each entry is a single line of comma separated fields. The first
// two fields are the key and the entry type. Entry fields cannot contain
// commas or newlines.
package database
