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

package database

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samfoo/tracecheck/curated"
)

// Activity is used to specify the type of activity that will be performed
// during the session.
type Activity int

// List of valid Activity values.
const (
	ActivityReading Activity = iota
	ActivityModifying
	ActivityCreating
)

// Session keeps track of a database session.
type Session struct {
	dbfile   *os.File
	activity Activity

	entries map[int]Entry

	entryTypes map[string]Deserialiser
}

// StartSession starts/initialises a new database session. The init function
// is called before the database file is read.
func StartSession(path string, activity Activity, init func(*Session) error) (*Session, error) {
	db := &Session{
		activity:   activity,
		entryTypes: make(map[string]Deserialiser),
	}

	var flags int
	switch activity {
	case ActivityReading:
		flags = os.O_RDONLY
	case ActivityModifying:
		flags = os.O_RDWR
	case ActivityCreating:
		flags = os.O_RDWR | os.O_CREATE
	}

	var err error
	db.dbfile, err = os.OpenFile(path, flags, 0o600)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, curated.Errorf(NotAvailable, path)
		}
		return nil, curated.Errorf(Error, err)
	}

	// closing of db.dbfile requires a call to EndSession()

	if err := init(db); err != nil {
		db.dbfile.Close()
		return nil, curated.Errorf(Error, err)
	}

	if err := db.readDBFile(); err != nil {
		db.dbfile.Close()
		return nil, err
	}

	return db, nil
}

// EndSession closes the database. Changes are written to disk if commitChanges
// is true, unless the session was started with ActivityReading.
func (db *Session) EndSession(commitChanges bool) error {
	if db.dbfile == nil {
		return curated.Errorf(Error, "session has already ended")
	}

	defer func() {
		db.dbfile.Close()
		db.dbfile = nil
	}()

	if !commitChanges || db.activity == ActivityReading {
		return nil
	}

	var s strings.Builder

	for _, key := range db.SortedKeyList() {
		ent := db.entries[key]

		ser, err := ent.Serialise()
		if err != nil {
			return curated.Errorf(Error, err)
		}

		s.WriteString(recordHeader(key, ent.EntryType()))
		for _, f := range ser {
			if strings.Contains(f, fieldSep) || strings.Contains(f, entrySep) {
				return curated.Errorf(InvalidField, key, f)
			}
			s.WriteString(fieldSep)
			s.WriteString(f)
		}
		s.WriteString(entrySep)
	}

	if err := db.dbfile.Truncate(0); err != nil {
		return curated.Errorf(Error, err)
	}
	if _, err := db.dbfile.Seek(0, io.SeekStart); err != nil {
		return curated.Errorf(Error, err)
	}
	if _, err := db.dbfile.WriteString(s.String()); err != nil {
		return curated.Errorf(Error, err)
	}

	return nil
}

func (db *Session) readDBFile() error {
	// clobbers the contents of db.entries
	db.entries = make(map[int]Entry)

	if _, err := db.dbfile.Seek(0, io.SeekStart); err != nil {
		return curated.Errorf(Error, err)
	}

	buffer, err := io.ReadAll(db.dbfile)
	if err != nil {
		return curated.Errorf(Error, err)
	}

	lines := strings.Split(string(buffer), entrySep)

	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
		if len(lines[i]) == 0 {
			continue
		}

		fields := strings.Split(lines[i], fieldSep)
		if len(fields) < numLeaderFields {
			return curated.Errorf(Malformed, i+1, "missing entry type")
		}

		key, err := strconv.Atoi(fields[leaderFieldKey])
		if err != nil {
			return curated.Errorf(Malformed, i+1, "invalid key "+fields[leaderFieldKey])
		}

		if _, ok := db.entries[key]; ok {
			return curated.Errorf(Malformed, i+1, "duplicate key "+fields[leaderFieldKey])
		}

		des, ok := db.entryTypes[fields[leaderFieldID]]
		if !ok {
			return curated.Errorf(Malformed, i+1, "unrecognised entry type "+fields[leaderFieldID])
		}

		ent, err := des(fields[numLeaderFields:])
		if err != nil {
			return curated.Errorf(Malformed, i+1, err)
		}

		db.entries[key] = ent
	}

	return nil
}
