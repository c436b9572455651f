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
	"fmt"
	"io"
	"slices"

	"github.com/samfoo/tracecheck/curated"
)

// Sentinal error patterns returned by functions in this package.
const (
	Error              = "database: %v"
	NotAvailable       = "database: not available (%s)"
	Malformed          = "database: line %d: %v"
	InvalidField       = "database: entry %d: invalid field (%s)"
	DuplicateEntryType = "database: duplicate entry type (%s)"
	KeyNotAvailable    = "database: key not available (%d)"
	MaximumEntries     = "database: maximum entries exceeded (max %d)"
	SelectEmpty        = "database: select empty"
)

// arbitrary maximum number of entries.
const maxEntries = 1000

const fieldSep = ","
const entrySep = "\n"

const (
	leaderFieldKey int = iota
	leaderFieldID
	numLeaderFields
)

func recordHeader(key int, id string) string {
	return fmt.Sprintf("%03d%s%s", key, fieldSep, id)
}

// NumEntries returns the number of entries in the database.
func (db Session) NumEntries() int {
	return len(db.entries)
}

// SortedKeyList returns a sorted list of database keys.
func (db Session) SortedKeyList() []int {
	keyList := make([]int, 0, len(db.entries))
	for k := range db.entries {
		keyList = append(keyList, k)
	}
	slices.Sort(keyList)
	return keyList
}

// List the entries in key order.
func (db Session) List(output io.Writer) error {
	if db.NumEntries() == 0 {
		_, err := io.WriteString(output, "database is empty\n")
		return err
	}

	for _, key := range db.SortedKeyList() {
		if _, err := fmt.Fprintf(output, "%03d %s\n", key, db.entries[key]); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(output, "Total: %d\n", db.NumEntries())
	return err
}

// Add an entry to the database. The entry is given the lowest unused key,
// which is returned.
func (db *Session) Add(ent Entry) (int, error) {
	var key int

	// find spare key
	for key = 0; key < maxEntries; key++ {
		if _, ok := db.entries[key]; !ok {
			break
		}
	}

	if key == maxEntries {
		return 0, curated.Errorf(MaximumEntries, maxEntries)
	}

	db.entries[key] = ent

	return key, nil
}

// Get returns the entry with the specified key.
func (db Session) Get(key int) (Entry, error) {
	ent, ok := db.entries[key]
	if !ok {
		return nil, curated.Errorf(KeyNotAvailable, key)
	}
	return ent, nil
}

// Delete deletes the entry with the specified key.
func (db *Session) Delete(key int) error {
	ent, ok := db.entries[key]
	if !ok {
		return curated.Errorf(KeyNotAvailable, key)
	}

	if err := ent.CleanUp(); err != nil {
		return curated.Errorf(Error, err)
	}

	delete(db.entries, key)

	return nil
}
