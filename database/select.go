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

import "github.com/samfoo/tracecheck/curated"

// SelectAll entries in the database. onSelect can be nil.
//
// The select process stops if onSelect returns an error. The entry that was
// being processed is returned with the error. An empty database is not an
// error and the returned entry will be nil.
func (db Session) SelectAll(onSelect func(int, Entry) error) (Entry, error) {
	if db.NumEntries() == 0 {
		return nil, nil
	}
	return db.SelectKeys(onSelect)
}

// SelectKeys matches entries with the specified key(s). If the list of keys is
// empty then all entries are matched. onSelect can be nil.
//
// The select process stops if onSelect returns an error. The entry that was
// being processed is returned with the error.
//
// Returns the last matched entry in the selection.
func (db Session) SelectKeys(onSelect func(int, Entry) error, keys ...int) (Entry, error) {
	var entry Entry

	if onSelect == nil {
		onSelect = func(_ int, _ Entry) error { return nil }
	}

	keyList := keys
	if len(keys) == 0 {
		keyList = db.SortedKeyList()
	}

	for _, key := range keyList {
		var ok bool
		entry, ok = db.entries[key]
		if !ok {
			return nil, curated.Errorf(KeyNotAvailable, key)
		}
		if err := onSelect(key, entry); err != nil {
			return entry, err
		}
	}

	if entry == nil {
		return nil, curated.Errorf(SelectEmpty)
	}

	return entry, nil
}
