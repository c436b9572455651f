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

package regression

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/samfoo/tracecheck/ansi"
	"github.com/samfoo/tracecheck/curated"
	"github.com/samfoo/tracecheck/database"
	"github.com/samfoo/tracecheck/resources"
)

// Sentinal error patterns returned by functions in this package.
const (
	Error      = "regression: %v"
	InvalidKey = "regression: invalid key (%s)"
	NotPassing = "regression: cannot add a failing entry: %s"
	NoFails    = "regression: no previous fails"
	FailsError = "regression: %s fails: %v"

	ReferenceChanged = "regression: reference trace has changed since the entry was added (%s)"
)

// the location of the regression database and the list of failed keys,
// relative to the resources base path
const (
	regressionPath   = "regression"
	regressionDBFile = "db"
	fails            = "fails"
)

// Regressor represents the generic entry in the regression database.
type Regressor interface {
	database.Entry

	// perform the regression test for the regression type. the newEntry flag
	// is true when the entry is being added to the database
	//
	// the returned string is a description of the failure and is only used if
	// the result is false and the error is nil
	regress(ctx context.Context, newEntry bool) (bool, string, error)
}

// when starting a database session we need to register what entries we will
// find in the database
func initDBSession(db *database.Session) error {
	return db.RegisterEntryType(traceEntryType, deserialiseTraceEntry)
}

func startSession(activity database.Activity) (*database.Session, error) {
	dbPth, err := resources.JoinPath(regressionPath, regressionDBFile)
	if err != nil {
		return nil, curated.Errorf(Error, err)
	}

	db, err := database.StartSession(dbPth, activity, initDBSession)
	if err != nil {
		return nil, curated.Errorf(Error, err)
	}

	return db, nil
}

// RegressList displays all entries in the database.
func RegressList(output io.Writer) error {
	if output == nil {
		panic("RegressList(): io.Writer should not be nil (use a nopWriter)")
	}

	db, err := startSession(database.ActivityCreating)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressDelete removes an entry from the regression database. The user is
// asked for confirmation before the entry is deleted.
func RegressDelete(output io.Writer, confirmation io.Reader, key string) error {
	if output == nil {
		panic("RegressDelete(): io.Writer should not be nil (use a nopWriter)")
	}

	v, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return curated.Errorf(InvalidKey, key)
	}

	db, err := startSession(database.ActivityModifying)
	if err != nil {
		return err
	}

	ent, err := db.Get(v)
	if err != nil {
		db.EndSession(false)
		return curated.Errorf(Error, err)
	}

	fmt.Fprintf(output, "%s\ndelete? (y/n): ", ent)

	confirm, err := bufio.NewReader(confirmation).ReadString('\n')
	if err != nil && err != io.EOF {
		db.EndSession(false)
		return curated.Errorf(Error, err)
	}

	confirm = strings.TrimSpace(confirm)
	if len(confirm) == 0 || (confirm[0] != 'y' && confirm[0] != 'Y') {
		return db.EndSession(false)
	}

	if err := db.Delete(v); err != nil {
		db.EndSession(false)
		return curated.Errorf(Error, err)
	}

	if err := db.EndSession(true); err != nil {
		return curated.Errorf(Error, err)
	}

	fmt.Fprintf(output, "deleted test #%03d from regression database\n", v)

	return nil
}

// RegressAdd adds a new regression entry to the database. The entry is run
// before it is added and only entries that pass are added.
func RegressAdd(ctx context.Context, output io.Writer, reg Regressor) error {
	if output == nil {
		panic("RegressAdd(): io.Writer should not be nil (use a nopWriter)")
	}

	db, err := startSession(database.ActivityCreating)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "adding: %s", reg)

	ok, report, err := reg.regress(ctx, true)

	io.WriteString(output, ansi.ClearLine)

	if err != nil {
		db.EndSession(false)
		io.WriteString(output, "\r")
		return err
	}
	if !ok {
		db.EndSession(false)
		fmt.Fprintf(output, "\rfailure: %s\n%s", reg, report)
		return curated.Errorf(NotPassing, reg)
	}

	key, err := db.Add(reg)
	if err != nil {
		db.EndSession(false)
		return curated.Errorf(Error, err)
	}

	if err := db.EndSession(true); err != nil {
		return curated.Errorf(Error, err)
	}

	fmt.Fprintf(output, "\radded: %03d %s\n", key, reg)

	return nil
}

// RegressRun runs the tests in the regression database. The filterKeys list
// specifies which entries to test. An empty list means that every entry
// should be tested. The key FAILS selects the entries that failed in the
// previous run.
//
// The error return value is for problems with the database. Failing entries
// are reported to the output and are not errors.
func RegressRun(ctx context.Context, output io.Writer, verbose bool, filterKeys []string) error {
	if output == nil {
		panic("RegressRun(): io.Writer should not be nil (use a nopWriter)")
	}

	filterKeys, err := addFailsToKeys(filterKeys)
	if err != nil {
		return err
	}

	keys := make([]int, 0, len(filterKeys))
	for _, k := range filterKeys {
		v, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return curated.Errorf(InvalidKey, k)
		}
		keys = append(keys, v)
	}
	slices.Sort(keys)
	keys = slices.Compact(keys)

	db, err := startSession(database.ActivityCreating)
	if err != nil {
		return err
	}
	defer db.EndSession(false)

	if db.NumEntries() == 0 {
		_, err := io.WriteString(output, "regression database is empty\n")
		return err
	}

	numSucceed := 0
	numFail := 0
	numError := 0
	numSkipped := 0
	if len(keys) > 0 {
		numSkipped = db.NumEntries() - len(keys)
	}

	var failed []string

	onSelect := func(key int, ent database.Entry) error {
		// database entry should also satisfy Regressor interface
		reg, ok := ent.(Regressor)
		if !ok {
			panic("database entry does not satisfy Regressor interface")
		}

		// message does not have a trailing newline. it is replaced by the
		// completion message once regress() returns
		fmt.Fprintf(output, "running: %s", reg)

		ok, report, err := reg.regress(ctx, false)

		io.WriteString(output, ansi.ClearLine)

		switch {
		case err != nil:
			numError++
			failed = append(failed, strconv.Itoa(key))
			fmt.Fprintf(output, "\r ERROR: %03d %s\n", key, reg)
			if verbose {
				fmt.Fprintf(output, "%v\n", err)
			}
		case !ok:
			numFail++
			failed = append(failed, strconv.Itoa(key))
			fmt.Fprintf(output, "\rfailure: %03d %s\n", key, reg)
			if verbose {
				io.WriteString(output, report)
			}
		default:
			numSucceed++
			fmt.Fprintf(output, "\rsucceed: %03d %s\n", key, reg)
		}

		// stop if the context has been cancelled. the error is reported once
		// the summary line has been written
		return ctx.Err()
	}

	_, selErr := db.SelectKeys(onSelect, keys...)

	summary := fmt.Sprintf("regression tests: %d succeed, %d fail, %d skipped", numSucceed, numFail, numSkipped)
	if numError > 0 {
		summary = fmt.Sprintf("%s [with errors]", summary)
	}
	fmt.Fprintln(output, summary)

	if selErr != nil {
		return curated.Errorf(Error, selErr)
	}

	return saveFails(failed)
}
