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
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/samfoo/tracecheck/curated"
	"github.com/samfoo/tracecheck/resources"
)

func saveFails(keys []string) error {
	slices.Sort(keys)
	keys = slices.Compact(keys)

	p, err := resources.JoinPath(regressionPath, fails)
	if err != nil {
		return curated.Errorf(FailsError, "save", err)
	}

	f, err := os.Create(p)
	if err != nil {
		return curated.Errorf(FailsError, "save", err)
	}
	defer func() {
		_ = f.Close()
	}()

	for _, v := range keys {
		if _, err := fmt.Fprintf(f, "%s\n", v); err != nil {
			return curated.Errorf(FailsError, "save", err)
		}
	}

	return nil
}

func loadFails() ([]string, error) {
	p, err := resources.JoinPath(regressionPath, fails)
	if err != nil {
		return []string{}, curated.Errorf(FailsError, "load", err)
	}

	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return []string{}, curated.Errorf(FailsError, "load", err)
	}
	defer func() {
		_ = f.Close()
	}()

	b, err := io.ReadAll(f)
	if err != nil {
		return []string{}, curated.Errorf(FailsError, "load", err)
	}

	keys := strings.Split(string(b), "\n")
	keys = slices.DeleteFunc(keys, func(s string) bool {
		return len(strings.TrimSpace(s)) == 0
	})

	slices.Sort(keys)
	keys = slices.Compact(keys)

	return keys, nil
}

// replaces the FAILS key with the keys of the entries that failed in the
// previous run
func addFailsToKeys(keys []string) ([]string, error) {
	n := slices.IndexFunc(keys, func(s string) bool {
		return strings.ToUpper(s) == "FAILS"
	})
	if n < 0 {
		return keys, nil
	}

	keys = slices.Delete(slices.Clone(keys), n, n+1)

	prevFails, err := loadFails()
	if err != nil {
		return keys, err
	}

	if len(prevFails) == 0 {
		return keys, curated.Errorf(NoFails)
	}

	return append(keys, prevFails...), nil
}
