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

package curated_test

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/samfoo/tracecheck/curated"
	"github.com/samfoo/tracecheck/test"
)

const testError = "test error: %s"
const testErrorB = "test error B: %s"
const wrapError = "wrapped: %v"

func TestDuplicateErrors(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectEquality(t, e.Error(), "test error: foo")

	// packing errors of the same type next to each other causes
	// one of them to be dropped
	f := curated.Errorf(testError, e)
	test.ExpectEquality(t, f.Error(), "test error: foo")

	// the dropped part may be anywhere in the chain
	g := curated.Errorf("subject: %v", curated.Errorf("subject: %v", errors.New("exit status 1")))
	test.ExpectEquality(t, g.Error(), "subject: exit status 1")
}

func TestIs(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectSuccess(t, curated.Is(e, testError))
	test.ExpectFailure(t, curated.Is(e, testErrorB))

	// Has() should fail because we haven't included testErrorB anywhere in the chain
	test.ExpectFailure(t, curated.Has(e, testErrorB))

	// packing errors of a different type next to each other
	f := curated.Errorf(testErrorB, e)
	test.ExpectFailure(t, curated.Is(f, testError))
	test.ExpectSuccess(t, curated.Is(f, testErrorB))
	test.ExpectSuccess(t, curated.Has(f, testError))
	test.ExpectSuccess(t, curated.Has(f, testErrorB))

	test.ExpectFailure(t, curated.IsAny(nil))
	test.ExpectFailure(t, curated.IsAny(errors.New("plain")))
	test.ExpectFailure(t, curated.Has(nil, testError))
}

func TestUnwrap(t *testing.T) {
	ee := &exec.ExitError{}
	e := curated.Errorf(wrapError, ee)

	var target *exec.ExitError
	test.ExpectSuccess(t, errors.As(e, &target))
	test.ExpectEquality(t, target, ee)

	// plain values are not errors and so are not unwrapped
	e = curated.Errorf(testError, "foo")
	test.ExpectFailure(t, errors.As(e, &target))
}
