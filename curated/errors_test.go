// This file is part of Beamrace.
//
// Beamrace is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Beamrace is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Beamrace.  If not, see <https://www.gnu.org/licenses/>.

package curated_test

import (
	"errors"
	"io"
	"testing"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/test"
)

const testError = "test error: %s"
const wrapError = "wrap: %v"

func TestIs(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectEquality(t, e.Error(), "test error: foo")
	test.ExpectSuccess(t, curated.Is(e, testError))
	test.ExpectSuccess(t, curated.IsAny(e))

	f := curated.Errorf(wrapError, e)
	test.ExpectEquality(t, f.Error(), "wrap: test error: foo")
	test.ExpectFailure(t, curated.Is(f, testError))
	test.ExpectSuccess(t, curated.Has(f, testError))
	test.ExpectSuccess(t, curated.Has(f, wrapError))

	// plain errors are not curated
	test.ExpectFailure(t, curated.IsAny(io.EOF))
	test.ExpectFailure(t, curated.Is(io.EOF, testError))
	test.ExpectFailure(t, curated.Has(nil, testError))
}

func TestDuplicateParts(t *testing.T) {
	e := curated.Errorf("source: %v", curated.Errorf("source: %v", curated.Errorf("file not found")))
	test.ExpectEquality(t, e.Error(), "source: file not found")

	// parts that are not adjacent are not removed
	e = curated.Errorf("a: b: %v", curated.Errorf("a: c"))
	test.ExpectEquality(t, e.Error(), "a: b: a: c")
}

func TestUnwrap(t *testing.T) {
	e := curated.Errorf("load: %v", io.ErrUnexpectedEOF)
	test.ExpectSuccess(t, errors.Is(e, io.ErrUnexpectedEOF))
	test.ExpectFailure(t, errors.Is(e, io.EOF))
}
