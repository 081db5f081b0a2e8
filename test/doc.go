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

// Package test contains helper functions that remove common boilerplate from
// the tests in the rest of the project.
//
// The Expect functions report a failed expectation with t.Errorf() and allow
// the test to continue. The Demand functions use t.Fatalf() instead and should
// be used when the rest of the test is meaningless without the value.
//
// Both families treat nil as success. This matches how the error type is
// normally used, nil meaning that no error occurred.
//
// An optional list of tags can be given to all functions. The tags are
// prefixed to the failure message and are useful when testing in a loop.
//
// CompareWriter implements the io.Writer interface and collects output so that
// it can be compared against an expected string.
package test
