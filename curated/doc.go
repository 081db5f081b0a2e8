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

// Package curated is a helper package for the plain Go error type. Curated
// errors are created with the Errorf() function, which takes a pattern and
// placeholder values in the same way as fmt.Errorf().
//
// The pattern identifies the error. Is() checks the outermost pattern and
// Has() checks the whole chain:
//
//	e := curated.Errorf("profile: %s", "axis total mismatch")
//	f := curated.Errorf("board: %v", e)
//
//	curated.Is(f, "board: %v")     // true
//	curated.Is(f, "profile: %s")   // false
//	curated.Has(f, "profile: %s")  // true
//
// IsAny() answers whether an error was created by curated.Errorf() at all. We
// think of curated errors as expected errors and other errors as unexpected.
//
// The Error() implementation normalises the message chain by removing
// duplicate adjacent parts, where parts are separated by ": ". This means that
// wrapping an error with the same prefix twice does not produce a stuttering
// message:
//
//	e := curated.Errorf("source: %v", curated.Errorf("source: file not found"))
//	e.Error() // "source: file not found"
//
// Sentinel patterns are stored as named constants in the packages that
// return them.
//
// Curated errors also support errors.Unwrap() so that a wrapped error value,
// curated or not, can be found with errors.Is() and errors.As().
package curated
