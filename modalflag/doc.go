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

// Package modalflag wraps the flag package of the standard library so that a
// program can have modes, each with its own set of flags. The beamrace command
// uses it to select between running the board, viewing the signal, converting
// images and listing the timing profiles.
//
// Arguments are given once with NewArgs() and then parsed a layer at a time.
// Each layer starts with NewMode(), adds the flags and sub-modes that are
// valid for that layer, and then calls Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.NewMode()
//	md.AddSubModes("RUN", "VIEW")
//	p, err := md.Parse()
//
// After a successful Parse() the Mode() function says which sub-mode was
// selected. Sub-mode names are not case sensitive. If the first argument
// after the flags is not a sub-mode then the first sub-mode added is used and
// the argument is left for the next layer.
//
// The next layer is parsed in the same way. The flags for the RUN mode, for
// example:
//
//	md.NewMode()
//	frames := md.AddInt("frames", 0, "number of frames to run")
//	p, err := md.Parse()
//
// Arguments that are neither flags nor sub-modes are available with
// RemainingArgs() and GetArg().
//
// The -help flag is handled by Parse() at every layer. The help message lists
// the flags and the sub-modes of the layer, with the summary of each sub-mode
// if one was given with AddSubMode().
package modalflag
