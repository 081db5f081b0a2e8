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

// Package digest contains implementations of monitor.Renderer and
// signal.Sink such that a cryptographic hash is produced. The hash can then be
// used to compare output from subsequent runs. If a new hash differs from a
// previously recorded value then something has changed.
//
// The Video type hashes the decoded frames and is not affected by changes to
// the signal that do not change the picture. The Signal type hashes every
// sample of the signal and so is affected by any change at all, including a
// change to the timing of the blanking regions.
package digest

// Digest implementations should return a cryptographic hash in response to a
// Hash() request.
type Digest interface {
	Hash() string
	ResetDigest()
}
