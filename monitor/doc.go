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

// Package monitor is the receiving end of the video signal. It plays the part
// of a display: it finds the sync pulses, measures the timing of the signal
// and decodes the pixel levels into frames.
//
// A real display locks onto whatever it is given and only complains if it
// can not. The Monitor is stricter. Every measurement is in master clock
// ticks and is reported exactly, so that a signal that is one tick out is
// noticed. The Compare() function of the Measurements type lists every way in
// which the signal differs from a timing profile.
//
// Decoded frames are passed to any number of Renderer implementations. For
// example the digest package and the viewers in the gui package.
package monitor
