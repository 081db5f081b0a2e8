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

package peripherals

// GPIOPort is an 8-bit parallel output port. The output data register (ODR)
// drives the pins directly and so the level written is the level seen by
// whatever is connected to the port. In the case of the video signal that is
// a resistor ladder DAC.
type GPIOPort struct {
	level uint8

	// number of writes to the port
	Writes uint64
}

// Write implements the OutputPort interface.
func (p *GPIOPort) Write(level uint8) {
	p.level = level
	p.Writes++
}

// Level implements the OutputPort interface.
func (p *GPIOPort) Level() uint8 {
	return p.level
}
