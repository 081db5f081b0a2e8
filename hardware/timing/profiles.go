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

package timing

import (
	"sort"
	"strings"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/hardware/clocks"
)

// Sentinel error returned by Lookup().
const UnknownProfile = "timing: unknown profile (%s)"

// SVGA800x600 is the reference profile. VESA 800x600 at 60Hz from a 40MHz
// pixel clock, shown as an 80x60 frame buffer.
var SVGA800x600 Profile

// VGA640x480 is the industry standard 640x480 at 60Hz from a 25.175MHz pixel
// clock, shown as an 80x60 frame buffer.
var VGA640x480 Profile

// Default is the profile used when none is specified.
var Default Profile

var profiles map[string]Profile

func mustProfile(p Profile, err error) Profile {
	if err != nil {
		panic(err)
	}
	return p
}

func init() {
	SVGA800x600 = mustProfile(NewProfile("SVGA800x600", clocks.SVGA,
		Axis{Visible: 800, FrontPorch: 40, Sync: 128, BackPorch: 88, Total: 1056, Polarity: Positive},
		Axis{Visible: 600, FrontPorch: 1, Sync: 4, BackPorch: 23, Total: 628, Polarity: Positive},
		80, 60, 10))

	VGA640x480 = mustProfile(NewProfile("VGA640x480", clocks.VGA,
		Axis{Visible: 640, FrontPorch: 16, Sync: 96, BackPorch: 48, Total: 800, Polarity: Negative},
		Axis{Visible: 480, FrontPorch: 10, Sync: 2, BackPorch: 33, Total: 525, Polarity: Negative},
		80, 60, 8))

	Default = SVGA800x600

	profiles = map[string]Profile{
		SVGA800x600.ID: SVGA800x600,
		VGA640x480.ID:  VGA640x480,
	}
}

// Lookup returns the named profile. Case insensitive.
func Lookup(id string) (Profile, error) {
	for k, p := range profiles {
		if strings.EqualFold(k, id) {
			return p, nil
		}
	}
	return Profile{}, curated.Errorf(UnknownProfile, id)
}

// List returns the IDs of all build-time profiles in alphabetical order.
func List() []string {
	l := make([]string, 0, len(profiles))
	for k := range profiles {
		l = append(l, k)
	}
	sort.Strings(l)
	return l
}
