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

// Package version reports the version of the program, either from the number
// set by the linker or from the build information embedded by the Go
// toolchain.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the program.
const ApplicationName = "Beamrace"

// set with -ldflags "-X github.com/beamrace/beamrace/version.number=v1.0.0"
var number string

// Info describes the build of the program.
type Info struct {
	// the version number. "unreleased" if the program was built from a
	// repository without a version number and "local" if there is no
	// repository information at all
	Number string

	// the vcs revision suffixed with "+dirty" if the working tree had
	// uncommitted changes. empty if not known
	Revision string

	// the go version used to build the program
	GoVersion string
}

// Release is true if the build has a version number.
func (i Info) Release() bool {
	return number != "" && i.Number == number
}

func (i Info) String() string {
	if i.Release() || i.Revision == "" {
		return fmt.Sprintf("%s %s (%s)", ApplicationName, i.Number, i.GoVersion)
	}
	return fmt.Sprintf("%s %s %s (%s)", ApplicationName, i.Number, i.Revision, i.GoVersion)
}

var info Info

// Get returns information about the build.
func Get() Info {
	return info
}

func init() {
	info = fromBuildInfo(debug.ReadBuildInfo())
}

func fromBuildInfo(bi *debug.BuildInfo, ok bool) Info {
	var i Info
	var vcs bool
	var modified bool

	if ok {
		i.GoVersion = bi.GoVersion
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				i.Revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
	}

	if i.Revision != "" && modified {
		i.Revision = fmt.Sprintf("%s+dirty", i.Revision)
	}

	switch {
	case number != "":
		i.Number = number
	case vcs:
		i.Number = "unreleased"
	default:
		i.Number = "local"
	}

	return i
}
