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

package modalflag

import (
	"fmt"
	"io"
	"strings"
)

// writeHelp combines the usage message produced by the flag package with the
// list of sub-modes.
func writeHelp(output io.Writer, path string, usage string, subModes []subMode, extra string) {
	lines := strings.Split(strings.TrimRight(usage, "\n"), "\n")
	hasFlags := len(lines) > 1

	if !hasFlags && len(subModes) == 0 && extra == "" {
		if path == "" {
			fmt.Fprintln(output, "No help available")
		} else {
			fmt.Fprintf(output, "No help available for %s\n", path)
		}
		return
	}

	if path == "" {
		fmt.Fprintln(output, "Usage:")
	} else {
		fmt.Fprintf(output, "Usage for %s mode:\n", path)
	}

	for _, l := range lines[1:] {
		fmt.Fprintln(output, l)
	}

	if len(subModes) > 0 {
		if hasFlags {
			fmt.Fprintln(output)
		}

		names := make([]string, len(subModes))
		width := 0
		summaries := false
		for i, m := range subModes {
			names[i] = m.name
			width = max(width, len(m.name))
			summaries = summaries || m.summary != ""
		}

		if summaries {
			fmt.Fprintln(output, "  sub-modes:")
			for _, m := range subModes {
				fmt.Fprintf(output, "    %-*s  %s\n", width, m.name, m.summary)
			}
		} else {
			fmt.Fprintf(output, "  available sub-modes: %s\n", strings.Join(names, ", "))
		}
		fmt.Fprintf(output, "    default: %s\n", subModes[0].name)
	}

	if extra != "" {
		fmt.Fprintln(output)
		fmt.Fprintln(output, extra)
	}
}
