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
	"errors"
	"flag"
	"io"
	"strings"
	"time"
)

// the separator used when printing the path of selected modes
const pathSeparator = "/"

type subMode struct {
	name    string
	summary string
}

// Modes handles the command line in layers. Output should be set before
// Parse() is called or help messages will not be seen.
type Modes struct {
	Output io.Writer

	// flags for the current layer. recreated by NewMode()
	flags *flag.FlagSet

	// all arguments and the index of the first argument of the current layer
	args []string
	next int

	// sub-modes of the current layer. the first is the default
	subModes []subMode

	// the sub-modes selected by every Parse() so far
	path []string

	parsed    bool
	extraHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the most recently selected sub-mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every sub-mode selected so far.
func (md *Modes) Path() string {
	return strings.Join(md.path, pathSeparator)
}

// NewArgs sets the arguments to be parsed and starts a new layer.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.next = 0
	md.path = md.path[:0]
	md.NewMode()
}

// NewMode starts a new layer. Flags and sub-modes from the previous layer are
// forgotten.
func (md *Modes) NewMode() {
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.subModes = md.subModes[:0]
	md.parsed = false
	md.extraHelp = ""
}

// AdditionalHelp is printed after the flags and sub-modes in the help message
// of the current layer.
func (md *Modes) AdditionalHelp(help string) {
	md.extraHelp = help
}

// Parsed returns true if Parse() has been called for the current layer. It is
// true even if Parse() failed.
func (md *Modes) Parsed() bool {
	return md.parsed
}

// ParseResult is returned by Parse().
type ParseResult int

// List of valid ParseResult values.
const (
	// parsing succeeded. if sub-modes were added then Mode() is the selected
	// sub-mode
	ParseContinue ParseResult = iota

	// the help message has been printed. the program should normally end
	// without printing anything else
	ParseHelp

	// the error is returned with the result
	ParseError
)

// Parse the current layer of arguments.
//
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return nil
//	case modalflag.ParseError:
//		return err
//	}
func (md *Modes) Parse() (ParseResult, error) {
	md.parsed = true

	usage := &strings.Builder{}
	md.flags.SetOutput(usage)

	err := md.flags.Parse(md.args[md.next:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			if md.Output != nil {
				writeHelp(md.Output, md.Path(), usage.String(), md.subModes, md.extraHelp)
			}
			return ParseHelp, nil
		}

		// an unrecognised flag is not an error if there is a default
		// sub-mode. the flag is for a later layer
		if len(md.subModes) == 0 {
			return ParseError, err
		}
		md.path = append(md.path, md.subModes[0].name)
		return ParseContinue, nil
	}

	if len(md.subModes) == 0 {
		return ParseContinue, nil
	}

	// arguments are consumed by the flag set. the index of the next layer
	// starts after them
	md.next = len(md.args) - md.flags.NArg()

	selected := md.subModes[0].name
	arg := strings.ToUpper(md.flags.Arg(0))
	for _, m := range md.subModes {
		if m.name == arg {
			selected = m.name
			md.next++
			break // for loop
		}
	}
	md.path = append(md.path, selected)

	return ParseContinue, nil
}

// RemainingArgs returns the arguments after the flags and the sub-mode of the
// current layer.
func (md *Modes) RemainingArgs() []string {
	if len(md.subModes) > 0 && md.next <= len(md.args) {
		return md.args[md.next:]
	}
	return md.flags.Args()
}

// GetArg returns one of RemainingArgs(). Returns the empty string if there is
// no such argument.
func (md *Modes) GetArg(i int) string {
	r := md.RemainingArgs()
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// AddSubModes adds sub-modes without a summary. The first sub-mode added to a
// layer is the default.
func (md *Modes) AddSubModes(names ...string) {
	for _, n := range names {
		md.AddSubMode(n, "")
	}
}

// AddSubMode adds a sub-mode with a one line summary for the help message.
func (md *Modes) AddSubMode(name string, summary string) {
	md.subModes = append(md.subModes, subMode{
		name:    strings.ToUpper(name),
		summary: summary,
	})
}

// AddDefaultSubMode adds a sub-mode at the front of the list, making it the
// default.
func (md *Modes) AddDefaultSubMode(name string) {
	md.subModes = append([]subMode{{name: strings.ToUpper(name)}}, md.subModes...)
}

// AddBool flag for the current layer.
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddDuration flag for the current layer.
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.flags.Duration(name, value, usage)
}

// AddFloat64 flag for the current layer.
func (md *Modes) AddFloat64(name string, value float64, usage string) *float64 {
	return md.flags.Float64(name, value, usage)
}

// AddInt flag for the current layer.
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for the current layer.
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// Visit calls fn for every flag that was set on the command line, in
// lexicographical order.
func (md *Modes) Visit(fn func(flag string)) {
	md.flags.Visit(func(f *flag.Flag) {
		fn(f.Name)
	})
}
