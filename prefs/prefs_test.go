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

package prefs_test

import (
	"testing"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/prefs"
	"github.com/beamrace/beamrace/test"
)

func TestBool(t *testing.T) {
	var b prefs.Bool
	test.ExpectEquality(t, b.String(), "false")
	test.ExpectSuccess(t, b.Set(true))
	test.ExpectEquality(t, b.Get().(bool), true)
	test.ExpectSuccess(t, b.Set("FALSE"))
	test.ExpectEquality(t, b.Get().(bool), false)
	test.ExpectSuccess(t, b.Set("true"))
	test.ExpectEquality(t, b.String(), "true")

	err := b.Set(10)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, prefs.WrongType))
}

func TestInt(t *testing.T) {
	var i prefs.Int
	test.ExpectSuccess(t, i.Set(36))
	test.ExpectEquality(t, i.Get().(int), 36)
	test.ExpectSuccess(t, i.Set(" 12 "))
	test.ExpectEquality(t, i.String(), "12")
	test.ExpectFailure(t, i.Set("twelve"))

	i.SetRange(0, 100)
	test.ExpectSuccess(t, i.Set(1000))
	test.ExpectEquality(t, i.Get().(int), 100)
	test.ExpectSuccess(t, i.Set(-5))
	test.ExpectEquality(t, i.Get().(int), 0)
}

func TestHooks(t *testing.T) {
	var s prefs.String
	var post string
	s.SetHookPost(func(v prefs.Value) error {
		post = v.(string)
		return nil
	})
	test.ExpectSuccess(t, s.Set("sdl"))
	test.ExpectEquality(t, post, "sdl")

	// a failing pre hook stops the value from being stored
	s.SetHookPre(func(v prefs.Value) error {
		return curated.Errorf("refused")
	})
	test.ExpectFailure(t, s.Set("term"))
	test.ExpectEquality(t, s.String(), "sdl")
}

func TestCommandLineGroup(t *testing.T) {
	g := prefs.NewGroup()
	var latency prefs.Int
	var name prefs.String
	test.ExpectSuccess(t, g.Add("hardware.latency", &latency))
	test.ExpectSuccess(t, g.Add("hardware.name", &name))
	test.ExpectFailure(t, g.Add("hardware.name", &name))

	prefs.PushCommandLineStack("hardware.latency::40; hardware.name:: test ; unused::1")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 1)
	test.ExpectSuccess(t, g.ApplyCommandLine())
	test.ExpectEquality(t, latency.Get().(int), 40)
	test.ExpectEquality(t, name.String(), "test")

	test.ExpectEquality(t, prefs.PopCommandLineStack(), "unused::1")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)

	tw := &test.CompareWriter{}
	g.Write(tw)
	test.ExpectSuccess(t, tw.Compare("hardware.latency :: 40\nhardware.name :: test\n"))
}
