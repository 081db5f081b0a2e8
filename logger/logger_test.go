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

package logger_test

import (
	"fmt"
	"testing"

	"github.com/beamrace/beamrace/logger"
	"github.com/beamrace/beamrace/test"
)

func TestLogger(t *testing.T) {
	log := logger.NewLogger(100)
	tw := &test.CompareWriter{}

	log.Write(tw)
	test.ExpectSuccess(t, tw.Compare(""))

	log.Log(logger.Allow, "test", "this is a test")
	log.Write(tw)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\n"))

	// clear the writer before continuing, makes comparisons easier to manage
	tw.Clear()

	log.Log(logger.Allow, "test2", "this is another test")
	log.Write(tw)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\ntest2: this is another test\n"))

	// asking for too many entries in a Tail() should be okay
	tw.Clear()
	log.Tail(tw, 100)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\ntest2: this is another test\n"))

	// asking for fewer entries is okay too
	tw.Clear()
	log.Tail(tw, 1)
	test.ExpectSuccess(t, tw.Compare("test2: this is another test\n"))

	// and no entries
	tw.Clear()
	log.Tail(tw, 0)
	test.ExpectSuccess(t, tw.Compare(""))
}

func TestRepeatedEntries(t *testing.T) {
	log := logger.NewLogger(100)
	tw := &test.CompareWriter{}

	log.Log(logger.Allow, "scanout", "skew")
	log.Log(logger.Allow, "scanout", "skew")
	log.Log(logger.Allow, "scanout", "skew")
	log.Write(tw)
	test.ExpectSuccess(t, tw.Compare("scanout: skew (repeat x3)\n"))
	test.ExpectEquality(t, log.Len(), 1)

	// newlines are removed from entries
	tw.Clear()
	log.Clear()
	log.Log(logger.Allow, "tag\n", "detail\nmore")
	log.Write(tw)
	test.ExpectSuccess(t, tw.Compare("tag: detailmore\n"))
}

type deny struct{}

func (deny) AllowLogging() bool {
	return false
}

func TestPermission(t *testing.T) {
	log := logger.NewLogger(100)
	log.Log(deny{}, "test", "not allowed")
	test.ExpectEquality(t, log.Len(), 0)
	log.Log(logger.Allow, "test", "allowed")
	test.ExpectEquality(t, log.Len(), 1)
}

func TestCapacityAndRecent(t *testing.T) {
	log := logger.NewLogger(10)
	for i := range 15 {
		log.Logf(logger.Allow, "test", "entry %d", i)
	}
	test.ExpectEquality(t, log.Len(), 10)

	tw := &test.CompareWriter{}
	log.Tail(tw, 1)
	test.ExpectSuccess(t, tw.Compare("test: entry 14\n"))

	tw.Clear()
	log.WriteRecent(tw)
	test.ExpectEquality(t, len(tw.Lines()), 10)

	tw.Clear()
	log.WriteRecent(tw)
	test.ExpectSuccess(t, tw.Compare(""))

	// echo receives new entries as they are made
	echo := &test.CompareWriter{}
	log.SetEcho(echo, false)
	log.Log(logger.Allow, "echo", fmt.Sprint(1))
	test.ExpectSuccess(t, echo.Compare("echo: 1\n"))
	log.SetEcho(nil, false)
	log.Log(logger.Allow, "echo", fmt.Sprint(2))
	test.ExpectSuccess(t, echo.Compare("echo: 1\n"))
}
