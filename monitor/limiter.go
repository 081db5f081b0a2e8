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

package monitor

import (
	"sync/atomic"
	"time"
)

// Limiter implements the Renderer interface. It holds the simulation back so
// that frames are decoded no faster than the requested rate. Add it to the
// monitor after any renderer that presents frames to the user.
type Limiter struct {
	// whether to wait for the ticker each frame
	limit atomic.Bool

	// the requested number of frames per second
	requested float64

	// actual calculation
	actual         atomic.Uint64
	actualCt       int
	actualCtTarget int
	actualRefTime  time.Time

	// channels
	sync    chan bool
	reqRate chan time.Duration
	quit    chan bool
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
// The goroutine that paces the frames runs until EndRendering() is called.
func NewLimiter(fps float64) *Limiter {
	lmtr := &Limiter{
		actualRefTime: time.Now(),
		sync:          make(chan bool),
		reqRate:       make(chan time.Duration),
		quit:          make(chan bool),
	}
	lmtr.limit.Store(true)

	go func() {
		// new ticker with an arbitrary value. it'll get changed soon enough
		tck := time.NewTicker(time.Second)
		defer tck.Stop()

		for {
			select {
			case <-tck.C:
				select {
				case lmtr.sync <- true:

				// listen for reqRate signals while signalling the sync
				// channel or it is possible for SetRate() to deadlock
				case d := <-lmtr.reqRate:
					tck.Reset(d)
				case <-lmtr.quit:
					return
				}

			case d := <-lmtr.reqRate:
				tck.Reset(d)

			case <-lmtr.quit:
				return
			}
		}
	}()

	lmtr.SetRate(fps)

	return lmtr
}

// SetRate sets the target number of frames per second. Values of zero or less
// are ignored.
func (lmtr *Limiter) SetRate(fps float64) {
	if fps <= 0 {
		return
	}

	lmtr.requested = fps
	lmtr.reqRate <- time.Duration(float64(time.Second) / fps)

	lmtr.actualCtTarget = max(1, int(fps)/2)
	lmtr.actualCt = 0
	lmtr.actualRefTime = time.Now()
}

// SetLimit turns pacing on or off. With pacing off the simulation runs as fast
// as it can and the actual rate is still measured.
func (lmtr *Limiter) SetLimit(limit bool) {
	lmtr.limit.Store(limit)
}

// Actual returns the most recent measurement of the frame rate. Safe to call
// from any goroutine.
func (lmtr *Limiter) Actual() float64 {
	return float64(lmtr.actual.Load()) / 1000
}

// NewFrame implements the Renderer interface.
func (lmtr *Limiter) NewFrame(_ Frame) error {
	if lmtr.limit.Load() {
		<-lmtr.sync
	}
	lmtr.measureActual()
	return nil
}

// EndRendering implements the Renderer interface.
func (lmtr *Limiter) EndRendering() error {
	close(lmtr.quit)
	return nil
}

// called every frame to calculate the actual frame rate being achieved
func (lmtr *Limiter) measureActual() {
	lmtr.actualCt++
	if lmtr.actualCt < lmtr.actualCtTarget {
		return
	}

	t := time.Now()
	actual := float64(lmtr.actualCt) / t.Sub(lmtr.actualRefTime).Seconds()
	lmtr.actual.Store(uint64(actual * 1000))

	// remeasure roughly once a second
	lmtr.actualCtTarget = max(1, int(actual))
	lmtr.actualRefTime = t
	lmtr.actualCt = 0
}
