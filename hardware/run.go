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

package hardware

import (
	"context"

	"github.com/beamrace/beamrace/curated"
	"github.com/beamrace/beamrace/govern"
)

// Run sets the board running as quickly as possible. The continueCheck
// function is called once per line of the signal. It can be nil, in which
// case the board runs until the context is cancelled or a sink returns an
// error. Cancellation is not an error.
//
// A Paused state stops the board from stepping but the continueCheck function
// is still called. It is the responsibility of the function to not spin
// needlessly while paused.
func (b *Board) Run(ctx context.Context, continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	if !b.booted {
		if err := b.Boot(); err != nil {
			return err
		}
	}

	var err error

	state := govern.Running

	for state != govern.Ending && state != govern.Initialising {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		switch state {
		case govern.Running:
			if err := b.StepLine(); err != nil {
				return err
			}
		case govern.Paused:
		default:
			return curated.Errorf("board: unsupported simulation state (%d) in Run() function", state)
		}

		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunForFrameCount runs the board for the specified number of frames. The
// continueCheck function is called after every frame with the number of
// frames completed since boot.
func (b *Board) RunForFrameCount(ctx context.Context, numFrames int, continueCheck func(frame int) (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func(frame int) (govern.State, error) { return govern.Running, nil }
	}

	if !b.booted {
		if err := b.Boot(); err != nil {
			return err
		}
	}

	frameTicks := b.Profile.FrameTicks()

	for range numFrames {
		if ctx.Err() != nil {
			return nil
		}

		for range frameTicks {
			if err := b.Step(); err != nil {
				return err
			}
		}

		state, err := continueCheck(b.Frame())
		if err != nil {
			return err
		}
		if state == govern.Ending {
			return nil
		}
	}

	return nil
}
