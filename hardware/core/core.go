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

// Package core models the execution contexts of the processor. There are the
// interrupt handlers, which preempt each other according to priority, and the
// idle context, which runs whenever no handler is active.
//
// Handlers are not executed instruction by instruction. The effect of a
// handler happens at once, on the tick that the handler is entered, and the
// handler then occupies the processor for the number of cycles it was
// registered with. The idle context does not progress during those cycles.
//
// The idle context waits for an interrupt (the WFI instruction) and resumes
// once the handler has returned.
package core

import (
	"fmt"

	"github.com/beamrace/beamrace/hardware/peripherals"
)

// Idle is the code run when no interrupt handler is active.
type Idle interface {
	// Wake is called when the processor returns from an interrupt handler to
	// the idle context
	Wake()

	// Step is called for every processor cycle available to the idle context
	Step()
}

type activation struct {
	priority  int
	remaining int
}

// Core is the processor.
type Core struct {
	nvic *peripherals.NVIC
	idle Idle

	// stack of active handlers. the last entry is the running handler
	active []activation

	// a handler has been entered since the idle context last ran
	woken bool

	// cycle accounting
	HandlerCycles uint64
	IdleCycles    uint64
}

// NewCore is the preferred method of initialisation for the Core type.
func NewCore(nvic *peripherals.NVIC, idle Idle) *Core {
	return &Core{
		nvic:   nvic,
		idle:   idle,
		active: make([]activation, 0, 4),
	}
}

func (c *Core) String() string {
	return fmt.Sprintf("handler cycles %d, idle cycles %d", c.HandlerCycles, c.IdleCycles)
}

func (c *Core) activePriority() int {
	if len(c.active) == 0 {
		return peripherals.NoPriority
	}
	return c.active[len(c.active)-1].priority
}

// Step the processor by one cycle.
func (c *Core) Step() {
	// enter every due interrupt that can preempt the running handler
	for {
		irq, ok := c.nvic.Next(c.activePriority())
		if !ok {
			break
		}
		handler, cycles := c.nvic.Acknowledge(irq)
		handler()
		c.active = append(c.active, activation{
			priority:  c.nvic.Priority(irq),
			remaining: cycles,
		})
		c.woken = true
	}

	c.nvic.Tick()

	for len(c.active) > 0 {
		a := &c.active[len(c.active)-1]
		if a.remaining == 0 {
			c.active = c.active[:len(c.active)-1]
			continue
		}
		a.remaining--
		c.HandlerCycles++
		if a.remaining == 0 {
			c.active = c.active[:len(c.active)-1]
		}
		return
	}

	if c.woken {
		c.woken = false
		c.idle.Wake()
	}

	c.IdleCycles++
	c.idle.Step()
}

// InHandler returns true if an interrupt handler is active.
func (c *Core) InHandler() bool {
	return len(c.active) > 0
}
