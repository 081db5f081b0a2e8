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

import (
	"fmt"
	"math"
	"strings"
)

// IRQ identifies an interrupt line registered with the NVIC.
type IRQ int

// NoPriority is the priority of a processor that is not running any
// interrupt handler. Every enabled interrupt can preempt it.
const NoPriority = math.MaxInt

type irqLine struct {
	name     string
	priority int
	cycles   int
	handler  func()

	enabled   bool
	pending   bool
	countdown int

	// number of times the handler has been entered
	taken uint64
}

// NVIC is the nested vectored interrupt controller. Lower priority values are
// more urgent. A pending interrupt is only taken once the entry latency has
// passed.
type NVIC struct {
	lines   []irqLine
	latency int
}

// NewNVIC is the preferred method of initialisation for the NVIC type.
func NewNVIC(latency int) *NVIC {
	return &NVIC{latency: latency}
}

func (n *NVIC) String() string {
	s := strings.Builder{}
	for i, l := range n.lines {
		if i > 0 {
			s.WriteString(", ")
		}
		s.WriteString(fmt.Sprintf("%s (pri %d) x%d", l.name, l.priority, l.taken))
	}
	return s.String()
}

// SetLatency sets the number of ticks between an interrupt being raised and
// the handler being entered.
func (n *NVIC) SetLatency(latency int) {
	n.latency = latency
}

// Register adds an interrupt line with its handler. The cycles argument is
// the number of CPU cycles the handler runs for. The line is disabled.
func (n *NVIC) Register(name string, priority int, cycles int, handler func()) IRQ {
	n.lines = append(n.lines, irqLine{
		name:     name,
		priority: priority,
		cycles:   cycles,
		handler:  handler,
	})
	return IRQ(len(n.lines) - 1)
}

// Enable an interrupt line.
func (n *NVIC) Enable(irq IRQ) {
	n.lines[irq].enabled = true
}

// Disable an interrupt line. A pending interrupt remains pending.
func (n *NVIC) Disable(irq IRQ) {
	n.lines[irq].enabled = false
}

// Raise sets the interrupt line pending. Raising a line that is already
// pending has no effect.
func (n *NVIC) Raise(irq IRQ) {
	l := &n.lines[irq]
	if l.pending {
		return
	}
	l.pending = true
	l.countdown = n.latency
}

// Next returns the most urgent interrupt that can be taken when the processor
// is running at the active priority. The interrupt is not acknowledged.
func (n *NVIC) Next(active int) (IRQ, bool) {
	best := -1
	for i := range n.lines {
		l := &n.lines[i]
		if !l.enabled || !l.pending || l.countdown > 0 || l.priority >= active {
			continue
		}
		if best == -1 || l.priority < n.lines[best].priority {
			best = i
		}
	}
	return IRQ(best), best != -1
}

// Acknowledge clears the pending state of an interrupt and returns its
// handler and cycle cost.
func (n *NVIC) Acknowledge(irq IRQ) (func(), int) {
	l := &n.lines[irq]
	l.pending = false
	l.taken++
	return l.handler, l.cycles
}

// Priority returns the priority of an interrupt line.
func (n *NVIC) Priority(irq IRQ) int {
	return n.lines[irq].priority
}

// Taken returns the number of times the handler of an interrupt line has been
// entered.
func (n *NVIC) Taken(irq IRQ) uint64 {
	return n.lines[irq].taken
}

// Tick advances the latency countdown of every pending interrupt by one tick.
// It should be called after any due interrupts have been taken.
func (n *NVIC) Tick() {
	for i := range n.lines {
		if n.lines[i].pending && n.lines[i].countdown > 0 {
			n.lines[i].countdown--
		}
	}
}
