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
	"strings"
)

// the operation of the TIMx units in STM32F0 parts can be found in the
// reference manual (referred to as RM0360 in comments below this one):
//
// https://www.st.com/resource/en/reference_manual/rm0360-stm32f030x4x6x8xc-and-stm32f070x6xb-advanced-armbased-32bit-mcus-stmicroelectronics.pdf
//
// only upcounting, edge-aligned operation with no prescaler is implemented.
// the video timings never need anything else.

// NumChannels is the number of capture/compare channels in each timer.
const NumChannels = 4

// ChannelMode is the output compare mode of a channel (OCxM).
type ChannelMode int

// List of valid ChannelMode values.
const (
	// output is unaffected by the comparison. the compare event still happens
	Frozen ChannelMode = iota

	// output is high while the counter is less than the compare value
	PWM1

	// output is low while the counter is less than the compare value
	PWM2
)

// MasterMode selects the event that is sent on the trigger output (TRGO) to
// any slave timers.
type MasterMode int

// List of valid MasterMode values.
const (
	MasterNone MasterMode = iota
	MasterUpdate
	MasterComparePulse
)

type channel struct {
	compare   uint32
	mode      ChannelMode
	output    bool
	interrupt bool
	request   bool
	level     bool
}

// Timer is a general purpose or advanced control timer. A timer in trigger
// mode (see SetTriggerMode()) does not count until a trigger is received from
// its master.
type Timer struct {
	label string

	autoreload uint32
	counter    uint32
	enable     bool

	// in one-pulse mode the timer stops at the update event that exhausts the
	// repetition counter
	onePulse          bool
	repetition        uint32
	repetitionCounter uint32

	channels [NumChannels]channel

	master        MasterMode
	masterChannel int
	slaves        []*Timer

	// a timer in trigger mode is enabled triggerLatency ticks after the
	// trigger is received. pendingTrigger is -1 if there is no trigger in
	// flight
	triggerMode    bool
	triggerLatency int
	pendingTrigger int

	// requests to the DMA can be disabled as a group without changing the
	// configuration of the individual channels (DIER)
	requestsEnabled bool

	onInterrupt func(ch int)
	onRequest   func(ch int)
}

// NewTimer is the preferred method of initialisation for the Timer type.
func NewTimer(label string) *Timer {
	t := &Timer{label: label}
	t.Reset()
	return t
}

// Reset the timer to its power-on state. Slave connections are removed but
// the OnInterrupt() and OnRequest() functions are kept.
func (t *Timer) Reset() {
	t.autoreload = 0xffffffff
	t.counter = 0
	t.enable = false
	t.onePulse = false
	t.repetition = 0
	t.repetitionCounter = 0
	t.channels = [NumChannels]channel{}
	t.master = MasterNone
	t.slaves = t.slaves[:0]
	t.triggerMode = false
	t.pendingTrigger = -1
	t.requestsEnabled = false
}

func (t *Timer) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: CNT=%d ARR=%d", t.label, t.counter, t.autoreload))
	if t.enable {
		s.WriteString(" enabled")
	}
	for i, c := range t.channels {
		if c.mode != Frozen || c.interrupt || c.request || c.compare != 0 {
			s.WriteString(fmt.Sprintf(" CC%d=%d", i+1, c.compare))
		}
	}
	return s.String()
}

// Label returns the name of the timer.
func (t *Timer) Label() string {
	return t.label
}

// SetAutoReload sets the value at which the counter rolls over to zero. The
// counter period is value+1 ticks.
func (t *Timer) SetAutoReload(value uint32) {
	t.autoreload = value
}

// SetRepetition sets the number of additional counter periods before an
// update event is propagated in one-pulse mode (RCR).
func (t *Timer) SetRepetition(value uint32) {
	t.repetition = value
	t.repetitionCounter = value
}

// SetOnePulse sets one-pulse mode (OPM).
func (t *Timer) SetOnePulse(set bool) {
	t.onePulse = set
}

// SetChannelMode sets the output compare mode of a channel and whether the
// output is connected to a pin.
func (t *Timer) SetChannelMode(ch int, mode ChannelMode, output bool) {
	t.channels[ch].mode = mode
	t.channels[ch].output = output
}

// SetCompare sets the compare value of a channel.
func (t *Timer) SetCompare(ch int, value uint32) {
	t.channels[ch].compare = value
}

// Compare returns the compare value of a channel.
func (t *Timer) Compare(ch int) uint32 {
	return t.channels[ch].compare
}

// SetChannelInterrupt enables the interrupt on a channel compare event
// (CCxIE).
func (t *Timer) SetChannelInterrupt(ch int, set bool) {
	t.channels[ch].interrupt = set
}

// SetChannelRequest enables the data request on a channel compare event
// (CCxDE). Requests are only sent if the timer's requests are also enabled.
func (t *Timer) SetChannelRequest(ch int, set bool) {
	t.channels[ch].request = set
}

// OnInterrupt sets the function called when a channel raises an interrupt.
func (t *Timer) OnInterrupt(f func(ch int)) {
	t.onInterrupt = f
}

// OnRequest sets the function called when a channel sends a data request.
func (t *Timer) OnRequest(f func(ch int)) {
	t.onRequest = f
}

// EnableRequests implements the RequestGate interface.
func (t *Timer) EnableRequests() {
	t.requestsEnabled = true
}

// DisableRequests implements the RequestGate interface.
func (t *Timer) DisableRequests() {
	t.requestsEnabled = false
}

// RequestsEnabled implements the RequestGate interface.
func (t *Timer) RequestsEnabled() bool {
	return t.requestsEnabled
}

// SetMasterMode selects the trigger output (MMS). The channel argument is
// only used by MasterComparePulse.
func (t *Timer) SetMasterMode(mode MasterMode, ch int) {
	t.master = mode
	t.masterChannel = ch
}

// AddSlave connects the trigger output of the timer to the trigger input of
// another timer.
func (t *Timer) AddSlave(slave *Timer) {
	t.slaves = append(t.slaves, slave)
}

// SetTriggerMode puts the timer into trigger mode (SMS=110). The counter is
// enabled latency ticks after a trigger is received.
func (t *Timer) SetTriggerMode(latency int) {
	t.triggerMode = true
	t.triggerLatency = latency
}

// Trigger is the trigger input of the timer. It is normally called by the
// master timer.
func (t *Timer) Trigger() {
	if !t.triggerMode || t.enable || t.pendingTrigger >= 0 {
		return
	}
	t.pendingTrigger = t.triggerLatency
}

// Start enables the counter (CEN).
func (t *Timer) Start() {
	t.enable = true
}

// Stop disables the counter. The counter value is retained.
func (t *Timer) Stop() {
	t.enable = false
}

// Running returns true if the counter is enabled.
func (t *Timer) Running() bool {
	return t.enable
}

// Count implements the Counter interface.
func (t *Timer) Count() uint32 {
	return t.counter
}

// SetCount sets the counter value (CNT).
func (t *Timer) SetCount(value uint32) {
	t.counter = value
}

// Output returns the level of a channel's output pin. An output that is not
// connected is always low.
func (t *Timer) Output(ch int) bool {
	return t.channels[ch].output && t.channels[ch].level
}

// Step advances the timer by one tick of the master clock.
//
// When the timer is a slave it must be stepped after its master. A trigger
// received with a latency of zero then takes effect in the same tick.
func (t *Timer) Step() {
	if t.pendingTrigger >= 0 {
		if t.pendingTrigger == 0 {
			t.pendingTrigger = -1
			t.enable = true
		} else {
			t.pendingTrigger--
		}
	}

	if !t.enable {
		return
	}

	for i := range t.channels {
		c := &t.channels[i]

		switch c.mode {
		case PWM1:
			c.level = t.counter < c.compare
		case PWM2:
			c.level = t.counter >= c.compare
		}

		if t.counter == c.compare {
			if c.interrupt && t.onInterrupt != nil {
				t.onInterrupt(i)
			}
			if c.request && t.requestsEnabled && t.onRequest != nil {
				t.onRequest(i)
			}
			if t.master == MasterComparePulse && t.masterChannel == i {
				t.triggerOutput()
			}
		}
	}

	t.counter++
	if t.counter > t.autoreload {
		t.updateEvent()
	}
}

func (t *Timer) updateEvent() {
	t.counter = 0

	if t.master == MasterUpdate {
		t.triggerOutput()
	}

	// "the update event is generated only when the repetition down-counter
	// reaches zero" RM0360 section 15.3.3
	if t.repetitionCounter == 0 {
		t.repetitionCounter = t.repetition
		if t.onePulse {
			t.enable = false
		}
	} else {
		t.repetitionCounter--
	}
}

func (t *Timer) triggerOutput() {
	for _, s := range t.slaves {
		s.Trigger()
	}
}
