// This file is part of Tivasim.
//
// Tivasim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tivasim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Tivasim.  If not, see <https://www.gnu.org/licenses/>.

package interrupts

import (
	"fmt"
	"strings"

	"github.com/tivasim/tivasim/logger"
)

// NumLines is the number of interrupt lines on the TM4C123.
const NumLines = 139

// NMILine is the line number reported to observers for the non-maskable
// interrupt.
const NMILine = -1

// Sink receives interrupt signals from peripherals.
type Sink interface {
	Pulse(line int)
	SetLevel(line int, level bool)
	NMI(source string)
}

// Line is a single interrupt line from a peripheral to the sink.
type Line struct {
	sink   Sink
	Number int
	Name   string
}

// NewLine is the preferred method of initialisation for the Line type.
func NewLine(sink Sink, number int, name string) Line {
	return Line{sink: sink, Number: number, Name: name}
}

// Pulse asserts and then deasserts the line.
func (l Line) Pulse() {
	if l.sink != nil {
		l.sink.Pulse(l.Number)
	}
}

// Set holds the line at the given level.
func (l Line) Set(level bool) {
	if l.sink != nil {
		l.sink.SetLevel(l.Number, level)
	}
}

func (l Line) String() string {
	return fmt.Sprintf("%s(irq%d)", l.Name, l.Number)
}

// Observer is notified of every signal change seen by the Controller. The
// when argument is the virtual time in nanoseconds.
type Observer interface {
	Signal(line int, level bool, when int64)
}

type lineState struct {
	level   bool
	pending bool
	pulses  int
}

// Controller implements the Sink interface.
type Controller struct {
	lines     [NumLines]lineState
	nmis      int
	nmiSource string
	observers []Observer

	// returns the current virtual time
	now func() int64
}

// NewController is the preferred method of initialisation for the Controller
// type. The now function supplies the time stamp passed to observers.
func NewController(now func() int64) *Controller {
	return &Controller{now: now}
}

// AddObserver attaches an observer to the Controller.
func (c *Controller) AddObserver(o Observer) {
	c.observers = append(c.observers, o)
}

func (c *Controller) notify(line int, level bool) {
	if len(c.observers) == 0 {
		return
	}
	var when int64
	if c.now != nil {
		when = c.now()
	}
	for _, o := range c.observers {
		o.Signal(line, level, when)
	}
}

func (c *Controller) valid(line int) bool {
	if line < 0 || line >= NumLines {
		logger.Logf(logger.Allow, "interrupts", "signal on invalid line %d", line)
		return false
	}
	return true
}

// Pulse implements the Sink interface.
func (c *Controller) Pulse(line int) {
	if !c.valid(line) {
		return
	}
	c.lines[line].pending = true
	c.lines[line].pulses++
	c.notify(line, true)
	c.notify(line, c.lines[line].level)
}

// SetLevel implements the Sink interface.
func (c *Controller) SetLevel(line int, level bool) {
	if !c.valid(line) {
		return
	}
	if c.lines[line].level == level {
		return
	}
	c.lines[line].level = level
	if level {
		c.lines[line].pending = true
	}
	c.notify(line, level)
}

// NMI implements the Sink interface.
func (c *Controller) NMI(source string) {
	c.nmis++
	c.nmiSource = source
	logger.Logf(logger.Allow, "interrupts", "NMI from %s", source)
	c.notify(NMILine, true)
	c.notify(NMILine, false)
}

// Pulses returns the number of pulses seen on the line.
func (c *Controller) Pulses(line int) int {
	if line < 0 || line >= NumLines {
		return 0
	}
	return c.lines[line].pulses
}

// Level returns the current level of the line.
func (c *Controller) Level(line int) bool {
	if line < 0 || line >= NumLines {
		return false
	}
	return c.lines[line].level
}

// Pending returns true if the line has been signalled since it was last
// acknowledged.
func (c *Controller) Pending(line int) bool {
	if line < 0 || line >= NumLines {
		return false
	}
	return c.lines[line].pending
}

// Acknowledge clears the pending state of the line. A line held high stays
// pending.
func (c *Controller) Acknowledge(line int) {
	if line < 0 || line >= NumLines {
		return
	}
	c.lines[line].pending = c.lines[line].level
}

// NMIs returns the number of NMI signals and the source of the most recent
// one.
func (c *Controller) NMIs() (int, string) {
	return c.nmis, c.nmiSource
}

// Reset clears the level and pending state of every line. Observers see the
// fall of every line that was high. Pulse and NMI counts are statistics of the
// whole run and are kept.
func (c *Controller) Reset() {
	for i := range c.lines {
		if c.lines[i].level {
			c.lines[i].level = false
			c.notify(i, false)
		}
		c.lines[i].pending = false
	}
}

func (c *Controller) String() string {
	s := strings.Builder{}
	for i, l := range c.lines {
		if l.pulses == 0 && !l.level && !l.pending {
			continue
		}
		if s.Len() > 0 {
			s.WriteString(" ")
		}
		s.WriteString(fmt.Sprintf("irq%d=%d", i, l.pulses))
		if l.level {
			s.WriteString("H")
		}
		if l.pending {
			s.WriteString("P")
		}
	}
	if c.nmis > 0 {
		if s.Len() > 0 {
			s.WriteString(" ")
		}
		s.WriteString(fmt.Sprintf("nmi=%d", c.nmis))
	}
	return s.String()
}
