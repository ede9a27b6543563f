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

package gptm

import (
	"fmt"
	"math"

	"github.com/tivasim/tivasim/hardware/clocks"
	"github.com/tivasim/tivasim/hardware/interrupts"
	"github.com/tivasim/tivasim/hardware/memory/regmap"
	"github.com/tivasim/tivasim/hardware/scheduler"
	"github.com/tivasim/tivasim/logger"
)

// State of a sub-timer.
type State int

// List of valid State values.
const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	}
	panic("unknown timer state")
}

// SubTimer is one half of a timer Module.
type SubTimer struct {
	mod  *Module
	name string
	line interrupts.Line

	// bits in CTL and in the interrupt registers
	enable  uint32
	timeout uint32

	mr  *regmap.Register
	ilr *regmap.Register
	pr  *regmap.Register
	r   *regmap.Register
	v   *regmap.Register

	state  State
	event  *scheduler.Event
	domain scheduler.Domain

	// the parameters of the current epoch. the deadline of the nth
	// time-out of the epoch is epoch + duration(n * cycles)
	hz       uint64
	cycles   uint64
	prescale uint64
	epoch    int64
	fired    uint64

	// deadline of the pending time-out
	deadline int64
}

func (st *SubTimer) label() string {
	return fmt.Sprintf("%s%s", st.mod.regs.Label(), st.name)
}

func (st *SubTimer) String() string {
	if st.state == Idle {
		return fmt.Sprintf("%s: %s", st.name, st.state)
	}
	return fmt.Sprintf("%s: %s %s count=%d", st.name, st.state, st.domain, st.count())
}

// State returns the current state of the sub-timer.
func (st *SubTimer) State() State {
	return st.state
}

// Deadline returns the deadline of the next time-out. The second value is
// false if the sub-timer is idle.
func (st *SubTimer) Deadline() (int64, bool) {
	return st.deadline, st.state == Running
}

func (st *SubTimer) periodic() bool {
	return st.mr.Value()&modeMask == ModePeriodic
}

// the number of clock cycles between time-outs and the prescale divider for
// the current configuration
func (st *SubTimer) period() (uint64, uint64) {
	load := st.mod.interval(st)
	ticks := load + 1
	if load == math.MaxUint64 {
		ticks = load
	}

	var prescale uint64
	if st.mod.split() {
		prescale = uint64(st.pr.Value())
		if st.mod.variant == Narrow {
			prescale &= 0xff
		} else {
			prescale &= 0xffff
		}
	}

	return clocks.MulSaturate(ticks, prescale+1), prescale
}

func (st *SubTimer) at(n uint64) int64 {
	d := clocks.TicksToDuration(clocks.MulSaturate(n, st.cycles), st.hz)
	if d > math.MaxInt64-st.epoch {
		return math.MaxInt64
	}
	return st.epoch + d
}

func (st *SubTimer) start() {
	st.stop()

	switch st.mr.Value() & modeMask {
	case ModeOneShot, ModePeriodic:
	case ModeCapture:
		logger.Logf(logger.Allow, st.mod.regs.Label(), "timer %s: capture mode is not supported", st.name)
		return
	default:
		logger.Logf(logger.Allow, st.mod.regs.Label(), "timer %s: enabled with no mode", st.name)
		return
	}

	st.domain = scheduler.Virtual
	if st.mod.cfg.Value() == CfgRTC {
		st.domain = scheduler.Realtime
	}

	st.hz = st.mod.clk.Hz()
	st.cycles, st.prescale = st.period()
	st.epoch = st.mod.sched.Now(st.domain)
	st.fired = 0
	st.state = Running
	st.schedule()
}

func (st *SubTimer) schedule() {
	st.deadline = st.at(st.fired + 1)
	st.event = st.mod.sched.Schedule(st.domain, st.deadline, st.label(), st.expire)
}

func (st *SubTimer) stop() {
	if st.event != nil {
		st.mod.sched.Cancel(st.event)
		st.event = nil
	}
	st.state = Idle
}

func (st *SubTimer) expire() {
	st.event = nil
	st.fired++
	st.mod.timeout(st)

	// the interrupt callback may have stopped the timer
	if st.state != Running {
		return
	}

	if !st.periodic() {
		st.state = Idle
		st.mod.ctl.Set(st.mod.ctl.Value() &^ st.enable)
		st.reload()
		return
	}

	hz := st.mod.clk.Hz()
	cycles, prescale := st.period()
	if hz != st.hz || cycles != st.cycles {
		st.epoch = st.deadline
		st.fired = 0
		st.hz = hz
		st.cycles = cycles
		st.prescale = prescale
	}
	st.schedule()
}

// set the stored counter values to the load value
func (st *SubTimer) reload() {
	load := st.mod.interval(st)
	if st.mod.combined() && st.mod.variant == Wide {
		st.mod.A.v.Set(uint32(load))
		st.mod.B.v.Set(uint32(load >> 32))
		st.mod.A.r.Set(uint32(load))
		st.mod.B.r.Set(uint32(load >> 32))
		return
	}
	st.v.Set(uint32(load))
	st.r.Set(uint32(load))
}

// the live down-count, in timer ticks
func (st *SubTimer) count() uint64 {
	rem := st.deadline - st.mod.sched.Now(st.domain)
	cyc := clocks.DurationToTicksCeil(rem, st.hz)

	ps := st.prescale + 1
	n := cyc / ps
	if cyc%ps != 0 {
		n++
	}
	if n == 0 {
		return 0
	}
	return n - 1
}
