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

package watchdog

import (
	"fmt"
	"math"

	"github.com/tivasim/tivasim/hardware/clocks"
	"github.com/tivasim/tivasim/hardware/interrupts"
	"github.com/tivasim/tivasim/hardware/memory/regmap"
	"github.com/tivasim/tivasim/hardware/scheduler"
	"github.com/tivasim/tivasim/logger"
)

// Register offsets.
const (
	LOAD  = 0x000
	VALUE = 0x004
	CTL   = 0x008
	ICR   = 0x00c
	RIS   = 0x010
	MIS   = 0x014
	TEST  = 0x418
	LOCK  = 0xc00
)

// Bits in the CTL register.
const (
	INTEN   = 1 << 0
	RESEN   = 1 << 1
	INTTYPE = 1 << 2
	WRC     = 1 << 31
)

// Bits in the TEST register.
const STALL = 1 << 8

// UnlockKey is the value that unlocks the watchdog when written to LOCK.
// Writing any other value locks it.
const UnlockKey = 0x1acce551

// State of the watchdog.
type State int

// List of valid State values.
const (
	Idle State = iota
	Armed
	FirstExpired
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case FirstExpired:
		return "first expired"
	}
	panic("unknown watchdog state")
}

// Scheduler is the part of the scheduler used by the watchdog.
type Scheduler interface {
	Now(d scheduler.Domain) int64
	Schedule(d scheduler.Domain, deadline int64, label string, f func()) *scheduler.Event
	Cancel(e *scheduler.Event)
}

// NMI receives the non-maskable interrupt signal.
type NMI interface {
	NMI(source string)
}

// Resetter receives system reset requests.
type Resetter interface {
	RequestReset(cause string)
}

// Watchdog is a single watchdog timer.
type Watchdog struct {
	regs  *regmap.Map
	sched Scheduler
	clk   clocks.Source
	line  interrupts.Line
	nmi   NMI
	reset Resetter

	// reset value of CTL. WDT1 resets with WRC set
	ctlReset uint32

	locked bool

	state State
	event *scheduler.Event

	// countdown epoch. see the equivalent fields of gptm.SubTimer
	hz       uint64
	ticks    uint64
	epoch    int64
	fired    uint64
	deadline int64

	load  *regmap.Register
	value *regmap.Register
	ctl   *regmap.Register
	ris   *regmap.Register
	mis   *regmap.Register
}

// Unit selects the watchdog instance.
type Unit int

// List of valid Unit values.
const (
	WDT0 Unit = iota
	WDT1
)

// NewWatchdog is the preferred method of initialisation for the Watchdog
// type. The nmi and reset arguments may be nil.
func NewWatchdog(label string, unit Unit, sched Scheduler, clk clocks.Source, line interrupts.Line, nmi NMI, reset Resetter) *Watchdog {
	w := &Watchdog{
		regs:  regmap.NewMap(label),
		sched: sched,
		clk:   clk,
		line:  line,
		nmi:   nmi,
		reset: reset,
	}
	if unit == WDT1 {
		w.ctlReset = WRC
	}

	w.load = w.regs.Add(regmap.Register{Name: "LOAD", Offset: LOAD, Reset: 0xffffffff,
		OnWrite: func(_ uint32, v uint32) uint32 {
			w.value.Set(v)
			w.ctl.Set(w.ctl.Value() | INTEN)
			w.arm(v)
			return v
		},
	})
	w.value = w.regs.Add(regmap.Register{Name: "VALUE", Offset: VALUE, Reset: 0xffffffff, ReadOnly: true,
		OnRead: func(stored uint32) uint32 {
			if w.state == Idle {
				return stored
			}
			return w.count()
		},
	})
	w.ctl = w.regs.Add(regmap.Register{Name: "CTL", Offset: CTL, Reset: w.ctlReset,
		OnWrite: func(old uint32, v uint32) uint32 {
			if w.locked {
				logger.Logf(logger.Allow, w.regs.Label(), "CTL write while locked (%#08x)", v)
				return old
			}
			v = (v & (INTEN | RESEN | INTTYPE)) | (old & WRC)
			switch {
			case old&INTEN == 0 && v&INTEN != 0:
				w.arm(w.load.Value())
			case old&INTEN != 0 && v&INTEN == 0:
				w.stop()
			}
			return v
		},
	})
	w.regs.Add(regmap.Register{Name: "ICR", Offset: ICR,
		OnWrite: func(_ uint32, v uint32) uint32 {
			w.ris.Set(0)
			w.mis.Set(0)
			if w.state != Idle {
				w.arm(w.load.Value())
			}
			return v
		},
	})
	w.ris = w.regs.Add(regmap.Register{Name: "RIS", Offset: RIS, ReadOnly: true})
	w.mis = w.regs.Add(regmap.Register{Name: "MIS", Offset: MIS, ReadOnly: true})
	w.regs.Add(regmap.Register{Name: "TEST", Offset: TEST,
		OnWrite: func(old uint32, v uint32) uint32 {
			if w.locked {
				logger.Logf(logger.Allow, w.regs.Label(), "TEST write while locked (%#08x)", v)
				return old
			}
			return v & STALL
		},
	})
	w.regs.Add(regmap.Register{Name: "LOCK", Offset: LOCK,
		OnRead: func(_ uint32) uint32 {
			if w.locked {
				return 1
			}
			return 0
		},
		OnWrite: func(_ uint32, v uint32) uint32 {
			w.locked = v != UnlockKey
			return v
		},
	})

	w.regs.Identification(
		[8]uint32{0x00, 0x00, 0x00, 0x00, 0x05, 0x18, 0x18, 0x01},
		[4]uint32{0x0d, 0xf0, 0x06, 0xb1},
	)

	return w
}

// Label implements the bus.Peripheral interface.
func (w *Watchdog) Label() string {
	return w.regs.Label()
}

// Registers returns the register map of the watchdog.
func (w *Watchdog) Registers() *regmap.Map {
	return w.regs
}

// State returns the current state of the watchdog.
func (w *Watchdog) State() State {
	return w.state
}

// Locked returns true if CTL and TEST are protected from writes.
func (w *Watchdog) Locked() bool {
	return w.locked
}

// Deadline returns the deadline of the next time-out. The second value is
// false if the watchdog is idle.
func (w *Watchdog) Deadline() (int64, bool) {
	return w.deadline, w.event.Pending()
}

func (w *Watchdog) String() string {
	if w.state == Idle {
		return fmt.Sprintf("%s: %s", w.regs.Label(), w.state)
	}
	return fmt.Sprintf("%s: %s value=%#08x", w.regs.Label(), w.state, w.count())
}

// Read implements the bus.Peripheral interface.
func (w *Watchdog) Read(offset uint32) uint32 {
	return w.regs.Read(offset)
}

// Write implements the bus.Peripheral interface.
func (w *Watchdog) Write(offset uint32, value uint32) {
	w.regs.Write(offset, value)
}

// Reset implements the bus.Peripheral interface. The countdown is cancelled
// and the lock is released.
func (w *Watchdog) Reset() {
	w.stop()
	w.locked = false
	w.regs.Reset()
}

// start a new countdown from load
func (w *Watchdog) arm(load uint32) {
	w.stop()

	// a zero load times out on the next tick
	w.ticks = uint64(load)
	if w.ticks == 0 {
		w.ticks = 1
	}
	w.hz = w.clk.Hz()
	w.epoch = w.sched.Now(scheduler.Virtual)
	w.fired = 0
	w.state = Armed
	w.schedule()
}

func (w *Watchdog) at(n uint64) int64 {
	d := clocks.TicksToDuration(clocks.MulSaturate(n, w.ticks), w.hz)
	if d > math.MaxInt64-w.epoch {
		return math.MaxInt64
	}
	return w.epoch + d
}

func (w *Watchdog) schedule() {
	w.deadline = w.at(w.fired + 1)
	w.event = w.sched.Schedule(scheduler.Virtual, w.deadline, w.regs.Label(), w.expire)
}

func (w *Watchdog) stop() {
	if w.event != nil {
		w.sched.Cancel(w.event)
		w.event = nil
	}
	w.state = Idle
}

func (w *Watchdog) signal() {
	if w.nmi != nil {
		w.nmi.NMI(w.regs.Label())
	}
	w.line.Pulse()
}

func (w *Watchdog) expire() {
	w.event = nil
	w.fired++

	if w.mis.Value()&1 == 0 {
		w.ris.Set(1)
		w.mis.Set(1)
		w.signal()
		w.state = FirstExpired
		w.schedule()
		return
	}

	if w.ctl.Value()&RESEN != 0 {
		cause := fmt.Sprintf("%s second time-out", w.regs.Label())
		logger.Log(logger.Allow, w.regs.Label(), cause)
		if w.reset != nil {
			w.reset.RequestReset(cause)
		}
		return
	}

	w.signal()
	w.schedule()
}

// the live count, in clock ticks
func (w *Watchdog) count() uint32 {
	rem := w.deadline - w.sched.Now(scheduler.Virtual)
	n := clocks.DurationToTicksCeil(rem, w.hz)
	if n > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(n)
}
