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

package watchdog_test

import (
	"testing"
	"time"

	"github.com/tivasim/tivasim/hardware/clocks"
	"github.com/tivasim/tivasim/hardware/interrupts"
	"github.com/tivasim/tivasim/hardware/peripherals/watchdog"
	"github.com/tivasim/tivasim/hardware/scheduler"
	"github.com/tivasim/tivasim/test"
)

const line = 18

type resets struct {
	causes []string
}

func (r *resets) RequestReset(cause string) {
	r.causes = append(r.causes, cause)
}

type rig struct {
	sched  *scheduler.Scheduler
	ctrl   *interrupts.Controller
	resets *resets
	wdt    *watchdog.Watchdog
}

// a watchdog with a 1MHz clock
func newRig(unit watchdog.Unit) *rig {
	r := &rig{
		sched:  scheduler.NewScheduler(time.Unix(0, 0)),
		resets: &resets{},
	}
	r.ctrl = interrupts.NewController(nil)
	r.wdt = watchdog.NewWatchdog("WDT0", unit, r.sched, clocks.NewClock("sysclk", 1000000),
		interrupts.NewLine(r.ctrl, line, "WDT0"), r.ctrl, r.resets)
	return r
}

func TestFirstExpiry(t *testing.T) {
	r := newRig(watchdog.WDT0)
	r.wdt.Write(watchdog.LOAD, 1000)
	test.ExpectEquality(t, r.wdt.State(), watchdog.Armed)
	test.ExpectEquality(t, r.wdt.Read(watchdog.CTL)&watchdog.INTEN, uint32(watchdog.INTEN))

	r.sched.Advance(999999)
	test.ExpectEquality(t, r.ctrl.Pulses(line), 0)

	r.sched.Advance(1000000)
	test.ExpectEquality(t, r.wdt.State(), watchdog.FirstExpired)
	test.ExpectEquality(t, r.wdt.Read(watchdog.RIS), uint32(1))
	test.ExpectEquality(t, r.wdt.Read(watchdog.MIS), uint32(1))
	test.ExpectEquality(t, r.ctrl.Pulses(line), 1)
	n, src := r.ctrl.NMIs()
	test.ExpectEquality(t, n, 1)
	test.ExpectEquality(t, src, "WDT0")
	test.ExpectEquality(t, len(r.resets.causes), 0)
}

func TestSecondExpiryReset(t *testing.T) {
	r := newRig(watchdog.WDT0)
	r.wdt.Write(watchdog.CTL, watchdog.RESEN)
	r.wdt.Write(watchdog.LOAD, 1000)

	r.sched.Advance(2000000)
	test.ExpectEquality(t, r.ctrl.Pulses(line), 1)
	test.DemandEquality(t, len(r.resets.causes), 1)
	test.ExpectEquality(t, r.resets.causes[0], "WDT0 second time-out")
}

func TestSecondExpiryNoReset(t *testing.T) {
	r := newRig(watchdog.WDT0)
	r.wdt.Write(watchdog.LOAD, 1000)

	// without RESEN the second time-out signals again
	r.sched.Advance(3000000)
	test.ExpectEquality(t, r.ctrl.Pulses(line), 3)
	n, _ := r.ctrl.NMIs()
	test.ExpectEquality(t, n, 3)
	test.ExpectEquality(t, len(r.resets.causes), 0)
}

func TestAcknowledge(t *testing.T) {
	r := newRig(watchdog.WDT0)
	r.wdt.Write(watchdog.CTL, watchdog.RESEN)
	r.wdt.Write(watchdog.LOAD, 1000)

	// clear the interrupt after every first time-out
	for i := range 10 {
		r.sched.Advance(int64(i+1)*1000000 + 500000)
		test.ExpectEquality(t, r.wdt.State(), watchdog.FirstExpired)
		r.wdt.Write(watchdog.ICR, 1)
		test.ExpectEquality(t, r.wdt.State(), watchdog.Armed)
		test.ExpectEquality(t, r.wdt.Read(watchdog.RIS), uint32(0))
	}

	test.ExpectEquality(t, len(r.resets.causes), 0)
	test.ExpectEquality(t, r.ctrl.Pulses(line), 10)
}

func TestLock(t *testing.T) {
	r := newRig(watchdog.WDT0)
	test.ExpectEquality(t, r.wdt.Read(watchdog.LOCK), uint32(0))

	r.wdt.Write(watchdog.LOCK, 0)
	test.ExpectSuccess(t, r.wdt.Locked())
	test.ExpectEquality(t, r.wdt.Read(watchdog.LOCK), uint32(1))

	// CTL and TEST are protected
	r.wdt.Write(watchdog.CTL, watchdog.RESEN)
	test.ExpectEquality(t, r.wdt.Read(watchdog.CTL), uint32(0))
	r.wdt.Write(watchdog.TEST, watchdog.STALL)
	test.ExpectEquality(t, r.wdt.Read(watchdog.TEST), uint32(0))

	// LOAD is not
	r.wdt.Write(watchdog.LOAD, 500)
	test.ExpectEquality(t, r.wdt.Read(watchdog.LOAD), uint32(500))
	test.ExpectEquality(t, r.wdt.State(), watchdog.Armed)

	r.wdt.Write(watchdog.LOCK, watchdog.UnlockKey)
	test.ExpectFailure(t, r.wdt.Locked())
	r.wdt.Write(watchdog.TEST, watchdog.STALL)
	test.ExpectEquality(t, r.wdt.Read(watchdog.TEST), uint32(watchdog.STALL))
}

func TestLockPerUnit(t *testing.T) {
	a := newRig(watchdog.WDT0)
	b := newRig(watchdog.WDT1)
	a.wdt.Write(watchdog.LOCK, 0)
	test.ExpectSuccess(t, a.wdt.Locked())
	test.ExpectFailure(t, b.wdt.Locked())
}

func TestInterruptEnable(t *testing.T) {
	r := newRig(watchdog.WDT0)

	r.wdt.Write(watchdog.CTL, watchdog.INTEN)
	test.ExpectEquality(t, r.wdt.State(), watchdog.Armed)

	r.wdt.Write(watchdog.CTL, 0)
	test.ExpectEquality(t, r.wdt.State(), watchdog.Idle)
	test.ExpectEquality(t, r.sched.Pending(), 0)
}

func TestValue(t *testing.T) {
	r := newRig(watchdog.WDT0)
	test.ExpectEquality(t, r.wdt.Read(watchdog.VALUE), uint32(0xffffffff))

	r.wdt.Write(watchdog.LOAD, 1000)
	test.ExpectEquality(t, r.wdt.Read(watchdog.VALUE), uint32(1000))
	r.sched.Advance(250000)
	test.ExpectEquality(t, r.wdt.Read(watchdog.VALUE), uint32(750))

	// read-only
	r.wdt.Write(watchdog.VALUE, 0)
	test.ExpectEquality(t, r.wdt.Read(watchdog.VALUE), uint32(750))
}

func TestResetValues(t *testing.T) {
	r := newRig(watchdog.WDT1)
	test.ExpectEquality(t, r.wdt.Read(watchdog.CTL), uint32(watchdog.WRC))

	// WRC survives a write
	r.wdt.Write(watchdog.CTL, watchdog.RESEN)
	test.ExpectEquality(t, r.wdt.Read(watchdog.CTL), uint32(watchdog.WRC|watchdog.RESEN))

	r.wdt.Write(watchdog.LOAD, 10)
	r.wdt.Write(watchdog.LOCK, 0)
	r.wdt.Reset()
	test.ExpectEquality(t, r.wdt.State(), watchdog.Idle)
	test.ExpectFailure(t, r.wdt.Locked())
	test.ExpectEquality(t, r.wdt.Read(watchdog.LOAD), uint32(0xffffffff))
	test.ExpectEquality(t, r.wdt.Read(watchdog.CTL), uint32(watchdog.WRC))
	test.ExpectEquality(t, r.wdt.Read(0xfe0), uint32(0x05))
	test.ExpectEquality(t, r.wdt.Read(0xff8), uint32(0x06))

	w := newRig(watchdog.WDT0)
	test.ExpectEquality(t, w.wdt.Read(watchdog.CTL), uint32(0))
}
