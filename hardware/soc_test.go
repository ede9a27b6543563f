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

package hardware_test

import (
	"sync"
	"testing"
	"time"

	"github.com/tivasim/tivasim/curated"
	"github.com/tivasim/tivasim/hardware"
	"github.com/tivasim/tivasim/hardware/memory/bus"
	"github.com/tivasim/tivasim/hardware/memory/memorymap"
	"github.com/tivasim/tivasim/hardware/peripherals/gpio"
	"github.com/tivasim/tivasim/hardware/peripherals/gptm"
	"github.com/tivasim/tivasim/hardware/peripherals/uart"
	"github.com/tivasim/tivasim/hardware/peripherals/watchdog"
	"github.com/tivasim/tivasim/hardware/preferences"
	"github.com/tivasim/tivasim/hardware/sysctl"
	"github.com/tivasim/tivasim/test"
)

var (
	gpioF  = memorymap.GPIOBases[5]
	timer0 = memorymap.TimerBases[0]
	wdt0   = memorymap.WatchdogBases[0]
	uart0  = memorymap.UARTBases[0]
)

func newSoC(t *testing.T) *hardware.SoC {
	t.Helper()
	prf, err := preferences.NewPreferences("")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, prf.WallClock.Set(false))
	s, err := hardware.NewSoC(prf)
	test.DemandSuccess(t, err)
	return s
}

func write(t *testing.T, s *hardware.SoC, addr uint32, v uint64) {
	t.Helper()
	test.DemandSuccess(t, s.Write(addr, v))
}

func read(t *testing.T, s *hardware.SoC, addr uint32) uint32 {
	t.Helper()
	v, err := s.Read(addr)
	test.DemandSuccess(t, err)
	return v
}

func gate(t *testing.T, s *hardware.SoC, c sysctl.Class, mask uint64) {
	t.Helper()
	write(t, s, sysctl.Base+sysctl.GateOffset(c, sysctl.Run), mask)
}

func TestGPIORisingEdge(t *testing.T) {
	s := newSoC(t)
	gate(t, s, sysctl.GPIO, 1<<5)

	write(t, s, gpioF+gpio.IS, 0x00)
	write(t, s, gpioF+gpio.IBE, 0x00)
	write(t, s, gpioF+gpio.IEV, 0xff)
	write(t, s, gpioF+gpio.IM, 0xff)
	write(t, s, gpioF+gpio.DataTop, 0xff)

	test.ExpectEquality(t, read(t, s, gpioF+gpio.RIS), uint32(0xff))
	test.ExpectEquality(t, s.Interrupts.Pulses(hardware.GPIOLines[5]), 1)

	// default clear mode toggles
	write(t, s, gpioF+gpio.ICR, 0xff)
	test.ExpectEquality(t, read(t, s, gpioF+gpio.RIS), uint32(0x00))
	write(t, s, gpioF+gpio.ICR, 0xff)
	test.ExpectEquality(t, read(t, s, gpioF+gpio.RIS), uint32(0xff))
}

func TestGPIOClearModePreference(t *testing.T) {
	s := newSoC(t)
	test.DemandSuccess(t, s.Prefs.GPIOClearMode.Set(preferences.ClearOnly))
	gate(t, s, sysctl.GPIO, 1<<5)

	write(t, s, gpioF+gpio.IEV, 0xff)
	write(t, s, gpioF+gpio.IM, 0xff)
	write(t, s, gpioF+gpio.DataTop, 0xff)
	write(t, s, gpioF+gpio.ICR, 0xff)
	write(t, s, gpioF+gpio.ICR, 0xff)
	test.ExpectEquality(t, read(t, s, gpioF+gpio.RIS), uint32(0x00))
}

func TestClockGateFault(t *testing.T) {
	s := newSoC(t)

	_, err := s.Read(gpioF + gpio.DataTop)
	test.ExpectSuccess(t, curated.Is(err, bus.Fault))
	test.ExpectSuccess(t, curated.IsFatal(err))
	test.ExpectSuccess(t, s.Halted() != nil)

	// the halt is sticky. enabling the clock afterwards is refused too
	err = s.Write(sysctl.Base+sysctl.GateOffset(sysctl.GPIO, sysctl.Run), 1<<5)
	test.ExpectSuccess(t, curated.Is(err, hardware.Halted))
	err = s.Write(gpioF+gpio.DataTop, 0xff)
	test.ExpectSuccess(t, curated.Is(err, hardware.Halted))
	test.ExpectSuccess(t, curated.Is(s.Advance(time.Millisecond), hardware.Halted))
	s.Reset()
	test.ExpectSuccess(t, s.Halted() != nil)

	// the same access succeeds on a SoC that enables the clock first
	s = newSoC(t)
	gate(t, s, sysctl.GPIO, 1<<5)
	v, err := s.Read(gpioF + gpio.DataTop)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0))
	test.ExpectSuccess(t, s.Halted() == nil)
}

func TestClockGateEnabled(t *testing.T) {
	s := newSoC(t)
	gate(t, s, sysctl.GPIO, 1<<5)
	write(t, s, gpioF+gpio.DataTop, 0xa5)
	test.ExpectEquality(t, read(t, s, gpioF+gpio.DataTop), uint32(0xa5))
	test.ExpectSuccess(t, s.Halted() == nil)

	// other banks are still gated
	_, err := s.Read(memorymap.GPIOBases[0] + gpio.DataTop)
	test.ExpectSuccess(t, curated.Is(err, bus.Fault))
}

func TestTimerPeriodic(t *testing.T) {
	s := newSoC(t)
	gate(t, s, sysctl.Timer, 1<<0)

	// 240 ticks of the 24MHz system clock is 10us
	write(t, s, timer0+gptm.CFG, gptm.CfgSplit)
	write(t, s, timer0+gptm.TAMR, gptm.ModePeriodic)
	write(t, s, timer0+gptm.TAILR, 239)
	write(t, s, timer0+gptm.IMR, gptm.TATO)
	write(t, s, timer0+gptm.CTL, gptm.TAEN)

	test.DemandSuccess(t, s.Advance(100*time.Microsecond))
	test.ExpectEquality(t, s.Interrupts.Pulses(hardware.TimerLines[0][0]), 10)

	write(t, s, timer0+gptm.CTL, 0)
	test.DemandSuccess(t, s.Advance(time.Millisecond))
	test.ExpectEquality(t, s.Interrupts.Pulses(hardware.TimerLines[0][0]), 10)
}

func TestTimerOneShot(t *testing.T) {
	s := newSoC(t)
	gate(t, s, sysctl.Timer, 1<<0)

	write(t, s, timer0+gptm.CFG, gptm.CfgSplit)
	write(t, s, timer0+gptm.TAMR, gptm.ModeOneShot)
	write(t, s, timer0+gptm.TAILR, 239)
	write(t, s, timer0+gptm.IMR, gptm.TATO)
	write(t, s, timer0+gptm.CTL, gptm.TAEN)

	test.DemandSuccess(t, s.Advance(time.Millisecond))
	test.ExpectEquality(t, s.Interrupts.Pulses(hardware.TimerLines[0][0]), 1)
	test.ExpectEquality(t, read(t, s, timer0+gptm.RIS), uint32(gptm.TATO))
}

func TestSysClkPreference(t *testing.T) {
	s := newSoC(t)
	test.DemandSuccess(t, s.Prefs.SysClk.Set(48000000))
	test.ExpectEquality(t, s.Clocks.SysClk.Hz(), uint64(48000000))

	gate(t, s, sysctl.Timer, 1<<0)
	write(t, s, timer0+gptm.CFG, gptm.CfgSplit)
	write(t, s, timer0+gptm.TAMR, gptm.ModePeriodic)
	write(t, s, timer0+gptm.TAILR, 239)
	write(t, s, timer0+gptm.CTL, gptm.TAEN)

	d, _ := s.Timers[0].A.Deadline()
	test.ExpectEquality(t, d, int64(5000))
}

func TestWatchdogReset(t *testing.T) {
	s := newSoC(t)
	gate(t, s, sysctl.Watchdog, 1<<0)

	// one millisecond at 24MHz
	write(t, s, wdt0+watchdog.CTL, watchdog.RESEN)
	write(t, s, wdt0+watchdog.LOAD, 24000)

	test.DemandSuccess(t, s.Advance(1500*time.Microsecond))
	test.ExpectEquality(t, s.Resets, 0)
	n, src := s.Interrupts.NMIs()
	test.ExpectEquality(t, n, 1)
	test.ExpectEquality(t, src, "WDT0")

	test.DemandSuccess(t, s.Advance(time.Millisecond))
	test.ExpectEquality(t, s.Resets, 1)

	// everything is back at its reset value, including the clock gates
	test.ExpectEquality(t, s.Watchdogs[0].State(), watchdog.Idle)
	test.ExpectEquality(t, s.SysCtl.Gate(sysctl.Watchdog, sysctl.Run), uint32(0))
	test.ExpectEquality(t, s.Scheduler.Pending(), 0)
	test.ExpectSuccess(t, s.Halted() == nil)
}

func TestWatchdogAcknowledge(t *testing.T) {
	s := newSoC(t)
	gate(t, s, sysctl.Watchdog, 1<<0)
	write(t, s, wdt0+watchdog.CTL, watchdog.RESEN)
	write(t, s, wdt0+watchdog.LOAD, 24000)

	for range 20 {
		test.DemandSuccess(t, s.Advance(time.Millisecond))
		write(t, s, wdt0+watchdog.ICR, 1)
	}
	test.ExpectEquality(t, s.Resets, 0)
}

func TestSoftwareReset(t *testing.T) {
	s := newSoC(t)
	gate(t, s, sysctl.GPIO, 1<<5)
	write(t, s, gpioF+gpio.DEN, 0xff)

	write(t, s, sysctl.Base+sysctl.ResetOffset(sysctl.GPIO), 1<<5)
	write(t, s, sysctl.Base+sysctl.ResetOffset(sysctl.GPIO), 0)
	test.ExpectEquality(t, read(t, s, gpioF+gpio.DEN), uint32(0))
}

func TestInject(t *testing.T) {
	s := newSoC(t)
	gate(t, s, sysctl.UART, 1<<0)
	write(t, s, uart0+uart.CTL, uart.UARTEN|uart.TXE|uart.RXE)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Inject(func() {
			s.UART[0].Receive('z')
		})
	}()
	wg.Wait()

	test.DemandSuccess(t, s.Advance(time.Microsecond))
	test.ExpectEquality(t, read(t, s, uart0+uart.DR), uint32('z'))
}

func TestUART(t *testing.T) {
	s := newSoC(t)
	w := &test.CompareWriter{}
	s.UART[0].SetSink(w)
	gate(t, s, sysctl.UART, 1<<0)
	write(t, s, uart0+uart.CTL, uart.UARTEN|uart.TXE|uart.RXE)
	for _, b := range []byte("ok\n") {
		write(t, s, uart0+uart.DR, uint64(b))
	}
	test.ExpectSuccess(t, w.Compare("ok\n"))
}

func TestUnmapped(t *testing.T) {
	s := newSoC(t)
	test.ExpectEquality(t, read(t, s, 0x50000000), uint32(0))
	write(t, s, 0x50000000, 1)

	// wide values are truncated
	write(t, s, sysctl.Base+sysctl.GateOffset(sysctl.GPIO, sysctl.Run), 0x100000020)
	test.ExpectEquality(t, s.SysCtl.Gate(sysctl.GPIO, sysctl.Run), uint32(0x20))
}

func TestPeripheral(t *testing.T) {
	s := newSoC(t)

	p, ok := s.Peripheral("gpiof")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, p.Label(), "GPIOF")

	p, ok = s.Peripheral("WTIMER3")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, p.Label(), "WTIMER3")

	_, ok = s.Peripheral("SYSCTL")
	test.ExpectSuccess(t, ok)

	_, ok = s.Peripheral("TIMER9")
	test.ExpectFailure(t, ok)
}

func TestAddress(t *testing.T) {
	s := newSoC(t)

	for _, c := range []struct {
		name string
		addr uint32
	}{
		{"0x40025000", 0x40025000},
		{"GPIOF", 0x40025000},
		{"gpiof.im", 0x40025410},
		{"GPIOF+0x3fc", 0x400253fc},
		{"SYSCTL.RCGCGPIO", 0x400fe608},
		{"WDT1.LOAD", 0x40001000},
		{"TIMER0.TAILR", 0x40030028},
	} {
		a, err := s.Address(c.name)
		test.ExpectSuccess(t, err, c.name)
		test.ExpectEquality(t, a, c.addr, c.name)
	}

	for _, n := range []string{"GPIOZ", "GPIOF.NOTHING", "GPIOF+0x1000", "GPIOF+zz"} {
		_, err := s.Address(n)
		test.ExpectSuccess(t, curated.Is(err, hardware.UnknownAddress), n)
	}
}
