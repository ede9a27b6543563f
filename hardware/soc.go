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

package hardware

import (
	"fmt"
	"strings"
	"time"

	"github.com/tivasim/tivasim/curated"
	"github.com/tivasim/tivasim/hardware/clocks"
	"github.com/tivasim/tivasim/hardware/interrupts"
	"github.com/tivasim/tivasim/hardware/memory"
	"github.com/tivasim/tivasim/hardware/memory/bus"
	"github.com/tivasim/tivasim/hardware/memory/memorymap"
	"github.com/tivasim/tivasim/hardware/peripherals/gpio"
	"github.com/tivasim/tivasim/hardware/peripherals/gptm"
	"github.com/tivasim/tivasim/hardware/peripherals/uart"
	"github.com/tivasim/tivasim/hardware/peripherals/watchdog"
	"github.com/tivasim/tivasim/hardware/preferences"
	"github.com/tivasim/tivasim/hardware/scheduler"
	"github.com/tivasim/tivasim/hardware/sysctl"
	"github.com/tivasim/tivasim/logger"
	"github.com/tivasim/tivasim/prefs"
)

// Interrupt line numbers of every peripheral instance.
var (
	GPIOLines     = [6]int{0, 1, 2, 3, 4, 30}
	UARTLines     = [8]int{5, 6, 33, 59, 60, 61, 62, 63}
	WatchdogLine  = 18
	TimerLines    = [6][2]int{{19, 20}, {21, 22}, {23, 24}, {35, 36}, {70, 71}, {92, 93}}
	WideTimerLine = [6][2]int{{94, 95}, {96, 97}, {98, 99}, {100, 101}, {102, 103}, {104, 105}}
)

// Halted is the pattern of the error returned by every operation after the
// SoC has halted.
const Halted = "soc: halted: %v"

// the number of functions that can wait in the inject queue
const injectQueueLen = 256

// SoC is the container for all the simulated components of the TM4C123.
type SoC struct {
	Prefs      *preferences.Preferences
	Clocks     *clocks.Tree
	Scheduler  *scheduler.Scheduler
	Interrupts *interrupts.Controller
	SysCtl     *sysctl.SysCtl
	Mem        *memory.Memory

	GPIO       [6]*gpio.Bank
	Timers     [6]*gptm.Module
	WideTimers [6]*gptm.Module
	Watchdogs  [2]*watchdog.Watchdog
	UART       [8]*uart.UART

	// the number of system resets requested by the watchdogs
	Resets int

	inject chan func()

	// the first fatal error. once set the SoC does nothing
	halted error

	// a reset requested from a scheduler callback is deferred until the
	// callback returns
	inCallback   bool
	resetPending bool
	resetCause   string
}

// NewSoC creates a new SoC and everything associated with the hardware. If
// prf is nil the default preferences are used.
func NewSoC(prf *preferences.Preferences) (*SoC, error) {
	var err error

	if prf == nil {
		prf, err = preferences.NewPreferences("")
		if err != nil {
			return nil, curated.Errorf("soc: %v", err)
		}
	}

	s := &SoC{
		Prefs:  prf,
		inject: make(chan func(), injectQueueLen),
	}

	s.Clocks = clocks.NewTree(uint64(prf.SysClk.Get().(int)), uint64(prf.PIOSC.Get().(int)))

	wall := time.Unix(0, 0)
	if prf.WallClock.Get().(bool) {
		wall = time.Now()
	}
	s.Scheduler = scheduler.NewScheduler(wall)
	s.Interrupts = interrupts.NewController(func() int64 {
		return s.Scheduler.Now(scheduler.Virtual)
	})

	s.SysCtl = sysctl.NewSysCtl()
	s.SysCtl.OnSoftwareReset(s.resetUnit)

	s.Mem = memory.NewMemory(prf)
	s.Mem.Attach(memorymap.SysCtlBase, bus.Ungated{Peripheral: s.SysCtl})

	line := func(n int, name string) interrupts.Line {
		return interrupts.NewLine(s.Interrupts, n, name)
	}

	for i := range s.GPIO {
		name := memorymap.Name(memorymap.GPIO, i)
		s.GPIO[i] = gpio.NewBank(name, line(GPIOLines[i], name))
		s.attach(memorymap.GPIOBases[i], s.GPIO[i], sysctl.GPIO, i)
	}

	for i := range s.Timers {
		name := memorymap.Name(memorymap.Timer, i)
		s.Timers[i] = gptm.NewModule(name, gptm.Narrow, s, s.Clocks.SysClk,
			line(TimerLines[i][0], name+"A"), line(TimerLines[i][1], name+"B"))
		s.attach(memorymap.TimerBases[i], s.Timers[i], sysctl.Timer, i)
	}

	for i := range s.WideTimers {
		name := memorymap.Name(memorymap.WideTimer, i)
		s.WideTimers[i] = gptm.NewModule(name, gptm.Wide, s, s.Clocks.SysClk,
			line(WideTimerLine[i][0], name+"A"), line(WideTimerLine[i][1], name+"B"))
		s.attach(memorymap.WideTimerBases[i], s.WideTimers[i], sysctl.WideTimer, i)
	}

	wdtClocks := [2]clocks.Source{s.Clocks.SysClk, s.Clocks.PIOSC}
	for i := range s.Watchdogs {
		name := memorymap.Name(memorymap.Watchdog, i)
		s.Watchdogs[i] = watchdog.NewWatchdog(name, watchdog.Unit(i), s, wdtClocks[i],
			line(WatchdogLine, name), s.Interrupts, s)
		s.attach(memorymap.WatchdogBases[i], s.Watchdogs[i], sysctl.Watchdog, i)
	}

	for i := range s.UART {
		name := memorymap.Name(memorymap.UART, i)
		s.UART[i] = uart.NewUART(name, line(UARTLines[i], name), nil)
		s.attach(memorymap.UARTBases[i], s.UART[i], sysctl.UART, i)
	}

	s.bindPrefs()

	return s, nil
}

func (s *SoC) attach(base uint32, p bus.Peripheral, class sysctl.Class, instance int) {
	s.Mem.Attach(base, bus.NewGate(p, s.SysCtl, class, instance))
}

// apply the current preference values and keep them applied when they change
func (s *SoC) bindPrefs() {
	setMode := func(v string) {
		m := gpio.Toggle
		if strings.TrimSpace(v) == preferences.ClearOnly {
			m = gpio.ClearOnly
		}
		for _, b := range s.GPIO {
			b.SetClearMode(m)
		}
	}
	setMode(s.Prefs.GPIOClearMode.String())

	s.Prefs.GPIOClearMode.SetHookPost(func(v prefs.Value) error {
		setMode(v.(string))
		return nil
	})
	s.Prefs.SysClk.SetHookPost(func(v prefs.Value) error {
		s.Clocks.SysClk.Set(uint64(v.(int)))
		return nil
	})
	s.Prefs.PIOSC.SetHookPost(func(v prefs.Value) error {
		s.Clocks.PIOSC.Set(uint64(v.(int)))
		return nil
	})
}

func (s *SoC) String() string {
	return fmt.Sprintf("%s %s", s.Scheduler, s.Clocks)
}

// Now implements the Scheduler interface of the peripheral packages.
func (s *SoC) Now(d scheduler.Domain) int64 {
	return s.Scheduler.Now(d)
}

// Schedule implements the Scheduler interface of the peripheral packages.
// Callbacks are wrapped so that resets requested by them are deferred.
func (s *SoC) Schedule(d scheduler.Domain, deadline int64, label string, f func()) *scheduler.Event {
	return s.Scheduler.Schedule(d, deadline, label, func() {
		s.inCallback = true
		f()
		s.inCallback = false
		if s.resetPending {
			s.resetPending = false
			s.systemReset(s.resetCause)
		}
	})
}

// Cancel implements the Scheduler interface of the peripheral packages.
func (s *SoC) Cancel(e *scheduler.Event) {
	s.Scheduler.Cancel(e)
}

// Halted returns the error that halted the SoC, or nil if the SoC is
// running.
func (s *SoC) Halted() error {
	return s.halted
}

func (s *SoC) halt(err error) error {
	if err != nil && curated.IsFatal(err) && s.halted == nil {
		s.halted = err
		logger.Logf(logger.Allow, "soc", "halted: %v", err)
	}
	return err
}

// Read the 32 bit register at address.
func (s *SoC) Read(address uint32) (uint32, error) {
	if s.halted != nil {
		return 0, curated.Errorf(Halted, s.halted)
	}
	s.drain()
	v, err := s.Mem.Read(address)
	return v, s.halt(err)
}

// Write a value to the 32 bit register at address. Values wider than 32 bits
// are truncated.
func (s *SoC) Write(address uint32, value uint64) error {
	if s.halted != nil {
		return curated.Errorf(Halted, s.halted)
	}
	s.drain()
	return s.halt(s.Mem.Write(address, value))
}

// Advance simulated time by duration, delivering every scheduled event on
// the way.
func (s *SoC) Advance(duration time.Duration) error {
	if s.halted != nil {
		return curated.Errorf(Halted, s.halted)
	}

	limit := s.Scheduler.Now(scheduler.Virtual) + int64(duration)
	for {
		s.drain()
		if !s.Scheduler.Step(limit) {
			break
		}
	}
	s.Scheduler.Advance(limit)

	return nil
}

// Inject a function to be run in the context of the simulation. Safe to call
// from any goroutine. Blocks if the queue is full.
func (s *SoC) Inject(f func()) {
	s.inject <- f
}

// run every injected function that is waiting
func (s *SoC) drain() {
	for {
		select {
		case f := <-s.inject:
			f()
		default:
			return
		}
	}
}

// RequestReset implements the watchdog.Resetter interface. Reset is
// immediate unless the request comes from a scheduler callback, in which case
// it happens once the callback returns.
func (s *SoC) RequestReset(cause string) {
	if s.inCallback {
		s.resetPending = true
		s.resetCause = cause
		return
	}
	s.systemReset(cause)
}

func (s *SoC) systemReset(cause string) {
	s.Resets++
	logger.Logf(logger.Allow, "soc", "system reset: %s", cause)
	s.Reset()
}

// Reset every peripheral to its power-on state and cancel every pending
// event. Interrupt counts are kept. A halted SoC stays halted.
func (s *SoC) Reset() {
	s.SysCtl.Reset()
	for _, b := range s.GPIO {
		b.Reset()
	}
	for _, t := range s.Timers {
		t.Reset()
	}
	for _, t := range s.WideTimers {
		t.Reset()
	}
	for _, w := range s.Watchdogs {
		w.Reset()
	}
	for _, u := range s.UART {
		u.Reset()
	}
	s.Scheduler.Clear()
	s.Interrupts.Reset()
}

// reset a single unit in response to a write to a software reset register
func (s *SoC) resetUnit(c sysctl.Class, instance int) {
	var p bus.Peripheral

	switch c {
	case sysctl.GPIO:
		if instance < len(s.GPIO) {
			p = s.GPIO[instance]
		}
	case sysctl.Timer:
		if instance < len(s.Timers) {
			p = s.Timers[instance]
		}
	case sysctl.WideTimer:
		if instance < len(s.WideTimers) {
			p = s.WideTimers[instance]
		}
	case sysctl.Watchdog:
		if instance < len(s.Watchdogs) {
			p = s.Watchdogs[instance]
		}
	case sysctl.UART:
		if instance < len(s.UART) {
			p = s.UART[instance]
		}
	}

	if p == nil {
		logger.Logf(logger.Allow, "soc", "software reset of %s%d is not supported", c, instance)
		return
	}

	p.Reset()
	logger.Logf(logger.Allow, "soc", "software reset of %s", p.Label())
}

// Peripheral returns the peripheral with the given name. For example,
// "GPIOF", "TIMER0" or "SYSCTL". Names are case insensitive.
func (s *SoC) Peripheral(name string) (bus.Peripheral, bool) {
	name = strings.ToUpper(name)
	if name == "SYSCTL" {
		return s.SysCtl, true
	}
	base, ok := s.base(name)
	if !ok {
		return nil, false
	}
	dev, ok := s.Mem.Device(base)
	if !ok {
		return nil, false
	}
	if g, ok := dev.(*bus.Gate); ok {
		return g.Peripheral(), true
	}
	return nil, false
}
