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

package sysctl_test

import (
	"testing"

	"github.com/tivasim/tivasim/hardware/sysctl"
	"github.com/tivasim/tivasim/test"
)

func TestResetValues(t *testing.T) {
	s := sysctl.NewSysCtl()

	test.ExpectEquality(t, s.Read(sysctl.DID1), uint32(0x10a1606e))
	test.ExpectEquality(t, s.Read(sysctl.RCC), uint32(0x078e3ad1))
	test.ExpectEquality(t, s.Read(sysctl.RCC2), uint32(0x07c06810))
	test.ExpectEquality(t, s.Read(sysctl.GPIOHBCTL), uint32(0x7e00))
	test.ExpectEquality(t, s.Read(sysctl.DSLPCLKCFG), uint32(0x07800000))
	test.ExpectEquality(t, s.Read(sysctl.SYSPROP), uint32(0x1d31))
	test.ExpectEquality(t, s.Read(sysctl.PIOSCSTAT), uint32(0x40))
	test.ExpectEquality(t, s.Read(sysctl.PLLFREQ0), uint32(0x32))
	test.ExpectEquality(t, s.Read(sysctl.PLLFREQ1), uint32(0x01))
	test.ExpectEquality(t, s.Read(sysctl.LDOSPCTL), uint32(0x18))
	test.ExpectEquality(t, s.Read(sysctl.LDOSPCAL), uint32(0x1818))
	test.ExpectEquality(t, s.Read(sysctl.LDODPCTL), uint32(0x12))
	test.ExpectEquality(t, s.Read(sysctl.LDODPCAL), uint32(0x1212))

	test.ExpectEquality(t, s.Read(sysctl.PresentOffset(sysctl.Watchdog)), uint32(0x03))
	test.ExpectEquality(t, s.Read(sysctl.PresentOffset(sysctl.UART)), uint32(0xff))
	test.ExpectEquality(t, s.Read(sysctl.PresentOffset(sysctl.WideTimer)), uint32(0x3f))

	// hibernation module is clocked from reset
	test.ExpectEquality(t, s.Read(sysctl.GateOffset(sysctl.Hibernation, sysctl.Run)), uint32(1))
	test.ExpectEquality(t, s.Read(sysctl.GateOffset(sysctl.Hibernation, sysctl.DeepSleep)), uint32(1))
	test.ExpectEquality(t, s.Read(sysctl.ReadyOffset(sysctl.Hibernation)), uint32(1))
	test.ExpectEquality(t, s.Read(sysctl.GateOffset(sysctl.GPIO, sysctl.Run)), uint32(0))

	// offsets of the per-class banks
	test.ExpectEquality(t, sysctl.GateOffset(sysctl.GPIO, sysctl.Run), uint32(0x608))
	test.ExpectEquality(t, sysctl.GateOffset(sysctl.Timer, sysctl.Sleep), uint32(0x704))
	test.ExpectEquality(t, sysctl.GateOffset(sysctl.WideTimer, sysctl.DeepSleep), uint32(0x85c))
	test.ExpectEquality(t, sysctl.ReadyOffset(sysctl.UART), uint32(0xa18))
	test.ExpectEquality(t, sysctl.ResetOffset(sysctl.EEPROM), uint32(0x558))
}

func TestIsClocked(t *testing.T) {
	s := sysctl.NewSysCtl()

	test.ExpectFailure(t, s.IsClocked(sysctl.GPIO, 5))

	s.Write(sysctl.GateOffset(sysctl.GPIO, sysctl.Run), 0x20)
	test.ExpectSuccess(t, s.IsClocked(sysctl.GPIO, 5))
	test.ExpectFailure(t, s.IsClocked(sysctl.GPIO, 0))

	// sleep and deep-sleep gates do not clock a peripheral
	s.SetGate(sysctl.Timer, sysctl.Sleep, 0x01)
	s.SetGate(sysctl.Timer, sysctl.DeepSleep, 0x01)
	test.ExpectFailure(t, s.IsClocked(sysctl.Timer, 0))
	s.SetGate(sysctl.Timer, sysctl.Run, 0x01)
	test.ExpectSuccess(t, s.IsClocked(sysctl.Timer, 0))
	test.ExpectEquality(t, s.Gate(sysctl.Timer, sysctl.Sleep), uint32(0x01))

	test.ExpectFailure(t, s.IsClocked(sysctl.Timer, -1))
	test.ExpectFailure(t, s.IsClocked(sysctl.Timer, 32))

	s.Reset()
	test.ExpectFailure(t, s.IsClocked(sysctl.GPIO, 5))
}

func TestMirroring(t *testing.T) {
	for c := sysctl.Class(0); c < sysctl.NumClasses; c++ {
		s := sysctl.NewSysCtl()
		s.Write(sysctl.GateOffset(c, sysctl.Run), 0x3)

		if c == sysctl.Watchdog {
			test.ExpectFailure(t, c.Mirrored(), c)
			test.ExpectEquality(t, s.Ready(c), uint32(0), c)
			test.ExpectSuccess(t, s.IsClocked(c, 1), c)
		} else {
			test.ExpectSuccess(t, c.Mirrored(), c)
			test.ExpectEquality(t, s.Ready(c), uint32(0x3), c)
		}

		// sleep mode gates are never mirrored
		s.Write(sysctl.GateOffset(c, sysctl.Sleep), 0xff)
		if c != sysctl.Watchdog {
			test.ExpectEquality(t, s.Ready(c), uint32(0x3), c)
		}
	}

	// the ready register is read-only
	s := sysctl.NewSysCtl()
	s.Write(sysctl.ReadyOffset(sysctl.GPIO), 0xff)
	test.ExpectEquality(t, s.Ready(sysctl.GPIO), uint32(0))
}

func TestPLLLock(t *testing.T) {
	s := sysctl.NewSysCtl()
	test.ExpectEquality(t, s.Read(sysctl.RIS), uint32(0))

	// RCC2 in use: writing RCC does not lock the PLL
	s.Write(sysctl.RCC2, 0x07c06810|sysctl.RCC2UseRCC2)
	test.ExpectEquality(t, s.Read(sysctl.RIS), uint32(0))
	s.Write(sysctl.RCC, 0x078e3ad1&^sysctl.RCCPwrDn)
	test.ExpectEquality(t, s.Read(sysctl.RIS), uint32(0))

	// powering the PLL through RCC2 locks it
	s.Write(sysctl.RCC2, (0x07c06810|sysctl.RCC2UseRCC2)&^sysctl.RCC2PwrDn2)
	test.ExpectEquality(t, s.Read(sysctl.RIS), uint32(sysctl.RISPLLLock))
	test.ExpectEquality(t, s.Read(sysctl.PLLSTAT), uint32(sysctl.PLLSTATLock))

	// masked status follows the mask
	test.ExpectEquality(t, s.Read(sysctl.MISC), uint32(0))
	s.Write(sysctl.IMC, sysctl.RISPLLLock)
	test.ExpectEquality(t, s.Read(sysctl.MISC), uint32(sysctl.RISPLLLock))

	// write one to clear
	s.Write(sysctl.MISC, sysctl.RISPLLLock)
	test.ExpectEquality(t, s.Read(sysctl.RIS), uint32(0))
	test.ExpectEquality(t, s.Read(sysctl.MISC), uint32(0))

	// RCC without RCC2. powering the PLL down does not lock it
	s.Reset()
	s.Write(sysctl.RCC, 0x078e3ad1|sysctl.RCCPwrDn)
	test.ExpectEquality(t, s.Read(sysctl.RIS), uint32(0))
	s.Write(sysctl.RCC, 0x078e3ad1&^sysctl.RCCPwrDn)
	test.ExpectEquality(t, s.Read(sysctl.RIS), uint32(sysctl.RISPLLLock))
}

func TestReadOnly(t *testing.T) {
	s := sysctl.NewSysCtl()
	for _, off := range []uint32{sysctl.DID0, sysctl.DID1, sysctl.RIS, sysctl.SYSPROP,
		sysctl.PIOSCSTAT, sysctl.PLLFREQ0, sysctl.PLLFREQ1, sysctl.PLLSTAT,
		sysctl.LDOSPCAL, sysctl.LDODPCAL, sysctl.PresentOffset(sysctl.GPIO)} {
		before := s.Read(off)
		s.Write(off, 0xdeadbeef)
		test.ExpectEquality(t, s.Read(off), before, off)
	}
}

func TestRoundTrip(t *testing.T) {
	s := sysctl.NewSysCtl()
	for _, off := range []uint32{sysctl.PBORCTL, sysctl.IMC, sysctl.RESC, sysctl.GPIOHBCTL,
		sysctl.MOSCCTL, sysctl.DSLPCLKCFG, sysctl.PIOSCCAL, sysctl.SLPPWRCFG,
		sysctl.DSLPPWRCFG, sysctl.LDOSPCTL, sysctl.LDODPCTL, sysctl.SDPMST,
		sysctl.GateOffset(sysctl.UART, sysctl.Run), sysctl.GateOffset(sysctl.UART, sysctl.Sleep),
		sysctl.GateOffset(sysctl.UART, sysctl.DeepSleep)} {
		s.Write(off, 0x5a5a5a5a)
		test.ExpectEquality(t, s.Read(off), uint32(0x5a5a5a5a), off)
	}
}

func TestSoftwareReset(t *testing.T) {
	s := sysctl.NewSysCtl()

	type reset struct {
		c sysctl.Class
		i int
	}
	var resets []reset
	s.OnSoftwareReset(func(c sysctl.Class, i int) {
		resets = append(resets, reset{c, i})
	})

	s.Write(sysctl.ResetOffset(sysctl.GPIO), 0x21)
	test.DemandEquality(t, len(resets), 2)
	test.ExpectEquality(t, resets[0], reset{sysctl.GPIO, 0})
	test.ExpectEquality(t, resets[1], reset{sysctl.GPIO, 5})

	// only newly set bits reset the peripheral
	s.Write(sysctl.ResetOffset(sysctl.GPIO), 0x23)
	test.DemandEquality(t, len(resets), 3)
	test.ExpectEquality(t, resets[2], reset{sysctl.GPIO, 1})

	s.Write(sysctl.ResetOffset(sysctl.GPIO), 0)
	test.ExpectEquality(t, len(resets), 3)
}
