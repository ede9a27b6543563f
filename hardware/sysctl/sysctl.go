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

package sysctl

import (
	"fmt"
	"math/bits"

	"github.com/tivasim/tivasim/hardware/memory/regmap"
)

// Base is the address of the system control block.
const Base = 0x400fe000

// Register offsets.
const (
	DID0       = 0x000
	DID1       = 0x004
	PBORCTL    = 0x030
	RIS        = 0x050
	IMC        = 0x054
	MISC       = 0x058
	RESC       = 0x05c
	RCC        = 0x060
	GPIOHBCTL  = 0x06c
	RCC2       = 0x070
	MOSCCTL    = 0x07c
	DSLPCLKCFG = 0x144
	SYSPROP    = 0x14c
	PIOSCCAL   = 0x150
	PIOSCSTAT  = 0x154
	PLLFREQ0   = 0x160
	PLLFREQ1   = 0x164
	PLLSTAT    = 0x168
	SLPPWRCFG  = 0x188
	DSLPPWRCFG = 0x18c
	LDOSPCTL   = 0x1b4
	LDOSPCAL   = 0x1b8
	LDODPCTL   = 0x1bc
	LDODPCAL   = 0x1c0
	SDPMST     = 0x1cc
)

// Register bits.
const (
	RCCPwrDn    = 1 << 13
	RCC2PwrDn2  = 1 << 13
	RCC2UseRCC2 = 1 << 31
	RISPLLLock  = 1 << 6
	PLLSTATLock = 1 << 0
)

// GateOffset returns the register offset of the clock gate for a class and
// mode.
func GateOffset(c Class, m Mode) uint32 {
	return gateBanks[m] + classes[c].offset
}

// ReadyOffset returns the register offset of the peripheral ready register
// for a class.
func ReadyOffset(c Class) uint32 {
	return bankPR + classes[c].offset
}

// PresentOffset returns the register offset of the peripheral present
// register for a class.
func PresentOffset(c Class) uint32 {
	return bankPP + classes[c].offset
}

// ResetOffset returns the register offset of the software reset register for
// a class.
func ResetOffset(c Class) uint32 {
	return bankSR + classes[c].offset
}

// SysCtl is the system control block and the clock-gate authority.
type SysCtl struct {
	regs *regmap.Map

	gates [numModes][NumClasses]*regmap.Register
	ready [NumClasses]*regmap.Register

	ris  *regmap.Register
	imc  *regmap.Register
	rcc  *regmap.Register
	rcc2 *regmap.Register
	stat *regmap.Register

	// called for each bit set in a software reset register
	onReset func(c Class, instance int)
}

// NewSysCtl is the preferred method of initialisation for the SysCtl type.
// The registers are at their reset values.
func NewSysCtl() *SysCtl {
	s := &SysCtl{
		regs: regmap.NewMap("sysctl"),
	}

	s.regs.Add(regmap.Register{Name: "DID0", Offset: DID0, ReadOnly: true})
	s.regs.Add(regmap.Register{Name: "DID1", Offset: DID1, Reset: 0x10a1606e, ReadOnly: true})
	s.regs.Add(regmap.Register{Name: "SYSPROP", Offset: SYSPROP, Reset: 0x1d31, ReadOnly: true})
	s.regs.Add(regmap.Register{Name: "PIOSCSTAT", Offset: PIOSCSTAT, Reset: 0x40, ReadOnly: true})
	s.regs.Add(regmap.Register{Name: "PLLFREQ0", Offset: PLLFREQ0, Reset: 0x32, ReadOnly: true})
	s.regs.Add(regmap.Register{Name: "PLLFREQ1", Offset: PLLFREQ1, Reset: 0x01, ReadOnly: true})
	s.regs.Add(regmap.Register{Name: "LDOSPCAL", Offset: LDOSPCAL, Reset: 0x1818, ReadOnly: true})
	s.regs.Add(regmap.Register{Name: "LDODPCAL", Offset: LDODPCAL, Reset: 0x1212, ReadOnly: true})
	s.regs.Add(regmap.Register{Name: "GPIOHBCTL", Offset: GPIOHBCTL, Reset: 0x7e00})
	s.regs.Add(regmap.Register{Name: "DSLPCLKCFG", Offset: DSLPCLKCFG, Reset: 0x07800000})
	s.regs.Add(regmap.Register{Name: "LDOSPCTL", Offset: LDOSPCTL, Reset: 0x18})
	s.regs.Add(regmap.Register{Name: "LDODPCTL", Offset: LDODPCTL, Reset: 0x12})
	s.regs.Storage(map[uint32]string{
		PBORCTL:    "PBORCTL",
		RESC:       "RESC",
		MOSCCTL:    "MOSCCTL",
		PIOSCCAL:   "PIOSCCAL",
		SLPPWRCFG:  "SLPPWRCFG",
		DSLPPWRCFG: "DSLPPWRCFG",
		SDPMST:     "SDPMST",
	})

	s.ris = s.regs.Add(regmap.Register{Name: "RIS", Offset: RIS, ReadOnly: true})
	s.imc = s.regs.Add(regmap.Register{Name: "IMC", Offset: IMC})
	s.regs.Add(regmap.Register{
		Name:   "MISC",
		Offset: MISC,
		OnRead: func(_ uint32) uint32 {
			return s.ris.Value() & s.imc.Value()
		},
		OnWrite: func(_ uint32, v uint32) uint32 {
			// write one to clear
			s.ris.Set(s.ris.Value() &^ v)
			return 0
		},
	})

	s.stat = s.regs.Add(regmap.Register{Name: "PLLSTAT", Offset: PLLSTAT, ReadOnly: true})
	s.rcc = s.regs.Add(regmap.Register{
		Name:   "RCC",
		Offset: RCC,
		Reset:  0x078e3ad1,
		OnWrite: func(_ uint32, v uint32) uint32 {
			if v&RCCPwrDn == 0 && s.rcc2.Value()&RCC2UseRCC2 == 0 {
				s.pllLock()
			}
			return v
		},
	})
	s.rcc2 = s.regs.Add(regmap.Register{
		Name:   "RCC2",
		Offset: RCC2,
		Reset:  0x07c06810,
		OnWrite: func(_ uint32, v uint32) uint32 {
			if v&RCC2UseRCC2 != 0 && v&RCC2PwrDn2 == 0 {
				s.pllLock()
			}
			return v
		},
	})

	for c := Class(0); c < NumClasses; c++ {
		c := c
		info := classes[c]

		s.regs.Add(regmap.Register{
			Name:     "PP" + info.name,
			Offset:   PresentOffset(c),
			Reset:    info.present,
			ReadOnly: true,
		})

		s.regs.Add(regmap.Register{
			Name:   "SR" + info.name,
			Offset: ResetOffset(c),
			OnWrite: func(current uint32, v uint32) uint32 {
				s.softwareReset(c, v&^current)
				return v
			},
		})

		s.ready[c] = s.regs.Add(regmap.Register{
			Name:     "PR" + info.name,
			Offset:   ReadyOffset(c),
			Reset:    info.gated,
			ReadOnly: true,
		})

		for m := Run; m < numModes; m++ {
			r := regmap.Register{
				Name:   m.String() + info.name,
				Offset: GateOffset(c, m),
				Reset:  info.gated,
			}
			if m == Run {
				r.OnWrite = func(_ uint32, v uint32) uint32 {
					s.mirror(c, v)
					return v
				}
			}
			s.gates[m][c] = s.regs.Add(r)
		}
	}

	return s
}

func (s *SysCtl) pllLock() {
	s.ris.Set(s.ris.Value() | RISPLLLock)
	s.stat.Set(PLLSTATLock)
}

func (s *SysCtl) mirror(c Class, v uint32) {
	if classes[c].mirrored {
		s.ready[c].Set(v)
	}
}

func (s *SysCtl) softwareReset(c Class, v uint32) {
	if s.onReset == nil {
		return
	}
	for v != 0 {
		i := bits.TrailingZeros32(v)
		s.onReset(c, i)
		v &^= 1 << i
	}
}

// OnSoftwareReset sets the function called when firmware resets a peripheral
// instance through a software reset register.
func (s *SysCtl) OnSoftwareReset(f func(c Class, instance int)) {
	s.onReset = f
}

// Label implements the bus.Peripheral interface.
func (s *SysCtl) Label() string {
	return s.regs.Label()
}

// Read implements the bus.Peripheral interface.
func (s *SysCtl) Read(offset uint32) uint32 {
	return s.regs.Read(offset)
}

// Write implements the bus.Peripheral interface.
func (s *SysCtl) Write(offset uint32, v uint32) {
	s.regs.Write(offset, v)
}

// Reset implements the bus.Peripheral interface.
func (s *SysCtl) Reset() {
	s.regs.Reset()
}

// Registers returns the register map.
func (s *SysCtl) Registers() *regmap.Map {
	return s.regs
}

// SetGate sets the clock gate bitmask of a class for a power mode. Setting the
// run mode gate is mirrored into the ready register for mirrored classes.
func (s *SysCtl) SetGate(c Class, m Mode, mask uint32) {
	s.gates[m][c].Set(mask)
	if m == Run {
		s.mirror(c, mask)
	}
}

// Gate returns the clock gate bitmask of a class for a power mode.
func (s *SysCtl) Gate(c Class, m Mode) uint32 {
	return s.gates[m][c].Value()
}

// Ready returns the peripheral ready bitmask of a class.
func (s *SysCtl) Ready(c Class) uint32 {
	return s.ready[c].Value()
}

// IsClocked returns true if the instance of the class is enabled in the run
// mode clock gate.
func (s *SysCtl) IsClocked(c Class, instance int) bool {
	if instance < 0 || instance > 31 {
		return false
	}
	return s.gates[Run][c].Value()&(1<<uint(instance)) != 0
}

func (s *SysCtl) String() string {
	return fmt.Sprintf("RCGCGPIO=%#02x RCGCTIMER=%#02x RCGCWTIMER=%#02x RCGCWD=%#02x RCGCUART=%#02x RIS=%#02x",
		s.Gate(GPIO, Run), s.Gate(Timer, Run), s.Gate(WideTimer, Run),
		s.Gate(Watchdog, Run), s.Gate(UART, Run), s.ris.Value())
}
