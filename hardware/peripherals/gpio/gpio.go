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

package gpio

import (
	"fmt"
	"strings"

	"github.com/tivasim/tivasim/hardware/interrupts"
	"github.com/tivasim/tivasim/hardware/memory/regmap"
)

// Register offsets.
const (
	DIR     = 0x400
	IS      = 0x404
	IBE     = 0x408
	IEV     = 0x40c
	IM      = 0x410
	RIS     = 0x414
	MIS     = 0x418
	ICR     = 0x41c
	AFSEL   = 0x420
	DR2R    = 0x500
	DR4R    = 0x504
	DR8R    = 0x508
	ODR     = 0x50c
	PUR     = 0x510
	PDR     = 0x514
	SLR     = 0x518
	DEN     = 0x51c
	LOCK    = 0x520
	CR      = 0x524
	AMSEL   = 0x528
	PCTL    = 0x52c
	ADCCTL  = 0x530
	DMACTL  = 0x534
	DataTop = 0x3fc
)

// UnlockKey is the value that unlocks the commit register when written to
// LOCK.
const UnlockKey = 0x4c4f434b

// ClearMode specifies how a write to ICR changes the raw interrupt status.
type ClearMode int

// List of valid ClearMode values.
const (
	// the written bits of RIS are toggled
	Toggle ClearMode = iota

	// the written bits of RIS are cleared
	ClearOnly
)

func (m ClearMode) String() string {
	switch m {
	case Toggle:
		return "toggle"
	case ClearOnly:
		return "clear"
	}
	panic("unknown clear mode")
}

// Bank is a single GPIO port.
type Bank struct {
	regs *regmap.Map
	line interrupts.Line

	// the pin levels. only bits 0 to 7 are used
	data uint32

	mode ClearMode

	is  *regmap.Register
	ibe *regmap.Register
	iev *regmap.Register
	im  *regmap.Register
	ris *regmap.Register
	mis *regmap.Register
}

// NewBank is the preferred method of initialisation for the Bank type. The
// label is used when logging and the line is pulsed when an unmasked
// interrupt condition is detected.
func NewBank(label string, line interrupts.Line) *Bank {
	b := &Bank{
		regs: regmap.NewMap(label),
		line: line,
	}

	pins := func(_ uint32, v uint32) uint32 {
		return v & 0xff
	}

	b.regs.Add(regmap.Register{Name: "DIR", Offset: DIR, OnWrite: pins})
	b.is = b.regs.Add(regmap.Register{Name: "IS", Offset: IS, OnWrite: pins})
	b.ibe = b.regs.Add(regmap.Register{Name: "IBE", Offset: IBE, OnWrite: pins})
	b.iev = b.regs.Add(regmap.Register{Name: "IEV", Offset: IEV, OnWrite: pins})
	b.im = b.regs.Add(regmap.Register{Name: "IM", Offset: IM,
		OnWrite: func(_ uint32, v uint32) uint32 {
			v &= 0xff
			b.mis.Set(b.ris.Value() & v)
			return v
		},
	})
	b.ris = b.regs.Add(regmap.Register{Name: "RIS", Offset: RIS, ReadOnly: true})
	b.mis = b.regs.Add(regmap.Register{Name: "MIS", Offset: MIS, ReadOnly: true})
	b.regs.Add(regmap.Register{Name: "ICR", Offset: ICR,
		OnWrite: func(_ uint32, v uint32) uint32 {
			b.clear(v & 0xff)
			return v
		},
	})
	b.regs.Add(regmap.Register{Name: "AFSEL", Offset: AFSEL, OnWrite: pins})
	b.regs.Add(regmap.Register{Name: "DR2R", Offset: DR2R, Reset: 0xff, OnWrite: pins})
	b.regs.Add(regmap.Register{Name: "LOCK", Offset: LOCK, Reset: 1,
		OnWrite: func(_ uint32, v uint32) uint32 {
			if v == UnlockKey {
				return 0
			}
			return 1
		},
	})

	b.regs.Storage(map[uint32]string{
		DR4R:   "DR4R",
		DR8R:   "DR8R",
		ODR:    "ODR",
		PUR:    "PUR",
		PDR:    "PDR",
		SLR:    "SLR",
		DEN:    "DEN",
		CR:     "CR",
		AMSEL:  "AMSEL",
		PCTL:   "PCTL",
		ADCCTL: "ADCCTL",
		DMACTL: "DMACTL",
	})

	b.regs.Identification(
		[8]uint32{0x00, 0x00, 0x00, 0x00, 0x61, 0x00, 0x18, 0x01},
		[4]uint32{0x0d, 0xf0, 0x05, 0xb1},
	)

	return b
}

// SetClearMode changes the behaviour of ICR writes.
func (b *Bank) SetClearMode(m ClearMode) {
	b.mode = m
}

// Label implements the bus.Peripheral interface.
func (b *Bank) Label() string {
	return b.regs.Label()
}

// Registers returns the register map of the bank.
func (b *Bank) Registers() *regmap.Map {
	return b.regs
}

// Data returns the current pin levels.
func (b *Bank) Data() uint32 {
	return b.data
}

func (b *Bank) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: data=%#02x ", b.regs.Label(), b.data))
	s.WriteString(fmt.Sprintf("im=%#02x ris=%#02x mis=%#02x", b.im.Value(), b.ris.Value(), b.mis.Value()))
	return s.String()
}

// Read implements the bus.Peripheral interface.
func (b *Bank) Read(offset uint32) uint32 {
	if offset <= DataTop {
		return b.data & mask(offset)
	}
	return b.regs.Read(offset)
}

// Write implements the bus.Peripheral interface.
func (b *Bank) Write(offset uint32, value uint32) {
	if offset <= DataTop {
		m := mask(offset)
		b.detect((b.data &^ m) | (value & m))
		return
	}
	b.regs.Write(offset, value)
}

// Reset implements the bus.Peripheral interface.
func (b *Bank) Reset() {
	b.regs.Reset()
	b.data = 0
}

// the data bits selected by an offset in the data window
func mask(offset uint32) uint32 {
	return (offset >> 2) & 0xff
}

// detect interrupt conditions for a change of pin levels from the current
// data value to v. the new value is stored.
func (b *Bank) detect(v uint32) {
	d := b.data
	b.data = v

	changed := v ^ d
	rising := changed & v
	falling := changed &^ v

	is := b.is.Value()
	ibe := b.ibe.Value()
	iev := b.iev.Value()
	im := b.im.Value()

	level := is & ((iev & v) | (^iev & ^v))
	edge := (^is & ibe & changed) |
		(^is & ^ibe & iev & rising) |
		(^is & ^ibe & ^iev & falling)

	asserted := (level | edge) & 0xff & im
	if asserted == 0 {
		return
	}

	ris := b.ris.Value() | asserted
	b.ris.Set(ris)
	b.mis.Set(ris & im)
	b.line.Pulse()
}

func (b *Bank) clear(v uint32) {
	ris := b.ris.Value()
	switch b.mode {
	case Toggle:
		ris ^= v
	case ClearOnly:
		ris &^= v
	}
	b.ris.Set(ris)
	b.mis.Set(ris & b.im.Value())
}
