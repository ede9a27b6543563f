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

package uart

import (
	"fmt"
	"io"

	"github.com/tivasim/tivasim/hardware/interrupts"
	"github.com/tivasim/tivasim/hardware/memory/regmap"
	"github.com/tivasim/tivasim/logger"
)

// Register offsets.
const (
	DR        = 0x000
	RSR       = 0x004
	FR        = 0x018
	ILPR      = 0x020
	IBRD      = 0x024
	FBRD      = 0x028
	LCRH      = 0x02c
	CTL       = 0x030
	IFLS      = 0x034
	IM        = 0x038
	RIS       = 0x03c
	MIS       = 0x040
	ICR       = 0x044
	DMACTL    = 0x048
	NINEBITAD = 0x0a4
	NINEBITAM = 0x0a8
	PP        = 0xfc0
	CC        = 0xfc8
)

// Bits in the FR register.
const (
	RXFE = 1 << 4
	TXFF = 1 << 5
	RXFF = 1 << 6
	TXFE = 1 << 7
)

// Bits in the LCRH register.
const FEN = 1 << 4

// Bits in the CTL register.
const (
	UARTEN = 1 << 0
	TXE    = 1 << 8
	RXE    = 1 << 9
)

// Bits in the interrupt registers.
const (
	RXI = 1 << 4
	TXI = 1 << 5
	OEI = 1 << 10
)

// Bits in the RSR register.
const OE = 1 << 3

// FIFODepth is the depth of the receive FIFO when FIFOs are enabled.
const FIFODepth = 16

// UART is a single UART module.
type UART struct {
	regs *regmap.Map
	line interrupts.Line
	sink io.Writer

	rx []uint8

	lcrh *regmap.Register
	ctl  *regmap.Register
	rsr  *regmap.Register
	im   *regmap.Register
	ris  *regmap.Register
	mis  *regmap.Register

	// level of the interrupt line
	level bool
}

// NewUART is the preferred method of initialisation for the UART type. The
// sink receives transmitted bytes and can be nil.
func NewUART(label string, line interrupts.Line, sink io.Writer) *UART {
	u := &UART{
		regs: regmap.NewMap(label),
		line: line,
		sink: sink,
		rx:   make([]uint8, 0, FIFODepth),
	}

	u.regs.Add(regmap.Register{Name: "DR", Offset: DR,
		OnRead: func(_ uint32) uint32 {
			return u.pop()
		},
		OnWrite: func(_ uint32, v uint32) uint32 {
			u.transmit(uint8(v))
			return v & 0xff
		},
	})
	u.rsr = u.regs.Add(regmap.Register{Name: "RSR", Offset: RSR,
		OnWrite: func(_ uint32, _ uint32) uint32 {
			// any write clears the error flags
			return 0
		},
	})
	u.regs.Add(regmap.Register{Name: "FR", Offset: FR, Reset: RXFE | TXFE, ReadOnly: true,
		OnRead: func(_ uint32) uint32 {
			return u.flags()
		},
	})
	u.lcrh = u.regs.Add(regmap.Register{Name: "LCRH", Offset: LCRH,
		OnWrite: func(old uint32, v uint32) uint32 {
			// changing the FIFO enable flushes the receive FIFO
			if (old^v)&FEN != 0 {
				u.rx = u.rx[:0]
			}
			return v & 0xff
		},
	})
	u.ctl = u.regs.Add(regmap.Register{Name: "CTL", Offset: CTL, Reset: TXE | RXE})
	u.regs.Add(regmap.Register{Name: "IFLS", Offset: IFLS, Reset: 0x12})
	u.im = u.regs.Add(regmap.Register{Name: "IM", Offset: IM,
		OnWrite: func(_ uint32, v uint32) uint32 {
			u.im.Set(v)
			u.update()
			return v
		},
	})
	u.ris = u.regs.Add(regmap.Register{Name: "RIS", Offset: RIS, ReadOnly: true})
	u.mis = u.regs.Add(regmap.Register{Name: "MIS", Offset: MIS, ReadOnly: true})
	u.regs.Add(regmap.Register{Name: "ICR", Offset: ICR,
		OnWrite: func(_ uint32, v uint32) uint32 {
			u.ris.Set(u.ris.Value() &^ v)
			u.update()
			return 0
		},
	})
	u.regs.Add(regmap.Register{Name: "9BITAMASK", Offset: NINEBITAM, Reset: 0xff})
	u.regs.Add(regmap.Register{Name: "PP", Offset: PP, Reset: 0x3, ReadOnly: true})

	u.regs.Storage(map[uint32]string{
		ILPR:      "ILPR",
		IBRD:      "IBRD",
		FBRD:      "FBRD",
		DMACTL:    "DMACTL",
		NINEBITAD: "9BITADDR",
		CC:        "CC",
	})

	u.regs.Identification(
		[8]uint32{0x00, 0x00, 0x00, 0x00, 0x60, 0x00, 0x18, 0x01},
		[4]uint32{0x0d, 0xf0, 0x05, 0xb1},
	)

	return u
}

// Label implements the bus.Peripheral interface.
func (u *UART) Label() string {
	return u.regs.Label()
}

// Registers returns the register map of the UART.
func (u *UART) Registers() *regmap.Map {
	return u.regs
}

// SetSink changes the destination of transmitted bytes. A nil sink discards
// them.
func (u *UART) SetSink(sink io.Writer) {
	u.sink = sink
}

func (u *UART) String() string {
	return fmt.Sprintf("%s: rx=%d/%d ris=%#03x im=%#03x", u.regs.Label(), len(u.rx), u.depth(), u.ris.Value(), u.im.Value())
}

// Read implements the bus.Peripheral interface.
func (u *UART) Read(offset uint32) uint32 {
	return u.regs.Read(offset)
}

// Write implements the bus.Peripheral interface.
func (u *UART) Write(offset uint32, value uint32) {
	u.regs.Write(offset, value)
}

// Reset implements the bus.Peripheral interface. The receive FIFO is emptied
// and the interrupt line is released.
func (u *UART) Reset() {
	u.regs.Reset()
	u.rx = u.rx[:0]
	u.update()
}

// Receive a byte from the host. The byte is dropped if the UART or its
// receiver is disabled. Returns false if the byte was not accepted.
func (u *UART) Receive(b uint8) bool {
	ctl := u.ctl.Value()
	if ctl&UARTEN == 0 || ctl&RXE == 0 {
		return false
	}

	if len(u.rx) >= u.depth() {
		u.rsr.Set(u.rsr.Value() | OE)
		u.ris.Set(u.ris.Value() | OEI)
		u.update()
		logger.Logf(logger.Allow, u.regs.Label(), "receive overrun (%#02x)", b)
		return false
	}

	u.rx = append(u.rx, b)
	u.ris.Set(u.ris.Value() | RXI)
	u.update()
	return true
}

// Pending returns the number of bytes in the receive FIFO.
func (u *UART) Pending() int {
	return len(u.rx)
}

func (u *UART) depth() int {
	if u.lcrh.Value()&FEN != 0 {
		return FIFODepth
	}
	return 1
}

func (u *UART) flags() uint32 {
	// transmission is immediate so the transmit FIFO is always empty
	f := uint32(TXFE)
	if len(u.rx) == 0 {
		f |= RXFE
	}
	if len(u.rx) >= u.depth() {
		f |= RXFF
	}
	return f
}

func (u *UART) pop() uint32 {
	if len(u.rx) == 0 {
		return 0
	}
	b := u.rx[0]
	u.rx = append(u.rx[:0], u.rx[1:]...)
	if len(u.rx) == 0 {
		u.ris.Set(u.ris.Value() &^ RXI)
		u.update()
	}
	return uint32(b)
}

func (u *UART) transmit(b uint8) {
	ctl := u.ctl.Value()
	if ctl&UARTEN == 0 || ctl&TXE == 0 {
		logger.Logf(logger.Allow, u.regs.Label(), "transmit while disabled (%#02x)", b)
		return
	}

	if u.sink != nil {
		if _, err := u.sink.Write([]byte{b}); err != nil {
			logger.Log(logger.Allow, u.regs.Label(), err)
		}
	}

	u.ris.Set(u.ris.Value() | TXI)
	u.update()
}

// recompute the masked status and drive the interrupt line
func (u *UART) update() {
	mis := u.ris.Value() & u.im.Value()
	u.mis.Set(mis)
	level := mis != 0
	if level != u.level {
		u.level = level
		u.line.Set(level)
	}
}
