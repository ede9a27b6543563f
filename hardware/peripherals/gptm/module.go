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
	"strings"

	"github.com/tivasim/tivasim/hardware/clocks"
	"github.com/tivasim/tivasim/hardware/interrupts"
	"github.com/tivasim/tivasim/hardware/memory/regmap"
	"github.com/tivasim/tivasim/logger"
)

// Module is a single timer unit with two sub-timers.
type Module struct {
	regs    *regmap.Map
	variant Variant
	sched   Scheduler
	clk     clocks.Source

	A SubTimer
	B SubTimer

	cfg *regmap.Register
	ctl *regmap.Register
	imr *regmap.Register
	ris *regmap.Register
	mis *regmap.Register
}

// NewModule is the preferred method of initialisation for the Module type.
// The lines are the interrupt lines of sub-timers A and B.
func NewModule(label string, variant Variant, sched Scheduler, clk clocks.Source, lineA interrupts.Line, lineB interrupts.Line) *Module {
	m := &Module{
		regs:    regmap.NewMap(label),
		variant: variant,
		sched:   sched,
		clk:     clk,
	}
	m.A = SubTimer{mod: m, name: "A", line: lineA, enable: TAEN, timeout: TATO}
	m.B = SubTimer{mod: m, name: "B", line: lineB, enable: TBEN, timeout: TBTO}

	// reset value of the B side registers that are 16 bits wide on a
	// narrow unit
	var bReset uint32 = 0xffff
	var pp uint32
	if variant == Wide {
		bReset = 0xffffffff
		pp = 1
	}

	m.cfg = m.regs.Add(regmap.Register{Name: "CFG", Offset: CFG,
		OnWrite: func(_ uint32, v uint32) uint32 {
			return v & 0x7
		},
	})
	m.A.mr = m.regs.Add(regmap.Register{Name: "TAMR", Offset: TAMR,
		OnWrite: func(_ uint32, v uint32) uint32 {
			return v & 0xfff
		},
	})
	m.B.mr = m.regs.Add(regmap.Register{Name: "TBMR", Offset: TBMR,
		OnWrite: func(_ uint32, v uint32) uint32 {
			return v & 0xfff
		},
	})
	m.ctl = m.regs.Add(regmap.Register{Name: "CTL", Offset: CTL,
		OnWrite: func(old uint32, v uint32) uint32 {
			m.control(old, v)
			return m.ctl.Value()
		},
	})
	m.imr = m.regs.Add(regmap.Register{Name: "IMR", Offset: IMR,
		OnWrite: func(_ uint32, v uint32) uint32 {
			m.mis.Set(m.ris.Value() & v)
			return v
		},
	})
	m.ris = m.regs.Add(regmap.Register{Name: "RIS", Offset: RIS, ReadOnly: true})
	m.mis = m.regs.Add(regmap.Register{Name: "MIS", Offset: MIS, ReadOnly: true})
	m.regs.Add(regmap.Register{Name: "ICR", Offset: ICR,
		OnWrite: func(_ uint32, v uint32) uint32 {
			ris := m.ris.Value() &^ v
			m.ris.Set(ris)
			m.mis.Set(ris & m.imr.Value())
			return v
		},
	})

	m.A.ilr = m.regs.Add(regmap.Register{Name: "TAILR", Offset: TAILR, Reset: 0xffffffff})
	m.B.ilr = m.regs.Add(regmap.Register{Name: "TBILR", Offset: TBILR, Reset: bReset})
	m.regs.Add(regmap.Register{Name: "TAMATCHR", Offset: TAMATCHR, Reset: 0xffffffff})
	m.regs.Add(regmap.Register{Name: "TBMATCHR", Offset: TBMATCHR, Reset: bReset})
	m.A.pr = m.regs.Add(regmap.Register{Name: "TAPR", Offset: TAPR})
	m.B.pr = m.regs.Add(regmap.Register{Name: "TBPR", Offset: TBPR})

	m.A.r = m.regs.Add(regmap.Register{Name: "TAR", Offset: TAR, Reset: 0xffffffff, ReadOnly: true,
		OnRead: func(stored uint32) uint32 {
			return m.live(&m.A, 0, stored)
		},
	})
	m.B.r = m.regs.Add(regmap.Register{Name: "TBR", Offset: TBR, Reset: bReset, ReadOnly: true,
		OnRead: func(stored uint32) uint32 {
			return m.live(&m.B, 32, stored)
		},
	})
	m.A.v = m.regs.Add(regmap.Register{Name: "TAV", Offset: TAV, Reset: 0xffffffff,
		OnRead: func(stored uint32) uint32 {
			return m.live(&m.A, 0, stored)
		},
	})
	m.B.v = m.regs.Add(regmap.Register{Name: "TBV", Offset: TBV, Reset: bReset,
		OnRead: func(stored uint32) uint32 {
			return m.live(&m.B, 32, stored)
		},
	})

	m.regs.Add(regmap.Register{Name: "RTCPD", Offset: RTCPD, Reset: 0x7fff, ReadOnly: true})
	m.regs.Add(regmap.Register{Name: "PP", Offset: PP, Reset: pp, ReadOnly: true})

	m.regs.Storage(map[uint32]string{
		SYNC:  "SYNC",
		TAPMR: "TAPMR",
		TBPMR: "TBPMR",
	})

	// prescale snapshots and values
	for off, name := range map[uint32]string{TAPS: "TAPS", TBPS: "TBPS", TAPV: "TAPV", TBPV: "TBPV"} {
		m.regs.Add(regmap.Register{Name: name, Offset: off, ReadOnly: true})
	}

	return m
}

// Label implements the bus.Peripheral interface.
func (m *Module) Label() string {
	return m.regs.Label()
}

// Registers returns the register map of the module.
func (m *Module) Registers() *regmap.Map {
	return m.regs
}

// Variant returns whether the module is a narrow or a wide unit.
func (m *Module) Variant() Variant {
	return m.variant
}

func (m *Module) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s (%s) cfg=%#x ", m.regs.Label(), m.variant, m.cfg.Value()))
	s.WriteString(m.A.String())
	s.WriteString(" ")
	s.WriteString(m.B.String())
	return s.String()
}

// Read implements the bus.Peripheral interface.
func (m *Module) Read(offset uint32) uint32 {
	return m.regs.Read(offset)
}

// Write implements the bus.Peripheral interface.
func (m *Module) Write(offset uint32, value uint32) {
	m.regs.Write(offset, value)
}

// Reset implements the bus.Peripheral interface. Pending time-outs are
// cancelled.
func (m *Module) Reset() {
	m.A.stop()
	m.B.stop()
	m.regs.Reset()
}

func (m *Module) split() bool {
	return m.cfg.Value() == CfgSplit
}

func (m *Module) combined() bool {
	return !m.split()
}

// the load value for the sub-timer in the current configuration
func (m *Module) interval(st *SubTimer) uint64 {
	if m.split() {
		if m.variant == Narrow {
			return uint64(st.ilr.Value() & 0xffff)
		}
		return uint64(st.ilr.Value())
	}

	if m.variant == Narrow {
		return uint64((m.A.ilr.Value() & 0xffff0000) | (m.B.ilr.Value() & 0xffff))
	}
	return uint64(m.A.ilr.Value())<<32 | uint64(m.B.ilr.Value())
}

// the live value of a counter register. the shift selects the half of the
// count seen by the register in the combined wide configuration
func (m *Module) live(st *SubTimer, shift uint, stored uint32) uint32 {
	if m.combined() {
		if m.A.state != Running {
			return stored
		}
		n := m.A.count()
		if m.variant == Wide {
			return uint32(n >> shift)
		}
		return uint32(n)
	}
	if st.state != Running {
		return stored
	}
	return uint32(st.count())
}

func (m *Module) control(old uint32, v uint32) {
	m.ctl.Set(v)

	for _, st := range []*SubTimer{&m.A, &m.B} {
		wasOn := old&st.enable != 0
		isOn := v&st.enable != 0
		switch {
		case !wasOn && isOn:
			if st == &m.B && m.combined() {
				logger.Logf(logger.Allow, m.regs.Label(), "timer B enabled in combined configuration")
				continue
			}
			st.reload()
			st.start()
		case wasOn && !isOn:
			st.stop()
		}
	}
}

func (m *Module) timeout(st *SubTimer) {
	ris := m.ris.Value() | st.timeout
	m.ris.Set(ris)
	if m.imr.Value()&st.timeout != 0 {
		m.mis.Set(ris & m.imr.Value())
		st.line.Pulse()
	}
}
