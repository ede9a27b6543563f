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

package regmap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tivasim/tivasim/logger"
)

// Register is a single record in a register map.
type Register struct {
	Name     string
	Offset   uint32
	Reset    uint32
	ReadOnly bool

	// optional hooks. see package documentation
	OnRead  func(stored uint32) uint32
	OnWrite func(current uint32, written uint32) uint32

	value uint32
}

// Value returns the stored value of the register, without calling the read
// hook.
func (r *Register) Value() uint32 {
	return r.value
}

// Set the stored value of the register, without calling the write hook. This
// is how a peripheral updates registers that the bus cannot write.
func (r *Register) Set(v uint32) {
	r.value = v
}

func (r *Register) String() string {
	return fmt.Sprintf("%s=%#08x", r.Name, r.value)
}

// Map is the register space of a single peripheral instance.
type Map struct {
	label string
	regs  map[uint32]*Register
	names map[string]*Register
}

// NewMap is the preferred method of initialisation for the Map type. The
// label is the tag used when logging.
func NewMap(label string) *Map {
	return &Map{
		label: label,
		regs:  make(map[uint32]*Register),
		names: make(map[string]*Register),
	}
}

// Label returns the label given to the map.
func (m *Map) Label() string {
	return m.label
}

// Add a register to the map and return the record. The stored value is set
// to the reset value.
//
// Adding two registers at the same offset, or with the same name, is a
// construction error and panics.
func (m *Map) Add(r Register) *Register {
	if _, ok := m.regs[r.Offset]; ok {
		panic(fmt.Sprintf("%s: duplicate register offset %#03x", m.label, r.Offset))
	}
	if _, ok := m.names[r.Name]; ok {
		panic(fmt.Sprintf("%s: duplicate register name %s", m.label, r.Name))
	}
	nr := r
	nr.value = nr.Reset
	m.regs[nr.Offset] = &nr
	m.names[nr.Name] = &nr
	return &nr
}

// Lookup the register at an offset.
func (m *Map) Lookup(offset uint32) (*Register, bool) {
	r, ok := m.regs[offset]
	return r, ok
}

// Named returns the register with the given name. Names are case
// insensitive.
func (m *Map) Named(name string) (*Register, bool) {
	r, ok := m.names[strings.ToUpper(name)]
	if !ok {
		r, ok = m.names[name]
	}
	return r, ok
}

// Read the register at offset.
func (m *Map) Read(offset uint32) uint32 {
	r, ok := m.regs[offset]
	if !ok {
		logger.Logf(logger.Allow, m.label, "read of unknown register offset %#03x", offset)
		return 0
	}
	if r.OnRead != nil {
		return r.OnRead(r.value)
	}
	return r.value
}

// Write the register at offset.
func (m *Map) Write(offset uint32, v uint32) {
	r, ok := m.regs[offset]
	if !ok {
		logger.Logf(logger.Allow, m.label, "write of unknown register offset %#03x (%#08x)", offset, v)
		return
	}
	if r.ReadOnly {
		logger.Logf(logger.Allow, m.label, "write to read-only register %s (%#08x)", r.Name, v)
		return
	}
	if r.OnWrite != nil {
		r.value = r.OnWrite(r.value, v)
		return
	}
	r.value = v
}

// Reset every register to its reset value. Hooks are not called.
func (m *Map) Reset() {
	for _, r := range m.regs {
		r.value = r.Reset
	}
}

// Registers returns all records ordered by offset.
func (m *Map) Registers() []*Register {
	l := make([]*Register, 0, len(m.regs))
	for _, r := range m.regs {
		l = append(l, r)
	}
	sort.Slice(l, func(i, j int) bool {
		return l[i].Offset < l[j].Offset
	})
	return l
}

func (m *Map) String() string {
	s := strings.Builder{}
	for _, r := range m.Registers() {
		s.WriteString(fmt.Sprintf("%03x %s\n", r.Offset, r))
	}
	return s.String()
}

// Storage adds plain storage registers. Each name is paired with its offset
// and the reset value is zero.
func (m *Map) Storage(regs map[uint32]string) {
	for off, name := range regs {
		m.Add(Register{Name: name, Offset: off})
	}
}

// Identification adds the read-only PrimeCell peripheral and cell ID
// registers at 0xfd0 to 0xffc. The periph argument holds PeriphID4 to 7
// followed by PeriphID0 to 3. The cell argument holds PCellID0 to 3.
func (m *Map) Identification(periph [8]uint32, cell [4]uint32) {
	for i, v := range periph {
		n := (i + 4) % 8
		m.Add(Register{
			Name:     fmt.Sprintf("PERIPHID%d", n),
			Offset:   0xfd0 + uint32(i)*4,
			Reset:    v,
			ReadOnly: true,
		})
	}
	for i, v := range cell {
		m.Add(Register{
			Name:     fmt.Sprintf("PCELLID%d", i),
			Offset:   0xff0 + uint32(i)*4,
			Reset:    v,
			ReadOnly: true,
		})
	}
}
