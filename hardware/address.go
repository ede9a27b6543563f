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
	"strconv"
	"strings"

	"github.com/tivasim/tivasim/curated"
	"github.com/tivasim/tivasim/hardware/memory/memorymap"
	"github.com/tivasim/tivasim/hardware/memory/regmap"
)

// UnknownAddress is the pattern of the error returned by Address() when a
// name cannot be resolved.
const UnknownAddress = "soc: unknown address: %s"

// the peripherals that can list their registers
type registered interface {
	Registers() *regmap.Map
}

// Address resolves a symbolic address. Accepted forms are:
//
//	0x40025000       a number, in any base accepted by strconv.ParseUint
//	GPIOF            the base address of a peripheral
//	GPIOF.IM         the address of a named register
//	GPIOF+0x3fc      an offset from the base of a peripheral
//
// Names are case insensitive.
func (s *SoC) Address(name string) (uint32, error) {
	if v, err := strconv.ParseUint(name, 0, 32); err == nil {
		return uint32(v), nil
	}

	periph := strings.ToUpper(name)
	var reg string
	var offset uint64
	var hasOffset bool

	if i := strings.IndexAny(periph, ".+"); i >= 0 {
		if periph[i] == '+' {
			v, err := strconv.ParseUint(strings.ToLower(periph[i+1:]), 0, 32)
			if err != nil {
				return 0, curated.Errorf(UnknownAddress, name)
			}
			offset = v
			hasOffset = true
		} else {
			reg = periph[i+1:]
		}
		periph = periph[:i]
	}

	base, ok := s.base(periph)
	if !ok {
		return 0, curated.Errorf(UnknownAddress, name)
	}

	if hasOffset {
		if offset > memorymap.OffsetBits {
			return 0, curated.Errorf(UnknownAddress, name)
		}
		return base + uint32(offset), nil
	}

	if reg == "" {
		return base, nil
	}

	p, ok := s.Peripheral(periph)
	if !ok {
		return 0, curated.Errorf(UnknownAddress, name)
	}
	rp, ok := p.(registered)
	if !ok {
		return 0, curated.Errorf(UnknownAddress, name)
	}
	r, ok := rp.Registers().Named(reg)
	if !ok {
		return 0, curated.Errorf(UnknownAddress, name)
	}
	return base + r.Offset, nil
}

// the base address of the named peripheral
func (s *SoC) base(name string) (uint32, bool) {
	if name == "SYSCTL" {
		return memorymap.SysCtlBase, true
	}
	for _, area := range []memorymap.Area{memorymap.GPIO, memorymap.Timer, memorymap.WideTimer, memorymap.Watchdog, memorymap.UART} {
		for i, base := range memorymap.Bases(area) {
			if memorymap.Name(area, i) == name {
				return base, true
			}
		}
	}
	return 0, false
}
