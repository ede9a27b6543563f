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

package bus

import (
	"github.com/tivasim/tivasim/curated"
	"github.com/tivasim/tivasim/hardware/sysctl"
	"github.com/tivasim/tivasim/logger"
)

// Peripheral is the register space of a single peripheral instance.
type Peripheral interface {
	Label() string
	Read(offset uint32) uint32
	Write(offset uint32, value uint32)
	Reset()
}

// Device is a peripheral as seen by the address decoder.
type Device interface {
	Label() string
	Read(offset uint32) (uint32, error)
	Write(offset uint32, value uint32) error
}

// Authority answers whether a peripheral instance is clocked.
type Authority interface {
	IsClocked(c sysctl.Class, instance int) bool
}

// Fault is the pattern of the fatal error returned for an access to a
// peripheral that is not clocked.
const Fault = "bus: %s of %s offset %#03x while unclocked (%v %d)"

// Gate forwards accesses to a peripheral only when it is clocked.
type Gate struct {
	p        Peripheral
	auth     Authority
	class    sysctl.Class
	instance int
}

// NewGate is the preferred method of initialisation for the Gate type.
func NewGate(p Peripheral, auth Authority, class sysctl.Class, instance int) *Gate {
	return &Gate{
		p:        p,
		auth:     auth,
		class:    class,
		instance: instance,
	}
}

// Label implements the Device interface.
func (g *Gate) Label() string {
	return g.p.Label()
}

// Peripheral returns the wrapped peripheral.
func (g *Gate) Peripheral() Peripheral {
	return g.p
}

func (g *Gate) fault(access string, offset uint32) error {
	err := curated.Fatalf(Fault, access, g.p.Label(), offset, g.class, g.instance)
	logger.Log(logger.Allow, "bus", err)
	return err
}

// Read implements the Device interface.
func (g *Gate) Read(offset uint32) (uint32, error) {
	if !g.auth.IsClocked(g.class, g.instance) {
		return 0, g.fault("read", offset)
	}
	return g.p.Read(offset), nil
}

// Write implements the Device interface.
func (g *Gate) Write(offset uint32, value uint32) error {
	if !g.auth.IsClocked(g.class, g.instance) {
		return g.fault("write", offset)
	}
	g.p.Write(offset, value)
	return nil
}

// Ungated forwards every access to a peripheral.
type Ungated struct {
	Peripheral
}

// Read implements the Device interface.
func (u Ungated) Read(offset uint32) (uint32, error) {
	return u.Peripheral.Read(offset), nil
}

// Write implements the Device interface.
func (u Ungated) Write(offset uint32, value uint32) error {
	u.Peripheral.Write(offset, value)
	return nil
}
