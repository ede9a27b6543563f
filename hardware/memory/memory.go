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

package memory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tivasim/tivasim/hardware/memory/bus"
	"github.com/tivasim/tivasim/hardware/memory/memorymap"
	"github.com/tivasim/tivasim/logger"
)

// Memory decodes addresses to devices.
type Memory struct {
	devices map[uint32]bus.Device

	// permission to log every access
	trace logger.Permission
}

type noTrace struct{}

func (noTrace) AllowLogging() bool {
	return false
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The trace argument controls whether accesses are logged. It can be nil.
func NewMemory(trace logger.Permission) *Memory {
	if trace == nil {
		trace = noTrace{}
	}
	return &Memory{
		devices: make(map[uint32]bus.Device),
		trace:   trace,
	}
}

// Attach a device at the base of an aperture. Attaching two devices at the
// same base is a construction error and panics.
func (mem *Memory) Attach(base uint32, dev bus.Device) {
	if base&memorymap.OffsetBits != 0 {
		panic(fmt.Sprintf("memory: base address %#08x is not aligned to an aperture", base))
	}
	if _, ok := mem.devices[base]; ok {
		panic(fmt.Sprintf("memory: aperture %#08x is already attached", base))
	}
	mem.devices[base] = dev
}

// Device returns the device in the aperture of the address.
func (mem *Memory) Device(address uint32) (bus.Device, bool) {
	dev, ok := mem.devices[address&^memorymap.OffsetBits]
	return dev, ok
}

// Read the 32 bit register at address.
func (mem *Memory) Read(address uint32) (uint32, error) {
	dev, ok := mem.Device(address)
	if !ok {
		logger.Logf(logger.Allow, "memory", "read of unmapped address %#08x", address)
		return 0, nil
	}

	v, err := dev.Read(address & memorymap.OffsetBits)
	if err != nil {
		return 0, err
	}
	logger.Logf(mem.trace, "trace", "read %s %#08x -> %#08x", dev.Label(), address, v)

	return v, nil
}

// Write a value to the 32 bit register at address. The value is truncated
// to 32 bits.
func (mem *Memory) Write(address uint32, value uint64) error {
	v := uint32(value)

	dev, ok := mem.Device(address)
	if !ok {
		logger.Logf(logger.Allow, "memory", "write of unmapped address %#08x (%#08x)", address, v)
		return nil
	}

	logger.Logf(mem.trace, "trace", "write %s %#08x <- %#08x", dev.Label(), address, v)
	return dev.Write(address&memorymap.OffsetBits, v)
}

func (mem *Memory) String() string {
	bases := make([]uint32, 0, len(mem.devices))
	for b := range mem.devices {
		bases = append(bases, b)
	}
	sort.Slice(bases, func(i, j int) bool { return bases[i] < bases[j] })

	s := strings.Builder{}
	for _, b := range bases {
		s.WriteString(fmt.Sprintf("%#08x %s\n", b, mem.devices[b].Label()))
	}
	return s.String()
}
