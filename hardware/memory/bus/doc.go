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

// Package bus defines how register accesses reach a peripheral.
//
// A Peripheral is the register space of a single peripheral instance,
// addressed by offset from its base address. Peripherals never fail: unknown
// offsets and writes to read-only registers are diagnostics, not errors.
//
// A Device is what the address decoder talks to. Accesses to a Device can
// fail. The Gate is a Device that wraps a Peripheral and asks a clock-gate
// Authority whether the peripheral is clocked before forwarding the access.
// An access to an unclocked peripheral is a bus fault. On real hardware
// the bus locks up and so the fault is fatal to the simulation.
//
// Ungated wraps a Peripheral that is always accessible, such as the system
// control block itself.
package bus
