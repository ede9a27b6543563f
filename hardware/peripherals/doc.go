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

// Package peripherals is the parent package for the TM4C123 peripheral models.
// Each sub-package models one kind of peripheral and every model implements
// the bus.Peripheral interface:
//
//	gpio      general purpose I/O ports and their interrupt detector
//	gptm      general purpose timer modules, 16/32-bit and 32/64-bit
//	watchdog  two-stage watchdog timers
//	uart      serial ports
//
// Peripherals do not know their base address. The offset passed to Read()
// and Write() is relative to the start of the peripheral's aperture.
package peripherals
