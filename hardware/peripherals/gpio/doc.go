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

// Package gpio models a GPIO port of the TM4C123. The pin level is held as a
// plain register, there are no physical pins, and the interrupt detector is
// driven by writes to the data register.
//
// The detector compares the new data value with the old one. Bits that
// satisfy the configured sense condition (level, rising edge, falling edge or
// both edges) are asserted. Asserted bits that are unmasked are latched into
// the raw interrupt status and the port's interrupt line is pulsed, once per
// write.
//
// The data register is reached through the address-masked window at offsets
// 0x000 to 0x3fc. Address bits [9:2] select which data bits a read or write
// affects.
package gpio
