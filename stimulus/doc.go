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

// Package stimulus reads and runs stimulus scripts. A script drives the SoC
// in place of firmware: it writes registers, moves time forward and checks
// the results.
//
// A script is line based. Blank lines and anything following a # are
// ignored. The commands are:
//
//	write ADDR VALUE     write VALUE to the register at ADDR
//	read ADDR [VALUE]    read the register at ADDR and print the result. if
//	                     VALUE is given the result must equal it
//	expect ADDR VALUE    the register at ADDR must read as VALUE
//	advance DURATION     move time forward. for example, 10us or 1.5ms
//	pulses LINE COUNT    interrupt line LINE must have pulsed COUNT times
//	nmi COUNT            the NMI must have been signalled COUNT times
//	resets COUNT         the watchdogs must have reset the system COUNT times
//	rx UART "TEXT"       the UART receives the bytes of TEXT
//	reset                reset the SoC
//	fault                the previous command must have faulted. the script
//	                     ends successfully
//
// Numbers are decimal, or hexadecimal and binary with the 0x and 0b
// prefixes. ADDR is anything accepted by hardware.SoC.Address(). UART is
// either an instance number or a name like UART1.
package stimulus
