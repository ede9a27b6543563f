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

// Package memory is the address decoder between the bus master (firmware, or
// a stimulus script standing in for firmware) and the peripherals.
//
//	                               ---- WDT0..1 ---- gate ---- watchdog
//	                              |
//	                              |---- GPIOA..F ---- gate ---- gpio
//	                              |
//	    MASTER ---- Memory ---- * |---- UART0..7 ---- gate ---- uart
//	                              |
//	                              |---- (W)TIMER0..5 ---- gate ---- gptm
//	                              |
//	                               ---- SYSCTL ---- sysctl
//
// The asterisk indicates that addresses are split into an aperture base and a
// register offset, as described in the memorymap package. Each aperture is a
// bus.Device. All peripherals other than the system control block are behind
// a bus.Gate.
//
// Writes are 32 bit. Wider values are truncated. Accesses to addresses that
// are not in any aperture are logged, read as zero and are otherwise ignored.
//
// Every access can be traced to the central logger.
package memory
