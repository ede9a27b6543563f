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

// Package console connects a UART of the simulated SoC to a byte stream on
// the host. Bytes written by the UART go to the stream and bytes read from
// the stream are received by the UART.
//
// Three streams are provided. Stdio() writes to standard output and never
// reads. OpenTerminal() puts the controlling terminal into raw mode so that
// every key press is received as it is typed. OpenSerial() opens a host
// serial port.
//
// Host input arrives on a goroutine and so is never given directly to the
// UART. Each byte is posted to the SoC with its Inject() function and is
// received the next time the simulation runs.
package console
