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

// Package interrupts connects peripherals to the interrupt controller.
//
// A peripheral holds a Line for each interrupt it can raise. Pulse() asserts
// the line and immediately deasserts it. Set() holds the line at a level.
// The watchdog also raises the non-maskable interrupt with NMI().
//
// The Controller is the sink for all lines. It stands in for the NVIC. It
// records the level and pending state of each line and counts the pulses,
// which is what conformance tests and the command line tools look at.
// Observers can be attached to the Controller to receive every change in
// signal, for example to record a trace.
package interrupts
