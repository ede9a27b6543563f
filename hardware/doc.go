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

// Package hardware is the base package for the TM4C123 peripheral simulation.
// The SoC type collects every peripheral model, attaches each one to the
// memory map behind a clock gate and connects the interrupt lines.
//
// There is no processor model. Register accesses arrive through SoC.Read()
// and SoC.Write() and time moves forward only when SoC.Advance() is called.
// Everything that happens in the simulation, register accesses and timer
// callbacks alike, happens in the context of the caller of those functions.
//
// Goroutines outside of the simulation, for example one reading a serial
// port, must not touch the peripherals. They post a function with
// SoC.Inject() instead, which runs at the next opportunity.
package hardware
