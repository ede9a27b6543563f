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

// Package clocks models the clock tree feeding the peripherals and the
// conversion between clock ticks and the nanosecond timeline of the
// scheduler.
//
// The TM4C123 has a precision internal oscillator (PIOSC) running at 16MHz
// and a system clock derived from the main oscillator and the PLL. The
// system clock feeds the general purpose timers and watchdog 0. Watchdog 1
// is fed by the PIOSC.
//
// Conversion is fixed point. Durations are whole nanoseconds, rounded
// down, and computed with a 128 bit intermediate product. Results that do
// not fit are saturated rather than wrapped.
package clocks
