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

// Package gptm models the general purpose timer modules of the TM4C123. There
// are two variants: the 16/32-bit units (TIMER0 to TIMER5) and the 32/64-bit
// wide units (WTIMER0 to WTIMER5).
//
// Each Module has two sub-timers, A and B. In the full width and RTC
// configurations the two are concatenated and only sub-timer A runs. In the
// split configuration each sub-timer runs independently and the prescaler
// extends the count.
//
// Timers do not count tick by tick. Starting a sub-timer computes the
// deadline of its next time-out from the interval and the clock frequency and
// hands it to the scheduler. Reading a counter register computes the current
// count from the time remaining.
//
// Periodic timers are drift free. Each deadline is computed from the start of
// the current epoch rather than from the previous deadline, so rounding
// errors do not accumulate. A new epoch begins when the interval or the
// clock frequency changes.
package gptm
