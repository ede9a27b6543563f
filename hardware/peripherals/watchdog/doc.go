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

// Package watchdog models the two watchdog timers of the TM4C123. WDT0 runs
// from the system clock and WDT1 from the precision internal oscillator.
//
// A watchdog escalates in two stages. The first time-out raises the
// interrupt, signals the non-maskable interrupt and starts a second count. If
// the interrupt has not been cleared when the second count times out, and
// reset is enabled, the watchdog requests a system reset. Without reset
// enabled the second time-out raises the interrupt again.
//
//	Idle --LOAD or INTEN--> Armed --time-out--> FirstExpired --time-out--> reset
//	                          ^                      |
//	                          +-------- ICR ---------+
//
// The LOCK register protects CTL and TEST from stray writes. LOAD and ICR can
// be written whatever the lock state.
package watchdog
