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

// Package sysctl implements the system control block of the TM4C123. Its main
// job in the simulation is to be the clock-gate authority: it owns the run,
// sleep and deep-sleep clock gate registers for each class of peripheral and
// answers whether a peripheral instance is clocked.
//
// Only the run mode gates decide whether a peripheral is clocked. Writing a
// run mode gate of most classes is mirrored into the read-only peripheral
// ready (PR) register of that class. The watchdog class is not mirrored.
//
// The remaining registers are mostly storage with a documented reset value.
// Writing RCC or RCC2 so that the PLL is powered sets the PLL lock bit in the
// raw interrupt status, which firmware polls when changing the system clock.
// Writing a bit of a software reset (SR) register resets the corresponding
// peripheral instance.
package sysctl
