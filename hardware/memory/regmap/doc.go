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

// Package regmap describes the register space of a peripheral as a table of
// records, one per register offset. A record carries the register name, the
// power-on reset value, whether the register is read-only, and optional hooks
// for registers with side effects.
//
// Registers without hooks are plain storage: a write stores the value and a
// read returns it. A write hook is given the current value and the written
// value and returns the value to store, which lets a peripheral act on a
// write, veto it or transform it. A read hook is given the stored value and
// returns the value seen by the bus.
//
// Accesses to offsets that are not in the map are logged. They read as zero
// and writes to them are ignored. Writes to read-only registers are logged
// and dropped.
package regmap
