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

// Package scheduler is the virtual clock of the simulation. Peripherals
// schedule callbacks at deadlines on a nanosecond timeline and the owner of
// the scheduler moves time forward with Advance().
//
// Callbacks are delivered one at a time, in deadline order. Callbacks with
// the same deadline are delivered in the order they were scheduled. Time
// only moves forward: a callback scheduled in the past is delivered at the
// current time.
//
// There are two time domains. The Virtual domain starts at zero when the
// scheduler is created. The Realtime domain is a wall clock base, captured
// when the scheduler is created, plus the virtual time elapsed. Deadlines in
// either domain are therefore ordered on the one timeline and a simulation
// run is reproducible.
//
// Cancel() is synchronous. A cancelled event is never delivered.
package scheduler
