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

// Package prefs holds configurable values for the simulation. Values are
// typed (Bool, Int, Float, String), stored atomically and can have hook
// functions that are called when the value changes. This means a peripheral
// can respond to a preference change without the preference package knowing
// anything about the peripheral.
//
// Values are collated into a Disk instance which saves and loads the values
// to a file. The format of the file is one value per line:
//
//	key :: value
//
// Values from other Disk instances sharing the same file are preserved when
// the file is saved.
//
// The command line stack allows preference values to be overridden for a
// single run of the program. See PushCommandLineStack().
package prefs
