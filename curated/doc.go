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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package but the pattern is kept with the
// error so that it can be tested for later:
//
//	e := curated.Errorf("gpio: bad offset %#03x", 0x800)
//
//	if curated.Is(e, "gpio: bad offset %#03x") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	e := curated.Errorf("gpio: bad offset %#03x", 0x800)
//	f := curated.Errorf("stimulus: line %d: %v", 10, e)
//
//	if curated.Has(f, "gpio: bad offset %#03x") {
//		fmt.Println("true")
//	}
//
// Sentinel patterns are stored as exported const strings in the package that
// creates them. For example, bus.Fault or prefs.NoPrefsFile.
//
// Fatalf() creates a curated error that is also marked as fatal. IsFatal()
// reports whether a fatal error occurs anywhere in the chain. The simulation
// uses fatal errors for conditions that must halt the system, such as access
// to a peripheral that has not been clocked. A fatal error stays fatal when it
// is wrapped by Errorf().
//
// The Error() function implementation normalises the error chain, removing
// duplicate adjacent parts. Chains are composed of parts separated by the
// sub-string ': '. For example:
//
//	part 1: part 2: part 3
//
// and a chain of "bus: bus: unclocked" is printed as "bus: unclocked".
package curated
