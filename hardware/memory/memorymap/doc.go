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

// Package memorymap describes the peripheral address space of the TM4C123.
//
// Every peripheral instance occupies a 4KB aperture. MapAddress() splits an
// address into the area, the instance within the area and the register
// offset within the aperture.
//
// Only the APB apertures are mapped. The AHB GPIO apertures are not.
package memorymap
