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

// Package uart models the UART modules of the TM4C123 as byte streams.
// There is no baud rate timing. A byte written to the data register is
// passed to the sink straight away and a received byte is available to the
// next read of the data register.
//
// Received bytes come from the host by way of Receive(), which must be called
// from the emulation's context and never from a host goroutine.
package uart
