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

package memorymap_test

import (
	"testing"

	"github.com/tivasim/tivasim/hardware/memory/memorymap"
	"github.com/tivasim/tivasim/test"
)

func TestMapAddress(t *testing.T) {
	type mapping struct {
		area     memorymap.Area
		instance int
		offset   uint32
	}

	cases := map[uint32]mapping{
		0x40000000: {memorymap.Watchdog, 0, 0},
		0x40001c00: {memorymap.Watchdog, 1, 0xc00},
		0x400043fc: {memorymap.GPIO, 0, 0x3fc},
		0x40025414: {memorymap.GPIO, 5, 0x414},
		0x4000c018: {memorymap.UART, 0, 0x18},
		0x40013030: {memorymap.UART, 7, 0x30},
		0x4003500c: {memorymap.Timer, 5, 0xc},
		0x40037050: {memorymap.WideTimer, 1, 0x50},
		0x4004c000: {memorymap.WideTimer, 2, 0},
		0x4004f028: {memorymap.WideTimer, 5, 0x28},
		0x400fe608: {memorymap.SysCtl, 0, 0x608},
		0x40008000: {memorymap.Undefined, 0, 0},
		0x20000000: {memorymap.Undefined, 0, 0},
	}

	for addr, m := range cases {
		a, i, o := memorymap.MapAddress(addr)
		test.ExpectEquality(t, mapping{a, i, o}, m, addr)
	}
}

func TestNames(t *testing.T) {
	test.ExpectEquality(t, memorymap.Name(memorymap.GPIO, 5), "GPIOF")
	test.ExpectEquality(t, memorymap.Name(memorymap.Timer, 2), "TIMER2")
	test.ExpectEquality(t, memorymap.Name(memorymap.WideTimer, 0), "WTIMER0")
	test.ExpectEquality(t, memorymap.Name(memorymap.Watchdog, 1), "WDT1")
	test.ExpectEquality(t, memorymap.Name(memorymap.SysCtl, 0), "SYSCTL")
	test.ExpectEquality(t, len(memorymap.Bases(memorymap.UART)), 8)
	test.ExpectEquality(t, memorymap.Undefined.String(), "undefined")
}
