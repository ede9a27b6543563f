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

package memorymap

import "fmt"

// Area represents the different classes of peripheral in the address space.
type Area int

// The different peripheral areas.
const (
	Undefined Area = iota
	Watchdog
	GPIO
	UART
	Timer
	WideTimer
	SysCtl
)

func (a Area) String() string {
	switch a {
	case Watchdog:
		return "WDT"
	case GPIO:
		return "GPIO"
	case UART:
		return "UART"
	case Timer:
		return "TIMER"
	case WideTimer:
		return "WTIMER"
	case SysCtl:
		return "SYSCTL"
	}
	return "undefined"
}

// ApertureSize is the size of the address space of each peripheral instance.
// OffsetBits keeps only the register offset of an address.
const (
	ApertureSize = 0x1000
	OffsetBits   = ApertureSize - 1
)

// Base addresses of every peripheral instance.
var (
	WatchdogBases = []uint32{0x40000000, 0x40001000}

	GPIOBases = []uint32{
		0x40004000, 0x40005000, 0x40006000, 0x40007000,
		0x40024000, 0x40025000,
	}

	UARTBases = []uint32{
		0x4000c000, 0x4000d000, 0x4000e000, 0x4000f000,
		0x40010000, 0x40011000, 0x40012000, 0x40013000,
	}

	TimerBases = []uint32{
		0x40030000, 0x40031000, 0x40032000, 0x40033000,
		0x40034000, 0x40035000,
	}

	WideTimerBases = []uint32{
		0x40036000, 0x40037000, 0x4004c000, 0x4004d000,
		0x4004e000, 0x4004f000,
	}

	SysCtlBase = uint32(0x400fe000)
)

var areas = map[uint32]struct {
	area     Area
	instance int
}{}

func init() {
	add := func(a Area, bases []uint32) {
		for i, b := range bases {
			areas[b] = struct {
				area     Area
				instance int
			}{area: a, instance: i}
		}
	}
	add(Watchdog, WatchdogBases)
	add(GPIO, GPIOBases)
	add(UART, UARTBases)
	add(Timer, TimerBases)
	add(WideTimer, WideTimerBases)
	add(SysCtl, []uint32{SysCtlBase})
}

// MapAddress returns the area, the instance and the register offset of an
// address. Addresses outside of any peripheral are in the Undefined area.
func MapAddress(address uint32) (Area, int, uint32) {
	a, ok := areas[address&^OffsetBits]
	if !ok {
		return Undefined, 0, address & OffsetBits
	}
	return a.area, a.instance, address & OffsetBits
}

// Bases returns the list of base addresses for an area.
func Bases(a Area) []uint32 {
	switch a {
	case Watchdog:
		return WatchdogBases
	case GPIO:
		return GPIOBases
	case UART:
		return UARTBases
	case Timer:
		return TimerBases
	case WideTimer:
		return WideTimerBases
	case SysCtl:
		return []uint32{SysCtlBase}
	}
	return nil
}

// Name returns the conventional name of a peripheral instance. For example,
// GPIO instance 5 is "GPIOF" and timer instance 2 is "TIMER2".
func Name(a Area, instance int) string {
	switch a {
	case GPIO:
		return fmt.Sprintf("GPIO%c", 'A'+instance)
	case SysCtl:
		return "SYSCTL"
	}
	return fmt.Sprintf("%s%d", a, instance)
}
