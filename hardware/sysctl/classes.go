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

package sysctl

import "fmt"

// Class is a class of peripheral with its own set of clock gate, software
// reset, peripheral present and peripheral ready registers.
type Class int

// List of peripheral classes.
const (
	Watchdog Class = iota
	Timer
	GPIO
	DMA
	Hibernation
	UART
	SSI
	I2C
	USB
	CAN
	ADC
	ACMP
	PWM
	QEI
	EEPROM
	WideTimer
	NumClasses
)

type classInfo struct {
	name string

	// offset of the class within each bank of registers
	offset uint32

	// reset value of the peripheral present register
	present uint32

	// reset value of the clock gate and peripheral ready registers
	gated uint32

	// whether run mode gate writes are mirrored into the ready register
	mirrored bool
}

var classes = [NumClasses]classInfo{
	Watchdog:    {name: "WD", offset: 0x00, present: 0x03},
	Timer:       {name: "TIMER", offset: 0x04, present: 0x3f, mirrored: true},
	GPIO:        {name: "GPIO", offset: 0x08, present: 0x3f, mirrored: true},
	DMA:         {name: "DMA", offset: 0x0c, present: 0x01, mirrored: true},
	Hibernation: {name: "HIB", offset: 0x14, present: 0x01, gated: 0x01, mirrored: true},
	UART:        {name: "UART", offset: 0x18, present: 0xff, mirrored: true},
	SSI:         {name: "SSI", offset: 0x1c, present: 0x0f, mirrored: true},
	I2C:         {name: "I2C", offset: 0x20, present: 0x0f, mirrored: true},
	USB:         {name: "USB", offset: 0x28, present: 0x01, mirrored: true},
	CAN:         {name: "CAN", offset: 0x34, present: 0x03, mirrored: true},
	ADC:         {name: "ADC", offset: 0x38, present: 0x03, mirrored: true},
	ACMP:        {name: "ACMP", offset: 0x3c, present: 0x01, mirrored: true},
	PWM:         {name: "PWM", offset: 0x40, present: 0x03, mirrored: true},
	QEI:         {name: "QEI", offset: 0x44, present: 0x03, mirrored: true},
	EEPROM:      {name: "EEPROM", offset: 0x58, present: 0x01, mirrored: true},
	WideTimer:   {name: "WTIMER", offset: 0x5c, present: 0x3f, mirrored: true},
}

func (c Class) String() string {
	if c < 0 || c >= NumClasses {
		return fmt.Sprintf("class(%d)", int(c))
	}
	return classes[c].name
}

// Mirrored returns true if run mode gate writes for the class are mirrored
// into the class's peripheral ready register.
func (c Class) Mirrored() bool {
	return classes[c].mirrored
}

// Mode is the power mode a clock gate applies to.
type Mode int

// List of valid Mode values.
const (
	Run Mode = iota
	Sleep
	DeepSleep
	numModes
)

func (m Mode) String() string {
	switch m {
	case Run:
		return "RCGC"
	case Sleep:
		return "SCGC"
	case DeepSleep:
		return "DCGC"
	}
	panic("unknown clock gate mode")
}

// base offsets of each bank of per-class registers
const (
	bankPP   = 0x300
	bankSR   = 0x500
	bankRCGC = 0x600
	bankSCGC = 0x700
	bankDCGC = 0x800
	bankPR   = 0xa00
)

var gateBanks = [numModes]uint32{
	Run:       bankRCGC,
	Sleep:     bankSCGC,
	DeepSleep: bankDCGC,
}
