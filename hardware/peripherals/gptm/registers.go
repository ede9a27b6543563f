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

package gptm

import (
	"github.com/tivasim/tivasim/hardware/scheduler"
)

// Register offsets.
const (
	CFG      = 0x000
	TAMR     = 0x004
	TBMR     = 0x008
	CTL      = 0x00c
	SYNC     = 0x010
	IMR      = 0x018
	RIS      = 0x01c
	MIS      = 0x020
	ICR      = 0x024
	TAILR    = 0x028
	TBILR    = 0x02c
	TAMATCHR = 0x030
	TBMATCHR = 0x034
	TAPR     = 0x038
	TBPR     = 0x03c
	TAPMR    = 0x040
	TBPMR    = 0x044
	TAR      = 0x048
	TBR      = 0x04c
	TAV      = 0x050
	TBV      = 0x054
	RTCPD    = 0x058
	TAPS     = 0x05c
	TBPS     = 0x060
	TAPV     = 0x064
	TBPV     = 0x068
	PP       = 0xfc0
)

// Values of the CFG register.
const (
	CfgFull  = 0x0
	CfgRTC   = 0x1
	CfgSplit = 0x4
)

// Values of the mode field in TAMR and TBMR.
const (
	ModeOneShot  = 0x1
	ModePeriodic = 0x2
	ModeCapture  = 0x3
	modeMask     = 0x3
)

// Bits in the CTL register.
const (
	TAEN = 1 << 0
	TBEN = 1 << 8
)

// Time-out bits in the IMR, RIS, MIS and ICR registers.
const (
	TATO = 1 << 0
	TBTO = 1 << 8
)

// Variant distinguishes the 16/32-bit units from the 32/64-bit wide units.
type Variant int

// List of valid Variant values.
const (
	Narrow Variant = iota
	Wide
)

func (v Variant) String() string {
	switch v {
	case Narrow:
		return "16/32-bit"
	case Wide:
		return "32/64-bit"
	}
	panic("unknown timer variant")
}

// Scheduler is the part of the scheduler used by the timers.
type Scheduler interface {
	Now(d scheduler.Domain) int64
	Schedule(d scheduler.Domain, deadline int64, label string, f func()) *scheduler.Event
	Cancel(e *scheduler.Event)
}
