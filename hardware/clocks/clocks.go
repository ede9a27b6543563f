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

package clocks

import (
	"fmt"
	"sync/atomic"
)

// Frequencies in Hz.
const (
	PIOSC           = 16000000
	LaunchPadSysClk = 24000000
)

// Source is anything that can supply an input frequency in Hz.
type Source interface {
	Hz() uint64
}

// Clock is a named, adjustable frequency source.
type Clock struct {
	name string
	hz   atomic.Uint64
}

// NewClock is the preferred method of initialisation for the Clock type.
func NewClock(name string, hz uint64) *Clock {
	c := &Clock{name: name}
	c.hz.Store(hz)
	return c
}

// Hz implements the Source interface.
func (c *Clock) Hz() uint64 {
	return c.hz.Load()
}

// Set changes the frequency. Peripherals pick up the new frequency when they
// next arm a countdown.
func (c *Clock) Set(hz uint64) {
	c.hz.Store(hz)
}

func (c *Clock) String() string {
	return fmt.Sprintf("%s=%dHz", c.name, c.Hz())
}

// Tree is the set of clocks available to the peripherals.
type Tree struct {
	SysClk *Clock
	PIOSC  *Clock
}

// NewTree is the preferred method of initialisation for the Tree type.
func NewTree(sysclk uint64, piosc uint64) *Tree {
	return &Tree{
		SysClk: NewClock("sysclk", sysclk),
		PIOSC:  NewClock("piosc", piosc),
	}
}

func (t *Tree) String() string {
	return fmt.Sprintf("%s %s", t.SysClk, t.PIOSC)
}
