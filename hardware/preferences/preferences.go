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

package preferences

import (
	"strings"

	"github.com/tivasim/tivasim/curated"
	"github.com/tivasim/tivasim/hardware/clocks"
	"github.com/tivasim/tivasim/prefs"
)

// Values for the GPIOClearMode preference.
const (
	// writing the interrupt clear register toggles the written bits of the
	// raw interrupt status
	ClearToggle = "toggle"

	// writing the interrupt clear register clears the written bits of the
	// raw interrupt status
	ClearOnly = "clear"
)

// InvalidValue is the pattern of the error returned when a preference is set
// to a value outside of its range.
const InvalidValue = "preferences: invalid value for %s: %v"

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	dsk *prefs.Disk

	// behaviour of the GPIO interrupt clear register. ClearToggle or
	// ClearOnly
	GPIOClearMode prefs.String

	// frequencies of the system clock and the precision internal oscillator
	SysClk prefs.Int
	PIOSC  prefs.Int

	// log every register access
	Trace prefs.Bool

	// base the realtime domain on the host's wall clock. if false the
	// realtime domain starts at the Unix epoch, which makes a run
	// reproducible
	WallClock prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. An empty path means that there is no preferences file.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.GPIOClearMode.SetHookPre(func(v prefs.Value) error {
		switch strings.TrimSpace(v.(string)) {
		case ClearToggle, ClearOnly:
			return nil
		}
		return curated.Errorf(InvalidValue, "hardware.gpio.icrmode", v)
	})

	positive := func(key string) func(v prefs.Value) error {
		return func(v prefs.Value) error {
			if v.(int) <= 0 {
				return curated.Errorf(InvalidValue, key, v)
			}
			return nil
		}
	}
	p.SysClk.SetHookPre(positive("hardware.clocks.sysclk"))
	p.PIOSC.SetHookPre(positive("hardware.clocks.piosc"))

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("hardware.gpio.icrmode", &p.GPIOClearMode)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.clocks.sysclk", &p.SysClk)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.clocks.piosc", &p.PIOSC)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.trace", &p.Trace)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hardware.rtc.wallclock", &p.WallClock)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all hardware preferences to their default values.
func (p *Preferences) SetDefaults() {
	_ = p.GPIOClearMode.Set(ClearToggle)
	_ = p.SysClk.Set(clocks.LaunchPadSysClk)
	_ = p.PIOSC.Set(clocks.PIOSC)
	_ = p.Trace.Set(false)
	_ = p.WallClock.Set(true)
}

// Load current hardware preference from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// AllowLogging implements the logger.Permission interface. Register tracing
// is allowed when the Trace preference is true.
func (p *Preferences) AllowLogging() bool {
	return p.Trace.Get().(bool)
}
