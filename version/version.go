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

// Package version reports the version of the simulator. A release build sets
// the number with the linker:
//
//	go build -ldflags "-X github.com/tivasim/tivasim/version.number=v0.1.0"
//
// Other builds take what they can from the build information.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the simulator.
const ApplicationName = "Tivasim"

// set by the linker for release builds
var number string

var (
	version  string
	revision string
)

// Version returns the version string, the vcs revision and whether this is a
// numbered release.
//
// The version is "unreleased" for a build from a repository without a
// release number and "local" when there is no vcs information at all. The
// revision is suffixed with "+dirty" when the source has been modified
// since the last commit.
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

// String returns the application name with the version. The revision is
// included for builds that are not releases.
func String() string {
	v, r, release := Version()
	if release {
		return fmt.Sprintf("%s %s", ApplicationName, v)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, v, r)
}

func init() {
	var vcs, modified bool

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
	}

	switch {
	case revision == "":
		revision = "no revision information"
	case modified:
		revision += "+dirty"
	}

	switch {
	case number != "":
		version = number
	case vcs:
		version = "unreleased"
	default:
		version = "local"
	}
}
