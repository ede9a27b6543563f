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

// Package paths contains functions to prepare paths to tivasim resources.
//
// The ResourcePath() function prepends the supplied resource with the
// appropriate config directory. For example, the following returns the path
// to the preferences file:
//
//	p, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
//
// If the base resource path ".tivasim" is present in the program's current
// directory then that is the base path used. Otherwise the user's config
// directory is used, as returned by os.UserConfigDir(). On a Linux system the
// example above returns:
//
//	/home/user/.config/tivasim/preferences
package paths
