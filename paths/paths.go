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

package paths

import (
	"os"
	"path/filepath"
)

// the base path for all resources. getBasePath() should be used rather than
// this value directly.
const baseResourcePath = ".tivasim"

// ResourcePath returns the resource string prepended with the base resource
// path. The directory containing the resource is created if necessary.
func ResourcePath(subPth string, file string) (string, error) {
	base, err := getBasePath(subPth)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, file), nil
}

func getBasePath(subPth string) (string, error) {
	pth := baseResourcePath
	if _, err := os.Stat(baseResourcePath); err != nil {
		cfg, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		pth = filepath.Join(cfg, baseResourcePath[1:])
	}

	pth = filepath.Join(pth, subPth)
	if err := os.MkdirAll(pth, 0o700); err != nil {
		return "", err
	}

	return pth, nil
}
