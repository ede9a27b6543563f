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

package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tivasim/tivasim/paths"
	"github.com/tivasim/tivasim/test"
)

func TestLocalResourcePath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	test.DemandSuccess(t, os.Mkdir(".tivasim", 0o700))

	pth, err := paths.ResourcePath("", "preferences")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".tivasim", "preferences"))

	pth, err = paths.ResourcePath("traces", "irq.wav")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".tivasim", "traces", "irq.wav"))

	_, err = os.Stat(filepath.Join(".tivasim", "traces"))
	test.ExpectSuccess(t, err)
}
