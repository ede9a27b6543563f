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

package prefs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/tivasim/tivasim/curated"
	"github.com/tivasim/tivasim/prefs"
	"github.com/tivasim/tivasim/test"
)

func getTmpPrefFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "tivasim_prefs_test")
}

func cmpTmpFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	if err != nil {
		t.Errorf("error reading tmp file: %v", err)
		return
	}

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := getTmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	var w prefs.Bool
	var x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("true"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")

	// keys must be unique
	err = dsk.Add("test", &w)
	test.ExpectSuccess(t, curated.Is(err, prefs.DuplicateKey))
}

func TestInt(t *testing.T) {
	fn := getTmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	var w prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Add("numberB", &w))

	test.ExpectSuccess(t, v.Set(10))
	test.ExpectSuccess(t, w.Set("99"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "number :: 10\nnumberB :: 99\n")

	// hex string are accepted
	test.ExpectSuccess(t, w.Set("0x10"))
	test.ExpectEquality(t, w.Get().(int), 16)

	test.ExpectFailure(t, v.Set("---"))
	test.ExpectFailure(t, v.Set(1.0))
}

func TestFloat(t *testing.T) {
	var v prefs.Float
	test.ExpectSuccess(t, v.Set("1.5"))
	test.ExpectEquality(t, v.String(), "1.500")
	test.ExpectSuccess(t, v.Set(2))
	test.ExpectEquality(t, v.Get().(float64), 2.0)
	test.ExpectFailure(t, v.Set("x"))
}

// write bool and then a string from a different prefs.Disk instance. tests
// that the second writing doesn't clobber the results of the first write.
func TestBoolAndString(t *testing.T) {
	fn := getTmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, v.Set(true))
	test.DemandSuccess(t, dsk.Save())

	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &s))
	test.ExpectSuccess(t, s.Set("bar"))
	test.DemandSuccess(t, dsk.Save())

	cmpTmpFile(t, fn, "foo :: bar\ntest :: true\n")
}

func TestLoad(t *testing.T) {
	fn := getTmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	test.ExpectSuccess(t, dsk.Add("hardware.clocks.sysclk", &v))

	// no file yet. load with saveOnFail creates one
	err = dsk.Load(true)
	test.ExpectSuccess(t, curated.Is(err, prefs.NoPrefsFile))
	cmpTmpFile(t, fn, "hardware.clocks.sysclk :: 0\n")

	test.ExpectSuccess(t, v.Set(24000000))
	test.DemandSuccess(t, dsk.Save())
	test.ExpectSuccess(t, v.Reset())
	test.ExpectEquality(t, v.Get().(int), 0)

	test.ExpectSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, v.Get().(int), 24000000)

	// command line overrides the file
	prefs.PushCommandLineStack("hardware.clocks.sysclk::16000000")
	test.ExpectSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, v.Get().(int), 16000000)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

func TestHooks(t *testing.T) {
	var v prefs.Bool
	var seen []prefs.Value

	v.SetHookPre(func(nv prefs.Value) error {
		if nv.(bool) && v.Get().(bool) {
			return fmt.Errorf("already set")
		}
		return nil
	})
	v.SetHookPost(func(nv prefs.Value) error {
		seen = append(seen, nv)
		return nil
	})

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectFailure(t, v.Set(true))
	test.ExpectSuccess(t, v.Set(false))
	test.ExpectEquality(t, len(seen), 2)
}

func TestNoPath(t *testing.T) {
	dsk, err := prefs.NewDisk("")
	test.DemandSuccess(t, err)

	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("hardware.gpio.icrmode", &s))
	test.ExpectSuccess(t, s.Set("toggle"))

	prefs.PushCommandLineStack("hardware.gpio.icrmode::clear")
	err = dsk.Load(true)
	test.ExpectSuccess(t, curated.Is(err, prefs.NoPrefsFile))
	test.ExpectEquality(t, s.String(), "clear")
	prefs.PopCommandLineStack()

	test.ExpectFailure(t, dsk.Save())
	test.ExpectEquality(t, dsk.String(), "hardware.gpio.icrmode :: clear\n")
}
