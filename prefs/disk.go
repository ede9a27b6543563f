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

package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tivasim/tivasim/curated"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is the first line of every preferences file.
const WarningBoilerPlate = "*** do not edit this file while tivasim is running ***"

// Sentinel error patterns.
const (
	NoPrefsFile    = "prefs: no prefs file (%s)"
	DuplicateKey   = "prefs: duplicate key (%s)"
	DiskError      = "prefs: %v"
	InvalidPrefsKV = "prefs: invalid value for %s: %v"
)

// the separator between key and value in the prefs file
const keySep = " :: "

// Disk represents preference values as stored on disk.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type. An
// empty path means the values are never stored but can still be overridden
// by the command line stack.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add preference value to list of values to store/load.
func (dsk *Disk) Add(key string, p pref) error {
	key = strings.TrimSpace(key)
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	dsk.entries[key] = p
	return nil
}

func (dsk *Disk) keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (dsk *Disk) String() string {
	s := strings.Builder{}
	for _, k := range dsk.keys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, dsk.entries[k].String()))
	}
	return s.String()
}

// Reset all entries to their zero value.
func (dsk *Disk) Reset() error {
	for _, k := range dsk.keys() {
		if err := dsk.entries[k].Reset(); err != nil {
			return curated.Errorf(InvalidPrefsKV, k, err)
		}
	}
	return nil
}

// read the prefs file into a map of raw strings. a missing file is not an
// error and returns an empty map and false.
func (dsk *Disk) read() (map[string]string, bool, error) {
	raw := make(map[string]string)

	if dsk.path == "" {
		return raw, false, nil
	}

	f, err := os.Open(dsk.path)
	if err != nil {
		if os.IsNotExist(err) {
			return raw, false, nil
		}
		return nil, false, curated.Errorf(DiskError, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	// the first line is the boilerplate
	if !scanner.Scan() {
		return raw, true, nil
	}

	for scanner.Scan() {
		kv := strings.SplitN(scanner.Text(), keySep, 2)
		if len(kv) != 2 {
			continue
		}
		raw[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, false, curated.Errorf(DiskError, err)
	}

	return raw, true, nil
}

// Save current preference values to disk. Values in the file that do not
// belong to this Disk instance are preserved.
func (dsk *Disk) Save() error {
	if dsk.path == "" {
		return curated.Errorf(DiskError, "no path for prefs file")
	}

	raw, _, err := dsk.read()
	if err != nil {
		return err
	}

	for k, p := range dsk.entries {
		raw[k] = p.String()
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, raw[k]))
	}

	if err := os.WriteFile(dsk.path, []byte(s.String()), 0o600); err != nil {
		return curated.Errorf(DiskError, err)
	}

	return nil
}

// Load preference values from disk. Values on the command line stack
// override values from the file.
//
// If saveOnFail is true and the file does not exist then the file is created
// with the current values. The NoPrefsFile error is returned in either case.
func (dsk *Disk) Load(saveOnFail bool) error {
	raw, found, err := dsk.read()
	if err != nil {
		return err
	}

	for _, k := range dsk.keys() {
		if v, ok := raw[k]; ok {
			if err := dsk.entries[k].Set(v); err != nil {
				return curated.Errorf(InvalidPrefsKV, k, err)
			}
		}
		if ok, v := GetCommandLinePref(k); ok {
			if err := dsk.entries[k].Set(v); err != nil {
				return curated.Errorf(InvalidPrefsKV, k, err)
			}
		}
	}

	if !found {
		if saveOnFail && dsk.path != "" {
			if err := dsk.Save(); err != nil {
				return err
			}
		}
		return curated.Errorf(NoPrefsFile, dsk.path)
	}

	return nil
}
