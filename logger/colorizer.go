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

package logger

import (
	"io"
	"strings"
)

// ANSI sequences used by the Colorizer.
const (
	dimRed    = "\033[2;31m"
	normalPen = "\033[0m"
)

// Colorizer applies basic coloring rules to logging output. Entries with the
// tag of a fault are written in red.
type Colorizer struct {
	out    io.Writer
	faults []string
}

// NewColorizer is the preferred method if initialisation for the Colorizer
// type. The faults argument lists the tags to highlight.
func NewColorizer(out io.Writer, faults ...string) Colorizer {
	return Colorizer{out: out, faults: faults}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	s := string(p)
	for _, f := range c.faults {
		if strings.HasPrefix(s, f+": ") {
			m, err := io.WriteString(c.out, dimRed+strings.TrimSuffix(s, "\n")+normalPen+"\n")
			if err != nil {
				return m, err
			}
			return len(p), nil
		}
	}
	return c.out.Write(p)
}
