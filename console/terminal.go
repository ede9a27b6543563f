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

package console

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/term"
	xterm "golang.org/x/term"

	"github.com/tivasim/tivasim/curated"
	"github.com/tivasim/tivasim/logger"
)

// ControllingTerminal is the device opened by OpenTerminal().
const ControllingTerminal = "/dev/tty"

// EscapeKey ends terminal input. Ctrl-] as used by telnet.
const EscapeKey = 0x1d

// NotTerminal is the pattern of the error returned by OpenTerminal() when
// standard input is not a terminal.
const NotTerminal = "console: standard input is not a terminal"

// Terminal is a host terminal in raw mode.
type Terminal struct {
	t *term.Term
}

// IsTerminal returns true if the file is a terminal.
func IsTerminal(f *os.File) bool {
	return xterm.IsTerminal(int(f.Fd()))
}

// OpenTerminal puts the controlling terminal into raw mode. Closing the
// stream returns the terminal to its original mode.
func OpenTerminal() (Stream, error) {
	if !IsTerminal(os.Stdin) {
		return Stream{}, curated.Errorf(NotTerminal)
	}

	t, err := term.Open(ControllingTerminal, term.RawMode)
	if err != nil {
		return Stream{}, curated.Errorf("console: %v", err)
	}

	logger.Logf(logger.Allow, "console", "terminal in raw mode. press ctrl-] to end input")

	tm := &Terminal{t: t}
	return Stream{
		Name:   ControllingTerminal,
		Reader: &escapeReader{r: tm.t},
		Writer: &crlfWriter{w: tm.t},
		Closer: tm,
	}, nil
}

// Close implements the io.Closer interface.
func (tm *Terminal) Close() error {
	if err := tm.t.Restore(); err != nil {
		_ = tm.t.Close()
		return curated.Errorf("console: %v", err)
	}
	if err := tm.t.Close(); err != nil {
		return curated.Errorf("console: %v", err)
	}
	return nil
}

// raw mode turns off output processing so a newline must be written as a
// carriage return and a newline
type crlfWriter struct {
	w    io.Writer
	last byte
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	var out bytes.Buffer
	for _, b := range p {
		if b == '\n' && c.last != '\r' {
			out.WriteByte('\r')
		}
		out.WriteByte(b)
		c.last = b
	}
	if _, err := c.w.Write(out.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}

// ends input at the escape key. bytes before the key in the same read are
// returned
type escapeReader struct {
	r    io.Reader
	done bool
}

func (e *escapeReader) Read(p []byte) (int, error) {
	if e.done {
		return 0, io.EOF
	}
	n, err := e.r.Read(p)
	if i := bytes.IndexByte(p[:n], EscapeKey); i >= 0 {
		e.done = true
		return i, io.EOF
	}
	return n, err
}
