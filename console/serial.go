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
	"fmt"

	"go.bug.st/serial"

	"github.com/tivasim/tivasim/curated"
)

// DefaultBaud is the rate used by OpenSerial() when baud is zero.
const DefaultBaud = 115200

// OpenSerial opens a host serial port with eight data bits, no parity and
// one stop bit.
func OpenSerial(port string, baud int) (Stream, error) {
	if baud == 0 {
		baud = DefaultBaud
	}
	if baud < 0 {
		return Stream{}, curated.Errorf("console: invalid baud rate (%d)", baud)
	}

	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	p, err := serial.Open(port, mode)
	if err != nil {
		return Stream{}, curated.Errorf("console: %s: %v", port, err)
	}

	return Stream{
		Name:   fmt.Sprintf("%s@%d", port, baud),
		Reader: p,
		Writer: p,
		Closer: p,
	}, nil
}

// Ports lists the serial ports on the host.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, curated.Errorf("console: %v", err)
	}
	return ports, nil
}
