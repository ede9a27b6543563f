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

package stimulus

import (
	"fmt"
	"io"

	"github.com/tivasim/tivasim/curated"
	"github.com/tivasim/tivasim/hardware"
	"github.com/tivasim/tivasim/logger"
)

// Failed is the pattern of the error returned by Run() when a check in the
// script does not hold. The values are the line number and a description.
const Failed = "stimulus: line %d: %s"

// Run a parsed script against the SoC. The output of read commands is
// written to out, which can be nil.
//
// Run stops at the first error. An error from the SoC is returned unchanged
// unless the command that follows is a fault command, in which case Run
// returns nil.
func Run(soc *hardware.SoC, script []Command, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	for i, c := range script {
		if c.Op == OpFault {
			return curated.Errorf(Failed, c.Line, "expected a fault but the previous command succeeded")
		}

		err := step(soc, c, out)
		if err == nil {
			continue
		}

		if curated.Is(err, Failed) {
			return err
		}

		if i+1 < len(script) && script[i+1].Op == OpFault {
			logger.Logf(logger.Allow, "stimulus", "line %d: expected fault: %v", c.Line, err)
			return nil
		}

		return err
	}

	return nil
}

func step(soc *hardware.SoC, c Command, out io.Writer) error {
	switch c.Op {
	case OpWrite:
		return soc.Write(c.Addr, c.Value)

	case OpRead:
		v, err := soc.Read(c.Addr)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "0x%08x: 0x%08x\n", c.Addr, v)
		if c.HasValue && uint64(v) != c.Value&0xffffffff {
			return curated.Errorf(Failed, c.Line, fmt.Sprintf("read %#08x: got %#x, expected %#x", c.Addr, v, c.Value))
		}

	case OpExpect:
		v, err := soc.Read(c.Addr)
		if err != nil {
			return err
		}
		if uint64(v) != c.Value&0xffffffff {
			return curated.Errorf(Failed, c.Line, fmt.Sprintf("expect %#08x: got %#x, expected %#x", c.Addr, v, c.Value))
		}

	case OpAdvance:
		return soc.Advance(c.Duration)

	case OpPulses:
		n := soc.Interrupts.Pulses(c.Index)
		if n != c.Count {
			return curated.Errorf(Failed, c.Line, fmt.Sprintf("line %d pulsed %d times, expected %d", c.Index, n, c.Count))
		}

	case OpNMI:
		n, _ := soc.Interrupts.NMIs()
		if n != c.Count {
			return curated.Errorf(Failed, c.Line, fmt.Sprintf("NMI signalled %d times, expected %d", n, c.Count))
		}

	case OpResets:
		if soc.Resets != c.Count {
			return curated.Errorf(Failed, c.Line, fmt.Sprintf("%d system resets, expected %d", soc.Resets, c.Count))
		}

	case OpRx:
		if err := soc.Halted(); err != nil {
			return curated.Errorf(hardware.Halted, err)
		}
		if c.Index >= len(soc.UART) {
			return curated.Errorf(Failed, c.Line, fmt.Sprintf("no UART%d", c.Index))
		}
		u := soc.UART[c.Index]
		for _, b := range []byte(c.Text) {
			if !u.Receive(b) {
				logger.Logf(logger.Allow, "stimulus", "line %d: %s did not accept %q", c.Line, u.Label(), b)
			}
		}

	case OpReset:
		soc.Reset()
	}

	return nil
}
