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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tivasim/tivasim/curated"
)

// ParseError is the pattern of errors returned by Parse(). The values are the
// line number and a description of the problem.
const ParseError = "stimulus: line %d: %v"

// Op identifies the command on a line of a script.
type Op int

// List of valid Op values.
const (
	OpWrite Op = iota
	OpRead
	OpExpect
	OpAdvance
	OpPulses
	OpNMI
	OpResets
	OpRx
	OpReset
	OpFault
)

var opNames = map[string]Op{
	"write":   OpWrite,
	"read":    OpRead,
	"expect":  OpExpect,
	"advance": OpAdvance,
	"pulses":  OpPulses,
	"nmi":     OpNMI,
	"resets":  OpResets,
	"rx":      OpRx,
	"reset":   OpReset,
	"fault":   OpFault,
}

func (op Op) String() string {
	for n, o := range opNames {
		if o == op {
			return n
		}
	}
	panic("unknown stimulus op")
}

// Resolver turns the symbolic addresses of a script into numbers.
type Resolver interface {
	Address(name string) (uint32, error)
}

// Command is a single parsed line of a script.
type Command struct {
	Line int
	Op   Op

	Addr     uint32
	Value    uint64
	HasValue bool
	Duration time.Duration

	// line number for OpPulses, instance for OpRx
	Index int
	Count int
	Text  string
}

func (c Command) String() string {
	switch c.Op {
	case OpWrite, OpExpect:
		return fmt.Sprintf("%s %#08x %#x", c.Op, c.Addr, c.Value)
	case OpRead:
		if c.HasValue {
			return fmt.Sprintf("%s %#08x %#x", c.Op, c.Addr, c.Value)
		}
		return fmt.Sprintf("%s %#08x", c.Op, c.Addr)
	case OpAdvance:
		return fmt.Sprintf("%s %s", c.Op, c.Duration)
	case OpPulses:
		return fmt.Sprintf("%s %d %d", c.Op, c.Index, c.Count)
	case OpNMI, OpResets:
		return fmt.Sprintf("%s %d", c.Op, c.Count)
	case OpRx:
		return fmt.Sprintf("%s %d %q", c.Op, c.Index, c.Text)
	}
	return c.Op.String()
}

// Parse a script. Addresses are resolved as the script is parsed.
func Parse(r io.Reader, res Resolver) ([]Command, error) {
	var script []Command

	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		c, ok, err := parseLine(n, scanner.Text(), res)
		if err != nil {
			return nil, curated.Errorf(ParseError, n, err)
		}
		if ok {
			script = append(script, c)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(ParseError, n, err)
	}

	return script, nil
}

// ParseString is a convenience wrapper for Parse().
func ParseString(s string, res Resolver) ([]Command, error) {
	return Parse(strings.NewReader(s), res)
}

// returns false if the line is empty
func parseLine(n int, line string, res Resolver) (Command, bool, error) {
	c := Command{Line: n}

	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return c, false, nil
	}

	op, ok := opNames[strings.ToLower(fields[0])]
	if !ok {
		return c, false, fmt.Errorf("unknown command %q", fields[0])
	}
	c.Op = op

	// the rx command has a quoted argument which may contain a # or
	// whitespace
	if op == OpRx {
		return parseRx(c, line)
	}

	args := fields[1:]
	for i, a := range args {
		if strings.HasPrefix(a, "#") {
			args = args[:i]
			break
		}
	}

	var err error

	switch op {
	case OpWrite, OpExpect:
		if len(args) != 2 {
			return c, false, fmt.Errorf("%s needs an address and a value", op)
		}
		if c.Addr, err = res.Address(args[0]); err != nil {
			return c, false, err
		}
		if c.Value, err = number(args[1]); err != nil {
			return c, false, err
		}
		c.HasValue = true

	case OpRead:
		if len(args) < 1 || len(args) > 2 {
			return c, false, fmt.Errorf("read needs an address and an optional value")
		}
		if c.Addr, err = res.Address(args[0]); err != nil {
			return c, false, err
		}
		if len(args) == 2 {
			if c.Value, err = number(args[1]); err != nil {
				return c, false, err
			}
			c.HasValue = true
		}

	case OpAdvance:
		if len(args) != 1 {
			return c, false, fmt.Errorf("advance needs a duration")
		}
		if c.Duration, err = time.ParseDuration(args[0]); err != nil {
			return c, false, err
		}
		if c.Duration < 0 {
			return c, false, fmt.Errorf("advance cannot go backwards (%s)", args[0])
		}

	case OpPulses:
		if len(args) != 2 {
			return c, false, fmt.Errorf("pulses needs a line and a count")
		}
		if c.Index, err = count(args[0]); err != nil {
			return c, false, err
		}
		if c.Count, err = count(args[1]); err != nil {
			return c, false, err
		}

	case OpNMI, OpResets:
		if len(args) != 1 {
			return c, false, fmt.Errorf("%s needs a count", op)
		}
		if c.Count, err = count(args[0]); err != nil {
			return c, false, err
		}

	case OpReset, OpFault:
		if len(args) != 0 {
			return c, false, fmt.Errorf("%s takes no arguments", op)
		}
	}

	return c, true, nil
}

func parseRx(c Command, line string) (Command, bool, error) {
	rest := strings.TrimSpace(line)
	rest = strings.TrimSpace(rest[len("rx"):])

	i := strings.IndexAny(rest, " \t")
	if i < 0 {
		return c, false, fmt.Errorf("rx needs a UART and some text")
	}

	unit := strings.ToUpper(rest[:i])
	unit = strings.TrimPrefix(unit, "UART")
	var err error
	if c.Index, err = count(unit); err != nil {
		return c, false, err
	}

	rest = strings.TrimSpace(rest[i:])
	q, err := strconv.QuotedPrefix(rest)
	if err != nil {
		return c, false, fmt.Errorf("rx text must be quoted")
	}
	if c.Text, err = strconv.Unquote(q); err != nil {
		return c, false, err
	}

	tail := strings.TrimSpace(rest[len(q):])
	if tail != "" && !strings.HasPrefix(tail, "#") {
		return c, false, fmt.Errorf("unexpected text after rx string: %q", tail)
	}

	return c, true, nil
}

func number(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %s", s)
	}
	return v, nil
}

func count(s string) (int, error) {
	v, err := strconv.ParseUint(s, 0, 31)
	if err != nil {
		return 0, fmt.Errorf("not a count: %s", s)
	}
	return int(v), nil
}
