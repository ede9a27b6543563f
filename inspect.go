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

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/spf13/cobra"

	"github.com/tivasim/tivasim/curated"
	"github.com/tivasim/tivasim/hardware"
	"github.com/tivasim/tivasim/hardware/memory/regmap"
)

type inspectOptions struct {
	*options
	script string
	graph  bool
}

func newDumpCommand(opts *options) *cobra.Command {
	iopts := &inspectOptions{options: opts}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "dump the state of the SoC",
		Long:  "Print a summary of the SoC and every peripheral, optionally after running a script. With --graph the state is written in the Graphviz dot format.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dump(cmd, iopts)
		},
	}

	cmd.Flags().StringVar(&iopts.script, "script", "", "run a stimulus script first")
	cmd.Flags().BoolVar(&iopts.graph, "graph", false, "write the state as a Graphviz graph")

	return cmd
}

func newRegsCommand(opts *options) *cobra.Command {
	iopts := &inspectOptions{options: opts}

	cmd := &cobra.Command{
		Use:   "regs <peripheral>",
		Short: "list the registers of a peripheral",
		Long:  "List the registers of a peripheral, eg. GPIOF, TIMER0, WTIMER5, WDT1, UART2 or SYSCTL, optionally after running a script.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return regs(cmd, iopts, args[0])
		},
	}

	cmd.Flags().StringVar(&iopts.script, "script", "", "run a stimulus script first")

	return cmd
}

// every peripheral of the SoC. a peripheral that is clock gated is still
// listed
func peripherals(soc *hardware.SoC) []fmt.Stringer {
	var l []fmt.Stringer
	l = append(l, soc.SysCtl)
	for _, p := range soc.GPIO {
		l = append(l, p)
	}
	for _, p := range soc.Timers {
		l = append(l, p)
	}
	for _, p := range soc.WideTimers {
		l = append(l, p)
	}
	for _, p := range soc.Watchdogs {
		l = append(l, p)
	}
	for _, p := range soc.UART {
		l = append(l, p)
	}
	return l
}

func dump(cmd *cobra.Command, opts *inspectOptions) error {
	out := cmd.OutOrStdout()

	soc, done, err := newSoC(cmd, opts.options)
	if err != nil {
		return err
	}
	defer done()

	err = runScript(soc, opts.script, out)
	if err != nil {
		return err
	}

	if opts.graph {
		snap := snapshot(soc)
		memviz.Map(out, &snap)
		return nil
	}

	fmt.Fprintln(out, soc)
	fmt.Fprint(out, soc.Mem)
	for _, p := range peripherals(soc) {
		fmt.Fprintln(out, p)
	}
	fmt.Fprintln(out, soc.Interrupts)

	return nil
}

// a peripheral with a register map
type registers interface {
	Registers() *regmap.Map
}

type registerState struct {
	Name   string
	Offset uint32
	Value  uint32
}

type peripheralState struct {
	Name      string
	Summary   string
	Registers []registerState
}

type socState struct {
	Time        string
	Resets      int
	Peripherals []peripheralState
}

// the graph is drawn from plain values rather than from the SoC itself, which
// is full of functions and cycles
func snapshot(soc *hardware.SoC) socState {
	st := socState{
		Time:   soc.String(),
		Resets: soc.Resets,
	}
	for _, p := range peripherals(soc) {
		ps := peripheralState{Summary: p.String()}
		if r, ok := p.(registers); ok {
			m := r.Registers()
			ps.Name = m.Label()
			for _, rg := range m.Registers() {
				ps.Registers = append(ps.Registers, registerState{Name: rg.Name, Offset: rg.Offset, Value: rg.Value()})
			}
		}
		st.Peripherals = append(st.Peripherals, ps)
	}
	return st
}

func regs(cmd *cobra.Command, opts *inspectOptions, name string) error {
	out := cmd.OutOrStdout()

	soc, done, err := newSoC(cmd, opts.options)
	if err != nil {
		return err
	}
	defer done()

	err = runScript(soc, opts.script, out)
	if err != nil {
		return err
	}

	p, ok := soc.Peripheral(name)
	if !ok {
		return curated.Errorf("tivasim: no such peripheral (%s)", name)
	}
	r, ok := p.(registers)
	if !ok {
		return curated.Errorf("tivasim: %s has no register map", p.Label())
	}

	writeRegisters(out, strings.ToUpper(name), r.Registers())

	return nil
}

func writeRegisters(out io.Writer, name string, m *regmap.Map) {
	for _, r := range m.Registers() {
		access := "rw"
		if r.ReadOnly {
			access = "ro"
		}
		fmt.Fprintf(out, "%s.%-12s %03x %s 0x%08x\n", name, r.Name, r.Offset, access, r.Value())
	}
}
