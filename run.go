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
	"github.com/spf13/cobra"

	"github.com/tivasim/tivasim/console"
	"github.com/tivasim/tivasim/curated"
	"github.com/tivasim/tivasim/hardware"
	"github.com/tivasim/tivasim/hardware/interrupts"
	"github.com/tivasim/tivasim/hardware/scheduler"
	"github.com/tivasim/tivasim/irqtrace"
	"github.com/tivasim/tivasim/statsview"
)

type runOptions struct {
	*options
	console   bool
	serial    string
	baud      int
	uart      int
	irqtrace  string
	statsview bool
}

func newRunCommand(opts *options) *cobra.Command {
	ro := &runOptions{options: opts}

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "run a stimulus script",
		Long:  "Run a stimulus script against a freshly reset SoC. The exit status is non-zero if a check in the script fails or the SoC faults unexpectedly.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, ro, args[0])
		},
	}

	cmd.Flags().BoolVar(&ro.console, "console", false, "connect the UART to the terminal in raw mode")
	cmd.Flags().StringVar(&ro.serial, "serial", "", "connect the UART to a host serial port")
	cmd.Flags().IntVar(&ro.baud, "baud", console.DefaultBaud, "baud rate of the serial port")
	cmd.Flags().IntVar(&ro.uart, "uart", 0, "the UART connected to the console or serial port")
	cmd.Flags().StringVar(&ro.irqtrace, "irqtrace", "", "record the interrupt lines to a WAV file")
	cmd.Flags().BoolVar(&ro.statsview, "statsview", false, "launch the runtime statistics server")

	return cmd
}

// the lines recorded by the irqtrace option. one of each kind of peripheral
// and the NMI
func traceLines() []int {
	return []int{
		hardware.GPIOLines[0],
		hardware.GPIOLines[5],
		hardware.TimerLines[0][0],
		hardware.TimerLines[0][1],
		hardware.WideTimerLine[0][0],
		hardware.WatchdogLine,
		hardware.UARTLines[0],
		interrupts.NMILine,
	}
}

func run(cmd *cobra.Command, ro *runOptions, filename string) (rerr error) {
	out := cmd.OutOrStdout()

	if ro.console && ro.serial != "" {
		return curated.Errorf("tivasim: the console and serial options cannot be used together")
	}
	if ro.uart < 0 || ro.uart >= len(hardware.UARTLines) {
		return curated.Errorf("tivasim: no such UART (%d)", ro.uart)
	}

	if ro.statsview {
		if !statsview.Available() {
			return curated.Errorf("tivasim: statsview is not available in this build")
		}
		statsview.Launch(out)
	}

	soc, done, err := newSoC(cmd, ro.options)
	if err != nil {
		return err
	}
	defer done()

	var stream console.Stream
	switch {
	case ro.serial != "":
		stream, err = console.OpenSerial(ro.serial, ro.baud)
	case ro.console:
		stream, err = console.OpenTerminal()
	default:
		stream = console.Stream{Name: "output", Writer: out}
	}
	if err != nil {
		return err
	}

	con := console.Attach(stream, soc, soc.UART[ro.uart])
	defer func() {
		if err := con.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()
	soc.UART[ro.uart].SetSink(con)

	var rec *irqtrace.Recorder
	if ro.irqtrace != "" {
		rec, err = irqtrace.NewRecorder(irqtrace.DefaultSampleRate, traceLines()...)
		if err != nil {
			return err
		}
		soc.Interrupts.AddObserver(rec)
	}

	err = runScript(soc, filename, out)

	if rec != nil {
		if serr := rec.Save(ro.irqtrace, soc.Scheduler.Now(scheduler.Virtual)); serr != nil && err == nil {
			err = serr
		}
	}

	return err
}
