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
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tivasim/tivasim/console"
	"github.com/tivasim/tivasim/curated"
	"github.com/tivasim/tivasim/hardware"
	"github.com/tivasim/tivasim/hardware/preferences"
	"github.com/tivasim/tivasim/logger"
	"github.com/tivasim/tivasim/paths"
	"github.com/tivasim/tivasim/prefs"
	"github.com/tivasim/tivasim/stimulus"
	"github.com/tivasim/tivasim/version"
)

// flags common to every command
type options struct {
	prefs string
	log   bool
}

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "tivasim",
		Short:         "TM4C123 peripheral simulator",
		Long:          "Simulates the clock gating, GPIO, timers, watchdogs and UARTs of a TM4C123 microcontroller, driven by stimulus scripts.",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(out)

	root.PersistentFlags().StringVar(&opts.prefs, "prefs", "", `override preferences for this run. eg. "hardware.clocks.sysclk::48000000; hardware.trace::true"`)
	root.PersistentFlags().BoolVar(&opts.log, "log", false, "echo log entries to the output")

	root.AddCommand(newRunCommand(opts), newDumpCommand(opts), newRegsCommand(opts))

	// errors are written here rather than by cobra so that they are coloured
	// in the same way as the log
	wrap := func(cmd *cobra.Command) {
		f := cmd.RunE
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			err := f(cmd, args)
			if err != nil {
				io.WriteString(output(cmd.OutOrStdout()), "error: "+err.Error()+"\n")
			}
			return err
		}
	}
	for _, c := range root.Commands() {
		wrap(c)
	}

	return root
}

// output is coloured when it is a terminal
func output(out io.Writer) io.Writer {
	if f, ok := out.(*os.File); ok && console.IsTerminal(f) {
		return logger.NewColorizer(out, "soc", "error", "sysctl")
	}
	return out
}

// creates a SoC with the preferences from disk and any overrides on the
// command line. the returned function must be called when the SoC is no
// longer needed
func newSoC(cmd *cobra.Command, opts *options) (*hardware.SoC, func(), error) {
	if opts.prefs != "" {
		prefs.PushCommandLineStack(opts.prefs)
	}
	done := func() {
		if opts.prefs != "" {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				logger.Logf(logger.Allow, "tivasim", "unused preferences: %s", unused)
			}
		}
		logger.SetEcho(nil, false)
	}

	if opts.log {
		logger.SetEcho(output(cmd.OutOrStdout()), false)
	}

	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		done()
		return nil, nil, curated.Errorf("tivasim: %v", err)
	}

	prf, err := preferences.NewPreferences(pth)
	if err != nil {
		done()
		return nil, nil, err
	}

	soc, err := hardware.NewSoC(prf)
	if err != nil {
		done()
		return nil, nil, err
	}

	return soc, done, nil
}

// parses and runs the script in the named file. an empty filename does
// nothing
func runScript(soc *hardware.SoC, filename string, out io.Writer) error {
	if filename == "" {
		return nil
	}

	f, err := os.Open(filename)
	if err != nil {
		return curated.Errorf("tivasim: %v", err)
	}
	defer f.Close()

	script, err := stimulus.Parse(f, soc)
	if err != nil {
		return err
	}

	return stimulus.Run(soc, script, out)
}
