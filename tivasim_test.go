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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tivasim/tivasim/test"
)

// the package directory. relative script names are resolved against it
// because execute() changes the working directory
var packageDir = func() string {
	d, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return d
}()

// runs the command line in a temporary directory with its own preferences
// file. scripts are relative to the package directory
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	for i, a := range args {
		if strings.HasSuffix(a, ".stim") && !filepath.IsAbs(a) {
			args[i] = filepath.Join(packageDir, a)
		}
	}

	t.Chdir(t.TempDir())
	test.DemandSuccess(t, os.Mkdir(".tivasim", 0o700))

	var out strings.Builder
	root := newRootCommand(&out)
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), err
}

func writeScript(t *testing.T, script string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "script.stim")
	test.DemandSuccess(t, os.WriteFile(filename, []byte(script), 0o600))
	return filename
}

func TestRun(t *testing.T) {
	_, err := execute(t, "run", "stimulus/testdata/gpio_edge.stim")
	test.ExpectSuccess(t, err)

	_, err = execute(t, "run", "stimulus/testdata/clock_gate.stim")
	test.ExpectSuccess(t, err)

	// a relative name still resolves after the directory has changed
	_, err = execute(t, "run", "stimulus/testdata/timer_periodic.stim")
	test.ExpectSuccess(t, err)
}

func TestRunFailure(t *testing.T) {
	filename := writeScript(t, "expect SYSCTL.RCGCGPIO 1\n")

	out, err := execute(t, "run", filename)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, strings.HasPrefix(out, "error: stimulus: line 1"), true)

	// an unexpected fault is an error
	filename = writeScript(t, "read GPIOA+0x3fc\n")
	_, err = execute(t, "run", filename)
	test.ExpectFailure(t, err)

	_, err = execute(t, "run", filepath.Join(t.TempDir(), "missing.stim"))
	test.ExpectFailure(t, err)
}

func TestRunReadOutput(t *testing.T) {
	filename := writeScript(t, "read SYSCTL.RCGCGPIO\n")

	out, err := execute(t, "run", "--prefs", "hardware.gpio.icrmode::clear", filename)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, out, "0x400fe608: 0x00000000\n")
}

func TestRunUART(t *testing.T) {
	filename := writeScript(t, `write SYSCTL.RCGCUART 1
write UART0.CTL 0x301
write UART0.DR 0x41
write UART0.DR 0x0a
`)

	out, err := execute(t, "run", filename)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, out, "A\n")

	_, err = execute(t, "run", "--uart", "8", filename)
	test.ExpectFailure(t, err)
}

func TestRunIRQTrace(t *testing.T) {
	trace := filepath.Join(t.TempDir(), "trace.wav")

	_, err := execute(t, "run", "--irqtrace", trace, "stimulus/testdata/timer_periodic.stim")
	test.ExpectSuccess(t, err)

	info, err := os.Stat(trace)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, info.Size() > 44, true)
}

func TestRegs(t *testing.T) {
	filename := writeScript(t, "write SYSCTL.RCGCGPIO 0x20\n")

	out, err := execute(t, "regs", "--script", filename, "sysctl")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, strings.Contains(out, "SYSCTL.RCGCGPIO     608 rw 0x00000020\n"), true)

	_, err = execute(t, "regs", "GPIOG")
	test.ExpectFailure(t, err)
}

func TestDump(t *testing.T) {
	out, err := execute(t, "dump")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, strings.Contains(out, "GPIOF"), true)
	test.ExpectEquality(t, strings.Contains(out, "WDT1"), true)

	out, err = execute(t, "dump", "--graph")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, strings.HasPrefix(out, "digraph"), true)
}
