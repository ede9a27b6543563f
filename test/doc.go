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

// Package test bundles helper functions that remove common boilerplate from
// tests, in conjunction with the standard go test harness.
//
// The Expect*() functions report failure with t.Errorf() and testing
// continues. The Demand*() functions report failure with t.Fatalf() and are
// used when later tests depend on the result.
//
// Success and failure are judged generically. A bool is successful when it is
// true and an error is successful when it is nil. The nil value is considered
// a success because of how errors usually work.
//
// CompareWriter and RingWriter implement io.Writer and are used to capture
// output for comparison.
//
// Optional tags can be added to the end of the Expect*() and Demand*() calls.
// They are printed at the start of a failure message, which helps identify
// failures inside loops.
package test
