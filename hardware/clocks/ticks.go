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

package clocks

import (
	"math"
	"math/bits"
)

const nsPerSecond = 1000000000

// MulSaturate returns a*b, or math.MaxUint64 if the product overflows.
func MulSaturate(a uint64, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

// TicksToDuration converts ticks of a clock running at hz into nanoseconds.
// The result is rounded down and saturates at math.MaxInt64. A zero
// frequency saturates.
func TicksToDuration(ticks uint64, hz uint64) int64 {
	if hz == 0 {
		return math.MaxInt64
	}

	hi, lo := bits.Mul64(ticks, nsPerSecond)
	if hi >= hz {
		return math.MaxInt64
	}

	q, _ := bits.Div64(hi, lo, hz)
	if q > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(q)
}

// DurationToTicks converts nanoseconds into whole ticks of a clock running
// at hz. The result is rounded down. Negative durations are zero ticks.
func DurationToTicks(ns int64, hz uint64) uint64 {
	if ns <= 0 {
		return 0
	}

	hi, lo := bits.Mul64(uint64(ns), hz)
	if hi >= nsPerSecond {
		return math.MaxUint64
	}

	q, _ := bits.Div64(hi, lo, nsPerSecond)
	return q
}

// DurationToTicksCeil is like DurationToTicks but rounds up. For clocks
// slower than 1GHz it is the exact inverse of TicksToDuration.
func DurationToTicksCeil(ns int64, hz uint64) uint64 {
	if ns <= 0 {
		return 0
	}

	hi, lo := bits.Mul64(uint64(ns), hz)
	if hi >= nsPerSecond {
		return math.MaxUint64
	}

	q, r := bits.Div64(hi, lo, nsPerSecond)
	if r != 0 {
		q++
	}
	return q
}
