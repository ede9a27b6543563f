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

package scheduler_test

import (
	"strings"
	"testing"
	"time"

	"github.com/tivasim/tivasim/hardware/scheduler"
	"github.com/tivasim/tivasim/test"
)

func TestOrdering(t *testing.T) {
	s := scheduler.NewScheduler(time.Unix(0, 0))

	var order []string
	add := func(deadline int64, label string) {
		s.Schedule(scheduler.Virtual, deadline, label, func() {
			order = append(order, label)
		})
	}

	add(300, "c")
	add(100, "a")
	add(200, "b1")
	add(200, "b2")
	add(200, "b3")
	test.ExpectEquality(t, s.Pending(), 5)

	n := s.Advance(250)
	test.ExpectEquality(t, n, 4)
	test.ExpectEquality(t, strings.Join(order, ","), "a,b1,b2,b3")
	test.ExpectEquality(t, s.Now(scheduler.Virtual), int64(250))

	s.Advance(1000)
	test.ExpectEquality(t, strings.Join(order, ","), "a,b1,b2,b3,c")
	test.ExpectEquality(t, s.Pending(), 0)
}

func TestCancel(t *testing.T) {
	s := scheduler.NewScheduler(time.Unix(0, 0))

	fired := 0
	e := s.Schedule(scheduler.Virtual, 100, "cancel", func() { fired++ })
	test.ExpectSuccess(t, e.Pending())

	s.Cancel(e)
	test.ExpectFailure(t, e.Pending())
	s.Advance(200)
	test.ExpectEquality(t, fired, 0)

	// cancelling twice, or cancelling nil, is fine
	s.Cancel(e)
	s.Cancel(nil)

	// delivered events are no longer pending
	e = s.Schedule(scheduler.Virtual, 300, "deliver", func() { fired++ })
	s.Advance(300)
	test.ExpectEquality(t, fired, 1)
	test.ExpectFailure(t, e.Pending())
}

// a callback can cancel an event with the same deadline which has not been
// delivered yet
func TestCancelFromCallback(t *testing.T) {
	s := scheduler.NewScheduler(time.Unix(0, 0))

	fired := 0
	var second *scheduler.Event
	s.Schedule(scheduler.Virtual, 100, "first", func() {
		s.Cancel(second)
	})
	second = s.Schedule(scheduler.Virtual, 100, "second", func() { fired++ })

	s.Advance(100)
	test.ExpectEquality(t, fired, 0)
}

// periodic rescheduling from inside a callback
func TestReschedule(t *testing.T) {
	s := scheduler.NewScheduler(time.Unix(0, 0))

	var times []int64
	var tick func()
	tick = func() {
		times = append(times, s.Now(scheduler.Virtual))
		if len(times) < 5 {
			s.Schedule(scheduler.Virtual, s.Now(scheduler.Virtual)+10000, "tick", tick)
		}
	}
	s.Schedule(scheduler.Virtual, 10000, "tick", tick)

	s.Advance(int64(time.Millisecond))
	test.DemandEquality(t, len(times), 5)
	for i, v := range times {
		test.ExpectEquality(t, v, int64(i+1)*10000)
	}
}

func TestRealtime(t *testing.T) {
	wall := time.Unix(1700000000, 0)
	s := scheduler.NewScheduler(wall)

	test.ExpectEquality(t, s.Now(scheduler.Realtime), wall.UnixNano())

	var when int64
	s.Schedule(scheduler.Realtime, wall.UnixNano()+500, "rtc", func() {
		when = s.Now(scheduler.Virtual)
	})
	s.Schedule(scheduler.Virtual, 400, "virtual", func() {})

	d, ok := s.Next()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, d, int64(400))

	s.Advance(1000)
	test.ExpectEquality(t, when, int64(500))
	test.ExpectEquality(t, s.Now(scheduler.Realtime), wall.UnixNano()+1000)
	test.ExpectEquality(t, s.Elapsed(), time.Microsecond)
}

func TestPastDeadline(t *testing.T) {
	s := scheduler.NewScheduler(time.Unix(0, 0))
	s.Advance(1000)

	var when int64
	e := s.Schedule(scheduler.Virtual, 10, "past", func() {
		when = s.Now(scheduler.Virtual)
	})
	test.ExpectEquality(t, e.Deadline(), int64(1000))

	s.Advance(1000)
	test.ExpectEquality(t, when, int64(1000))
}

func TestClear(t *testing.T) {
	s := scheduler.NewScheduler(time.Unix(0, 0))
	e := s.Schedule(scheduler.Virtual, 10, "clear", func() {})
	s.Clear()
	test.ExpectEquality(t, s.Pending(), 0)
	test.ExpectFailure(t, e.Pending())
	_, ok := s.Next()
	test.ExpectFailure(t, ok)
}
