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

package scheduler

import (
	"container/heap"
	"fmt"
	"time"
)

// Domain selects the time base of a deadline.
type Domain int

// List of valid Domain values.
const (
	Virtual Domain = iota
	Realtime
)

func (d Domain) String() string {
	switch d {
	case Virtual:
		return "virtual"
	case Realtime:
		return "realtime"
	}
	panic("unknown scheduler domain")
}

// Event is a callback created by Schedule().
type Event struct {
	// deadline on the virtual timeline
	deadline int64
	seq      uint64
	label    string
	f        func()

	// position in the heap. -1 when not in the heap
	index int
}

// Deadline returns the virtual deadline of the event.
func (e *Event) Deadline() int64 {
	return e.deadline
}

// Pending returns true if the event has not been delivered or cancelled.
func (e *Event) Pending() bool {
	return e != nil && e.index >= 0
}

func (e *Event) String() string {
	return fmt.Sprintf("%s@%d", e.label, e.deadline)
}

// Scheduler orders events by deadline.
type Scheduler struct {
	now      int64
	wallBase int64
	seq      uint64
	queue    queue
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type. The wall argument is the base of the Realtime domain.
func NewScheduler(wall time.Time) *Scheduler {
	return &Scheduler{
		wallBase: wall.UnixNano(),
	}
}

func (s *Scheduler) String() string {
	return fmt.Sprintf("now=%dns pending=%d", s.now, len(s.queue))
}

// Now returns the current time in the requested domain.
func (s *Scheduler) Now(d Domain) int64 {
	if d == Realtime {
		return s.wallBase + s.now
	}
	return s.now
}

// Elapsed returns the virtual time that has passed since the scheduler was
// created.
func (s *Scheduler) Elapsed() time.Duration {
	return time.Duration(s.now)
}

// Schedule a callback at a deadline in the given domain. The label is used
// for diagnostics only.
func (s *Scheduler) Schedule(d Domain, deadline int64, label string, f func()) *Event {
	if d == Realtime {
		deadline -= s.wallBase
	}
	if deadline < s.now {
		deadline = s.now
	}

	e := &Event{
		deadline: deadline,
		seq:      s.seq,
		label:    label,
		f:        f,
	}
	s.seq++

	heap.Push(&s.queue, e)
	return e
}

// Cancel a pending event. Cancelling an event that has been delivered,
// cancelled already, or is nil, does nothing.
func (s *Scheduler) Cancel(e *Event) {
	if !e.Pending() {
		return
	}
	heap.Remove(&s.queue, e.index)
}

// Pending returns the number of events waiting to be delivered.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Next returns the deadline of the next event, and false if there are no
// events.
func (s *Scheduler) Next() (int64, bool) {
	if len(s.queue) == 0 {
		return 0, false
	}
	return s.queue[0].deadline, true
}

// Step delivers the next event if its deadline is not later than limit.
// Time moves to the deadline of the event. Returns false if no event was
// delivered.
func (s *Scheduler) Step(limit int64) bool {
	if len(s.queue) == 0 || s.queue[0].deadline > limit {
		return false
	}

	e := heap.Pop(&s.queue).(*Event)
	s.now = e.deadline
	e.f()

	return true
}

// Advance delivers all events with a deadline up to and including limit and
// then moves time to limit. Returns the number of events delivered.
func (s *Scheduler) Advance(limit int64) int {
	n := 0
	for s.Step(limit) {
		n++
	}
	if limit > s.now {
		s.now = limit
	}
	return n
}

// Clear removes all pending events. Time is unchanged.
func (s *Scheduler) Clear() {
	for _, e := range s.queue {
		e.index = -1
	}
	s.queue = s.queue[:0]
}

// queue implements heap.Interface
type queue []*Event

func (q queue) Len() int {
	return len(q)
}

func (q queue) Less(i, j int) bool {
	if q[i].deadline == q[j].deadline {
		return q[i].seq < q[j].seq
	}
	return q[i].deadline < q[j].deadline
}

func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *queue) Push(x any) {
	e := x.(*Event)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}
