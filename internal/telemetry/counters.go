// Package telemetry keeps lock-free operation counters for a queue.
package telemetry

import "sync/atomic"

// Counters aggregates queue activity. The zero value is ready for use.
type Counters struct {
	puts      atomic.Uint64
	gets      atomic.Uint64
	itemsIn   atomic.Uint64
	itemsOut  atomic.Uint64
	waits     atomic.Uint64
	full      atomic.Uint64
	empty     atomic.Uint64
	timeouts  atomic.Uint64
	tasksDone atomic.Uint64
}

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Puts      uint64 // successful Put/PutMany calls
	Gets      uint64 // successful Get/GetMany calls
	ItemsIn   uint64
	ItemsOut  uint64
	Waits     uint64 // times a caller parked on a condition
	Full      uint64 // ErrQueueFull results
	Empty     uint64 // ErrQueueEmpty results
	Timeouts  uint64 // Full/Empty results caused by an expired deadline
	TasksDone uint64
}

// RecordPut counts a successful put of n items.
func (c *Counters) RecordPut(n int) {
	c.puts.Add(1)
	c.itemsIn.Add(uint64(n))
}

// RecordGet counts a successful get of n items.
func (c *Counters) RecordGet(n int) {
	c.gets.Add(1)
	c.itemsOut.Add(uint64(n))
}

// RecordWait counts one suspension on a condition variable.
func (c *Counters) RecordWait() { c.waits.Add(1) }

// RecordFull counts a put that gave up; timedOut marks deadline expiry.
func (c *Counters) RecordFull(timedOut bool) {
	c.full.Add(1)
	if timedOut {
		c.timeouts.Add(1)
	}
}

// RecordEmpty counts a get that gave up; timedOut marks deadline expiry.
func (c *Counters) RecordEmpty(timedOut bool) {
	c.empty.Add(1)
	if timedOut {
		c.timeouts.Add(1)
	}
}

// RecordTaskDone counts an accepted MarkDone.
func (c *Counters) RecordTaskDone() { c.tasksDone.Add(1) }

// Snapshot returns the current values. Fields are loaded one by one, so a
// snapshot taken under concurrent load is not a consistent cut.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Puts:      c.puts.Load(),
		Gets:      c.gets.Load(),
		ItemsIn:   c.itemsIn.Load(),
		ItemsOut:  c.itemsOut.Load(),
		Waits:     c.waits.Load(),
		Full:      c.full.Load(),
		Empty:     c.empty.Load(),
		Timeouts:  c.timeouts.Load(),
		TasksDone: c.tasksDone.Load(),
	}
}
