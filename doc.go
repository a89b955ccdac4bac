// Package taskqueue provides a generic FIFO work queue with an optional
// capacity bound, blocking and timed Put/Get, all-or-nothing batch
// operations and task-completion tracking.
//
// The queue is concurrency-safe: all exported methods use internal locking
// and may be called from multiple goroutines. Construct a queue with New.
// Every successful Put counts one outstanding task (PutMany counts one per
// item); consumers call MarkDone once per item they have finished handling,
// and Join blocks until the outstanding count reaches zero. Dequeuing an item
// does not complete it.
package taskqueue
