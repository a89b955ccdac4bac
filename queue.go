package taskqueue

import (
	"sync"
	"time"

	"github.com/xyhelper/taskqueue/internal/buffer"
	"github.com/xyhelper/taskqueue/internal/telemetry"
)

// Stats is a snapshot of a queue's operation counters.
type Stats = telemetry.Snapshot

// Queue is a generic, concurrency-safe FIFO work queue with an optional
// capacity bound and task-completion tracking.
//
// One mutex guards the buffer and the outstanding-task counter. Blocking
// calls release it while parked and hold it again before they return, so a
// batch is always inserted or removed as a unit. The zero value is not ready
// for use; construct via New.
type Queue[T any] struct {
	mu         sync.Mutex
	notEmpty   condition
	notFull    condition
	allDone    condition
	buf        *buffer.FIFO[T]
	capacity   int
	unfinished int

	hooks  Hooks
	policy NotifyPolicy
	stats  telemetry.Counters
}

// New creates a queue holding at most capacity items. A capacity of zero or
// less means the queue is unbounded.
func New[T any](capacity int, opts ...Option) *Queue[T] {
	if capacity < 0 {
		capacity = 0
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	q := &Queue[T]{
		buf:      buffer.New[T](o.prealloc),
		capacity: capacity,
		hooks:    o.hooks,
		policy:   o.policy,
	}
	q.notEmpty.init(&q.mu)
	q.notFull.init(&q.mu)
	q.allDone.init(&q.mu)
	return q
}

func (q *Queue[T]) hasRoom(n int) bool {
	return q.capacity == 0 || q.buf.Len()+n <= q.capacity
}

func (q *Queue[T]) hasItems(n int) bool {
	return q.buf.Len() >= n
}

// Put appends item to the tail and counts it as an outstanding task.
//
// If the queue is full and block is false, or timeout is zero, Put fails at
// once with ErrQueueFull. Otherwise it waits for a free slot; with a positive
// timeout it gives up with ErrQueueFull once the timeout elapses. Pass
// NoTimeout to wait without a deadline.
func (q *Queue[T]) Put(item T, block bool, timeout time.Duration) (err error) {
	ws, err := resolveWait(block, timeout)
	if err != nil {
		return err
	}

	defer recoverInternal(&err)
	q.lock()
	defer q.mu.Unlock()

	if !q.await(&q.notFull, false, func() bool { return q.hasRoom(1) }, ws) {
		q.stats.RecordFull(ws.mode == waitDeadline)
		return ErrQueueFull
	}
	q.buf.Push(item)
	q.unfinished++
	q.stats.RecordPut(1)
	q.notify(&q.notEmpty, true)
	return nil
}

// PutNowait is Put(item, false, NoTimeout).
func (q *Queue[T]) PutNowait(item T) error {
	return q.Put(item, false, NoTimeout)
}

// PutMany appends all items as one unit: either every item is enqueued, in
// order and with no other item interleaved, or none is.
//
// A batch larger than a bounded queue's capacity can never fit and fails with
// ErrInvalidArgument before any waiting. An empty batch succeeds without
// touching the queue. Blocking and timeout behave as in Put, waiting for
// len(items) free slots at once. The caller keeps ownership of the items
// slice; its elements are copied.
func (q *Queue[T]) PutMany(items []T, block bool, timeout time.Duration) (err error) {
	n := len(items)
	ws, err := resolveWait(block, timeout)
	if err != nil {
		return err
	}
	if q.capacity > 0 && n > q.capacity {
		return invalidf("items of size %d is bigger than capacity %d", n, q.capacity)
	}
	if n == 0 {
		return nil
	}

	defer recoverInternal(&err)
	q.lock()
	defer q.mu.Unlock()

	if !q.await(&q.notFull, n > 1, func() bool { return q.hasRoom(n) }, ws) {
		q.stats.RecordFull(ws.mode == waitDeadline)
		return ErrQueueFull
	}
	q.buf.PushMany(items)
	q.unfinished += n
	q.stats.RecordPut(n)
	q.notify(&q.notEmpty, false)
	return nil
}

// Get removes and returns the head item. It does not change the outstanding
// task count; call MarkDone once the item has been handled.
//
// If the queue is empty and block is false, or timeout is zero, Get fails at
// once with ErrQueueEmpty. Otherwise it waits for an item, up to timeout when
// one is given.
func (q *Queue[T]) Get(block bool, timeout time.Duration) (_ T, err error) {
	var zero T
	ws, err := resolveWait(block, timeout)
	if err != nil {
		return zero, err
	}

	defer recoverInternal(&err)
	q.lock()
	defer q.mu.Unlock()

	if !q.await(&q.notEmpty, false, func() bool { return q.hasItems(1) }, ws) {
		q.stats.RecordEmpty(ws.mode == waitDeadline)
		return zero, ErrQueueEmpty
	}
	v, _ := q.buf.Pop()
	q.stats.RecordGet(1)
	q.notify(&q.notFull, true)
	return v, nil
}

// GetNowait is Get(false, NoTimeout).
func (q *Queue[T]) GetNowait() (T, error) {
	return q.Get(false, NoTimeout)
}

// GetMany removes exactly the first n items as one unit and returns them in
// FIFO order. It waits until n items are buffered at the same time; partial
// results are never returned.
//
// A negative n, or an n above a bounded queue's capacity, fails with
// ErrInvalidArgument before any waiting. n == 0 returns an empty slice.
// Callers owe one MarkDone per returned item.
func (q *Queue[T]) GetMany(n int, block bool, timeout time.Duration) (_ []T, err error) {
	ws, err := resolveWait(block, timeout)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, invalidf("count must be non-negative, got %d", n)
	}
	if q.capacity > 0 && n > q.capacity {
		return nil, invalidf("you want to get %d but capacity is %d", n, q.capacity)
	}
	if n == 0 {
		return []T{}, nil
	}

	defer recoverInternal(&err)
	q.lock()
	defer q.mu.Unlock()

	if !q.await(&q.notEmpty, n > 1, func() bool { return q.hasItems(n) }, ws) {
		q.stats.RecordEmpty(ws.mode == waitDeadline)
		return nil, ErrQueueEmpty
	}
	out := q.buf.PopMany(n)
	q.stats.RecordGet(n)
	q.notify(&q.notFull, false)
	return out, nil
}

// Size returns the number of buffered items at the time of the call.
func (q *Queue[T]) Size() int {
	q.lock()
	defer q.mu.Unlock()
	return q.buf.Len()
}

// IsEmpty reports whether no items are buffered.
func (q *Queue[T]) IsEmpty() bool {
	return q.Size() == 0
}

// IsFull reports whether a bounded queue holds capacity items. It is always
// false for an unbounded queue.
func (q *Queue[T]) IsFull() bool {
	if q.capacity == 0 {
		return false
	}
	return q.Size() >= q.capacity
}

// Capacity returns the bound given to New, or 0 for an unbounded queue.
func (q *Queue[T]) Capacity() int {
	return q.capacity
}

// Stats returns a snapshot of the queue's operation counters.
func (q *Queue[T]) Stats() Stats {
	return q.stats.Snapshot()
}
