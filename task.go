package taskqueue

// MarkDone records that one previously enqueued item has been fully handled.
// When the outstanding count drops to zero every goroutine blocked in Join is
// released. Calling it with nothing outstanding returns ErrTooManyTaskDone
// and leaves the count at zero.
func (q *Queue[T]) MarkDone() (err error) {
	defer recoverInternal(&err)
	q.lock()
	defer q.mu.Unlock()

	if q.unfinished == 0 {
		return ErrTooManyTaskDone
	}
	q.unfinished--
	q.stats.RecordTaskDone()
	if q.unfinished == 0 {
		q.allDone.cond.Broadcast()
	}
	return nil
}

// Join blocks until every item ever enqueued has been marked done. It returns
// immediately when nothing is outstanding. There is no timeout variant. A
// panic raised by a hook propagates to the caller with the queue unlocked.
func (q *Queue[T]) Join() {
	q.lock()
	defer q.mu.Unlock()

	q.await(&q.allDone, false, func() bool { return q.unfinished == 0 }, waitPlan{mode: waitForever})
}

// Outstanding returns the number of enqueued items not yet marked done. It
// can exceed Size, since an item taken by Get stays outstanding until
// MarkDone.
func (q *Queue[T]) Outstanding() int {
	q.lock()
	defer q.mu.Unlock()
	return q.unfinished
}
