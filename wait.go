package taskqueue

import (
	"sync"
	"time"
)

// condition is a condition variable on the queue mutex plus a count of the
// goroutines parked on it. The counts are only touched with the mutex held.
type condition struct {
	cond    *sync.Cond
	waiters int
	batch   int // parked callers needing more than one slot or item
}

func (c *condition) init(l sync.Locker) {
	c.cond = sync.NewCond(l)
}

// lock acquires the queue mutex. When it is contended and hooks are set, the
// hooks bracket the wait so a host lock is not held while blocked here.
func (q *Queue[T]) lock() {
	if !q.hooks.set() {
		q.mu.Lock()
		return
	}
	if q.mu.TryLock() {
		return
	}
	q.hooks.enter()
	q.mu.Lock()
	// Callers defer the unlock only after lock returns.
	defer func() {
		if r := recover(); r != nil {
			q.mu.Unlock()
			panic(r)
		}
	}()
	q.hooks.exit()
}

// await parks on c until ready reports true, honoring ws. It must be called
// with q.mu held and returns with q.mu held. The result is false when the
// caller must fail: ready was false and either ws does not block or its
// deadline passed.
func (q *Queue[T]) await(c *condition, batch bool, ready func() bool, ws waitPlan) bool {
	if ready() {
		return true
	}
	if ws.mode == noWait {
		return false
	}

	if ws.mode == waitDeadline {
		// sync.Cond has no timed wait. Wake the condition at the deadline;
		// taking the mutex first means the broadcast cannot slip in between
		// a waiter's deadline check and its Wait.
		t := time.AfterFunc(time.Until(ws.deadline), func() {
			q.mu.Lock()
			c.cond.Broadcast()
			q.mu.Unlock()
		})
		defer t.Stop()
	}

	c.waiters++
	if batch {
		c.batch++
	}
	defer func() {
		c.waiters--
		if batch {
			c.batch--
		}
	}()

	for !ready() {
		if ws.mode == waitDeadline && !time.Now().Before(ws.deadline) {
			return false
		}
		q.stats.RecordWait()
		q.hooks.enter()
		c.cond.Wait()
		q.hooks.exit()
	}
	return true
}

// notify wakes waiters on c after a state change. single is true for
// single-item Put and Get. Must be called with q.mu held.
func (q *Queue[T]) notify(c *condition, single bool) {
	if c.waiters == 0 {
		return
	}
	if single && q.policy == NotifyAdaptive && c.batch == 0 {
		c.cond.Signal()
		return
	}
	c.cond.Broadcast()
}
