package taskqueue

// Blocking and Timeout Patterns
//
// Put, PutMany, Get and GetMany take a (block, timeout) pair:
//
//   - block == false, or timeout == 0: check once and fail with ErrQueueFull
//     or ErrQueueEmpty if the operation cannot proceed right away.
//   - block == true, timeout == NoTimeout: wait as long as it takes.
//   - block == true, timeout > 0: wait until the absolute deadline
//     now+timeout, then fail.
//   - any other negative timeout: ErrInvalidArgument, even when block is
//     false.
//
// Waiters use the standard "wait in a loop" pattern: every wake-up re-checks
// the predicate (room for k slots, at least n items, no outstanding tasks),
// so spurious and unrelated wake-ups are harmless.
//
// Batch operations wait for the whole batch at once. A PutMany of three items
// into a queue with two free slots does not insert two and wait for the
// third; it waits until three slots are free and inserts all of them under
// one critical section:
//
//  q := taskqueue.New[string](5)
//  if err := q.PutMany([]string{"a", "b", "c"}, false, taskqueue.NoTimeout); err != nil {
//      // errors.Is(err, taskqueue.ErrQueueFull): nothing was inserted
//  }
//
// Completion tracking is separate from dequeuing:
//
//  go func() {
//      for {
//          job, err := q.Get(true, taskqueue.NoTimeout)
//          if err != nil {
//              return
//          }
//          handle(job)
//          _ = q.MarkDone()
//      }
//  }()
//  _ = q.PutMany(jobs, true, taskqueue.NoTimeout)
//  q.Join() // all jobs handled, not merely dequeued
//
// Hosts that run guest code under a global lock install Hooks (see
// WithHooks and the hostlock package) so the lock is released while a
// goroutine is parked inside the queue.
