// Package hostlock connects taskqueue to hosts that run guest code under a
// single process-wide execution lock, such as an interpreter's global lock.
//
// A goroutine acting for the host holds the Lock while it calls into the
// queue. If the call has to block, the queue's hooks release the Lock for the
// duration of the wait and take it back afterwards, so other host goroutines
// keep running and can produce the item or the free slot being waited for.
package hostlock

import (
	"sync"
	"sync/atomic"

	"github.com/xyhelper/taskqueue"
)

// Lock is a process-wide execution lock. The zero value is unlocked and ready
// for use.
type Lock struct {
	mu       sync.Mutex
	held     atomic.Bool
	releases atomic.Uint64
}

// Acquire blocks until the calling goroutine holds l.
func (l *Lock) Acquire() {
	l.mu.Lock()
	l.held.Store(true)
}

// Release gives up l. It must be called by the goroutine that acquired it.
func (l *Lock) Release() {
	l.held.Store(false)
	l.mu.Unlock()
}

// Held reports whether some goroutine currently holds l.
func (l *Lock) Held() bool {
	return l.held.Load()
}

// Releases returns how many times the queue hooks have released l.
func (l *Lock) Releases() uint64 {
	return l.releases.Load()
}

// Do runs fn while holding l.
func (l *Lock) Do(fn func()) {
	l.Acquire()
	defer l.Release()
	fn()
}

// Hooks returns queue hooks that release l before a blocking wait and
// reacquire it after. Every queue call made with these hooks installed must
// come from a goroutine holding l.
func (l *Lock) Hooks() taskqueue.Hooks {
	return taskqueue.Hooks{
		BlockEnter: func() {
			l.releases.Add(1)
			l.Release()
		},
		BlockExit: l.Acquire,
	}
}

// NewQueue creates a queue whose blocking waits release l.
func NewQueue[T any](l *Lock, capacity int, opts ...taskqueue.Option) *taskqueue.Queue[T] {
	opts = append([]taskqueue.Option{taskqueue.WithHooks(l.Hooks())}, opts...)
	return taskqueue.New[T](capacity, opts...)
}
