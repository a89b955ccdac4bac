package taskqueue

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Example showing basic FIFO hand-off on an unbounded queue.
func Example_basic() {
	q := New[int](0)
	_ = q.Put(1, true, NoTimeout)
	_ = q.Put(2, true, NoTimeout)
	_ = q.Put(3, true, NoTimeout)
	for !q.IsEmpty() {
		v, _ := q.GetNowait()
		fmt.Println(v)
	}
	// Output:
	// 1
	// 2
	// 3
}

// Example showing backpressure on a bounded queue.
func Example_bounded() {
	q := New[string](2)
	_ = q.PutNowait("a")
	_ = q.PutNowait("b")
	fmt.Println(q.IsFull())

	err := q.Put("c", true, 10*time.Millisecond)
	fmt.Println(errors.Is(err, ErrQueueFull))

	v, _ := q.GetNowait()
	fmt.Println(v, q.Size())
	// Output:
	// true
	// true
	// a 1
}

// Example for PutMany and GetMany.
func Example_batch() {
	q := New[int](5)
	_ = q.PutMany([]int{1, 2, 3, 4}, false, NoTimeout)

	// Only one slot left: the whole batch is refused.
	err := q.PutMany([]int{5, 6}, false, NoTimeout)
	fmt.Println(errors.Is(err, ErrQueueFull))

	items, _ := q.GetMany(3, false, NoTimeout)
	fmt.Println(items, q.Size())

	_, err = q.GetMany(6, false, NoTimeout)
	fmt.Println(errors.Is(err, ErrInvalidArgument))
	// Output:
	// true
	// [1 2 3] 1
	// true
}

// Example of waiting for all work to be handled, not just dequeued.
func Example_join() {
	q := New[int](4)
	var mu sync.Mutex
	sum := 0

	for w := 0; w < 3; w++ {
		go func() {
			for {
				v, err := q.Get(true, NoTimeout)
				if err != nil {
					return
				}
				mu.Lock()
				sum += v
				mu.Unlock()
				_ = q.MarkDone()
			}
		}()
	}

	for i := 1; i <= 10; i++ {
		_ = q.Put(i, true, NoTimeout)
	}
	q.Join()

	mu.Lock()
	fmt.Println(sum, q.Outstanding())
	mu.Unlock()
	fmt.Println(errors.Is(q.MarkDone(), ErrTooManyTaskDone))
	// Output:
	// 55 0
	// true
}
