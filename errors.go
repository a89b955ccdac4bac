package taskqueue

import (
	"errors"
	"fmt"
)

var (
	// ErrQueueFull is returned by Put and PutMany when there is no room and the
	// caller did not block, or its deadline passed first.
	ErrQueueFull = errors.New("taskqueue: queue is full")

	// ErrQueueEmpty is returned by Get and GetMany when not enough items are
	// buffered and the caller did not block, or its deadline passed first.
	ErrQueueEmpty = errors.New("taskqueue: queue is empty")

	// ErrInvalidArgument is wrapped by every validation failure: a negative or
	// oversized timeout, a batch that can never fit the capacity, a negative
	// count.
	ErrInvalidArgument = errors.New("taskqueue: invalid argument")

	// ErrTooManyTaskDone is returned by MarkDone when no task is outstanding.
	ErrTooManyTaskDone = errors.New("taskqueue: MarkDone called too many times")

	// ErrInternal reports an unexpected failure inside an operation.
	ErrInternal = errors.New("taskqueue: internal failure")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

// recoverInternal turns a panic raised inside an operation, typically by a
// host hook, into ErrInternal. It must be deferred before the mutex unlock so
// the unlock runs first.
func recoverInternal(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrInternal, r)
	}
}
