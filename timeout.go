package taskqueue

import (
	"math"
	"time"
)

// NoTimeout passed as a timeout means "no deadline": a blocking call waits
// until it can proceed, a non-blocking call fails at once. Every other
// negative timeout is rejected with ErrInvalidArgument.
const NoTimeout time.Duration = math.MinInt64

type waitMode int

const (
	noWait waitMode = iota
	waitForever
	waitDeadline
)

// waitPlan is a validated (block, timeout) pair.
type waitPlan struct {
	mode     waitMode
	deadline time.Time
}

// resolveWait validates a (block, timeout) pair and fixes the absolute
// deadline. A zero timeout is the same as block == false.
func resolveWait(block bool, timeout time.Duration) (waitPlan, error) {
	switch {
	case timeout == NoTimeout:
		if block {
			return waitPlan{mode: waitForever}, nil
		}
		return waitPlan{mode: noWait}, nil
	case timeout < 0:
		return waitPlan{}, invalidf("timeout must be non-negative, got %v", timeout)
	case timeout == 0 || !block:
		return waitPlan{mode: noWait}, nil
	}

	// Every Duration is representable and time.Add saturates; out-of-range
	// host values are rejected by Seconds.
	return waitPlan{mode: waitDeadline, deadline: time.Now().Add(timeout)}, nil
}

// Seconds converts a timeout expressed in (possibly fractional) seconds, as
// hosts commonly accept it, into a Duration. NaN, negative values and values
// beyond the range of time.Duration are rejected with ErrInvalidArgument.
func Seconds(s float64) (time.Duration, error) {
	if math.IsNaN(s) {
		return 0, invalidf("timeout is not a number")
	}
	if s < 0 {
		return 0, invalidf("timeout must be non-negative, got %g", s)
	}
	ns := s * float64(time.Second)
	if ns >= math.MaxInt64 {
		return 0, invalidf("timeout is too large: %g", s)
	}
	return time.Duration(ns), nil
}
