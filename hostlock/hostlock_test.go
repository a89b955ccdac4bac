package hostlock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyhelper/taskqueue"
)

func TestConsumerReleasesLockWhileWaiting(t *testing.T) {
	var gl Lock
	q := NewQueue[string](&gl, 0)

	got := make(chan string, 1)
	go func() {
		gl.Do(func() {
			v, err := q.Get(true, time.Second)
			assert.NoError(t, err)
			assert.True(t, gl.Held(), "lock must be held again after the wait")
			got <- v
		})
	}()

	// The producer can only take the lock if the parked consumer let it go.
	time.Sleep(20 * time.Millisecond)
	acquired := make(chan struct{})
	go func() {
		gl.Do(func() {
			close(acquired)
			assert.NoError(t, q.PutNowait("job"))
		})
	}()

	select {
	case <-acquired:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("producer could not acquire the host lock")
	}
	assert.Equal(t, "job", <-got)
	assert.GreaterOrEqual(t, gl.Releases(), uint64(1))
}

func TestProducerReleasesLockWhenFull(t *testing.T) {
	var gl Lock
	q := NewQueue[int](&gl, 1)
	gl.Do(func() { require.NoError(t, q.PutNowait(1)) })

	done := make(chan error, 1)
	go func() {
		gl.Do(func() { done <- q.Put(2, true, taskqueue.NoTimeout) })
	}()

	time.Sleep(20 * time.Millisecond)
	gl.Do(func() {
		v, err := q.GetNowait()
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})
	require.NoError(t, <-done)
	assert.False(t, gl.Held())
}

func TestJoinReleasesLock(t *testing.T) {
	var gl Lock
	q := NewQueue[int](&gl, 0)
	gl.Do(func() { require.NoError(t, q.PutMany([]int{1, 2, 3}, false, taskqueue.NoTimeout)) })

	joined := make(chan struct{})
	go func() {
		gl.Do(q.Join)
		close(joined)
	}()

	for i := 0; i < 3; i++ {
		time.Sleep(5 * time.Millisecond)
		gl.Do(func() {
			_, err := q.GetNowait()
			require.NoError(t, err)
			require.NoError(t, q.MarkDone())
		})
	}

	select {
	case <-joined:
	case <-time.After(time.Second):
		t.Fatal("join did not return")
	}
}

func TestManyHostGoroutines(t *testing.T) {
	var gl Lock
	q := NewQueue[int](&gl, 4, taskqueue.WithNotifyPolicy(taskqueue.NotifyAdaptive))
	const total = 400

	var wg sync.WaitGroup
	sum := 0
	for c := 0; c < 4; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < total/4; i++ {
				gl.Do(func() {
					v, err := q.Get(true, 5*time.Second)
					if assert.NoError(t, err) {
						sum += v // guarded by gl
						assert.NoError(t, q.MarkDone())
					}
				})
			}
		}()
	}
	for i := 1; i <= total; i++ {
		gl.Do(func() { require.NoError(t, q.Put(i, true, 5*time.Second)) })
	}
	wg.Wait()

	gl.Do(func() {
		assert.Equal(t, total*(total+1)/2, sum)
		assert.Equal(t, 0, q.Outstanding())
	})
}
