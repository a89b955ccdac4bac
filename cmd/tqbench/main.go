// tqbench measures taskqueue hand-off throughput: Threads producers each
// enqueue Items payloads while as many consumers dequeue and mark them done,
// and the run ends when Join returns.
//
// Configuration comes from TQBENCH_* environment variables; see
// internal/config.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/xyhelper/taskqueue"
	"github.com/xyhelper/taskqueue/hostlock"
	"github.com/xyhelper/taskqueue/internal/config"
)

type payload struct {
	a string
	b string
	c map[string]int
}

func newPayload() *payload {
	return &payload{a: "adsfadsfadfs", b: "xxxxx", c: map[string]int{}}
}

type result struct {
	elapsed time.Duration
	items   int
	retries int
	stats   taskqueue.Stats
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tqbench: %v\n", err)
		os.Exit(2)
	}
	logger := newLogger(cfg.LogLevel)

	logger.Info("starting",
		"threads", cfg.Threads,
		"items", cfg.Items,
		"batch", cfg.Batch,
		"capacity", cfg.Capacity,
		"notify", cfg.Notify.String(),
		"hostlock", cfg.HostLock,
	)
	res, err := run(cfg, logger)
	if err != nil {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
	logger.Info("done",
		"elapsed", res.elapsed,
		"items", res.items,
		"items_per_sec", int(float64(res.items)/res.elapsed.Seconds()),
		"retries", res.retries,
		"waits", res.stats.Waits,
		"timeouts", res.stats.Timeouts,
	)
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func run(cfg *config.Config, logger *slog.Logger) (result, error) {
	var (
		q    *taskqueue.Queue[*payload]
		gl   *hostlock.Lock
		opts = []taskqueue.Option{taskqueue.WithNotifyPolicy(cfg.Notify)}
	)
	if cfg.HostLock {
		gl = new(hostlock.Lock)
		q = hostlock.NewQueue[*payload](gl, cfg.Capacity, opts...)
	} else {
		q = taskqueue.New[*payload](cfg.Capacity, opts...)
	}

	call := func(fn func()) {
		if gl != nil {
			gl.Do(fn)
			return
		}
		fn()
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		retries  int
		firstErr error
	)
	retry := func(role string, worker int, err error) bool {
		if !errors.Is(err, taskqueue.ErrQueueFull) && !errors.Is(err, taskqueue.ErrQueueEmpty) {
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("%s %d: %w", role, worker, err)
			}
			mu.Unlock()
			return false
		}
		logger.Debug("wait expired, retrying", "role", role, "worker", worker, "err", err)
		mu.Lock()
		retries++
		mu.Unlock()
		return true
	}

	start := time.Now()
	for w := 0; w < cfg.Threads; w++ {
		wg.Add(2)
		go func(w int) {
			defer wg.Done()
			produce(q, cfg, w, call, retry)
		}(w)
		go func(w int) {
			defer wg.Done()
			consume(q, cfg, w, call, retry)
		}(w)
	}
	wg.Wait()
	call(q.Join)

	if firstErr != nil {
		return result{}, firstErr
	}
	return result{
		elapsed: time.Since(start),
		items:   cfg.Threads * cfg.Items,
		retries: retries,
		stats:   q.Stats(),
	}, nil
}

type retryFunc func(role string, worker int, err error) bool

func produce(q *taskqueue.Queue[*payload], cfg *config.Config, w int, call func(func()), retry retryFunc) {
	batch := make([]*payload, cfg.Batch)
	for sent := 0; sent < cfg.Items; {
		var err error
		if cfg.Batch == 1 {
			call(func() { err = q.Put(newPayload(), true, cfg.Timeout) })
		} else {
			for i := range batch {
				batch[i] = newPayload()
			}
			call(func() { err = q.PutMany(batch, true, cfg.Timeout) })
		}
		if err != nil {
			if retry("producer", w, err) {
				continue
			}
			return
		}
		sent += cfg.Batch
	}
}

func consume(q *taskqueue.Queue[*payload], cfg *config.Config, w int, call func(func()), retry retryFunc) {
	for got := 0; got < cfg.Items; {
		var (
			n   int
			err error
		)
		call(func() {
			if cfg.Batch == 1 {
				_, err = q.Get(true, cfg.Timeout)
				n = 1
			} else {
				var items []*payload
				items, err = q.GetMany(cfg.Batch, true, cfg.Timeout)
				n = len(items)
			}
			if err != nil {
				return
			}
			for i := 0; i < n; i++ {
				if err = q.MarkDone(); err != nil {
					return
				}
			}
		})
		if err != nil {
			if retry("consumer", w, err) {
				continue
			}
			return
		}
		got += n
	}
}
