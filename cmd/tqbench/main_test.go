package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyhelper/taskqueue"
	"github.com/xyhelper/taskqueue/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"single unbounded", config.Config{Threads: 2, Items: 500, Batch: 1, Timeout: taskqueue.NoTimeout}},
		{"single bounded", config.Config{Threads: 3, Items: 300, Batch: 1, Capacity: 4, Timeout: taskqueue.NoTimeout}},
		{"batch bounded adaptive", config.Config{Threads: 2, Items: 300, Batch: 3, Capacity: 6, Timeout: taskqueue.NoTimeout, Notify: taskqueue.NotifyAdaptive}},
		{"timed with retries", config.Config{Threads: 2, Items: 200, Batch: 2, Capacity: 2, Timeout: 5 * time.Millisecond}},
		{"hostlock", config.Config{Threads: 2, Items: 200, Batch: 1, Capacity: 8, Timeout: taskqueue.NoTimeout, HostLock: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.LogLevel = "info"
			require.NoError(t, cfg.Validate())

			res, err := run(&cfg, discardLogger())
			require.NoError(t, err)
			assert.Equal(t, cfg.Threads*cfg.Items, res.items)
			assert.Equal(t, uint64(cfg.Threads*cfg.Items), res.stats.ItemsIn)
			assert.Equal(t, uint64(cfg.Threads*cfg.Items), res.stats.ItemsOut)
			assert.Equal(t, uint64(cfg.Threads*cfg.Items), res.stats.TasksDone)
		})
	}
}

func TestNewLogger(t *testing.T) {
	l := newLogger("warn")
	assert.False(t, l.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, l.Enabled(context.Background(), slog.LevelWarn))
}

func TestNewLoggerUnknownLevelFallsBackToInfo(t *testing.T) {
	l := newLogger("loud")
	assert.False(t, l.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, l.Enabled(context.Background(), slog.LevelInfo))
}
