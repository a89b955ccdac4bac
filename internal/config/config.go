// Package config loads tqbench settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/xyhelper/taskqueue"
)

type Config struct {
	// Workload
	Threads  int // producer goroutines, and as many consumers
	Items    int // items per producer
	Batch    int // items per PutMany/GetMany; 1 uses Put/Get
	Capacity int // 0 = unbounded

	// Waiting
	Timeout time.Duration // taskqueue.NoTimeout when unset
	Notify  taskqueue.NotifyPolicy

	// Host embedding
	HostLock bool // run every queue call under a shared hostlock.Lock

	// General
	LogLevel string
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}

func parseBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}

// parseTimeout reads a timeout in seconds. Unlike the other helpers it
// reports malformed values, since silently waiting forever would hide them.
func parseTimeout(key string) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return taskqueue.NoTimeout, nil
	}
	s, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	d, err := taskqueue.Seconds(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func parseNotify(key string) (taskqueue.NotifyPolicy, error) {
	switch v := getEnv(key, "all"); v {
	case "all":
		return taskqueue.NotifyAll, nil
	case "adaptive":
		return taskqueue.NotifyAdaptive, nil
	default:
		return 0, fmt.Errorf("%s: unknown notify policy %q", key, v)
	}
}

func (c *Config) Validate() error {
	if c.Threads <= 0 {
		return errors.New("threads must be > 0")
	}

	if c.Items <= 0 {
		return errors.New("items must be > 0")
	}

	if c.Capacity < 0 {
		return errors.New("capacity must be >= 0")
	}

	if c.Batch <= 0 || (c.Capacity > 0 && c.Batch > c.Capacity) {
		return errors.New("invalid batch size")
	}

	if c.Items%c.Batch != 0 {
		return errors.New("items must be a multiple of batch")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	return nil
}

func Load() (*Config, error) {
	cfg := &Config{
		Threads:  parseInt("TQBENCH_THREADS", 1),
		Items:    parseInt("TQBENCH_ITEMS", 1000000),
		Batch:    parseInt("TQBENCH_BATCH", 1),
		Capacity: parseInt("TQBENCH_CAPACITY", 0),

		HostLock: parseBool("TQBENCH_HOSTLOCK", false),

		LogLevel: getEnv("TQBENCH_LOG_LEVEL", "info"),
	}

	var err error
	if cfg.Timeout, err = parseTimeout("TQBENCH_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.Notify, err = parseNotify("TQBENCH_NOTIFY"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
