package orrery

import (
	"sync"
	"sync/atomic"
	"time"

	kitlog "github.com/go-kit/log"
)

// TimeProvider is the only thing the clock consumes from its environment: a
// source of real time to convert into simulated time.
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTime provides the real system time with monotonic readings.
type MonotonicTime struct{}

// Now returns the current time with a monotonic clock reading.
func (MonotonicTime) Now() time.Time { return time.Now() }

// MockTime is a controllable time source for tests and replay harnesses.
type MockTime struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockTime returns a mock provider frozen at the given start time.
func NewMockTime(start time.Time) *MockTime {
	return &MockTime{now: start}
}

// Now returns the current mocked time.
func (m *MockTime) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the mocked time forward by d.
func (m *MockTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Clock drives a System from an external ticker. The system itself never
// owns a timer; the clock measures the real delta between ticks via the
// provider and feeds it to AdvanceTime.
type Clock struct {
	sys      *System
	provider TimeProvider
	interval time.Duration
	logger   kitlog.Logger

	last     time.Time
	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
	wg       sync.WaitGroup
}

// NewClock returns a stopped clock ticking at the given interval. A clock
// is one-shot: once stopped it cannot be restarted. A nil logger gets a
// nop logger.
func NewClock(sys *System, provider TimeProvider, interval time.Duration, logger kitlog.Logger) *Clock {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Clock{
		sys:      sys,
		provider: provider,
		interval: interval,
		logger:   kitlog.With(logger, "subsys", "clock"),
		stopChan: make(chan struct{}),
	}
}

// Start begins the tick loop. Starting a running clock is a no-op.
func (c *Clock) Start() {
	if !c.running.CompareAndSwap(false, true) {
		return
	}
	c.last = c.provider.Now()
	c.wg.Add(1)
	go c.loop()
	c.logger.Log("event", "start", "interval", c.interval)
}

// Stop halts the tick loop and waits for it to exit. Safe to call more
// than once.
func (c *Clock) Stop() {
	c.stopOnce.Do(func() {
		c.running.Store(false)
		close(c.stopChan)
		c.wg.Wait()
		c.logger.Log("event", "stop")
	})
}

// Running reports whether the tick loop is active.
func (c *Clock) Running() bool {
	return c.running.Load()
}

func (c *Clock) loop() {
	defer c.wg.Done()
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.step()
		}
	}
}

// step advances the system by the real time elapsed since the last step.
func (c *Clock) step() {
	now := c.provider.Now()
	delta := now.Sub(c.last).Seconds()
	c.last = now
	c.sys.AdvanceTime(delta)
}
