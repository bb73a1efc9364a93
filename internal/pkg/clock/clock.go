// Package clock abstracts wall time so admission windows and the reaper schedule can be driven from tests.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
	// NewTicker panics if d <= 0, like time.NewTicker.
	NewTicker(d time.Duration) Ticker
}

// Ticker drops ticks when the consumer falls behind; C has capacity 1.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

func (c *RealClock) NewTicker(d time.Duration) Ticker {
	return realTicker{time.NewTicker(d)}
}

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// MockClock only moves when Set or Add is called. Tickers fire during that call.
// Safe for use from concurrent goroutines.
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	tickers     []*mockTicker
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = t
	c.fireLocked()
}

func (c *MockClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentTime = c.currentTime.Add(d)
	c.fireLocked()
}

func (c *MockClock) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &mockTicker{ch: make(chan time.Time, 1), interval: d, next: c.currentTime.Add(d)}
	c.tickers = append(c.tickers, t)
	return t
}

// Tickers reports how many tickers are still running.
func (c *MockClock) Tickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tickers {
		if !t.isStopped() {
			n++
		}
	}
	return n
}

func (c *MockClock) fireLocked() {
	live := c.tickers[:0]
	for _, t := range c.tickers {
		if t.isStopped() {
			continue
		}
		live = append(live, t)
		if t.next.After(c.currentTime) {
			continue
		}
		select {
		case t.ch <- c.currentTime:
		default:
		}
		// A jump over several intervals delivers one tick, matching time.Ticker.
		for !t.next.After(c.currentTime) {
			t.next = t.next.Add(t.interval)
		}
	}
	c.tickers = live
}

type mockTicker struct {
	ch       chan time.Time
	interval time.Duration
	next     time.Time

	mu      sync.Mutex
	stopped bool
}

func (t *mockTicker) C() <-chan time.Time { return t.ch }

func (t *mockTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *mockTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}
