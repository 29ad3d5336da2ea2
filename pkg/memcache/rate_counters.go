// pkg/memcache/rate_counters.go
package mem

import (
	"sync"
	"time"
)

type CounterStore interface {
	// Hit increments the counter for key within a fixed window of the given
	// size and reports the count after the increment plus the moment the
	// window resets.
	Hit(key string, window time.Duration) (count int, resetAt time.Time)
}

type counter struct {
	count   int
	resetAt time.Time
}

// Counters is an in-process fixed-window counter map. State is per-process
// and lost on restart; a background sweep drops expired windows.
type Counters struct {
	mu   sync.Mutex
	data map[string]counter
}

func NewCounters(sweepEvery time.Duration) *Counters {
	c := &Counters{
		data: make(map[string]counter),
	}
	go c.sweep(sweepEvery)
	return c
}

func (c *Counters) Hit(key string, window time.Duration) (int, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	e, ok := c.data[key]
	if !ok || now.After(e.resetAt) {
		e = counter{count: 0, resetAt: now.Add(window)}
	}
	e.count++
	c.data[key] = e
	return e.count, e.resetAt
}

func (c *Counters) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.mu.Lock()
		for key, e := range c.data {
			if now.After(e.resetAt) {
				delete(c.data, key)
			}
		}
		c.mu.Unlock()
	}
}
