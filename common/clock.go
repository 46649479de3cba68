package common

import (
	"sync"
	"time"
)

// Clock is the monotonically increasing external time source, in unix seconds.
type Clock interface {
	Now() int64
}

type SystemClock struct{}

func (SystemClock) Now() int64 {
	return time.Now().Unix()
}

// ManualClock is advanced explicitly, used by tests and simulations.
type ManualClock struct {
	now  int64
	lock sync.RWMutex
}

func NewManualClock(start int64) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() int64 {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.now
}

func (c *ManualClock) Advance(seconds int64) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if seconds > 0 {
		c.now += seconds
	}
}

func (c *ManualClock) Set(now int64) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if now > c.now {
		c.now = now
	}
}
