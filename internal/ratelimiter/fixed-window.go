package ratelimiter

import (
	"sync"
	"time"
)

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type window struct {
	start time.Time
	count int
}

// FixedWindowRateLimiter counts requests per client within fixed windows that
// start at each client's first request.
type FixedWindowRateLimiter struct {
	sync.Mutex
	clients map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewFixedWindowLimiter(limit int, w time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		window:  w,
		now:     time.Now,
	}
}

// Allow records a request from key. When the limit is exhausted it reports
// how long until the client's window resets.
func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	now := rl.now()
	rl.sweep(now)

	w, ok := rl.clients[key]
	if !ok {
		rl.clients[key] = &window{start: now, count: 1}
		return true, 0
	}
	if w.count < rl.limit {
		w.count++
		return true, 0
	}
	return false, w.start.Add(rl.window).Sub(now)
}

// sweep drops windows that have ended. Called with the lock held.
func (rl *FixedWindowRateLimiter) sweep(now time.Time) {
	for key, w := range rl.clients {
		if !now.Before(w.start.Add(rl.window)) {
			delete(rl.clients, key)
		}
	}
}
