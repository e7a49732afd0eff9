package backend

import (
	"context"
	"sync"
	"time"
)

// throttle enforces a minimum gap between successive fetches.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{interval: max(interval, 0)}
}

// wait blocks until the next slot is free or ctx is done, and reports
// whether the slot was taken.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.interval <= 0 {
		return ctx.Err() == nil
	}
	for {
		t.mu.Lock()
		delay := time.Until(t.next)
		if delay <= 0 {
			t.next = time.Now().Add(t.interval)
			t.mu.Unlock()
			return true
		}
		t.mu.Unlock()

		timer := time.NewTimer(min(delay, t.interval))
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}
	}
}
