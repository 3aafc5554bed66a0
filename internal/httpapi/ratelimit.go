package httpapi

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterCleanupInterval = 5 * time.Minute

type scannerLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// scanLimiter rate limits the device-facing scan endpoint per scanner id,
// so a misbehaving reader cannot flood the backend.
type scanLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[int64]*scannerLimiter

	stopCh chan struct{}
}

func newScanLimiter(perSec float64, burst int) *scanLimiter {
	sl := &scanLimiter{
		limit:    rate.Limit(perSec),
		burst:    burst,
		limiters: make(map[int64]*scannerLimiter),
		stopCh:   make(chan struct{}),
	}
	go sl.cleanupLoop()
	return sl
}

func (sl *scanLimiter) Allow(scannerID int64) bool {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	entry, ok := sl.limiters[scannerID]
	if !ok {
		entry = &scannerLimiter{limiter: rate.NewLimiter(sl.limit, sl.burst)}
		sl.limiters[scannerID] = entry
	}
	entry.lastAccess = time.Now()
	return entry.limiter.Allow()
}

func (sl *scanLimiter) Stop() {
	close(sl.stopCh)
}

func (sl *scanLimiter) cleanupLoop() {
	t := time.NewTicker(limiterCleanupInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			sl.cleanup()
		case <-sl.stopCh:
			return
		}
	}
}

func (sl *scanLimiter) cleanup() {
	ttl := limiterCleanupInterval * 2
	now := time.Now()

	sl.mu.Lock()
	defer sl.mu.Unlock()
	for id, entry := range sl.limiters {
		if now.Sub(entry.lastAccess) > ttl {
			delete(sl.limiters, id)
		}
	}
}
