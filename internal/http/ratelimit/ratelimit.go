package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*clientLimiter)
	mu       sync.Mutex

	requestRate rate.Limit = 5 // requests/sec per IP
	burstSize              = 10
)

// SetRate overrides the per-IP limit and drops existing buckets. Used by the
// test suites to take the limiter out of the way.
func SetRate(r rate.Limit, burst int) {
	mu.Lock()
	requestRate = r
	burstSize = burst
	visitors = make(map[string]*clientLimiter)
	mu.Unlock()
}

// GetVisitor returns the token bucket for an IP, creating it on first sight.
func GetVisitor(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(requestRate, burstSize)
		visitors[ip] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// StartVisitorCleanupLoop evicts buckets idle for more than five minutes.
func StartVisitorCleanupLoop() {
	for {
		time.Sleep(time.Minute)
		mu.Lock()
		for ip, v := range visitors {
			if time.Since(v.lastSeen) > 5*time.Minute {
				delete(visitors, ip)
			}
		}
		mu.Unlock()
	}
}

func CleanupAllVisitors() {
	mu.Lock()
	visitors = make(map[string]*clientLimiter)
	mu.Unlock()
}
