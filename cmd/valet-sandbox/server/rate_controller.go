package server

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateController admits API requests per client IP: a number of
// concurrent slots, then a token bucket. VIP addresses are never limited.
type RateController struct {
	config  RateControllerConfig
	clients map[string]*rateClient
	vipHits int
	mu      sync.Mutex
}

// RateControllerConfig holds controller config
type RateControllerConfig struct {
	// max number of concurrent "running" requests (0 = unlimited)
	ConcurrentMaxRequests     int32
	ConcurrentOverflowTimeout time.Duration // how long to wait for a free slot

	RateEnable            bool    // token bucket (if false, only ConcurrentMaxRequests is used)
	RateBurst             int     // requests accepted without delay (must be > 0)
	RateRequestsPerSecond float64 // refill rate of the bucket
	RateMaxDelay          time.Duration

	VipList map[string]bool // IPs that are not limited
}

// rateClient is the state of one IP
type rateClient struct {
	slots    chan struct{}
	limiter  *rate.Limiter
	lastSeen time.Time
	admitted int
	rejected int
}

// NewRateController will create and return a new controller
func NewRateController(config RateControllerConfig) *RateController {
	return &RateController{
		config:  config,
		clients: make(map[string]*rateClient),
	}
}

// client returns (and creates) the state of ip, rc.mu must be held
func (rc *RateController) client(ip string) *rateClient {
	c, ok := rc.clients[ip]
	if !ok {
		c = &rateClient{}
		if rc.config.ConcurrentMaxRequests > 0 {
			c.slots = make(chan struct{}, rc.config.ConcurrentMaxRequests)
		}
		if rc.config.RateEnable {
			c.limiter = rate.NewLimiter(rate.Limit(rc.config.RateRequestsPerSecond), rc.config.RateBurst)
		}
		rc.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c
}

// Admit waits for ip's turn. On success, finish must be called when the
// request is done. On failure, reason tells which limit was hit.
func (rc *RateController) Admit(ctx context.Context, ip string) (finish func(), reason string, ok bool) {
	rc.mu.Lock()
	if rc.config.VipList[ip] {
		rc.vipHits++
		rc.mu.Unlock()
		return func() {}, "", true
	}
	c := rc.client(ip)
	rc.mu.Unlock()

	finish, reason, ok = rc.wait(ctx, c)

	rc.mu.Lock()
	if ok {
		c.admitted++
	} else {
		c.rejected++
	}
	rc.mu.Unlock()
	return finish, reason, ok
}

func (rc *RateController) wait(ctx context.Context, c *rateClient) (func(), string, bool) {
	release := func() {}
	if c.slots != nil {
		select {
		case c.slots <- struct{}{}:
			release = func() { <-c.slots }
		case <-time.After(rc.config.ConcurrentOverflowTimeout):
			return nil, "concurrent requests limit timeout reached", false
		case <-ctx.Done():
			return nil, "request cancelled", false
		}
	}

	if c.limiter == nil {
		return release, "", true
	}

	// Wait fails at once if the delay would exceed the deadline
	limitCtx, cancel := context.WithTimeout(ctx, rc.config.RateMaxDelay)
	defer cancel()
	if err := c.limiter.Wait(limitCtx); err != nil {
		release()
		return nil, "rate limit maximum delay reached", false
	}
	return release, "", true
}

// Clean will remove clients idle for unusedTime, with no running request
func (rc *RateController) Clean(unusedTime time.Duration) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	for ip, c := range rc.clients {
		if time.Since(c.lastSeen) > unusedTime && len(c.slots) == 0 {
			delete(rc.clients, ip)
		}
	}
}

// ScheduleClean removes idle clients every interval, until ctx is done
func (rc *RateController) ScheduleClean(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rc.Clean(interval)
		}
	}
}

// Dump writes the limits and per-IP counters, for /_sandbox/rate
func (rc *RateController) Dump(w io.Writer) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	fmt.Fprintf(w, "clients: %d, VIP requests: %d\n", len(rc.clients), rc.vipHits)

	ips := make([]string, 0, len(rc.clients))
	for ip := range rc.clients {
		ips = append(ips, ip)
	}
	sort.Strings(ips)

	for _, ip := range ips {
		c := rc.clients[ip]
		fmt.Fprintf(w, "%s: admitted %d, rejected %d, last seen %s", ip, c.admitted, c.rejected, c.lastSeen.Format(time.DateTime))
		if c.slots != nil {
			fmt.Fprintf(w, ", running %d/%d", len(c.slots), cap(c.slots))
		}
		if c.limiter != nil {
			fmt.Fprintf(w, ", tokens %.1f/%d", c.limiter.Tokens(), c.limiter.Burst())
		}
		fmt.Fprintln(w)
	}
}
