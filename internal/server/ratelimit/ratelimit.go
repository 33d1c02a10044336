// Package ratelimit provides per-identity rate limiting using a sliding
// window log of request timestamps.
package ratelimit

import (
	"sync"
	"time"
)

// slidingWindow holds the timestamps of allowed requests that are still
// inside the trailing window, oldest first.
type slidingWindow struct {
	hits   []time.Time
	window time.Duration
}

// prune drops hits that are at least one window old.
func (w *slidingWindow) prune(now time.Time) {
	keep := 0
	for keep < len(w.hits) && now.Sub(w.hits[keep]) >= w.window {
		keep++
	}
	if keep > 0 {
		w.hits = append(w.hits[:0], w.hits[keep:]...)
	}
}

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter tracks sliding windows for every identity and endpoint pair.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*slidingWindow
	config  *Config
	now     func() time.Time

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock injects the time source. Tests use it to advance time without sleeping.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config, opts ...Option) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}

	limiter := &Limiter{
		windows: make(map[string]*slidingWindow),
		config:  config,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(limiter)
	}

	// Start cleanup goroutine if enabled
	if config.Enabled && config.CleanupInterval > 0 {
		limiter.cleanupTicker = time.NewTicker(config.CleanupInterval)
		limiter.cleanupStop = make(chan struct{})
		go limiter.cleanup()
	}

	return limiter
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
// An allowed request is recorded; a denied one leaves the window untouched.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}

	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	key := clientID + ":" + endpoint + ":" + method
	if endpointConfig == nil {
		endpointConfig = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
		}
	} else {
		key = clientID + ":" + endpointConfig.Path + ":" + endpointConfig.Method
	}

	// Unlimited endpoint (e.g., health check)
	if endpointConfig.Limit <= 0 || endpointConfig.Window <= 0 {
		return true, Info{Allowed: true}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok {
		w = &slidingWindow{window: endpointConfig.Window}
		l.windows[key] = w
	}
	w.window = endpointConfig.Window
	w.prune(now)

	info := Info{Limit: endpointConfig.Limit}
	if len(w.hits) < endpointConfig.Limit {
		w.hits = append(w.hits, now)
		info.Allowed = true
	}
	info.Remaining = endpointConfig.Limit - len(w.hits)
	info.ResetTime = w.hits[0].Add(w.window)
	if !info.Allowed {
		info.RetryAfter = info.ResetTime.Sub(now)
	}
	return info.Allowed, info
}

// cleanup removes idle windows until Stop is called.
func (l *Limiter) cleanup() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.cleanupWindows()
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupWindows removes windows whose newest hit has left the window, so
// identities that stop sending requests do not accumulate.
func (l *Limiter) cleanupWindows() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, w := range l.windows {
		if len(w.hits) == 0 || now.Sub(w.hits[len(w.hits)-1]) >= w.window {
			delete(l.windows, key)
			removed++
		}
	}
	return removed
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupTicker != nil {
			l.cleanupTicker.Stop()
		}
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
