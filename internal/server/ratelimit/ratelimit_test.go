package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func contactConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(ContactLimit, ContactWindow),
	}
}

func TestSlidingWindow_Prune(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	w := &slidingWindow{
		window: time.Minute,
		hits:   []time.Time{base, base.Add(10 * time.Second), base.Add(50 * time.Second)},
	}

	w.prune(base.Add(59 * time.Second))
	if len(w.hits) != 3 {
		t.Fatalf("Expected 3 hits inside the window, got %d", len(w.hits))
	}

	w.prune(base.Add(60 * time.Second))
	if len(w.hits) != 2 {
		t.Fatalf("Expected the hit exactly one window old to be pruned, got %d hits", len(w.hits))
	}

	w.prune(base.Add(2 * time.Hour))
	if len(w.hits) != 0 {
		t.Fatalf("Expected all hits pruned, got %d", len(w.hits))
	}
}

func TestLimiter_ContactSlidingWindow(t *testing.T) {
	clock := newTestClock()
	limiter := NewLimiter(contactConfig(), WithClock(clock.Now))
	defer limiter.Stop()

	// Three submissions within 10 seconds are allowed
	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("1.2.3.4", "/api/contact", "POST")
		if !allowed {
			t.Fatalf("Expected submission %d to be allowed", i+1)
		}
		if info.Remaining != 2-i {
			t.Errorf("Expected remaining %d, got %d", 2-i, info.Remaining)
		}
		clock.Advance(5 * time.Second)
	}

	// The 4th within the same window is denied
	allowed, info := limiter.Allow("1.2.3.4", "/api/contact", "POST")
	if allowed {
		t.Fatal("Expected 4th submission to be denied")
	}
	if info.RetryAfter != 45*time.Second {
		t.Errorf("Expected retry after 45s, got %v", info.RetryAfter)
	}

	// Denied attempts do not extend the window
	clock.Advance(44 * time.Second)
	if allowed, _ := limiter.Allow("1.2.3.4", "/api/contact", "POST"); allowed {
		t.Fatal("Expected submission 59s after the oldest to be denied")
	}

	// 60 seconds after the oldest submission one slot frees up
	clock.Advance(time.Second)
	if allowed, _ := limiter.Allow("1.2.3.4", "/api/contact", "POST"); !allowed {
		t.Fatal("Expected submission 60s after the oldest to be allowed")
	}
	if allowed, _ := limiter.Allow("1.2.3.4", "/api/contact", "POST"); allowed {
		t.Fatal("Expected only one slot to free up")
	}
}

func TestLimiter_IdentitiesAreIndependent(t *testing.T) {
	clock := newTestClock()
	limiter := NewLimiter(contactConfig(), WithClock(clock.Now))
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		limiter.Allow("1.1.1.1", "/api/contact", "POST")
	}
	if allowed, _ := limiter.Allow("1.1.1.1", "/api/contact", "POST"); allowed {
		t.Fatal("Expected first identity to be limited")
	}
	if allowed, _ := limiter.Allow("2.2.2.2", "/api/contact", "POST"); !allowed {
		t.Fatal("Expected second identity to be unaffected")
	}
	if allowed, _ := limiter.Allow("1.1.1.1", "/api/content", "GET"); !allowed {
		t.Fatal("Expected other endpoints to be unaffected")
	}
}

func TestLimiter_Allow(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"
	endpoint := "/test"
	method := "GET"

	// Should allow requests up to limit
	for i := 0; i < 10; i++ {
		allowed, rateInfo := limiter.Allow(clientID, endpoint, method)
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", rateInfo.Limit)
		}
		if rateInfo.Remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, rateInfo.Remaining)
		}
	}

	// 11th request should be denied
	allowed, rateInfo := limiter.Allow(clientID, endpoint, method)
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if rateInfo.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", rateInfo.Remaining)
	}
	if rateInfo.RetryAfter <= 0 {
		t.Error("Expected retry after to be positive")
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	config := contactConfig()
	config.Whitelist = map[string]bool{"127.0.0.1": true}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// Whitelisted IP should always be allowed
	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/api/contact", "POST")
		if !allowed {
			t.Errorf("Expected whitelisted request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 for whitelisted, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     IPSet([]string{"10.0.0.1", " 192.168.1.1"}),
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// Blacklisted IP should always be denied
	allowed, _ := limiter.Allow("192.168.1.1", "/test", "GET")
	if allowed {
		t.Error("Expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	config := &Config{
		Enabled: false,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// When disabled, all requests should be allowed
	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/api/contact", "POST")
		if !allowed {
			t.Errorf("Expected request %d to be allowed when disabled", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 when disabled, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/health", "GET"); !allowed {
			t.Fatalf("Expected health check %d to be allowed", i+1)
		}
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/projects/", Method: "GET", Limit: 5, Window: time.Hour},
		},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"

	// Prefix match shares one window across matching paths
	for i := 0; i < 5; i++ {
		allowed, rateInfo := limiter.Allow(clientID, fmt.Sprintf("/projects/p%d", i), "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 5 {
			t.Errorf("Expected limit 5, got %d", rateInfo.Limit)
		}
	}

	// 6th request should be denied (limit reached)
	allowed, rateInfo := limiter.Allow(clientID, "/projects/other", "GET")
	if allowed {
		t.Error("Expected 6th request to be denied")
	}
	if rateInfo.Limit != 5 {
		t.Errorf("Expected limit 5, got %d", rateInfo.Limit)
	}

	// Different endpoint should use default limit
	allowed, rateInfo = limiter.Allow(clientID, "/other", "GET")
	if !allowed {
		t.Error("Expected different endpoint to be allowed")
	}
	if rateInfo.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", rateInfo.Limit)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"
	endpoint := "/test"
	method := "GET"

	var wg sync.WaitGroup
	allowedCount := 0
	var mu sync.Mutex

	// Make 200 concurrent requests (should only allow 100)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _ := limiter.Allow(clientID, endpoint, method)
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	// Should have allowed exactly 100 requests
	if allowedCount != 100 {
		t.Errorf("Expected 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_CleanupEvictsIdleIdentities(t *testing.T) {
	clock := newTestClock()
	limiter := NewLimiter(contactConfig(), WithClock(clock.Now))
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		limiter.Allow(fmt.Sprintf("10.0.0.%d", i), "/api/contact", "POST")
	}
	clock.Advance(30 * time.Second)
	for i := 0; i < 5; i++ {
		limiter.Allow(fmt.Sprintf("10.0.0.%d", i), "/api/contact", "POST")
	}

	clock.Advance(30 * time.Second)
	if removed := limiter.cleanupWindows(); removed != 5 {
		t.Errorf("Expected 5 idle identities removed, got %d", removed)
	}
	if len(limiter.windows) != 5 {
		t.Errorf("Expected 5 active identities left, got %d", len(limiter.windows))
	}

	clock.Advance(30 * time.Second)
	limiter.cleanupWindows()
	if len(limiter.windows) != 0 {
		t.Errorf("Expected no identities left, got %d", len(limiter.windows))
	}
}

func TestLimiter_CleanupTicker(t *testing.T) {
	config := &Config{
		Enabled:         true,
		DefaultLimit:    10,
		DefaultWindow:   10 * time.Millisecond,
		CleanupInterval: 20 * time.Millisecond,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	limiter.Allow("127.0.0.1", "/test", "GET")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		limiter.mu.Lock()
		n := len(limiter.windows)
		limiter.mu.Unlock()
		if n == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("Expected janitor to remove the idle window")
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	limiter := NewLimiter(DefaultConfig())
	limiter.Stop()
	limiter.Stop()
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	if limiter == nil {
		t.Error("Expected limiter to be created with nil config")
	}

	// Should use defaults
	allowed, rateInfo := limiter.Allow("127.0.0.1", "/test", "GET")
	if !allowed {
		t.Error("Expected request to be allowed with default config")
	}
	if rateInfo.Limit != 300 {
		t.Errorf("Expected default limit 300, got %d", rateInfo.Limit)
	}

	for i := 0; i < ContactLimit; i++ {
		limiter.Allow("127.0.0.1", "/api/contact", "POST")
	}
	if allowed, _ := limiter.Allow("127.0.0.1", "/api/contact", "POST"); allowed {
		t.Error("Expected default contact limit to apply")
	}
}
