//go:build property
// +build property

package ratelimit

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestSlidingWindowProperties checks the limiter against a direct model of
// the sliding window: a request is allowed iff fewer than ContactLimit
// allowed requests fall within the trailing ContactWindow.
func TestSlidingWindowProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("matches the trailing-window model", prop.ForAll(
		func(gaps []int) bool {
			clock := newTestClock()
			limiter := NewLimiter(contactConfig(), WithClock(clock.Now))
			defer limiter.Stop()

			var allowedAt []time.Time
			for _, gap := range gaps {
				clock.Advance(time.Duration(gap) * time.Second)
				now := clock.Now()

				inWindow := 0
				for _, at := range allowedAt {
					if now.Sub(at) < ContactWindow {
						inWindow++
					}
				}
				want := inWindow < ContactLimit

				got, _ := limiter.Allow("client", "/api/contact", "POST")
				if got != want {
					return false
				}
				if got {
					allowedAt = append(allowedAt, now)
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 45)),
	))

	properties.Property("never more than the limit inside any window", prop.ForAll(
		func(gaps []int) bool {
			clock := newTestClock()
			limiter := NewLimiter(contactConfig(), WithClock(clock.Now))
			defer limiter.Stop()

			var allowedAt []time.Time
			for _, gap := range gaps {
				clock.Advance(time.Duration(gap) * time.Second)
				if ok, _ := limiter.Allow("client", "/api/contact", "POST"); ok {
					allowedAt = append(allowedAt, clock.Now())
				}
			}
			for i := range allowedAt {
				count := 0
				for j := i; j < len(allowedAt) && allowedAt[j].Sub(allowedAt[i]) < ContactWindow; j++ {
					count++
				}
				if count > ContactLimit {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 30)),
	))

	properties.Property("denied requests report a positive retry", prop.ForAll(
		func(burst int) bool {
			clock := newTestClock()
			limiter := NewLimiter(contactConfig(), WithClock(clock.Now))
			defer limiter.Stop()

			for i := 0; i < burst; i++ {
				ok, info := limiter.Allow("client", "/api/contact", "POST")
				if !ok && (info.RetryAfter <= 0 || info.RetryAfter > ContactWindow) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 20),
	))

	properties.TestingRun(t)
}
