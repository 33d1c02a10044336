//go:build property
// +build property

package contact

import (
	"context"
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/portfolio-site/internal/db"
	"github.com/jonathan/portfolio-site/internal/types"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSubmitProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("short names are rejected before rate limiting", prop.ForAll(
		func(name string) bool {
			limiter := &countingLimiter{}
			p := NewPipeline(limiter, db.NewMemory(), &recordingNotifier{})

			req := validRequest()
			req.Name = name
			_, err := p.Submit(context.Background(), "a", req)

			var verr *ValidationError
			return errors.As(err, &verr) && verr.Has("name") && limiter.calls.Load() == 0
		},
		gen.AlphaString().Map(func(s string) string {
			if utf8.RuneCountInString(s) > 1 {
				s = string([]rune(s)[:1])
			}
			return "  " + s + " "
		}),
	))

	properties.Property("valid submissions are always acknowledged", prop.ForAll(
		func(name, message string, budget int, failStore, failNotify bool) bool {
			var store LeadStore = db.NewMemory()
			if failStore {
				store = failingStore{}
			}
			notifier := &recordingNotifier{}
			if failNotify {
				notifier.err = errors.New("down")
			}
			p := NewPipeline(&countingLimiter{}, store, notifier)

			out, err := p.Submit(context.Background(), "a", types.ContactRequest{
				Name:    name,
				Email:   "someone@example.com",
				Budget:  types.BudgetBuckets[budget],
				Message: message,
			})
			return err == nil && out != nil && out.Message == SuccessMessage
		},
		gen.AlphaString().Map(func(s string) string { return "Jo" + s }),
		gen.AlphaString().Map(func(s string) string { return "Message body: " + s }),
		gen.IntRange(0, len(types.BudgetBuckets)-1),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
