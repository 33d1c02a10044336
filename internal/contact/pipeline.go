package contact

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/portfolio-site/internal/db"
	"github.com/jonathan/portfolio-site/internal/server/ratelimit"
	"github.com/jonathan/portfolio-site/internal/types"
)

// Endpoint and Method identify contact submissions to the rate limiter.
const (
	Endpoint = "/api/contact"
	Method   = "POST"
)

// SuccessMessage acknowledges every accepted submission.
const SuccessMessage = "Contact form submitted successfully"

// DefaultNotifyTimeout bounds the notification step.
const DefaultNotifyTimeout = 5 * time.Second

// DefaultPersistTimeout bounds the persistence step.
const DefaultPersistTimeout = 5 * time.Second

// UnknownIdentity is used when the caller's address cannot be derived.
const UnknownIdentity = "unknown"

// RateLimiter decides whether an identity may submit now.
type RateLimiter interface {
	Allow(clientID, endpoint, method string) (bool, ratelimit.Info)
}

// LeadStore persists accepted leads.
type LeadStore interface {
	InsertLead(ctx context.Context, lead *types.ContactSubmission) error
}

// Notifier tells the site owner (and optionally the submitter) about a lead.
type Notifier interface {
	NotifyLead(ctx context.Context, lead types.ContactSubmission) error
}

// Outcome is the caller-visible result of an accepted submission.
type Outcome struct {
	ID      uuid.UUID
	Message string
}

// DeliveryReport records what happened after a submission was accepted.
// It is internal: callers only ever see the Outcome.
type DeliveryReport struct {
	Lead       types.ContactSubmission
	PersistErr error
	NotifyErr  error
}

// Persisted reports whether the lead reached the store.
func (r DeliveryReport) Persisted() bool { return r.PersistErr == nil }

// Notified reports whether the notification step succeeded.
func (r DeliveryReport) Notified() bool { return r.NotifyErr == nil }

// Pipeline runs validate, rate-check, persist and notify in that order.
type Pipeline struct {
	limiter        RateLimiter
	store          LeadStore
	notifier       Notifier
	notifyTimeout  time.Duration
	persistTimeout time.Duration
	now            func() time.Time
	newID          func() uuid.UUID
	onReport       func(DeliveryReport)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithNotifyTimeout bounds the notification step. Non-positive values keep
// the default.
func WithNotifyTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.notifyTimeout = d
		}
	}
}

// WithPersistTimeout bounds the persistence step. Non-positive values keep
// the default.
func WithPersistTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.persistTimeout = d
		}
	}
}

// WithClock sets the time source used for lead timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithIDGenerator sets how lead IDs are generated.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(p *Pipeline) { p.newID = newID }
}

// WithReportHook receives the DeliveryReport of every accepted submission.
func WithReportHook(fn func(DeliveryReport)) Option {
	return func(p *Pipeline) { p.onReport = fn }
}

// NewPipeline creates a pipeline. A nil store or notifier skips that step.
func NewPipeline(limiter RateLimiter, store LeadStore, notifier Notifier, opts ...Option) *Pipeline {
	p := &Pipeline{
		limiter:        limiter,
		store:          store,
		notifier:       notifier,
		notifyTimeout:  DefaultNotifyTimeout,
		persistTimeout: DefaultPersistTimeout,
		now:            time.Now,
		newID:          uuid.New,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit handles one submission from identity. The only errors returned are
// *ValidationError and *RateLimitedError; once both checks pass the
// submission is acknowledged regardless of persistence or notification.
func (p *Pipeline) Submit(ctx context.Context, identity string, req types.ContactRequest) (*Outcome, error) {
	req.Normalize()
	if err := Validate(&req); err != nil {
		return nil, err
	}

	if identity == "" {
		identity = UnknownIdentity
	}
	if p.limiter != nil {
		if allowed, info := p.limiter.Allow(identity, Endpoint, Method); !allowed {
			log.Printf("[contact] rate limited %s (retry after %s)", identity, info.RetryAfter)
			return nil, &RateLimitedError{Info: info}
		}
	}

	lead := types.NewContactSubmission(p.newID(), req, p.now())

	// Delivery continues even if the caller goes away.
	deliveryCtx := context.WithoutCancel(ctx)
	report := DeliveryReport{Lead: lead}
	report.PersistErr = p.persist(deliveryCtx, &lead)
	report.NotifyErr = p.notify(deliveryCtx, lead)
	p.logReport(report)
	if p.onReport != nil {
		p.onReport(report)
	}

	return &Outcome{ID: lead.ID, Message: SuccessMessage}, nil
}

var (
	errNoStore    = errors.New("no lead store configured")
	errNoNotifier = errors.New("no notifier configured")
)

func (p *Pipeline) persist(ctx context.Context, lead *types.ContactSubmission) error {
	if p.store == nil {
		return errNoStore
	}

	ctx, cancel := context.WithTimeout(ctx, p.persistTimeout)
	defer cancel()

	// The store writes to a copy; lead is updated only when the write completes.
	pending := *lead
	done := make(chan error, 1)
	go func() {
		done <- p.store.InsertLead(ctx, &pending)
	}()

	select {
	case err := <-done:
		*lead = pending
		return err
	case <-ctx.Done():
		return &db.PersistenceError{
			Op:    "insert lead " + lead.ID.String(),
			Cause: fmt.Errorf("timed out after %s: %w", p.persistTimeout, ctx.Err()),
		}
	}
}

func (p *Pipeline) notify(ctx context.Context, lead types.ContactSubmission) error {
	if p.notifier == nil {
		return errNoNotifier
	}

	ctx, cancel := context.WithTimeout(ctx, p.notifyTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- p.notifier.NotifyLead(ctx, lead)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("notification timed out after %s: %w", p.notifyTimeout, ctx.Err())
	}
}

func (p *Pipeline) logReport(r DeliveryReport) {
	if r.PersistErr != nil {
		log.Printf("[contact] lead %s not persisted: %v", r.Lead.ID, r.PersistErr)
	}
	if r.NotifyErr != nil {
		log.Printf("[contact] lead %s notification failed: %v", r.Lead.ID, r.NotifyErr)
	}
	log.Printf("[contact] lead %s accepted (persisted=%t notified=%t cv_request=%t)",
		r.Lead.ID, r.Persisted(), r.Notified(), r.Lead.CVRequest)
}
