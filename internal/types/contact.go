package types

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// BudgetBucket is a submitter's stated budget range.
type BudgetBucket string

// Budget buckets offered by the contact form
const (
	BudgetSmall  BudgetBucket = "< $2,000"
	BudgetMedium BudgetBucket = "$2,000 - $10,000"
	BudgetLarge  BudgetBucket = "$10,000+"
)

// BudgetBuckets lists the closed set of budget buckets in display order.
var BudgetBuckets = []BudgetBucket{BudgetSmall, BudgetMedium, BudgetLarge}

// Valid reports whether b is one of BudgetBuckets.
func (b BudgetBucket) Valid() bool {
	for _, known := range BudgetBuckets {
		if b == known {
			return true
		}
	}
	return false
}

// ContactRequest is the body accepted by the contact endpoint.
type ContactRequest struct {
	Name               string       `json:"name" validate:"required,min=2"`
	Email              string       `json:"email" validate:"required,email"`
	Company            string       `json:"company,omitempty"`
	Budget             BudgetBucket `json:"budget" validate:"required,budget"`
	Message            string       `json:"message" validate:"required,min=10"`
	PreferredStartDate string       `json:"preferred_start_date,omitempty"`
}

// Normalize trims surrounding whitespace from every text field.
func (r *ContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Company = strings.TrimSpace(r.Company)
	r.Budget = BudgetBucket(strings.TrimSpace(string(r.Budget)))
	r.Message = strings.TrimSpace(r.Message)
	r.PreferredStartDate = strings.TrimSpace(r.PreferredStartDate)
}

// Validate validates the ContactRequest using the validator. Failures are
// validator.ValidationErrors in field declaration order.
func (r *ContactRequest) Validate() error {
	return contactValidator.Struct(r)
}

// IsCVRequest reports whether the submitter is asking for a CV or resume.
func (r *ContactRequest) IsCVRequest() bool {
	for _, s := range []string{r.Message, r.Company} {
		lower := strings.ToLower(s)
		for _, kw := range cvKeywords {
			if containsWord(lower, kw) {
				return true
			}
		}
	}
	return false
}

var cvKeywords = []string{"cv", "resume", "résumé", "curriculum"}

// containsWord reports whether kw appears in s delimited by non-letters, so
// "cv" does not match inside other words.
func containsWord(s, kw string) bool {
	for i := 0; ; {
		j := strings.Index(s[i:], kw)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(kw)
		if (start == 0 || !isLetter(s[start-1])) && (end == len(s) || !isLetter(s[end])) {
			return true
		}
		i = start + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

// ContactSubmission is an accepted lead. It is created once per accepted
// request and never mutated afterwards.
type ContactSubmission struct {
	ID                 uuid.UUID    `json:"id"`
	Name               string       `json:"name"`
	Email              string       `json:"email"`
	Company            string       `json:"company,omitempty"`
	Budget             BudgetBucket `json:"budget"`
	Message            string       `json:"message"`
	PreferredStartDate string       `json:"preferred_start_date,omitempty"`
	CVRequest          bool         `json:"cv_request"`
	CreatedAt          time.Time    `json:"created_at"`
}

// NewContactSubmission builds a lead from a validated request.
func NewContactSubmission(id uuid.UUID, req ContactRequest, now time.Time) ContactSubmission {
	return ContactSubmission{
		ID:                 id,
		Name:               req.Name,
		Email:              req.Email,
		Company:            req.Company,
		Budget:             req.Budget,
		Message:            req.Message,
		PreferredStartDate: req.PreferredStartDate,
		CVRequest:          req.IsCVRequest(),
		CreatedAt:          now.UTC(),
	}
}

var contactValidator = newContactValidator()

func newContactValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("budget", func(fl validator.FieldLevel) bool {
		return BudgetBucket(fl.Field().String()).Valid()
	})
	return v
}
