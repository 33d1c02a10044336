package contact

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/portfolio-site/internal/types"
)

// Validate checks every required field of req and returns a *ValidationError
// listing all violations, or nil. req should already be normalized.
func Validate(req *types.ContactRequest) error {
	err := req.Validate()
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate contact request: %w", err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Reason: reason(fe)})
	}
	return &ValidationError{Fields: fields}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "budget":
		return "must be one of: " + budgetList()
	default:
		return "is invalid"
	}
}

func budgetList() string {
	names := make([]string, len(types.BudgetBuckets))
	for i, b := range types.BudgetBuckets {
		names[i] = string(b)
	}
	return strings.Join(names, ", ")
}
