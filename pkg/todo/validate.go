package todo

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinNameLength = 2
	MaxNameLength = 50
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError reports why a create request was rejected before being sent
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewCreateRequest trims the name and validates it against the form rules
func NewCreateRequest(name string) (CreateRequest, error) {
	req := CreateRequest{Name: strings.TrimSpace(name), IsComplete: false}
	if err := ValidateCreate(req); err != nil {
		return CreateRequest{}, err
	}
	return req, nil
}

// ValidateCreate checks a create request and returns a *ValidationError on failure
func ValidateCreate(req CreateRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) || len(valErrs) == 0 {
		return err
	}
	return &ValidationError{
		Field:   "todoName",
		Message: nameMessage(valErrs[0]),
	}
}

func nameMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		return "Todo Name max 50 characters."
	default: // required, min
		return "Todo Name must be at least 2 characters."
	}
}
