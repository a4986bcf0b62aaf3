package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Validator wraps go-playground/validator with the attendance rules registered.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// report json field names so clients can map errors back to their payload
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v := &Validator{validate: validate}
	v.registerBusinessRules()

	return v
}

// Validate returns nil or a ValidationErrors value.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ToValidationErrors converts go-playground errors into ValidationErrors.
func ToValidationErrors(err error) ValidationErrors {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{{Field: "request", Message: err.Error(), Rule: "invalid"}}
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fieldPath(fe),
			Message: messageFor(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace, e.g. "updates[0].status".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "not_blank":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "calendar_date":
		return "must be a date in YYYY-MM-DD format"
	case "bcrypt_len":
		return fmt.Sprintf("must be at most %d bytes", bcryptMaxBytes)
	case "attendance_status":
		return "must be one of: present, absent"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
