// Package validation checks raw path and query parameters before they reach a service.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/target/jobmarket-api/internal/errors"
)

// Validator is a function that validates a string value and returns an error message if invalid.
type Validator func(v string) string

// Required validates that a field is not empty.
func Required(fieldName string) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return fieldName + " is required"
		}
		return ""
	}
}

// UUID validates that a field is a canonical UUID.
func UUID(fieldName string) Validator {
	return func(v string) string {
		if _, err := uuid.Parse(strings.TrimSpace(v)); err != nil {
			return fieldName + " must be a valid UUID"
		}
		return ""
	}
}

// IntRange validates that a field is a valid integer between minVal and maxVal.
func IntRange(fieldName string, minVal, maxVal int) Validator {
	return func(v string) string {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fieldName + " must be a number"
		}
		if i < minVal || i > maxVal {
			return fmt.Sprintf("%s must be between %d and %d", fieldName, minVal, maxVal)
		}
		return ""
	}
}

// Bool validates that a field parses as a boolean.
func Bool(fieldName string) Validator {
	return func(v string) string {
		if _, err := strconv.ParseBool(strings.TrimSpace(v)); err != nil {
			return fieldName + " must be true or false"
		}
		return ""
	}
}

// Parses validates that parse accepts the value and reports the parser's message.
func Parses[T any](parse func(string) (T, error)) Validator {
	return func(v string) string {
		if _, err := parse(v); err != nil {
			return err.Error()
		}
		return ""
	}
}

// Optional skips the wrapped validators when the value is empty.
func Optional(validators ...Validator) Validator {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return ""
		}
		for _, fn := range validators {
			if msg := fn(v); msg != "" {
				return msg
			}
		}
		return ""
	}
}

// FieldValidator provides a fluent API for validating multiple fields.
type FieldValidator struct {
	errors map[string]string
	order  []string
}

// New creates a new FieldValidator instance.
func New() *FieldValidator {
	return &FieldValidator{errors: make(map[string]string)}
}

// Validate validates a field with one or more validators.
// It stops at the first error for each field.
func (fv *FieldValidator) Validate(field, value string, validators ...Validator) *FieldValidator {
	for _, v := range validators {
		if msg := v(value); msg != "" {
			if _, seen := fv.errors[field]; !seen {
				fv.order = append(fv.order, field)
			}
			fv.errors[field] = msg
			break
		}
	}
	return fv
}

// Errors returns the accumulated validation errors.
func (fv *FieldValidator) Errors() map[string]string {
	return fv.errors
}

// Err returns the first recorded failure as a validation AppError, or nil when every field passed.
func (fv *FieldValidator) Err() error {
	if len(fv.order) == 0 {
		return nil
	}
	field := fv.order[0]
	return apperrors.ValidationField(field, fv.errors[field])
}
