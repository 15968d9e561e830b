// Package errors turns errors into low-cardinality class names for metric tags.
package errors

import (
	goerrors "errors"
	"reflect"
	"strings"

	"github.com/target/jobmarket-api/internal/domain/credit"
	apperrors "github.com/target/jobmarket-api/internal/errors"
)

// Classify returns a normalized error class suitable for tagging metrics and logs.
//
// Application errors are reported by code and ledger refusals as credit_exhausted.
// Anything else is unwrapped to its innermost concrete type and converted to snake_case-ish.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if credit.IsExhausted(err) {
		return "credit_exhausted"
	}
	if code := apperrors.GetCode(err); code != "" {
		return string(code)
	}

	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), "*", ""))
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
