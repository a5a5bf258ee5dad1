// Package validation holds the shared request validation rules and the
// bridge that turns rule failures into domain input errors.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/blockcrypt/internal/errors"
)

// WrapValidationError converts a rule failure into ErrInvalidInput so the
// HTTP layer maps it to a 400.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace rejects values with leading or trailing whitespace.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool { return s == strings.TrimSpace(s) },
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank rejects values that are empty once trimmed.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool { return strings.TrimSpace(s) != "" },
	validation.NewError("validation_not_blank", "must not be blank"),
)
