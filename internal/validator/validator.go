// Package validator wraps a shared go-playground validator with the custom
// tags used by settings and the category catalog.
package validator

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("hex_color", validateHexColor)
	return v
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// IsCurrency reports whether code is an ISO 4217 currency code.
func IsCurrency(code string) bool {
	return validate.Var(code, "required,iso4217") == nil
}

// FirstFieldError returns the JSON-ish field name and failing tag of the
// first violation in err.
func FirstFieldError(err error) (field, tag string, ok bool) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "", "", false
	}
	return fieldErrs[0].Field(), fieldErrs[0].Tag(), true
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}
