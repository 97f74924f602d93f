// Package validate wraps go-playground/validator with the platform's custom
// field rules. Services validate their input structs here before touching
// storage.
package validate

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/avolkova/reviewhub/internal/domain"
)

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	must(val.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	}))
	must(val.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	}))
	return val
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Struct validates s against its struct tags. Violations are reported as
// domain.ErrInvalidInput with the offending fields named.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate: %w", err)
	}
	for _, fe := range errs {
		return fmt.Errorf("%w: field %s fails rule %q", domain.ErrInvalidInput, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w", domain.ErrInvalidInput)
}
