package validation

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func engine() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return v, nil
}

// RegisterStringRule adds a binding tag accepting string fields for which valid returns true.
// Registering the same tag again replaces the rule.
func RegisterStringRule(tag string, valid func(string) bool) error {
	v, err := engine()
	if err != nil {
		return err
	}
	return v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return valid(fl.Field().String())
	})
}

// FieldErrors flattens validation failures into field -> failed rule.
// It returns nil for errors that are not validation failures.
func FieldErrors(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
