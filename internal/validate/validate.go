package validate

// This package adds struct and field validation as a thin wrapper around the go-playground/validator package.
//
// e.g. internal/config/config.go
//   type Config struct {
//       ...
//       SwipeThreshold float64 `yaml:"swipe_threshold" validate:"gte=0"`
//       Language       string  `yaml:"language" validate:"omitempty,bcp47_language_tag"`
//   }
//
// The custom "flagbool" tag accepts the two string forms stored for boolean flags.

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// get returns a process-wide singleton of the validator.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
		_ = validatorInst.RegisterValidation("flagbool", func(fl validator.FieldLevel) bool {
			v := fl.Field().String()
			return v == "true" || v == "false"
		})
	})
	return validatorInst
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}
