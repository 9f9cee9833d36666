package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator bridges go-playground/validator into echo so request
// structs like GenerationRequest and TurnRequest get their `validate`
// tags enforced at bind time.
type CustomValidator struct {
	v *validator.Validate
}

// New builds the validator the API server registers as echo's Validator.
func New() *CustomValidator {
	v := validator.New()
	return &CustomValidator{v: v}
}

// Validate checks the struct's validate tags.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
