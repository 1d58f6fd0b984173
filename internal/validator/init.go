package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("mark", validateMark)
}

func GetValidator() *validator.Validate {
	return validate
}

// validateMark accepts "X" or "O" in either case.
func validateMark(fl validator.FieldLevel) bool {
	switch strings.ToUpper(fl.Field().String()) {
	case "X", "O":
		return true
	}
	return false
}
