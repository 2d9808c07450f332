package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"ai-companion-be/internal/apperrors"
)

var validate = validator.New()

// ValidateRequest checks struct tags and converts the first failure into a
// caller-facing ValidationError.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return apperrors.NewValidation("invalid request")
	}

	first := validationErrors[0]
	field := strings.ToLower(first.Field())
	switch first.Tag() {
	case "required":
		return apperrors.NewValidation(fmt.Sprintf("%s is required", field))
	case "max":
		return apperrors.NewValidation(fmt.Sprintf("%s is too long", field))
	default:
		return apperrors.NewValidation(fmt.Sprintf("%s is invalid", field))
	}
}
