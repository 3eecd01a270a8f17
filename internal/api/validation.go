package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// BindingErrors converts a gin binding error into field errors. Returns nil
// when the error is not a validator error (e.g. malformed JSON).
func BindingErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fieldErrors := make([]FieldError, 0, len(verrs))
	for _, ve := range verrs {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   ve.Field(),
			Tag:     ve.Tag(),
			Message: errorMessage(ve),
		})
	}
	return fieldErrors
}

func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return err.Field() + " must be a valid email address"
	case "min":
		return err.Field() + " must be at least " + err.Param()
	case "max":
		return err.Field() + " must be at most " + err.Param()
	case "gte":
		return err.Field() + " must be greater than or equal to " + err.Param()
	case "lte":
		return err.Field() + " must be less than or equal to " + err.Param()
	default:
		return err.Field() + " is invalid"
	}
}
