package validator

import (
	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

// CustomValidator satisfies echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

// Details flattens validator errors into field/tag pairs for the error envelope.
func Details(err error) []ValidationError {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	details := make([]ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		details = append(details, ValidationError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
		})
	}

	return details
}
