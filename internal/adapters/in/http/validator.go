package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts go-playground/validator to echo.Validator.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// FormatValidationError turns validator errors into a field to message map.
// Errors of other types are reported under the "request" key.
func FormatValidationError(err error) map[string]string {
	out := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		out["request"] = err.Error()
		return out
	}

	for _, fe := range validationErrs {
		field := fe.Field()

		switch fe.Tag() {
		case "required":
			out[field] = fmt.Sprintf("%s is required", field)
		case "max":
			out[field] = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		case "numeric":
			out[field] = fmt.Sprintf("%s must be a decimal number", field)
		default:
			out[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return out
}
