package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/deppfellow/rfcboard/internal/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payloads. Validate usually
// delegates to validation.Struct.
type Validatable interface {
	Validate() error
}

// BindAndValidate binds request data into payload and validates it.
//
// Returns *errs.HTTPError (400) with field-level errors if validation fails.
// payload must be a pointer so c.Bind can populate it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		message := "Invalid request body"

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			message = fmt.Sprint(httpErr.Message)
		}
		return errs.NewBadRequestError(message, false, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors)
	}

	return nil
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Error: err.Error()}}
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: messageFor(fe.Tag(), fe.Param(), fe.Kind(), fe.Field()),
		})
	}

	return "Validation failed", fieldErrors
}

// messageFor turns a failed validator tag into a user-friendly message.
//
// kind distinguishes length limits on strings from value limits on numbers.
func messageFor(tag, param string, kind reflect.Kind, field string) string {
	isText := kind == reflect.String

	switch tag {
	case "required":
		return "is required"

	case "min":
		if isText {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		return fmt.Sprintf("must be at least %s", param)

	case "max":
		if isText {
			return fmt.Sprintf("must not exceed %s characters", param)
		}
		return fmt.Sprintf("must not exceed %s", param)

	case "gt":
		return fmt.Sprintf("must be greater than %s", param)

	case "oneof":
		return fmt.Sprintf("must be one of: %s", param)

	case "gte":
		return fmt.Sprintf("must be at least %s", param)
	}

	prefix := ""
	if field != "" {
		prefix = field + ": "
	}
	if param != "" {
		return fmt.Sprintf("%s%s:%s", prefix, tag, param)
	}
	return prefix + tag
}
