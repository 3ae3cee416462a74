package errs

import "net/http"

func statusCode(status int, code *string) string {
	if code != nil {
		return *code
	}
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError builds a 400. code replaces "BAD_REQUEST" when
// non-nil; errors carries the per-field failures.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusBadRequest, code),
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusNotFound, code),
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewUnprocessableEntityError builds a 422 for requests that are well
// formed but refused by a business rule.
func NewUnprocessableEntityError(message string, code string, refs map[string]int64) *HTTPError {
	var c *string
	if code != "" {
		c = &code
	}

	return &HTTPError{
		Code:     statusCode(http.StatusUnprocessableEntity, c),
		Message:  message,
		Status:   http.StatusUnprocessableEntity,
		Override: true,
		Refs:     refs,
	}
}

// NewInternalServerError hides the cause; it is only logged.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusInternalServerError, nil),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}

// FromValidationError converts accumulated changeset failures into a
// 400 with one field error per failing rule.
func FromValidationError(err *ValidationError) *HTTPError {
	return NewBadRequestError("Validation failed", true, nil, err.Errors)
}

// FromDomainError converts a business rule refusal into a 422.
func FromDomainError(err *DomainError) *HTTPError {
	return NewUnprocessableEntityError(err.Message, err.Code, err.Refs)
}
