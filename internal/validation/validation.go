// Package validation contains the logic for validating
// request data and proposed record changes.
//
// It uses the `validator` library to enforce rules (like
// required fields or length limits) defined in struct tags
// or attached to a single changeset attribute, and extracts
// validation errors into a format the client can understand.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields under the name the client sent them with.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, key := range []string{"json", "query", "param"} {
			name, _, _ := strings.Cut(f.Tag.Get(key), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// Struct validates a request payload against its `validate` tags.
func Struct(v any) error {
	return validate.Struct(v)
}

// Tag builds a rule from a validator tag such as "required,max=255".
//
// The returned rule reports the message of the first failing tag. Pointer
// values are dereferenced so "omitempty" behaves the same for nil and "".
func Tag(tag string) func(value any) error {
	return func(value any) error {
		err := validate.Var(value, tag)
		if err == nil {
			return nil
		}

		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
			return err
		}

		fe := validationErrors[0]
		return errors.New(messageFor(fe.Tag(), fe.Param(), valueKind(value), ""))
	}
}

// Check builds a rule from a predicate; message is reported when ok
// returns false.
func Check(ok func(value any) bool, message string) func(value any) error {
	return func(value any) error {
		if ok(value) {
			return nil
		}
		return errors.New(message)
	}
}

func valueKind(value any) reflect.Kind {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return rv.Type().Elem().Kind()
		}
		rv = rv.Elem()
	}
	return rv.Kind()
}
