// Package errs define custom error types and utilities.
//
// It holds the three error kinds the data layer produces and the
// HTTP error shape the API returns:
//
//   - ValidationError: proposed changes were rejected before any I/O.
//   - BackendError: the database reported a failure (constraint,
//     connectivity, decode of a returned row).
//   - DomainError: a business rule built on top of the data layer
//     refused the operation.
//   - HTTPError: the JSON body clients receive.
//
// Every kind matches its sentinel through errors.Is, so callers can
// branch on the kind without knowing the concrete type.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrBackend matches every *BackendError.
	ErrBackend = errors.New("backend failure")

	// ErrDomain matches every *DomainError and the domain errors that embed it.
	ErrDomain = errors.New("domain rule violated")
)

// ValidationError accumulates every failing rule of a changeset.
//
// Errors keeps the order in which the rules ran, so the messages of a
// changeset are reported in the same order the attributes were added.
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError builds a ValidationError from field errors.
func NewValidationError(fieldErrors ...FieldError) *ValidationError {
	return &ValidationError{Errors: fieldErrors}
}

// Add appends one failing rule.
func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Error: message})
}

// Empty reports whether no rule failed.
func (e *ValidationError) Empty() bool {
	return len(e.Errors) == 0
}

// Messages returns the human-readable message of every failing rule.
func (e *ValidationError) Messages() []string {
	messages := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		messages = append(messages, fe.Error)
	}
	return messages
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if fe.Field == "" {
			parts = append(parts, fe.Error)
			continue
		}
		parts = append(parts, fe.Field+" "+fe.Error)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// BackendError reports a failed round trip to the database.
//
// Err is always a driver-independent cause: the data layer converts
// driver errors before building a BackendError, so no pgx type is
// reachable through Unwrap.
type BackendError struct {
	// Op is the data layer operation (insert, one, all, load).
	Op string

	// Table is the table the statement targeted.
	Table string

	Err error
}

func (e *BackendError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func (e *BackendError) Is(target error) bool {
	return target == ErrBackend
}

// DomainError is raised by business rules.
//
// Code is a machine-friendly identifier (e.g. "VOTE_DEADLINE_PASSED"),
// Refs names the entities involved by table and primary key.
type DomainError struct {
	Code    string
	Message string
	Refs    map[string]int64
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsBackend reports whether err is a database failure.
func IsBackend(err error) bool {
	return errors.Is(err, ErrBackend)
}

// IsDomain reports whether err was raised by a business rule.
func IsDomain(err error) bool {
	return errors.Is(err, ErrDomain)
}
