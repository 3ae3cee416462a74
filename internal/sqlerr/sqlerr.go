// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic error codes from the database driver and
// converts them into driver-independent values (Error, ErrNotFound,
// ErrTooManyRows, ErrDecode) and, at the HTTP edge, into
// user-friendly messages (e.g., converting a "foreign key violation"
// into a "Bad Request" error).
package sqlerr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is the cause of a read that expected one row and got none.
	ErrNotFound = errors.New("no matching row")

	// ErrTooManyRows is the cause of a read that expected one row and got more.
	ErrTooManyRows = errors.New("more than one matching row")

	// ErrDecode is the cause of a returned row that could not be mapped
	// into its record type.
	ErrDecode = errors.New("could not decode row")
)

// Code is the category of a database error.
type Code string

const (
	Other                     Code = "other"
	NotNullViolation          Code = "not_null_violation"
	ForeignKeyViolation       Code = "foreign_key_violation"
	UniqueViolation           Code = "unique_violation"
	CheckViolation            Code = "check_violation"
	ExclusionViolation        Code = "exclusion_violation"
	InvalidTextRepresentation Code = "invalid_text_representation"
	QueryCanceled             Code = "query_canceled"
	UndefinedTable            Code = "undefined_table"
	UndefinedColumn           Code = "undefined_column"
)

// MapCode maps a Postgres SQLSTATE onto a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "23P01":
		return ExclusionViolation
	case "22P02":
		return InvalidTextRepresentation
	case "57014":
		return QueryCanceled
	case "42P01":
		return UndefinedTable
	case "42703":
		return UndefinedColumn
	default:
		return Other
	}
}

// Severity is the Postgres message severity.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity maps the severity string reported by the server.
// Unknown values are treated as SeverityError.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}

// Error is a database error stripped of its driver type.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
}

func (e *Error) Error() string {
	if e.DatabaseCode == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (SQLSTATE %s)", e.Message, e.DatabaseCode)
}

// Normalize converts an error returned by pgx into a driver-independent
// error. Errors that already are driver independent pass through.
func Normalize(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		return ConvertPgError(pgErr)
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case errors.Is(err, pgx.ErrTooManyRows):
		return ErrTooManyRows
	case errors.Is(err, context.Canceled):
		return context.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return context.DeadlineExceeded
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrTooManyRows), errors.Is(err, ErrDecode):
		return err
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr
	}

	// Connectivity and protocol failures keep only their text.
	return &Error{
		Code:     Other,
		Severity: SeverityError,
		Message:  err.Error(),
	}
}
