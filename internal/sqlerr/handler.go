package sqlerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/rfcboard/internal/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError copies the fields of a raw Postgres error into an Error.
// The driver value itself is not retained.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
	}
}

// entities names the rows behind each table and foreign key column.
var entities = map[string]string{
	"participants":         "Participant",
	"participant_id":       "Participant",
	"request_for_comments": "RFC",
	"rfc_id":               "RFC",
	"supersedes":           "RFC",
	"votes":                "Vote",
	"vote_id":              "Vote",
	"motions":              "Motion",
}

// generateErrorCode creates application error codes of the form
// <ENTITY>_<ACTION>. A foreign key violation names the referenced entity:
// motions.vote_id => VOTE_NOT_FOUND.
func generateErrorCode(sqlErr *Error) string {
	entity := getEntityName(sqlErr.TableName, "")
	if sqlErr.Code == ForeignKeyViolation {
		entity = getEntityName(sqlErr.TableName, sqlErr.ColumnName)
	}

	action := "ERROR"
	switch sqlErr.Code {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return errs.MakeUpperCaseWithUnderscores(entity) + "_" + action
}

// formatUserFriendlyMessage produces a message meant for clients, not logs.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced by the column name when it can be inferred.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName names the entity a message is about: the one a foreign
// key column references, else the table's, else "Record".
func getEntityName(tableName, columnName string) string {
	column := strings.ToLower(columnName)
	if name, ok := entities[column]; ok {
		return name
	}
	if strings.HasSuffix(column, "_id") {
		return humanizeText(strings.TrimSuffix(column, "_id"))
	}

	if name, ok := entities[tableName]; ok {
		return name
	}
	if tableName != "" {
		return humanizeText(strings.TrimSuffix(tableName, "s"))
	}

	return "Record"
}

// humanizeText converts snake_case into Title Case: "ssl_mode" -> "Ssl Mode".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

var uniqueKeyPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation infers the column of a unique constraint
// named either "unique_<table>_<column>" or "<table>_<column>_key".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueKeyPattern.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// fromSQLError maps a normalized database error onto an HTTP error.
func fromSQLError(sqlErr *Error) error {
	errorCode := generateErrorCode(sqlErr)
	userMessage := formatUserFriendlyMessage(sqlErr)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return errs.NewBadRequestError(userMessage, false, &errorCode, nil)

	case UniqueViolation:
		columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
		if columnName != "" {
			userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

	case NotNullViolation:
		fieldErrors := []errs.FieldError{
			{
				Field: strings.ToLower(sqlErr.ColumnName),
				Error: "is required",
			},
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

	case CheckViolation:
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

	default:
		return errs.NewInternalServerError()
	}
}

// HandleError converts any error reaching the HTTP edge into an *errs.HTTPError.
//
//   - *errs.HTTPError: returned unchanged
//   - validation failures: 400 with one field error per failing rule
//   - domain rule refusals: 422 carrying the domain code
//   - ErrNotFound: 404 naming the table's entity
//   - database constraint errors: 400 with a generated code
//   - anything else: 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		return errs.FromValidationError(validationErr)
	}

	var domainErr *errs.DomainError
	if errors.As(err, &domainErr) {
		return errs.FromDomainError(domainErr)
	}

	if errors.Is(err, ErrNotFound) {
		var backendErr *errs.BackendError
		if errors.As(err, &backendErr) && backendErr.Table != "" {
			entityName := getEntityName(backendErr.Table, "")
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", entityName), true, nil)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return fromSQLError(sqlErr)
	}

	// Errors that never went through the data layer.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fromSQLError(ConvertPgError(pgErr))
	}

	return errs.NewInternalServerError()
}
