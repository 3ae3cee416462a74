package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/rfcboard/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Normalize(nil))
	})

	t.Run("pg error loses its driver type", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:           "23505",
			Severity:       "ERROR",
			Message:        "duplicate key value violates unique constraint",
			TableName:      "participants",
			ConstraintName: "participants_username_key",
		}

		err := Normalize(fmt.Errorf("exec: %w", pgErr))

		var sqlErr *Error
		require.ErrorAs(t, err, &sqlErr)
		assert.Equal(t, UniqueViolation, sqlErr.Code)
		assert.Equal(t, "participants", sqlErr.TableName)

		var leaked *pgconn.PgError
		assert.False(t, errors.As(err, &leaked))
	})

	t.Run("no rows becomes ErrNotFound", func(t *testing.T) {
		err := Normalize(pgx.ErrNoRows)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.False(t, errors.Is(err, pgx.ErrNoRows))
	})

	t.Run("too many rows", func(t *testing.T) {
		assert.ErrorIs(t, Normalize(pgx.ErrTooManyRows), ErrTooManyRows)
	})

	t.Run("context errors are kept", func(t *testing.T) {
		assert.ErrorIs(t, Normalize(fmt.Errorf("query: %w", context.Canceled)), context.Canceled)
		assert.ErrorIs(t, Normalize(context.DeadlineExceeded), context.DeadlineExceeded)
	})

	t.Run("unknown errors keep only their text", func(t *testing.T) {
		err := Normalize(errors.New("conn closed"))

		var sqlErr *Error
		require.ErrorAs(t, err, &sqlErr)
		assert.Equal(t, Other, sqlErr.Code)
		assert.Equal(t, "conn closed", sqlErr.Error())
	})
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("SOMETHING"))
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation",
			err:        errs.NewValidationError(errs.FieldError{Field: "username", Error: "is required"}),
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "domain",
			err:        &errs.DomainError{Code: "VOTE_DEADLINE_PASSED", Message: "the vote has closed"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "VOTE_DEADLINE_PASSED",
		},
		{
			name:       "not found",
			err:        &errs.BackendError{Op: "one", Table: "votes", Err: ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name: "unique violation",
			err: &errs.BackendError{Op: "insert", Table: "participants", Err: &Error{
				Code:           UniqueViolation,
				TableName:      "participants",
				ConstraintName: "participants_username_key",
			}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "PARTICIPANT_ALREADY_EXISTS",
		},
		{
			name: "foreign key violation",
			err: &errs.BackendError{Op: "insert", Table: "motions", Err: &Error{
				Code:       ForeignKeyViolation,
				TableName:  "motions",
				ColumnName: "vote_id",
			}},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VOTE_NOT_FOUND",
		},
		{
			name:       "raw pg error",
			err:        &pgconn.PgError{Code: "23514", TableName: "motions", ColumnName: "type"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "MOTION_INVALID",
		},
		{
			name:       "http error passes through",
			err:        errs.NewNotFoundError("RFC not found", true, nil),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "anything else",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var httpErr *errs.HTTPError
			require.ErrorAs(t, HandleError(tt.err), &httpErr)
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestHandleErrorMessages(t *testing.T) {
	t.Run("not found names the entity", func(t *testing.T) {
		err := HandleError(&errs.BackendError{Op: "one", Table: "votes", Err: ErrNotFound})
		assert.Equal(t, "Vote not found", err.Error())
	})

	t.Run("unique violation names the column", func(t *testing.T) {
		err := HandleError(&Error{
			Code:           UniqueViolation,
			TableName:      "participants",
			ConstraintName: "participants_username_key",
		})
		assert.Equal(t, "A Participant with this Username already exists", err.Error())
	})

	t.Run("validation keeps field errors", func(t *testing.T) {
		verr := errs.NewValidationError()
		verr.Add("username", "is required")
		verr.Add("topic", "must be at most 255 characters")

		var httpErr *errs.HTTPError
		require.ErrorAs(t, HandleError(fmt.Errorf("insert: %w", verr)), &httpErr)
		assert.Len(t, httpErr.Errors, 2)
		assert.Equal(t, "topic", httpErr.Errors[1].Field)
	})
}

func TestGetEntityName(t *testing.T) {
	assert.Equal(t, "RFC", getEntityName("votes", "rfc_id"))
	assert.Equal(t, "RFC", getEntityName("request_for_comments", ""))
	assert.Equal(t, "Participant", getEntityName("motions", "participant_id"))
	assert.Equal(t, "Ballot", getEntityName("ballots", ""))
	assert.Equal(t, "Record", getEntityName("", ""))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "username", extractColumnForUniqueViolation("participants_username_key"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}
