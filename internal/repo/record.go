// Package repo is the data access layer between domain entities and
// Postgres.
//
// It maps rows onto typed records, renders parameterized queries,
// validates changesets before they become INSERT statements and loads
// associations lazily. The Repo is the only type that talks to the
// database; everything else renders statements or holds state.
package repo

import (
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// Table identifies the table a record type is stored in.
type Table struct {
	Name       string
	PrimaryKey string
}

// Record is implemented by the row structs of every table.
//
// Table must be implemented on a value receiver and return the same value
// for every instance, it is read from the zero value of the type. Columns
// are mapped through `db` struct tags.
type Record interface {
	Table() Table
	PrimaryKey() int64
}

func tableOf[R Record]() Table {
	var r R
	return r.Table()
}

// collect decodes every row into R. The returned slice is never nil.
//
// Errors reported by the server take precedence over scan failures, so a
// broken stream is not mistaken for a row of the wrong shape.
func collect[R Record](rows pgx.Rows) ([]R, error) {
	defer rows.Close()

	records := []R{}
	for rows.Next() {
		record, err := pgx.RowToStructByName[R](rows)
		if err != nil {
			if rowsErr := rows.Err(); rowsErr != nil {
				return nil, rowsErr
			}
			return nil, errors.Wrap(ErrDecode, err.Error())
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
