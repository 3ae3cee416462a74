package repo

import (
	"context"
	"time"

	"github.com/deppfellow/rfcboard/internal/errs"
	"github.com/deppfellow/rfcboard/internal/sqlerr"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound is the cause of a One that matched no row.
	ErrNotFound = sqlerr.ErrNotFound

	// ErrTooManyRows is the cause of a One that matched several rows.
	ErrTooManyRows = sqlerr.ErrTooManyRows

	// ErrDecode is the cause of a row that could not be mapped onto its record.
	ErrDecode = sqlerr.ErrDecode

	// ErrUnfilteredQuery is returned by a Select without terms that was not
	// marked with All.
	ErrUnfilteredQuery = errors.New("query has no filter and does not select all rows")

	// ErrNotValidated is returned when rendering a Valid that did not come
	// from Changeset.Validate.
	ErrNotValidated = errors.New("changeset was not validated")

	// ErrDuplicateChange matches every *DuplicateChangeError.
	ErrDuplicateChange = errors.New("duplicate change")
)

// DuplicateChangeError reports a column set twice on one changeset.
type DuplicateChangeError struct {
	Table  string
	Column string
}

func (e *DuplicateChangeError) Error() string {
	return "duplicate change for " + e.Table + "." + e.Column
}

func (e *DuplicateChangeError) Is(target error) bool {
	return target == ErrDuplicateChange
}

// DB runs one statement on a borrowed connection. *pgxpool.Pool, *pgx.Conn,
// pgx.Tx and pgxmock pools all satisfy it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const defaultSlowQueryThreshold = 100 * time.Millisecond

// Repo runs queries and inserts against a DB.
//
// Every operation is a single round trip; nothing is cached between
// calls. A Repo is safe for concurrent use when its DB is.
type Repo struct {
	db                 DB
	logger             *zerolog.Logger
	slowQueryThreshold time.Duration
}

type Option func(*Repo)

// WithSlowQueryThreshold sets the duration above which statements are
// logged at warn level. Zero disables the warning.
func WithSlowQueryThreshold(d time.Duration) Option {
	return func(r *Repo) {
		r.slowQueryThreshold = d
	}
}

func New(db DB, logger *zerolog.Logger, opts ...Option) *Repo {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	r := &Repo{
		db:                 db,
		logger:             logger,
		slowQueryThreshold: defaultSlowQueryThreshold,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Insert validates attrs and inserts them, returning the stored record.
// A failing validation returns an *errs.ValidationError without any I/O.
func Insert[R Record](ctx context.Context, r *Repo, attrs Insertable[R]) (R, error) {
	var zero R

	valid, err := attrs.Changeset().Validate()
	if err != nil {
		return zero, err
	}

	return one[R](ctx, r, "insert", valid)
}

// One runs q and returns its only row.
//
// No row is an *errs.BackendError matching ErrNotFound, several rows one
// matching ErrTooManyRows.
func One[R Record](ctx context.Context, r *Repo, q Query[R]) (R, error) {
	return one[R](ctx, r, "one", q)
}

// All runs q and returns its rows in order; no match is an empty slice.
func All[R Record](ctx context.Context, r *Repo, q Query[R]) ([]R, error) {
	return fetch[R](ctx, r, "all", q)
}

// Find returns the record of R with the given primary key.
func Find[R Record](ctx context.Context, r *Repo, id int64) (R, error) {
	return one[R](ctx, r, "find", ByID[R](id))
}

// Load populates assoc by running its query. Loading an association that
// is already loaded does nothing.
//
// For a ToOne association a missing row is stored as loaded and absent.
// When the query fails, including by cancellation, assoc stays not loaded.
func Load[R Record](ctx context.Context, r *Repo, assoc Loader[R]) error {
	if assoc.IsLoaded() {
		return nil
	}

	records, err := fetch[R](ctx, r, "load", assoc.query())
	if err != nil {
		return err
	}

	if assoc.Multiplicity() == ToOne && len(records) > 1 {
		return &errs.BackendError{Op: "load", Table: tableOf[R]().Name, Err: ErrTooManyRows}
	}

	assoc.store(records)
	return nil
}

func one[R Record](ctx context.Context, r *Repo, op string, q Query[R]) (R, error) {
	var zero R

	records, err := fetch[R](ctx, r, op, q)
	if err != nil {
		return zero, err
	}

	switch len(records) {
	case 1:
		return records[0], nil
	case 0:
		return zero, &errs.BackendError{Op: op, Table: tableOf[R]().Name, Err: ErrNotFound}
	default:
		return zero, &errs.BackendError{Op: op, Table: tableOf[R]().Name, Err: ErrTooManyRows}
	}
}

func fetch[R Record](ctx context.Context, r *Repo, op string, q Query[R]) ([]R, error) {
	table := tableOf[R]().Name

	stmt, args, err := q.ToSQL()
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", op, table)
	}

	start := time.Now()
	rows, err := r.db.Query(ctx, stmt, args...)
	var records []R
	if err == nil {
		records, err = collect[R](rows)
	}
	r.logStatement(op, table, stmt, time.Since(start), err)

	if err != nil {
		return nil, &errs.BackendError{Op: op, Table: table, Err: sqlerr.Normalize(err)}
	}
	return records, nil
}

func (r *Repo) logStatement(op, table, stmt string, elapsed time.Duration, err error) {
	event := r.logger.Debug()
	if r.slowQueryThreshold > 0 && elapsed > r.slowQueryThreshold {
		event = r.logger.Warn().Bool("slow", true)
	}

	event.
		Str("op", op).
		Str("table", table).
		Str("sql", stmt).
		Dur("duration", elapsed).
		Err(err).
		Msg("statement executed")
}
