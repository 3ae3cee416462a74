package repo

import (
	sq "github.com/Masterminds/squirrel"
)

// psql renders $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Query renders a read statement yielding rows of R.
//
// Values are always returned as bound arguments, never inlined into the
// statement text.
type Query[R Record] interface {
	ToSQL() (string, []any, error)
}

// Select is a conjunction of equality filters over the table of R.
//
// Terms are rendered in the order they were added and joined with AND.
// A Select without terms refuses to render unless All was called.
type Select[R Record] struct {
	terms   []sq.Eq
	orderBy []string
	all     bool
}

// From starts a Select over the table of R.
func From[R Record]() *Select[R] {
	return &Select[R]{}
}

// Where adds the term column = value.
func (s *Select[R]) Where(column string, value any) *Select[R] {
	s.terms = append(s.terms, sq.Eq{column: value})
	return s
}

// OrderBy appends ORDER BY clauses, e.g. "id" or "created_at DESC".
func (s *Select[R]) OrderBy(clauses ...string) *Select[R] {
	s.orderBy = append(s.orderBy, clauses...)
	return s
}

// All allows the Select to render without terms, selecting every row.
func (s *Select[R]) All() *Select[R] {
	s.all = true
	return s
}

func (s *Select[R]) ToSQL() (string, []any, error) {
	if len(s.terms) == 0 && !s.all {
		return "", nil, ErrUnfilteredQuery
	}

	builder := psql.Select("*").From(tableOf[R]().Name)
	for _, term := range s.terms {
		builder = builder.Where(term)
	}
	if len(s.orderBy) > 0 {
		builder = builder.OrderBy(s.orderBy...)
	}

	return builder.ToSql()
}

// ByID selects the record of R with the given primary key.
func ByID[R Record](id int64) Query[R] {
	return From[R]().Where(tableOf[R]().PrimaryKey, id)
}
