package repo

import (
	"fmt"
	"strings"

	"github.com/deppfellow/rfcboard/internal/errs"
)

// Rule checks one proposed value; the error message is reported to the
// caller as is.
type Rule = func(value any) error

// Insertable is implemented by the attribute types that can be inserted
// as a record of R.
type Insertable[R Record] interface {
	Changeset() *Changeset[R]
}

type change struct {
	column string
	value  any
	rules  []Rule
}

type conflict struct {
	columns []string
	updates []string
}

// Changeset collects the proposed column values of one INSERT into the
// table of R.
//
// A changeset cannot be rendered directly: Validate must succeed first
// and yields the Valid value that renders the statement.
type Changeset[R Record] struct {
	changes   []change
	columns   map[string]struct{}
	duplicate error
	conflict  *conflict
}

// NewChangeset starts an empty changeset for the table of R.
func NewChangeset[R Record]() *Changeset[R] {
	return &Changeset[R]{columns: make(map[string]struct{})}
}

// Put proposes value for column, checked by rules when validating.
//
// Each column may be set once. A second Put for the same column is
// recorded as a *DuplicateChangeError returned by Validate; the first
// value is kept.
func (c *Changeset[R]) Put(column string, value any, rules ...Rule) *Changeset[R] {
	if _, ok := c.columns[column]; ok {
		if c.duplicate == nil {
			c.duplicate = &DuplicateChangeError{Table: tableOf[R]().Name, Column: column}
		}
		return c
	}

	c.columns[column] = struct{}{}
	c.changes = append(c.changes, change{column: column, value: value, rules: rules})
	return c
}

// Columns returns the columns set so far, in insertion order.
func (c *Changeset[R]) Columns() []string {
	columns := make([]string, 0, len(c.changes))
	for _, ch := range c.changes {
		columns = append(columns, ch.column)
	}
	return columns
}

// Conflict is an upsert target awaiting its update columns.
type Conflict[R Record] struct {
	changeset *Changeset[R]
	columns   []string
}

// OnConflict declares the unique column set that turns the insert into
// an upsert.
func (c *Changeset[R]) OnConflict(columns ...string) *Conflict[R] {
	return &Conflict[R]{changeset: c, columns: columns}
}

// DoUpdate lists the columns overwritten with the proposed row's values
// when the conflict target already exists.
func (u *Conflict[R]) DoUpdate(columns ...string) *Changeset[R] {
	u.changeset.conflict = &conflict{columns: u.columns, updates: columns}
	return u.changeset
}

// Validate runs every rule of every change and accumulates all failures
// into one *errs.ValidationError.
func (c *Changeset[R]) Validate() (Valid[R], error) {
	if c.duplicate != nil {
		return Valid[R]{}, c.duplicate
	}

	verr := errs.NewValidationError()
	if len(c.changes) == 0 {
		verr.Add("", "no changes to insert")
		return Valid[R]{}, verr
	}

	for _, ch := range c.changes {
		for _, rule := range ch.rules {
			if err := rule(ch.value); err != nil {
				verr.Add(ch.column, err.Error())
			}
		}
	}

	if c.conflict != nil && (len(c.conflict.columns) == 0 || len(c.conflict.updates) == 0) {
		verr.Add("", "upsert needs conflict and update columns")
	}

	if !verr.Empty() {
		return Valid[R]{}, verr
	}

	valid := Valid[R]{
		columns: make([]string, 0, len(c.changes)),
		values:  make([]any, 0, len(c.changes)),
	}
	for _, ch := range c.changes {
		valid.columns = append(valid.columns, ch.column)
		valid.values = append(valid.values, ch.value)
	}
	if c.conflict != nil {
		valid.conflict = &conflict{
			columns: append([]string(nil), c.conflict.columns...),
			updates: append([]string(nil), c.conflict.updates...),
		}
	}
	return valid, nil
}

// Valid is a snapshot of a changeset whose rules all passed. It is the
// only value that renders an INSERT; later changes to the changeset do
// not reach it.
type Valid[R Record] struct {
	columns  []string
	values   []any
	conflict *conflict
}

// ToSQL renders INSERT INTO ... RETURNING * naming exactly the columns
// that were set, with an ON CONFLICT clause for upserts.
func (v Valid[R]) ToSQL() (string, []any, error) {
	if len(v.columns) == 0 {
		return "", nil, ErrNotValidated
	}

	builder := psql.Insert(tableOf[R]().Name).Columns(v.columns...).Values(v.values...)

	if up := v.conflict; up != nil {
		sets := make([]string, 0, len(up.updates))
		for _, column := range up.updates {
			sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
		}
		builder = builder.Suffix(fmt.Sprintf(
			"ON CONFLICT (%s) DO UPDATE SET %s",
			strings.Join(up.columns, ", "),
			strings.Join(sets, ", "),
		))
	}

	return builder.Suffix("RETURNING *").ToSql()
}
