package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectToSQL(t *testing.T) {
	tests := []struct {
		name     string
		query    Query[widgetRecord]
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "by id",
			query:    ByID[widgetRecord](4),
			wantSQL:  "SELECT * FROM widgets WHERE id = $1",
			wantArgs: []any{int64(4)},
		},
		{
			name:     "terms keep insertion order",
			query:    From[widgetRecord]().Where("owner_id", int64(3)).Where("name", "bolt"),
			wantSQL:  "SELECT * FROM widgets WHERE owner_id = $1 AND name = $2",
			wantArgs: []any{int64(3), "bolt"},
		},
		{
			name:    "explicit select all",
			query:   From[widgetRecord]().All(),
			wantSQL: "SELECT * FROM widgets",
		},
		{
			name:     "ordering is explicit",
			query:    From[widgetRecord]().Where("owner_id", int64(3)).OrderBy("id"),
			wantSQL:  "SELECT * FROM widgets WHERE owner_id = $1 ORDER BY id",
			wantArgs: []any{int64(3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.query.ToSQL()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, len(tt.wantArgs), len(args))
			for i := range tt.wantArgs {
				assert.Equal(t, tt.wantArgs[i], args[i])
			}
		})
	}
}

func TestSelectWithoutTerms(t *testing.T) {
	_, _, err := From[widgetRecord]().ToSQL()
	assert.ErrorIs(t, err, ErrUnfilteredQuery)
}

func TestValuesAreNeverInlined(t *testing.T) {
	injection := "x'; DROP TABLE widgets; --"

	sql, args, err := From[widgetRecord]().Where("name", injection).ToSQL()
	require.NoError(t, err)
	assert.NotContains(t, sql, "DROP")
	assert.Equal(t, []any{injection}, args)
}
