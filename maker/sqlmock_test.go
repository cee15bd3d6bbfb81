package maker_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlmaker/maker"
)

func TestSQLMockArgumentOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	// SET values precede predicate values.
	upd := newBuilder(t, maker.Update().Set("name", "a8m").Set("age", 31)).
		Bind("user").
		Where(maker.EQ("id", 1), maker.IsNull("age"), maker.In("name", "x", "y"))
	query, args, err := upd.Query()
	require.NoError(t, err)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET name = ?, age = ? WHERE id = ? AND age IS NULL AND name IN (?, ?)")).
		WithArgs("a8m", 31, 1, "x", "y").
		WillReturnResult(sqlmock.NewResult(0, 1))
	_, err = db.ExecContext(ctx, query, args...)
	require.NoError(t, err)

	sel := newBuilder(t, maker.Select("id", "name").OrderBy("id", maker.OrderAsc)).
		Bind("user").
		Where(maker.GTE("age", 18))
	query, args, err = sel.Query()
	require.NoError(t, err)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM users WHERE age >= ? ORDER BY id ASC")).
		WithArgs(18).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "a8m").AddRow(2, "nati"))
	rows, err := db.QueryContext(ctx, query, args...)
	require.NoError(t, err)
	var names []string
	for rows.Next() {
		var (
			id   int
			name string
		)
		require.NoError(t, rows.Scan(&id, &name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	require.NoError(t, rows.Close())
	require.Equal(t, []string{"a8m", "nati"}, names)

	require.NoError(t, mock.ExpectationsWereMet())
}
