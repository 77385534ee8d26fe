package sqlgen

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlgen/dialect"
)

func TestSelectQuery(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sg := New(dialect.Standard)
	sel := sg.Select("a", "b").From("t1")
	sel.Where("a").Gt().Value(1)

	mock.ExpectQuery("select a, b\nfrom t1\nwhere a > ?\n").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"a", "b"}).AddRow(2, "x"))

	rows, err := sel.Query(context.Background(), db)
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var a int
	var b string
	require.NoError(t, rows.Scan(&a, &b))
	assert.Equal(t, 2, a)
	assert.Equal(t, "x", b)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateExec(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sg := New(dialect.Standard)
	upd := sg.Update("t1")
	upd.Set("a").Value(1)
	upd.Where("id").Eq().Value(9)

	mock.ExpectExec("update t1 set\n    a = ?\nwhere\n    id = ?\n").
		WithArgs(int64(1), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := upd.Exec(context.Background(), db)
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sg := New(dialect.Standard)
	del := sg.DeleteFrom("t1")
	del.Where("id").Eq().Value(1)

	mock.ExpectBegin()
	mock.ExpectExec("delete from t1\nwhere\n    id = ?\n").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	_, err = del.Exec(context.Background(), tx)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	sg := New(dialect.Standard)
	ins := sg.InsertInto("t1")
	ins.Set("a").Value(1)

	mock.ExpectExec("insert into t1(a)\nvalues (?)").
		WithArgs(int64(1)).
		WillReturnError(assert.AnError)

	_, err = ins.Exec(context.Background(), db)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "sqlgen: exec")
}
