package sqlgen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlgen/dialect"
)

func TestUpdate(t *testing.T) {
	sg := New(dialect.Standard)
	upd := sg.Update("t1")
	upd.Set("a").Value(1)
	upd.Set("b").Value("x")
	upd.Where("id").Eq().Value(9)

	assert.Equal(t, "update t1 set\n    a = ?,\n    b = ?\nwhere\n    id = ?\n", upd.SQL())
	args, err := upd.Args()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), "x", int64(9)}, args)
}

func TestUpdateWithoutWhere(t *testing.T) {
	sg := New(dialect.Standard)
	upd := sg.Update("t1")
	upd.Set("a").Value(1)
	assert.Equal(t, "update t1 set\n    a = ?\n", upd.SQL())
}

func TestUpdateMultipleWheres(t *testing.T) {
	sg := New(dialect.Standard)
	upd := sg.Update("t1")
	upd.Set("a").Raw("a + 1")
	upd.Where("b").Eq().Value(1)
	upd.Where("c").Eq().Value(2)
	assert.Equal(t, "update t1 set\n    a = a + 1\nwhere\n    b = ?\n    and c = ?\n", upd.SQL())
	args, err := upd.Args()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2)}, args)
}

func TestUpdateSetSubquery(t *testing.T) {
	sg := New(dialect.Standard)
	upd := sg.Update("t1")
	upd.Set("a").Subquery(sg.Select("max(b)").From("t2"))
	assert.Equal(t, "update t1 set\n    a = (\n        select max(b)\n        from t2\n    )\n", upd.SQL())
}

func TestUpdateWithoutSetPanics(t *testing.T) {
	sg := New(dialect.Standard)
	err := catchState(t, func() { sg.Update("t1").SQL() })
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestDelete(t *testing.T) {
	sg := New(dialect.Standard)
	del := sg.DeleteFrom("t1")
	del.Where("id").Eq().Value(9)
	assert.Equal(t, "delete from t1\nwhere\n    id = ?\n", del.SQL())
	args, err := del.Args()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(9)}, args)
}

func TestDeleteAllRows(t *testing.T) {
	sg := New(dialect.Standard)
	assert.Equal(t, "delete from t1\n", sg.DeleteFrom("t1").SQL())
}

func TestDeleteWhereCond(t *testing.T) {
	sg := New(dialect.Standard)
	del := sg.DeleteFrom("t1").WhereCond(sg.Cond("a").In(1, 2))
	assert.Equal(t, "delete from t1\nwhere\n    a in (?, ?)\n", del.SQL())
}
