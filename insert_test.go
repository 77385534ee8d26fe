package sqlgen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlgen/dialect"
)

func TestInsertValues(t *testing.T) {
	sg := New(dialect.Standard)
	ins := sg.InsertInto("t1")
	ins.Set("a").Value(1)
	ins.Set("b").Value("x")
	ins.Set("c").Raw("sysdate")

	assert.Equal(t, "insert into t1(a, b, c)\nvalues (?, ?, sysdate)", ins.SQL())
	args, err := ins.Args()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), "x"}, args)
}

func TestInsertNullValue(t *testing.T) {
	sg := New(dialect.Standard)
	ins := sg.InsertInto("t1")
	ins.Set("a").Value(nil)
	assert.Equal(t, "insert into t1(a)\nvalues (?)", ins.SQL())
	args, err := ins.Args()
	require.NoError(t, err)
	assert.Equal(t, []any{nil}, args)
}

func TestInsertSubquery(t *testing.T) {
	sg := New(dialect.Standard)
	ins := sg.InsertInto("t1")
	sub := ins.Subquery("a", "b")
	sub.Select("x", "y").From("t2")
	sub.Where("x").Gt().Value(5)

	assert.Equal(t, "insert into t1 (a, b)\nselect x, y\nfrom t2\nwhere x > ?\n", ins.SQL())
	args, err := ins.Args()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(5)}, args)
}

func TestInsertDefaultValues(t *testing.T) {
	sg := New(dialect.Standard)
	assert.Equal(t, "insert into t1\ndefault values", sg.InsertInto("t1").SQL())
}

func TestInsertBodyIsExclusive(t *testing.T) {
	sg := New(dialect.Standard)

	err := catchState(t, func() {
		ins := sg.InsertInto("t1")
		ins.Subquery("a")
		ins.Set("a")
	})
	assert.True(t, errors.Is(err, ErrInvalidState))

	err = catchState(t, func() {
		ins := sg.InsertInto("t1")
		ins.Set("a").Value(1)
		ins.Subquery("a")
	})
	assert.True(t, errors.Is(err, ErrInvalidState))
}
