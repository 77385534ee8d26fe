package sqlgen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlgen/dialect"
)

func TestUnion(t *testing.T) {
	sg := New(dialect.Standard)
	s1 := sg.Select("a").From("t1")
	s1.Where("a").Gt().Value(1)
	s2 := sg.Select("a").From("t2")
	s2.Where("a").Lt().Value(9)

	u := sg.Union(s1, s2)
	assert.Equal(t, "select a\nfrom t1\nwhere a > ?\nunion\nselect a\nfrom t2\nwhere a < ?\n", u.SQL())
	args, err := u.Args()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(9)}, args, "members bind left to right")
}

func TestUnionAllIntersectExcept(t *testing.T) {
	sg := New(dialect.Standard)
	s1 := sg.Select("a").From("t1")
	s2 := sg.Select("a").From("t2")

	assert.Contains(t, sg.UnionAll(s1, s2).SQL(), "\nunion all\n")
	assert.Contains(t, sg.Intersect(s1, s2).SQL(), "\nintersect\n")
	assert.Contains(t, sg.Except(s1, s2).SQL(), "\nexcept\n")
}

func TestMinusRequiresOracle(t *testing.T) {
	standard := New(dialect.Standard)
	s1 := standard.Select("a").From("t1")
	s2 := standard.Select("a").From("t2")
	err := catchState(t, func() { standard.Minus(s1, s2) })
	assert.True(t, errors.Is(err, ErrInvalidState))

	oracle := New(dialect.Oracle)
	o1 := oracle.Select("a").From("t1")
	o2 := oracle.Select("a").From("t2")
	assert.Contains(t, oracle.Minus(o1, o2).SQL(), "\nminus\n")
}

func TestCompoundRejectsEmpty(t *testing.T) {
	sg := New(dialect.Standard)
	err := catchState(t, func() { sg.Union() })
	assert.True(t, errors.Is(err, ErrInvalidState))
}
