package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlgen/dialect"
)

func TestMerge(t *testing.T) {
	sg := New(dialect.Oracle)
	m := sg.MergeInto("t1")
	m.On("id").Value(1)
	m.InsertOrUpdate("name").Value("x")

	assert.Equal(t,
		"merge into t1 using dual on (\n    id = ?\n)\nwhen matched then update set\n    name = ?\nwhen not matched then insert (id, name) values (?, ?)",
		m.SQL())
	args, err := m.Args()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), "x", int64(1), "x"}, args,
		"on, update, insert bind in that order")
}

func TestMergeCompositeKey(t *testing.T) {
	sg := New(dialect.Oracle)
	m := sg.MergeInto("t1")
	m.On("k1").Value(1)
	m.On("k2").Value(2)
	m.InsertOrUpdate("v").Value("x")

	assert.Equal(t,
		"merge into t1 using dual on (\n    (k1 = ? and k2 = ?)\n)\nwhen matched then update set\n    v = ?\nwhen not matched then insert (k1, k2, v) values (?, ?, ?)",
		m.SQL())
}

func TestMergeNullKey(t *testing.T) {
	sg := New(dialect.Oracle)
	m := sg.MergeInto("t1")
	m.On("id").Value(nil)
	m.InsertOrUpdate("name").Value("x")

	assert.Equal(t,
		"merge into t1 using dual on (\n    id is NULL\n)\nwhen matched then update set\n    name = ?\nwhen not matched then insert (id, name) values (?, ?)",
		m.SQL())
	args, err := m.Args()
	require.NoError(t, err)
	require.Len(t, args, 3, "the null key binds in the insert branch only")
	assert.NotNil(t, args[1], "oracle null is typed")
}

func TestMergeInsertOnly(t *testing.T) {
	sg := New(dialect.Oracle)
	m := sg.MergeInto("t1")
	m.On("id").Value(1)
	m.Insert("created_at").Raw("sysdate")

	assert.Equal(t,
		"merge into t1 using dual on (\n    id = ?\n)\nwhen not matched then insert (id, created_at) values (?, sysdate)",
		m.SQL())
	args, err := m.Args()
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(1)}, args)
}
