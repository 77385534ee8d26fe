package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeComment(t *testing.T) {
	assert.Equal(t, `\star \slash`, EscapeComment("*/"))
	assert.Equal(t, `\slash \star`, EscapeComment("/*"))
	assert.Equal(t, `\minus \minus drop table t`, EscapeComment("-- drop table t"))
	assert.Equal(t, "plain", EscapeComment("plain"))
}

func TestEscapeString(t *testing.T) {
	assert.Equal(t, "o''brien", EscapeString("o'brien"))
	assert.Equal(t, "plain", EscapeString("plain"))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%`, EscapeLike("50%", '\\'))
	assert.Equal(t, `a\_b`, EscapeLike("a_b", '\\'))
	assert.Equal(t, `\\`, EscapeLike(`\`, '\\'))
	assert.Equal(t, "o''brien", EscapeLike("o'brien", '\\'))
}

func TestToLiteral(t *testing.T) {
	assert.Equal(t, "'x'", ToLiteral("x"))
	assert.Equal(t, "'o''brien'", ToLiteral("o'brien"))
}

func TestChunk(t *testing.T) {
	assert.Equal(t, []int{3}, chunk(3, 1000))
	assert.Equal(t, []int{2, 2, 1}, chunk(5, 2))
	assert.Equal(t, []int{1000, 1}, chunk(1001, 1000))
	assert.Nil(t, chunk(0, 1000))
}
