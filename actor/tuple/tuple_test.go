package tuple

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestNew_CopiesItems(t *testing.T) {
	src := []any{"$call", 1, "hello"}
	tup := New(src...)

	src[1] = 99

	assert.Equal(t, Get[int](tup, 1), 1)
}

func TestGet_AssertsType(t *testing.T) {
	tup := New("$cast", 42)

	assert.Equal(t, Get[string](tup, 0), "$cast")
	assert.Equal(t, Get[int](tup, 1), 42)
}

func TestGet_WrongTypePanics(t *testing.T) {
	tup := New("$cast", 42)

	defer func() {
		assert.Assert(t, recover() != nil)
	}()

	Get[string](tup, 1)
}

func TestUpdate_ReturnsCopyLeavingOriginalUntouched(t *testing.T) {
	orig := New("$call", 1)
	updated := Update[int](orig, 1, 2)

	assert.Equal(t, Get[int](orig, 1), 1)
	assert.Equal(t, Get[int](updated, 1), 2)
}

func TestTwo_DestructuresPositionally(t *testing.T) {
	tag, n := Two[string, int](New("$reply", 7))

	assert.Equal(t, tag, "$reply")
	assert.Equal(t, n, 7)
}

func TestThree_DestructuresPositionally(t *testing.T) {
	tag, ref, payload := Three[string, string, any](New("$call", "ref-1", "request"))

	assert.Equal(t, tag, "$call")
	assert.Equal(t, ref, "ref-1")
	assert.Equal(t, payload, "request")
}
