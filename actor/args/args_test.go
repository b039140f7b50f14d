package args

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/fizzAI/fauxtp/actor/tuple"
)

func TestNew_BuildsFromPairs(t *testing.T) {
	a := New(tuple.New("limit", 10), tuple.New("name", "counter"))

	assert.Equal(t, Get[int](a, "limit"), 10)
	assert.Equal(t, Get[string](a, "name"), "counter")
}

func TestAdd_SetsKeyAndChains(t *testing.T) {
	a := New()
	a.Add("limit", 1).Add("name", "x")

	assert.Equal(t, Get[int](a, "limit"), 1)
	assert.Equal(t, Get[string](a, "name"), "x")
}

func TestGet_WrongTypePanics(t *testing.T) {
	a := New(tuple.New("limit", 10))

	defer func() {
		assert.Assert(t, recover() != nil)
	}()

	Get[string](a, "limit")
}
