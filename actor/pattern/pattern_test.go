package pattern

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/fizzAI/fauxtp/actor/tuple"
)

func TestAny_MatchesEverything(t *testing.T) {
	b, ok := Match(42, Any)
	assert.Assert(t, ok)
	assert.Equal(t, b[0].(int), 42)

	_, ok = Match(nil, Any)
	assert.Assert(t, ok)
}

func TestIgnore_BindsNothing(t *testing.T) {
	b, ok := Match("whatever", Ignore)
	assert.Assert(t, ok)
	assert.Equal(t, len(b), 0)
}

func TestType_ExactTypeOnly(t *testing.T) {
	b, ok := Match(5, Type[int]())
	assert.Assert(t, ok)
	assert.Equal(t, b[0].(int), 5)

	_, ok = Match(int32(5), Type[int]())
	assert.Assert(t, !ok)

	_, ok = Match(nil, Type[int]())
	assert.Assert(t, !ok)
}

func TestLiteral_MatchesEqualValue(t *testing.T) {
	_, ok := Match("$cast", Literal("$cast"))
	assert.Assert(t, ok)

	_, ok = Match("$call", Literal("$cast"))
	assert.Assert(t, !ok)
}

func TestLiteral_PanicsOnUncomparable(t *testing.T) {
	defer func() {
		r := recover()
		assert.Assert(t, r != nil)
	}()
	Literal([]int{1, 2, 3})
}

func TestTuple_MatchesElementwise(t *testing.T) {
	v := tuple.New("$call", "ref-1", 99)
	b, ok := Match(v, Tuple(Literal("$call"), Any, Type[int]()))

	assert.Assert(t, ok)
	assert.Equal(t, b[0].(string), "ref-1")
	assert.Equal(t, b[1].(int), 99)
}

func TestTuple_WrongArityFails(t *testing.T) {
	v := tuple.New("$call", "ref-1")
	_, ok := Match(v, Tuple(Literal("$call"), Any, Any))

	assert.Assert(t, !ok)
}

func TestTuple_NonTupleFails(t *testing.T) {
	_, ok := Match("not a tuple", Tuple(Any))
	assert.Assert(t, !ok)
}

func TestTuple_FirstSubPatternFailsShortCircuits(t *testing.T) {
	v := tuple.New("$cast", 1)
	_, ok := Match(v, Tuple(Literal("$call"), Any))
	assert.Assert(t, !ok)
}
