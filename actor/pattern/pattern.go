// Package pattern is the structural matcher used by a mailbox receive: a
// small vocabulary of composable [Pattern] values — wildcard, ignore,
// type-tagged, literal, and tuple — that classify an arbitrary Go value
// without ever panicking on a mismatch. It is intentionally independent of
// both [actor] and [actor/tuple]'s caller, so it can be reused anywhere a
// value needs to be matched rather than type-switched.
package pattern

import (
	"reflect"

	"github.com/fizzAI/fauxtp/actor/tuple"
)

// Pattern is a single match clause. Match is total: given any value, it
// either succeeds with zero or more bound sub-values, or fails — it never
// panics, regardless of the runtime type of value.
type Pattern interface {
	match(value any) (bindings []any, ok bool)
}

// Match applies p to value directly; Case.Match funcs built from patterns
// call this.
func Match(value any, p Pattern) ([]any, bool) {
	return p.match(value)
}

type anyPattern struct{}

func (anyPattern) match(v any) ([]any, bool) { return []any{v}, true }

// Any matches every value and binds it.
var Any Pattern = anyPattern{}

type ignorePattern struct{}

func (ignorePattern) match(any) ([]any, bool) { return nil, true }

// Ignore matches every value and binds nothing, for positions whose
// content a handler does not need.
var Ignore Pattern = ignorePattern{}

type typePattern struct {
	typ reflect.Type
}

// Type matches any non-nil value whose concrete type is exactly T and
// binds it. Type tokens are checked by exact type identity, never by
// assignability, so Type[int]() does not match an int32.
func Type[T any]() Pattern {
	return typePattern{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

func (p typePattern) match(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if reflect.TypeOf(v) == p.typ {
		return []any{v}, true
	}
	return nil, false
}

type literalPattern struct {
	lit any
}

// Literal matches a value equal (==) to lit and binds nothing. lit must be
// a comparable type; Literal panics at construction (not at match time) if
// it is not, since an unmatchable literal is a configuration error.
func Literal(lit any) Pattern {
	if !reflect.TypeOf(lit).Comparable() {
		panic("pattern: literal value must be comparable")
	}
	return literalPattern{lit: lit}
}

func (p literalPattern) match(v any) ([]any, bool) {
	if v == nil {
		return nil, p.lit == nil
	}
	if !reflect.TypeOf(v).Comparable() {
		return nil, false
	}
	if v == p.lit {
		return nil, true
	}
	return nil, false
}

type tuplePattern struct {
	items []Pattern
}

// Tuple matches a [tuple.Tuple] of exactly len(items) elements where every
// element matches the corresponding sub-pattern, in order. Sub-pattern
// bindings are concatenated left to right.
func Tuple(items ...Pattern) Pattern {
	return tuplePattern{items: items}
}

func (p tuplePattern) match(v any) ([]any, bool) {
	t, ok := v.(tuple.Tuple)
	if !ok || len(t) != len(p.items) {
		return nil, false
	}

	bindings := make([]any, 0, len(p.items))
	for i, sub := range p.items {
		b, ok := sub.match(t[i])
		if !ok {
			return nil, false
		}
		bindings = append(bindings, b...)
	}
	return bindings, true
}
