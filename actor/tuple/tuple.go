// Package tuple is the substrate for tagged-tuple protocol messages like
// ("$call", ref, from, request): a plain, ordered, heterogeneous sequence
// that [actor/pattern] matches against and user code destructures.
package tuple

// Tuple is an ordered, heterogeneous sequence of values.
type Tuple []any

// New builds a Tuple from its arguments, e.g. tuple.New("$cast", request).
func New(items ...any) Tuple {
	v := make(Tuple, len(items))
	copy(v, items)
	return v
}

// Get returns the element at idx, asserted to type T. Panics if the
// element is absent or of the wrong type, matching Go's usual type
// assertion behavior.
func Get[T any](t Tuple, idx int) T {
	return t[idx].(T)
}

// Update returns a copy of t with the element at idx replaced by v.
func Update[T any](t Tuple, idx int, v any) Tuple {
	x := New(t...)
	x[idx] = v
	return x
}

// Two destructures a 2-tuple into its typed components.
func Two[ONE any, TWO any](t Tuple) (ONE, TWO) {
	return Get[ONE](t, 0), Get[TWO](t, 1)
}

// Three destructures a 3-tuple into its typed components.
func Three[ONE any, TWO any, THREE any](t Tuple) (ONE, TWO, THREE) {
	return Get[ONE](t, 0), Get[TWO](t, 1), Get[THREE](t, 2)
}
