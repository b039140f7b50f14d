// Package args is a small typed bag used to pass constructor-style
// arguments into an [actor.Actor]'s Init without each actor needing its own
// bespoke options struct.
package args

import "github.com/fizzAI/fauxtp/actor/tuple"

// Args holds named values, typically built once at spawn time and read
// back inside Init with [Get].
type Args struct {
	items map[string]any
}

// New builds an Args from ("key", value) tuples, e.g.
// args.New(tuple.New("limit", 10), tuple.New("name", "counter")).
func New(pairs ...tuple.Tuple) Args {
	items := make(map[string]any, len(pairs))
	for _, t := range pairs {
		k, v := tuple.Two[string, any](t)
		items[k] = v
	}
	return Args{items: items}
}

// Add sets key to v and returns args for chaining.
func (a *Args) Add(key string, v any) *Args {
	a.items[key] = v
	return a
}

// Get returns the value stored under key, asserted to type T. Panics if
// absent or of the wrong type.
func Get[T any](a Args, key string) T {
	return a.items[key].(T)
}
