package mailbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func anyCase() Case {
	return Case{
		Match:  func(v any) ([]any, bool) { return []any{v}, true },
		Handle: func(b []any) (any, error) { return b[0], nil },
	}
}

func TestReceive_MatchesQueuedMessage(t *testing.T) {
	m := New()
	m.Put("hello")

	v, err := m.Receive(context.Background(), 0, []Case{anyCase()})

	assert.NilError(t, err)
	assert.Equal(t, v.(string), "hello")
}

func TestReceive_SelectiveSkipsNonMatching(t *testing.T) {
	m := New()
	m.Put(1)
	m.Put("two")

	intCase := Case{
		Match: func(v any) ([]any, bool) {
			n, ok := v.(int)
			return []any{n}, ok
		},
		Handle: func(b []any) (any, error) { return b[0], nil },
	}

	v, err := m.Receive(context.Background(), 0, []Case{
		{Match: func(v any) ([]any, bool) { _, ok := v.(string); return []any{v}, ok }, Handle: func(b []any) (any, error) { return b[0], nil }},
	})
	assert.NilError(t, err)
	assert.Equal(t, v.(string), "two")
	assert.Equal(t, m.Len(), 1)

	v2, err := m.Receive(context.Background(), 0, []Case{intCase})
	assert.NilError(t, err)
	assert.Equal(t, v2.(int), 1)
}

func TestReceive_BlocksUntilMessageArrives(t *testing.T) {
	m := New()
	done := make(chan any, 1)

	go func() {
		v, err := m.Receive(context.Background(), 0, []Case{anyCase()})
		assert.Check(t, err == nil)
		done <- v
	}()

	time.Sleep(20 * time.Millisecond)
	m.Put("late")

	select {
	case v := <-done:
		assert.Equal(t, v.(string), "late")
	case <-time.After(time.Second):
		t.Fatal("Receive never unblocked")
	}
}

func TestReceive_TimesOut(t *testing.T) {
	m := New()

	_, err := m.Receive(context.Background(), 10*time.Millisecond, []Case{anyCase()})

	assert.Assert(t, errors.Is(err, ErrTimeout))
}

func TestReceive_CancelledContext(t *testing.T) {
	m := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Receive(ctx, 0, []Case{anyCase()})

	assert.Assert(t, errors.Is(err, context.Canceled))
}

func TestReceive_ClosedMailbox(t *testing.T) {
	m := New()
	m.Close()

	_, err := m.Receive(context.Background(), 0, []Case{anyCase()})

	assert.Assert(t, errors.Is(err, ErrClosed))
}

func TestPut_NoopAfterClose(t *testing.T) {
	m := New()
	m.Close()
	m.Put("dropped")

	assert.Equal(t, m.Len(), 0)
}

func TestReceive_ConcurrentPuts(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			m.Put(n)
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool)
	for i := 0; i < 20; i++ {
		v, err := m.Receive(context.Background(), time.Second, []Case{anyCase()})
		assert.NilError(t, err)
		seen[v.(int)] = true
	}
	assert.Equal(t, len(seen), 20)
}
