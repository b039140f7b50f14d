// Package mailbox implements the FIFO message queue with selective,
// pattern-driven receive that backs every actor. It has no notion of
// patterns itself — callers supply a [Case] per candidate clause, each with
// its own predicate — keeping this package a small, dependency-free
// primitive that the pattern-matching and messaging layers build on.
package mailbox

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTimeout is returned by [Mailbox.Receive] when no case matched before
// the deadline elapsed.
var ErrTimeout = errors.New("mailbox: receive timeout")

// ErrClosed is returned by [Mailbox.Receive] and swallows [Mailbox.Put] once
// the mailbox has been closed (the owning actor has exited).
var ErrClosed = errors.New("mailbox: closed")

// Case is one candidate receive clause. Match inspects a queued message and
// reports whether it applies along with any bindings extracted from it;
// Handle runs with those bindings once the message has been dequeued.
type Case struct {
	Match  func(msg any) (bindings []any, ok bool)
	Handle func(bindings []any) (any, error)
}

// Mailbox is an unbounded FIFO queue of arbitrary messages supporting
// selective receive: a scan for the first queued message matching any of a
// set of cases, skipping over non-matching messages without discarding
// them.
type Mailbox struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []any
	closed bool
}

// New creates an empty Mailbox.
func New() *Mailbox {
	m := &Mailbox{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Put appends msg to the end of the queue. A no-op once the mailbox is
// closed — messages sent to an exited actor are silently discarded.
func (m *Mailbox) Put(msg any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.queue = append(m.queue, msg)
	m.cond.Broadcast()
}

// Close marks the mailbox closed: further Put calls no-op and any blocked
// or future Receive returns [ErrClosed]. Idempotent.
func (m *Mailbox) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.cond.Broadcast()
}

// Len reports the number of messages currently queued.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Receive scans the queue head-to-tail for the first message matched by any
// of cases (cases are tried in order for each message), removes it, and
// runs its Handle. If nothing matches, it suspends until a new message
// arrives, the deadline (if timeout > 0) elapses, or ctx is cancelled,
// whichever comes first.
//
// A zero timeout means wait indefinitely (subject only to ctx). Matching
// removes only the matched message from the queue — skipped messages
// remain, in order, for the next Receive.
func (m *Mailbox) Receive(ctx context.Context, timeout time.Duration, cases []Case) (any, error) {
	var deadline time.Time
	hasDeadline := timeout > 0
	if hasDeadline {
		deadline = time.Now().Add(timeout)
	}

	m.mu.Lock()
	for {
		if idx, bindings, handle, ok := m.matchLocked(cases); ok {
			m.queue = removeAt(m.queue, idx)
			m.mu.Unlock()
			return handle(bindings)
		}

		if m.closed {
			m.mu.Unlock()
			return nil, ErrClosed
		}
		if ctx != nil && ctx.Err() != nil {
			m.mu.Unlock()
			return nil, ctx.Err()
		}

		if hasDeadline {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				m.mu.Unlock()
				return nil, ErrTimeout
			}
			m.waitLocked(ctx, remaining)
		} else {
			m.waitLocked(ctx, 0)
		}
	}
}

func (m *Mailbox) matchLocked(cases []Case) (idx int, bindings []any, handle func([]any) (any, error), ok bool) {
	for i, msg := range m.queue {
		for _, c := range cases {
			if b, matched := c.Match(msg); matched {
				return i, b, c.Handle, true
			}
		}
	}
	return 0, nil, nil, false
}

// waitLocked blocks the caller (which must hold m.mu) until a new message
// arrives, ctx fires, or d elapses (d <= 0 means no deadline). It always
// returns with m.mu held again, mirroring sync.Cond.Wait.
func (m *Mailbox) waitLocked(ctx context.Context, d time.Duration) {
	woken := make(chan struct{})
	go func() {
		var timerC <-chan time.Time
		if d > 0 {
			t := time.NewTimer(d)
			defer t.Stop()
			timerC = t.C
		}
		var ctxDone <-chan struct{}
		if ctx != nil {
			ctxDone = ctx.Done()
		}
		select {
		case <-timerC:
		case <-ctxDone:
		case <-woken:
			return
		}
		m.mu.Lock()
		m.cond.Broadcast()
		m.mu.Unlock()
	}()
	m.cond.Wait()
	close(woken)
}

func removeAt(queue []any, idx int) []any {
	out := make([]any, 0, len(queue)-1)
	out = append(out, queue[:idx]...)
	out = append(out, queue[idx+1:]...)
	return out
}
