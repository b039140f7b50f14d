package actor

import (
	"context"
	"sync"
)

// Group is the structured-concurrency scope actors are spawned into: the
// owning "task group" of the specification. Every actor started with
// [Start] or [StartLink] against a Group is cancelled when the Group is
// cancelled, and [Group.Wait] blocks until all of them have exited. A Group
// wraps a [context.Context]; cancelling that context has the same effect as
// calling [Group.Cancel].
//
// There is deliberately no package-level default Group: callers construct
// one (typically once, in main) and thread it through, keeping the
// "every actor has an owning task group" invariant explicit rather than
// hidden behind a singleton.
type Group struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewGroup creates a Group whose actors run under a context derived from
// parent. A nil parent is treated as [context.Background].
func NewGroup(parent context.Context) *Group {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Group{ctx: ctx, cancel: cancel}
}

func (g *Group) spawn(fn func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		fn()
	}()
}

// Cancel cancels every actor currently running under this Group, and any
// started afterward (a cancelled Group never un-cancels).
func (g *Group) Cancel() {
	g.cancel()
}

// Wait blocks until every actor spawned through this Group has terminated.
func (g *Group) Wait() {
	g.wg.Wait()
}

// CancelScope is a handle to a single actor's own cancellation, returned by
// [StartLink]. Cancelling it interrupts that actor's current suspension
// (typically a mailbox receive) and drives it through [Actor.Terminate]
// with reason [exitreason.Normal] — cancellation is always a clean exit
// from the runtime's point of view, distinct from a panic or returned
// error.
type CancelScope struct {
	cancel context.CancelFunc
}

// Cancel requests that the owning actor stop at its next suspension point.
// Safe to call multiple times and from any goroutine.
func (cs CancelScope) Cancel() {
	if cs.cancel != nil {
		cs.cancel()
	}
}
